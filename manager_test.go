// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package ebimgui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestManager(t *testing.T) (*ContextManager, *fakeBackend) {
	t.Helper()
	backend := newFakeBackend()
	textures := NewTextureRegistry[string](nil)
	return NewContextManager(backend, textures, zaptest.NewLogger(t)), backend
}

func TestResolveReservedIndices(t *testing.T) {
	m, _ := newTestManager(t)

	_, index := m.Resolve(StandaloneContext())
	assert.Equal(t, StandaloneContextIndex, index)

	_, index = m.GetWorldContextProxy(nil)
	assert.Equal(t, StandaloneContextIndex, index)

	_, index = m.Resolve(ContextKey{Kind: ContextEditor})
	assert.Equal(t, EditorContextIndex, index)

	assert.Same(t, m.GetStandaloneContextProxy(), m.GetContextProxy(StandaloneContextIndex))
	assert.Equal(t, 2, m.Len())
	assert.Nil(t, m.GetContextProxy(99))
}

func TestWorldIndexStableWhileAlive(t *testing.T) {
	m, _ := newTestManager(t)
	w := &testWorld{name: "a"}

	p1, i1 := m.GetWorldContextProxy(w)
	p2, i2 := m.GetWorldContextProxy(w)
	assert.Same(t, p1, p2)
	assert.Equal(t, i1, i2)
	assert.GreaterOrEqual(t, i1, firstWorldContextIndex)
	assert.Equal(t, "world-2", p1.Name())

	_, other := m.GetWorldContextProxy(&testWorld{name: "b"})
	assert.NotEqual(t, i1, other)
}

func TestWorldIndexChangesAfterDestroy(t *testing.T) {
	m, backend := newTestManager(t)
	w := &testWorld{name: "a"}

	proxy, before := m.GetWorldContextProxy(w)
	proxy.OnDraw().Add(func(*Frame) {})

	m.WorldDestroyed(w)
	assert.Nil(t, m.GetContextProxy(before))
	assert.Zero(t, proxy.OnDraw().Len())
	assert.Len(t, backend.destroyed, 1)

	// Destroying twice or destroying an unknown world does nothing.
	m.WorldDestroyed(w)
	m.WorldDestroyed(&testWorld{})
	assert.Len(t, backend.destroyed, 1)

	_, after := m.GetWorldContextProxy(w)
	assert.NotEqual(t, before, after)
}

func TestLookupDoesNotCreate(t *testing.T) {
	m := NewContextManager(nil, nil, nil)
	w := &testWorld{}

	assert.Nil(t, m.Lookup(WorldContext(w)))
	assert.Nil(t, m.Lookup(EditorContext()))
	assert.Zero(t, m.Len())

	proxy, _ := m.GetWorldContextProxy(w)
	assert.Same(t, proxy, m.Lookup(WorldContext(w)))
	assert.Same(t, m.GetStandaloneContextProxy(), m.Lookup(WorldContext(nil)))

	m.WorldDestroyed(w)
	assert.Nil(t, m.Lookup(WorldContext(w)))
	assert.Equal(t, 1, m.Len())
}

func TestTickFiresPerContextThenMultiContext(t *testing.T) {
	m, _ := newTestManager(t)
	w := &testWorld{name: "a"}
	proxy, _ := m.GetWorldContextProxy(w)

	var order []string
	proxy.OnDraw().Add(func(*Frame) { order = append(order, "ctx1") })
	m.OnDrawMultiContext().Add(func(*Frame) { order = append(order, "multi") })
	proxy.OnDraw().Add(func(*Frame) { order = append(order, "ctx2") })

	m.Tick(WorldContext(w), FrameParams{Frame: 1}, nil)
	assert.Equal(t, []string{"ctx1", "ctx2", "multi"}, order)
}

func TestTickOncePerFrame(t *testing.T) {
	m, backend := newTestManager(t)
	calls := 0
	m.GetStandaloneContextProxy().OnDraw().Add(func(*Frame) { calls++ })
	multi := 0
	m.OnDrawMultiContext().Add(func(*Frame) { multi++ })

	m.Tick(StandaloneContext(), FrameParams{Frame: 1}, nil)
	m.Tick(StandaloneContext(), FrameParams{Frame: 1}, nil)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, multi)

	m.Tick(StandaloneContext(), FrameParams{Frame: 2}, nil)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, multi)

	// Frames rendered natively once each.
	renders := 0
	for _, c := range backend.calls {
		if c == "render:0" {
			renders++
		}
	}
	assert.Equal(t, 2, renders)
}

func TestTickOnlyActiveContextFires(t *testing.T) {
	m, _ := newTestManager(t)
	a, b := &testWorld{name: "a"}, &testWorld{name: "b"}
	pa, _ := m.GetWorldContextProxy(a)
	pb, _ := m.GetWorldContextProxy(b)

	var got []string
	pa.OnDraw().Add(func(*Frame) { got = append(got, "a") })
	pb.OnDraw().Add(func(*Frame) { got = append(got, "b") })
	m.OnDrawMultiContext().Add(func(f *Frame) {
		got = append(got, contextName(f.Index))
	})

	m.Tick(WorldContext(a), FrameParams{Frame: 1}, nil)
	m.Tick(WorldContext(b), FrameParams{Frame: 1}, nil)
	assert.Equal(t, []string{"a", "world-2", "b", "world-3"}, got)
}

func TestTickFrameProtocol(t *testing.T) {
	m, backend := newTestManager(t)
	proxy := m.GetStandaloneContextProxy()
	proxy.OnDraw().Add(func(f *Frame) {
		f.Begin("Win")
		f.Text("hello")
		f.End()
	})
	backend.capture = Capture{Mouse: true}
	backend.reset()

	input := &InputEvents{}
	m.Tick(StandaloneContext(), FrameParams{Frame: 5, ShowDemo: true, InputActive: true}, input)
	assert.Equal(t, []string{
		"input:0",
		"frame:0:5",
		"begin:0:Win",
		"text:0:hello",
		"end:0",
		"demo:0",
		"render:0",
	}, backend.calls)
	assert.True(t, proxy.Capture().Mouse)
	assert.NotNil(t, proxy.DrawData())
	assert.Equal(t, uint64(5), proxy.LastFrame())

	// Without input mode neither input nor capture reach the game.
	backend.reset()
	m.Tick(StandaloneContext(), FrameParams{Frame: 6}, input)
	assert.Equal(t, []string{"frame:0:6", "begin:0:Win", "text:0:hello", "end:0", "render:0"}, backend.calls)
	assert.False(t, proxy.Capture().Any())
}

func TestProxyWithoutNativeContextStillFires(t *testing.T) {
	m, backend := newTestManager(t)
	backend.failCreate = true

	proxy := m.GetStandaloneContextProxy()
	require.False(t, proxy.HasGUI())

	calls := 0
	proxy.OnDraw().Add(func(f *Frame) {
		calls++
		assert.False(t, f.Begin("x"))
		f.Text("ignored")
	})
	m.Tick(StandaloneContext(), FrameParams{Frame: 1}, nil)
	assert.Equal(t, 1, calls)
	assert.Empty(t, backend.calls)
	assert.True(t, proxy.DrawData().Empty())
}

func TestFrameImageSkipsStaleHandles(t *testing.T) {
	backend := newFakeBackend()
	textures := NewTextureRegistry[string](nil)
	m := NewContextManager(backend, textures, zaptest.NewLogger(t))

	live := TextureHandle{Name: "Icon", ID: ToTextureID(textures.CreateTexture("Icon", "", false))}
	stale := TextureHandle{Name: "Gone", ID: ToTextureID(textures.CreateTexture("Gone", "", false))}
	textures.ReleaseTexture(stale.Index())

	m.GetStandaloneContextProxy().OnDraw().Add(func(f *Frame) {
		f.Image(live, 16, 16)
		f.Image(stale, 16, 16)
		f.Image(TextureHandle{}, 16, 16)
	})
	backend.reset()
	m.Tick(StandaloneContext(), FrameParams{Frame: 1}, nil)
	assert.Contains(t, backend.calls, "image:0:1")
	assert.NotContains(t, backend.calls, "image:0:2")
	assert.NotContains(t, backend.calls, "image:0:0")
}

func TestManagerClose(t *testing.T) {
	m, backend := newTestManager(t)
	m.GetStandaloneContextProxy()
	m.GetWorldContextProxy(&testWorld{})
	m.Resolve(ContextKey{Kind: ContextEditor})
	m.OnDrawMultiContext().Add(func(*Frame) {})

	m.Close()
	assert.Zero(t, m.Len())
	assert.Zero(t, m.OnDrawMultiContext().Len())
	assert.Empty(t, backend.live)
	// Lowest index first: editor (created third) goes before standalone.
	assert.Equal(t, []NativeContext{2, 0, 1}, backend.destroyed)
}
