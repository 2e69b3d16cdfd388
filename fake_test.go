// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package ebimgui

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// fakeBackend records every call as a string so tests can check ordering.
type fakeBackend struct {
	calls     []string
	next      NativeContext
	live      map[NativeContext]bool
	destroyed []NativeContext
	inputs    int

	failCreate bool
	capture    Capture
	atlas      []byte
	atlasW     int
	atlasH     int
	fontTex    TextureID
	shutdown   bool
	clicked    map[string]bool
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		live:    make(map[NativeContext]bool),
		clicked: make(map[string]bool),
	}
}

func (b *fakeBackend) record(format string, args ...any) {
	b.calls = append(b.calls, fmt.Sprintf(format, args...))
}

func (b *fakeBackend) reset() { b.calls = nil }

func (b *fakeBackend) CreateContext() (NativeContext, error) {
	if b.failCreate {
		return 0, errors.New("no context for you")
	}
	c := b.next
	b.next++
	b.live[c] = true
	b.record("create:%d", c)
	return c, nil
}

func (b *fakeBackend) DestroyContext(c NativeContext) {
	delete(b.live, c)
	b.destroyed = append(b.destroyed, c)
	b.record("destroy:%d", c)
}

func (b *fakeBackend) FontAtlas() ([]byte, int, int) {
	return b.atlas, b.atlasW, b.atlasH
}

func (b *fakeBackend) SetFontTexture(id TextureID) {
	b.fontTex = id
}

func (b *fakeBackend) NewFrame(c NativeContext, params FrameParams) {
	b.record("frame:%d:%d", c, params.Frame)
}

func (b *fakeBackend) FeedInput(c NativeContext, ev *InputEvents) {
	b.inputs++
	b.record("input:%d", c)
}

func (b *fakeBackend) ShowDemoWindow(c NativeContext) {
	b.record("demo:%d", c)
}

func (b *fakeBackend) Render(c NativeContext) (*DrawData, Capture) {
	b.record("render:%d", c)
	return &DrawData{}, b.capture
}

func (b *fakeBackend) Begin(c NativeContext, name string) bool {
	b.record("begin:%d:%s", c, name)
	return true
}

func (b *fakeBackend) End(c NativeContext) {
	b.record("end:%d", c)
}

func (b *fakeBackend) Text(c NativeContext, text string) {
	b.record("text:%d:%s", c, text)
}

func (b *fakeBackend) Button(c NativeContext, label string) bool {
	b.record("button:%d:%s", c, label)
	return b.clicked[label]
}

func (b *fakeBackend) Image(c NativeContext, id TextureID, width, height float32) {
	b.record("image:%d:%d", c, id)
}

func (b *fakeBackend) Shutdown() {
	b.shutdown = true
	b.record("shutdown")
}

// fakeInput counts polls.
type fakeInput struct {
	polls int
}

func (in *fakeInput) Poll(ev *InputEvents) {
	in.polls++
	ev.Reset()
	ev.MouseX, ev.MouseY = 10, 20
}

type testWorld struct {
	name string
	mode NetMode
}

func (w *testWorld) NetMode() NetMode { return w.mode }

// resetCVars restores the package console variables when the test ends.
func resetCVars(t *testing.T) {
	t.Helper()
	InputEnabled.reset()
	ShowDemo.reset()
	t.Cleanup(func() {
		InputEnabled.reset()
		ShowDemo.reset()
		Console.SetLogger(nil)
	})
}

func newTestModule(t *testing.T, opts *Options) (*Module, *fakeBackend) {
	t.Helper()
	resetCVars(t)
	if opts == nil {
		opts = &Options{}
	}
	backend := newFakeBackend()
	if opts.Backend == nil {
		opts.Backend = backend
	} else if fb, ok := opts.Backend.(*fakeBackend); ok {
		backend = fb
	}
	if opts.Logger == nil {
		opts.Logger = zaptest.NewLogger(t)
	}
	if opts.Input == nil {
		opts.Input = &fakeInput{}
	}
	m, err := NewModule(opts)
	require.NoError(t, err)
	return m, backend
}

// startTestModule publishes a module for the package-level functions and
// shuts it down at the end of the test.
func startTestModule(t *testing.T, opts *Options) *fakeBackend {
	t.Helper()
	resetCVars(t)
	if opts == nil {
		opts = &Options{}
	}
	backend, _ := opts.Backend.(*fakeBackend)
	if backend == nil {
		backend = newFakeBackend()
		opts.Backend = backend
	}
	if opts.Logger == nil {
		opts.Logger = zaptest.NewLogger(t)
	}
	if opts.Input == nil {
		opts.Input = &fakeInput{}
	}
	require.NoError(t, Startup(opts))
	t.Cleanup(func() {
		if IsRunning() {
			Shutdown()
		}
	})
	return backend
}

// keepModuleHooks restores the OnModuleLoaded hooks when the test ends.
func keepModuleHooks(t *testing.T) {
	t.Helper()
	moduleMu.Lock()
	saved := append([]func(*Module)(nil), loadedHooks...)
	moduleMu.Unlock()
	t.Cleanup(func() {
		moduleMu.Lock()
		loadedHooks = saved
		moduleMu.Unlock()
	})
}
