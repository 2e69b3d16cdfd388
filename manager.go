// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package ebimgui

import (
	"fmt"
	"sort"

	"go.uber.org/zap"
)

// ContextManager owns every ContextProxy. It maps editor, standalone and
// world contexts to indices, creating proxies the first time a context is
// referenced, and fires the multi-context draw event once per tick.
//
// The manager is driven from the game loop goroutine only.
type ContextManager struct {
	backend  Backend
	textures textureNamer
	log      *zap.Logger

	proxies   map[ContextIndex]*ContextProxy
	worlds    map[World]ContextIndex
	nextIndex ContextIndex

	multiContext DrawEvent
}

// NewContextManager creates a manager. backend may be nil, in which case
// proxies fire their callbacks without a GUI context behind them.
func NewContextManager(backend Backend, textures textureNamer, log *zap.Logger) *ContextManager {
	if log == nil {
		log = zap.NewNop()
	}
	return &ContextManager{
		backend:   backend,
		textures:  textures,
		log:       log,
		proxies:   make(map[ContextIndex]*ContextProxy),
		worlds:    make(map[World]ContextIndex),
		nextIndex: firstWorldContextIndex,
	}
}

// OnDrawMultiContext is fired once per tick after the active context's own
// callbacks, whatever the active context is.
func (m *ContextManager) OnDrawMultiContext() *DrawEvent {
	return &m.multiContext
}

// Resolve returns the proxy for key and its index, creating it if needed.
func (m *ContextManager) Resolve(key ContextKey) (*ContextProxy, ContextIndex) {
	var index ContextIndex
	switch key.Kind {
	case ContextEditor:
		index = EditorContextIndex
	case ContextWorld:
		if key.World == nil {
			index = StandaloneContextIndex
			break
		}
		var ok bool
		if index, ok = m.worlds[key.World]; !ok {
			index = m.nextIndex
			m.nextIndex++
			m.worlds[key.World] = index
		}
	default:
		index = StandaloneContextIndex
	}

	if proxy, ok := m.proxies[index]; ok {
		return proxy, index
	}
	proxy := newContextProxy(index, contextName(index), m.backend, m.textures, m.log)
	m.proxies[index] = proxy
	return proxy, index
}

// Lookup returns the existing proxy for key, or nil. Unlike Resolve it never
// allocates an index or creates a proxy.
func (m *ContextManager) Lookup(key ContextKey) *ContextProxy {
	index := StandaloneContextIndex
	switch key.Kind {
	case ContextEditor:
		index = EditorContextIndex
	case ContextWorld:
		if key.World != nil {
			var ok bool
			if index, ok = m.worlds[key.World]; !ok {
				return nil
			}
		}
	}
	return m.proxies[index]
}

// GetWorldContextProxy resolves the context of w. A nil world resolves to the
// standalone context.
func (m *ContextManager) GetWorldContextProxy(w World) (*ContextProxy, ContextIndex) {
	return m.Resolve(WorldContext(w))
}

// GetStandaloneContextProxy returns the context used without a world.
func (m *ContextManager) GetStandaloneContextProxy() *ContextProxy {
	proxy, _ := m.Resolve(StandaloneContext())
	return proxy
}

// GetContextProxy returns the proxy at index, or nil if there is none.
func (m *ContextManager) GetContextProxy(index ContextIndex) *ContextProxy {
	return m.proxies[index]
}

// Len returns the number of live proxies.
func (m *ContextManager) Len() int {
	return len(m.proxies)
}

// WorldDestroyed drops the context of w. A world created later gets a new
// index even if it reuses the same memory. The manager does not remember w:
// resolving it again allocates a fresh context, so callers stop passing a
// world once it is destroyed.
func (m *ContextManager) WorldDestroyed(w World) {
	index, ok := m.worlds[w]
	if !ok {
		return
	}
	delete(m.worlds, w)
	if proxy, ok := m.proxies[index]; ok {
		proxy.destroy()
		delete(m.proxies, index)
	}
}

// Tick builds one frame for key: the context's own callbacks run first, then
// the multi-context callbacks, so overlays end up on top. Ticking the same
// context twice for the same frame number does nothing the second time.
func (m *ContextManager) Tick(key ContextKey, params FrameParams, input *InputEvents) *ContextProxy {
	proxy, _ := m.Resolve(key)
	if !proxy.beginFrame(params, input) {
		return proxy
	}
	proxy.broadcastDraw()
	m.multiContext.Broadcast(&proxy.frame)
	proxy.endFrame(params)
	return proxy
}

// Close destroys every proxy, lowest index first, and clears the
// multi-context event.
func (m *ContextManager) Close() {
	indices := make([]ContextIndex, 0, len(m.proxies))
	for index := range m.proxies {
		indices = append(indices, index)
	}
	sort.Slice(indices, func(i, j int) bool { return indices[i] < indices[j] })
	for _, index := range indices {
		m.proxies[index].destroy()
	}
	m.proxies = make(map[ContextIndex]*ContextProxy)
	m.worlds = make(map[World]ContextIndex)
	m.multiContext.Clear()
}

func contextName(index ContextIndex) string {
	switch index {
	case EditorContextIndex:
		return "editor"
	case StandaloneContextIndex:
		return "standalone"
	}
	return fmt.Sprintf("world-%d", index)
}
