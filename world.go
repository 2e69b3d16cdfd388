// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package ebimgui

import "sync"

// ContextIndex identifies a GUI context. The editor and the standalone game
// have fixed indices; every world gets a fresh index when it is first seen.
type ContextIndex int32

const (
	EditorContextIndex     ContextIndex = 0
	StandaloneContextIndex ContextIndex = 1

	firstWorldContextIndex ContextIndex = 2
)

// NetMode describes how a world runs.
type NetMode uint8

const (
	NetModeStandalone NetMode = iota
	NetModeDedicatedServer
	NetModeListenServer
	NetModeClient
)

func (m NetMode) String() string {
	switch m {
	case NetModeStandalone:
		return "standalone"
	case NetModeDedicatedServer:
		return "dedicated-server"
	case NetModeListenServer:
		return "listen-server"
	case NetModeClient:
		return "client"
	}
	return "unknown"
}

// World is a host-owned game world. Implementations must be comparable and
// keep their identity for their whole lifetime; pointer types do.
type World interface {
	NetMode() NetMode
}

// Host is the part of the game engine the module asks about worlds.
type Host interface {
	// GameViewportWorld returns the world shown in the active game viewport,
	// or nil.
	GameViewportWorld() World
	// WorldByNetMode returns a live world running in mode, or nil.
	WorldByNetMode(mode NetMode) World
}

// ContextKind tags a ContextKey.
type ContextKind uint8

const (
	ContextStandalone ContextKind = iota
	ContextWorld
	ContextEditor
)

// ContextKey names the context a frame is drawn for.
type ContextKey struct {
	Kind  ContextKind
	World World
}

// StandaloneContext is the context used when there is no world.
func StandaloneContext() ContextKey {
	return ContextKey{Kind: ContextStandalone}
}

// WorldContext is the context of w. A nil world is the standalone context.
func WorldContext(w World) ContextKey {
	if w == nil {
		return StandaloneContext()
	}
	return ContextKey{Kind: ContextWorld, World: w}
}

// Worlds is a simple Host that tracks live worlds for games without their
// own world management. Destroying a world tells every watcher, which is how
// the module drops the world's GUI context.
type Worlds struct {
	mu       sync.Mutex
	worlds   []World
	viewport World
	watchers map[int]func(World)
	nextID   int
}

// Add registers w as live.
func (ws *Worlds) Add(w World) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	for _, existing := range ws.worlds {
		if existing == w {
			return
		}
	}
	ws.worlds = append(ws.worlds, w)
}

// SetViewport makes w the world of the active game viewport. w must have
// been added; nil clears the viewport.
func (ws *Worlds) SetViewport(w World) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	ws.viewport = w
}

// Destroy removes w and notifies watchers.
func (ws *Worlds) Destroy(w World) {
	ws.mu.Lock()
	found := false
	for i, existing := range ws.worlds {
		if existing == w {
			ws.worlds = append(ws.worlds[:i], ws.worlds[i+1:]...)
			found = true
			break
		}
	}
	if ws.viewport == w {
		ws.viewport = nil
	}
	watchers := make([]func(World), 0, len(ws.watchers))
	for id := 0; id < ws.nextID; id++ {
		if fn, ok := ws.watchers[id]; ok {
			watchers = append(watchers, fn)
		}
	}
	ws.mu.Unlock()

	if !found {
		return
	}
	for _, fn := range watchers {
		fn(w)
	}
}

// Contains reports whether w was added and not destroyed.
func (ws *Worlds) Contains(w World) bool {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	for _, existing := range ws.worlds {
		if existing == w {
			return true
		}
	}
	return false
}

// OnDestroy registers fn to be called after a world is destroyed, in
// registration order. The returned func unregisters it.
func (ws *Worlds) OnDestroy(fn func(World)) (cancel func()) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	if ws.watchers == nil {
		ws.watchers = make(map[int]func(World))
	}
	id := ws.nextID
	ws.nextID++
	ws.watchers[id] = fn
	return func() {
		ws.mu.Lock()
		delete(ws.watchers, id)
		ws.mu.Unlock()
	}
}

// GameViewportWorld implements Host.
func (ws *Worlds) GameViewportWorld() World {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return ws.viewport
}

// WorldByNetMode implements Host.
func (ws *Worlds) WorldByNetMode(mode NetMode) World {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	for _, w := range ws.worlds {
		if w.NetMode() == mode {
			return w
		}
	}
	return nil
}

// worldDestroyNotifier is implemented by hosts that report world destruction.
type worldDestroyNotifier interface {
	OnDestroy(fn func(World)) (cancel func())
}

// worldLiveness is implemented by hosts that can tell whether a world is
// still alive.
type worldLiveness interface {
	Contains(w World) bool
}
