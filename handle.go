// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package ebimgui

import (
	"fmt"
	"sync/atomic"
)

// DelegateCategory tells RemoveDelegate where a subscription lives.
type DelegateCategory uint8

const (
	// CategoryDefault is a subscription to one context's draw event.
	CategoryDefault DelegateCategory = iota
	// CategoryMultiContext is a subscription to the multi-context event.
	CategoryMultiContext
)

func (c DelegateCategory) String() string {
	switch c {
	case CategoryDefault:
		return "default"
	case CategoryMultiContext:
		return "multi-context"
	}
	return fmt.Sprintf("DelegateCategory(%d)", uint8(c))
}

// DelegateHandle identifies a draw callback registered with the module. It
// stays safe to pass to RemoveDelegate after the context it refers to, or
// the module itself, is gone.
type DelegateHandle struct {
	ID       DelegateID
	Category DelegateCategory
	Index    ContextIndex // unused for CategoryMultiContext
}

// IsValid reports whether the handle came from a registration.
func (h DelegateHandle) IsValid() bool {
	return h.ID != 0
}

// ContextHandle is a stable reference to "the running module". Code that
// caches a handle keeps working across a Shutdown/Startup cycle: when the
// next module starts, handles of the previous one are re-pointed to it.
type ContextHandle struct {
	mod atomic.Pointer[Module]
}

// Module returns the module the handle points to, or nil when that module
// has shut down and no new one has started.
func (h *ContextHandle) Module() *Module {
	if h == nil {
		return nil
	}
	m := h.mod.Load()
	if m == nil || m.closed.Load() {
		return nil
	}
	return m
}

func (h *ContextHandle) repoint(m *Module) {
	h.mod.Store(m)
}
