// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package ebimgui

// DrawFunc is called once per frame to issue GUI calls for a context.
type DrawFunc func(f *Frame)

// DelegateID identifies one subscription to a DrawEvent. Zero is never used.
type DelegateID uint64

type subscriber struct {
	id      DelegateID
	fn      DrawFunc
	removed bool
}

// DrawEvent is an ordered list of draw callbacks.
type DrawEvent struct {
	lastID DelegateID
	subs   []*subscriber
}

// Add appends fn and returns its id. Ids are never reused by the same event.
func (e *DrawEvent) Add(fn DrawFunc) DelegateID {
	if fn == nil {
		panic("ebimgui: nil draw callback")
	}
	e.lastID++
	e.subs = append(e.subs, &subscriber{id: e.lastID, fn: fn})
	return e.lastID
}

// Remove unsubscribes id. It returns false when id is not subscribed, which
// is normal for handles that were already removed.
func (e *DrawEvent) Remove(id DelegateID) bool {
	for i, s := range e.subs {
		if s.id != id {
			continue
		}
		s.removed = true
		// Copy instead of shifting in place: a running Broadcast still
		// iterates the old slice.
		subs := make([]*subscriber, 0, len(e.subs)-1)
		subs = append(subs, e.subs[:i]...)
		e.subs = append(subs, e.subs[i+1:]...)
		return true
	}
	return false
}

// Contains reports whether id is subscribed.
func (e *DrawEvent) Contains(id DelegateID) bool {
	for _, s := range e.subs {
		if s.id == id {
			return true
		}
	}
	return false
}

// Len returns the number of subscribers.
func (e *DrawEvent) Len() int {
	return len(e.subs)
}

// Clear removes all subscribers.
func (e *DrawEvent) Clear() {
	for _, s := range e.subs {
		s.removed = true
	}
	e.subs = nil
}

// Broadcast calls every subscriber in subscription order. Subscribers added
// during the broadcast run from the next broadcast; subscribers removed
// during it are skipped.
func (e *DrawEvent) Broadcast(f *Frame) {
	subs := e.subs
	for _, s := range subs {
		if s.removed {
			continue
		}
		s.fn(f)
	}
}
