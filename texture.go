// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package ebimgui

import "fmt"

// TextureIndex is a slot in a TextureRegistry. IndexNone means "no texture".
type TextureIndex int32

// IndexNone marks a missing texture or context.
const IndexNone = -1

type textureEntry[T any] struct {
	name     Name
	key      string // folded name
	resource T
	live     bool
}

// TextureRegistry maps texture names and indices to backing resources.
// Freed slots are reused lowest-first, so an index is only meaningful while
// its entry is live. All lookups of bad or freed indices return "not found".
//
// A registry is owned by a single goroutine.
type TextureRegistry[T any] struct {
	entries []textureEntry[T]
	live    int
	release func(name Name, resource T)
}

// NewTextureRegistry creates an empty registry. release, if non-nil, is
// called with the resource of every entry that gets released.
func NewTextureRegistry[T any](release func(name Name, resource T)) *TextureRegistry[T] {
	return &TextureRegistry[T]{release: release}
}

// CreateTexture registers resource under name and returns its index.
// Without makeUnique an existing live entry with the same name is returned
// as-is and resource is ignored. With makeUnique a new slot is always
// allocated, even when the name is already taken.
func (r *TextureRegistry[T]) CreateTexture(name Name, resource T, makeUnique bool) TextureIndex {
	if name.IsNone() {
		panic("ebimgui: texture name must not be empty")
	}

	key := name.key()
	if !makeUnique {
		if index := r.findKey(key); index != IndexNone {
			return index
		}
	}

	entry := textureEntry[T]{name: name, key: key, resource: resource, live: true}
	r.live++
	for i := range r.entries {
		if !r.entries[i].live {
			r.entries[i] = entry
			return TextureIndex(i)
		}
	}
	r.entries = append(r.entries, entry)
	return TextureIndex(len(r.entries) - 1)
}

// ReleaseTexture frees the slot at index. It does nothing when the index is
// out of range or already free.
func (r *TextureRegistry[T]) ReleaseTexture(index TextureIndex) {
	entry := r.entry(index)
	if entry == nil {
		return
	}

	name, resource := entry.name, entry.resource
	*entry = textureEntry[T]{}
	r.live--

	if r.release != nil {
		r.release(name, resource)
	}
}

// FindTextureIndex returns the lowest live index registered under name, or
// IndexNone.
func (r *TextureRegistry[T]) FindTextureIndex(name Name) TextureIndex {
	if name.IsNone() {
		return IndexNone
	}
	return r.findKey(name.key())
}

func (r *TextureRegistry[T]) findKey(key string) TextureIndex {
	for i := range r.entries {
		if r.entries[i].live && r.entries[i].key == key {
			return TextureIndex(i)
		}
	}
	return IndexNone
}

// GetTextureName returns the name at index, or NameNone for bad or freed
// indices.
func (r *TextureRegistry[T]) GetTextureName(index TextureIndex) Name {
	if entry := r.entry(index); entry != nil {
		return entry.name
	}
	return NameNone
}

// HasName reports whether index is live and registered under name, compared
// case-insensitively.
func (r *TextureRegistry[T]) HasName(index TextureIndex, name Name) bool {
	entry := r.entry(index)
	if entry == nil || name.IsNone() {
		return false
	}
	return entry.name == name || entry.key == name.key()
}

// GetTexture returns the resource at index.
func (r *TextureRegistry[T]) GetTexture(index TextureIndex) (T, bool) {
	if entry := r.entry(index); entry != nil {
		return entry.resource, true
	}
	var zero T
	return zero, false
}

// Len returns the number of live entries.
func (r *TextureRegistry[T]) Len() int {
	return r.live
}

// Clear releases every live entry, highest index first.
func (r *TextureRegistry[T]) Clear() {
	for i := len(r.entries) - 1; i >= 0; i-- {
		r.ReleaseTexture(TextureIndex(i))
	}
	r.entries = nil
}

func (r *TextureRegistry[T]) entry(index TextureIndex) *textureEntry[T] {
	if index < 0 || int(index) >= len(r.entries) {
		return nil
	}
	if e := &r.entries[index]; e.live {
		return e
	}
	return nil
}

func (r *TextureRegistry[T]) String() string {
	return fmt.Sprintf("TextureRegistry{live: %d, slots: %d}", r.live, len(r.entries))
}
