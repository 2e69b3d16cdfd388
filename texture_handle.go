// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package ebimgui

// TextureID is the opaque texture identifier handed to the GUI engine and
// stored in draw commands. Zero means "no texture".
type TextureID uint64

// ToTextureID encodes a registry index as a TextureID. IndexNone maps to 0.
func ToTextureID(index TextureIndex) TextureID {
	if index < 0 {
		return 0
	}
	return TextureID(index) + 1
}

// ToTextureIndex decodes a TextureID. 0 maps to IndexNone.
func ToTextureIndex(id TextureID) TextureIndex {
	if id == 0 || id > TextureID(maxTextureIndex)+1 {
		return IndexNone
	}
	return TextureIndex(id - 1)
}

const maxTextureIndex = 1<<31 - 1

// TextureHandle refers to a texture registered with the module. A handle can
// outlive its texture: HasValidEntry checks that the slot is still live and
// still carries the same name, so a handle to a released texture does not
// suddenly point at whatever reused its slot.
type TextureHandle struct {
	Name Name
	ID   TextureID
}

// IsValid reports whether the handle was ever bound to a texture. It does not
// check the registry; use HasValidEntry for that.
func (h TextureHandle) IsValid() bool {
	return h.ID != 0
}

// Index returns the registry index encoded in the handle.
func (h TextureHandle) Index() TextureIndex {
	return ToTextureIndex(h.ID)
}

// textureNamer is the part of a registry needed to validate handles.
type textureNamer interface {
	HasName(index TextureIndex, name Name) bool
}

func handleMatches(h TextureHandle, textures textureNamer) bool {
	index := ToTextureIndex(h.ID)
	if index == IndexNone || textures == nil {
		return false
	}
	return textures.HasName(index, h.Name)
}
