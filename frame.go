// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package ebimgui

// Frame is handed to draw callbacks. It is only valid during the callback.
type Frame struct {
	Index       ContextIndex
	Number      uint64
	DeltaTime   float32
	Width       float32
	Height      float32
	InputActive bool

	backend  Backend
	native   NativeContext
	hasGUI   bool
	textures textureNamer
}

// HasGUI reports whether the frame is backed by a live GUI context. Widget
// calls on a frame without one do nothing.
func (f *Frame) HasGUI() bool {
	return f.hasGUI
}

// Begin opens a window. Call End whatever Begin returns.
func (f *Frame) Begin(name string) bool {
	if !f.hasGUI {
		return false
	}
	return f.backend.Begin(f.native, name)
}

// End closes the window opened by Begin.
func (f *Frame) End() {
	if f.hasGUI {
		f.backend.End(f.native)
	}
}

// Text draws a line of text.
func (f *Frame) Text(text string) {
	if f.hasGUI {
		f.backend.Text(f.native, text)
	}
}

// Button draws a button and reports whether it was clicked.
func (f *Frame) Button(label string) bool {
	if !f.hasGUI {
		return false
	}
	return f.backend.Button(f.native, label)
}

// Image draws a registered texture. Handles whose texture has been released
// are skipped.
func (f *Frame) Image(h TextureHandle, width, height float32) {
	if !f.hasGUI || !handleMatches(h, f.textures) {
		return
	}
	f.backend.Image(f.native, h.ID, width, height)
}
