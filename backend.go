// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package ebimgui

// NativeContext identifies a GUI context inside a Backend.
type NativeContext int32

// Backend is the immediate-mode GUI engine. The module never looks inside
// it: it creates one context per ContextProxy, feeds it frames and input, and
// collects the resulting draw data.
//
// The default Backend is the native imgui_bridge library (see bridge.go).
type Backend interface {
	CreateContext() (NativeContext, error)
	DestroyContext(c NativeContext)

	// FontAtlas returns the RGBA pixels of the shared font atlas, or nil
	// when the backend draws no text.
	FontAtlas() (pixels []byte, width, height int)
	SetFontTexture(id TextureID)

	NewFrame(c NativeContext, params FrameParams)
	FeedInput(c NativeContext, ev *InputEvents)
	ShowDemoWindow(c NativeContext)
	Render(c NativeContext) (*DrawData, Capture)

	Begin(c NativeContext, name string) bool
	End(c NativeContext)
	Text(c NativeContext, text string)
	Button(c NativeContext, label string) bool
	Image(c NativeContext, id TextureID, width, height float32)

	Shutdown()
}

// FrameParams describes the frame a context is about to build.
type FrameParams struct {
	Frame       uint64
	Width       float32
	Height      float32
	DeltaTime   float32
	ShowDemo    bool
	InputActive bool
}

// Capture reports which input the GUI consumed during the last frame.
type Capture struct {
	Mouse    bool
	Keyboard bool
}

// Any reports whether any input was captured.
func (c Capture) Any() bool {
	return c.Mouse || c.Keyboard
}

// DrawVert matches the GUI engine's vertex layout: position, UV, packed
// ABGR color.
type DrawVert struct {
	X, Y float32
	U, V float32
	Col  uint32
}

// DrawCmd draws ElemCount indices starting at IdxOffset with one texture,
// clipped to ClipRect (x1, y1, x2, y2).
type DrawCmd struct {
	ClipRect  [4]float32
	TextureID TextureID
	IdxOffset uint32
	ElemCount uint32
}

// DrawData is a flattened copy of one frame's draw lists. Indices address
// Vertices directly.
type DrawData struct {
	Vertices []DrawVert
	Indices  []uint32
	Commands []DrawCmd
}

// Empty reports whether there is nothing to draw.
func (d *DrawData) Empty() bool {
	return d == nil || len(d.Commands) == 0
}
