// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package ebimgui

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
)

func init() {
	// ImGui contexts are not thread safe; all bridge calls happen on the
	// thread ebiten runs the game loop on.
	runtime.LockOSThread()
}

var (
	igInit            func(baseDir string, debug int32) int32
	igShutdown        func()
	igCreateContext   func() int32
	igDestroyContext  func(ctx int32)
	igFontAtlasPixels func() uintptr
	igFontAtlasWidth  func() int32
	igFontAtlasHeight func() int32
	igSetFontTexture  func(texID uint64)
	igNewFrame        func(ctx int32, width, height, deltaTime float32)
	igAddMousePos     func(ctx int32, x, y float32)
	igAddMouseButton  func(ctx int32, button, down int32)
	igAddMouseWheel   func(ctx int32, x, y float32)
	igAddKey          func(ctx int32, key, down int32)
	igSetMods         func(ctx int32, mods int32)
	igAddChar         func(ctx int32, c uint32)
	igWantCapture     func(ctx int32) int32
	igShowDemo        func(ctx int32)
	igBegin           func(ctx int32, name string) int32
	igEnd             func(ctx int32)
	igText            func(ctx int32, text string)
	igButton          func(ctx int32, label string) int32
	igImage           func(ctx int32, texID uint64, width, height float32)
	igRender          func(ctx int32)
	igDrawCounts      func(ctx int32, out uintptr)
	igDrawCopy        func(ctx int32, vtx, idx, cmd uintptr)
)

const (
	captureMouseBit    = 1
	captureKeyboardBit = 2
)

var (
	bridgeOnce sync.Once
	bridgeErr  error

	// igRefs counts live native backends. ig_init runs when it leaves zero
	// and ig_shutdown when it returns to zero.
	igMu   sync.Mutex
	igRefs int
)

func initBridge(baseDir string) error {
	bridgeOnce.Do(func() {
		bridgeErr = doInitBridge(baseDir)
	})
	return bridgeErr
}

// acquireIG initialises the library for a new backend. Must be called after
// initBridge.
func acquireIG(baseDir string, debug bool) error {
	igMu.Lock()
	defer igMu.Unlock()
	if igRefs == 0 {
		if rc := igInit(baseDir, boolToInt32(debug)); rc != 0 {
			return fmt.Errorf("ig_init failed with code %d", rc)
		}
	}
	igRefs++
	return nil
}

func releaseIG() {
	igMu.Lock()
	defer igMu.Unlock()
	if igRefs == 0 {
		return
	}
	igRefs--
	if igRefs == 0 {
		igShutdown()
	}
}

func resolveAllSymbols(handle uintptr) error {
	for _, reg := range []struct {
		fptr any
		name string
	}{
		{&igInit, "ig_init"},
		{&igShutdown, "ig_shutdown"},
		{&igCreateContext, "ig_create_context"},
		{&igDestroyContext, "ig_destroy_context"},
		{&igFontAtlasPixels, "ig_font_atlas_pixels"},
		{&igFontAtlasWidth, "ig_font_atlas_width"},
		{&igFontAtlasHeight, "ig_font_atlas_height"},
		{&igSetFontTexture, "ig_set_font_texture"},
		{&igNewFrame, "ig_new_frame"},
		{&igAddMousePos, "ig_add_mouse_pos"},
		{&igAddMouseButton, "ig_add_mouse_button"},
		{&igAddMouseWheel, "ig_add_mouse_wheel"},
		{&igAddKey, "ig_add_key"},
		{&igSetMods, "ig_set_mods"},
		{&igAddChar, "ig_add_char"},
		{&igWantCapture, "ig_want_capture"},
		{&igShowDemo, "ig_show_demo"},
		{&igBegin, "ig_begin"},
		{&igEnd, "ig_end"},
		{&igText, "ig_text"},
		{&igButton, "ig_button"},
		{&igImage, "ig_image"},
		{&igRender, "ig_render"},
		{&igDrawCounts, "ig_draw_counts"},
		{&igDrawCopy, "ig_draw_copy"},
	} {
		sym, err := getSymbolAddr(handle, reg.name)
		if err != nil {
			return fmt.Errorf("%s: %w (rebuild %s)", reg.name, err, bridgeLibName())
		}
		purego.RegisterFunc(reg.fptr, sym)
	}
	return nil
}

// resolveBaseDir picks the directory holding the bridge library: the
// configured one, else the working directory, else the executable's.
func resolveBaseDir(cfg BridgeConfig) string {
	if cfg.BaseDir != "" {
		return cfg.BaseDir
	}
	baseDir, _ := os.Getwd()
	if _, err := os.Stat(filepath.Join(baseDir, bridgeLibName())); err != nil {
		if exe, _ := os.Executable(); exe != "" {
			baseDir = filepath.Dir(exe)
		}
	}
	return baseDir
}

// nativeBackend drives Dear ImGui through the imgui_bridge library.
type nativeBackend struct {
	drawData map[NativeContext]*DrawData
	released bool
}

// NewNativeBackend loads the imgui_bridge library and initialises it.
func NewNativeBackend(cfg BridgeConfig) (Backend, error) {
	baseDir := resolveBaseDir(cfg)
	if err := initBridge(baseDir); err != nil {
		return nil, fmt.Errorf("bridge: %w", err)
	}
	if err := acquireIG(baseDir, cfg.Debug); err != nil {
		return nil, err
	}
	return &nativeBackend{drawData: make(map[NativeContext]*DrawData)}, nil
}

func (b *nativeBackend) CreateContext() (NativeContext, error) {
	ctx := igCreateContext()
	if ctx < 0 {
		return 0, fmt.Errorf("ig_create_context failed with code %d", ctx)
	}
	return NativeContext(ctx), nil
}

func (b *nativeBackend) DestroyContext(c NativeContext) {
	delete(b.drawData, c)
	igDestroyContext(int32(c))
}

func (b *nativeBackend) FontAtlas() ([]byte, int, int) {
	ptr := igFontAtlasPixels()
	w, h := int(igFontAtlasWidth()), int(igFontAtlasHeight())
	if ptr == 0 || w <= 0 || h <= 0 {
		return nil, 0, 0
	}
	src := unsafe.Slice((*byte)(unsafe.Pointer(ptr)), w*h*4)
	pixels := make([]byte, len(src))
	copy(pixels, src)
	return pixels, w, h
}

func (b *nativeBackend) SetFontTexture(id TextureID) {
	igSetFontTexture(uint64(id))
}

func (b *nativeBackend) NewFrame(c NativeContext, params FrameParams) {
	igNewFrame(int32(c), params.Width, params.Height, params.DeltaTime)
}

func (b *nativeBackend) FeedInput(c NativeContext, ev *InputEvents) {
	ctx := int32(c)
	igSetMods(ctx, ev.Mods)
	igAddMousePos(ctx, ev.MouseX, ev.MouseY)
	for button, down := range ev.MouseDown {
		igAddMouseButton(ctx, int32(button), boolToInt32(down))
	}
	if ev.WheelX != 0 || ev.WheelY != 0 {
		igAddMouseWheel(ctx, ev.WheelX, ev.WheelY)
	}
	for _, k := range ev.Keys {
		igAddKey(ctx, int32(k.Key), boolToInt32(k.Down))
	}
	for _, r := range ev.Chars {
		igAddChar(ctx, uint32(r))
	}
}

func (b *nativeBackend) ShowDemoWindow(c NativeContext) {
	igShowDemo(int32(c))
}

func (b *nativeBackend) Render(c NativeContext) (*DrawData, Capture) {
	ctx := int32(c)
	igRender(ctx)

	var counts [3]int32
	igDrawCounts(ctx, uintptr(unsafe.Pointer(&counts[0])))

	dd := b.drawData[c]
	if dd == nil {
		dd = &DrawData{}
		b.drawData[c] = dd
	}
	dd.Vertices = resize(dd.Vertices, int(counts[0]))
	dd.Indices = resize(dd.Indices, int(counts[1]))
	dd.Commands = resize(dd.Commands, int(counts[2]))
	if len(dd.Commands) > 0 {
		igDrawCopy(ctx,
			sliceAddr(dd.Vertices),
			sliceAddr(dd.Indices),
			sliceAddr(dd.Commands))
	}

	want := igWantCapture(ctx)
	return dd, Capture{
		Mouse:    want&captureMouseBit != 0,
		Keyboard: want&captureKeyboardBit != 0,
	}
}

func (b *nativeBackend) Begin(c NativeContext, name string) bool {
	return igBegin(int32(c), name) != 0
}

func (b *nativeBackend) End(c NativeContext) {
	igEnd(int32(c))
}

func (b *nativeBackend) Text(c NativeContext, text string) {
	igText(int32(c), text)
}

func (b *nativeBackend) Button(c NativeContext, label string) bool {
	return igButton(int32(c), label) != 0
}

func (b *nativeBackend) Image(c NativeContext, id TextureID, width, height float32) {
	igImage(int32(c), uint64(id), width, height)
}

// Shutdown releases the backend. The library shuts down with the last
// backend and is initialised again by the next NewNativeBackend.
func (b *nativeBackend) Shutdown() {
	if b.released {
		return
	}
	b.released = true
	b.drawData = nil
	releaseIG()
}

func resize[T any](s []T, n int) []T {
	if cap(s) < n {
		return make([]T, n)
	}
	return s[:n]
}

func sliceAddr[T any](s []T) uintptr {
	if len(s) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&s[0]))
}

func boolToInt32(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
