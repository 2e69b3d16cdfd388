// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

// Package ebimgui draws Dear ImGui interfaces inside Ebitengine games.
//
// Every game world gets its own GUI context, so windows, focus and widget
// state never leak between worlds. Code that wants to draw subscribes a
// callback; the module calls it once per frame inside the right context.
//
// Basic usage:
//
//	import "github.com/YindSoft/ebiten-imgui-module"
//
//	if err := ebimgui.Startup(&ebimgui.Options{ConfigPath: "imgui.toml"}); err != nil { ... }
//	defer ebimgui.Shutdown()
//
//	// Draw into the current world's context:
//	h := ebimgui.AddWorldDelegate(func(f *ebimgui.Frame) {
//	    if f.Begin("Stats") {
//	        f.Text(fmt.Sprintf("hp: %d", hp))
//	    }
//	    f.End()
//	})
//	defer ebimgui.RemoveDelegate(h)
//
//	// Draw into every context (debug overlays):
//	ebimgui.AddMultiContextDelegate(drawFPS)
//
//	// In Ebiten Update():
//	err := ebimgui.Get().Update(ebimgui.WorldContext(world))
//
//	// In Ebiten Draw(), after the game:
//	ebimgui.Get().Draw(screen, ebimgui.WorldContext(world))
//
// Textures:
//
// Images are shown in the GUI by name. Register them with [RegisterTexture]
// or load a whole directory with [RegisterTexturesFS], then draw them with
// [Frame.Image]:
//
//	icon := ebimgui.RegisterTexture("Icon", img, false)
//	f.Image(icon, 32, 32)
//
// A [TextureHandle] stays safe to use after its texture is released: drawing
// it does nothing and [TextureHandle.HasValidEntry] reports false.
//
// Input:
//
// Input is routed to the GUI only in input mode, toggled with
// [ToggleInputMode], the ImGui.SwitchInputMode console command or the
// configured hotkey. While [Module.WantsInput] is true the game should
// ignore the mouse and keyboard.
//
// Requirements: the imgui_bridge shared library (imgui_bridge.dll on
// Windows, libimgui_bridge.so on Linux, libimgui_bridge.dylib on macOS) must
// be present next to the executable or in the directory set by
// [BridgeConfig.BaseDir].
package ebimgui
