// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

// Example of RegisterTexturesFS: loads GUI textures from embed.FS (no files
// on disk) and shows them in a standalone context.
package main

import (
	"embed"
	"fmt"
	"os"

	ebimgui "github.com/YindSoft/ebiten-imgui-module"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"go.uber.org/zap"
)

//go:embed textures
var textureFiles embed.FS

const (
	screenWidth  = 800
	screenHeight = 600
)

type Game struct {
	icon    ebimgui.TextureHandle
	checker ebimgui.TextureHandle
	log     *zap.Logger
}

func newGame() (*Game, error) {
	cfg := ebimgui.DefaultConfig()
	cfg.Bridge.Debug = true
	cfg.Input.ToggleKey = "F1"
	if err := ebimgui.Startup(&ebimgui.Options{Config: cfg}); err != nil {
		return nil, err
	}

	m := ebimgui.Get()
	if _, err := m.RegisterTexturesFS(textureFiles, "textures"); err != nil {
		return nil, fmt.Errorf("RegisterTexturesFS: %w", err)
	}

	g := &Game{
		icon:    ebimgui.FindTexture("Icon"),
		checker: ebimgui.FindTexture("checker"), // names are case-insensitive
		log:     m.Logger().Named("example"),
	}
	ebimgui.AddWorldDelegate(g.drawTextures)
	return g, nil
}

func (g *Game) drawTextures(f *ebimgui.Frame) {
	if f.Begin("Textures") {
		f.Image(g.icon, 64, 64)
		f.Image(g.checker, 64, 64)
		if f.Button("Release checker") {
			ebimgui.ReleaseTexture(g.checker)
			g.log.Info("checker released", zap.Bool("valid", g.checker.HasValidEntry()))
		}
	}
	f.End()
}

func (g *Game) Update() error {
	return ebimgui.Get().Update(ebimgui.StandaloneContext())
}

func (g *Game) Draw(screen *ebiten.Image) {
	m := ebimgui.Get()
	m.Draw(screen, ebimgui.StandaloneContext())
	ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f  textures: %d", ebiten.ActualFPS(), m.Textures()))
}

func (g *Game) Layout(_, _ int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	game, err := newGame()
	if err != nil {
		fmt.Fprintf(os.Stderr, "init: %v\n", err)
		os.Exit(1)
	}
	defer ebimgui.Shutdown()

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("ebimgui - embed.FS textures example")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)

	if err := ebiten.RunGame(game); err != nil {
		game.log.Error("run", zap.Error(err))
	}
}
