// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

// Example with two worlds: each one draws its own window in its own GUI
// context, and a multi-context overlay is drawn in both. Tab switches the
// active world, F1 toggles input mode and F2 the demo window.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"math"
	"os"

	ebimgui "github.com/YindSoft/ebiten-imgui-module"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"
)

const (
	screenWidth  = 800
	screenHeight = 600
)

type level struct {
	name   string
	color  color.RGBA
	clicks int
}

func (l *level) NetMode() ebimgui.NetMode { return ebimgui.NetModeStandalone }

type Game struct {
	worlds  *ebimgui.Worlds
	levels  []*level
	active  int
	counter int
	log     *zap.Logger
}

func newGame(configPath string) (*Game, error) {
	g := &Game{
		worlds: &ebimgui.Worlds{},
		levels: []*level{
			{name: "Meadow", color: color.RGBA{40, 90, 50, 255}},
			{name: "Cave", color: color.RGBA{50, 40, 60, 255}},
		},
	}
	for _, l := range g.levels {
		g.worlds.Add(l)
	}

	opts := &ebimgui.Options{Host: g.worlds}
	if configPath != "" {
		opts.ConfigPath = configPath
	} else {
		cfg := ebimgui.DefaultConfig()
		cfg.Input.ToggleKey = "F1"
		cfg.Input.DemoKey = "F2"
		opts.Config = cfg
	}
	if err := ebimgui.Startup(opts); err != nil {
		return nil, err
	}
	g.log = ebimgui.Get().Logger().Named("example")

	// World delegates go to the world in the viewport at registration time.
	for _, l := range g.levels {
		g.worlds.SetViewport(l)
		ebimgui.AddWorldDelegate(l.draw)
	}
	g.worlds.SetViewport(g.levels[g.active])

	ebimgui.AddMultiContextDelegate(func(f *ebimgui.Frame) {
		if f.Begin("Overlay") {
			f.Text(fmt.Sprintf("context %d, frame %d", f.Index, f.Number))
			f.Text(fmt.Sprintf("input mode: %v", f.InputActive))
		}
		f.End()
	})
	return g, nil
}

func (l *level) draw(f *ebimgui.Frame) {
	if f.Begin(l.name) {
		f.Text(fmt.Sprintf("Welcome to %s", l.name))
		if f.Button("Click") {
			l.clicks++
		}
		f.Text(fmt.Sprintf("clicks: %d", l.clicks))
	}
	f.End()
}

func (g *Game) current() *level {
	return g.levels[g.active]
}

func (g *Game) Update() error {
	g.counter++

	m := ebimgui.Get()
	if !m.WantsInput() && inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.active = (g.active + 1) % len(g.levels)
		g.worlds.SetViewport(g.current())
		g.log.Info("world switched", zap.String("world", g.current().name))
	}
	return m.Update(ebimgui.WorldContext(g.current()))
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.current().color)

	t := float64(g.counter) / 60.0
	bx := float32(300 + 120*math.Sin(t*0.5))
	by := float32(300 + 80*math.Cos(t*0.7))
	vector.DrawFilledRect(screen, bx, by, 80, 80, color.RGBA{200, 180, 0, 255}, true)

	ebimgui.Get().Draw(screen, ebimgui.WorldContext(g.current()))

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.1f  TPS: %.1f  world: %s",
		ebiten.ActualFPS(), ebiten.ActualTPS(), g.current().name), 0, screenHeight-16)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	configPath := flag.String("config", "", "TOML or YAML config file")
	flag.Parse()

	game, err := newGame(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init: %v\n", err)
		os.Exit(1)
	}
	defer ebimgui.Shutdown()

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("ebimgui - Ebiten + Dear ImGui demo")

	if err := ebiten.RunGame(game); err != nil {
		game.log.Error("run", zap.Error(err))
	}
}
