// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package ebimgui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Mouse buttons as the GUI engine numbers them.
const (
	MouseButtonLeft   = 0
	MouseButtonRight  = 1
	MouseButtonMiddle = 2
)

// Key modifier bits (ImGuiMod_*).
const (
	KeyModCtrl  = 1 << 12
	KeyModShift = 1 << 13
	KeyModAlt   = 1 << 14
	KeyModSuper = 1 << 15
)

// GUIKey is a key code of the GUI engine (ImGuiKey).
type GUIKey int32

// KeyEvent is a key transition.
type KeyEvent struct {
	Key  GUIKey
	Down bool
}

// InputEvents is the input gathered for one frame.
type InputEvents struct {
	MouseX, MouseY float32
	MouseDown      [3]bool
	WheelX, WheelY float32
	Mods           int32
	Keys           []KeyEvent
	Chars          []rune
}

// Reset clears the events for reuse.
func (ev *InputEvents) Reset() {
	keys, chars := ev.Keys[:0], ev.Chars[:0]
	*ev = InputEvents{Keys: keys, Chars: chars}
}

// InputSource fills an InputEvents every frame in which input mode is on.
type InputSource interface {
	Poll(ev *InputEvents)
}

// ebitenInput reads input from ebiten. Only valid on the game loop goroutine.
type ebitenInput struct {
	justPressed  []ebiten.Key
	justReleased []ebiten.Key
}

func (in *ebitenInput) Poll(ev *InputEvents) {
	ev.Reset()

	mx, my := ebiten.CursorPosition()
	ev.MouseX, ev.MouseY = float32(mx), float32(my)
	ev.MouseDown[MouseButtonLeft] = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	ev.MouseDown[MouseButtonRight] = ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	ev.MouseDown[MouseButtonMiddle] = ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)

	wx, wy := ebiten.Wheel()
	ev.WheelX, ev.WheelY = float32(wx), float32(wy)

	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		ev.Mods |= KeyModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		ev.Mods |= KeyModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		ev.Mods |= KeyModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		ev.Mods |= KeyModSuper
	}

	in.justPressed = inpututil.AppendJustPressedKeys(in.justPressed[:0])
	for _, key := range in.justPressed {
		if k := ebitenKeyToGUIKey(key); k != GUIKeyNone {
			ev.Keys = append(ev.Keys, KeyEvent{Key: k, Down: true})
		}
	}
	in.justReleased = inpututil.AppendJustReleasedKeys(in.justReleased[:0])
	for _, key := range in.justReleased {
		if k := ebitenKeyToGUIKey(key); k != GUIKeyNone {
			ev.Keys = append(ev.Keys, KeyEvent{Key: k, Down: false})
		}
	}
	// Character input from the OS text input system (handles shift, layout
	// and IME).
	ev.Chars = ebiten.AppendInputChars(ev.Chars)
}

// GUI engine key codes (ImGuiKey, named keys start at 512).
const (
	GUIKeyNone       GUIKey = 0
	GUIKeyTab        GUIKey = 512
	GUIKeyLeftArrow  GUIKey = 513
	GUIKeyRightArrow GUIKey = 514
	GUIKeyUpArrow    GUIKey = 515
	GUIKeyDownArrow  GUIKey = 516
	GUIKeyPageUp     GUIKey = 517
	GUIKeyPageDown   GUIKey = 518
	GUIKeyHome       GUIKey = 519
	GUIKeyEnd        GUIKey = 520
	GUIKeyInsert     GUIKey = 521
	GUIKeyDelete     GUIKey = 522
	GUIKeyBackspace  GUIKey = 523
	GUIKeySpace      GUIKey = 524
	GUIKeyEnter      GUIKey = 525
	GUIKeyEscape     GUIKey = 526
	GUIKeyLeftCtrl   GUIKey = 527
	GUIKeyLeftShift  GUIKey = 528
	GUIKeyLeftAlt    GUIKey = 529
	GUIKeyLeftSuper  GUIKey = 530
	GUIKeyRightCtrl  GUIKey = 531
	GUIKeyRightShift GUIKey = 532
	GUIKeyRightAlt   GUIKey = 533
	GUIKeyRightSuper GUIKey = 534
	GUIKeyMenu       GUIKey = 535
	GUIKey0          GUIKey = 536
	GUIKeyA          GUIKey = 546
	GUIKeyF1         GUIKey = 572
)

func ebitenKeyToGUIKey(key ebiten.Key) GUIKey {
	switch key {
	// Editing keys
	case ebiten.KeyTab:
		return GUIKeyTab
	case ebiten.KeyBackspace:
		return GUIKeyBackspace
	case ebiten.KeyEnter, ebiten.KeyNumpadEnter:
		return GUIKeyEnter
	case ebiten.KeyEscape:
		return GUIKeyEscape
	case ebiten.KeySpace:
		return GUIKeySpace
	case ebiten.KeyDelete:
		return GUIKeyDelete
	case ebiten.KeyInsert:
		return GUIKeyInsert

	// Navigation
	case ebiten.KeyHome:
		return GUIKeyHome
	case ebiten.KeyEnd:
		return GUIKeyEnd
	case ebiten.KeyPageUp:
		return GUIKeyPageUp
	case ebiten.KeyPageDown:
		return GUIKeyPageDown
	case ebiten.KeyArrowLeft:
		return GUIKeyLeftArrow
	case ebiten.KeyArrowUp:
		return GUIKeyUpArrow
	case ebiten.KeyArrowRight:
		return GUIKeyRightArrow
	case ebiten.KeyArrowDown:
		return GUIKeyDownArrow

	// Modifiers
	case ebiten.KeyControlLeft:
		return GUIKeyLeftCtrl
	case ebiten.KeyControlRight:
		return GUIKeyRightCtrl
	case ebiten.KeyShiftLeft:
		return GUIKeyLeftShift
	case ebiten.KeyShiftRight:
		return GUIKeyRightShift
	case ebiten.KeyAltLeft:
		return GUIKeyLeftAlt
	case ebiten.KeyAltRight:
		return GUIKeyRightAlt
	case ebiten.KeyMetaLeft:
		return GUIKeyLeftSuper
	case ebiten.KeyMetaRight:
		return GUIKeyRightSuper
	case ebiten.KeyContextMenu:
		return GUIKeyMenu

	// Function keys
	case ebiten.KeyF1:
		return GUIKeyF1
	case ebiten.KeyF2:
		return GUIKeyF1 + 1
	case ebiten.KeyF3:
		return GUIKeyF1 + 2
	case ebiten.KeyF4:
		return GUIKeyF1 + 3
	case ebiten.KeyF5:
		return GUIKeyF1 + 4
	case ebiten.KeyF6:
		return GUIKeyF1 + 5
	case ebiten.KeyF7:
		return GUIKeyF1 + 6
	case ebiten.KeyF8:
		return GUIKeyF1 + 7
	case ebiten.KeyF9:
		return GUIKeyF1 + 8
	case ebiten.KeyF10:
		return GUIKeyF1 + 9
	case ebiten.KeyF11:
		return GUIKeyF1 + 10
	case ebiten.KeyF12:
		return GUIKeyF1 + 11

	default:
		if key >= ebiten.KeyDigit0 && key <= ebiten.KeyDigit9 {
			return GUIKey0 + GUIKey(key-ebiten.KeyDigit0)
		}
		if key >= ebiten.KeyA && key <= ebiten.KeyZ {
			return GUIKeyA + GUIKey(key-ebiten.KeyA)
		}
		return GUIKeyNone
	}
}
