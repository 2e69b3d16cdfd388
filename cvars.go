// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package ebimgui

import "errors"

// Console is the process-wide console.
var Console = NewConsoleManager()

// Console names.
const (
	CVarInputEnabled       = "ImGui.InputEnabled"
	CVarShowDemo           = "ImGui.ShowDemo"
	CommandSwitchInputMode = "ImGui.SwitchInputMode"
	CommandToggleDemo      = "ImGui.ToggleDemo"
)

var (
	// InputEnabled routes keyboard and mouse input to the GUI when non-zero.
	InputEnabled = Console.RegisterVariable(CVarInputEnabled, 0,
		"Enable or disable ImGui input mode.\n"+
			"0: disabled (default)\n"+
			"1: enabled, input is routed to ImGui and, if captured, hidden from the game")

	// ShowDemo shows the demo window in the active context when non-zero.
	ShowDemo = Console.RegisterVariable(CVarShowDemo, 0,
		"Show the ImGui demo window.\n"+
			"0: hidden (default)\n"+
			"1: visible")
)

var errModuleNotRunning = errors.New("module is not running")

func init() {
	Console.RegisterCommand(CommandSwitchInputMode, "Changes ImGui input mode.", func([]string) error {
		m := runningModule()
		if m == nil {
			return errModuleNotRunning
		}
		m.ToggleInputMode()
		return nil
	})
	Console.RegisterCommand(CommandToggleDemo, "Shows or hides the ImGui demo window.", func([]string) error {
		m := runningModule()
		if m == nil {
			return errModuleNotRunning
		}
		m.ToggleShowDemo()
		return nil
	})
}
