// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

//go:build windows

package ebimgui

import (
	"fmt"
	"path/filepath"
	"syscall"
)

// doInitBridge loads the bridge DLL from baseDir, falling back to the
// standard DLL search order.
func doInitBridge(baseDir string) error {
	name := bridgeLibName()
	local, err := filepath.Abs(filepath.Join(baseDir, name))
	if err != nil {
		local = filepath.Join(baseDir, name)
	}
	lib, err := syscall.LoadLibrary(local)
	if err != nil {
		var fallbackErr error
		if lib, fallbackErr = syscall.LoadLibrary(name); fallbackErr != nil {
			return fmt.Errorf("load %s from %s: %w", name, local, err)
		}
	}
	return resolveAllSymbols(uintptr(lib))
}

func getSymbolAddr(handle uintptr, name string) (uintptr, error) {
	sym, err := syscall.GetProcAddress(syscall.Handle(handle), name)
	if err != nil {
		return 0, err
	}
	if sym == 0 {
		return 0, fmt.Errorf("symbol %q not found in %s", name, bridgeLibName())
	}
	return sym, nil
}

func bridgeLibName() string {
	return "imgui_bridge.dll"
}
