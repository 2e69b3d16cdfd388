// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

//go:build linux || darwin

package ebimgui

import (
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/ebitengine/purego"
)

// doInitBridge opens the bridge from baseDir, falling back to the dynamic
// loader's search path (LD_LIBRARY_PATH, DYLD_LIBRARY_PATH, system dirs).
func doInitBridge(baseDir string) error {
	name := bridgeLibName()
	local, err := filepath.Abs(filepath.Join(baseDir, name))
	if err != nil {
		local = filepath.Join(baseDir, name)
	}
	handle, err := purego.Dlopen(local, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		var fallbackErr error
		if handle, fallbackErr = purego.Dlopen(name, purego.RTLD_NOW|purego.RTLD_GLOBAL); fallbackErr != nil {
			return fmt.Errorf("load %s from %s: %w", name, local, err)
		}
	}
	return resolveAllSymbols(handle)
}

func getSymbolAddr(handle uintptr, name string) (uintptr, error) {
	return purego.Dlsym(handle, name)
}

func bridgeLibName() string {
	if runtime.GOOS == "darwin" {
		return "libimgui_bridge.dylib"
	}
	return "libimgui_bridge.so"
}
