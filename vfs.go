// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package ebimgui

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	// Image decoders for ebitenutil.NewImageFromFileSystem.
	_ "image/jpeg"
	_ "image/png"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"go.uber.org/zap"
)

// textureExts are the file extensions RegisterTexturesFS loads.
var textureExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// RegisterTexturesFS loads every PNG and JPEG image under root in fsys and
// registers it as a texture named after the file without its extension
// ("icons/Icon.png" registers "Icon"). Unlike RegisterTexture, the module owns
// these images and deallocates them when they are released.
//
// Names already registered keep their existing texture. The returned handles
// are in walk order.
//
// Example with embed.FS:
//
//	//go:embed textures
//	var textures embed.FS
//	handles, err := m.RegisterTexturesFS(textures, "textures")
func (m *Module) RegisterTexturesFS(fsys fs.FS, root string) ([]TextureHandle, error) {
	m.checkOpen("RegisterTexturesFS")

	root = path.Clean(strings.TrimLeft(strings.ReplaceAll(root, "\\", "/"), "/"))

	var handles []TextureHandle
	err := fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(path.Ext(p))
		if !textureExts[ext] {
			return nil
		}
		name := Name(strings.TrimSuffix(path.Base(p), path.Ext(p)))
		if existing := m.FindTexture(name); existing.IsValid() {
			handles = append(handles, existing)
			return nil
		}

		img, _, err := ebitenutil.NewImageFromFileSystem(fsys, p)
		if err != nil {
			return fmt.Errorf("loading %s: %w", p, err)
		}
		handles = append(handles, m.registerOwned(name, img))
		return nil
	})
	if err != nil {
		return handles, fmt.Errorf("walking FS: %w", err)
	}
	m.log.Info("textures loaded", zap.String("root", root), zap.Int("count", len(handles)))
	return handles, nil
}

func (m *Module) registerOwned(name Name, img *ebiten.Image) TextureHandle {
	m.owned[img] = struct{}{}
	return m.RegisterTexture(name, img, false)
}

// RegisterTexturesFS loads textures into the running module.
func RegisterTexturesFS(fsys fs.FS, root string) ([]TextureHandle, error) {
	return mustModule("RegisterTexturesFS").RegisterTexturesFS(fsys, root)
}
