// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package ebimgui

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// renderer draws GUI draw data onto an ebiten image. Texture ids in draw
// commands are resolved through the texture registry; commands whose texture
// has been released are skipped.
type renderer struct {
	textures *TextureRegistry[*ebiten.Image]
	log      *zap.Logger

	vertices []ebiten.Vertex
	indices  []uint32
	opts     ebiten.DrawTrianglesOptions

	missing map[TextureID]bool
}

func newRenderer(textures *TextureRegistry[*ebiten.Image], log *zap.Logger) *renderer {
	r := &renderer{
		textures: textures,
		log:      log,
		missing:  make(map[TextureID]bool),
	}
	r.opts.Filter = ebiten.FilterLinear
	return r
}

func (r *renderer) draw(screen *ebiten.Image, dd *DrawData) {
	if dd.Empty() {
		return
	}
	bounds := screen.Bounds()
	for _, cmd := range dd.Commands {
		tex, ok := r.textures.GetTexture(ToTextureIndex(cmd.TextureID))
		if !ok || tex == nil {
			if !r.missing[cmd.TextureID] {
				r.missing[cmd.TextureID] = true
				r.log.Debug("draw command references unknown texture", zap.Uint64("texture_id", uint64(cmd.TextureID)))
			}
			continue
		}
		clip := clipRect(cmd.ClipRect, bounds)
		if clip.Empty() {
			continue
		}
		r.vertices, r.indices = appendBatch(r.vertices[:0], r.indices[:0], dd, cmd, tex.Bounds())
		if len(r.indices) == 0 {
			continue
		}
		dst := screen.SubImage(clip).(*ebiten.Image)
		dst.DrawTriangles32(r.vertices, r.indices, tex, &r.opts)
	}
}

// appendBatch converts the vertices referenced by cmd into ebiten vertices.
// UVs are scaled to the texture's pixel bounds and indices are rebased onto
// the copied vertex range.
func appendBatch(vertices []ebiten.Vertex, indices []uint32, dd *DrawData, cmd DrawCmd, texBounds image.Rectangle) ([]ebiten.Vertex, []uint32) {
	start, end := int(cmd.IdxOffset), int(cmd.IdxOffset)+int(cmd.ElemCount)
	if cmd.ElemCount == 0 || start < 0 || end > len(dd.Indices) {
		return vertices, indices
	}
	idx := dd.Indices[start:end]

	lo, hi := uint32(math.MaxUint32), uint32(0)
	for _, i := range idx {
		lo = min(lo, i)
		hi = max(hi, i)
	}
	if int(hi) >= len(dd.Vertices) {
		return vertices, indices
	}

	tw, th := float32(texBounds.Dx()), float32(texBounds.Dy())
	tx, ty := float32(texBounds.Min.X), float32(texBounds.Min.Y)
	for _, v := range dd.Vertices[lo : hi+1] {
		vertices = append(vertices, ebiten.Vertex{
			DstX:   v.X,
			DstY:   v.Y,
			SrcX:   tx + v.U*tw,
			SrcY:   ty + v.V*th,
			ColorR: float32(v.Col&0xff) / 0xff,
			ColorG: float32(v.Col>>8&0xff) / 0xff,
			ColorB: float32(v.Col>>16&0xff) / 0xff,
			ColorA: float32(v.Col>>24&0xff) / 0xff,
		})
	}
	for _, i := range idx {
		indices = append(indices, i-lo)
	}
	return vertices, indices
}

// clipRect converts a GUI clip rectangle (x1, y1, x2, y2) to pixels inside
// bounds.
func clipRect(r [4]float32, bounds image.Rectangle) image.Rectangle {
	rect := image.Rect(
		int(math.Floor(float64(r[0]))),
		int(math.Floor(float64(r[1]))),
		int(math.Ceil(float64(r[2]))),
		int(math.Ceil(float64(r[3]))),
	)
	return rect.Intersect(bounds)
}
