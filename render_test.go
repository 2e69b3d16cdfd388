// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package ebimgui

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendBatchRebasesIndices(t *testing.T) {
	dd := &DrawData{
		Vertices: []DrawVert{
			{X: 0, Y: 0},
			{X: 10, Y: 0, U: 1, V: 0, Col: 0xff0000ff},
			{X: 10, Y: 10, U: 1, V: 1, Col: 0x80ff0000},
			{X: 0, Y: 10, U: 0, V: 1},
		},
		Indices: []uint32{0, 1, 2, 1, 2, 3},
	}
	cmd := DrawCmd{IdxOffset: 3, ElemCount: 3}

	vertices, indices := appendBatch(nil, nil, dd, cmd, image.Rect(0, 0, 64, 32))
	require.Len(t, vertices, 3)
	assert.Equal(t, []uint32{0, 1, 2}, indices)

	v := vertices[0]
	assert.Equal(t, float32(10), v.DstX)
	assert.Equal(t, float32(64), v.SrcX)
	assert.Equal(t, float32(0), v.SrcY)
	assert.Equal(t, float32(1), v.ColorR)
	assert.Equal(t, float32(0), v.ColorB)
	assert.Equal(t, float32(1), v.ColorA)

	v = vertices[1]
	assert.Equal(t, float32(32), v.SrcY)
	assert.Equal(t, float32(1), v.ColorB)
	assert.InDelta(t, 0.5, v.ColorA, 0.01)
}

func TestAppendBatchOffsetsSubImage(t *testing.T) {
	dd := &DrawData{
		Vertices: []DrawVert{{U: 0.5, V: 0.5}},
		Indices:  []uint32{0},
	}
	vertices, _ := appendBatch(nil, nil, dd, DrawCmd{ElemCount: 1}, image.Rect(100, 200, 110, 220))
	require.Len(t, vertices, 1)
	assert.Equal(t, float32(105), vertices[0].SrcX)
	assert.Equal(t, float32(210), vertices[0].SrcY)
}

func TestAppendBatchRejectsBadRanges(t *testing.T) {
	dd := &DrawData{
		Vertices: []DrawVert{{}, {}},
		Indices:  []uint32{0, 1, 5},
	}
	bounds := image.Rect(0, 0, 1, 1)

	v, i := appendBatch(nil, nil, dd, DrawCmd{IdxOffset: 2, ElemCount: 4}, bounds)
	assert.Empty(t, v)
	assert.Empty(t, i)

	v, i = appendBatch(nil, nil, dd, DrawCmd{IdxOffset: 0, ElemCount: 3}, bounds)
	assert.Empty(t, v, "index past the vertex buffer")
	assert.Empty(t, i)

	v, i = appendBatch(nil, nil, dd, DrawCmd{}, bounds)
	assert.Empty(t, v)
	assert.Empty(t, i)
}

func TestClipRect(t *testing.T) {
	bounds := image.Rect(0, 0, 100, 50)

	assert.Equal(t, image.Rect(1, 2, 11, 13), clipRect([4]float32{1.5, 2.2, 10.1, 12.9}, bounds))
	assert.Equal(t, image.Rect(0, 0, 100, 50), clipRect([4]float32{-10, -10, 500, 500}, bounds))
	assert.True(t, clipRect([4]float32{200, 200, 300, 300}, bounds).Empty())
}

func TestDrawDataEmpty(t *testing.T) {
	var dd *DrawData
	assert.True(t, dd.Empty())
	assert.True(t, (&DrawData{}).Empty())
	assert.False(t, (&DrawData{Commands: []DrawCmd{{}}}).Empty())
}
