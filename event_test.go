// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package ebimgui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDrawEventBroadcastOrder(t *testing.T) {
	var e DrawEvent
	var got []int
	for i := 1; i <= 3; i++ {
		e.Add(func(*Frame) { got = append(got, i) })
	}

	e.Broadcast(&Frame{})
	assert.Equal(t, []int{1, 2, 3}, got)
	assert.Equal(t, 3, e.Len())
}

func TestDrawEventRemoveIsIdempotent(t *testing.T) {
	var e DrawEvent
	calls := 0
	a := e.Add(func(*Frame) { calls++ })
	b := e.Add(func(*Frame) { calls += 10 })

	assert.True(t, e.Remove(a))
	assert.False(t, e.Remove(a))
	assert.False(t, e.Contains(a))
	assert.True(t, e.Contains(b))

	e.Broadcast(&Frame{})
	assert.Equal(t, 10, calls)
}

func TestDrawEventIDsAreNotReused(t *testing.T) {
	var e DrawEvent
	a := e.Add(func(*Frame) {})
	e.Remove(a)
	b := e.Add(func(*Frame) {})
	assert.NotEqual(t, a, b)
	assert.False(t, e.Remove(a), "old id must not remove the new subscriber")
	assert.Equal(t, 1, e.Len())
}

func TestDrawEventRemoveDuringBroadcast(t *testing.T) {
	var e DrawEvent
	var got []string
	var second DelegateID
	e.Add(func(*Frame) {
		got = append(got, "first")
		e.Remove(second)
	})
	second = e.Add(func(*Frame) { got = append(got, "second") })
	e.Add(func(*Frame) { got = append(got, "third") })

	e.Broadcast(&Frame{})
	assert.Equal(t, []string{"first", "third"}, got)

	got = nil
	e.Broadcast(&Frame{})
	assert.Equal(t, []string{"first", "third"}, got)
}

func TestDrawEventAddDuringBroadcastRunsNextTime(t *testing.T) {
	var e DrawEvent
	added := 0
	e.Add(func(*Frame) {
		if added == 0 {
			e.Add(func(*Frame) { added++ })
			added = -1
		}
	})

	e.Broadcast(&Frame{})
	assert.Equal(t, -1, added)
	e.Broadcast(&Frame{})
	assert.Equal(t, 0, added)
}

func TestDrawEventClear(t *testing.T) {
	var e DrawEvent
	a := e.Add(func(*Frame) { t.Fatal("cleared subscriber called") })
	e.Clear()
	e.Broadcast(&Frame{})
	assert.False(t, e.Remove(a))
	assert.Zero(t, e.Len())
}

func TestDrawEventNilCallbackPanics(t *testing.T) {
	var e DrawEvent
	assert.Panics(t, func() { e.Add(nil) })
}
