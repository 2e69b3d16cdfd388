// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package ebimgui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type igCalls struct {
	inits, shutdowns int
	rc               int32
}

// stubIG replaces the native init and shutdown entry points for one test.
func stubIG(t *testing.T) *igCalls {
	t.Helper()
	calls := &igCalls{}
	oldInit, oldShutdown := igInit, igShutdown
	igInit = func(string, int32) int32 {
		calls.inits++
		return calls.rc
	}
	igShutdown = func() { calls.shutdowns++ }

	igMu.Lock()
	oldRefs := igRefs
	igRefs = 0
	igMu.Unlock()

	t.Cleanup(func() {
		igInit, igShutdown = oldInit, oldShutdown
		igMu.Lock()
		igRefs = oldRefs
		igMu.Unlock()
	})
	return calls
}

func newStubNativeBackend(t *testing.T) *nativeBackend {
	t.Helper()
	require.NoError(t, acquireIG("", false))
	return &nativeBackend{drawData: make(map[NativeContext]*DrawData)}
}

func TestNativeBackendReinitialisesAfterShutdown(t *testing.T) {
	calls := stubIG(t)

	first := newStubNativeBackend(t)
	first.Shutdown()
	assert.Equal(t, 1, calls.shutdowns)

	second := newStubNativeBackend(t)
	assert.Equal(t, 2, calls.inits, "a reload initialises the library again")
	second.Shutdown()
	assert.Equal(t, 2, calls.shutdowns)
}

func TestNativeBackendLastShutdownReleases(t *testing.T) {
	calls := stubIG(t)

	a := newStubNativeBackend(t)
	b := newStubNativeBackend(t)
	assert.Equal(t, 1, calls.inits)

	a.Shutdown()
	assert.Zero(t, calls.shutdowns, "b still uses the library")
	b.Shutdown()
	assert.Equal(t, 1, calls.shutdowns)
}

func TestNativeBackendShutdownTwice(t *testing.T) {
	calls := stubIG(t)

	a := newStubNativeBackend(t)
	b := newStubNativeBackend(t)
	a.Shutdown()
	a.Shutdown()
	assert.Zero(t, calls.shutdowns)

	b.Shutdown()
	assert.Equal(t, 1, calls.shutdowns)
	releaseIG()
	assert.Equal(t, 1, calls.shutdowns, "release below zero is ignored")
}

func TestAcquireIGFailure(t *testing.T) {
	calls := stubIG(t)
	calls.rc = -3

	assert.ErrorContains(t, acquireIG("", true), "ig_init failed with code -3")
	assert.Zero(t, igRefs)

	calls.rc = 0
	b := newStubNativeBackend(t)
	assert.Equal(t, 2, calls.inits, "a failed init is retried")
	b.Shutdown()
	assert.Equal(t, 1, calls.shutdowns)
}
