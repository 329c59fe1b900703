package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllow_WithinBurst(t *testing.T) {
	rl := New(1, 3)
	defer rl.Stop()

	for i := range 3 {
		assert.True(t, rl.Allow("sess-a"), "request %d within burst", i)
	}
	assert.False(t, rl.Allow("sess-a"), "request beyond burst")
}

func TestAllow_KeysAreIndependent(t *testing.T) {
	rl := New(1, 1)
	defer rl.Stop()

	assert.True(t, rl.Allow("sess-a"))
	assert.False(t, rl.Allow("sess-a"))
	assert.True(t, rl.Allow("sess-b"))
}

func TestAllow_Refills(t *testing.T) {
	rl := New(100, 1)
	defer rl.Stop()

	require.True(t, rl.Allow("sess-a"))
	require.False(t, rl.Allow("sess-a"))

	time.Sleep(20 * time.Millisecond)
	assert.True(t, rl.Allow("sess-a"))
}

func TestWait_RespectsContext(t *testing.T) {
	rl := New(0.001, 1)
	defer rl.Stop()

	require.True(t, rl.Allow("sess-a"))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.Error(t, rl.Wait(ctx, "sess-a"))
}

func TestStop_Idempotent(t *testing.T) {
	rl := New(1, 1)
	rl.Stop()
	assert.NotPanics(t, rl.Stop)
}
