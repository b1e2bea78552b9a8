package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"popup-ads/internal/adapter/memory"
)

func TestCooldownGate(t *testing.T) {
	ctx := context.Background()
	settings := memory.NewSettingsStore()
	gate := NewCooldownGate(settings, 10*time.Minute)
	last := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

	ok, err := gate.Allow(ctx, time.Time{}, last)
	require.NoError(t, err)
	assert.True(t, ok, "first delivery of a session is always allowed")

	ok, err = gate.Allow(ctx, last, last.Add(9*time.Minute))
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = gate.Allow(ctx, last, last.Add(10*time.Minute))
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, settings.SetCooldownInterval(ctx, 5*time.Minute))
	interval, err := gate.Interval(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, interval)

	ok, err = gate.Allow(ctx, last, last.Add(6*time.Minute))
	require.NoError(t, err)
	assert.True(t, ok)
}
