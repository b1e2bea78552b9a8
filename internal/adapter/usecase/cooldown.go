package usecase

import (
	"context"
	"time"

	"popup-ads/internal/core/port"
)

// DefaultCooldown is used when neither the admin nor the configuration set
// an interval.
const DefaultCooldown = 10 * time.Minute

// CooldownGate enforces the minimum spacing between two deliveries. The
// interval is read from settings on every check, so an admin change
// applies from the next evaluation on.
type CooldownGate struct {
	settings        port.SettingsRepository
	defaultInterval time.Duration
}

// NewCooldownGate returns a gate falling back to defaultInterval when no
// interval is stored.
func NewCooldownGate(settings port.SettingsRepository, defaultInterval time.Duration) *CooldownGate {
	return &CooldownGate{settings: settings, defaultInterval: defaultInterval}
}

// Interval returns the interval in effect.
func (g *CooldownGate) Interval(ctx context.Context) (time.Duration, error) {
	interval, ok, err := g.settings.CooldownInterval(ctx)
	if err != nil {
		return 0, err
	}
	if !ok {
		return g.defaultInterval, nil
	}
	return interval, nil
}

// Allow reports whether a delivery may happen at now given the last
// delivery time. A zero lastDisplay means nothing was shown yet.
func (g *CooldownGate) Allow(ctx context.Context, lastDisplay, now time.Time) (bool, error) {
	if lastDisplay.IsZero() {
		return true, nil
	}
	interval, err := g.Interval(ctx)
	if err != nil {
		return false, err
	}
	return now.Sub(lastDisplay) >= interval, nil
}
