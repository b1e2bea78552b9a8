package configs

import (
	"errors"
	"time"
)

// Delivery configures the popup delivery engine.
type Delivery struct {
	// DefaultCooldown applies until an admin stores an interval.
	DefaultCooldown time.Duration `env:"DEFAULT_COOLDOWN" envDefault:"10m"`
	// UnlimitedCapacity stands in for the remaining displays of campaigns
	// without a cap.
	UnlimitedCapacity int64 `env:"UNLIMITED_CAPACITY" envDefault:"1000"`
	// TargetingBoost multiplies the weight of targeted campaigns.
	TargetingBoost int64 `env:"TARGETING_BOOST" envDefault:"5"`
	// RandomSeed fixes the selection sequence. Zero seeds from the clock.
	RandomSeed int64 `env:"RANDOM_SEED" envDefault:"0"`
	// SessionIdleTTL drops sessions not used for this long. Zero disables it.
	SessionIdleTTL time.Duration `env:"SESSION_IDLE_TTL" envDefault:"24h"`
	// SessionSweepInterval is how often idle sessions are swept.
	SessionSweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL" envDefault:"5m"`
}

// Validate checks the weighting constants.
func (c Delivery) Validate() error {
	if c.DefaultCooldown < 0 {
		return errors.New("default cooldown must not be negative")
	}
	if c.SessionIdleTTL < 0 || c.SessionSweepInterval < 0 {
		return errors.New("session durations must not be negative")
	}
	if c.UnlimitedCapacity <= 0 {
		return errors.New("unlimited capacity must be positive")
	}
	if c.TargetingBoost <= 0 {
		return errors.New("targeting boost must be positive")
	}
	return nil
}
