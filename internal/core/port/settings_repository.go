package port

import (
	"context"
	"time"
)

// SettingsRepository stores admin-settable delivery configuration.
type SettingsRepository interface {
	// CooldownInterval returns the configured interval. ok is false when the
	// admin never set one and the caller should apply its default.
	CooldownInterval(ctx context.Context) (interval time.Duration, ok bool, err error)
	// SetCooldownInterval replaces the interval. It applies to the next
	// evaluation only.
	SetCooldownInterval(ctx context.Context, interval time.Duration) error
}
