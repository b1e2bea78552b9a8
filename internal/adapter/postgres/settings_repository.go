package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"popup-ads/internal/core/port"
)

const cooldownKey = "cooldown_interval_ms"

// SettingsRepository implements port.SettingsRepository on the
// delivery_settings key/value table.
type SettingsRepository struct {
	pool *pgxpool.Pool
}

var _ port.SettingsRepository = (*SettingsRepository)(nil)

// NewSettingsRepository returns a new repository instance.
func NewSettingsRepository(pool *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{pool: pool}
}

func (r *SettingsRepository) CooldownInterval(ctx context.Context) (time.Duration, bool, error) {
	var ms int64
	err := r.pool.QueryRow(ctx, `SELECT value FROM delivery_settings WHERE key = $1`, cooldownKey).Scan(&ms)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return time.Duration(ms) * time.Millisecond, true, nil
}

func (r *SettingsRepository) SetCooldownInterval(ctx context.Context, interval time.Duration) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO delivery_settings (key, value, updated_at) VALUES ($1, $2, now())
        ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		cooldownKey, interval.Milliseconds())
	return err
}
