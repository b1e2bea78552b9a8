package memory

import (
	"context"
	"sync"
	"time"

	"popup-ads/internal/core/port"
)

// SettingsStore implements port.SettingsRepository in process memory.
type SettingsStore struct {
	mu       sync.RWMutex
	cooldown time.Duration
	set      bool
}

var _ port.SettingsRepository = (*SettingsStore)(nil)

// NewSettingsStore returns a store with no interval set.
func NewSettingsStore() *SettingsStore {
	return &SettingsStore{}
}

func (s *SettingsStore) CooldownInterval(_ context.Context) (time.Duration, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cooldown, s.set, nil
}

func (s *SettingsStore) SetCooldownInterval(_ context.Context, interval time.Duration) error {
	s.mu.Lock()
	s.cooldown = interval
	s.set = true
	s.mu.Unlock()
	return nil
}
