package usecase

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"popup-ads/internal/core/domain"
	"popup-ads/internal/core/port"
)

// Config holds the tunables of the delivery engine.
type Config struct {
	// DefaultCooldown applies until an admin stores an interval.
	DefaultCooldown time.Duration
	Selector        SelectorConfig
	// Seed seeds the selection source. Zero picks a time based seed.
	Seed int64
	// SessionIdleTTL drops sessions not used for this long. Zero keeps
	// sessions until they are closed.
	SessionIdleTTL time.Duration
}

// DefaultSessionIdleTTL bounds how long an abandoned session is kept.
const DefaultSessionIdleTTL = 24 * time.Hour

// DefaultConfig returns the stock engine configuration.
func DefaultConfig() Config {
	return Config{
		DefaultCooldown: DefaultCooldown,
		Selector:        DefaultSelectorConfig(),
		SessionIdleTTL:  DefaultSessionIdleTTL,
	}
}

// Engine owns the app sessions and the collaborators they share: the
// campaign catalogue, the cooldown setting and the weighted selector.
type Engine struct {
	repo      port.CampaignRepository
	settings  port.SettingsRepository
	gate      *CooldownGate
	selector  *WeightedSelector
	presenter port.Presenter
	metrics   port.DeliveryMetrics
	logger    *slog.Logger
	now       func() time.Time
	idleTTL   time.Duration

	mu       sync.Mutex
	sessions map[string]*DeliveryUseCase
}

var _ port.DeliveryService = (*Engine)(nil)

// Option customises an Engine.
type Option func(e *Engine)

// WithPresenter sets the presentation layer called after each recorded display.
func WithPresenter(p port.Presenter) Option {
	return func(e *Engine) { e.presenter = p }
}

// WithMetrics sets the outcome observer.
func WithMetrics(m port.DeliveryMetrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithSource replaces the random source of the selector.
func WithSource(src Source) Option {
	return func(e *Engine) { e.selector.src = src }
}

// NewEngine creates an engine over the given catalogue and settings.
func NewEngine(
	repo port.CampaignRepository,
	settings port.SettingsRepository,
	cfg Config,
	logger *slog.Logger,
	opts ...Option,
) *Engine {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	e := &Engine{
		repo:      repo,
		settings:  settings,
		gate:      NewCooldownGate(settings, cfg.DefaultCooldown),
		selector:  NewWeightedSelector(cfg.Selector, rand.New(rand.NewSource(seed))),
		presenter: port.PresenterFunc(func(context.Context, domain.Campaign, domain.Display) {}),
		metrics:   nopMetrics{},
		logger:    logger,
		now:       time.Now,
		idleTTL:   cfg.SessionIdleTTL,
		sessions:  make(map[string]*DeliveryUseCase),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewSession returns a session engine bound to id without registering it.
func (e *Engine) NewSession(id string) *DeliveryUseCase {
	return &DeliveryUseCase{
		engine:    e,
		sessionID: id,
		logger:    e.logger.With(slog.String("session_id", id)),
	}
}

// CreateSession starts and registers a new session.
func (e *Engine) CreateSession() string {
	id := uuid.NewString()
	s := e.NewSession(id)

	e.mu.Lock()
	s.lastSeen = e.now()
	e.sessions[id] = s
	e.mu.Unlock()

	e.logger.Debug("session created", slog.String("session_id", id))
	return id
}

// Session returns a registered session and marks it as used. A session
// idle for longer than the configured TTL is dropped instead.
func (e *Engine) Session(id string) (port.DeliveryUseCase, error) {
	now := e.now()

	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.sessions[id]
	if !ok {
		return nil, port.ErrSessionNotFound
	}
	if e.expired(s, now) {
		delete(e.sessions, id)
		e.logger.Debug("session expired", slog.String("session_id", id))
		return nil, port.ErrSessionNotFound
	}
	s.lastSeen = now
	return s, nil
}

// EvictIdle drops every session idle for longer than the TTL and returns
// how many were dropped.
func (e *Engine) EvictIdle() int {
	now := e.now()

	e.mu.Lock()
	defer e.mu.Unlock()
	var n int
	for id, s := range e.sessions {
		if e.expired(s, now) {
			delete(e.sessions, id)
			n++
		}
	}
	return n
}

// RunEviction calls EvictIdle every interval until ctx is done.
func (e *Engine) RunEviction(ctx context.Context, interval time.Duration) {
	if e.idleTTL <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := e.EvictIdle(); n > 0 {
				e.logger.Info("idle sessions evicted", slog.Int("sessions", n))
			}
		}
	}
}

func (e *Engine) expired(s *DeliveryUseCase, now time.Time) bool {
	return e.idleTTL > 0 && now.Sub(s.lastSeen) > e.idleTTL
}

// CloseSession forgets a session together with its cooldown and pending state.
func (e *Engine) CloseSession(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.sessions[id]; !ok {
		return port.ErrSessionNotFound
	}
	delete(e.sessions, id)
	return nil
}

// CooldownInterval returns the interval in effect.
func (e *Engine) CooldownInterval(ctx context.Context) (time.Duration, error) {
	return e.gate.Interval(ctx)
}

// SetCooldownInterval stores a new interval.
func (e *Engine) SetCooldownInterval(ctx context.Context, interval time.Duration) error {
	if interval < 0 {
		return port.ErrInvalidCooldown
	}
	return e.settings.SetCooldownInterval(ctx, interval)
}

// GetStats returns aggregated displays in a period.
func (e *Engine) GetStats(ctx context.Context, req port.StatsReq) (*port.StatsResp, error) {
	return e.repo.GetStats(ctx, req)
}

type nopMetrics struct{}

func (nopMetrics) ObserveOutcome(domain.Trigger, domain.Outcome) {}
func (nopMetrics) ObserveZeroWeightFallback()                    {}
