package port

import (
	"context"
	"errors"
	"time"

	"popup-ads/internal/core/domain"
)

// ErrSessionNotFound is returned for unknown or closed session ids.
var ErrSessionNotFound = errors.New("session not found")

// DeliveryUseCase is the engine bound to one app session.
type DeliveryUseCase interface {
	// OnEvent runs one evaluation tick: the pending trigger, if any, is
	// taken and attempted first, then the ambient trigger unless the
	// pending one was presented. ambient may be empty.
	OnEvent(ctx context.Context, ambient domain.Trigger, user domain.UserProfile) (domain.Delivery, error)
	// OnContext reports the current ambient context. It runs OnEvent only
	// when the context is a new event or a pending trigger is waiting.
	OnContext(ctx context.Context, ambient domain.Trigger, user domain.UserProfile) (domain.Delivery, error)
	// SetPendingTrigger stores a one-shot trigger, replacing any previous one.
	SetPendingTrigger(trigger domain.Trigger)
	// PendingTrigger returns the waiting one-shot trigger without consuming it.
	PendingTrigger() (domain.Trigger, bool)
	// LastDisplayTime returns when this session last presented a popup.
	LastDisplayTime() (time.Time, bool)
}

// Presenter renders a recorded campaign. It has no feedback path into the
// engine: clicks and dismissals are handled by the presentation layer.
type Presenter interface {
	Present(ctx context.Context, campaign domain.Campaign, display domain.Display)
}

// PresenterFunc adapts a function to Presenter.
type PresenterFunc func(ctx context.Context, campaign domain.Campaign, display domain.Display)

// Present calls f.
func (f PresenterFunc) Present(ctx context.Context, campaign domain.Campaign, display domain.Display) {
	f(ctx, campaign, display)
}

// DeliveryMetrics observes delivery outcomes.
type DeliveryMetrics interface {
	ObserveOutcome(trigger domain.Trigger, outcome domain.Outcome)
	ObserveZeroWeightFallback()
}

// ErrInvalidCooldown is returned for negative cooldown intervals.
var ErrInvalidCooldown = errors.New("cooldown interval must not be negative")

// DeliveryService is the primary port used by inbound adapters. It owns the
// app sessions and the settings shared between them.
type DeliveryService interface {
	// CreateSession starts a new app session and returns its id.
	CreateSession() string
	// Session returns the engine of an open session or ErrSessionNotFound.
	Session(id string) (DeliveryUseCase, error)
	// CloseSession ends a session. Unknown ids return ErrSessionNotFound.
	CloseSession(id string) error

	// CooldownInterval returns the interval in effect.
	CooldownInterval(ctx context.Context) (time.Duration, error)
	// SetCooldownInterval stores a new interval for all sessions.
	SetCooldownInterval(ctx context.Context, interval time.Duration) error

	// GetStats returns aggregated displays for a period.
	GetStats(ctx context.Context, req StatsReq) (*StatsResp, error)
}
