package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"popup-ads/internal/core/domain"
	"popup-ads/internal/core/port"
)

// DeliveryUseCase is the delivery engine of one app session. Evaluation
// ticks are serialized by mu and run gate check, filtering, selection,
// recording and presentation to completion.
type DeliveryUseCase struct {
	engine    *Engine
	sessionID string
	logger    *slog.Logger
	// lastSeen is guarded by the engine's registry lock.
	lastSeen time.Time

	pending PendingSlot

	mu          sync.Mutex
	lastDisplay time.Time
	watcher     AmbientWatcher
}

var _ port.DeliveryUseCase = (*DeliveryUseCase)(nil)

// SetPendingTrigger stores a one-shot trigger. A trigger that is already
// waiting is replaced.
func (u *DeliveryUseCase) SetPendingTrigger(trigger domain.Trigger) {
	u.pending.Set(trigger)
}

// PendingTrigger returns the waiting trigger without consuming it.
func (u *DeliveryUseCase) PendingTrigger() (domain.Trigger, bool) {
	return u.pending.Peek()
}

// LastDisplayTime returns when this session last presented a popup.
func (u *DeliveryUseCase) LastDisplayTime() (time.Time, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.lastDisplay, !u.lastDisplay.IsZero()
}

// OnEvent runs one evaluation tick for the ambient trigger and any waiting
// pending trigger.
func (u *DeliveryUseCase) OnEvent(ctx context.Context, ambient domain.Trigger, user domain.UserProfile) (domain.Delivery, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.dispatch(ctx, ambient, user)
}

// OnContext reports the ambient context of the current screen. Only a
// change of trigger, region or catalogue revision counts as a new ambient
// event; otherwise only a waiting pending trigger is processed.
func (u *DeliveryUseCase) OnContext(ctx context.Context, ambient domain.Trigger, user domain.UserProfile) (domain.Delivery, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	revision, err := u.engine.repo.Revision(ctx)
	if err != nil {
		return domain.Delivery{}, fmt.Errorf("catalogue revision: %w", err)
	}
	prev := u.watcher
	changed := u.watcher.Changed(AmbientContext{
		Trigger:    ambient,
		Prefecture: user.Prefecture,
		Revision:   revision,
	})
	if !changed {
		ambient = ""
	}
	d, err := u.dispatch(ctx, ambient, user)
	if err != nil {
		// A failed attempt leaves the context unseen so a retry re-evaluates it.
		u.watcher = prev
	}
	return d, err
}

// dispatch consumes the pending trigger before doing any other work, so a
// delivery cannot observe and fire it a second time. The pending trigger
// goes first; a presented pending popup skips the ambient attempt.
func (u *DeliveryUseCase) dispatch(ctx context.Context, ambient domain.Trigger, user domain.UserProfile) (domain.Delivery, error) {
	pending, hasPending := u.pending.Take()
	if hasPending {
		d, err := u.attempt(ctx, pending, user)
		if err != nil || d.Presented() || !ambient.IsValid() {
			return d, err
		}
	}
	if !ambient.IsValid() {
		return domain.Delivery{Outcome: domain.OutcomeNoTrigger}, nil
	}
	return u.attempt(ctx, ambient, user)
}

// attempt runs one delivery attempt for trigger.
func (u *DeliveryUseCase) attempt(ctx context.Context, trigger domain.Trigger, user domain.UserProfile) (domain.Delivery, error) {
	e := u.engine
	now := e.now()

	ok, err := e.gate.Allow(ctx, u.lastDisplay, now)
	if err != nil {
		return domain.Delivery{}, fmt.Errorf("cooldown interval: %w", err)
	}
	if !ok {
		return u.finish(domain.Delivery{Outcome: domain.OutcomeRejectedCooldown, Trigger: trigger}), nil
	}

	campaigns, err := e.repo.ListCampaigns(ctx)
	if err != nil {
		return domain.Delivery{}, fmt.Errorf("list campaigns: %w", err)
	}
	candidates := make([]domain.Campaign, 0, len(campaigns))
	for _, c := range campaigns {
		if domain.Eligible(c, trigger, user) {
			candidates = append(candidates, c)
		}
	}

	sel, ok := e.selector.Select(candidates)
	if !ok {
		return u.finish(domain.Delivery{Outcome: domain.OutcomeNoCandidates, Trigger: trigger}), nil
	}
	if sel.Fallback() {
		// Eligible campaigns always have quota left, so this means bad data.
		u.logger.Warn("all candidate weights are zero, falling back to first candidate",
			slog.Int64("campaign_id", sel.Campaign.ID),
			slog.Int("candidates", len(candidates)))
		e.metrics.ObserveZeroWeightFallback()
	}

	display := &domain.Display{
		Token:      uuid.NewString(),
		CampaignID: sel.Campaign.ID,
		SessionID:  u.sessionID,
		Trigger:    trigger,
		CreatedAt:  now,
	}
	if err = e.repo.RecordDisplay(ctx, display); err != nil {
		if errors.Is(err, port.ErrQuotaExhausted) || errors.Is(err, port.ErrCampaignNotFound) {
			// Another session took the last display, or an admin removed the
			// campaign after the snapshot was read.
			u.logger.Debug("winner no longer deliverable",
				slog.Int64("campaign_id", sel.Campaign.ID), slog.Any("error", err))
			return u.finish(domain.Delivery{Outcome: domain.OutcomeNoCandidates, Trigger: trigger}), nil
		}
		return domain.Delivery{}, fmt.Errorf("record display: %w", err)
	}
	u.lastDisplay = now

	campaign := sel.Campaign
	campaign.DisplayCount++
	e.presenter.Present(ctx, campaign, *display)

	return u.finish(domain.Delivery{
		Outcome:  domain.OutcomePresented,
		Trigger:  trigger,
		Campaign: &campaign,
		Display:  display,
	}), nil
}

func (u *DeliveryUseCase) finish(d domain.Delivery) domain.Delivery {
	u.engine.metrics.ObserveOutcome(d.Trigger, d.Outcome)
	attrs := []any{slog.String("trigger", d.Trigger.String()), slog.String("outcome", string(d.Outcome))}
	if d.Campaign != nil {
		attrs = append(attrs, slog.Int64("campaign_id", d.Campaign.ID))
	}
	u.logger.Debug("delivery attempt", attrs...)
	return d
}
