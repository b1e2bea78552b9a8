package domain

import (
	"slices"
	"time"
)

// Campaign represents one configured popup advertisement.
// CreativeRef and LinkRef are opaque to the engine and only handed to the
// presentation layer.
type Campaign struct {
	ID          int64
	Name        string
	CreativeRef string
	LinkRef     string
	IsActive    bool
	Targeting   Targeting
	// MaxDisplayCount is nil for unlimited campaigns.
	MaxDisplayCount *int64
	DisplayCount    int64
	Triggers        []Trigger
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Unlimited reports whether the campaign has no display cap.
func (c Campaign) Unlimited() bool {
	return c.MaxDisplayCount == nil
}

// QuotaExhausted reports whether another display would exceed the cap.
func (c Campaign) QuotaExhausted() bool {
	return !c.Unlimited() && c.DisplayCount >= *c.MaxDisplayCount
}

// Remaining returns the number of displays left before the cap is reached.
// Unlimited campaigns report unlimitedCapacity.
func (c Campaign) Remaining(unlimitedCapacity int64) int64 {
	if c.Unlimited() {
		return unlimitedCapacity
	}
	return max(0, *c.MaxDisplayCount-c.DisplayCount)
}

// RespondsTo reports whether trigger is in the campaign's trigger set.
func (c Campaign) RespondsTo(trigger Trigger) bool {
	return slices.Contains(c.Triggers, trigger)
}

// Eligible reports whether the campaign may be shown for trigger to user.
// All rules must hold: active, trigger opted in, quota left and every
// targeting dimension matched.
func Eligible(c Campaign, trigger Trigger, user UserProfile) bool {
	if !c.IsActive {
		return false
	}
	if !c.RespondsTo(trigger) {
		return false
	}
	if c.QuotaExhausted() {
		return false
	}
	return c.Targeting.Matches(user)
}
