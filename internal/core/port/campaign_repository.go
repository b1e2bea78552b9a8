package port

import (
	"context"
	"errors"
	"time"

	"popup-ads/internal/core/domain"
)

var (
	// ErrCampaignNotFound is returned when a campaign id does not exist.
	ErrCampaignNotFound = errors.New("campaign not found")
	// ErrQuotaExhausted is returned by RecordDisplay when the campaign has
	// already reached its display cap.
	ErrQuotaExhausted = errors.New("display quota exhausted")
)

// CampaignRepository is the campaign catalogue consumed by the delivery
// engine. Admin-side mutations (create, edit, activate) live elsewhere; the
// only write the engine performs is RecordDisplay. Implementations must be
// concurrency-safe and apply the display count increment atomically.
type CampaignRepository interface {
	// ListCampaigns returns a consistent snapshot of every campaign.
	ListCampaigns(ctx context.Context) ([]domain.Campaign, error)
	// GetCampaign returns a campaign by id or ErrCampaignNotFound.
	GetCampaign(ctx context.Context, id int64) (*domain.Campaign, error)
	// RecordDisplay increments the campaign's display count by one and
	// stores the display. It returns ErrQuotaExhausted without side effects
	// when the increment would exceed the cap.
	RecordDisplay(ctx context.Context, display *domain.Display) error
	// Revision identifies the current catalogue definition. It changes on
	// admin edits and stays the same when only display counts move.
	Revision(ctx context.Context) (string, error)
	// GetStats returns aggregated displays in a period.
	GetStats(ctx context.Context, req StatsReq) (*StatsResp, error)
}

// StatsReq selects the period and optional campaign for GetStats.
type StatsReq struct {
	From       time.Time
	To         time.Time
	CampaignID *int64
}

// StatsResp contains aggregated display counts. Sessions counts distinct
// sessions that saw at least one popup.
type StatsResp struct {
	Displays int64 `json:"displays"`
	Sessions int64 `json:"sessions"`
}
