package memory

import (
	"cmp"
	"context"
	"slices"
	"strconv"
	"sync"

	"popup-ads/internal/core/domain"
	"popup-ads/internal/core/port"
)

// CampaignStore implements port.CampaignRepository in process memory. It
// also exposes the admin-side Put and Delete used for seeding and tests.
type CampaignStore struct {
	mu        sync.RWMutex
	campaigns map[int64]domain.Campaign
	displays  []domain.Display
	revision  int64
}

var _ port.CampaignRepository = (*CampaignStore)(nil)

// NewCampaignStore returns a store holding campaigns.
func NewCampaignStore(campaigns ...domain.Campaign) *CampaignStore {
	s := &CampaignStore{campaigns: make(map[int64]domain.Campaign, len(campaigns))}
	for _, c := range campaigns {
		s.campaigns[c.ID] = cloneCampaign(c)
	}
	return s
}

// Put creates or replaces a campaign definition. The display count of an
// existing campaign is kept: counters belong to the delivery engine.
func (s *CampaignStore) Put(c domain.Campaign) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.campaigns[c.ID]; ok {
		c.DisplayCount = old.DisplayCount
	}
	s.campaigns[c.ID] = cloneCampaign(c)
	s.revision++
}

// Delete removes a campaign. It reports whether the campaign existed.
func (s *CampaignStore) Delete(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.campaigns[id]; !ok {
		return false
	}
	delete(s.campaigns, id)
	s.revision++
	return true
}

// ListCampaigns returns a copy of every campaign ordered by id.
func (s *CampaignStore) ListCampaigns(_ context.Context) ([]domain.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Campaign, 0, len(s.campaigns))
	for _, c := range s.campaigns {
		out = append(out, cloneCampaign(c))
	}
	slices.SortFunc(out, func(a, b domain.Campaign) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return out, nil
}

// GetCampaign returns a copy of a campaign.
func (s *CampaignStore) GetCampaign(_ context.Context, id int64) (*domain.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.campaigns[id]
	if !ok {
		return nil, port.ErrCampaignNotFound
	}
	c = cloneCampaign(c)
	return &c, nil
}

// RecordDisplay bumps the display count and appends the display.
func (s *CampaignStore) RecordDisplay(_ context.Context, display *domain.Display) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.campaigns[display.CampaignID]
	if !ok {
		return port.ErrCampaignNotFound
	}
	if c.QuotaExhausted() {
		return port.ErrQuotaExhausted
	}
	c.DisplayCount++
	s.campaigns[c.ID] = c

	display.ID = int64(len(s.displays) + 1)
	s.displays = append(s.displays, *display)
	return nil
}

// Revision changes on Put and Delete only.
func (s *CampaignStore) Revision(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return strconv.FormatInt(s.revision, 10), nil
}

// GetStats aggregates stored displays within [From, To].
func (s *CampaignStore) GetStats(_ context.Context, req port.StatsReq) (*port.StatsResp, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var resp port.StatsResp
	sessions := make(map[string]struct{})
	for _, d := range s.displays {
		if d.CreatedAt.Before(req.From) || d.CreatedAt.After(req.To) {
			continue
		}
		if req.CampaignID != nil && d.CampaignID != *req.CampaignID {
			continue
		}
		resp.Displays++
		sessions[d.SessionID] = struct{}{}
	}
	resp.Sessions = int64(len(sessions))
	return &resp, nil
}

func cloneCampaign(c domain.Campaign) domain.Campaign {
	c.Triggers = slices.Clone(c.Triggers)
	c.Targeting.Prefectures = slices.Clone(c.Targeting.Prefectures)
	c.Targeting.Tags = slices.Clone(c.Targeting.Tags)
	c.Targeting.Grades = slices.Clone(c.Targeting.Grades)
	if c.Targeting.AgeMin != nil {
		v := *c.Targeting.AgeMin
		c.Targeting.AgeMin = &v
	}
	if c.Targeting.AgeMax != nil {
		v := *c.Targeting.AgeMax
		c.Targeting.AgeMax = &v
	}
	if c.MaxDisplayCount != nil {
		v := *c.MaxDisplayCount
		c.MaxDisplayCount = &v
	}
	return c
}
