package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"popup-ads/internal/core/domain"
	"popup-ads/internal/core/port"
)

func cappedCampaign(id, limit int64) domain.Campaign {
	return domain.Campaign{
		ID:              id,
		IsActive:        true,
		MaxDisplayCount: &limit,
		Triggers:        []domain.Trigger{domain.TriggerAppOpen},
	}
}

func TestCampaignStore_RecordDisplayRespectsQuota(t *testing.T) {
	ctx := context.Background()
	s := NewCampaignStore(cappedCampaign(1, 2))

	require.NoError(t, s.RecordDisplay(ctx, &domain.Display{CampaignID: 1, SessionID: "a"}))
	require.NoError(t, s.RecordDisplay(ctx, &domain.Display{CampaignID: 1, SessionID: "b"}))
	err := s.RecordDisplay(ctx, &domain.Display{CampaignID: 1, SessionID: "c"})
	assert.ErrorIs(t, err, port.ErrQuotaExhausted)

	c, err := s.GetCampaign(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), c.DisplayCount)

	err = s.RecordDisplay(ctx, &domain.Display{CampaignID: 42})
	assert.ErrorIs(t, err, port.ErrCampaignNotFound)
}

func TestCampaignStore_RevisionIgnoresDisplayCounts(t *testing.T) {
	ctx := context.Background()
	s := NewCampaignStore(cappedCampaign(1, 5))

	before, err := s.Revision(ctx)
	require.NoError(t, err)

	require.NoError(t, s.RecordDisplay(ctx, &domain.Display{CampaignID: 1}))
	after, err := s.Revision(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	s.Put(cappedCampaign(2, 5))
	edited, err := s.Revision(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, before, edited)
}

func TestCampaignStore_PutKeepsDisplayCount(t *testing.T) {
	ctx := context.Background()
	s := NewCampaignStore(cappedCampaign(1, 5))
	require.NoError(t, s.RecordDisplay(ctx, &domain.Display{CampaignID: 1}))

	edited := cappedCampaign(1, 10)
	edited.DisplayCount = 0
	s.Put(edited)

	c, err := s.GetCampaign(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), c.DisplayCount)
	assert.Equal(t, int64(10), *c.MaxDisplayCount)
}

func TestCampaignStore_ListReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewCampaignStore(cappedCampaign(2, 5), cappedCampaign(1, 5))

	list, err := s.ListCampaigns(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(1), list[0].ID)
	assert.Equal(t, int64(2), list[1].ID)

	list[0].Triggers[0] = domain.TriggerPostCreated
	*list[0].MaxDisplayCount = 100

	c, err := s.GetCampaign(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.TriggerAppOpen, c.Triggers[0])
	assert.Equal(t, int64(5), *c.MaxDisplayCount)
}

func TestCampaignStore_GetStats(t *testing.T) {
	ctx := context.Background()
	s := NewCampaignStore(cappedCampaign(1, 10), cappedCampaign(2, 10))
	base := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.RecordDisplay(ctx, &domain.Display{CampaignID: 1, SessionID: "a", CreatedAt: base}))
	require.NoError(t, s.RecordDisplay(ctx, &domain.Display{CampaignID: 2, SessionID: "a", CreatedAt: base.Add(time.Minute)}))
	require.NoError(t, s.RecordDisplay(ctx, &domain.Display{CampaignID: 1, SessionID: "b", CreatedAt: base.Add(time.Hour)}))

	stats, err := s.GetStats(ctx, port.StatsReq{From: base, To: base.Add(2 * time.Hour)})
	require.NoError(t, err)
	assert.Equal(t, &port.StatsResp{Displays: 3, Sessions: 2}, stats)

	id := int64(1)
	stats, err = s.GetStats(ctx, port.StatsReq{From: base, To: base.Add(30 * time.Minute), CampaignID: &id})
	require.NoError(t, err)
	assert.Equal(t, &port.StatsResp{Displays: 1, Sessions: 1}, stats)

	_, err = s.GetCampaign(ctx, 3)
	assert.ErrorIs(t, err, port.ErrCampaignNotFound)
	assert.True(t, s.Delete(2))
	assert.False(t, s.Delete(2))
}
