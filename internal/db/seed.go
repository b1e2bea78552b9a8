package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"popup-ads/internal/core/domain"
)

func ptr[T any](v T) *T { return &v }

// DemoCampaigns returns the campaigns used to seed a fresh catalogue.
func DemoCampaigns() []domain.Campaign {
	return []domain.Campaign{
		{
			ID:          1,
			Name:        "Spring festival",
			CreativeRef: "https://example.com/creative/spring.png",
			LinkRef:     "https://example.com/spring",
			IsActive:    true,
			Triggers:    []domain.Trigger{domain.TriggerAppOpen},
		},
		{
			ID:              2,
			Name:            "Tokyo open campus",
			CreativeRef:     "https://example.com/creative/tokyo.png",
			LinkRef:         "https://example.com/open-campus",
			IsActive:        true,
			Targeting:       domain.Targeting{Prefectures: []string{"Tokyo", "Kanagawa"}},
			MaxDisplayCount: ptr(int64(500)),
			Triggers:        []domain.Trigger{domain.TriggerAppOpen},
		},
		{
			ID:          3,
			Name:        "Coding bootcamp",
			CreativeRef: "https://example.com/creative/bootcamp.png",
			LinkRef:     "https://example.com/bootcamp",
			IsActive:    true,
			Targeting: domain.Targeting{
				Tags:   []string{"programming", "robotics"},
				AgeMin: ptr(16),
			},
			MaxDisplayCount: ptr(int64(200)),
			Triggers:        []domain.Trigger{domain.TriggerAppOpen, domain.TriggerProfileUpdated},
		},
		{
			ID:          4,
			Name:        "Exam prep for seniors",
			CreativeRef: "https://example.com/creative/exam.png",
			LinkRef:     "https://example.com/exam-prep",
			IsActive:    true,
			Targeting: domain.Targeting{
				Grades: []string{"3"},
				AgeMax: ptr(19),
			},
			MaxDisplayCount: ptr(int64(100)),
			Triggers:        []domain.Trigger{domain.TriggerProfileUpdated, domain.TriggerPostCreated},
		},
		{
			ID:          5,
			Name:        "Winter sale",
			CreativeRef: "https://example.com/creative/winter.png",
			LinkRef:     "https://example.com/winter",
			IsActive:    false,
			Triggers:    []domain.Trigger{domain.TriggerAppOpen},
		},
	}
}

// Seed inserts campaigns into the database. Existing ids are left untouched.
func Seed(ctx context.Context, pool *pgxpool.Pool, campaigns []domain.Campaign) error {
	return pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		for _, c := range campaigns {
			triggers := make([]string, 0, len(c.Triggers))
			for _, t := range c.Triggers {
				triggers = append(triggers, t.String())
			}
			_, err := tx.Exec(ctx, `INSERT INTO campaigns
    (id, name, creative_ref, link_ref, is_active, max_display_count, display_count, triggers, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,now(),now()) ON CONFLICT DO NOTHING`,
				c.ID, c.Name, c.CreativeRef, c.LinkRef, c.IsActive, c.MaxDisplayCount, c.DisplayCount, triggers)
			if err != nil {
				return fmt.Errorf("insert campaign %d: %w", c.ID, err)
			}
			tgtJSON, err := json.Marshal(c.Targeting)
			if err != nil {
				return err
			}
			_, err = tx.Exec(ctx, `INSERT INTO campaign_targeting (campaign_id, data, updated_at)
VALUES ($1, $2, now()) ON CONFLICT DO NOTHING`, c.ID, tgtJSON)
			if err != nil {
				return fmt.Errorf("insert targeting %d: %w", c.ID, err)
			}
		}
		// keep BIGSERIAL ahead of the explicit ids
		_, err := tx.Exec(ctx, `SELECT setval(pg_get_serial_sequence('campaigns', 'id'), GREATEST((SELECT max(id) FROM campaigns), 1))`)
		return err
	})
}
