package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"popup-ads/internal/core/domain"
	"popup-ads/internal/core/port"
)

// CampaignRepository implements port.CampaignRepository using pgxpool for PostgreSQL.
type CampaignRepository struct {
	pool *pgxpool.Pool
}

var _ port.CampaignRepository = (*CampaignRepository)(nil)

// NewCampaignRepository returns a new repository instance.
func NewCampaignRepository(pool *pgxpool.Pool) *CampaignRepository {
	return &CampaignRepository{pool: pool}
}

const selectCampaigns = `
        SELECT
            c.id,
            c.name,
            c.creative_ref,
            c.link_ref,
            c.is_active,
            c.max_display_count,
            c.display_count,
            c.triggers,
            c.created_at,
            c.updated_at,
            COALESCE(t.data, '{}'::jsonb)
        FROM campaigns c
        LEFT JOIN campaign_targeting t ON t.campaign_id = c.id`

// ListCampaigns returns every campaign ordered by id. The rows come from a
// single statement, so the result is one consistent snapshot.
func (r *CampaignRepository) ListCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	rows, err := r.pool.Query(ctx, selectCampaigns+` ORDER BY c.id`)
	if err != nil {
		return nil, err
	}
	raw, err := pgx.CollectRows(rows, scanCampaign)
	if err != nil {
		return nil, err
	}
	campaigns := make([]domain.Campaign, 0, len(raw))
	for _, rc := range raw {
		c, err := rc.toDomain()
		if err != nil {
			// skip malformed targeting
			continue
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, nil
}

// GetCampaign returns a campaign by id.
func (r *CampaignRepository) GetCampaign(ctx context.Context, id int64) (*domain.Campaign, error) {
	rows, err := r.pool.Query(ctx, selectCampaigns+` WHERE c.id = $1`, id)
	if err != nil {
		return nil, err
	}
	rc, err := pgx.CollectExactlyOneRow(rows, scanCampaign)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, port.ErrCampaignNotFound
	}
	if err != nil {
		return nil, err
	}
	c, err := rc.toDomain()
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// RecordDisplay increments the display count under the quota guard and
// inserts the display in the same transaction.
func (r *CampaignRepository) RecordDisplay(ctx context.Context, display *domain.Display) (err error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	// the row lock taken by UPDATE serializes concurrent increments
	tag, err := tx.Exec(ctx, `UPDATE campaigns SET display_count = display_count + 1
        WHERE id = $1 AND (max_display_count IS NULL OR display_count < max_display_count)`, display.CampaignID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err = tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM campaigns WHERE id = $1)`, display.CampaignID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return port.ErrCampaignNotFound
		}
		return port.ErrQuotaExhausted
	}

	if display.CreatedAt.IsZero() {
		display.CreatedAt = time.Now().UTC()
	}
	err = tx.QueryRow(ctx, `INSERT INTO displays (token, campaign_id, session_id, trigger, created_at)
        VALUES ($1,$2,$3,$4,$5) RETURNING id`,
		display.Token, display.CampaignID, display.SessionID, string(display.Trigger), display.CreatedAt).Scan(&display.ID)
	return err
}

// Revision fingerprints campaign definitions. Display count updates do not
// touch updated_at, so they leave the revision alone.
func (r *CampaignRepository) Revision(ctx context.Context) (string, error) {
	var (
		count   int64
		updated time.Time
	)
	err := r.pool.QueryRow(ctx, `
        SELECT
            (SELECT count(*) FROM campaigns),
            GREATEST(
                (SELECT COALESCE(max(updated_at), 'epoch'::timestamptz) FROM campaigns),
                (SELECT COALESCE(max(updated_at), 'epoch'::timestamptz) FROM campaign_targeting)
            )`).Scan(&count, &updated)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d:%d", count, updated.UnixMicro()), nil
}

// GetStats returns aggregated displays for campaigns.
func (r *CampaignRepository) GetStats(ctx context.Context, req port.StatsReq) (*port.StatsResp, error) {
	args := []interface{}{req.From, req.To}
	whereCampaign := ""
	if req.CampaignID != nil {
		whereCampaign = "AND campaign_id = $3"
		args = append(args, *req.CampaignID)
	}
	query := fmt.Sprintf(`SELECT count(*), count(DISTINCT session_id) FROM displays WHERE created_at >= $1 AND created_at <= $2 %s`, whereCampaign)
	var resp port.StatsResp
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&resp.Displays, &resp.Sessions); err != nil {
		return nil, err
	}
	return &resp, nil
}

type rawCampaign struct {
	Camp         domain.Campaign
	Triggers     []string
	TargetingRaw []byte
}

func scanCampaign(row pgx.CollectableRow) (rawCampaign, error) {
	var rc rawCampaign
	err := row.Scan(
		&rc.Camp.ID,
		&rc.Camp.Name,
		&rc.Camp.CreativeRef,
		&rc.Camp.LinkRef,
		&rc.Camp.IsActive,
		&rc.Camp.MaxDisplayCount,
		&rc.Camp.DisplayCount,
		&rc.Triggers,
		&rc.Camp.CreatedAt,
		&rc.Camp.UpdatedAt,
		&rc.TargetingRaw,
	)
	return rc, err
}

func (rc rawCampaign) toDomain() (domain.Campaign, error) {
	c := rc.Camp
	if err := json.Unmarshal(rc.TargetingRaw, &c.Targeting); err != nil {
		return domain.Campaign{}, fmt.Errorf("campaign %d targeting: %w", c.ID, err)
	}
	c.Triggers = make([]domain.Trigger, 0, len(rc.Triggers))
	for _, t := range rc.Triggers {
		c.Triggers = append(c.Triggers, domain.Trigger(t))
	}
	return c, nil
}
