package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"soycraft-insights/internal/domain/rewards"
)

type RewardsRepo struct {
	db *sql.DB
}

func NewRewardsRepo(db *sql.DB) *RewardsRepo {
	return &RewardsRepo{db: db}
}

func (r *RewardsRepo) Append(ctx context.Context, e rewards.Event) error {
	var metadata any
	if len(e.Metadata) > 0 {
		b, err := json.Marshal(e.Metadata)
		if err != nil {
			return fmt.Errorf("encode metadata: %w", err)
		}
		metadata = b
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reward_events (
			id, user_id, activity, credits, metadata, created_at
		) VALUES ($1,$2,$3,$4,$5,$6)
	`,
		e.ID,
		e.UserID,
		string(e.Activity),
		e.Credits,
		metadata,
		e.CreatedAt,
	)
	return err
}

func (r *RewardsRepo) Balance(ctx context.Context, userID string) (int, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return 0, nil
	}

	var total sql.NullInt64
	err := r.db.QueryRowContext(ctx, `
		SELECT SUM(credits) FROM reward_events WHERE user_id = $1
	`, userID).Scan(&total)
	if err != nil {
		return 0, err
	}
	return int(total.Int64), nil
}
