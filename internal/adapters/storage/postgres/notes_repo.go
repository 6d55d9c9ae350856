package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"soycraft-insights/internal/domain/assessments"
	"soycraft-insights/internal/domain/triage"
)

type NotesRepo struct {
	db *sql.DB
}

func NewNotesRepo(db *sql.DB) *NotesRepo {
	return &NotesRepo{db: db}
}

func (r *NotesRepo) Append(ctx context.Context, n assessments.HealthNote) error {
	var rules any
	if len(n.TriggeredRules) > 0 {
		b, err := json.Marshal(n.TriggeredRules)
		if err != nil {
			return fmt.Errorf("encode triggered rules: %w", err)
		}
		rules = b
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO health_notes (
			id, pet_id,
			summary, recommendations, risk_level, owner_message,
			triggered_rules,
			created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		n.ID,
		n.PetID,
		n.Summary,
		n.Recommendations,
		string(n.RiskLevel),
		n.OwnerMessage,
		rules,
		n.CreatedAt,
	)
	return err
}

func (r *NotesRepo) ListByPet(ctx context.Context, petID string, limit int) ([]assessments.HealthNote, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, pet_id,
			summary, recommendations, risk_level, owner_message,
			triggered_rules,
			created_at
		FROM health_notes
		WHERE pet_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, petID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]assessments.HealthNote, 0)
	for rows.Next() {
		var n assessments.HealthNote
		var risk string
		var rules []byte
		if err := rows.Scan(
			&n.ID,
			&n.PetID,
			&n.Summary,
			&n.Recommendations,
			&risk,
			&n.OwnerMessage,
			&rules,
			&n.CreatedAt,
		); err != nil {
			return nil, err
		}
		n.RiskLevel = triage.RiskTier(risk)
		if len(rules) > 0 {
			if err := json.Unmarshal(rules, &n.TriggeredRules); err != nil {
				return nil, fmt.Errorf("decode triggered rules: %w", err)
			}
		}
		out = append(out, n)
	}
	return out, rows.Err()
}
