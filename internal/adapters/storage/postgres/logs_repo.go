package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"soycraft-insights/internal/domain/logs"
)

type LogsRepo struct {
	db *sql.DB
}

func NewLogsRepo(db *sql.DB) *LogsRepo {
	return &LogsRepo{db: db}
}

// windowClause agrega from/to/limit al final de la query base. La query
// base ya debe traer `WHERE pet_id = $1`.
func windowClause(sb *strings.Builder, args []any, filter logs.ListFilter) []any {
	argN := len(args) + 1

	if filter.From != nil {
		fmt.Fprintf(sb, " AND logged_at >= $%d", argN)
		args = append(args, *filter.From)
		argN++
	}
	if filter.To != nil {
		fmt.Fprintf(sb, " AND logged_at <= $%d", argN)
		args = append(args, *filter.To)
		argN++
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}

	sb.WriteString(" ORDER BY logged_at DESC")
	fmt.Fprintf(sb, " LIMIT $%d", argN)
	args = append(args, limit)
	return args
}

func (r *LogsRepo) CreateFood(ctx context.Context, l logs.FoodLog) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO food_logs (
			id, pet_id,
			food_name, amount_g, meal_type,
			calories, protein_pct, fat_pct, carb_pct,
			notes, photo_url,
			logged_at, recorded_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`,
		l.ID,
		l.PetID,
		l.FoodName,
		l.AmountG,
		string(l.MealType),
		toNullFloat(l.Calories),
		toNullFloat(l.ProteinPct),
		toNullFloat(l.FatPct),
		toNullFloat(l.CarbPct),
		l.Notes,
		l.PhotoURL,
		l.LoggedAt,
		l.RecordedAt,
	)
	return err
}

func (r *LogsRepo) ListFood(ctx context.Context, petID string, filter logs.ListFilter) ([]logs.FoodLog, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return nil, nil
	}

	sb := strings.Builder{}
	sb.WriteString(`
		SELECT
			id, pet_id,
			food_name, amount_g, meal_type,
			calories, protein_pct, fat_pct, carb_pct,
			notes, photo_url,
			logged_at, recorded_at
		FROM food_logs
		WHERE pet_id = $1
	`)
	args := windowClause(&sb, []any{petID}, filter)

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]logs.FoodLog, 0)
	for rows.Next() {
		var l logs.FoodLog
		var mealType string
		var calories, protein, fat, carb sql.NullFloat64
		if err := rows.Scan(
			&l.ID,
			&l.PetID,
			&l.FoodName,
			&l.AmountG,
			&mealType,
			&calories,
			&protein,
			&fat,
			&carb,
			&l.Notes,
			&l.PhotoURL,
			&l.LoggedAt,
			&l.RecordedAt,
		); err != nil {
			return nil, err
		}
		l.MealType = logs.MealType(mealType)
		l.Calories = fromNullFloat(calories)
		l.ProteinPct = fromNullFloat(protein)
		l.FatPct = fromNullFloat(fat)
		l.CarbPct = fromNullFloat(carb)
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *LogsRepo) DeleteFood(ctx context.Context, petID, id string) error {
	return r.deleteLog(ctx, "food_logs", petID, id)
}

func (r *LogsRepo) CreateStool(ctx context.Context, l logs.StoolLog) error {
	behaviors, err := behaviorsJSON(l.Behaviors)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO stool_logs (
			id, pet_id,
			consistency, color, amount, moisture,
			blood_present, mucus_present, smell_level,
			behaviors, behavior_notes,
			user_rating, location, notes, photo_url,
			logged_at, recorded_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
	`,
		l.ID,
		l.PetID,
		string(l.Consistency),
		string(l.Color),
		string(l.Amount),
		string(l.Moisture),
		l.BloodPresent,
		l.MucusPresent,
		l.SmellLevel,
		behaviors,
		l.BehaviorNotes,
		l.UserRating,
		l.Location,
		l.Notes,
		l.PhotoURL,
		l.LoggedAt,
		l.RecordedAt,
	)
	return err
}

func (r *LogsRepo) ListStool(ctx context.Context, petID string, filter logs.ListFilter) ([]logs.StoolLog, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return nil, nil
	}

	sb := strings.Builder{}
	sb.WriteString(`
		SELECT
			id, pet_id,
			consistency, color, amount, moisture,
			blood_present, mucus_present, smell_level,
			behaviors, behavior_notes,
			user_rating, location, notes, photo_url,
			logged_at, recorded_at
		FROM stool_logs
		WHERE pet_id = $1
	`)
	args := windowClause(&sb, []any{petID}, filter)

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]logs.StoolLog, 0)
	for rows.Next() {
		var l logs.StoolLog
		var consistency, color, amount, moisture string
		var behaviors []byte
		if err := rows.Scan(
			&l.ID,
			&l.PetID,
			&consistency,
			&color,
			&amount,
			&moisture,
			&l.BloodPresent,
			&l.MucusPresent,
			&l.SmellLevel,
			&behaviors,
			&l.BehaviorNotes,
			&l.UserRating,
			&l.Location,
			&l.Notes,
			&l.PhotoURL,
			&l.LoggedAt,
			&l.RecordedAt,
		); err != nil {
			return nil, err
		}
		l.Consistency = logs.Consistency(consistency)
		l.Color = logs.Color(color)
		l.Amount = logs.Amount(amount)
		l.Moisture = logs.Moisture(moisture)
		if len(behaviors) > 0 {
			if err := json.Unmarshal(behaviors, &l.Behaviors); err != nil {
				return nil, fmt.Errorf("decode behaviors: %w", err)
			}
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *LogsRepo) DeleteStool(ctx context.Context, petID, id string) error {
	return r.deleteLog(ctx, "stool_logs", petID, id)
}

func (r *LogsRepo) CreateSupplement(ctx context.Context, l logs.SupplementLog) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO supplement_logs (
			id, pet_id,
			supplement_name, dosage, frequency, purpose,
			notes, photo_url,
			logged_at, recorded_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		l.ID,
		l.PetID,
		l.SupplementName,
		l.Dosage,
		string(l.Frequency),
		l.Purpose,
		l.Notes,
		l.PhotoURL,
		l.LoggedAt,
		l.RecordedAt,
	)
	return err
}

func (r *LogsRepo) ListSupplements(ctx context.Context, petID string, filter logs.ListFilter) ([]logs.SupplementLog, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return nil, nil
	}

	sb := strings.Builder{}
	sb.WriteString(`
		SELECT
			id, pet_id,
			supplement_name, dosage, frequency, purpose,
			notes, photo_url,
			logged_at, recorded_at
		FROM supplement_logs
		WHERE pet_id = $1
	`)
	args := windowClause(&sb, []any{petID}, filter)

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]logs.SupplementLog, 0)
	for rows.Next() {
		var l logs.SupplementLog
		var frequency string
		if err := rows.Scan(
			&l.ID,
			&l.PetID,
			&l.SupplementName,
			&l.Dosage,
			&frequency,
			&l.Purpose,
			&l.Notes,
			&l.PhotoURL,
			&l.LoggedAt,
			&l.RecordedAt,
		); err != nil {
			return nil, err
		}
		l.Frequency = logs.SupplementFrequency(frequency)
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *LogsRepo) DeleteSupplement(ctx context.Context, petID, id string) error {
	return r.deleteLog(ctx, "supplement_logs", petID, id)
}

func (r *LogsRepo) CreateMeasurement(ctx context.Context, l logs.MeasurementLog) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO measurement_logs (
			id, pet_id,
			weight_kg, neck_cm, chest_cm, body_length_cm,
			notes,
			logged_at, recorded_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		l.ID,
		l.PetID,
		toNullFloat(l.WeightKg),
		toNullFloat(l.NeckCm),
		toNullFloat(l.ChestCm),
		toNullFloat(l.BodyLengthCm),
		l.Notes,
		l.LoggedAt,
		l.RecordedAt,
	)
	return err
}

func (r *LogsRepo) ListMeasurements(ctx context.Context, petID string, filter logs.ListFilter) ([]logs.MeasurementLog, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return nil, nil
	}

	sb := strings.Builder{}
	sb.WriteString(`
		SELECT
			id, pet_id,
			weight_kg, neck_cm, chest_cm, body_length_cm,
			notes,
			logged_at, recorded_at
		FROM measurement_logs
		WHERE pet_id = $1
	`)
	args := windowClause(&sb, []any{petID}, filter)

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]logs.MeasurementLog, 0)
	for rows.Next() {
		var l logs.MeasurementLog
		var weight, neck, chest, bodyLen sql.NullFloat64
		if err := rows.Scan(
			&l.ID,
			&l.PetID,
			&weight,
			&neck,
			&chest,
			&bodyLen,
			&l.Notes,
			&l.LoggedAt,
			&l.RecordedAt,
		); err != nil {
			return nil, err
		}
		l.WeightKg = fromNullFloat(weight)
		l.NeckCm = fromNullFloat(neck)
		l.ChestCm = fromNullFloat(chest)
		l.BodyLengthCm = fromNullFloat(bodyLen)
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *LogsRepo) DeleteMeasurement(ctx context.Context, petID, id string) error {
	return r.deleteLog(ctx, "measurement_logs", petID, id)
}

// deleteLog borra un log validando que pertenezca a la mascota. table viene
// de constantes internas, nunca de input.
func (r *LogsRepo) deleteLog(ctx context.Context, table, petID, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return logs.ErrNotFound
	}

	res, err := r.db.ExecContext(ctx,
		fmt.Sprintf("DELETE FROM %s WHERE id = $1 AND pet_id = $2", table),
		id, petID,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return logs.ErrNotFound
	}
	return nil
}

func behaviorsJSON(in []logs.Behavior) (any, error) {
	if len(in) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("encode behaviors: %w", err)
	}
	return b, nil
}

func fromNullFloat(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Float64
	return &v
}
