package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"soycraft-insights/internal/domain/pets"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (
			id, owner_user_id,
			name, handle, species, breed, sex,
			birth_date, weight_kg, photo_url,
			owner_name, medical_history, allergies, notes,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
	`,
		p.ID,
		p.OwnerUserID,
		p.Name,
		p.Handle,
		p.Species,
		p.Breed,
		p.Sex,
		toNullDate(p.BirthDate),
		toNullFloat(p.WeightKg),
		p.PhotoURL,
		p.OwnerName,
		p.MedicalHistory,
		p.Allergies,
		p.Notes,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET
			name = $2,
			handle = $3,
			species = $4,
			breed = $5,
			sex = $6,
			birth_date = $7,
			weight_kg = $8,
			photo_url = $9,
			owner_name = $10,
			medical_history = $11,
			allergies = $12,
			notes = $13,
			updated_at = $14
		WHERE id = $1
	`,
		p.ID,
		p.Name,
		p.Handle,
		p.Species,
		p.Breed,
		p.Sex,
		toNullDate(p.BirthDate),
		toNullFloat(p.WeightKg),
		p.PhotoURL,
		p.OwnerName,
		p.MedicalHistory,
		p.Allergies,
		p.Notes,
		p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, owner_user_id,
			name, handle, species, breed, sex,
			birth_date, weight_kg, photo_url,
			owner_name, medical_history, allergies, notes,
			created_at, updated_at
		FROM pets
		WHERE id = $1
	`, id)

	p, err := scanPet(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return pets.Pet{}, ErrNotFound
		}
		return pets.Pet{}, err
	}
	return p, nil
}

func (r *PetsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, owner_user_id,
			name, handle, species, breed, sex,
			birth_date, weight_kg, photo_url,
			owner_name, medical_history, allergies, notes,
			created_at, updated_at
		FROM pets
		WHERE owner_user_id = $1
		ORDER BY created_at ASC
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	return out, rows.Err()
}

func scanPet(scan func(dest ...any) error) (pets.Pet, error) {
	var p pets.Pet
	var bd sql.NullTime
	var weight sql.NullFloat64
	if err := scan(
		&p.ID,
		&p.OwnerUserID,
		&p.Name,
		&p.Handle,
		&p.Species,
		&p.Breed,
		&p.Sex,
		&bd,
		&weight,
		&p.PhotoURL,
		&p.OwnerName,
		&p.MedicalHistory,
		&p.Allergies,
		&p.Notes,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return pets.Pet{}, err
	}

	if bd.Valid {
		t := bd.Time
		// ojo: birth_date es date, pgx lo puede mapear a time.Time midnight UTC
		p.BirthDate = &t
	}
	if weight.Valid {
		w := weight.Float64
		p.WeightKg = &w
	}
	return p, nil
}

// birth_date es DATE, lo pasamos como NullTime para simplificar
func toNullDate(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func toNullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{Valid: false}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
