package pets

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name           string
	Handle         string
	Species        string
	Breed          string
	Sex            string
	BirthDate      *time.Time
	WeightKg       *float64
	PhotoURL       string
	OwnerName      string
	MedicalHistory string
	Allergies      string
	Notes          string
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Pet, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Pet{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Pet{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Species) == "" {
		return Pet{}, ErrInvalidInput
	}

	now := s.now()
	p := Pet{
		ID:             uuid.NewString(),
		OwnerUserID:    ownerUserID,
		Name:           strings.TrimSpace(in.Name),
		Handle:         strings.TrimSpace(in.Handle),
		Species:        strings.TrimSpace(in.Species),
		Breed:          strings.TrimSpace(in.Breed),
		Sex:            strings.TrimSpace(in.Sex),
		BirthDate:      in.BirthDate,
		WeightKg:       in.WeightKg,
		PhotoURL:       strings.TrimSpace(in.PhotoURL),
		OwnerName:      strings.TrimSpace(in.OwnerName),
		MedicalHistory: strings.TrimSpace(in.MedicalHistory),
		Allergies:      strings.TrimSpace(in.Allergies),
		Notes:          strings.TrimSpace(in.Notes),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	return s.repo.GetByID(ctx, id)
}

// GetOwned devuelve la mascota solo si pertenece a userID.
// Este servicio no tiene delegación: todo acceso es owner-only.
func (s *Service) GetOwned(ctx context.Context, petID, userID string) (Pet, error) {
	p, err := s.repo.GetByID(ctx, petID)
	if err != nil {
		return Pet{}, err
	}
	if p.OwnerUserID != userID {
		return Pet{}, ErrForbidden
	}
	return p, nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error) {
	return s.repo.ListByOwner(ctx, ownerUserID)
}

type UpdateInput struct {
	// Punteros para PATCH real: nil = no tocar.
	Name           *string
	Handle         *string
	Species        *string
	Breed          *string
	Sex            *string
	BirthDate      *time.Time
	WeightKg       *float64
	PhotoURL       *string
	OwnerName      *string
	MedicalHistory *string
	Allergies      *string
	Notes          *string
}

func (s *Service) Update(ctx context.Context, petID, userID string, in UpdateInput) (Pet, error) {
	p, err := s.GetOwned(ctx, petID, userID)
	if err != nil {
		return Pet{}, err
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return Pet{}, ErrInvalidInput
		}
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Handle != nil {
		p.Handle = strings.TrimSpace(*in.Handle)
	}
	if in.Species != nil {
		if strings.TrimSpace(*in.Species) == "" {
			return Pet{}, ErrInvalidInput
		}
		p.Species = strings.TrimSpace(*in.Species)
	}
	if in.Breed != nil {
		p.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Sex != nil {
		p.Sex = strings.TrimSpace(*in.Sex)
	}
	if in.BirthDate != nil {
		p.BirthDate = in.BirthDate
	}
	if in.WeightKg != nil {
		p.WeightKg = in.WeightKg
	}
	if in.PhotoURL != nil {
		p.PhotoURL = strings.TrimSpace(*in.PhotoURL)
	}
	if in.OwnerName != nil {
		p.OwnerName = strings.TrimSpace(*in.OwnerName)
	}
	if in.MedicalHistory != nil {
		p.MedicalHistory = strings.TrimSpace(*in.MedicalHistory)
	}
	if in.Allergies != nil {
		p.Allergies = strings.TrimSpace(*in.Allergies)
	}
	if in.Notes != nil {
		p.Notes = strings.TrimSpace(*in.Notes)
	}

	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}
