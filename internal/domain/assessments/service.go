package assessments

import (
	"context"
	"errors"
	"strings"
	"time"

	"soycraft-insights/internal/domain/triage"

	"github.com/google/uuid"
)

var ErrInvalidInput = errors.New("invalid input")

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
	Summary         string
	Recommendations string
	RiskLevel       triage.RiskTier
	OwnerMessage    string
	TriggeredRules  []string
}

func (s *Service) Create(ctx context.Context, petID string, in CreateInput) (HealthNote, error) {
	if strings.TrimSpace(petID) == "" {
		return HealthNote{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Summary) == "" {
		return HealthNote{}, ErrInvalidInput
	}
	if !triage.ValidRiskTier(string(in.RiskLevel)) {
		return HealthNote{}, ErrInvalidInput
	}

	n := HealthNote{
		ID:              uuid.NewString(),
		PetID:           petID,
		Summary:         strings.TrimSpace(in.Summary),
		Recommendations: strings.TrimSpace(in.Recommendations),
		RiskLevel:       in.RiskLevel,
		OwnerMessage:    strings.TrimSpace(in.OwnerMessage),
		TriggeredRules:  in.TriggeredRules,
		CreatedAt:       s.now(),
	}

	if err := s.repo.Append(ctx, n); err != nil {
		return HealthNote{}, err
	}
	return n, nil
}

func (s *Service) ListByPet(ctx context.Context, petID string, limit int) ([]HealthNote, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.repo.ListByPet(ctx, petID, limit)
}

// Latest devuelve la nota más reciente, o nil si no hay historia.
func (s *Service) Latest(ctx context.Context, petID string) (*HealthNote, error) {
	items, err := s.repo.ListByPet(ctx, petID, 1)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	return &items[0], nil
}
