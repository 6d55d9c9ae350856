package logs

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
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

type CreateFoodInput struct {
	FoodName   string
	AmountG    float64
	MealType   MealType
	Calories   *float64
	ProteinPct *float64
	FatPct     *float64
	CarbPct    *float64
	Notes      string
	Photo      PhotoMeta
	LoggedAt   time.Time
}

func (s *Service) CreateFood(ctx context.Context, petID string, in CreateFoodInput) (FoodLog, error) {
	if strings.TrimSpace(petID) == "" {
		return FoodLog{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.FoodName) == "" {
		return FoodLog{}, ErrInvalidInput
	}
	if in.AmountG < 0 {
		return FoodLog{}, ErrInvalidInput
	}
	if err := ValidatePhoto(in.Photo); err != nil {
		return FoodLog{}, err
	}

	loggedAt := in.LoggedAt
	if loggedAt.IsZero() {
		loggedAt = s.now()
	}

	l := FoodLog{
		ID:         uuid.NewString(),
		PetID:      petID,
		FoodName:   strings.TrimSpace(in.FoodName),
		AmountG:    in.AmountG,
		MealType:   in.MealType,
		Calories:   in.Calories,
		ProteinPct: in.ProteinPct,
		FatPct:     in.FatPct,
		CarbPct:    in.CarbPct,
		Notes:      strings.TrimSpace(in.Notes),
		PhotoURL:   strings.TrimSpace(in.Photo.URL),
		LoggedAt:   loggedAt,
		RecordedAt: s.now(),
	}

	if err := s.repo.CreateFood(ctx, l); err != nil {
		return FoodLog{}, err
	}
	return l, nil
}

type CreateStoolInput struct {
	Consistency   Consistency
	Color         Color
	Amount        Amount
	Moisture      Moisture
	BloodPresent  bool
	MucusPresent  bool
	SmellLevel    int
	Behaviors     []Behavior
	BehaviorNotes string
	UserRating    int
	Location      string
	Notes         string
	Photo         PhotoMeta
	LoggedAt      time.Time
}

func (s *Service) CreateStool(ctx context.Context, petID string, in CreateStoolInput) (StoolLog, error) {
	if strings.TrimSpace(petID) == "" {
		return StoolLog{}, ErrInvalidInput
	}
	if !validConsistency(in.Consistency) {
		return StoolLog{}, ErrInvalidInput
	}
	if !validColor(in.Color) {
		return StoolLog{}, ErrInvalidInput
	}
	if !validMoisture(in.Moisture) {
		return StoolLog{}, ErrInvalidInput
	}
	if in.SmellLevel < 0 || in.SmellLevel > 5 {
		return StoolLog{}, ErrInvalidInput
	}
	if in.UserRating < 0 || in.UserRating > 10 {
		return StoolLog{}, ErrInvalidInput
	}
	if err := ValidatePhoto(in.Photo); err != nil {
		return StoolLog{}, err
	}

	loggedAt := in.LoggedAt
	if loggedAt.IsZero() {
		loggedAt = s.now()
	}

	l := StoolLog{
		ID:            uuid.NewString(),
		PetID:         petID,
		Consistency:   in.Consistency,
		Color:         in.Color,
		Amount:        in.Amount,
		Moisture:      in.Moisture,
		BloodPresent:  in.BloodPresent,
		MucusPresent:  in.MucusPresent,
		SmellLevel:    in.SmellLevel,
		Behaviors:     in.Behaviors,
		BehaviorNotes: strings.TrimSpace(in.BehaviorNotes),
		UserRating:    in.UserRating,
		Location:      strings.TrimSpace(in.Location),
		Notes:         strings.TrimSpace(in.Notes),
		PhotoURL:      strings.TrimSpace(in.Photo.URL),
		LoggedAt:      loggedAt,
		RecordedAt:    s.now(),
	}

	if err := s.repo.CreateStool(ctx, l); err != nil {
		return StoolLog{}, err
	}
	return l, nil
}

type CreateSupplementInput struct {
	SupplementName string
	Dosage         string
	Frequency      SupplementFrequency
	Purpose        string
	Notes          string
	Photo          PhotoMeta
	LoggedAt       time.Time
}

func (s *Service) CreateSupplement(ctx context.Context, petID string, in CreateSupplementInput) (SupplementLog, error) {
	if strings.TrimSpace(petID) == "" {
		return SupplementLog{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.SupplementName) == "" {
		return SupplementLog{}, ErrInvalidInput
	}
	if err := ValidatePhoto(in.Photo); err != nil {
		return SupplementLog{}, err
	}

	freq := in.Frequency
	if freq == "" {
		freq = FrequencyDaily
	}

	loggedAt := in.LoggedAt
	if loggedAt.IsZero() {
		loggedAt = s.now()
	}

	l := SupplementLog{
		ID:             uuid.NewString(),
		PetID:          petID,
		SupplementName: strings.TrimSpace(in.SupplementName),
		Dosage:         strings.TrimSpace(in.Dosage),
		Frequency:      freq,
		Purpose:        strings.TrimSpace(in.Purpose),
		Notes:          strings.TrimSpace(in.Notes),
		PhotoURL:       strings.TrimSpace(in.Photo.URL),
		LoggedAt:       loggedAt,
		RecordedAt:     s.now(),
	}

	if err := s.repo.CreateSupplement(ctx, l); err != nil {
		return SupplementLog{}, err
	}
	return l, nil
}

type CreateMeasurementInput struct {
	WeightKg     *float64
	NeckCm       *float64
	ChestCm      *float64
	BodyLengthCm *float64
	Notes        string
	LoggedAt     time.Time
}

func (s *Service) CreateMeasurement(ctx context.Context, petID string, in CreateMeasurementInput) (MeasurementLog, error) {
	if strings.TrimSpace(petID) == "" {
		return MeasurementLog{}, ErrInvalidInput
	}
	// Al menos una medición con valor.
	if in.WeightKg == nil && in.NeckCm == nil && in.ChestCm == nil && in.BodyLengthCm == nil {
		return MeasurementLog{}, ErrInvalidInput
	}

	loggedAt := in.LoggedAt
	if loggedAt.IsZero() {
		loggedAt = s.now()
	}

	l := MeasurementLog{
		ID:           uuid.NewString(),
		PetID:        petID,
		WeightKg:     in.WeightKg,
		NeckCm:       in.NeckCm,
		ChestCm:      in.ChestCm,
		BodyLengthCm: in.BodyLengthCm,
		Notes:        strings.TrimSpace(in.Notes),
		LoggedAt:     loggedAt,
		RecordedAt:   s.now(),
	}

	if err := s.repo.CreateMeasurement(ctx, l); err != nil {
		return MeasurementLog{}, err
	}
	return l, nil
}

func (s *Service) ListFood(ctx context.Context, petID string, filter ListFilter) ([]FoodLog, error) {
	return s.repo.ListFood(ctx, petID, filter)
}

func (s *Service) ListStool(ctx context.Context, petID string, filter ListFilter) ([]StoolLog, error) {
	return s.repo.ListStool(ctx, petID, filter)
}

func (s *Service) ListSupplements(ctx context.Context, petID string, filter ListFilter) ([]SupplementLog, error) {
	return s.repo.ListSupplements(ctx, petID, filter)
}

func (s *Service) ListMeasurements(ctx context.Context, petID string, filter ListFilter) ([]MeasurementLog, error) {
	return s.repo.ListMeasurements(ctx, petID, filter)
}

func (s *Service) Delete(ctx context.Context, kind Kind, petID, id string) error {
	if strings.TrimSpace(petID) == "" || strings.TrimSpace(id) == "" {
		return ErrInvalidInput
	}
	switch kind {
	case KindFood:
		return s.repo.DeleteFood(ctx, petID, id)
	case KindStool:
		return s.repo.DeleteStool(ctx, petID, id)
	case KindSupplement:
		return s.repo.DeleteSupplement(ctx, petID, id)
	case KindMeasurement:
		return s.repo.DeleteMeasurement(ctx, petID, id)
	default:
		return ErrInvalidInput
	}
}

// Since devuelve un ListFilter para la ventana [now-days, now].
func Since(now time.Time, days int) ListFilter {
	from := now.AddDate(0, 0, -days)
	return ListFilter{From: &from, To: &now}
}
