package logs

import (
	"context"
	"errors"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	food         []FoodLog
	stool        []StoolLog
	supplements  []SupplementLog
	measurements []MeasurementLog
}

func (r *testRepo) CreateFood(ctx context.Context, l FoodLog) error {
	r.food = append(r.food, l)
	return nil
}

func (r *testRepo) ListFood(ctx context.Context, petID string, filter ListFilter) ([]FoodLog, error) {
	out := make([]FoodLog, 0)
	for _, l := range r.food {
		if l.PetID == petID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *testRepo) DeleteFood(ctx context.Context, petID, id string) error {
	for i, l := range r.food {
		if l.PetID == petID && l.ID == id {
			r.food = append(r.food[:i], r.food[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *testRepo) CreateStool(ctx context.Context, l StoolLog) error {
	r.stool = append(r.stool, l)
	return nil
}

func (r *testRepo) ListStool(ctx context.Context, petID string, filter ListFilter) ([]StoolLog, error) {
	out := make([]StoolLog, 0)
	for _, l := range r.stool {
		if l.PetID == petID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *testRepo) DeleteStool(ctx context.Context, petID, id string) error {
	for i, l := range r.stool {
		if l.PetID == petID && l.ID == id {
			r.stool = append(r.stool[:i], r.stool[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *testRepo) CreateSupplement(ctx context.Context, l SupplementLog) error {
	r.supplements = append(r.supplements, l)
	return nil
}

func (r *testRepo) ListSupplements(ctx context.Context, petID string, filter ListFilter) ([]SupplementLog, error) {
	out := make([]SupplementLog, 0)
	for _, l := range r.supplements {
		if l.PetID == petID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *testRepo) DeleteSupplement(ctx context.Context, petID, id string) error {
	for i, l := range r.supplements {
		if l.PetID == petID && l.ID == id {
			r.supplements = append(r.supplements[:i], r.supplements[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *testRepo) CreateMeasurement(ctx context.Context, l MeasurementLog) error {
	r.measurements = append(r.measurements, l)
	return nil
}

func (r *testRepo) ListMeasurements(ctx context.Context, petID string, filter ListFilter) ([]MeasurementLog, error) {
	out := make([]MeasurementLog, 0)
	for _, l := range r.measurements {
		if l.PetID == petID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *testRepo) DeleteMeasurement(ctx context.Context, petID, id string) error {
	for i, l := range r.measurements {
		if l.PetID == petID && l.ID == id {
			r.measurements = append(r.measurements[:i], r.measurements[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// -------------------------
// Tests
// -------------------------

func TestCreateStool_Valid(t *testing.T) {
	repo := &testRepo{}
	svc := NewService(repo)

	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	got, err := svc.CreateStool(context.Background(), "pet-1", CreateStoolInput{
		Consistency: ConsistencyRegular,
		Color:       ColorBrown,
	})
	if err != nil {
		t.Fatalf("CreateStool returned error: %v", err)
	}
	if got.ID == "" {
		t.Fatalf("expected generated id")
	}
	if got.LoggedAt != now {
		t.Fatalf("zero LoggedAt should default to now")
	}
	if got.RecordedAt != now {
		t.Fatalf("RecordedAt should be stamped server-side")
	}
}

func TestCreateStool_InvalidEnums(t *testing.T) {
	svc := NewService(&testRepo{})

	cases := []struct {
		name string
		in   CreateStoolInput
	}{
		{"bad consistency", CreateStoolInput{Consistency: "runny", Color: ColorBrown}},
		{"bad color", CreateStoolInput{Consistency: ConsistencyRegular, Color: "purple"}},
		{"bad moisture", CreateStoolInput{Consistency: ConsistencyRegular, Color: ColorBrown, Moisture: "soaked"}},
		{"smell out of range", CreateStoolInput{Consistency: ConsistencyRegular, Color: ColorBrown, SmellLevel: 6}},
		{"rating out of range", CreateStoolInput{Consistency: ConsistencyRegular, Color: ColorBrown, UserRating: 11}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.CreateStool(context.Background(), "pet-1", tc.in); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestCreateStool_EmptyMoistureIsUnrecorded(t *testing.T) {
	svc := NewService(&testRepo{})

	if _, err := svc.CreateStool(context.Background(), "pet-1", CreateStoolInput{
		Consistency: ConsistencyRegular,
		Color:       ColorBrown,
		Moisture:    "",
	}); err != nil {
		t.Fatalf("empty moisture must be accepted as unrecorded: %v", err)
	}
}

func TestCreateFood_Validation(t *testing.T) {
	svc := NewService(&testRepo{})

	if _, err := svc.CreateFood(context.Background(), "pet-1", CreateFoodInput{FoodName: " "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank name, got %v", err)
	}
	if _, err := svc.CreateFood(context.Background(), "pet-1", CreateFoodInput{FoodName: "kibble", AmountG: -5}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative amount, got %v", err)
	}
}

func TestCreateMeasurement_RequiresAtLeastOneValue(t *testing.T) {
	svc := NewService(&testRepo{})

	if _, err := svc.CreateMeasurement(context.Background(), "pet-1", CreateMeasurementInput{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty measurement, got %v", err)
	}

	w := 12.5
	if _, err := svc.CreateMeasurement(context.Background(), "pet-1", CreateMeasurementInput{WeightKg: &w}); err != nil {
		t.Fatalf("one value should be enough: %v", err)
	}
}

func TestCreateSupplement_DefaultsFrequencyDaily(t *testing.T) {
	svc := NewService(&testRepo{})

	got, err := svc.CreateSupplement(context.Background(), "pet-1", CreateSupplementInput{
		SupplementName: "omega-3",
	})
	if err != nil {
		t.Fatalf("CreateSupplement returned error: %v", err)
	}
	if got.Frequency != FrequencyDaily {
		t.Fatalf("expected daily default, got %s", got.Frequency)
	}
}

func TestValidatePhoto(t *testing.T) {
	if err := ValidatePhoto(PhotoMeta{}); err != nil {
		t.Fatalf("no photo must be valid: %v", err)
	}
	if err := ValidatePhoto(PhotoMeta{URL: "https://cdn/p.jpg", ContentType: "image/jpeg", SizeBytes: 1024}); err != nil {
		t.Fatalf("valid photo rejected: %v", err)
	}
	if err := ValidatePhoto(PhotoMeta{URL: "https://cdn/p.pdf", ContentType: "application/pdf"}); !errors.Is(err, ErrInvalidPhoto) {
		t.Fatalf("expected ErrInvalidPhoto for pdf, got %v", err)
	}
	if err := ValidatePhoto(PhotoMeta{URL: "https://cdn/p.jpg", ContentType: "image/jpeg", SizeBytes: MaxPhotoBytes + 1}); !errors.Is(err, ErrInvalidPhoto) {
		t.Fatalf("expected ErrInvalidPhoto for oversized photo, got %v", err)
	}
}

func TestCreateStool_RejectsInvalidPhotoBeforeWrite(t *testing.T) {
	repo := &testRepo{}
	svc := NewService(repo)

	_, err := svc.CreateStool(context.Background(), "pet-1", CreateStoolInput{
		Consistency: ConsistencyRegular,
		Color:       ColorBrown,
		Photo:       PhotoMeta{URL: "https://cdn/x.mp4", ContentType: "video/mp4"},
	})
	if !errors.Is(err, ErrInvalidPhoto) {
		t.Fatalf("expected ErrInvalidPhoto, got %v", err)
	}
	if len(repo.stool) != 0 {
		t.Fatalf("invalid photo must reject the whole record, found %d writes", len(repo.stool))
	}
}

func TestDelete_UnknownKind(t *testing.T) {
	svc := NewService(&testRepo{})
	if err := svc.Delete(context.Background(), Kind("video"), "pet-1", "log-1"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown kind, got %v", err)
	}
}

func TestSince_Window(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	f := Since(now, 7)
	if f.From == nil || f.To == nil {
		t.Fatalf("expected both bounds set")
	}
	if !f.From.Equal(now.AddDate(0, 0, -7)) {
		t.Fatalf("unexpected From: %v", f.From)
	}
	if !f.To.Equal(now) {
		t.Fatalf("unexpected To: %v", f.To)
	}
}
