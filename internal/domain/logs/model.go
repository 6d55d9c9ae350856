package logs

import "time"

// FoodLog es una comida registrada.
type FoodLog struct {
	ID    string
	PetID string

	FoodName   string
	AmountG    float64
	MealType   MealType
	Calories   *float64
	ProteinPct *float64
	FatPct     *float64
	CarbPct    *float64

	Notes    string
	PhotoURL string

	LoggedAt   time.Time
	RecordedAt time.Time
}

// StoolLog es una observación de deposición. Es el insumo del evaluador de
// reglas: los campos opcionales vacíos simplemente no disparan reglas.
// Inmutable salvo edición/borrado explícito del dueño; las evaluaciones
// trabajan sobre el snapshot que les pasan, no sobre un puntero vivo.
type StoolLog struct {
	ID    string
	PetID string

	Consistency Consistency
	Color       Color
	Amount      Amount
	Moisture    Moisture // vacío = no registrado

	BloodPresent bool
	MucusPresent bool
	SmellLevel   int // 1-5; 0 = no registrado

	Behaviors     []Behavior
	BehaviorNotes string

	UserRating int // 1-10 subjetivo; 0 = no registrado
	Location   string
	Notes      string
	PhotoURL   string

	LoggedAt   time.Time
	RecordedAt time.Time
}

// SupplementLog es un suplemento administrado.
type SupplementLog struct {
	ID    string
	PetID string

	SupplementName string
	Dosage         string
	Frequency      SupplementFrequency
	Purpose        string

	Notes    string
	PhotoURL string

	LoggedAt   time.Time
	RecordedAt time.Time
}

// MeasurementLog es una medición corporal.
type MeasurementLog struct {
	ID    string
	PetID string

	WeightKg     *float64
	NeckCm       *float64
	ChestCm      *float64
	BodyLengthCm *float64

	Notes string

	LoggedAt   time.Time
	RecordedAt time.Time
}

// HasMeaningfulBehaviors devuelve true si hay flags de conducta que no sean
// solo not_applicable.
func (s StoolLog) HasMeaningfulBehaviors() bool {
	for _, b := range s.Behaviors {
		if b != BehaviorNotApplicable {
			return true
		}
	}
	return false
}
