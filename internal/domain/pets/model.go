package pets

import "time"

// Species define las especies soportadas.
// @Enum dog, cat
type Species string

const (
	SpeciesDog Species = "dog"
	SpeciesCat Species = "cat"
)

// Sex define el sexo de la mascota.
// @Enum male, female, unknown
type Sex string

const (
	SexMale    Sex = "male"
	SexFemale  Sex = "female"
	SexUnknown Sex = "unknown"
)

// Pet representa el perfil de una mascota registrada en el sistema.
// El perfil alimenta el armado de prompts (insights), así que lleva
// campos de contexto como historial médico y alergias.
type Pet struct {
	ID          string
	OwnerUserID string

	Name    string
	Handle  string // alias corto para la UI/comunidad
	Species string // dog, cat
	Breed   string
	Sex     string // male, female, unknown

	BirthDate *time.Time
	WeightKg  *float64
	PhotoURL  string

	OwnerName      string
	MedicalHistory string
	Allergies      string
	Notes          string

	CreatedAt time.Time
	UpdatedAt time.Time
}
