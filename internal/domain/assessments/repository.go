package assessments

import "context"

type Repository interface {
	// Append agrega una nota nueva; nunca actualiza.
	Append(ctx context.Context, n HealthNote) error
	// ListByPet devuelve las notas más recientes primero.
	ListByPet(ctx context.Context, petID string, limit int) ([]HealthNote, error)
}
