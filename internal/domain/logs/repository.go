package logs

import (
	"context"
	"time"
)

// ListFilter acota una lectura de logs. Los resultados siempre vienen
// ordenados por logged_at descendente (más reciente primero).
type ListFilter struct {
	From  *time.Time
	To    *time.Time
	Limit int
}

type Repository interface {
	CreateFood(ctx context.Context, l FoodLog) error
	ListFood(ctx context.Context, petID string, filter ListFilter) ([]FoodLog, error)
	DeleteFood(ctx context.Context, petID, id string) error

	CreateStool(ctx context.Context, l StoolLog) error
	ListStool(ctx context.Context, petID string, filter ListFilter) ([]StoolLog, error)
	DeleteStool(ctx context.Context, petID, id string) error

	CreateSupplement(ctx context.Context, l SupplementLog) error
	ListSupplements(ctx context.Context, petID string, filter ListFilter) ([]SupplementLog, error)
	DeleteSupplement(ctx context.Context, petID, id string) error

	CreateMeasurement(ctx context.Context, l MeasurementLog) error
	ListMeasurements(ctx context.Context, petID string, filter ListFilter) ([]MeasurementLog, error)
	DeleteMeasurement(ctx context.Context, petID, id string) error
}
