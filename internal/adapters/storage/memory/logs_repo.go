package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"soycraft-insights/internal/domain/logs"
)

// logsRepo guarda los cuatro tipos de log en slices por mascota. Alcanza
// para dev y tests; el orden de lectura (logged_at desc) se aplica al
// listar, no al insertar.
type logsRepo struct {
	mu           sync.RWMutex
	food         map[string][]logs.FoodLog
	stool        map[string][]logs.StoolLog
	supplements  map[string][]logs.SupplementLog
	measurements map[string][]logs.MeasurementLog
}

func NewLogsRepo() logs.Repository {
	return &logsRepo{
		food:         make(map[string][]logs.FoodLog),
		stool:        make(map[string][]logs.StoolLog),
		supplements:  make(map[string][]logs.SupplementLog),
		measurements: make(map[string][]logs.MeasurementLog),
	}
}

func inWindow(loggedAt time.Time, filter logs.ListFilter) bool {
	if filter.From != nil && loggedAt.Before(*filter.From) {
		return false
	}
	if filter.To != nil && loggedAt.After(*filter.To) {
		return false
	}
	return true
}

func (r *logsRepo) CreateFood(ctx context.Context, l logs.FoodLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.food[l.PetID] = append(r.food[l.PetID], l)
	return nil
}

func (r *logsRepo) ListFood(ctx context.Context, petID string, filter logs.ListFilter) ([]logs.FoodLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]logs.FoodLog, 0)
	for _, l := range r.food[petID] {
		if inWindow(l.LoggedAt, filter) {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LoggedAt.After(out[j].LoggedAt) })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *logsRepo) DeleteFood(ctx context.Context, petID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := r.food[petID]
	for i, l := range items {
		if l.ID == id {
			r.food[petID] = append(items[:i], items[i+1:]...)
			return nil
		}
	}
	return logs.ErrNotFound
}

func (r *logsRepo) CreateStool(ctx context.Context, l logs.StoolLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stool[l.PetID] = append(r.stool[l.PetID], l)
	return nil
}

func (r *logsRepo) ListStool(ctx context.Context, petID string, filter logs.ListFilter) ([]logs.StoolLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]logs.StoolLog, 0)
	for _, l := range r.stool[petID] {
		if inWindow(l.LoggedAt, filter) {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LoggedAt.After(out[j].LoggedAt) })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *logsRepo) DeleteStool(ctx context.Context, petID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := r.stool[petID]
	for i, l := range items {
		if l.ID == id {
			r.stool[petID] = append(items[:i], items[i+1:]...)
			return nil
		}
	}
	return logs.ErrNotFound
}

func (r *logsRepo) CreateSupplement(ctx context.Context, l logs.SupplementLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.supplements[l.PetID] = append(r.supplements[l.PetID], l)
	return nil
}

func (r *logsRepo) ListSupplements(ctx context.Context, petID string, filter logs.ListFilter) ([]logs.SupplementLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]logs.SupplementLog, 0)
	for _, l := range r.supplements[petID] {
		if inWindow(l.LoggedAt, filter) {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LoggedAt.After(out[j].LoggedAt) })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *logsRepo) DeleteSupplement(ctx context.Context, petID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := r.supplements[petID]
	for i, l := range items {
		if l.ID == id {
			r.supplements[petID] = append(items[:i], items[i+1:]...)
			return nil
		}
	}
	return logs.ErrNotFound
}

func (r *logsRepo) CreateMeasurement(ctx context.Context, l logs.MeasurementLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.measurements[l.PetID] = append(r.measurements[l.PetID], l)
	return nil
}

func (r *logsRepo) ListMeasurements(ctx context.Context, petID string, filter logs.ListFilter) ([]logs.MeasurementLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]logs.MeasurementLog, 0)
	for _, l := range r.measurements[petID] {
		if inWindow(l.LoggedAt, filter) {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LoggedAt.After(out[j].LoggedAt) })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *logsRepo) DeleteMeasurement(ctx context.Context, petID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := r.measurements[petID]
	for i, l := range items {
		if l.ID == id {
			r.measurements[petID] = append(items[:i], items[i+1:]...)
			return nil
		}
	}
	return logs.ErrNotFound
}
