package memory

import (
	"context"
	"sort"
	"sync"

	"soycraft-insights/internal/domain/assessments"
)

type notesRepo struct {
	mu    sync.RWMutex
	byPet map[string][]assessments.HealthNote
}

func NewNotesRepo() assessments.Repository {
	return &notesRepo{
		byPet: make(map[string][]assessments.HealthNote),
	}
}

func (r *notesRepo) Append(ctx context.Context, n assessments.HealthNote) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byPet[n.PetID] = append(r.byPet[n.PetID], n)
	return nil
}

func (r *notesRepo) ListByPet(ctx context.Context, petID string, limit int) ([]assessments.HealthNote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.byPet[petID]
	out := make([]assessments.HealthNote, len(items))
	copy(out, items)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
