package memory

import (
	"context"
	"sync"

	"soycraft-insights/internal/domain/rewards"
)

type rewardsRepo struct {
	mu     sync.RWMutex
	byUser map[string][]rewards.Event
}

func NewRewardsRepo() rewards.Repository {
	return &rewardsRepo{
		byUser: make(map[string][]rewards.Event),
	}
}

func (r *rewardsRepo) Append(ctx context.Context, e rewards.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byUser[e.UserID] = append(r.byUser[e.UserID], e)
	return nil
}

func (r *rewardsRepo) Balance(ctx context.Context, userID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := 0
	for _, e := range r.byUser[userID] {
		total += e.Credits
	}
	return total, nil
}
