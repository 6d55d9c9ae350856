package rewards

import "context"

type Repository interface {
	Append(ctx context.Context, e Event) error
	Balance(ctx context.Context, userID string) (int, error)
}
