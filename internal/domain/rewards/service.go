package rewards

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrInvalidInput = errors.New("invalid input")

type Service struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewService(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// Award acredita la actividad en modo best-effort: cualquier falla se loguea
// y se continúa. Es el ÚNICO lugar del servicio donde un error se traga;
// el registro de cuidado ya quedó persistido y no debe fallar por esto.
func (s *Service) Award(ctx context.Context, userID string, activity Activity, metadata map[string]string) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return
	}
	credits, ok := creditsByActivity[activity]
	if !ok {
		s.logger.Warn("unknown reward activity", zap.String("activity", string(activity)))
		return
	}

	e := Event{
		ID:        uuid.NewString(),
		UserID:    userID,
		Activity:  activity,
		Credits:   credits,
		Metadata:  metadata,
		CreatedAt: s.now(),
	}

	if err := s.repo.Append(ctx, e); err != nil {
		s.logger.Warn("failed to award credits",
			zap.String("user_id", userID),
			zap.String("activity", string(activity)),
			zap.Error(err))
	}
}

func (s *Service) Balance(ctx context.Context, userID string) (int, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return 0, ErrInvalidInput
	}
	return s.repo.Balance(ctx, userID)
}
