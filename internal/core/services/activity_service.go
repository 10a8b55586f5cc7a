package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/dayfinder/internal/core/domain"
	"github.com/vncsmyrnk/dayfinder/internal/core/ports"
)

// ActivityService keeps the local log of backend actions. A nil
// *ActivityService records nothing.
type ActivityService struct {
	repo   ports.ActivityRepository
	logger *slog.Logger
	now    func() time.Time
}

func NewActivityService(repo ports.ActivityRepository, logger *slog.Logger) *ActivityService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ActivityService{repo: repo, logger: logger, now: time.Now}
}

// Record stores the outcome of an action. Storage failures are logged and
// never reach the caller.
func (s *ActivityService) Record(ctx context.Context, kind domain.ActivityKind, pollID uuid.UUID, actionErr error) {
	if s == nil || s.repo == nil {
		return
	}
	a := domain.NewActivity(kind, pollID, actionErr, s.now())
	if err := s.repo.Record(ctx, a); err != nil {
		s.logger.Warn("failed to record activity", "kind", kind, "error", err)
	}
}

func (s *ActivityService) Recent(ctx context.Context, limit int) ([]domain.Activity, error) {
	if s == nil || s.repo == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}
	return s.repo.List(ctx, limit)
}
