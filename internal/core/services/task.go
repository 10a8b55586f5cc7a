package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/vncsmyrnk/dayfinder/internal/core/domain"
)

// TaskRunner runs UI-triggered work in the background and logs how it ended.
type TaskRunner struct {
	logger *slog.Logger
	wg     sync.WaitGroup
}

func NewTaskRunner(logger *slog.Logger) *TaskRunner {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskRunner{logger: logger}
}

func (r *TaskRunner) Go(ctx context.Context, name string, fn func(ctx context.Context) error) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		if err := r.run(ctx, fn); err != nil {
			r.log(name, err)
			return
		}
		r.logger.Debug("task done", "task", name)
	}()
}

// Wait blocks until every started task has returned.
func (r *TaskRunner) Wait() {
	r.wg.Wait()
}

func (r *TaskRunner) run(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return fn(ctx)
}

func (r *TaskRunner) log(name string, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrCancelled), errors.Is(err, domain.ErrBusy):
		r.logger.Debug("task stopped", "task", name, "reason", err)
	case errors.Is(err, context.Canceled):
		r.logger.Info("task cancelled", "task", name)
	default:
		r.logger.Error("task failed", "task", name, "error", err)
	}
}
