package services

import (
	"context"
	"log/slog"
	"sync"

	"github.com/vncsmyrnk/dayfinder/internal/core/domain"
	"github.com/vncsmyrnk/dayfinder/internal/core/ports"
)

// screen holds what every page shares: the host, the capability policy and
// the guard allowing one outstanding request at a time.
type screen struct {
	host     ports.HostBridge
	caps     Capabilities
	activity *ActivityService
	logger   *slog.Logger

	mu   sync.Mutex
	busy bool
}

func newScreen(host ports.HostBridge, activity *ActivityService) screen {
	return screen{
		host:     host,
		caps:     NewCapabilities(host),
		activity: activity,
		logger:   slog.Default(),
	}
}

// SetLogger replaces the default logger.
func (s *screen) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

func (s *screen) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

func (s *screen) acquire() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return domain.ErrBusy
	}
	s.busy = true
	return nil
}

func (s *screen) release() {
	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
}

// request runs fn with the main button in its progress state.
func (s *screen) request(fn func() error) error {
	button := s.host.MainButton()
	button.ShowProgress()
	defer button.HideProgress()
	return fn()
}

// fail reports err to the user as prefix followed by its message and
// returns it. The page stays open.
func (s *screen) fail(ctx context.Context, prefix string, err error) error {
	s.logger.Error("request failed", "error", err)
	s.caps.Haptic(ports.HapticError)
	if alertErr := s.host.Alert(ctx, prefix+domain.UserMessage(err)); alertErr != nil {
		s.logger.Warn("failed to show alert", "error", alertErr)
	}
	return err
}
