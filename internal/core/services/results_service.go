package services

import (
	"context"

	"github.com/vncsmyrnk/dayfinder/internal/core/domain"
	"github.com/vncsmyrnk/dayfinder/internal/core/ports"
)

const (
	LabelShare            = "Share with chat"
	MsgDeleteTitle        = "Delete poll?"
	MsgDeleteConfirm      = "Are you sure you want to delete this poll and all of its responses? This cannot be undone!"
	MsgDeleteFailedText   = "An error occurred while deleting the poll: "
	ButtonDeleteConfirmed = "ok"
)

type ResultsView struct {
	Poll      domain.Poll
	Summary   []domain.DaySummary
	Owner     bool
	Expanded  bool
	DarkTheme bool
	Busy      bool
}

// ResultsScreen drives the results page of one poll.
type ResultsScreen struct {
	screen
	api      ports.PollAPI
	poll     domain.Poll
	botName  string
	expanded bool
}

func NewResultsScreen(host ports.HostBridge, api ports.PollAPI, activity *ActivityService, poll domain.Poll, botName string) *ResultsScreen {
	return &ResultsScreen{
		screen:  newScreen(host, activity),
		api:     api,
		poll:    poll,
		botName: botName,
	}
}

func (s *ResultsScreen) Open(ctx context.Context) {
	s.host.MainButton().SetText(LabelShare)
	s.host.MainButton().Show()
	s.host.Expand()
}

// IsOwner compares the unverified launch user with the poll owner. The
// backend checks ownership again on delete.
func (s *ResultsScreen) IsOwner() bool {
	user := s.host.InitDataUnsafe().User
	return user.ID != 0 && user.ID == s.poll.OwnerID
}

func (s *ResultsScreen) Share() {
	s.caps.Share(s.poll.ID, s.botName)
}

// ToggleExpandAll flips the expanded state of every voter list and returns
// the new state.
func (s *ResultsScreen) ToggleExpandAll() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expanded = !s.expanded
	return s.expanded
}

func (s *ResultsScreen) View() ResultsView {
	owner := s.IsOwner()
	dark := s.host.ColorScheme() == "dark"

	s.mu.Lock()
	defer s.mu.Unlock()
	return ResultsView{
		Poll:      s.poll,
		Summary:   domain.Summarize(s.poll),
		Owner:     owner,
		Expanded:  s.expanded,
		DarkTheme: dark,
		Busy:      s.busy,
	}
}

// AskDelete asks for confirmation and deletes the poll. The page is closed only
// once the backend accepted the deletion.
func (s *ResultsScreen) AskDelete(ctx context.Context) error {
	if !s.IsOwner() {
		return domain.ErrNotOwner
	}
	if err := s.acquire(); err != nil {
		return err
	}
	defer s.release()

	answer, err := s.caps.Ask(ctx, ports.Popup{
		Title:   MsgDeleteTitle,
		Message: MsgDeleteConfirm,
		Buttons: []ports.PopupButton{
			{ID: ButtonDeleteConfirmed, Type: ports.ButtonDestructive, Text: "Delete Poll"},
			{ID: "cancel", Type: ports.ButtonCancel},
		},
	})
	if err != nil {
		return err
	}
	if answer != ButtonDeleteConfirmed {
		return domain.ErrCancelled
	}

	err = s.request(func() error {
		return s.api.DeletePoll(ctx, ports.DeletePollInput{PollID: s.poll.ID, InitData: s.host.InitData()})
	})
	s.activity.Record(ctx, domain.ActivityDelete, s.poll.ID, err)
	if err != nil {
		return s.fail(ctx, MsgDeleteFailedText, err)
	}

	s.logger.Info("poll deleted", "poll_id", s.poll.ID)
	s.caps.Haptic(ports.HapticSuccess)
	s.host.Close()
	return nil
}
