package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/dayfinder/internal/core/domain"
	"github.com/vncsmyrnk/dayfinder/internal/core/ports"
)

const (
	LabelCreatePoll     = "Create poll"
	MsgConfirmCreate    = "Do you want to save the poll? You cannot edit it later."
	MsgCreateFailedText = "An error occurred while sending the poll: "
)

// CreateView is what the create page renders.
type CreateView struct {
	Title        string
	Description  string
	Notification bool
	Entries      []domain.DayEntry
	Validated    bool
	AddButton    domain.ControlState
	MissingTitle bool
	Busy         bool
}

// CreateScreen drives the create page.
type CreateScreen struct {
	screen
	api   ports.PollAPI
	now   func() time.Time
	draft *domain.PollDraft

	closingConfirmation bool
	missingTitle        bool
}

func NewCreateScreen(host ports.HostBridge, api ports.PollAPI, activity *ActivityService) *CreateScreen {
	return &CreateScreen{
		screen: newScreen(host, activity),
		api:    api,
		now:    time.Now,
		draft:  domain.NewPollDraft(),
	}
}

// SetClock replaces the source of "today".
func (s *CreateScreen) SetClock(now func() time.Time) {
	s.now = now
}

func (s *CreateScreen) Open(ctx context.Context) {
	s.host.MainButton().SetText(LabelCreatePoll)
	s.host.MainButton().Show()
	s.host.Expand()
}

func (s *CreateScreen) AddDay() domain.DayEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.Days.Add(domain.DayOf(s.now()))
}

func (s *CreateScreen) ChangeDay(id uuid.UUID, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.Days.Reorder(id, value)
}

func (s *CreateScreen) RemoveDay(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.Days.Remove(id)
}

// TakePickerRequest returns the entry whose date picker should open.
func (s *CreateScreen) TakePickerRequest() (uuid.UUID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.Days.TakePickerRequest()
}

func (s *CreateScreen) SetTitle(v string) {
	s.mu.Lock()
	s.draft.Title = v
	s.mu.Unlock()
	s.enableClosingConfirmation()
}

func (s *CreateScreen) SetDescription(v string) {
	s.mu.Lock()
	s.draft.Description = v
	s.mu.Unlock()
	s.enableClosingConfirmation()
}

func (s *CreateScreen) SetNotification(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Notification = v
}

func (s *CreateScreen) enableClosingConfirmation() {
	s.mu.Lock()
	first := !s.closingConfirmation
	s.closingConfirmation = true
	s.mu.Unlock()

	if first {
		s.caps.EnableClosingConfirmation()
	}
}

func (s *CreateScreen) View() CreateView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return CreateView{
		Title:        s.draft.Title,
		Description:  s.draft.Description,
		Notification: s.draft.Notification,
		Entries:      s.draft.Days.Entries(),
		Validated:    s.draft.Days.WasValidated(),
		AddButton:    s.draft.Days.AddButtonState(),
		MissingTitle: s.missingTitle,
		Busy:         s.busy,
	}
}

// Submit validates the draft, asks for confirmation and sends it. The page
// is closed only after the backend accepted the poll.
func (s *CreateScreen) Submit(ctx context.Context) error {
	if err := s.acquire(); err != nil {
		return err
	}
	defer s.release()

	input, err := s.validate()
	if err != nil {
		s.caps.Haptic(ports.HapticWarning)
		return err
	}

	answer, err := s.caps.Ask(ctx, ports.Popup{
		Message: MsgConfirmCreate,
		Buttons: []ports.PopupButton{
			{ID: "ok", Type: ports.ButtonOK},
			{ID: "cancel", Type: ports.ButtonCancel},
		},
	})
	if err != nil {
		return err
	}
	if answer != "ok" {
		return domain.ErrCancelled
	}

	input.InitData = s.host.InitData()
	err = s.request(func() error {
		return s.api.CreatePoll(ctx, input)
	})
	s.activity.Record(ctx, domain.ActivityCreate, uuid.Nil, err)
	if err != nil {
		return s.fail(ctx, MsgCreateFailedText, err)
	}

	s.logger.Info("poll created", "title", input.Title, "days", len(input.Days))
	s.caps.Haptic(ports.HapticSuccess)
	s.host.Close()
	return nil
}

func (s *CreateScreen) validate() (ports.CreatePollInput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := s.draft.Validate()
	s.missingTitle = v.MissingTitle
	if !v.Valid() {
		return ports.CreatePollInput{}, fmt.Errorf("%w: %s", domain.ErrValidation, describe(v))
	}

	return ports.CreatePollInput{
		Title:        s.draft.Title,
		Description:  s.draft.Description,
		Notification: s.draft.Notification,
		Days:         s.draft.Days.Days(),
	}, nil
}

func describe(v domain.DraftValidation) string {
	switch {
	case v.MissingTitle:
		return "title is required"
	case v.Days.TooFewDays:
		return fmt.Sprintf("at least %d days are required", domain.MinPollDays)
	case len(v.Days.Duplicates) > 0:
		return "days must be unique"
	default:
		return "days must not be in the past"
	}
}
