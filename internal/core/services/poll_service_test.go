package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/dayfinder/internal/core/domain"
	"github.com/vncsmyrnk/dayfinder/internal/core/ports"
	"github.com/vncsmyrnk/dayfinder/internal/core/services"
)

var fixedNow = time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)

func newCreateScreen(host *fakeHost, api *mockPollAPI, repo *memActivityRepo) *services.CreateScreen {
	s := services.NewCreateScreen(host, api, services.NewActivityService(repo, nil))
	s.SetClock(func() time.Time { return fixedNow })
	return s
}

func fillValidDraft(t *testing.T, s *services.CreateScreen) {
	t.Helper()
	s.SetTitle("Team dinner")
	first := s.AddDay()
	require.NoError(t, s.ChangeDay(first.ID, "2024-01-20"))
	s.AddDay()
}

func TestCreateScreen_Open(t *testing.T) {
	host := newFakeHost("6.7")
	s := newCreateScreen(host, &mockPollAPI{}, nil)

	s.Open(context.Background())

	assert.Equal(t, services.LabelCreatePoll, host.button.text)
	assert.True(t, host.button.visible)
	assert.Equal(t, 1, host.expanded)
}

func TestCreateScreen_SubmitTooFewDays(t *testing.T) {
	host := newFakeHost("6.7")
	api := &mockPollAPI{
		createPoll: func(ctx context.Context, input ports.CreatePollInput) error {
			t.Fatal("no request expected")
			return nil
		},
	}
	s := newCreateScreen(host, api, nil)
	s.SetTitle("Team dinner")
	s.AddDay()

	err := s.Submit(context.Background())

	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, host.popups)
	assert.Zero(t, host.closed)
	view := s.View()
	assert.True(t, view.Validated)
	assert.Equal(t, domain.ControlInvalid, view.AddButton)
}

func TestCreateScreen_DayEditClearsValidation(t *testing.T) {
	host := newFakeHost("6.7")
	s := newCreateScreen(host, &mockPollAPI{}, nil)
	s.AddDay()
	require.ErrorIs(t, s.Submit(context.Background()), domain.ErrValidation)
	require.True(t, s.View().Validated)

	s.AddDay()

	assert.False(t, s.View().Validated)
}

func TestCreateScreen_SubmitMissingTitle(t *testing.T) {
	host := newFakeHost("6.7")
	s := newCreateScreen(host, &mockPollAPI{}, nil)
	fillValidDraft(t, s)
	s.SetTitle("  ")

	err := s.Submit(context.Background())

	require.ErrorIs(t, err, domain.ErrValidation)
	assert.True(t, s.View().MissingTitle)
}

func TestCreateScreen_SubmitSuccess(t *testing.T) {
	host := newFakeHost("6.7")
	host.popupAnswer = "ok"
	repo := &memActivityRepo{}

	var got ports.CreatePollInput
	api := &mockPollAPI{
		createPoll: func(ctx context.Context, input ports.CreatePollInput) error {
			got = input
			return nil
		},
	}
	s := newCreateScreen(host, api, repo)
	fillValidDraft(t, s)
	s.SetDescription("Somewhere *nice*")
	s.SetNotification(true)

	require.NoError(t, s.Submit(context.Background()))

	assert.Equal(t, "Team dinner", got.Title)
	assert.Equal(t, "Somewhere *nice*", got.Description)
	assert.True(t, got.Notification)
	assert.Equal(t, []domain.Day{"2024-01-10", "2024-01-20"}, got.Days)
	assert.Equal(t, host.initData, got.InitData)

	require.Len(t, host.popups, 1)
	assert.Equal(t, services.MsgConfirmCreate, host.popups[0].Message)
	assert.Equal(t, 1, host.closed)
	assert.Equal(t, 1, host.button.progress)
	assert.Equal(t, 1, host.button.done)
	assert.Contains(t, host.haptics, ports.HapticSuccess)

	require.Len(t, repo.records, 1)
	assert.Equal(t, domain.ActivityCreate, repo.records[0].Kind)
	assert.Equal(t, domain.OutcomeSuccess, repo.records[0].Outcome)
}

func TestCreateScreen_SubmitCancelled(t *testing.T) {
	host := newFakeHost("6.7")
	host.popupAnswer = "cancel"
	s := newCreateScreen(host, &mockPollAPI{}, nil)
	fillValidDraft(t, s)

	err := s.Submit(context.Background())

	assert.ErrorIs(t, err, domain.ErrCancelled)
	assert.Zero(t, host.closed)
	assert.False(t, s.Busy())
}

func TestCreateScreen_SubmitServerError(t *testing.T) {
	host := newFakeHost("6.7")
	host.popupAnswer = "ok"
	repo := &memActivityRepo{}
	api := &mockPollAPI{
		createPoll: func(ctx context.Context, input ports.CreatePollInput) error {
			return &domain.ServerError{Status: 400, Body: "Invalid data was sent."}
		},
	}
	s := newCreateScreen(host, api, repo)
	fillValidDraft(t, s)

	err := s.Submit(context.Background())

	var serverErr *domain.ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, []string{"An error occurred while sending the poll: Invalid data was sent."}, host.alerts)
	assert.Zero(t, host.closed)
	assert.Equal(t, 1, host.button.done)
	assert.False(t, s.Busy())

	require.Len(t, repo.records, 1)
	assert.Equal(t, domain.OutcomeFailure, repo.records[0].Outcome)
	assert.Equal(t, "Invalid data was sent.", repo.records[0].Detail)
}

func TestCreateScreen_SubmitWhileBusy(t *testing.T) {
	host := newFakeHost("6.7")
	host.popupAnswer = "ok"
	started := make(chan struct{})
	unblock := make(chan struct{})
	api := &mockPollAPI{
		createPoll: func(ctx context.Context, input ports.CreatePollInput) error {
			close(started)
			<-unblock
			return nil
		},
	}
	s := newCreateScreen(host, api, nil)
	fillValidDraft(t, s)

	done := make(chan error, 1)
	go func() { done <- s.Submit(context.Background()) }()
	<-started

	assert.True(t, s.Busy())
	assert.ErrorIs(t, s.Submit(context.Background()), domain.ErrBusy)

	close(unblock)
	require.NoError(t, <-done)
	assert.False(t, s.Busy())
}

func TestCreateScreen_FallbackConfirm(t *testing.T) {
	host := newFakeHost("6.0")
	host.confirmAnswer = true
	called := false
	api := &mockPollAPI{
		createPoll: func(ctx context.Context, input ports.CreatePollInput) error {
			called = true
			return nil
		},
	}
	s := newCreateScreen(host, api, nil)
	fillValidDraft(t, s)

	require.NoError(t, s.Submit(context.Background()))

	assert.True(t, called)
	assert.Empty(t, host.popups)
	assert.Equal(t, []string{services.MsgConfirmCreate}, host.confirms)
	assert.Empty(t, host.haptics, "haptics need 6.1")
}

func TestCreateScreen_ClosingConfirmation(t *testing.T) {
	host := newFakeHost("6.2")
	s := newCreateScreen(host, &mockPollAPI{}, nil)

	s.SetTitle("a")
	s.SetDescription("b")
	s.SetTitle("c")

	assert.Equal(t, 1, host.closingCfm)

	old := newFakeHost("6.1")
	s = newCreateScreen(old, &mockPollAPI{}, nil)
	s.SetTitle("a")
	assert.Zero(t, old.closingCfm)
}

func TestCreateScreen_PickerAndDayEdits(t *testing.T) {
	host := newFakeHost("6.7")
	s := newCreateScreen(host, &mockPollAPI{}, nil)

	e := s.AddDay()
	assert.Equal(t, domain.Day("2024-01-10"), e.Value)
	assert.Equal(t, domain.Day("2024-01-10"), e.Min)

	id, ok := s.TakePickerRequest()
	require.True(t, ok)
	assert.Equal(t, e.ID, id)

	require.NoError(t, s.RemoveDay(e.ID))
	assert.Empty(t, s.View().Entries)
}
