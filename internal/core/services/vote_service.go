package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/dayfinder/internal/core/domain"
	"github.com/vncsmyrnk/dayfinder/internal/core/ports"
)

const (
	MsgLoadVoteFailedText = "An error occurred while loading your vote: "
	MsgVoteFailedText     = "An error occurred while sending your vote: "
	MsgVoteSentTitle      = "Vote sent"
	MsgVoteSent           = "Your vote has been sent. Do you want to view the results now?"
	ButtonViewResults     = "viewResults"
)

type VoteView struct {
	Days         []domain.DayOptions
	Selected     map[domain.Day]domain.Choice
	Invalid      map[domain.Day]bool
	Validated    bool
	AlreadyVoted bool
	ButtonLabel  string
	ResultsURL   string
	Busy         bool
}

// VoteScreen drives the vote page of one poll.
type VoteScreen struct {
	screen
	api        ports.PollAPI
	form       *domain.VoteForm
	pollID     uuid.UUID
	resultsURL string
	loaded     bool
}

func NewVoteScreen(host ports.HostBridge, api ports.PollAPI, activity *ActivityService, days []domain.DayOptions) *VoteScreen {
	s := &VoteScreen{
		screen: newScreen(host, activity),
		api:    api,
		form:   domain.NewVoteForm(days),
	}
	if id, err := domain.ParsePollID(host.InitDataUnsafe().StartParam); err == nil {
		s.pollID = id
	}
	return s
}

// Load fetches the caller's previous vote and preselects it. On failure the
// user is alerted and the page stays open without a main button.
func (s *VoteScreen) Load(ctx context.Context) error {
	s.caps.EnableClosingConfirmation()

	existing, err := s.api.FetchVote(ctx, s.host.InitData())
	if err != nil {
		return s.fail(ctx, MsgLoadVoteFailedText, err)
	}

	s.mu.Lock()
	s.resultsURL = existing.ResultsURL
	stale := s.form.LoadExistingVote(existing.Votes)
	label := s.form.ButtonLabel()
	s.loaded = true
	s.mu.Unlock()

	for _, sc := range stale {
		s.logger.Warn("ignoring stale choice from previous vote", "day", sc.Day, "choice", sc.Choice)
	}

	s.host.MainButton().SetText(label)
	s.host.MainButton().Show()
	return nil
}

func (s *VoteScreen) Select(day domain.Day, choice domain.Choice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form.Select(day, choice)
}

func (s *VoteScreen) View() VoteView {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := VoteView{
		Days:         s.form.Days(),
		Selected:     make(map[domain.Day]domain.Choice),
		Invalid:      make(map[domain.Day]bool),
		Validated:    s.form.WasValidated(),
		AlreadyVoted: s.form.AlreadyVoted(),
		ButtonLabel:  s.form.ButtonLabel(),
		ResultsURL:   s.resultsURL,
		Busy:         s.busy,
	}
	for _, d := range v.Days {
		if c, ok := s.form.Selected(d.Day); ok {
			v.Selected[d.Day] = c
		}
		if s.form.IsInvalid(d.Day) {
			v.Invalid[d.Day] = true
		}
	}
	return v
}

// Submit validates and sends the vote, then offers to open the results.
// Votes can be edited later, so no confirmation is asked first.
func (s *VoteScreen) Submit(ctx context.Context) error {
	if err := s.acquire(); err != nil {
		return err
	}
	defer s.release()

	vote, err := s.collect()
	if err != nil {
		s.caps.Haptic(ports.HapticWarning)
		return err
	}

	err = s.request(func() error {
		return s.api.SubmitVote(ctx, ports.SubmitVoteInput{Days: vote, InitData: s.host.InitData()})
	})
	s.activity.Record(ctx, domain.ActivityVote, s.pollID, err)
	if err != nil {
		return s.fail(ctx, MsgVoteFailedText, err)
	}
	s.caps.Haptic(ports.HapticSuccess)

	answer, err := s.caps.Ask(ctx, ports.Popup{
		Title:   MsgVoteSentTitle,
		Message: MsgVoteSent,
		Buttons: []ports.PopupButton{
			{ID: ButtonViewResults, Type: ports.ButtonDefault, Text: "View results"},
			{ID: "close", Type: ports.ButtonClose},
		},
	})
	if err != nil {
		return err
	}
	s.Leave(answer == ButtonViewResults)
	return nil
}

func (s *VoteScreen) collect() (domain.VoteState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if missing := s.form.Validate(); len(missing) > 0 {
		return nil, fmt.Errorf("%w: no choice for %d day(s)", domain.ErrValidation, len(missing))
	}
	vote, err := s.form.Collect()
	if err != nil {
		s.logger.Error("vote form out of sync", "error", err)
		return nil, err
	}
	return vote, nil
}

// Leave opens the results page when asked to and its link is known, and
// closes the app otherwise.
func (s *VoteScreen) Leave(viewResults bool) {
	s.mu.Lock()
	link := s.resultsURL
	s.mu.Unlock()

	if viewResults && link != "" {
		s.host.OpenLink(link)
		return
	}
	s.host.Close()
}

func (s *VoteScreen) PollID() uuid.UUID {
	return s.pollID
}
