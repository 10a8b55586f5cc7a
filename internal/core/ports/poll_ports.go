package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/dayfinder/internal/core/domain"
)

type CreatePollInput struct {
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Notification bool         `json:"notification"`
	Days         []domain.Day `json:"days"`
	InitData     string       `json:"initData"`
}

type SubmitVoteInput struct {
	Days     domain.VoteState `json:"days"`
	InitData string           `json:"initData"`
}

type DeletePollInput struct {
	PollID   uuid.UUID `json:"pollId"`
	InitData string    `json:"initData"`
}

// ExistingVote is the caller's stored vote on the poll named by the launch
// payload. Votes is empty when the caller never voted.
type ExistingVote struct {
	ResultsURL string           `json:"results"`
	Votes      domain.VoteState `json:"votes"`
}

// PollAPI is the backend's JSON API. Non-2xx answers are returned as
// *domain.ServerError.
type PollAPI interface {
	CreatePoll(ctx context.Context, input CreatePollInput) error
	FetchVote(ctx context.Context, initData string) (ExistingVote, error)
	SubmitVote(ctx context.Context, input SubmitVoteInput) error
	DeletePoll(ctx context.Context, input DeletePollInput) error
}

// PageReader reads poll definitions from the pages the backend renders.
type PageReader interface {
	VotePage(ctx context.Context, pollID uuid.UUID) (*domain.Poll, []domain.DayOptions, error)
	ResultsPage(ctx context.Context, pollID uuid.UUID) (*domain.Poll, error)
}
