package domain

import (
	"time"

	"github.com/google/uuid"
)

type ActivityKind string

const (
	ActivityCreate ActivityKind = "create"
	ActivityVote   ActivityKind = "vote"
	ActivityDelete ActivityKind = "delete"
)

type ActivityOutcome string

const (
	OutcomeSuccess ActivityOutcome = "success"
	OutcomeFailure ActivityOutcome = "failure"
)

// Activity is a local record of one client action against the backend.
type Activity struct {
	ID         uuid.UUID       `json:"id"`
	Kind       ActivityKind    `json:"kind"`
	Outcome    ActivityOutcome `json:"outcome"`
	PollID     uuid.UUID       `json:"poll_id"`
	Detail     string          `json:"detail,omitempty"`
	RecordedAt time.Time       `json:"recorded_at"`
}

// NewActivity builds a record for err, a nil err meaning success.
func NewActivity(kind ActivityKind, pollID uuid.UUID, err error, now time.Time) Activity {
	a := Activity{
		ID:         uuid.New(),
		Kind:       kind,
		Outcome:    OutcomeSuccess,
		PollID:     pollID,
		RecordedAt: now.UTC().Truncate(time.Second),
	}
	if err != nil {
		a.Outcome = OutcomeFailure
		a.Detail = UserMessage(err)
	}
	return a
}
