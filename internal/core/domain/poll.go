package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Poll is a scheduling poll as shown on the results page.
type Poll struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	OwnerID     int64     `json:"owner_id"`
	Days        []Day     `json:"days"`
	Ballots     []Ballot  `json:"ballots,omitempty"`
}

type Ballot struct {
	Voter   string    `json:"voter"`
	Choices VoteState `json:"choices"`
}

func ParsePollID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil, ErrInvalidPollID
	}
	return id, nil
}

// PollDraft is the state of the create form.
type PollDraft struct {
	Title        string
	Description  string
	Notification bool
	Days         *DayList
}

func NewPollDraft() *PollDraft {
	return &PollDraft{Days: NewDayList()}
}

type DraftValidation struct {
	Days         DayValidation
	MissingTitle bool
}

func (v DraftValidation) Valid() bool {
	return v.Days.Valid() && !v.MissingTitle
}

// Validate runs the day list checks together with the form's required fields.
func (d *PollDraft) Validate() DraftValidation {
	return DraftValidation{
		Days:         d.Days.Validate(),
		MissingTitle: strings.TrimSpace(d.Title) == "",
	}
}
