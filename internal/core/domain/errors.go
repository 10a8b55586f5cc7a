package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation    = errors.New("validation error")
	ErrInvalidDay    = errors.New("invalid day")
	ErrEntryNotFound = errors.New("day entry not found")
	ErrUnknownDay    = errors.New("day is not part of this poll")
	ErrUnknownChoice = errors.New("choice is not offered for this day")
	ErrMissingChoice = errors.New("no choice selected for day")
	ErrInvalidPollID = errors.New("invalid poll id")
	ErrPollNotFound  = errors.New("poll not found")
	ErrNotOwner      = errors.New("not the owner of this poll")
	ErrBusy          = errors.New("another request is in progress")
	ErrCancelled     = errors.New("cancelled by user")
)

// ServerError is a non-2xx answer from the backend. Body is the plain-text
// message meant for the user.
type ServerError struct {
	Status int
	Body   string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("status %d: %s", e.Status, e.Body)
}

// UserMessage returns the text shown to the user for err: the server's body
// for a ServerError, the error description otherwise.
func UserMessage(err error) string {
	var serverErr *ServerError
	if errors.As(err, &serverErr) {
		return serverErr.Body
	}
	return err.Error()
}
