package http

import (
	"errors"
	"time"

	"github.com/vncsmyrnk/dayfinder/internal/initdata"
)

const (
	msgInvalidData = "Invalid data was sent."
	msgTooOld      = "Sent data is too old (more than 60 minutes old)."
)

// Authenticator verifies the launch payload sent with every API call.
type Authenticator struct {
	botToken string
	maxAge   time.Duration
	now      func() time.Time
}

func NewAuthenticator(botToken string) *Authenticator {
	return &Authenticator{botToken: botToken, maxAge: initdata.DefaultMaxAge, now: time.Now}
}

// SetClock replaces the time source used for expiry checks.
func (a *Authenticator) SetClock(now func() time.Time) {
	a.now = now
}

// Check returns the verified payload, or the message to answer with.
func (a *Authenticator) Check(raw string) (initdata.Data, string, bool) {
	d, err := initdata.Validate(raw, a.botToken, a.maxAge, a.now())
	switch {
	case errors.Is(err, initdata.ErrExpired):
		return initdata.Data{}, msgTooOld, false
	case err != nil:
		return initdata.Data{}, msgInvalidData, false
	case d.User.ID == 0:
		return initdata.Data{}, msgInvalidData, false
	}
	return d, "", true
}
