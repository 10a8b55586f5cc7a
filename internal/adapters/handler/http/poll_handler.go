package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/dayfinder/internal/core/domain"
	"github.com/vncsmyrnk/dayfinder/internal/core/ports"
	"github.com/vncsmyrnk/dayfinder/internal/core/services"
)

const (
	msgPollNotFound = "This poll does not exist (anymore)."
	msgNotOwner     = "You are not the owner of this poll."
)

type PollHandler struct {
	store   *PollStore
	auth    *Authenticator
	botName string
	logger  *slog.Logger
}

func NewPollHandler(store *PollStore, auth *Authenticator, botName string, logger *slog.Logger) *PollHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PollHandler{
		store:   store,
		auth:    auth,
		botName: botName,
		logger:  logger,
	}
}

// CreatePoll stores a new poll owned by the caller. Repeated days are
// dropped, keeping the first occurrence.
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	var req ports.CreatePollInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	session, msg, ok := h.auth.Check(req.InitData)
	if !ok {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Title) == "" {
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	}

	days := make([]domain.Day, 0, len(req.Days))
	seen := make(map[domain.Day]bool, len(req.Days))
	for _, d := range req.Days {
		day, err := domain.ParseDay(d.String())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if !seen[day] {
			seen[day] = true
			days = append(days, day)
		}
	}
	if len(days) < domain.MinPollDays {
		http.Error(w, "at least two days are required", http.StatusBadRequest)
		return
	}

	poll := domain.Poll{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		OwnerID:     session.User.ID,
		Days:        days,
	}
	h.store.Create(poll, req.Notification)

	h.logger.Info("poll created",
		"poll_id", poll.ID,
		"owner", session.User.ID,
		"vote_url", services.VoteURL(h.botName, poll.ID),
	)
	w.Write([]byte("OK"))
}

type deletePollRequest struct {
	PollID   string `json:"pollId"`
	InitData string `json:"initData"`
}

func (h *PollHandler) DeletePoll(w http.ResponseWriter, r *http.Request) {
	var req deletePollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	session, msg, ok := h.auth.Check(req.InitData)
	if !ok {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	pollID, err := domain.ParsePollID(req.PollID)
	if err != nil {
		http.Error(w, msgPollNotFound, http.StatusNotFound)
		return
	}

	poll, err := h.store.Delete(pollID, session.User.ID)
	if err != nil {
		if errors.Is(err, domain.ErrPollNotFound) {
			http.Error(w, msgPollNotFound, http.StatusNotFound)
			return
		}
		if errors.Is(err, domain.ErrNotOwner) {
			http.Error(w, msgNotOwner, http.StatusForbidden)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.logger.Info("poll deleted", "poll_id", poll.ID, "title", poll.Title)
	w.Write([]byte("OK"))
}
