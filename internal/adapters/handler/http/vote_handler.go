package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"slices"

	"github.com/vncsmyrnk/dayfinder/internal/core/domain"
	"github.com/vncsmyrnk/dayfinder/internal/core/ports"
	"github.com/vncsmyrnk/dayfinder/internal/core/services"
)

const msgDaysMismatch = "Days do not match with days of the event."

type VoteHandler struct {
	store   *PollStore
	auth    *Authenticator
	botName string
	logger  *slog.Logger
}

func NewVoteHandler(store *PollStore, auth *Authenticator, botName string, logger *slog.Logger) *VoteHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &VoteHandler{
		store:   store,
		auth:    auth,
		botName: botName,
		logger:  logger,
	}
}

// GetVote answers with the caller's vote on the poll named by start_param
// and the link to its results. The query string is the launch payload.
func (h *VoteHandler) GetVote(w http.ResponseWriter, r *http.Request) {
	session, msg, ok := h.auth.Check(r.URL.RawQuery)
	if !ok {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	pollID, err := domain.ParsePollID(session.StartParam)
	if err != nil {
		http.Error(w, msgPollNotFound, http.StatusNotFound)
		return
	}

	votes, err := h.store.VoteOf(pollID, session.User.ID)
	if err != nil {
		if errors.Is(err, domain.ErrPollNotFound) {
			http.Error(w, msgPollNotFound, http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	resp := ports.ExistingVote{ResultsURL: services.ResultsURL(h.botName, pollID), Votes: votes}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

// Vote stores the caller's vote, replacing an earlier one. The vote must
// name exactly the days of the poll.
func (h *VoteHandler) Vote(w http.ResponseWriter, r *http.Request) {
	var req ports.SubmitVoteInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	session, msg, ok := h.auth.Check(req.InitData)
	if !ok {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	pollID, err := domain.ParsePollID(session.StartParam)
	if err != nil {
		http.Error(w, msgPollNotFound, http.StatusNotFound)
		return
	}
	poll, found := h.store.Get(pollID)
	if !found {
		http.Error(w, msgPollNotFound, http.StatusNotFound)
		return
	}

	if len(req.Days) != len(poll.Days) {
		http.Error(w, msgDaysMismatch, http.StatusBadRequest)
		return
	}
	for day, choice := range req.Days {
		if !slices.Contains(poll.Days, day) {
			http.Error(w, msgDaysMismatch, http.StatusBadRequest)
			return
		}
		if !slices.Contains(domain.DefaultChoices, choice) {
			http.Error(w, msgInvalidData, http.StatusBadRequest)
			return
		}
	}

	res, err := h.store.Vote(pollID, session.User, req.Days)
	if err != nil {
		if errors.Is(err, domain.ErrPollNotFound) {
			http.Error(w, msgPollNotFound, http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if res.Notify && res.Changed {
		kind := "new"
		if res.Edited {
			kind = "edited"
		}
		h.logger.Info("vote notification", "kind", kind, "poll_id", pollID, "owner", res.Poll.OwnerID, "voter", session.User.DisplayName())
	}
	w.Write([]byte("OK"))
}
