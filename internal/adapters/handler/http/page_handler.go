package http

import (
	"net/http"

	"github.com/vncsmyrnk/dayfinder/internal/core/domain"
	"github.com/vncsmyrnk/dayfinder/internal/view"
)

const banner = "The DayFinder WebApp is hosted here. There's nothing on this page, though."

type PageHandler struct {
	store *PollStore
}

func NewPageHandler(store *PollStore) *PageHandler {
	return &PageHandler{store: store}
}

func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte(banner))
}

func (h *PageHandler) Create(w http.ResponseWriter, r *http.Request) {
	writePage(w, http.StatusOK, view.CreatePage())
}

func (h *PageHandler) Vote(w http.ResponseWriter, r *http.Request) {
	poll, ok := h.poll(w, r.URL.Query().Get("tgWebAppStartParam"))
	if !ok {
		return
	}

	days := make([]domain.DayOptions, len(poll.Days))
	for i, d := range poll.Days {
		days[i] = domain.DayOptions{Day: d, Choices: domain.DefaultChoices}
	}
	writePage(w, http.StatusOK, view.VotePage(poll, days))
}

// Results accepts the poll ID as poll_id or, when opened from a link, as
// tgWebAppStartParam.
func (h *PageHandler) Results(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("poll_id")
	if id == "" {
		id = r.URL.Query().Get("tgWebAppStartParam")
	}

	poll, ok := h.poll(w, id)
	if !ok {
		return
	}
	writePage(w, http.StatusOK, view.ResultsPage(poll))
}

func (h *PageHandler) poll(w http.ResponseWriter, rawID string) (domain.Poll, bool) {
	if rawID == "" {
		writePage(w, http.StatusBadRequest, view.ErrorPage("No poll ID supplied."))
		return domain.Poll{}, false
	}

	id, err := domain.ParsePollID(rawID)
	if err == nil {
		if poll, ok := h.store.Get(id); ok {
			return poll, true
		}
	}
	writePage(w, http.StatusNotFound, view.ErrorPage("Poll does not exist (anymore)."))
	return domain.Poll{}, false
}

func writePage(w http.ResponseWriter, status int, page string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(page))
}
