package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewHandler routes the poll API and the pages. When staticDir is set its
// files, such as the compiled mini app, are served under /static/.
func NewHandler(pollHandler *PollHandler, voteHandler *VoteHandler, pageHandler *PageHandler, staticDir string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", pageHandler.Index)
	r.Get("/create", pageHandler.Create)
	r.Get("/vote", pageHandler.Vote)
	r.Get("/results", pageHandler.Results)

	r.Route("/poll", func(r chi.Router) {
		r.Post("/", pollHandler.CreatePoll)
		r.Get("/", voteHandler.GetVote)
		r.Patch("/", voteHandler.Vote)
		r.Delete("/", pollHandler.DeletePoll)
	})

	if staticDir != "" {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	}

	return r
}

// NewStubServer wires an in-memory backend for botToken and botName.
func NewStubServer(botToken, botName, staticDir string) (http.Handler, *PollStore, *Authenticator) {
	store := NewPollStore()
	auth := NewAuthenticator(botToken)
	return NewHandler(
		NewPollHandler(store, auth, botName, nil),
		NewVoteHandler(store, auth, botName, nil),
		NewPageHandler(store),
		staticDir,
	), store, auth
}
