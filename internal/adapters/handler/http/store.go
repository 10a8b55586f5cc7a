package http

import (
	"sync"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/dayfinder/internal/core/domain"
)

type storedVote struct {
	userID  int64
	name    string
	choices domain.VoteState
}

type storedPoll struct {
	poll   domain.Poll
	notify bool
	votes  []storedVote
}

// PollStore keeps the stub backend's polls in memory.
type PollStore struct {
	mu    sync.RWMutex
	polls map[uuid.UUID]*storedPoll
}

func NewPollStore() *PollStore {
	return &PollStore{polls: make(map[uuid.UUID]*storedPoll)}
}

func (s *PollStore) Create(p domain.Poll, notify bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.polls[p.ID] = &storedPoll{poll: p, notify: notify}
}

// Get returns a copy of the poll with one ballot per voter.
func (s *PollStore) Get(id uuid.UUID) (domain.Poll, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sp, ok := s.polls[id]
	if !ok {
		return domain.Poll{}, false
	}
	p := sp.poll
	p.Days = append([]domain.Day(nil), sp.poll.Days...)
	p.Ballots = make([]domain.Ballot, len(sp.votes))
	for i, v := range sp.votes {
		p.Ballots[i] = domain.Ballot{Voter: v.name, Choices: copyVote(v.choices)}
	}
	return p, true
}

// Polls returns every stored poll without ballots.
func (s *PollStore) Polls() []domain.Poll {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Poll, 0, len(s.polls))
	for _, sp := range s.polls {
		out = append(out, sp.poll)
	}
	return out
}

func (s *PollStore) VoteOf(id uuid.UUID, userID int64) (domain.VoteState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sp, ok := s.polls[id]
	if !ok {
		return nil, domain.ErrPollNotFound
	}
	for _, v := range sp.votes {
		if v.userID == userID {
			return copyVote(v.choices), nil
		}
	}
	return domain.VoteState{}, nil
}

// VoteResult tells the caller whether the poll owner should hear about a vote.
type VoteResult struct {
	Poll    domain.Poll
	Edited  bool
	Changed bool
	Notify  bool
}

// Vote stores or replaces the vote of user.
func (s *PollStore) Vote(id uuid.UUID, user domain.User, choices domain.VoteState) (VoteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sp, ok := s.polls[id]
	if !ok {
		return VoteResult{}, domain.ErrPollNotFound
	}

	res := VoteResult{Poll: sp.poll, Notify: sp.notify, Changed: true}
	for i := range sp.votes {
		if sp.votes[i].userID == user.ID {
			res.Edited = true
			res.Changed = !sameVote(sp.votes[i].choices, choices)
			sp.votes[i].choices = copyVote(choices)
			return res, nil
		}
	}
	sp.votes = append(sp.votes, storedVote{userID: user.ID, name: user.DisplayName(), choices: copyVote(choices)})
	return res, nil
}

func (s *PollStore) Delete(id uuid.UUID, userID int64) (domain.Poll, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sp, ok := s.polls[id]
	if !ok {
		return domain.Poll{}, domain.ErrPollNotFound
	}
	if sp.poll.OwnerID != userID {
		return domain.Poll{}, domain.ErrNotOwner
	}
	delete(s.polls, id)
	return sp.poll, nil
}

func copyVote(v domain.VoteState) domain.VoteState {
	out := make(domain.VoteState, len(v))
	for k, c := range v {
		out[k] = c
	}
	return out
}

func sameVote(a, b domain.VoteState) bool {
	if len(a) != len(b) {
		return false
	}
	for k, c := range a {
		if b[k] != c {
			return false
		}
	}
	return true
}
