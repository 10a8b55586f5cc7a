package services_test

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/dayfinder/internal/core/domain"
	"github.com/vncsmyrnk/dayfinder/internal/core/ports"
)

type fakeButton struct {
	mu       sync.Mutex
	text     string
	visible  bool
	progress int
	done     int
}

func (b *fakeButton) SetText(text string) { b.mu.Lock(); b.text = text; b.mu.Unlock() }
func (b *fakeButton) Show()               { b.mu.Lock(); b.visible = true; b.mu.Unlock() }
func (b *fakeButton) Hide()               { b.mu.Lock(); b.visible = false; b.mu.Unlock() }
func (b *fakeButton) ShowProgress()       { b.mu.Lock(); b.progress++; b.mu.Unlock() }
func (b *fakeButton) HideProgress()       { b.mu.Lock(); b.done++; b.mu.Unlock() }

// fakeHost records every call made on the host and answers dialogs with
// preset values.
type fakeHost struct {
	mu sync.Mutex

	version  string
	initData string
	session  ports.Session
	scheme   string

	confirmAnswer bool
	popupAnswer   string

	alerts     []string
	confirms   []string
	popups     []ports.Popup
	closed     int
	expanded   int
	links      []string
	inline     []string
	chatTypes  [][]string
	closingCfm int
	haptics    []ports.HapticKind
	button     *fakeButton
}

func newFakeHost(version string) *fakeHost {
	return &fakeHost{
		version:  version,
		initData: "user=%7B%22id%22%3A42%7D&hash=abc",
		session:  ports.Session{User: domain.User{ID: 42, FirstName: "Ann"}},
		button:   &fakeButton{},
	}
}

func (h *fakeHost) Alert(ctx context.Context, message string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.alerts = append(h.alerts, message)
	return nil
}

func (h *fakeHost) Confirm(ctx context.Context, message string) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.confirms = append(h.confirms, message)
	return h.confirmAnswer, nil
}

func (h *fakeHost) Popup(ctx context.Context, p ports.Popup) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.popups = append(h.popups, p)
	return h.popupAnswer, nil
}

func (h *fakeHost) IsVersionAtLeast(v string) bool { return domain.VersionAtLeast(h.version, v) }
func (h *fakeHost) InitData() string               { return h.initData }
func (h *fakeHost) InitDataUnsafe() ports.Session  { return h.session }
func (h *fakeHost) ColorScheme() string            { return h.scheme }
func (h *fakeHost) MainButton() ports.MainButton   { return h.button }

func (h *fakeHost) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed++
}

func (h *fakeHost) Expand() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.expanded++
}

func (h *fakeHost) OpenLink(url string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.links = append(h.links, url)
}

func (h *fakeHost) SwitchInlineQuery(query string, chatTypes []string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.inline = append(h.inline, query)
	h.chatTypes = append(h.chatTypes, chatTypes)
}

func (h *fakeHost) EnableClosingConfirmation() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closingCfm++
}

func (h *fakeHost) Haptic(kind ports.HapticKind) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.haptics = append(h.haptics, kind)
}

var _ ports.HostBridge = (*fakeHost)(nil)

// mockPollAPI is a hand-written test double. Set only the function fields a
// test needs; calling an unset one panics.
type mockPollAPI struct {
	createPoll func(ctx context.Context, input ports.CreatePollInput) error
	fetchVote  func(ctx context.Context, initData string) (ports.ExistingVote, error)
	submitVote func(ctx context.Context, input ports.SubmitVoteInput) error
	deletePoll func(ctx context.Context, input ports.DeletePollInput) error
}

func (m *mockPollAPI) CreatePoll(ctx context.Context, input ports.CreatePollInput) error {
	return m.createPoll(ctx, input)
}
func (m *mockPollAPI) FetchVote(ctx context.Context, initData string) (ports.ExistingVote, error) {
	return m.fetchVote(ctx, initData)
}
func (m *mockPollAPI) SubmitVote(ctx context.Context, input ports.SubmitVoteInput) error {
	return m.submitVote(ctx, input)
}
func (m *mockPollAPI) DeletePoll(ctx context.Context, input ports.DeletePollInput) error {
	return m.deletePoll(ctx, input)
}

var _ ports.PollAPI = (*mockPollAPI)(nil)

type memActivityRepo struct {
	mu      sync.Mutex
	records []domain.Activity
}

func (r *memActivityRepo) Record(ctx context.Context, a domain.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, a)
	return nil
}

func (r *memActivityRepo) List(ctx context.Context, limit int) ([]domain.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Activity, 0, limit)
	for i := len(r.records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.records[i])
	}
	return out, nil
}

type mockPageReader struct {
	votePage    func(ctx context.Context, pollID uuid.UUID) (*domain.Poll, []domain.DayOptions, error)
	resultsPage func(ctx context.Context, pollID uuid.UUID) (*domain.Poll, error)
}

func (m *mockPageReader) VotePage(ctx context.Context, pollID uuid.UUID) (*domain.Poll, []domain.DayOptions, error) {
	return m.votePage(ctx, pollID)
}
func (m *mockPageReader) ResultsPage(ctx context.Context, pollID uuid.UUID) (*domain.Poll, error) {
	return m.resultsPage(ctx, pollID)
}

var _ ports.PageReader = (*mockPageReader)(nil)
