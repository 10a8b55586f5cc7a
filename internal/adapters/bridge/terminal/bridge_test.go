package terminal_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/dayfinder/internal/adapters/bridge/terminal"
	"github.com/vncsmyrnk/dayfinder/internal/core/domain"
	"github.com/vncsmyrnk/dayfinder/internal/core/ports"
	"github.com/vncsmyrnk/dayfinder/internal/initdata"
)

var deletePopup = ports.Popup{
	Title:   "Delete poll?",
	Message: "Are you sure?",
	Buttons: []ports.PopupButton{
		{ID: "ok", Type: ports.ButtonDestructive, Text: "Delete Poll"},
		{ID: "cancel", Type: ports.ButtonCancel},
	},
}

func newBridge(input string) (*terminal.Bridge, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return terminal.New(terminal.Options{In: strings.NewReader(input), Out: out}), out
}

func TestBridge_Popup(t *testing.T) {
	ctx := context.Background()

	t.Run("numbered answer", func(t *testing.T) {
		b, out := newBridge("2\n")
		id, err := b.Popup(ctx, deletePopup)
		require.NoError(t, err)
		assert.Equal(t, "cancel", id)
		assert.Contains(t, out.String(), "Delete poll?")
		assert.Contains(t, out.String(), "1) Delete Poll")
		assert.Contains(t, out.String(), "2) Cancel")
	})

	t.Run("reprompts on bad input", func(t *testing.T) {
		b, out := newBridge("7\nx\n1\n")
		id, err := b.Popup(ctx, deletePopup)
		require.NoError(t, err)
		assert.Equal(t, "ok", id)
		assert.Equal(t, 2, strings.Count(out.String(), "enter a number between 1 and 2"))
	})

	t.Run("empty answer dismisses", func(t *testing.T) {
		b, _ := newBridge("\n")
		id, err := b.Popup(ctx, deletePopup)
		require.NoError(t, err)
		assert.Empty(t, id)
	})

	t.Run("end of input", func(t *testing.T) {
		b, _ := newBridge("")
		_, err := b.Popup(ctx, deletePopup)
		assert.ErrorIs(t, err, io.EOF)
	})

	t.Run("assume yes", func(t *testing.T) {
		b := terminal.New(terminal.Options{AssumeYes: true})
		id, err := b.Popup(ctx, deletePopup)
		require.NoError(t, err)
		assert.Equal(t, "ok", id)
	})
}

func TestBridge_Confirm(t *testing.T) {
	ctx := context.Background()

	b, out := newBridge("y\nno\n")
	ok, err := b.Confirm(ctx, "Save?")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = b.Confirm(ctx, "Save?")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Contains(t, out.String(), "Save? [y/N]")
}

func TestBridge_AlertWaitsForEnter(t *testing.T) {
	b, out := newBridge("\n")
	require.NoError(t, b.Alert(context.Background(), "Invalid data was sent."))
	assert.Contains(t, out.String(), "Invalid data was sent.")
}

func TestBridge_PromptHonoursContext(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	b := terminal.New(terminal.Options{In: r})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := b.Confirm(ctx, "Save?")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// The abandoned prompt must not swallow the next answer.
	go func() { _, _ = io.WriteString(w, "yes\n") }()
	ok, err := b.Confirm(context.Background(), "Save?")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBridge_Choose(t *testing.T) {
	b, _ := newBridge("perhaps\nm\n")
	got, err := b.Choose(context.Background(), "Sat, 07 Mar 2026", []string{"yes", "maybe", "no"})
	require.NoError(t, err)
	assert.Equal(t, "maybe", got)
}

func TestBridge_Session(t *testing.T) {
	raw, err := initdata.New(domain.User{ID: 42, FirstName: "Ann"}, "poll-id", time.Now(), "token")
	require.NoError(t, err)

	b := terminal.New(terminal.Options{InitData: raw, Version: "6.1"})
	assert.Equal(t, raw, b.InitData())
	assert.Equal(t, int64(42), b.InitDataUnsafe().User.ID)
	assert.Equal(t, "poll-id", b.InitDataUnsafe().StartParam)
	assert.Equal(t, "light", b.ColorScheme())
	assert.True(t, b.IsVersionAtLeast("6.1"))
	assert.False(t, b.IsVersionAtLeast("6.2"))
}

func TestBridge_Chrome(t *testing.T) {
	b, out := newBridge("")

	b.MainButton().SetText("Create poll")
	b.MainButton().ShowProgress()
	assert.NotContains(t, out.String(), "Create poll...")
	b.MainButton().Show()
	b.MainButton().ShowProgress()
	assert.Contains(t, out.String(), "Create poll...")

	b.OpenLink("https://t.me/bot/results?startapp=x")
	assert.Equal(t, []string{"https://t.me/bot/results?startapp=x"}, b.OpenedLinks())

	assert.False(t, b.ClosingConfirmation())
	b.EnableClosingConfirmation()
	assert.True(t, b.ClosingConfirmation())

	assert.False(t, b.Closed())
	b.Close()
	assert.True(t, b.Closed())
}

func TestBridge_ChooseEmptyAnswer(t *testing.T) {
	b, _ := newBridge("\n")
	got, err := b.Choose(context.Background(), "Sat, 07 Mar 2026", []string{"yes", "maybe", "no"})
	require.NoError(t, err)
	assert.Empty(t, got)
}
