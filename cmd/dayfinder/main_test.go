package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	handler "github.com/vncsmyrnk/dayfinder/internal/adapters/handler/http"
	"github.com/vncsmyrnk/dayfinder/internal/core/domain"
)

const (
	testBotToken = "123456:test-token"
	testBotName  = "dayfinder_bot"
)

type testEnv struct {
	store *handler.PollStore
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	h, store, _ := handler.NewStubServer(testBotToken, testBotName, t.TempDir())
	server := httptest.NewServer(h)
	t.Cleanup(server.Close)

	t.Setenv("DAYFINDER_API_URL", server.URL)
	t.Setenv("TELEGRAM_BOT_TOKEN", testBotToken)
	t.Setenv("TELEGRAM_BOT_NAME", testBotName)
	t.Setenv("TELEGRAM_INIT_DATA", "")
	t.Setenv("DATABASE_TYPE", "sqlite")
	t.Setenv("DATABASE_URL", filepath.Join(t.TempDir(), "activity.db"))
	t.Setenv("LOG_LEVEL", "error")

	return &testEnv{store: store}
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(strings.NewReader(stdin), &out, &errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCLI_PollLifecycle(t *testing.T) {
	env := setupEnv(t)

	day1 := domain.DayOf(time.Now().AddDate(0, 0, 1))
	day2 := domain.DayOf(time.Now().AddDate(0, 0, 2))

	out, err := run(t, "", "create", "--yes", "--user-id", "7", "--first-name", "Ann",
		"--title", "Hike", "--day", day2.String(), "--day", day1.String())
	require.NoError(t, err)
	assert.Contains(t, out, "Poll created.")

	polls := env.store.Polls()
	require.Len(t, polls, 1)
	poll := polls[0]
	assert.Equal(t, "Hike", poll.Title)
	assert.Equal(t, int64(7), poll.OwnerID)
	assert.Equal(t, []domain.Day{day1, day2}, poll.Days)
	id := poll.ID.String()

	t.Run("vote with flags", func(t *testing.T) {
		_, err := run(t, "", "vote", id, "--yes", "--user-id", "8", "--first-name", "Bob",
			"--choice", day1.String()+"=yes,"+day2.String()+"=maybe")
		require.NoError(t, err)

		vote, err := env.store.VoteOf(poll.ID, 8)
		require.NoError(t, err)
		assert.Equal(t, domain.VoteState{day1: domain.ChoiceYes, day2: domain.ChoiceMaybe}, vote)
	})

	t.Run("vote with prompts", func(t *testing.T) {
		out, err := run(t, "n\nyes\n1\n", "vote", id, "--user-id", "9", "--first-name", "Cid")
		require.NoError(t, err)
		assert.Contains(t, out, "Hike")

		vote, err := env.store.VoteOf(poll.ID, 9)
		require.NoError(t, err)
		assert.Equal(t, domain.VoteState{day1: domain.ChoiceNo, day2: domain.ChoiceYes}, vote)
	})

	t.Run("results", func(t *testing.T) {
		out, err := run(t, "", "results", id, "--no-color", "--voters")
		require.NoError(t, err)
		assert.Contains(t, out, "Results for Hike")
		// Both days have one yes; the maybe breaks the tie.
		assert.Contains(t, out, "\n"+day1.Time().Format("02 Jan 2006")+": 1 yes, 0 maybe, 1 no\n")
		assert.Contains(t, out, "*"+day2.Time().Format("02 Jan 2006")+": 1 yes, 1 maybe, 0 no*")
		assert.Contains(t, out, "  maybe: Bob")
	})

	t.Run("summary", func(t *testing.T) {
		out, err := run(t, "", "summary", id)
		require.NoError(t, err)
		assert.Contains(t, out, id+"\tHike\t")
	})

	t.Run("share", func(t *testing.T) {
		out, err := run(t, "", "share", id, "--host-version", "6.2")
		require.NoError(t, err)
		assert.Contains(t, out, "https://t.me/share/url?url=")

		out, err = run(t, "", "share", id)
		require.NoError(t, err)
		assert.Contains(t, out, `Share "`+id+`" with users, groups, channels`)
	})

	t.Run("delete by someone else", func(t *testing.T) {
		_, err := run(t, "", "delete", id, "--yes", "--user-id", "8")
		assert.ErrorIs(t, err, domain.ErrNotOwner)
		_, ok := env.store.Get(poll.ID)
		assert.True(t, ok)
	})

	t.Run("delete cancelled", func(t *testing.T) {
		out, err := run(t, "2\n", "delete", id, "--user-id", "7")
		require.NoError(t, err)
		assert.Contains(t, out, "Nothing deleted.")
	})

	t.Run("delete by owner", func(t *testing.T) {
		out, err := run(t, "", "delete", id, "--yes", "--user-id", "7")
		require.NoError(t, err)
		assert.Contains(t, out, "Poll deleted.")
		_, ok := env.store.Get(poll.ID)
		assert.False(t, ok)
	})

	t.Run("history", func(t *testing.T) {
		out, err := run(t, "", "history")
		require.NoError(t, err)
		assert.Contains(t, out, "WHEN")
		assert.Equal(t, 1, strings.Count(out, "create"))
		assert.Equal(t, 2, strings.Count(out, "vote"))
		assert.Equal(t, 1, strings.Count(out, "delete"))
	})
}

func TestCLI_CreateValidation(t *testing.T) {
	setupEnv(t)

	_, err := run(t, "", "create", "--yes", "--day", domain.DayOf(time.Now().AddDate(0, 0, 1)).String())
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCLI_NeedsInitData(t *testing.T) {
	setupEnv(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "")

	_, err := run(t, "", "share", "6c9f0e5e-3b0e-4c53-9d4b-3d1f5f0f8c11")
	assert.ErrorIs(t, err, errNoInitData)
}
