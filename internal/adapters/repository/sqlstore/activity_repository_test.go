package sqlstore_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/dayfinder/internal/adapters/repository/sqlstore"
	"github.com/vncsmyrnk/dayfinder/internal/core/domain"
)

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	db, err := sqlstore.Open(ctx, sqlstore.TypeSQLite, filepath.Join(t.TempDir(), "nested", "activity.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, sqlstore.Migrate(ctx, db, sqlstore.TypeSQLite))
	return db
}

func TestActivityRepository_SQLite(t *testing.T) {
	ctx := context.Background()
	repo := sqlstore.NewActivityRepository(openSQLite(t), sqlstore.TypeSQLite)

	pollID := uuid.New()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Record(ctx, domain.NewActivity(domain.ActivityCreate, uuid.Nil, nil, base)))
	require.NoError(t, repo.Record(ctx, domain.NewActivity(domain.ActivityVote, pollID, nil, base.Add(time.Minute))))
	failed := &domain.ServerError{Status: 403, Body: "You are not the owner of this poll."}
	require.NoError(t, repo.Record(ctx, domain.NewActivity(domain.ActivityDelete, pollID, failed, base.Add(2*time.Minute))))

	t.Run("newest first", func(t *testing.T) {
		got, err := repo.List(ctx, 10)
		require.NoError(t, err)
		require.Len(t, got, 3)

		assert.Equal(t, domain.ActivityDelete, got[0].Kind)
		assert.Equal(t, domain.OutcomeFailure, got[0].Outcome)
		assert.Equal(t, "You are not the owner of this poll.", got[0].Detail)
		assert.Equal(t, pollID, got[0].PollID)
		assert.True(t, base.Add(2*time.Minute).Equal(got[0].RecordedAt))

		assert.Equal(t, domain.ActivityVote, got[1].Kind)
		assert.Equal(t, domain.OutcomeSuccess, got[1].Outcome)
		assert.Empty(t, got[1].Detail)

		assert.Equal(t, domain.ActivityCreate, got[2].Kind)
		assert.Equal(t, uuid.Nil, got[2].PollID)
	})

	t.Run("limit", func(t *testing.T) {
		got, err := repo.List(ctx, 1)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, domain.ActivityDelete, got[0].Kind)
	})
}

func TestActivityRepository_AssignsMissingID(t *testing.T) {
	ctx := context.Background()
	repo := sqlstore.NewActivityRepository(openSQLite(t), sqlstore.TypeSQLite)

	require.NoError(t, repo.Record(ctx, domain.Activity{
		Kind:       domain.ActivityVote,
		Outcome:    domain.OutcomeSuccess,
		RecordedAt: time.Now(),
	}))

	got, err := repo.List(ctx, 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.NotEqual(t, uuid.Nil, got[0].ID)
}

func TestMigrate_DownAndUp(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)

	provider, err := sqlstore.NewProvider(db, sqlstore.TypeSQLite)
	require.NoError(t, err)

	_, err = provider.DownTo(ctx, 0)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, "SELECT 1 FROM activities")
	assert.Error(t, err)

	_, err = provider.Up(ctx)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, "SELECT 1 FROM activities")
	assert.NoError(t, err)
}

func TestOpen_UnknownType(t *testing.T) {
	_, err := sqlstore.Open(context.Background(), "mysql", "whatever")
	assert.True(t, errors.Is(err, sqlstore.ErrUnknownDatabase))
}
