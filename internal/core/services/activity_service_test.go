package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/dayfinder/internal/core/domain"
	"github.com/vncsmyrnk/dayfinder/internal/core/services"
)

type failingActivityRepo struct{ memActivityRepo }

func (r *failingActivityRepo) Record(ctx context.Context, a domain.Activity) error {
	return errors.New("disk full")
}

func TestActivityService_RecordAndRecent(t *testing.T) {
	ctx := context.Background()
	repo := &memActivityRepo{}
	s := services.NewActivityService(repo, nil)

	pollID := uuid.New()
	s.Record(ctx, domain.ActivityVote, pollID, nil)
	s.Record(ctx, domain.ActivityDelete, pollID, &domain.ServerError{Status: 404, Body: "This poll does not exist (anymore)."})

	got, err := s.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, domain.ActivityDelete, got[0].Kind)
	assert.Equal(t, domain.OutcomeFailure, got[0].Outcome)
	assert.Equal(t, "This poll does not exist (anymore).", got[0].Detail)
	assert.Equal(t, domain.OutcomeSuccess, got[1].Outcome)
}

func TestActivityService_NilAndFailingStore(t *testing.T) {
	ctx := context.Background()

	var none *services.ActivityService
	none.Record(ctx, domain.ActivityCreate, uuid.Nil, nil)
	got, err := none.Recent(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, got)

	s := services.NewActivityService(&failingActivityRepo{}, nil)
	assert.NotPanics(t, func() { s.Record(ctx, domain.ActivityCreate, uuid.Nil, nil) })
}
