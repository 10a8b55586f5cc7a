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

func TestSummaryService_SummarizeAll(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	pages := &mockPageReader{
		resultsPage: func(ctx context.Context, id uuid.UUID) (*domain.Poll, error) {
			p := ownedPoll()
			p.ID = id
			if id == b {
				p.Ballots = nil
			}
			return &p, nil
		},
	}

	got, err := services.NewSummaryService(pages).SummarizeAll(context.Background(), []uuid.UUID{a, b})

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, a, got[0].Poll.ID)
	assert.Equal(t, []domain.Day{"2024-01-10"}, got[0].Best)
	assert.Equal(t, b, got[1].Poll.ID)
	assert.Empty(t, got[1].Best)
}

func TestSummaryService_Error(t *testing.T) {
	pages := &mockPageReader{
		resultsPage: func(ctx context.Context, id uuid.UUID) (*domain.Poll, error) {
			return nil, domain.ErrPollNotFound
		},
	}

	_, err := services.NewSummaryService(pages).SummarizeAll(context.Background(), []uuid.UUID{uuid.New()})

	assert.True(t, errors.Is(err, domain.ErrPollNotFound))
}
