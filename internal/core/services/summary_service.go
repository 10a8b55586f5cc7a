package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/dayfinder/internal/core/domain"
	"github.com/vncsmyrnk/dayfinder/internal/core/ports"
)

type PollSummary struct {
	Poll *domain.Poll
	Days []domain.DaySummary
	Best []domain.Day
}

type SummaryService struct {
	pages ports.PageReader
}

func NewSummaryService(pages ports.PageReader) *SummaryService {
	return &SummaryService{pages: pages}
}

// SummarizeAll reads the results page of every poll concurrently and tallies
// them. Summaries are returned in the order of ids.
func (s *SummaryService) SummarizeAll(ctx context.Context, ids []uuid.UUID) ([]PollSummary, error) {
	summaries := make([]PollSummary, len(ids))

	var wg sync.WaitGroup
	errChan := make(chan error, len(ids))

	for i, id := range ids {
		wg.Add(1)
		go func(i int, pID uuid.UUID) {
			defer wg.Done()
			poll, err := s.pages.ResultsPage(ctx, pID)
			if err != nil {
				errChan <- fmt.Errorf("failed to summarize poll %s: %w", pID, err)
				return
			}
			days := domain.Summarize(*poll)
			summaries[i] = PollSummary{Poll: poll, Days: days, Best: bestOf(days)}
		}(i, id)
	}

	wg.Wait()
	close(errChan)

	for err := range errChan {
		if err != nil {
			return nil, err
		}
	}

	return summaries, nil
}

func bestOf(days []domain.DaySummary) []domain.Day {
	var best []domain.Day
	for _, d := range days {
		if d.Best {
			best = append(best, d.Day)
		}
	}
	return best
}
