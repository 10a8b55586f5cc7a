package page

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/html"

	"github.com/vncsmyrnk/dayfinder/internal/core/domain"
	"github.com/vncsmyrnk/dayfinder/internal/core/ports"
)

type reader struct {
	baseURL string
	client  *http.Client
}

// NewReader returns a PageReader fetching pages from the backend at baseURL.
func NewReader(baseURL string, client *http.Client) ports.PageReader {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &reader{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

func (r *reader) VotePage(ctx context.Context, pollID uuid.UUID) (*domain.Poll, []domain.DayOptions, error) {
	body, err := r.get(ctx, "/vote", url.Values{"tgWebAppStartParam": {pollID.String()}})
	if err != nil {
		return nil, nil, err
	}
	return ParseVotePage(bytes.NewReader(body))
}

func (r *reader) ResultsPage(ctx context.Context, pollID uuid.UUID) (*domain.Poll, error) {
	body, err := r.get(ctx, "/results", url.Values{"poll_id": {pollID.String()}})
	if err != nil {
		return nil, err
	}
	return ParseResultsPage(bytes.NewReader(body))
}

func (r *reader) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", domain.ErrPollNotFound, pageError(body, resp.StatusCode))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.ServerError{Status: resp.StatusCode, Body: pageError(body, resp.StatusCode)}
	}
	return body, nil
}

func pageError(body []byte, status int) string {
	if doc, err := html.Parse(bytes.NewReader(body)); err == nil {
		if msg := errorMessage(doc); msg != "" {
			return msg
		}
	}
	if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}
	return http.StatusText(status)
}
