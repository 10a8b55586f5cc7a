package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/vncsmyrnk/dayfinder/internal/core/domain"
	"github.com/vncsmyrnk/dayfinder/internal/core/ports"
)

// maxErrorBody caps how much of an error response is read.
const maxErrorBody = 4 << 10

type pollClient struct {
	baseURL string
	http    *http.Client
}

// NewPollClient returns a PollAPI talking to the backend at baseURL. A nil
// httpClient gets a client with a 15 second timeout.
func NewPollClient(baseURL string, httpClient *http.Client) ports.PollAPI {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &pollClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

func (c *pollClient) CreatePoll(ctx context.Context, input ports.CreatePollInput) error {
	return c.send(ctx, http.MethodPost, input)
}

func (c *pollClient) SubmitVote(ctx context.Context, input ports.SubmitVoteInput) error {
	return c.send(ctx, http.MethodPatch, input)
}

func (c *pollClient) DeletePoll(ctx context.Context, input ports.DeletePollInput) error {
	return c.send(ctx, http.MethodDelete, input)
}

// FetchVote passes the raw launch payload as the query string.
func (c *pollClient) FetchVote(ctx context.Context, initData string) (ports.ExistingVote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/poll?"+initData, nil)
	if err != nil {
		return ports.ExistingVote{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return ports.ExistingVote{}, err
	}
	defer resp.Body.Close()

	var out ports.ExistingVote
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return ports.ExistingVote{}, fmt.Errorf("failed to decode vote: %w", err)
	}
	return out, nil
}

func (c *pollClient) send(ctx context.Context, method string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/poll", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// do sends req and turns non-2xx answers into *domain.ServerError. The body
// of a successful response is left to the caller.
func (c *pollClient) do(req *http.Request) (*http.Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	defer resp.Body.Close()

	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	text := strings.TrimSpace(string(b))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return nil, &domain.ServerError{Status: resp.StatusCode, Body: text}
}
