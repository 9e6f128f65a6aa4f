// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/danielhkuo/click-experiment/models"
)

// APIError is a non-2xx response from the leaderboard server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("API returned status code: %d", e.StatusCode)
	}
	return fmt.Sprintf("API returned status code: %d: %s", e.StatusCode, e.Message)
}

// Client talks to the leaderboard HTTP API.
type Client struct {
	baseURL string
	client  *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) SetTimeout(timeout time.Duration) {
	c.client.Timeout = timeout
}

// SubmitSession posts a finished session and returns the fresh view.
func (c *Client) SubmitSession(ctx context.Context, req models.SubmitSessionRequest) (models.LeaderboardView, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return models.LeaderboardView{}, fmt.Errorf("failed to encode session: %w", err)
	}
	return c.do(ctx, http.MethodPost, "/api/session", bytes.NewReader(body))
}

// Leaderboard fetches the view for uid. An empty uid omits Me.
func (c *Client) Leaderboard(ctx context.Context, uid string) (models.LeaderboardView, error) {
	endpoint := "/api/leaderboard"
	if uid != "" {
		endpoint += "?" + url.Values{"uid": {uid}}.Encode()
	}
	return c.do(ctx, http.MethodGet, endpoint, nil)
}

func (c *Client) do(ctx context.Context, method, endpoint string, body io.Reader) (models.LeaderboardView, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return models.LeaderboardView{}, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return models.LeaderboardView{}, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var errResp models.ErrorResponse
		if json.NewDecoder(resp.Body).Decode(&errResp) == nil {
			apiErr.Message = errResp.Error
		}
		return models.LeaderboardView{}, apiErr
	}

	var out models.LeaderboardResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return models.LeaderboardView{}, fmt.Errorf("failed to decode response: %w", err)
	}
	return out.LeaderboardView, nil
}
