// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/danielhkuo/click-experiment/cliparse"
	"github.com/danielhkuo/click-experiment/db"
	"github.com/danielhkuo/click-experiment/leaderboard"
	"github.com/danielhkuo/click-experiment/models"
)

// Epoch is the fake clock's starting time.
var Epoch = time.Date(2025, 11, 1, 12, 0, 0, 0, time.UTC)

// SetupTestStore returns a file store in a fresh temp dir
func SetupTestStore(t *testing.T) *db.FileStore {
	t.Helper()
	return db.NewFileStore(filepath.Join(t.TempDir(), "click-db.json"))
}

// NewTestService creates a loaded service backed by a temp file store and a fake clock
func NewTestService(t *testing.T, opts ...leaderboard.Option) (*leaderboard.Service, *clockwork.FakeClock) {
	t.Helper()

	clock := clockwork.NewFakeClockAt(Epoch)
	opts = append([]leaderboard.Option{leaderboard.WithClock(clock)}, opts...)

	svc := leaderboard.NewService(SetupTestStore(t), opts...)
	svc.Load(context.Background())
	return svc, clock
}

// RecordTestSession records a session and fails the test on error.
// The clock advances one millisecond so updatedAt values stay distinct.
func RecordTestSession(t *testing.T, svc *leaderboard.Service, clock *clockwork.FakeClock, uid, team string, clicks int) models.LeaderboardView {
	t.Helper()

	view, err := svc.RecordSession(context.Background(), uid, team, clicks, models.LooseInt{})
	if err != nil {
		t.Fatalf("Failed to record session for %s: %v", uid, err)
	}
	clock.Advance(time.Millisecond)
	return view
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Bind:           "127.0.0.1",
		Port:           3318,
		DatabaseType:   db.TypeFile,
		DatabaseURL:    cliparse.DefaultFileDB,
		AllowedOrigins: []string{"*"},
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
