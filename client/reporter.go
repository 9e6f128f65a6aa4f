// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package client

import (
	"context"
	"log/slog"
	"time"

	"github.com/danielhkuo/click-experiment/game"
	"github.com/danielhkuo/click-experiment/models"
)

// unknownTeam is sent when no team is stored; the server files it under inside.
const unknownTeam = "unknown"

var _ game.Reporter = (*Reporter)(nil)

// Reporter sends finished sessions to the server. Failures are logged
// and dropped; nothing is retried.
type Reporter struct {
	client  *Client
	prefs   *Prefs
	timeout time.Duration
	onView  func(models.LeaderboardView)
}

type ReporterOption func(*Reporter)

// OnView sets a callback for every view the server returns.
func OnView(fn func(models.LeaderboardView)) ReporterOption {
	return func(r *Reporter) { r.onView = fn }
}

func WithTimeout(d time.Duration) ReporterOption {
	return func(r *Reporter) { r.timeout = d }
}

func NewReporter(client *Client, prefs *Prefs, opts ...ReporterOption) *Reporter {
	r := &Reporter{
		client:  client,
		prefs:   prefs,
		timeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ReportSession implements game.Reporter.
func (r *Reporter) ReportSession(sessionClicks, lifetimeClicks int) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	uid, err := r.prefs.UID()
	if err != nil {
		// The generated id is still usable for this submit
		slog.Warn("failed to persist participant id", "error", err)
	}

	team := r.prefs.Team()
	if team == "" {
		team = unknownTeam
	}

	view, err := r.client.SubmitSession(ctx, models.SubmitSessionRequest{
		UID:              models.LooseString(uid),
		Team:             models.LooseString(team),
		SessionClicks:    models.Int(sessionClicks),
		TotalLocalClicks: models.Int(lifetimeClicks),
	})
	if err != nil {
		slog.Error("submit session failed", "error", err, "session_clicks", sessionClicks)
		return
	}

	slog.Debug("session submitted", "uid", uid, "session_clicks", sessionClicks)
	r.deliver(view)
}

// Refresh fetches the current view for this participant. Failures are
// logged and dropped.
func (r *Reporter) Refresh(ctx context.Context) {
	uid, _ := r.prefs.Get(KeyUID)

	view, err := r.client.Leaderboard(ctx, uid)
	if err != nil {
		slog.Error("fetch leaderboard failed", "error", err)
		return
	}
	r.deliver(view)
}

func (r *Reporter) deliver(view models.LeaderboardView) {
	if r.onView != nil {
		r.onView(view)
	}
}
