// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the click leaderboard API.

# Handler Types

  - LeaderboardHandler: session submission and leaderboard reads
  - FeedHandler: websocket push of the leaderboard

Handlers are created via constructor functions that accept the service:

	lbHandler := handlers.NewLeaderboardHandler(svc)
	feedHandler := handlers.NewFeedHandler(svc, metrics)

# Endpoints

	POST /api/session           → SubmitSession
	GET  /api/leaderboard?uid=  → GetLeaderboard
	GET  /api/leaderboard/ws    → ServeWS

# Request Parsing

The session body is {uid, team, sessionClicks, totalLocalClicks}. The
numeric fields accept JSON numbers (integral part kept) or numeric strings.
A body that fails to decode, or a uid that is not a string, is reported as
"invalid uid". A missing, non-numeric or non-positive sessionClicks is
reported as "invalid sessionClicks".

# Responses

Success:

	{"ok": true, "leaderboard": [...], "me": {...} | null}

Validation failure (400):

	{"ok": false, "error": "invalid uid"}

# Live Feed

ServeWS upgrades the connection, sends the current view for the uid query
parameter and then a fresh view after every recorded session. Views are
queued without blocking; a client that falls behind drops the views
that do not fit its buffer. Inbound messages are ignored.
*/
package handlers
