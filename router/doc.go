// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the click leaderboard API.

# Route Registration

NewRouter creates a chi mux with all endpoints:

	mux := router.NewRouter(svc, metrics, cfg)

# Endpoints

Health and metrics:

	GET /health  - Liveness, returns "OK"
	GET /metrics - Prometheus exposition

Leaderboard:

	POST /api/session         - Record a finished session
	GET  /api/leaderboard     - Top ten plus optional ?uid= rank
	GET  /api/leaderboard/ws  - Websocket feed of the same view

Profiling (only with --profile):

	GET /debug/pprof/*

# Middleware

Every route passes through panic recovery, security headers and CORS.
The JSON endpoints are additionally wrapped with request logging.
Unsupported methods on known paths return 405.
*/
package router
