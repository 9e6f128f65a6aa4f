// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the click-experiment server and client.

click-experiment is a timed click-counting game. Players click as often as
they can during 60 second sessions; the server keeps each participant's
totals and answers with a top ten leaderboard plus the player's own rank.

# Starting the Server

With no subcommand the binary serves the API:

	go run . -p 3318 -t sqlite -d click-db.sqlite

Every flag can also come from the environment or a .env file:

	DATABASE_TYPE=postgres DATABASE_URL=postgres://... go run .

# Subcommands

	top   Print the ranking from the store without starting a server
	play  Play one session against a running server from the terminal

# Configuration

  - PORT (-p): Server port (default: 3318)
  - BIND (-b): Listen address (default: 0.0.0.0)
  - DATABASE_TYPE (-t): file, sqlite or postgres (default: file)
  - DATABASE_URL (-d): Store path or connection string
  - ALLOWED_ORIGINS: CORS origins (default: *)
  - PROFILE: Mount pprof under /debug
  - VERBOSE (-v): Debug logging

# Architecture

  - leaderboard: participant aggregates and ranking
  - game: client session, attempt and gate engine
  - client: HTTP client, session reporter, local prefs
  - handlers: HTTP request handlers and the websocket feed
  - router: Route definitions using chi
  - middleware: CORS, logging, security headers, JSON helpers
  - metrics: Prometheus collectors
  - models: Request/response types
  - db: File, SQLite and Postgres stores
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
