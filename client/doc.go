// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package client is the game's outbound path to the leaderboard server.

Client wraps the HTTP API. Reporter implements game.Reporter: it fills in
the participant id and team from Prefs, submits the session and hands the
returned view to an OnView callback. Network and server errors are logged
and dropped.

Prefs keeps the client-local state (uid, team, attempts) as independent
keys in one YAML file:

	uid: 0b6c6a1e-5f7a-4c1b-9d53-3f1f8e0f4a27
	team: outside
	attempts: "2"

A stored attempt count that is not a non-negative integer reads as absent.
*/
package client
