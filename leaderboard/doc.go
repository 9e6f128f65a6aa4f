// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package leaderboard records session results and ranks participants.

	svc := leaderboard.NewService(store, leaderboard.WithMetrics(m))
	svc.Load(ctx)
	view, err := svc.RecordSession(ctx, uid, team, clicks, reported)

Ranking is recomputed from the whole map on every call: totalClicks
descending, updatedAt ascending, uid ascending. The public list is the
first models.TopN entries; Me carries the position in the full order.

Store failures never reach callers. A failed load starts the service
empty; a failed save is logged and the in-memory map stays authoritative
until the next successful save.
*/
package leaderboard
