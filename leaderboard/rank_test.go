// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package leaderboard

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/danielhkuo/click-experiment/models"
)

func TestRank_TieBreaks(t *testing.T) {
	records := map[string]models.ParticipantRecord{
		"late":  {Team: "inside", TotalClicks: 50, UpdatedAt: 2000},
		"early": {Team: "outside", TotalClicks: 50, UpdatedAt: 1000},
		"top":   {Team: "inside", TotalClicks: 60, UpdatedAt: 3000},
		"b":     {Team: "inside", TotalClicks: 10, UpdatedAt: 500},
		"a":     {Team: "inside", TotalClicks: 10, UpdatedAt: 500},
	}

	view := Rank(records, "late")

	want := []models.LeaderboardEntry{
		{Rank: 1, UID: "top", Team: "inside", TotalClicks: 60},
		{Rank: 2, UID: "early", Team: "outside", TotalClicks: 50},
		{Rank: 3, UID: "late", Team: "inside", TotalClicks: 50},
		{Rank: 4, UID: "a", Team: "inside", TotalClicks: 10},
		{Rank: 5, UID: "b", Team: "inside", TotalClicks: 10},
	}
	if diff := cmp.Diff(want, view.Leaderboard); diff != "" {
		t.Errorf("Order mismatch (-want +got):\n%s", diff)
	}

	wantMe := &models.MyRank{UID: "late", Team: "inside", Rank: 3, TotalClicks: 50, TotalUsers: 5}
	if diff := cmp.Diff(wantMe, view.Me); diff != "" {
		t.Errorf("Me mismatch (-want +got):\n%s", diff)
	}
}

func TestRank_Empty(t *testing.T) {
	view := Rank(nil, "anyone")
	if view.Leaderboard == nil {
		t.Error("Leaderboard must be an empty slice, not nil")
	}
	if view.Me != nil {
		t.Errorf("Expected nil me, got %+v", view.Me)
	}
}

// TestRank_TotalOrder checks the ordering properties on random data:
// the top list is a prefix of the full order, and ranks agree with
// (totalClicks desc, updatedAt asc).
func TestRank_TotalOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 20; round++ {
		n := rng.Intn(30)
		records := make(map[string]models.ParticipantRecord, n)
		for i := 0; i < n; i++ {
			records[fmt.Sprintf("u%03d", i)] = models.ParticipantRecord{
				Team:        models.TeamInside,
				TotalClicks: rng.Intn(8),
				UpdatedAt:   int64(rng.Intn(5)),
			}
		}

		full := sortRecords(records)
		top := Rank(records, "").Leaderboard

		if len(top) != min(models.TopN, n) {
			t.Fatalf("round %d: expected %d entries, got %d", round, min(models.TopN, n), len(top))
		}
		for i, e := range top {
			if e.UID != full[i].uid || e.Rank != i+1 {
				t.Fatalf("round %d: top list is not a prefix of the full order at %d", round, i)
			}
		}

		ranks := make(map[string]int, n)
		for uid := range records {
			me := Rank(records, uid).Me
			if me == nil || me.TotalUsers != n {
				t.Fatalf("round %d: bad me for %s: %+v", round, uid, me)
			}
			ranks[uid] = me.Rank
		}

		for a, ra := range records {
			for b, rb := range records {
				if ra.TotalClicks > rb.TotalClicks && ranks[a] >= ranks[b] {
					t.Fatalf("round %d: %s has more clicks than %s but rank %d >= %d", round, a, b, ranks[a], ranks[b])
				}
				if ra.TotalClicks == rb.TotalClicks && ra.UpdatedAt < rb.UpdatedAt && ranks[a] >= ranks[b] {
					t.Fatalf("round %d: %s updated earlier than %s but rank %d >= %d", round, a, b, ranks[a], ranks[b])
				}
			}
		}
	}
}
