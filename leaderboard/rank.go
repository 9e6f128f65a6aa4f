// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package leaderboard

import (
	"sort"

	"github.com/danielhkuo/click-experiment/models"
)

type ranked struct {
	uid string
	rec models.ParticipantRecord
}

// sortRecords returns every record in ranking order: totalClicks
// descending, then updatedAt ascending, then uid ascending.
func sortRecords(records map[string]models.ParticipantRecord) []ranked {
	all := make([]ranked, 0, len(records))
	for uid, rec := range records {
		all = append(all, ranked{uid: uid, rec: rec})
	}

	sort.Slice(all, func(i, j int) bool {
		a, b := all[i], all[j]
		if a.rec.TotalClicks != b.rec.TotalClicks {
			return a.rec.TotalClicks > b.rec.TotalClicks
		}
		if a.rec.UpdatedAt != b.rec.UpdatedAt {
			return a.rec.UpdatedAt < b.rec.UpdatedAt
		}
		return a.uid < b.uid
	})

	return all
}

// Rank computes the view from scratch. uid may be empty, in which case
// Me is nil; an unknown uid also yields a nil Me.
func Rank(records map[string]models.ParticipantRecord, uid string) models.LeaderboardView {
	all := sortRecords(records)

	n := min(models.TopN, len(all))
	view := models.LeaderboardView{
		Leaderboard: make([]models.LeaderboardEntry, 0, n),
	}
	for i, r := range all[:n] {
		view.Leaderboard = append(view.Leaderboard, models.LeaderboardEntry{
			Rank:        i + 1,
			UID:         r.uid,
			Team:        r.rec.Team,
			TotalClicks: r.rec.TotalClicks,
		})
	}

	if uid == "" {
		return view
	}
	for i, r := range all {
		if r.uid != uid {
			continue
		}
		view.Me = &models.MyRank{
			UID:         r.uid,
			Team:        r.rec.Team,
			Rank:        i + 1,
			TotalClicks: r.rec.TotalClicks,
			BestSession: r.rec.BestSession,
			TotalUsers:  len(all),
		}
		break
	}

	return view
}
