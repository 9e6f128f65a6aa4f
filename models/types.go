// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Team constants
const (
	TeamInside  = "inside"
	TeamOutside = "outside"
)

// TopN is the number of entries in the public leaderboard.
const TopN = 10

// CoerceTeam maps any submitted team value onto a known team.
// Only the exact literal "outside" selects TeamOutside.
func CoerceTeam(team string) string {
	if team == TeamOutside {
		return TeamOutside
	}
	return TeamInside
}

// ValidTeam reports whether team is one of the known teams.
func ValidTeam(team string) bool {
	return team == TeamInside || team == TeamOutside
}

// Domain types

// ParticipantRecord is the persisted aggregate for one uid.
// UpdatedAt is Unix milliseconds and only breaks ranking ties.
type ParticipantRecord struct {
	Team            string `json:"team"`
	TotalClicks     int    `json:"totalClicks"`
	BestSession     int    `json:"bestSession"`
	LastLocalClicks int    `json:"lastLocalClicks"`
	UpdatedAt       int64  `json:"updatedAt"`
}

// UpdatedTime returns UpdatedAt as a time.Time.
func (p ParticipantRecord) UpdatedTime() time.Time {
	return time.UnixMilli(p.UpdatedAt)
}

type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	UID         string `json:"uid"`
	Team        string `json:"team"`
	TotalClicks int    `json:"totalClicks"`
}

type MyRank struct {
	UID         string `json:"uid"`
	Team        string `json:"team"`
	Rank        int    `json:"rank"` // 1-indexed position in the full order
	TotalClicks int    `json:"totalClicks"`
	BestSession int    `json:"bestSession"`
	TotalUsers  int    `json:"totalUsers"`
}

// LeaderboardView is derived on every request and never stored.
type LeaderboardView struct {
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
	Me          *MyRank            `json:"me"`
}

// Request types

type SubmitSessionRequest struct {
	UID              LooseString `json:"uid"`
	Team             LooseString `json:"team"`
	SessionClicks    LooseInt    `json:"sessionClicks"`
	TotalLocalClicks LooseInt    `json:"totalLocalClicks"`
}

// Response types

type LeaderboardResponse struct {
	OK bool `json:"ok"`
	LeaderboardView
}

// Error response

type ErrorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// LooseString accepts any JSON value. Only a JSON string is kept;
// everything else decodes to the empty string.
type LooseString string

func (s *LooseString) UnmarshalJSON(data []byte) error {
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		*s = ""
		return nil
	}
	*s = LooseString(v)
	return nil
}

// LooseInt accepts a JSON number or a string and keeps its integral
// part. A string is read up to its first non-digit after an optional
// sign, so "12abc" is 12 and "1e3" is 1. Valid is false for anything
// else, including null.
type LooseInt struct {
	Value int
	Valid bool
}

// Int returns a valid LooseInt holding n.
func Int(n int) LooseInt {
	return LooseInt{Value: n, Valid: true}
}

func (n LooseInt) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(n.Value)), nil
}

func (n *LooseInt) UnmarshalJSON(data []byte) error {
	*n = LooseInt{}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return nil
		}
		if v, ok := parseIntPrefix(str); ok {
			*n = LooseInt{Value: v, Valid: true}
		}
		return nil
	}

	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	f = math.Trunc(f)
	if f > math.MaxInt32 || f < math.MinInt32 {
		return nil
	}

	*n = LooseInt{Value: int(f), Valid: true}
	return nil
}

// parseIntPrefix reads an optionally signed run of decimal digits after
// leading whitespace. Values outside int32 are rejected.
func parseIntPrefix(s string) (int, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}

	v, err := strconv.ParseInt(s[:end], 10, 32)
	if err != nil {
		return 0, false
	}
	return int(v), true
}
