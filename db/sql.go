// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/danielhkuo/click-experiment/models"
)

// CreateSchema creates the participant table.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
CREATE TABLE IF NOT EXISTS participant (
    uid TEXT PRIMARY KEY,
    team TEXT NOT NULL DEFAULT 'inside' CHECK (team IN ('inside', 'outside')),
    total_clicks BIGINT NOT NULL DEFAULT 0 CHECK (total_clicks >= 0),
    best_session BIGINT NOT NULL DEFAULT 0 CHECK (best_session >= 0),
    last_local_clicks BIGINT NOT NULL DEFAULT 0,
    updated_at BIGINT NOT NULL
);
`

// SQLStore keeps one row per participant in SQLite or PostgreSQL.
type SQLStore struct {
	db  *sql.DB
	typ string
}

func NewSQLStore(db *sql.DB, typ string) *SQLStore {
	return &SQLStore{db: db, typ: typ}
}

func (s *SQLStore) Load(ctx context.Context) (map[string]models.ParticipantRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT uid, team, total_clicks, best_session, last_local_clicks, updated_at
		FROM participant
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query participants: %w", err)
	}
	defer rows.Close()

	records := make(map[string]models.ParticipantRecord)
	for rows.Next() {
		var uid string
		var rec models.ParticipantRecord
		if err := rows.Scan(&uid, &rec.Team, &rec.TotalClicks, &rec.BestSession, &rec.LastLocalClicks, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		records[uid] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}

	return records, nil
}

// Save upserts every record in one transaction, so rows whose earlier
// save failed are written by the next successful one.
func (s *SQLStore) Save(ctx context.Context, records map[string]models.ParticipantRecord, _ string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, s.rebind(`
		INSERT INTO participant (uid, team, total_clicks, best_session, last_local_clicks, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (uid) DO UPDATE SET
			team = excluded.team,
			total_clicks = excluded.total_clicks,
			best_session = excluded.best_session,
			last_local_clicks = excluded.last_local_clicks,
			updated_at = excluded.updated_at
	`))
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	for uid, rec := range records {
		if _, err := stmt.ExecContext(ctx, uid, rec.Team, rec.TotalClicks, rec.BestSession, rec.LastLocalClicks, rec.UpdatedAt); err != nil {
			return fmt.Errorf("failed to upsert participant %s: %w", uid, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit participants: %w", err)
	}

	return nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

// rebind rewrites ? placeholders as $1..$n for PostgreSQL.
func (s *SQLStore) rebind(query string) string {
	if s.typ != TypePostgres {
		return query
	}

	out := make([]byte, 0, len(query)+8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] != '?' {
			out = append(out, query[i])
			continue
		}
		n++
		out = append(out, '$')
		out = strconv.AppendInt(out, int64(n), 10)
	}
	return string(out)
}
