// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/click-experiment/models"
)

// Storage backend types
const (
	TypeFile     = "file"
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
)

var ErrUnknownType = errors.New("unknown database type")

// Store persists the participant map.
// Save receives the complete map plus the uid that changed. Every
// backend writes the whole map, so a successful Save also persists
// changes whose own Save failed.
type Store interface {
	Load(ctx context.Context) (map[string]models.ParticipantRecord, error)
	Save(ctx context.Context, records map[string]models.ParticipantRecord, changed string) error
	Close() error
}

// Open returns the Store for the given backend type.
// For TypeFile the url is a filesystem path; otherwise it is a driver DSN.
func Open(ctx context.Context, typ, url string) (Store, error) {
	switch typ {
	case TypeFile:
		return NewFileStore(url), nil
	case TypeSQLite, TypePostgres:
		conn, err := sql.Open(driverName(typ), url)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", typ, err)
		}
		if err := conn.PingContext(ctx); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to ping %s: %w", typ, err)
		}
		if typ == TypeSQLite {
			// one writer at a time
			conn.SetMaxOpenConns(1)
		}
		if err := CreateSchema(ctx, conn); err != nil {
			conn.Close()
			return nil, err
		}
		return NewSQLStore(conn, typ), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, typ)
	}
}

func driverName(typ string) string {
	if typ == TypeSQLite {
		return "sqlite"
	}
	return "postgres"
}
