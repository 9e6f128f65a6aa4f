// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db persists participant records.

# Backends

Open selects a Store by type:

	store, err := db.Open(ctx, db.TypeFile, "click-db.json")

  - file: one JSON document rewritten wholesale on every save (default)
  - sqlite: one row per participant (modernc.org/sqlite, no cgo)
  - postgres: one row per participant (lib/pq)

# File Layout

	{
	  "uids": {
	    "<uid>": {
	      "team": "inside",
	      "totalClicks": 16,
	      "bestSession": 8,
	      "lastLocalClicks": 40,
	      "updatedAt": 1731000000000
	    }
	  }
	}

updatedAt is Unix milliseconds. Saves go through a temp file and a rename so
a crash mid-write never leaves a truncated document behind.

# Schema Creation

SQL backends call CreateSchema on open. Safe to call multiple times - uses
IF NOT EXISTS.
*/
package db
