// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/click-experiment/cliparse"
	"github.com/danielhkuo/click-experiment/db"
	"github.com/danielhkuo/click-experiment/leaderboard"
)

// runTop prints the ranking straight from the store without starting a server.
func runTop(ctx context.Context, cfg cliparse.Config, uid string, w io.Writer) error {
	store, err := db.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	records, err := store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load store: %w", err)
	}

	if err := printView(w, leaderboard.Rank(records, uid)); err != nil {
		return err
	}

	if rec, ok := records[uid]; ok {
		_, err = fmt.Fprintf(w, "last session %s\n", humanize.Time(rec.UpdatedTime()))
	}
	return err
}
