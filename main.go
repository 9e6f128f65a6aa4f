// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/click-experiment/cliparse"
)

const (
	releaseVersion = "0.1.0"
)

func main() {
	if err := cliparse.LoadDotEnv(".env"); err != nil {
		slog.Warn("failed to load .env", "error", err)
	}

	cfg := &cliparse.Config{}
	cobra.CheckErr(newCmd(cfg).Execute())
}
