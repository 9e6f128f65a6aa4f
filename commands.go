// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/danielhkuo/click-experiment/cliparse"
)

func newCmd(cfg *cliparse.Config) *cobra.Command {
	v := cliparse.NewViper()

	cmd := &cobra.Command{
		Use:           "click-experiment",
		Short:         "Leaderboard server and headless client for the click experiment.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		SilenceUsage:  true,
		Version:       releaseVersion,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cliparse.ApplyEnv(cmd.Flags(), v); err != nil {
				return err
			}
			setupLogging(cfg.Verbose)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runServe(cmd.Context(), *cfg)
		},
	}

	fs := cmd.PersistentFlags()
	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})
	cliparse.BindFlags(fs, cfg)

	cmd.AddCommand(newTopCmd(cfg), newPlayCmd())

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("click-experiment v{{.Version}}\n")

	return cmd
}

func newTopCmd(cfg *cliparse.Config) *cobra.Command {
	var uid string

	cmd := &cobra.Command{
		Use:   "top",
		Short: "Print the current ranking from the store.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runTop(cmd.Context(), *cfg, uid, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&uid, "me", "", "participant id whose rank to show (env: ME)")

	return cmd
}

func newPlayCmd() *cobra.Command {
	var pc cliparse.PlayConfig

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play one session against a running server.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd.Context(), pc, cmd.OutOrStdout())
		},
	}

	cliparse.BindPlayFlags(cmd.Flags(), &pc)

	return cmd
}

func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
