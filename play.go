// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/danielhkuo/click-experiment/client"
	"github.com/danielhkuo/click-experiment/cliparse"
	"github.com/danielhkuo/click-experiment/game"
	"github.com/danielhkuo/click-experiment/models"
)

// runPlay drives one full session the way the browser page would: pick a
// team if needed, sit through the ad gate when out of attempts, click,
// and wait for the server's answer.
func runPlay(ctx context.Context, pc cliparse.PlayConfig, w io.Writer, opts ...game.Option) error {
	prefs, err := client.OpenPrefs(pc.PrefsPath)
	if err != nil {
		return err
	}

	uid, err := prefs.UID()
	if err != nil {
		return fmt.Errorf("store participant id: %w", err)
	}
	slog.Info("Playing", "uid", uid, "server", pc.ServerURL, "prefs", prefs.Path())

	c := client.New(pc.ServerURL)
	c.SetTimeout(pc.Timeout)

	views := make(chan models.LeaderboardView, 1)
	reporter := client.NewReporter(c, prefs,
		client.WithTimeout(pc.Timeout),
		client.OnView(func(v models.LeaderboardView) {
			select {
			case views <- v:
			default:
			}
		}),
	)

	changed := make(chan struct{}, 1)
	opts = append(opts[:len(opts):len(opts)], game.WithObserver(func(game.Snapshot) {
		select {
		case changed <- struct{}{}:
		default:
		}
	}))
	ctrl := game.NewController(prefs, reporter, opts...)
	defer ctrl.Close()

	wait := func(cond func(game.Snapshot) bool) error {
		for !cond(ctrl.Snapshot()) {
			select {
			case <-changed:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	}

	if ctrl.Snapshot().TeamGateActive {
		if pc.Team == "" {
			return errors.New("no team stored yet; pass --team inside or --team outside")
		}
		ctrl.ChooseTeam(pc.Team)
		if ctrl.Snapshot().TeamGateActive {
			return fmt.Errorf("invalid team %q", pc.Team)
		}
	}

	reporter.Refresh(ctx)
	select {
	case v := <-views:
		fmt.Fprintln(w, "current standings:")
		if err := printView(w, v); err != nil {
			return err
		}
	default:
	}

	if ctrl.Snapshot().AttemptsLeft == 0 {
		fmt.Fprintf(w, "out of attempts, waiting %ds for a refill\n", game.AdLength)
		ctrl.OpenAdGate()
		if err := wait(game.Snapshot.CanCloseAdGate); err != nil {
			return err
		}
		ctrl.CloseAdGate()
	}

	ctrl.StartSession()
	if !ctrl.Snapshot().Running {
		return errors.New("session did not start")
	}
	fmt.Fprintf(w, "session started, %d clicks, %ds\n", pc.Clicks, game.SessionLength)

	for i := 0; i < pc.Clicks; i++ {
		ctrl.RegisterClick(game.SourceKeyboard)
	}

	if err := wait(func(s game.Snapshot) bool { return !s.Running }); err != nil {
		return err
	}

	s := ctrl.Snapshot()
	fmt.Fprintf(w, "session over: %d clicks, %d attempts left\n", s.SessionClicks, s.AttemptsLeft)
	if s.SessionClicks == 0 {
		return nil
	}

	select {
	case v := <-views:
		return printView(w, v)
	case <-time.After(pc.Timeout + time.Second):
		return errors.New("no answer from the leaderboard server")
	case <-ctx.Done():
		return ctx.Err()
	}
}
