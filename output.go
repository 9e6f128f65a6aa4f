// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/click-experiment/models"
)

func printView(w io.Writer, view models.LeaderboardView) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)

	fmt.Fprintln(tw, "RANK\tTEAM\tCLICKS\tUID\t")
	for _, e := range view.Leaderboard {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t\n", e.Rank, e.Team, humanize.Comma(int64(e.TotalClicks)), e.UID)
	}
	if len(view.Leaderboard) == 0 {
		fmt.Fprintln(tw, "-\t-\t0\t(no sessions yet)\t")
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if me := view.Me; me != nil {
		_, err := fmt.Fprintf(w, "\nyou: %s place of %d, %s clicks (best session %s), team %s\n",
			humanize.Ordinal(me.Rank),
			me.TotalUsers,
			humanize.Comma(int64(me.TotalClicks)),
			humanize.Comma(int64(me.BestSession)),
			me.Team,
		)
		return err
	}
	return nil
}
