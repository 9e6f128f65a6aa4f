// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package game

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// ticker delivers clock ticks to fn on its own goroutine until cancelled.
// fn receives the ticker so it can ignore ticks that arrive after the
// controller replaced or cancelled it.
type ticker struct {
	t    clockwork.Ticker
	stop chan struct{}
}

func (c *Controller) arm(d time.Duration, fn func(*ticker)) *ticker {
	tk := &ticker{
		t:    c.clock.NewTicker(d),
		stop: make(chan struct{}),
	}

	go func() {
		for {
			select {
			case <-tk.t.Chan():
				fn(tk)
			case <-tk.stop:
				return
			}
		}
	}()

	return tk
}

// cancel is safe on a nil ticker. Each ticker is cancelled at most once.
func (tk *ticker) cancel() {
	if tk == nil {
		return
	}
	tk.t.Stop()
	close(tk.stop)
}
