// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package game

import (
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/danielhkuo/click-experiment/models"
)

const (
	SessionLength = 60 // countdown seconds per session
	AdLength      = 10 // seconds before the ad gate may close
	HoldInterval  = 80 * time.Millisecond
	FullAllowance = 3

	clickLogEvery = 50
)

// Click sources passed to RegisterClick.
const (
	SourceManual   = "manual"
	SourceKeyboard = "keyboard"
	SourceHold     = "hold"
)

// Reporter receives every finished session with at least one click.
// It runs on its own goroutine; the controller never waits for it.
type Reporter interface {
	ReportSession(sessionClicks, lifetimeClicks int)
}

// Prefs is the client-local persisted state the controller reads and writes.
type Prefs interface {
	Team() string
	SetTeam(team string) error
	LoadAttempts() (int, bool)
	SaveAttempts(n int) error
}

// Snapshot is a copy of everything a UI would render.
type Snapshot struct {
	Running        bool
	SecondsLeft    int
	SessionClicks  int
	LifetimeClicks int
	AttemptsLeft   int
	Holding        bool
	AdGateActive   bool
	AdSecondsLeft  int
	TeamGateActive bool
	Team           string
}

// CanCloseAdGate reports whether the gate is open and its countdown has elapsed.
func (s Snapshot) CanCloseAdGate() bool {
	return s.AdGateActive && s.AdSecondsLeft == 0
}

type Option func(*Controller)

func WithClock(clock clockwork.Clock) Option {
	return func(c *Controller) { c.clock = clock }
}

// WithObserver registers fn to receive a snapshot after every state change.
// fn runs without the controller lock held and may call back into it.
func WithObserver(fn func(Snapshot)) Option {
	return func(c *Controller) { c.observer = fn }
}

// Controller owns session, attempt and gate state. All transitions hold
// mu, so timer callbacks and UI calls apply one at a time.
type Controller struct {
	clock    clockwork.Clock
	prefs    Prefs
	reporter Reporter
	observer func(Snapshot)

	mu             sync.Mutex
	running        bool
	secondsLeft    int
	sessionClicks  int
	lifetimeClicks int
	attempts       int
	adActive       bool
	adSecondsLeft  int
	teamGate       bool
	team           string

	countdown   *ticker
	adCountdown *ticker
	hold        *ticker
}

// NewController restores attempts and team from prefs. A missing or
// invalid attempt count means the full allowance; a missing team
// activates the team-select gate. reporter may be nil.
func NewController(prefs Prefs, reporter Reporter, opts ...Option) *Controller {
	c := &Controller{
		clock:    clockwork.NewRealClock(),
		prefs:    prefs,
		reporter: reporter,
		attempts: FullAllowance,
	}
	for _, opt := range opts {
		opt(c)
	}

	if n, ok := prefs.LoadAttempts(); ok && n >= 0 {
		c.attempts = n
	}
	if team := prefs.Team(); models.ValidTeam(team) {
		c.team = team
	} else {
		c.teamGate = true
	}

	return c
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		Running:        c.running,
		SecondsLeft:    c.secondsLeft,
		SessionClicks:  c.sessionClicks,
		LifetimeClicks: c.lifetimeClicks,
		AttemptsLeft:   c.attempts,
		Holding:        c.hold != nil,
		AdGateActive:   c.adActive,
		AdSecondsLeft:  c.adSecondsLeft,
		TeamGateActive: c.teamGate,
		Team:           c.team,
	}
}

// update applies fn under the lock and notifies the observer if fn
// reports a change.
func (c *Controller) update(fn func() bool) {
	c.mu.Lock()
	changed := fn()
	snap := c.snapshotLocked()
	c.mu.Unlock()

	if changed && c.observer != nil {
		c.observer(snap)
	}
}

// StartSession begins a session unless one is running, a gate is active
// or no attempts remain.
func (c *Controller) StartSession() {
	c.update(func() bool {
		if c.running || c.adActive || c.teamGate || c.attempts <= 0 {
			return false
		}

		c.running = true
		c.secondsLeft = SessionLength
		c.sessionClicks = 0

		c.countdown.cancel()
		c.countdown = c.arm(time.Second, c.sessionTick)

		slog.Debug("session started", "attempts_left", c.attempts)
		return true
	})
}

// RegisterClick counts one click. Lifetime clicks always count; session
// clicks only while a session runs. Ignored while the ad gate is open.
func (c *Controller) RegisterClick(source string) {
	c.update(func() bool {
		return c.registerClickLocked(source)
	})
}

func (c *Controller) registerClickLocked(source string) bool {
	if c.adActive {
		return false
	}

	c.lifetimeClicks++
	if c.running {
		c.sessionClicks++
	}

	if c.lifetimeClicks%clickLogEvery == 0 {
		slog.Debug("click milestone", "total_clicks", c.lifetimeClicks, "source", source)
	}
	return true
}

// BeginHold registers a click now and repeats every HoldInterval until
// EndHold, the session ends, or a gate becomes active.
func (c *Controller) BeginHold() {
	c.update(func() bool {
		if !c.running || c.adActive || c.teamGate {
			return false
		}

		c.registerClickLocked(SourceHold)
		if c.hold == nil {
			c.hold = c.arm(HoldInterval, c.holdTick)
		}
		return true
	})
}

// EndHold stops the hold repeat.
func (c *Controller) EndHold() {
	c.update(func() bool {
		if c.hold == nil {
			return false
		}
		c.cancelHold()
		return true
	})
}

func (c *Controller) holdTick(tk *ticker) {
	c.update(func() bool {
		if c.hold != tk {
			return false
		}
		if !c.running || c.adActive || c.teamGate {
			c.cancelHold()
			return true
		}
		return c.registerClickLocked(SourceHold)
	})
}

func (c *Controller) sessionTick(tk *ticker) {
	c.update(func() bool {
		if c.countdown != tk {
			return false
		}

		c.secondsLeft--
		if c.secondsLeft <= 0 {
			c.secondsLeft = 0
			c.endSessionLocked()
		}
		return true
	})
}

// endSessionLocked runs when the countdown reaches zero.
func (c *Controller) endSessionLocked() {
	if !c.running {
		return
	}

	c.running = false
	c.cancelCountdown()
	c.secondsLeft = 0
	c.cancelHold()

	c.attempts--
	if c.attempts < 0 {
		c.attempts = 0
	}
	c.saveAttemptsLocked()

	clicks, lifetime := c.sessionClicks, c.lifetimeClicks
	slog.Info("session ended",
		"session_clicks", clicks,
		"lifetime_clicks", lifetime,
		"attempts_left", c.attempts,
	)

	if clicks > 0 && c.reporter != nil {
		go c.reporter.ReportSession(clicks, lifetime)
	}
}

// OpenAdGate opens the refill gate. Only allowed with no attempts left.
func (c *Controller) OpenAdGate() {
	c.update(func() bool {
		if c.adActive || c.attempts > 0 {
			return false
		}

		c.adActive = true
		c.adSecondsLeft = AdLength
		c.cancelHold()

		c.adCountdown.cancel()
		c.adCountdown = c.arm(time.Second, c.adTick)

		slog.Info("ad gate opened", "seconds", AdLength)
		return true
	})
}

func (c *Controller) adTick(tk *ticker) {
	c.update(func() bool {
		if c.adCountdown != tk {
			return false
		}

		c.adSecondsLeft--
		if c.adSecondsLeft <= 0 {
			c.adSecondsLeft = 0
			c.adCountdown.cancel()
			c.adCountdown = nil
		}
		return true
	})
}

// CanCloseAdGate reports whether the gate is open and its countdown has
// elapsed. UI code uses it to enable the close action.
func (c *Controller) CanCloseAdGate() bool {
	return c.Snapshot().CanCloseAdGate()
}

// CloseAdGate closes the gate and refills attempts. It does not check
// the countdown; callers gate it with CanCloseAdGate.
func (c *Controller) CloseAdGate() {
	c.update(func() bool {
		if !c.adActive {
			return false
		}

		c.adActive = false
		c.adCountdown.cancel()
		c.adCountdown = nil
		c.adSecondsLeft = 0

		c.attempts = FullAllowance
		c.saveAttemptsLocked()

		slog.Info("ad gate closed", "attempts_left", c.attempts)
		return true
	})
}

// ChooseTeam stores team and lifts the team-select gate. Ignored unless
// the gate is active and team is inside or outside.
func (c *Controller) ChooseTeam(team string) {
	c.update(func() bool {
		if !c.teamGate || !models.ValidTeam(team) {
			return false
		}

		if err := c.prefs.SetTeam(team); err != nil {
			slog.Warn("failed to persist team", "error", err)
		}
		c.team = team
		c.teamGate = false

		slog.Info("team chosen", "team", team)
		return true
	})
}

// Close stops every timer. The controller is unusable afterwards.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancelCountdown()
	c.cancelHold()
	c.adCountdown.cancel()
	c.adCountdown = nil
	c.running = false
}

func (c *Controller) cancelCountdown() {
	c.countdown.cancel()
	c.countdown = nil
}

func (c *Controller) cancelHold() {
	c.hold.cancel()
	c.hold = nil
}

func (c *Controller) saveAttemptsLocked() {
	if err := c.prefs.SaveAttempts(c.attempts); err != nil {
		slog.Warn("failed to persist attempts", "error", err, "attempts", c.attempts)
	}
}
