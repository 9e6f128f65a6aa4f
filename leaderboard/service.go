// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package leaderboard

import (
	"context"
	"log/slog"
	"maps"
	"sync"

	"github.com/jonboulle/clockwork"

	"github.com/danielhkuo/click-experiment/db"
	"github.com/danielhkuo/click-experiment/models"
)

// Metrics receives service events. NoOpMetrics discards them.
type Metrics interface {
	SessionRecorded(clicks int)
	SessionRejected(reason string)
	StoreSaveFailed()
	Participants(n int)
}

type NoOpMetrics struct{}

func (NoOpMetrics) SessionRecorded(int)    {}
func (NoOpMetrics) SessionRejected(string) {}
func (NoOpMetrics) StoreSaveFailed()       {}
func (NoOpMetrics) Participants(int)       {}

// Service owns the in-memory participant map. Every read and write
// holds mu, so requests touch the map one at a time.
type Service struct {
	store   db.Store
	clock   clockwork.Clock
	metrics Metrics

	mu      sync.Mutex
	records map[string]models.ParticipantRecord

	subMu       sync.Mutex
	subscribers map[int]func()
	nextSub     int
}

type Option func(*Service)

func WithClock(clock clockwork.Clock) Option {
	return func(s *Service) { s.clock = clock }
}

func WithMetrics(m Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// NewService creates an empty service. Call Load to read the store.
func NewService(store db.Store, opts ...Option) *Service {
	s := &Service{
		store:       store,
		clock:       clockwork.NewRealClock(),
		metrics:     NoOpMetrics{},
		records:     make(map[string]models.ParticipantRecord),
		subscribers: make(map[int]func()),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the in-memory map with the store's contents. Read and
// parse errors are logged and leave the service empty.
func (s *Service) Load(ctx context.Context) {
	records, err := s.store.Load(ctx)
	if err != nil {
		slog.Error("failed to load store, starting empty", "error", err)
		records = nil
	}
	if records == nil {
		records = make(map[string]models.ParticipantRecord)
	}

	s.mu.Lock()
	s.records = records
	s.mu.Unlock()

	s.metrics.Participants(len(records))
	slog.Info("leaderboard loaded", "participants", len(records))
}

// RecordSession adds one finished session to uid's aggregate and returns
// the fresh view for uid. reportedLifetime is stored only when Valid.
func (s *Service) RecordSession(ctx context.Context, uid, team string, sessionClicks int, reportedLifetime models.LooseInt) (models.LeaderboardView, error) {
	if uid == "" {
		s.metrics.SessionRejected("uid")
		return models.LeaderboardView{}, ErrInvalidUID
	}
	if sessionClicks <= 0 {
		s.metrics.SessionRejected("session_clicks")
		return models.LeaderboardView{}, ErrInvalidSessionClicks
	}

	s.mu.Lock()

	rec, existed := s.records[uid]
	rec.Team = models.CoerceTeam(team)
	rec.TotalClicks += sessionClicks
	if sessionClicks > rec.BestSession {
		rec.BestSession = sessionClicks
	}
	if reportedLifetime.Valid {
		rec.LastLocalClicks = reportedLifetime.Value
	}
	rec.UpdatedAt = s.clock.Now().UnixMilli()
	s.records[uid] = rec

	// the write outlives a disconnected client
	if err := s.store.Save(context.WithoutCancel(ctx), s.records, uid); err != nil {
		slog.Error("failed to save store", "error", err, "uid", uid)
		s.metrics.StoreSaveFailed()
	}

	view := Rank(s.records, uid)
	total := len(s.records)

	s.mu.Unlock()

	if !existed {
		slog.Info("participant created", "uid", uid, "team", rec.Team)
	}
	slog.Info("session recorded",
		"uid", uid,
		"session_clicks", sessionClicks,
		"total_clicks", rec.TotalClicks,
		"rank", view.Me.Rank,
	)

	s.metrics.SessionRecorded(sessionClicks)
	s.metrics.Participants(total)
	s.notify()

	return view, nil
}

// Leaderboard is a pure read. An empty uid omits Me.
func (s *Service) Leaderboard(uid string) models.LeaderboardView {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Rank(s.records, uid)
}

// Record returns a copy of uid's record.
func (s *Service) Record(uid string) (models.ParticipantRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[uid]
	return rec, ok
}

// Snapshot returns a copy of the whole map.
func (s *Service) Snapshot() map[string]models.ParticipantRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return maps.Clone(s.records)
}

// Subscribe registers fn to run after every recorded session. The
// returned func removes it.
func (s *Service) Subscribe(fn func()) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subscribers, id)
		s.subMu.Unlock()
	}
}

func (s *Service) notify() {
	s.subMu.Lock()
	fns := make([]func(), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
