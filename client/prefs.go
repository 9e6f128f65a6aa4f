// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package client

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/click-experiment/models"
)

const (
	KeyUID      = "uid"
	KeyTeam     = "team"
	KeyAttempts = "attempts"
)

// Prefs is a small YAML key/value file holding client-local state. Each
// key is read and written independently; a write rewrites the file.
type Prefs struct {
	path string

	mu      sync.Mutex
	entries map[string]string
}

// OpenPrefs loads path. A missing file gives empty prefs. An unparseable
// file is logged and treated as empty.
func OpenPrefs(path string) (*Prefs, error) {
	p := &Prefs{path: path, entries: make(map[string]string)}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read prefs: %w", err)
	}

	if err := yaml.Unmarshal(data, &p.entries); err != nil {
		slog.Warn("ignoring unreadable prefs file", "path", path, "error", err)
		p.entries = make(map[string]string)
	}
	if p.entries == nil {
		p.entries = make(map[string]string)
	}
	return p, nil
}

func (p *Prefs) Path() string {
	return p.path
}

func (p *Prefs) Get(key string) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	v, ok := p.entries[key]
	return v, ok
}

func (p *Prefs) Set(key, value string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.entries[key] = value
	return p.saveLocked()
}

func (p *Prefs) saveLocked() error {
	data, err := yaml.Marshal(p.entries)
	if err != nil {
		return fmt.Errorf("encode prefs: %w", err)
	}

	if dir := filepath.Dir(p.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create prefs dir: %w", err)
		}
	}

	tmp := p.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := os.Rename(tmp, p.path); err != nil {
		return fmt.Errorf("replace prefs: %w", err)
	}
	return nil
}

// UID returns the stored participant id, generating and storing a new
// one on first use.
func (p *Prefs) UID() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if uid := p.entries[KeyUID]; uid != "" {
		return uid, nil
	}

	uid := uuid.NewString()
	p.entries[KeyUID] = uid
	if err := p.saveLocked(); err != nil {
		return uid, err
	}
	slog.Info("generated participant id", "uid", uid)
	return uid, nil
}

// Team returns the stored team, or "" when none is stored.
func (p *Prefs) Team() string {
	team, _ := p.Get(KeyTeam)
	return team
}

func (p *Prefs) SetTeam(team string) error {
	if !models.ValidTeam(team) {
		return fmt.Errorf("invalid team %q", team)
	}
	return p.Set(KeyTeam, team)
}

// LoadAttempts returns the stored attempt count. Missing, non-numeric
// and negative values report false.
func (p *Prefs) LoadAttempts() (int, bool) {
	raw, ok := p.Get(KeyAttempts)
	if !ok {
		return 0, false
	}

	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func (p *Prefs) SaveAttempts(n int) error {
	return p.Set(KeyAttempts, strconv.Itoa(n))
}
