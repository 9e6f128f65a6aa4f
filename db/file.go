// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/click-experiment/models"
)

// ErrInvalidDocument is returned by FileStore.Load when the file parses
// but is not a {"uids": {...}} document.
var ErrInvalidDocument = errors.New("invalid store document")

// document is the on-disk layout of a FileStore.
type document struct {
	UIDs map[string]models.ParticipantRecord `json:"uids"`
}

// FileStore keeps every participant in a single JSON file that is
// rewritten wholesale on each save.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the store file. A missing file is an empty store.
func (s *FileStore) Load(ctx context.Context) (map[string]models.ParticipantRecord, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]models.ParticipantRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	var doc document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.path, err)
	}
	if doc.UIDs == nil {
		return nil, fmt.Errorf("%w: %s has no uids object", ErrInvalidDocument, s.path)
	}

	slog.Debug("store loaded",
		"path", s.path,
		"participants", len(doc.UIDs),
		"size", humanize.Bytes(uint64(len(b))),
	)
	return doc.UIDs, nil
}

// Save writes the full map to a temp file and renames it into place.
func (s *FileStore) Save(ctx context.Context, records map[string]models.ParticipantRecord, _ string) error {
	if records == nil {
		records = map[string]models.ParticipantRecord{}
	}

	b, err := json.MarshalIndent(document{UIDs: records}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode store: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}

	slog.Debug("store saved",
		"path", s.path,
		"participants", len(records),
		"size", humanize.Bytes(uint64(len(b))),
	)
	return nil
}

func (s *FileStore) Close() error {
	return nil
}
