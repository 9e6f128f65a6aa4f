// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package client

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/danielhkuo/click-experiment/models"
)

func TestOpenPrefs_Missing(t *testing.T) {
	p, err := OpenPrefs(filepath.Join(t.TempDir(), "prefs.yaml"))
	if err != nil {
		t.Fatal(err)
	}

	if p.Team() != "" {
		t.Errorf("expected no team, got %q", p.Team())
	}
	if _, ok := p.LoadAttempts(); ok {
		t.Error("expected no attempts")
	}
}

func TestPrefs_UIDIsGeneratedOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.yaml")

	p, err := OpenPrefs(path)
	if err != nil {
		t.Fatal(err)
	}

	uid, err := p.UID()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := uuid.Parse(uid); err != nil {
		t.Errorf("expected a uuid, got %q: %v", uid, err)
	}

	again, _ := p.UID()
	if again != uid {
		t.Errorf("expected stable uid, got %q then %q", uid, again)
	}

	reopened, err := OpenPrefs(path)
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := reopened.UID(); got != uid {
		t.Errorf("expected uid to survive reopen, got %q want %q", got, uid)
	}
}

func TestPrefs_TeamAndAttemptsPersist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")

	p, _ := OpenPrefs(path)
	if err := p.SetTeam(models.TeamOutside); err != nil {
		t.Fatal(err)
	}
	if err := p.SaveAttempts(2); err != nil {
		t.Fatal(err)
	}

	if err := p.SetTeam("middle"); err == nil {
		t.Error("expected error for invalid team")
	}

	reopened, err := OpenPrefs(path)
	if err != nil {
		t.Fatal(err)
	}
	if reopened.Team() != models.TeamOutside {
		t.Errorf("expected outside, got %q", reopened.Team())
	}
	if n, ok := reopened.LoadAttempts(); !ok || n != 2 {
		t.Errorf("expected 2 attempts, got %d (ok=%v)", n, ok)
	}

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file left behind")
	}
}

func TestPrefs_LoadAttempts(t *testing.T) {
	testCases := []struct {
		name   string
		file   string
		want   int
		wantOK bool
	}{
		{"quoted number", "attempts: \"1\"\n", 1, true},
		{"plain number", "attempts: 0\n", 0, true},
		{"above allowance", "attempts: 7\n", 7, true},
		{"negative", "attempts: -1\n", 0, false},
		{"text", "attempts: many\n", 0, false},
		{"missing", "team: inside\n", 0, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "prefs.yaml")
			if err := os.WriteFile(path, []byte(tc.file), 0o600); err != nil {
				t.Fatal(err)
			}

			p, err := OpenPrefs(path)
			if err != nil {
				t.Fatal(err)
			}

			n, ok := p.LoadAttempts()
			if ok != tc.wantOK || n != tc.want {
				t.Errorf("expected (%d, %v), got (%d, %v)", tc.want, tc.wantOK, n, ok)
			}
		})
	}
}

func TestOpenPrefs_CorruptFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	if err := os.WriteFile(path, []byte("[not: a map"), 0o600); err != nil {
		t.Fatal(err)
	}

	p, err := OpenPrefs(path)
	if err != nil {
		t.Fatal(err)
	}
	if p.Team() != "" {
		t.Errorf("expected empty prefs, got team %q", p.Team())
	}

	// Writing replaces the corrupt file
	if err := p.SetTeam(models.TeamInside); err != nil {
		t.Fatal(err)
	}
	reopened, _ := OpenPrefs(path)
	if reopened.Team() != models.TeamInside {
		t.Errorf("expected inside, got %q", reopened.Team())
	}
}
