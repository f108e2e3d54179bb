package validation

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPathHandler_Defaults(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	ph := NewSecurePathHandler()

	cfg, err := ph.ConfigPath("")
	if err != nil {
		t.Fatalf("ConfigPath: %v", err)
	}
	if cfg != filepath.Join(home, ".config", "reel", "config.toml") {
		t.Errorf("unexpected config path %s", cfg)
	}

	logPath, err := ph.LogPath("")
	if err != nil {
		t.Fatalf("LogPath: %v", err)
	}
	if logPath != filepath.Join(home, ".reel", "reel.log") {
		t.Errorf("unexpected log path %s", logPath)
	}
}

func TestPathHandler_SecureRejectsOutsidePaths(t *testing.T) {
	ph := NewSecurePathHandler()

	if _, err := ph.ConfigPath("/etc/reel.toml"); err == nil {
		t.Error("expected path outside state directories to be rejected")
	}
}

func TestPathHandler_DBPathCreatesParent(t *testing.T) {
	ph := NewPermissivePathHandler()
	dbPath := filepath.Join(t.TempDir(), "nested", "decks.db")

	got, err := ph.DBPath(dbPath)
	if err != nil {
		t.Fatalf("DBPath: %v", err)
	}
	if got != dbPath {
		t.Errorf("DBPath = %s, want %s", got, dbPath)
	}
	if info, err := os.Stat(filepath.Dir(dbPath)); err != nil || !info.IsDir() {
		t.Error("expected parent directory to exist")
	}
}

func TestPathHandler_DeckPath(t *testing.T) {
	ph := NewSecurePathHandler()
	deck := filepath.Join(t.TempDir(), "deck.yaml")

	if _, err := ph.DeckPath(deck); err == nil {
		t.Error("expected missing deck to be rejected")
	}
	if err := os.WriteFile(deck, []byte("items: []"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got, err := ph.DeckPath(deck); err != nil || got != deck {
		t.Errorf("DeckPath(%q) = %q, %v", deck, got, err)
	}
}
