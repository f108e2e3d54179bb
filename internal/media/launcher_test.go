package media

import (
	"errors"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/pders01/reel/internal/config"
)

func newTestLauncher(opener string) (*Launcher, *[]*exec.Cmd) {
	var started []*exec.Cmd
	l := NewLauncher(config.MediaConfig{DefaultOpener: opener})
	l.start = func(cmd *exec.Cmd) error {
		started = append(started, cmd)
		return nil
	}
	return l, &started
}

func TestOpenUsesConfiguredOpener(t *testing.T) {
	l, started := newTestLauncher("my-browser")

	if err := l.Open("example.com/post"); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if len(*started) != 1 {
		t.Fatalf("expected one command, got %d", len(*started))
	}
	cmd := (*started)[0]
	if filepath.Base(cmd.Path) != "my-browser" && cmd.Args[0] != "my-browser" {
		t.Errorf("unexpected command %q", cmd.Args[0])
	}
	if got := cmd.Args[len(cmd.Args)-1]; got != "https://example.com/post" {
		t.Errorf("link should be normalized, got %q", got)
	}
}

func TestOpenRejectsInvalidLinks(t *testing.T) {
	l, started := newTestLauncher("my-browser")

	for _, link := range []string{"", "javascript:alert(1)", "has space.com"} {
		if err := l.Open(link); err == nil {
			t.Errorf("Open(%q) should fail", link)
		}
	}
	if len(*started) != 0 {
		t.Errorf("nothing should be started, got %d commands", len(*started))
	}
}

func TestOpenWithoutOpener(t *testing.T) {
	l, _ := newTestLauncher("")
	l.opener = ""

	if err := l.Open("https://example.com"); !errors.Is(err, ErrNoOpener) {
		t.Errorf("expected ErrNoOpener, got %v", err)
	}
}

func TestOpenReportsStartFailure(t *testing.T) {
	l, _ := newTestLauncher("my-browser")
	l.start = func(*exec.Cmd) error { return errors.New("boom") }

	err := l.Open("https://example.com")
	if err == nil || err.Error() != "failed to start my-browser: boom" {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestPlatformOpeners(t *testing.T) {
	tests := []struct {
		goos string
		want string
	}{
		{"darwin", "open"},
		{"windows", "explorer"},
		{"linux", "xdg-open"},
		{"freebsd", "xdg-open"},
	}
	for _, tt := range tests {
		if got := platformOpeners(tt.goos)[0]; got != tt.want {
			t.Errorf("platformOpeners(%q)[0] = %q, want %q", tt.goos, got, tt.want)
		}
	}
}

func TestFindCommand(t *testing.T) {
	if got := findCommand("definitely-not-a-real-command-reel"); got != "" {
		t.Errorf("findCommand should return empty for missing commands, got %q", got)
	}
}
