// Package media opens item links in an external application.
package media

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/pders01/reel/internal/config"
	"github.com/pders01/reel/internal/debuglog"
	"github.com/pders01/reel/internal/validation"
)

var ErrNoOpener = errors.New("no application found to open links")

type Launcher struct {
	opener string
	links  *validation.LinkValidator
	start  func(*exec.Cmd) error
}

// NewLauncher uses media.default_opener when set, otherwise the first
// platform opener found on PATH.
func NewLauncher(cfg config.MediaConfig) *Launcher {
	opener := cfg.DefaultOpener
	if opener == "" {
		opener = findCommand(platformOpeners(runtime.GOOS)...)
	}
	return &Launcher{
		opener: opener,
		links:  validation.NewLinkValidator(),
		start:  startDetached,
	}
}

// Opener returns the command links are handed to, or "" if none was found.
func (l *Launcher) Opener() string {
	return l.opener
}

// Open validates link and starts the opener on it without waiting.
func (l *Launcher) Open(link string) error {
	normalized, err := l.links.ValidateAndNormalize(link)
	if err != nil {
		return fmt.Errorf("invalid link: %w", err)
	}
	if l.opener == "" {
		return ErrNoOpener
	}

	cmd := exec.Command(l.opener, normalized)
	if err := l.start(cmd); err != nil {
		return fmt.Errorf("failed to start %s: %w", l.opener, err)
	}
	debuglog.Debugf("opened %s with %s", normalized, l.opener)
	return nil
}

func startDetached(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}

func platformOpeners(goos string) []string {
	switch goos {
	case "darwin":
		return []string{"open"}
	case "windows":
		return []string{"explorer"}
	default:
		return []string{"xdg-open", "wslview", "sensible-browser"}
	}
}

func findCommand(commands ...string) string {
	for _, cmd := range commands {
		if _, err := exec.LookPath(cmd); err == nil {
			return cmd
		}
	}
	return ""
}
