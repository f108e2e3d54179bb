package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pders01/reel/internal/storage"
)

// DeckUpdate is one result from a deck file watcher.
type DeckUpdate struct {
	Deck *storage.Deck
	Err  error
}

type deckReloadedMsg struct {
	deck *storage.Deck
	err  error
}

type errorMsg struct {
	err error
}

// fadeTickMsg repaints a paged crossfade in progress.
type fadeTickMsg struct{}

// waitForReload blocks on the next watcher result. A closed channel ends
// the chain.
func waitForReload(ch <-chan DeckUpdate) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		u, ok := <-ch
		if !ok {
			return nil
		}
		return deckReloadedMsg{deck: u.Deck, err: wrapErr("reloading deck", u.Err)}
	}
}

func fadeTick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return fadeTickMsg{} })
}

// wrapErr prefixes err with what was being attempted. A nil err stays nil.
func wrapErr(action string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", action, err)
}
