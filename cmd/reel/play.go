package main

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pders01/reel/internal/config"
	"github.com/pders01/reel/internal/deck"
	"github.com/pders01/reel/internal/debuglog"
	"github.com/pders01/reel/internal/storage"
	"github.com/pders01/reel/internal/tui"
	"github.com/pders01/reel/internal/validation"
)

type playOptions struct {
	deckName string
	query    string
	watch    bool
	autoplay bool
	noDots   bool
}

func (o *playOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.deckName, "deck", "d", "", "play a saved deck by name")
	cmd.Flags().StringVarP(&o.query, "query", "q", "", "only show items matching the query")
	cmd.Flags().BoolVarP(&o.watch, "watch", "w", false, "reload the deck file when it changes")
	cmd.Flags().BoolVar(&o.autoplay, "autoplay", true, "rotate automatically (overrides config)")
	cmd.Flags().BoolVar(&o.noDots, "no-dots", false, "hide the slide indicator dots")
}

func newPlayCommand(g *globals) *cobra.Command {
	o := &playOptions{}
	cmd := &cobra.Command{
		Use:   "play [file]",
		Short: "Play a deck file or a saved deck",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd, g, o, args)
		},
	}
	o.register(cmd)
	return cmd
}

func runPlay(cmd *cobra.Command, g *globals, o *playOptions, args []string) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("autoplay") {
		cfg.Carousel.Autoplay = o.autoplay
	}
	if o.noDots {
		cfg.Carousel.ShowDots = false
	}

	var (
		d    *storage.Deck
		path string
	)
	switch {
	case len(args) == 1 && o.deckName != "":
		return errors.New("give either a deck file or --deck, not both")
	case len(args) == 1:
		path, err = validation.NewSecurePathHandler().DeckPath(args[0])
		if err != nil {
			return fmt.Errorf("deck file: %w", err)
		}
		d, err = deck.Load(path)
		if err != nil {
			return err
		}
	case o.deckName != "":
		if o.watch {
			return errors.New("--watch needs a deck file")
		}
		d, err = loadSavedDeck(g, cfg, o.deckName)
		if err != nil {
			return err
		}
	default:
		return errors.New("nothing to play: give a deck file or --deck name")
	}

	debuglog.WithFields(map[string]interface{}{
		"deck":  d.ID,
		"items": len(d.Items),
		"query": o.query,
	}).Infof("playing deck")

	app := tui.NewApp(cfg, d, o.query)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	if o.watch && path != "" {
		app.WatchReloads(watchDeck(ctx, path))
	}

	return runProgram(app, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(ctx))
}

func loadSavedDeck(g *globals, cfg *config.Config, name string) (*storage.Deck, error) {
	store, err := g.openStore(cfg)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	d, err := store.GetDeck(storage.DeckID(name))
	if errors.Is(err, storage.ErrDeckNotFound) {
		d, err = store.GetDeck(name)
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

// watchDeck forwards reloads of path until ctx is done.
func watchDeck(ctx context.Context, path string) <-chan tui.DeckUpdate {
	ch := make(chan tui.DeckUpdate, 1)
	go func() {
		defer close(ch)
		err := deck.Watch(ctx, path, func(d *storage.Deck, err error) {
			select {
			case ch <- tui.DeckUpdate{Deck: d, Err: err}:
			case <-ctx.Done():
			}
		})
		if err != nil {
			debuglog.Errorf("deck watcher stopped: %v", err)
			select {
			case ch <- tui.DeckUpdate{Err: err}:
			case <-ctx.Done():
			}
		}
	}()
	return ch
}
