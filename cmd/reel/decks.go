package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/pders01/reel/internal/config"
	"github.com/pders01/reel/internal/deck"
	"github.com/pders01/reel/internal/storage"
	"github.com/pders01/reel/internal/tui"
	"github.com/pders01/reel/internal/validation"
)

func newImportCommand(g *globals) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Save a deck file into the deck database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			path, err := validation.NewSecurePathHandler().DeckPath(args[0])
			if err != nil {
				return fmt.Errorf("deck file: %w", err)
			}
			d, err := deck.Load(path)
			if err != nil {
				return err
			}
			if name != "" {
				d.Title = name
				d.ID = storage.DeckID(name)
			}

			out := cmd.OutOrStdout()
			for _, item := range d.Items {
				if item.Link != "" && !validation.IsValidLink(item.Link) {
					fmt.Fprintf(out, "%s item %q has an invalid link, it will not be shown\n",
						tui.StatusWarnStyle.Render("!"), item.ID)
				}
			}

			store, err := g.openStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.SaveDeck(d); err != nil {
				return fmt.Errorf("saving deck: %w", err)
			}
			fmt.Fprintf(out, "Imported %q as %s (%d items)\n", d.Title, d.ID, len(d.Items))
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "save the deck under this name instead of its title")
	return cmd
}

func newDecksCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:     "decks",
		Aliases: []string{"ls"},
		Short:   "List saved decks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			store, err := g.openStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			decks, err := store.ListDecks()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(decks) == 0 {
				fmt.Fprintln(out, "No saved decks. Add one with: reel import <file>")
				return nil
			}
			fmt.Fprintln(out, decksTable(decks))
			return nil
		},
	}
}

func decksTable(decks []*storage.Deck) string {
	header := lipgloss.NewStyle().Bold(true).Foreground(tui.PrimaryColor).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(tui.MutedColor)).
		Headers("NAME", "TITLE", "ITEMS", "UPDATED").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
	for _, d := range decks {
		t.Row(d.ID, d.Title, strconv.Itoa(len(d.Items)), d.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return t.Render()
}

func newRemoveCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <name>",
		Aliases: []string{"remove"},
		Short:   "Delete a saved deck",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			store, err := g.openStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			id := storage.DeckID(args[0])
			if err := store.DeleteDeck(id); err != nil {
				if errors.Is(err, storage.ErrDeckNotFound) {
					return fmt.Errorf("no saved deck named %q", args[0])
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", id)
			return nil
		},
	}
}

func newConfigCommand(g *globals) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the reel configuration file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := validation.NewSecurePathHandler()
			if g.configPath != "" {
				paths = validation.NewPermissivePathHandler()
			}
			path, err := paths.ConfigPath(g.configPath)
			if err != nil {
				return fmt.Errorf("config path: %w", err)
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.GenerateDefaultConfig(path); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Generated default configuration at: %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing config file")

	configCmd.AddCommand(initCmd)
	return configCmd
}

func newVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, tui.Banner(version))
			fmt.Fprintf(out, "reel %s\n", version)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
