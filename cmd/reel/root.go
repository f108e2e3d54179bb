package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pders01/reel/internal/config"
	"github.com/pders01/reel/internal/debuglog"
	"github.com/pders01/reel/internal/storage"
	"github.com/pders01/reel/internal/validation"
)

// runProgram starts the terminal UI. Replaced in tests.
var runProgram = func(m tea.Model, opts ...tea.ProgramOption) error {
	_, err := tea.NewProgram(m, opts...).Run()
	return err
}

// globals holds the persistent flags shared by every subcommand.
type globals struct {
	configPath string
	dbPath     string
	logLevel   string
}

func NewRootCommand(version string) *cobra.Command {
	g := &globals{}
	play := &playOptions{}

	rootCmd := &cobra.Command{
		Use:   "reel [file]",
		Short: "Terminal carousel for decks of cards",
		Long: `reel rotates through a deck of cards in your terminal.

Narrow terminals show one card at a time and advance on a timer. Wider
terminals scroll the whole deck past continuously. Decks are YAML, TOML or
local RSS/Atom/JSON feed files, or decks saved earlier with "reel import".`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && play.deckName == "" {
				return cmd.Help()
			}
			return runPlay(cmd, g, play, args)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = debuglog.Close()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&g.dbPath, "db", "", "deck database path (overrides config)")
	rootCmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "log level: debug, info, warn, error, off")
	play.register(rootCmd)

	rootCmd.AddCommand(newPlayCommand(g))
	rootCmd.AddCommand(newImportCommand(g))
	rootCmd.AddCommand(newDecksCommand(g))
	rootCmd.AddCommand(newRemoveCommand(g))
	rootCmd.AddCommand(newConfigCommand(g))
	rootCmd.AddCommand(newVersionCommand(version))

	return rootCmd
}

// loadConfig reads the config file, applies flag overrides and starts the
// debug log.
func (g *globals) loadConfig() (*config.Config, error) {
	paths := validation.NewSecurePathHandler()
	if g.configPath != "" {
		paths = validation.NewPermissivePathHandler()
	}
	cfgPath := ""
	if g.configPath != "" {
		p, err := paths.ConfigPath(g.configPath)
		if err != nil {
			return nil, fmt.Errorf("config path: %w", err)
		}
		cfgPath = p
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	if g.dbPath != "" {
		cfg.Database.Path = g.dbPath
	}
	if g.logLevel != "" {
		cfg.Log.Level = g.logLevel
	}

	level := debuglog.ParseLogLevel(cfg.Log.Level)
	logPath := ""
	if level != debuglog.LevelOff {
		if logPath, err = paths.LogPath(cfg.Log.Path); err != nil {
			return nil, fmt.Errorf("log path: %w", err)
		}
	}
	if err := debuglog.Setup(level, logPath); err != nil {
		return nil, err
	}
	debuglog.Debugf("config loaded from %q", cfgPath)
	return cfg, nil
}

// openStore opens the deck database. Paths given with --db may live
// anywhere; the configured path must stay under reel's own directories.
func (g *globals) openStore(cfg *config.Config) (*storage.Store, error) {
	paths := validation.NewSecurePathHandler()
	if g.dbPath != "" {
		paths = validation.NewPermissivePathHandler()
	}
	dbPath, err := paths.DBPath(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("database path: %w", err)
	}
	return storage.NewStore(dbPath, cfg.Database.Timeout)
}
