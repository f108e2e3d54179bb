package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Carousel CarouselConfig `mapstructure:"carousel"`
	UI       UIConfig       `mapstructure:"ui"`
	Keys     KeyConfig      `mapstructure:"keys"`
	Media    MediaConfig    `mapstructure:"media"`
	Log      LogConfig      `mapstructure:"log"`
}

type DatabaseConfig struct {
	Path    string        `mapstructure:"path"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type CarouselConfig struct {
	Autoplay      bool               `mapstructure:"autoplay"`
	ShowDots      bool               `mapstructure:"show_dots"`
	Gap           float64            `mapstructure:"gap"`
	Interval      time.Duration      `mapstructure:"interval"`
	FadeDuration  time.Duration      `mapstructure:"fade_duration"`
	FrameInterval time.Duration      `mapstructure:"frame_interval"`
	Velocity      float64            `mapstructure:"velocity"`
	ItemsPerView  ItemsPerViewConfig `mapstructure:"items_per_view"`
	Breakpoints   BreakpointConfig   `mapstructure:"breakpoints"`
}

type ItemsPerViewConfig struct {
	Mobile  int `mapstructure:"mobile"`
	Tablet  int `mapstructure:"tablet"`
	Desktop int `mapstructure:"desktop"`
}

// BreakpointConfig holds the minimum terminal widths, in columns, for the
// tablet and desktop tiers.
type BreakpointConfig struct {
	Tablet  int `mapstructure:"tablet"`
	Desktop int `mapstructure:"desktop"`
}

type UIConfig struct {
	Colors UIColors   `mapstructure:"colors"`
	Card   CardConfig `mapstructure:"card"`
}

type UIColors struct {
	Primary   string `mapstructure:"primary"`
	Secondary string `mapstructure:"secondary"`
	Accent    string `mapstructure:"accent"`
	Surface   string `mapstructure:"surface"`
	Text      string `mapstructure:"text"`
	Muted     string `mapstructure:"muted"`
	Error     string `mapstructure:"error"`
}

type CardConfig struct {
	Height   int  `mapstructure:"height"`
	Markdown bool `mapstructure:"markdown"`
}

type KeyConfig struct {
	Bindings KeyBindings `mapstructure:"bindings"`
}

type KeyBindings struct {
	Quit     string `mapstructure:"quit"`
	Next     string `mapstructure:"next"`
	Previous string `mapstructure:"previous"`
	Autoplay string `mapstructure:"autoplay"`
	Help     string `mapstructure:"help"`
	Open     string `mapstructure:"open"`
}

// MediaConfig names the program item links are opened with. Empty picks
// the platform default (open, explorer or xdg-open).
type MediaConfig struct {
	DefaultOpener string `mapstructure:"default_opener"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	Path  string `mapstructure:"path"`
}

func defaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Database: DatabaseConfig{
			Path:    filepath.Join(homeDir, ".reel", "decks.db"),
			Timeout: 1 * time.Second,
		},
		Carousel: CarouselConfig{
			Autoplay:      true,
			ShowDots:      true,
			Gap:           2,
			Interval:      3 * time.Second,
			FadeDuration:  400 * time.Millisecond,
			FrameInterval: time.Second / 60,
			Velocity:      0.375,
			ItemsPerView: ItemsPerViewConfig{
				Mobile:  1,
				Tablet:  2,
				Desktop: 3,
			},
			Breakpoints: BreakpointConfig{
				Tablet:  80,
				Desktop: 120,
			},
		},
		UI: UIConfig{
			Colors: UIColors{
				Primary:   "#FF6B6B",
				Secondary: "#4ECDC4",
				Accent:    "#95E1D3",
				Surface:   "#16213E",
				Text:      "#EAEAEA",
				Muted:     "#94A3B8",
				Error:     "#F87171",
			},
			Card: CardConfig{
				Height:   12,
				Markdown: true,
			},
		},
		Keys: KeyConfig{
			Bindings: KeyBindings{
				Quit:     "q",
				Next:     "right",
				Previous: "left",
				Autoplay: " ",
				Help:     "?",
				Open:     "o",
			},
		},
		Log: LogConfig{
			Level: "off",
			Path:  filepath.Join(homeDir, ".reel", "reel.log"),
		},
	}
}

// setDefaults registers every leaf so a config file that sets one key of a
// section keeps the defaults for the rest.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("database.path", cfg.Database.Path)
	v.SetDefault("database.timeout", cfg.Database.Timeout)

	c := cfg.Carousel
	v.SetDefault("carousel.autoplay", c.Autoplay)
	v.SetDefault("carousel.show_dots", c.ShowDots)
	v.SetDefault("carousel.gap", c.Gap)
	v.SetDefault("carousel.interval", c.Interval)
	v.SetDefault("carousel.fade_duration", c.FadeDuration)
	v.SetDefault("carousel.frame_interval", c.FrameInterval)
	v.SetDefault("carousel.velocity", c.Velocity)
	v.SetDefault("carousel.items_per_view.mobile", c.ItemsPerView.Mobile)
	v.SetDefault("carousel.items_per_view.tablet", c.ItemsPerView.Tablet)
	v.SetDefault("carousel.items_per_view.desktop", c.ItemsPerView.Desktop)
	v.SetDefault("carousel.breakpoints.tablet", c.Breakpoints.Tablet)
	v.SetDefault("carousel.breakpoints.desktop", c.Breakpoints.Desktop)

	colors := cfg.UI.Colors
	v.SetDefault("ui.colors.primary", colors.Primary)
	v.SetDefault("ui.colors.secondary", colors.Secondary)
	v.SetDefault("ui.colors.accent", colors.Accent)
	v.SetDefault("ui.colors.surface", colors.Surface)
	v.SetDefault("ui.colors.text", colors.Text)
	v.SetDefault("ui.colors.muted", colors.Muted)
	v.SetDefault("ui.colors.error", colors.Error)
	v.SetDefault("ui.card.height", cfg.UI.Card.Height)
	v.SetDefault("ui.card.markdown", cfg.UI.Card.Markdown)

	keys := cfg.Keys.Bindings
	v.SetDefault("keys.bindings.quit", keys.Quit)
	v.SetDefault("keys.bindings.next", keys.Next)
	v.SetDefault("keys.bindings.previous", keys.Previous)
	v.SetDefault("keys.bindings.autoplay", keys.Autoplay)
	v.SetDefault("keys.bindings.help", keys.Help)
	v.SetDefault("keys.bindings.open", keys.Open)

	v.SetDefault("media.default_opener", cfg.Media.DefaultOpener)

	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.path", cfg.Log.Path)
}

// DefaultPath is ~/.config/reel/config.toml.
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", "reel", "config.toml")
}

func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v, defaultConfig())

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(filepath.Dir(DefaultPath()))
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("REEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	expandPaths(&config)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate reports values the viewer cannot run with. Non-positive
// items_per_view entries are accepted; the carousel clamps them to 1.
func (c *Config) Validate() error {
	var errs []error
	if c.Carousel.Interval <= 0 {
		errs = append(errs, fmt.Errorf("carousel.interval must be positive, got %s", c.Carousel.Interval))
	}
	if c.Carousel.FrameInterval <= 0 {
		errs = append(errs, fmt.Errorf("carousel.frame_interval must be positive, got %s", c.Carousel.FrameInterval))
	}
	if c.Carousel.FadeDuration < 0 {
		errs = append(errs, fmt.Errorf("carousel.fade_duration must not be negative, got %s", c.Carousel.FadeDuration))
	}
	if c.Carousel.Velocity <= 0 {
		errs = append(errs, fmt.Errorf("carousel.velocity must be positive, got %v", c.Carousel.Velocity))
	}
	if c.Carousel.Gap < 0 {
		errs = append(errs, fmt.Errorf("carousel.gap must not be negative, got %v", c.Carousel.Gap))
	}
	if bp := c.Carousel.Breakpoints; bp.Tablet <= 0 || bp.Desktop < bp.Tablet {
		errs = append(errs, fmt.Errorf("carousel.breakpoints must satisfy 0 < tablet <= desktop, got %d/%d", bp.Tablet, bp.Desktop))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// expandPath expands ~ to home directory and converts to absolute path
func expandPath(path string) string {
	if path == "" || path == ":memory:" {
		return path
	}

	if len(path) >= 2 && path[:2] == "~/" {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}

	if !filepath.IsAbs(path) {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}

	return path
}

func expandPaths(cfg *Config) {
	cfg.Database.Path = expandPath(cfg.Database.Path)
	cfg.Log.Path = expandPath(cfg.Log.Path)
}

func Save(config *Config, path string) error {
	v := viper.New()

	// Durations as strings for TOML readability
	dbCfg := map[string]interface{}{
		"path":    config.Database.Path,
		"timeout": config.Database.Timeout.String(),
	}

	c := config.Carousel
	carouselCfg := map[string]interface{}{
		"autoplay":       c.Autoplay,
		"show_dots":      c.ShowDots,
		"gap":            c.Gap,
		"interval":       c.Interval.String(),
		"fade_duration":  c.FadeDuration.String(),
		"frame_interval": c.FrameInterval.String(),
		"velocity":       c.Velocity,
		"items_per_view": map[string]interface{}{
			"mobile":  c.ItemsPerView.Mobile,
			"tablet":  c.ItemsPerView.Tablet,
			"desktop": c.ItemsPerView.Desktop,
		},
		"breakpoints": map[string]interface{}{
			"tablet":  c.Breakpoints.Tablet,
			"desktop": c.Breakpoints.Desktop,
		},
	}

	colors := config.UI.Colors
	uiCfg := map[string]interface{}{
		"colors": map[string]interface{}{
			"primary":   colors.Primary,
			"secondary": colors.Secondary,
			"accent":    colors.Accent,
			"surface":   colors.Surface,
			"text":      colors.Text,
			"muted":     colors.Muted,
			"error":     colors.Error,
		},
		"card": map[string]interface{}{
			"height":   config.UI.Card.Height,
			"markdown": config.UI.Card.Markdown,
		},
	}

	keys := config.Keys.Bindings
	keysCfg := map[string]interface{}{
		"bindings": map[string]interface{}{
			"quit":     keys.Quit,
			"next":     keys.Next,
			"previous": keys.Previous,
			"autoplay": keys.Autoplay,
			"help":     keys.Help,
			"open":     keys.Open,
		},
	}

	v.Set("database", dbCfg)
	v.Set("carousel", carouselCfg)
	v.Set("ui", uiCfg)
	v.Set("keys", keysCfg)
	v.Set("media", map[string]interface{}{
		"default_opener": config.Media.DefaultOpener,
	})
	v.Set("log", map[string]interface{}{
		"level": config.Log.Level,
		"path":  config.Log.Path,
	})

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	return v.WriteConfigAs(path)
}

func GenerateDefaultConfig(path string) error {
	return Save(defaultConfig(), path)
}
