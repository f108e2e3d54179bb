package config

import "time"

// TestConfig returns a config suitable for testing
func TestConfig() *Config {
	cfg := defaultConfig()
	cfg.Database.Path = ":memory:" // never opened by tests that use TestConfig
	cfg.Carousel.Autoplay = false
	cfg.Carousel.FrameInterval = 10 * time.Millisecond
	cfg.UI.Card.Markdown = false
	cfg.Log = LogConfig{Level: "off"}
	return cfg
}
