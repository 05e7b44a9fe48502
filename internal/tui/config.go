package tui

import "github.com/Veraticus/etpscan/internal/tui/themes"

// Config holds TUI configuration.
type Config struct {
	Theme    themes.Theme
	Width    int
	Height   int
	ShowHelp bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:    themes.Default,
		Width:    100,
		Height:   24,
		ShowHelp: true,
	}
}

// WithTheme sets the color scheme.
func WithTheme(t themes.Theme) Option {
	return func(c *Config) { c.Theme = t }
}

// WithSize sets the initial terminal size, used until the first resize event.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}
