package config

import (
	"fmt"
	"runtime"
	"strings"
	"time"
	_ "time/tzdata" // hosts without a zone database

	"github.com/spf13/viper"

	"github.com/Veraticus/etpscan/internal/common"
)

// DefaultSourceURL is the public Nasdaq Trader symbol directory file.
const DefaultSourceURL = "https://www.nasdaqtrader.com/dynamic/SymDir/nasdaqtraded.txt"

// Output formats understood by the scan command.
const (
	FormatCSV   = "csv"
	FormatJSONL = "jsonl"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Config is the typed view of the settings the scan pipeline needs.
type Config struct {
	Location          *time.Location
	SourceURL         string
	OutputDir         string
	TimeZone          string
	DatabasePath      string
	MetricsFile       string
	Formats           []string
	FetchTimeout      time.Duration
	Workers           int
	Latest            bool
	IncludeTestIssues bool
	PDF               bool
	Sheets            bool
	Store             bool
}

// SetDefaults registers the defaults for every key Load reads.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("source.url", DefaultSourceURL)
	v.SetDefault("source.timeout", 30*time.Second)
	v.SetDefault("output.dir", "outputs")
	v.SetDefault("output.formats", []string{FormatCSV, FormatJSONL})
	v.SetDefault("output.latest", false)
	v.SetDefault("output.pdf", false)
	v.SetDefault("output.sheets", false)
	v.SetDefault("output.metrics_file", "")
	v.SetDefault("scan.timezone", "America/Chicago")
	v.SetDefault("scan.workers", runtime.GOMAXPROCS(0))
	v.SetDefault("scan.include_test_issues", false)
	v.SetDefault("database.path", "~/.local/share/etpscan/etpscan.db")
	v.SetDefault("database.enabled", true)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("ui.theme", "default")
}

// Load reads and validates the configuration from v.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		SourceURL:         strings.TrimSpace(v.GetString("source.url")),
		FetchTimeout:      v.GetDuration("source.timeout"),
		OutputDir:         ExpandPath(v.GetString("output.dir")),
		Formats:           normalizeFormats(v.GetStringSlice("output.formats")),
		Latest:            v.GetBool("output.latest"),
		PDF:               v.GetBool("output.pdf"),
		Sheets:            v.GetBool("output.sheets"),
		MetricsFile:       ExpandPath(v.GetString("output.metrics_file")),
		TimeZone:          v.GetString("scan.timezone"),
		Workers:           v.GetInt("scan.workers"),
		IncludeTestIssues: v.GetBool("scan.include_test_issues"),
		DatabasePath:      ExpandPath(v.GetString("database.path")),
		Store:             v.GetBool("database.enabled"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("%w: time zone %q: %w", common.ErrInvalidConfig, cfg.TimeZone, err)
	}
	cfg.Location = loc

	return cfg, nil
}

// Validate checks the settings that do not need the filesystem or network.
func (c *Config) Validate() error {
	if c.SourceURL == "" {
		return fmt.Errorf("%w: source.url", common.ErrMissingConfig)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("%w: output.dir", common.ErrMissingConfig)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("%w: scan.workers must be positive, got %d", common.ErrInvalidConfig, c.Workers)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("%w: source.timeout must be positive", common.ErrInvalidConfig)
	}
	if len(c.Formats) == 0 {
		return fmt.Errorf("%w: output.formats", common.ErrMissingConfig)
	}
	for _, f := range c.Formats {
		switch f {
		case FormatCSV, FormatJSONL, FormatJSON, FormatYAML:
		default:
			return fmt.Errorf("%w: unknown output format %q", common.ErrInvalidConfig, f)
		}
	}
	if c.Store && c.DatabasePath == "" {
		return fmt.Errorf("%w: database.path", common.ErrMissingConfig)
	}
	return nil
}

// normalizeFormats accepts both list values and a single comma separated string.
func normalizeFormats(raw []string) []string {
	var formats []string
	seen := make(map[string]bool)
	for _, item := range raw {
		for _, f := range strings.Split(item, ",") {
			f = strings.ToLower(strings.TrimSpace(f))
			if f == "" || seen[f] {
				continue
			}
			seen[f] = true
			formats = append(formats, f)
		}
	}
	return formats
}
