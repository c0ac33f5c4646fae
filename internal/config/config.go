package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultBoundariesURL = "https://raw.githubusercontent.com/Ryshackleton/json_resources/master/world-topo-min.json"
	DefaultFeedURL       = "https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary/all_day.geojson"
)

// Config holds all application configuration.
type Config struct {
	// BoundariesURL locates the TopoJSON world boundaries (URL or file path).
	BoundariesURL string `mapstructure:"boundaries_url"`

	// BoundariesObject names the topology object holding the country polygons.
	BoundariesObject string `mapstructure:"boundaries_object"`

	// FeedURL locates the GeoJSON earthquake feed (URL or file path).
	FeedURL string `mapstructure:"feed_url"`

	// HTTPTimeout bounds each fetch. Zero disables the timeout.
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`

	LogLevel string `mapstructure:"log_level"`

	// LogFile receives log output. Empty discards logs; the terminal is owned by the UI.
	LogFile string `mapstructure:"log_file"`

	// MetricsAddr enables the prometheus endpoint when set, e.g. "127.0.0.1:9102".
	MetricsAddr string `mapstructure:"metrics_addr"`

	// FrameInterval is the redraw period while circles are animating.
	FrameInterval time.Duration `mapstructure:"frame_interval"`
}

// Load reads configuration from file and environment variables.
// An empty path searches for quakemap.yaml; a missing file is fine.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("boundaries_url", DefaultBoundariesURL)
	v.SetDefault("boundaries_object", "countries")
	v.SetDefault("feed_url", DefaultFeedURL)
	v.SetDefault("http_timeout", 30*time.Second)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("metrics_addr", "")
	v.SetDefault("frame_interval", 33*time.Millisecond)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("quakemap")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/quakemap")
		_ = v.ReadInConfig() // OK if missing
	}

	// QUAKEMAP_FEED_URL -> feed_url
	v.SetEnvPrefix("QUAKEMAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that required configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if c.BoundariesURL == "" {
		errs = append(errs, "boundaries_url is required")
	}
	if c.BoundariesObject == "" {
		errs = append(errs, "boundaries_object is required")
	}
	if c.FeedURL == "" {
		errs = append(errs, "feed_url is required")
	}
	if c.HTTPTimeout < 0 {
		errs = append(errs, fmt.Sprintf("http_timeout must not be negative, got %s", c.HTTPTimeout))
	}
	if c.FrameInterval <= 0 {
		errs = append(errs, fmt.Sprintf("frame_interval must be positive, got %s", c.FrameInterval))
	}
	switch strings.ToLower(c.LogLevel) {
	case "trace", "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Sprintf("log_level %q is not one of trace, debug, info, warn, error", c.LogLevel))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
