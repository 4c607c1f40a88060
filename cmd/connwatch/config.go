package main

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"connwatch/internal/stats"
)

// Duration wraps time.Duration for TOML string parsing ("10s", "1m").
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	return nil
}

type Config struct {
	UI      UIConfig      `toml:"ui"`
	Source  SourceConfig  `toml:"source"`
	Collect CollectConfig `toml:"collect"`
}

type UIConfig struct {
	RetentionPeriod float64  `toml:"retention_period"` // seconds
	MaxSnapshots    int      `toml:"max_snapshots"`    // 0 = unbounded
	Tabs            []string `toml:"tabs"`
}

type SourceConfig struct {
	Type         string   `toml:"type"` // "http" or "docker"
	URL          string   `toml:"url"`
	DockerSocket string   `toml:"docker_socket"`
	Timeout      Duration `toml:"timeout"`
}

type CollectConfig struct {
	Interval Duration `toml:"interval"`
}

// LoadConfig reads a TOML config file. An empty path returns defaults only.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	setDefaults(cfg)
	return cfg, nil
}

func setDefaults(cfg *Config) {
	if cfg.UI.RetentionPeriod == 0 {
		cfg.UI.RetentionPeriod = 600.0
	}
	if len(cfg.UI.Tabs) == 0 {
		cfg.UI.Tabs = []string{"total=.*:.*"}
	}
	if cfg.Source.Type == "" {
		cfg.Source.Type = "http"
	}
	if cfg.Source.DockerSocket == "" {
		cfg.Source.DockerSocket = "/var/run/docker.sock"
	}
	if cfg.Source.Timeout.Duration == 0 {
		cfg.Source.Timeout.Duration = 5 * time.Second
	}
	if cfg.Collect.Interval.Duration == 0 {
		cfg.Collect.Interval.Duration = 1 * time.Second
	}
}

func validate(cfg *Config) error {
	if cfg.UI.RetentionPeriod <= 0 {
		return fmt.Errorf("retention_period must be > 0, got %v", cfg.UI.RetentionPeriod)
	}
	if cfg.UI.MaxSnapshots < 0 {
		return fmt.Errorf("max_snapshots must be >= 0, got %d", cfg.UI.MaxSnapshots)
	}
	if _, err := stats.ParseTabs(cfg.UI.Tabs); err != nil {
		return err
	}
	switch cfg.Source.Type {
	case "http":
		if cfg.Source.URL == "" {
			return fmt.Errorf("source url is required for the http source")
		}
	case "docker":
	default:
		return fmt.Errorf("unknown source type %q (must be \"http\" or \"docker\")", cfg.Source.Type)
	}
	if cfg.Collect.Interval.Duration < 100*time.Millisecond {
		return fmt.Errorf("collect interval must be >= 100ms, got %s", cfg.Collect.Interval.Duration)
	}
	return nil
}

// retention returns the retention period as a duration.
func (c *Config) retention() time.Duration {
	return time.Duration(c.UI.RetentionPeriod * float64(time.Second))
}
