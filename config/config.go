// Package config loads controller settings from defaults, an optional yaml
// file and SEALER_* environment variables, in that order.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/nstehr/sealer/model"
	"github.com/nstehr/sealer/rules"
)

const envPrefix = "SEALER_"

type Config struct {
	Log      LogConfig           `koanf:"log"`
	Server   ServerConfig        `koanf:"server"`
	Selector rules.Params        `koanf:"selector"`
	Template model.AgentTemplate `koanf:"template"`
	Metrics  MetricsConfig       `koanf:"metrics"`
}

type LogConfig struct {
	Level      string `koanf:"level"`
	Format     string `koanf:"format"` // json, text
	File       string `koanf:"file"`   // optional, rotated
	MaxSize    int    `koanf:"max_size"`
	MaxBackups int    `koanf:"max_backups"`
	MaxAge     int    `koanf:"max_age"`
}

type ServerConfig struct {
	Socket string `koanf:"socket"`
}

type MetricsConfig struct {
	Enabled  bool          `koanf:"enabled"`
	Interval time.Duration `koanf:"interval"`
}

// Load builds the configuration. path may be empty.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	defaults := rules.DefaultParams()
	k.Set("log.level", "info")
	k.Set("log.format", "text")
	k.Set("log.max_size", 10)
	k.Set("log.max_backups", 3)
	k.Set("log.max_age", 28)
	k.Set("server.socket", "/tmp/sealer.sock")
	k.Set("selector.min_barrier_hits", defaults.MinBarrierHits)
	k.Set("selector.upgrade_level", defaults.UpgradeLevel)
	k.Set("selector.flee_range", defaults.FleeRange)
	k.Set("selector.population_target", defaults.PopulationTarget)
	k.Set("template.role", "poisoner")
	k.Set("template.body", []string{"work", "carry", "move", "move"})
	k.Set("metrics.enabled", false)
	k.Set("metrics.interval", "1m")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	// SEALER_SELECTOR_FLEE_RANGE -> selector.flee_range. Section names are
	// single words, so only the first underscore separates levels.
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".", 1)
	}), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Selector.Validate()
	return &cfg, nil
}

// Watch reloads the file at path on every change and hands the result to
// onChange. A file that fails to load is logged and skipped. The returned
// func stops watching.
func Watch(path string, onChange func(*Config)) (func() error, error) {
	f := file.Provider(path)
	err := f.Watch(func(_ interface{}, err error) {
		if err != nil {
			slog.Error("config watch failed", "path", path, "error", err)
			return
		}
		cfg, err := Load(path)
		if err != nil {
			slog.Warn("config reload skipped", "path", path, "error", err)
			return
		}
		onChange(cfg)
	})
	if err != nil {
		return nil, fmt.Errorf("watch config %s: %w", path, err)
	}
	return f.Unwatch, nil
}
