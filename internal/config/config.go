// Package config handles global configuration loading using viper.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"firestige.xyz/callscript/internal/media/rtpstream"
)

// GlobalConfig represents the top-level static configuration.
// Maps to the `callscript:` root key in YAML.
type GlobalConfig struct {
	Log     LogConfig     `mapstructure:"log"`
	Media   MediaConfig   `mapstructure:"media"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// ─── Log ───

// LogConfig contains logging settings.
type LogConfig struct {
	Level   string           `mapstructure:"level"`  // debug / info / warn / error
	Format  string           `mapstructure:"format"` // json / text
	Outputs LogOutputsConfig `mapstructure:"outputs"`
}

// LogOutputsConfig contains structured log output destinations.
type LogOutputsConfig struct {
	File FileOutputConfig `mapstructure:"file"`
}

// FileOutputConfig configures file log output.
type FileOutputConfig struct {
	Enabled  bool           `mapstructure:"enabled"`
	Path     string         `mapstructure:"path"`
	Rotation RotationConfig `mapstructure:"rotation"`
}

// RotationConfig configures log file rotation.
type RotationConfig struct {
	MaxSizeMB  int  `mapstructure:"max_size_mb"`
	MaxAgeDays int  `mapstructure:"max_age_days"`
	MaxBackups int  `mapstructure:"max_backups"`
	Compress   bool `mapstructure:"compress"`
}

// ─── Media ───

// MediaConfig contains media playback configuration shared by all actions.
type MediaConfig struct {
	// DefaultPayloadType is used by rtp_stream actions that omit a payload type.
	DefaultPayloadType int `mapstructure:"default_payload_type"`
	// MaxFilenameLen bounds the rtp_stream argument length.
	MaxFilenameLen int `mapstructure:"max_filename_len"`
}

// RTPStream converts the media settings into the rtpstream parser configuration.
func (m MediaConfig) RTPStream() rtpstream.Config {
	return rtpstream.Config{
		DefaultPayloadType: m.DefaultPayloadType,
		MaxFilenameLen:     m.MaxFilenameLen,
	}
}

// ─── Metrics ───

// MetricsConfig contains Prometheus metrics settings.
type MetricsConfig struct {
	Dump bool `mapstructure:"dump"` // print metrics after exec
}

// ─── Loading ───

// configRoot is the top-level wrapper matching the YAML structure `callscript: ...`.
type configRoot struct {
	Callscript GlobalConfig `mapstructure:"callscript"`
}

// Load loads configuration from file. An empty path yields the defaults,
// still subject to environment overrides (e.g. CALLSCRIPT_LOG_LEVEL).
func Load(path string) (*GlobalConfig, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// key "callscript.log.level" → env "CALLSCRIPT_LOG_LEVEL"
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	var root configRoot
	if err := v.Unmarshal(&root); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg := root.Callscript

	if err := cfg.ValidateAndApplyDefaults(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default values for configuration.
func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("callscript.log.level", "info")
	v.SetDefault("callscript.log.format", "text")
	v.SetDefault("callscript.log.outputs.file.enabled", false)
	v.SetDefault("callscript.log.outputs.file.path", "/var/log/callscript/callscript.log")
	v.SetDefault("callscript.log.outputs.file.rotation.max_size_mb", 100)
	v.SetDefault("callscript.log.outputs.file.rotation.max_age_days", 30)
	v.SetDefault("callscript.log.outputs.file.rotation.max_backups", 5)
	v.SetDefault("callscript.log.outputs.file.rotation.compress", true)

	// Media defaults
	v.SetDefault("callscript.media.default_payload_type", 0)
	v.SetDefault("callscript.media.max_filename_len", rtpstream.DefaultMaxFilenameLen)

	// Metrics defaults
	v.SetDefault("callscript.metrics.dump", false)
}

// ValidateAndApplyDefaults validates configuration and applies runtime defaults.
func (cfg *GlobalConfig) ValidateAndApplyDefaults() error {
	// ── Log validation ──
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Log.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug/info/warn/error)", cfg.Log.Level)
	}
	if cfg.Log.Format != "json" && cfg.Log.Format != "text" {
		return fmt.Errorf("invalid log format: %s (must be json/text)", cfg.Log.Format)
	}

	// ── Media validation ──
	if cfg.Media.MaxFilenameLen <= 0 {
		return fmt.Errorf("media.max_filename_len must be positive, got %d", cfg.Media.MaxFilenameLen)
	}
	if _, err := rtpstream.TimingFor(cfg.Media.DefaultPayloadType); err != nil {
		return fmt.Errorf("media.default_payload_type: %w", err)
	}

	return nil
}
