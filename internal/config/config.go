// Package config loads modelflow settings from flags, environment, a YAML
// config file and defaults.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/spf13/viper"

	"github.com/tordrt/modelflow/internal/formatter"
)

// EnvPrefix prefixes every environment variable read by modelflow,
// e.g. MODELFLOW_DATABASE_URL.
const EnvPrefix = "MODELFLOW"

// Config holds all application configuration.
type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	Output   OutputConfig   `mapstructure:"output"`
	Database DatabaseConfig `mapstructure:"database"`
}

// LogConfig controls the CLI logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn or error
	Format string `mapstructure:"format"` // text or json
}

// OutputConfig controls where and how the model is written.
type OutputConfig struct {
	Format         string `mapstructure:"format"`
	File           string `mapstructure:"file"`
	Dir            string `mapstructure:"dir"`
	SplitThreshold int    `mapstructure:"split_threshold"`
}

// DatabaseConfig selects the database to import from.
type DatabaseConfig struct {
	URL     string   `mapstructure:"url"`
	Schema  string   `mapstructure:"schema"`
	Tables  []string `mapstructure:"tables"`
	Exclude []string `mapstructure:"exclude"`
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("output.format", formatter.FormatText)
	v.SetDefault("output.file", "")
	v.SetDefault("output.dir", "")
	v.SetDefault("output.split_threshold", 0)
	v.SetDefault("database.url", "")
	v.SetDefault("database.schema", "")
	v.SetDefault("database.tables", []string{})
	v.SetDefault("database.exclude", []string{})
}

// NewViper returns a viper instance with defaults set and environment
// lookup enabled. If cfgFile is empty, modelflow.yaml is searched for in
// the working directory.
func NewViper(cfgFile string) *viper.Viper {
	v := viper.New()
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("modelflow")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// ReadFile reads the config file into v. A missing file is only an error
// when it was named explicitly.
func ReadFile(v *viper.Viper, explicit bool) error {
	err := v.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if !explicit && errors.As(err, &notFound) {
		return nil
	}
	return fmt.Errorf("failed to read config file: %w", err)
}

// Load decodes v into a validated Config.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.Database.Tables = splitList(cfg.Database.Tables)
	cfg.Database.Exclude = splitList(cfg.Database.Exclude)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects unknown formats, levels and conflicting outputs.
func (c *Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn or error)", c.Log.Level)
	}

	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", c.Log.Format)
	}

	if !slices.Contains(formatter.Formats, c.Output.Format) {
		return fmt.Errorf("invalid format: %s (must be one of %s)", c.Output.Format, strings.Join(formatter.Formats, ", "))
	}

	if c.Output.Dir != "" && c.Output.File != "" {
		return fmt.Errorf("cannot use both output.dir and output.file")
	}

	if c.Output.SplitThreshold < 0 {
		return fmt.Errorf("output.split_threshold must not be negative")
	}

	return nil
}

// SlogLevel maps the configured level string to an slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch c.Log.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger builds the logger described by the config, writing to w.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.SlogLevel()}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// splitList accepts both YAML lists and comma-separated strings, as the
// latter is what flags and environment variables produce.
func splitList(items []string) []string {
	var out []string
	for _, item := range items {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
