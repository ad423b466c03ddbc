package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/artpar/decomposer/internal/core/transcode"
	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// =============================================================================
// Config Types
// =============================================================================

// Config holds all application configuration.
type Config struct {
	Convert ConvertConfig `mapstructure:"convert"`
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
}

// ConvertConfig holds the default conversion options.
type ConvertConfig struct {
	Command           string `mapstructure:"command"`
	Rm                bool   `mapstructure:"rm"`
	Detach            bool   `mapstructure:"detach"`
	Multiline         bool   `mapstructure:"multiline"`
	LongArgs          bool   `mapstructure:"long_args"`
	ArgValueSeparator string `mapstructure:"arg_value_separator"`
	Interpolate       bool   `mapstructure:"interpolate"`
}

// Options returns the validated transcode configuration.
func (c ConvertConfig) Options() (transcode.Config, error) {
	sep, err := transcode.ParseSeparator(c.ArgValueSeparator)
	if err != nil {
		return transcode.Config{}, err
	}
	return transcode.Config{
		Command:           c.Command,
		RemoveAfterRun:    c.Rm,
		Detach:            c.Detach,
		Multiline:         c.Multiline,
		LongArgs:          c.LongArgs,
		ArgValueSeparator: sep,
	}, nil
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`
}

// Address returns the server address in host:port format.
func (c ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// =============================================================================
// Config Loading
// =============================================================================

// flagKeys binds config keys to the CLI flags that override them.
var flagKeys = map[string]string{
	"convert.command":             "command",
	"convert.rm":                  "rm",
	"convert.detach":              "detach",
	"convert.multiline":           "multiline",
	"convert.long_args":           "long-args",
	"convert.arg_value_separator": "arg-value-separator",
	"convert.interpolate":         "interpolate",
	"log.level":                   "log-level",
	"log.format":                  "log-format",
	"server.host":                 "host",
	"server.port":                 "port",
}

// LoadConfig loads configuration from file, environment and flags.
// Flags that were set on the command line win over everything else; flags may be nil.
func LoadConfig(configPath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("convert.command", transcode.DefaultCommand)
	v.SetDefault("convert.rm", false)
	v.SetDefault("convert.detach", false)
	v.SetDefault("convert.multiline", false)
	v.SetDefault("convert.long_args", false)
	v.SetDefault("convert.arg_value_separator", string(transcode.SeparatorSpace))
	v.SetDefault("convert.interpolate", false)
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.max_body_bytes", 1<<20)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Load from file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			// Only return error if file was explicitly specified and is invalid
			if _, ok := err.(viper.ConfigParseError); ok {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
			// File not found is OK, we'll use defaults
		}
	}

	// Enable environment variable overrides
	v.SetEnvPrefix("DECOMPOSER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	// Unmarshal config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// =============================================================================
// Logger Setup
// =============================================================================

// SetupLogger creates a logger with the configured level and format, writing to w.
// Formats: "text", "json", and "pretty" (colored, for terminals).
func SetupLogger(cfg *Config, w io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	switch strings.ToLower(cfg.Log.Format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	case "pretty":
		handler = log.NewWithOptions(w, log.Options{
			Level:           log.Level(level),
			ReportTimestamp: true,
			Prefix:          "decomposer",
		})
	default:
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}
