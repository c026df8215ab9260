// Package config loads simpleeq settings from file, environment and flags.
//
// Precedence, highest first: command-line flags bound with BindFlags,
// SIMPLEEQ_* environment variables, the YAML config file, defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/internal/logging"
)

// EnvPrefix is the prefix of environment overrides, e.g. SIMPLEEQ_AUDIO_SAMPLE_RATE.
const EnvPrefix = "SIMPLEEQ"

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid")

// Audio holds the stream settings.
type Audio struct {
	SampleRate float64 `mapstructure:"sample_rate"`
	BlockSize  int     `mapstructure:"block_size"`
	Channels   int     `mapstructure:"channels"`
	Backend    string  `mapstructure:"backend"`
	BitDepth   int     `mapstructure:"bit_depth"`
}

// Metrics holds the Prometheus endpoint settings.
type Metrics struct {
	Enabled bool   `mapstructure:"enabled"`
	Listen  string `mapstructure:"listen"`
}

// Log holds the logger settings.
type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Record holds the live recorder tap settings.
type Record struct {
	Path       string `mapstructure:"path"`
	BufferSize int    `mapstructure:"buffer_size"`
}

// Config is the complete simpleeq configuration.
type Config struct {
	Audio       Audio   `mapstructure:"audio"`
	Preset      string  `mapstructure:"preset"`
	WatchPreset bool    `mapstructure:"watch_preset"`
	Metrics     Metrics `mapstructure:"metrics"`
	Log         Log     `mapstructure:"log"`
	Record      Record  `mapstructure:"record"`
}

// SetDefaults registers the default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("audio.sample_rate", 48000.0)
	v.SetDefault("audio.block_size", 512)
	v.SetDefault("audio.channels", 2)
	v.SetDefault("audio.backend", "auto")
	v.SetDefault("audio.bit_depth", 24)
	v.SetDefault("preset", "")
	v.SetDefault("watch_preset", false)
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.listen", "localhost:9090")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", logging.FormatText)
	v.SetDefault("record.path", "")
	v.SetDefault("record.buffer_size", 1<<20)
}

// New returns a viper instance with defaults, environment binding and the
// config search path. configFile, when set, replaces the search.
func New(configFile string) *viper.Viper {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		return v
	}

	v.SetConfigName("simpleeq")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "simpleeq"))
	}

	return v
}

// BindFlags binds every flag whose name matches a config key. Flag names use
// dashes where keys use dots and underscores are kept, e.g. --sample-rate is
// bound to audio.sample_rate through the keys table.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) error {
	for key, flag := range keys {
		f := flags.Lookup(flag)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("config: bind flag %q: %w", flag, err)
		}
	}
	return nil
}

// Load reads the config file if one exists and returns the validated config.
// A missing file in the search path is not an error.
func Load(v *viper.Viper) (Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the stream, logging and recorder settings.
func (c Config) Validate() error {
	pc := core.ProcessorConfig{SampleRate: c.Audio.SampleRate, BlockSize: c.Audio.BlockSize}
	if err := pc.Validate(); err != nil {
		return fmt.Errorf("%w: audio: %w", ErrInvalidConfig, err)
	}

	if c.Audio.Channels != 1 && c.Audio.Channels != 2 {
		return fmt.Errorf("%w: audio.channels must be 1 or 2, got %d", ErrInvalidConfig, c.Audio.Channels)
	}

	switch c.Audio.BitDepth {
	case 16, 24, 32:
	default:
		return fmt.Errorf("%w: audio.bit_depth must be 16, 24 or 32, got %d", ErrInvalidConfig, c.Audio.BitDepth)
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if c.Metrics.Enabled && c.Metrics.Listen == "" {
		return fmt.Errorf("%w: metrics.listen is required when metrics are enabled", ErrInvalidConfig)
	}

	if c.Record.Path != "" && c.Record.BufferSize <= 0 {
		return fmt.Errorf("%w: record.buffer_size must be positive", ErrInvalidConfig)
	}

	return nil
}
