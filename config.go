package pubnode

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Config is the file-loadable counterpart of Options, for wiring a node
// from deployment configuration (JSON, YAML or TOML). The transport is
// not part of it; transport adapters build one from the same file, see
// natspub.OpenFromConfig.
type Config struct {
	// URL of an external transport server, e.g. "nats://127.0.0.1:4222".
	// Empty selects an embedded server where the adapter supports one.
	URL string `mapstructure:"url"`

	// DataDir is the storage directory for an embedded server.
	DataDir string `mapstructure:"data_dir"`

	// Codec selects the message codec: "proto" (default) or "json".
	Codec string `mapstructure:"codec"`

	// LogLevel is a zerolog level name ("debug", "info", "warn", ...).
	LogLevel string `mapstructure:"log_level"`

	// SendLimit applies a session-wide token-bucket send limit.
	SendLimit struct {
		Rate  float64 `mapstructure:"rate"`
		Burst int     `mapstructure:"burst"`
	} `mapstructure:"send_limit"`
}

// LoadConfig reads and parses the configuration file at path. The
// format is inferred from the file extension.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("codec", "proto")
	v.SetDefault("log_level", "info")

	var cfg Config
	if err := v.ReadInConfig(); err != nil {
		return cfg, fmt.Errorf("pubnode: read config %s: %w", path, err)
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("pubnode: parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Options converts the file configuration into session Options. The
// returned Options carry no Transport; the caller supplies one.
func (c Config) Options() (Options, error) {
	var opts Options
	switch strings.ToLower(c.Codec) {
	case "", "proto":
		opts.Codec = Proto()
	case "json":
		opts.Codec = JSON()
	default:
		return opts, fmt.Errorf("pubnode: unknown codec %q", c.Codec)
	}
	if c.LogLevel != "" {
		level, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
		if err != nil {
			return opts, fmt.Errorf("pubnode: parse log level %q: %w", c.LogLevel, err)
		}
		opts.LogLevel = &level
	}
	opts.SendLimit = SendLimitConfig{Rate: c.SendLimit.Rate, Burst: c.SendLimit.Burst}
	return opts, nil
}
