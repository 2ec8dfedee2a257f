// Package config loads runtime settings from defaults, an optional YAML file,
// INSUREPREDICT_* environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/goliatone/go-insurepredict/pkg/predict"
)

// EnvPrefix is prepended to every environment override, with "." mapped to
// "_" (server.addr → INSUREPREDICT_SERVER_ADDR).
const EnvPrefix = "INSUREPREDICT"

// Config is the fully resolved runtime configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Predict PredictConfig `mapstructure:"predict"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	UI      UIConfig      `mapstructure:"ui"`
	Log     LogConfig     `mapstructure:"log"`
}

// ServerConfig configures the HTTP server and its session store.
type ServerConfig struct {
	Addr          string        `mapstructure:"addr"`
	ShutdownGrace time.Duration `mapstructure:"shutdown_grace"`
	SessionTTL    time.Duration `mapstructure:"session_ttl"`
	SessionLimit  int           `mapstructure:"session_limit"`
}

// PredictConfig configures the prediction client.
type PredictConfig struct {
	DefaultEndpoint string `mapstructure:"default_endpoint"`
	// AllowedEndpoints limits the endpoints the server posts to. Entries are
	// URL prefixes or bare host[:port]. Empty means default_endpoint only.
	AllowedEndpoints []string      `mapstructure:"allowed_endpoints"`
	Timeout          time.Duration `mapstructure:"timeout"`
	RateLimit        float64       `mapstructure:"rate_limit"`
	Breaker          BreakerConfig `mapstructure:"breaker"`
}

// BreakerConfig configures the per-endpoint circuit breaker.
type BreakerConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	MaxFailures uint32        `mapstructure:"max_failures"`
	OpenTimeout time.Duration `mapstructure:"open_timeout"`
}

// CatalogConfig selects the city catalog.
type CatalogConfig struct {
	// File replaces the embedded city catalog when set.
	File string `mapstructure:"file"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	ThemeVariant string `mapstructure:"theme_variant"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Options controls where Load looks for settings.
type Options struct {
	// File is an explicit config file. A missing explicit file is an error.
	File string
	// Flags holds command-line flags. FlagKeys maps a config key
	// (server.addr) to the flag name (addr) that overrides it. Only flags
	// set on the command line take effect.
	Flags    *pflag.FlagSet
	FlagKeys map[string]string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.shutdown_grace", "10s")
	v.SetDefault("server.session_ttl", "30m")
	v.SetDefault("server.session_limit", 1024)

	v.SetDefault("predict.default_endpoint", "")
	v.SetDefault("predict.allowed_endpoints", []string{})
	v.SetDefault("predict.timeout", "0s")
	v.SetDefault("predict.rate_limit", 0)
	v.SetDefault("predict.breaker.enabled", false)
	v.SetDefault("predict.breaker.max_failures", 5)
	v.SetDefault("predict.breaker.open_timeout", "30s")

	v.SetDefault("catalog.file", "")
	v.SetDefault("ui.theme_variant", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// Keys lists every supported setting.
func Keys() []string {
	v := viper.New()
	setDefaults(v)
	return v.AllKeys()
}

// Load resolves the configuration.
func Load(opts Options) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.File != "" {
		v.SetConfigFile(opts.File)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", opts.File, err)
		}
	} else {
		v.SetConfigName("insurepredict")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/insurepredict/")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("config: read: %w", err)
			}
		}
	}

	if opts.Flags != nil {
		for key, name := range opts.FlagKeys {
			flag := opts.Flags.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("config: bind flag %s: %w", name, err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings no component can run with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Addr) == "" {
		return errors.New("config: server.addr is required")
	}
	if c.Server.SessionLimit <= 0 {
		return fmt.Errorf("config: server.session_limit must be positive, got %d", c.Server.SessionLimit)
	}
	if c.Server.SessionTTL <= 0 {
		return fmt.Errorf("config: server.session_ttl must be positive, got %s", c.Server.SessionTTL)
	}
	if c.Predict.Timeout < 0 {
		return fmt.Errorf("config: predict.timeout must not be negative, got %s", c.Predict.Timeout)
	}
	if c.Predict.RateLimit < 0 {
		return fmt.Errorf("config: predict.rate_limit must not be negative, got %v", c.Predict.RateLimit)
	}
	if _, err := predict.AllowOnly(c.Predict.AllowedEndpoints...); err != nil {
		return fmt.Errorf("config: predict.allowed_endpoints: %w", err)
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: invalid log.level %q", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "console", "json":
	default:
		return fmt.Errorf("config: invalid log.format %q", c.Log.Format)
	}
	switch c.UI.ThemeVariant {
	case "", "dark":
	default:
		return fmt.Errorf("config: invalid ui.theme_variant %q", c.UI.ThemeVariant)
	}
	return nil
}
