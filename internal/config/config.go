// Package config provides configuration loading and validation for the server and CLI.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. PREDICTOR_SERVER_PORT.
const EnvPrefix = "PREDICTOR"

// Config is the full service configuration. Every field is optional in the file;
// missing values come from Defaults.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Ping      PingConfig      `mapstructure:"ping"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// PingConfig holds the message returned by GET /api/ping.
type PingConfig struct {
	Message string `mapstructure:"message"`
}

// LoggingConfig selects the zap level and encoder.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// RateLimitConfig configures the per-client token buckets. The prediction endpoint
// has its own, stricter budget.
type RateLimitConfig struct {
	Enabled          bool          `mapstructure:"enabled"`
	DefaultLimit     int           `mapstructure:"default_limit"`
	DefaultWindow    time.Duration `mapstructure:"default_window"`
	PredictionLimit  int           `mapstructure:"prediction_limit"`
	PredictionWindow time.Duration `mapstructure:"prediction_window"`
	PredictionBurst  int           `mapstructure:"prediction_burst"`
	CleanupInterval  time.Duration `mapstructure:"cleanup_interval"`
	Whitelist        []string      `mapstructure:"whitelist"`
	Blacklist        []string      `mapstructure:"blacklist"`
}

// CacheConfig points at the optional Redis result cache.
type CacheConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	Address   string        `mapstructure:"address"`
	Password  string        `mapstructure:"password"`
	DB        int           `mapstructure:"db"`
	TTL       time.Duration `mapstructure:"ttl"`
	KeyPrefix string        `mapstructure:"key_prefix"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Ping: PingConfig{Message: "ping"},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		RateLimit: RateLimitConfig{
			Enabled:          true,
			DefaultLimit:     1000,
			DefaultWindow:    time.Minute,
			PredictionLimit:  60,
			PredictionWindow: time.Minute,
			PredictionBurst:  10,
			CleanupInterval:  5 * time.Minute,
		},
		Cache: CacheConfig{
			Enabled:   false,
			Address:   "localhost:6379",
			TTL:       time.Hour,
			KeyPrefix: "predictor:prediction:",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

// Load reads configuration from path (YAML, optional) and environment overrides.
// With an empty path it looks for predictor.yaml in the working directory and
// ./configs, and carries on with defaults when none is found.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Defaults())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Unprefixed names kept for compatibility with existing deployments.
	_ = v.BindEnv("server.port", EnvPrefix+"_SERVER_PORT", "PORT")
	_ = v.BindEnv("ping.message", EnvPrefix+"_PING_MESSAGE", "PING_MESSAGE")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("predictor")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", d.Server.WriteTimeout)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)

	v.SetDefault("ping.message", d.Ping.Message)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)

	v.SetDefault("rate_limit.enabled", d.RateLimit.Enabled)
	v.SetDefault("rate_limit.default_limit", d.RateLimit.DefaultLimit)
	v.SetDefault("rate_limit.default_window", d.RateLimit.DefaultWindow)
	v.SetDefault("rate_limit.prediction_limit", d.RateLimit.PredictionLimit)
	v.SetDefault("rate_limit.prediction_window", d.RateLimit.PredictionWindow)
	v.SetDefault("rate_limit.prediction_burst", d.RateLimit.PredictionBurst)
	v.SetDefault("rate_limit.cleanup_interval", d.RateLimit.CleanupInterval)
	v.SetDefault("rate_limit.whitelist", []string{})
	v.SetDefault("rate_limit.blacklist", []string{})

	v.SetDefault("cache.enabled", d.Cache.Enabled)
	v.SetDefault("cache.address", d.Cache.Address)
	v.SetDefault("cache.password", d.Cache.Password)
	v.SetDefault("cache.db", d.Cache.DB)
	v.SetDefault("cache.ttl", d.Cache.TTL)
	v.SetDefault("cache.key_prefix", d.Cache.KeyPrefix)

	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
	v.SetDefault("metrics.path", d.Metrics.Path)
}

// Validate checks that the configuration has usable values.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config error: 'server.port' must be between 0 and 65535, got %d", c.Server.Port)
	}

	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("config error: 'logging.format' must be json or console, got %q", c.Logging.Format)
	}

	if c.RateLimit.Enabled {
		if c.RateLimit.DefaultLimit < 0 || c.RateLimit.PredictionLimit < 0 || c.RateLimit.PredictionBurst < 0 {
			return fmt.Errorf("config error: rate limits must be non-negative")
		}
		if c.RateLimit.DefaultLimit > 0 && c.RateLimit.DefaultWindow <= 0 {
			return fmt.Errorf("config error: 'rate_limit.default_window' must be positive")
		}
		if c.RateLimit.PredictionLimit > 0 && c.RateLimit.PredictionWindow <= 0 {
			return fmt.Errorf("config error: 'rate_limit.prediction_window' must be positive")
		}
	}

	if c.Cache.Enabled {
		if c.Cache.Address == "" {
			return fmt.Errorf("config error: 'cache.address' is required when the cache is enabled")
		}
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("config error: 'cache.ttl' must be positive")
		}
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("config error: 'metrics.path' must start with '/'")
	}

	return nil
}
