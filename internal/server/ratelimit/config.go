package ratelimit

import (
	"strings"
	"time"

	"github.com/jonathan/success-predictor/internal/config"
)

// EndpointConfig is the budget for one route.
type EndpointConfig struct {
	Path   string        // Exact path, or a prefix when it ends with "/"
	Method string        // HTTP method
	Limit  int           // Requests per Window; 0 means unlimited
	Window time.Duration // Refill window
	Burst  int           // Bucket capacity; Limit when 0
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	// IdleTTL is how long an untouched bucket survives cleanup.
	IdleTTL         time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
	// ExemptPaths are never limited for GET.
	ExemptPaths map[string]bool
}

// PredictionPath is the route with its own, stricter budget.
const PredictionPath = "/api/prediction"

// HealthPath is always exempt from limiting.
const HealthPath = "/health"

// FromSettings converts the service configuration into a limiter Config. exempt lists
// further GET paths that are never limited, such as the configured metrics path.
func FromSettings(s config.RateLimitConfig, exempt ...string) *Config {
	if !s.Enabled {
		return &Config{Enabled: false}
	}
	return &Config{
		Enabled:         true,
		DefaultLimit:    s.DefaultLimit,
		DefaultWindow:   s.DefaultWindow,
		CleanupInterval: s.CleanupInterval,
		IdleTTL:         time.Hour,
		Whitelist:       toSet(s.Whitelist),
		Blacklist:       toSet(s.Blacklist),
		EndpointConfigs: EndpointRules(s),
		ExemptPaths:     toSet(append([]string{HealthPath}, exempt...)),
	}
}

// EndpointRules returns the per-route budgets. Routes without a rule use the default.
func EndpointRules(s config.RateLimitConfig) []EndpointConfig {
	return []EndpointConfig{
		{
			Path:   PredictionPath,
			Method: "POST",
			Limit:  s.PredictionLimit,
			Window: s.PredictionWindow,
			Burst:  s.PredictionBurst,
		},
	}
}

func toSet(list []string) map[string]bool {
	result := make(map[string]bool, len(list))
	for _, item := range list {
		if item = strings.TrimSpace(item); item != "" {
			result[item] = true
		}
	}
	return result
}
