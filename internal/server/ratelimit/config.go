package ratelimit

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every rate limit environment variable,
// e.g. ATS_RATE_LIMIT_DEFAULT_LIMIT.
const EnvPrefix = "ATS_RATE_LIMIT"

// EndpointConfig is the limit for one endpoint. A Path ending in "/" also
// matches every path below it.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int           // requests per Window
	Window time.Duration // refill period for Limit tokens
	Burst  int           // bucket capacity; defaults to Limit
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// DefaultConfig returns limits suitable for a single shared instance.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    600,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		Whitelist:       map[string]bool{},
		Blacklist:       map[string]bool{},
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the per-endpoint tiers.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Batch analysis and URL fetching are the most expensive
		{Path: "/analyze/batch", Method: "POST", Limit: 20, Window: time.Minute, Burst: 5},
		{Path: "/analyze", Method: "POST", Limit: 120, Window: time.Minute, Burst: 20},
		{Path: "/keywords", Method: "POST", Limit: 120, Window: time.Minute, Burst: 20},

		{Path: "/reports/", Method: "DELETE", Limit: 60, Window: time.Minute, Burst: 10},
	}
}

// LoadConfig reads overrides for DefaultConfig from the environment:
// ENABLED, DEFAULT_LIMIT, DEFAULT_WINDOW, CLEANUP_INTERVAL, WHITELIST and
// BLACKLIST (comma-separated IPs), each under EnvPrefix.
func LoadConfig() *Config {
	def := DefaultConfig()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault("enabled", def.Enabled)
	v.SetDefault("default_limit", def.DefaultLimit)
	v.SetDefault("default_window", def.DefaultWindow)
	v.SetDefault("cleanup_interval", def.CleanupInterval)
	v.SetDefault("whitelist", "")
	v.SetDefault("blacklist", "")

	if !v.GetBool("enabled") {
		return &Config{Enabled: false}
	}

	def.DefaultLimit = v.GetInt("default_limit")
	def.DefaultWindow = v.GetDuration("default_window")
	def.CleanupInterval = v.GetDuration("cleanup_interval")
	def.Whitelist = parseIPList(v.GetString("whitelist"))
	def.Blacklist = parseIPList(v.GetString("blacklist"))
	return def
}

// parseIPList parses a comma-separated list of IP addresses into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
