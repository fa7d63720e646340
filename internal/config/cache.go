package config

import "time"

// CacheConfig defines settings for the response cache middleware that sits
// in front of the catalog endpoints.  When Enabled is false or no Redis
// client is available the middleware is a passthrough.
//
// KeyStrategy picks which request parts form the key: "route",
// "route_query" (default) or "method_route_query".  MaxBodyBytes bounds
// what is stored; larger responses are served but never cached.
type CacheConfig struct {
	Enabled      bool
	Methods      map[string]bool
	TTL          time.Duration
	KeyStrategy  string
	Prefix       string
	MaxBodyBytes int
}

// LoadCacheConfig reads CACHE_* variables.  Catalog listings change slowly,
// so the default TTL is a few minutes.
func LoadCacheConfig() CacheConfig {
	cfg := CacheConfig{
		Enabled:      envBool("CACHE_ENABLED", true),
		Methods:      envList("CACHE_METHODS", "GET"),
		TTL:          envDur("CACHE_TTL", 5*time.Minute),
		KeyStrategy:  envStr("CACHE_KEY_STRATEGY", "route_query"),
		Prefix:       envStr("CACHE_PREFIX", "laiff:cache"),
		MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 1<<20),
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 5 * time.Minute
	}
	return cfg
}
