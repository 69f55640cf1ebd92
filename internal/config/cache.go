package config

import "time"

// HallplanCacheConfig controls the Redis cache holding generated hall
// listings.  Listings are written when a plan is generated and read by the
// listing endpoint, so TTL should outlast the examination period.
type HallplanCacheConfig struct {
    Enabled bool
    TTL     time.Duration
    Prefix  string
}

// LoadHallplanCacheConfig reads HALLPLAN_CACHE_* variables.
func LoadHallplanCacheConfig() HallplanCacheConfig {
    cfg := HallplanCacheConfig{
        Enabled: envBool("HALLPLAN_CACHE_ENABLED", true),
        TTL:     envDur("HALLPLAN_CACHE_TTL", 14*24*time.Hour),
        Prefix:  envStr("HALLPLAN_CACHE_PREFIX", "hallplan"),
    }
    if cfg.TTL <= 0 {
        cfg.TTL = 24 * time.Hour
    }
    return cfg
}
