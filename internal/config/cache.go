package config

import (
	"os"
	"strconv"
	"time"
)

const (
	planCacheDisabledEnv   = "PLAN_CACHE_DISABLED"
	planCacheTTLMinutesEnv = "PLAN_CACHE_TTL_MINUTES"

	defaultPlanCacheTTLMinutes = 30
)

type CacheConfig struct {
	Disabled bool
	TTL      time.Duration
}

func LoadCacheConfig() *CacheConfig {
	ttlMinutes := defaultPlanCacheTTLMinutes
	if v := os.Getenv(planCacheTTLMinutesEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			ttlMinutes = parsed
		}
	}

	return &CacheConfig{
		Disabled: os.Getenv(planCacheDisabledEnv) == "true",
		TTL:      time.Duration(ttlMinutes) * time.Minute,
	}
}
