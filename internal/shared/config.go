package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv       string
	HTTPAddr     string
	MetricsAddr  string
	RedisAddr    string
	RedisDB      int
	RedisPass    string
	LiteAPIBase  string
	LiteAPIKey   string
	MapToken     string
	GeocodeBase  string
	GeocodeToken string
	UpstreamRPS  int
	CacheTTL     time.Duration
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:       env("APP_ENV", "prod"),
		HTTPAddr:     env("HTTP_ADDR", ":3001"),
		MetricsAddr:  env("METRICS_ADDR", ":9100"),
		RedisAddr:    env("REDIS_ADDR", "localhost:6379"),
		RedisPass:    env("REDIS_PASSWORD", ""),
		RedisDB:      atoi("REDIS_DB", 0),
		LiteAPIBase:  env("LITEAPI_BASE_URL", "https://api.liteapi.travel/v3.0"),
		LiteAPIKey:   env("LITEAPI_KEY", ""),
		MapToken:     env("MAP_TOKEN", ""),
		GeocodeBase:  env("GEOCODE_BASE_URL", "https://api.mapbox.com/geocoding/v5/mapbox.places"),
		GeocodeToken: env("GEOCODE_TOKEN", ""),
		UpstreamRPS:  atoi("UPSTREAM_RPS", 5),
		CacheTTL:     time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
	}
	if c.LiteAPIKey == "" {
		log.Warn().Msg("LITEAPI_KEY is empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
