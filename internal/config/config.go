// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds everything the shop server reads from its environment.
// Variables are prefixed with SHOP_, e.g. SHOP_HTTP_ADDR.
type Config struct {
	HTTPAddr    string `envconfig:"HTTP_ADDR" default:":8080"`
	ServiceName string `envconfig:"SERVICE_NAME" default:"flowershop"`

	// RedisAddr enables report memoization when set.
	RedisAddr string `envconfig:"REDIS_ADDR"`

	// OTLPEndpoint enables trace export when set (host:port).
	OTLPEndpoint string `envconfig:"OTLP_ENDPOINT"`

	FreshnessDays     int           `envconfig:"FRESHNESS_DAYS" default:"7"`
	LowStockThreshold int           `envconfig:"LOW_STOCK_THRESHOLD" default:"5"`
	ReportCacheTTL    time.Duration `envconfig:"REPORT_CACHE_TTL" default:"30s"`
}

// Load reads and validates the configuration.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("shop", &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
