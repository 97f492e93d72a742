package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App    AppConfig
	Stripe StripeConfig
	Redis  RedisConfig
	Cache  CacheConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"LUMA_APP_ENV" default:"dev"`
	Port         string `envconfig:"LUMA_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"LUMA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"LUMA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type StripeConfig struct {
	APIKey  string        `envconfig:"LUMA_STRIPE_SECRET_KEY"`
	Env     string        `envconfig:"LUMA_STRIPE_ENV" default:"test"`
	BaseURL string        `envconfig:"LUMA_STRIPE_BASE_URL" default:"https://api.stripe.com"`
	Timeout time.Duration `envconfig:"LUMA_STRIPE_TIMEOUT" default:"30s"`
}

// Environment returns the normalized Stripe environment (test/live).
func (s StripeConfig) Environment() string {
	env := strings.TrimSpace(strings.ToLower(s.Env))
	if env == "" {
		return "test"
	}
	return env
}

// RedisConfig is optional: when URL and Address are both empty the price
// snapshot cache is disabled and every /prices request goes upstream.
type RedisConfig struct {
	URL          string        `envconfig:"LUMA_REDIS_URL"`
	Address      string        `envconfig:"LUMA_REDIS_ADDR"`
	Password     string        `envconfig:"LUMA_REDIS_PASSWORD"`
	DB           int           `envconfig:"LUMA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"LUMA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"LUMA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"LUMA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"LUMA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"LUMA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a Redis endpoint was configured.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type CacheConfig struct {
	// PriceTTL is both the Redis snapshot TTL and the public max-age
	// advertised on /prices.
	PriceTTL time.Duration `envconfig:"LUMA_PRICE_CACHE_TTL" default:"5m"`
}
