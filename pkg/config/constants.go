package config

const (
	EnvPrefix = "LUMA"

	AppEnvDev  = "dev"
	AppEnvProd = "production"

	EnvAppEnv          = "LUMA_APP_ENV"
	EnvPort            = "LUMA_APP_PORT"
	EnvLogLevel        = "LUMA_LOG_LEVEL"
	EnvStripeSecretKey = "LUMA_STRIPE_SECRET_KEY"
	EnvStripeEnv       = "LUMA_STRIPE_ENV"
	EnvStripeBaseURL   = "LUMA_STRIPE_BASE_URL"
	EnvRedisURL        = "LUMA_REDIS_URL"
	EnvPriceCacheTTL   = "LUMA_PRICE_CACHE_TTL"
)
