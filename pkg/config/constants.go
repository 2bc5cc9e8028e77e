package config

const (
	// EnvPrefix is handed to envconfig; every field carries its full name so the prefix is only a fallback.
	EnvPrefix = "STOREFRONT"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv         = "STOREFRONT_APP_ENV"
	EnvPort           = "STOREFRONT_APP_PORT"
	EnvLogLevel       = "STOREFRONT_LOG_LEVEL"
	EnvBackendURL     = "STOREFRONT_BACKEND_URL"
	EnvBackendTimeout = "STOREFRONT_BACKEND_TIMEOUT"
	EnvRedisURL       = "STOREFRONT_REDIS_URL"
	EnvRedisAddr      = "STOREFRONT_REDIS_ADDR"
	EnvSessionCookie  = "STOREFRONT_SESSION_COOKIE"
	EnvSessionTTL     = "STOREFRONT_SESSION_TTL"
)
