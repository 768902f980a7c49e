package config

const (
	EnvPrefix = "solevibe"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv   = "SOLEVIBE_APP_ENV"
	EnvPort     = "SOLEVIBE_APP_PORT"
	EnvRedisURL = "SOLEVIBE_REDIS_URL"
)
