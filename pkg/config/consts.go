package config

// EnvPrefix is passed to envconfig; individual fields carry explicit names so
// the prefix mostly documents intent.
const EnvPrefix = "GREENPHARMA"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv                 = "GREENPHARMA_APP_ENV"
	EnvPort                   = "GREENPHARMA_APP_PORT"
	EnvDBDSN                  = "GREENPHARMA_DB_DSN"
	EnvDBHost                 = "GREENPHARMA_DB_HOST"
	EnvDBUser                 = "GREENPHARMA_DB_USER"
	EnvDBName                 = "GREENPHARMA_DB_NAME"
	EnvRedisURL               = "GREENPHARMA_REDIS_URL"
	EnvJWTSecret              = "GREENPHARMA_JWT_SECRET"
	EnvJWTIssuer              = "GREENPHARMA_JWT_ISSUER"
	EnvJWTExpMins             = "GREENPHARMA_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "GREENPHARMA_REFRESH_TOKEN_TTL_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
