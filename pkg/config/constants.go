package config

// EnvPrefix is the envconfig prefix; individual fields carry full names so this
// stays empty to keep the explicit BAKEHOUSE_* tags authoritative.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

const (
	EnvAppEnv                 = "BAKEHOUSE_APP_ENV"
	EnvPort                   = "BAKEHOUSE_APP_PORT"
	EnvDBDSN                  = "BAKEHOUSE_DB_DSN"
	EnvDBHost                 = "BAKEHOUSE_DB_HOST"
	EnvDBUser                 = "BAKEHOUSE_DB_USER"
	EnvDBName                 = "BAKEHOUSE_DB_NAME"
	EnvRedisURL               = "BAKEHOUSE_REDIS_URL"
	EnvJWTSecret              = "BAKEHOUSE_JWT_SECRET"
	EnvJWTIssuer              = "BAKEHOUSE_JWT_ISSUER"
	EnvJWTExpMins             = "BAKEHOUSE_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "BAKEHOUSE_REFRESH_TOKEN_TTL_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
