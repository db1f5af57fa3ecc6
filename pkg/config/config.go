package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	Catalog      CatalogConfig
	Cron         CronConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"GREENPHARMA_APP_ENV" required:"true"`
	Port         string `envconfig:"GREENPHARMA_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"GREENPHARMA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"GREENPHARMA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"GREENPHARMA_DB_DSN"`
	Driver string `envconfig:"GREENPHARMA_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"GREENPHARMA_DB_HOST"`
	LegacyPort     int    `envconfig:"GREENPHARMA_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"GREENPHARMA_DB_USER"`
	LegacyPassword string `envconfig:"GREENPHARMA_DB_PASSWORD"`
	LegacyName     string `envconfig:"GREENPHARMA_DB_NAME"`
	LegacySSLMode  string `envconfig:"GREENPHARMA_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"GREENPHARMA_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"GREENPHARMA_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"GREENPHARMA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"GREENPHARMA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"GREENPHARMA_REDIS_URL" required:"true"`
	Address      string        `envconfig:"GREENPHARMA_REDIS_ADDR"`
	Password     string        `envconfig:"GREENPHARMA_REDIS_PASSWORD"`
	DB           int           `envconfig:"GREENPHARMA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"GREENPHARMA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"GREENPHARMA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"GREENPHARMA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"GREENPHARMA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"GREENPHARMA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"GREENPHARMA_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"GREENPHARMA_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"GREENPHARMA_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"GREENPHARMA_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"GREENPHARMA_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"GREENPHARMA_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"GREENPHARMA_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"GREENPHARMA_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"GREENPHARMA_ARGON_KEY_LEN" default:"32"`
}

type CatalogConfig struct {
	PageSize int `envconfig:"GREENPHARMA_CATALOG_PAGE_SIZE" default:"12"`
}

type CronConfig struct {
	Interval          time.Duration `envconfig:"GREENPHARMA_CRON_INTERVAL" default:"24h"`
	LockTTL           time.Duration `envconfig:"GREENPHARMA_CRON_LOCK_TTL" default:"25h"`
	ExpiryWarningDays int           `envconfig:"GREENPHARMA_EXPIRY_WARNING_DAYS" default:"7"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"GREENPHARMA_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
