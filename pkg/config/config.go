package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "osta"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvDBDSN  = "OSTA_DB_DSN"
	EnvDBHost = "OSTA_DB_HOST"
	EnvDBUser = "OSTA_DB_USER"
	EnvDBName = "OSTA_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Settlement   SettlementConfig
	Platform     PlatformConfig
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
	Env          string `envconfig:"OSTA_APP_ENV" required:"true"`
	Port         string `envconfig:"OSTA_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"OSTA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"OSTA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"OSTA_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"OSTA_DB_DSN"`
	Driver string `envconfig:"OSTA_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"OSTA_DB_HOST"`
	LegacyPort     int    `envconfig:"OSTA_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"OSTA_DB_USER"`
	LegacyPassword string `envconfig:"OSTA_DB_PASSWORD"`
	LegacyName     string `envconfig:"OSTA_DB_NAME"`
	LegacySSLMode  string `envconfig:"OSTA_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"OSTA_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"OSTA_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"OSTA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"OSTA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"OSTA_REDIS_URL" required:"true"`
	Address      string        `envconfig:"OSTA_REDIS_ADDR"`
	Password     string        `envconfig:"OSTA_REDIS_PASSWORD"`
	DB           int           `envconfig:"OSTA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"OSTA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"OSTA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"OSTA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"OSTA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"OSTA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"OSTA_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"OSTA_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"OSTA_JWT_EXPIRATION_MINUTES" default:"60"`
}

// TokenTTL returns the access token lifetime.
func (j JWTConfig) TokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

// SettlementConfig drives payout and penalty math defaults.
type SettlementConfig struct {
	DefaultCommissionPercent int           `envconfig:"OSTA_SETTLEMENT_DEFAULT_COMMISSION_PERCENT" default:"15"`
	ArrivalWaitWindow        time.Duration `envconfig:"OSTA_SETTLEMENT_ARRIVAL_WAIT_WINDOW" default:"600s"`
	VerificationValidity     time.Duration `envconfig:"OSTA_VERIFICATION_VALIDITY" default:"8760h"`
}

// PlatformConfig names the well-known platform wallet accounts.
type PlatformConfig struct {
	EscrowAccountID  string `envconfig:"OSTA_PLATFORM_ESCROW_ACCOUNT_ID" required:"true"`
	RevenueAccountID string `envconfig:"OSTA_PLATFORM_REVENUE_ACCOUNT_ID" required:"true"`
}

type CronConfig struct {
	Interval time.Duration `envconfig:"OSTA_CRON_INTERVAL" default:"1m"`
	LockTTL  time.Duration `envconfig:"OSTA_CRON_LOCK_TTL" default:"5m"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"OSTA_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"OSTA_AUTO_MIGRATE" default:"false"`
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
