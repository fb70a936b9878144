package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Documents     DocumentsConfig
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
	Env          string `envconfig:"DOCSAI_APP_ENV" required:"true"`
	Port         string `envconfig:"DOCSAI_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"DOCSAI_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"DOCSAI_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"DOCSAI_DB_DSN"`
	Driver string `envconfig:"DOCSAI_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"DOCSAI_DB_HOST"`
	LegacyPort     int    `envconfig:"DOCSAI_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"DOCSAI_DB_USER"`
	LegacyPassword string `envconfig:"DOCSAI_DB_PASSWORD"`
	LegacyName     string `envconfig:"DOCSAI_DB_NAME"`
	LegacySSLMode  string `envconfig:"DOCSAI_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"DOCSAI_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"DOCSAI_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"DOCSAI_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"DOCSAI_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"DOCSAI_REDIS_URL" required:"true"`
	Address      string        `envconfig:"DOCSAI_REDIS_ADDR"`
	Password     string        `envconfig:"DOCSAI_REDIS_PASSWORD"`
	DB           int           `envconfig:"DOCSAI_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"DOCSAI_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"DOCSAI_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"DOCSAI_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"DOCSAI_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"DOCSAI_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"DOCSAI_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"DOCSAI_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"DOCSAI_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"DOCSAI_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"DOCSAI_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"DOCSAI_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"DOCSAI_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"DOCSAI_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"DOCSAI_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"DOCSAI_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"DOCSAI_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"DOCSAI_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"DOCSAI_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"DOCSAI_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"DOCSAI_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"DOCSAI_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"DOCSAI_AUTO_MIGRATE" default:"false"`
}

type DocumentsConfig struct {
	// FreeTierMaxDocuments caps how many documents a free-tier user may own.
	FreeTierMaxDocuments int `envconfig:"DOCSAI_FREE_TIER_MAX_DOCUMENTS" default:"3"`
	// TemplateOwnerID is the sentinel owner marking public read-only templates.
	TemplateOwnerID string `envconfig:"DOCSAI_TEMPLATE_OWNER_ID" default:"00000000-0000-0000-0000-000000000000"`
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
