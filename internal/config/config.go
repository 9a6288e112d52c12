package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Database
	DBHost     string `env:"DB_HOST"     envDefault:"localhost"`
	DBPort     string `env:"DB_PORT"     envDefault:"5432"`
	DBUser     string `env:"DB_USER"     envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME"     envDefault:"user_db"`
	DBSSLMode  string `env:"DB_SSLMODE"  envDefault:"disable"`

	// JWT
	JWTSecret         string        `env:"JWT_SECRET"`
	JWTAlgorithm      string        `env:"JWT_ALGORITHM"        envDefault:"HS256"`
	JWTPrivateKeyPath string        `env:"JWT_PRIVATE_KEY_PATH"`
	JWTIssuer         string        `env:"JWT_ISSUER"           envDefault:"user-service"`
	JWTAccessExpiry   time.Duration `env:"JWT_ACCESS_EXPIRY"    envDefault:"15m"`
	JWTRefreshExpiry  time.Duration `env:"JWT_REFRESH_EXPIRY"   envDefault:"168h"`

	BcryptCost int `env:"BCRYPT_COST" envDefault:"10"`

	// Address service
	AddressServiceURL     string        `env:"ADDRESS_SERVICE_URL"     envDefault:"http://localhost:8082"`
	AddressServiceTimeout time.Duration `env:"ADDRESS_SERVICE_TIMEOUT" envDefault:"5s"`

	// Server
	Port        string `env:"PORT"         envDefault:"8081"`
	CORSOrigins string `env:"CORS_ORIGINS" envDefault:"*"`
	RedisURL    string `env:"REDIS_URL"`

	// Observability
	SentryDSN    string        `env:"SENTRY_DSN"`
	AppEnv       string        `env:"APP_ENV"       envDefault:"development"`
	LogRetention time.Duration `env:"LOG_RETENTION" envDefault:"720h"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.JWTAlgorithm = strings.ToUpper(cfg.JWTAlgorithm)
	return &cfg, nil
}

// Validate reports every missing or inconsistent setting at once.
func (c *Config) Validate() error {
	var errs []error
	switch c.JWTAlgorithm {
	case "HS256":
		if c.JWTSecret == "" {
			errs = append(errs, errors.New("JWT_SECRET is required for HS256"))
		}
	case "RS256":
		if c.JWTPrivateKeyPath == "" {
			errs = append(errs, errors.New("JWT_PRIVATE_KEY_PATH is required for RS256"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported JWT_ALGORITHM %q", c.JWTAlgorithm))
	}
	if c.DBPassword == "" {
		errs = append(errs, errors.New("DB_PASSWORD is required"))
	}
	if c.JWTAccessExpiry <= 0 || c.JWTRefreshExpiry <= 0 {
		errs = append(errs, errors.New("token expiry durations must be positive"))
	}
	if c.AddressServiceTimeout <= 0 {
		errs = append(errs, errors.New("ADDRESS_SERVICE_TIMEOUT must be positive"))
	}
	return errors.Join(errs...)
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}
