package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// DeploymentMode selects the cookie security posture.
type DeploymentMode string

const (
	ModeDevelopment DeploymentMode = "development"
	ModeProduction  DeploymentMode = "production"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	CORS    CORSConfig
	Auth    AuthConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	Cleanup CleanupConfig
}

type CORSConfig struct {
	AllowedOrigins     []string `env:"ALLOWED_ORIGINS,  default=http://localhost:5173"`
	CredentialsEnabled bool     `env:"CORS_CREDENTIALS, default=true"`
	MaxAge             int      `env:"CORS_MAX_AGE,     default=600"`
}

type AuthConfig struct {
	// AllowQueryToken enables the ?token= credential location.
	AllowQueryToken bool `env:"AUTH_QUERY_TOKEN, default=true"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=realty"`
}

type RedisConfig struct {
	Addr            string        `env:"REDIS_ADDR,        default=localhost:6379"`
	Password        string        `env:"REDIS_PASSWORD"`
	DB              int           `env:"REDIS_DB,          default=0"`
	ProfileCacheTTL time.Duration `env:"PROFILE_CACHE_TTL, default=5m"`
}

type CleanupConfig struct {
	Workers int `env:"CLEANUP_WORKERS, default=4"`
}

// Mode maps ENV onto a DeploymentMode.
func (c *Config) Mode() DeploymentMode {
	switch strings.ToLower(strings.TrimSpace(c.Env)) {
	case "production", "prod":
		return ModeProduction
	default:
		return ModeDevelopment
	}
}

// Load reads configuration from the process environment.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration through lookuper and validates it.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	cfg.CORS.AllowedOrigins = normalizeOrigins(cfg.CORS.AllowedOrigins)
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if strings.TrimSpace(c.JWTSecret) == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	switch strings.ToLower(strings.TrimSpace(c.Env)) {
	case "development", "dev", "production", "prod", "test":
	default:
		errs = append(errs, fmt.Errorf("ENV %q is not recognised", c.Env))
	}
	if c.CORS.CredentialsEnabled {
		for _, o := range c.CORS.AllowedOrigins {
			if o == "*" {
				errs = append(errs, errors.New("ALLOWED_ORIGINS may not contain * while CORS_CREDENTIALS is enabled"))
				break
			}
		}
	}
	if c.CORS.MaxAge < 0 {
		errs = append(errs, errors.New("CORS_MAX_AGE must not be negative"))
	}
	return errors.Join(errs...)
}

// normalizeOrigins trims entries, drops empties and trailing slashes, and
// removes duplicates while keeping the configured order.
func normalizeOrigins(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, o := range in {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "" {
			continue
		}
		if _, dup := seen[o]; dup {
			continue
		}
		seen[o] = struct{}{}
		out = append(out, o)
	}
	return out
}
