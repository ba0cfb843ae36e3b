package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/JulianPasquale/fudo-rack/internal/utils"

	"github.com/ilyakaznacheev/cleanenv"
)

// durationSeconds parses env as time.Duration: "10s", "5m" or bare number = seconds (e.g. "10" -> 10s).
type durationSeconds time.Duration

// cleanenv dispatches custom parsing through its Setter interface.
var _ cleanenv.Setter = (*durationSeconds)(nil)

func (d *durationSeconds) SetValue(data string) error {
	v, err := parseDuration(data)
	if err != nil {
		return err
	}
	*d = durationSeconds(v)
	return nil
}

func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	// Strip optional surrounding quotes: "10s" or '10s'
	if len(s) >= 2 && ((s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'')) {
		s = s[1 : len(s)-1]
	}

	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}
	// Bare number first (e.g. TOKEN_TTL=3600) — so "10s" never goes to ParseInt
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("duration must be like 10s, 5m or a number of seconds: %w", err)
	}
	return d, nil
}

func (d durationSeconds) Duration() time.Duration { return time.Duration(d) }

type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	Auth    AuthConfig
	Product ProductConfig
	PG      PGConfig
	Redis   RedisConfig
}

type AppConfig struct {
	Env     string `env:"APP_ENV" env-default:"dev"`
	Version string `env:"VERSION" env-default:"dev"`
}

type HTTPConfig struct {
	Port string `env:"HTTP_PORT" env-default:"8080"`

	// Значение: "10s", "5m" или число секунд без суффикса (например 10).
	ReadTimeout  durationSeconds `env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout durationSeconds `env:"HTTP_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout  durationSeconds `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

type AuthConfig struct {
	// JWTSecret has a non-production default so the API runs out of the box.
	JWTSecret string `env:"JWT_SECRET" env-default:"your_secret_key_here"`
	// TokenTTL: "1h" or a number of seconds (default 3600 = 1h).
	TokenTTL durationSeconds `env:"TOKEN_TTL" env-default:"3600"`

	// Bootstrap account seeded at startup.
	AdminUsername string `env:"ADMIN_USERNAME" env-default:"admin"`
	AdminPassword string `env:"ADMIN_PASSWORD" env-default:"password"`
}

type ProductConfig struct {
	// FinalizeDelay is how long a created product stays pending before it
	// becomes listable. "5s" or a number of seconds.
	FinalizeDelay durationSeconds `env:"FINALIZE_DELAY" env-default:"5"`
}

type PGConfig struct {
	// DSN is optional: without it the API keeps everything in memory and
	// skips the durable archive of completed products.
	DSN string `env:"PG_DSN" env-default:""`
}

type RedisConfig struct {
	// Addr is "host:port". Optional: without Redis the completed-list cache
	// is disabled. URL overrides Addr/Password/DB if set.
	Addr     string `env:"REDIS_ADDR" env-default:""`
	Password string `env:"REDIS_PASSWORD" env-default:""`
	DB       int    `env:"REDIS_DB" env-default:"0"`
	URL      string `env:"REDIS_URL" env-default:""`

	// TTL для кеша. Значение: "60s", "5m" или число секунд.
	DefaultTTL durationSeconds `env:"REDIS_DEFAULT_TTL" env-default:"60"`
}

func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}
	if cfg.Redis.URL != "" {
		addr, password, db, err := utils.ParseRedisURL(cfg.Redis.URL)
		if err != nil {
			return Config{}, fmt.Errorf("REDIS_URL: %w", err)
		}
		cfg.Redis.Addr = addr
		cfg.Redis.Password = password
		cfg.Redis.DB = db
	}
	if cfg.Auth.TokenTTL.Duration() <= 0 {
		return Config{}, fmt.Errorf("TOKEN_TTL must be positive")
	}
	if cfg.Product.FinalizeDelay.Duration() < 0 {
		return Config{}, fmt.Errorf("FINALIZE_DELAY must not be negative")
	}
	return cfg, nil
}
