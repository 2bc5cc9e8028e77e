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
	Backend       BackendConfig
	Redis         RedisConfig
	Session       SessionConfig
	AuthRateLimit AuthRateLimitConfig
	Checkout      CheckoutConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Backend.normalize(); err != nil {
		return nil, err
	}
	if cfg.App.IsProd() {
		cfg.Session.SecureCookie = true
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STOREFRONT_APP_ENV" required:"true"`
	Port         string `envconfig:"STOREFRONT_APP_PORT" default:"3000"`
	LogLevel     string `envconfig:"STOREFRONT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STOREFRONT_LOG_WARN_STACK" default:"false"`
	SiteName     string `envconfig:"STOREFRONT_SITE_NAME" default:"Mahalaxmi Enterprise"`
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// BackendConfig points at the commerce REST API the storefront renders.
type BackendConfig struct {
	URL          string        `envconfig:"STOREFRONT_BACKEND_URL" default:"http://localhost:8080/api"`
	Timeout      time.Duration `envconfig:"STOREFRONT_BACKEND_TIMEOUT" default:"0s"`
	MaxIdleConns int           `envconfig:"STOREFRONT_BACKEND_MAX_IDLE_CONNS" default:"100"`
}

type RedisConfig struct {
	URL          string        `envconfig:"STOREFRONT_REDIS_URL"`
	Address      string        `envconfig:"STOREFRONT_REDIS_ADDR" default:"localhost:6379"`
	Password     string        `envconfig:"STOREFRONT_REDIS_PASSWORD"`
	DB           int           `envconfig:"STOREFRONT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STOREFRONT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STOREFRONT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STOREFRONT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// SessionConfig controls the browser session cookie and how long stored credentials live.
type SessionConfig struct {
	CookieName   string        `envconfig:"STOREFRONT_SESSION_COOKIE" default:"sf_session"`
	TTL          time.Duration `envconfig:"STOREFRONT_SESSION_TTL" default:"168h"`
	SecureCookie bool          `envconfig:"STOREFRONT_SESSION_SECURE_COOKIE" default:"false"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"STOREFRONT_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"STOREFRONT_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"STOREFRONT_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"STOREFRONT_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"STOREFRONT_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"STOREFRONT_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type CheckoutConfig struct {
	ConfirmationRedirectDelay time.Duration `envconfig:"STOREFRONT_CHECKOUT_REDIRECT_DELAY" default:"3s"`
}

func (b *BackendConfig) normalize() error {
	raw := strings.TrimSpace(b.URL)
	if raw == "" {
		return fmt.Errorf("%s is required", EnvBackendURL)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", EnvBackendURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must be an http(s) url, got %q", EnvBackendURL, raw)
	}
	b.URL = strings.TrimRight(u.String(), "/")
	if b.Timeout < 0 {
		return fmt.Errorf("%s must not be negative", EnvBackendTimeout)
	}
	return nil
}
