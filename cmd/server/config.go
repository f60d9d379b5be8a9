package main

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/contentstudio/studio/modules/account"
	"github.com/contentstudio/studio/pkg/cookie"
	"github.com/contentstudio/studio/pkg/email"
	"github.com/contentstudio/studio/pkg/httpserver"
	"github.com/contentstudio/studio/pkg/mongo"
	"github.com/contentstudio/studio/pkg/pg"
	"github.com/contentstudio/studio/pkg/redis"
)

const minSecretLength = 32

// Storage drivers.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageMongo    = "mongo"
)

// Email drivers.
const (
	EmailDev      = "dev"
	EmailPostmark = "postmark"
)

// Config is the server configuration, read from the environment and an
// optional .env file.
type Config struct {
	Env     string `env:"APP_ENV" envDefault:"development"`
	AppName string `env:"APP_NAME" envDefault:"AI Content Studio"`
	AppURL  string `env:"APP_URL"`

	FrontendURL    string   `env:"FRONTEND_URL"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
	TrustProxy     bool     `env:"TRUST_PROXY_HEADERS" envDefault:"false"`

	SecretKey          string        `env:"SECRET_KEY"`
	MagicLinkTTL       time.Duration `env:"MAGIC_LINK_TTL" envDefault:"10m"`
	SessionTTL         time.Duration `env:"SESSION_TTL" envDefault:"2h"`
	SessionTransport   string        `env:"SESSION_TRANSPORT" envDefault:"query"`
	SessionCookieName  string        `env:"SESSION_COOKIE_NAME" envDefault:"studio_session"`
	SingleUseLinks     bool          `env:"SINGLE_USE_LINKS" envDefault:"true"`
	RateLimitPerMinute int           `env:"RATE_LIMIT_PER_MINUTE" envDefault:"10"`

	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"memory"`
	EmailDriver   string `env:"EMAIL_DRIVER" envDefault:"dev"`
	EmailDevDir   string `env:"EMAIL_DEV_DIR" envDefault:"./tmp/emails"`

	HTTP     httpserver.Config
	Postgres pg.Config
	Mongo    mongo.Config
	Redis    redis.Config
	Email    email.Config
	Cookie   cookie.Config
}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	for name, raw := range map[string]string{"APP_URL": c.AppURL, "FRONTEND_URL": c.FrontendURL} {
		if raw == "" {
			fail("%s is required", name)
			continue
		}
		if u, err := url.Parse(raw); err != nil || u.Scheme == "" || u.Host == "" {
			fail("%s must be an absolute URL", name)
		}
	}
	if len(c.SecretKey) < minSecretLength {
		fail("SECRET_KEY must be at least %d characters", minSecretLength)
	}
	if c.MagicLinkTTL <= 0 || c.SessionTTL <= 0 {
		fail("MAGIC_LINK_TTL and SESSION_TTL must be positive")
	}
	if !account.SessionTransport(c.SessionTransport).Valid() {
		fail("SESSION_TRANSPORT must be %q or %q", account.TransportQuery, account.TransportCookie)
	}
	if c.RateLimitPerMinute <= 0 {
		fail("RATE_LIMIT_PER_MINUTE must be positive")
	}

	switch c.StorageDriver {
	case StorageMemory:
	case StoragePostgres:
		if c.Postgres.ConnectionString == "" {
			fail("PG_CONN_URL is required for the postgres driver")
		}
	case StorageMongo:
		if c.Mongo.ConnectionURL == "" {
			fail("MONGODB_URL is required for the mongo driver")
		}
	default:
		fail("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}

	switch c.EmailDriver {
	case EmailDev:
	case EmailPostmark:
		if c.Email.PostmarkServerToken == "" || c.Email.PostmarkAccountToken == "" {
			fail("POSTMARK_SERVER_TOKEN and POSTMARK_ACCOUNT_TOKEN are required for the postmark driver")
		}
	default:
		fail("unknown EMAIL_DRIVER %q", c.EmailDriver)
	}

	return errors.Join(errs...)
}

// Origins returns the CORS allow-list, defaulting to the frontend origin.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range c.AllowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, strings.TrimRight(o, "/"))
		}
	}
	if len(out) == 0 && c.FrontendURL != "" {
		out = append(out, strings.TrimRight(c.FrontendURL, "/"))
	}
	return out
}
