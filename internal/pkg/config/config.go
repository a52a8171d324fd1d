package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, API keys)
// - default: Values common across all environments (timeouts, limits, TTLs)
// -----------------------------------------------------------------------------

type Config struct {
	Server   ServerConfig
	DB       DBConfig
	CORS     CORSConfig
	Log      LogConfig
	JWT      JWTConfig
	Stripe   StripeConfig
	Checkout CheckoutConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,X-Request-ID"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,X-Request-ID,X-RateLimit-Limit,X-RateLimit-Remaining,X-RateLimit-Reset,Retry-After"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

// JWTConfig validates access tokens issued by the auth provider (Supabase signs with HS256).
type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Audience string `envconfig:"JWT_AUDIENCE" default:"authenticated"`
}

type StripeConfig struct {
	SecretKey        string `envconfig:"STRIPE_SECRET_KEY" required:"true"`
	WebhookSecret    string `envconfig:"STRIPE_WEBHOOK_SECRET" required:"true"`
	Currency         string `envconfig:"STRIPE_CURRENCY" default:"usd"`
	MinimumChargeCts int64  `envconfig:"STRIPE_MIN_CHARGE_CENTS" default:"50"`
}

type CheckoutConfig struct {
	SiteURL        string        `envconfig:"SITE_URL" required:"true"`
	RateLimit      int           `envconfig:"CHECKOUT_RATE_LIMIT" default:"20"`
	RateWindow     time.Duration `envconfig:"CHECKOUT_RATE_WINDOW" default:"5m"`
	ReservationTTL time.Duration `envconfig:"CHECKOUT_RESERVATION_TTL" default:"15m"`
	SweepInterval  time.Duration `envconfig:"CHECKOUT_SWEEP_INTERVAL" default:"1m"`
	MaxQuantity    int           `envconfig:"CHECKOUT_MAX_QUANTITY" default:"99"`
	MaxItems       int           `envconfig:"CHECKOUT_MAX_ITEMS" default:"50"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate catches settings envconfig accepts but the checkout cannot run with.
func (c Config) Validate() error {
	var problems []error

	if !strings.HasPrefix(c.Stripe.SecretKey, "sk_") && !strings.HasPrefix(c.Stripe.SecretKey, "rk_") {
		problems = append(problems, errors.New("STRIPE_SECRET_KEY must be a secret or restricted key"))
	}
	if !strings.HasPrefix(c.Stripe.WebhookSecret, "whsec_") {
		problems = append(problems, errors.New("STRIPE_WEBHOOK_SECRET must start with whsec_"))
	}
	if u, err := url.Parse(c.Checkout.SiteURL); err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		problems = append(problems, fmt.Errorf("SITE_URL %q must be an absolute http(s) URL", c.Checkout.SiteURL))
	}
	if c.Checkout.RateLimit <= 0 || c.Checkout.RateWindow <= 0 {
		problems = append(problems, errors.New("CHECKOUT_RATE_LIMIT and CHECKOUT_RATE_WINDOW must be positive"))
	}
	if c.Checkout.ReservationTTL <= 0 || c.Checkout.SweepInterval <= 0 {
		problems = append(problems, errors.New("CHECKOUT_RESERVATION_TTL and CHECKOUT_SWEEP_INTERVAL must be positive"))
	}
	if c.Checkout.MaxQuantity <= 0 || c.Checkout.MaxItems <= 0 {
		problems = append(problems, errors.New("CHECKOUT_MAX_QUANTITY and CHECKOUT_MAX_ITEMS must be positive"))
	}

	return errors.Join(problems...)
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 10,
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeZone:   "UTC",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		JWT: JWTConfig{
			Secret:   "test-jwt-secret-with-enough-length-000",
			Audience: "authenticated",
		},
		Stripe: StripeConfig{
			SecretKey:        "sk_test_dummy",
			WebhookSecret:    "whsec_test_dummy",
			Currency:         "usd",
			MinimumChargeCts: 50,
		},
		Checkout: CheckoutConfig{
			SiteURL:        "http://localhost:3000",
			RateLimit:      20,
			RateWindow:     5 * time.Minute,
			ReservationTTL: 15 * time.Minute,
			SweepInterval:  time.Minute,
			MaxQuantity:    99,
			MaxItems:       50,
		},
	}
}
