package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	App      AppConfig
	Cart     CartConfig
	Redis    RedisConfig
	Catalog  CatalogConfig
	Square   SquareConfig
	Checkout CheckoutConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SOLEVIBE_APP_ENV" required:"true"`
	Port         string `envconfig:"SOLEVIBE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SOLEVIBE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SOLEVIBE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type CartConfig struct {
	FreeShippingThreshold float64       `envconfig:"SOLEVIBE_CART_FREE_SHIPPING_THRESHOLD" default:"100"`
	FlatShippingFee       float64       `envconfig:"SOLEVIBE_CART_FLAT_SHIPPING_FEE" default:"10"`
	SnapshotTTL           time.Duration `envconfig:"SOLEVIBE_CART_SNAPSHOT_TTL" default:"0"`
}

// ShippingThreshold returns the subtotal above which shipping is waived.
func (c CartConfig) ShippingThreshold() decimal.Decimal {
	return decimal.NewFromFloat(c.FreeShippingThreshold)
}

// ShippingFee returns the flat fee applied below the threshold.
func (c CartConfig) ShippingFee() decimal.Decimal {
	return decimal.NewFromFloat(c.FlatShippingFee)
}

type RedisConfig struct {
	URL          string        `envconfig:"SOLEVIBE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"SOLEVIBE_REDIS_ADDR"`
	Password     string        `envconfig:"SOLEVIBE_REDIS_PASSWORD"`
	DB           int           `envconfig:"SOLEVIBE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SOLEVIBE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SOLEVIBE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SOLEVIBE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SOLEVIBE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SOLEVIBE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type CatalogConfig struct {
	DBPath      string `envconfig:"SOLEVIBE_CATALOG_DB_PATH" default:"solevibe.db"`
	AutoMigrate bool   `envconfig:"SOLEVIBE_CATALOG_AUTO_MIGRATE" default:"true"`
	SeedOnBoot  bool   `envconfig:"SOLEVIBE_CATALOG_SEED_ON_BOOT" default:"true"`
}

type SquareConfig struct {
	AccessToken string `envconfig:"SOLEVIBE_SQUARE_ACCESS_TOKEN"`
	Env         string `envconfig:"SOLEVIBE_SQUARE_ENV" default:"sandbox"`
	LocationID  string `envconfig:"SOLEVIBE_SQUARE_LOCATION_ID"`
	RedirectURL string `envconfig:"SOLEVIBE_SQUARE_REDIRECT_URL"`
}

// Environment returns the normalized Square environment (sandbox/production).
func (s SquareConfig) Environment() string {
	env := strings.TrimSpace(strings.ToLower(s.Env))
	if env == "" {
		return "sandbox"
	}
	return env
}

type CheckoutConfig struct {
	RateLimitWindow time.Duration `envconfig:"SOLEVIBE_CHECKOUT_RATE_LIMIT_WINDOW" default:"1m"`
	RateLimitMax    int           `envconfig:"SOLEVIBE_CHECKOUT_RATE_LIMIT_MAX" default:"10"`
	PendingTTL      time.Duration `envconfig:"SOLEVIBE_CHECKOUT_PENDING_TTL" default:"1h"`
}
