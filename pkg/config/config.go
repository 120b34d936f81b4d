package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	App          AppConfig
	Catalog      CatalogConfig
	Checkout     CheckoutConfig
	DB           DBConfig
	Redis        RedisConfig
	FeatureFlags FeatureFlagsConfig
	CORS         CORSConfig
	Metrics      MetricsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STOREFRONT_APP_ENV" default:"dev"`
	Port         string `envconfig:"STOREFRONT_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"STOREFRONT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STOREFRONT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type CatalogConfig struct {
	Source   string        `envconfig:"STOREFRONT_CATALOG_SOURCE" default:"http"`
	URL      string        `envconfig:"STOREFRONT_CATALOG_URL" default:"https://fakestoreapi.com/products"`
	Timeout  time.Duration `envconfig:"STOREFRONT_CATALOG_TIMEOUT" default:"10s"`
	CacheTTL time.Duration `envconfig:"STOREFRONT_CATALOG_CACHE_TTL" default:"10m"`
}

type CheckoutConfig struct {
	TaxRate string `envconfig:"STOREFRONT_CHECKOUT_TAX_RATE" default:"0.08"`
}

// Rate parses the configured tax rate. Load has already rejected malformed values.
func (c CheckoutConfig) Rate() decimal.Decimal {
	rate, err := decimal.NewFromString(strings.TrimSpace(c.TaxRate))
	if err != nil {
		return decimal.RequireFromString("0.08")
	}
	return rate
}

type DBConfig struct {
	DSN    string `envconfig:"STOREFRONT_DB_DSN"`
	Driver string `envconfig:"STOREFRONT_DB_DRIVER" default:"postgres"`

	MaxOpenConns    int           `envconfig:"STOREFRONT_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"STOREFRONT_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"STOREFRONT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"STOREFRONT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// Configured reports whether a database is wired at all.
func (d DBConfig) Configured() bool {
	return strings.TrimSpace(d.DSN) != ""
}

type RedisConfig struct {
	URL          string        `envconfig:"STOREFRONT_REDIS_URL"`
	Address      string        `envconfig:"STOREFRONT_REDIS_ADDR"`
	Password     string        `envconfig:"STOREFRONT_REDIS_PASSWORD"`
	DB           int           `envconfig:"STOREFRONT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STOREFRONT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STOREFRONT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"STOREFRONT_REDIS_WRITE_TIMEOUT" default:"3s"`
}

func (r RedisConfig) Configured() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type FeatureFlagsConfig struct {
	UseSQLite    bool `envconfig:"STOREFRONT_USE_SQLITE" default:"false"`
	AutoMigrate  bool `envconfig:"STOREFRONT_AUTO_MIGRATE" default:"false"`
	CatalogCache bool `envconfig:"STOREFRONT_FEATURE_CATALOG_CACHE" default:"false"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"STOREFRONT_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

type MetricsConfig struct {
	Enabled bool `envconfig:"STOREFRONT_METRICS_ENABLED" default:"true"`
}

func (c *Config) validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Catalog.Source)) {
	case CatalogSourceHTTP:
		if strings.TrimSpace(c.Catalog.URL) == "" {
			return fmt.Errorf("%s is required when catalog source is %q", EnvCatalogURL, CatalogSourceHTTP)
		}
	case CatalogSourceDB:
		if !c.DB.Configured() {
			return fmt.Errorf("%s is required when catalog source is %q", EnvDBDSN, CatalogSourceDB)
		}
	default:
		return fmt.Errorf("%s must be one of %q or %q, got %q", EnvCatalogSource, CatalogSourceHTTP, CatalogSourceDB, c.Catalog.Source)
	}
	c.Catalog.Source = strings.ToLower(strings.TrimSpace(c.Catalog.Source))

	rate, err := decimal.NewFromString(strings.TrimSpace(c.Checkout.TaxRate))
	if err != nil {
		return fmt.Errorf("parsing %s: %w", EnvCheckoutTaxRate, err)
	}
	if rate.IsNegative() || rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return fmt.Errorf("%s must be in [0, 1), got %s", EnvCheckoutTaxRate, rate)
	}

	if c.FeatureFlags.CatalogCache && !c.Redis.Configured() {
		return fmt.Errorf("%s requires %s", EnvCatalogCache, EnvRedisURL)
	}
	return nil
}
