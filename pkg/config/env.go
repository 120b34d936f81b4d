package config

const EnvPrefix = "STOREFRONT"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv   = "STOREFRONT_APP_ENV"
	EnvPort     = "STOREFRONT_APP_PORT"
	EnvLogLevel = "STOREFRONT_LOG_LEVEL"

	EnvCatalogSource   = "STOREFRONT_CATALOG_SOURCE"
	EnvCatalogURL      = "STOREFRONT_CATALOG_URL"
	EnvCatalogTimeout  = "STOREFRONT_CATALOG_TIMEOUT"
	EnvCatalogCacheTTL = "STOREFRONT_CATALOG_CACHE_TTL"

	EnvCheckoutTaxRate = "STOREFRONT_CHECKOUT_TAX_RATE"

	EnvDBDSN    = "STOREFRONT_DB_DSN"
	EnvDBDriver = "STOREFRONT_DB_DRIVER"

	EnvRedisURL = "STOREFRONT_REDIS_URL"

	EnvUseSQLite    = "STOREFRONT_USE_SQLITE"
	EnvAutoMigrate  = "STOREFRONT_AUTO_MIGRATE"
	EnvCatalogCache = "STOREFRONT_FEATURE_CATALOG_CACHE"

	EnvCORSOrigins    = "STOREFRONT_CORS_ALLOWED_ORIGINS"
	EnvMetricsEnabled = "STOREFRONT_METRICS_ENABLED"
)

const (
	CatalogSourceHTTP = "http"
	CatalogSourceDB   = "db"
)
