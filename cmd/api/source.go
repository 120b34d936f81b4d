package main

import (
	"fmt"

	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/angelmondragon/storefront/pkg/db"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/redis"
)

// buildSource picks the catalog source from config and optionally puts the redis
// read-through cache in front of it. The returned name labels metrics and logs.
func buildSource(cfg *config.Config, logg *logger.Logger, dbClient *db.Client, redisClient *redis.Client) (catalog.Source, string, error) {
	var (
		source catalog.Source
		name   string
	)

	switch cfg.Catalog.Source {
	case config.CatalogSourceDB:
		if dbClient == nil {
			return nil, "", fmt.Errorf("catalog source %q requires a database", config.CatalogSourceDB)
		}
		source, name = catalog.NewRepository(dbClient.DB()), config.CatalogSourceDB
	case config.CatalogSourceHTTP:
		source = catalog.NewHTTPSource(cfg.Catalog.URL, catalog.WithTimeout(cfg.Catalog.Timeout))
		name = config.CatalogSourceHTTP
	default:
		return nil, "", fmt.Errorf("unknown catalog source %q", cfg.Catalog.Source)
	}

	if cfg.FeatureFlags.CatalogCache {
		if redisClient == nil {
			return nil, "", fmt.Errorf("catalog cache requires redis")
		}
		source = catalog.NewCachedSource(source, redisClient, cfg.Catalog.CacheTTL, logg)
		name += "+redis"
	}
	return source, name, nil
}
