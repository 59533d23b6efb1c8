package factory

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ahmettahaakturk25/customer-analyze/internal/adapters/cache"
	"github.com/ahmettahaakturk25/customer-analyze/internal/config"
	"github.com/ahmettahaakturk25/customer-analyze/internal/core"
)

// CacheFactory creates the analysis cache
type CacheFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewCacheFactory creates a new cache factory
func NewCacheFactory(cfg *config.Config, logger *zap.Logger) *CacheFactory {
	return &CacheFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateAnalysisCache creates the configured cache backend. A nil cache is
// returned when caching is disabled; the pipeline treats that as a miss on
// every lookup.
func (f *CacheFactory) CreateAnalysisCache() (core.AnalysisCache, error) {
	if !f.IsCacheEnabled() {
		f.logger.Info("Analysis cache disabled")
		return nil, nil
	}

	cleanupFreq, err := f.cfg.GetDuration("cache.cleanup_frequency")
	if err != nil {
		return nil, fmt.Errorf("invalid cache cleanup frequency: %w", err)
	}

	cacheType := f.cfg.GetString("cache.type")
	switch cacheType {
	case "memory":
		return cache.NewMemoryCache(f.logger, cleanupFreq), nil
	case "sqlite":
		return cache.NewSqliteCache(f.cfg.GetString("cache.sqlite_path"), f.logger, cleanupFreq)
	case "mysql":
		return cache.NewMysqlCache(f.cfg.GetString("cache.mysql_dsn"), f.logger, cleanupFreq)
	default:
		return nil, fmt.Errorf("unsupported cache type: %s", cacheType)
	}
}

// GetCacheTTL returns the configured entry lifetime
func (f *CacheFactory) GetCacheTTL() (time.Duration, error) {
	ttl, err := f.cfg.GetDuration("cache.ttl")
	if err != nil {
		return 0, fmt.Errorf("invalid cache TTL: %w", err)
	}
	return ttl, nil
}

// IsCacheEnabled reports whether caching is enabled
func (f *CacheFactory) IsCacheEnabled() bool {
	return f.cfg.GetBool("cache.enabled")
}
