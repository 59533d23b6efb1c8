package cache

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	// MySQL driver
	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"github.com/ahmettahaakturk25/customer-analyze/internal/core"
)

// MysqlCache is a MySQL-backed implementation of the AnalysisCache
// interface, for deployments where several API replicas share one cache.
type MysqlCache struct {
	db          *sql.DB
	logger      *zap.Logger
	cleanupFreq time.Duration
	stopCh      chan struct{}
}

const mysqlSchema = `
CREATE TABLE IF NOT EXISTS analysis_cache (
	message_key VARCHAR(255) PRIMARY KEY,
	status      VARCHAR(64) NOT NULL,
	is_normal   TINYINT(1),
	confidence  DOUBLE NOT NULL,
	prediction  VARCHAR(64) NOT NULL,
	analyzed_at DATETIME NOT NULL,
	expires_at  DATETIME NOT NULL,
	INDEX idx_analysis_cache_expires (expires_at)
)`

// NewMysqlCache creates a new MySQL-backed cache
func NewMysqlCache(dsn string, logger *zap.Logger, cleanupFreq time.Duration) (*MysqlCache, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}

	if _, err := db.Exec(mysqlSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create cache schema: %w", err)
	}

	cache := &MysqlCache{
		db:          db,
		logger:      logger,
		cleanupFreq: cleanupFreq,
		stopCh:      make(chan struct{}),
	}

	go cache.startCleanupTask()

	return cache, nil
}

// Get retrieves a cached entry by message key
func (c *MysqlCache) Get(ctx context.Context, key string) (*core.CacheEntry, error) {
	row := c.db.QueryRowContext(ctx,
		`SELECT message_key, status, is_normal, confidence, prediction, analyzed_at, expires_at
		 FROM analysis_cache WHERE message_key = ?`, key)

	entry, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query cache: %w", err)
	}
	if time.Now().After(entry.ExpiresAt) {
		return nil, ErrExpired
	}
	return entry, nil
}

// Set stores a cache entry
func (c *MysqlCache) Set(ctx context.Context, entry *core.CacheEntry) error {
	var isNormal sql.NullBool
	if entry.IsNormal != nil {
		isNormal = sql.NullBool{Bool: *entry.IsNormal, Valid: true}
	}

	_, err := c.db.ExecContext(ctx,
		`REPLACE INTO analysis_cache
		 (message_key, status, is_normal, confidence, prediction, analyzed_at, expires_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.MessageKey, entry.Status, isNormal, entry.Confidence,
		entry.Prediction, entry.AnalyzedAt, entry.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to store cache entry: %w", err)
	}
	return nil
}

// Delete removes a cache entry
func (c *MysqlCache) Delete(ctx context.Context, key string) error {
	if _, err := c.db.ExecContext(ctx,
		`DELETE FROM analysis_cache WHERE message_key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete cache entry: %w", err)
	}
	return nil
}

// Cleanup removes expired entries
func (c *MysqlCache) Cleanup(ctx context.Context) error {
	result, err := c.db.ExecContext(ctx,
		`DELETE FROM analysis_cache WHERE expires_at < ?`, time.Now())
	if err != nil {
		return fmt.Errorf("failed to clean up cache: %w", err)
	}

	if removed, err := result.RowsAffected(); err == nil {
		c.logger.Debug("Cleaned up expired cache entries", zap.Int64("expired_count", removed))
	}
	return nil
}

// startCleanupTask starts a background task to clean up expired entries
func (c *MysqlCache) startCleanupTask() {
	ticker := time.NewTicker(c.cleanupFreq)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := c.Cleanup(context.Background()); err != nil {
				c.logger.Error("Failed to clean up cache", zap.Error(err))
			}
		case <-c.stopCh:
			return
		}
	}
}

// Stop stops the background cleanup task and closes the connection pool
func (c *MysqlCache) Stop() {
	close(c.stopCh)
	if err := c.db.Close(); err != nil {
		c.logger.Error("Failed to close MySQL connection", zap.Error(err))
	}
}
