package cache

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	// SQLite driver
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/ahmettahaakturk25/customer-analyze/internal/core"
)

// SqliteCache is a SQLite-backed implementation of the AnalysisCache
// interface. It survives process restarts, which matters when the service
// sits behind a frontend that refreshes pages aggressively.
type SqliteCache struct {
	db          *sql.DB
	logger      *zap.Logger
	cleanupFreq time.Duration
	stopCh      chan struct{}
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS analysis_cache (
	message_key TEXT PRIMARY KEY,
	status      TEXT NOT NULL,
	is_normal   INTEGER,
	confidence  REAL NOT NULL,
	prediction  TEXT NOT NULL,
	analyzed_at TIMESTAMP NOT NULL,
	expires_at  TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_analysis_cache_expires ON analysis_cache(expires_at);
`

// NewSqliteCache creates a new SQLite-backed cache
func NewSqliteCache(dbPath string, logger *zap.Logger, cleanupFreq time.Duration) (*SqliteCache, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create cache schema: %w", err)
	}

	cache := &SqliteCache{
		db:          db,
		logger:      logger,
		cleanupFreq: cleanupFreq,
		stopCh:      make(chan struct{}),
	}

	go cache.startCleanupTask()

	return cache, nil
}

// Get retrieves a cached entry by message key
func (c *SqliteCache) Get(ctx context.Context, key string) (*core.CacheEntry, error) {
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
func (c *SqliteCache) Set(ctx context.Context, entry *core.CacheEntry) error {
	var isNormal sql.NullBool
	if entry.IsNormal != nil {
		isNormal = sql.NullBool{Bool: *entry.IsNormal, Valid: true}
	}

	_, err := c.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO analysis_cache
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
func (c *SqliteCache) Delete(ctx context.Context, key string) error {
	if _, err := c.db.ExecContext(ctx,
		`DELETE FROM analysis_cache WHERE message_key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete cache entry: %w", err)
	}
	return nil
}

// Cleanup removes expired entries
func (c *SqliteCache) Cleanup(ctx context.Context) error {
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
func (c *SqliteCache) startCleanupTask() {
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

// Stop stops the background cleanup task and closes the database
func (c *SqliteCache) Stop() {
	close(c.stopCh)
	if err := c.db.Close(); err != nil {
		c.logger.Error("Failed to close SQLite database", zap.Error(err))
	}
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*core.CacheEntry, error) {
	var entry core.CacheEntry
	var isNormal sql.NullBool

	if err := row.Scan(&entry.MessageKey, &entry.Status, &isNormal,
		&entry.Confidence, &entry.Prediction, &entry.AnalyzedAt, &entry.ExpiresAt); err != nil {
		return nil, err
	}
	if isNormal.Valid {
		entry.IsNormal = &isNormal.Bool
	}
	return &entry, nil
}
