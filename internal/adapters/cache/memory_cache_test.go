package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ahmettahaakturk25/customer-analyze/internal/core"
)

func testEntry(key string, ttl time.Duration) *core.CacheEntry {
	return &core.CacheEntry{
		MessageKey: key,
		Status:     "Normal",
		Confidence: 91.5,
		Prediction: "LABEL_0",
		AnalyzedAt: time.Now(),
		ExpiresAt:  time.Now().Add(ttl),
	}
}

func TestMemoryCache_SetAndGet(t *testing.T) {
	c := NewMemoryCache(zap.NewNop(), time.Hour)
	defer c.Stop()

	ctx := context.Background()
	require.NoError(t, c.Set(ctx, testEntry("transformer:INBOX/1", time.Hour)))

	entry, err := c.Get(ctx, "transformer:INBOX/1")
	require.NoError(t, err)
	assert.Equal(t, "Normal", entry.Status)
	assert.Equal(t, 91.5, entry.Confidence)
}

func TestMemoryCache_GetMissing(t *testing.T) {
	c := NewMemoryCache(zap.NewNop(), time.Hour)
	defer c.Stop()

	_, err := c.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryCache_GetExpired(t *testing.T) {
	c := NewMemoryCache(zap.NewNop(), time.Hour)
	defer c.Stop()

	ctx := context.Background()
	require.NoError(t, c.Set(ctx, testEntry("stale", -time.Minute)))

	_, err := c.Get(ctx, "stale")
	assert.ErrorIs(t, err, ErrExpired)
}

func TestMemoryCache_Delete(t *testing.T) {
	c := NewMemoryCache(zap.NewNop(), time.Hour)
	defer c.Stop()

	ctx := context.Background()
	require.NoError(t, c.Set(ctx, testEntry("gone", time.Hour)))
	require.NoError(t, c.Delete(ctx, "gone"))

	_, err := c.Get(ctx, "gone")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryCache_CleanupRemovesOnlyExpired(t *testing.T) {
	c := NewMemoryCache(zap.NewNop(), time.Hour)
	defer c.Stop()

	ctx := context.Background()
	require.NoError(t, c.Set(ctx, testEntry("fresh", time.Hour)))
	require.NoError(t, c.Set(ctx, testEntry("stale", -time.Minute)))

	require.NoError(t, c.Cleanup(ctx))

	_, err := c.Get(ctx, "fresh")
	assert.NoError(t, err)
	_, err = c.Get(ctx, "stale")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryCache_StopIsIdempotent(t *testing.T) {
	c := NewMemoryCache(zap.NewNop(), time.Hour)
	c.Stop()
	c.Stop()
}
