package core

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
)

// TrustChecker decides whether a sender can skip model analysis.
type TrustChecker interface {
	IsTrusted(sender string) bool
}

// Analyzer runs the per-message analysis pipeline: model dispatch, label
// normalization and confidence scoring, with a fallback ladder that converts
// every failure into a degraded analysis block. Analyze never returns an
// error; one bad message must not abort a batch.
//
// Analyzer holds no per-request state beyond read-only collaborators and is
// safe for concurrent use.
type Analyzer struct {
	registry ModelRegistry
	cache    AnalysisCache
	trust    TrustChecker
	logger   *zap.Logger
	cacheTTL time.Duration
}

// NewAnalyzer creates a new analysis pipeline
func NewAnalyzer(
	registry ModelRegistry,
	cache AnalysisCache,
	trust TrustChecker,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *Analyzer {
	return &Analyzer{
		registry: registry,
		cache:    cache,
		trust:    trust,
		logger:   logger,
		cacheTTL: cacheTTL,
	}
}

// roundConfidence converts a [0,1] score to a percentage rounded to two
// decimals.
func roundConfidence(score float64) float64 {
	return math.Round(score*10000) / 100
}

func boolPtr(b bool) *bool {
	return &b
}

func fallbackBlock(status, prediction string) AnalysisBlock {
	return AnalysisBlock{
		Status:     status,
		IsNormal:   nil,
		Confidence: 0,
		Prediction: prediction,
	}
}

// Analyze classifies one email with the selected model backend. messageKey
// identifies the message within its mailbox for cache purposes; an empty key
// bypasses the cache.
func (a *Analyzer) Analyze(ctx context.Context, email *Email, selector, messageKey string) AnalysisBlock {
	if email.Content == "" {
		return fallbackBlock(StatusNotAnalyzed, PredictionNoAnalyzer)
	}

	if a.trust != nil && a.trust.IsTrusted(email.Sender) {
		return AnalysisBlock{
			Status:     LabelNormal,
			IsNormal:   boolPtr(true),
			Confidence: 100,
			Prediction: PredictionTrusted,
		}
	}

	cacheKey := ""
	if a.cache != nil && messageKey != "" {
		cacheKey = fmt.Sprintf("%s:%s", selector, messageKey)
		if entry, err := a.cache.Get(ctx, cacheKey); err == nil {
			a.logger.Debug("Analysis cache hit",
				zap.String("key", cacheKey),
				zap.String("status", entry.Status))
			return AnalysisBlock{
				Status:     entry.Status,
				IsNormal:   entry.IsNormal,
				Confidence: entry.Confidence,
				Prediction: entry.Prediction,
			}
		}
	}

	client := a.registry.Get(selector)
	if client == nil {
		a.logger.Warn("No model backend registered for selector",
			zap.String("model", selector))
		return fallbackBlock(StatusNotAnalyzed, PredictionUnknown)
	}

	result, err := client.Analyze(ctx, email.Content, email.Subject)
	if err != nil {
		a.logger.Error("Model analysis failed",
			zap.String("model", client.Name()),
			zap.Error(err))
		return fallbackBlock(StatusAnalysisError, PredictionError)
	}
	if result == nil {
		return fallbackBlock(StatusNotAnalyzed, PredictionUnknown)
	}

	status := NormalizeLabel(result.Prediction)
	if !KnownLabel(result.Prediction) {
		a.logger.Warn("Unmapped prediction token passed through",
			zap.String("model", client.Name()),
			zap.String("prediction", result.Prediction))
	}

	block := AnalysisBlock{
		Status:     status,
		IsNormal:   boolPtr(status == LabelNormal),
		Confidence: roundConfidence(result.Confidence),
		Prediction: result.Prediction,
	}

	if a.cache != nil && cacheKey != "" {
		entry := &CacheEntry{
			MessageKey: cacheKey,
			Status:     block.Status,
			IsNormal:   block.IsNormal,
			Confidence: block.Confidence,
			Prediction: block.Prediction,
			AnalyzedAt: time.Now(),
			ExpiresAt:  time.Now().Add(a.cacheTTL),
		}
		if err := a.cache.Set(ctx, entry); err != nil {
			a.logger.Error("Failed to update analysis cache", zap.Error(err))
		}
	}

	return block
}

// AnalyzeContent classifies submitted content directly, surfacing errors to
// the caller instead of degrading. The analyze endpoint uses this path so a
// broken model layer yields a service error rather than a silent fallback.
func (a *Analyzer) AnalyzeContent(ctx context.Context, content, subject, selector string) (*ModelResult, error) {
	client := a.registry.Get(selector)
	if client == nil {
		return nil, fmt.Errorf("unknown model selector %q", selector)
	}

	result, err := client.Analyze(ctx, content, subject)
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", client.Name(), err)
	}
	if result == nil {
		return nil, fmt.Errorf("model %s returned no result", client.Name())
	}
	return result, nil
}
