package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeModel struct {
	name   string
	result *ModelResult
	err    error
	calls  int
}

func (f *fakeModel) Analyze(_ context.Context, _, _ string) (*ModelResult, error) {
	f.calls++
	return f.result, f.err
}

func (f *fakeModel) Name() string                 { return f.name }
func (f *fakeModel) Ready(_ context.Context) bool { return true }

type fakeRegistry struct {
	clients map[string]ModelClient
}

func (r *fakeRegistry) Get(selector string) ModelClient {
	return r.clients[selector]
}

func (r *fakeRegistry) Status(_ context.Context) ModelStatus {
	return ModelStatus{TransformerLoaded: true}
}

type fakeCache struct {
	entries map[string]*CacheEntry
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]*CacheEntry)}
}

func (c *fakeCache) Get(_ context.Context, key string) (*CacheEntry, error) {
	entry, ok := c.entries[key]
	if !ok {
		return nil, errors.New("not found")
	}
	return entry, nil
}

func (c *fakeCache) Set(_ context.Context, entry *CacheEntry) error {
	c.sets++
	c.entries[entry.MessageKey] = entry
	return nil
}

func (c *fakeCache) Delete(_ context.Context, key string) error {
	delete(c.entries, key)
	return nil
}

func (c *fakeCache) Cleanup(_ context.Context) error { return nil }

type fakeTrust struct {
	trusted string
}

func (t *fakeTrust) IsTrusted(sender string) bool {
	return t.trusted != "" && sender == t.trusted
}

func newTestAnalyzer(registry ModelRegistry, cache AnalysisCache, trust TrustChecker) *Analyzer {
	return NewAnalyzer(registry, cache, trust, zap.NewNop(), time.Hour)
}

func singleRegistry(selector string, model *fakeModel) *fakeRegistry {
	return &fakeRegistry{clients: map[string]ModelClient{selector: model}}
}

func TestAnalyze_EmptyContentSkipsModel(t *testing.T) {
	model := &fakeModel{name: "transformer", result: &ModelResult{Prediction: "LABEL_0", Confidence: 0.9}}
	analyzer := newTestAnalyzer(singleRegistry(ModelTransformer, model), nil, nil)

	block := analyzer.Analyze(context.Background(), &Email{Content: ""}, ModelTransformer, "")

	assert.Equal(t, StatusNotAnalyzed, block.Status)
	assert.Nil(t, block.IsNormal)
	assert.Equal(t, float64(0), block.Confidence)
	assert.Equal(t, PredictionNoAnalyzer, block.Prediction)
	assert.Equal(t, 0, model.calls)
}

func TestAnalyze_UnknownSelector(t *testing.T) {
	analyzer := newTestAnalyzer(&fakeRegistry{clients: map[string]ModelClient{}}, nil, nil)

	block := analyzer.Analyze(context.Background(), &Email{Content: "hello"}, "nonexistent", "")

	assert.Equal(t, StatusNotAnalyzed, block.Status)
	assert.Equal(t, PredictionUnknown, block.Prediction)
	assert.Nil(t, block.IsNormal)
}

func TestAnalyze_ModelError(t *testing.T) {
	model := &fakeModel{name: "transformer", err: errors.New("connection refused")}
	analyzer := newTestAnalyzer(singleRegistry(ModelTransformer, model), nil, nil)

	block := analyzer.Analyze(context.Background(), &Email{Content: "hello"}, ModelTransformer, "")

	assert.Equal(t, StatusAnalysisError, block.Status)
	assert.Equal(t, PredictionError, block.Prediction)
	assert.Nil(t, block.IsNormal)
	assert.Equal(t, float64(0), block.Confidence)
}

func TestAnalyze_NilResult(t *testing.T) {
	model := &fakeModel{name: "transformer"}
	analyzer := newTestAnalyzer(singleRegistry(ModelTransformer, model), nil, nil)

	block := analyzer.Analyze(context.Background(), &Email{Content: "hello"}, ModelTransformer, "")

	assert.Equal(t, StatusNotAnalyzed, block.Status)
	assert.Equal(t, PredictionUnknown, block.Prediction)
	assert.Equal(t, 1, model.calls)
}

func TestAnalyze_NormalResult(t *testing.T) {
	model := &fakeModel{
		name:   "transformer",
		result: &ModelResult{Prediction: "LABEL_0", Confidence: 0.8765},
	}
	analyzer := newTestAnalyzer(singleRegistry(ModelTransformer, model), nil, nil)

	block := analyzer.Analyze(context.Background(), &Email{Content: "routine report"}, ModelTransformer, "")

	assert.Equal(t, "Normal", block.Status)
	require.NotNil(t, block.IsNormal)
	assert.True(t, *block.IsNormal)
	assert.Equal(t, 87.65, block.Confidence)
	assert.Equal(t, "LABEL_0", block.Prediction)
}

func TestAnalyze_AnomalousResult(t *testing.T) {
	model := &fakeModel{
		name:   "svm",
		result: &ModelResult{Prediction: "LABEL_3", Confidence: 0.95},
	}
	analyzer := newTestAnalyzer(singleRegistry(ModelSVM, model), nil, nil)

	block := analyzer.Analyze(context.Background(), &Email{Content: "price fixing"}, ModelSVM, "")

	assert.Equal(t, "Fiyat İhlali", block.Status)
	require.NotNil(t, block.IsNormal)
	assert.False(t, *block.IsNormal)
	assert.Equal(t, float64(95), block.Confidence)
}

func TestAnalyze_UnmappedTokenPassesThrough(t *testing.T) {
	model := &fakeModel{
		name:   "transformer",
		result: &ModelResult{Prediction: "LABEL_9", Confidence: 0.5},
	}
	analyzer := newTestAnalyzer(singleRegistry(ModelTransformer, model), nil, nil)

	block := analyzer.Analyze(context.Background(), &Email{Content: "hello"}, ModelTransformer, "")

	assert.Equal(t, "LABEL_9", block.Status)
	require.NotNil(t, block.IsNormal)
	assert.False(t, *block.IsNormal)
}

func TestAnalyze_TrustedSenderSkipsModel(t *testing.T) {
	model := &fakeModel{name: "transformer", err: errors.New("should not be called")}
	trust := &fakeTrust{trusted: "partner@trusted.example.com"}
	analyzer := newTestAnalyzer(singleRegistry(ModelTransformer, model), nil, trust)

	block := analyzer.Analyze(context.Background(), &Email{
		Content: "quarterly update",
		Sender:  "partner@trusted.example.com",
	}, ModelTransformer, "")

	assert.Equal(t, LabelNormal, block.Status)
	require.NotNil(t, block.IsNormal)
	assert.True(t, *block.IsNormal)
	assert.Equal(t, float64(100), block.Confidence)
	assert.Equal(t, PredictionTrusted, block.Prediction)
	assert.Equal(t, 0, model.calls)
}

func TestAnalyze_CacheHitSkipsModel(t *testing.T) {
	model := &fakeModel{name: "transformer", result: &ModelResult{Prediction: "LABEL_0", Confidence: 0.9}}
	cache := newFakeCache()
	cache.entries["transformer:INBOX/42"] = &CacheEntry{
		MessageKey: "transformer:INBOX/42",
		Status:     "Anormal",
		IsNormal:   boolPtr(false),
		Confidence: 77.5,
		Prediction: "anormal",
	}
	analyzer := newTestAnalyzer(singleRegistry(ModelTransformer, model), cache, nil)

	block := analyzer.Analyze(context.Background(), &Email{Content: "hello"}, ModelTransformer, "INBOX/42")

	assert.Equal(t, "Anormal", block.Status)
	assert.Equal(t, 77.5, block.Confidence)
	assert.Equal(t, 0, model.calls)
}

func TestAnalyze_CacheMissStoresResult(t *testing.T) {
	model := &fakeModel{name: "transformer", result: &ModelResult{Prediction: "LABEL_0", Confidence: 0.9}}
	cache := newFakeCache()
	analyzer := newTestAnalyzer(singleRegistry(ModelTransformer, model), cache, nil)

	block := analyzer.Analyze(context.Background(), &Email{Content: "hello"}, ModelTransformer, "INBOX/7")

	assert.Equal(t, 1, model.calls)
	assert.Equal(t, 1, cache.sets)

	stored, err := cache.Get(context.Background(), "transformer:INBOX/7")
	require.NoError(t, err)
	assert.Equal(t, block.Status, stored.Status)
	assert.Equal(t, block.Confidence, stored.Confidence)
}

func TestAnalyze_EmptyMessageKeyBypassesCache(t *testing.T) {
	model := &fakeModel{name: "transformer", result: &ModelResult{Prediction: "LABEL_0", Confidence: 0.9}}
	cache := newFakeCache()
	analyzer := newTestAnalyzer(singleRegistry(ModelTransformer, model), cache, nil)

	analyzer.Analyze(context.Background(), &Email{Content: "hello"}, ModelTransformer, "")

	assert.Equal(t, 1, model.calls)
	assert.Equal(t, 0, cache.sets)
}

func TestAnalyzeContent_UnknownSelector(t *testing.T) {
	analyzer := newTestAnalyzer(&fakeRegistry{clients: map[string]ModelClient{}}, nil, nil)

	result, err := analyzer.AnalyzeContent(context.Background(), "hello", "", "bogus")

	assert.Nil(t, result)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bogus")
}

func TestAnalyzeContent_SurfacesModelError(t *testing.T) {
	model := &fakeModel{name: "transformer", err: errors.New("timeout")}
	analyzer := newTestAnalyzer(singleRegistry(ModelTransformer, model), nil, nil)

	result, err := analyzer.AnalyzeContent(context.Background(), "hello", "", ModelTransformer)

	assert.Nil(t, result)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout")
}

func TestAnalyzeContent_NilResultIsError(t *testing.T) {
	model := &fakeModel{name: "transformer"}
	analyzer := newTestAnalyzer(singleRegistry(ModelTransformer, model), nil, nil)

	result, err := analyzer.AnalyzeContent(context.Background(), "hello", "", ModelTransformer)

	assert.Nil(t, result)
	require.Error(t, err)
}

func TestRoundConfidence(t *testing.T) {
	assert.Equal(t, 87.65, roundConfidence(0.8765))
	assert.Equal(t, 87.66, roundConfidence(0.87655))
	assert.Equal(t, float64(100), roundConfidence(1.0))
	assert.Equal(t, float64(0), roundConfidence(0))
}
