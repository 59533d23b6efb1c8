package factory

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ahmettahaakturk25/customer-analyze/internal/adapters/infer"
	"github.com/ahmettahaakturk25/customer-analyze/internal/config"
	"github.com/ahmettahaakturk25/customer-analyze/internal/core"
	"github.com/ahmettahaakturk25/customer-analyze/internal/utils"
)

// ModelFactory builds the model registry from configuration
type ModelFactory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewModelFactory creates a new model factory
func NewModelFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *ModelFactory {
	return &ModelFactory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateRegistry builds the registry of model backends. The transformer and
// SVM sidecars are always registered; the LLM backend only when enabled.
func (f *ModelFactory) CreateRegistry(ctx context.Context) (core.ModelRegistry, error) {
	registry := NewRegistry()

	transformerCfg := f.cfg.GetTransformer()
	transformerTimeout, err := time.ParseDuration(transformerCfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid transformer timeout: %w", err)
	}
	registry.Register(core.ModelTransformer,
		infer.NewTransformerClient(transformerCfg.BaseURL, transformerTimeout, f.logger))

	svmCfg := f.cfg.GetSVM()
	svmTimeout, err := time.ParseDuration(svmCfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid svm timeout: %w", err)
	}
	registry.Register(core.ModelSVM,
		infer.NewSVMClient(svmCfg.BaseURL, svmTimeout, f.logger))

	if f.cfg.GetLLM().Enabled {
		llmFactory := NewLLMFactory(f.cfg, f.logger, f.textProcessor)
		client, err := llmFactory.CreateClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create LLM backend: %w", err)
		}
		registry.Register(core.ModelLLM, client)
		f.logger.Info("LLM model backend registered",
			zap.String("provider", f.cfg.GetLLM().Provider))
	}

	return registry, nil
}

// Registry maps model selectors to backends.
type Registry struct {
	clients map[string]core.ModelClient
}

// NewRegistry creates an empty model registry
func NewRegistry() *Registry {
	return &Registry{
		clients: make(map[string]core.ModelClient),
	}
}

// Register adds a backend under the given selector
func (r *Registry) Register(selector string, client core.ModelClient) {
	r.clients[selector] = client
}

// Get returns the backend for the given selector, or nil
func (r *Registry) Get(selector string) core.ModelClient {
	return r.clients[selector]
}

// Status reports per-backend load flags
func (r *Registry) Status(ctx context.Context) core.ModelStatus {
	ready := func(selector string) bool {
		client, ok := r.clients[selector]
		return ok && client.Ready(ctx)
	}
	return core.ModelStatus{
		TransformerLoaded: ready(core.ModelTransformer),
		SVMLoaded:         ready(core.ModelSVM),
		LLMLoaded:         ready(core.ModelLLM),
	}
}

// Close releases backends that hold external resources
func (r *Registry) Close() {
	for _, client := range r.clients {
		if closer, ok := client.(interface{ Close() error }); ok {
			_ = closer.Close()
		}
	}
}
