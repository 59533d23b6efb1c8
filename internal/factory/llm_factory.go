package factory

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ahmettahaakturk25/customer-analyze/internal/adapters/bedrock"
	"github.com/ahmettahaakturk25/customer-analyze/internal/adapters/gemini"
	"github.com/ahmettahaakturk25/customer-analyze/internal/adapters/openai"
	"github.com/ahmettahaakturk25/customer-analyze/internal/config"
	"github.com/ahmettahaakturk25/customer-analyze/internal/core"
	"github.com/ahmettahaakturk25/customer-analyze/internal/utils"
)

// LLMFactory creates the LLM model backend
type LLMFactory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewLLMFactory creates a new LLM factory
func NewLLMFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *LLMFactory {
	return &LLMFactory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateClient creates an LLM model client based on the configured provider
func (f *LLMFactory) CreateClient(ctx context.Context) (core.ModelClient, error) {
	provider := f.cfg.GetLLM().Provider

	switch provider {
	case "bedrock":
		factory := bedrock.NewFactory(f.cfg.GetBedrock(), f.logger, f.textProcessor)
		return factory.CreateClient(ctx)
	case "gemini":
		factory := gemini.NewFactory(f.cfg.GetGemini(), f.logger, f.textProcessor)
		return factory.CreateClient(ctx)
	case "openai":
		factory := openai.NewFactory(f.cfg.GetOpenAI(), f.logger, f.textProcessor)
		return factory.CreateClient()
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", provider)
	}
}
