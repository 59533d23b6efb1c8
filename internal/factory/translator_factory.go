package factory

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ahmettahaakturk25/customer-analyze/internal/adapters/translate"
	"github.com/ahmettahaakturk25/customer-analyze/internal/config"
	"github.com/ahmettahaakturk25/customer-analyze/internal/core"
)

// TranslatorFactory creates the translation layer
type TranslatorFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewTranslatorFactory creates a new translator factory
func NewTranslatorFactory(cfg *config.Config, logger *zap.Logger) *TranslatorFactory {
	return &TranslatorFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateTranslator creates the translation client, or nil when translation
// is disabled. A nil translator means responses carry no overlay.
func (f *TranslatorFactory) CreateTranslator() (core.Translator, error) {
	translationCfg := f.cfg.GetTranslation()
	if !translationCfg.Enabled {
		f.logger.Info("Translation layer disabled")
		return nil, nil
	}

	timeout, err := time.ParseDuration(translationCfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid translation timeout: %w", err)
	}

	client, err := translate.NewLibreClient(
		translationCfg.BaseURL,
		translationCfg.TargetLang,
		timeout,
		f.logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create translation client: %w", err)
	}
	return client, nil
}
