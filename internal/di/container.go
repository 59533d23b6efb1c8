package di

import (
	"context"
	"time"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/ahmettahaakturk25/customer-analyze/internal/api"
	"github.com/ahmettahaakturk25/customer-analyze/internal/config"
	"github.com/ahmettahaakturk25/customer-analyze/internal/core"
	"github.com/ahmettahaakturk25/customer-analyze/internal/factory"
	"github.com/ahmettahaakturk25/customer-analyze/internal/logging"
	"github.com/ahmettahaakturk25/customer-analyze/internal/utils"
	"github.com/ahmettahaakturk25/customer-analyze/internal/whitelist"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewTextProcessorFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewModelFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewCacheFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewConnectorFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewTranslatorFactory); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(func(f *factory.TextProcessorFactory) *utils.TextProcessor {
		return f.CreateTextProcessor()
	}); err != nil {
		return nil, err
	}

	// Register model registry
	if err := container.Provide(func(f *factory.ModelFactory) (core.ModelRegistry, error) {
		return f.CreateRegistry(context.Background())
	}); err != nil {
		return nil, err
	}

	// Register analysis cache and TTL
	if err := container.Provide(func(f *factory.CacheFactory) (core.AnalysisCache, error) {
		return f.CreateAnalysisCache()
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(f *factory.CacheFactory) (time.Duration, error) {
		return f.GetCacheTTL()
	}); err != nil {
		return nil, err
	}

	// Register mail connector
	if err := container.Provide(func(f *factory.ConnectorFactory) (core.MailConnector, error) {
		return f.CreateConnector()
	}); err != nil {
		return nil, err
	}

	// Register translator
	if err := container.Provide(func(f *factory.TranslatorFactory) (core.Translator, error) {
		return f.CreateTranslator()
	}); err != nil {
		return nil, err
	}

	// Register trusted-domain checker
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) core.TrustChecker {
		return whitelist.NewChecker(cfg.GetStringSlice("analysis.trusted_domains"), logger)
	}); err != nil {
		return nil, err
	}

	// Register analysis pipeline
	if err := container.Provide(core.NewAnalyzer); err != nil {
		return nil, err
	}

	// Register mail service
	if err := container.Provide(func(
		connector core.MailConnector,
		analyzer *core.Analyzer,
		translator core.Translator,
		logger *zap.Logger,
		cfg *config.Config,
	) *core.MailService {
		imapCfg := cfg.GetIMAP()
		return core.NewMailService(connector, analyzer, translator, logger, imapCfg.Mailbox, imapCfg.DaysBack)
	}); err != nil {
		return nil, err
	}

	// Register HTTP handler and server
	if err := container.Provide(func(service *core.MailService, logger *zap.Logger, cfg *config.Config) *api.Handler {
		return api.NewHandler(service, logger, cfg.GetString("analysis.default_model"))
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(api.NewServer); err != nil {
		return nil, err
	}

	return container, nil
}
