package factory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ahmettahaakturk25/customer-analyze/internal/adapters/imapmail"
	"github.com/ahmettahaakturk25/customer-analyze/internal/config"
	"github.com/ahmettahaakturk25/customer-analyze/internal/core"
)

// ConnectorFactory creates the mail store connector
type ConnectorFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewConnectorFactory creates a new connector factory
func NewConnectorFactory(cfg *config.Config, logger *zap.Logger) *ConnectorFactory {
	return &ConnectorFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateConnector creates the IMAP connector
func (f *ConnectorFactory) CreateConnector() (core.MailConnector, error) {
	imapCfg := f.cfg.GetIMAP()
	if imapCfg.Username == "" || imapCfg.Password == "" {
		return nil, fmt.Errorf("imap credentials are required")
	}

	return imapmail.NewConnector(
		imapCfg.Address,
		imapCfg.Username,
		imapCfg.Password,
		imapCfg.InsecureSkipVerify,
		f.logger,
	), nil
}
