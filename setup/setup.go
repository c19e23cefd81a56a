package setup

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lb-conn/ekaer/application/usecases"
	"github.com/lb-conn/ekaer/domain"
	"github.com/lb-conn/ekaer/infrastructure/ekaer"
	"github.com/lb-conn/ekaer/infrastructure/httpxml"
)

// NewSetup builds the application from cfg: credentials, signer and the
// HTTP transport with its optional certificates.
func NewSetup(cfg *Config, logger *zap.Logger) (*usecases.Application, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	creds, err := NewCredentials(cfg)
	if err != nil {
		return nil, err
	}
	signer, err := ekaer.NewSigner(creds)
	if err != nil {
		return nil, err
	}

	opts, err := transportOptions(cfg, logger)
	if err != nil {
		return nil, err
	}
	transport, err := httpxml.New(creds.BaseURL(), opts...)
	if err != nil {
		return nil, err
	}

	logger.Info("client configured",
		zap.String("base_address", creds.BaseURL().String()),
		zap.String("user", creds.Username()),
		zap.String("vat_number", creds.VATNumber()))
	return usecases.NewApplication(signer, transport, usecases.WithLogger(logger))
}

// NewCredentials builds the client identity described by cfg.
func NewCredentials(cfg *Config) (*ekaer.Credentials, error) {
	enc, err := ekaer.LookupTextEncoding(cfg.TextEncoding)
	if err != nil {
		return nil, &domain.ConfigurationError{Field: "text_encoding", Message: err.Error()}
	}
	return ekaer.NewCredentials(cfg.Username, cfg.Password, cfg.VATNumber, cfg.SecretKey,
		ekaer.WithBaseAddress(cfg.BaseAddress),
		ekaer.WithTextEncoding(enc))
}

func transportOptions(cfg *Config, logger *zap.Logger) ([]httpxml.Option, error) {
	opts := []httpxml.Option{httpxml.WithLogger(logger)}
	if cfg.Timeout > 0 {
		opts = append(opts, httpxml.WithTimeout(cfg.Timeout))
	}

	if cfg.TLS.TrustedCertificatesDir != "" {
		store := httpxml.NewCertificateStore(logger)
		if err := store.LoadDirectory(cfg.TLS.TrustedCertificatesDir); err != nil {
			return nil, err
		}
		logger.Info("loaded trusted certificates", zap.Int("count", store.Len()))
		opts = append(opts, httpxml.WithRootCAs(store.Pool()))
	}

	if cfg.TLS.ClientCertificate != "" {
		p12, err := os.ReadFile(cfg.TLS.ClientCertificate)
		if err != nil {
			return nil, fmt.Errorf("failed to read client certificate: %w", err)
		}
		cert, err := httpxml.LoadClientCertificate(p12, cfg.TLS.ClientCertificatePassword)
		if err != nil {
			return nil, err
		}
		opts = append(opts, httpxml.WithClientCertificate(cert))
	}
	return opts, nil
}

// NewLogger builds the process logger from the log section.
func NewLogger(cfg LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	zcfg := zap.NewProductionConfig()
	if cfg.Format == "console" {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.OutputPaths = []string{"stderr"}
	return zcfg.Build()
}
