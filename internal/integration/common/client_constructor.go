package common

import (
	"net/http"

	"github.com/futig/puppy-picker/internal/config"
	pkgHTTP "github.com/futig/puppy-picker/pkg/http"
	"go.uber.org/zap"
)

const userAgent = "puppy-picker"

// NewHTTPClient builds the outbound client shared by provider SDKs.
// Zero durations keep the pkg/http defaults.
func NewHTTPClient(cfg config.HTTPClientConfig) *http.Client {
	return pkgHTTP.NewClient(clientOptions(cfg)...)
}

// NewBaseConnector builds a JSON connector against cfg.Url
func NewBaseConnector(cfg config.HTTPClientConfig, logger *zap.Logger) *pkgHTTP.Connector {
	connCfg := &pkgHTTP.ConnectorConfig{
		Logger:  logger,
		BaseURL: cfg.Url,
	}

	opts := append(clientOptions(cfg),
		pkgHTTP.WithAuthToken(cfg.Token),
		pkgHTTP.WithUserAgent(userAgent),
	)

	return pkgHTTP.NewConnector(connCfg, opts...)
}

func clientOptions(cfg config.HTTPClientConfig) []pkgHTTP.Option {
	opts := []pkgHTTP.Option{pkgHTTP.WithRequestLogging()}

	if cfg.RequestTimeout > 0 {
		opts = append(opts, pkgHTTP.WithRequestTimeout(cfg.RequestTimeout))
	}
	if cfg.ConnTimeout > 0 {
		opts = append(opts, pkgHTTP.WithDialTimeout(cfg.ConnTimeout))
	}
	if cfg.KeepAlive > 0 {
		opts = append(opts, pkgHTTP.WithKeepAlive(cfg.KeepAlive))
	}
	if cfg.IdleConnTimeout > 0 {
		opts = append(opts, pkgHTTP.WithIdleConnTimeout(cfg.IdleConnTimeout))
	}
	if cfg.ResponseHeaderTimeout > 0 {
		opts = append(opts, pkgHTTP.WithResponseHeaderTimeout(cfg.ResponseHeaderTimeout))
	}

	return opts
}
