package http

import (
	"net"
	"net/http"
	"time"
)

// TransportFunc wraps a round tripper with extra behaviour
type TransportFunc func(http.RoundTripper) http.RoundTripper

// Option tunes the client built by NewClient
type Option func(*clientConfig)

type clientConfig struct {
	dialTimeout           time.Duration
	requestTimeout        time.Duration
	keepAlive             time.Duration
	tlsHandshakeTimeout   time.Duration
	responseHeaderTimeout time.Duration
	idleConnTimeout       time.Duration
	maxIdleConnsPerHost   int
	transports            []TransportFunc
}

// Provider replies can take a while, so the request budget is generous
func defaultClientConfig() *clientConfig {
	return &clientConfig{
		dialTimeout:           10 * time.Second,
		requestTimeout:        60 * time.Second,
		keepAlive:             30 * time.Second,
		tlsHandshakeTimeout:   10 * time.Second,
		responseHeaderTimeout: 45 * time.Second,
		idleConnTimeout:       90 * time.Second,
		maxIdleConnsPerHost:   4,
	}
}

// NewClient builds an *http.Client with the package defaults overridden by opts.
// Transports added with WithTransport wrap the base transport in the order given.
func NewClient(opts ...Option) *http.Client {
	cfg := defaultClientConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	dialer := &net.Dialer{
		Timeout:   cfg.dialTimeout,
		KeepAlive: cfg.keepAlive,
	}

	var transport http.RoundTripper = &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		MaxIdleConnsPerHost:   cfg.maxIdleConnsPerHost,
		TLSHandshakeTimeout:   cfg.tlsHandshakeTimeout,
		ResponseHeaderTimeout: cfg.responseHeaderTimeout,
		IdleConnTimeout:       cfg.idleConnTimeout,
	}
	for _, wrap := range cfg.transports {
		transport = wrap(transport)
	}

	return &http.Client{
		Timeout:   cfg.requestTimeout,
		Transport: transport,
	}
}

func WithDialTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.dialTimeout = timeout
	}
}

func WithRequestTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.requestTimeout = timeout
	}
}

func WithKeepAlive(keepAlive time.Duration) Option {
	return func(c *clientConfig) {
		c.keepAlive = keepAlive
	}
}

func WithResponseHeaderTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.responseHeaderTimeout = timeout
	}
}

func WithIdleConnTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.idleConnTimeout = timeout
	}
}

func WithTransport(transport TransportFunc) Option {
	return func(c *clientConfig) {
		c.transports = append(c.transports, transport)
	}
}
