package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"
)

// Replies larger than this are cut off before decoding
const maxResponseBytes = 1 << 20

// Connector performs JSON requests against one base URL
type Connector struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

type ConnectorConfig struct {
	BaseURL string
	Logger  *zap.Logger
}

func NewConnector(config *ConnectorConfig, options ...Option) *Connector {
	return &Connector{
		baseURL:    config.BaseURL,
		httpClient: NewClient(options...),
		logger:     config.Logger,
	}
}

// DoRequest sends reqBody as JSON and decodes a 2xx reply into respBody.
// Non-2xx replies are returned as *HTTPError, transport failures as *NetworkError.
func (c *Connector) DoRequest(ctx context.Context, method, endpoint string, reqBody, respBody any) error {
	var bodyReader io.Reader
	if reqBody != nil {
		payload, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
		ctx = context.WithValue(ctx, payloadContextKey{}, payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &NetworkError{Err: fmt.Errorf("read response body: %w", err)}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &HTTPError{StatusCode: resp.StatusCode, Body: body}
	}

	if respBody == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, respBody); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// HTTPError is a non-2xx reply
type HTTPError struct {
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

// Decode unmarshals the JSON error body into v
func (e *HTTPError) Decode(v any) error {
	return json.Unmarshal(e.Body, v)
}

// NetworkError is a failure below HTTP: dial, TLS, timeout or a broken body
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
