package recommender

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/futig/puppy-picker/internal/config"
	"github.com/futig/puppy-picker/internal/entity"
	"github.com/futig/puppy-picker/internal/integration/common"
	pkghttp "github.com/futig/puppy-picker/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const (
	analyzeEndpoint = "/api/analyze"

	msgInvalidResponse = "Invalid response from server"
)

// RemoteError is a non-success reply of the analyse endpoint
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("analyze endpoint returned %d: %s", e.StatusCode, e.Message)
}

// UserMessage is the error text the server chose to show
func (e *RemoteError) UserMessage() string {
	return e.Message
}

// Connector submits answer sets to a remote analyse endpoint
type Connector struct {
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(cfg config.HTTPClientConfig, logger *zap.Logger) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg, logger),
		logger:    logger,
	}
}

// Recommend posts answers and returns the recommendation text
func (c *Connector) Recommend(ctx context.Context, answers entity.AnswerSet) (string, error) {
	ctxzap.Info(ctx, "requesting recommendation from server")

	var resp entity.AnalyzeResponse
	err := c.connector.DoRequest(ctx, http.MethodPost, analyzeEndpoint, answers, &resp)
	if err != nil {
		var httpErr *pkghttp.HTTPError
		if errors.As(err, &httpErr) {
			return "", &RemoteError{
				StatusCode: httpErr.StatusCode,
				Message:    errorMessage(httpErr),
			}
		}
		return "", fmt.Errorf("analyze request failed: %w", err)
	}

	if resp.Recommendation == "" {
		ctxzap.Warn(ctx, "analyze reply carries no recommendation")
		return "", &RemoteError{StatusCode: http.StatusOK, Message: msgInvalidResponse}
	}

	ctxzap.Info(ctx, "recommendation received", zap.Int("result_length", len(resp.Recommendation)))

	return resp.Recommendation, nil
}

func errorMessage(httpErr *pkghttp.HTTPError) string {
	var body entity.ErrorResponse
	if err := httpErr.Decode(&body); err == nil && body.Error != "" {
		return body.Error
	}
	return entity.MsgUpstreamFailure
}
