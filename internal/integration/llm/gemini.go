package llm

import (
	"context"
	"fmt"
	"sync"

	"github.com/futig/puppy-picker/internal/config"
	"github.com/futig/puppy-picker/internal/entity"
	"github.com/futig/puppy-picker/internal/integration/common"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// GeminiConnector completes prompts through the Gemini GenerateContent API
type GeminiConnector struct {
	clientCfg *genai.ClientConfig
	model     string
	logger    *zap.Logger

	once      sync.Once
	client    *genai.Client
	clientErr error
}

func NewGeminiConnector(
	cfg config.LLMConnectorConfig,
	geminiCfg config.GeminiConfig,
	logger *zap.Logger,
) *GeminiConnector {
	return &GeminiConnector{
		clientCfg: &genai.ClientConfig{
			APIKey:     geminiCfg.APIKey,
			Backend:    genai.BackendGeminiAPI,
			HTTPClient: common.NewHTTPClient(cfg.HTTPClientConfig),
		},
		model:  cfg.Model,
		logger: logger,
	}
}

func (c *GeminiConnector) Configured() bool {
	return c.clientCfg.APIKey != ""
}

// Complete sends the prompt with the system prompt as instruction and returns the response text
func (c *GeminiConnector) Complete(ctx context.Context, req *entity.CompletionRequest) (string, error) {
	client, err := c.getClient(ctx)
	if err != nil {
		return "", err
	}

	ctxzap.Info(ctx, "requesting gemini content", zap.String("model", c.model))

	temperature := req.Temperature
	resp, err := client.Models.GenerateContent(ctx, c.model, genai.Text(req.Prompt), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(req.SystemPrompt, genai.RoleUser),
		MaxOutputTokens:   int32(req.MaxTokens),
		Temperature:       &temperature,
	})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	return resp.Text(), nil
}

// client creation validates the key, so it is deferred to the first configured call
func (c *GeminiConnector) getClient(ctx context.Context) (*genai.Client, error) {
	c.once.Do(func() {
		c.client, c.clientErr = genai.NewClient(ctx, c.clientCfg)
		if c.clientErr != nil {
			c.clientErr = fmt.Errorf("create gemini client: %w", c.clientErr)
		}
	})
	return c.client, c.clientErr
}
