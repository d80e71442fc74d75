package llm

import (
	"context"
	"fmt"

	"github.com/futig/puppy-picker/internal/config"
	"github.com/futig/puppy-picker/internal/entity"
	"github.com/futig/puppy-picker/internal/integration/common"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// OpenAIConnector completes prompts through the Chat Completions API
type OpenAIConnector struct {
	client *openai.Client
	model  string
	apiKey string
	logger *zap.Logger
}

func NewOpenAIConnector(
	cfg config.LLMConnectorConfig,
	openaiCfg config.OpenAIConfig,
	logger *zap.Logger,
) *OpenAIConnector {
	clientCfg := openai.DefaultConfig(openaiCfg.APIKey)
	if openaiCfg.BaseURL != "" {
		clientCfg.BaseURL = openaiCfg.BaseURL
	}
	clientCfg.HTTPClient = common.NewHTTPClient(cfg.HTTPClientConfig)

	return &OpenAIConnector{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
		apiKey: openaiCfg.APIKey,
		logger: logger,
	}
}

func (c *OpenAIConnector) Configured() bool {
	return c.apiKey != ""
}

// Complete sends one system and one user message and returns the first choice.
// A reply without choices yields an empty string.
func (c *OpenAIConnector) Complete(ctx context.Context, req *entity.CompletionRequest) (string, error) {
	ctxzap.Info(ctx, "requesting chat completion", zap.String("model", c.model))

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("create chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		ctxzap.Warn(ctx, "chat completion returned no choices", zap.String("model", c.model))
		return "", nil
	}

	ctxzap.Info(ctx, "chat completion received",
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
	)

	return resp.Choices[0].Message.Content, nil
}
