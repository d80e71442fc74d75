package recommendation

import (
	"context"
	"strings"

	"github.com/futig/puppy-picker/internal/entity"
	"github.com/futig/puppy-picker/internal/pkg/validator"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// EmptyRecommendation replaces a blank provider reply
const EmptyRecommendation = "Unable to generate recommendations at this time."

// Options are the sampling parameters sent with every completion
type Options struct {
	MaxTokens   int
	Temperature float32
}

func DefaultOptions() Options {
	return Options{
		MaxTokens:   300,
		Temperature: 0.7,
	}
}

// Usecase is the recommendation gateway between an answer set and the provider
type Usecase struct {
	completer Completer
	validator *validator.Validator
	opts      Options
	logger    *zap.Logger
}

func NewUsecase(
	completer Completer,
	validator *validator.Validator,
	opts Options,
	logger *zap.Logger,
) *Usecase {
	return &Usecase{
		completer: completer,
		validator: validator,
		opts:      opts,
		logger:    logger,
	}
}

// Configured reports whether a provider credential is available
func (uc *Usecase) Configured() bool {
	return uc.completer != nil && uc.completer.Configured()
}

// Recommend validates answers, asks the provider for one breed and returns its trimmed reply.
// Errors wrap entity.ErrNotConfigured, entity.ErrInvalidInput or entity.ErrUpstreamFailure;
// provider detail is logged and never returned.
func (uc *Usecase) Recommend(ctx context.Context, answers entity.AnswerSet) (string, error) {
	if !uc.Configured() {
		ctxzap.Error(ctx, "recommendation provider credential is missing")
		return "", entity.ErrNotConfigured
	}

	sanitized, err := uc.validator.ValidateAnswers(answers)
	if err != nil {
		ctxzap.Warn(ctx, "rejected answer set", zap.Error(err))
		return "", err
	}

	req := &entity.CompletionRequest{
		SystemPrompt: systemPrompt,
		Prompt:       BuildPrompt(sanitized),
		MaxTokens:    uc.opts.MaxTokens,
		Temperature:  uc.opts.Temperature,
	}

	ctxzap.Info(ctx, "requesting breed recommendation", zap.Any("answers", sanitized))

	text, err := uc.completer.Complete(ctx, req)
	if err != nil {
		ctxzap.Error(ctx, "recommendation provider call failed", zap.Error(err))
		return "", entity.ErrUpstreamFailure
	}

	text = strings.TrimSpace(text)
	if text == "" {
		ctxzap.Warn(ctx, "recommendation provider returned empty content")
		return EmptyRecommendation, nil
	}

	ctxzap.Info(ctx, "recommendation generated", zap.Int("result_length", len(text)))
	return text, nil
}
