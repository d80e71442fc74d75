package llm

import (
	"context"
	"strings"

	"github.com/futig/puppy-picker/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector is a local completer for development without a provider key
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

func (m *MockConnector) Configured() bool {
	return true
}

// Complete picks a breed from the size line of the prompt
func (m *MockConnector) Complete(ctx context.Context, req *entity.CompletionRequest) (string, error) {
	ctxzap.Info(ctx, "[MOCK] generating recommendation")

	breed, why := "Labrador Retriever", "friendly, adaptable and eager to please"
	switch {
	case strings.Contains(req.Prompt, "Size: small"):
		breed, why = "Cavalier King Charles Spaniel", "affectionate, gentle and happy in a smaller home"
	case strings.Contains(req.Prompt, "Size: medium"):
		breed, why = "Border Collie", "clever, energetic and quick to learn"
	case strings.Contains(req.Prompt, "Size: extra-large"):
		breed, why = "Newfoundland", "calm, patient and devoted to the family"
	}

	text := breed + "\n\nThe " + breed + " is " + why +
		". It suits the lifestyle you described and makes a loyal companion. (MOCK)"

	ctxzap.Info(ctx, "[MOCK] recommendation generated", zap.Int("result_length", len(text)))
	return text, nil
}
