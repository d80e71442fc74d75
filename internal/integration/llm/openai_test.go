package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/futig/puppy-picker/internal/config"
	"github.com/futig/puppy-picker/internal/entity"
	"github.com/futig/puppy-picker/internal/pkg/validator"
	"github.com/futig/puppy-picker/internal/usecase/recommendation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newOpenAITestServer(t *testing.T, status int, body string, captured *map[string]any) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		if captured != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(captured))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestOpenAIConnector(baseURL, key string) *OpenAIConnector {
	return NewOpenAIConnector(
		config.LLMConnectorConfig{Model: "gpt-3.5-turbo"},
		config.OpenAIConfig{APIKey: key, BaseURL: baseURL},
		zap.NewNop(),
	)
}

func TestOpenAIConnector_Complete(t *testing.T) {
	var captured map[string]any
	srv := newOpenAITestServer(t, http.StatusOK,
		`{"choices":[{"index":0,"message":{"role":"assistant","content":"Beagle\n\nCheerful."}}],"usage":{"prompt_tokens":10,"completion_tokens":5}}`,
		&captured,
	)

	c := newTestOpenAIConnector(srv.URL, "sk-test")
	require.True(t, c.Configured())

	text, err := c.Complete(context.Background(), &entity.CompletionRequest{
		SystemPrompt: "system",
		Prompt:       "user",
		MaxTokens:    300,
		Temperature:  0.7,
	})
	require.NoError(t, err)
	assert.Equal(t, "Beagle\n\nCheerful.", text)

	assert.Equal(t, "gpt-3.5-turbo", captured["model"])
	assert.EqualValues(t, 300, captured["max_tokens"])
	assert.InDelta(t, 0.7, captured["temperature"], 1e-6)

	messages, ok := captured["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].(map[string]any)["role"])
	assert.Equal(t, "user", messages[1].(map[string]any)["content"])
}

func TestOpenAIConnector_ProviderError(t *testing.T) {
	srv := newOpenAITestServer(t, http.StatusUnauthorized,
		`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`, nil)

	c := newTestOpenAIConnector(srv.URL, "sk-test")
	_, err := c.Complete(context.Background(), &entity.CompletionRequest{Prompt: "user"})
	require.Error(t, err)
}

func TestOpenAIConnector_NoChoices(t *testing.T) {
	srv := newOpenAITestServer(t, http.StatusOK, `{"choices":[]}`, nil)

	c := newTestOpenAIConnector(srv.URL, "sk-test")
	text, err := c.Complete(context.Background(), &entity.CompletionRequest{Prompt: "user"})
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestOpenAIConnector_NoChoicesGivesPlaceholder(t *testing.T) {
	srv := newOpenAITestServer(t, http.StatusOK, `{"choices":[]}`, nil)

	uc := recommendation.NewUsecase(
		newTestOpenAIConnector(srv.URL, "sk-test"),
		validator.NewAnswerValidator(entity.Questions()),
		recommendation.DefaultOptions(),
		zap.NewNop(),
	)

	got, err := uc.Recommend(context.Background(), entity.AnswerSet{
		entity.QuestionActivityLevel:       "high",
		entity.QuestionLivingSpace:         "house",
		entity.QuestionExperience:          "experienced",
		entity.QuestionTimeCommitment:      "high",
		entity.QuestionBreedSize:           "large",
		entity.QuestionGroomingWillingness: "moderate",
		entity.QuestionTrainability:        "moderate",
	})
	require.NoError(t, err)
	assert.Equal(t, recommendation.EmptyRecommendation, got)
}

func TestConnectors_Configured(t *testing.T) {
	assert.False(t, newTestOpenAIConnector("", "").Configured())

	gemini := NewGeminiConnector(config.LLMConnectorConfig{Model: "gemini-2.0-flash"}, config.GeminiConfig{}, zap.NewNop())
	assert.False(t, gemini.Configured())

	gemini = NewGeminiConnector(config.LLMConnectorConfig{Model: "gemini-2.0-flash"}, config.GeminiConfig{APIKey: "g"}, zap.NewNop())
	assert.True(t, gemini.Configured())
}

func TestMockConnector_Complete(t *testing.T) {
	m := NewMockConnector(zap.NewNop())
	require.True(t, m.Configured())

	text, err := m.Complete(context.Background(), &entity.CompletionRequest{Prompt: "Activity: low | Size: small | Grooming: low"})
	require.NoError(t, err)
	assert.Contains(t, text, "Cavalier King Charles Spaniel\n\n")

	text, err = m.Complete(context.Background(), &entity.CompletionRequest{Prompt: "Size: large"})
	require.NoError(t, err)
	assert.Contains(t, text, "Labrador Retriever")
}
