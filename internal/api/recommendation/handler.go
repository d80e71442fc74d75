package recommendation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/futig/puppy-picker/internal/entity"
	"github.com/futig/puppy-picker/internal/pkg/logger"
	"github.com/futig/puppy-picker/internal/pkg/response"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	usecase   RecommendationUsecase
	validator AnswerValidator
}

func NewHandler(usecase RecommendationUsecase, validator AnswerValidator) *Handler {
	return &Handler{
		usecase:   usecase,
		validator: validator,
	}
}

// Analyze handles POST /api/analyze - one breed recommendation for a complete answer set
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Analyze")

	// The credential is checked before the body is looked at.
	if !h.usecase.Configured() {
		h.handleUsecaseError(ctx, w, entity.ErrNotConfigured)
		return
	}

	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		h.handleUsecaseError(ctx, w, errors.Join(entity.ErrInvalidInput, err))
		return
	}

	answers, err := h.validator.ValidateRawAnswers(raw)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	recommendation, err := h.usecase.Recommend(ctx, answers)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, entity.AnalyzeResponse{Recommendation: recommendation})
}

// ListQuestions handles GET /api/questions - the fixed questionnaire
func (h *Handler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	response.Success(w, entity.Questions())
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrNotConfigured):
		ctxzap.Error(ctx, "analyze rejected", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, entity.MsgNotConfigured)
	case errors.Is(err, entity.ErrInvalidInput):
		ctxzap.Warn(ctx, "analyze rejected", zap.Error(err))
		response.Error(w, http.StatusBadRequest, entity.MsgInvalidInput)
	default:
		ctxzap.Error(ctx, "analyze failed", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, entity.MsgUpstreamFailure)
	}
}
