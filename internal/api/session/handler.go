package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/futig/puppy-picker/internal/entity"
	"github.com/futig/puppy-picker/internal/pkg/logger"
	"github.com/futig/puppy-picker/internal/pkg/response"
	"github.com/futig/puppy-picker/internal/questionnaire"
	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	usecase SessionUsecase
}

func NewHandler(usecase SessionUsecase) *Handler {
	return &Handler{
		usecase: usecase,
	}
}

// StartSession handles POST /api/sessions - Start new questionnaire
func (h *Handler) StartSession(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "StartSession")

	sessionID, view, err := h.usecase.StartSession(ctx)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Created(w, toSessionStateDTO(sessionID, view))
}

// GetSession handles GET /api/sessions/{id} - Current questionnaire state
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := h.sessionContext(r, sessionID, "GetSession")

	ctxzap.Debug(ctx, "fetching session")

	h.respondView(ctx, w, sessionID)(h.usecase.GetState(ctx, sessionID))
}

// SelectOption handles POST /api/sessions/{id}/select - Answer the current question
func (h *Handler) SelectOption(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := h.sessionContext(r, sessionID, "SelectOption")

	var req entity.SelectOptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if req.QuestionID == "" || req.Value == "" {
		h.respondError(ctx, w, http.StatusBadRequest, "question_id and value are required", entity.ErrMissingField)
		return
	}

	ctxzap.Info(ctx, "selecting option",
		zap.String("question_id", req.QuestionID),
		zap.String("value", req.Value),
	)

	h.respondView(ctx, w, sessionID)(h.usecase.SelectOption(ctx, sessionID, req.QuestionID, req.Value))
}

// GoBack handles POST /api/sessions/{id}/back - Previous question
func (h *Handler) GoBack(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := h.sessionContext(r, sessionID, "GoBack")

	h.respondView(ctx, w, sessionID)(h.usecase.GoBack(ctx, sessionID))
}

// Submit handles POST /api/sessions/{id}/submit - Request the recommendation
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := h.sessionContext(r, sessionID, "Submit")

	h.respondView(ctx, w, sessionID)(h.usecase.Submit(ctx, sessionID))
}

// Reset handles POST /api/sessions/{id}/reset - Start over
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := h.sessionContext(r, sessionID, "Reset")

	h.respondView(ctx, w, sessionID)(h.usecase.Reset(ctx, sessionID))
}

// DeleteSession handles DELETE /api/sessions/{id} - Tear the session down
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := h.sessionContext(r, sessionID, "DeleteSession")

	if err := h.usecase.DeleteSession(ctx, sessionID); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.NoContent(w)
}

// GetResult handles GET /api/sessions/{id}/result?format=markdown|pdf|docx - Download the result
func (h *Handler) GetResult(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := h.sessionContext(r, sessionID, "GetResult")

	format := entity.FormatMarkdown
	if f := r.URL.Query().Get("format"); f != "" {
		format = entity.ResultFormat(f)
	}

	if !format.IsValid() {
		h.respondError(ctx, w, http.StatusBadRequest, "unsupported format", entity.ErrUnsupportedFormat)
		return
	}

	result, err := h.usecase.ExportResult(ctx, sessionID, format)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	if err := response.Attachment(w, result); err != nil {
		ctxzap.Error(ctx, "failed to write result", zap.Error(err))
	}
}

func (h *Handler) sessionContext(r *http.Request, sessionID, action string) context.Context {
	return logger.WithSession(r.Context(), sessionID, action)
}

func (h *Handler) respondView(
	ctx context.Context,
	w http.ResponseWriter,
	sessionID string,
) func(questionnaire.View, error) {
	return func(view questionnaire.View, err error) {
		if err != nil {
			h.handleUsecaseError(ctx, w, err)
			return
		}
		response.Success(w, toSessionStateDTO(sessionID, view))
	}
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	if status >= http.StatusInternalServerError {
		ctxzap.Error(ctx, message, zap.Error(err))
	} else {
		ctxzap.Warn(ctx, message, zap.Error(err))
	}
	response.Error(w, status, message)
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	if errors.Is(err, entity.ErrSessionNotFound) || errors.Is(err, entity.ErrClosed) {
		h.respondError(ctx, w, http.StatusNotFound, "session not found", err)
	} else if errors.Is(err, entity.ErrQuestionMismatch) || errors.Is(err, entity.ErrInvalidOption) || errors.Is(err, entity.ErrUnsupportedFormat) {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid parameter", err)
	} else if errors.Is(err, entity.ErrNotInProgress) || errors.Is(err, entity.ErrNotReady) || errors.Is(err, entity.ErrSubmissionInFlight) || errors.Is(err, entity.ErrNoResult) {
		h.respondError(ctx, w, http.StatusConflict, "invalid session state", err)
	} else {
		h.respondError(ctx, w, http.StatusInternalServerError, "internal server error", err)
	}
}
