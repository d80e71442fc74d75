package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/futig/puppy-picker/internal/entity"
)

// JSON writes data as a JSON body with status
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		// The status line is already out, nothing left to report to the client
		_ = json.NewEncoder(w).Encode(data)
	}
}

// Error writes {"error": message}. message is always a fixed user-facing text.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, entity.ErrorResponse{Error: message})
}

// Success writes a 200 OK response
func Success(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

// Created writes a 201 Created response
func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, data)
}

// NoContent writes a 204 No Content response
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Attachment writes an exported result as a file download
func Attachment(w http.ResponseWriter, result *entity.ExportedResult) error {
	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.FileName))
	w.Header().Set("Content-Length", strconv.Itoa(len(result.Content)))
	w.WriteHeader(http.StatusOK)

	_, err := w.Write(result.Content)
	return err
}
