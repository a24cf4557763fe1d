package response

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/GregMSThompson/sahakari-backend/internal/errs"
	"github.com/GregMSThompson/sahakari-backend/pkg/logger"
)

// ErrorResponse is the error body. Error carries the wrapped detail of a
// client error when it adds to Message; server errors never expose it.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func (h *responseHandler) WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	writeJSON(w, r, status, ErrorResponse{Code: code, Message: message})
}

func (h *responseHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())
	status, code := errs.Status(err)

	var (
		dbErr  *errs.DatabaseError
		extErr *errs.ExternalServiceError
		encErr *errs.EncryptionError
	)

	switch {
	case status < http.StatusInternalServerError:
		log.Warn("request rejected", "status", status, "code", code, "error", err.Error())
		writeJSON(w, r, status, ErrorResponse{Code: code, Message: errs.Message(err), Error: errs.Detail(err)})

	case errors.As(err, &dbErr):
		log.Error("database error",
			"operation", dbErr.Operation,
			"error", dbErr.Error())
		h.WriteError(w, r, status, code, "An error occurred")

	case errors.As(err, &extErr):
		level := slog.LevelError
		if extErr.Transient {
			level = slog.LevelWarn
		}
		log.Log(r.Context(), level, "external service error",
			"service", extErr.Service,
			"transient", extErr.Transient,
			"error", extErr.Error())
		h.WriteError(w, r, status, code, "Service temporarily unavailable")

	case errors.As(err, &encErr):
		log.Error("encryption error", "error", encErr.Error())
		h.WriteError(w, r, status, code, "An error occurred")

	default:
		log.Error("unexpected error",
			"error", err,
			"type", fmt.Sprintf("%T", err))
		h.WriteError(w, r, status, code, "An unexpected error occurred")
	}
}
