package response

import (
	"encoding/json"
	"net/http"

	"github.com/GregMSThompson/sahakari-backend/pkg/logger"
)

type SuccessEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}

func (h *responseHandler) WriteSuccess(w http.ResponseWriter, r *http.Request, status int, data any) {
	writeJSON(w, r, status, SuccessEnvelope{Success: true, Data: data})
}

// writeJSON sends body with status. The header is already out when encoding
// fails so all that is left is to log.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode response",
			"error", err,
			"status", status)
	}
}
