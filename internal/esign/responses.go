package esign

// responses.go provides helper functions for sending HTTP responses from the
// gateway handlers.

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/information-sharing-networks/esign-gateway/app/internal/logger"
)

// RespondWithError sends the JSON error body for a failed agreement request.
//
// Use this for every failure on the agreement path - it maps the error to
// the right status code, logs the full error details server-side and sends
// the (possibly sanitized) message to the client.
func RespondWithError(w http.ResponseWriter, r *http.Request, err error) {
	statusCode, errorResponse := MapErrorToResponse(err, r)

	// Log the full error details server-side
	reqLogger := logger.ContextRequestLogger(r.Context())
	reqLogger.Warn("Request failed",
		slog.String("error", err.Error()),
		slog.Int("status_code", statusCode),
	)

	RespondWithJSON(w, statusCode, errorResponse)
}

// RespondWithJSON sends a JSON response with the given status code.
//
// Use this for success responses; for failures use RespondWithError so the
// status code mapping and server-side logging stay consistent.
func RespondWithJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			// If encoding fails, log it but don't try to send another response
			// (headers are already written)
			// #nosec G706 -- False positive: error is escaped (slog) and not from user input
			slog.Error("Failed to encode JSON response",
				slog.String("error", err.Error()),
			)
		}
	}
}

// RespondWithStatusCodeOnly sends a response with only a status code (no body)
func RespondWithStatusCodeOnly(w http.ResponseWriter, statusCode int) {
	w.WriteHeader(statusCode)
}
