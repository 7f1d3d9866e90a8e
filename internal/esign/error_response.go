package esign

// error_response.go maps gateway errors to the HTTP status and response body
// returned to the client.

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/information-sharing-networks/esign-gateway/app/internal/logger"
)

// MisconfiguredMessage is the client-facing message for missing DocuSign
// credentials. It never identifies which variable is missing - the names
// are logged server-side only.
const MisconfiguredMessage = "Server configuration error: missing environment variables"

// MapErrorToResponse maps an EsignError (or a generic error) to the HTTP
// status code and response body for the client.
//
// The mapping is deterministic per error code. Most codes pass the full
// error text through in the response message; ErrCodeConfig is the
// exception and always maps to the sanitized MisconfiguredMessage.
//
// Call this to set up the error response before sending it to the client
// (using RespondWithError).
func MapErrorToResponse(err error, r *http.Request) (int, AgreementResponse) {
	var esignErr *EsignError
	if errors.As(err, &esignErr) {
		return errorResponseFromEsign(esignErr)
	}

	// fallback - not expected; return an internal error response and log the unmapped error
	reqLogger := logger.ContextRequestLogger(r.Context())
	reqLogger.Error("BUG: Unmapped error type in MapErrorToResponse",
		slog.String("error_type", fmt.Sprintf("%T", err)),
		slog.String("error", err.Error()),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
	return http.StatusInternalServerError, AgreementResponse{
		Success: false,
		Message: "An internal error occurred",
	}
}

// errorResponseFromEsign maps each error code to its HTTP status.
func errorResponseFromEsign(err *EsignError) (int, AgreementResponse) {
	var statusCode int
	message := err.Error()

	switch err.Code() {
	case ErrCodeValidation:
		statusCode = http.StatusBadRequest
	case ErrCodeMalformedRequest:
		statusCode = http.StatusBadRequest
	case ErrCodeRequestTooLarge:
		statusCode = http.StatusRequestEntityTooLarge
	case ErrCodeConfig:
		statusCode = http.StatusInternalServerError
		message = MisconfiguredMessage
	case ErrCodeSigning:
		statusCode = http.StatusInternalServerError
	case ErrCodeAuth:
		statusCode = http.StatusInternalServerError
	case ErrCodeSubmission:
		statusCode = http.StatusInternalServerError
	default:
		statusCode = http.StatusInternalServerError
	}

	return statusCode, AgreementResponse{
		Success: false,
		Message: message,
	}
}
