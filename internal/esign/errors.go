// errors.go defines the error type used by the esign gateway.
//
// Every failure on the agreement path is wrapped in an EsignError carrying a
// code that identifies the stage that failed. error_response.go maps each
// code to an HTTP status and client-facing message, so handlers and clients
// never need to inspect error strings.
package esign

import "fmt"

// ErrorCode identifies the stage of the agreement flow that failed.
type ErrorCode string

const (
	// ErrCodeValidation - the request body is missing required fields.
	ErrCodeValidation ErrorCode = "validation"

	// ErrCodeMalformedRequest - the request body could not be decoded.
	ErrCodeMalformedRequest ErrorCode = "malformed_request"

	// ErrCodeRequestTooLarge - the request body exceeds the configured limit.
	ErrCodeRequestTooLarge ErrorCode = "request_too_large"

	// ErrCodeConfig - required DocuSign credentials are not configured.
	// The client message for this code is a sanitized constant; the error
	// text itself is only logged.
	ErrCodeConfig ErrorCode = "config"

	// ErrCodeSigning - the JWT-bearer assertion could not be built or signed.
	ErrCodeSigning ErrorCode = "signing"

	// ErrCodeAuth - the OAuth token exchange with DocuSign failed.
	ErrCodeAuth ErrorCode = "auth"

	// ErrCodeSubmission - the envelope submission to DocuSign failed.
	ErrCodeSubmission ErrorCode = "submission"

	// ErrCodeInternal - unexpected failure that fits no other code.
	ErrCodeInternal ErrorCode = "internal"
)

// EsignError is the error type used throughout the gateway.
//
// Use the New*/Wrap* constructors below rather than creating values
// directly so the code always matches the failing stage.
type EsignError struct {
	code    ErrorCode
	message string
	wrapped error
}

func (e *EsignError) Error() string {
	if e.wrapped != nil {
		return fmt.Sprintf("%s: %v", e.message, e.wrapped)
	}
	return e.message
}

// Unwrap supports errors.Is/errors.As on the wrapped error.
func (e *EsignError) Unwrap() error {
	return e.wrapped
}

// Code returns the stage code used for HTTP status mapping.
func (e *EsignError) Code() ErrorCode {
	return e.code
}

// NewValidationError creates an error for a request missing required fields.
//
// Use this before any credential or network work is done - validation
// failures must be detectable without DocuSign configuration.
func NewValidationError(message string) *EsignError {
	return &EsignError{code: ErrCodeValidation, message: message}
}

// NewMalformedRequestError creates an error for a request body that could
// not be decoded.
func NewMalformedRequestError(message string) *EsignError {
	return &EsignError{code: ErrCodeMalformedRequest, message: message}
}

// WrapMalformedRequestError wraps a decode failure with context.
func WrapMalformedRequestError(err error, message string) *EsignError {
	return &EsignError{code: ErrCodeMalformedRequest, message: message, wrapped: err}
}

// NewRequestTooLargeError creates an error for a request body over the
// configured size limit.
func NewRequestTooLargeError(message string) *EsignError {
	return &EsignError{code: ErrCodeRequestTooLarge, message: message}
}

// NewConfigError creates an error for missing DocuSign credentials.
//
// Use this with the names of the missing variables in the message - the
// message is logged but never sent to the client.
func NewConfigError(message string) *EsignError {
	return &EsignError{code: ErrCodeConfig, message: message}
}

// NewSigningError creates an error for an assertion that could not be built.
func NewSigningError(message string) *EsignError {
	return &EsignError{code: ErrCodeSigning, message: message}
}

// WrapSigningError wraps a key-parsing or signing failure with context.
func WrapSigningError(err error, message string) *EsignError {
	return &EsignError{code: ErrCodeSigning, message: message, wrapped: err}
}

// NewAuthError creates an error for a failed token exchange.
//
// Use this when DocuSign answered the token request with a non-success
// status; the message should carry the status and response body.
func NewAuthError(message string) *EsignError {
	return &EsignError{code: ErrCodeAuth, message: message}
}

// WrapAuthError wraps a transport-level token exchange failure with context.
func WrapAuthError(err error, message string) *EsignError {
	return &EsignError{code: ErrCodeAuth, message: message, wrapped: err}
}

// NewSubmissionError creates an error for a failed envelope submission.
//
// Use this when DocuSign answered the envelope request with a non-success
// status; the message should carry the status and response body.
func NewSubmissionError(message string) *EsignError {
	return &EsignError{code: ErrCodeSubmission, message: message}
}

// WrapSubmissionError wraps a transport-level envelope submission failure
// with context.
func WrapSubmissionError(err error, message string) *EsignError {
	return &EsignError{code: ErrCodeSubmission, message: message, wrapped: err}
}

// NewInternalError creates an error for an unexpected failure.
func NewInternalError(message string) *EsignError {
	return &EsignError{code: ErrCodeInternal, message: message}
}
