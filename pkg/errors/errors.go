package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
)

const (
	CodeNotFound     = "NOT_FOUND"
	CodeValidation   = "VALIDATION_ERROR"
	CodeInternal     = "INTERNAL_ERROR"
	CodeInvalidInput = "INVALID_INPUT"

	CodeInvalidDateRange   = "INVALID_DATE_RANGE"
	CodeInvalidRateCard    = "INVALID_RATE_CARD"
	CodeInvalidAmount      = "INVALID_AMOUNT"
	CodeMalformedReturnURL = "MALFORMED_RETURN_URL"
	CodePaymentSession     = "PAYMENT_SESSION_CREATION_FAILED"
	CodeMetricsUnavailable = "METRICS_UNAVAILABLE"
)

type AppError struct {
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Err        error          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) StatusCode() int {
	return e.HTTPStatus
}

func (e *AppError) ToJSON() []byte {
	response := ErrorResponse{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	}
	data, _ := json.Marshal(response)
	return data
}

type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func NotFoundWithID(resource, id string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details: map[string]any{
			"resource": resource,
			"id":       id,
		},
	}
}

func Validation(message string, details map[string]any) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    message,
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    details,
	}
}

func InvalidInput(message string) *AppError {
	return &AppError{
		Code:       CodeInvalidInput,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

func Internal(message string, err error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// InvalidDateRange marks a check-in/check-out pair that cannot produce at
// least one whole night. Reason is either "unparseable" or
// "non-positive duration".
func InvalidDateRange(reason string) *AppError {
	return &AppError{
		Code:       CodeInvalidDateRange,
		Message:    "Invalid date range",
		HTTPStatus: http.StatusBadRequest,
		Details:    map[string]any{"reason": reason},
	}
}

func InvalidRateCard(message string) *AppError {
	return &AppError{
		Code:       CodeInvalidRateCard,
		Message:    message,
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

func InvalidAmount(message string) *AppError {
	return &AppError{
		Code:       CodeInvalidAmount,
		Message:    message,
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

func MalformedReturnURL(message string) *AppError {
	return &AppError{
		Code:       CodeMalformedReturnURL,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
	}
}

// PaymentSessionFailed wraps a provider failure. The cause is preserved for
// diagnostics and never retried here: a duplicate submission would create a
// duplicate billable session.
func PaymentSessionFailed(err error) *AppError {
	return &AppError{
		Code:       CodePaymentSession,
		Message:    "Failed to create payment session",
		HTTPStatus: http.StatusBadGateway,
		Err:        err,
	}
}

// MetricsUnavailable wraps an event-log read failure. Callers that want
// graceful degradation must substitute zeros explicitly; this package never
// fabricates them.
func MetricsUnavailable(err error) *AppError {
	return &AppError{
		Code:       CodeMetricsUnavailable,
		Message:    "Click metrics are temporarily unavailable",
		HTTPStatus: http.StatusServiceUnavailable,
		Err:        err,
	}
}

func AsAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return Internal("An unexpected error occurred", err)
}
