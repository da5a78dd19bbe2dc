package errors

import (
	"fmt"
	"net/http"
)

type AppError struct {
	Code    string
	Message string
	Status  int
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Predefined errors
var (
	ErrDecode = &AppError{
		Code:    "DECODE_ERROR",
		Message: "Audio could not be decoded",
		Status:  http.StatusBadRequest,
	}

	ErrPublish = &AppError{
		Code:    "PUBLISH_ERROR",
		Message: "Failed to publish transcription job",
		Status:  http.StatusBadGateway,
	}

	ErrMalformedMessage = &AppError{
		Code:    "MALFORMED_MESSAGE",
		Message: "Invalid queue message payload",
		Status:  http.StatusBadRequest,
	}

	ErrRecognitionTimeout = &AppError{
		Code:    "RECOGNITION_TIMEOUT",
		Message: "Speech recognition timed out",
		Status:  http.StatusInternalServerError,
	}

	ErrRecognition = &AppError{
		Code:    "RECOGNITION_ERROR",
		Message: "Speech recognition failed",
		Status:  http.StatusInternalServerError,
	}

	ErrNotFound = &AppError{
		Code:    "NOT_FOUND",
		Message: "Resource not found",
		Status:  http.StatusNotFound,
	}

	ErrValidation = &AppError{
		Code:    "VALIDATION_ERROR",
		Message: "Validation failed",
		Status:  http.StatusBadRequest,
	}

	ErrInternalServer = &AppError{
		Code:    "INTERNAL_ERROR",
		Message: "Internal server error",
		Status:  http.StatusInternalServerError,
	}
)

func NewError(code, message string, status int) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Status:  status,
	}
}

func WrapError(err error, code, message string, status int) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// Wrap attaches err to a copy of a predefined error kind.
func Wrap(err error, kind *AppError) *AppError {
	return &AppError{
		Code:    kind.Code,
		Message: kind.Message,
		Status:  kind.Status,
		Err:     err,
	}
}

// Is reports whether err carries the given error code.
func Is(err error, kind *AppError) bool {
	appErr, ok := err.(*AppError)
	return ok && appErr.Code == kind.Code
}

// ErrorResponse is a common error response format
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}
