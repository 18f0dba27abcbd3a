package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Err        error  `json:"-"`
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

func Validation(message string) *AppError {
	return &AppError{
		Code:       "VALIDATION_ERROR",
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

// Processing wraps a transcoding failure. The underlying codec message is
// kept in the caller-visible message so clients can tell a corrupt upload
// from an unsupported one.
func Processing(err error) *AppError {
	return &AppError{
		Code:       "PROCESSING_ERROR",
		Message:    fmt.Sprintf("image processing error: %v", err),
		StatusCode: http.StatusInternalServerError,
		Err:        err,
	}
}

func Storage(err error) *AppError {
	return &AppError{
		Code:       "STORAGE_ERROR",
		Message:    fmt.Sprintf("storage error: %v", err),
		StatusCode: http.StatusInternalServerError,
		Err:        err,
	}
}

func Unauthorized(message string) *AppError {
	return &AppError{
		Code:       "UNAUTHORIZED",
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func Internal(err error) *AppError {
	return &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    "an internal error occurred",
		StatusCode: http.StatusInternalServerError,
		Err:        err,
	}
}

func Is(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

func StatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
