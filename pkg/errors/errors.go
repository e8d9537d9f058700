package errors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidToken            = errors.New("invalid or expired token")
	ErrUnauthorized            = errors.New("unauthorized access")
	ErrInsufficientPermissions = errors.New("insufficient permissions")

	ErrInvalidInput = errors.New("invalid input data")
	ErrInvalidEmail = errors.New("invalid email format")
)

// Error taxonomy codes carried by AppError.
const (
	CodeValidation           = "VALIDATION_ERROR"
	CodeNotificationDelivery = "NOTIFICATION_DELIVERY_ERROR"
	CodePersistence          = "PERSISTENCE_ERROR"
	CodeNotFound             = "NOT_FOUND"
	CodeNetwork              = "NETWORK_ERROR"
	CodeUpstream             = "UPSTREAM_ERROR"
	CodeInvalidState         = "INVALID_STATE"
	CodeConflict             = "CONFLICT"
	CodeStaleRequest         = "STALE_REQUEST"
)

type AppError struct {
	Code    string
	Message string
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

func NewAppError(code, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// CodeOf returns the code of the outermost AppError in err's chain, or "".
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// HasCode reports whether any AppError in err's chain carries code.
func HasCode(err error, code string) bool {
	for err != nil {
		var appErr *AppError
		if !errors.As(err, &appErr) {
			return false
		}
		if appErr.Code == code {
			return true
		}
		err = appErr.Err
	}
	return false
}
