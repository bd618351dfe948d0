package apperrors

import "errors"

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrNotFound             = errors.New("not found")
	ErrInvalidPayload       = errors.New("invalid progress payload")
	ErrConfirmationRequired = errors.New("confirmation required")
)
