package utils

import "errors"

// Common application errors used across services.
var (
	ErrInvalidToken       = errors.New("INVALID_TOKEN")
	ErrInvalidCredentials = errors.New("INVALID_CREDENTIALS")
	ErrInvalidStatus      = errors.New("INVALID_STATUS")
	ErrUnknownProduct     = errors.New("UNKNOWN_PRODUCT")
	ErrEmptyCart          = errors.New("EMPTY_CART")
)
