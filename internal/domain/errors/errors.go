package errors

import "errors"

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")
	ErrEmptyOrder         = errors.New("order has no items")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidProduct     = errors.New("invalid product")
	ErrAmountMismatch     = errors.New("order totals do not add up")
	ErrAlreadyPaid        = errors.New("order already paid")
	ErrVerificationFailed = errors.New("payment verification failed")
	ErrGatewayUnavailable = errors.New("payment service unavailable")
	ErrNotConfigured      = errors.New("payment service not configured")
)
