package payment

import "errors"

var (
	ErrPaymentNotFound = errors.New("payment not found")
	ErrInvalidAmount   = errors.New("invalid payment amount")
	ErrInvalidDate     = errors.New("invalid payment date")
	ErrInvalidStatus   = errors.New("invalid payment status")
	ErrUnknownUser     = errors.New("unknown user login")
)
