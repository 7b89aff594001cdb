package procwebhook

import "errors"

var (
	// ErrInvalidWebhook covers every rejected notification: bad signature,
	// unparseable payload, unknown kind. Maps to HTTP 400.
	ErrInvalidWebhook = errors.New("invalid webhook")

	// ErrInvalidSignature is joined with ErrInvalidWebhook when the HMAC
	// check or its timestamp window fails.
	ErrInvalidSignature = errors.New("invalid webhook signature")
)
