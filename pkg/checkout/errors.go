package checkout

import "errors"

var (
	// ErrMissingPaymentToken is the precondition failure for a signup that
	// arrived without a client payment-method token. Maps to HTTP 400; no
	// processor call is made.
	ErrMissingPaymentToken = errors.New("missing payment method token")

	// ErrPaymentProcessor wraps any failure reported by the remote
	// processor. No local state is written when it occurs.
	ErrPaymentProcessor = errors.New("payment processor error")

	// ErrRecordPayment wraps local persistence failures after a successful
	// charge. The charge itself went through; the record must be
	// reconciled manually.
	ErrRecordPayment = errors.New("failed to record payment")

	ErrMissingPlanID      = errors.New("plan id is required for recurring signup")
	ErrMissingAmount      = errors.New("amount is required for one-time signup")
	ErrMissingAPIKey      = errors.New("processor API key is required")
	ErrInvalidTrialUnit   = errors.New("invalid trial duration unit")
	ErrInvalidEnvironment = errors.New("invalid processor environment")
)
