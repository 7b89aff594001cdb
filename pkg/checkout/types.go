package checkout

import (
	"github.com/google/uuid"

	"github.com/dmitrymomot/membergate/pkg/payment"
)

// TrialUnit is the duration unit of a trial period.
type TrialUnit string

const (
	TrialDays   TrialUnit = "day"
	TrialMonths TrialUnit = "month"
	TrialYears  TrialUnit = "year"
)

// TrialPeriod describes an optional free trial on a recurring signup.
type TrialPeriod struct {
	Duration int
	Unit     TrialUnit
}

// Normalize converts the trial into units the processor supports. Yearly
// trials become 12-month trials; day and month pass through unchanged.
func (t TrialPeriod) Normalize() (TrialPeriod, error) {
	switch t.Unit {
	case TrialDays, TrialMonths:
		return t, nil
	case TrialYears:
		return TrialPeriod{Duration: t.Duration * 12, Unit: TrialMonths}, nil
	default:
		return TrialPeriod{}, ErrInvalidTrialUnit
	}
}

// SignupRequest is one checkout submission. Everything the flow needs is
// carried explicitly; nothing is read from ambient request state.
type SignupRequest struct {
	UserID    uuid.UUID
	Email     string
	FirstName string
	LastName  string

	// PaymentToken is the single-use payment-method token produced by the
	// client-side tokenizer. Required.
	PaymentToken string

	SubscriptionID    int    // local subscription level being purchased
	SubscriptionLabel string // human-readable level name, stored on the payment
	SubscriptionKey   string // opaque key tying payment records to this signup

	Recurring bool
	PlanID    string        // processor plan id, required when Recurring
	Amount    payment.Money // charge amount, required when not Recurring
	Trial     *TrialPeriod  // optional, recurring only

	// Risk signals forwarded on customer creation.
	ClientIP  string
	UserAgent string

	// IdempotencyKey guards the charge/subscription call against duplicate
	// submissions. Generated when empty.
	IdempotencyKey string
}

// Redirect is the terminal success result: the caller must redirect the
// browser to URL and stop processing the request.
type Redirect struct {
	URL string
}
