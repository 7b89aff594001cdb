package checkout

import (
	"context"
	"time"

	"github.com/dmitrymomot/membergate/pkg/payment"
)

// Customer is the processor-side customer record.
type Customer struct {
	ID                 string // processor's customer id
	Email              string
	PaymentMethodToken string // stored payment method usable for subscriptions
}

// CustomerLookup is the typed result of a customer search. Not finding a
// customer is an expected branch, not an error.
type CustomerLookup struct {
	Found    bool
	Customer Customer
}

// NewCustomer carries the data forwarded when creating a processor
// customer: minimal PII plus risk signals and the payment token.
type NewCustomer struct {
	LocalID      string // local user id, used as the processor-side lookup key
	FirstName    string
	LastName     string
	Email        string
	PaymentToken string
	ClientIP     string
	UserAgent    string
}

// SubscriptionParams configures a remote recurring subscription.
type SubscriptionParams struct {
	Customer       Customer
	PlanID         string
	Trial          *TrialPeriod // already normalized to processor units
	IdempotencyKey string
}

// RemoteSubscription is the processor's view of a created subscription.
type RemoteSubscription struct {
	ID        string
	PeriodEnd time.Time // end of the first billing period
}

// SaleParams configures a one-time charge with immediate settlement.
type SaleParams struct {
	Customer       Customer
	PaymentToken   string
	Amount         payment.Money
	Description    string // line-item description shown on the invoice
	IdempotencyKey string
}

// Charge is the processor's view of a completed one-time transaction.
// Amount and CreatedAt reflect what the processor settled, not what the
// caller requested.
type Charge struct {
	TransactionID string
	Amount        payment.Money
	CreatedAt     time.Time
}

// PaymentProcessor is the capability interface over the remote payment
// processor. Implementations wrap the provider SDK and surface its failures
// as plain errors; the Service maps those to terminal signup failures.
type PaymentProcessor interface {
	// FindCustomer looks up a processor customer keyed by local user id.
	// Absence is reported through the lookup result, not an error.
	FindCustomer(ctx context.Context, localID string) (CustomerLookup, error)

	CreateCustomer(ctx context.Context, c NewCustomer) (Customer, error)

	CreateSubscription(ctx context.Context, p SubscriptionParams) (*RemoteSubscription, error)

	// Sale creates a one-time charge with immediate settlement requested.
	Sale(ctx context.Context, p SaleParams) (*Charge, error)

	// GenerateClientToken returns a token for the client-side tokenizer.
	GenerateClientToken(ctx context.Context) (string, error)
}
