package payment

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a payment record. Payments are created
// complete; refunds are recorded by an administrator after the fact.
type Status string

const (
	StatusComplete Status = "complete"
	StatusRefunded Status = "refunded"
)

// Valid reports whether s is a known payment status.
func (s Status) Valid() bool {
	return s == StatusComplete || s == StatusRefunded
}

// Payment is one completed transaction. Records are append-mostly: they are
// written once by the checkout flow and edited only by explicit admin action.
type Payment struct {
	ID                int64
	UserID            uuid.UUID
	SubscriptionLabel string // human-readable subscription name at purchase time
	SubscriptionKey   string // opaque key tying the payment to a signup attempt
	Amount            Money
	Status            Status
	Date              time.Time
	TransactionID     string // processor's transaction identifier
	PaymentType       string // e.g. "card one-time"
}

// Update carries the admin-editable fields. Nil fields are left unchanged.
type Update struct {
	UserID        *uuid.UUID
	Amount        *Money
	Date          *time.Time
	TransactionID *string
	Status        *Status
}

// Store defines payment persistence. Implementations must return
// ErrPaymentNotFound from Get and Update when the id is unknown.
type Store interface {
	Insert(ctx context.Context, p Payment) (int64, error)
	Get(ctx context.Context, id int64) (*Payment, error)
	Update(ctx context.Context, id int64, u Update) error

	// ListByUser returns a user's payments, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Payment, error)
}
