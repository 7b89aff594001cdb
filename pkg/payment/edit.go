package payment

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// UserDirectory resolves an admin-entered user login to a user ID.
type UserDirectory interface {
	ResolveLogin(ctx context.Context, login string) (uuid.UUID, error)
}

// EditRequest is the admin edit-payment form, pre-binding. All values
// arrive as strings and are validated here, not at the HTTP layer.
type EditRequest struct {
	PaymentID     int64
	UserLogin     string // login of the user this payment belongs to
	Amount        string // decimal with two fraction digits, e.g. "19.99"
	Date          string // ISO date, e.g. "2026-08-30"
	TransactionID string // may be empty
	Status        string // "complete" or "refunded"
}

// Editor applies administrator corrections to existing payment records.
type Editor struct {
	payments Store
	users    UserDirectory
	currency string
}

// NewEditor creates an Editor. Panics if either dependency is nil to fail
// fast during initialization.
func NewEditor(payments Store, users UserDirectory, currency string) *Editor {
	if payments == nil {
		panic("payment: Store is required")
	}
	if users == nil {
		panic("payment: UserDirectory is required")
	}
	if currency == "" {
		currency = "USD"
	}
	return &Editor{payments: payments, users: users, currency: currency}
}

// Edit validates the request and persists the correction. Nothing is
// written unless every field validates. Returns the updated record.
func (e *Editor) Edit(ctx context.Context, req EditRequest) (*Payment, error) {
	userID, err := e.users.ResolveLogin(ctx, strings.TrimSpace(req.UserLogin))
	if err != nil {
		return nil, errors.Join(ErrUnknownUser, err)
	}

	amount, err := ParseAmount(req.Amount, e.currency)
	if err != nil {
		return nil, err
	}

	date, err := time.Parse("2006-01-02", strings.TrimSpace(req.Date))
	if err != nil {
		return nil, errors.Join(ErrInvalidDate, err)
	}

	status := Status(strings.TrimSpace(req.Status))
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	txID := strings.TrimSpace(req.TransactionID)
	update := Update{
		UserID:        &userID,
		Amount:        &amount,
		Date:          &date,
		TransactionID: &txID,
		Status:        &status,
	}

	if err := e.payments.Update(ctx, req.PaymentID, update); err != nil {
		return nil, err
	}

	return e.payments.Get(ctx, req.PaymentID)
}
