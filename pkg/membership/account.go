package membership

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/membergate/pkg/payment"
)

// Action is an account operation currently available to the member.
type Action string

const (
	ActionRenew   Action = "renew"
	ActionUpgrade Action = "upgrade"
	ActionCancel  Action = "cancel"
)

// DateKind says how the membership date should be labelled: recurring
// memberships show a renewal date, everything else an expiration date.
type DateKind string

const (
	DateRenewal    DateKind = "renewal"
	DateExpiration DateKind = "expiration"
)

// AccountSummary is the data behind a member's subscription-status page.
type AccountSummary struct {
	Status       Status
	Subscription string
	DateKind     DateKind
	Date         *time.Time
	Actions      []Action
	Payments     []payment.Payment
}

// AccountService assembles account summaries from the membership and
// payment stores.
type AccountService struct {
	members  Store
	payments payment.Store
}

// NewAccountService creates an AccountService. Panics on nil dependencies.
func NewAccountService(members Store, payments payment.Store) *AccountService {
	if members == nil {
		panic("membership: Store is required")
	}
	if payments == nil {
		panic("membership: payment.Store is required")
	}
	return &AccountService{members: members, payments: payments}
}

// Summary returns the member's current status, dates, available actions,
// and payment history.
func (s *AccountService) Summary(ctx context.Context, userID uuid.UUID) (*AccountSummary, error) {
	m, err := s.members.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := &AccountSummary{
		Status:       m.Status,
		Subscription: m.SubscriptionLabel,
		Date:         m.ExpiresAt,
		DateKind:     DateExpiration,
	}

	if m.Recurring && !m.IsExpired() {
		summary.DateKind = DateRenewal
	}

	if m.CanRenew() {
		summary.Actions = append(summary.Actions, ActionRenew)
	}
	// Upgrades go through the registration flow; any non-lapsed member may
	// switch levels there.
	if !m.IsExpired() && m.Status != StatusFree {
		summary.Actions = append(summary.Actions, ActionUpgrade)
	}
	if m.CanCancel() {
		summary.Actions = append(summary.Actions, ActionCancel)
	}

	history, err := s.payments.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	summary.Payments = history

	return summary, nil
}
