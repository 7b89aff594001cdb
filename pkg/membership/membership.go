package membership

import (
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a user's membership.
type Status string

const (
	StatusActive    Status = "active"
	StatusExpired   Status = "expired"
	StatusCancelled Status = "cancelled"
	StatusFree      Status = "free"
)

// Valid reports whether s is a known membership status.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusExpired, StatusCancelled, StatusFree:
		return true
	}
	return false
}

// Membership is a user's subscription state. It is mutated by the checkout
// flow on payment and by the renewal/expiration process outside this module.
type Membership struct {
	UserID               uuid.UUID
	SubscriptionID       int    // local subscription level, 0 = none
	SubscriptionLabel    string // human-readable level name
	AccessLevel          int
	Status               Status
	ExpiresAt            *time.Time // nil = no expiration recorded
	Recurring            bool       // auto-renews at the processor
	RemoteSubscriptionID string     // processor's subscription id, empty for non-recurring
}

// IsActive reports whether the membership status is active.
func (m *Membership) IsActive() bool {
	return m.Status == StatusActive
}

// IsExpired reports whether the membership has lapsed, either by status or
// by a passed expiration date.
func (m *Membership) IsExpired() bool {
	if m.Status == StatusExpired {
		return true
	}
	return m.ExpiresAt != nil && time.Now().UTC().After(*m.ExpiresAt)
}

// IsPaid reports whether the user currently holds a paid (non-free)
// membership. Cancelled members keep paid access until their period ends.
func (m *Membership) IsPaid() bool {
	if m.SubscriptionID == 0 || m.Status == StatusFree {
		return false
	}
	switch m.Status {
	case StatusActive:
		return !m.IsExpired()
	case StatusCancelled:
		return !m.IsExpired()
	}
	return false
}

// CanRenew reports whether offering a renewal makes sense: recurring
// memberships renew themselves unless they have lapsed.
func (m *Membership) CanRenew() bool {
	if m.Status == StatusFree {
		return false
	}
	return !m.Recurring || m.IsExpired()
}

// CanCancel reports whether there is a remote subscription to cancel.
func (m *Membership) CanCancel() bool {
	return m.IsActive() && m.Recurring && m.RemoteSubscriptionID != ""
}
