package procwebhook

import (
	"encoding/json"
	"fmt"
	"time"
)

// Kind identifies the event type carried by a notification.
type Kind string

const (
	// KindCheck is the processor's health-check ping. It is acknowledged
	// with a bare success and applied to nothing.
	KindCheck Kind = "check"

	KindSubscriptionCharged   Kind = "subscription_charged_successfully"
	KindSubscriptionCancelled Kind = "subscription_canceled"
	KindSubscriptionExpired   Kind = "subscription_expired"
)

// Valid reports whether k is a kind this handler understands.
func (k Kind) Valid() bool {
	switch k {
	case KindCheck, KindSubscriptionCharged, KindSubscriptionCancelled, KindSubscriptionExpired:
		return true
	}
	return false
}

// Notification is one parsed processor event.
type Notification struct {
	Kind           Kind       `json:"kind"`
	Timestamp      time.Time  `json:"timestamp"`
	SubscriptionID string     `json:"subscription_id,omitempty"`
	TransactionID  string     `json:"transaction_id,omitempty"`
	NextBillingAt  *time.Time `json:"next_billing_at,omitempty"`
}

// ParseNotification decodes a verified payload into a typed event. Unknown
// kinds are rejected rather than silently acknowledged.
func ParseNotification(payload []byte) (Notification, error) {
	var n Notification
	if err := json.Unmarshal(payload, &n); err != nil {
		return Notification{}, fmt.Errorf("%w: %w", ErrInvalidWebhook, err)
	}
	if !n.Kind.Valid() {
		return Notification{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidWebhook, n.Kind)
	}
	return n, nil
}
