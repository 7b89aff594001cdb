package procwebhook

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrymomot/membergate/pkg/membership"
)

// MembershipApplier maps subscription lifecycle events onto the local
// membership record linked to the remote subscription id.
type MembershipApplier struct {
	members membership.Store
}

// NewMembershipApplier creates the default Applier. Panics on a nil store.
func NewMembershipApplier(members membership.Store) *MembershipApplier {
	if members == nil {
		panic("procwebhook: membership.Store is required")
	}
	return &MembershipApplier{members: members}
}

// Apply updates membership state for subscription events. An event for a
// subscription with no local membership is reported as an error so the
// handler can log the mismatch; the webhook is still acknowledged.
func (a *MembershipApplier) Apply(ctx context.Context, n Notification) error {
	if n.SubscriptionID == "" {
		return fmt.Errorf("%w: notification has no subscription id", ErrInvalidWebhook)
	}

	m, err := a.members.GetByRemoteSubscription(ctx, n.SubscriptionID)
	if err != nil {
		if errors.Is(err, membership.ErrMembershipNotFound) {
			return fmt.Errorf("no membership for subscription %s: %w", n.SubscriptionID, err)
		}
		return err
	}

	switch n.Kind {
	case KindSubscriptionCharged:
		if n.NextBillingAt == nil {
			return a.members.SetStatus(ctx, m.UserID, membership.StatusActive)
		}
		return a.members.Renew(ctx, m.UserID, membership.StatusActive, *n.NextBillingAt)
	case KindSubscriptionCancelled:
		return a.members.SetStatus(ctx, m.UserID, membership.StatusCancelled)
	case KindSubscriptionExpired:
		return a.members.SetStatus(ctx, m.UserID, membership.StatusExpired)
	default:
		return nil
	}
}
