package membership

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Store defines membership persistence. Implementations must return
// ErrMembershipNotFound when the user has no membership record.
type Store interface {
	Get(ctx context.Context, userID uuid.UUID) (*Membership, error)

	// GetByRemoteSubscription finds the membership linked to a processor
	// subscription id, used when applying webhook events.
	GetByRemoteSubscription(ctx context.Context, remoteID string) (*Membership, error)

	SetStatus(ctx context.Context, userID uuid.UUID, status Status) error

	// Renew sets the status and the expiration/renewal date in one write.
	Renew(ctx context.Context, userID uuid.UUID, status Status, until time.Time) error

	// LinkRemoteSubscription records the processor's subscription id and
	// marks the membership as recurring.
	LinkRemoteSubscription(ctx context.Context, userID uuid.UUID, remoteID string) error
}
