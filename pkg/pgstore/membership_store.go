package pgstore

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/membergate/pkg/membership"
)

// MembershipStore implements membership.Store on PostgreSQL.
type MembershipStore struct {
	db *pgxpool.Pool
}

// NewMembershipStore creates a PostgreSQL-backed membership store. Panics
// on a nil pool to fail fast during initialization.
func NewMembershipStore(db *pgxpool.Pool) *MembershipStore {
	if db == nil {
		panic("pgstore: pgxpool.Pool is required")
	}
	return &MembershipStore{db: db}
}

const membershipColumns = `user_id, subscription_id, subscription_label, access_level, status, expires_at, recurring, remote_subscription_id`

func (s *MembershipStore) Get(ctx context.Context, userID uuid.UUID) (*membership.Membership, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+membershipColumns+` FROM memberships WHERE user_id = $1`, userID)
	return scanMembership(row)
}

func (s *MembershipStore) GetByRemoteSubscription(ctx context.Context, remoteID string) (*membership.Membership, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+membershipColumns+` FROM memberships WHERE remote_subscription_id = $1`, remoteID)
	return scanMembership(row)
}

func (s *MembershipStore) SetStatus(ctx context.Context, userID uuid.UUID, status membership.Status) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE memberships SET status = $2, updated_at = now() WHERE user_id = $1`,
		userID, string(status))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return membership.ErrMembershipNotFound
	}
	return nil
}

func (s *MembershipStore) Renew(ctx context.Context, userID uuid.UUID, status membership.Status, until time.Time) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE memberships SET status = $2, expires_at = $3, updated_at = now() WHERE user_id = $1`,
		userID, string(status), until)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return membership.ErrMembershipNotFound
	}
	return nil
}

func (s *MembershipStore) LinkRemoteSubscription(ctx context.Context, userID uuid.UUID, remoteID string) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE memberships SET remote_subscription_id = $2, recurring = true, updated_at = now() WHERE user_id = $1`,
		userID, remoteID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return membership.ErrMembershipNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMembership(row rowScanner) (*membership.Membership, error) {
	var m membership.Membership
	var status string
	err := row.Scan(
		&m.UserID,
		&m.SubscriptionID,
		&m.SubscriptionLabel,
		&m.AccessLevel,
		&status,
		&m.ExpiresAt,
		&m.Recurring,
		&m.RemoteSubscriptionID,
	)
	if err != nil {
		if IsNotFoundError(err) {
			return nil, membership.ErrMembershipNotFound
		}
		return nil, err
	}
	m.Status = membership.Status(status)
	return &m, nil
}
