package pgstore

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/membergate/pkg/restriction"
)

// RestrictionStore implements restriction.Store on PostgreSQL.
type RestrictionStore struct {
	db *pgxpool.Pool
}

// NewRestrictionStore creates a PostgreSQL-backed restriction store. Panics
// on a nil pool to fail fast during initialization.
func NewRestrictionStore(db *pgxpool.Pool) *RestrictionStore {
	if db == nil {
		panic("pgstore: pgxpool.Pool is required")
	}
	return &RestrictionStore{db: db}
}

func (s *RestrictionStore) GetTermsFor(ctx context.Context, contentID int64, taxonomy string) ([]int64, error) {
	rows, err := s.db.Query(ctx,
		`SELECT term_id FROM content_terms WHERE content_id = $1 AND taxonomy = $2 ORDER BY term_id`,
		contentID, taxonomy)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var termIDs []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		termIDs = append(termIDs, id)
	}
	return termIDs, rows.Err()
}

func (s *RestrictionStore) GetTermRestriction(ctx context.Context, termID int64) (*restriction.TermRestriction, error) {
	var r restriction.TermRestriction
	var subscriptionIDs []int32
	err := s.db.QueryRow(ctx,
		`SELECT term_id, paid_only, subscription_ids, access_level FROM term_restrictions WHERE term_id = $1`,
		termID).Scan(&r.TermID, &r.PaidOnly, &subscriptionIDs, &r.AccessLevel)
	if err != nil {
		if IsNotFoundError(err) {
			return nil, restriction.ErrTermNotFound
		}
		return nil, err
	}

	for _, id := range subscriptionIDs {
		r.SubscriptionIDs = append(r.SubscriptionIDs, int(id))
	}
	return &r, nil
}
