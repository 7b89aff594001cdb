package restriction

import "context"

// Store defines how the resolver reads restriction rules. Implementations
// may be database-backed (see pkg/pgstore), cached (see pkg/termcache), or
// static (MemoryStore).
type Store interface {
	// GetTermsFor returns the IDs of the taxonomy terms attached to a
	// content item within one taxonomy. An empty slice means the item has
	// no terms in that taxonomy.
	GetTermsFor(ctx context.Context, contentID int64, taxonomy string) ([]int64, error)

	// GetTermRestriction returns the restriction record for a term.
	// Returns ErrTermNotFound if the term has no restriction configured.
	GetTermRestriction(ctx context.Context, termID int64) (*TermRestriction, error)
}

// MemoryStore is an in-memory Store, used in tests and as the target of the
// YAML restriction source. It is safe for concurrent reads after construction.
type MemoryStore struct {
	restrictions map[int64]TermRestriction
	terms        map[int64]map[string][]int64 // content ID -> taxonomy -> term IDs
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		restrictions: make(map[int64]TermRestriction),
		terms:        make(map[int64]map[string][]int64),
	}
}

// SetRestriction registers or replaces the restriction for a term.
func (s *MemoryStore) SetRestriction(r TermRestriction) {
	s.restrictions[r.TermID] = r
}

// AttachTerms assigns taxonomy terms to a content item, replacing any
// previous assignment for that taxonomy.
func (s *MemoryStore) AttachTerms(contentID int64, taxonomy string, termIDs ...int64) {
	if s.terms[contentID] == nil {
		s.terms[contentID] = make(map[string][]int64)
	}
	s.terms[contentID][taxonomy] = termIDs
}

func (s *MemoryStore) GetTermsFor(_ context.Context, contentID int64, taxonomy string) ([]int64, error) {
	byTaxonomy, ok := s.terms[contentID]
	if !ok {
		return nil, nil
	}
	return byTaxonomy[taxonomy], nil
}

func (s *MemoryStore) GetTermRestriction(_ context.Context, termID int64) (*TermRestriction, error) {
	r, ok := s.restrictions[termID]
	if !ok {
		return nil, ErrTermNotFound
	}
	return &r, nil
}
