package restriction

import "github.com/google/uuid"

// TermRestriction holds the access constraints configured for a single
// taxonomy term. A zero-value restriction constrains nothing and is treated
// as unrestricted by the resolver.
type TermRestriction struct {
	TermID          int64
	PaidOnly        bool  // restricted to any paid (non-free) membership
	SubscriptionIDs []int // restricted to specific subscription levels
	AccessLevel     int   // minimum access level, 0 = none
}

// Constrained reports whether the restriction carries at least one
// non-empty constraint. Unconstrained terms are skipped during resolution.
func (t TermRestriction) Constrained() bool {
	return t.PaidOnly || len(t.SubscriptionIDs) > 0 || t.AccessLevel > 0
}

// indicatesPaid reports whether this restriction marks the content as paid,
// used to pick the teaser message. Access-level-only restrictions are not
// considered paid content.
func (t TermRestriction) indicatesPaid() bool {
	return t.PaidOnly || len(t.SubscriptionIDs) > 0
}

// ContentItem describes the content being rendered, as seen by the resolver.
// It is immutable here; the content-authoring system owns it.
type ContentItem struct {
	ID          int64
	Taxonomies  []string // taxonomies this item participates in
	PaidOnly    bool     // item-level "paid content" flag
	ShowExcerpt bool     // item-level excerpt-display flag
}

// Viewer is the requesting identity. Membership attributes are passed
// explicitly rather than read from ambient request state.
type Viewer struct {
	ID             uuid.UUID
	SubscriptionID int
	AccessLevel    int
	Paid           bool // holds any paid (non-free) membership
}

// Reason selects which teaser message to show when access is denied.
type Reason string

const (
	// ReasonNone means access was granted and no teaser is needed.
	ReasonNone Reason = ""
	// ReasonPaid means the content is gated behind a paid membership.
	ReasonPaid Reason = "paid"
	// ReasonFree means the content is restricted but not marked as paid,
	// e.g. gated only by an access level.
	ReasonFree Reason = "free"
)

// Decision is the outcome of resolving access for one viewer/item pair.
type Decision struct {
	Granted bool
	Reason  Reason
}

// Policy controls how per-term results are aggregated when an item is
// covered by more than one constrained term.
type Policy string

const (
	// PolicyAnyGrants denies only if all evaluated terms deny. This is the
	// default: any covering term that grants access is enough.
	PolicyAnyGrants Policy = "any_grants"
	// PolicyAllMustGrant denies if any evaluated term denies.
	PolicyAllMustGrant Policy = "all_must_grant"
)
