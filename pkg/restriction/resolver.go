package restriction

import (
	"context"
	"log/slog"
	"slices"
)

// EditorCheckFunc reports whether the viewer has edit rights on a content
// item. Editors and owners bypass all restrictions.
type EditorCheckFunc func(ctx context.Context, viewer Viewer, item ContentItem) bool

// DecisionHook can veto or amend a decision after the built-in evaluation.
// Hooks run in registration order, each receiving the previous outcome.
type DecisionHook func(ctx context.Context, viewer Viewer, item ContentItem, d Decision) Decision

// Resolver decides whether a viewer may see a content item, based on
// per-term restrictions and the item-level paid-content flag.
type Resolver struct {
	store       Store
	log         *slog.Logger
	policy      Policy
	editorCheck EditorCheckFunc
	hooks       []DecisionHook
}

// NewResolver creates a Resolver backed by the given restriction store.
// Panics if store is nil to fail fast during initialization.
func NewResolver(store Store, opts ...ResolverOption) *Resolver {
	if store == nil {
		panic("restriction: Store is required")
	}

	r := &Resolver{
		store:  store,
		log:    slog.Default(),
		policy: PolicyAnyGrants,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// ResolveAccess evaluates whether the viewer may see the item.
//
// Evaluation order:
//  1. Editor bypass, if an editor check is configured.
//  2. Constrained taxonomy terms, aggregated per the configured Policy.
//  3. The item-level paid-content flag, when no constrained terms exist.
//
// Missing or malformed term metadata never denies access: the affected term
// is treated as unrestricted and the lookup failure is logged. This keeps a
// broken restriction record from locking paying members out of content.
func (r *Resolver) ResolveAccess(ctx context.Context, viewer Viewer, item ContentItem) Decision {
	d := r.resolve(ctx, viewer, item)

	for _, hook := range r.hooks {
		d = hook(ctx, viewer, item, d)
	}

	return d
}

func (r *Resolver) resolve(ctx context.Context, viewer Viewer, item ContentItem) Decision {
	if r.editorCheck != nil && r.editorCheck(ctx, viewer, item) {
		return Decision{Granted: true, Reason: ReasonNone}
	}

	constrained := r.constrainedTerms(ctx, item)

	if len(constrained) == 0 {
		if item.PaidOnly {
			if viewer.Paid {
				return Decision{Granted: true, Reason: ReasonNone}
			}
			return Decision{Granted: false, Reason: ReasonPaid}
		}
		return Decision{Granted: true, Reason: ReasonNone}
	}

	granted := 0
	for _, term := range constrained {
		if termGrants(term, viewer) {
			granted++
		}
	}

	var allowed bool
	switch r.policy {
	case PolicyAllMustGrant:
		allowed = granted == len(constrained)
	default: // PolicyAnyGrants
		allowed = granted > 0
	}

	if allowed {
		return Decision{Granted: true, Reason: ReasonNone}
	}

	return Decision{Granted: false, Reason: denialReason(item, constrained)}
}

// constrainedTerms collects the restrictions of every term attached to the
// item that carries at least one constraint. Lookup failures are fail-open:
// the term is skipped.
func (r *Resolver) constrainedTerms(ctx context.Context, item ContentItem) []TermRestriction {
	var constrained []TermRestriction

	for _, taxonomy := range item.Taxonomies {
		termIDs, err := r.store.GetTermsFor(ctx, item.ID, taxonomy)
		if err != nil {
			r.log.WarnContext(ctx, "term lookup failed, treating taxonomy as unrestricted",
				slog.Int64("content_id", item.ID),
				slog.String("taxonomy", taxonomy),
				slog.Any("error", err))
			continue
		}

		for _, termID := range termIDs {
			restriction, err := r.store.GetTermRestriction(ctx, termID)
			if err != nil {
				if !errorsIsNotFound(err) {
					r.log.WarnContext(ctx, "restriction lookup failed, treating term as unrestricted",
						slog.Int64("term_id", termID),
						slog.Any("error", err))
				}
				continue
			}
			if restriction == nil || !restriction.Constrained() {
				continue
			}
			constrained = append(constrained, *restriction)
		}
	}

	return constrained
}

// termGrants evaluates one constrained term against the viewer, checking the
// present constraints in order and short-circuiting on the first success.
func termGrants(term TermRestriction, viewer Viewer) bool {
	if term.PaidOnly && viewer.Paid {
		return true
	}

	if len(term.SubscriptionIDs) > 0 && slices.Contains(term.SubscriptionIDs, viewer.SubscriptionID) {
		return true
	}

	if term.AccessLevel > 0 && viewer.AccessLevel >= term.AccessLevel {
		return true
	}

	return false
}

// denialReason maps a denial to the teaser message kind: paid when the item
// or any covering term marks the content as paid, free otherwise.
func denialReason(item ContentItem, terms []TermRestriction) Reason {
	if item.PaidOnly {
		return ReasonPaid
	}
	for _, term := range terms {
		if term.indicatesPaid() {
			return ReasonPaid
		}
	}
	return ReasonFree
}
