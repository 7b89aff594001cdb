// Package restriction decides whether a viewer may see a content item,
// based on per-taxonomy-term restriction rules and an item-level
// paid-content flag.
//
// A term restriction can constrain access three ways: paid-only (any paid
// membership suffices), a set of allowed subscription levels, or a minimum
// access level. A term with none of these is unrestricted and ignored.
// For each constrained term the checks run in that order and short-circuit
// on the first one that grants access.
//
// When an item is covered by several constrained terms, the per-term
// results are aggregated with a configurable Policy. The default,
// PolicyAnyGrants, denies only if every term denies; PolicyAllMustGrant
// denies as soon as one term does.
//
// # Usage
//
//	store := restriction.NewMemoryStore()
//	store.SetRestriction(restriction.TermRestriction{TermID: 10, AccessLevel: 2})
//	store.AttachTerms(55, "category", 10)
//
//	resolver := restriction.NewResolver(store,
//		restriction.WithPolicy(restriction.PolicyAnyGrants),
//		restriction.WithEditorCheck(isEditor),
//	)
//
//	d := resolver.ResolveAccess(ctx, viewer, item)
//	if !d.Granted {
//		// show a teaser instead of the content, see pkg/teaser
//	}
//
// # Failure behavior
//
// Restriction lookups are fail-open: a term whose metadata is missing or
// unreadable is treated as unrestricted and the failure is logged. The
// resolver never returns an error to the render path.
package restriction
