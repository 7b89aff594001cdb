// Package membership holds the per-user membership record, its persistence
// interface, and the account-summary assembly used by the member-facing
// subscription status page.
//
// Membership state is written by pkg/checkout when a payment succeeds and
// read by pkg/restriction when gating content. The predicates on Membership
// (IsPaid, CanRenew, CanCancel) encode the access and self-service rules;
// callers should use them instead of inspecting Status directly.
package membership
