// Package payment defines the payment record model, its persistence
// interface, and the administrator edit operation.
//
// Payments are written once by pkg/checkout when a charge succeeds and are
// afterwards immutable except through Editor, which validates and applies
// explicit admin corrections (user, amount, date, transaction id, status).
// Amounts are stored in the smallest currency unit; see Money.
package payment
