// Package procwebhook terminates asynchronous notifications from the
// payment processor.
//
// Two entry modes share one endpoint. A challenge request (identified by
// the challenge query parameter) is answered with the computed verification
// value and has no other side effects. Everything else is treated as a
// signed notification: the HMAC-SHA256 signature over "timestamp.payload"
// is verified with a constant-time compare and a replay window, the payload
// is parsed into a typed Notification, and the request terminates with 200
// for recognized kinds or 400 for anything malformed.
//
// Health-check events ("check") are acknowledged and nothing more.
// Subscription lifecycle events can mutate local membership state through
// the optional Applier; without one the handler only acknowledges, which
// keeps webhook ingestion decoupled from business effects.
//
// Usage:
//
//	handler := procwebhook.NewHandler(publicKey, secret,
//		procwebhook.WithApplier(procwebhook.NewMembershipApplier(members)),
//	)
//	mux.Handle("/webhooks/processor", handler)
package procwebhook
