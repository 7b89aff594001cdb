// Package checkout runs paid signups against a remote payment processor.
//
// The flow is a linear state machine with no retries and no partial
// commits:
//
//	validate payment token
//	locate or create the processor customer (keyed by local user id)
//	create a subscription (recurring) or a one-time sale
//	record the payment and update the membership
//	redirect
//
// A missing payment token short-circuits the whole flow before any remote
// call. Processor failures surface as ErrPaymentProcessor and leave local
// state untouched; persistence failures after a successful charge surface
// as ErrRecordPayment so they can be reconciled.
//
// The Service depends only on the PaymentProcessor interface. The Paddle
// implementation lives in this package; tests use in-memory fakes.
//
// Usage:
//
//	processor, err := checkout.NewPaddleProcessor(cfg, refs)
//	if err != nil {
//		return err
//	}
//
//	svc := checkout.NewService(processor, payments, members,
//		checkout.WithReturnURL("/account"),
//	)
//
//	redirect, err := svc.ProcessSignup(ctx, req)
//	if err != nil {
//		// render the error on the signup form
//	}
//	http.Redirect(w, r, redirect.URL, http.StatusSeeOther)
package checkout
