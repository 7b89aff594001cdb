package billing

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrymomot/membergate/pkg/checkout"
	"github.com/dmitrymomot/membergate/pkg/membership"
	"github.com/dmitrymomot/membergate/pkg/payment"
)

// UserResolver extracts the authenticated user from a request. The host
// application owns authentication; this module only consumes its result.
type UserResolver func(r *http.Request) (uuid.UUID, error)

// RouterOptions configures which services to mount in the billing module.
// Each service is optional and only mounted when provided.
type RouterOptions struct {
	Webhook  http.Handler // processor webhook endpoint (see pkg/procwebhook)
	Checkout *checkout.Service
	Editor   *payment.Editor
	Account  *membership.AccountService

	// Resolve is required for the checkout and account routes.
	Resolve UserResolver

	// Currency is the ISO 4217 code applied to submitted amounts.
	// Defaults to USD.
	Currency string

	Log *slog.Logger
}

// Router creates the billing module router.
//
// Example:
//
//	r := chi.NewRouter()
//	r.Mount("/billing", billing.Router(billing.RouterOptions{
//		Webhook:  webhookHandler,
//		Checkout: checkoutSvc,
//		Editor:   paymentEditor,
//		Account:  accountSvc,
//		Resolve:  sessionUser,
//	}))
func Router(opts RouterOptions) chi.Router {
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}
	currency := opts.Currency
	if currency == "" {
		currency = "USD"
	}

	r := chi.NewRouter()

	if opts.Webhook != nil {
		// GET serves the challenge handshake, POST the signed notifications.
		r.Method(http.MethodGet, "/webhooks/processor", opts.Webhook)
		r.Method(http.MethodPost, "/webhooks/processor", opts.Webhook)
	}

	if opts.Checkout != nil && opts.Resolve != nil {
		r.Post("/checkout", handleCheckout(opts.Checkout, opts.Resolve, currency, log))
		r.Get("/checkout/token", handleClientToken(opts.Checkout, log))
	}

	if opts.Editor != nil {
		r.Post("/admin/payments/{paymentID}", handleEditPayment(opts.Editor, log))
	}

	if opts.Account != nil && opts.Resolve != nil {
		r.Get("/account", handleAccount(opts.Account, opts.Resolve, log))
	}

	return r
}
