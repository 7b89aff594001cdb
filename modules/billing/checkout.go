package billing

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dmitrymomot/membergate/pkg/checkout"
	"github.com/dmitrymomot/membergate/pkg/clientip"
	"github.com/dmitrymomot/membergate/pkg/payment"
)

// handleCheckout binds the signup form and runs the checkout flow. Success
// terminates with a redirect; precondition failures are 400s and processor
// failures 502s, never partial commits.
func handleCheckout(svc *checkout.Service, resolve UserResolver, currency string, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := resolve(r)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		if err := r.ParseForm(); err != nil {
			respondError(w, http.StatusBadRequest, "malformed form data")
			return
		}

		req := checkout.SignupRequest{
			UserID:            userID,
			Email:             r.PostFormValue("email"),
			FirstName:         r.PostFormValue("first_name"),
			LastName:          r.PostFormValue("last_name"),
			PaymentToken:      r.PostFormValue("payment_method_token"),
			SubscriptionLabel: r.PostFormValue("subscription_label"),
			SubscriptionKey:   r.PostFormValue("subscription_key"),
			PlanID:            r.PostFormValue("plan_id"),
			ClientIP:          clientip.GetIP(r),
			UserAgent:         r.UserAgent(),
		}

		if v := r.PostFormValue("subscription_id"); v != "" {
			id, err := strconv.Atoi(v)
			if err != nil {
				respondError(w, http.StatusBadRequest, "invalid subscription id")
				return
			}
			req.SubscriptionID = id
		}

		req.Recurring = r.PostFormValue("recurring") == "1" || r.PostFormValue("recurring") == "true"

		if v := r.PostFormValue("amount"); v != "" {
			amount, err := payment.ParseAmount(v, currency)
			if err != nil {
				respondError(w, http.StatusBadRequest, "invalid amount")
				return
			}
			req.Amount = amount
		}

		if d := r.PostFormValue("trial_duration"); d != "" {
			duration, err := strconv.Atoi(d)
			if err != nil || duration <= 0 {
				respondError(w, http.StatusBadRequest, "invalid trial duration")
				return
			}
			req.Trial = &checkout.TrialPeriod{
				Duration: duration,
				Unit:     checkout.TrialUnit(r.PostFormValue("trial_unit")),
			}
		}

		redirect, err := svc.ProcessSignup(r.Context(), req)
		switch {
		case err == nil:
			http.Redirect(w, r, redirect.URL, http.StatusSeeOther)
		case errors.Is(err, checkout.ErrMissingPaymentToken),
			errors.Is(err, checkout.ErrMissingPlanID),
			errors.Is(err, checkout.ErrMissingAmount),
			errors.Is(err, checkout.ErrInvalidTrialUnit):
			respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, checkout.ErrPaymentProcessor):
			respondError(w, http.StatusBadGateway, "payment could not be processed")
		default:
			log.ErrorContext(r.Context(), "checkout failed",
				slog.String("user_id", userID.String()), slog.Any("error", err))
			respondError(w, http.StatusInternalServerError, "internal error")
		}
	}
}

// handleClientToken serves the token for the client-side card tokenizer.
func handleClientToken(svc *checkout.Service, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := svc.ClientToken(r.Context())
		if err != nil {
			log.ErrorContext(r.Context(), "client token generation failed", slog.Any("error", err))
			respondError(w, http.StatusBadGateway, "payment processor unavailable")
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"token": token})
	}
}
