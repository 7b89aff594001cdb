package billing

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/membergate/pkg/payment"
)

// handleEditPayment applies an administrator correction to a payment
// record. Field validation lives in payment.Editor; this handler only
// binds the form and maps errors to status codes.
func handleEditPayment(editor *payment.Editor, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		paymentID, err := strconv.ParseInt(chi.URLParam(r, "paymentID"), 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid payment id")
			return
		}

		if err := r.ParseForm(); err != nil {
			respondError(w, http.StatusBadRequest, "malformed form data")
			return
		}

		updated, err := editor.Edit(r.Context(), payment.EditRequest{
			PaymentID:     paymentID,
			UserLogin:     r.PostFormValue("user_login"),
			Amount:        r.PostFormValue("amount"),
			Date:          r.PostFormValue("date"),
			TransactionID: r.PostFormValue("transaction_id"),
			Status:        r.PostFormValue("status"),
		})
		switch {
		case err == nil:
			respondJSON(w, http.StatusOK, paymentResponse(updated))
		case errors.Is(err, payment.ErrUnknownUser),
			errors.Is(err, payment.ErrInvalidAmount),
			errors.Is(err, payment.ErrInvalidDate),
			errors.Is(err, payment.ErrInvalidStatus):
			respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, payment.ErrPaymentNotFound):
			respondError(w, http.StatusNotFound, "payment not found")
		default:
			log.ErrorContext(r.Context(), "payment edit failed",
				slog.Int64("payment_id", paymentID), slog.Any("error", err))
			respondError(w, http.StatusInternalServerError, "internal error")
		}
	}
}

func paymentResponse(p *payment.Payment) map[string]any {
	return map[string]any{
		"id":             p.ID,
		"user_id":        p.UserID,
		"amount":         p.Amount.String(),
		"currency":       p.Amount.Currency,
		"status":         p.Status,
		"date":           p.Date,
		"transaction_id": p.TransactionID,
	}
}
