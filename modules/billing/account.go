package billing

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/membergate/pkg/membership"
)

// handleAccount serves the member's subscription summary.
func handleAccount(svc *membership.AccountService, resolve UserResolver, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := resolve(r)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		summary, err := svc.Summary(r.Context(), userID)
		switch {
		case err == nil:
			respondJSON(w, http.StatusOK, summary)
		case errors.Is(err, membership.ErrMembershipNotFound):
			respondError(w, http.StatusNotFound, "no membership")
		default:
			log.ErrorContext(r.Context(), "account summary failed",
				slog.String("user_id", userID.String()), slog.Any("error", err))
			respondError(w, http.StatusInternalServerError, "internal error")
		}
	}
}
