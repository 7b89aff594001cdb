package procwebhook

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// maxBodySize caps notification payloads. Processor events are small JSON
// documents; anything larger is hostile.
const maxBodySize = 1 << 20

// Applier receives verified non-check notifications and applies their
// business effects. Apply failures are logged and acknowledged anyway so
// the processor does not retry events the local side cannot handle.
type Applier interface {
	Apply(ctx context.Context, n Notification) error
}

// Handler terminates processor webhook requests. Two independent modes:
// a challenge handshake echoed back verbatim, and signed notifications
// verified, parsed, and optionally applied. Each call is stateless.
type Handler struct {
	publicKey string
	secret    string
	maxAge    time.Duration
	applier   Applier
	log       *slog.Logger
}

// NewHandler creates a webhook handler. Panics if secret is empty to fail
// fast during initialization; publicKey participates only in the challenge
// handshake and may be empty when the processor does not use one.
func NewHandler(publicKey, secret string, opts ...HandlerOption) *Handler {
	if secret == "" {
		panic("procwebhook: signing secret is required")
	}

	h := &Handler{
		publicKey: publicKey,
		secret:    secret,
		maxAge:    5 * time.Minute,
		log:       slog.Default(),
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// ServeHTTP implements http.Handler.
//
// A request carrying a challenge query parameter gets the computed
// verification value and nothing else happens. Otherwise the body is
// treated as a signed notification: verification or parse failure is a 400,
// a health-check kind is a bare 200, and every other recognized kind is
// acknowledged with 200 after the applier (when configured) has seen it.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if challenge := r.URL.Query().Get("challenge"); challenge != "" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, Verification(h.publicKey, h.secret, challenge))
		return
	}

	payload, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil || len(payload) == 0 {
		h.reject(w, r, errors.Join(ErrInvalidWebhook, err))
		return
	}

	if err := verifySignature(h.secret, payload, r.Header, h.maxAge); err != nil {
		h.reject(w, r, errors.Join(ErrInvalidWebhook, err))
		return
	}

	n, err := ParseNotification(payload)
	if err != nil {
		h.reject(w, r, err)
		return
	}

	if n.Kind == KindCheck {
		w.WriteHeader(http.StatusOK)
		return
	}

	if h.applier != nil {
		if err := h.applier.Apply(r.Context(), n); err != nil {
			h.log.ErrorContext(r.Context(), "failed to apply webhook event",
				slog.String("kind", string(n.Kind)),
				slog.String("subscription_id", n.SubscriptionID),
				slog.Any("error", err))
		}
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) reject(w http.ResponseWriter, r *http.Request, err error) {
	h.log.WarnContext(r.Context(), "rejected webhook", slog.Any("error", err))
	http.Error(w, ErrInvalidWebhook.Error(), http.StatusBadRequest)
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithMaxAge sets the accepted signature age. Zero disables the window.
func WithMaxAge(d time.Duration) HandlerOption {
	return func(h *Handler) {
		h.maxAge = d
	}
}

// WithApplier attaches business-effect handling for verified non-check
// events. Without it, events are acknowledged only.
func WithApplier(a Applier) HandlerOption {
	return func(h *Handler) {
		h.applier = a
	}
}

// WithLogger sets the handler logger. Nil loggers are ignored.
func WithLogger(log *slog.Logger) HandlerOption {
	return func(h *Handler) {
		if log != nil {
			h.log = log
		}
	}
}
