package checkout

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/membergate/pkg/membership"
	"github.com/dmitrymomot/membergate/pkg/payment"
)

// ProcessingErrorHandler observes remote-call failures before the flow
// terminates. It must not swallow the failure; the signup still fails.
type ProcessingErrorHandler func(ctx context.Context, req SignupRequest, err error)

// Service drives the signup flow against a payment processor:
//
//	validate token -> locate or create customer ->
//	{create subscription | one-time sale} ->
//	record payment -> update membership -> redirect
//
// The flow is linear and never retried automatically. No Payment record or
// membership mutation happens unless the processor reported success.
type Service struct {
	processor PaymentProcessor
	payments  payment.Store
	members   membership.Store
	log       *slog.Logger
	returnURL string
	onError   ProcessingErrorHandler
	now       func() time.Time
}

// NewService creates a checkout Service. Panics if any required dependency
// is nil to fail fast during initialization.
func NewService(processor PaymentProcessor, payments payment.Store, members membership.Store, opts ...ServiceOption) *Service {
	if processor == nil {
		panic("checkout: PaymentProcessor is required")
	}
	if payments == nil {
		panic("checkout: payment.Store is required")
	}
	if members == nil {
		panic("checkout: membership.Store is required")
	}

	s := &Service{
		processor: processor,
		payments:  payments,
		members:   members,
		log:       slog.Default(),
		returnURL: "/",
		now:       func() time.Time { return time.Now().UTC() },
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.onError == nil {
		s.onError = func(ctx context.Context, req SignupRequest, err error) {
			s.log.ErrorContext(ctx, "payment processing failed",
				slog.String("user_id", req.UserID.String()),
				slog.Any("error", err))
		}
	}

	return s
}

// ProcessSignup runs one checkout submission to completion. On success the
// returned Redirect terminates the request; any error is terminal and
// leaves no partial local state from the processor steps.
func (s *Service) ProcessSignup(ctx context.Context, req SignupRequest) (*Redirect, error) {
	if req.PaymentToken == "" {
		return nil, ErrMissingPaymentToken
	}
	if req.Recurring && req.PlanID == "" {
		return nil, ErrMissingPlanID
	}
	if !req.Recurring && req.Amount.Amount <= 0 {
		return nil, ErrMissingAmount
	}

	if req.IdempotencyKey == "" {
		req.IdempotencyKey = uuid.New().String()
	}

	customer, err := s.locateOrCreateCustomer(ctx, req)
	if err != nil {
		return nil, s.fail(ctx, req, err)
	}

	if req.Recurring {
		if err := s.processRecurring(ctx, req, customer); err != nil {
			return nil, err
		}
	} else {
		if err := s.processOneTime(ctx, req, customer); err != nil {
			return nil, err
		}
	}

	return &Redirect{URL: s.returnURL}, nil
}

// locateOrCreateCustomer finds the processor customer keyed by the local
// user id, creating one with minimal PII and risk signals when absent.
func (s *Service) locateOrCreateCustomer(ctx context.Context, req SignupRequest) (Customer, error) {
	lookup, err := s.processor.FindCustomer(ctx, req.UserID.String())
	if err != nil {
		return Customer{}, err
	}
	if lookup.Found {
		return lookup.Customer, nil
	}

	return s.processor.CreateCustomer(ctx, NewCustomer{
		LocalID:      req.UserID.String(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PaymentToken: req.PaymentToken,
		ClientIP:     req.ClientIP,
		UserAgent:    req.UserAgent,
	})
}

func (s *Service) processRecurring(ctx context.Context, req SignupRequest, customer Customer) error {
	params := SubscriptionParams{
		Customer:       customer,
		PlanID:         req.PlanID,
		IdempotencyKey: req.IdempotencyKey,
	}

	if req.Trial != nil {
		normalized, err := req.Trial.Normalize()
		if err != nil {
			return err
		}
		params.Trial = &normalized
	}

	sub, err := s.processor.CreateSubscription(ctx, params)
	if err != nil {
		return s.fail(ctx, req, err)
	}

	if err := s.members.LinkRemoteSubscription(ctx, req.UserID, sub.ID); err != nil {
		return errors.Join(ErrRecordPayment, err)
	}

	// The processor may not report the billing period on a just-created
	// subscription. Activate without a renewal date in that case; the
	// date arrives with the first charge notification. Writing the zero
	// time would make the membership read as already lapsed.
	if sub.PeriodEnd.IsZero() {
		if err := s.members.SetStatus(ctx, req.UserID, membership.StatusActive); err != nil {
			return errors.Join(ErrRecordPayment, err)
		}
		return nil
	}

	if err := s.members.Renew(ctx, req.UserID, membership.StatusActive, sub.PeriodEnd); err != nil {
		return errors.Join(ErrRecordPayment, err)
	}

	return nil
}

func (s *Service) processOneTime(ctx context.Context, req SignupRequest, customer Customer) error {
	charge, err := s.processor.Sale(ctx, SaleParams{
		Customer:       customer,
		PaymentToken:   req.PaymentToken,
		Amount:         req.Amount,
		Description:    req.SubscriptionLabel,
		IdempotencyKey: req.IdempotencyKey,
	})
	if err != nil {
		return s.fail(ctx, req, err)
	}

	date := charge.CreatedAt
	if date.IsZero() {
		date = s.now()
	}

	if _, err := s.payments.Insert(ctx, payment.Payment{
		UserID:            req.UserID,
		SubscriptionLabel: req.SubscriptionLabel,
		SubscriptionKey:   req.SubscriptionKey,
		Amount:            charge.Amount,
		Status:            payment.StatusComplete,
		Date:              date,
		TransactionID:     charge.TransactionID,
		PaymentType:       "card one-time",
	}); err != nil {
		return errors.Join(ErrRecordPayment, err)
	}

	if err := s.members.SetStatus(ctx, req.UserID, membership.StatusActive); err != nil {
		return errors.Join(ErrRecordPayment, err)
	}

	return nil
}

// fail routes a processor failure through the error handler and converts it
// into the terminal user-facing error.
func (s *Service) fail(ctx context.Context, req SignupRequest, err error) error {
	s.onError(ctx, req, err)
	return errors.Join(ErrPaymentProcessor, err)
}

// ClientToken proxies client-token generation for the registration form's
// card tokenizer.
func (s *Service) ClientToken(ctx context.Context) (string, error) {
	token, err := s.processor.GenerateClientToken(ctx)
	if err != nil {
		return "", errors.Join(ErrPaymentProcessor, err)
	}
	return token, nil
}
