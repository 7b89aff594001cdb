package checkout_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/membergate/pkg/checkout"
	"github.com/dmitrymomot/membergate/pkg/membership"
	"github.com/dmitrymomot/membergate/pkg/payment"
)

type fakeProcessor struct {
	findResult checkout.CustomerLookup
	findErr    error
	createErr  error
	subResult  *checkout.RemoteSubscription
	subErr     error
	saleResult *checkout.Charge
	saleErr    error
	token      string
	tokenErr   error

	findCalls int
	created   []checkout.NewCustomer
	subs      []checkout.SubscriptionParams
	sales     []checkout.SaleParams
}

func (f *fakeProcessor) FindCustomer(_ context.Context, _ string) (checkout.CustomerLookup, error) {
	f.findCalls++
	return f.findResult, f.findErr
}

func (f *fakeProcessor) CreateCustomer(_ context.Context, c checkout.NewCustomer) (checkout.Customer, error) {
	f.created = append(f.created, c)
	if f.createErr != nil {
		return checkout.Customer{}, f.createErr
	}
	return checkout.Customer{ID: "cust_" + c.LocalID, Email: c.Email}, nil
}

func (f *fakeProcessor) CreateSubscription(_ context.Context, p checkout.SubscriptionParams) (*checkout.RemoteSubscription, error) {
	f.subs = append(f.subs, p)
	return f.subResult, f.subErr
}

func (f *fakeProcessor) Sale(_ context.Context, p checkout.SaleParams) (*checkout.Charge, error) {
	f.sales = append(f.sales, p)
	return f.saleResult, f.saleErr
}

func (f *fakeProcessor) GenerateClientToken(_ context.Context) (string, error) {
	return f.token, f.tokenErr
}

type fakePaymentStore struct {
	insertErr error
	inserted  []payment.Payment
}

func (f *fakePaymentStore) Insert(_ context.Context, p payment.Payment) (int64, error) {
	if f.insertErr != nil {
		return 0, f.insertErr
	}
	f.inserted = append(f.inserted, p)
	return int64(len(f.inserted)), nil
}

func (f *fakePaymentStore) Get(_ context.Context, _ int64) (*payment.Payment, error) {
	return nil, payment.ErrPaymentNotFound
}

func (f *fakePaymentStore) Update(_ context.Context, _ int64, _ payment.Update) error {
	return payment.ErrPaymentNotFound
}

func (f *fakePaymentStore) ListByUser(_ context.Context, _ uuid.UUID) ([]payment.Payment, error) {
	return nil, nil
}

type fakeMemberStore struct {
	statusSet []membership.Status
	renewals  []time.Time
	linked    []string
	linkErr   error
	renewErr  error
	statusErr error
}

func (f *fakeMemberStore) Get(_ context.Context, _ uuid.UUID) (*membership.Membership, error) {
	return nil, membership.ErrMembershipNotFound
}

func (f *fakeMemberStore) GetByRemoteSubscription(_ context.Context, _ string) (*membership.Membership, error) {
	return nil, membership.ErrMembershipNotFound
}

func (f *fakeMemberStore) SetStatus(_ context.Context, _ uuid.UUID, status membership.Status) error {
	if f.statusErr != nil {
		return f.statusErr
	}
	f.statusSet = append(f.statusSet, status)
	return nil
}

func (f *fakeMemberStore) Renew(_ context.Context, _ uuid.UUID, status membership.Status, until time.Time) error {
	if f.renewErr != nil {
		return f.renewErr
	}
	f.statusSet = append(f.statusSet, status)
	f.renewals = append(f.renewals, until)
	return nil
}

func (f *fakeMemberStore) LinkRemoteSubscription(_ context.Context, _ uuid.UUID, remoteID string) error {
	if f.linkErr != nil {
		return f.linkErr
	}
	f.linked = append(f.linked, remoteID)
	return nil
}

func oneTimeRequest() checkout.SignupRequest {
	return checkout.SignupRequest{
		UserID:            uuid.New(),
		Email:             "member@example.com",
		FirstName:         "Ada",
		LastName:          "Lovelace",
		PaymentToken:      "tok_abc",
		SubscriptionID:    2,
		SubscriptionLabel: "Gold",
		SubscriptionKey:   "gold-2026",
		Amount:            payment.Money{Amount: 1999, Currency: "USD"},
	}
}

func TestProcessSignup_Preconditions(t *testing.T) {
	t.Parallel()

	t.Run("missing payment token never reaches the processor", func(t *testing.T) {
		t.Parallel()

		processor := &fakeProcessor{}
		svc := checkout.NewService(processor, &fakePaymentStore{}, &fakeMemberStore{})

		req := oneTimeRequest()
		req.PaymentToken = ""

		redirect, err := svc.ProcessSignup(context.Background(), req)
		require.ErrorIs(t, err, checkout.ErrMissingPaymentToken)
		assert.Nil(t, redirect)
		assert.Zero(t, processor.findCalls)
		assert.Empty(t, processor.sales)
	})

	t.Run("recurring without plan id", func(t *testing.T) {
		t.Parallel()

		processor := &fakeProcessor{}
		svc := checkout.NewService(processor, &fakePaymentStore{}, &fakeMemberStore{})

		req := oneTimeRequest()
		req.Recurring = true
		req.PlanID = ""

		_, err := svc.ProcessSignup(context.Background(), req)
		require.ErrorIs(t, err, checkout.ErrMissingPlanID)
		assert.Zero(t, processor.findCalls)
	})

	t.Run("one-time without amount", func(t *testing.T) {
		t.Parallel()

		processor := &fakeProcessor{}
		svc := checkout.NewService(processor, &fakePaymentStore{}, &fakeMemberStore{})

		req := oneTimeRequest()
		req.Amount = payment.Money{}

		_, err := svc.ProcessSignup(context.Background(), req)
		require.ErrorIs(t, err, checkout.ErrMissingAmount)
		assert.Zero(t, processor.findCalls)
	})
}

func TestProcessSignup_OneTime(t *testing.T) {
	t.Parallel()

	t.Run("successful sale records payment and activates membership", func(t *testing.T) {
		t.Parallel()

		chargedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		processor := &fakeProcessor{
			saleResult: &checkout.Charge{
				TransactionID: "tx123",
				Amount:        payment.Money{Amount: 1999, Currency: "USD"},
				CreatedAt:     chargedAt,
			},
		}
		payments := &fakePaymentStore{}
		members := &fakeMemberStore{}
		svc := checkout.NewService(processor, payments, members,
			checkout.WithReturnURL("/account"))

		req := oneTimeRequest()
		redirect, err := svc.ProcessSignup(context.Background(), req)
		require.NoError(t, err)
		require.NotNil(t, redirect)
		assert.Equal(t, "/account", redirect.URL)

		require.Len(t, payments.inserted, 1)
		record := payments.inserted[0]
		assert.Equal(t, req.UserID, record.UserID)
		assert.Equal(t, "tx123", record.TransactionID)
		assert.Equal(t, int64(1999), record.Amount.Amount)
		assert.Equal(t, payment.StatusComplete, record.Status)
		assert.Equal(t, chargedAt, record.Date)
		assert.Equal(t, "Gold", record.SubscriptionLabel)

		require.Len(t, members.statusSet, 1)
		assert.Equal(t, membership.StatusActive, members.statusSet[0])
	})

	t.Run("persisted amount is the processor's settled total", func(t *testing.T) {
		t.Parallel()

		// Taxes or currency conversion can make the settled total differ
		// from the submitted amount; the record must reflect the former.
		processor := &fakeProcessor{
			saleResult: &checkout.Charge{
				TransactionID: "tx125",
				Amount:        payment.Money{Amount: 2399, Currency: "USD"},
				CreatedAt:     time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
			},
		}
		payments := &fakePaymentStore{}
		svc := checkout.NewService(processor, payments, &fakeMemberStore{})

		_, err := svc.ProcessSignup(context.Background(), oneTimeRequest())
		require.NoError(t, err)

		require.Len(t, processor.sales, 1)
		assert.Equal(t, "Gold", processor.sales[0].Description)
		require.Len(t, payments.inserted, 1)
		assert.Equal(t, int64(2399), payments.inserted[0].Amount.Amount)
	})

	t.Run("sale failure writes nothing locally", func(t *testing.T) {
		t.Parallel()

		var handled error
		processor := &fakeProcessor{saleErr: errors.New("card declined")}
		payments := &fakePaymentStore{}
		members := &fakeMemberStore{}
		svc := checkout.NewService(processor, payments, members,
			checkout.WithProcessingErrorHandler(func(_ context.Context, _ checkout.SignupRequest, err error) {
				handled = err
			}))

		_, err := svc.ProcessSignup(context.Background(), oneTimeRequest())
		require.ErrorIs(t, err, checkout.ErrPaymentProcessor)
		assert.EqualError(t, handled, "card declined")
		assert.Empty(t, payments.inserted)
		assert.Empty(t, members.statusSet)
	})

	t.Run("persistence failure after charge is reported for reconciliation", func(t *testing.T) {
		t.Parallel()

		processor := &fakeProcessor{
			saleResult: &checkout.Charge{TransactionID: "tx124", Amount: payment.Money{Amount: 500, Currency: "USD"}},
		}
		payments := &fakePaymentStore{insertErr: errors.New("db down")}
		svc := checkout.NewService(processor, payments, &fakeMemberStore{})

		_, err := svc.ProcessSignup(context.Background(), oneTimeRequest())
		require.ErrorIs(t, err, checkout.ErrRecordPayment)
	})
}

func TestProcessSignup_Recurring(t *testing.T) {
	t.Parallel()

	recurringRequest := func() checkout.SignupRequest {
		req := oneTimeRequest()
		req.Recurring = true
		req.PlanID = "pri_gold_monthly"
		req.Amount = payment.Money{}
		return req
	}

	t.Run("successful subscription links and renews the membership", func(t *testing.T) {
		t.Parallel()

		periodEnd := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
		processor := &fakeProcessor{
			subResult: &checkout.RemoteSubscription{ID: "sub_42", PeriodEnd: periodEnd},
		}
		members := &fakeMemberStore{}
		svc := checkout.NewService(processor, &fakePaymentStore{}, members)

		redirect, err := svc.ProcessSignup(context.Background(), recurringRequest())
		require.NoError(t, err)
		assert.Equal(t, "/", redirect.URL)

		require.Len(t, processor.subs, 1)
		assert.Equal(t, "pri_gold_monthly", processor.subs[0].PlanID)

		assert.Equal(t, []string{"sub_42"}, members.linked)
		require.Len(t, members.renewals, 1)
		assert.Equal(t, periodEnd, members.renewals[0])
		assert.Equal(t, []membership.Status{membership.StatusActive}, members.statusSet)
	})

	t.Run("missing billing period activates without a renewal date", func(t *testing.T) {
		t.Parallel()

		processor := &fakeProcessor{
			subResult: &checkout.RemoteSubscription{ID: "sub_zero"},
		}
		members := &fakeMemberStore{}
		svc := checkout.NewService(processor, &fakePaymentStore{}, members)

		_, err := svc.ProcessSignup(context.Background(), recurringRequest())
		require.NoError(t, err)

		assert.Equal(t, []string{"sub_zero"}, members.linked)
		assert.Equal(t, []membership.Status{membership.StatusActive}, members.statusSet)
		// A zero renewal date would mark the member as already lapsed.
		assert.Empty(t, members.renewals)
	})

	t.Run("subscription failure leaves the membership untouched", func(t *testing.T) {
		t.Parallel()

		processor := &fakeProcessor{subErr: errors.New("gateway timeout")}
		members := &fakeMemberStore{}
		svc := checkout.NewService(processor, &fakePaymentStore{}, members)

		_, err := svc.ProcessSignup(context.Background(), recurringRequest())
		require.ErrorIs(t, err, checkout.ErrPaymentProcessor)
		assert.Empty(t, members.linked)
		assert.Empty(t, members.statusSet)
	})

	t.Run("yearly trial reaches the processor as months", func(t *testing.T) {
		t.Parallel()

		processor := &fakeProcessor{
			subResult: &checkout.RemoteSubscription{ID: "sub_43"},
		}
		svc := checkout.NewService(processor, &fakePaymentStore{}, &fakeMemberStore{})

		req := recurringRequest()
		req.Trial = &checkout.TrialPeriod{Duration: 1, Unit: checkout.TrialYears}

		_, err := svc.ProcessSignup(context.Background(), req)
		require.NoError(t, err)

		require.Len(t, processor.subs, 1)
		require.NotNil(t, processor.subs[0].Trial)
		assert.Equal(t, checkout.TrialMonths, processor.subs[0].Trial.Unit)
		assert.Equal(t, 12, processor.subs[0].Trial.Duration)
	})

	t.Run("unknown trial unit fails before the processor call", func(t *testing.T) {
		t.Parallel()

		processor := &fakeProcessor{}
		svc := checkout.NewService(processor, &fakePaymentStore{}, &fakeMemberStore{})

		req := recurringRequest()
		req.Trial = &checkout.TrialPeriod{Duration: 3, Unit: "fortnight"}

		_, err := svc.ProcessSignup(context.Background(), req)
		require.ErrorIs(t, err, checkout.ErrInvalidTrialUnit)
		assert.Empty(t, processor.subs)
	})
}

func TestProcessSignup_CustomerHandling(t *testing.T) {
	t.Parallel()

	t.Run("existing customer is reused", func(t *testing.T) {
		t.Parallel()

		processor := &fakeProcessor{
			findResult: checkout.CustomerLookup{
				Found:    true,
				Customer: checkout.Customer{ID: "cust_existing"},
			},
			saleResult: &checkout.Charge{TransactionID: "tx200", Amount: payment.Money{Amount: 1999, Currency: "USD"}},
		}
		svc := checkout.NewService(processor, &fakePaymentStore{}, &fakeMemberStore{})

		_, err := svc.ProcessSignup(context.Background(), oneTimeRequest())
		require.NoError(t, err)
		assert.Empty(t, processor.created)
		require.Len(t, processor.sales, 1)
		assert.Equal(t, "cust_existing", processor.sales[0].Customer.ID)
	})

	t.Run("new customer is created with risk signals", func(t *testing.T) {
		t.Parallel()

		processor := &fakeProcessor{
			saleResult: &checkout.Charge{TransactionID: "tx201", Amount: payment.Money{Amount: 1999, Currency: "USD"}},
		}
		svc := checkout.NewService(processor, &fakePaymentStore{}, &fakeMemberStore{})

		req := oneTimeRequest()
		req.ClientIP = "203.0.113.9"
		req.UserAgent = "test-agent"

		_, err := svc.ProcessSignup(context.Background(), req)
		require.NoError(t, err)

		require.Len(t, processor.created, 1)
		created := processor.created[0]
		assert.Equal(t, req.UserID.String(), created.LocalID)
		assert.Equal(t, "member@example.com", created.Email)
		assert.Equal(t, "203.0.113.9", created.ClientIP)
		assert.Equal(t, "test-agent", created.UserAgent)
	})

	t.Run("customer creation failure is terminal", func(t *testing.T) {
		t.Parallel()

		processor := &fakeProcessor{createErr: errors.New("invalid email")}
		payments := &fakePaymentStore{}
		svc := checkout.NewService(processor, payments, &fakeMemberStore{})

		_, err := svc.ProcessSignup(context.Background(), oneTimeRequest())
		require.ErrorIs(t, err, checkout.ErrPaymentProcessor)
		assert.Empty(t, processor.sales)
		assert.Empty(t, payments.inserted)
	})
}

func TestProcessSignup_IdempotencyKey(t *testing.T) {
	t.Parallel()

	t.Run("generated when empty", func(t *testing.T) {
		t.Parallel()

		processor := &fakeProcessor{
			saleResult: &checkout.Charge{TransactionID: "tx300", Amount: payment.Money{Amount: 1999, Currency: "USD"}},
		}
		svc := checkout.NewService(processor, &fakePaymentStore{}, &fakeMemberStore{})

		_, err := svc.ProcessSignup(context.Background(), oneTimeRequest())
		require.NoError(t, err)
		require.Len(t, processor.sales, 1)
		assert.NotEmpty(t, processor.sales[0].IdempotencyKey)
	})

	t.Run("caller-provided key is preserved", func(t *testing.T) {
		t.Parallel()

		processor := &fakeProcessor{
			saleResult: &checkout.Charge{TransactionID: "tx301", Amount: payment.Money{Amount: 1999, Currency: "USD"}},
		}
		svc := checkout.NewService(processor, &fakePaymentStore{}, &fakeMemberStore{})

		req := oneTimeRequest()
		req.IdempotencyKey = "retry-7"

		_, err := svc.ProcessSignup(context.Background(), req)
		require.NoError(t, err)
		require.Len(t, processor.sales, 1)
		assert.Equal(t, "retry-7", processor.sales[0].IdempotencyKey)
	})
}

func TestClientToken(t *testing.T) {
	t.Parallel()

	t.Run("proxies the processor token", func(t *testing.T) {
		t.Parallel()

		svc := checkout.NewService(&fakeProcessor{token: "client-tok"}, &fakePaymentStore{}, &fakeMemberStore{})

		token, err := svc.ClientToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "client-tok", token)
	})

	t.Run("wraps processor failures", func(t *testing.T) {
		t.Parallel()

		svc := checkout.NewService(&fakeProcessor{tokenErr: errors.New("unavailable")}, &fakePaymentStore{}, &fakeMemberStore{})

		_, err := svc.ClientToken(context.Background())
		require.ErrorIs(t, err, checkout.ErrPaymentProcessor)
	})
}

func TestNewService_Panics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		checkout.NewService(nil, &fakePaymentStore{}, &fakeMemberStore{})
	})
	assert.Panics(t, func() {
		checkout.NewService(&fakeProcessor{}, nil, &fakeMemberStore{})
	})
	assert.Panics(t, func() {
		checkout.NewService(&fakeProcessor{}, &fakePaymentStore{}, nil)
	})
}
