package payment_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/membergate/pkg/payment"
)

type fakeStore struct {
	payments map[int64]payment.Payment
	updates  int
}

func newFakeStore(seed ...payment.Payment) *fakeStore {
	s := &fakeStore{payments: make(map[int64]payment.Payment)}
	for _, p := range seed {
		s.payments[p.ID] = p
	}
	return s
}

func (s *fakeStore) Insert(_ context.Context, p payment.Payment) (int64, error) {
	id := int64(len(s.payments) + 1)
	p.ID = id
	s.payments[id] = p
	return id, nil
}

func (s *fakeStore) Get(_ context.Context, id int64) (*payment.Payment, error) {
	p, ok := s.payments[id]
	if !ok {
		return nil, payment.ErrPaymentNotFound
	}
	return &p, nil
}

func (s *fakeStore) Update(_ context.Context, id int64, u payment.Update) error {
	p, ok := s.payments[id]
	if !ok {
		return payment.ErrPaymentNotFound
	}
	if u.UserID != nil {
		p.UserID = *u.UserID
	}
	if u.Amount != nil {
		p.Amount = *u.Amount
	}
	if u.Date != nil {
		p.Date = *u.Date
	}
	if u.TransactionID != nil {
		p.TransactionID = *u.TransactionID
	}
	if u.Status != nil {
		p.Status = *u.Status
	}
	s.payments[id] = p
	s.updates++
	return nil
}

func (s *fakeStore) ListByUser(_ context.Context, userID uuid.UUID) ([]payment.Payment, error) {
	var out []payment.Payment
	for _, p := range s.payments {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeDirectory map[string]uuid.UUID

func (d fakeDirectory) ResolveLogin(_ context.Context, login string) (uuid.UUID, error) {
	id, ok := d[login]
	if !ok {
		return uuid.Nil, payment.ErrUnknownUser
	}
	return id, nil
}

func TestEditor_Edit(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	directory := fakeDirectory{"alice": userID}

	seed := payment.Payment{
		ID:     7,
		UserID: userID,
		Amount: payment.Money{Amount: 999, Currency: "USD"},
		Status: payment.StatusComplete,
	}

	t.Run("applies valid corrections", func(t *testing.T) {
		t.Parallel()
		store := newFakeStore(seed)
		editor := payment.NewEditor(store, directory, "USD")

		updated, err := editor.Edit(context.Background(), payment.EditRequest{
			PaymentID:     7,
			UserLogin:     "alice",
			Amount:        "19.99",
			Date:          "2026-08-30",
			TransactionID: "tx123",
			Status:        "refunded",
		})
		require.NoError(t, err)

		assert.Equal(t, int64(1999), updated.Amount.Amount)
		assert.Equal(t, payment.StatusRefunded, updated.Status)
		assert.Equal(t, "tx123", updated.TransactionID)
		assert.Equal(t, time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC), updated.Date)
	})

	t.Run("rejects unknown user without writing", func(t *testing.T) {
		t.Parallel()
		store := newFakeStore(seed)
		editor := payment.NewEditor(store, directory, "USD")

		_, err := editor.Edit(context.Background(), payment.EditRequest{
			PaymentID: 7, UserLogin: "bob", Amount: "19.99", Date: "2026-08-30", Status: "complete",
		})
		assert.ErrorIs(t, err, payment.ErrUnknownUser)
		assert.Zero(t, store.updates)
	})

	t.Run("rejects malformed amount", func(t *testing.T) {
		t.Parallel()
		store := newFakeStore(seed)
		editor := payment.NewEditor(store, directory, "USD")

		for _, bad := range []string{"19.9", "19", "abc", "-5.00", "19.999"} {
			_, err := editor.Edit(context.Background(), payment.EditRequest{
				PaymentID: 7, UserLogin: "alice", Amount: bad, Date: "2026-08-30", Status: "complete",
			})
			assert.ErrorIs(t, err, payment.ErrInvalidAmount, "amount %q", bad)
		}
		assert.Zero(t, store.updates)
	})

	t.Run("rejects malformed date", func(t *testing.T) {
		t.Parallel()
		store := newFakeStore(seed)
		editor := payment.NewEditor(store, directory, "USD")

		_, err := editor.Edit(context.Background(), payment.EditRequest{
			PaymentID: 7, UserLogin: "alice", Amount: "19.99", Date: "30/08/2026", Status: "complete",
		})
		assert.ErrorIs(t, err, payment.ErrInvalidDate)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		t.Parallel()
		store := newFakeStore(seed)
		editor := payment.NewEditor(store, directory, "USD")

		_, err := editor.Edit(context.Background(), payment.EditRequest{
			PaymentID: 7, UserLogin: "alice", Amount: "19.99", Date: "2026-08-30", Status: "pending",
		})
		assert.ErrorIs(t, err, payment.ErrInvalidStatus)
	})

	t.Run("unknown payment id surfaces not found", func(t *testing.T) {
		t.Parallel()
		store := newFakeStore()
		editor := payment.NewEditor(store, directory, "USD")

		_, err := editor.Edit(context.Background(), payment.EditRequest{
			PaymentID: 99, UserLogin: "alice", Amount: "19.99", Date: "2026-08-30", Status: "complete",
		})
		assert.ErrorIs(t, err, payment.ErrPaymentNotFound)
	})
}

func TestParseAmount(t *testing.T) {
	t.Parallel()

	t.Run("plain decimal", func(t *testing.T) {
		t.Parallel()
		m, err := payment.ParseAmount("19.99", "USD")
		require.NoError(t, err)
		assert.Equal(t, int64(1999), m.Amount)
		assert.Equal(t, "19.99", m.String())
	})

	t.Run("thousands separators", func(t *testing.T) {
		t.Parallel()
		m, err := payment.ParseAmount("1,299.00", "USD")
		require.NoError(t, err)
		assert.Equal(t, int64(129900), m.Amount)
	})

	t.Run("zero", func(t *testing.T) {
		t.Parallel()
		m, err := payment.ParseAmount("0.00", "USD")
		require.NoError(t, err)
		assert.Equal(t, int64(0), m.Amount)
		assert.Equal(t, "0.00", m.String())
	})
}
