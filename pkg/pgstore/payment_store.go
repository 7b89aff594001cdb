package pgstore

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/membergate/pkg/payment"
)

// PaymentStore implements payment.Store on PostgreSQL.
type PaymentStore struct {
	db *pgxpool.Pool
}

// NewPaymentStore creates a PostgreSQL-backed payment store. Panics on a
// nil pool to fail fast during initialization.
func NewPaymentStore(db *pgxpool.Pool) *PaymentStore {
	if db == nil {
		panic("pgstore: pgxpool.Pool is required")
	}
	return &PaymentStore{db: db}
}

func (s *PaymentStore) Insert(ctx context.Context, p payment.Payment) (int64, error) {
	var id int64
	err := s.db.QueryRow(ctx,
		`INSERT INTO payments (user_id, subscription_label, subscription_key, amount_cents, currency, status, paid_at, transaction_id, payment_type)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id`,
		p.UserID, p.SubscriptionLabel, p.SubscriptionKey,
		p.Amount.Amount, p.Amount.Currency,
		string(p.Status), p.Date, p.TransactionID, p.PaymentType,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (s *PaymentStore) Get(ctx context.Context, id int64) (*payment.Payment, error) {
	var p payment.Payment
	var status string
	err := s.db.QueryRow(ctx,
		`SELECT id, user_id, subscription_label, subscription_key, amount_cents, currency, status, paid_at, transaction_id, payment_type
		 FROM payments WHERE id = $1`, id).Scan(
		&p.ID, &p.UserID, &p.SubscriptionLabel, &p.SubscriptionKey,
		&p.Amount.Amount, &p.Amount.Currency,
		&status, &p.Date, &p.TransactionID, &p.PaymentType,
	)
	if err != nil {
		if IsNotFoundError(err) {
			return nil, payment.ErrPaymentNotFound
		}
		return nil, err
	}
	p.Status = payment.Status(status)
	return &p, nil
}

// Update patches only the fields set on u. Nil pointers turn into NULL
// arguments and COALESCE keeps the stored value.
func (s *PaymentStore) Update(ctx context.Context, id int64, u payment.Update) error {
	var amountCents *int64
	var currency *string
	if u.Amount != nil {
		amountCents = &u.Amount.Amount
		currency = &u.Amount.Currency
	}

	var status *string
	if u.Status != nil {
		v := string(*u.Status)
		status = &v
	}

	tag, err := s.db.Exec(ctx,
		`UPDATE payments SET
			user_id        = COALESCE($2, user_id),
			amount_cents   = COALESCE($3, amount_cents),
			currency       = COALESCE($4, currency),
			paid_at        = COALESCE($5, paid_at),
			transaction_id = COALESCE($6, transaction_id),
			status         = COALESCE($7, status)
		 WHERE id = $1`,
		id, u.UserID, amountCents, currency, u.Date, u.TransactionID, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return payment.ErrPaymentNotFound
	}
	return nil
}

func (s *PaymentStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]payment.Payment, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, user_id, subscription_label, subscription_key, amount_cents, currency, status, paid_at, transaction_id, payment_type
		 FROM payments WHERE user_id = $1
		 ORDER BY paid_at DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []payment.Payment
	for rows.Next() {
		var p payment.Payment
		var status string
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.SubscriptionLabel, &p.SubscriptionKey,
			&p.Amount.Amount, &p.Amount.Currency,
			&status, &p.Date, &p.TransactionID, &p.PaymentType,
		); err != nil {
			return nil, err
		}
		p.Status = payment.Status(status)
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
