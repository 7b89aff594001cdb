package payment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/membergate/pkg/payment"
)

func TestMoneyString(t *testing.T) {
	t.Parallel()

	t.Run("positive", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "19.99", payment.Money{Amount: 1999, Currency: "USD"}.String())
		assert.Equal(t, "0.05", payment.Money{Amount: 5, Currency: "USD"}.String())
	})

	t.Run("negative keeps a single leading sign", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "-1.99", payment.Money{Amount: -199, Currency: "USD"}.String())
		assert.Equal(t, "-0.50", payment.Money{Amount: -50, Currency: "USD"}.String())
	})
}
