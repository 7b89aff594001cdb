package payment

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Money represents a monetary amount in the smallest currency unit,
// e.g. $19.99 USD is Amount: 1999, Currency: "USD".
type Money struct {
	Amount   int64
	Currency string // ISO 4217 currency code
}

// amountPattern matches the admin form's amount format: optional thousands
// separators and exactly two fraction digits, e.g. "19.99" or "1,299.00".
var amountPattern = regexp.MustCompile(`^[0-9]{1,3}(?:,?[0-9]{3})*\.[0-9]{2}$`)

// ParseAmount converts a decimal string with exactly two fraction digits
// into Money. Returns ErrInvalidAmount for anything else.
func ParseAmount(s, currency string) (Money, error) {
	s = strings.TrimSpace(s)
	if !amountPattern.MatchString(s) {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	s = strings.ReplaceAll(s, ",", "")
	whole, frac, _ := strings.Cut(s, ".")

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return Money{}, errors.Join(ErrInvalidAmount, err)
	}
	cents, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return Money{}, errors.Join(ErrInvalidAmount, err)
	}

	return Money{Amount: units*100 + cents, Currency: currency}, nil
}

// String formats the amount as a plain decimal with two fraction digits.
// Negative amounts, such as refund corrections, keep a single leading sign.
func (m Money) String() string {
	amount := m.Amount
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s%d.%02d", sign, amount/100, amount%100)
}
