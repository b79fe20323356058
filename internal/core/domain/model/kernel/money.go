package kernel

import (
	"github.com/shopspring/decimal"

	"fulfillment/internal/pkg/errs"
)

// Money is a non-negative monetary amount. Amounts are fixed at order creation by
// the pricing collaborator and never recomputed here.
type Money struct {
	amount decimal.Decimal
}

// NewMoney returns an error for negative amounts.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", amount.String(), "0", "+inf")
	}
	return Money{amount: amount}, nil
}

// MoneyFromString parses a decimal string such as "1250.00".
func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewMoney(d)
}

// ZeroMoney is the additive identity.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

func (m Money) Amount() decimal.Decimal {
	return m.amount
}

func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

func (m Money) Mul(quantity int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(quantity)))}
}

func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String formats with two decimals.
func (m Money) String() string {
	return m.amount.StringFixed(2)
}
