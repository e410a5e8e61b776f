package domain

import (
	"github.com/shopspring/decimal"
)

// MoneyPair holds an ARS amount and a USD amount. The two currencies are
// tracked independently and never converted. Both fields are always
// non-negative; signed results live in SignedPair.
type MoneyPair struct {
	ARS decimal.Decimal
	USD decimal.Decimal
}

// NewMoneyPair builds a MoneyPair, rejecting negative components.
func NewMoneyPair(ars, usd decimal.Decimal) (MoneyPair, error) {
	if ars.IsNegative() || usd.IsNegative() {
		return MoneyPair{}, ErrInvalidAmount
	}
	return MoneyPair{ARS: ars, USD: usd}, nil
}

// Add returns the component-wise sum of two pairs.
func (m MoneyPair) Add(o MoneyPair) MoneyPair {
	return MoneyPair{
		ARS: m.ARS.Add(o.ARS),
		USD: m.USD.Add(o.USD),
	}
}

// Subtract returns m − o. Subtracting more than is available in either
// currency is a caller precondition violation.
func (m MoneyPair) Subtract(o MoneyPair) (MoneyPair, error) {
	ars := m.ARS.Sub(o.ARS)
	usd := m.USD.Sub(o.USD)
	if ars.IsNegative() || usd.IsNegative() {
		return MoneyPair{}, ErrInsufficientPair
	}
	return MoneyPair{ARS: ars, USD: usd}, nil
}

// IsZero reports whether both components are zero.
func (m MoneyPair) IsZero() bool {
	return m.ARS.IsZero() && m.USD.IsZero()
}

// Round rounds both components to 2 decimal places. Applied at every
// persisted boundary so cent-level drift cannot accumulate.
func (m MoneyPair) Round() MoneyPair {
	return MoneyPair{
		ARS: m.ARS.Round(2),
		USD: m.USD.Round(2),
	}
}

// SignedPair is a per-currency signed balance. Unlike MoneyPair its
// components may be negative.
type SignedPair struct {
	ARS decimal.Decimal
	USD decimal.Decimal
}

// Neg returns the component-wise negation.
func (s SignedPair) Neg() SignedPair {
	return SignedPair{ARS: s.ARS.Neg(), USD: s.USD.Neg()}
}

// Net computes income − expense per currency.
func Net(income, expense MoneyPair) SignedPair {
	return SignedPair{
		ARS: income.ARS.Sub(expense.ARS),
		USD: income.USD.Sub(expense.USD),
	}
}
