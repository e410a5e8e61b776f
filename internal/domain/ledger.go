package domain

import (
	"time"
)

// PaymentMethod tags how a movement was settled.
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "Efectivo"
	PaymentMethodTransfer PaymentMethod = "Transferencia"
	PaymentMethodCard     PaymentMethod = "Tarjeta"
	PaymentMethodCheck    PaymentMethod = "Cheque"
)

var validPaymentMethods = map[PaymentMethod]bool{
	PaymentMethodCash:     true,
	PaymentMethodTransfer: true,
	PaymentMethodCard:     true,
	PaymentMethodCheck:    true,
}

// IsValid checks if the payment method is known.
func (p PaymentMethod) IsValid() bool {
	return validPaymentMethods[p]
}

// LedgerEntry is a single dated, dual-currency movement owned by exactly
// one parent aggregate. Entries are immutable once appended; corrections
// are made by appending a reversing entry, never by editing history.
type LedgerEntry struct {
	ID              string
	Date            time.Time
	PaymentMethod   PaymentMethod
	Detail          string
	Income          MoneyPair
	Expense         MoneyPair
	ProviderID      string
	CategoryID      string
	IsClientPayment bool
	CreatedBy       string
	CreatedAt       time.Time
}

// Validate checks entry invariants before it is appended.
func (e *LedgerEntry) Validate() error {
	if err := ValidateDetail(e.Detail); err != nil {
		return err
	}
	if !e.PaymentMethod.IsValid() {
		return ErrInvalidPaymentMethod
	}
	if e.Income.IsZero() && e.Expense.IsZero() {
		return ErrEmptyMovement
	}
	return nil
}

// Balance is the result of folding a sequence of ledger entries.
type Balance struct {
	TotalIncome  MoneyPair
	TotalExpense MoneyPair
	Net          SignedPair
}

// CalculateBalance folds an ordered entry sequence into running totals.
// It is a pure function of the sequence: no hidden state, safe to call
// after every append, and an empty sequence yields all-zero totals.
func CalculateBalance(entries []LedgerEntry) Balance {
	var income, expense MoneyPair
	for _, e := range entries {
		income = income.Add(e.Income)
		expense = expense.Add(e.Expense)
	}

	return Balance{
		TotalIncome:  income,
		TotalExpense: expense,
		Net:          Net(income, expense),
	}
}
