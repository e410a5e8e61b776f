package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EventHeader holds the client and budget facts of an event.
type EventHeader struct {
	ClientName       string
	ClientPhone      string
	EventType        string
	EventDate        time.Time
	TotalBudgetNoIVA decimal.Decimal
	IVAAmount        decimal.Decimal
	FinalBudget      decimal.Decimal
}

// Event is the aggregate owning an ordered ledger and exactly one
// payment status. Balance is always recomputed from the full entry list;
// Version backs the store's optimistic concurrency check.
type Event struct {
	ID            string
	Header        EventHeader
	PaymentStatus PaymentStatus
	Entries       []LedgerEntry
	Version       int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Balance folds the event's ledger into running totals.
func (e *Event) Balance() Balance {
	return CalculateBalance(e.Entries)
}

// AppendEntry validates and appends a ledger entry, returning the
// waterfall allocations when the entry is a client payment. Only client
// payments with a positive ARS income run through the waterfall; USD
// amounts are tracked in the totals but never allocated to buckets.
func (e *Event) AppendEntry(entry LedgerEntry, policy OverflowPolicy) ([]Allocation, error) {
	if err := entry.Validate(); err != nil {
		return nil, err
	}
	if err := ValidateMoneyPair(entry.Income); err != nil {
		return nil, err
	}
	if err := ValidateMoneyPair(entry.Expense); err != nil {
		return nil, err
	}

	entry.Income = entry.Income.Round()
	entry.Expense = entry.Expense.Round()

	var allocations []Allocation
	if entry.IsClientPayment && entry.Income.ARS.IsPositive() {
		var err error
		allocations, err = e.PaymentStatus.Allocate(entry.Income.ARS, policy)
		if err != nil {
			return nil, err
		}
	}

	e.Entries = append(e.Entries, entry)

	return allocations, nil
}
