package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CountType classifies a physical cash count.
type CountType string

const (
	CountDaily   CountType = "Daily"
	CountWeekly  CountType = "Weekly"
	CountMonthly CountType = "Monthly"
	CountSpecial CountType = "Special"
)

var validCountTypes = map[CountType]bool{
	CountDaily:   true,
	CountWeekly:  true,
	CountMonthly: true,
	CountSpecial: true,
}

// IsValid checks if the count type is known.
func (c CountType) IsValid() bool {
	return validCountTypes[c]
}

// CashCountStatus reflects the outcome of a reconciliation.
type CashCountStatus string

const (
	CashCountBalanced    CashCountStatus = "Balanced"
	CashCountDiscrepancy CashCountStatus = "Discrepancy"
)

// CashCount is one physical count of a register or project scope,
// compared against the ledger-derived expected total. Expected and
// discrepancy are computed at creation and immutable afterwards; a new
// count is a new record, never an edit.
type CashCount struct {
	ID                string
	ScopeRef          string
	CountDate         time.Time
	CountType         CountType
	Counted           MoneyPair
	Expected          *MoneyPair
	Discrepancy       *SignedPair
	DiscrepancyPctARS *decimal.Decimal
	DiscrepancyPctUSD *decimal.Decimal
	Status            CashCountStatus
	Notes             string
	CreatedBy         string
	CreatedAt         time.Time
}

// Reconciliation is the comparison of a counted total against an
// expected total.
type Reconciliation struct {
	Discrepancy SignedPair
	// PctARS/PctUSD are absolute discrepancy percentages per currency,
	// nil where the expected amount is zero (undefined, not an error).
	PctARS *decimal.Decimal
	PctUSD *decimal.Decimal
}

// Reconcile computes the signed per-currency difference between a
// physically counted total and the expected total, plus the discrepancy
// percentage where it is defined. A count with zero expected and zero
// counted is a perfect match.
func Reconcile(counted, expected MoneyPair) Reconciliation {
	rec := Reconciliation{
		Discrepancy: SignedPair{
			ARS: counted.ARS.Sub(expected.ARS),
			USD: counted.USD.Sub(expected.USD),
		},
	}

	if !expected.ARS.IsZero() {
		pct := rec.Discrepancy.ARS.Abs().Div(expected.ARS).Mul(decimal.NewFromInt(100)).Round(2)
		rec.PctARS = &pct
	}
	if !expected.USD.IsZero() {
		pct := rec.Discrepancy.USD.Abs().Div(expected.USD).Mul(decimal.NewFromInt(100)).Round(2)
		rec.PctUSD = &pct
	}

	return rec
}

// ExceedsThreshold reports whether either currency's discrepancy
// percentage is strictly above the given alert threshold.
func (r Reconciliation) ExceedsThreshold(threshold decimal.Decimal) bool {
	if r.PctARS != nil && r.PctARS.GreaterThan(threshold) {
		return true
	}
	if r.PctUSD != nil && r.PctUSD.GreaterThan(threshold) {
		return true
	}
	return false
}

// Apply snapshots a reconciliation onto the count record and settles its
// status against the alert threshold.
func (c *CashCount) Apply(expected MoneyPair, rec Reconciliation, threshold decimal.Decimal) {
	expected = expected.Round()
	c.Expected = &expected
	c.Discrepancy = &rec.Discrepancy
	c.DiscrepancyPctARS = rec.PctARS
	c.DiscrepancyPctUSD = rec.PctUSD

	if rec.ExceedsThreshold(threshold) {
		c.Status = CashCountDiscrepancy
	} else {
		c.Status = CashCountBalanced
	}
}
