package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ApprovalStatus is the lifecycle state of a cash register entry.
type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "Pending"
	ApprovalStatusApproved ApprovalStatus = "Approved"
	ApprovalStatusRejected ApprovalStatus = "Rejected"
)

// IsTerminal reports whether no further transition is possible.
func (s ApprovalStatus) IsTerminal() bool {
	return s == ApprovalStatusApproved || s == ApprovalStatusRejected
}

// ApproverRole names one of the two independent sign-off roles for the
// general cash register.
type ApproverRole string

const (
	RoleFede    ApproverRole = "fede"
	RoleSisters ApproverRole = "sisters"
)

var validApproverRoles = map[ApproverRole]bool{
	RoleFede:    true,
	RoleSisters: true,
}

// IsValid checks if the approver role is known.
func (r ApproverRole) IsValid() bool {
	return validApproverRoles[r]
}

// ApprovalThresholds carries the materiality configuration. Passed in
// explicitly so the state machine holds no process-wide state.
type ApprovalThresholds struct {
	MaterialityARS     decimal.Decimal
	MaterialityUSD     decimal.Decimal
	DualSignMultiplier decimal.Decimal
	LargeExpenseARS    decimal.Decimal
}

// DefaultThresholds returns the business defaults: approval above
// ARS 10000 or USD 100, dual sign-off at twice that, and a large-expense
// alert above ARS 10000.
func DefaultThresholds() ApprovalThresholds {
	return ApprovalThresholds{
		MaterialityARS:     decimal.NewFromInt(10000),
		MaterialityUSD:     decimal.NewFromInt(100),
		DualSignMultiplier: decimal.NewFromInt(2),
		LargeExpenseARS:    decimal.NewFromInt(10000),
	}
}

// NeedsApproval reports whether an entry with the given amounts requires
// human approval. The boundary is exclusive: an entry at exactly the
// threshold is auto-approved.
func (t ApprovalThresholds) NeedsApproval(income, expense MoneyPair) bool {
	ars := income.ARS.Add(expense.ARS)
	usd := income.USD.Add(expense.USD)

	return ars.GreaterThan(t.MaterialityARS) || usd.GreaterThan(t.MaterialityUSD)
}

// NeedsDualSign reports whether both approver roles must sign off. This
// kicks in at or above the dual-sign threshold (multiplier × materiality).
func (t ApprovalThresholds) NeedsDualSign(income, expense MoneyPair) bool {
	ars := income.ARS.Add(expense.ARS)
	usd := income.USD.Add(expense.USD)

	return ars.GreaterThanOrEqual(t.MaterialityARS.Mul(t.DualSignMultiplier)) ||
		usd.GreaterThanOrEqual(t.MaterialityUSD.Mul(t.DualSignMultiplier))
}

// IsLargeExpense reports whether the ARS expense alone crosses the
// large-expense alert threshold. Evaluated independently of approval.
func (t ApprovalThresholds) IsLargeExpense(expense MoneyPair) bool {
	return expense.ARS.GreaterThan(t.LargeExpenseARS)
}

// ApprovalRecord is one role's sign-off.
type ApprovalRecord struct {
	ApprovedBy string
	ApprovedAt time.Time
}

// RegisterKind identifies which cash register owns an entry.
type RegisterKind string

const (
	RegisterGeneral RegisterKind = "general"
	RegisterShop    RegisterKind = "shop"
	RegisterDeco    RegisterKind = "deco"
)

var validRegisterKinds = map[RegisterKind]bool{
	RegisterGeneral: true,
	RegisterShop:    true,
	RegisterDeco:    true,
}

// IsValid checks if the register kind is known.
func (k RegisterKind) IsValid() bool {
	return validRegisterKinds[k]
}

// SaleDetails carries the shop-sale specific fields of a register entry.
type SaleDetails struct {
	SKU        string
	Quantity   int
	Client     string
	Provider   string
	ProviderID string
	CostARS    decimal.Decimal
}

// CashRegisterEntry is one movement in the general, shop or deco cash
// register. It is created Pending or auto-approved depending on
// materiality and afterwards mutated only by approval actions; entries
// are never deleted.
type CashRegisterEntry struct {
	ID             string
	Register       RegisterKind
	Date           time.Time
	Description    string
	Income         MoneyPair
	Expense        MoneyPair
	ApprovalStatus ApprovalStatus
	Approvals      map[ApproverRole]ApprovalRecord
	Sale           *SaleDetails
	CreatedBy      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Version        int64
}

// NewCashRegisterEntry builds an entry and settles its initial approval
// state from the materiality rule: below threshold it is auto-approved
// with no approval record.
func NewCashRegisterEntry(id string, register RegisterKind, date time.Time, description string, income, expense MoneyPair, createdBy string, now time.Time, thresholds ApprovalThresholds) (*CashRegisterEntry, error) {
	if !register.IsValid() {
		return nil, ErrInvalidRegisterKind
	}
	if err := ValidateDescription(description); err != nil {
		return nil, err
	}
	if err := ValidateMoneyPair(income); err != nil {
		return nil, err
	}
	if err := ValidateMoneyPair(expense); err != nil {
		return nil, err
	}

	entry := &CashRegisterEntry{
		ID:             id,
		Register:       register,
		Date:           date,
		Description:    description,
		Income:         income.Round(),
		Expense:        expense.Round(),
		ApprovalStatus: ApprovalStatusPending,
		Approvals:      make(map[ApproverRole]ApprovalRecord),
		CreatedBy:      createdBy,
		CreatedAt:      now,
		UpdatedAt:      now,
		Version:        1,
	}

	if !thresholds.NeedsApproval(entry.Income, entry.Expense) {
		entry.ApprovalStatus = ApprovalStatusApproved
	}

	return entry, nil
}

// NeedsApproval reports whether this entry requires sign-off under the
// given thresholds.
func (e *CashRegisterEntry) NeedsApproval(thresholds ApprovalThresholds) bool {
	return thresholds.NeedsApproval(e.Income, e.Expense)
}

// Approve records a sign-off by one role. Approving an already-terminal
// entry is a no-op, keeping client retries idempotent; the returned bool
// reports whether the entry changed. The entry becomes Approved once a
// single role has signed, unless the amounts cross the dual-sign
// threshold, in which case both roles must sign.
func (e *CashRegisterEntry) Approve(role ApproverRole, approvedBy string, now time.Time, thresholds ApprovalThresholds) (bool, error) {
	if !role.IsValid() {
		return false, ErrInvalidApproverRole
	}

	if e.ApprovalStatus.IsTerminal() {
		return false, nil
	}

	if e.Approvals == nil {
		e.Approvals = make(map[ApproverRole]ApprovalRecord)
	}

	changed := false
	if _, done := e.Approvals[role]; !done {
		e.Approvals[role] = ApprovalRecord{ApprovedBy: approvedBy, ApprovedAt: now}
		changed = true
	}

	if e.approvalsSatisfied(thresholds) {
		e.ApprovalStatus = ApprovalStatusApproved
		changed = true
	}

	if changed {
		e.UpdatedAt = now
	}

	return changed, nil
}

func (e *CashRegisterEntry) approvalsSatisfied(thresholds ApprovalThresholds) bool {
	if e.Register == RegisterGeneral && thresholds.NeedsDualSign(e.Income, e.Expense) {
		_, fede := e.Approvals[RoleFede]
		_, sisters := e.Approvals[RoleSisters]

		return fede && sisters
	}

	return len(e.Approvals) > 0
}

// Reject administratively closes a Pending entry. Rejecting a terminal
// entry is a no-op.
func (e *CashRegisterEntry) Reject(now time.Time) bool {
	if e.ApprovalStatus.IsTerminal() {
		return false
	}

	e.ApprovalStatus = ApprovalStatusRejected
	e.UpdatedAt = now

	return true
}

// Net returns the signed per-currency balance of the entry.
func (e *CashRegisterEntry) Net() SignedPair {
	return Net(e.Income, e.Expense)
}
