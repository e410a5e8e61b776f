package domain

import "errors"

var (
	// Money errors
	ErrInvalidAmount    = errors.New("amount must be a non-negative value")
	ErrInsufficientPair = errors.New("subtraction would produce a negative amount")

	// Ledger errors
	ErrInvalidDetail        = errors.New("detail must be between 1 and 300 characters")
	ErrInvalidPaymentMethod = errors.New("unknown payment method")
	ErrEventNotFound   = errors.New("event not found")
	ErrEntryNotFound   = errors.New("entry not found")
	ErrEmptyMovement   = errors.New("entry must carry at least one income or expense amount")
	ErrVersionConflict = errors.New("aggregate was modified concurrently")

	// Approval errors
	ErrInvalidApproverRole = errors.New("unknown approver role")
	ErrInvalidRegisterKind = errors.New("unknown register kind")

	// Cash count errors
	ErrCashCountNotFound = errors.New("cash count not found")
)
