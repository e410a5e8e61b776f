package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidDescription = errors.New("invalid description")
	ErrInvalidScope       = errors.New("invalid scope reference")
	ErrAmountTooLarge     = errors.New("amount exceeds maximum allowed")
)

// Validation constants
const (
	MaxDetailLength      = 300
	MaxDescriptionLength = 500
	MaxAmount            = "1000000000000" // 1 trillion, per currency
)

// ValidateDetail validates a ledger entry detail (1..300 chars).
func ValidateDetail(detail string) error {
	detail = strings.TrimSpace(detail)

	if len(detail) < 1 || len(detail) > MaxDetailLength {
		return ErrInvalidDetail
	}

	return nil
}

// ValidateDescription validates a register entry description.
func ValidateDescription(description string) error {
	description = strings.TrimSpace(description)

	if len(description) < 1 {
		return fmt.Errorf("%w: description cannot be empty", ErrInvalidDescription)
	}

	if len(description) > MaxDescriptionLength {
		return fmt.Errorf("%w: description exceeds %d characters", ErrInvalidDescription, MaxDescriptionLength)
	}

	return nil
}

// ValidateMoneyPair validates that a pair is finite for storage.
func ValidateMoneyPair(pair MoneyPair) error {
	if pair.ARS.IsNegative() || pair.USD.IsNegative() {
		return ErrInvalidAmount
	}

	maxAmount, _ := decimal.NewFromString(MaxAmount)
	if pair.ARS.GreaterThan(maxAmount) || pair.USD.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxAmount)
	}

	return nil
}

// ValidatePagination validates and limits pagination parameters.
func ValidatePagination(limit, offset int) (int, int) {
	const MaxPageSize = 1000
	const DefaultPageSize = 50

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
