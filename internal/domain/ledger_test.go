package domain

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func testEntry(incomeARS, expenseARS string) LedgerEntry {
	return LedgerEntry{
		ID:            "entry-1",
		Date:          time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		PaymentMethod: PaymentMethodCash,
		Detail:        "flowers for reception",
		Income:        pair(incomeARS, "0"),
		Expense:       pair(expenseARS, "0"),
	}
}

func TestLedgerEntry_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*LedgerEntry)
		wantErr error
	}{
		{
			name:   "valid entry",
			mutate: func(e *LedgerEntry) {},
		},
		{
			name:    "empty detail",
			mutate:  func(e *LedgerEntry) { e.Detail = "" },
			wantErr: ErrInvalidDetail,
		},
		{
			name:    "detail over 300 chars",
			mutate:  func(e *LedgerEntry) { e.Detail = strings.Repeat("x", 301) },
			wantErr: ErrInvalidDetail,
		},
		{
			name:    "unknown payment method",
			mutate:  func(e *LedgerEntry) { e.PaymentMethod = "Trueque" },
			wantErr: ErrInvalidPaymentMethod,
		},
		{
			name: "no amounts at all",
			mutate: func(e *LedgerEntry) {
				e.Income = MoneyPair{}
				e.Expense = MoneyPair{}
			},
			wantErr: ErrEmptyMovement,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := testEntry("1000", "0")
			tt.mutate(&entry)

			err := entry.Validate()
			if tt.wantErr == nil && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestCalculateBalance(t *testing.T) {
	entries := []LedgerEntry{
		testEntry("20000", "0"),
		testEntry("0", "7500.50"),
		testEntry("1000.25", "300"),
	}

	balance := CalculateBalance(entries)

	if !balance.TotalIncome.ARS.Equal(dec("21000.25")) {
		t.Errorf("expected total income ARS 21000.25, got %s", balance.TotalIncome.ARS)
	}
	if !balance.TotalExpense.ARS.Equal(dec("7800.50")) {
		t.Errorf("expected total expense ARS 7800.50, got %s", balance.TotalExpense.ARS)
	}
	if !balance.Net.ARS.Equal(dec("13199.75")) {
		t.Errorf("expected net ARS 13199.75, got %s", balance.Net.ARS)
	}
}

func TestCalculateBalance_EmptySequence(t *testing.T) {
	balance := CalculateBalance(nil)

	if !balance.TotalIncome.IsZero() || !balance.TotalExpense.IsZero() {
		t.Error("expected all-zero totals for empty sequence")
	}
	if !balance.Net.ARS.IsZero() || !balance.Net.USD.IsZero() {
		t.Error("expected zero net for empty sequence")
	}
}

// Re-running the fold over the same sequence must yield identical
// results, and income − expense must always equal net.
func TestCalculateBalance_PureAndConsistent(t *testing.T) {
	entries := []LedgerEntry{
		testEntry("100.10", "40"),
		testEntry("0", "99.99"),
		testEntry("5000", "0"),
	}

	first := CalculateBalance(entries)
	second := CalculateBalance(entries)

	if !first.Net.ARS.Equal(second.Net.ARS) || !first.Net.USD.Equal(second.Net.USD) {
		t.Error("fold is not idempotent over the same sequence")
	}

	wantNet := Net(first.TotalIncome, first.TotalExpense)
	if !first.Net.ARS.Equal(wantNet.ARS) || !first.Net.USD.Equal(wantNet.USD) {
		t.Error("net does not equal income minus expense")
	}
}
