package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// IntentType names a notification the engine wants dispatched.
type IntentType string

const (
	IntentPaymentApprovalNeeded     IntentType = "payment_approval_needed"
	IntentPaymentApproved           IntentType = "payment_approved"
	IntentLargeExpenseAlert         IntentType = "large_expense_alert"
	IntentReconciliationDiscrepancy IntentType = "reconciliation_discrepancy"
	IntentLowStock                  IntentType = "low_stock"
	IntentSaleCompleted             IntentType = "sale_completed"
	IntentEventPaymentReceived      IntentType = "event_payment_received"
)

// Intent is one notification decision. The engine only decides whether
// to signal; delivery belongs to the external dispatcher, which renders
// from the payload without re-querying the engine.
type Intent struct {
	Type    IntentType
	Title   string
	Message string
	Payload map[string]any
}

// TriggerConfig is the explicit configuration for the trigger policy,
// passed per call rather than held as process-wide state.
type TriggerConfig struct {
	Thresholds              ApprovalThresholds
	DiscrepancyPctThreshold decimal.Decimal
}

// DefaultTriggerConfig returns the business default trigger settings.
func DefaultTriggerConfig() TriggerConfig {
	return TriggerConfig{
		Thresholds:              DefaultThresholds(),
		DiscrepancyPctThreshold: decimal.NewFromInt(5),
	}
}

// EntryCreatedIntents maps a freshly created register entry to its
// notification intents: an approval request when the entry lands in
// Pending, and a large-expense alert evaluated independently of the
// approval state, so both can fire for the same entry.
func EntryCreatedIntents(entry *CashRegisterEntry, cfg TriggerConfig) []Intent {
	var intents []Intent

	if entry.ApprovalStatus == ApprovalStatusPending {
		intents = append(intents, Intent{
			Type:    IntentPaymentApprovalNeeded,
			Title:   "Payment approval required",
			Message: fmt.Sprintf("Entry %q for ARS %s / USD %s requires approval", entry.Description, entry.Expense.ARS.StringFixed(2), entry.Expense.USD.StringFixed(2)),
			Payload: map[string]any{
				"entry_id":    entry.ID,
				"register":    string(entry.Register),
				"description": entry.Description,
				"amount_ars":  entry.Expense.ARS.String(),
				"amount_usd":  entry.Expense.USD.String(),
				"created_by":  entry.CreatedBy,
			},
		})
	}

	if cfg.Thresholds.IsLargeExpense(entry.Expense) {
		intents = append(intents, Intent{
			Type:    IntentLargeExpenseAlert,
			Title:   "Large expense recorded",
			Message: fmt.Sprintf("Expense of ARS %s recorded in %s cash: %s", entry.Expense.ARS.StringFixed(2), entry.Register, entry.Description),
			Payload: map[string]any{
				"entry_id":    entry.ID,
				"register":    string(entry.Register),
				"description": entry.Description,
				"amount_ars":  entry.Expense.ARS.String(),
				"created_by":  entry.CreatedBy,
			},
		})
	}

	return intents
}

// EntryApprovedIntent maps a completed approval to its intent.
func EntryApprovedIntent(entry *CashRegisterEntry, approvedBy string) Intent {
	return Intent{
		Type:    IntentPaymentApproved,
		Title:   "Payment approved",
		Message: fmt.Sprintf("Entry %q approved by %s", entry.Description, approvedBy),
		Payload: map[string]any{
			"entry_id":    entry.ID,
			"register":    string(entry.Register),
			"description": entry.Description,
			"amount_ars":  entry.Expense.ARS.String(),
			"amount_usd":  entry.Expense.USD.String(),
			"approved_by": approvedBy,
		},
	}
}

// ClientPaymentIntent signals an incoming client payment on an event.
func ClientPaymentIntent(eventID, clientName string, amount decimal.Decimal, allocations []Allocation) Intent {
	buckets := make([]string, 0, len(allocations))
	for _, a := range allocations {
		buckets = append(buckets, string(a.Bucket))
	}

	return Intent{
		Type:    IntentEventPaymentReceived,
		Title:   "Event payment received",
		Message: fmt.Sprintf("Client payment of ARS %s received for %s", amount.StringFixed(2), clientName),
		Payload: map[string]any{
			"event_id":   eventID,
			"client":     clientName,
			"amount_ars": amount.String(),
			"buckets":    buckets,
		},
	}
}

// SaleCompletedIntent signals a completed shop sale.
func SaleCompletedIntent(entry *CashRegisterEntry) Intent {
	payload := map[string]any{
		"entry_id":    entry.ID,
		"description": entry.Description,
		"amount_ars":  entry.Income.ARS.String(),
		"amount_usd":  entry.Income.USD.String(),
	}
	if entry.Sale != nil {
		payload["sku"] = entry.Sale.SKU
		payload["quantity"] = entry.Sale.Quantity
		payload["client"] = entry.Sale.Client
	}

	return Intent{
		Type:    IntentSaleCompleted,
		Title:   "Sale completed",
		Message: fmt.Sprintf("Shop sale recorded for ARS %s: %s", entry.Income.ARS.StringFixed(2), entry.Description),
		Payload: payload,
	}
}

// LowStockIntent signals that a product dropped to or below its minimum
// stock threshold after a sale.
func LowStockIntent(sku string, remaining, threshold int) Intent {
	return Intent{
		Type:    IntentLowStock,
		Title:   "Low stock alert",
		Message: fmt.Sprintf("Product %s is low on stock: %d units remaining (threshold %d)", sku, remaining, threshold),
		Payload: map[string]any{
			"sku":       sku,
			"remaining": remaining,
			"threshold": threshold,
		},
	}
}

// DiscrepancyIntent maps a reconciliation outcome to an intent, or nil
// when the discrepancy stays within tolerance.
func DiscrepancyIntent(count *CashCount, rec Reconciliation, cfg TriggerConfig) *Intent {
	if !rec.ExceedsThreshold(cfg.DiscrepancyPctThreshold) {
		return nil
	}

	return &Intent{
		Type:    IntentReconciliationDiscrepancy,
		Title:   "Cash count discrepancy",
		Message: fmt.Sprintf("Cash count for %s is off by ARS %s / USD %s", count.ScopeRef, rec.Discrepancy.ARS.StringFixed(2), rec.Discrepancy.USD.StringFixed(2)),
		Payload: map[string]any{
			"cash_count_id":   count.ID,
			"scope":           count.ScopeRef,
			"discrepancy_ars": rec.Discrepancy.ARS.String(),
			"discrepancy_usd": rec.Discrepancy.USD.String(),
			"counted_by":      count.CreatedBy,
		},
	}
}
