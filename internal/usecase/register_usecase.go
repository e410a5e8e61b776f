package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/hermanas/caja/internal/domain"
	"github.com/hermanas/caja/internal/infrastructure/metrics"
)

// RegisterUseCase handles the three cash registers: entry creation with
// the materiality gate, approvals, shop sales with their inventory side
// effects, and balance summaries.
type RegisterUseCase struct {
	registerRepo RegisterRepository
	inventory    Inventory
	providerDir  ProviderDirectory
	notifier     Notifier
	idGen        IDGenerator
	retrier      Retrier
	logger       zerolog.Logger
	triggerCfg   domain.TriggerConfig
	metrics      *metrics.Metrics
}

// NewRegisterUseCase creates a new RegisterUseCase.
func NewRegisterUseCase(
	registerRepo RegisterRepository,
	inventory Inventory,
	providerDir ProviderDirectory,
	notifier Notifier,
	idGen IDGenerator,
	retrier Retrier,
	logger zerolog.Logger,
	triggerCfg domain.TriggerConfig,
) *RegisterUseCase {
	return &RegisterUseCase{
		registerRepo: registerRepo,
		inventory:    inventory,
		providerDir:  providerDir,
		notifier:     notifier,
		idGen:        idGen,
		retrier:      retrier,
		logger:       logger,
		triggerCfg:   triggerCfg,
	}
}

// WithMetrics enables Prometheus counters on this use case.
func (uc *RegisterUseCase) WithMetrics(m *metrics.Metrics) *RegisterUseCase {
	uc.metrics = m
	return uc
}

// CreateEntryInput represents input for creating a register entry.
type CreateEntryInput struct {
	Register    domain.RegisterKind
	Date        time.Time
	Description string
	Income      domain.MoneyPair
	Expense     domain.MoneyPair
	Actor       domain.Actor
}

// CreateEntry records a movement in a cash register. Entries below the
// materiality threshold come back auto-approved; the rest start Pending
// and an approval-needed intent is dispatched after the write.
func (uc *RegisterUseCase) CreateEntry(ctx context.Context, input CreateEntryInput) (*domain.CashRegisterEntry, error) {
	now := time.Now().UTC()

	entry, err := domain.NewCashRegisterEntry(
		uc.idGen.Generate(),
		input.Register,
		input.Date,
		input.Description,
		input.Income,
		input.Expense,
		input.Actor.ID,
		now,
		uc.triggerCfg.Thresholds,
	)
	if err != nil {
		return nil, err
	}

	if err := uc.registerRepo.CreateEntry(ctx, entry); err != nil {
		return nil, err
	}

	uc.recordEntryMetrics(entry)
	dispatchIntents(ctx, uc.notifier, uc.logger, domain.EntryCreatedIntents(entry, uc.triggerCfg))

	return entry, nil
}

func (uc *RegisterUseCase) recordEntryMetrics(entry *domain.CashRegisterEntry) {
	if uc.metrics == nil {
		return
	}

	uc.metrics.RegisterEntries.WithLabelValues(string(entry.Register)).Inc()
	if entry.ApprovalStatus == domain.ApprovalStatusPending {
		uc.metrics.ApprovalsPending.Inc()
	}
}

// RecordSaleInput represents input for recording a shop sale.
type RecordSaleInput struct {
	Date       time.Time
	SKU        string
	Quantity   int
	Client     string
	Provider   string
	ProviderID string
	CostARS    decimal.Decimal
	SoldARS    decimal.Decimal
	SoldUSD    decimal.Decimal
	Actor      domain.Actor
}

// RecordSale records a shop sale as an income entry in the shop register
// and then decrements stock for the sold SKU. The stock side effect runs
// after the ledger write; an inventory failure is logged, never unwound.
func (uc *RegisterUseCase) RecordSale(ctx context.Context, input RecordSaleInput) (*domain.CashRegisterEntry, error) {
	if input.Quantity <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	income, err := domain.NewMoneyPair(input.SoldARS, input.SoldUSD)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	description := fmt.Sprintf("Venta %s x%d", input.SKU, input.Quantity)
	if input.Client != "" {
		description = fmt.Sprintf("%s (%s)", description, input.Client)
	}

	entry, err := domain.NewCashRegisterEntry(
		uc.idGen.Generate(),
		domain.RegisterShop,
		input.Date,
		description,
		income,
		domain.MoneyPair{},
		input.Actor.ID,
		now,
		uc.triggerCfg.Thresholds,
	)
	if err != nil {
		return nil, err
	}

	entry.Sale = &domain.SaleDetails{
		SKU:        input.SKU,
		Quantity:   input.Quantity,
		Client:     input.Client,
		Provider:   input.Provider,
		ProviderID: input.ProviderID,
		CostARS:    input.CostARS,
	}

	if err := uc.registerRepo.CreateEntry(ctx, entry); err != nil {
		return nil, err
	}

	uc.recordEntryMetrics(entry)
	if uc.metrics != nil {
		uc.metrics.SalesCompleted.Inc()
	}
	uc.afterSale(ctx, entry, input)

	return entry, nil
}

func (uc *RegisterUseCase) afterSale(ctx context.Context, entry *domain.CashRegisterEntry, input RecordSaleInput) {
	intents := domain.EntryCreatedIntents(entry, uc.triggerCfg)
	intents = append(intents, domain.SaleCompletedIntent(entry))

	if uc.inventory != nil {
		remaining, threshold, err := uc.inventory.DecrementStock(ctx, input.SKU, input.Quantity)
		switch {
		case err != nil:
			uc.logger.Error().
				Err(err).
				Str("sku", input.SKU).
				Int("quantity", input.Quantity).
				Msg("failed to decrement stock after sale")
		case remaining <= threshold:
			intents = append(intents, domain.LowStockIntent(input.SKU, remaining, threshold))
		}
	}

	if input.ProviderID != "" && uc.providerDir != nil {
		if err := uc.providerDir.IncrementUsage(ctx, input.ProviderID, input.CostARS, decimal.Zero); err != nil {
			uc.logger.Error().
				Err(err).
				Str("provider_id", input.ProviderID).
				Msg("failed to increment provider usage")
		}
	}

	dispatchIntents(ctx, uc.notifier, uc.logger, intents)
}

// ApproveEntryInput represents input for an approval action.
type ApproveEntryInput struct {
	EntryID string
	Role    domain.ApproverRole
	Actor   domain.Actor
}

// ApproveEntry records one role's sign-off on a pending entry. The write
// is retried on version conflicts because two approvers racing on the
// same entry is the expected path for dual-sign amounts. Approving an
// already-terminal entry returns the entry unchanged.
func (uc *RegisterUseCase) ApproveEntry(ctx context.Context, input ApproveEntryInput) (*domain.CashRegisterEntry, error) {
	var result *domain.CashRegisterEntry

	operation := func() error {
		entry, err := uc.registerRepo.GetEntryByID(ctx, input.EntryID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		changed, err := entry.Approve(input.Role, input.Actor.ID, now, uc.triggerCfg.Thresholds)
		if err != nil {
			return err
		}

		if changed {
			entry.Version++
			if err := uc.registerRepo.UpdateApproval(ctx, entry); err != nil {
				return err
			}

			if uc.metrics != nil {
				uc.metrics.ApprovalsGranted.WithLabelValues(string(input.Role), "approved").Inc()
				if entry.ApprovalStatus.IsTerminal() {
					uc.metrics.ApprovalsPending.Dec()
				}
			}

			if entry.ApprovalStatus == domain.ApprovalStatusApproved {
				dispatchIntents(ctx, uc.notifier, uc.logger, []domain.Intent{
					domain.EntryApprovedIntent(entry, input.Actor.DisplayName),
				})
			}
		}

		result = entry
		return nil
	}

	if err := uc.retrier.Retry(ctx, operation); err != nil {
		return nil, err
	}

	return result, nil
}

// RejectEntryInput represents input for rejecting an entry.
type RejectEntryInput struct {
	EntryID string
	Actor   domain.Actor
}

// RejectEntry administratively closes a pending entry. Rejecting an
// already-terminal entry returns the entry unchanged.
func (uc *RegisterUseCase) RejectEntry(ctx context.Context, input RejectEntryInput) (*domain.CashRegisterEntry, error) {
	var result *domain.CashRegisterEntry

	operation := func() error {
		entry, err := uc.registerRepo.GetEntryByID(ctx, input.EntryID)
		if err != nil {
			return err
		}

		if entry.Reject(time.Now().UTC()) {
			entry.Version++
			if err := uc.registerRepo.UpdateApproval(ctx, entry); err != nil {
				return err
			}

			if uc.metrics != nil {
				uc.metrics.ApprovalsGranted.WithLabelValues("admin", "rejected").Inc()
				uc.metrics.ApprovalsPending.Dec()
			}
		}

		result = entry
		return nil
	}

	if err := uc.retrier.Retry(ctx, operation); err != nil {
		return nil, err
	}

	return result, nil
}

// GetEntry retrieves a register entry by ID.
func (uc *RegisterUseCase) GetEntry(ctx context.Context, id string) (*domain.CashRegisterEntry, error) {
	return uc.registerRepo.GetEntryByID(ctx, id)
}

// ListEntriesInput represents input for listing register entries.
type ListEntriesInput struct {
	Register domain.RegisterKind
	Limit    int
	Offset   int
}

// ListEntries lists entries of one register, newest first.
func (uc *RegisterUseCase) ListEntries(ctx context.Context, input ListEntriesInput) ([]*domain.CashRegisterEntry, error) {
	if !input.Register.IsValid() {
		return nil, domain.ErrInvalidRegisterKind
	}

	return uc.registerRepo.ListByRegister(ctx, input.Register, clampLimit(input.Limit), input.Offset)
}

// RegisterSummary is the derived balance of one register over a period.
type RegisterSummary struct {
	Register     domain.RegisterKind
	TotalIncome  domain.MoneyPair
	TotalExpense domain.MoneyPair
	Net          domain.SignedPair
	EntryCount   int
	PendingCount int
}

// Summarize folds the approved entries of one register into totals.
// Pending and rejected entries are counted but excluded from the
// balance; money that has not cleared approval is not cash on hand.
func (uc *RegisterUseCase) Summarize(ctx context.Context, register domain.RegisterKind, scope string, from, to time.Time) (*RegisterSummary, error) {
	if !register.IsValid() {
		return nil, domain.ErrInvalidRegisterKind
	}

	entries, err := uc.registerRepo.ListByScope(ctx, register, scope, from, to)
	if err != nil {
		return nil, err
	}

	summary := &RegisterSummary{Register: register, EntryCount: len(entries)}
	for _, entry := range entries {
		if entry.ApprovalStatus == domain.ApprovalStatusPending {
			summary.PendingCount++
		}
		if entry.ApprovalStatus != domain.ApprovalStatusApproved {
			continue
		}

		summary.TotalIncome = summary.TotalIncome.Add(entry.Income)
		summary.TotalExpense = summary.TotalExpense.Add(entry.Expense)
	}

	summary.Net = domain.Net(summary.TotalIncome, summary.TotalExpense)

	return summary, nil
}
