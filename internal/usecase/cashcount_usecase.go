package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/hermanas/caja/internal/domain"
	"github.com/hermanas/caja/internal/infrastructure/metrics"
)

// CashCountUseCase handles physical cash counts and their reconciliation
// against the ledger-derived expected totals.
type CashCountUseCase struct {
	cashCountRepo CashCountRepository
	registerRepo  RegisterRepository
	notifier      Notifier
	idGen         IDGenerator
	logger        zerolog.Logger
	triggerCfg    domain.TriggerConfig
	metrics       *metrics.Metrics
}

// NewCashCountUseCase creates a new CashCountUseCase.
func NewCashCountUseCase(
	cashCountRepo CashCountRepository,
	registerRepo RegisterRepository,
	notifier Notifier,
	idGen IDGenerator,
	logger zerolog.Logger,
	triggerCfg domain.TriggerConfig,
) *CashCountUseCase {
	return &CashCountUseCase{
		cashCountRepo: cashCountRepo,
		registerRepo:  registerRepo,
		notifier:      notifier,
		idGen:         idGen,
		logger:        logger,
		triggerCfg:    triggerCfg,
	}
}

// WithMetrics enables Prometheus counters on this use case.
func (uc *CashCountUseCase) WithMetrics(m *metrics.Metrics) *CashCountUseCase {
	uc.metrics = m
	return uc
}

// CreateCashCountInput represents input for recording a cash count.
type CreateCashCountInput struct {
	Register  domain.RegisterKind
	ScopeRef  string
	CountDate time.Time
	CountType domain.CountType
	Counted   domain.MoneyPair
	// Expected overrides the ledger-derived expected total when set.
	// Used for scopes the engine has no ledger for.
	Expected *domain.MoneyPair
	// PeriodFrom/PeriodTo bound the ledger window used to derive the
	// expected total when Expected is nil.
	PeriodFrom time.Time
	PeriodTo   time.Time
	Notes      string
	Actor      domain.Actor
}

// CreateCashCount records a physical count, derives the expected total
// from the scope's approved ledger entries (unless the caller supplies
// one), reconciles the two and persists the immutable result. A
// discrepancy beyond tolerance dispatches an alert after the write.
func (uc *CashCountUseCase) CreateCashCount(ctx context.Context, input CreateCashCountInput) (*domain.CashCount, error) {
	if !input.CountType.IsValid() {
		return nil, domain.ErrInvalidScope
	}
	if input.ScopeRef == "" {
		return nil, domain.ErrInvalidScope
	}
	if err := domain.ValidateMoneyPair(input.Counted); err != nil {
		return nil, err
	}

	expected, err := uc.expectedTotal(ctx, input)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	count := &domain.CashCount{
		ID:        uc.idGen.Generate(),
		ScopeRef:  input.ScopeRef,
		CountDate: input.CountDate,
		CountType: input.CountType,
		Counted:   input.Counted.Round(),
		Notes:     input.Notes,
		CreatedBy: input.Actor.ID,
		CreatedAt: now,
	}

	rec := domain.Reconcile(count.Counted, expected)
	count.Apply(expected, rec, uc.triggerCfg.DiscrepancyPctThreshold)

	if err := uc.cashCountRepo.Create(ctx, count); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.CashCountsCreated.WithLabelValues(string(count.Status)).Inc()
		if count.Status == domain.CashCountDiscrepancy {
			uc.metrics.DiscrepanciesFound.Inc()
			amount, _ := rec.Discrepancy.ARS.Abs().Float64()
			uc.metrics.DiscrepancyAmount.Observe(amount)
		}
	}

	if intent := domain.DiscrepancyIntent(count, rec, uc.triggerCfg); intent != nil {
		dispatchIntents(ctx, uc.notifier, uc.logger, []domain.Intent{*intent})
	}

	return count, nil
}

// expectedTotal resolves the expected cash for a count: the caller's
// override when present, otherwise the net of the scope's approved
// entries over the count period. Negative nets clamp to zero since a
// register cannot physically hold negative cash.
func (uc *CashCountUseCase) expectedTotal(ctx context.Context, input CreateCashCountInput) (domain.MoneyPair, error) {
	if input.Expected != nil {
		if err := domain.ValidateMoneyPair(*input.Expected); err != nil {
			return domain.MoneyPair{}, err
		}
		return input.Expected.Round(), nil
	}

	if !input.Register.IsValid() {
		return domain.MoneyPair{}, domain.ErrInvalidRegisterKind
	}

	entries, err := uc.registerRepo.ListByScope(ctx, input.Register, input.ScopeRef, input.PeriodFrom, input.PeriodTo)
	if err != nil {
		return domain.MoneyPair{}, err
	}

	var income, expense domain.MoneyPair
	for _, entry := range entries {
		if entry.ApprovalStatus != domain.ApprovalStatusApproved {
			continue
		}
		income = income.Add(entry.Income)
		expense = expense.Add(entry.Expense)
	}

	net := domain.Net(income, expense)
	expected := domain.MoneyPair{ARS: net.ARS, USD: net.USD}
	if expected.ARS.IsNegative() {
		expected.ARS = decimal.Zero
	}
	if expected.USD.IsNegative() {
		expected.USD = decimal.Zero
	}

	return expected.Round(), nil
}

// GetCashCount retrieves a cash count by ID.
func (uc *CashCountUseCase) GetCashCount(ctx context.Context, id string) (*domain.CashCount, error) {
	return uc.cashCountRepo.GetByID(ctx, id)
}

// ListCashCountsInput represents input for listing cash counts.
type ListCashCountsInput struct {
	Scope  string
	Limit  int
	Offset int
}

// ListCashCounts lists counts, newest first, optionally filtered by scope.
func (uc *CashCountUseCase) ListCashCounts(ctx context.Context, input ListCashCountsInput) ([]*domain.CashCount, error) {
	return uc.cashCountRepo.List(ctx, input.Scope, clampLimit(input.Limit), input.Offset)
}
