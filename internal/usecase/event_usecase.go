package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/hermanas/caja/internal/domain"
	"github.com/hermanas/caja/internal/infrastructure/metrics"
)

// EventUseCase handles the events-cash aggregate: event creation, ledger
// appends with waterfall allocation, and balance summaries.
type EventUseCase struct {
	txManager   TransactionManager
	eventRepo   EventRepository
	providerDir ProviderDirectory
	notifier    Notifier
	idGen       IDGenerator
	logger      zerolog.Logger
	policy      domain.OverflowPolicy
	cache       Cache
	cacheTTL    time.Duration
	metrics     *metrics.Metrics
}

// NewEventUseCase creates a new EventUseCase.
func NewEventUseCase(
	txManager TransactionManager,
	eventRepo EventRepository,
	providerDir ProviderDirectory,
	notifier Notifier,
	idGen IDGenerator,
	logger zerolog.Logger,
	policy domain.OverflowPolicy,
) *EventUseCase {
	return &EventUseCase{
		txManager:   txManager,
		eventRepo:   eventRepo,
		providerDir: providerDir,
		notifier:    notifier,
		idGen:       idGen,
		logger:      logger,
		policy:      policy,
	}
}

// CreateEventInput represents input for creating an event.
type CreateEventInput struct {
	ClientName       string
	ClientPhone      string
	EventType        string
	EventDate        time.Time
	TotalBudgetNoIVA decimal.Decimal
	IVAAmount        decimal.Decimal
	FinalBudget      decimal.Decimal
}

// CreateEvent creates a new event with an empty ledger and a fresh
// payment status keyed to the final budget.
func (uc *EventUseCase) CreateEvent(ctx context.Context, input CreateEventInput) (*domain.Event, error) {
	if input.FinalBudget.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}

	now := time.Now().UTC()
	event := &domain.Event{
		ID: uc.idGen.Generate(),
		Header: domain.EventHeader{
			ClientName:       input.ClientName,
			ClientPhone:      input.ClientPhone,
			EventType:        input.EventType,
			EventDate:        input.EventDate,
			TotalBudgetNoIVA: input.TotalBudgetNoIVA,
			IVAAmount:        input.IVAAmount,
			FinalBudget:      input.FinalBudget,
		},
		PaymentStatus: domain.PaymentStatus{TotalBudget: input.FinalBudget},
		Version:       1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := uc.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.EventsCreated.Inc()
	}

	return event, nil
}

// WithSummaryCache enables cached summaries. The cache is best-effort;
// a miss or failure always falls through to the repository.
func (uc *EventUseCase) WithSummaryCache(cache Cache, ttl time.Duration) *EventUseCase {
	uc.cache = cache
	uc.cacheTTL = ttl
	return uc
}

// WithMetrics enables Prometheus counters on this use case.
func (uc *EventUseCase) WithMetrics(m *metrics.Metrics) *EventUseCase {
	uc.metrics = m
	return uc
}

// GetEvent retrieves an event by ID.
func (uc *EventUseCase) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	return uc.eventRepo.GetByID(ctx, id)
}

// ListEventsInput represents input for listing events.
type ListEventsInput struct {
	Limit  int
	Offset int
}

// ListEvents lists events.
func (uc *EventUseCase) ListEvents(ctx context.Context, input ListEventsInput) ([]*domain.Event, error) {
	return uc.eventRepo.List(ctx, clampLimit(input.Limit), input.Offset)
}

// AppendLedgerEntryInput represents input for appending a ledger entry.
type AppendLedgerEntryInput struct {
	EventID         string
	Date            time.Time
	PaymentMethod   domain.PaymentMethod
	Detail          string
	Income          domain.MoneyPair
	Expense         domain.MoneyPair
	ProviderID      string
	CategoryID      string
	IsClientPayment bool
	Actor           domain.Actor
}

// AppendLedgerEntryResult is the outcome of one ledger append.
type AppendLedgerEntryResult struct {
	Entry         *domain.LedgerEntry
	Allocations   []domain.Allocation
	Balance       domain.Balance
	PaymentStatus domain.PaymentStatus
}

// AppendLedgerEntry appends one movement to an event's ledger. The
// aggregate is loaded under a row lock and client payments run through
// the waterfall allocator inside the same transaction, so a concurrent
// append cannot lose an allocation.
func (uc *EventUseCase) AppendLedgerEntry(ctx context.Context, input AppendLedgerEntryInput) (*AppendLedgerEntryResult, error) {
	now := time.Now().UTC()

	entry := domain.LedgerEntry{
		ID:              uc.idGen.Generate(),
		Date:            input.Date,
		PaymentMethod:   input.PaymentMethod,
		Detail:          input.Detail,
		Income:          input.Income,
		Expense:         input.Expense,
		ProviderID:      input.ProviderID,
		CategoryID:      input.CategoryID,
		IsClientPayment: input.IsClientPayment,
		CreatedBy:       input.Actor.ID,
		CreatedAt:       now,
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	event, err := uc.eventRepo.GetByIDForUpdate(ctx, tx, input.EventID)
	if err != nil {
		return nil, err
	}

	allocations, err := event.AppendEntry(entry, uc.policy)
	if err != nil {
		return nil, err
	}

	stored := event.Entries[len(event.Entries)-1]
	if err := uc.eventRepo.AppendEntry(ctx, tx, event.ID, &stored); err != nil {
		return nil, err
	}

	if err := uc.eventRepo.UpdatePaymentStatus(ctx, tx, event.ID, event.PaymentStatus, event.Version, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	uc.afterAppend(ctx, event, &stored, allocations)
	uc.invalidateSummary(ctx, event.ID)
	uc.recordAppendMetrics(&stored, allocations)

	return &AppendLedgerEntryResult{
		Entry:         &stored,
		Allocations:   allocations,
		Balance:       event.Balance(),
		PaymentStatus: event.PaymentStatus,
	}, nil
}

func (uc *EventUseCase) recordAppendMetrics(entry *domain.LedgerEntry, allocations []domain.Allocation) {
	if uc.metrics == nil {
		return
	}

	kind := "expense"
	switch {
	case entry.IsClientPayment:
		kind = "client_payment"
	case entry.Income.ARS.IsPositive() || entry.Income.USD.IsPositive():
		kind = "income"
	}
	uc.metrics.LedgerEntries.WithLabelValues(kind).Inc()

	amount, _ := entry.Income.ARS.Add(entry.Expense.ARS).Float64()
	uc.metrics.EntryAmountARS.Observe(amount)

	for _, alloc := range allocations {
		if alloc.Dropped.IsPositive() {
			uc.metrics.WaterfallDrops.Inc()
		}
	}
}

// afterAppend runs the post-commit side effects: provider usage counters
// and notification intents. Both are best-effort and outside the
// transaction boundary.
func (uc *EventUseCase) afterAppend(ctx context.Context, event *domain.Event, entry *domain.LedgerEntry, allocations []domain.Allocation) {
	if entry.ProviderID != "" && uc.providerDir != nil {
		if err := uc.providerDir.IncrementUsage(ctx, entry.ProviderID, entry.Expense.ARS, entry.Expense.USD); err != nil {
			uc.logger.Error().
				Err(err).
				Str("provider_id", entry.ProviderID).
				Msg("failed to increment provider usage")
		}
	}

	if entry.IsClientPayment && entry.Income.ARS.IsPositive() {
		intent := domain.ClientPaymentIntent(event.ID, event.Header.ClientName, entry.Income.ARS, allocations)
		dispatchIntents(ctx, uc.notifier, uc.logger, []domain.Intent{intent})
	}
}

// EventSummary is the derived financial view of an event.
type EventSummary struct {
	EventID       string
	Balance       domain.Balance
	PaymentStatus domain.PaymentStatus
	BalanceDue    decimal.Decimal
	EntryCount    int
}

// GetSummary recomputes an event's balance and payment standing.
func (uc *EventUseCase) GetSummary(ctx context.Context, eventID string) (*EventSummary, error) {
	if cached, ok := uc.cachedSummary(ctx, eventID); ok {
		return cached, nil
	}

	event, err := uc.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	summary := &EventSummary{
		EventID:       event.ID,
		Balance:       event.Balance(),
		PaymentStatus: event.PaymentStatus,
		BalanceDue:    event.PaymentStatus.BalanceDue(),
		EntryCount:    len(event.Entries),
	}

	uc.storeSummary(ctx, summary)

	return summary, nil
}

func summaryCacheKey(eventID string) string {
	return "event-summary:" + eventID
}

func (uc *EventUseCase) cachedSummary(ctx context.Context, eventID string) (*EventSummary, bool) {
	if uc.cache == nil {
		return nil, false
	}

	raw, err := uc.cache.Get(ctx, summaryCacheKey(eventID))
	if err != nil || raw == "" {
		return nil, false
	}

	var summary EventSummary
	if err := json.Unmarshal([]byte(raw), &summary); err != nil {
		return nil, false
	}

	return &summary, true
}

func (uc *EventUseCase) storeSummary(ctx context.Context, summary *EventSummary) {
	if uc.cache == nil {
		return
	}

	raw, err := json.Marshal(summary)
	if err != nil {
		return
	}

	if err := uc.cache.Set(ctx, summaryCacheKey(summary.EventID), string(raw), uc.cacheTTL); err != nil {
		uc.logger.Debug().Err(err).Str("event_id", summary.EventID).Msg("failed to cache event summary")
	}
}

func (uc *EventUseCase) invalidateSummary(ctx context.Context, eventID string) {
	if uc.cache == nil {
		return
	}

	if err := uc.cache.Delete(ctx, summaryCacheKey(eventID)); err != nil {
		uc.logger.Debug().Err(err).Str("event_id", eventID).Msg("failed to invalidate event summary cache")
	}
}
