package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hermanas/caja/internal/domain"
	"github.com/hermanas/caja/internal/usecase"
)

// MockEventRepository is a mock implementation of EventRepository.
type MockEventRepository struct {
	mu     sync.RWMutex
	events map[string]*domain.Event

	CreateFunc              func(ctx context.Context, event *domain.Event) error
	GetByIDFunc             func(ctx context.Context, id string) (*domain.Event, error)
	GetByIDForUpdateFunc    func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Event, error)
	AppendEntryFunc         func(ctx context.Context, tx usecase.Transaction, eventID string, entry *domain.LedgerEntry) error
	UpdatePaymentStatusFunc func(ctx context.Context, tx usecase.Transaction, eventID string, status domain.PaymentStatus, expectedVersion int64, updatedAt time.Time) error
	ListFunc                func(ctx context.Context, limit, offset int) ([]*domain.Event, error)
}

func NewMockEventRepository() *MockEventRepository {
	return &MockEventRepository{
		events: make(map[string]*domain.Event),
	}
}

func (m *MockEventRepository) Create(ctx context.Context, event *domain.Event) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, event)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events[event.ID] = event
	return nil
}

func (m *MockEventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if event, ok := m.events[id]; ok {
		return event, nil
	}
	return nil, domain.ErrEventNotFound
}

func (m *MockEventRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Event, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockEventRepository) AppendEntry(ctx context.Context, tx usecase.Transaction, eventID string, entry *domain.LedgerEntry) error {
	if m.AppendEntryFunc != nil {
		return m.AppendEntryFunc(ctx, tx, eventID, entry)
	}
	return nil
}

func (m *MockEventRepository) UpdatePaymentStatus(ctx context.Context, tx usecase.Transaction, eventID string, status domain.PaymentStatus, expectedVersion int64, updatedAt time.Time) error {
	if m.UpdatePaymentStatusFunc != nil {
		return m.UpdatePaymentStatusFunc(ctx, tx, eventID, status, expectedVersion, updatedAt)
	}
	return nil
}

func (m *MockEventRepository) List(ctx context.Context, limit, offset int) ([]*domain.Event, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	events := make([]*domain.Event, 0, len(m.events))
	for _, event := range m.events {
		events = append(events, event)
	}
	sort.Slice(events, func(i, j int) bool { return events[i].ID < events[j].ID })
	return events, nil
}

// MockRegisterRepository is a mock implementation of RegisterRepository.
type MockRegisterRepository struct {
	mu      sync.RWMutex
	entries map[string]*domain.CashRegisterEntry

	CreateEntryFunc    func(ctx context.Context, entry *domain.CashRegisterEntry) error
	GetEntryByIDFunc   func(ctx context.Context, id string) (*domain.CashRegisterEntry, error)
	UpdateApprovalFunc func(ctx context.Context, entry *domain.CashRegisterEntry) error
	ListByRegisterFunc func(ctx context.Context, register domain.RegisterKind, limit, offset int) ([]*domain.CashRegisterEntry, error)
	ListByScopeFunc    func(ctx context.Context, register domain.RegisterKind, scope string, from, to time.Time) ([]*domain.CashRegisterEntry, error)
}

func NewMockRegisterRepository() *MockRegisterRepository {
	return &MockRegisterRepository{
		entries: make(map[string]*domain.CashRegisterEntry),
	}
}

func (m *MockRegisterRepository) CreateEntry(ctx context.Context, entry *domain.CashRegisterEntry) error {
	if m.CreateEntryFunc != nil {
		return m.CreateEntryFunc(ctx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[entry.ID] = entry
	return nil
}

func (m *MockRegisterRepository) GetEntryByID(ctx context.Context, id string) (*domain.CashRegisterEntry, error) {
	if m.GetEntryByIDFunc != nil {
		return m.GetEntryByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if entry, ok := m.entries[id]; ok {
		return entry, nil
	}
	return nil, domain.ErrEntryNotFound
}

func (m *MockRegisterRepository) UpdateApproval(ctx context.Context, entry *domain.CashRegisterEntry) error {
	if m.UpdateApprovalFunc != nil {
		return m.UpdateApprovalFunc(ctx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[entry.ID] = entry
	return nil
}

func (m *MockRegisterRepository) ListByRegister(ctx context.Context, register domain.RegisterKind, limit, offset int) ([]*domain.CashRegisterEntry, error) {
	if m.ListByRegisterFunc != nil {
		return m.ListByRegisterFunc(ctx, register, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var entries []*domain.CashRegisterEntry
	for _, entry := range m.entries {
		if entry.Register == register {
			entries = append(entries, entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries, nil
}

func (m *MockRegisterRepository) ListByScope(ctx context.Context, register domain.RegisterKind, scope string, from, to time.Time) ([]*domain.CashRegisterEntry, error) {
	if m.ListByScopeFunc != nil {
		return m.ListByScopeFunc(ctx, register, scope, from, to)
	}
	return m.ListByRegister(ctx, register, 0, 0)
}

// MockCashCountRepository is a mock implementation of CashCountRepository.
type MockCashCountRepository struct {
	mu     sync.RWMutex
	counts map[string]*domain.CashCount

	CreateFunc  func(ctx context.Context, count *domain.CashCount) error
	GetByIDFunc func(ctx context.Context, id string) (*domain.CashCount, error)
	ListFunc    func(ctx context.Context, scope string, limit, offset int) ([]*domain.CashCount, error)
}

func NewMockCashCountRepository() *MockCashCountRepository {
	return &MockCashCountRepository{
		counts: make(map[string]*domain.CashCount),
	}
}

func (m *MockCashCountRepository) Create(ctx context.Context, count *domain.CashCount) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, count)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[count.ID] = count
	return nil
}

func (m *MockCashCountRepository) GetByID(ctx context.Context, id string) (*domain.CashCount, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if count, ok := m.counts[id]; ok {
		return count, nil
	}
	return nil, domain.ErrCashCountNotFound
}

func (m *MockCashCountRepository) List(ctx context.Context, scope string, limit, offset int) ([]*domain.CashCount, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, scope, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var counts []*domain.CashCount
	for _, count := range m.counts {
		if scope == "" || count.ScopeRef == scope {
			counts = append(counts, count)
		}
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i].ID < counts[j].ID })
	return counts, nil
}

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User

	CreateFunc        func(ctx context.Context, user *domain.User) error
	GetByIDFunc       func(ctx context.Context, id string) (*domain.User, error)
	GetByUsernameFunc func(ctx context.Context, username string) (*domain.User, error)
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]*domain.User),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if user, ok := m.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.GetByUsernameFunc != nil {
		return m.GetByUsernameFunc(ctx, username)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, user := range m.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// MockNotifier records dispatched intents.
type MockNotifier struct {
	mu      sync.Mutex
	Intents []domain.Intent

	DispatchFunc func(ctx context.Context, intent domain.Intent) error
}

func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) Dispatch(ctx context.Context, intent domain.Intent) error {
	if m.DispatchFunc != nil {
		return m.DispatchFunc(ctx, intent)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Intents = append(m.Intents, intent)
	return nil
}

// Dispatched returns a snapshot of recorded intents.
func (m *MockNotifier) Dispatched() []domain.Intent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Intent, len(m.Intents))
	copy(out, m.Intents)
	return out
}

// MockInventory is a mock implementation of Inventory.
type MockInventory struct {
	mu    sync.Mutex
	Calls []InventoryCall

	DecrementStockFunc func(ctx context.Context, sku string, qty int) (int, int, error)
}

// InventoryCall records one DecrementStock invocation.
type InventoryCall struct {
	SKU string
	Qty int
}

func NewMockInventory() *MockInventory {
	return &MockInventory{}
}

func (m *MockInventory) DecrementStock(ctx context.Context, sku string, qty int) (int, int, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, InventoryCall{SKU: sku, Qty: qty})
	m.mu.Unlock()
	if m.DecrementStockFunc != nil {
		return m.DecrementStockFunc(ctx, sku, qty)
	}
	return 100, 5, nil
}

// MockProviderDirectory is a mock implementation of ProviderDirectory.
type MockProviderDirectory struct {
	mu    sync.Mutex
	Calls []ProviderUsageCall

	IncrementUsageFunc func(ctx context.Context, providerID string, amountARS, amountUSD decimal.Decimal) error
}

// ProviderUsageCall records one IncrementUsage invocation.
type ProviderUsageCall struct {
	ProviderID string
	AmountARS  decimal.Decimal
	AmountUSD  decimal.Decimal
}

func NewMockProviderDirectory() *MockProviderDirectory {
	return &MockProviderDirectory{}
}

func (m *MockProviderDirectory) IncrementUsage(ctx context.Context, providerID string, amountARS, amountUSD decimal.Decimal) error {
	m.mu.Lock()
	m.Calls = append(m.Calls, ProviderUsageCall{ProviderID: providerID, AmountARS: amountARS, AmountUSD: amountUSD})
	m.mu.Unlock()
	if m.IncrementUsageFunc != nil {
		return m.IncrementUsageFunc(ctx, providerID, amountARS, amountUSD)
	}
	return nil
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error

	Committed  bool
	RolledBack bool
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	m.Committed = true
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	m.RolledBack = true
	return nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	mu      sync.Mutex
	counter int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("id-%04d", m.counter)
}

// MockRetrier runs the operation once, without retries.
type MockRetrier struct {
	RetryFunc func(ctx context.Context, operation func() error) error
}

func NewMockRetrier() *MockRetrier {
	return &MockRetrier{}
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, operation)
	}
	return operation()
}
