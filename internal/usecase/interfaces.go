package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hermanas/caja/internal/domain"
)

// EventRepository defines data access for event aggregates.
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	// GetByIDForUpdate loads the aggregate under a row lock so two
	// concurrent appends on the same event cannot interleave.
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Event, error)
	// AppendEntry persists one ledger entry under the event.
	AppendEntry(ctx context.Context, tx Transaction, eventID string, entry *domain.LedgerEntry) error
	// UpdatePaymentStatus saves the payment status and bumps the
	// aggregate version; returns domain.ErrVersionConflict when the
	// stored version no longer matches expectedVersion.
	UpdatePaymentStatus(ctx context.Context, tx Transaction, eventID string, status domain.PaymentStatus, expectedVersion int64, updatedAt time.Time) error
	List(ctx context.Context, limit, offset int) ([]*domain.Event, error)
}

// RegisterRepository defines data access for cash register entries.
type RegisterRepository interface {
	CreateEntry(ctx context.Context, entry *domain.CashRegisterEntry) error
	GetEntryByID(ctx context.Context, id string) (*domain.CashRegisterEntry, error)
	// UpdateApproval saves approval state; returns
	// domain.ErrVersionConflict when the stored version no longer
	// matches entry.Version-1.
	UpdateApproval(ctx context.Context, entry *domain.CashRegisterEntry) error
	ListByRegister(ctx context.Context, register domain.RegisterKind, limit, offset int) ([]*domain.CashRegisterEntry, error)
	ListByScope(ctx context.Context, register domain.RegisterKind, scope string, from, to time.Time) ([]*domain.CashRegisterEntry, error)
}

// CashCountRepository defines data access for cash counts.
type CashCountRepository interface {
	Create(ctx context.Context, count *domain.CashCount) error
	GetByID(ctx context.Context, id string) (*domain.CashCount, error)
	List(ctx context.Context, scope string, limit, offset int) ([]*domain.CashCount, error)
}

// UserRepository defines data access for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// Notifier dispatches notification intents. Delivery is best-effort:
// implementations must never fail the business operation that produced
// the intent.
type Notifier interface {
	Dispatch(ctx context.Context, intent domain.Intent) error
}

// Inventory mutates product stock. Owned by a separate subsystem;
// invoked as a side effect of shop sales.
type Inventory interface {
	// DecrementStock reduces stock for a SKU and reports the remaining
	// level and the product's low-stock threshold.
	DecrementStock(ctx context.Context, sku string, qty int) (remaining, threshold int, err error)
}

// ProviderDirectory tracks provider usage counters.
type ProviderDirectory interface {
	IncrementUsage(ctx context.Context, providerID string, amountARS, amountUSD decimal.Decimal) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

// Retrier retries an operation on transient persistence failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}
