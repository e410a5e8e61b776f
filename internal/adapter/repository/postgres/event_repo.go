package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hermanas/caja/internal/domain"
	"github.com/hermanas/caja/internal/usecase"
)

// EventRepository implements usecase.EventRepository.
type EventRepository struct {
	pool *pgxpool.Pool
}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

const eventColumns = `
	id, client_name, client_phone, event_type, event_date,
	total_budget_no_iva, iva_amount, final_budget,
	payment_total_budget, anticipo_received, segundo_pago, tercer_pago,
	version, created_at, updated_at
`

const ledgerEntryColumns = `
	id, event_id, date, payment_method, detail,
	income_ars, income_usd, expense_ars, expense_usd,
	provider_id, category_id, is_client_payment, created_by, created_at
`

// Create creates a new event.
func (r *EventRepository) Create(ctx context.Context, event *domain.Event) error {
	query := `
		INSERT INTO events (` + eventColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.pool.Exec(ctx, query,
		event.ID,
		event.Header.ClientName,
		event.Header.ClientPhone,
		event.Header.EventType,
		event.Header.EventDate,
		event.Header.TotalBudgetNoIVA,
		event.Header.IVAAmount,
		event.Header.FinalBudget,
		event.PaymentStatus.TotalBudget,
		event.PaymentStatus.AnticipoReceived,
		event.PaymentStatus.SegundoPago,
		event.PaymentStatus.TercerPago,
		event.Version,
		event.CreatedAt,
		event.UpdatedAt,
	)

	return err
}

// GetByID retrieves an event with its full ledger.
func (r *EventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	event, err := scanEvent(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, err
	}

	event.Entries, err = r.listEntries(ctx, r.pool, id)
	if err != nil {
		return nil, err
	}

	return event, nil
}

// GetByIDForUpdate retrieves an event with a FOR UPDATE lock on its row,
// serializing concurrent appends on the same event.
func (r *EventRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Event, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1 FOR UPDATE`

	event, err := scanEvent(pgxTx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, err
	}

	event.Entries, err = r.listEntries(ctx, pgxTx, id)
	if err != nil {
		return nil, err
	}

	return event, nil
}

// AppendEntry persists one ledger entry under the event.
func (r *EventRepository) AppendEntry(ctx context.Context, tx usecase.Transaction, eventID string, entry *domain.LedgerEntry) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO ledger_entries (` + ledgerEntryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := pgxTx.Exec(ctx, query,
		entry.ID,
		eventID,
		entry.Date,
		entry.PaymentMethod,
		entry.Detail,
		entry.Income.ARS,
		entry.Income.USD,
		entry.Expense.ARS,
		entry.Expense.USD,
		entry.ProviderID,
		entry.CategoryID,
		entry.IsClientPayment,
		entry.CreatedBy,
		entry.CreatedAt,
	)

	return err
}

// UpdatePaymentStatus saves the payment status and bumps the aggregate
// version. The WHERE clause on version is the optimistic concurrency
// check; zero rows affected means another writer got there first.
func (r *EventRepository) UpdatePaymentStatus(ctx context.Context, tx usecase.Transaction, eventID string, status domain.PaymentStatus, expectedVersion int64, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		UPDATE events
		SET payment_total_budget = $2,
		    anticipo_received = $3,
		    segundo_pago = $4,
		    tercer_pago = $5,
		    version = version + 1,
		    updated_at = $6
		WHERE id = $1 AND version = $7
	`

	tag, err := pgxTx.Exec(ctx, query,
		eventID,
		status.TotalBudget,
		status.AnticipoReceived,
		status.SegundoPago,
		status.TercerPago,
		updatedAt,
		expectedVersion,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrVersionConflict
	}

	return nil
}

// List lists events with pagination, ledgers included.
func (r *EventRepository) List(ctx context.Context, limit, offset int) ([]*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		ORDER BY event_date DESC, id DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*domain.Event
	byID := make(map[string]*domain.Event)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
		byID[event.ID] = event
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(events) == 0 {
		return events, nil
	}

	ids := make([]string, 0, len(events))
	for _, event := range events {
		ids = append(ids, event.ID)
	}

	entryQuery := `
		SELECT ` + ledgerEntryColumns + `
		FROM ledger_entries
		WHERE event_id = ANY($1)
		ORDER BY created_at, id
	`

	entryRows, err := r.pool.Query(ctx, entryQuery, ids)
	if err != nil {
		return nil, err
	}
	defer entryRows.Close()

	for entryRows.Next() {
		entry, eventID, err := scanLedgerEntry(entryRows)
		if err != nil {
			return nil, err
		}
		if event, ok := byID[eventID]; ok {
			event.Entries = append(event.Entries, *entry)
		}
	}

	return events, entryRows.Err()
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (r *EventRepository) listEntries(ctx context.Context, q querier, eventID string) ([]domain.LedgerEntry, error) {
	query := `
		SELECT ` + ledgerEntryColumns + `
		FROM ledger_entries
		WHERE event_id = $1
		ORDER BY created_at, id
	`

	rows, err := q.Query(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		entry, _, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}

	return entries, rows.Err()
}

func scanEvent(row pgx.Row) (*domain.Event, error) {
	var event domain.Event
	err := row.Scan(
		&event.ID,
		&event.Header.ClientName,
		&event.Header.ClientPhone,
		&event.Header.EventType,
		&event.Header.EventDate,
		&event.Header.TotalBudgetNoIVA,
		&event.Header.IVAAmount,
		&event.Header.FinalBudget,
		&event.PaymentStatus.TotalBudget,
		&event.PaymentStatus.AnticipoReceived,
		&event.PaymentStatus.SegundoPago,
		&event.PaymentStatus.TercerPago,
		&event.Version,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &event, nil
}

func scanLedgerEntry(row pgx.Row) (*domain.LedgerEntry, string, error) {
	var entry domain.LedgerEntry
	var eventID string
	err := row.Scan(
		&entry.ID,
		&eventID,
		&entry.Date,
		&entry.PaymentMethod,
		&entry.Detail,
		&entry.Income.ARS,
		&entry.Income.USD,
		&entry.Expense.ARS,
		&entry.Expense.USD,
		&entry.ProviderID,
		&entry.CategoryID,
		&entry.IsClientPayment,
		&entry.CreatedBy,
		&entry.CreatedAt,
	)
	if err != nil {
		return nil, "", err
	}

	return &entry, eventID, nil
}
