package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/hermanas/caja/internal/domain"
)

// RegisterRepository implements usecase.RegisterRepository.
type RegisterRepository struct {
	pool *pgxpool.Pool
}

// NewRegisterRepository creates a new RegisterRepository.
func NewRegisterRepository(pool *pgxpool.Pool) *RegisterRepository {
	return &RegisterRepository{pool: pool}
}

const registerEntryColumns = `
	id, register, date, description,
	income_ars, income_usd, expense_ars, expense_usd,
	approval_status, approvals, sale,
	created_by, created_at, updated_at, version
`

// approvalRecordRow is the JSONB shape of one sign-off.
type approvalRecordRow struct {
	ApprovedBy string    `json:"approved_by"`
	ApprovedAt time.Time `json:"approved_at"`
}

// saleDetailsRow is the JSONB shape of the shop-sale fields.
type saleDetailsRow struct {
	SKU        string          `json:"sku"`
	Quantity   int             `json:"quantity"`
	Client     string          `json:"client,omitempty"`
	Provider   string          `json:"provider,omitempty"`
	ProviderID string          `json:"provider_id,omitempty"`
	CostARS    decimal.Decimal `json:"cost_ars"`
}

// CreateEntry inserts a new cash register entry.
func (r *RegisterRepository) CreateEntry(ctx context.Context, entry *domain.CashRegisterEntry) error {
	approvals, sale, err := marshalEntryJSON(entry)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO register_entries (` + registerEntryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err = r.pool.Exec(ctx, query,
		entry.ID,
		entry.Register,
		entry.Date,
		entry.Description,
		entry.Income.ARS,
		entry.Income.USD,
		entry.Expense.ARS,
		entry.Expense.USD,
		entry.ApprovalStatus,
		approvals,
		sale,
		entry.CreatedBy,
		entry.CreatedAt,
		entry.UpdatedAt,
		entry.Version,
	)

	return err
}

// GetEntryByID retrieves a register entry by ID.
func (r *RegisterRepository) GetEntryByID(ctx context.Context, id string) (*domain.CashRegisterEntry, error) {
	query := `SELECT ` + registerEntryColumns + ` FROM register_entries WHERE id = $1`

	entry, err := scanRegisterEntry(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, err
	}

	return entry, nil
}

// UpdateApproval saves approval state. The WHERE clause on version is
// the optimistic concurrency check against concurrent approvers.
func (r *RegisterRepository) UpdateApproval(ctx context.Context, entry *domain.CashRegisterEntry) error {
	approvals, _, err := marshalEntryJSON(entry)
	if err != nil {
		return err
	}

	query := `
		UPDATE register_entries
		SET approval_status = $2,
		    approvals = $3,
		    updated_at = $4,
		    version = $5
		WHERE id = $1 AND version = $6
	`

	tag, err := r.pool.Exec(ctx, query,
		entry.ID,
		entry.ApprovalStatus,
		approvals,
		entry.UpdatedAt,
		entry.Version,
		entry.Version-1,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrVersionConflict
	}

	return nil
}

// ListByRegister lists a register's entries, newest first.
func (r *RegisterRepository) ListByRegister(ctx context.Context, register domain.RegisterKind, limit, offset int) ([]*domain.CashRegisterEntry, error) {
	query := `
		SELECT ` + registerEntryColumns + `
		FROM register_entries
		WHERE register = $1
		ORDER BY date DESC, created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, register, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectRegisterEntries(rows)
}

// ListByScope lists a register's entries over a count period. The scope
// ref labels the count itself; register entries are keyed by register
// and date only.
func (r *RegisterRepository) ListByScope(ctx context.Context, register domain.RegisterKind, scope string, from, to time.Time) ([]*domain.CashRegisterEntry, error) {
	query := `
		SELECT ` + registerEntryColumns + `
		FROM register_entries
		WHERE register = $1
	`
	args := []any{register}

	if !from.IsZero() {
		args = append(args, from)
		query += ` AND date >= $2`
	}
	if !to.IsZero() {
		args = append(args, to)
		if from.IsZero() {
			query += ` AND date <= $2`
		} else {
			query += ` AND date <= $3`
		}
	}

	query += ` ORDER BY date, created_at`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectRegisterEntries(rows)
}

func collectRegisterEntries(rows pgx.Rows) ([]*domain.CashRegisterEntry, error) {
	var entries []*domain.CashRegisterEntry
	for rows.Next() {
		entry, err := scanRegisterEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func marshalEntryJSON(entry *domain.CashRegisterEntry) ([]byte, []byte, error) {
	approvalRows := make(map[string]approvalRecordRow, len(entry.Approvals))
	for role, record := range entry.Approvals {
		approvalRows[string(role)] = approvalRecordRow{
			ApprovedBy: record.ApprovedBy,
			ApprovedAt: record.ApprovedAt,
		}
	}

	approvals, err := json.Marshal(approvalRows)
	if err != nil {
		return nil, nil, err
	}

	var sale []byte
	if entry.Sale != nil {
		sale, err = json.Marshal(saleDetailsRow{
			SKU:        entry.Sale.SKU,
			Quantity:   entry.Sale.Quantity,
			Client:     entry.Sale.Client,
			Provider:   entry.Sale.Provider,
			ProviderID: entry.Sale.ProviderID,
			CostARS:    entry.Sale.CostARS,
		})
		if err != nil {
			return nil, nil, err
		}
	}

	return approvals, sale, nil
}

func scanRegisterEntry(row pgx.Row) (*domain.CashRegisterEntry, error) {
	var entry domain.CashRegisterEntry
	var approvals []byte
	var sale []byte

	err := row.Scan(
		&entry.ID,
		&entry.Register,
		&entry.Date,
		&entry.Description,
		&entry.Income.ARS,
		&entry.Income.USD,
		&entry.Expense.ARS,
		&entry.Expense.USD,
		&entry.ApprovalStatus,
		&approvals,
		&sale,
		&entry.CreatedBy,
		&entry.CreatedAt,
		&entry.UpdatedAt,
		&entry.Version,
	)
	if err != nil {
		return nil, err
	}

	var approvalRows map[string]approvalRecordRow
	if len(approvals) > 0 {
		if err := json.Unmarshal(approvals, &approvalRows); err != nil {
			return nil, err
		}
	}
	entry.Approvals = make(map[domain.ApproverRole]domain.ApprovalRecord, len(approvalRows))
	for role, record := range approvalRows {
		entry.Approvals[domain.ApproverRole(role)] = domain.ApprovalRecord{
			ApprovedBy: record.ApprovedBy,
			ApprovedAt: record.ApprovedAt,
		}
	}

	if len(sale) > 0 {
		var saleRow saleDetailsRow
		if err := json.Unmarshal(sale, &saleRow); err != nil {
			return nil, err
		}
		entry.Sale = &domain.SaleDetails{
			SKU:        saleRow.SKU,
			Quantity:   saleRow.Quantity,
			Client:     saleRow.Client,
			Provider:   saleRow.Provider,
			ProviderID: saleRow.ProviderID,
			CostARS:    saleRow.CostARS,
		}
	}

	return &entry, nil
}
