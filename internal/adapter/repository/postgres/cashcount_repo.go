package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/hermanas/caja/internal/domain"
)

// CashCountRepository implements usecase.CashCountRepository.
type CashCountRepository struct {
	pool *pgxpool.Pool
}

// NewCashCountRepository creates a new CashCountRepository.
func NewCashCountRepository(pool *pgxpool.Pool) *CashCountRepository {
	return &CashCountRepository{pool: pool}
}

const cashCountColumns = `
	id, scope_ref, count_date, count_type,
	counted_ars, counted_usd,
	expected_ars, expected_usd,
	discrepancy_ars, discrepancy_usd,
	discrepancy_pct_ars, discrepancy_pct_usd,
	status, notes, created_by, created_at
`

// Create inserts a new cash count.
func (r *CashCountRepository) Create(ctx context.Context, count *domain.CashCount) error {
	query := `
		INSERT INTO cash_counts (` + cashCountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	var expectedARS, expectedUSD *decimal.Decimal
	if count.Expected != nil {
		expectedARS = &count.Expected.ARS
		expectedUSD = &count.Expected.USD
	}

	var discrepancyARS, discrepancyUSD *decimal.Decimal
	if count.Discrepancy != nil {
		discrepancyARS = &count.Discrepancy.ARS
		discrepancyUSD = &count.Discrepancy.USD
	}

	_, err := r.pool.Exec(ctx, query,
		count.ID,
		count.ScopeRef,
		count.CountDate,
		count.CountType,
		count.Counted.ARS,
		count.Counted.USD,
		expectedARS,
		expectedUSD,
		discrepancyARS,
		discrepancyUSD,
		count.DiscrepancyPctARS,
		count.DiscrepancyPctUSD,
		count.Status,
		count.Notes,
		count.CreatedBy,
		count.CreatedAt,
	)

	return err
}

// GetByID retrieves a cash count by ID.
func (r *CashCountRepository) GetByID(ctx context.Context, id string) (*domain.CashCount, error) {
	query := `SELECT ` + cashCountColumns + ` FROM cash_counts WHERE id = $1`

	count, err := scanCashCount(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCashCountNotFound
		}
		return nil, err
	}

	return count, nil
}

// List lists cash counts, optionally filtered by scope, newest first.
func (r *CashCountRepository) List(ctx context.Context, scope string, limit, offset int) ([]*domain.CashCount, error) {
	query := `
		SELECT ` + cashCountColumns + `
		FROM cash_counts
		WHERE ($1 = '' OR scope_ref = $1)
		ORDER BY count_date DESC, created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, scope, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []*domain.CashCount
	for rows.Next() {
		count, err := scanCashCount(rows)
		if err != nil {
			return nil, err
		}
		counts = append(counts, count)
	}

	return counts, rows.Err()
}

func scanCashCount(row pgx.Row) (*domain.CashCount, error) {
	var count domain.CashCount
	var expectedARS, expectedUSD *decimal.Decimal
	var discrepancyARS, discrepancyUSD *decimal.Decimal

	err := row.Scan(
		&count.ID,
		&count.ScopeRef,
		&count.CountDate,
		&count.CountType,
		&count.Counted.ARS,
		&count.Counted.USD,
		&expectedARS,
		&expectedUSD,
		&discrepancyARS,
		&discrepancyUSD,
		&count.DiscrepancyPctARS,
		&count.DiscrepancyPctUSD,
		&count.Status,
		&count.Notes,
		&count.CreatedBy,
		&count.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if expectedARS != nil && expectedUSD != nil {
		count.Expected = &domain.MoneyPair{ARS: *expectedARS, USD: *expectedUSD}
	}
	if discrepancyARS != nil && discrepancyUSD != nil {
		count.Discrepancy = &domain.SignedPair{ARS: *discrepancyARS, USD: *discrepancyUSD}
	}

	return &count, nil
}
