package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// ProviderRepository implements usecase.ProviderDirectory.
type ProviderRepository struct {
	pool *pgxpool.Pool
}

// NewProviderRepository creates a new ProviderRepository.
func NewProviderRepository(pool *pgxpool.Pool) *ProviderRepository {
	return &ProviderRepository{pool: pool}
}

// IncrementUsage bumps a provider's usage counter and running spend
// totals. Unknown providers are created on first use so ad-hoc
// purchases still accumulate history.
func (r *ProviderRepository) IncrementUsage(ctx context.Context, providerID string, amountARS, amountUSD decimal.Decimal) error {
	query := `
		INSERT INTO providers (id, times_used, total_spent_ars, total_spent_usd, created_at, updated_at)
		VALUES ($1, 1, $2, $3, now(), now())
		ON CONFLICT (id) DO UPDATE
		SET times_used = providers.times_used + 1,
		    total_spent_ars = providers.total_spent_ars + EXCLUDED.total_spent_ars,
		    total_spent_usd = providers.total_spent_usd + EXCLUDED.total_spent_usd,
		    updated_at = now()
	`

	_, err := r.pool.Exec(ctx, query, providerID, amountARS, amountUSD)
	return err
}
