package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// InventoryRepository implements usecase.Inventory against the shop
// products table.
type InventoryRepository struct {
	pool *pgxpool.Pool
}

// NewInventoryRepository creates a new InventoryRepository.
func NewInventoryRepository(pool *pgxpool.Pool) *InventoryRepository {
	return &InventoryRepository{pool: pool}
}

// DecrementStock reduces stock for a SKU and reports the remaining
// level and the product's low-stock threshold. Stock never goes below
// zero; overselling clamps instead of failing the sale.
func (r *InventoryRepository) DecrementStock(ctx context.Context, sku string, qty int) (int, int, error) {
	query := `
		UPDATE products
		SET stock = GREATEST(stock - $2, 0),
		    updated_at = now()
		WHERE sku = $1
		RETURNING stock, low_stock_threshold
	`

	var remaining, threshold int
	err := r.pool.QueryRow(ctx, query, sku, qty).Scan(&remaining, &threshold)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, 0, fmt.Errorf("product %s not found", sku)
	}
	if err != nil {
		return 0, 0, err
	}

	return remaining, threshold, nil
}
