package balance

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tallyhq/tally/internal/ledger"
)

// Repository computes totals over the live subledger
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new balance repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// TotalForSide sums the live entries a user owns on one side of the ledger
func (r *Repository) TotalForSide(ctx context.Context, ownerID int64, side ledger.Side) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(total), 0)
		FROM ledger_entries
		WHERE owner_id = $1 AND side = $2
	`

	var total decimal.Decimal
	if err := r.db.QueryRowContext(ctx, query, ownerID, side).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum %s entries: %w", side, err)
	}

	return total, nil
}
