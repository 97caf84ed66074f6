package archive

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository reads the append-only archive. Writes happen inside the ledger
// resolution transaction, never here.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new archive repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// ListByOwner retrieves a user's archive records, most recently settled first
func (r *Repository) ListByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]*Record, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM archives WHERE owner_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, ownerID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count archives: %w", err)
	}

	query := `
		SELECT a.transaction_id, a.owner_id, a.counterparty_id, a.type, a.status,
		       a.total, a.date_issued, a.date_settled,
		       u.username AS counterparty_username
		FROM archives a
		JOIN users u ON a.counterparty_id = u.id
		WHERE a.owner_id = $1
		ORDER BY a.date_settled DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list archives: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		rec := &Record{}
		if err := rows.Scan(
			&rec.TransactionID,
			&rec.OwnerID,
			&rec.CounterpartyID,
			&rec.Type,
			&rec.Status,
			&rec.Total,
			&rec.DateIssued,
			&rec.DateSettled,
			&rec.CounterpartyUsername,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan archive record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to list archives: %w", err)
	}

	return records, total, nil
}
