package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/tallyhq/tally/internal/archive"
)

// Repository is the Postgres-backed transaction store
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new ledger repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateTransaction inserts both subledger entries and the line items in one
// database transaction
func (r *Repository) CreateTransaction(ctx context.Context, t *Transaction) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	entryQuery := `
		INSERT INTO ledger_entries (transaction_id, side, owner_id, counterparty_id, total, date_issued)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for _, e := range t.Entries() {
		if _, err := tx.ExecContext(ctx, entryQuery,
			e.TransactionID, e.Side, e.OwnerID, e.CounterpartyID, e.Total, e.DateIssued,
		); err != nil {
			return fmt.Errorf("failed to create %s entry: %w", e.Side, err)
		}
	}

	itemQuery := `
		INSERT INTO items (transaction_id, description, amount)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	for _, item := range t.Items {
		if err := tx.QueryRowContext(ctx, itemQuery,
			t.ID, item.Description, item.Amount,
		).Scan(&item.ID); err != nil {
			return fmt.Errorf("failed to create item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetTransaction retrieves a live transaction with its items
func (r *Repository) GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	query := `
		SELECT transaction_id, counterparty_id, owner_id, total, date_issued
		FROM ledger_entries
		WHERE transaction_id = $1 AND side = $2
	`

	t := &Transaction{}
	err := r.db.QueryRowContext(ctx, query, id, SideDebt).Scan(
		&t.ID,
		&t.CreditorID,
		&t.DebtorID,
		&t.Total,
		&t.DateIssued,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	items, err := r.itemsByTransaction(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	t.Items = items[id]

	return t, nil
}

// ListEntries retrieves one side of a user's live subledger, oldest first
func (r *Repository) ListEntries(ctx context.Context, ownerID int64, side Side) ([]*Entry, error) {
	query := `
		SELECT e.transaction_id, e.side, e.owner_id, e.counterparty_id, e.total, e.date_issued,
		       u.username AS counterparty_username
		FROM ledger_entries e
		JOIN users u ON e.counterparty_id = u.id
		WHERE e.owner_id = $1 AND e.side = $2
		ORDER BY e.date_issued ASC
	`

	rows, err := r.db.QueryContext(ctx, query, ownerID, side)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	var ids []uuid.UUID
	for rows.Next() {
		entry := &Entry{}
		if err := rows.Scan(
			&entry.TransactionID,
			&entry.Side,
			&entry.OwnerID,
			&entry.CounterpartyID,
			&entry.Total,
			&entry.DateIssued,
			&entry.CounterpartyUsername,
		); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, entry)
		ids = append(ids, entry.TransactionID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	if len(ids) > 0 {
		items, err := r.itemsByTransaction(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			entry.Items = items[entry.TransactionID]
		}
	}

	return entries, nil
}

// itemsByTransaction fetches line items for a batch of transactions in one query
func (r *Repository) itemsByTransaction(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]*Item, error) {
	idStrings := make([]string, len(ids))
	for i, id := range ids {
		idStrings[i] = id.String()
	}

	query := `
		SELECT id, transaction_id, description, amount
		FROM items
		WHERE transaction_id = ANY($1::uuid[])
		ORDER BY id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(idStrings))
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	items := make(map[uuid.UUID][]*Item)
	for rows.Next() {
		item := &Item{}
		if err := rows.Scan(&item.ID, &item.TransactionID, &item.Description, &item.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items[item.TransactionID] = append(items[item.TransactionID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	return items, nil
}

// Resolve archives and deletes a live transaction atomically. Both entry
// rows are locked first so a racing resolve observes either the live pair
// or the archives, never a mix.
func (r *Repository) Resolve(ctx context.Context, id uuid.UUID, callerID int64, role Role, settledAt time.Time) ([]*archive.Record, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin resolution: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, `
		SELECT side, owner_id, counterparty_id, total, date_issued
		FROM ledger_entries
		WHERE transaction_id = $1
		FOR UPDATE
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to lock entries: %w", err)
	}

	entries := make(map[Side]*Entry)
	for rows.Next() {
		entry := &Entry{TransactionID: id}
		if err := rows.Scan(&entry.Side, &entry.OwnerID, &entry.CounterpartyID, &entry.Total, &entry.DateIssued); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries[entry.Side] = entry
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("failed to lock entries: %w", err)
	}
	rows.Close()

	if len(entries) == 0 {
		var archived bool
		err := tx.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM archives WHERE transaction_id = $1)`, id,
		).Scan(&archived)
		if err != nil {
			return nil, fmt.Errorf("failed to check archives: %w", err)
		}
		if archived {
			return nil, ErrAlreadyResolved
		}
		return nil, ErrTransactionNotFound
	}

	debt, credit := entries[SideDebt], entries[SideCredit]
	if debt == nil || credit == nil {
		// A lone entry means a past write bypassed the pairing transaction
		return nil, fmt.Errorf("transaction %s has an unpaired entry", id)
	}

	var status archive.Status
	switch role {
	case RoleDebtor:
		if debt.OwnerID != callerID {
			return nil, ErrNotDebtor
		}
		status = archive.StatusPaid
	case RoleCreditor:
		if credit.OwnerID != callerID {
			return nil, ErrNotCreditor
		}
		status = archive.StatusCancelled
	default:
		return nil, fmt.Errorf("unknown role %q", role)
	}

	records := []*archive.Record{
		{
			TransactionID:  id,
			OwnerID:        debt.OwnerID,
			CounterpartyID: debt.CounterpartyID,
			Type:           archive.TypeDebt,
			Status:         status,
			Total:          debt.Total,
			DateIssued:     debt.DateIssued,
			DateSettled:    settledAt,
		},
		{
			TransactionID:  id,
			OwnerID:        credit.OwnerID,
			CounterpartyID: credit.CounterpartyID,
			Type:           archive.TypeCredit,
			Status:         status,
			Total:          credit.Total,
			DateIssued:     credit.DateIssued,
			DateSettled:    settledAt,
		},
	}

	archiveQuery := `
		INSERT INTO archives (transaction_id, owner_id, counterparty_id, type, status, total, date_issued, date_settled)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	for _, rec := range records {
		if _, err := tx.ExecContext(ctx, archiveQuery,
			rec.TransactionID, rec.OwnerID, rec.CounterpartyID, rec.Type,
			rec.Status, rec.Total, rec.DateIssued, rec.DateSettled,
		); err != nil {
			return nil, fmt.Errorf("failed to create archive record: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM items WHERE transaction_id = $1`, id); err != nil {
		return nil, fmt.Errorf("failed to delete items: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM ledger_entries WHERE transaction_id = $1`, id); err != nil {
		return nil, fmt.Errorf("failed to delete entries: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit resolution: %w", err)
	}

	return records, nil
}
