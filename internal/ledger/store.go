package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tallyhq/tally/internal/archive"
)

// Store is the persistence contract for live transactions.
//
// Implementations must make CreateTransaction and Resolve atomic: either
// every row of the transaction is written (or removed, for Resolve) or none
// are. Resolve performs the two archive inserts in the same transaction as
// the live-record deletes, so a crash can never leave one party archived
// and the other live.
type Store interface {
	// CreateTransaction persists both subledger entries and the line items
	CreateTransaction(ctx context.Context, tx *Transaction) error

	// GetTransaction returns a live transaction with its items, or nil if
	// no live entries exist for the id
	GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error)

	// ListEntries returns the live entries owned by a user on one side of
	// the ledger, oldest first, items included
	ListEntries(ctx context.Context, ownerID int64, side Side) ([]*Entry, error)

	// Resolve atomically archives and deletes a live transaction on behalf
	// of the caller acting in the given role. It returns the two archive
	// records it created, or ErrTransactionNotFound, ErrAlreadyResolved,
	// ErrNotDebtor or ErrNotCreditor.
	Resolve(ctx context.Context, id uuid.UUID, callerID int64, role Role, settledAt time.Time) ([]*archive.Record, error)
}
