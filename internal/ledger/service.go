package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tallyhq/tally/internal/archive"
)

// Common errors
var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrSelfTransaction     = errors.New("creditor and debtor must be different users")
	ErrNoItems             = errors.New("transaction must have at least one item")
	ErrNegativeAmount      = errors.New("item amount cannot be negative")
	ErrZeroTotal           = errors.New("transaction total must be greater than zero")
	ErrNotDebtor           = errors.New("only the debtor can settle a transaction")
	ErrNotCreditor         = errors.New("only the creditor can cancel a transaction")
	ErrNotParticipant      = errors.New("caller is not a party to this transaction")
	ErrAlreadyResolved     = errors.New("transaction already resolved")
)

// Service enforces the transaction lifecycle: create a mirrored debt/credit
// pair, then resolve it exactly once from either side
type Service struct {
	store Store
	now   func() time.Time
}

// NewService creates a new ledger service
func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Create records a new transaction: one debt entry under the debtor and one
// mirrored credit entry under the creditor, total equal to the item sum
func (s *Service) Create(ctx context.Context, creditorID int64, req *CreateTransactionRequest) (*Transaction, error) {
	if creditorID == req.DebtorID {
		return nil, ErrSelfTransaction
	}
	if len(req.Items) == 0 {
		return nil, ErrNoItems
	}

	total := decimal.Zero
	items := make([]*Item, len(req.Items))
	for i, it := range req.Items {
		if it.Amount.IsNegative() {
			return nil, ErrNegativeAmount
		}
		total = total.Add(it.Amount)
		items[i] = &Item{Description: it.Description, Amount: it.Amount}
	}
	if !total.IsPositive() {
		return nil, ErrZeroTotal
	}

	tx := &Transaction{
		ID:         uuid.New(),
		CreditorID: creditorID,
		DebtorID:   req.DebtorID,
		Total:      total,
		DateIssued: s.now(),
		Items:      items,
	}
	for _, item := range items {
		item.TransactionID = tx.ID
	}

	if err := s.store.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

// Get retrieves a live transaction; only its two parties may read it
func (s *Service) Get(ctx context.Context, id uuid.UUID, callerID int64) (*Transaction, error) {
	tx, err := s.store.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, ErrTransactionNotFound
	}
	if tx.CreditorID != callerID && tx.DebtorID != callerID {
		return nil, ErrNotParticipant
	}
	return tx, nil
}

// ListDebts returns the caller's live debts, oldest first
func (s *Service) ListDebts(ctx context.Context, userID int64) ([]*Entry, error) {
	return s.store.ListEntries(ctx, userID, SideDebt)
}

// ListCredits returns the caller's live credits, oldest first
func (s *Service) ListCredits(ctx context.Context, userID int64) ([]*Entry, error) {
	return s.store.ListEntries(ctx, userID, SideCredit)
}

// Resolve ends a live transaction. The debtor settles (status PAID), the
// creditor cancels (status CANCELLED); either way both live entries and the
// items are removed and one archive record is written per party, all in a
// single storage transaction. Resolving an already-resolved id fails with
// ErrAlreadyResolved.
func (s *Service) Resolve(ctx context.Context, id uuid.UUID, callerID int64, role Role) ([]*archive.Record, error) {
	return s.store.Resolve(ctx, id, callerID, role, s.now())
}
