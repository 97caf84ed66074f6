package balance

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tallyhq/tally/internal/ledger"
)

// Store is the aggregation contract over the live subledger
type Store interface {
	TotalForSide(ctx context.Context, ownerID int64, side ledger.Side) (decimal.Decimal, error)
}

// Summary holds a user's position over their live transactions. Both totals
// are recomputed from the live set on every call, so they can never drift
// from the transaction store.
type Summary struct {
	TotalPayable    decimal.Decimal `json:"total_payable"`
	TotalReceivable decimal.Decimal `json:"total_receivable"`
}

// Service handles balance aggregation
type Service struct {
	store Store
}

// NewService creates a new balance service
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Summary returns what the user owes and is owed across live transactions
func (s *Service) Summary(ctx context.Context, userID int64) (*Summary, error) {
	payable, err := s.store.TotalForSide(ctx, userID, ledger.SideDebt)
	if err != nil {
		return nil, err
	}
	receivable, err := s.store.TotalForSide(ctx, userID, ledger.SideCredit)
	if err != nil {
		return nil, err
	}

	return &Summary{
		TotalPayable:    payable,
		TotalReceivable: receivable,
	}, nil
}
