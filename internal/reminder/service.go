package reminder

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/tallyhq/tally/internal/ledger"
)

// Cooldown is how long a caller must wait between reminders
const Cooldown = 10 * time.Second

// ErrTooSoon means the caller sent a reminder within the cooldown window
var ErrTooSoon = errors.New("reminder already sent, try again in a few seconds")

// TransactionSource provides read access to live transactions
type TransactionSource interface {
	GetTransaction(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error)
}

// Service validates and rate-limits payment reminders. Delivery is the
// notification provider's job; the ledger only confirms the nudge is
// legitimate and not spam.
type Service struct {
	transactions TransactionSource
	limiter      Limiter
}

// NewService creates a new reminder service
func NewService(transactions TransactionSource, limiter Limiter) *Service {
	return &Service{transactions: transactions, limiter: limiter}
}

// Send asks for a payment reminder on a live transaction. Only the creditor
// may remind, and each caller gets at most one reminder per Cooldown.
func (s *Service) Send(ctx context.Context, callerID int64, transactionID uuid.UUID) error {
	tx, err := s.transactions.GetTransaction(ctx, transactionID)
	if err != nil {
		return err
	}
	if tx == nil {
		return ledger.ErrTransactionNotFound
	}
	if tx.CreditorID != callerID {
		return ledger.ErrNotCreditor
	}

	ok, err := s.limiter.Allow(ctx, fmt.Sprintf("user:%d", callerID), Cooldown)
	if err != nil {
		return err
	}
	if !ok {
		return ErrTooSoon
	}

	log.Printf("reminder requested: transaction=%s creditor=%d debtor=%d", transactionID, tx.CreditorID, tx.DebtorID)
	return nil
}
