package archive

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status records how a transaction was resolved
type Status string

const (
	StatusPaid      Status = "PAID"      // settled by the debtor
	StatusCancelled Status = "CANCELLED" // cancelled by the creditor
)

// Type is the perspective of the owning user on the archived transaction
type Type string

const (
	TypeDebt   Type = "DEBT"
	TypeCredit Type = "CREDIT"
)

// Record is one party's immutable view of a resolved transaction.
// Every resolution produces exactly two records, one per party, and
// records are never updated or deleted.
type Record struct {
	TransactionID  uuid.UUID       `json:"transaction_id"`
	OwnerID        int64           `json:"owner_id"`
	CounterpartyID int64           `json:"counterparty_id"`
	Type           Type            `json:"type"`
	Status         Status          `json:"status"`
	Total          decimal.Decimal `json:"total"`
	DateIssued     time.Time       `json:"date_issued"`
	DateSettled    time.Time       `json:"date_settled"`

	// Populated via JOIN
	CounterpartyUsername string `json:"counterparty_username,omitempty"`
}
