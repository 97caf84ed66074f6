package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tallyhq/tally/internal/archive"
)

// DisplayTimeLayout is the presentation format used by clients for
// transaction timestamps ("HH:mm E, d MMM y" in the mobile app).
const DisplayTimeLayout = "15:04 Mon, 2 Jan 2006"

// ItemRequest is one line item of a new transaction
type ItemRequest struct {
	Description string          `json:"description" validate:"required,max=100"`
	Amount      decimal.Decimal `json:"amount"`
}

// CreateTransactionRequest represents the request to create a transaction.
// The caller is the creditor; the total is computed from the items.
type CreateTransactionRequest struct {
	DebtorID int64         `json:"debtor_id" validate:"required,gt=0"`
	Items    []ItemRequest `json:"items" validate:"required,min=1,dive"`
}

// ItemResponse represents one line item
type ItemResponse struct {
	ID          int64           `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// TransactionResponse represents a transaction from a neutral perspective
type TransactionResponse struct {
	TransactionID string          `json:"transaction_id"`
	CreditorID    int64           `json:"creditor_id"`
	DebtorID      int64           `json:"debtor_id"`
	Total         decimal.Decimal `json:"total"`
	Date          string          `json:"date"`
	Items         []*ItemResponse `json:"items"`
}

// EntryResponse represents one side's view of a live transaction
type EntryResponse struct {
	TransactionID        string          `json:"transaction_id"`
	CounterpartyID       int64           `json:"counterparty_id"`
	CounterpartyUsername string          `json:"counterparty_username,omitempty"`
	Total                decimal.Decimal `json:"total"`
	Date                 string          `json:"date"`
	Overdue              bool            `json:"overdue"`
	Items                []*ItemResponse `json:"items"`
}

// ResolutionResponse represents the caller's archive record after a
// successful settle or cancel
type ResolutionResponse struct {
	TransactionID string          `json:"transaction_id"`
	Type          string          `json:"type"`
	Status        string          `json:"status"`
	Total         decimal.Decimal `json:"total"`
	DateIssued    string          `json:"date_issued"`
	DateSettled   string          `json:"date_settled"`
}

func itemResponses(items []*Item) []*ItemResponse {
	out := make([]*ItemResponse, len(items))
	for i, item := range items {
		out[i] = &ItemResponse{ID: item.ID, Description: item.Description, Amount: item.Amount}
	}
	return out
}

// ToResponse converts a Transaction model to a TransactionResponse DTO
func (t *Transaction) ToResponse() *TransactionResponse {
	return &TransactionResponse{
		TransactionID: t.ID.String(),
		CreditorID:    t.CreditorID,
		DebtorID:      t.DebtorID,
		Total:         t.Total,
		Date:          t.DateIssued.Format(DisplayTimeLayout),
		Items:         itemResponses(t.Items),
	}
}

// ToResponse converts an Entry model to an EntryResponse DTO
func (e *Entry) ToResponse(now time.Time) *EntryResponse {
	return &EntryResponse{
		TransactionID:        e.TransactionID.String(),
		CounterpartyID:       e.CounterpartyID,
		CounterpartyUsername: e.CounterpartyUsername,
		Total:                e.Total,
		Date:                 e.DateIssued.Format(DisplayTimeLayout),
		Overdue:              e.Overdue(now),
		Items:                itemResponses(e.Items),
	}
}

// NewResolutionResponse builds the caller's view of a resolution from the
// archive record owned by them
func NewResolutionResponse(records []*archive.Record, callerID int64) *ResolutionResponse {
	for _, rec := range records {
		if rec.OwnerID != callerID {
			continue
		}
		return &ResolutionResponse{
			TransactionID: rec.TransactionID.String(),
			Type:          string(rec.Type),
			Status:        string(rec.Status),
			Total:         rec.Total,
			DateIssued:    rec.DateIssued.Format(DisplayTimeLayout),
			DateSettled:   rec.DateSettled.Format(DisplayTimeLayout),
		}
	}
	return nil
}
