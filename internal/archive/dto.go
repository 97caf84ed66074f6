package archive

import "github.com/shopspring/decimal"

const displayTimeLayout = "15:04 Mon, 2 Jan 2006"

// RecordResponse represents one archived transaction for the owning user
type RecordResponse struct {
	TransactionID        string          `json:"transaction_id"`
	CounterpartyID       int64           `json:"counterparty_id"`
	CounterpartyUsername string          `json:"counterparty_username,omitempty"`
	Type                 Type            `json:"type"`
	Status               Status          `json:"status"`
	Total                decimal.Decimal `json:"total"`
	DateIssued           string          `json:"date_issued"`
	DateSettled          string          `json:"date_settled"`
}

// ToResponse converts a Record model to a RecordResponse DTO
func (r *Record) ToResponse() *RecordResponse {
	return &RecordResponse{
		TransactionID:        r.TransactionID.String(),
		CounterpartyID:       r.CounterpartyID,
		CounterpartyUsername: r.CounterpartyUsername,
		Type:                 r.Type,
		Status:               r.Status,
		Total:                r.Total,
		DateIssued:           r.DateIssued.Format(displayTimeLayout),
		DateSettled:          r.DateSettled.Format(displayTimeLayout),
	}
}
