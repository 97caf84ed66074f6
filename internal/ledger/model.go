package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Side identifies which half of a transaction a subledger entry represents
type Side string

const (
	SideDebt   Side = "DEBT"
	SideCredit Side = "CREDIT"
)

// Role identifies which party is acting on a transaction
type Role string

const (
	RoleDebtor   Role = "DEBTOR"
	RoleCreditor Role = "CREDITOR"
)

// Item is a line entry belonging to exactly one transaction
type Item struct {
	ID            int64           `json:"id"`
	TransactionID uuid.UUID       `json:"transaction_id"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
}

// Entry is one side's view of a live transaction. The debtor owns the DEBT
// entry, the creditor owns the mirrored CREDIT entry; both share the
// transaction id and total.
type Entry struct {
	TransactionID  uuid.UUID       `json:"transaction_id"`
	Side           Side            `json:"side"`
	OwnerID        int64           `json:"owner_id"`
	CounterpartyID int64           `json:"counterparty_id"`
	Total          decimal.Decimal `json:"total"`
	DateIssued     time.Time       `json:"date_issued"`

	// Populated via JOIN
	CounterpartyUsername string `json:"counterparty_username,omitempty"`

	Items []*Item `json:"items,omitempty"`
}

// Overdue reports whether more than six calendar days have passed between
// the entry's issue date and now. Day difference is calendar-based, not
// elapsed hours.
func (e *Entry) Overdue(now time.Time) bool {
	return calendarDaysBetween(e.DateIssued, now) > 6
}

func calendarDaysBetween(from, to time.Time) int {
	loc := from.Location()
	to = to.In(loc)
	fromDay := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, loc)
	toDay := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, loc)
	return int(toDay.Sub(fromDay).Hours() / 24)
}

// Transaction is the logical pairing of one debt and one credit entry plus
// its line items
type Transaction struct {
	ID         uuid.UUID       `json:"id"`
	CreditorID int64           `json:"creditor_id"`
	DebtorID   int64           `json:"debtor_id"`
	Total      decimal.Decimal `json:"total"`
	DateIssued time.Time       `json:"date_issued"`
	Items      []*Item         `json:"items"`
}

// Entries returns the two subledger rows a live transaction is stored as
func (t *Transaction) Entries() []*Entry {
	return []*Entry{
		{
			TransactionID:  t.ID,
			Side:           SideDebt,
			OwnerID:        t.DebtorID,
			CounterpartyID: t.CreditorID,
			Total:          t.Total,
			DateIssued:     t.DateIssued,
		},
		{
			TransactionID:  t.ID,
			Side:           SideCredit,
			OwnerID:        t.CreditorID,
			CounterpartyID: t.DebtorID,
			Total:          t.Total,
			DateIssued:     t.DateIssued,
		},
	}
}
