package ledger

import (
	"context"
	"testing"
	"time"
)

func TestEntryOverdue(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		issued time.Time
		want   bool
	}{
		{
			name:   "seven calendar days ago is overdue",
			issued: now.AddDate(0, 0, -7),
			want:   true,
		},
		{
			name:   "six calendar days ago is not overdue",
			issued: now.AddDate(0, 0, -6),
			want:   false,
		},
		{
			name:   "same day is not overdue",
			issued: now,
			want:   false,
		},
		{
			// 23:00 six days before, checked at 01:00: nearly 7*24 elapsed
			// hours but only six calendar days
			name:   "calendar days not elapsed hours (under)",
			issued: time.Date(2026, 8, 25, 23, 0, 0, 0, time.UTC),
			want:   false,
		},
		{
			// 01:00 seven days before, checked at 23:00 the same weekday:
			// crosses seven midnights regardless of time of day
			name:   "calendar days not elapsed hours (over)",
			issued: time.Date(2026, 8, 24, 1, 0, 0, 0, time.UTC),
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &Entry{DateIssued: tt.issued}
			if got := e.Overdue(now); got != tt.want {
				t.Errorf("Overdue() = %v, want %v (issued %s, now %s)", got, tt.want, tt.issued, now)
			}
		})
	}
}

func TestTransactionEntries(t *testing.T) {
	svc, _ := newTestService()

	tx, err := svc.Create(context.Background(), alice, groceriesRequest())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	entries := tx.Entries()
	if len(entries) != 2 {
		t.Fatalf("Entries() returned %d rows, want 2", len(entries))
	}

	debt, credit := entries[0], entries[1]
	if debt.Side != SideDebt || credit.Side != SideCredit {
		t.Fatalf("sides = %s/%s, want DEBT/CREDIT", debt.Side, credit.Side)
	}
	if debt.OwnerID != bob || debt.CounterpartyID != alice {
		t.Errorf("debt ownership wrong: owner=%d counterparty=%d", debt.OwnerID, debt.CounterpartyID)
	}
	if credit.OwnerID != alice || credit.CounterpartyID != bob {
		t.Errorf("credit ownership wrong: owner=%d counterparty=%d", credit.OwnerID, credit.CounterpartyID)
	}
	if debt.TransactionID != credit.TransactionID || !debt.Total.Equal(credit.Total) {
		t.Error("entries must share transaction id and total")
	}
}
