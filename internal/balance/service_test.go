package balance

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/tallyhq/tally/internal/ledger"
)

type fakeStore struct {
	totals map[ledger.Side]decimal.Decimal
	err    error
}

func (f *fakeStore) TotalForSide(_ context.Context, _ int64, side ledger.Side) (decimal.Decimal, error) {
	if f.err != nil {
		return decimal.Zero, f.err
	}
	return f.totals[side], nil
}

func TestSummary(t *testing.T) {
	store := &fakeStore{totals: map[ledger.Side]decimal.Decimal{
		ledger.SideDebt:   decimal.RequireFromString("12.50"),
		ledger.SideCredit: decimal.RequireFromString("4.00"),
	}}
	svc := NewService(store)

	summary, err := svc.Summary(context.Background(), 1)
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}

	if !summary.TotalPayable.Equal(decimal.RequireFromString("12.50")) {
		t.Errorf("TotalPayable = %s, want 12.50", summary.TotalPayable)
	}
	if !summary.TotalReceivable.Equal(decimal.RequireFromString("4.00")) {
		t.Errorf("TotalReceivable = %s, want 4.00", summary.TotalReceivable)
	}
}

func TestSummaryEmptyLedger(t *testing.T) {
	store := &fakeStore{totals: map[ledger.Side]decimal.Decimal{}}
	svc := NewService(store)

	summary, err := svc.Summary(context.Background(), 1)
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	if !summary.TotalPayable.IsZero() || !summary.TotalReceivable.IsZero() {
		t.Errorf("empty ledger totals = %s/%s, want 0/0", summary.TotalPayable, summary.TotalReceivable)
	}
}

func TestSummaryPropagatesStoreError(t *testing.T) {
	wantErr := errors.New("connection reset")
	svc := NewService(&fakeStore{err: wantErr})

	if _, err := svc.Summary(context.Background(), 1); !errors.Is(err, wantErr) {
		t.Fatalf("Summary() error = %v, want %v", err, wantErr)
	}
}
