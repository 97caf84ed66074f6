package ledger

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tallyhq/tally/internal/archive"
)

// memStore is an in-memory Store used by the tests in this package. Resolve
// holds the lock for the whole operation, mirroring the atomicity the
// Postgres repository gets from its transaction.
type memStore struct {
	mu           sync.Mutex
	transactions map[uuid.UUID]*Transaction
	archives     []*archive.Record
}

func newMemStore() *memStore {
	return &memStore{transactions: make(map[uuid.UUID]*Transaction)}
}

func (m *memStore) CreateTransaction(_ context.Context, t *Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions[t.ID] = t
	return nil
}

func (m *memStore) GetTransaction(_ context.Context, id uuid.UUID) (*Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.transactions[id]
	if !ok {
		return nil, nil
	}
	return t, nil
}

func (m *memStore) ListEntries(_ context.Context, ownerID int64, side Side) ([]*Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var entries []*Entry
	for _, t := range m.transactions {
		for _, e := range t.Entries() {
			if e.OwnerID == ownerID && e.Side == side {
				e.Items = t.Items
				entries = append(entries, e)
			}
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].DateIssued.Before(entries[j].DateIssued)
	})
	return entries, nil
}

func (m *memStore) Resolve(_ context.Context, id uuid.UUID, callerID int64, role Role, settledAt time.Time) ([]*archive.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.transactions[id]
	if !ok {
		for _, rec := range m.archives {
			if rec.TransactionID == id {
				return nil, ErrAlreadyResolved
			}
		}
		return nil, ErrTransactionNotFound
	}

	var status archive.Status
	switch role {
	case RoleDebtor:
		if t.DebtorID != callerID {
			return nil, ErrNotDebtor
		}
		status = archive.StatusPaid
	case RoleCreditor:
		if t.CreditorID != callerID {
			return nil, ErrNotCreditor
		}
		status = archive.StatusCancelled
	}

	records := []*archive.Record{
		{
			TransactionID:  id,
			OwnerID:        t.DebtorID,
			CounterpartyID: t.CreditorID,
			Type:           archive.TypeDebt,
			Status:         status,
			Total:          t.Total,
			DateIssued:     t.DateIssued,
			DateSettled:    settledAt,
		},
		{
			TransactionID:  id,
			OwnerID:        t.CreditorID,
			CounterpartyID: t.DebtorID,
			Type:           archive.TypeCredit,
			Status:         status,
			Total:          t.Total,
			DateIssued:     t.DateIssued,
			DateSettled:    settledAt,
		},
	}

	delete(m.transactions, id)
	m.archives = append(m.archives, records...)
	return records, nil
}

func (m *memStore) archivesFor(id uuid.UUID) []*archive.Record {
	m.mu.Lock()
	defer m.mu.Unlock()

	var records []*archive.Record
	for _, rec := range m.archives {
		if rec.TransactionID == id {
			records = append(records, rec)
		}
	}
	return records
}
