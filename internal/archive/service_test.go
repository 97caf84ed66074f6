package archive

import (
	"context"
	"testing"
)

type fakeStore struct {
	gotLimit  int
	gotOffset int
}

func (f *fakeStore) ListByOwner(_ context.Context, _ int64, limit, offset int) ([]*Record, int, error) {
	f.gotLimit = limit
	f.gotOffset = offset
	return nil, 0, nil
}

func TestListByUserIDClampsPaging(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		perPage    int
		wantLimit  int
		wantOffset int
	}{
		{name: "defaults", page: 0, perPage: 0, wantLimit: 20, wantOffset: 0},
		{name: "second page", page: 2, perPage: 10, wantLimit: 10, wantOffset: 10},
		{name: "per_page capped at 100", page: 1, perPage: 500, wantLimit: 20, wantOffset: 0},
		{name: "negative page", page: -3, perPage: 5, wantLimit: 5, wantOffset: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			svc := NewService(store)

			if _, _, err := svc.ListByUserID(context.Background(), 1, tt.page, tt.perPage); err != nil {
				t.Fatalf("ListByUserID() error = %v", err)
			}
			if store.gotLimit != tt.wantLimit || store.gotOffset != tt.wantOffset {
				t.Fatalf("limit/offset = %d/%d, want %d/%d", store.gotLimit, store.gotOffset, tt.wantLimit, tt.wantOffset)
			}
		})
	}
}
