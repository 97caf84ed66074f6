package archive

import "context"

// Store is the read contract over the archive
type Store interface {
	ListByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]*Record, int, error)
}

// Service handles archive queries
type Service struct {
	store Store
}

// NewService creates a new archive service
func NewService(store Store) *Service {
	return &Service{store: store}
}

// ListByUserID retrieves a user's archive history, newest settled first
func (s *Service) ListByUserID(ctx context.Context, userID int64, page, perPage int) ([]*Record, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.store.ListByOwner(ctx, userID, perPage, offset)
}
