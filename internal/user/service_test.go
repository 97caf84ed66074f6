package user

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeStore struct {
	nextID int64
	users  map[int64]*User
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: make(map[int64]*User)}
}

func (f *fakeStore) Create(_ context.Context, u *User) (*User, error) {
	f.nextID++
	created := *u
	created.ID = f.nextID
	created.CreatedAt = time.Now()
	f.users[created.ID] = &created
	return &created, nil
}

func (f *fakeStore) GetByID(_ context.Context, id int64) (*User, error) {
	return f.users[id], nil
}

func (f *fakeStore) GetByUsername(_ context.Context, username string) (*User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) GetByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) List(_ context.Context, _, _ int) ([]*User, int, error) {
	var users []*User
	for _, u := range f.users {
		users = append(users, u)
	}
	return users, len(users), nil
}

func (f *fakeStore) Update(_ context.Context, id int64, req *UpdateUserRequest) (*User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.ProfileImageURL != nil {
		u.ProfileImageURL = req.ProfileImageURL
	}
	return u, nil
}

func TestCreateNormalizesUsername(t *testing.T) {
	svc := NewService(newFakeStore())

	created, err := svc.Create(context.Background(), &CreateUserRequest{
		Name:     "Wei Jie",
		Username: "  WeiJie97 ",
		Email:    "weijie@example.com",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.Username != "weijie97" {
		t.Fatalf("username = %q, want %q", created.Username, "weijie97")
	}

	// Lookup is case-insensitive
	found, err := svc.GetByUsername(context.Background(), "WEIJIE97")
	if err != nil {
		t.Fatalf("GetByUsername() error = %v", err)
	}
	if found.ID != created.ID {
		t.Fatalf("GetByUsername() found id %d, want %d", found.ID, created.ID)
	}
}

func TestCreateConflicts(t *testing.T) {
	svc := NewService(newFakeStore())

	if _, err := svc.Create(context.Background(), &CreateUserRequest{
		Name: "Wei Jie", Username: "weijie97", Email: "weijie@example.com",
	}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	tests := []struct {
		name    string
		req     *CreateUserRequest
		wantErr error
	}{
		{
			name:    "duplicate email",
			req:     &CreateUserRequest{Name: "Other", Username: "other", Email: "weijie@example.com"},
			wantErr: ErrEmailAlreadyInUse,
		},
		{
			name:    "duplicate username different case",
			req:     &CreateUserRequest{Name: "Other", Username: "WeiJie97", Email: "other@example.com"},
			wantErr: ErrUsernameTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Create(context.Background(), tt.req); !errors.Is(err, tt.wantErr) {
				t.Fatalf("Create() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetByIDNotFound(t *testing.T) {
	svc := NewService(newFakeStore())

	if _, err := svc.GetByID(context.Background(), 42); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("GetByID() error = %v, want ErrUserNotFound", err)
	}
}

func TestUpdate(t *testing.T) {
	svc := NewService(newFakeStore())

	created, err := svc.Create(context.Background(), &CreateUserRequest{
		Name: "Wei Jie", Username: "weijie97", Email: "weijie@example.com",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	newName := "Wei Jie Tan"
	updated, err := svc.Update(context.Background(), created.ID, &UpdateUserRequest{Name: &newName})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Name != newName {
		t.Errorf("name = %q, want %q", updated.Name, newName)
	}
	if updated.Username != "weijie97" {
		t.Errorf("username changed on update: %q", updated.Username)
	}

	if _, err := svc.Update(context.Background(), 999, &UpdateUserRequest{Name: &newName}); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("Update() on unknown id error = %v, want ErrUserNotFound", err)
	}
}
