package customer

import (
	"context"
	"errors"
	"testing"

	"github.com/tourhub/tourhub-api/internal/domain/user"
	"github.com/tourhub/tourhub-api/internal/pkg/apperrors"
)

type fakeRepo struct {
	nextID int64
	byID   map[int64]*Customer
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{nextID: 1, byID: map[int64]*Customer{}}
}

func (f *fakeRepo) Create(ctx context.Context, c *Customer) error {
	c.ID = f.nextID
	c.User.ID = f.nextID
	f.nextID++
	f.byID[c.ID] = c
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id int64) (*Customer, error) {
	return f.byID[id], nil
}

func (f *fakeRepo) GetByUsername(ctx context.Context, username string) (*Customer, error) {
	for _, c := range f.byID {
		if c.User.Username == username {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) List(ctx context.Context, _ *Filter) ([]*Customer, error) {
	out := make([]*Customer, 0, len(f.byID))
	for _, c := range f.byID {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeRepo) ListPage(ctx context.Context, _ *Filter) ([]*Customer, int, error) {
	out, err := f.List(ctx, nil)
	return out, len(out), err
}

type fakeUserRepo struct {
	usernames map[string]bool
	vats      map[string]bool
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return f.usernames[username], nil
}
func (f *fakeUserRepo) ExistsByVAT(ctx context.Context, vat string) (bool, error) {
	return f.vats[vat], nil
}

func newTestService() (*Service, *fakeRepo) {
	repo := newFakeRepo()
	users := &fakeUserRepo{usernames: map[string]bool{}, vats: map[string]bool{}}
	return NewService(repo, users), repo
}

func TestGetByID(t *testing.T) {
	svc, repo := newTestService()
	repo.byID[1] = &Customer{
		ID:       1,
		UUID:     "c-uuid-1",
		IsActive: true,
		User:     user.User{ID: 1, Username: "alice", Lastname: "Papadopoulos"},
	}
	repo.nextID = 2

	resp, err := svc.GetByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("get by id failed: %v", err)
	}
	if resp.UUID != "c-uuid-1" || resp.User.Username != "alice" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.GetByID(context.Background(), 42)
	if !errors.Is(err, ErrCustomerNotFound) {
		t.Fatalf("expected ErrCustomerNotFound, got %v", err)
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found kind, got %v", err)
	}
}

func TestSaveRejectsTakenVAT(t *testing.T) {
	repo := newFakeRepo()
	users := &fakeUserRepo{usernames: map[string]bool{}, vats: map[string]bool{"123456789": true}}
	svc := NewService(repo, users)

	_, err := svc.Save(context.Background(), &InsertRequest{User: UserInsertRequest{
		Username:    "alice",
		Password:    "correct-horse",
		Firstname:   "Alice",
		Lastname:    "Papadopoulos",
		Email:       "alice@example.com",
		VAT:         "123456789",
		DateOfBirth: "1990-04-01",
	}})
	if !errors.Is(err, user.ErrVATExists) {
		t.Fatalf("expected ErrVATExists, got %v", err)
	}
}
