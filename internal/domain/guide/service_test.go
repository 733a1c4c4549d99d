package guide

import (
	"context"
	"errors"
	"testing"

	"github.com/tourhub/tourhub-api/internal/domain/customer"
	"github.com/tourhub/tourhub-api/internal/domain/tour"
	"github.com/tourhub/tourhub-api/internal/domain/user"
	"github.com/tourhub/tourhub-api/internal/pkg/apperrors"
)

type fakeRepo struct {
	nextID int64
	byID   map[int64]*Guide
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{nextID: 1, byID: map[int64]*Guide{}}
}

func (f *fakeRepo) Create(ctx context.Context, g *Guide) error {
	g.ID = f.nextID
	g.User.ID = f.nextID
	f.nextID++
	f.byID[g.ID] = g
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id int64) (*Guide, error) {
	return f.byID[id], nil
}

func (f *fakeRepo) GetByUsername(ctx context.Context, username string) (*Guide, error) {
	for _, g := range f.byID {
		if g.User.Username == username {
			return g, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) List(ctx context.Context, _ *Filter) ([]*Guide, error) {
	out := make([]*Guide, 0, len(f.byID))
	for _, g := range f.byID {
		out = append(out, g)
	}
	return out, nil
}

func (f *fakeRepo) ListPage(ctx context.Context, _ *Filter) ([]*Guide, int, error) {
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

type fakeTourRepo struct {
	byCategory map[string]*tour.Tour
}

func (f *fakeTourRepo) Insert(ctx context.Context, t *tour.Tour) error { return nil }
func (f *fakeTourRepo) GetByID(ctx context.Context, id int64) (*tour.Tour, error) {
	for _, t := range f.byCategory {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, nil
}
func (f *fakeTourRepo) GetByCategory(ctx context.Context, category string) (*tour.Tour, error) {
	return f.byCategory[category], nil
}
func (f *fakeTourRepo) Delete(ctx context.Context, id int64) error { return nil }
func (f *fakeTourRepo) List(ctx context.Context) ([]*tour.Tour, error) {
	return nil, nil
}

func newTestService() (*Service, *fakeRepo) {
	repo := newFakeRepo()
	users := &fakeUserRepo{usernames: map[string]bool{}, vats: map[string]bool{}}
	tours := &fakeTourRepo{byCategory: map[string]*tour.Tour{
		"Hiking": {ID: 1, Category: "Hiking", Price: 50},
	}}
	return NewService(repo, users, tours), repo
}

func validInsertRequest() *InsertRequest {
	return &InsertRequest{
		User: customer.UserInsertRequest{
			Username:    "george",
			Password:    "correct-horse",
			Firstname:   "George",
			Lastname:    "Nikolaou",
			Email:       "george@example.com",
			VAT:         "987654321",
			DateOfBirth: "1985-09-12",
		},
		TourCategory: "Hiking",
	}
}

func TestSaveResolvesQualification(t *testing.T) {
	svc, _ := newTestService()

	resp, err := svc.Save(context.Background(), validInsertRequest())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if resp.Tour.Category != "Hiking" {
		t.Fatalf("expected Hiking qualification, got %+v", resp.Tour)
	}
}

func TestSaveUnknownCategory(t *testing.T) {
	svc, _ := newTestService()

	req := validInsertRequest()
	req.TourCategory = "Sailing"
	_, err := svc.Save(context.Background(), req)
	if !errors.Is(err, tour.ErrTourNotFound) {
		t.Fatalf("expected ErrTourNotFound, got %v", err)
	}
}

func TestGetByID(t *testing.T) {
	svc, repo := newTestService()
	repo.byID[3] = &Guide{
		ID:   3,
		UUID: "g-uuid-3",
		Tour: tour.Tour{ID: 1, Category: "Hiking", Price: 50},
		User: user.User{ID: 3, Username: "george"},
	}

	resp, err := svc.GetByID(context.Background(), 3)
	if err != nil {
		t.Fatalf("get by id failed: %v", err)
	}
	if resp.UUID != "g-uuid-3" || resp.User.Username != "george" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.GetByID(context.Background(), 42)
	if !errors.Is(err, ErrGuideNotFound) {
		t.Fatalf("expected ErrGuideNotFound, got %v", err)
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found kind, got %v", err)
	}
}
