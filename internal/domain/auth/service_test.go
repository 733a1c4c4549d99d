package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tourhub/tourhub-api/internal/domain/user"
	"github.com/tourhub/tourhub-api/internal/pkg/apperrors"
	"github.com/tourhub/tourhub-api/internal/pkg/jwt"
	"github.com/tourhub/tourhub-api/internal/pkg/password"
)

type fakeUserRepo struct {
	byUsername map[string]*user.User
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	return f.byUsername[username], nil
}
func (f *fakeUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, ok := f.byUsername[username]
	return ok, nil
}
func (f *fakeUserRepo) ExistsByVAT(ctx context.Context, vat string) (bool, error) {
	return false, nil
}

func newLoginService(t *testing.T) (*Service, *fakeUserRepo) {
	t.Helper()
	hash, err := password.Hash("correct-horse")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	repo := &fakeUserRepo{byUsername: map[string]*user.User{
		"alice": {
			ID:           1,
			Username:     "alice",
			PasswordHash: hash,
			Role:         user.RoleCustomer,
			IsActive:     true,
		},
	}}
	return NewService(repo, jwt.NewService("test-secret", time.Hour)), repo
}

func TestLoginSuccess(t *testing.T) {
	svc, _ := newLoginService(t)

	resp, err := svc.Login(context.Background(), &LoginRequest{Username: "alice", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatal("expected an access token")
	}
	if resp.TokenType != "Bearer" {
		t.Fatalf("expected Bearer token type, got %q", resp.TokenType)
	}
	if resp.Role != string(user.RoleCustomer) {
		t.Fatalf("expected customer role, got %q", resp.Role)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newLoginService(t)

	_, err := svc.Login(context.Background(), &LoginRequest{Username: "alice", Password: "wrong"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

func TestLoginUnknownUsername(t *testing.T) {
	svc, _ := newLoginService(t)

	_, err := svc.Login(context.Background(), &LoginRequest{Username: "nobody", Password: "correct-horse"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	// Unknown user and wrong password must be indistinguishable.
	if !errors.Is(err, apperrors.ErrNotAuthorized) {
		t.Fatalf("expected NotAuthorized kind, got %v", err)
	}
}

func TestLoginDisabledAccount(t *testing.T) {
	svc, repo := newLoginService(t)
	repo.byUsername["alice"].IsActive = false

	_, err := svc.Login(context.Background(), &LoginRequest{Username: "alice", Password: "correct-horse"})
	if !errors.Is(err, ErrAccountDisabled) {
		t.Fatalf("expected account disabled, got %v", err)
	}
}

func TestIssuedTokenCarriesIdentity(t *testing.T) {
	svc, _ := newLoginService(t)
	jwtService := jwt.NewService("test-secret", time.Hour)

	resp, err := svc.Login(context.Background(), &LoginRequest{Username: "alice", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := jwtService.ValidateAccessToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}
	if claims.UserID != 1 || claims.Username != "alice" || claims.Role != string(user.RoleCustomer) {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}
