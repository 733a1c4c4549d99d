package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/tourhub/tourhub-api/internal/pkg/dbx"
)

// Repository defines user data access. Users are inserted by the customer
// and guide repositories (the wrapping profile owns the user lifecycle on
// creation), so this interface only exposes lookups.
type Repository interface {
	GetByUsername(ctx context.Context, username string) (*User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByVAT(ctx context.Context, vat string) (bool, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates a user repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const userSelectColumns = `
	id, username, password_hash, firstname, lastname, email, vat,
	date_of_birth, gender, nationality, role, is_active, created_at, updated_at
`

func (r *repository) GetByUsername(ctx context.Context, username string) (*User, error) {
	query := `SELECT ` + userSelectColumns + ` FROM users WHERE username = $1`

	var u User
	if err := r.db.GetContext(ctx, &u, query, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("users.get_by_username: %w", err)
	}
	return &u, nil
}

func (r *repository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username)
	if err != nil {
		return false, fmt.Errorf("users.exists_by_username: %w", err)
	}
	return exists, nil
}

func (r *repository) ExistsByVAT(ctx context.Context, vat string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM users WHERE vat = $1)`, vat)
	if err != nil {
		return false, fmt.Errorf("users.exists_by_vat: %w", err)
	}
	return exists, nil
}

// InsertTx inserts a user row inside the caller's transaction and fills in
// the generated id. Unique violations on username and vat map onto the
// matching AlreadyExists sentinels; those constraints, not the pre-flight
// checks, are what actually guarantees uniqueness under concurrency.
func InsertTx(ctx context.Context, q sqlx.ExtContext, u *User) error {
	query := `
		INSERT INTO users (
			username, password_hash, firstname, lastname, email, vat,
			date_of_birth, gender, nationality, role, is_active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRowxContext(ctx, query,
		u.Username, u.PasswordHash, u.Firstname, u.Lastname, u.Email, u.VAT,
		u.DateOfBirth, u.Gender, u.Nationality, u.Role, u.IsActive,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		switch {
		case dbx.IsUniqueViolation(err, "users_username_key"):
			return fmt.Errorf("%w: username %q is taken", ErrUsernameExists, u.Username)
		case dbx.IsUniqueViolation(err, "users_vat_key"):
			return fmt.Errorf("%w: vat number %q is registered", ErrVATExists, u.VAT)
		}
		return fmt.Errorf("users.insert: %w", err)
	}
	return nil
}
