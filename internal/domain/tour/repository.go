package tour

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/tourhub/tourhub-api/internal/pkg/dbx"
)

// Repository defines tour data access
type Repository interface {
	Insert(ctx context.Context, t *Tour) error
	GetByID(ctx context.Context, id int64) (*Tour, error)
	GetByCategory(ctx context.Context, category string) (*Tour, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*Tour, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates a tour repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const tourSelectColumns = `id, category, price, created_at, updated_at`

func (r *repository) Insert(ctx context.Context, t *Tour) error {
	query := `
		INSERT INTO tours (category, price)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowxContext(ctx, query, t.Category, t.Price).
		Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		switch {
		case dbx.IsUniqueViolation(err, "tours_category_key"):
			return fmt.Errorf("%w: category %q", ErrCategoryExists, t.Category)
		case dbx.IsUniqueViolation(err, "tours_price_key"):
			return fmt.Errorf("%w: price %.2f", ErrPriceExists, t.Price)
		}
		return fmt.Errorf("tours.insert: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Tour, error) {
	query := `SELECT ` + tourSelectColumns + ` FROM tours WHERE id = $1`

	var t Tour
	if err := r.db.GetContext(ctx, &t, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("tours.get_by_id: %w", err)
	}
	return &t, nil
}

func (r *repository) GetByCategory(ctx context.Context, category string) (*Tour, error) {
	query := `SELECT ` + tourSelectColumns + ` FROM tours WHERE category = $1`

	var t Tour
	if err := r.db.GetContext(ctx, &t, query, category); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("tours.get_by_category: %w", err)
	}
	return &t, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tours WHERE id = $1`, id)
	if err != nil {
		if dbx.IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: tour %d cannot be deleted", ErrTourInUse, id)
		}
		return fmt.Errorf("tours.delete: %w", err)
	}
	return nil
}

func (r *repository) List(ctx context.Context) ([]*Tour, error) {
	query := `SELECT ` + tourSelectColumns + ` FROM tours ORDER BY id ASC`

	var tours []*Tour
	if err := r.db.SelectContext(ctx, &tours, query); err != nil {
		return nil, fmt.Errorf("tours.list: %w", err)
	}
	return tours, nil
}
