package customer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/tourhub/tourhub-api/internal/domain/user"
	"github.com/tourhub/tourhub-api/internal/pkg/dbx"
	"github.com/tourhub/tourhub-api/internal/pkg/filters"
)

// Repository defines customer data access
type Repository interface {
	Create(ctx context.Context, c *Customer) error
	GetByID(ctx context.Context, id int64) (*Customer, error)
	GetByUsername(ctx context.Context, username string) (*Customer, error)
	List(ctx context.Context, f *Filter) ([]*Customer, error)
	ListPage(ctx context.Context, f *Filter) ([]*Customer, int, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates a customer repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const customerSelectColumns = `
	c.id AS id, c.uuid AS uuid, c.is_active AS is_active,
	c.created_at AS created_at, c.updated_at AS updated_at,
	u.id AS user_id, u.username AS username, u.password_hash AS password_hash,
	u.firstname AS firstname, u.lastname AS lastname, u.email AS email,
	u.vat AS vat, u.date_of_birth AS date_of_birth, u.gender AS gender,
	u.nationality AS nationality, u.role AS role, u.is_active AS user_is_active
`

// customerRow is the flattened scan target for the joined listing query.
type customerRow struct {
	ID        int64          `db:"id"`
	UUID      string         `db:"uuid"`
	IsActive  bool           `db:"is_active"`
	CreatedAt sql.NullTime   `db:"created_at"`
	UpdatedAt sql.NullTime   `db:"updated_at"`
	UserID    int64          `db:"user_id"`
	Username  string         `db:"username"`
	Password  string         `db:"password_hash"`
	Firstname string         `db:"firstname"`
	Lastname  string         `db:"lastname"`
	Email     string         `db:"email"`
	VAT       string         `db:"vat"`
	BirthDate sql.NullTime   `db:"date_of_birth"`
	Gender    string         `db:"gender"`
	Nation    sql.NullString `db:"nationality"`
	Role      string         `db:"role"`
	UserOn    bool           `db:"user_is_active"`
}

func (row *customerRow) toCustomer() *Customer {
	return &Customer{
		ID:        row.ID,
		UUID:      row.UUID,
		IsActive:  row.IsActive,
		CreatedAt: row.CreatedAt.Time,
		UpdatedAt: row.UpdatedAt.Time,
		User: user.User{
			ID:           row.UserID,
			Username:     row.Username,
			PasswordHash: row.Password,
			Firstname:    row.Firstname,
			Lastname:     row.Lastname,
			Email:        row.Email,
			VAT:          row.VAT,
			DateOfBirth:  row.BirthDate.Time,
			Gender:       user.Gender(row.Gender),
			Nationality:  row.Nation.String,
			Role:         user.Role(row.Role),
			IsActive:     row.UserOn,
		},
	}
}

// customerSortColumns whitelists the sortable keys; anything else falls
// back to the primary key.
var customerSortColumns = map[string]string{
	"id":         "c.id",
	"uuid":       "c.uuid",
	"lastname":   "u.lastname",
	"vat":        "u.vat",
	"created_at": "c.created_at",
}

func (r *repository) Create(ctx context.Context, c *Customer) error {
	return dbx.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := user.InsertTx(ctx, tx, &c.User); err != nil {
			return err
		}

		c.UUID = uuid.New().String()
		query := `
			INSERT INTO customers (uuid, user_id, is_active)
			VALUES ($1, $2, $3)
			RETURNING id, created_at, updated_at
		`
		err := tx.QueryRowxContext(ctx, query, c.UUID, c.User.ID, c.IsActive).
			Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			if dbx.IsUniqueViolation(err, "customers_user_id_key") {
				return fmt.Errorf("%w: user %q already holds a customer profile", ErrProfileExists, c.User.Username)
			}
			log.Error().Err(err).Str("query", "customers.insert").Str("constraint", dbx.Constraint(err)).Msg("customer insert failed")
			return fmt.Errorf("customers.insert: %w", err)
		}
		return nil
	})
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Customer, error) {
	return r.getOne(ctx, goqu.I("c.id").Eq(id), "customers.get_by_id")
}

func (r *repository) GetByUsername(ctx context.Context, username string) (*Customer, error) {
	return r.getOne(ctx, goqu.I("u.username").Eq(username), "customers.get_by_username")
}

func (r *repository) getOne(ctx context.Context, cond goqu.Expression, tag string) (*Customer, error) {
	query, args, err := baseQuery().
		Select(goqu.L(customerSelectColumns)).
		Where(cond).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("%s: build query: %w", tag, err)
	}

	var row customerRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", tag, err)
	}
	return row.toCustomer(), nil
}

func (r *repository) List(ctx context.Context, f *Filter) ([]*Customer, error) {
	ds := filteredQuery(f).
		Select(goqu.L(customerSelectColumns)).
		Order(f.Order(sortColumn(f)))

	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("customers.list: build query: %w", err)
	}

	var rows []customerRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("customers.list: %w", err)
	}

	out := make([]*Customer, len(rows))
	for i := range rows {
		out[i] = rows[i].toCustomer()
	}
	return out, nil
}

func (r *repository) ListPage(ctx context.Context, f *Filter) ([]*Customer, int, error) {
	// A zero page size selects nothing; answering without a round trip
	// keeps goqu's Limit(0) (which drops the LIMIT clause entirely) out of
	// the generated SQL.
	if f.PageSizeOrDefault() == 0 {
		return []*Customer{}, 0, nil
	}

	countQuery, countArgs, err := filteredQuery(f).
		Select(goqu.L("COUNT(*)")).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("customers.count: build query: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("customers.count: %w", err)
	}

	query, args, err := pageDataset(f).Prepared(true).ToSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("customers.list_page: build query: %w", err)
	}

	var rows []customerRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("customers.list_page: %w", err)
	}

	out := make([]*Customer, len(rows))
	for i := range rows {
		out[i] = rows[i].toCustomer()
	}
	return out, total, nil
}

func baseQuery() *goqu.SelectDataset {
	return goqu.Dialect("postgres").
		From(goqu.T("customers").As("c")).
		Join(goqu.T("users").As("u"), goqu.On(goqu.I("c.user_id").Eq(goqu.I("u.id"))))
}

// filteredQuery compiles the filter's optional criteria into one query.
// Absent criteria contribute no predicate at all.
func filteredQuery(f *Filter) *goqu.SelectDataset {
	ds := baseQuery()
	where := filters.And(
		UUIDContains(f.UUID),
		ActiveIs(f.IsActive),
		UserVATIs(f.UserVAT),
		UserLastnameIs(f.UserLastname),
	)
	if where != nil {
		ds = ds.Where(where)
	}
	return ds
}

// pageDataset is the row query behind ListPage. Callers must have ruled
// out a zero page size first.
func pageDataset(f *Filter) *goqu.SelectDataset {
	return filteredQuery(f).
		Select(goqu.L(customerSelectColumns)).
		Order(f.Order(sortColumn(f))).
		Limit(uint(f.PageSizeOrDefault())).
		Offset(uint(f.Offset()))
}

func sortColumn(f *Filter) string {
	if col, ok := customerSortColumns[f.SortByOrDefault()]; ok {
		return col
	}
	return customerSortColumns[filters.DefaultSortBy]
}
