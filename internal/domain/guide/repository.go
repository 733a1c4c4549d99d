package guide

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

	"github.com/tourhub/tourhub-api/internal/domain/tour"
	"github.com/tourhub/tourhub-api/internal/domain/user"
	"github.com/tourhub/tourhub-api/internal/pkg/dbx"
	"github.com/tourhub/tourhub-api/internal/pkg/filters"
)

// Repository defines guide data access
type Repository interface {
	Create(ctx context.Context, g *Guide) error
	GetByID(ctx context.Context, id int64) (*Guide, error)
	GetByUsername(ctx context.Context, username string) (*Guide, error)
	List(ctx context.Context, f *Filter) ([]*Guide, error)
	ListPage(ctx context.Context, f *Filter) ([]*Guide, int, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates a guide repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const guideSelectColumns = `
	g.id AS id, g.uuid AS uuid, g.is_active AS is_active,
	g.created_at AS created_at, g.updated_at AS updated_at,
	u.id AS user_id, u.username AS username, u.password_hash AS password_hash,
	u.firstname AS firstname, u.lastname AS lastname, u.email AS email,
	u.vat AS vat, u.date_of_birth AS date_of_birth, u.gender AS gender,
	u.nationality AS nationality, u.role AS role, u.is_active AS user_is_active,
	t.id AS tour_id, t.category AS tour_category, t.price AS tour_price
`

type guideRow struct {
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
	TourID    int64          `db:"tour_id"`
	TourCat   string         `db:"tour_category"`
	TourPrice float64        `db:"tour_price"`
}

func (row *guideRow) toGuide() *Guide {
	return &Guide{
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
		Tour: tour.Tour{
			ID:       row.TourID,
			Category: row.TourCat,
			Price:    row.TourPrice,
		},
	}
}

var guideSortColumns = map[string]string{
	"id":         "g.id",
	"uuid":       "g.uuid",
	"lastname":   "u.lastname",
	"vat":        "u.vat",
	"category":   "t.category",
	"created_at": "g.created_at",
}

func (r *repository) Create(ctx context.Context, g *Guide) error {
	return dbx.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := user.InsertTx(ctx, tx, &g.User); err != nil {
			return err
		}

		g.UUID = uuid.New().String()
		query := `
			INSERT INTO guides (uuid, user_id, tour_id, is_active)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at, updated_at
		`
		err := tx.QueryRowxContext(ctx, query, g.UUID, g.User.ID, g.Tour.ID, g.IsActive).
			Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt)
		if err != nil {
			if dbx.IsUniqueViolation(err, "guides_user_id_key") {
				return fmt.Errorf("%w: user %q already holds a guide profile", ErrProfileExists, g.User.Username)
			}
			log.Error().Err(err).Str("query", "guides.insert").Str("constraint", dbx.Constraint(err)).Msg("guide insert failed")
			return fmt.Errorf("guides.insert: %w", err)
		}
		return nil
	})
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Guide, error) {
	return r.getOne(ctx, goqu.I("g.id").Eq(id), "guides.get_by_id")
}

func (r *repository) GetByUsername(ctx context.Context, username string) (*Guide, error) {
	return r.getOne(ctx, goqu.I("u.username").Eq(username), "guides.get_by_username")
}

func (r *repository) getOne(ctx context.Context, cond goqu.Expression, tag string) (*Guide, error) {
	query, args, err := baseQuery().
		Select(goqu.L(guideSelectColumns)).
		Where(cond).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("%s: build query: %w", tag, err)
	}

	var row guideRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", tag, err)
	}
	return row.toGuide(), nil
}

func (r *repository) List(ctx context.Context, f *Filter) ([]*Guide, error) {
	ds := filteredQuery(f).
		Select(goqu.L(guideSelectColumns)).
		Order(f.Order(sortColumn(f)))

	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("guides.list: build query: %w", err)
	}

	var rows []guideRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("guides.list: %w", err)
	}

	out := make([]*Guide, len(rows))
	for i := range rows {
		out[i] = rows[i].toGuide()
	}
	return out, nil
}

func (r *repository) ListPage(ctx context.Context, f *Filter) ([]*Guide, int, error) {
	// A zero page size selects nothing; answering without a round trip
	// keeps goqu's Limit(0) (which drops the LIMIT clause entirely) out of
	// the generated SQL.
	if f.PageSizeOrDefault() == 0 {
		return []*Guide{}, 0, nil
	}

	countQuery, countArgs, err := filteredQuery(f).
		Select(goqu.L("COUNT(*)")).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("guides.count: build query: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("guides.count: %w", err)
	}

	query, args, err := pageDataset(f).Prepared(true).ToSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("guides.list_page: build query: %w", err)
	}

	var rows []guideRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("guides.list_page: %w", err)
	}

	out := make([]*Guide, len(rows))
	for i := range rows {
		out[i] = rows[i].toGuide()
	}
	return out, total, nil
}

func baseQuery() *goqu.SelectDataset {
	return goqu.Dialect("postgres").
		From(goqu.T("guides").As("g")).
		Join(goqu.T("users").As("u"), goqu.On(goqu.I("g.user_id").Eq(goqu.I("u.id")))).
		Join(goqu.T("tours").As("t"), goqu.On(goqu.I("g.tour_id").Eq(goqu.I("t.id"))))
}

func filteredQuery(f *Filter) *goqu.SelectDataset {
	ds := baseQuery()
	where := filters.And(
		UUIDContains(f.UUID),
		ActiveIs(f.IsActive),
		UserVATIs(f.UserVAT),
		UserLastnameIs(f.UserLastname),
		TourCategoryIs(f.TourCategory),
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
		Select(goqu.L(guideSelectColumns)).
		Order(f.Order(sortColumn(f))).
		Limit(uint(f.PageSizeOrDefault())).
		Offset(uint(f.Offset()))
}

func sortColumn(f *Filter) string {
	if col, ok := guideSortColumns[f.SortByOrDefault()]; ok {
		return col
	}
	return guideSortColumns[filters.DefaultSortBy]
}
