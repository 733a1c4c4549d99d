package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/tourhub/tourhub-api/internal/domain/customer"
	"github.com/tourhub/tourhub-api/internal/domain/guide"
	"github.com/tourhub/tourhub-api/internal/domain/tour"
	"github.com/tourhub/tourhub-api/internal/domain/user"
	"github.com/tourhub/tourhub-api/internal/pkg/dbx"
	"github.com/tourhub/tourhub-api/internal/pkg/filters"
)

// Repository defines booking data access. InTx hands the callback a
// repository bound to one transaction, so the check-then-act sequences of
// the service run atomically.
type Repository interface {
	InTx(ctx context.Context, fn func(Repository) error) error
	Insert(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id int64) (*Booking, error)
	AssignGuide(ctx context.Context, bookingID, guideID int64) error
	Delete(ctx context.Context, id int64) error
	ExistsForCustomerOnDate(ctx context.Context, customerID int64, date time.Time) (bool, error)
	ExistsForGuideOnDate(ctx context.Context, guideID int64, date time.Time) (bool, error)
	List(ctx context.Context, f *Filter) ([]*Booking, error)
	ListPage(ctx context.Context, f *Filter) ([]*Booking, int, error)
}

type repository struct {
	db *sqlx.DB
	q  sqlx.ExtContext
}

// NewRepository creates a booking repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db, q: db}
}

func (r *repository) InTx(ctx context.Context, fn func(Repository) error) error {
	return dbx.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		return fn(&repository{db: r.db, q: tx})
	})
}

const bookingSelectColumns = `
	b.id AS id, b.uuid AS uuid, b.booking_date AS booking_date,
	b.created_at AS created_at, b.updated_at AS updated_at,
	t.id AS tour_id, t.category AS tour_category, t.price AS tour_price,
	c.id AS customer_id, c.uuid AS customer_uuid, c.is_active AS customer_is_active,
	cu.id AS customer_user_id, cu.username AS customer_username,
	cu.firstname AS customer_firstname, cu.lastname AS customer_lastname,
	cu.email AS customer_email, cu.vat AS customer_vat,
	cu.date_of_birth AS customer_date_of_birth, cu.gender AS customer_gender,
	cu.nationality AS customer_nationality, cu.is_active AS customer_user_is_active,
	g.id AS guide_id, g.uuid AS guide_uuid, g.is_active AS guide_is_active,
	gu.id AS guide_user_id, gu.username AS guide_username,
	gu.firstname AS guide_firstname, gu.lastname AS guide_lastname,
	gu.email AS guide_email, gu.vat AS guide_vat,
	gu.date_of_birth AS guide_date_of_birth, gu.gender AS guide_gender,
	gu.nationality AS guide_nationality, gu.is_active AS guide_user_is_active,
	gt.id AS guide_tour_id, gt.category AS guide_tour_category, gt.price AS guide_tour_price
`

// bookingRow is the flattened scan target for the joined listing query.
// Everything past the guide join is nullable.
type bookingRow struct {
	ID        int64        `db:"id"`
	UUID      string       `db:"uuid"`
	Date      time.Time    `db:"booking_date"`
	CreatedAt sql.NullTime `db:"created_at"`
	UpdatedAt sql.NullTime `db:"updated_at"`

	TourID       int64   `db:"tour_id"`
	TourCategory string  `db:"tour_category"`
	TourPrice    float64 `db:"tour_price"`

	CustomerID        int64          `db:"customer_id"`
	CustomerUUID      string         `db:"customer_uuid"`
	CustomerActive    bool           `db:"customer_is_active"`
	CustUserID        int64          `db:"customer_user_id"`
	CustUsername      string         `db:"customer_username"`
	CustFirstname     string         `db:"customer_firstname"`
	CustLastname      string         `db:"customer_lastname"`
	CustEmail         string         `db:"customer_email"`
	CustVAT           string         `db:"customer_vat"`
	CustBirthDate     sql.NullTime   `db:"customer_date_of_birth"`
	CustGender        string         `db:"customer_gender"`
	CustNationality   sql.NullString `db:"customer_nationality"`
	CustUserActive    bool           `db:"customer_user_is_active"`

	GuideID          sql.NullInt64   `db:"guide_id"`
	GuideUUID        sql.NullString  `db:"guide_uuid"`
	GuideActive      sql.NullBool    `db:"guide_is_active"`
	GuideUserID      sql.NullInt64   `db:"guide_user_id"`
	GuideUsername    sql.NullString  `db:"guide_username"`
	GuideFirstname   sql.NullString  `db:"guide_firstname"`
	GuideLastname    sql.NullString  `db:"guide_lastname"`
	GuideEmail       sql.NullString  `db:"guide_email"`
	GuideVAT         sql.NullString  `db:"guide_vat"`
	GuideBirthDate   sql.NullTime    `db:"guide_date_of_birth"`
	GuideGender      sql.NullString  `db:"guide_gender"`
	GuideNationality sql.NullString  `db:"guide_nationality"`
	GuideUserActive  sql.NullBool    `db:"guide_user_is_active"`
	GuideTourID      sql.NullInt64   `db:"guide_tour_id"`
	GuideTourCat     sql.NullString  `db:"guide_tour_category"`
	GuideTourPrice   sql.NullFloat64 `db:"guide_tour_price"`
}

func (row *bookingRow) toBooking() *Booking {
	b := &Booking{
		ID:          row.ID,
		UUID:        row.UUID,
		BookingDate: row.Date,
		CreatedAt:   row.CreatedAt.Time,
		UpdatedAt:   row.UpdatedAt.Time,
		Tour: tour.Tour{
			ID:       row.TourID,
			Category: row.TourCategory,
			Price:    row.TourPrice,
		},
		Customer: customer.Customer{
			ID:       row.CustomerID,
			UUID:     row.CustomerUUID,
			IsActive: row.CustomerActive,
			User: user.User{
				ID:          row.CustUserID,
				Username:    row.CustUsername,
				Firstname:   row.CustFirstname,
				Lastname:    row.CustLastname,
				Email:       row.CustEmail,
				VAT:         row.CustVAT,
				DateOfBirth: row.CustBirthDate.Time,
				Gender:      user.Gender(row.CustGender),
				Nationality: row.CustNationality.String,
				Role:        user.RoleCustomer,
				IsActive:    row.CustUserActive,
			},
		},
	}

	if row.GuideID.Valid {
		b.Guide = &guide.Guide{
			ID:       row.GuideID.Int64,
			UUID:     row.GuideUUID.String,
			IsActive: row.GuideActive.Bool,
			User: user.User{
				ID:          row.GuideUserID.Int64,
				Username:    row.GuideUsername.String,
				Firstname:   row.GuideFirstname.String,
				Lastname:    row.GuideLastname.String,
				Email:       row.GuideEmail.String,
				VAT:         row.GuideVAT.String,
				DateOfBirth: row.GuideBirthDate.Time,
				Gender:      user.Gender(row.GuideGender.String),
				Nationality: row.GuideNationality.String,
				Role:        user.RoleGuide,
				IsActive:    row.GuideUserActive.Bool,
			},
			Tour: tour.Tour{
				ID:       row.GuideTourID.Int64,
				Category: row.GuideTourCat.String,
				Price:    row.GuideTourPrice.Float64,
			},
		}
	}
	return b
}

// bookingSortColumns whitelists the sortable keys; anything else falls
// back to the primary key.
var bookingSortColumns = map[string]string{
	"id":           "b.id",
	"uuid":         "b.uuid",
	"booking_date": "b.booking_date",
	"category":     "t.category",
	"price":        "t.price",
	"created_at":   "b.created_at",
}

func (r *repository) Insert(ctx context.Context, b *Booking) error {
	b.UUID = uuid.New().String()
	query := `
		INSERT INTO bookings (uuid, booking_date, tour_id, customer_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := r.q.QueryRowxContext(ctx, query,
		b.UUID, b.BookingDate.Format(dateLayout), b.Tour.ID, b.Customer.ID).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err, "bookings_customer_id_booking_date_key") {
			return fmt.Errorf("%w: customer %d on %s", ErrDuplicateBooking,
				b.Customer.ID, b.BookingDate.Format(dateLayout))
		}
		log.Error().Err(err).Str("query", "bookings.insert").Str("constraint", dbx.Constraint(err)).Msg("booking insert failed")
		return fmt.Errorf("bookings.insert: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Booking, error) {
	query, args, err := baseQuery().
		Select(goqu.L(bookingSelectColumns)).
		Where(goqu.I("b.id").Eq(id)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("bookings.get_by_id: build query: %w", err)
	}

	var row bookingRow
	if err := sqlx.GetContext(ctx, r.q, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("bookings.get_by_id: %w", err)
	}
	return row.toBooking(), nil
}

func (r *repository) AssignGuide(ctx context.Context, bookingID, guideID int64) error {
	query := `
		UPDATE bookings
		SET guide_id = $1, updated_at = NOW()
		WHERE id = $2
	`

	res, err := r.q.ExecContext(ctx, query, guideID, bookingID)
	if err != nil {
		if dbx.IsUniqueViolation(err, "bookings_guide_id_booking_date_key") {
			return fmt.Errorf("%w: guide %d", ErrGuideDoubleBooked, guideID)
		}
		return fmt.Errorf("bookings.assign_guide: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: id %d", ErrBookingNotFound, bookingID)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("bookings.delete: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: id %d", ErrBookingNotFound, id)
	}
	return nil
}

func (r *repository) ExistsForCustomerOnDate(ctx context.Context, customerID int64, date time.Time) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM bookings WHERE customer_id = $1 AND booking_date = $2)`

	var exists bool
	err := sqlx.GetContext(ctx, r.q, &exists, query, customerID, date.Format(dateLayout))
	if err != nil {
		return false, fmt.Errorf("bookings.exists_for_customer: %w", err)
	}
	return exists, nil
}

func (r *repository) ExistsForGuideOnDate(ctx context.Context, guideID int64, date time.Time) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM bookings WHERE guide_id = $1 AND booking_date = $2)`

	var exists bool
	err := sqlx.GetContext(ctx, r.q, &exists, query, guideID, date.Format(dateLayout))
	if err != nil {
		return false, fmt.Errorf("bookings.exists_for_guide: %w", err)
	}
	return exists, nil
}

func (r *repository) List(ctx context.Context, f *Filter) ([]*Booking, error) {
	ds := filteredQuery(f).
		Select(goqu.L(bookingSelectColumns)).
		Order(f.Order(sortColumn(f)))

	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("bookings.list: build query: %w", err)
	}

	var rows []bookingRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("bookings.list: %w", err)
	}

	out := make([]*Booking, len(rows))
	for i := range rows {
		out[i] = rows[i].toBooking()
	}
	return out, nil
}

func (r *repository) ListPage(ctx context.Context, f *Filter) ([]*Booking, int, error) {
	// A zero page size selects nothing; answering without a round trip
	// keeps goqu's Limit(0) (which drops the LIMIT clause entirely) out of
	// the generated SQL.
	if f.PageSizeOrDefault() == 0 {
		return []*Booking{}, 0, nil
	}

	countQuery, countArgs, err := filteredQuery(f).
		Select(goqu.L("COUNT(*)")).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("bookings.count: build query: %w", err)
	}

	var total int
	if err := sqlx.GetContext(ctx, r.q, &total, countQuery, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("bookings.count: %w", err)
	}

	query, args, err := pageDataset(f).Prepared(true).ToSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("bookings.list_page: build query: %w", err)
	}

	var rows []bookingRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("bookings.list_page: %w", err)
	}

	out := make([]*Booking, len(rows))
	for i := range rows {
		out[i] = rows[i].toBooking()
	}
	return out, total, nil
}

func baseQuery() *goqu.SelectDataset {
	return goqu.Dialect("postgres").
		From(goqu.T("bookings").As("b")).
		Join(goqu.T("tours").As("t"), goqu.On(goqu.I("b.tour_id").Eq(goqu.I("t.id")))).
		Join(goqu.T("customers").As("c"), goqu.On(goqu.I("b.customer_id").Eq(goqu.I("c.id")))).
		Join(goqu.T("users").As("cu"), goqu.On(goqu.I("c.user_id").Eq(goqu.I("cu.id")))).
		LeftJoin(goqu.T("guides").As("g"), goqu.On(goqu.I("b.guide_id").Eq(goqu.I("g.id")))).
		LeftJoin(goqu.T("users").As("gu"), goqu.On(goqu.I("g.user_id").Eq(goqu.I("gu.id")))).
		LeftJoin(goqu.T("tours").As("gt"), goqu.On(goqu.I("g.tour_id").Eq(goqu.I("gt.id"))))
}

// filteredQuery compiles the filter's optional criteria into one query.
// Absent criteria contribute no predicate at all.
func filteredQuery(f *Filter) *goqu.SelectDataset {
	preds := []exp.Expression{
		IDIs(f.ID),
		UUIDContains(f.UUID),
		DateIs(f.BookingDate),
		PriceBelow(f.PriceBelow),
		TourCategoryIs(f.TourCategory),
		CustomerIDIs(f.CustomerID),
		CustomerLastnameIs(f.CustomerLastname),
		CustomerActiveIs(f.CustomerActive),
		GuideIDIs(f.GuideID),
	}
	if f.withoutGuide {
		preds = append(preds, WithoutGuide())
	}
	if f.dateAfter != nil {
		preds = append(preds, DateAfter(*f.dateAfter))
	}

	ds := baseQuery()
	if where := filters.And(preds...); where != nil {
		ds = ds.Where(where)
	}
	return ds
}

// pageDataset is the row query behind ListPage. Callers must have ruled
// out a zero page size first.
func pageDataset(f *Filter) *goqu.SelectDataset {
	return filteredQuery(f).
		Select(goqu.L(bookingSelectColumns)).
		Order(f.Order(sortColumn(f))).
		Limit(uint(f.PageSizeOrDefault())).
		Offset(uint(f.Offset()))
}

func sortColumn(f *Filter) string {
	if col, ok := bookingSortColumns[f.SortByOrDefault()]; ok {
		return col
	}
	return bookingSortColumns[filters.DefaultSortBy]
}
