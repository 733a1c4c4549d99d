package booking

import (
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
)

// Predicates over the booking listing query (bookings b JOIN tours t JOIN
// customers c JOIN users cu LEFT JOIN guides g). Builders return nil for
// absent criteria so that filters.And drops them from the conjunction.

// IDIs matches the surrogate id. Zero means absent.
func IDIs(id int64) exp.Expression {
	if id == 0 {
		return nil
	}
	return goqu.I("b.id").Eq(id)
}

// UUIDContains matches the public identifier case-insensitively.
func UUIDContains(v string) exp.Expression {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	return goqu.Func("UPPER", goqu.I("b.uuid")).Like("%" + strings.ToUpper(v) + "%")
}

// DateIs matches the exact booking date, given as 2006-01-02.
func DateIs(v string) exp.Expression {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	return goqu.I("b.booking_date").Eq(v)
}

// DateAfter keeps bookings strictly later than the given day.
func DateAfter(day time.Time) exp.Expression {
	return goqu.I("b.booking_date").Gt(day.Format(dateLayout))
}

// PriceBelow keeps bookings whose tour costs less than the bound. Zero or
// negative means absent.
func PriceBelow(v float64) exp.Expression {
	if v <= 0 {
		return nil
	}
	return goqu.I("t.price").Lt(v)
}

// TourCategoryIs matches the booked tour's category.
func TourCategoryIs(v string) exp.Expression {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	return goqu.I("t.category").Eq(v)
}

// CustomerIDIs matches the owning customer. Zero means absent.
func CustomerIDIs(id int64) exp.Expression {
	if id == 0 {
		return nil
	}
	return goqu.I("b.customer_id").Eq(id)
}

// CustomerLastnameIs matches the owning customer's user last name.
func CustomerLastnameIs(v string) exp.Expression {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	return goqu.I("cu.lastname").Eq(v)
}

// CustomerActiveIs matches the owning customer's active flag.
func CustomerActiveIs(v *bool) exp.Expression {
	if v == nil {
		return nil
	}
	return goqu.I("c.is_active").Eq(*v)
}

// GuideIDIs matches the assigned guide. Zero means absent.
func GuideIDIs(id int64) exp.Expression {
	if id == 0 {
		return nil
	}
	return goqu.I("b.guide_id").Eq(id)
}

// WithoutGuide keeps bookings with no guide assigned yet.
func WithoutGuide() exp.Expression {
	return goqu.I("b.guide_id").IsNull()
}
