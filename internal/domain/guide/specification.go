package guide

import (
	"strings"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
)

// Predicates over the guide listing query (guides g JOIN users u JOIN
// tours t). Builders return nil for absent criteria.

// UUIDContains matches the public identifier case-insensitively.
func UUIDContains(v string) exp.Expression {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	return goqu.Func("UPPER", goqu.I("g.uuid")).Like("%" + strings.ToUpper(v) + "%")
}

// ActiveIs matches the guide's active flag.
func ActiveIs(v *bool) exp.Expression {
	if v == nil {
		return nil
	}
	return goqu.I("g.is_active").Eq(*v)
}

// UserVATIs matches the wrapped user's VAT number.
func UserVATIs(v string) exp.Expression {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	return goqu.I("u.vat").Eq(v)
}

// UserLastnameIs matches the wrapped user's last name.
func UserLastnameIs(v string) exp.Expression {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	return goqu.I("u.lastname").Eq(v)
}

// TourCategoryIs matches the category the guide is qualified for.
func TourCategoryIs(v string) exp.Expression {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	return goqu.I("t.category").Eq(v)
}
