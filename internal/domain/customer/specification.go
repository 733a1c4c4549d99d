package customer

import (
	"strings"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
)

// Predicates over the customer listing query (customers c JOIN users u).
// Each builder returns nil when its criterion is absent, so a conjunction
// of unsupplied criteria filters nothing.

// UUIDContains matches the public identifier case-insensitively, both
// sides upper-cased.
func UUIDContains(v string) exp.Expression {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	return goqu.Func("UPPER", goqu.I("c.uuid")).Like("%" + strings.ToUpper(v) + "%")
}

// ActiveIs matches the customer's active flag.
func ActiveIs(v *bool) exp.Expression {
	if v == nil {
		return nil
	}
	return goqu.I("c.is_active").Eq(*v)
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
