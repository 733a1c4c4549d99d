package customer

import (
	"context"
	"testing"

	"github.com/doug-martin/goqu/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compile(t *testing.T, f *Filter) (string, []interface{}) {
	t.Helper()
	sql, args, err := filteredQuery(f).
		Select(goqu.L("COUNT(*)")).
		Prepared(true).
		ToSQL()
	require.NoError(t, err)
	return sql, args
}

func TestEmptyFilterCompilesWithoutWhere(t *testing.T) {
	sql, args := compile(t, &Filter{})
	assert.NotContains(t, sql, "WHERE")
	assert.Empty(t, args)
}

func TestBlankCriteriaAreAbsent(t *testing.T) {
	sql, args := compile(t, &Filter{UUID: "  ", UserLastname: "", UserVAT: " "})
	assert.NotContains(t, sql, "WHERE")
	assert.Empty(t, args)
}

func TestCriteriaConjoin(t *testing.T) {
	active := false
	sql, args := compile(t, &Filter{
		UserLastname: "Papadopoulos",
		UserVAT:      "123456789",
		IsActive:     &active,
	})
	assert.Contains(t, sql, `"u"."lastname"`)
	assert.Contains(t, sql, `"u"."vat"`)
	assert.Contains(t, sql, `"c"."is_active"`)
	assert.Contains(t, sql, " AND ")
	assert.Len(t, args, 3)
}

func TestUUIDContainsUppercasesBothSides(t *testing.T) {
	sql, args := compile(t, &Filter{UUID: "ab-12"})
	assert.Contains(t, sql, "UPPER")
	assert.Contains(t, args, "%AB-12%")
}

func TestPageQueryAlwaysBounded(t *testing.T) {
	f := &Filter{}
	f.Page = 1
	f.PageSize = 5

	sql, args, err := pageDataset(f).Prepared(true).ToSQL()
	require.NoError(t, err)
	assert.Contains(t, sql, "LIMIT")
	assert.Contains(t, sql, "OFFSET")
	assert.Len(t, args, 2)
}

func TestZeroPageSizeYieldsEmptyPage(t *testing.T) {
	f := &Filter{}
	f.Page = 1
	f.PageSize = 0

	// A nil db proves the short circuit: any query would panic.
	r := &repository{}
	items, total, err := r.ListPage(context.Background(), f)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NotNil(t, items)
	assert.Zero(t, total)
}

func TestSortColumnWhitelist(t *testing.T) {
	f := &Filter{}
	f.SortBy = "lastname"
	assert.Equal(t, "u.lastname", sortColumn(f))

	f.SortBy = "password_hash"
	assert.Equal(t, "c.id", sortColumn(f))

	f.SortBy = ""
	assert.Equal(t, "c.id", sortColumn(f))
}
