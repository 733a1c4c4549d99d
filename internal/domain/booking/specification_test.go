package booking

import (
	"context"
	"testing"
	"time"

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

func TestAbsentCriteriaContributeNoPredicate(t *testing.T) {
	// Zero ids, blank strings and nil pointers all count as absent.
	sql, args := compile(t, &Filter{
		ID:               0,
		UUID:             "   ",
		BookingDate:      "",
		PriceBelow:       0,
		TourCategory:     "",
		CustomerID:       0,
		CustomerLastname: " ",
		CustomerActive:   nil,
		GuideID:          0,
	})
	assert.NotContains(t, sql, "WHERE")
	assert.Empty(t, args)
}

func TestSingleCriterionCompiles(t *testing.T) {
	sql, args := compile(t, &Filter{TourCategory: "Hiking"})
	assert.Contains(t, sql, "WHERE")
	assert.Contains(t, sql, `"t"."category"`)
	assert.Equal(t, []interface{}{"Hiking"}, args)
}

func TestCriteriaConjoin(t *testing.T) {
	active := true
	sql, args := compile(t, &Filter{
		TourCategory:     "Hiking",
		PriceBelow:       80,
		CustomerLastname: "Papadopoulos",
		CustomerActive:   &active,
	})
	assert.Contains(t, sql, `"t"."category"`)
	assert.Contains(t, sql, `"t"."price"`)
	assert.Contains(t, sql, `"cu"."lastname"`)
	assert.Contains(t, sql, `"c"."is_active"`)
	assert.Contains(t, sql, " AND ")
	assert.Len(t, args, 4)
}

func TestUUIDContainsIsCaseInsensitive(t *testing.T) {
	sql, args := compile(t, &Filter{UUID: "abc"})
	assert.Contains(t, sql, "UPPER")
	assert.Contains(t, args, "%ABC%")
}

func TestUpcomingUnassignedCompiles(t *testing.T) {
	day := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	f := &Filter{}
	f.withoutGuide = true
	f.dateAfter = &day

	sql, args := compile(t, f)
	assert.Contains(t, sql, `"b"."guide_id" IS NULL`)
	assert.Contains(t, sql, `"b"."booking_date" >`)
	assert.Contains(t, args, "2026-08-30")
}

func TestPredicateBuildersReturnNilWhenAbsent(t *testing.T) {
	assert.Nil(t, IDIs(0))
	assert.Nil(t, UUIDContains(""))
	assert.Nil(t, DateIs(" "))
	assert.Nil(t, PriceBelow(0))
	assert.Nil(t, PriceBelow(-5))
	assert.Nil(t, TourCategoryIs(""))
	assert.Nil(t, CustomerIDIs(0))
	assert.Nil(t, CustomerLastnameIs(""))
	assert.Nil(t, CustomerActiveIs(nil))
	assert.Nil(t, GuideIDIs(0))

	assert.NotNil(t, IDIs(1))
	assert.NotNil(t, PriceBelow(0.01))
	assert.NotNil(t, WithoutGuide())
}

func TestPageQueryAlwaysBounded(t *testing.T) {
	f := &Filter{}
	f.Page = 2
	f.PageSize = 20

	sql, args, err := pageDataset(f).Prepared(true).ToSQL()
	require.NoError(t, err)
	assert.Contains(t, sql, "LIMIT")
	assert.Contains(t, sql, "OFFSET")
	assert.Len(t, args, 2)
}

func TestZeroPageSizeYieldsEmptyPage(t *testing.T) {
	f := &Filter{}
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
	f.SortBy = "booking_date"
	assert.Equal(t, "b.booking_date", sortColumn(f))

	f.SortBy = "price; DROP TABLE bookings"
	assert.Equal(t, "b.id", sortColumn(f))

	f.SortBy = ""
	assert.Equal(t, "b.id", sortColumn(f))
}
