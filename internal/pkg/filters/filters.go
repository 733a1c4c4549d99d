// Package filters carries the paging/sorting normalization shared by all
// entity filters and the predicate-conjunction helper used by the
// repositories to compile optional criteria into a single WHERE clause.
package filters

import (
	"strings"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
)

const (
	// DefaultPageSize is applied when a negative page size is supplied.
	DefaultPageSize = 10
	// DefaultSortBy is the primary ordering key of every entity.
	DefaultSortBy = "id"
)

// Direction is a sort direction. The zero value normalizes to ascending.
type Direction string

const (
	ASC  Direction = "ASC"
	DESC Direction = "DESC"
)

// ParseDirection accepts asc/desc in any case, anything else maps to ASC.
func ParseDirection(s string) Direction {
	if strings.EqualFold(s, string(DESC)) {
		return DESC
	}
	return ASC
}

// PageRequest holds raw, possibly absent or invalid paging input. The
// accessor methods normalize: negative page clamps to 0, negative page size
// falls back to DefaultPageSize (zero passes through unchanged), blank sort
// key falls back to DefaultSortBy, empty direction to ascending.
type PageRequest struct {
	Page          int       `json:"page"`
	PageSize      int       `json:"page_size"`
	SortBy        string    `json:"sort_by"`
	SortDirection Direction `json:"sort_direction"`
}

func (p PageRequest) PageOrDefault() int {
	if p.Page < 0 {
		return 0
	}
	return p.Page
}

func (p PageRequest) PageSizeOrDefault() int {
	if p.PageSize < 0 {
		return DefaultPageSize
	}
	return p.PageSize
}

func (p PageRequest) SortByOrDefault() string {
	if strings.TrimSpace(p.SortBy) == "" {
		return DefaultSortBy
	}
	return p.SortBy
}

func (p PageRequest) DirectionOrDefault() Direction {
	if p.SortDirection == "" {
		return ASC
	}
	return p.SortDirection
}

// Offset returns the row offset of the normalized page.
func (p PageRequest) Offset() int {
	return p.PageOrDefault() * p.PageSizeOrDefault()
}

// Order builds the ORDER BY expression for the resolved sort column.
func (p PageRequest) Order(column string) exp.OrderedExpression {
	if p.DirectionOrDefault() == DESC {
		return goqu.I(column).Desc()
	}
	return goqu.I(column).Asc()
}

// Paginated is the page envelope returned by the paginated listings.
type Paginated[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
}

// NewPaginated wraps a result slice with its page metadata.
func NewPaginated[T any](items []T, total int, req PageRequest) Paginated[T] {
	size := req.PageSizeOrDefault()
	pages := 0
	if size > 0 {
		pages = (total + size - 1) / size
	}
	if items == nil {
		items = []T{}
	}
	return Paginated[T]{
		Items:      items,
		Total:      total,
		Page:       req.PageOrDefault(),
		PageSize:   size,
		TotalPages: pages,
	}
}

// And folds the supplied predicates into a single conjunction, skipping
// absent (nil) ones. A criterion that was not supplied contributes nothing,
// so the conjunction of all-absent predicates is nil and the caller omits
// the WHERE clause entirely. Absence is first class here; no predicate ever
// degenerates to a sentinel TRUE expression.
func And(preds ...exp.Expression) exp.Expression {
	kept := make([]exp.Expression, 0, len(preds))
	for _, p := range preds {
		if p != nil {
			kept = append(kept, p)
		}
	}
	switch len(kept) {
	case 0:
		return nil
	case 1:
		return kept[0]
	default:
		return goqu.And(kept...)
	}
}
