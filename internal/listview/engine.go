// Package listview derives display-ready views from an in-memory
// collection: free text global search, exact-match column filters and
// pagination. It never mutates its input and is deterministic for a
// given snapshot and query, preserving the insertion order of the
// source collection.
package listview

import (
	"strings"

	"kyri56xcaesar/teamdash/internal/utils"
)

// FilterAll is the sentinel filter value that removes a column filter
// instead of matching literally.
const FilterAll = "all"

// Filter is one exact-match column filter.
type Filter struct {
	Field string
	Value string
}

type Query struct {
	Search   string
	Filters  []Filter
	Page     int
	PageSize int
}

type View[T any] struct {
	Rows         []T
	TotalMatched int
	PageCount    int
}

// Apply filters, searches and paginates the collection. searchFields
// yields the values the global search term is matched against (OR
// across fields, case insensitive substring); fieldValue resolves a
// column filter field to the row's value (AND across filters). A
// PageSize of zero or less disables pagination.
func Apply[T any](rows []T, q Query, searchFields func(T) []string, fieldValue func(T, string) string) View[T] {
	term := strings.ToLower(strings.TrimSpace(q.Search))

	matched := utils.Filter(rows, func(r T) bool {
		if term != "" && !matchesSearch(searchFields(r), term) {
			return false
		}
		for _, f := range q.Filters {
			if f.Value == "" || f.Value == FilterAll {
				continue
			}
			if fieldValue(r, f.Field) != f.Value {
				return false
			}
		}

		return true
	})

	total := len(matched)
	if q.PageSize <= 0 {
		return View[T]{Rows: matched, TotalMatched: total, PageCount: 1}
	}

	pages := (total + q.PageSize - 1) / q.PageSize
	if pages == 0 {
		pages = 1
	}
	page := q.Page
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}

	start := (page - 1) * q.PageSize
	end := start + q.PageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return View[T]{Rows: matched[start:end], TotalMatched: total, PageCount: pages}
}

func matchesSearch(fields []string, term string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}

	return false
}

// Counts tallies the rows per value of one field, plus an "all" bucket,
// for the quick filter summary cards.
func Counts[T any](rows []T, field func(T) string) map[string]int {
	out := map[string]int{FilterAll: len(rows)}
	for _, r := range rows {
		out[field(r)]++
	}

	return out
}
