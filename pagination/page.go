package pagination

import (
	"github.com/samber/lo"
)

// Page is one page of a listing together with its position in the whole.
type Page[T any] struct {
	Items       []T   `json:"items"`
	Total       int64 `json:"total"`
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

// NewPage creates a page from already sliced items and the total count of matches.
func NewPage[T any](items []T, total int64, p Params) Page[T] {
	totalPages := 0
	if p.Limit > 0 {
		totalPages = int(total) / p.Limit
		if int(total)%p.Limit > 0 {
			totalPages++
		}
	}

	if items == nil {
		items = []T{}
	}

	return Page[T]{
		Items:       items,
		Total:       total,
		Page:        p.Page,
		Limit:       p.Limit,
		TotalPages:  totalPages,
		HasNext:     p.Page < totalPages,
		HasPrevious: p.Page > 1,
	}
}

// Paginate slices all into the page described by p.
func Paginate[T any](all []T, p Params) Page[T] {
	items := lo.Subset(all, p.Offset(), uint(max(p.Limit, 0))) //nolint:gosec // clamped to non-negative
	return NewPage(items, int64(len(all)), p)
}

// MapPage converts the items of a page while keeping its position.
func MapPage[T, U any](page Page[T], fn func(T) U) Page[U] {
	return Page[U]{
		Items:       lo.Map(page.Items, func(item T, _ int) U { return fn(item) }),
		Total:       page.Total,
		Page:        page.Page,
		Limit:       page.Limit,
		TotalPages:  page.TotalPages,
		HasNext:     page.HasNext,
		HasPrevious: page.HasPrevious,
	}
}
