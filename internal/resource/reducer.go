package resource

import (
	"sort"
	"strings"
	"time"

	"go-clinic-dashboard/internal/domain/entity"
	"go-clinic-dashboard/pkg/display"
	"go-clinic-dashboard/pkg/timezone"
)

// Row is one visible record with its resolved status badge.
type Row[T any] struct {
	Record T               `json:"record"`
	Status string          `json:"status,omitempty"`
	Badge  display.Variant `json:"badge,omitempty"`
	Amount string          `json:"amount,omitempty"`
}

// View is the filtered, sorted and paginated projection of a collection.
type View[T any] struct {
	Rows       []Row[T] `json:"rows"`
	Page       int      `json:"page"`
	PageSize   int      `json:"page_size"`
	TotalPages int      `json:"total_pages"`
	Total      int      `json:"total"`
	Empty      bool     `json:"empty"`
}

// Reduce derives the visible page. It never mutates records.
func Reduce[T any](records []T, kind *Kind[T], filter entity.FilterState, loc *time.Location) View[T] {
	matched := Filter(records, kind, filter, loc)
	page, totalPages, visible := Paginate(matched, filter.Page, kind.PageSize)

	rows := make([]Row[T], 0, len(visible))
	for _, r := range visible {
		row := Row[T]{Record: r}
		if kind.Status != nil {
			row.Status = kind.Status(r)
			row.Badge = kind.badge(row.Status)
		}
		if kind.Amount != nil {
			row.Amount = display.FormatCurrencyWith(kind.currency(), kind.Amount(r))
		}
		rows = append(rows, row)
	}

	return View[T]{
		Rows:       rows,
		Page:       page,
		PageSize:   kind.PageSize,
		TotalPages: totalPages,
		Total:      len(matched),
		Empty:      len(matched) == 0,
	}
}

// Filter applies the text, category and date predicates and sorts the
// result with the kind's comparator.
func Filter[T any](records []T, kind *Kind[T], filter entity.FilterState, loc *time.Location) []T {
	search := strings.ToLower(filter.Search)
	out := make([]T, 0, len(records))
	for _, r := range records {
		if !matchesSearch(kind.Searchable(r), search) {
			continue
		}
		if kind.Category != nil && filter.Category != "" && filter.Category != entity.FilterAll &&
			kind.Category(r) != filter.Category {
			continue
		}
		if kind.Date != nil && filter.Date != "" && timezone.CalendarDay(kind.Date(r), loc) != filter.Date {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool { return kind.Less(out[i], out[j], loc) })
	return out
}

func matchesSearch(fields []string, search string) bool {
	if search == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), search) {
			return true
		}
	}
	return false
}

// Paginate clamps page to [1, totalPages] and returns that slice. totalPages
// is at least 1.
func Paginate[T any](records []T, page, size int) (int, int, []T) {
	if size <= 0 {
		size = len(records)
		if size == 0 {
			size = 1
		}
	}
	totalPages := (len(records) + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	start := (page - 1) * size
	end := start + size
	if start > len(records) {
		start = len(records)
	}
	if end > len(records) {
		end = len(records)
	}
	return page, totalPages, records[start:end]
}
