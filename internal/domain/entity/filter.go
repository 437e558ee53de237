package entity

// FilterAll is the category/status sentinel that disables that filter.
const FilterAll = "all"

// FilterState is the per-screen search/filter/page selection.
type FilterState struct {
	Search   string `json:"search"`
	Category string `json:"category"`
	Date     string `json:"date"` // YYYY-MM-DD
	Page     int    `json:"page"`
}

func DefaultFilterState() FilterState {
	return FilterState{Category: FilterAll, Page: 1}
}
