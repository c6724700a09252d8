package types

// ViewFilter selects which part of the library is shown
type ViewFilter string

const (
	FilterAll       ViewFilter = "All"
	FilterFavorites ViewFilter = "Favorites"
	FilterRecent    ViewFilter = "Recent"
)

// Filters returns every filter the navigation exposes, library filters first.
func Filters() []ViewFilter {
	filters := []ViewFilter{FilterAll, FilterFavorites, FilterRecent}
	for _, p := range Platforms() {
		filters = append(filters, ViewFilter(p))
	}
	return filters
}

// Valid reports whether f is one of Filters().
func (f ViewFilter) Valid() bool {
	switch f {
	case FilterAll, FilterFavorites, FilterRecent:
		return true
	}
	return Platform(f).Valid()
}

// LibraryView is everything the frontend needs to render the game grid
type LibraryView struct {
	Heading string     `json:"heading"`
	Filter  ViewFilter `json:"filter"`
	Query   string     `json:"query"`
	Games   []Game     `json:"games"`
	Count   int        `json:"count"`
	Stats   Stats      `json:"stats"`
	Empty   bool       `json:"empty"`
}
