package view

import (
	"cmp"
	"fmt"
	"omnihub/constants"
	"omnihub/types"
	"omnihub/utils"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Derive returns the games matching both query and filter, ordered for
// display. games is never modified.
func Derive(games []types.Game, filter types.ViewFilter, query string, today time.Time) []types.Game {
	needle := strings.ToLower(query)
	cutoff := utils.DaysBefore(today, constants.RecentWindowDays)

	matched := lo.Filter(games, func(g types.Game, _ int) bool {
		if needle != "" && !strings.Contains(strings.ToLower(g.Title), needle) {
			return false
		}
		return matchesFilter(g, filter, cutoff)
	})

	if filter == types.FilterRecent {
		// YYYY-MM-DD is fixed width and zero padded, so string order is date order
		slices.SortStableFunc(matched, func(a, b types.Game) int {
			return cmp.Compare(b.LastPlayed, a.LastPlayed)
		})
		return matched
	}

	c := collate.New(language.English)
	slices.SortStableFunc(matched, func(a, b types.Game) int {
		return c.CompareString(a.Title, b.Title)
	})
	return matched
}

func matchesFilter(g types.Game, filter types.ViewFilter, cutoff time.Time) bool {
	switch filter {
	case types.FilterAll:
		return true
	case types.FilterFavorites:
		return g.IsFavorite
	case types.FilterRecent:
		if g.LastPlayed == "" {
			return false
		}
		played, err := utils.ParseDayIn(g.LastPlayed, cutoff.Location())
		if err != nil {
			return false
		}
		return !played.Before(cutoff)
	default:
		return g.Platform == types.Platform(filter)
	}
}

// State is the navigation state of the library screen: the active filter
// and the live search query.
type State struct {
	mu     sync.RWMutex
	filter types.ViewFilter
	query  string
}

// NewState returns a State showing the whole library.
func NewState() *State {
	return &State{filter: types.FilterAll}
}

// SetFilter makes f the active filter.
func (s *State) SetFilter(f types.ViewFilter) error {
	if !f.Valid() {
		return fmt.Errorf("unknown filter %q", f)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = f
	return nil
}

// SetQuery replaces the search query.
func (s *State) SetQuery(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = q
}

// Reset clears the search and returns to the whole library.
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = types.FilterAll
	s.query = ""
}

// Current returns the active filter and query.
func (s *State) Current() (types.ViewFilter, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter, s.query
}

// Build derives the view for the current navigation state.
func (s *State) Build(games []types.Game, stats types.Stats, today time.Time) types.LibraryView {
	filter, query := s.Current()
	derived := Derive(games, filter, query, today)

	heading := string(filter)
	if filter == types.FilterAll {
		heading = constants.LibraryHeading
	}

	return types.LibraryView{
		Heading: heading,
		Filter:  filter,
		Query:   query,
		Games:   derived,
		Count:   len(derived),
		Stats:   stats,
		Empty:   len(derived) == 0,
	}
}
