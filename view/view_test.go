package view

import (
	"omnihub/library"
	"omnihub/types"
	"slices"
	"testing"
	"time"
)

var today = time.Date(2023, 11, 15, 9, 0, 0, 0, time.UTC)

func titles(games []types.Game) []string {
	out := make([]string, len(games))
	for i, g := range games {
		out[i] = g.Title
	}
	return out
}

func TestDerive_All(t *testing.T) {
	got := titles(Derive(library.SeedGames(), types.FilterAll, "", today))
	expected := []string{"Baldur's Gate 3", "Cyberpunk 2077", "Elden Ring", "Hades"}
	if !slices.Equal(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestDerive_Favorites(t *testing.T) {
	got := Derive(library.SeedGames(), types.FilterFavorites, "", today)
	expected := []string{"Baldur's Gate 3", "Elden Ring", "Hades"}
	if !slices.Equal(titles(got), expected) {
		t.Errorf("Expected %v, got %v", expected, titles(got))
	}
	for _, g := range got {
		if !g.IsFavorite {
			t.Errorf("%s is not a favorite", g.Title)
		}
	}
}

func TestDerive_Recent(t *testing.T) {
	games := []types.Game{
		{ID: "a", Title: "Hades", Platform: types.PlatformEpic, LastPlayed: "2023-11-05"},
		{ID: "b", Title: "Old", Platform: types.PlatformSteam, LastPlayed: "2023-09-01"},
		{ID: "c", Title: "Never", Platform: types.PlatformSteam},
		{ID: "d", Title: "Today", Platform: types.PlatformGOG, LastPlayed: "2023-11-15"},
		{ID: "e", Title: "Edge", Platform: types.PlatformGOG, LastPlayed: "2023-10-16"},
		{ID: "f", Title: "Past Edge", Platform: types.PlatformGOG, LastPlayed: "2023-10-15"},
		{ID: "g", Title: "Tie", Platform: types.PlatformEA, LastPlayed: "2023-11-05"},
	}

	got := Derive(games, types.FilterRecent, "", today)
	expected := []string{"Today", "Hades", "Tie", "Edge"}
	if !slices.Equal(titles(got), expected) {
		t.Errorf("Expected %v, got %v", expected, titles(got))
	}
}

func TestDerive_RecentAcrossMonthBoundary(t *testing.T) {
	games := []types.Game{
		{ID: "a", Title: "In", Platform: types.PlatformSteam, LastPlayed: "2024-02-01"},
		{ID: "b", Title: "Out", Platform: types.PlatformSteam, LastPlayed: "2024-01-31"},
	}
	march := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)

	got := titles(Derive(games, types.FilterRecent, "", march))
	if !slices.Equal(got, []string{"In"}) {
		t.Errorf("Expected [In], got %v", got)
	}
}

func TestDerive_RecentBoundaryInLocalTime(t *testing.T) {
	games := []types.Game{
		{ID: "a", Title: "Edge", Platform: types.PlatformSteam, LastPlayed: "2023-10-16"},
		{ID: "b", Title: "Old", Platform: types.PlatformSteam, LastPlayed: "2023-10-15"},
	}
	zones := []*time.Location{
		time.UTC,
		time.FixedZone("EST", -5*60*60),
		time.FixedZone("PST", -8*60*60),
		time.FixedZone("JST", 9*60*60),
	}
	for _, loc := range zones {
		for _, hour := range []int{0, 12, 23} {
			now := time.Date(2023, 11, 15, hour, 0, 0, 0, loc)
			got := titles(Derive(games, types.FilterRecent, "", now))
			if !slices.Equal(got, []string{"Edge"}) {
				t.Errorf("%s %02d:00: expected [Edge], got %v", loc, hour, got)
			}
		}
	}
}

func TestDerive_Platform(t *testing.T) {
	got := Derive(library.SeedGames(), types.ViewFilter(types.PlatformSteam), "", today)
	expected := []string{"Baldur's Gate 3", "Elden Ring"}
	if !slices.Equal(titles(got), expected) {
		t.Errorf("Expected %v, got %v", expected, titles(got))
	}
}

func TestDerive_Search(t *testing.T) {
	for _, q := range []string{"hades", "HADES", "aDe"} {
		got := Derive(library.SeedGames(), types.FilterAll, q, today)
		if len(got) != 1 || got[0].Title != "Hades" {
			t.Errorf("Query %q: expected only Hades, got %v", q, titles(got))
		}
	}
}

func TestDerive_SearchIsNotTrimmed(t *testing.T) {
	if got := Derive(library.SeedGames(), types.FilterAll, " hades", today); len(got) != 0 {
		t.Errorf("Expected no match for a leading space, got %v", titles(got))
	}
	got := Derive(library.SeedGames(), types.FilterAll, "gate 3", today)
	if len(got) != 1 || got[0].Title != "Baldur's Gate 3" {
		t.Errorf("Expected inner spaces to match, got %v", titles(got))
	}
}

func TestDerive_SearchAndFilter(t *testing.T) {
	// Cyberpunk matches the query but is not a favorite
	got := Derive(library.SeedGames(), types.FilterFavorites, "c", today)
	if len(got) != 0 {
		t.Errorf("Expected no results, got %v", titles(got))
	}
}

func TestDerive_Idempotent(t *testing.T) {
	cases := []struct {
		filter types.ViewFilter
		query  string
	}{
		{types.FilterAll, ""},
		{types.FilterFavorites, "e"},
		{types.FilterRecent, ""},
		{types.ViewFilter(types.PlatformGOG), "cyber"},
	}
	for _, tc := range cases {
		once := Derive(library.SeedGames(), tc.filter, tc.query, today)
		twice := Derive(once, tc.filter, tc.query, today)
		if !slices.Equal(once, twice) {
			t.Errorf("%s/%q: expected %v, got %v", tc.filter, tc.query, titles(once), titles(twice))
		}
	}
}

func TestDerive_DoesNotMutateInput(t *testing.T) {
	games := library.SeedGames()
	before := slices.Clone(games)
	Derive(games, types.FilterAll, "", today)
	if !slices.Equal(games, before) {
		t.Errorf("Derive reordered its input")
	}
}

func TestDerive_Empty(t *testing.T) {
	got := Derive(library.SeedGames(), types.FilterAll, "zelda", today)
	if got == nil || len(got) != 0 {
		t.Errorf("Expected an empty, non-nil result, got %v", got)
	}
}

func TestState(t *testing.T) {
	s := NewState()
	games := library.SeedGames()
	stats := types.Stats{TotalHours: 461, TotalGames: 4}

	v := s.Build(games, stats, today)
	if v.Heading != "My Library" || v.Count != 4 || v.Empty {
		t.Errorf("Unexpected default view: %+v", v)
	}

	if err := s.SetFilter("Origin"); err == nil {
		t.Errorf("Expected unknown filter to be rejected")
	}
	if err := s.SetFilter(types.FilterFavorites); err != nil {
		t.Fatal(err)
	}
	s.SetQuery("zelda")

	v = s.Build(games, stats, today)
	if v.Heading != "Favorites" || !v.Empty || v.Count != 0 {
		t.Errorf("Expected empty Favorites view, got %+v", v)
	}
	if v.Stats != stats {
		t.Errorf("Expected stats to pass through, got %+v", v.Stats)
	}

	s.Reset()
	filter, query := s.Current()
	if filter != types.FilterAll || query != "" {
		t.Errorf("Expected reset to All with empty query, got %s/%q", filter, query)
	}
}
