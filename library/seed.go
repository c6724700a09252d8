package library

import "omnihub/types"

// SeedGames returns a fresh copy of the collection used when no usable
// library is persisted.
func SeedGames() []types.Game {
	return []types.Game{
		{
			ID:            "1",
			Title:         "Elden Ring",
			CoverURL:      "https://picsum.photos/seed/elden/400/600",
			Platform:      types.PlatformSteam,
			Genre:         "Action RPG",
			Description:   "Rise, Tarnished, and be led by grace to brandish the power of the Elden Ring.",
			IsFavorite:    true,
			LastPlayed:    "2023-10-25",
			PlaytimeHours: 124,
			AddedAt:       "2023-01-10",
		},
		{
			ID:            "2",
			Title:         "Cyberpunk 2077",
			CoverURL:      "https://picsum.photos/seed/cp2077/400/600",
			Platform:      types.PlatformGOG,
			Genre:         "RPG",
			Description:   "An open-world, action-adventure story set in Night City.",
			IsFavorite:    false,
			LastPlayed:    "2023-11-01",
			PlaytimeHours: 85,
			AddedAt:       "2023-02-15",
		},
		{
			ID:            "3",
			Title:         "Hades",
			CoverURL:      "https://picsum.photos/seed/hades/400/600",
			Platform:      types.PlatformEpic,
			Genre:         "Roguelike",
			Description:   "Defy the god of the dead as you hack and slash out of the Underworld.",
			IsFavorite:    true,
			LastPlayed:    "2023-11-05",
			PlaytimeHours: 42,
			AddedAt:       "2023-05-20",
		},
		{
			ID:            "4",
			Title:         "Baldur's Gate 3",
			CoverURL:      "https://picsum.photos/seed/bg3/400/600",
			Platform:      types.PlatformSteam,
			Genre:         "RPG",
			Description:   "Gather your party and return to the Forgotten Realms in a tale of fellowship and betrayal.",
			IsFavorite:    true,
			LastPlayed:    "2023-11-10",
			PlaytimeHours: 210,
			AddedAt:       "2023-08-03",
		},
	}
}

