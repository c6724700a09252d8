package types

// Game represents one owned title in the library
type Game struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	CoverURL      string   `json:"coverUrl"`
	Platform      Platform `json:"platform"`
	Genre         string   `json:"genre"`
	Description   string   `json:"description"`
	IsFavorite    bool     `json:"isFavorite"`
	LastPlayed    string   `json:"lastPlayed,omitempty"` // YYYY-MM-DD, empty until first launch
	PlaytimeHours int      `json:"playtimeHours"`
	AddedAt       string   `json:"addedAt"` // YYYY-MM-DD
}

// GameDraft holds the user supplied fields of a game that is about to be added
type GameDraft struct {
	Title       string   `json:"title"`
	Platform    Platform `json:"platform"`
	Genre       string   `json:"genre"`
	Description string   `json:"description"`
	CoverURL    string   `json:"coverUrl"`
}

// Stats are the aggregate numbers shown next to the library
type Stats struct {
	TotalHours int `json:"totalHours"`
	TotalGames int `json:"totalGames"`
}

// Metadata is what the autofill service returns for a title
type Metadata struct {
	Title       string `json:"title"`
	Genre       string `json:"genre"`
	Description string `json:"description"`
}
