package constants

import "time"

// Storage
const (
	SlotKey = "omnihub_games"
)

// Event Names
const (
	EventLibraryChanged = "library-changed"
	EventFormChanged    = "form-changed"
	EventGameStarted    = "game-started"
	EventGameExited     = "game-exited"
)

// Path Components
const (
	AppDir       = ".omnihub"
	CacheDir     = "cache"
	ConfigDir    = "config"
	CoversDir    = "covers"
	DataDir      = "data"
	ConfigFile   = "config.json"
	DatabaseFile = "omnihub.db"
)

// Library behaviour
const (
	RecentWindowDays = 30
	MinSessionHours  = 1
	MaxSessionHours  = 3
	LibraryHeading   = "My Library"
)

// Covers
const (
	DefaultCoverURL      = "https://picsum.photos/seed/game/400/600"
	SeededCoverURL       = "https://picsum.photos/seed/%s/400/600"
	CoverDownloadTimeout = 30 * time.Second
	MaxCoverBytes        = 20 << 20
)

// Gemini
const (
	GeminiBaseURL      = "https://generativelanguage.googleapis.com"
	DefaultGeminiModel = "gemini-3-flash-preview"
)

// Database
const (
	DBMaxOpenConns = 1
	DBMaxIdleConns = 1
)
