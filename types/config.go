package types

// AppConfig holds all application settings
type AppConfig struct {
	GeminiAPIKey string `json:"gemini_api_key"` // Key for the Gemini API, autofill is disabled without it
	GeminiModel  string `json:"gemini_model"`   // Model used for metadata lookups
	DatabasePath string `json:"database_path"`  // SQLite file holding the library slot
	CoversPath   string `json:"covers_path"`    // Where cached and imported covers live
	LogLevel     string `json:"log_level"`      // zerolog level name
}
