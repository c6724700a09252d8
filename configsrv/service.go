package configsrv

import (
	"fmt"
	"omnihub/types"
	"strings"
)

// ConfigManager defines the interface for managing the app configuration.
type ConfigManager interface {
	ConfigGetConfig() types.AppConfig
	ConfigSave(cfg types.AppConfig) error
}

// UIProvider defines the UI interactions needed for configuration.
type UIProvider interface {
	OpenDirectoryDialog(title string) (string, error)
}

// Service handles configuration-related logic.
type Service struct {
	cm ConfigManager
	ui UIProvider
}

// New creates a new Config service.
func New(cm ConfigManager, ui UIProvider) *Service {
	return &Service{
		cm: cm,
		ui: ui,
	}
}

// GetConfig returns the current configuration.
func (s *Service) GetConfig() types.AppConfig {
	return s.cm.ConfigGetConfig()
}

// SaveConfig merges non-empty fields into the current configuration and saves it.
// The bool reports whether the autofill client has to be rebuilt.
func (s *Service) SaveConfig(cfg types.AppConfig) (string, bool) {
	current := s.cm.ConfigGetConfig()
	oldKey, oldModel := current.GeminiAPIKey, current.GeminiModel

	updateIfNotEmpty(&current.GeminiAPIKey, cfg.GeminiAPIKey)
	updateIfNotEmpty(&current.GeminiModel, cfg.GeminiModel)
	updateIfNotEmpty(&current.DatabasePath, cfg.DatabasePath)
	updateIfNotEmpty(&current.CoversPath, cfg.CoversPath)
	updateIfNotEmpty(&current.LogLevel, strings.ToLower(cfg.LogLevel))

	if err := s.cm.ConfigSave(current); err != nil {
		return fmt.Sprintf("Error saving config: %s", err.Error()), false
	}

	clientChanged := current.GeminiAPIKey != oldKey || current.GeminiModel != oldModel
	return "Configuration saved successfully!", clientChanged
}

func updateIfNotEmpty(target *string, value string) {
	if v := strings.TrimSpace(value); v != "" {
		*target = v
	}
}

// SelectCoversDirectory lets the user pick where cached and imported covers are stored.
func (s *Service) SelectCoversDirectory() (string, error) {
	selectedDir, err := s.ui.OpenDirectoryDialog("Select Covers Directory")
	if err != nil {
		return "", err
	}

	if selectedDir != "" {
		cfg := s.cm.ConfigGetConfig()
		cfg.CoversPath = selectedDir
		if err = s.cm.ConfigSave(cfg); err != nil {
			return "", fmt.Errorf("failed to save config: %w", err)
		}
	}

	return selectedDir, nil
}
