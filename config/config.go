package config

import (
	"encoding/json"
	"fmt"
	"omnihub/constants"
	"omnihub/types"
	"omnihub/utils/fileio"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/joho/godotenv"
)

// Environment variables that take precedence over the config file
const (
	EnvAPIKey       = "GEMINI_API_KEY"
	EnvLegacyAPIKey = "API_KEY"
	EnvDatabasePath = "OMNIHUB_DB_PATH"
	EnvCoversPath   = "OMNIHUB_COVERS_PATH"
	EnvLogLevel     = "LOG_LEVEL"
)

// ConfigManager handles loading/saving. Config holds what is on disk;
// environment overrides are kept apart so they never reach the file.
type ConfigManager struct {
	Config     *types.AppConfig
	ConfigPath string
	Mu         sync.RWMutex // Thread-safety for UI reads/writes
	env        types.AppConfig
}

// NewConfigManager initializes the manager and determines the file path
func NewConfigManager() *ConfigManager {
	return &ConfigManager{
		ConfigPath: filepath.Join(appRoot(), constants.ConfigDir, constants.ConfigFile),
		Config:     &types.AppConfig{},
	}
}

// appRoot is ~/.omnihub, or the executable's directory when there is no home.
func appRoot() string {
	home, err := os.UserHomeDir()
	if err != nil {
		exePath, err := os.Executable()
		if err != nil {
			exePath = "."
		}
		return filepath.Join(filepath.Dir(exePath), constants.AppDir)
	}
	return filepath.Join(home, constants.AppDir)
}

// Load reads the config from disk, creating a default file when none exists,
// then applies .env and environment overrides.
func (cm *ConfigManager) Load() error {
	cm.Mu.Lock()
	defer cm.Mu.Unlock()

	if _, err := os.Stat(cm.ConfigPath); os.IsNotExist(err) {
		if err := cm.createDefault(); err != nil {
			return err
		}
	} else {
		data, err := os.ReadFile(cm.ConfigPath)
		if err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		if err := json.Unmarshal(data, cm.Config); err != nil {
			return fmt.Errorf("failed to parse config json: %w", err)
		}
	}

	// A missing .env is the normal case
	_ = godotenv.Load()
	cm.env = readEnv()
	fillDefaults(cm.Config)
	return nil
}

// GetConfig returns a copy of the current config with environment
// overrides applied (Thread-Safe)
func (cm *ConfigManager) GetConfig() types.AppConfig {
	cm.Mu.RLock()
	defer cm.Mu.RUnlock()

	cfg := *cm.Config
	overlay(&cfg, cm.env)
	return cfg
}

// Save writes the given config to disk and makes it current. Fields still
// carrying their environment override keep the value already on disk.
func (cm *ConfigManager) Save(newConfig types.AppConfig) error {
	cm.Mu.Lock()
	defer cm.Mu.Unlock()

	*cm.Config = withoutEnv(newConfig, cm.env, *cm.Config)
	return cm.write()
}

// GetAPIKey returns the Gemini API key.
func (cm *ConfigManager) GetAPIKey() string {
	return cm.GetConfig().GeminiAPIKey
}

// GetModel returns the Gemini model name.
func (cm *ConfigManager) GetModel() string {
	return cm.GetConfig().GeminiModel
}

// GetDatabasePath returns the SQLite file holding the library slot.
func (cm *ConfigManager) GetDatabasePath() string {
	return cm.GetConfig().DatabasePath
}

// GetCoversPath returns the covers cache directory.
func (cm *ConfigManager) GetCoversPath() string {
	return cm.GetConfig().CoversPath
}

// DefaultConfig returns the settings used on first run.
func DefaultConfig() types.AppConfig {
	root := appRoot()
	return types.AppConfig{
		GeminiModel:  constants.DefaultGeminiModel,
		DatabasePath: filepath.Join(root, constants.DataDir, constants.DatabaseFile),
		CoversPath:   filepath.Join(root, constants.CacheDir, constants.CoversDir),
		LogLevel:     "info",
	}
}

// createDefault generates a default config file if none exists
func (cm *ConfigManager) createDefault() error {
	defaultConfig := DefaultConfig()
	cm.Config = &defaultConfig

	fmt.Println("Config file not found. Creating default at:", cm.ConfigPath)

	return cm.write()
}

func (cm *ConfigManager) write() error {
	data, err := json.MarshalIndent(cm.Config, "", "  ")
	if err != nil {
		return err
	}
	// The file can hold an API key
	return fileio.WriteFileAtomic(cm.ConfigPath, data, 0o600)
}

func readEnv() types.AppConfig {
	return types.AppConfig{
		GeminiAPIKey: firstEnv(EnvAPIKey, EnvLegacyAPIKey),
		DatabasePath: firstEnv(EnvDatabasePath),
		CoversPath:   firstEnv(EnvCoversPath),
		LogLevel:     firstEnv(EnvLogLevel),
	}
}

func overlay(cfg *types.AppConfig, env types.AppConfig) {
	for _, f := range envFields(cfg, env) {
		if f.env != "" {
			*f.target = f.env
		}
	}
}

// withoutEnv undoes overlay on cfg so the stored value is written instead.
func withoutEnv(cfg, env, stored types.AppConfig) types.AppConfig {
	storedFields := envFields(&stored, env)
	for i, f := range envFields(&cfg, env) {
		if f.env != "" && *f.target == f.env {
			*f.target = *storedFields[i].target
		}
	}
	return cfg
}

type envField struct {
	target *string
	env    string
}

func envFields(cfg *types.AppConfig, env types.AppConfig) []envField {
	return []envField{
		{&cfg.GeminiAPIKey, env.GeminiAPIKey},
		{&cfg.DatabasePath, env.DatabasePath},
		{&cfg.CoversPath, env.CoversPath},
		{&cfg.LogLevel, env.LogLevel},
	}
}

func fillDefaults(cfg *types.AppConfig) {
	defaults := DefaultConfig()
	if cfg.GeminiModel == "" {
		cfg.GeminiModel = defaults.GeminiModel
	}
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = defaults.DatabasePath
	}
	if cfg.CoversPath == "" {
		cfg.CoversPath = defaults.CoversPath
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaults.LogLevel
	}
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v
		}
	}
	return ""
}
