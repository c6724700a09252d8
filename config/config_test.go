package config

import (
	"encoding/json"
	"omnihub/constants"
	"omnihub/types"
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvAPIKey, EnvLegacyAPIKey, EnvDatabasePath, EnvCoversPath, EnvLogLevel} {
		t.Setenv(key, "")
	}
}

func TestNewConfigManager(t *testing.T) {
	cm := NewConfigManager()
	if cm.ConfigPath == "" {
		t.Error("Expected ConfigPath to be set")
	}
	if cm.Config == nil {
		t.Error("Expected Config to be initialized")
	}
	if filepath.Base(cm.ConfigPath) != constants.ConfigFile {
		t.Errorf("Expected config file name %s, got %s", constants.ConfigFile, cm.ConfigPath)
	}
}

func TestLoadAndSave(t *testing.T) {
	clearEnv(t)
	tmpDir, err := os.MkdirTemp("", "config-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	configPath := filepath.Join(tmpDir, "config.json")
	cm := &ConfigManager{
		ConfigPath: configPath,
		Config:     &types.AppConfig{},
	}

	// 1. Test saving
	testConfig := types.AppConfig{
		GeminiAPIKey: "secret",
		GeminiModel:  "gemini-test",
		DatabasePath: "/path/to/omnihub.db",
		CoversPath:   "/path/to/covers",
		LogLevel:     "debug",
	}

	if err := cm.Save(testConfig); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("Config file was not created")
	}

	// 2. Test loading
	cm2 := &ConfigManager{
		ConfigPath: configPath,
		Config:     &types.AppConfig{},
	}
	if err := cm2.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cm2.Config.GeminiAPIKey != testConfig.GeminiAPIKey {
		t.Errorf("Expected key %s, got %s", testConfig.GeminiAPIKey, cm2.Config.GeminiAPIKey)
	}
	if cm2.GetModel() != testConfig.GeminiModel {
		t.Errorf("Expected model %s, got %s", testConfig.GeminiModel, cm2.GetModel())
	}
	if cm2.GetDatabasePath() != testConfig.DatabasePath {
		t.Errorf("Expected database path %s, got %s", testConfig.DatabasePath, cm2.GetDatabasePath())
	}
}

func TestCreateDefault(t *testing.T) {
	clearEnv(t)
	tmpDir := t.TempDir()

	configPath := filepath.Join(tmpDir, "subdir", "config.json")
	cm := &ConfigManager{
		ConfigPath: configPath,
		Config:     &types.AppConfig{},
	}

	if err := cm.Load(); err != nil {
		t.Fatalf("Load should not fail when file is missing (it should create default): %v", err)
	}

	cfg := cm.GetConfig()
	if cfg.DatabasePath == "" || cfg.CoversPath == "" {
		t.Error("Expected default paths to be set")
	}
	if cfg.GeminiModel != constants.DefaultGeminiModel {
		t.Errorf("Expected default model %s, got %s", constants.DefaultGeminiModel, cfg.GeminiModel)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("Default config file was not written to disk")
	}
}

func TestLoad_CorruptFile(t *testing.T) {
	clearEnv(t)
	configPath := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(configPath, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	cm := &ConfigManager{ConfigPath: configPath, Config: &types.AppConfig{}}
	if err := cm.Load(); err == nil {
		t.Error("Expected parse error for corrupt config")
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvLegacyAPIKey, "legacy-key")
	t.Setenv(EnvLogLevel, "warn")

	configPath := filepath.Join(t.TempDir(), "config.json")
	cm := &ConfigManager{ConfigPath: configPath, Config: &types.AppConfig{}}
	if err := cm.Save(types.AppConfig{GeminiAPIKey: "file-key", LogLevel: "debug"}); err != nil {
		t.Fatal(err)
	}

	if err := cm.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cm.GetAPIKey() != "legacy-key" {
		t.Errorf("Expected API_KEY to override file, got %s", cm.GetAPIKey())
	}

	t.Setenv(EnvAPIKey, "gemini-key")
	if err := cm.Load(); err != nil {
		t.Fatal(err)
	}
	if cm.GetAPIKey() != "gemini-key" {
		t.Errorf("Expected GEMINI_API_KEY to win, got %s", cm.GetAPIKey())
	}
	if cm.GetConfig().LogLevel != "warn" {
		t.Errorf("Expected log level warn, got %s", cm.GetConfig().LogLevel)
	}
}

func TestSave_KeepsEnvironmentOutOfFile(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvAPIKey, "env-secret")

	configPath := filepath.Join(t.TempDir(), "config.json")
	cm := &ConfigManager{ConfigPath: configPath, Config: &types.AppConfig{}}
	if err := cm.Save(types.AppConfig{GeminiAPIKey: "file-key", GeminiModel: "model-a"}); err != nil {
		t.Fatal(err)
	}
	if err := cm.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	cfg := cm.GetConfig()
	if cfg.GeminiAPIKey != "env-secret" {
		t.Fatalf("Expected environment key to be in effect, got %s", cfg.GeminiAPIKey)
	}
	cfg.GeminiModel = "model-b"
	if err := cm.Save(cfg); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatal(err)
	}
	var onDisk types.AppConfig
	if err := json.Unmarshal(data, &onDisk); err != nil {
		t.Fatal(err)
	}
	if onDisk.GeminiAPIKey != "file-key" {
		t.Errorf("Expected file to keep file-key, got %s", onDisk.GeminiAPIKey)
	}
	if onDisk.GeminiModel != "model-b" {
		t.Errorf("Expected model-b on disk, got %s", onDisk.GeminiModel)
	}
	if cm.GetAPIKey() != "env-secret" {
		t.Errorf("Expected environment key to stay in effect, got %s", cm.GetAPIKey())
	}

	if err := cm.Save(types.AppConfig{GeminiAPIKey: "typed-key", GeminiModel: "model-b"}); err != nil {
		t.Fatal(err)
	}
	if cm.Config.GeminiAPIKey != "typed-key" {
		t.Errorf("Expected a newly entered key to be stored, got %s", cm.Config.GeminiAPIKey)
	}
}

func TestGetConfigThreadSafety(t *testing.T) {
	cm := &ConfigManager{
		Config: &types.AppConfig{GeminiModel: "initial"},
	}

	cfg := cm.GetConfig()
	cfg.GeminiModel = "modified"

	if cm.Config.GeminiModel != "initial" {
		t.Error("GetConfig should return a copy, not a pointer to the internal struct")
	}
}
