package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xolan/chrono/internal/app"
	"github.com/xolan/chrono/internal/osutil"
)

// Helper to create a temporary config file
func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "config.toml")
	// Always write the file, even if content is empty
	if err := os.WriteFile(tmpFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create temp config file: %v", err)
	}
	return tmpFile
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Theme != "dracula" {
		t.Errorf("DefaultConfig().Theme = %q, expected %q", cfg.Theme, "dracula")
	}
	if cfg.StopAllOnStart {
		t.Error("DefaultConfig().StopAllOnStart should be false")
	}
	if !cfg.ConfirmActions {
		t.Error("DefaultConfig().ConfirmActions should be true")
	}
	if cfg.InitialStopwatches != 3 {
		t.Errorf("DefaultConfig().InitialStopwatches = %d, expected 3", cfg.InitialStopwatches)
	}
	if cfg.LogLevel != "normal" {
		t.Errorf("DefaultConfig().LogLevel = %q, expected %q", cfg.LogLevel, "normal")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig() should be valid, got: %v", err)
	}
}

func TestLoad_ValidConfig(t *testing.T) {
	tests := []struct {
		name          string
		configContent string
		expected      Config
	}{
		{
			name: "all fields set",
			configContent: `theme = "nord"
stop_all_on_start = true
confirm_actions = false
initial_stopwatches = 5
log_level = "verbose"`,
			expected: Config{
				Theme:              "nord",
				StopAllOnStart:     true,
				ConfirmActions:     false,
				InitialStopwatches: 5,
				LogLevel:           "verbose",
			},
		},
		{
			name:          "partial config keeps defaults",
			configContent: `stop_all_on_start = true`,
			expected: Config{
				Theme:              "dracula",
				StopAllOnStart:     true,
				ConfirmActions:     true,
				InitialStopwatches: 3,
				LogLevel:           "normal",
			},
		},
		{
			name: "mixed case normalized",
			configContent: `theme = "  Nord "
log_level = "VERBOSE"`,
			expected: Config{
				Theme:              "nord",
				ConfirmActions:     true,
				InitialStopwatches: 3,
				LogLevel:           "verbose",
			},
		},
		{
			name: "empty theme falls back to default",
			configContent: `theme = ""
initial_stopwatches = 0`,
			expected: Config{
				Theme:              "dracula",
				ConfirmActions:     true,
				InitialStopwatches: 0,
				LogLevel:           "normal",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpFile := createTempConfigFile(t, tt.configContent)

			cfg, err := Load(tmpFile)
			if err != nil {
				t.Fatalf("Load() returned unexpected error: %v", err)
			}
			if cfg != tt.expected {
				t.Errorf("Load() = %+v, expected %+v", cfg, tt.expected)
			}
		})
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	tmpFile := createTempConfigFile(t, "")

	cfg, err := Load(tmpFile)
	if err != nil {
		t.Fatalf("Load() returned unexpected error for empty file: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("Load() = %+v, expected defaults %+v", cfg, DefaultConfig())
	}
}

func TestLoad_MissingFile(t *testing.T) {
	tmpDir := t.TempDir()
	nonExistentFile := filepath.Join(tmpDir, "does_not_exist.toml")

	_, err := Load(nonExistentFile)
	if err == nil {
		t.Error("Load() should return error for non-existent file")
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	tests := []struct {
		name          string
		configContent string
	}{
		{
			name:          "malformed TOML",
			configContent: `theme = "nord`,
		},
		{
			name:          "invalid syntax",
			configContent: `this is not valid TOML at all`,
		},
		{
			name:          "missing quotes",
			configContent: `theme = nord`,
		},
		{
			name: "unclosed brackets",
			configContent: `[section
theme = "nord"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpFile := createTempConfigFile(t, tt.configContent)

			_, err := Load(tmpFile)
			if err == nil {
				t.Fatal("Load() should return error for invalid TOML")
			}
			if !strings.Contains(err.Error(), "failed to parse config file") {
				t.Errorf("Error should mention parse failure, got: %v", err)
			}
		})
	}
}

func TestLoad_WrongType(t *testing.T) {
	tmpFile := createTempConfigFile(t, `stop_all_on_start = "yes"`)

	_, err := Load(tmpFile)
	if err == nil {
		t.Error("Load() should return error for a mistyped value")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name          string
		configContent string
		errContains   string
	}{
		{"negative initial stopwatches", `initial_stopwatches = -1`, "invalid initial_stopwatches"},
		{"too many initial stopwatches", `initial_stopwatches = 21`, "invalid initial_stopwatches"},
		{"unknown log level", `log_level = "loud"`, "invalid log_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpFile := createTempConfigFile(t, tt.configContent)

			_, err := Load(tmpFile)
			if err == nil {
				t.Fatal("Load() should return error for invalid value")
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("Error should contain %q, got: %v", tt.errContains, err)
			}
		})
	}
}

func TestLoad_UnreadableFile(t *testing.T) {
	tmpFile := createTempConfigFile(t, `theme = "nord"`)

	// Make file unreadable
	if err := os.Chmod(tmpFile, 0000); err != nil {
		t.Skipf("Cannot change file permissions: %v", err)
	}
	defer func() { _ = os.Chmod(tmpFile, 0644) }()
	if _, err := os.ReadFile(tmpFile); err == nil {
		t.Skip("file still readable (running as root?)")
	}

	_, err := Load(tmpFile)
	if err == nil {
		t.Error("Load() should return error for unreadable file")
	}
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	tmpDir := t.TempDir()
	nonExistentFile := filepath.Join(tmpDir, "does_not_exist.toml")

	cfg, err := LoadOrDefault(nonExistentFile)
	if err != nil {
		t.Fatalf("LoadOrDefault() returned unexpected error for non-existent file: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("LoadOrDefault() = %+v, expected defaults", cfg)
	}
}

func TestLoadOrDefault_ExistingValidFile(t *testing.T) {
	tmpFile := createTempConfigFile(t, `theme = "nord"
confirm_actions = false`)

	cfg, err := LoadOrDefault(tmpFile)
	if err != nil {
		t.Fatalf("LoadOrDefault() returned unexpected error: %v", err)
	}
	if cfg.Theme != "nord" || cfg.ConfirmActions {
		t.Errorf("LoadOrDefault() = %+v, expected values from file", cfg)
	}
}

func TestLoadOrDefault_ExistingInvalidFile(t *testing.T) {
	// Invalid config file should return error, not default
	tmpFile := createTempConfigFile(t, `log_level = "shouting"`)

	_, err := LoadOrDefault(tmpFile)
	if err == nil {
		t.Fatal("LoadOrDefault() should return error for invalid config file")
	}
	if !strings.Contains(err.Error(), "invalid log_level") {
		t.Errorf("Error should mention invalid log_level, got: %v", err)
	}
}

func TestLoadOrDefault_StatError(t *testing.T) {
	tmpDir := t.TempDir()
	parentDir := filepath.Join(tmpDir, "parent")
	if err := os.Mkdir(parentDir, 0755); err != nil {
		t.Fatalf("Failed to create parent directory: %v", err)
	}

	configPath := filepath.Join(parentDir, "config.toml")

	// Make parent directory unreadable (this will cause stat to fail with permission error)
	if err := os.Chmod(parentDir, 0000); err != nil {
		t.Skipf("Cannot change directory permissions: %v", err)
	}
	defer func() { _ = os.Chmod(parentDir, 0755) }()
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Skip("stat not blocked by permissions (running as root?)")
	}

	_, err := LoadOrDefault(configPath)
	if err == nil {
		t.Error("LoadOrDefault() should return error when os.Stat fails with permission error")
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name          string
		theme         string
		logLevel      string
		expectedTheme string
		expectedLevel string
	}{
		{"unchanged", "dracula", "normal", "dracula", "normal"},
		{"uppercase", "NORD", "VERBOSE", "nord", "verbose"},
		{"spaces", "  nord  ", " off ", "nord", "off"},
		{"empty theme", "", "", "dracula", ""},
		{"blank theme", "   ", "Normal", "dracula", "normal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Theme: tt.theme, LogLevel: tt.logLevel}
			cfg.Normalize()

			if cfg.Theme != tt.expectedTheme {
				t.Errorf("Theme = %q, expected %q", cfg.Theme, tt.expectedTheme)
			}
			if cfg.LogLevel != tt.expectedLevel {
				t.Errorf("LogLevel = %q, expected %q", cfg.LogLevel, tt.expectedLevel)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"zero stopwatches", func(c *Config) { c.InitialStopwatches = 0 }, false},
		{"max stopwatches", func(c *Config) { c.InitialStopwatches = MaxInitialStopwatches }, false},
		{"negative stopwatches", func(c *Config) { c.InitialStopwatches = -3 }, true},
		{"too many stopwatches", func(c *Config) { c.InitialStopwatches = 100 }, true},
		{"log level off", func(c *Config) { c.LogLevel = "off" }, false},
		{"log level empty", func(c *Config) { c.LogLevel = "" }, false},
		{"log level unknown", func(c *Config) { c.LogLevel = "trace" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGenerateSampleConfig(t *testing.T) {
	content := GenerateSampleConfig()

	expectedStrings := []string{
		"# chrono configuration file",
		"# theme",
		"# stop_all_on_start",
		"# confirm_actions",
		"# initial_stopwatches",
		"# log_level",
		"dracula",
	}
	for _, expected := range expectedStrings {
		if !strings.Contains(content, expected) {
			t.Errorf("GenerateSampleConfig() missing expected content: %q", expected)
		}
	}

	// Every setting is commented out, so the sample decodes to the defaults
	tmpFile := createTempConfigFile(t, content)
	cfg, err := Load(tmpFile)
	if err != nil {
		t.Fatalf("Load() of the sample config returned error: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("sample config loaded as %+v, expected defaults", cfg)
	}
}

func TestGetConfigPath(t *testing.T) {
	defer osutil.ResetProvider()

	tmpDir := t.TempDir()
	osutil.SetProvider(&mockPathProvider{
		userConfigDirFn: func() (string, error) {
			return tmpDir, nil
		},
	})

	path, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() returned unexpected error: %v", err)
	}

	expected := filepath.Join(tmpDir, app.Name, ConfigFile)
	if path != expected {
		t.Errorf("GetConfigPath() = %q, expected %q", path, expected)
	}
}

func TestGetConfigPath_UserConfigDirError(t *testing.T) {
	defer osutil.ResetProvider()

	osutil.SetProvider(&mockPathProvider{
		userConfigDirFn: func() (string, error) {
			return "", os.ErrPermission
		},
	})

	_, err := GetConfigPath()
	if err == nil {
		t.Error("GetConfigPath() should return error when UserConfigDir fails")
	}
}

func TestGetConfigPath_MkdirAllError(t *testing.T) {
	defer osutil.ResetProvider()

	tmpDir := t.TempDir()
	osutil.SetProvider(&mockPathProvider{
		userConfigDirFn: func() (string, error) {
			return tmpDir, nil
		},
		mkdirAllFn: func(path string, perm os.FileMode) error {
			return os.ErrPermission
		},
	})

	_, err := GetConfigPath()
	if err == nil {
		t.Error("GetConfigPath() should return error when MkdirAll fails")
	}
}

// mockPathProvider is a test helper for mocking osutil.PathProvider
type mockPathProvider struct {
	userConfigDirFn func() (string, error)
	mkdirAllFn      func(path string, perm os.FileMode) error
}

func (m *mockPathProvider) UserConfigDir() (string, error) {
	if m.userConfigDirFn != nil {
		return m.userConfigDirFn()
	}
	return "", nil
}

func (m *mockPathProvider) MkdirAll(path string, perm os.FileMode) error {
	if m.mkdirAllFn != nil {
		return m.mkdirAllFn(path, perm)
	}
	return nil
}
