package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg == nil {
		t.Fatal("DefaultConfig() returned nil")
	}

	if cfg.BaseURL != "http://localhost:6543/api" {
		t.Errorf("expected default BaseURL='http://localhost:6543/api', got %q", cfg.BaseURL)
	}

	if cfg.PageSize != 10 {
		t.Errorf("expected default PageSize=10, got %d", cfg.PageSize)
	}

	if cfg.SearchDebounceMS != 500 {
		t.Errorf("expected default SearchDebounceMS=500, got %d", cfg.SearchDebounceMS)
	}

	if cfg.DefaultExportFormat != "xlsx" {
		t.Errorf("expected default DefaultExportFormat='xlsx', got %q", cfg.DefaultExportFormat)
	}

	if cfg.QRSize != 256 {
		t.Errorf("expected default QRSize=256, got %d", cfg.QRSize)
	}
}

func TestLoad_NonExistentFile(t *testing.T) {
	// Loading a non-existent file should return default config
	cfg, err := Load("/nonexistent/path/config.yaml")

	if err != nil {
		t.Fatalf("unexpected error loading non-existent file: %v", err)
	}

	if cfg == nil {
		t.Fatal("Load() returned nil config")
	}

	// Should return default values
	if cfg.BaseURL != "http://localhost:6543/api" {
		t.Errorf("expected default BaseURL, got %q", cfg.BaseURL)
	}

	if cfg.TimeoutSeconds != 15 {
		t.Errorf("expected default TimeoutSeconds=15, got %d", cfg.TimeoutSeconds)
	}
}

func TestSave_And_Load(t *testing.T) {
	// Create a temporary directory for testing
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	// Create a custom config
	cfg := &Config{
		BaseURL:             "https://bmd.example.go.id/api",
		TimeoutSeconds:      30,
		PageSize:            25,
		DefaultExportFormat: "pdf",
	}

	// Save the config
	err := cfg.Save(configPath)
	if err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	// Verify file was created
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Fatal("config file was not created")
	}

	// Load the config back
	loadedCfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Verify values match
	if loadedCfg.BaseURL != cfg.BaseURL {
		t.Errorf("BaseURL: expected %q, got %q", cfg.BaseURL, loadedCfg.BaseURL)
	}

	if loadedCfg.TimeoutSeconds != cfg.TimeoutSeconds {
		t.Errorf("TimeoutSeconds: expected %d, got %d", cfg.TimeoutSeconds, loadedCfg.TimeoutSeconds)
	}

	if loadedCfg.PageSize != cfg.PageSize {
		t.Errorf("PageSize: expected %d, got %d", cfg.PageSize, loadedCfg.PageSize)
	}

	if loadedCfg.DefaultExportFormat != cfg.DefaultExportFormat {
		t.Errorf("DefaultExportFormat: expected %q, got %q", cfg.DefaultExportFormat, loadedCfg.DefaultExportFormat)
	}
}

func TestLoad_AppliesDefaults(t *testing.T) {
	// Create a config file with missing values
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	// Create a partial config (missing base_url and page_size)
	yamlContent := `color_theme: dark
export_dir: /tmp/reports
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to create test config file: %v", err)
	}

	// Load the config
	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Should apply defaults for missing values
	if cfg.BaseURL != "http://localhost:6543/api" {
		t.Errorf("expected default BaseURL, got %q", cfg.BaseURL)
	}

	if cfg.PageSize != 10 {
		t.Errorf("expected default PageSize=10, got %d", cfg.PageSize)
	}

	// Should preserve specified values
	if cfg.ColorTheme != "dark" {
		t.Errorf("expected ColorTheme='dark', got %q", cfg.ColorTheme)
	}

	if cfg.ExportDir != "/tmp/reports" {
		t.Errorf("expected ExportDir='/tmp/reports', got %q", cfg.ExportDir)
	}
}

func TestLoad_ZeroPageSize(t *testing.T) {
	// Create a config file with zero page_size
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	yamlContent := `page_size: 0
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to create test config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Should apply default for zero/negative page_size
	if cfg.PageSize != 10 {
		t.Errorf("expected default PageSize=10 for zero value, got %d", cfg.PageSize)
	}
}

func TestLoad_NegativeTimeout(t *testing.T) {
	// Create a config file with negative timeout_seconds
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	yamlContent := `timeout_seconds: -5
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to create test config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Should apply default for negative timeout
	if cfg.TimeoutSeconds != 15 {
		t.Errorf("expected default TimeoutSeconds=15 for negative value, got %d", cfg.TimeoutSeconds)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	// Create a config file with invalid YAML
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	yamlContent := `base_url: http://localhost:6543/api
color_theme: [invalid yaml structure
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to create test config file: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Fatal("expected error loading invalid YAML, got nil")
	}
}

func TestSave_CreatesDirectory(t *testing.T) {
	// Save to a path where directory doesn't exist
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "nested", "dir", "config.yaml")

	cfg := DefaultConfig()
	err := cfg.Save(configPath)

	if err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	// Verify directory was created
	dir := filepath.Dir(configPath)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		t.Fatal("directory was not created")
	}

	// Verify file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Fatal("config file was not created")
	}
}

func TestExportFormat_ValidValues(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected string
	}{
		{"xlsx", "xlsx", "xlsx"},
		{"pdf", "pdf", "pdf"},
		{"csv", "csv", "csv"},
		{"empty defaults to xlsx", "", "xlsx"},
		{"invalid defaults to xlsx", "docx", "xlsx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			configPath := filepath.Join(tempDir, "config.yaml")

			yamlContent := ""
			if tt.value != "" {
				yamlContent = "default_export_format: " + tt.value + "\n"
			}

			if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
				t.Fatalf("failed to create test config file: %v", err)
			}

			cfg, err := Load(configPath)
			if err != nil {
				t.Fatalf("failed to load config: %v", err)
			}

			if cfg.DefaultExportFormat != tt.expected {
				t.Errorf("DefaultExportFormat: expected %q, got %q", tt.expected, cfg.DefaultExportFormat)
			}
		})
	}
}
