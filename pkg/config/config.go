package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Server
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`

	// Lists
	PageSize         int `yaml:"page_size"`
	SearchDebounceMS int `yaml:"search_debounce_ms"`

	// Live views
	WatchRefreshSeconds int `yaml:"watch_refresh_seconds"`
	ImportSettleMS      int `yaml:"import_settle_ms"`

	// UI Settings
	ColorTheme string `yaml:"color_theme"`

	// Export
	DefaultExportFormat string `yaml:"default_export_format"`
	ExportDir           string `yaml:"export_dir"`

	// QR labels
	QRSize int `yaml:"qr_size"`
}

// DefaultConfig returns a Config struct with default values
func DefaultConfig() *Config {
	return &Config{
		BaseURL:             "http://localhost:6543/api",
		TimeoutSeconds:      15,
		PageSize:            10,
		SearchDebounceMS:    500,
		WatchRefreshSeconds: 5,
		ImportSettleMS:      750,
		ColorTheme:          "auto",
		DefaultExportFormat: "xlsx",
		ExportDir:           "",
		QRSize:              256,
	}
}

// Load reads configuration from the specified file path
func Load(path string) (*Config, error) {
	// Start with default config
	cfg := DefaultConfig()

	// Try to read the file
	data, err := os.ReadFile(path)
	if err != nil {
		// If file doesn't exist, return default config (not an error)
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply defaults for essential values if missing
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:6543/api"
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = 15
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 10
	}
	if cfg.SearchDebounceMS <= 0 {
		cfg.SearchDebounceMS = 500
	}
	if cfg.WatchRefreshSeconds <= 0 {
		cfg.WatchRefreshSeconds = 5
	}
	if cfg.ImportSettleMS <= 0 {
		cfg.ImportSettleMS = 750
	}
	if cfg.QRSize <= 0 {
		cfg.QRSize = 256
	}

	// Validate DefaultExportFormat
	if !isValidExportFormat(cfg.DefaultExportFormat) {
		cfg.DefaultExportFormat = "xlsx"
	}

	return cfg, nil
}

// Save persists the current configuration to the specified file path
func (c *Config) Save(path string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// isValidExportFormat checks if the default export format is valid
func isValidExportFormat(format string) bool {
	validFormats := []string{"xlsx", "pdf", "csv"}
	for _, valid := range validFormats {
		if format == valid {
			return true
		}
	}
	return false
}
