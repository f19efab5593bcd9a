package appdir

import (
	"fmt"
	"os"
	"path/filepath"
)

// Dirs represents the managed storage directories for bmd
type Dirs struct {
	DataPath    string
	ExportsPath string
	ConfigPath  string
	SessionPath string
}

// New creates a new Dirs instance with XDG-compliant paths
func New() (*Dirs, error) {
	dataPath, dataErr := getDataRoot()
	configPath, configErr := getConfigPath()
	if dataErr != nil {
		return nil, fmt.Errorf("failed to determine data root: %w", dataErr)
	}
	if configErr != nil {
		return nil, fmt.Errorf("failed to determine config path: %w", configErr)
	}

	return &Dirs{
		DataPath:    dataPath,
		ExportsPath: filepath.Join(dataPath, "exports"),
		ConfigPath:  configPath,
		SessionPath: filepath.Join(dataPath, "session.json"),
	}, nil
}

// getDataRoot returns the data root directory path
// Follows XDG Base Directory specification on Unix and uses AppData on Windows
func getDataRoot() (string, error) {
	// Check XDG_DATA_HOME first (Unix-like systems)
	if xdgDataHome := os.Getenv("XDG_DATA_HOME"); xdgDataHome != "" {
		return filepath.Join(xdgDataHome, "bmd"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	// Check if we're on Windows by looking for APPDATA
	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, "bmd"), nil
	}

	// Fall back to ~/.local/share/bmd (Unix-like systems)
	return filepath.Join(homeDir, ".local", "share", "bmd"), nil
}

func getConfigPath() (string, error) {
	// Check XDG_CONFIG_HOME first (Unix-like systems)
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "bmd", "config.yaml"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	// Check if we're on Windows by looking for APPDATA
	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, "bmd-config", "config.yaml"), nil
	}

	// Fall back to ~/.config/bmd/config.yaml (Unix-like systems)
	return filepath.Join(homeDir, ".config", "bmd", "config.yaml"), nil
}

// Initialize creates the directory structure if it doesn't exist
func (d *Dirs) Initialize() error {
	directories := []string{
		d.DataPath,
		d.ExportsPath,
		filepath.Dir(d.ConfigPath),
	}

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// ExportPath returns the full path for an exported report file
func (d *Dirs) ExportPath(filename string) string {
	return filepath.Join(d.ExportsPath, filename)
}
