package config

import (
	"os"
	"path/filepath"
)

// configDir returns ~/.config/onchange, or "." without a home directory.
func configDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	return filepath.Join(homeDir, ".config", "onchange")
}

// defaultDBPath returns the default history database path.
//
// Returns: ~/.config/onchange/history.db.
func defaultDBPath() string {
	return filepath.Join(configDir(), "history.db")
}

// defaultConfigPath returns the default configuration file path.
//
// Returns: ~/.config/onchange/config.yaml.
func defaultConfigPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

// localConfigFile is looked up in the working directory.
const localConfigFile = ".onchange.yaml"
