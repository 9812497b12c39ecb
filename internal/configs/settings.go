package configs

import (
	"os"
	"path/filepath"
)

type UserSettings struct {
	// UserKeysPath is the default key store directory.
	UserKeysPath string
	// UserConfigsPath holds config.toml.
	UserConfigsPath string
}

var UserRsakitSettings *UserSettings

func init() {
	UserRsakitSettings = defaultUserSettings()
}

func defaultUserSettings() *UserSettings {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.TempDir()
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(homeDir, ".config")
	}

	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	return &UserSettings{
		UserKeysPath:    filepath.Join(dataDir, "rsakit", "keys"),
		UserConfigsPath: filepath.Join(configDir, "rsakit"),
	}
}

// ConfigFilePath returns the path of the user's config.toml.
func ConfigFilePath() string {
	return filepath.Join(UserRsakitSettings.UserConfigsPath, "config.toml")
}
