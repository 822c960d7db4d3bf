package config

import (
	"os"
	"path/filepath"
)

const (
	// DefaultServerURL is where the StudyMate Flask app listens in development.
	DefaultServerURL = "http://127.0.0.1:5000"

	// DefaultThemeKey is the preference key the web client also uses.
	DefaultThemeKey = "studyTheme"

	// DefaultConfigFile is the config path used when --config is not given.
	DefaultConfigFile = ".studymate.yml"
)

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		ServerURL:    DefaultServerURL,
		DataDir:      defaultDataDir(),
		LogLevel:     "info",
		ThemeKey:     DefaultThemeKey,
		DefaultTheme: "purple",
	}
}

func defaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return ".studymate"
	}
	return filepath.Join(dir, "studymate")
}

// DBPath returns the location of the preference database.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "studymate.db")
}

// LogPath returns the log file location, defaulting to a file in the data dir.
func (c *Config) LogPath() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(c.DataDir, "studymate.log")
}
