package model

import "path/filepath"

// Settings defines editable user preferences.
type Settings struct {
	GlobalInterval int
	SetsDir        string
	LogFile        string
	LastSet        string
	LogLevel       string
}

// DefaultSettings returns default settings for the trainer.
func DefaultSettings() Settings {
	return Settings{
		GlobalInterval: DefaultInterval,
		SetsDir:        "practice_files",
		LogFile:        filepath.Join("practice_logs", "session_log.csv"),
		LogLevel:       "info",
	}
}

// Resolve makes relative paths absolute against baseDir.
func (settings Settings) Resolve(baseDir string) Settings {
	settings.SetsDir = resolvePath(baseDir, settings.SetsDir)
	settings.LogFile = resolvePath(baseDir, settings.LogFile)
	return settings
}

// Interval returns the global interval, falling back to the default when unset.
func (settings Settings) Interval() int {
	if settings.GlobalInterval <= 0 {
		return DefaultInterval
	}
	return settings.GlobalInterval
}

func resolvePath(baseDir, path string) string {
	if path == "" || filepath.IsAbs(path) || baseDir == "" {
		return path
	}
	return filepath.Join(baseDir, path)
}
