package storage

import (
	"path/filepath"
	"testing"

	"chordtrainer/internal/core/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettingsFileMissingReturnsDefaults(t *testing.T) {
	settings, err := LoadSettingsFile(filepath.Join(t.TempDir(), "settings.yaml"))
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSettings(), settings)
}

func TestSettingsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.yaml")
	settings := model.Settings{
		GlobalInterval: 25,
		SetsDir:        "/srv/sets",
		LogFile:        "/srv/log.csv",
		LastSet:        "jazz.csv",
		LogLevel:       "debug",
	}
	require.NoError(t, SaveSettingsFile(path, settings))

	loaded, err := LoadSettingsFile(path)
	require.NoError(t, err)
	assert.Equal(t, settings, loaded)
}

func TestLoadSettingsFileKeepsDefaultsForBlankFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	writeFile(t, path, "global_interval_seconds: 0\nlast_set: blues.csv\n")

	loaded, err := LoadSettingsFile(path)
	require.NoError(t, err)
	defaults := model.DefaultSettings()
	assert.Equal(t, defaults.GlobalInterval, loaded.GlobalInterval)
	assert.Equal(t, defaults.SetsDir, loaded.SetsDir)
	assert.Equal(t, "blues.csv", loaded.LastSet)
}

func TestLoadSettingsFileRejectsBadYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	writeFile(t, path, "global_interval_seconds: [oops\n")

	_, err := LoadSettingsFile(path)
	assert.Error(t, err)
}

func TestResolveConfigPath(t *testing.T) {
	assert.Equal(t, filepath.Join("/srv/chordtrainer", "settings.yaml"), ResolveConfigPath("/srv/chordtrainer"))
}
