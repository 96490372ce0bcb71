//go:build linux

package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDesktopEntryQuotesSpaces(t *testing.T) {
	entry := buildDesktopEntry("Chord Trainer", "/opt/chord trainer/chordtrainer")

	assert.Contains(t, entry, "Name=Chord Trainer\n")
	assert.Contains(t, entry, `Exec="/opt/chord trainer/chordtrainer"`)
	assert.Contains(t, entry, "Path=/opt/chord trainer\n")
}

func TestCreateAndRemoveShortcut(t *testing.T) {
	desktop := filepath.Join(t.TempDir(), "Desktop")
	t.Setenv("XDG_DESKTOP_DIR", desktop)
	service := NewService()

	path, err := service.CreateShortcut("Chord Trainer", "/usr/local/bin/chordtrainer")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(desktop, "chord-trainer.desktop"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Exec=/usr/local/bin/chordtrainer\n")

	require.NoError(t, service.RemoveShortcut("Chord Trainer"))
	assert.NoFileExists(t, path)
	assert.NoError(t, service.RemoveShortcut("Chord Trainer"), "removing twice is fine")
}

func TestCreateShortcutRequiresExecPath(t *testing.T) {
	_, err := NewService().CreateShortcut("Chord Trainer", "")
	assert.Error(t, err)
}
