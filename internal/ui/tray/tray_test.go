package tray

import (
	"testing"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDesktop struct {
	menu  *fyne.Menu
	icons []fyne.Resource
}

func (f *fakeDesktop) SetSystemTrayMenu(menu *fyne.Menu)      { f.menu = menu }
func (f *fakeDesktop) SetSystemTrayIcon(icon fyne.Resource)   { f.icons = append(f.icons, icon) }
func (f *fakeDesktop) SetSystemTrayWindow(window fyne.Window) {}

func item(t *testing.T, menu *fyne.Menu, label string) *fyne.MenuItem {
	t.Helper()
	for _, entry := range menu.Items {
		if entry.Label == label {
			return entry
		}
	}
	require.Failf(t, "menu item missing", "%q", label)
	return nil
}

func TestManagerTracksSession(t *testing.T) {
	desktopApp := &fakeDesktop{}
	active := fyne.NewStaticResource("active.svg", []byte("<svg/>"))
	idle := fyne.NewStaticResource("idle.svg", []byte("<svg/>"))
	toggles, nexts := 0, 0

	manager := New(desktopApp, "Chord Trainer", Icons{Active: active, Idle: idle}, Callbacks{
		OnToggle: func() { toggles++ },
		OnNext:   func() { nexts++ },
	})

	require.NotNil(t, desktopApp.menu)
	assert.Equal(t, "Status: idle", manager.Status())
	assert.True(t, item(t, desktopApp.menu, "Next chord").Disabled)
	item(t, desktopApp.menu, "Start").Action()
	assert.Equal(t, 1, toggles)

	manager.SetRunning(true)
	manager.SetStatus("G (12s)")
	assert.Equal(t, "Status: G (12s)", manager.Status())
	assert.Same(t, active, desktopApp.icons[len(desktopApp.icons)-1])
	next := item(t, desktopApp.menu, "Next chord")
	assert.False(t, next.Disabled)
	next.Action()
	assert.Equal(t, 1, nexts)
	item(t, desktopApp.menu, "Stop")

	manager.SetRunning(false)
	assert.Equal(t, "Status: idle", manager.Status())
	assert.Same(t, idle, desktopApp.icons[len(desktopApp.icons)-1])
}

func TestMenuWithoutHandlers(t *testing.T) {
	desktopApp := &fakeDesktop{}
	New(desktopApp, "Chord Trainer", Icons{}, Callbacks{})

	assert.NotPanics(t, func() {
		item(t, desktopApp.menu, "Quit").Action()
	})
	assert.Empty(t, desktopApp.icons, "nil icons are not applied")
}
