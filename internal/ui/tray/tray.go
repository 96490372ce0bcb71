package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnToggle      func()
	OnNext        func()
	OnSelectSet   func()
	OnProgress    func()
	OnPreferences func()
	OnQuit        func()
}

// Icons switches the tray icon with the session state.
type Icons struct {
	Active fyne.Resource
	Idle   fyne.Resource
}

// Manager handles system tray state.
type Manager struct {
	app         desktop.App
	title       string
	icons       Icons
	statusItem  *fyne.MenuItem
	toggleItem  *fyne.MenuItem
	nextItem    *fyne.MenuItem
	callbacks   Callbacks
	running     bool
	statusLabel string
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, title string, icons Icons, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:         app,
		title:       title,
		icons:       icons,
		callbacks:   callbacks,
		statusLabel: "idle",
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true

	manager.toggleItem = fyne.NewMenuItem("Start", func() {
		call(manager.callbacks.OnToggle)
	})

	manager.nextItem = fyne.NewMenuItem("Next chord", func() {
		call(manager.callbacks.OnNext)
	})
	manager.nextItem.Disabled = true

	manager.SetRunning(false)
	return manager
}

// SetStatus updates the status label.
func (manager *Manager) SetStatus(status string) {
	manager.statusLabel = status
	manager.refreshStatus()
}

// SetRunning updates session state.
func (manager *Manager) SetRunning(running bool) {
	manager.running = running
	if running {
		manager.toggleItem.Label = "Stop"
	} else {
		manager.toggleItem.Label = "Start"
		manager.statusLabel = "idle"
	}
	manager.nextItem.Disabled = !running
	if manager.app != nil {
		if icon := manager.icon(); icon != nil {
			manager.app.SetSystemTrayIcon(icon)
		}
	}
	manager.refreshStatus()
}

// Running reports the session state shown in the menu.
func (manager *Manager) Running() bool {
	return manager.running
}

// Status returns the status line shown in the menu.
func (manager *Manager) Status() string {
	return manager.statusItem.Label
}

func (manager *Manager) icon() fyne.Resource {
	if manager.running {
		return manager.icons.Active
	}
	return manager.icons.Idle
}

func (manager *Manager) refreshStatus() {
	manager.statusItem.Label = fmt.Sprintf("Status: %s", manager.statusLabel)
	manager.refreshMenu()
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu(manager.title,
		manager.statusItem,
		fyne.NewMenuItem("Show", func() { call(manager.callbacks.OnShow) }),
		fyne.NewMenuItemSeparator(),
		manager.toggleItem,
		manager.nextItem,
		fyne.NewMenuItem("Select chord set", func() { call(manager.callbacks.OnSelectSet) }),
		fyne.NewMenuItem("Progress", func() { call(manager.callbacks.OnProgress) }),
		fyne.NewMenuItem("Preferences", func() { call(manager.callbacks.OnPreferences) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { call(manager.callbacks.OnQuit) }),
	))
}

func call(handler func()) {
	if handler != nil {
		handler()
	}
}
