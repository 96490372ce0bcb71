package preferences

import (
	"strconv"
	"strings"

	"chordtrainer/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

var logLevels = []string{"debug", "info", "warn", "error"}

// Window handles the preferences UI.
type Window struct {
	window   fyne.Window
	settings model.Settings
	onSave   func(model.Settings)
	interval *widget.Entry
	setsDir  *widget.Entry
	logFile  *widget.Entry
	logLevel *widget.Select
	logPath  *widget.Label
}

// New creates a preferences window.
func New(app fyne.App, settings model.Settings, onSave func(model.Settings)) *Window {
	window := app.NewWindow("Chord Trainer Settings")

	interval := widget.NewEntry()
	setsDir := widget.NewEntry()
	logFile := widget.NewEntry()
	logLevel := widget.NewSelect(logLevels, nil)
	logPath := widget.NewLabel("")
	logPath.Wrapping = fyne.TextWrapBreak

	form := container.NewVBox(
		widget.NewLabelWithStyle("Practice", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Global interval"), interval, widget.NewLabel("sec")),
		widget.NewLabelWithStyle("Files", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabel("Chord set directory"),
		setsDir,
		widget.NewLabel("Session log"),
		logFile,
		widget.NewLabel("Diagnostics level"),
		logLevel,
		logPath,
		widget.NewLabelWithStyle("Directory and log changes apply after a restart.", fyne.TextAlignLeading, fyne.TextStyle{Italic: true}),
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	content := container.NewBorder(nil, buttons, nil, nil, form)
	window.SetContent(content)
	window.Resize(fyne.NewSize(420, 380))
	window.SetCloseIntercept(window.Hide)

	prefs := &Window{
		window:   window,
		onSave:   onSave,
		interval: interval,
		setsDir:  setsDir,
		logFile:  logFile,
		logLevel: logLevel,
		logPath:  logPath,
	}
	prefs.UpdateSettings(settings)

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		window.Hide()
		prefs.UpdateSettings(prefs.settings)
	}

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// SetDiagnosticsPath shows where diagnostics are written.
func (prefs *Window) SetDiagnosticsPath(path string) {
	if path == "" {
		prefs.logPath.SetText("")
		return
	}
	prefs.logPath.SetText("Diagnostics file: " + path)
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings model.Settings) {
	prefs.settings = settings
	prefs.interval.SetText(strconv.Itoa(settings.Interval()))
	prefs.setsDir.SetText(settings.SetsDir)
	prefs.logFile.SetText(settings.LogFile)
	prefs.logLevel.SetSelected(settings.LogLevel)
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	if seconds, ok := parsePositiveInt(prefs.interval.Text); ok {
		settings.GlobalInterval = seconds
	}
	if dir := strings.TrimSpace(prefs.setsDir.Text); dir != "" {
		settings.SetsDir = dir
	}
	if file := strings.TrimSpace(prefs.logFile.Text); file != "" {
		settings.LogFile = file
	}
	if prefs.logLevel.Selected != "" {
		settings.LogLevel = prefs.logLevel.Selected
	}

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
