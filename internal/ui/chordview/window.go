package chordview

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"

	"chordtrainer/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

const (
	idleChordText = "Press Start"
	noSetText     = "No practice file selected"
)

var (
	boardColor = color.NRGBA{R: 22, G: 33, B: 62, A: 255}
	chordColor = color.NRGBA{R: 233, G: 69, B: 96, A: 255}
	timerColor = color.NRGBA{R: 166, G: 173, B: 200, A: 255}
)

// Callbacks defines main window action handlers.
type Callbacks struct {
	OnStart       func()
	OnStop        func()
	OnNext        func()
	OnSelectSet   func()
	OnEditSet     func()
	OnProgress    func()
	OnPreferences func()
}

// Window is the main practice window.
type Window struct {
	window        fyne.Window
	callbacks     Callbacks
	interval      int
	hasSet        bool
	running       bool
	chordLabel    *canvas.Text
	timerLabel    *canvas.Text
	setLabel      *widget.Label
	sessionLabel  *widget.Label
	intervalEntry *widget.Entry
	startButton   *widget.Button
	nextButton    *widget.Button
	stopButton    *widget.Button
	editButton    *widget.Button
}

// New creates the practice window. interval seeds the global interval entry.
func New(app fyne.App, title string, interval int, callbacks Callbacks) *Window {
	window := app.NewWindow(title)
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	chordLabel := canvas.NewText(idleChordText, chordColor)
	chordLabel.Alignment = fyne.TextAlignCenter
	chordLabel.TextStyle = fyne.TextStyle{Bold: true}
	chordLabel.TextSize = 48

	timerLabel := canvas.NewText("", timerColor)
	timerLabel.Alignment = fyne.TextAlignCenter
	timerLabel.TextSize = 20

	board := container.New(&boardLayout{}, canvas.NewRectangle(boardColor), chordLabel, timerLabel)

	view := &Window{
		window:        window,
		callbacks:     callbacks,
		interval:      model.DefaultInterval,
		chordLabel:    chordLabel,
		timerLabel:    timerLabel,
		setLabel:      widget.NewLabelWithStyle(noSetText, fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		sessionLabel:  widget.NewLabelWithStyle("Session: Not Started", fyne.TextAlignCenter, fyne.TextStyle{}),
		intervalEntry: widget.NewEntry(),
	}
	view.SetInterval(interval)

	view.startButton = widget.NewButton("Start", func() { view.fire(view.callbacks.OnStart) })
	view.nextButton = widget.NewButton("Next", func() { view.fire(view.callbacks.OnNext) })
	view.stopButton = widget.NewButton("Stop", func() { view.fire(view.callbacks.OnStop) })
	view.editButton = widget.NewButton("Edit Current Notes", func() { view.fire(view.callbacks.OnEditSet) })
	selectButton := widget.NewButton("Select Different File", func() { view.fire(view.callbacks.OnSelectSet) })
	progressButton := widget.NewButton("View Progress", func() { view.fire(view.callbacks.OnProgress) })
	settingsButton := widget.NewButton("Settings", func() { view.fire(view.callbacks.OnPreferences) })

	view.intervalEntry.Validator = validateInterval
	intervalRow := container.NewHBox(
		layout.NewSpacer(),
		container.New(layout.NewGridWrapLayout(fyne.NewSize(70, view.intervalEntry.MinSize().Height)), view.intervalEntry),
		widget.NewLabel("Global Interval (sec)"),
		layout.NewSpacer(),
	)

	content := container.NewVBox(
		container.NewHBox(layout.NewSpacer(), view.editButton, selectButton, layout.NewSpacer()),
		view.setLabel,
		board,
		intervalRow,
		container.NewGridWithColumns(3, view.startButton, view.nextButton, view.stopButton),
		container.NewGridWithColumns(2, progressButton, settingsButton),
		view.sessionLabel,
	)
	window.SetContent(container.NewPadded(content))
	window.Resize(fyne.NewSize(460, 560))

	view.SetIdle()
	view.SetSetName("")
	return view
}

// Window returns the underlying fyne window, for use as a dialog parent.
func (view *Window) Window() fyne.Window {
	return view.window
}

// Show displays the window.
func (view *Window) Show() {
	view.window.Show()
	view.window.RequestFocus()
}

// SetCloseIntercept replaces the default close behaviour.
func (view *Window) SetCloseIntercept(handler func()) {
	view.window.SetCloseIntercept(handler)
}

// SetSetName shows the active chord set. An empty name means none is selected.
func (view *Window) SetSetName(name string) {
	view.hasSet = name != ""
	if view.hasSet {
		view.setLabel.SetText(strings.TrimSuffix(name, ".csv"))
	} else {
		view.setLabel.SetText(noSetText)
	}
	view.refreshButtons()
}

// SetInterval replaces the global interval shown in the entry.
func (view *Window) SetInterval(interval int) {
	if interval <= 0 {
		interval = model.DefaultInterval
	}
	view.interval = interval
	view.intervalEntry.SetText(strconv.Itoa(interval))
	if !view.running {
		view.setTimer(interval)
	}
}

// Interval returns the entered global interval. Invalid input is replaced by
// the last valid value.
func (view *Window) Interval() int {
	if parsed, err := strconv.Atoi(strings.TrimSpace(view.intervalEntry.Text)); err == nil && parsed > 0 {
		view.interval = parsed
		return parsed
	}
	view.intervalEntry.SetText(strconv.Itoa(view.interval))
	return view.interval
}

// SetRunning switches the controls between a running and an idle session.
func (view *Window) SetRunning(startedAt time.Time) {
	view.running = true
	view.sessionLabel.SetText("Session Started: " + startedAt.Format(model.TimestampLayout))
	view.refreshButtons()
}

// SetChord shows the current chord and its remaining seconds.
func (view *Window) SetChord(chord string, remaining int) {
	view.chordLabel.Text = chord
	view.chordLabel.Refresh()
	view.setTimer(remaining)
	view.nextButton.Enable()
}

// SetSkipping disables Next until the following chord is drawn.
func (view *Window) SetSkipping() {
	view.nextButton.Disable()
}

// SetIdle resets the board after a session ends.
func (view *Window) SetIdle() {
	view.running = false
	view.chordLabel.Text = idleChordText
	view.chordLabel.Refresh()
	view.setTimer(view.interval)
	view.refreshButtons()
}

// SetSessionEnded reports the length of the finished session.
func (view *Window) SetSessionEnded(record model.SessionRecord) {
	view.sessionLabel.SetText(fmt.Sprintf("Session Ended. Total Time: %d seconds", record.Duration))
}

// Text returns the chord, timer and session lines as displayed.
func (view *Window) Text() (chord, timer, session string) {
	return view.chordLabel.Text, view.timerLabel.Text, view.sessionLabel.Text
}

func (view *Window) setTimer(seconds int) {
	view.timerLabel.Text = fmt.Sprintf("Next in: %d sec", seconds)
	view.timerLabel.Refresh()
}

func (view *Window) refreshButtons() {
	if view.startButton == nil {
		return
	}
	setEnabled(view.startButton, view.hasSet && !view.running)
	setEnabled(view.editButton, view.hasSet)
	setEnabled(view.stopButton, view.running)
	setEnabled(view.nextButton, view.running)
}

func (view *Window) fire(handler func()) {
	if handler != nil {
		handler()
	}
}

func setEnabled(button *widget.Button, enabled bool) {
	if enabled {
		button.Enable()
		return
	}
	button.Disable()
}

func validateInterval(value string) error {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return fmt.Errorf("enter a whole number of seconds")
	}
	return nil
}

// boardLayout stretches the background and centers the chord above the timer.
type boardLayout struct{}

func (layout *boardLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) < 3 {
		return
	}
	background, chord, timer := objects[0], objects[1], objects[2]

	background.Move(fyne.NewPos(0, 0))
	background.Resize(size)

	chordSize := chord.MinSize()
	timerSize := timer.MinSize()
	gap := size.Height * 0.08
	top := (size.Height - chordSize.Height - timerSize.Height - gap) / 2
	if top < 0 {
		top = 0
	}

	chord.Move(fyne.NewPos(0, top))
	chord.Resize(fyne.NewSize(size.Width, chordSize.Height))
	timer.Move(fyne.NewPos(0, top+chordSize.Height+gap))
	timer.Resize(fyne.NewSize(size.Width, timerSize.Height))
}

func (layout *boardLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	if len(objects) < 3 {
		return fyne.NewSize(0, 0)
	}
	chordSize := objects[1].MinSize()
	timerSize := objects[2].MinSize()
	width := chordSize.Width
	if timerSize.Width > width {
		width = timerSize.Width
	}
	return fyne.NewSize(width+40, chordSize.Height+timerSize.Height+120)
}
