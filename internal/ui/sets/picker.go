// Package sets is the chord set picker window.
package sets

import (
	"errors"
	"fmt"

	"chordtrainer/internal/storage"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog/log"
)

// Store is the part of storage.SetStore the picker needs.
type Store interface {
	List() ([]string, error)
	Create(name string, overwrite bool) (string, error)
	Delete(id string) (bool, error)
}

// Callbacks defines picker action handlers.
type Callbacks struct {
	OnSelect  func(id string)
	OnDeleted func(id string)
}

type confirmFunc func(title, message string, callback func(bool))

// Picker lists chord sets and lets the user select, create or delete one.
type Picker struct {
	window    fyne.Window
	store     Store
	callbacks Callbacks
	list      *widget.List
	names     []string
	selected  int
	confirm   confirmFunc
	showError func(error)
}

// New creates the picker window.
func New(app fyne.App, store Store, callbacks Callbacks) *Picker {
	window := app.NewWindow("Select Practice File")
	picker := &Picker{
		window:    window,
		store:     store,
		callbacks: callbacks,
		selected:  -1,
	}
	picker.confirm = func(title, message string, callback func(bool)) {
		dialog.ShowConfirm(title, message, callback, window)
	}
	picker.showError = func(err error) {
		dialog.ShowError(err, window)
	}

	picker.list = widget.NewList(
		func() int { return len(picker.names) },
		func() fyne.CanvasObject { return widget.NewLabel("practice_file.csv") },
		func(id widget.ListItemID, item fyne.CanvasObject) {
			item.(*widget.Label).SetText(picker.names[id])
		},
	)
	picker.list.OnSelected = func(id widget.ListItemID) { picker.selected = id }
	picker.list.OnUnselected = func(widget.ListItemID) { picker.selected = -1 }

	buttons := container.NewGridWithColumns(3,
		widget.NewButton("Select", picker.selectCurrent),
		widget.NewButton("Create New", picker.promptCreate),
		widget.NewButton("Delete", picker.deleteCurrent),
	)
	window.SetContent(container.NewBorder(nil, buttons, nil, nil, picker.list))
	window.Resize(fyne.NewSize(400, 300))
	window.SetCloseIntercept(window.Hide)
	return picker
}

// Show refreshes the list and displays the window.
func (picker *Picker) Show() {
	picker.Refresh()
	picker.window.Show()
	picker.window.RequestFocus()
}

// Refresh re-reads the set directory.
func (picker *Picker) Refresh() {
	names, err := picker.store.List()
	if err != nil {
		log.Warn().Err(err).Msg("chord sets could not be listed")
		picker.showError(err)
		names = nil
	}
	picker.names = names
	picker.selected = -1
	picker.list.UnselectAll()
	picker.list.Refresh()
}

// Names returns the listed set identifiers.
func (picker *Picker) Names() []string {
	return append([]string(nil), picker.names...)
}

// Select marks the set at index as selected.
func (picker *Picker) Select(index int) {
	picker.list.Select(index)
}

func (picker *Picker) current() (string, bool) {
	if picker.selected < 0 || picker.selected >= len(picker.names) {
		return "", false
	}
	return picker.names[picker.selected], true
}

func (picker *Picker) selectCurrent() {
	id, ok := picker.current()
	if !ok {
		return
	}
	picker.window.Hide()
	if picker.callbacks.OnSelect != nil {
		picker.callbacks.OnSelect(id)
	}
}

func (picker *Picker) promptCreate() {
	entry := widget.NewEntry()
	entry.SetPlaceHolder("file name without .csv")
	dialog.ShowForm("New Practice File", "Create", "Cancel",
		[]*widget.FormItem{widget.NewFormItem("Name", entry)},
		func(confirmed bool) {
			if confirmed {
				picker.Create(entry.Text)
			}
		}, picker.window)
}

// Create makes a new empty set, asking before an existing one is replaced.
// The created set becomes the selection.
func (picker *Picker) Create(name string) {
	id, err := picker.store.Create(name, false)
	if errors.Is(err, storage.ErrAlreadyExists) {
		picker.confirm("File Exists", "File already exists. Overwrite?", func(overwrite bool) {
			if !overwrite {
				return
			}
			id, err := picker.store.Create(name, true)
			picker.finishCreate(id, err)
		})
		return
	}
	picker.finishCreate(id, err)
}

func (picker *Picker) finishCreate(id string, err error) {
	if err != nil {
		picker.showError(fmt.Errorf("could not create file: %w", err))
		return
	}
	picker.Refresh()
	picker.window.Hide()
	if picker.callbacks.OnSelect != nil {
		picker.callbacks.OnSelect(id)
	}
}

func (picker *Picker) deleteCurrent() {
	id, ok := picker.current()
	if !ok {
		return
	}
	picker.confirm("Confirm Delete", fmt.Sprintf("Are you sure you want to delete %s?", id), func(confirmed bool) {
		if confirmed {
			picker.Delete(id)
		}
	})
}

// Delete removes id without asking.
func (picker *Picker) Delete(id string) {
	if _, err := picker.store.Delete(id); err != nil {
		picker.showError(fmt.Errorf("could not delete file: %w", err))
		return
	}
	picker.Refresh()
	if picker.callbacks.OnDeleted != nil {
		picker.callbacks.OnDeleted(id)
	}
}
