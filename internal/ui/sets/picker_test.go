package sets

import (
	"path/filepath"
	"testing"

	"chordtrainer/internal/storage"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pickerHarness struct {
	picker   *Picker
	store    *storage.SetStore
	selected []string
	deleted  []string
	errors   []error
	answer   bool
	asked    []string
}

func newPickerHarness(t *testing.T) *pickerHarness {
	t.Helper()
	app := test.NewApp()
	t.Cleanup(app.Quit)

	h := &pickerHarness{store: storage.NewSetStore(filepath.Join(t.TempDir(), "practice_files"))}
	_, err := h.store.EnsureDefault()
	require.NoError(t, err)

	h.picker = New(app, h.store, Callbacks{
		OnSelect:  func(id string) { h.selected = append(h.selected, id) },
		OnDeleted: func(id string) { h.deleted = append(h.deleted, id) },
	})
	h.picker.confirm = func(title, message string, callback func(bool)) {
		h.asked = append(h.asked, message)
		callback(h.answer)
	}
	h.picker.showError = func(err error) { h.errors = append(h.errors, err) }
	h.picker.Refresh()
	return h
}

func TestPickerSelect(t *testing.T) {
	h := newPickerHarness(t)
	assert.Equal(t, []string{storage.DefaultSetName}, h.picker.Names())

	h.picker.selectCurrent()
	assert.Empty(t, h.selected, "nothing highlighted")

	h.picker.Select(0)
	h.picker.selectCurrent()
	assert.Equal(t, []string{storage.DefaultSetName}, h.selected)
}

func TestPickerCreateAsksBeforeOverwrite(t *testing.T) {
	h := newPickerHarness(t)

	h.picker.Create("barre")
	assert.Equal(t, []string{"barre.csv"}, h.selected)
	assert.Empty(t, h.asked)
	assert.Contains(t, h.picker.Names(), "barre.csv")

	h.answer = false
	h.picker.Create("barre")
	assert.Equal(t, []string{"File already exists. Overwrite?"}, h.asked)
	assert.Len(t, h.selected, 1)

	h.answer = true
	h.picker.Create("barre")
	assert.Equal(t, []string{"barre.csv", "barre.csv"}, h.selected)
	assert.Empty(t, h.errors)
}

func TestPickerCreateRejectsBadName(t *testing.T) {
	h := newPickerHarness(t)
	h.picker.Create("../escape")
	require.Len(t, h.errors, 1)
	assert.ErrorIs(t, h.errors[0], storage.ErrInvalidName)
	assert.Empty(t, h.selected)
}

func TestPickerDeleteConfirms(t *testing.T) {
	h := newPickerHarness(t)

	h.picker.Select(0)
	h.answer = false
	h.picker.deleteCurrent()
	assert.Equal(t, []string{"Are you sure you want to delete default_chords.csv?"}, h.asked)
	assert.Empty(t, h.deleted)
	assert.FileExists(t, h.store.Path(storage.DefaultSetName))

	h.picker.Select(0)
	h.answer = true
	h.picker.deleteCurrent()
	assert.Equal(t, []string{storage.DefaultSetName}, h.deleted)
	assert.Empty(t, h.picker.Names())
}
