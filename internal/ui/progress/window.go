package progress

import (
	"fmt"
	"strconv"

	"chordtrainer/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// Source supplies logged sessions.
type Source interface {
	ReadAll() ([]model.SessionRecord, error)
}

type column struct {
	title string
	key   model.SortKey
	width float32
}

var columns = []column{
	{title: "Session Start", key: model.SortByStart, width: 190},
	{title: "Session End", key: model.SortByEnd, width: 190},
	{title: "Duration (seconds)", key: model.SortByDuration, width: 160},
}

// Window shows the session log with totals.
type Window struct {
	window     fyne.Window
	source     Source
	table      *widget.Table
	records    []model.SessionRecord
	sortKey    model.SortKey
	descending bool
	sessions   *widget.Label
	total      *widget.Label
	average    *widget.Label
	showError  func(error)
	showEmpty  func()
}

// New creates the progress window. Sessions are listed newest first.
func New(app fyne.App, source Source) *Window {
	window := app.NewWindow("Practice Session Progress")
	view := &Window{
		window:     window,
		source:     source,
		sortKey:    model.SortByStart,
		descending: true,
		sessions:   widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		total:      widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		average:    widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
	}
	view.showError = func(err error) {
		dialog.ShowError(fmt.Errorf("could not read log file: %w", err), window)
	}
	view.showEmpty = func() {
		dialog.ShowInformation("No Data", "No session logs found.", window)
	}

	view.table = widget.NewTable(
		func() (int, int) { return len(view.records), len(columns) },
		func() fyne.CanvasObject { return widget.NewLabel("2006-01-02 15:04:05") },
		func(id widget.TableCellID, cell fyne.CanvasObject) {
			cell.(*widget.Label).SetText(view.cellText(id.Row, id.Col))
		},
	)
	view.table.ShowHeaderRow = true
	view.table.CreateHeader = func() fyne.CanvasObject {
		return widget.NewButton("", nil)
	}
	view.table.UpdateHeader = func(id widget.TableCellID, cell fyne.CanvasObject) {
		button := cell.(*widget.Button)
		if id.Col < 0 || id.Col >= len(columns) {
			button.SetText("")
			button.OnTapped = nil
			return
		}
		col := columns[id.Col]
		button.SetText(view.headerText(col))
		button.OnTapped = func() { view.SortBy(col.key) }
	}
	for index, col := range columns {
		view.table.SetColumnWidth(index, col.width)
	}

	summary := container.NewGridWithColumns(3, view.sessions, view.total, view.average)
	window.SetContent(container.NewBorder(nil, summary, nil, nil, view.table))
	window.Resize(fyne.NewSize(600, 400))
	window.SetCloseIntercept(window.Hide)
	view.updateSummary()
	return view
}

// Show reloads the log and displays the window.
func (view *Window) Show() {
	view.Reload()
	view.window.Show()
	view.window.RequestFocus()
}

// Reload re-reads the log, keeping the current sort order.
func (view *Window) Reload() {
	records, err := view.source.ReadAll()
	if err != nil {
		view.showError(err)
		records = nil
	}
	view.records = model.SortRecords(records, view.sortKey, view.descending)
	view.updateSummary()
	view.table.Refresh()
	if err == nil && len(records) == 0 {
		view.showEmpty()
	}
}

// SortBy orders rows by key. Choosing the current key again flips direction.
func (view *Window) SortBy(key model.SortKey) {
	if key == view.sortKey {
		view.descending = !view.descending
	} else {
		view.sortKey = key
		view.descending = key != model.SortByDuration
	}
	view.records = model.SortRecords(view.records, view.sortKey, view.descending)
	view.table.Refresh()
}

func (view *Window) cellText(row, col int) string {
	if row < 0 || row >= len(view.records) {
		return ""
	}
	record := view.records[row]
	switch columns[col].key {
	case model.SortByStart:
		return model.FormatTimestamp(record.Start)
	case model.SortByEnd:
		return model.FormatTimestamp(record.End)
	default:
		return strconv.Itoa(record.Duration)
	}
}

func (view *Window) headerText(col column) string {
	if col.key != view.sortKey {
		return col.title
	}
	if view.descending {
		return col.title + " ▼"
	}
	return col.title + " ▲"
}

func (view *Window) updateSummary() {
	summary := model.Summarize(view.records)
	view.sessions.SetText(fmt.Sprintf("Total Sessions: %d", summary.Count))
	view.total.SetText(fmt.Sprintf("Total Duration: %d sec", summary.Total))
	view.average.SetText(fmt.Sprintf("Avg Session: %d sec", summary.Average))
}
