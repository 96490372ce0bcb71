package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"chordtrainer/internal/core/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendWritesHeaderOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "practice_logs", "session_log.csv")
	progress := NewProgressLog(path)
	start := time.Date(2024, 1, 2, 9, 30, 0, 0, time.Local)

	require.NoError(t, progress.Append(model.NewSessionRecord(start, start.Add(45*time.Second))))
	require.NoError(t, progress.Append(model.NewSessionRecord(start.Add(time.Hour), start.Add(time.Hour+10*time.Second))))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"Session Start,Session End,Duration (seconds)\n"+
			"2024-01-02 09:30:00,2024-01-02 09:30:45,45\n"+
			"2024-01-02 10:30:00,2024-01-02 10:30:10,10\n",
		string(content))
}

func TestReadAllRoundTrip(t *testing.T) {
	progress := NewProgressLog(filepath.Join(t.TempDir(), "log.csv"))
	start := time.Date(2024, 1, 2, 9, 30, 0, 0, time.Local)
	record := model.NewSessionRecord(start, start.Add(75*time.Second))
	require.NoError(t, progress.Append(record))

	records, err := progress.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, record.Start.Equal(records[0].Start))
	assert.True(t, record.End.Equal(records[0].End))
	assert.Equal(t, 75, records[0].Duration)
}

func TestReadAllSkipsMalformedRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.csv")
	writeFile(t, path, strings.Join([]string{
		"Session Start,Session End,Duration (seconds)",
		"2024-01-02 09:30:00,2024-01-02 09:30:45,45",
		"2024-01-02 10:00:00,2024-01-02 10:00:30,thirty",
		"2024-01-03 08:00:00,2024-01-03 08:10:00,600",
		"only,two",
		"2024-01-03 09:00:00,2024-01-03 09:00:05,-5",
		"2024-01-04 08:00:00,2024-01-04 08:00:20,20",
		"",
	}, "\n"))

	records, err := NewProgressLog(path).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []int{45, 600, 20}, []int{records[0].Duration, records[1].Duration, records[2].Duration})
}

func TestReadAllAcceptsIsoTimestamps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.csv")
	writeFile(t, path, strings.Join([]string{
		"Session Start,Session End,Duration (seconds)",
		"2024-03-01 10:00:00,2024-03-01 10:00:20,20",
		"2024-03-01T11:00:00,2024-03-01T11:00:20,20",
		"2024-03-01 12:00:00.250,2024-03-01 12:00:30.750,30",
		"",
	}, "\n"))
	progress := NewProgressLog(path)

	records, err := progress.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.True(t, time.Date(2024, 3, 1, 11, 0, 0, 0, time.Local).Equal(records[1].Start))
	assert.Equal(t, 12, records[2].Start.Hour())

	summary, err := progress.Summarize()
	require.NoError(t, err)
	assert.Equal(t, model.Summary{Count: 3, Total: 70, Average: 23}, summary)
}

func TestReadAllKeepsRowsWithUnreadableTimestamps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.csv")
	writeFile(t, path, "Session Start,Session End,Duration (seconds)\n"+
		"yesterday,today,5\n"+
		"2024-01-04 08:00:00,2024-01-04 08:00:20,20\n")

	records, err := NewProgressLog(path).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.True(t, records[0].Start.IsZero())
	assert.True(t, records[0].End.IsZero())
	assert.Equal(t, 5, records[0].Duration)
}

func TestReadAllMissingFile(t *testing.T) {
	records, err := NewProgressLog(filepath.Join(t.TempDir(), "absent.csv")).ReadAll()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSummarizeLog(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		summary, err := NewProgressLog(filepath.Join(t.TempDir(), "absent.csv")).Summarize()
		require.NoError(t, err)
		assert.Equal(t, model.Summary{Count: 0, Total: 0, Average: 0}, summary)
	})

	t.Run("two sessions", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "log.csv")
		writeFile(t, path, "Session Start,Session End,Duration (seconds)\n"+
			"2024-01-02 09:30:00,2024-01-02 09:30:10,10\n"+
			"2024-01-02 10:30:00,2024-01-02 10:30:20,20\n")

		summary, err := NewProgressLog(path).Summarize()
		require.NoError(t, err)
		assert.Equal(t, model.Summary{Count: 2, Total: 30, Average: 15}, summary)
	})
}

func TestSortedView(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.csv")
	writeFile(t, path, "Session Start,Session End,Duration (seconds)\n"+
		"2024-01-02 10:00:00,2024-01-02 10:00:30,30\n"+
		"2024-01-01 10:00:00,2024-01-01 10:01:00,60\n"+
		"2024-01-03 10:00:00,2024-01-03 10:00:30,30\n")
	progress := NewProgressLog(path)

	newest, err := progress.SortedView(model.SortByStart, true)
	require.NoError(t, err)
	require.Len(t, newest, 3)
	assert.Equal(t, 3, newest[0].Start.Day())
	assert.Equal(t, 1, newest[2].Start.Day())

	shortest, err := progress.SortedView(model.SortByDuration, false)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 1}, []int{shortest[0].Start.Day(), shortest[1].Start.Day(), shortest[2].Start.Day()})
}
