package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"chordtrainer/internal/core/model"

	"github.com/rs/zerolog/log"
)

var logHeader = []string{"Session Start", "Session End", "Duration (seconds)"}

// ProgressLog is an append-only CSV log of practice sessions.
type ProgressLog struct {
	mu   sync.Mutex
	path string
}

// NewProgressLog returns a log backed by path.
func NewProgressLog(path string) *ProgressLog {
	return &ProgressLog{path: path}
}

// Path returns the backing file path.
func (progress *ProgressLog) Path() string {
	return progress.path
}

// Append adds one row, writing the header first when the file is new.
func (progress *ProgressLog) Append(record model.SessionRecord) error {
	progress.mu.Lock()
	defer progress.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(progress.path), 0o755); err != nil {
		return fmt.Errorf("create log directory: %w: %w", ErrIO, err)
	}

	file, err := os.OpenFile(progress.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open progress log: %w: %w", ErrIO, err)
	}
	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return fmt.Errorf("stat progress log: %w: %w", ErrIO, err)
	}

	writer := csv.NewWriter(file)
	if info.Size() == 0 {
		_ = writer.Write(logHeader)
	}
	_ = writer.Write([]string{
		record.Start.Format(model.TimestampLayout),
		record.End.Format(model.TimestampLayout),
		strconv.Itoa(record.Duration),
	})
	writer.Flush()

	if err := errors.Join(writer.Error(), file.Close()); err != nil {
		return fmt.Errorf("append progress log: %w: %w", ErrIO, err)
	}
	return nil
}

// ReadAll parses every valid row. Rows with the wrong field count or a
// duration that is not a non-negative integer are skipped.
// A missing file is an empty log.
func (progress *ProgressLog) ReadAll() ([]model.SessionRecord, error) {
	progress.mu.Lock()
	defer progress.mu.Unlock()

	file, err := os.Open(progress.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.SessionRecord{}, nil
		}
		return nil, fmt.Errorf("open progress log: %w: %w", ErrIO, err)
	}
	defer file.Close()

	return readRecords(file), nil
}

// Summarize returns count, total and average duration over the whole log.
func (progress *ProgressLog) Summarize() (model.Summary, error) {
	records, err := progress.ReadAll()
	if err != nil {
		return model.Summary{}, err
	}
	return model.Summarize(records), nil
}

// SortedView returns all records ordered by key.
func (progress *ProgressLog) SortedView(key model.SortKey, descending bool) ([]model.SessionRecord, error) {
	records, err := progress.ReadAll()
	if err != nil {
		return nil, err
	}
	return model.SortRecords(records, key, descending), nil
}

func readRecords(source io.Reader) []model.SessionRecord {
	reader := csv.NewReader(source)
	reader.FieldsPerRecord = -1

	records := []model.SessionRecord{}
	first := true
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			log.Warn().Err(err).Msg("skipping malformed progress row")
			continue
		}
		if first {
			first = false
			if isLogHeader(row) {
				continue
			}
		}

		record, ok := parseRecord(row)
		if !ok {
			line, _ := reader.FieldPos(0)
			log.Warn().Int("line", line).Strs("row", row).Msg("skipping malformed progress row")
			continue
		}
		records = append(records, record)
	}
	return records
}

// Fractional seconds parse under every layout that ends in seconds.
var timestampLayouts = []string{
	model.TimestampLayout,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
}

// parseRecord accepts any three-field row with a non-negative integer
// duration. Timestamps that no layout reads are kept as zero times.
func parseRecord(row []string) (model.SessionRecord, bool) {
	if len(row) != len(logHeader) {
		return model.SessionRecord{}, false
	}
	duration, err := strconv.Atoi(strings.TrimSpace(row[2]))
	if err != nil || duration < 0 {
		return model.SessionRecord{}, false
	}
	return model.SessionRecord{
		Start:    parseTimestamp(row[0]),
		End:      parseTimestamp(row[1]),
		Duration: duration,
	}, true
}

func parseTimestamp(value string) time.Time {
	value = strings.TrimSpace(value)
	for _, layout := range timestampLayouts {
		if parsed, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return parsed
		}
	}
	if parsed, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return parsed
	}
	log.Debug().Str("timestamp", value).Msg("unreadable progress timestamp")
	return time.Time{}
}

func isLogHeader(row []string) bool {
	return len(row) > 0 && strings.TrimSpace(strings.TrimPrefix(row[0], "\ufeff")) == logHeader[0]
}
