package model

import (
	"cmp"
	"slices"
	"time"
)

// TimestampLayout is the on-disk format of session timestamps.
// Lexicographic order of formatted values equals chronological order.
const TimestampLayout = "2006-01-02 15:04:05"

// FormatTimestamp renders t for display. An unknown time renders as "-".
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(TimestampLayout)
}

// SessionRecord is one finished practice session.
type SessionRecord struct {
	Start    time.Time
	End      time.Time
	Duration int
}

// NewSessionRecord builds a record with the duration floored to whole seconds.
func NewSessionRecord(start, end time.Time) SessionRecord {
	duration := int(end.Sub(start) / time.Second)
	if duration < 0 {
		duration = 0
	}
	return SessionRecord{Start: start, End: end, Duration: duration}
}

// Summary aggregates a progress log.
type Summary struct {
	Count   int
	Total   int
	Average int
}

// Summarize computes count, total and floored average duration.
func Summarize(records []SessionRecord) Summary {
	summary := Summary{Count: len(records)}
	for _, record := range records {
		summary.Total += record.Duration
	}
	if summary.Count > 0 {
		summary.Average = summary.Total / summary.Count
	}
	return summary
}

// SortKey selects the field used to order records.
type SortKey string

const (
	SortByStart    SortKey = "start"
	SortByEnd      SortKey = "end"
	SortByDuration SortKey = "duration"
)

// ParseSortKey maps user input to a SortKey.
func ParseSortKey(value string) (SortKey, bool) {
	switch SortKey(value) {
	case SortByStart, SortByEnd, SortByDuration:
		return SortKey(value), true
	}
	return "", false
}

// SortRecords returns a stably sorted copy of records.
func SortRecords(records []SessionRecord, key SortKey, descending bool) []SessionRecord {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b SessionRecord) int {
		var order int
		switch key {
		case SortByDuration:
			order = cmp.Compare(a.Duration, b.Duration)
		case SortByEnd:
			order = a.End.Compare(b.End)
		default:
			order = a.Start.Compare(b.Start)
		}
		if descending {
			return -order
		}
		return order
	})
	return sorted
}
