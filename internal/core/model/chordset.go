package model

// DefaultInterval is the countdown length, in seconds, used when neither a
// chord nor the caller provides a positive interval.
const DefaultInterval = 15

// ChordEntry is a single chord and its countdown length in seconds.
// Interval <= 0 means the chord inherits the global interval.
type ChordEntry struct {
	Name     string
	Interval int
}

// HasInterval reports whether the entry carries its own positive interval.
func (entry ChordEntry) HasInterval() bool {
	return entry.Interval > 0
}

// ChordSet maps unique chord names to intervals.
// Putting an existing name overwrites the earlier interval.
type ChordSet struct {
	Name      string
	intervals map[string]int
	names     []string
}

// NewChordSet creates an empty set.
func NewChordSet(name string, entries ...ChordEntry) *ChordSet {
	set := &ChordSet{
		Name:      name,
		intervals: make(map[string]int, len(entries)),
	}
	for _, entry := range entries {
		set.Put(entry.Name, entry.Interval)
	}
	return set
}

// DefaultChordSet returns the built-in starter set.
func DefaultChordSet() *ChordSet {
	set := NewChordSet("default_chords")
	for _, name := range []string{"A", "D", "G", "E", "C", "Am", "Em", "Dm"} {
		set.Put(name, DefaultInterval)
	}
	return set
}

// Put adds or replaces a chord.
func (set *ChordSet) Put(name string, interval int) {
	if set.intervals == nil {
		set.intervals = make(map[string]int)
	}
	if _, exists := set.intervals[name]; !exists {
		set.names = append(set.names, name)
	}
	set.intervals[name] = interval
}

// Interval returns the stored interval for name.
func (set *ChordSet) Interval(name string) (int, bool) {
	if set == nil {
		return 0, false
	}
	interval, ok := set.intervals[name]
	return interval, ok
}

// Resolve returns the chord's own interval if positive, otherwise fallback.
func (set *ChordSet) Resolve(name string, fallback int) int {
	if interval, ok := set.Interval(name); ok && interval > 0 {
		return interval
	}
	return fallback
}

// Len returns the number of distinct chords.
func (set *ChordSet) Len() int {
	if set == nil {
		return 0
	}
	return len(set.names)
}

// Names returns chord names in first-seen order.
func (set *ChordSet) Names() []string {
	if set == nil {
		return nil
	}
	return append([]string(nil), set.names...)
}

// Entries returns the chords in first-seen order.
func (set *ChordSet) Entries() []ChordEntry {
	if set == nil {
		return nil
	}
	entries := make([]ChordEntry, 0, len(set.names))
	for _, name := range set.names {
		entries = append(entries, ChordEntry{Name: name, Interval: set.intervals[name]})
	}
	return entries
}

// Clone returns an independent copy.
func (set *ChordSet) Clone() *ChordSet {
	if set == nil {
		return nil
	}
	return NewChordSet(set.Name, set.Entries()...)
}

// Equal reports whether both sets hold the same name to interval mapping.
func (set *ChordSet) Equal(other *ChordSet) bool {
	if set.Len() != other.Len() {
		return false
	}
	if set == nil {
		return true
	}
	for _, name := range set.names {
		interval, ok := other.Interval(name)
		if !ok || interval != set.intervals[name] {
			return false
		}
	}
	return true
}
