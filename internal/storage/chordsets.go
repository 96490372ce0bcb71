package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"chordtrainer/internal/core/model"

	"github.com/rs/zerolog/log"
)

// DefaultSetName is the file seeded into a fresh set directory.
const DefaultSetName = "default_chords" + setExtension

const (
	setExtension   = ".csv"
	columnType     = "Type"
	columnDuration = "Duration"
)

// SetStore keeps chord sets as CSV files in one directory.
type SetStore struct {
	dir string
}

// NewSetStore returns a store rooted at dir.
func NewSetStore(dir string) *SetStore {
	return &SetStore{dir: dir}
}

// Dir returns the directory holding the set files.
func (store *SetStore) Dir() string {
	return store.dir
}

// Path returns the file path for a set identifier.
func (store *SetStore) Path(id string) string {
	return filepath.Join(store.dir, normalizeSetName(id))
}

// SetID returns the file name used for a set, adding the .csv extension.
func SetID(name string) string {
	return normalizeSetName(name)
}

// DefaultSet returns the built-in starter set.
func (store *SetStore) DefaultSet() *model.ChordSet {
	return model.DefaultChordSet()
}

// EnsureDefault creates the directory on first run and seeds it with the
// default set. An existing directory is left untouched.
func (store *SetStore) EnsureDefault() (string, error) {
	if _, err := os.Stat(store.dir); err == nil {
		return "", nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("stat set directory: %w: %w", ErrIO, err)
	}

	if err := os.MkdirAll(store.dir, 0o755); err != nil {
		return "", fmt.Errorf("create set directory: %w: %w", ErrIO, err)
	}
	if err := store.Save(DefaultSetName, store.DefaultSet()); err != nil {
		return "", err
	}
	log.Info().Str("dir", store.dir).Msg("seeded default chord set")
	return DefaultSetName, nil
}

// List returns the set file names, sorted. A missing directory has no sets.
func (store *SetStore) List() ([]string, error) {
	entries, err := os.ReadDir(store.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("list chord sets: %w: %w", ErrIO, err)
	}

	names := []string{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), setExtension) {
			continue
		}
		names = append(names, entry.Name())
	}
	slices.Sort(names)
	return names, nil
}

// Create writes a header-only set file and returns its identifier.
// An existing file is only replaced when overwrite is set.
func (store *SetStore) Create(name string, overwrite bool) (string, error) {
	id, err := validateSetName(name)
	if err != nil {
		return "", err
	}

	path := store.Path(id)
	if _, err := os.Stat(path); err == nil && !overwrite {
		return "", fmt.Errorf("create chord set %s: %w", id, ErrAlreadyExists)
	}
	if err := os.MkdirAll(store.dir, 0o755); err != nil {
		return "", fmt.Errorf("create set directory: %w: %w", ErrIO, err)
	}
	if err := store.Save(id, model.NewChordSet(strings.TrimSuffix(id, setExtension))); err != nil {
		return "", err
	}
	return id, nil
}

// Load reads a set file. Columns are located by header name.
func (store *SetStore) Load(id string) (*model.ChordSet, error) {
	id = normalizeSetName(id)
	file, err := os.Open(store.Path(id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load chord set %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("load chord set %s: %w: %w", id, ErrIO, err)
	}
	defer file.Close()

	set, err := readChordSet(file, strings.TrimSuffix(id, setExtension))
	if err != nil {
		return nil, fmt.Errorf("load chord set %s: %w", id, err)
	}
	return set, nil
}

// Save rewrites a set file with a header and one row per chord.
func (store *SetStore) Save(id string, set *model.ChordSet) error {
	id = normalizeSetName(id)
	file, err := os.Create(store.Path(id))
	if err != nil {
		return fmt.Errorf("save chord set %s: %w: %w", id, ErrIO, err)
	}

	writer := csv.NewWriter(file)
	rows := [][]string{{columnType, columnDuration}}
	for _, entry := range set.Entries() {
		duration := ""
		if entry.HasInterval() {
			duration = strconv.Itoa(entry.Interval)
		}
		rows = append(rows, []string{entry.Name, duration})
	}
	writeErr := writer.WriteAll(rows)
	closeErr := file.Close()
	if err := errors.Join(writeErr, closeErr); err != nil {
		return fmt.Errorf("save chord set %s: %w: %w", id, ErrIO, err)
	}
	return nil
}

// Delete removes a set file. It reports false with an ErrIO-wrapped error
// when the file cannot be removed.
func (store *SetStore) Delete(id string) (bool, error) {
	id = normalizeSetName(id)
	if err := os.Remove(store.Path(id)); err != nil {
		return false, fmt.Errorf("delete chord set %s: %w: %w", id, ErrIO, err)
	}
	return true, nil
}

func readChordSet(source io.Reader, name string) (*model.ChordSet, error) {
	reader := csv.NewReader(source)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("missing header: %w", ErrParse)
		}
		return nil, fmt.Errorf("read header: %w: %w", ErrParse, err)
	}
	typeColumn, durationColumn := -1, -1
	for index, column := range header {
		switch strings.TrimSpace(strings.TrimPrefix(column, "\ufeff")) {
		case columnType:
			typeColumn = index
		case columnDuration:
			durationColumn = index
		}
	}
	if typeColumn < 0 {
		return nil, fmt.Errorf("header has no %s column: %w", columnType, ErrParse)
	}

	set := model.NewChordSet(name)
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			log.Warn().Err(err).Str("set", name).Msg("skipping malformed chord row")
			continue
		}

		line, _ := reader.FieldPos(0)
		chord := cell(row, typeColumn)
		if chord == "" {
			log.Warn().Str("set", name).Int("line", line).Msg("skipping chord row without a name")
			continue
		}
		set.Put(chord, parseInterval(cell(row, durationColumn)))
	}
	return set, nil
}

func parseInterval(value string) int {
	interval, err := strconv.Atoi(value)
	if err != nil || interval <= 0 {
		return 0
	}
	return interval
}

func cell(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[index])
}

func normalizeSetName(name string) string {
	name = strings.TrimSpace(name)
	if !strings.EqualFold(filepath.Ext(name), setExtension) {
		name += setExtension
	}
	return name
}

func validateSetName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || strings.ContainsAny(trimmed, `/\`) || trimmed == "." || trimmed == ".." {
		return "", fmt.Errorf("chord set name %q: %w", name, ErrInvalidName)
	}
	id := normalizeSetName(trimmed)
	if id == setExtension {
		return "", fmt.Errorf("chord set name %q: %w", name, ErrInvalidName)
	}
	return id, nil
}
