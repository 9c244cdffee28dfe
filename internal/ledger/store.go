package ledger

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fictrack/internal/faults"
	"fictrack/internal/fileutil"
	"fictrack/internal/logging"
	"fictrack/internal/story"
)

// Action is the direction of a failed conversion.
type Action string

const (
	Serializing   Action = "serializing"
	Deserializing Action = "deserializing"
)

// FormatError reports tracker content that could not be converted.
type FormatError struct {
	Action Action
	Path   string
	Err    error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s tracker data %s: %v", e.Action, e.Path, e.Err)
}

func (e *FormatError) Unwrap() []error { return []error{faults.ErrFormat, e.Err} }

// Hint classifies serialization failures as internal and bad files as fixable.
func (e *FormatError) Hint() faults.Hint {
	if e.Action == Serializing {
		return faults.HintInternal
	}
	return faults.HintFixable
}

// record is the on-disk shape of a story.
type record struct {
	ID           story.ID     `json:"id"`
	Title        string       `json:"title"`
	Author       string       `json:"author"`
	ChapterCount uint64       `json:"chapter-amt"`
	Words        uint64       `json:"words"`
	UpdatedAt    int64        `json:"last-update-timestamp"`
	Status       story.Status `json:"completion-status"`
}

func toRecord(s story.Story) record {
	return record{
		ID:           s.ID,
		Title:        s.Title,
		Author:       s.Author,
		ChapterCount: s.ChapterCount,
		Words:        s.Words,
		UpdatedAt:    s.UpdatedAt.Unix(),
		Status:       s.Status,
	}
}

func (r record) story() story.Story {
	return story.Story{
		ID:           r.ID,
		Title:        r.Title,
		Author:       r.Author,
		ChapterCount: r.ChapterCount,
		Words:        r.Words,
		UpdatedAt:    time.Unix(r.UpdatedAt, 0).UTC(),
		Status:       r.Status,
	}
}

// Load replaces the in-memory contents with the backing file. A missing or
// empty file leaves the ledger empty. When an id appears twice the later
// snapshot wins and the first position is kept.
func (l *Ledger) Load() error {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			l.logger.Debug("tracker file not found, starting empty", logging.String("path", l.path))
			return nil
		}
		return faults.Wrap(faults.ErrIO, "ledger", "read", l.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return &FormatError{Action: Deserializing, Path: l.path, Err: err}
	}

	order := make([]story.ID, 0, len(records))
	entries := make(map[story.ID]story.Story, len(records))
	for i, rec := range records {
		if rec.ID == 0 {
			return &FormatError{Action: Deserializing, Path: l.path, Err: fmt.Errorf("entry %d has no story id", i)}
		}
		if _, dup := entries[rec.ID]; dup {
			l.logger.Debug("duplicate story id in tracker file, keeping the later entry",
				logging.String(logging.FieldStoryID, rec.ID.String()))
		} else {
			order = append(order, rec.ID)
		}
		entries[rec.ID] = rec.story()
	}
	l.order = order
	l.entries = entries

	l.logger.Debug("loaded tracker file",
		logging.Int("story_count", l.Len()),
		logging.String("path", l.path))
	return nil
}

func (l *Ledger) encode() ([]byte, error) {
	records := make([]record, 0, len(l.order))
	for _, s := range l.All() {
		records = append(records, toRecord(s))
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, &FormatError{Action: Serializing, Path: l.path, Err: err}
	}
	return data, nil
}

// Save writes every story in ledger order to the backing file atomically.
func (l *Ledger) Save() error {
	data, err := l.encode()
	if err != nil {
		return err
	}
	if err := fileutil.WriteFileAtomic(l.path, data, 0o644); err != nil {
		return faults.Wrap(faults.ErrIO, "ledger", "write", l.path, err)
	}
	l.logger.Debug("saved tracker file",
		logging.Int("story_count", l.Len()),
		logging.String("path", l.path))
	return nil
}

// Backup writes the ledger to a timestamped file inside dir and returns its
// path. It never touches the backing file.
func (l *Ledger) Backup(dir string, now time.Time) (string, error) {
	data, err := l.encode()
	if err != nil {
		return "", err
	}
	base := strings.TrimSuffix(filepath.Base(l.path), filepath.Ext(l.path))
	if base == "" || base == "." {
		base = "track-data"
	}
	target := filepath.Join(dir, fmt.Sprintf("%s-backup-%s.json", base, now.UTC().Format("20060102T150405Z")))
	if err := fileutil.WriteFileAtomic(target, data, 0o644); err != nil {
		return "", faults.Wrap(faults.ErrIO, "ledger", "backup", target, err)
	}
	l.logger.Info("wrote tracker backup", logging.String("path", target))
	return target, nil
}
