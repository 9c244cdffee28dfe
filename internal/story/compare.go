package story

import (
	"fmt"
	"time"

	"fictrack/internal/faults"
)

// Sensibility is how small a change may be and still count as an update.
// Each level includes the conditions of the levels below it.
type Sensibility int

const (
	OnlyChapters Sensibility = iota
	IncludeWords
	Anything
)

// String returns the level name used in config docs and logs.
func (l Sensibility) String() string {
	switch l {
	case OnlyChapters:
		return "only-chapters"
	case IncludeWords:
		return "include-words"
	case Anything:
		return "anything"
	default:
		return fmt.Sprintf("Sensibility(%d)", int(l))
	}
}

// Update is the single difference found between two snapshots of a story.
// The implementations are ChaptersUpdate, WordsUpdate and DateTimeUpdate.
type Update interface {
	// SignificantAt reports whether the difference passes level.
	SignificantAt(level Sensibility) bool
	Describe() string
	update()
}

// ChaptersUpdate means the chapter count changed in either direction.
type ChaptersUpdate struct {
	Before, After uint64
}

func (ChaptersUpdate) SignificantAt(Sensibility) bool { return true }

func (u ChaptersUpdate) Describe() string {
	return fmt.Sprintf("chapters %d -> %d", u.Before, u.After)
}

func (ChaptersUpdate) update() {}

// WordsUpdate means the word count changed with the chapter count unchanged.
type WordsUpdate struct {
	Before, After uint64
}

func (WordsUpdate) SignificantAt(level Sensibility) bool { return level >= IncludeWords }

func (u WordsUpdate) Describe() string {
	return fmt.Sprintf("words %d -> %d", u.Before, u.After)
}

func (WordsUpdate) update() {}

// DateTimeUpdate means only the modification time moved forward.
type DateTimeUpdate struct {
	Before, After time.Time
}

func (DateTimeUpdate) SignificantAt(level Sensibility) bool { return level >= Anything }

func (u DateTimeUpdate) Describe() string {
	return fmt.Sprintf("updated %s -> %s", u.Before.UTC().Format(time.RFC3339), u.After.UTC().Format(time.RFC3339))
}

func (DateTimeUpdate) update() {}

// ComparisonError is returned when two snapshots of different stories are
// compared.
type ComparisonError struct {
	ID      ID
	OtherID ID
}

func (e *ComparisonError) Error() string {
	return fmt.Sprintf("cannot compare story %d with story %d", e.ID, e.OtherID)
}

func (e *ComparisonError) Unwrap() error { return faults.ErrComparison }

// Diff returns the first difference between previous and updated in
// priority order (chapters, words, newer modification time), or nil.
func Diff(previous, updated Story) (Update, error) {
	if previous.ID != updated.ID {
		return nil, &ComparisonError{ID: previous.ID, OtherID: updated.ID}
	}
	switch {
	case previous.ChapterCount != updated.ChapterCount:
		return ChaptersUpdate{Before: previous.ChapterCount, After: updated.ChapterCount}, nil
	case previous.Words != updated.Words:
		return WordsUpdate{Before: previous.Words, After: updated.Words}, nil
	case updated.UpdatedAt.After(previous.UpdatedAt):
		return DateTimeUpdate{Before: previous.UpdatedAt, After: updated.UpdatedAt}, nil
	default:
		return nil, nil
	}
}

// Comparison is the outcome of Compare. At most one field is set: Update
// when the difference passes the sensibility level, Ignored when it does not.
type Comparison struct {
	Update  Update
	Ignored Update
}

// Changed reports whether any difference was found.
func (c Comparison) Changed() bool {
	return c.Update != nil || c.Ignored != nil
}

// Compare classifies the difference between previous and updated at level.
func Compare(previous, updated Story, level Sensibility) (Comparison, error) {
	diff, err := Diff(previous, updated)
	if err != nil || diff == nil {
		return Comparison{}, err
	}
	if diff.SignificantAt(level) {
		return Comparison{Update: diff}, nil
	}
	return Comparison{Ignored: diff}, nil
}

// Changes lists the metadata fields that differ between two snapshots.
type Changes struct {
	Title  bool
	Author bool
	Status bool
}

// Any reports whether at least one field changed.
func (c Changes) Any() bool {
	return c.Title || c.Author || c.Status
}

// MetadataChanges compares title, author and status independently of Compare.
func MetadataChanges(previous, updated Story) Changes {
	return Changes{
		Title:  previous.Title != updated.Title,
		Author: previous.Author != updated.Author,
		Status: previous.Status != updated.Status,
	}
}
