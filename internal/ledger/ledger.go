package ledger

import (
	"iter"
	"log/slog"

	"fictrack/internal/logging"
	"fictrack/internal/story"
)

// Ledger is the ordered collection of tracked stories bound to a file.
type Ledger struct {
	path    string
	logger  *slog.Logger
	order   []story.ID
	entries map[story.ID]story.Story
}

// New creates an empty ledger backed by path. Call Load to read the file.
func New(path string, logger *slog.Logger) *Ledger {
	return &Ledger{
		path:    path,
		logger:  logging.NewComponentLogger(logger, "ledger"),
		entries: make(map[story.ID]story.Story),
	}
}

// Path returns the backing file.
func (l *Ledger) Path() string {
	return l.path
}

// Len returns the number of tracked stories.
func (l *Ledger) Len() int {
	return len(l.order)
}

// Get returns the story tracked under id.
func (l *Ledger) Get(id story.ID) (story.Story, bool) {
	s, ok := l.entries[id]
	return s, ok
}

// Contains reports whether id is tracked.
func (l *Ledger) Contains(id story.ID) bool {
	_, ok := l.entries[id]
	return ok
}

// Insert stores s under s.ID. An existing entry is replaced in place and
// Insert reports true.
func (l *Ledger) Insert(s story.Story) bool {
	_, replaced := l.entries[s.ID]
	if !replaced {
		l.order = append(l.order, s.ID)
	}
	l.entries[s.ID] = s
	return replaced
}

// Remove deletes id and returns the removed story.
func (l *Ledger) Remove(id story.ID) (story.Story, bool) {
	s, ok := l.entries[id]
	if !ok {
		return story.Story{}, false
	}
	delete(l.entries, id)
	for i, existing := range l.order {
		if existing == id {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
	return s, true
}

// IDs returns the tracked ids in ledger order.
func (l *Ledger) IDs() []story.ID {
	return append([]story.ID(nil), l.order...)
}

// Stories returns the tracked stories in ledger order.
func (l *Ledger) Stories() []story.Story {
	out := make([]story.Story, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, l.entries[id])
	}
	return out
}

// All iterates the tracked stories in ledger order.
func (l *Ledger) All() iter.Seq2[story.ID, story.Story] {
	return func(yield func(story.ID, story.Story) bool) {
		for _, id := range l.order {
			if !yield(id, l.entries[id]) {
				return
			}
		}
	}
}
