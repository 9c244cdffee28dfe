package workflow

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"fictrack/internal/ledger"
	"fictrack/internal/story"
)

// Untrack removes ids from the ledger. It returns the removed stories and
// the ids that were not tracked, both in input order.
func Untrack(l *ledger.Ledger, ids []story.ID) ([]story.Story, []story.ID) {
	var removed []story.Story
	var missing []story.ID
	for _, id := range ids {
		if s, ok := l.Remove(id); ok {
			removed = append(removed, s)
			continue
		}
		missing = append(missing, id)
	}
	return removed, missing
}

// SortKey orders listed stories.
type SortKey string

const (
	SortByID       SortKey = "id"
	SortByTitle    SortKey = "title"
	SortByAuthor   SortKey = "author"
	SortByChapters SortKey = "chapters"
	SortByWords    SortKey = "words"
	SortByUpdate   SortKey = "update"
)

// SortKeys lists every accepted sort key.
var SortKeys = []SortKey{SortByID, SortByTitle, SortByAuthor, SortByChapters, SortByWords, SortByUpdate}

// ParseSortKey validates a sort key name.
func ParseSortKey(value string) (SortKey, error) {
	key := SortKey(strings.ToLower(strings.TrimSpace(value)))
	if slices.Contains(SortKeys, key) {
		return key, nil
	}
	return "", fmt.Errorf("unknown sort key %q", value)
}

// Filter returns the tracked stories whose status is in statuses, in ledger
// order. No statuses means every story.
func Filter(l *ledger.Ledger, statuses ...story.Status) []story.Story {
	stories := l.Stories()
	if len(statuses) == 0 {
		return stories
	}
	return slices.DeleteFunc(stories, func(s story.Story) bool {
		return !slices.Contains(statuses, s.Status)
	})
}

// Sort orders stories in place by key. Ties keep their relative order.
func Sort(stories []story.Story, key SortKey, reverse bool) {
	compare := func(a, b story.Story) int {
		switch key {
		case SortByTitle:
			return cmp.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
		case SortByAuthor:
			return cmp.Compare(strings.ToLower(a.Author), strings.ToLower(b.Author))
		case SortByChapters:
			return cmp.Compare(a.ChapterCount, b.ChapterCount)
		case SortByWords:
			return cmp.Compare(a.Words, b.Words)
		case SortByUpdate:
			return a.UpdatedAt.Compare(b.UpdatedAt)
		default:
			return cmp.Compare(a.ID, b.ID)
		}
	}
	slices.SortStableFunc(stories, func(a, b story.Story) int {
		if reverse {
			return compare(b, a)
		}
		return compare(a, b)
	})
}
