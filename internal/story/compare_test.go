package story_test

import (
	"errors"
	"testing"
	"time"

	"fictrack/internal/faults"
	"fictrack/internal/story"
)

func baseStory() story.Story {
	return story.Story{
		ID:           100001,
		Title:        "An Active Story",
		Author:       "A New Author",
		ChapterCount: 5,
		Words:        12050,
		UpdatedAt:    time.Date(2021, 1, 19, 23, 0, 0, 0, time.UTC),
		Status:       story.StatusIncomplete,
	}
}

func TestDiffPriority(t *testing.T) {
	prev := baseStory()

	fewer := prev
	fewer.ChapterCount = 2
	fewer.Words = 1
	diff, err := story.Diff(prev, fewer)
	if err != nil {
		t.Fatalf("Diff returned error: %v", err)
	}
	if got, ok := diff.(story.ChaptersUpdate); !ok || got.Before != 5 || got.After != 2 {
		t.Fatalf("expected chapters 5 -> 2 to win over words, got %#v", diff)
	}

	words := prev
	words.Words = 15042
	words.UpdatedAt = prev.UpdatedAt.Add(time.Hour)
	diff, _ = story.Diff(prev, words)
	if got, ok := diff.(story.WordsUpdate); !ok || got.Before != 12050 || got.After != 15042 {
		t.Fatalf("expected words update, got %#v", diff)
	}

	later := prev
	later.UpdatedAt = time.Date(2021, 2, 14, 23, 0, 0, 0, time.UTC)
	diff, _ = story.Diff(prev, later)
	if got, ok := diff.(story.DateTimeUpdate); !ok || !got.After.Equal(later.UpdatedAt) {
		t.Fatalf("expected datetime update, got %#v", diff)
	}
}

func TestDiffNoDifference(t *testing.T) {
	prev := baseStory()
	if diff, err := story.Diff(prev, prev); err != nil || diff != nil {
		t.Fatalf("expected no difference comparing a story with itself, got %#v (%v)", diff, err)
	}

	older := prev
	older.UpdatedAt = time.Date(2021, 1, 10, 12, 0, 0, 0, time.UTC)
	if diff, _ := story.Diff(prev, older); diff != nil {
		t.Fatalf("an older timestamp must not count as an update, got %#v", diff)
	}

	renamed := prev
	renamed.Title = "Renamed"
	renamed.Status = story.StatusComplete
	if diff, _ := story.Diff(prev, renamed); diff != nil {
		t.Fatalf("metadata changes must not count as an update, got %#v", diff)
	}
}

func TestDiffMismatchedIDs(t *testing.T) {
	prev := baseStory()
	other := prev
	other.ID = 100002

	_, err := story.Diff(prev, other)
	var cmpErr *story.ComparisonError
	if !errors.As(err, &cmpErr) {
		t.Fatalf("expected ComparisonError, got %v", err)
	}
	if cmpErr.ID != 100001 || cmpErr.OtherID != 100002 {
		t.Fatalf("unexpected ids in error: %+v", cmpErr)
	}
	if !errors.Is(err, faults.ErrComparison) {
		t.Fatalf("expected comparison marker, got %v", err)
	}

	_, err = story.Diff(other, prev)
	if !errors.As(err, &cmpErr) {
		t.Fatalf("expected ComparisonError for reversed arguments, got %v", err)
	}
	if cmpErr.ID != 100002 || cmpErr.OtherID != 100001 {
		t.Fatalf("reversed comparison should report ids in argument order: %+v", cmpErr)
	}
}

func TestCompareThresholds(t *testing.T) {
	prev := baseStory()
	chapters := prev
	chapters.ChapterCount = 6
	words := prev
	words.Words = 13000
	dated := prev
	dated.UpdatedAt = prev.UpdatedAt.Add(24 * time.Hour)

	cases := []struct {
		name        string
		next        story.Story
		level       story.Sensibility
		significant bool
	}{
		{"chapters at only-chapters", chapters, story.OnlyChapters, true},
		{"chapters at include-words", chapters, story.IncludeWords, true},
		{"chapters at anything", chapters, story.Anything, true},
		{"words at only-chapters", words, story.OnlyChapters, false},
		{"words at include-words", words, story.IncludeWords, true},
		{"datetime at include-words", dated, story.IncludeWords, false},
		{"datetime at anything", dated, story.Anything, true},
		{"words at anything", words, story.Anything, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cmp, err := story.Compare(prev, tc.next, tc.level)
			if err != nil {
				t.Fatalf("Compare returned error: %v", err)
			}
			if !cmp.Changed() {
				t.Fatal("expected a difference")
			}
			if tc.significant && (cmp.Update == nil || cmp.Ignored != nil) {
				t.Fatalf("expected significant update, got %+v", cmp)
			}
			if !tc.significant && (cmp.Update != nil || cmp.Ignored == nil) {
				t.Fatalf("expected ignored update, got %+v", cmp)
			}
		})
	}

	for _, level := range []story.Sensibility{story.OnlyChapters, story.IncludeWords, story.Anything} {
		cmp, err := story.Compare(prev, chapters, level)
		if err != nil {
			t.Fatalf("Compare returned error: %v", err)
		}
		got, ok := cmp.Update.(story.ChaptersUpdate)
		if !ok {
			t.Fatalf("%s: expected ChaptersUpdate, got %#v", level, cmp.Update)
		}
		if got.Before != prev.ChapterCount || got.After != 6 {
			t.Fatalf("%s: unexpected chapter counts %+v", level, got)
		}
	}

	if cmp, _ := story.Compare(prev, prev, story.Anything); cmp.Changed() {
		t.Fatalf("expected empty comparison, got %+v", cmp)
	}
}

func TestMetadataChanges(t *testing.T) {
	prev := baseStory()
	next := prev
	next.Author = "Someone Else"
	next.Status = story.StatusHiatus

	changes := story.MetadataChanges(prev, next)
	if changes.Title || !changes.Author || !changes.Status {
		t.Fatalf("unexpected changes: %+v", changes)
	}
	if !changes.Any() {
		t.Fatal("expected Any to be true")
	}
	if story.MetadataChanges(prev, prev).Any() {
		t.Fatal("expected no changes for identical snapshots")
	}
}
