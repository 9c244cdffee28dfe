package testsupport

import (
	"fmt"
	"testing"
	"time"

	"fictrack/internal/config"
	"fictrack/internal/ledger"
	"fictrack/internal/story"
)

// NewStory returns an Incomplete story with deterministic field values.
func NewStory(id story.ID, title string) story.Story {
	return story.Story{
		ID:           id,
		Title:        title,
		Author:       fmt.Sprintf("author-%d", id),
		ChapterCount: 3,
		Words:        12000,
		UpdatedAt:    time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC),
		Status:       story.StatusIncomplete,
	}
}

// NewLedger returns an in-memory ledger bound to cfg.TrackerFile and seeded
// with stories in order. Nothing is written to disk.
func NewLedger(t testing.TB, cfg *config.Config, stories ...story.Story) *ledger.Ledger {
	t.Helper()

	l := ledger.New(cfg.TrackerFile, nil)
	for _, s := range stories {
		l.Insert(s)
	}
	return l
}

// MustSaveLedger writes stories to cfg.TrackerFile.
func MustSaveLedger(t testing.TB, cfg *config.Config, stories ...story.Story) {
	t.Helper()

	if err := NewLedger(t, cfg, stories...).Save(); err != nil {
		t.Fatalf("ledger.Save: %v", err)
	}
}

// MustLoadLedger reads cfg.TrackerFile.
func MustLoadLedger(t testing.TB, cfg *config.Config) *ledger.Ledger {
	t.Helper()

	l := ledger.New(cfg.TrackerFile, nil)
	if err := l.Load(); err != nil {
		t.Fatalf("ledger.Load: %v", err)
	}
	return l
}
