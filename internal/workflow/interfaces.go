package workflow

import (
	"context"

	"fictrack/internal/story"
)

// Requester looks stories up and delivers their content.
type Requester interface {
	Lookup(ctx context.Context, id story.ID) (story.Story, error)
	Deliver(ctx context.Context, s story.Story) error
}

// Prompter asks the user a yes/no question.
type Prompter interface {
	Confirm(ctx context.Context, question string) (bool, error)
}

// DeclinePrompter answers every question with no.
type DeclinePrompter struct{}

func (DeclinePrompter) Confirm(context.Context, string) (bool, error) { return false, nil }

// Reporter receives user-facing progress notices.
type Reporter interface {
	// Gated is called for a story that is not Incomplete when the decision
	// was made without asking. kept reports whether it is still checked.
	Gated(s story.Story, kept bool)
	// Checking is called right before a tracked story is looked up.
	Checking(s story.Story)
	// UpdateFound reports a difference. ignored is true when the difference
	// is below the sensibility level and does not queue a delivery.
	UpdateFound(s story.Story, update story.Update, ignored bool)
	// MetadataChanged reports title, author or status changes.
	MetadataChanged(previous, updated story.Story, changes story.Changes)
	NothingToDownload()
	// Forcing is called when a forced download starts. all is true when the
	// whole ledger is being delivered.
	Forcing(all bool)
	// Overwriting is called for an already tracked story that is re-tracked
	// without asking.
	Overwriting(s story.Story)
	// Fetching is called right before a story is looked up for tracking.
	Fetching(id story.ID)
	Tracked(s story.Story)
	// SectionBreak separates the lookup phase from the delivery phase.
	SectionBreak()
	// Separator is emitted between deliveries in command mode.
	Separator()
}

// NopReporter discards every notice.
type NopReporter struct{}

func (NopReporter) Gated(story.Story, bool) {}

func (NopReporter) Checking(story.Story) {}

func (NopReporter) UpdateFound(story.Story, story.Update, bool) {}

func (NopReporter) MetadataChanged(story.Story, story.Story, story.Changes) {}

func (NopReporter) NothingToDownload() {}

func (NopReporter) Forcing(bool) {}

func (NopReporter) Overwriting(story.Story) {}

func (NopReporter) Fetching(story.ID) {}

func (NopReporter) Tracked(story.Story) {}

func (NopReporter) SectionBreak() {}

func (NopReporter) Separator() {}
