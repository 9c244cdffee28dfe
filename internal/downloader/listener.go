package downloader

import "fictrack/internal/story"

// Listener receives delivery events.
type Listener interface {
	// Progress reports cumulative bytes written to path. It is called once
	// with 0 before any bytes arrive.
	Progress(written int64, path string)
	// FetchDone is called after a direct download completed.
	FetchDone(s story.Story)
	// BeforeExec is called right before the exec command is spawned.
	BeforeExec(s story.Story)
	// ExecDone is called after the exec command exited successfully.
	ExecDone(s story.Story)
}

// NopListener ignores every event.
type NopListener struct{}

func (NopListener) Progress(int64, string) {}

func (NopListener) FetchDone(story.Story) {}

func (NopListener) BeforeExec(story.Story) {}

func (NopListener) ExecDone(story.Story) {}
