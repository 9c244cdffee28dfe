package workflow_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"fictrack/internal/story"
	"fictrack/internal/testsupport"
	"fictrack/internal/workflow"
)

type recordingReporter struct {
	workflow.NopReporter
	requester *testsupport.FakeRequester
	gated     map[story.ID]bool
	updates   []string
	metadata  []story.Changes
	nothing   int
	forcing   []bool
	tracked   []story.ID
	overwrote []story.ID
}

func newRecordingReporter(requester *testsupport.FakeRequester) *recordingReporter {
	return &recordingReporter{requester: requester, gated: make(map[story.ID]bool)}
}

func (r *recordingReporter) Gated(s story.Story, kept bool) { r.gated[s.ID] = kept }

func (r *recordingReporter) UpdateFound(s story.Story, update story.Update, ignored bool) {
	entry := fmt.Sprintf("%d %s", s.ID, update.Describe())
	if ignored {
		entry += " (ignored)"
	}
	r.updates = append(r.updates, entry)
}

func (r *recordingReporter) MetadataChanged(_, _ story.Story, changes story.Changes) {
	r.metadata = append(r.metadata, changes)
}

func (r *recordingReporter) NothingToDownload() { r.nothing++ }

func (r *recordingReporter) Forcing(all bool) { r.forcing = append(r.forcing, all) }

func (r *recordingReporter) Tracked(s story.Story) { r.tracked = append(r.tracked, s.ID) }

func (r *recordingReporter) Overwriting(s story.Story) { r.overwrote = append(r.overwrote, s.ID) }

func (r *recordingReporter) Separator() { r.requester.Record("separator") }

type scriptedPrompter struct {
	answers   []bool
	err       error
	questions []string
}

func (p *scriptedPrompter) Confirm(_ context.Context, question string) (bool, error) {
	p.questions = append(p.questions, question)
	if p.err != nil {
		return false, p.err
	}
	if len(p.answers) == 0 {
		return false, fmt.Errorf("unexpected question %q", question)
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	return answer, nil
}

type harness struct {
	requester *testsupport.FakeRequester
	reporter  *recordingReporter
	prompter  *scriptedPrompter
	sleeps    []time.Duration
}

func newHarness(t *testing.T, settings workflow.Settings, snapshots ...story.Story) (*harness, *workflow.Runner) {
	t.Helper()
	h := &harness{requester: testsupport.NewFakeRequester(snapshots...), prompter: &scriptedPrompter{}}
	h.reporter = newRecordingReporter(h.requester)
	runner := workflow.New(h.requester, settings,
		workflow.WithReporter(h.reporter),
		workflow.WithPrompter(h.prompter),
		workflow.WithSleep(func(_ context.Context, d time.Duration) error {
			h.sleeps = append(h.sleeps, d)
			h.requester.Record("sleep")
			return nil
		}),
	)
	return h, runner
}

func withStatus(s story.Story, status story.Status) story.Story {
	s.Status = status
	return s
}
