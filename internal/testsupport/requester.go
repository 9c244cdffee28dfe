package testsupport

import (
	"context"
	"fmt"
	"sync"

	"fictrack/internal/faults"
	"fictrack/internal/story"
)

// FakeRequester serves lookups from a map of snapshots and records every
// call in order.
type FakeRequester struct {
	mu         sync.Mutex
	snapshots  map[story.ID]story.Story
	deliverErr map[story.ID]error
	events     []string
	delivered  []story.Story
	lookups    []story.ID
}

// NewFakeRequester returns a requester that answers lookups with snapshots.
func NewFakeRequester(snapshots ...story.Story) *FakeRequester {
	f := &FakeRequester{
		snapshots:  make(map[story.ID]story.Story),
		deliverErr: make(map[story.ID]error),
	}
	for _, s := range snapshots {
		f.snapshots[s.ID] = s
	}
	return f
}

// SetSnapshot replaces the snapshot returned for s.ID.
func (f *FakeRequester) SetSnapshot(s story.Story) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snapshots[s.ID] = s
}

// FailDelivery makes Deliver return err for id.
func (f *FakeRequester) FailDelivery(id story.ID, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deliverErr[id] = err
}

// Lookup returns the configured snapshot or a lookup error.
func (f *FakeRequester) Lookup(_ context.Context, id story.ID) (story.Story, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups = append(f.lookups, id)
	f.events = append(f.events, fmt.Sprintf("lookup %d", id))
	s, ok := f.snapshots[id]
	if !ok {
		return story.Story{}, faults.Wrap(faults.ErrLookup, "fake", "lookup", fmt.Sprintf("story %d", id), nil)
	}
	return s, nil
}

// Deliver records s and returns the configured failure, if any.
func (f *FakeRequester) Deliver(_ context.Context, s story.Story) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, fmt.Sprintf("deliver %d", s.ID))
	if err := f.deliverErr[s.ID]; err != nil {
		return err
	}
	f.delivered = append(f.delivered, s)
	return nil
}

// Lookups returns the looked up ids in call order.
func (f *FakeRequester) Lookups() []story.ID {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]story.ID(nil), f.lookups...)
}

// Delivered returns the successfully delivered stories in call order.
func (f *FakeRequester) Delivered() []story.Story {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]story.Story(nil), f.delivered...)
}

// Events returns "lookup N" and "deliver N" entries in call order.
func (f *FakeRequester) Events() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.events...)
}

// Record appends a free-form entry to the event log, letting tests
// interleave their own hooks (sleeps, separators) with requester calls.
func (f *FakeRequester) Record(event string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
}
