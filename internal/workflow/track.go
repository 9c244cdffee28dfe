package workflow

import (
	"context"
	"fmt"

	"fictrack/internal/ledger"
	"fictrack/internal/logging"
	"fictrack/internal/story"
)

// TrackOptions controls a track run.
type TrackOptions struct {
	IDs []story.ID
	// Overwrite replaces already tracked stories without asking.
	Overwrite bool
	// SkipDownload only records the stories.
	SkipDownload bool
}

// TrackResult lists what a track run did, in input order.
type TrackResult struct {
	Skipped   []story.ID
	Tracked   []story.ID
	Delivered []story.ID
}

// Track looks up each id and stores the snapshot in the ledger before
// anything is delivered, so a failed delivery still leaves it tracked. A
// snapshot answering for a different id aborts the run.
// Repeated ids are handled one after another against the ledger as it is
// at that point.
func (r *Runner) Track(ctx context.Context, l *ledger.Ledger, opts TrackOptions) (TrackResult, error) {
	var result TrackResult
	var queue []story.Story

	for _, id := range opts.IDs {
		if existing, ok := l.Get(id); ok {
			proceed, err := r.confirmOverwrite(ctx, existing, opts.Overwrite)
			if err != nil {
				return result, err
			}
			if !proceed {
				r.logger.Debug("kept existing entry",
					logging.String(logging.FieldStoryID, id.String()))
				result.Skipped = append(result.Skipped, id)
				continue
			}
		}

		r.reporter.Fetching(id)
		fetched, err := r.requester.Lookup(ctx, id)
		if err != nil {
			return result, fmt.Errorf("track story %d: %w", id, err)
		}
		if fetched.ID != id {
			return result, fmt.Errorf("track story %d: %w", id, &story.ComparisonError{ID: id, OtherID: fetched.ID})
		}
		l.Insert(fetched)
		r.reporter.Tracked(fetched)
		r.logger.Info("story tracked",
			logging.String(logging.FieldStoryID, fetched.ID.String()),
			logging.String("title", fetched.Title))
		result.Tracked = append(result.Tracked, id)
		queue = append(queue, fetched)
	}

	if opts.SkipDownload || len(queue) == 0 {
		return result, nil
	}
	r.reporter.SectionBreak()

	_, err := r.deliverAll(ctx, queue, func(s story.Story) {
		result.Delivered = append(result.Delivered, s.ID)
	})
	return result, err
}

func (r *Runner) confirmOverwrite(ctx context.Context, existing story.Story, overwrite bool) (bool, error) {
	if overwrite {
		r.reporter.Overwriting(existing)
		return true, nil
	}
	question := fmt.Sprintf("%s is already on the tracking list. Do you want to overwrite it?", label(existing))
	proceed, err := r.prompter.Confirm(ctx, question)
	if err != nil {
		return false, fmt.Errorf("overwrite confirmation for %s: %w", label(existing), err)
	}
	return proceed, nil
}
