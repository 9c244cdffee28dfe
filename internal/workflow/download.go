package workflow

import (
	"context"
	"fmt"
	"slices"

	"fictrack/internal/ledger"
	"fictrack/internal/logging"
	"fictrack/internal/story"
)

// PromptPolicy decides how stories that are no longer Incomplete are handled.
type PromptPolicy int

const (
	// PromptAsk asks the Prompter for every such story.
	PromptAsk PromptPolicy = iota
	// PromptAssumeYes checks them without asking.
	PromptAssumeYes
	// PromptAssumeNo skips them without asking.
	PromptAssumeNo
)

// DownloadOptions selects what a download run checks.
type DownloadOptions struct {
	// IDs limits the run to these stories. Empty means every tracked story.
	IDs    []story.ID
	Force  bool
	Prompt PromptPolicy
}

// DownloadResult summarizes a download run. Ids are listed in ledger order.
type DownloadResult struct {
	Ignored   []story.ID
	Queued    []story.ID
	Delivered []story.ID
}

// Download checks the selected stories for updates and delivers those that
// qualify. Updates that do not qualify are still merged into the ledger.
// On a delivery failure the error is returned and every merge made so far
// stays in the ledger.
func (r *Runner) Download(ctx context.Context, l *ledger.Ledger, opts DownloadOptions) (DownloadResult, error) {
	var result DownloadResult

	selected := r.selectIDs(l, opts.IDs)
	ignored := make(map[story.ID]bool)
	for _, id := range selected {
		current, _ := l.Get(id)
		if current.Status == story.StatusIncomplete {
			continue
		}
		keep, err := r.gate(ctx, current, opts.Prompt)
		if err != nil {
			return result, err
		}
		if opts.Prompt != PromptAsk {
			r.reporter.Gated(current, keep)
		}
		if !keep {
			ignored[id] = true
			result.Ignored = append(result.Ignored, id)
		}
	}

	staged := make(map[story.ID]story.Story)
	queued := make(map[story.ID]bool)
	for _, id := range selected {
		if ignored[id] {
			continue
		}
		current, _ := l.Get(id)
		r.reporter.Checking(current)
		updated, err := r.requester.Lookup(ctx, id)
		if err != nil {
			return result, fmt.Errorf("check %s: %w", label(current), err)
		}
		comparison, err := story.Compare(current, updated, r.settings.Sensibility)
		if err != nil {
			return result, err
		}
		changes := story.MetadataChanges(current, updated)

		switch {
		case comparison.Update != nil:
			r.reporter.UpdateFound(current, comparison.Update, false)
			queued[id] = true
		case comparison.Ignored != nil:
			r.reporter.UpdateFound(current, comparison.Ignored, true)
		}
		if changes.Any() {
			r.reporter.MetadataChanged(current, updated, changes)
		}
		if comparison.Changed() || changes.Any() {
			staged[id] = updated
		}
	}

	// Snapshots that will not be delivered are merged right away.
	for _, id := range selected {
		if snapshot, ok := staged[id]; ok && !queued[id] {
			l.Insert(snapshot)
		}
	}

	if opts.Force {
		r.reporter.Forcing(len(opts.IDs) == 0 && len(ignored) == 0)
		for _, id := range selected {
			if !ignored[id] {
				queued[id] = true
			}
		}
	}

	var deliveries []story.Story
	for _, id := range l.IDs() {
		if !queued[id] {
			continue
		}
		result.Queued = append(result.Queued, id)
		if snapshot, ok := staged[id]; ok {
			deliveries = append(deliveries, snapshot)
			continue
		}
		current, _ := l.Get(id)
		deliveries = append(deliveries, current)
	}

	if len(deliveries) == 0 {
		r.reporter.NothingToDownload()
		return result, nil
	}
	r.reporter.SectionBreak()

	_, err := r.deliverAll(ctx, deliveries, func(s story.Story) {
		if snapshot, ok := staged[s.ID]; ok {
			l.Insert(snapshot)
		}
		result.Delivered = append(result.Delivered, s.ID)
	})
	if err != nil {
		logging.WarnWithContext(r.logger, "download run aborted", "download_aborted",
			logging.Int("delivered", len(result.Delivered)),
			logging.Int("queued", len(result.Queued)),
			logging.Error(err),
			logging.String(logging.FieldImpact, "remaining stories were not delivered"),
			logging.String(logging.FieldErrorHint, "re-run download once the cause is fixed"))
		return result, err
	}
	return result, nil
}

func (r *Runner) gate(ctx context.Context, s story.Story, policy PromptPolicy) (bool, error) {
	switch policy {
	case PromptAssumeYes:
		return true, nil
	case PromptAssumeNo:
		return false, nil
	default:
		question := fmt.Sprintf("%s has been marked as %s by the author. Do you want to still check for an update on it?",
			label(s), s.Status)
		keep, err := r.prompter.Confirm(ctx, question)
		if err != nil {
			return false, fmt.Errorf("status confirmation for %s: %w", label(s), err)
		}
		return keep, nil
	}
}

// selectIDs returns the tracked ids in ledger order, limited to requested
// when it is non-empty. Untracked requested ids are dropped.
func (r *Runner) selectIDs(l *ledger.Ledger, requested []story.ID) []story.ID {
	all := l.IDs()
	if len(requested) == 0 {
		return all
	}
	for _, id := range requested {
		if !l.Contains(id) {
			r.logger.Debug("requested story is not tracked",
				logging.String(logging.FieldStoryID, id.String()))
		}
	}
	selected := make([]story.ID, 0, len(requested))
	for _, id := range all {
		if slices.Contains(requested, id) {
			selected = append(selected, id)
		}
	}
	return selected
}
