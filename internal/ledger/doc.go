// Package ledger persists the tracked stories.
//
// A Ledger is an ordered map from story id to the last known snapshot. The
// order is the insertion order: replacing a story keeps its position and
// removing one keeps the relative order of the rest. The backing file is a
// compact JSON array read once by Load and rewritten atomically by Save.
// Backup writes the same payload to a timestamped file elsewhere when the
// tracker file itself cannot be written.
//
// The ledger is not safe for concurrent use and does not lock its file.
package ledger
