// Package story models a tracked Fimfiction story and decides whether a fresh
// snapshot of it counts as an update.
//
// Compare checks chapters, then words, then the modification time, and
// reports the first mismatch. Whether that mismatch is worth a download is
// decided by the Sensibility level; mismatches below the level are still
// returned (as ignored) so callers can merge them without delivering.
// MetadataChanges reports title, author and status changes, which never
// count as updates on their own.
package story
