package workflow

import (
	"errors"
	"time"

	"fictrack/internal/ledger"
)

// Persist saves the ledger. When saving fails it makes one attempt to write
// a timestamped backup into backupDir and returns the backup path on
// success. The save error is always returned, joined with the backup error
// when that failed too.
func Persist(l *ledger.Ledger, backupDir string, now time.Time) (string, error) {
	saveErr := l.Save()
	if saveErr == nil {
		return "", nil
	}
	path, backupErr := l.Backup(backupDir, now)
	if backupErr != nil {
		return "", errors.Join(saveErr, backupErr)
	}
	return path, saveErr
}
