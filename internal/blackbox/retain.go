package blackbox

import (
	"errors"
	"io/fs"
	"os"

	"github.com/krogueintel/batchbuffer-logger-all/pkg/log"
)

// retentionRing holds the paths of the most recently completed per-submission
// files, oldest first, bounded at capacity. It is the only component allowed
// to delete trace files.
type retentionRing struct {
	capacity int
	paths    []string
	logger   log.Logger
	notify   Notifier
}

func newRetentionRing(capacity int, logger log.Logger, notify Notifier) *retentionRing {
	return &retentionRing{capacity: capacity, logger: logger, notify: notify}
}

// record appends path to the retained list. When the list is at or above
// capacity the oldest entries are deleted from disk first, so the retained
// count never exceeds capacity, not even transiently. Deletion failures are
// logged and ignored; retention is a best-effort disk-space bound.
func (r *retentionRing) record(path string) {
	for len(r.paths) >= r.capacity {
		oldest := r.paths[0]
		r.paths = r.paths[1:]
		if err := os.Remove(oldest); err != nil && !errors.Is(err, fs.ErrNotExist) {
			r.logger.Warn("delete retained trace file", log.Str("path", oldest), log.Err(err))
			continue
		}
		r.notify.FileRetired(oldest)
		r.logger.Debug("trace file retired", log.Str("path", oldest))
	}
	r.paths = append(r.paths, path)
}

// retained returns a copy of the retained paths, oldest first.
func (r *retentionRing) retained() []string {
	return append([]string(nil), r.paths...)
}
