package blackbox

import (
	"fmt"

	"github.com/krogueintel/batchbuffer-logger-all/pkg/log"
)

// DefaultPrefix names trace files when Options.Prefix is empty.
const DefaultPrefix = "i965_blackbox_log"

// Options configures a Session. Zero thresholds disable the corresponding
// rotation trigger.
type Options struct {
	// Prefix is the filename prefix; files are named <Prefix>.<sequence>.
	Prefix string
	// MaxFileSize rotates the current file at the next submission boundary
	// once its size exceeds this many bytes. 0 means unlimited.
	MaxFileSize int64
	// MaxSubmissionsPerFile rotates after this many submissions landed in
	// the current file. 0 means unlimited. Ignored in retention mode.
	MaxSubmissionsPerFile int
	// MaxRetainedFiles, when positive, enables retention mode: every
	// submission gets its own file and only the most recent
	// MaxRetainedFiles completed files are kept on disk.
	MaxRetainedFiles int
	// Logger receives diagnostic output. Defaults to a no-op logger.
	Logger log.Logger
	// Notify receives file lifecycle callbacks. Defaults to a no-op.
	Notify Notifier
}

// Session is the long-lived owner of the block stack, the current trace file
// and the file sequence counter. It is driven synchronously by the caller's
// instrumentation; the caller is responsible for delivering events in one
// total order; the session holds no internal locks.
//
// A write failure puts the session into a degraded state where recording
// stops but calls remain safe no-ops; tracing is diagnostic and must never
// take the instrumented application down with it.
type Session struct {
	opts   Options
	logger log.Logger
	notify Notifier

	stack BlockStack
	ring  *retentionRing // nil unless retention mode
	w     *fileWriter    // nil between submissions in retention mode

	seq         uint64 // sequence of the next file to open
	submissions int    // submissions completed in the current file

	degraded bool
	closed   bool
}

// Open starts a recording session and creates its first file, <prefix>.0.
func Open(opts Options) (*Session, error) {
	if opts.Prefix == "" {
		opts.Prefix = DefaultPrefix
	}
	if opts.Logger == nil {
		opts.Logger = log.NewNopLogger()
	}
	if opts.Notify == nil {
		opts.Notify = noopNotifier{}
	}
	s := &Session{opts: opts, logger: opts.Logger, notify: opts.Notify}
	if opts.MaxRetainedFiles > 0 {
		s.ring = newRetentionRing(opts.MaxRetainedFiles, s.logger, s.notify)
	}
	if err := s.openNext(); err != nil {
		return nil, err
	}
	s.logger.Info("trace session started",
		log.Str("prefix", opts.Prefix),
		log.Int64("max_file_size", opts.MaxFileSize),
		log.Int("max_submissions_per_file", opts.MaxSubmissionsPerFile),
		log.Int("max_retained_files", opts.MaxRetainedFiles))
	return s, nil
}

// BeginBlock opens a nested block and records it.
func (s *Session) BeginBlock(name, value []byte) error {
	if s.closed {
		return nil
	}
	s.stack.Push(name, value)
	return s.write(Record{Kind: KindBlockBegin, Name: name, Value: value})
}

// EndBlock closes the innermost open block and records it. Ending with no
// open block is a protocol violation by the instrumentation and fails with
// ErrUnbalancedBlock.
func (s *Session) EndBlock() error {
	if s.closed {
		return nil
	}
	if err := s.stack.Pop(); err != nil {
		s.logger.Error("block end with no open block", log.Str("prefix", s.opts.Prefix))
		return err
	}
	return s.write(Record{Kind: KindBlockEnd})
}

// Value records a standalone named value inside the current block structure.
func (s *Session) Value(name, value []byte) error {
	if s.closed {
		return nil
	}
	return s.write(Record{Kind: KindValue, Name: name, Value: value})
}

// SubmissionBegin marks the start of one unit of GPU work. In retention mode
// it rotates unconditionally so the submission gets a dedicated file;
// otherwise it rotates when the size threshold has been exceeded, and flushes
// so a hang right after the boundary loses as little as possible.
func (s *Session) SubmissionBegin() error {
	if s.closed || s.degraded {
		return nil
	}
	if s.ring != nil {
		return s.rotate()
	}
	if s.w == nil {
		return nil
	}
	if s.opts.MaxFileSize > 0 && s.w.size() > s.opts.MaxFileSize {
		return s.rotate()
	}
	if err := s.w.flush(); err != nil {
		s.degrade(err)
		return err
	}
	return nil
}

// SubmissionEnd marks the end of one unit of GPU work. In retention mode the
// submission's file is closed and handed to the retention ring; no file stays
// open until the next SubmissionBegin. Otherwise the per-file submission
// count is advanced and the count trigger may rotate.
func (s *Session) SubmissionEnd() error {
	if s.closed || s.degraded {
		return nil
	}
	if s.ring != nil {
		s.closeCurrent()
		return nil
	}
	if s.w == nil {
		return nil
	}
	s.submissions++
	if k := s.opts.MaxSubmissionsPerFile; k > 0 && s.submissions >= k {
		return s.rotate()
	}
	if err := s.w.flush(); err != nil {
		s.degrade(err)
		return err
	}
	return nil
}

// Close ends the session, closing the current file with its block structure
// terminated. Calling Close again is a no-op.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.closeCurrent()
	s.logger.Info("trace session ended", log.Str("prefix", s.opts.Prefix), log.Uint64("files", s.seq))
	return nil
}

// Degraded reports whether a write failure has stopped recording.
func (s *Session) Degraded() bool { return s.degraded }

func (s *Session) write(rec Record) error {
	if s.degraded || s.w == nil {
		return nil
	}
	if err := s.w.append(rec); err != nil {
		s.degrade(err)
		return err
	}
	return nil
}

// rotate closes the current file and opens the next one, replaying the open
// blocks outermost-first so the new file shows correct nesting on its own.
func (s *Session) rotate() error {
	s.closeCurrent()
	if err := s.openNext(); err != nil {
		s.degrade(err)
		return err
	}
	return nil
}

func (s *Session) openNext() error {
	path := fmt.Sprintf("%s.%d", s.opts.Prefix, s.seq)
	w, err := newFileWriter(path)
	if err != nil {
		return err
	}
	s.w = w
	s.submissions = 0
	s.notify.FileOpened(path, s.seq)
	s.logger.Debug("trace file opened", log.Str("path", path), log.Uint64("seq", s.seq))
	s.seq++
	for _, b := range s.stack.Snapshot() {
		if err := w.append(Record{Kind: KindBlockBegin, Name: b.Name, Value: b.Value}); err != nil {
			s.degrade(err)
			break
		}
	}
	return nil
}

// closeCurrent closes the open file, if any, and in retention mode hands its
// path to the retention ring. Close failures are logged but do not degrade
// the session; the next open may still succeed.
func (s *Session) closeCurrent() {
	if s.w == nil {
		return
	}
	w := s.w
	s.w = nil
	if err := w.close(s.stack.Depth()); err != nil {
		s.logger.Error("close trace file", log.Str("path", w.path), log.Err(err))
	}
	s.notify.FileClosed(w.path, w.size())
	s.logger.Debug("trace file closed", log.Str("path", w.path), log.Int64("size", w.size()))
	if s.ring != nil {
		s.ring.record(w.path)
	}
}

func (s *Session) degrade(err error) {
	if s.degraded {
		return
	}
	s.degraded = true
	s.logger.Error("trace recording stopped", log.Str("prefix", s.opts.Prefix), log.Err(err))
}
