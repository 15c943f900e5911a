package ogg

import (
	"bytes"
)

// DefaultMaxResyncDistance is the default cap on how many bytes the Syncer
// will discard while hunting for a valid page before giving up on the
// session. Use WithMaxResyncDistance to change it.
const DefaultMaxResyncDistance = 1 << 20

var captureBytes = []byte(capturePattern)

// Syncer locates page boundaries in a physical byte stream.
//
// It owns a growable accumulation buffer and an advancing read cursor. Bytes
// go in through Submit; validated pages come out through NextPage. When the
// bytes at the cursor do not decode to a page with a correct checksum, the
// Syncer scans forward for the next "OggS" occurrence and reports how many
// bytes it discarded. A candidate is only accepted once a full page decodes
// at it, checksum included, since the capture pattern can occur by chance in
// payload bytes.
//
// A Syncer is physical-stream state shared by all logical streams in the
// byte stream. It must be confined to one goroutine per session.
type Syncer struct {
	buf       []byte
	start     int
	maxResync int
	resyncRun int // bytes discarded since the last good page
	skipped   int // total bytes discarded over the session
}

// SyncerOption configures a Syncer.
type SyncerOption func(*Syncer)

// WithMaxResyncDistance caps the number of bytes the Syncer may discard
// between two good pages before NextPage returns ErrResyncLimit.
// A value <= 0 means unlimited.
func WithMaxResyncDistance(n int) SyncerOption {
	return func(s *Syncer) {
		s.maxResync = n
	}
}

// NewSyncer returns a Syncer ready to accept bytes.
func NewSyncer(opts ...SyncerOption) *Syncer {
	s := &Syncer{maxResync: DefaultMaxResyncDistance}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit appends bytes to the accumulation buffer. The Syncer copies the
// bytes; the caller may reuse p.
func (s *Syncer) Submit(p []byte) {
	s.compact()
	s.buf = append(s.buf, p...)
}

// NextPage returns the next validated page.
//
// skipped reports bytes discarded during this call to regain sync; a value
// greater than zero is the loss-of-sync advisory and accompanies either a
// recovered page or an ErrShortPage return.
//
// err is ErrShortPage when the buffer does not yet hold a complete page
// (submit more bytes and retry; not a failure), or ErrResyncLimit when the
// scan exceeded the configured maximum distance. Corruption is never
// returned as an error: it is skipped and reported through skipped.
func (s *Syncer) NextPage() (page *Page, skipped int, err error) {
	for {
		avail := s.buf[s.start:]
		p, n, perr := ParsePage(avail)
		switch perr {
		case nil:
			s.start += n
			s.resyncRun = 0
			return p, skipped, nil
		case ErrShortPage:
			return nil, skipped, ErrShortPage
		}

		// Structural or checksum failure at the cursor. Drop the false
		// candidate and scan for the next capture pattern. The final three
		// bytes are retained: they may be a prefix of a pattern split
		// across a future Submit.
		drop := len(avail) - (len(captureBytes) - 1)
		if idx := bytes.Index(avail[1:], captureBytes); idx >= 0 {
			drop = 1 + idx
		}
		if drop < 1 {
			drop = 1
		}

		s.start += drop
		skipped += drop
		s.resyncRun += drop
		s.skipped += drop

		if s.maxResync > 0 && s.resyncRun > s.maxResync {
			return nil, skipped, ErrResyncLimit
		}
	}
}

// Buffered returns the number of unconsumed bytes in the buffer.
func (s *Syncer) Buffered() int {
	return len(s.buf) - s.start
}

// Skipped returns the total number of bytes discarded over the session.
func (s *Syncer) Skipped() int {
	return s.skipped
}

// Reset discards all buffered bytes and returns the Syncer to its initial
// state, ready for a new byte-stream session.
func (s *Syncer) Reset() {
	s.buf = s.buf[:0]
	s.start = 0
	s.resyncRun = 0
	s.skipped = 0
}

// compact reclaims consumed prefix space once it dominates the buffer.
func (s *Syncer) compact() {
	if s.start == 0 {
		return
	}
	if s.start < len(s.buf)/2 && s.start < MaxPageSize {
		return
	}
	n := copy(s.buf, s.buf[s.start:])
	s.buf = s.buf[:n]
	s.start = 0
}
