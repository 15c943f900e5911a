package ogg

import (
	"io"

	"github.com/rs/zerolog"
)

// readBufferSize is the chunk size pulled from the source per refill.
const readBufferSize = 64 * 1024

// Reader is the pull-based convenience layer over Syncer and Demuxer: it
// drains packets from an io.Reader carrying a multiplexed Ogg byte stream.
// Corruption is skipped, not fatal; anomalies accumulate in Warnings.
type Reader struct {
	src    io.Reader
	syncer *Syncer
	demux  *Demuxer
	log    zerolog.Logger

	queue    []Packet
	warnings []Warning
	buf      []byte
	err      error // sticky source error
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithReaderLogger attaches a logger for framing warnings.
func WithReaderLogger(log zerolog.Logger) ReaderOption {
	return func(r *Reader) {
		r.log = log
	}
}

// WithReaderMaxResyncDistance caps the bytes discarded between good pages
// before Next fails with ErrResyncLimit.
func WithReaderMaxResyncDistance(n int) ReaderOption {
	return func(r *Reader) {
		r.syncer = NewSyncer(WithMaxResyncDistance(n))
	}
}

// NewReader returns a Reader draining packets from src.
func NewReader(src io.Reader, opts ...ReaderOption) *Reader {
	r := &Reader{
		src:    src,
		syncer: NewSyncer(),
		log:    zerolog.Nop(),
		buf:    make([]byte, readBufferSize),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.demux = NewDemuxer(WithLogger(r.log))
	return r
}

// Next returns the next packet from any logical stream, in physical stream
// order. It returns io.EOF once the source is exhausted and all buffered
// pages have been consumed, or ErrResyncLimit if the stream is corrupt
// beyond the configured scan distance. Source read errors other than EOF
// are returned as-is.
func (r *Reader) Next() (Packet, error) {
	for len(r.queue) == 0 {
		page, skipped, err := r.syncer.NextPage()
		if skipped > 0 {
			r.log.Warn().Int("skipped", skipped).Msg("ogg: lost sync, bytes discarded")
		}
		if err == ErrShortPage {
			if r.err != nil {
				return Packet{}, r.err
			}
			if ferr := r.fill(); ferr != nil {
				r.err = ferr
			}
			continue
		}
		if err != nil {
			return Packet{}, err
		}
		packets, warnings := r.demux.PageIn(page)
		r.queue = append(r.queue, packets...)
		r.warnings = append(r.warnings, warnings...)
	}

	pkt := r.queue[0]
	r.queue = r.queue[1:]
	return pkt, nil
}

// NextPage returns the next validated page without demultiplexing. Mixing
// NextPage and Next on one Reader is not supported: a page consumed here is
// invisible to Next.
func (r *Reader) NextPage() (*Page, error) {
	for {
		page, skipped, err := r.syncer.NextPage()
		if skipped > 0 {
			r.log.Warn().Int("skipped", skipped).Msg("ogg: lost sync, bytes discarded")
		}
		if err == ErrShortPage {
			if r.err != nil {
				return nil, r.err
			}
			if ferr := r.fill(); ferr != nil {
				r.err = ferr
			}
			continue
		}
		if err != nil {
			return nil, err
		}
		return page, nil
	}
}

// fill reads one chunk from the source into the Syncer.
func (r *Reader) fill() error {
	n, err := r.src.Read(r.buf)
	if n > 0 {
		r.syncer.Submit(r.buf[:n])
	}
	return err
}

// Skipped returns the total number of corrupt bytes discarded so far.
func (r *Reader) Skipped() int {
	return r.syncer.Skipped()
}

// Warnings returns all framing warnings observed so far.
func (r *Reader) Warnings() []Warning {
	return r.warnings
}
