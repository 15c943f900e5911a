package ogg

import (
	"github.com/rs/zerolog"
)

// Demuxer routes pages to per-serial Stream trackers and retires trackers
// as their logical streams end. It is the packet-level facade over a
// multiplexed physical stream: feed it every page the Syncer produces and
// it hands back completed packets regardless of how many logical streams
// are interleaved.
type Demuxer struct {
	streams map[uint32]*Stream
	log     zerolog.Logger
}

// DemuxerOption configures a Demuxer.
type DemuxerOption func(*Demuxer)

// WithLogger attaches a logger used to surface framing warnings. Warnings
// are always returned to the caller as values; the logger is an additional
// observability channel and defaults to a no-op logger.
func WithLogger(log zerolog.Logger) DemuxerOption {
	return func(d *Demuxer) {
		d.log = log
	}
}

// NewDemuxer returns an empty Demuxer.
func NewDemuxer(opts ...DemuxerOption) *Demuxer {
	d := &Demuxer{
		streams: make(map[uint32]*Stream),
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Streams returns the serial numbers of logical streams currently tracked.
// Streams that have ended are no longer listed.
func (d *Demuxer) Streams() []uint32 {
	serials := make([]uint32, 0, len(d.streams))
	for serial := range d.streams {
		serials = append(serials, serial)
	}
	return serials
}

// PageIn routes one page to the tracker for its serial number, creating the
// tracker on first sight and retiring it once the stream ends.
//
// A first page without the beginning-of-stream flag yields WarnMissingBOS
// but is processed anyway; real-world streams are occasionally malformed
// here and rejecting them would lose recoverable data. A page for a stream
// that already ended is dropped with a warning-level log entry.
func (d *Demuxer) PageIn(p *Page) ([]Packet, []Warning) {
	var warnings []Warning

	st, ok := d.streams[p.Serial]
	if !ok {
		if !p.IsBOS() {
			warnings = append(warnings, Warning{
				Kind:     WarnMissingBOS,
				Serial:   p.Serial,
				Sequence: p.Sequence,
			})
		}
		st = NewStream(p.Serial)
		d.streams[p.Serial] = st
		d.log.Debug().
			Uint32("serial", p.Serial).
			Bool("bos", p.IsBOS()).
			Msg("logical stream opened")
	}

	packets, streamWarnings, err := st.PageIn(p)
	if err != nil {
		// Only ErrStreamClosed is reachable: the serial is st's by
		// construction. Late pages after EOS are dropped, not fatal.
		d.log.Warn().
			Uint32("serial", p.Serial).
			Uint32("sequence", p.Sequence).
			Err(err).
			Msg("page dropped")
		return nil, warnings
	}
	warnings = append(warnings, streamWarnings...)

	for _, w := range warnings {
		d.log.Warn().
			Uint32("serial", w.Serial).
			Uint32("sequence", w.Sequence).
			Msg(w.String())
	}

	if st.Ended() {
		delete(d.streams, p.Serial)
		d.log.Debug().
			Uint32("serial", p.Serial).
			Msg("logical stream ended")
	}

	return packets, warnings
}
