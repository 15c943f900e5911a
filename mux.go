package ogg

import (
	"sort"
)

// DefaultMaxPageBody is the page body size at which the Muxer emits a page
// rather than keep accumulating packets. Matches the emission threshold
// used by the reference Ogg implementation.
const DefaultMaxPageBody = 4096

// Muxer packs packets into pages, the inverse of Syncer+Demuxer.
//
// Packets go in per serial number through PacketIn; fully encoded page
// buffers come out. Pages are emitted when the segment table fills (255
// entries), when the accumulated body reaches the configured budget, or on
// Flush/EndStream. Sequence numbers start at 0 per logical stream, the
// first page carries the beginning-of-stream flag, the page produced by
// EndStream carries end-of-stream, and any page starting mid-packet carries
// the continued-packet flag. A page is always a complete self-describing
// unit: the segment table is never split.
type Muxer struct {
	maxBody int
	streams map[uint32]*muxStream
}

// muxStream is the pending page state for one logical stream.
type muxStream struct {
	serial   uint32
	seq      uint32
	segments []byte
	body     []byte

	pendingGranule uint64 // granule of the last packet completed on the pending page
	havePending    bool
	lastGranule    uint64 // granule of the last packet completed on any page

	continued bool // pending page starts mid-packet
	started   bool // first page already emitted
	closed    bool
}

// MuxerOption configures a Muxer.
type MuxerOption func(*Muxer)

// WithMaxPageBody sets the page body size that triggers page emission.
// Values below 1 fall back to the default.
func WithMaxPageBody(n int) MuxerOption {
	return func(m *Muxer) {
		if n > 0 {
			m.maxBody = n
		}
	}
}

// NewMuxer returns an empty Muxer.
func NewMuxer(opts ...MuxerOption) *Muxer {
	m := &Muxer{
		maxBody: DefaultMaxPageBody,
		streams: make(map[uint32]*muxStream),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// PacketIn adds one packet to the logical stream identified by serial,
// creating the stream on first use. granule is the stream-defined progress
// marker for this packet; it becomes the granule position of the page on
// which the packet completes.
//
// Returns the encoded pages completed by this packet, possibly none: short
// packets accumulate until a page fills or is flushed, and a packet larger
// than a page yields several pages at once.
func (m *Muxer) PacketIn(serial uint32, data []byte, granule uint64) ([][]byte, error) {
	st, ok := m.streams[serial]
	if !ok {
		st = &muxStream{serial: serial}
		m.streams[serial] = st
	}
	if st.closed {
		return nil, ErrStreamClosed
	}

	var pages [][]byte

	// Lace the packet: one 255 segment per full chunk, terminated by a
	// short segment (zero-length for exact multiples of 255).
	offset := 0
	for {
		seg := len(data) - offset
		if seg > 255 {
			seg = 255
		}
		st.segments = append(st.segments, byte(seg))
		st.body = append(st.body, data[offset:offset+seg]...)
		offset += seg

		done := seg < 255
		if done {
			st.pendingGranule = granule
			st.havePending = true
			st.lastGranule = granule
		}
		if len(st.segments) == maxSegments || len(st.body) >= m.maxBody {
			pages = append(pages, m.emit(st, 0))
		}
		if done {
			return pages, nil
		}
	}
}

// FlushStream forces out the pending page for one stream, even undersized.
// Returns nil if nothing is pending.
func (m *Muxer) FlushStream(serial uint32) ([]byte, error) {
	st, ok := m.streams[serial]
	if !ok {
		return nil, ErrUnknownStream
	}
	if len(st.segments) == 0 {
		return nil, nil
	}
	return m.emit(st, 0), nil
}

// Flush forces out the pending pages of every stream, ordered by serial
// number for determinism. Streams with nothing pending contribute nothing.
func (m *Muxer) Flush() [][]byte {
	serials := make([]uint32, 0, len(m.streams))
	for serial := range m.streams {
		serials = append(serials, serial)
	}
	sort.Slice(serials, func(i, j int) bool { return serials[i] < serials[j] })

	var pages [][]byte
	for _, serial := range serials {
		st := m.streams[serial]
		if len(st.segments) > 0 {
			pages = append(pages, m.emit(st, 0))
		}
	}
	return pages
}

// EndStream closes the logical stream, emitting its final page with the
// end-of-stream flag. If nothing is pending an empty end-of-stream page is
// produced, so every stream ends with an explicit terminator. The stream
// accepts no further packets.
func (m *Muxer) EndStream(serial uint32) ([][]byte, error) {
	st, ok := m.streams[serial]
	if !ok {
		return nil, ErrUnknownStream
	}
	if st.closed {
		return nil, ErrStreamClosed
	}
	st.closed = true
	return [][]byte{m.emit(st, FlagEOS)}, nil
}

// emit encodes the pending page for st and resets the pending state.
func (m *Muxer) emit(st *muxStream, extraFlags byte) []byte {
	flags := extraFlags
	if st.continued {
		flags |= FlagContinuation
	}
	if !st.started {
		flags |= FlagBOS
	}

	granule := NoGranule
	switch {
	case st.havePending:
		granule = st.pendingGranule
	case len(st.segments) == 0:
		// Empty flush page: repeat the last known position.
		granule = st.lastGranule
	}

	page := &Page{
		HeaderType: flags,
		GranulePos: granule,
		Serial:     st.serial,
		Sequence:   st.seq,
		Segments:   st.segments,
		Payload:    st.body,
	}
	encoded := page.Encode()

	st.seq++
	st.started = true
	st.continued = len(st.segments) > 0 && st.segments[len(st.segments)-1] == 255
	st.segments = nil
	st.body = nil
	st.havePending = false

	return encoded
}
