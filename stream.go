package ogg

// Stream reassembles packets for a single logical stream.
//
// It owns the in-progress partial packet buffer and the page sequencing
// state for one serial number. Pages belonging to that serial go in through
// PageIn; completed packets come out, zero or more per page, since one page
// can finish a packet begun earlier, carry several complete packets, and
// start another.
//
// A Stream shares no state with other Streams: independent logical streams
// may be driven from separate goroutines as long as each Stream stays on one.
type Stream struct {
	serial  uint32
	partial []byte
	lastSeq uint32
	started bool // at least one page absorbed
	emitted bool // at least one packet emitted
	eos     bool
}

// NewStream returns a tracker for the logical stream identified by serial.
func NewStream(serial uint32) *Stream {
	return &Stream{serial: serial}
}

// Serial returns the serial number this Stream tracks.
func (s *Stream) Serial() uint32 {
	return s.serial
}

// Ended reports whether the end-of-stream page has been absorbed.
func (s *Stream) Ended() bool {
	return s.eos
}

// Reset returns the Stream to its initial state, discarding any partial
// packet and sequencing history. The serial number is retained.
func (s *Stream) Reset() {
	s.partial = nil
	s.lastSeq = 0
	s.started = false
	s.emitted = false
	s.eos = false
}

// PageIn absorbs one page and returns the packets it completed.
//
// Anomalies that lose data or merely look suspicious are returned as
// Warnings, never silently swallowed and never fatal:
//
//   - a sequence number other than the previous plus one yields
//     WarnSequenceGap and processing continues;
//   - a non-continuation page arriving while a partial packet is buffered
//     drops the partial and yields WarnDiscontinuity, since concatenating
//     across lost pages would fabricate a packet that never existed;
//   - a continuation arriving with nothing buffered (or after a sequence
//     gap) skips the orphaned fragment and likewise yields WarnDiscontinuity;
//   - an end-of-stream page with a packet still in progress delivers the
//     partial as a Packet with Truncated set, plus WarnTruncatedPacket.
//
// The only errors are misuse: ErrWrongSerial if the page belongs to another
// stream, ErrStreamClosed if the stream already ended.
func (s *Stream) PageIn(p *Page) ([]Packet, []Warning, error) {
	if p.Serial != s.serial {
		return nil, nil, ErrWrongSerial
	}
	if s.eos {
		return nil, nil, ErrStreamClosed
	}

	var warnings []Warning

	gap := false
	if s.started {
		expect := s.lastSeq + 1
		if p.Sequence != expect {
			gap = true
			warnings = append(warnings, Warning{
				Kind:             WarnSequenceGap,
				Serial:           s.serial,
				Sequence:         p.Sequence,
				ExpectedSequence: expect,
			})
		}
	}
	s.started = true
	s.lastSeq = p.Sequence

	segments := p.Segments
	payload := p.Payload

	if p.IsContinuation() {
		if gap || len(s.partial) == 0 {
			// The head of this page continues a packet whose earlier bytes
			// are gone (or were never seen). Drop the buffered partial and
			// skip the orphaned fragment up to its terminating segment.
			dropped := len(s.partial)
			s.partial = nil

			i, skip := 0, 0
			for ; i < len(segments); i++ {
				skip += int(segments[i])
				if segments[i] < 255 {
					i++
					break
				}
			}
			dropped += skip
			segments = segments[i:]
			payload = payload[skip:]

			warnings = append(warnings, Warning{
				Kind:         WarnDiscontinuity,
				Serial:       s.serial,
				Sequence:     p.Sequence,
				DroppedBytes: dropped,
			})
		}
	} else if len(s.partial) > 0 {
		// Expected a continuation and got a fresh packet start instead.
		warnings = append(warnings, Warning{
			Kind:         WarnDiscontinuity,
			Serial:       s.serial,
			Sequence:     p.Sequence,
			DroppedBytes: len(s.partial),
		})
		s.partial = nil
	}

	var packets []Packet

	// Walk the segment table. A segment below 255 terminates a packet;
	// anything left over past the last terminator carries into the next
	// page for this serial.
	pktStart, off := 0, 0
	for _, seg := range segments {
		off += int(seg)
		if seg == 255 {
			continue
		}
		data := payload[pktStart:off]
		if len(s.partial) > 0 {
			data = append(s.partial, data...)
			s.partial = nil
		}
		pkt := Packet{
			Serial:     s.serial,
			Data:       data,
			GranulePos: p.GranulePos,
		}
		if !s.emitted && p.IsBOS() {
			pkt.BOS = true
		}
		s.emitted = true
		packets = append(packets, pkt)
		pktStart = off
	}
	if pktStart < len(payload) {
		s.partial = append(s.partial, payload[pktStart:]...)
	}

	if p.IsEOS() {
		s.eos = true
		if len(s.partial) > 0 {
			warnings = append(warnings, Warning{
				Kind:         WarnTruncatedPacket,
				Serial:       s.serial,
				Sequence:     p.Sequence,
				DroppedBytes: len(s.partial),
			})
			packets = append(packets, Packet{
				Serial:     s.serial,
				Data:       s.partial,
				GranulePos: p.GranulePos,
				EOS:        true,
				Truncated:  true,
			})
			s.partial = nil
			s.emitted = true
		} else if len(packets) > 0 {
			packets[len(packets)-1].EOS = true
		}
	}

	return packets, warnings, nil
}
