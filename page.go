package ogg

import (
	"encoding/binary"
)

// Page header flag constants.
const (
	// FlagContinuation indicates this page begins with data from a packet
	// that began on a previous page.
	FlagContinuation = 0x01

	// FlagBOS (Beginning of Stream) indicates this is the first page of a
	// logical bitstream.
	FlagBOS = 0x02

	// FlagEOS (End of Stream) indicates this is the last page of a logical
	// bitstream.
	FlagEOS = 0x04
)

// Page layout constants.
const (
	// headerSize is the fixed portion of the page header (before segment table).
	headerSize = 27

	// capturePattern identifies the start of an Ogg page.
	capturePattern = "OggS"

	// maxSegments is the maximum number of entries in a segment table.
	maxSegments = 255

	// MaxPageSize is the largest possible encoded page:
	// header + full segment table + 255 segments of 255 bytes.
	MaxPageSize = headerSize + maxSegments + maxSegments*255
)

// NoGranule is the granule position of a page on which no packet completes
// (a page entirely inside a packet spanning three or more pages).
const NoGranule = ^uint64(0)

// Page represents a single Ogg page.
//
// A Page is transient: it is produced by ParsePage or by the Muxer and
// consumed immediately. Segments and Payload are owned by the Page and do
// not alias the input buffer.
type Page struct {
	// Version is the stream structure version (always 0).
	Version byte

	// HeaderType contains page flags (continuation, BOS, EOS).
	HeaderType byte

	// GranulePos is the stream-defined progress marker for the packet data
	// completed by the end of this page, or NoGranule if no packet completes.
	GranulePos uint64

	// Serial identifies the logical bitstream.
	Serial uint32

	// Sequence is the page sequence number within the bitstream.
	Sequence uint32

	// Segments contains the segment table entries.
	// Each entry is the size of a segment (0-255).
	Segments []byte

	// Payload contains the concatenated packet data.
	Payload []byte
}

// IsBOS returns true if this is a Beginning of Stream page.
func (p *Page) IsBOS() bool {
	return p.HeaderType&FlagBOS != 0
}

// IsEOS returns true if this is an End of Stream page.
func (p *Page) IsEOS() bool {
	return p.HeaderType&FlagEOS != 0
}

// IsContinuation returns true if this page continues a packet from a previous page.
func (p *Page) IsContinuation() bool {
	return p.HeaderType&FlagContinuation != 0
}

// CompletedPackets returns the number of packets that end on this page.
// Packets continuing onto the next page are not counted.
func (p *Page) CompletedPackets() int {
	n := 0
	for _, seg := range p.Segments {
		if seg < 255 {
			n++
		}
	}
	return n
}

// BodySize returns the payload length declared by the segment table.
func (p *Page) BodySize() int {
	size := 0
	for _, seg := range p.Segments {
		size += int(seg)
	}
	return size
}

// appendLacing appends segment table entries describing a packet of the
// given length: one 255 entry per full 255-byte chunk, terminated by a
// short entry (zero-length if the packet is an exact multiple of 255).
func appendLacing(segments []byte, packetLen int) []byte {
	for packetLen >= 255 {
		segments = append(segments, 255)
		packetLen -= 255
	}
	return append(segments, byte(packetLen))
}

// Encode serializes the page to bytes with proper CRC.
// The output format is:
//   - 27-byte header
//   - Segment table
//   - Payload
//
// The CRC is computed over the entire page (with CRC field zeroed).
// Encode is the only place a checksum value is produced.
func (p *Page) Encode() []byte {
	headerLen := headerSize + len(p.Segments)
	data := make([]byte, headerLen+len(p.Payload))

	copy(data[0:4], capturePattern)
	data[4] = p.Version
	data[5] = p.HeaderType
	binary.LittleEndian.PutUint64(data[6:14], p.GranulePos)
	binary.LittleEndian.PutUint32(data[14:18], p.Serial)
	binary.LittleEndian.PutUint32(data[18:22], p.Sequence)
	// CRC at bytes 22-25 is filled below.
	data[26] = byte(len(p.Segments))

	copy(data[27:], p.Segments)
	copy(data[headerLen:], p.Payload)

	binary.LittleEndian.PutUint32(data[22:26], crc(data))
	return data
}

// ParsePage parses an Ogg page from the start of data.
// Returns the parsed page, the number of bytes consumed, and any error.
//
// Error mapping:
//   - ErrMissingCapture: the "OggS" pattern is absent at offset 0.
//   - ErrBadVersion: the version byte is not 0.
//   - ErrShortPage: data holds fewer bytes than the header declares. More
//     input may turn this into a successful parse.
//   - ErrBadCRC: structure is intact but the checksum does not match.
func ParsePage(data []byte) (*Page, int, error) {
	if len(data) < 4 {
		if string(data) != capturePattern[:len(data)] {
			return nil, 0, ErrMissingCapture
		}
		return nil, 0, ErrShortPage
	}
	if string(data[0:4]) != capturePattern {
		return nil, 0, ErrMissingCapture
	}
	if len(data) < headerSize {
		return nil, 0, ErrShortPage
	}
	if data[4] != 0 {
		return nil, 0, ErrBadVersion
	}

	p := &Page{
		Version:    data[4],
		HeaderType: data[5],
		GranulePos: binary.LittleEndian.Uint64(data[6:14]),
		Serial:     binary.LittleEndian.Uint32(data[14:18]),
		Sequence:   binary.LittleEndian.Uint32(data[18:22]),
	}
	storedCRC := binary.LittleEndian.Uint32(data[22:26])

	numSegments := int(data[26])
	headerLen := headerSize + numSegments
	if len(data) < headerLen {
		return nil, 0, ErrShortPage
	}

	p.Segments = make([]byte, numSegments)
	copy(p.Segments, data[27:headerLen])

	total := headerLen + p.BodySize()
	if len(data) < total {
		return nil, 0, ErrShortPage
	}

	p.Payload = make([]byte, total-headerLen)
	copy(p.Payload, data[headerLen:total])

	// Verify the checksum over a copy with the CRC field zeroed.
	check := make([]byte, total)
	copy(check, data[:total])
	check[22], check[23], check[24], check[25] = 0, 0, 0, 0
	if crc(check) != storedCRC {
		return nil, 0, ErrBadCRC
	}

	return p, total, nil
}
