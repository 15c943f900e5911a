package ogg

import "fmt"

// WarningKind classifies a recoverable anomaly observed while framing.
type WarningKind int

const (
	// WarnSequenceGap: a page arrived with a sequence number other than the
	// previous number plus one. Pages were lost or reordered upstream.
	// Processing continues.
	WarnSequenceGap WarningKind = iota

	// WarnDiscontinuity: bytes of a partially assembled packet had to be
	// dropped because the expected continuation never arrived. DroppedBytes
	// reports how much data was lost.
	WarnDiscontinuity

	// WarnMissingBOS: the first page seen for a serial number did not carry
	// the beginning-of-stream flag. The stream is tracked anyway.
	WarnMissingBOS

	// WarnTruncatedPacket: the stream ended while a packet was still being
	// assembled. The partial packet is delivered with Packet.Truncated set.
	WarnTruncatedPacket
)

// Warning reports a non-fatal framing anomaly. Warnings are returned to the
// caller rather than logged so that no condition is silently swallowed.
type Warning struct {
	Kind   WarningKind
	Serial uint32

	// Sequence is the sequence number of the page that triggered the warning.
	Sequence uint32

	// ExpectedSequence is the sequence number that was expected
	// (WarnSequenceGap only).
	ExpectedSequence uint32

	// DroppedBytes is the number of buffered bytes discarded
	// (WarnDiscontinuity) or delivered truncated (WarnTruncatedPacket).
	DroppedBytes int
}

func (w Warning) String() string {
	switch w.Kind {
	case WarnSequenceGap:
		return fmt.Sprintf("ogg: stream %d: page sequence gap, expected %d got %d",
			w.Serial, w.ExpectedSequence, w.Sequence)
	case WarnDiscontinuity:
		return fmt.Sprintf("ogg: stream %d: continuation lost at page %d, dropped %d buffered bytes",
			w.Serial, w.Sequence, w.DroppedBytes)
	case WarnMissingBOS:
		return fmt.Sprintf("ogg: stream %d: first page %d lacks beginning-of-stream flag",
			w.Serial, w.Sequence)
	case WarnTruncatedPacket:
		return fmt.Sprintf("ogg: stream %d: stream ended mid-packet, %d bytes delivered truncated",
			w.Serial, w.DroppedBytes)
	}
	return fmt.Sprintf("ogg: stream %d: unknown warning %d", w.Serial, int(w.Kind))
}
