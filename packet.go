package ogg

// Packet is a logical unit of payload data reassembled from one or more
// page segments of a single logical stream.
type Packet struct {
	// Serial identifies the logical stream the packet belongs to.
	Serial uint32

	// Data is the packet payload. It is owned by the Packet and outlives
	// the page(s) it was assembled from.
	Data []byte

	// GranulePos is the granule position of the page on which the packet
	// completed.
	GranulePos uint64

	// BOS is set on the first packet of a logical stream.
	BOS bool

	// EOS is set on the final packet of a logical stream.
	EOS bool

	// Truncated is set when the packet is a partial flush: the stream ended
	// while the packet was still being assembled. Data holds whatever bytes
	// arrived. A truncated packet always has EOS set.
	Truncated bool
}
