// Package ogg implements the Ogg bitstream framing layer.
//
// This package provides low-level primitives for turning an arbitrary byte
// stream into a sequence of logical-stream packets, and the inverse, per
// RFC 3533 (The Ogg Encapsulation Format Version 0). It deliberately knows
// nothing about the codec data carried inside packets: after demultiplexing
// you hand packets to a decoder, and before multiplexing you obtain packets
// from an encoder.
//
// The Ogg format uses pages as atomic units of data, where each page contains:
//   - A 27-byte header with magic signature "OggS"
//   - A segment table describing packet boundaries
//   - Payload data containing one or more packet fragments
//   - CRC-32 checksum for data integrity verification
//
// # Reading
//
// The read path is bytes -> Syncer -> Page -> Demuxer -> Packet:
//
//	sync := ogg.NewSyncer()
//	demux := ogg.NewDemuxer()
//	sync.Submit(buf)
//	for {
//		page, skipped, err := sync.NextPage()
//		if err != nil {
//			break // ogg.ErrShortPage: submit more bytes
//		}
//		if skipped > 0 {
//			// corruption was skipped to regain sync
//		}
//		packets, warnings := demux.PageIn(page)
//		_ = warnings
//		_ = packets
//	}
//
// The Syncer never treats corruption as terminal: a bad checksum or mangled
// header causes a forward scan for the next capture pattern, and the number
// of bytes discarded is reported alongside the next good page. For callers
// with an io.Reader in hand, Reader wraps the loop above behind a single
// Next method.
//
// # Writing
//
// The write path is Packet -> Muxer -> page bytes:
//
//	mux := ogg.NewMuxer()
//	pages, _ := mux.PacketIn(serial, data, granule)
//	tail, _ := mux.EndStream(serial)
//
// The Muxer laces packets into segments of up to 255 bytes, emits pages at
// the segment-table or body-size limit, numbers pages from zero per logical
// stream and sets the begin/end-of-stream flags. Writer wraps a Muxer around
// an io.Writer.
//
// # Page Structure
//
// An Ogg page has the following structure:
//
//	Bytes 0-3:   "OggS" capture pattern (magic signature)
//	Byte 4:      Stream structure version (always 0)
//	Byte 5:      Header type flags (continuation, BOS, EOS)
//	Bytes 6-13:  Granule position (stream-defined progress marker)
//	Bytes 14-17: Bitstream serial number
//	Bytes 18-21: Page sequence number
//	Bytes 22-25: CRC checksum
//	Byte 26:     Number of segments
//	Bytes 27+:   Segment table (one byte per segment)
//	Remaining:   Page payload data
//
// # Segment Table
//
// Packets are split into segments of up to 255 bytes each. A segment value
// of 255 indicates the packet continues in the next segment (or on the next
// page, when it is the last segment). A value less than 255 marks the end of
// a packet; a packet whose length is an exact multiple of 255 is terminated
// by a zero-length segment.
//
// Example: A 600-byte packet uses segments [255, 255, 90] (255+255+90=600)
//
// # CRC Calculation
//
// Ogg uses CRC-32 with polynomial 0x04C11DB7 (NOT the IEEE polynomial used
// by hash/crc32). The CRC is computed over the entire page with the CRC
// field set to zero.
//
// # Concurrency
//
// Everything here is a synchronous pull-based state machine: nothing blocks
// and nothing runs in the background. A Syncer, Demuxer or Muxer must be
// confined to one goroutine per physical stream session. Independent Stream
// trackers share no state and may be driven in parallel, provided pages are
// handed to them through a channel rather than a shared page value.
//
// # References
//
//   - RFC 3533: The Ogg Encapsulation Format Version 0
//   - RFC 7845: Ogg Encapsulation for the Opus Audio Codec (framing examples)
package ogg
