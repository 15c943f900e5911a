package ogg

import (
	"io"
	"math/rand"
	"sort"
)

// NewSerial returns a random serial number for a new logical stream.
// Serial numbers only need to be distinct within one physical stream;
// callers multiplexing several streams should still check for collisions.
func NewSerial() uint32 {
	return rand.Uint32()
}

// Writer is the push-based convenience layer over Muxer: packets go in,
// encoded pages land on the underlying io.Writer.
type Writer struct {
	w   io.Writer
	mux *Muxer
}

// NewWriter returns a Writer emitting pages to w. Muxer options (such as
// WithMaxPageBody) apply to the underlying Muxer.
func NewWriter(w io.Writer, opts ...MuxerOption) *Writer {
	return &Writer{
		w:   w,
		mux: NewMuxer(opts...),
	}
}

// WritePacket adds one packet to the given logical stream, writing out any
// pages the packet completed.
func (ow *Writer) WritePacket(serial uint32, data []byte, granule uint64) error {
	pages, err := ow.mux.PacketIn(serial, data, granule)
	if err != nil {
		return err
	}
	return ow.writePages(pages)
}

// Flush forces out all pending undersized pages.
func (ow *Writer) Flush() error {
	return ow.writePages(ow.mux.Flush())
}

// CloseStream ends one logical stream, writing its final end-of-stream page.
func (ow *Writer) CloseStream(serial uint32) error {
	pages, err := ow.mux.EndStream(serial)
	if err != nil {
		return err
	}
	return ow.writePages(pages)
}

// Close ends every open logical stream. The Writer should not be used
// afterwards; the underlying io.Writer is not closed.
func (ow *Writer) Close() error {
	serials := make([]uint32, 0, len(ow.mux.streams))
	for serial, st := range ow.mux.streams {
		if !st.closed {
			serials = append(serials, serial)
		}
	}
	sort.Slice(serials, func(i, j int) bool { return serials[i] < serials[j] })

	for _, serial := range serials {
		if err := ow.CloseStream(serial); err != nil {
			return err
		}
	}
	return nil
}

func (ow *Writer) writePages(pages [][]byte) error {
	for _, page := range pages {
		if _, err := ow.w.Write(page); err != nil {
			return err
		}
	}
	return nil
}
