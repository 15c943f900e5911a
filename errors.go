package ogg

import "errors"

// Package-level errors for Ogg framing.
//
// ErrMissingCapture, ErrBadVersion and ErrBadCRC are fatal to one page only:
// the Syncer responds by scanning forward for the next capture pattern, and
// the session continues. ErrShortPage is not a failure at all, it asks the
// caller for more bytes. ErrResyncLimit terminates a session.
var (
	// ErrMissingCapture indicates the "OggS" capture pattern is absent at
	// the expected offset.
	ErrMissingCapture = errors.New("ogg: capture pattern not found")

	// ErrBadVersion indicates the stream structure version byte is not 0.
	ErrBadVersion = errors.New("ogg: unsupported stream structure version")

	// ErrShortPage indicates fewer bytes are available than the page header
	// declares. When decoding from a stream this means "need more data".
	ErrShortPage = errors.New("ogg: not enough data for a complete page")

	// ErrBadCRC indicates the page CRC checksum does not match the computed
	// value. This typically indicates data corruption.
	ErrBadCRC = errors.New("ogg: page CRC mismatch")

	// ErrResyncLimit indicates the Syncer scanned more bytes than the
	// configured maximum resync distance without finding a valid page.
	ErrResyncLimit = errors.New("ogg: resync scan exceeded configured limit")

	// ErrWrongSerial indicates a page was handed to a Stream tracking a
	// different logical stream.
	ErrWrongSerial = errors.New("ogg: page serial does not match stream")

	// ErrStreamClosed indicates an operation on a logical stream that has
	// already seen its end-of-stream page.
	ErrStreamClosed = errors.New("ogg: logical stream already ended")

	// ErrUnknownStream indicates a mux operation on a serial number that has
	// no packets yet.
	ErrUnknownStream = errors.New("ogg: unknown logical stream")
)
