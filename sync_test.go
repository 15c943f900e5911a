package ogg

import (
	"bytes"
	"testing"
)

func encodePage(t *testing.T, serial, seq uint32, flags byte, packets ...[]byte) []byte {
	t.Helper()
	page := &Page{
		HeaderType: flags,
		GranulePos: uint64(seq+1) * 960,
		Serial:     serial,
		Sequence:   seq,
	}
	for _, pkt := range packets {
		page.Segments = appendLacing(page.Segments, len(pkt))
		page.Payload = append(page.Payload, pkt...)
	}
	return page.Encode()
}

// TestSyncerBasic submits two clean pages and pulls them back out.
func TestSyncerBasic(t *testing.T) {
	s := NewSyncer()
	s.Submit(encodePage(t, 1, 0, FlagBOS, []byte("A")))
	s.Submit(encodePage(t, 1, 1, FlagEOS, []byte("B")))

	for i, want := range []string{"A", "B"} {
		page, skipped, err := s.NextPage()
		if err != nil {
			t.Fatalf("page %d: NextPage: %v", i, err)
		}
		if skipped != 0 {
			t.Errorf("page %d: skipped = %d, want 0", i, skipped)
		}
		if string(page.Payload) != want {
			t.Errorf("page %d: payload = %q, want %q", i, page.Payload, want)
		}
	}

	if _, _, err := s.NextPage(); err != ErrShortPage {
		t.Errorf("drained syncer err = %v, want ErrShortPage", err)
	}
	if s.Buffered() != 0 {
		t.Errorf("Buffered() = %d, want 0", s.Buffered())
	}
}

// TestSyncerIncrementalFeed submits a page one byte at a time. NextPage must
// keep answering "need more data" without losing state, then produce the
// page once the final byte lands.
func TestSyncerIncrementalFeed(t *testing.T) {
	encoded := encodePage(t, 7, 0, FlagBOS, bytes.Repeat([]byte{0xAB}, 300))

	s := NewSyncer()
	for i, b := range encoded {
		if i < len(encoded)-1 {
			s.Submit([]byte{b})
			if _, _, err := s.NextPage(); err != ErrShortPage {
				t.Fatalf("after %d bytes: err = %v, want ErrShortPage", i+1, err)
			}
			continue
		}
		s.Submit([]byte{b})
	}

	page, skipped, err := s.NextPage()
	if err != nil {
		t.Fatalf("NextPage after full feed: %v", err)
	}
	if skipped != 0 {
		t.Errorf("skipped = %d, want 0", skipped)
	}
	if len(page.Payload) != 300 {
		t.Errorf("payload length = %d, want 300", len(page.Payload))
	}
}

// TestSyncerResync inserts garbage between two valid pages and verifies
// both pages are recovered with the skipped count reported exactly.
func TestSyncerResync(t *testing.T) {
	const garbageLen = 137
	garbage := bytes.Repeat([]byte{0x55}, garbageLen) // no 'O' anywhere

	first := encodePage(t, 3, 0, FlagBOS, []byte("before"))
	second := encodePage(t, 3, 1, 0, []byte("after"))

	var stream []byte
	stream = append(stream, first...)
	stream = append(stream, garbage...)
	stream = append(stream, second...)

	s := NewSyncer()
	s.Submit(stream)

	page, skipped, err := s.NextPage()
	if err != nil || skipped != 0 {
		t.Fatalf("first page: err=%v skipped=%d", err, skipped)
	}
	if string(page.Payload) != "before" {
		t.Errorf("first payload = %q", page.Payload)
	}

	page, skipped, err = s.NextPage()
	if err != nil {
		t.Fatalf("second page: %v", err)
	}
	if skipped != garbageLen {
		t.Errorf("skipped = %d, want %d", skipped, garbageLen)
	}
	if string(page.Payload) != "after" {
		t.Errorf("second payload = %q", page.Payload)
	}
	if s.Skipped() != garbageLen {
		t.Errorf("Skipped() = %d, want %d", s.Skipped(), garbageLen)
	}
}

// TestSyncerResyncFalseCapture buries a fake "OggS" inside the garbage run.
// The scan must reject the imposter (its checksum cannot verify) and still
// find the real page, counting every garbage byte as skipped.
func TestSyncerResyncFalseCapture(t *testing.T) {
	garbage := append(bytes.Repeat([]byte{0x11}, 40), []byte("OggS")...)
	garbage = append(garbage, bytes.Repeat([]byte{0x22}, 40)...)

	real := encodePage(t, 9, 0, FlagBOS, []byte("real page"))

	s := NewSyncer()
	s.Submit(garbage)
	s.Submit(real)

	page, skipped, err := s.NextPage()
	if err != nil {
		t.Fatalf("NextPage: %v", err)
	}
	if skipped != len(garbage) {
		t.Errorf("skipped = %d, want %d", skipped, len(garbage))
	}
	if string(page.Payload) != "real page" {
		t.Errorf("payload = %q", page.Payload)
	}
}

// TestSyncerCorruptPage corrupts the first page's checksum. The page must
// be skipped in full and the second page recovered.
func TestSyncerCorruptPage(t *testing.T) {
	first := encodePage(t, 5, 0, FlagBOS, []byte("doomed"))
	first[len(first)-1] ^= 0xFF
	second := encodePage(t, 5, 1, 0, []byte("survivor"))

	s := NewSyncer()
	s.Submit(first)
	s.Submit(second)

	page, skipped, err := s.NextPage()
	if err != nil {
		t.Fatalf("NextPage: %v", err)
	}
	if string(page.Payload) != "survivor" {
		t.Errorf("payload = %q, want %q", page.Payload, "survivor")
	}
	if skipped != len(first) {
		t.Errorf("skipped = %d, want %d", skipped, len(first))
	}
}

// TestSyncerResyncLimit configures a small scan cap and overruns it.
func TestSyncerResyncLimit(t *testing.T) {
	s := NewSyncer(WithMaxResyncDistance(64))
	s.Submit(bytes.Repeat([]byte{0x77}, 500))

	_, _, err := s.NextPage()
	if err != ErrResyncLimit {
		t.Fatalf("err = %v, want ErrResyncLimit", err)
	}
}

// TestSyncerSplitCapture splits a page across Submit calls in the middle of
// the capture pattern, preceded by garbage. The retained-tail logic must
// not discard the partial pattern.
func TestSyncerSplitCapture(t *testing.T) {
	encoded := encodePage(t, 2, 0, FlagBOS, []byte("split"))

	s := NewSyncer()
	s.Submit(bytes.Repeat([]byte{0x99}, 20))
	s.Submit(encoded[:2]) // "Og"
	if _, _, err := s.NextPage(); err != ErrShortPage {
		t.Fatalf("mid-pattern err = %v, want ErrShortPage", err)
	}
	s.Submit(encoded[2:])

	page, skipped, err := s.NextPage()
	if err != nil {
		t.Fatalf("NextPage: %v", err)
	}
	if string(page.Payload) != "split" {
		t.Errorf("payload = %q", page.Payload)
	}
	if skipped < 0 || s.Skipped() != 20 {
		t.Errorf("total skipped = %d, want 20", s.Skipped())
	}
}

// TestSyncerReset verifies a Syncer is reusable after Reset.
func TestSyncerReset(t *testing.T) {
	s := NewSyncer()
	s.Submit([]byte("partial garbage that will be discarded"))
	s.Reset()

	if s.Buffered() != 0 || s.Skipped() != 0 {
		t.Fatalf("Reset left state: buffered=%d skipped=%d", s.Buffered(), s.Skipped())
	}

	s.Submit(encodePage(t, 4, 0, FlagBOS, []byte("fresh")))
	page, _, err := s.NextPage()
	if err != nil {
		t.Fatalf("NextPage after Reset: %v", err)
	}
	if string(page.Payload) != "fresh" {
		t.Errorf("payload = %q", page.Payload)
	}
}
