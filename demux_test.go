package ogg

import (
	"fmt"
	"testing"
)

// TestDemuxerInterleaved routes pages from two interleaved logical streams
// and verifies the packet sequences stay independent and ordered, with no
// cross-contamination.
func TestDemuxerInterleaved(t *testing.T) {
	d := NewDemuxer()

	var pages []*Page
	for seq := uint32(0); seq < 4; seq++ {
		for _, serial := range []uint32{100, 200} {
			flags := byte(0)
			if seq == 0 {
				flags = FlagBOS
			}
			if seq == 3 {
				flags = FlagEOS
			}
			body := []byte(fmt.Sprintf("s%d-p%d", serial, seq))
			pages = append(pages, &Page{
				HeaderType: flags,
				GranulePos: uint64(seq),
				Serial:     serial,
				Sequence:   seq,
				Segments:   appendLacing(nil, len(body)),
				Payload:    body,
			})
		}
	}

	got := map[uint32][]string{}
	for _, p := range pages {
		packets, warnings := d.PageIn(p)
		if len(warnings) != 0 {
			t.Fatalf("unexpected warnings: %v", warnings)
		}
		for _, pkt := range packets {
			got[pkt.Serial] = append(got[pkt.Serial], string(pkt.Data))
		}
	}

	for _, serial := range []uint32{100, 200} {
		want := []string{
			fmt.Sprintf("s%d-p0", serial),
			fmt.Sprintf("s%d-p1", serial),
			fmt.Sprintf("s%d-p2", serial),
			fmt.Sprintf("s%d-p3", serial),
		}
		if len(got[serial]) != len(want) {
			t.Fatalf("stream %d: got %d packets, want %d", serial, len(got[serial]), len(want))
		}
		for i := range want {
			if got[serial][i] != want[i] {
				t.Errorf("stream %d packet %d = %q, want %q", serial, i, got[serial][i], want[i])
			}
		}
	}

	if n := len(d.Streams()); n != 0 {
		t.Errorf("streams still tracked after EOS: %d, want 0", n)
	}
}

// TestDemuxerMissingBOS: a stream whose first page lacks the BOS flag is
// tracked anyway, with a warning.
func TestDemuxerMissingBOS(t *testing.T) {
	d := NewDemuxer()

	packets, warnings := d.PageIn(&Page{
		GranulePos: 1,
		Serial:     42,
		Sequence:   17,
		Segments:   []byte{4},
		Payload:    []byte("late"),
	})

	if len(warnings) != 1 || warnings[0].Kind != WarnMissingBOS {
		t.Fatalf("warnings = %v, want one missing-BOS", warnings)
	}
	if len(packets) != 1 || string(packets[0].Data) != "late" {
		t.Fatalf("packets = %v, want the page's packet despite the warning", packets)
	}
	if n := len(d.Streams()); n != 1 {
		t.Errorf("tracked streams = %d, want 1", n)
	}
}

// TestDemuxerRetire: after EOS the tracker is retired, and a re-appearance
// of the same serial starts a fresh logical stream.
func TestDemuxerRetire(t *testing.T) {
	d := NewDemuxer()

	d.PageIn(&Page{
		HeaderType: FlagBOS | FlagEOS,
		GranulePos: 1,
		Serial:     7,
		Segments:   []byte{1},
		Payload:    []byte("x"),
	})
	if n := len(d.Streams()); n != 0 {
		t.Fatalf("tracked streams after EOS = %d, want 0", n)
	}

	// The serial shows up again: treated as a brand-new logical stream.
	packets, warnings := d.PageIn(&Page{
		HeaderType: FlagBOS,
		GranulePos: 2,
		Serial:     7,
		Sequence:   0,
		Segments:   []byte{1},
		Payload:    []byte("y"),
	})
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none for a clean new BOS", warnings)
	}
	if len(packets) != 1 || string(packets[0].Data) != "y" || !packets[0].BOS {
		t.Fatalf("packets = %v, want fresh BOS packet %q", packets, "y")
	}
}
