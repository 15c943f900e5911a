package ogg

import (
	"testing"
)

// TestCRC verifies the Ogg CRC-32 implementation properties.
// The implementation uses polynomial 0x04C11DB7 (not IEEE).
func TestCRC(t *testing.T) {
	// Verify empty data returns 0.
	t.Run("empty", func(t *testing.T) {
		got := crc([]byte{})
		if got != 0 {
			t.Errorf("crc([]) = 0x%08x, want 0", got)
		}
	})

	// Verify update produces same result as full computation.
	t.Run("update consistency", func(t *testing.T) {
		data := []byte("hello world")
		full := crc(data)
		partial := crcUpdate(crc(data[:5]), data[5:])
		if full != partial {
			t.Errorf("crcUpdate inconsistent: full=0x%08x, partial=0x%08x", full, partial)
		}
	})

	// Known answer for the capture pattern itself. The IEEE polynomial
	// would produce a different value here.
	t.Run("known answer", func(t *testing.T) {
		got := crc([]byte("OggS"))
		expected := uint32(0x5fb0a94f)
		if got != expected {
			t.Errorf("crc(OggS) = 0x%08x, want 0x%08x", got, expected)
		}
	})

	// Verify CRC changes when data changes (detect corruption).
	t.Run("corruption detection", func(t *testing.T) {
		data := []byte("OggS test data for CRC")
		original := crc(data)

		corrupted := make([]byte, len(data))
		copy(corrupted, data)
		corrupted[10] ^= 0x01 // Flip one bit

		if original == crc(corrupted) {
			t.Errorf("CRC did not detect corruption")
		}
	})
}
