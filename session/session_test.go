package session

import "testing"

func TestBytesToInt16(t *testing.T) {
	// Little-endian stereo frame: left=1, right=-1.
	b := []byte{0x01, 0x00, 0xFF, 0xFF}
	got := bytesToInt16(b)
	want := []int16{1, -1}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestBytesToInt16_Empty(t *testing.T) {
	if got := bytesToInt16(nil); len(got) != 0 {
		t.Errorf("expected empty slice, got %v", got)
	}
}
