package otoaudio

import "testing"

func TestAppendInt16(t *testing.T) {
	got := appendInt16(nil, 1, -1)
	want := []byte{1, 0, 0xff, 0xff}
	if len(got) != len(want) {
		t.Fatalf("expected %d bytes, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("byte %d: expected %#x, got %#x", i, want[i], got[i])
		}
	}
}

func TestClampVolume(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{-1, 0},
		{0, 0},
		{1, 1},
		{2, 2},
		{3, 2},
	}
	for _, c := range cases {
		if got := clampVolume(c.in); got != c.want {
			t.Errorf("clampVolume(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}
