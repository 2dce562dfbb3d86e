package ebitenvideo

import (
	"testing"

	"github.com/retrohost/retrohost/abi"
)

func TestExpand5And6(t *testing.T) {
	if got := expand5(0x1f); got != 0xff {
		t.Errorf("expand5(0x1f) = %#x, want 0xff", got)
	}
	if got := expand5(0); got != 0 {
		t.Errorf("expand5(0) = %#x, want 0", got)
	}
	if got := expand6(0x3f); got != 0xff {
		t.Errorf("expand6(0x3f) = %#x, want 0xff", got)
	}
}

func TestDecodeToRGBA_XRGB8888(t *testing.T) {
	// One pixel: B=0x10, G=0x20, R=0x30, X=0xff.
	src := []byte{0x10, 0x20, 0x30, 0xff}
	dst := make([]byte, 4)
	decodeToRGBA(dst, src, 1, 1, 4, abi.PixelFormatXRGB8888)
	want := []byte{0x30, 0x20, 0x10, 0xff}
	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("byte %d: got %#x, want %#x", i, dst[i], want[i])
		}
	}
}

func TestDecodeToRGBA_RGB1555_AllWhite(t *testing.T) {
	// 0b0_11111_11111_11111 = all five-bit channels maxed.
	px := uint16(0x7fff)
	src := []byte{byte(px), byte(px >> 8)}
	dst := make([]byte, 4)
	decodeToRGBA(dst, src, 1, 1, 2, abi.PixelFormatRGB1555)
	for i := 0; i < 3; i++ {
		if dst[i] != 0xff {
			t.Errorf("channel %d: got %#x, want 0xff", i, dst[i])
		}
	}
	if dst[3] != 0xff {
		t.Errorf("alpha: got %#x, want 0xff", dst[3])
	}
}

func TestDecodeToRGBA_UnknownFormatIsNoop(t *testing.T) {
	dst := make([]byte, 4)
	decodeToRGBA(dst, []byte{0, 0}, 1, 1, 2, 99)
	for i, b := range dst {
		if b != 0 {
			t.Errorf("byte %d: expected untouched 0, got %#x", i, b)
		}
	}
}
