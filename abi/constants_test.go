package abi

import "testing"

func TestBytesPerPixel(t *testing.T) {
	tests := []struct {
		name   string
		format int
		want   int
	}{
		{"rgb1555", PixelFormatRGB1555, 2},
		{"xrgb8888", PixelFormatXRGB8888, 4},
		{"rgb565", PixelFormatRGB565, 2},
		{"unknown", 99, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BytesPerPixel(tt.format); got != tt.want {
				t.Errorf("BytesPerPixel(%d) = %d, want %d", tt.format, got, tt.want)
			}
		})
	}
}

func TestCommandBase(t *testing.T) {
	tests := []struct {
		name string
		cmd  uint32
		want uint32
	}{
		{"plain", EnvSetPixelFormat, EnvSetPixelFormat},
		{"experimental bit stripped", EnvGetSensorInterface | EnvExperimental, EnvGetSensorInterface},
		{"private bit stripped", EnvPrivate | 5, 5},
		{"both bits stripped", EnvExperimental | EnvPrivate | 10, 10},
		{"hw shared context masks to the serialization quirks value", EnvSetHWSharedContext, EnvSetSerializationQuirks},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CommandBase(tt.cmd); got != tt.want {
				t.Errorf("CommandBase(%#x) = %d, want %d", tt.cmd, got, tt.want)
			}
		})
	}
}

func TestJoypadMaskIsDistinctFromButtonIDs(t *testing.T) {
	buttons := []int{JoypadB, JoypadY, JoypadSelect, JoypadStart, JoypadUp, JoypadDown,
		JoypadLeft, JoypadRight, JoypadA, JoypadX, JoypadL, JoypadR, JoypadL2, JoypadR2, JoypadL3, JoypadR3}
	for _, b := range buttons {
		if b == JoypadMask {
			t.Fatalf("button id %d collides with JoypadMask", b)
		}
	}
}
