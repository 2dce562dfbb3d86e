package env

import (
	"testing"
	"unsafe"

	"github.com/retrohost/retrohost/abi"
	"github.com/retrohost/retrohost/drivers"
)

func newTestDriver() (*CompositeEnvironmentDriver, *drivers.ArrayVideoDriver, *drivers.DefaultOptionDriver, *drivers.ArrayInputDriver) {
	c := New()
	video := drivers.NewArrayVideoDriver()
	options := drivers.NewDefaultOptionDriver()
	input := drivers.NewArrayInputDriver()
	c.Video = video
	c.Options = options
	c.Input = input
	return c, video, options, input
}

func TestDispatch_SetPixelFormat(t *testing.T) {
	c, _, _, _ := newTestDriver()

	var format int32 = abi.PixelFormatXRGB8888
	ok := c.Dispatch(abi.EnvSetPixelFormat, uintptr(unsafe.Pointer(&format)))
	if !ok {
		t.Fatal("expected SET_PIXEL_FORMAT to succeed for a valid format")
	}
	if c.State.PixelFormat != abi.PixelFormatXRGB8888 {
		t.Errorf("State.PixelFormat = %d, want %d", c.State.PixelFormat, abi.PixelFormatXRGB8888)
	}
}

func TestDispatch_SetPixelFormat_Invalid(t *testing.T) {
	c, _, _, _ := newTestDriver()

	var format int32 = 99
	if c.Dispatch(abi.EnvSetPixelFormat, uintptr(unsafe.Pointer(&format))) {
		t.Fatal("expected SET_PIXEL_FORMAT to reject an unknown format")
	}
}

func TestDispatch_UnsupportedCommand(t *testing.T) {
	c, _, _, _ := newTestDriver()
	if c.Dispatch(0xDEAD, 0) {
		t.Fatal("expected an unknown command to report unsupported")
	}
}

func TestDispatch_MissingCapabilityReportsUnsupported(t *testing.T) {
	c := New() // no Camera driver wired
	var out byte
	if c.Dispatch(abi.EnvGetCameraInterface, uintptr(unsafe.Pointer(&out))) {
		t.Fatal("expected GET_CAMERA_INTERFACE to report unsupported with no CameraDriver wired")
	}
}

func TestDispatch_OptionDirtyFlag(t *testing.T) {
	c, _, options, _ := newTestDriver()
	options.SetVariables([]abi.Variable{{Key: "foo_option", Value: "1"}})

	var updated bool
	if !c.Dispatch(abi.EnvGetVariableUpdate, uintptr(unsafe.Pointer(&updated))) {
		t.Fatal("GET_VARIABLE_UPDATE should always succeed")
	}
	if !updated {
		t.Fatal("expected the dirty flag to be set immediately after SetVariables")
	}

	var updatedAgain bool
	c.Dispatch(abi.EnvGetVariableUpdate, uintptr(unsafe.Pointer(&updatedAgain)))
	if updatedAgain {
		t.Fatal("expected the dirty flag to be cleared after being read once")
	}
}

func TestDispatch_SetGeometryPreservesTiming(t *testing.T) {
	c, _, _, _ := newTestDriver()
	c.State.SystemAVInfo = abi.SystemAVInfo{
		Geometry: abi.GameGeometry{BaseWidth: 256, BaseHeight: 224},
		Timing:   abi.SystemTiming{FPS: 60, SampleRate: 44100},
	}
	c.State.HaveSystemAVInfo = true

	geom := abi.GameGeometry{BaseWidth: 320, BaseHeight: 240, AspectRatio: 1.33}
	if !c.Dispatch(abi.EnvSetGeometry, uintptr(unsafe.Pointer(&geom))) {
		t.Fatal("SET_GEOMETRY should succeed")
	}

	if c.State.SystemAVInfo.Geometry.BaseWidth != 320 {
		t.Errorf("geometry not updated: got %d", c.State.SystemAVInfo.Geometry.BaseWidth)
	}
	if c.State.SystemAVInfo.Timing.FPS != 60 {
		t.Errorf("SET_GEOMETRY must not alter timing, FPS changed to %v", c.State.SystemAVInfo.Timing.FPS)
	}
}

func TestArrayInputDriver_InputBitmaskExample(t *testing.T) {
	// A (bit 8) + Start (bit 3) held simultaneously packs to
	// (1<<8)|(1<<3) == 264.
	input := drivers.NewArrayInputDriver()
	input.SetJoypadState(0, (1<<abi.JoypadA)|(1<<abi.JoypadStart))

	got := input.State(0, abi.DeviceJoypad, 0, abi.JoypadMask)
	if got != 264 {
		t.Errorf("packed joypad mask = %d, want 264", got)
	}
}

func TestDispatch_GetInputBitmasks(t *testing.T) {
	c, _, _, _ := newTestDriver()

	var out bool
	if !c.Dispatch(abi.EnvGetInputBitmasks, uintptr(unsafe.Pointer(&out))) {
		t.Fatal("GET_INPUT_BITMASKS should report supported with an InputDriver wired")
	}

	c2 := New() // no InputDriver wired
	if c2.Dispatch(abi.EnvGetInputBitmasks, uintptr(unsafe.Pointer(&out))) {
		t.Fatal("GET_INPUT_BITMASKS should report unsupported with no InputDriver wired")
	}
}

func TestDispatch_SetHWSharedContextDoesNotCollideWithSerializationQuirks(t *testing.T) {
	c, _, _, _ := newTestDriver()

	if c.Dispatch(abi.EnvSetHWSharedContext, 0) {
		t.Fatal("SET_HW_SHARED_CONTEXT should report unsupported")
	}

	var quirks uint64 = 0x5
	if !c.Dispatch(abi.EnvSetSerializationQuirks, uintptr(unsafe.Pointer(&quirks))) {
		t.Fatal("SET_SERIALIZATION_QUIRKS should succeed")
	}
	if c.State.SerializationQuirks != 0x5 {
		t.Errorf("SerializationQuirks = %#x, want 0x5; SET_HW_SHARED_CONTEXT must not shadow it", c.State.SerializationQuirks)
	}
}

func TestDispatch_GetCanDupe(t *testing.T) {
	c, _, _, _ := newTestDriver()
	var out bool
	if !c.Dispatch(abi.EnvGetCanDupe, uintptr(unsafe.Pointer(&out))) {
		t.Fatal("GET_CAN_DUPE should always succeed")
	}
	if !out {
		t.Fatal("expected GET_CAN_DUPE to report true")
	}
}
