package ebitenvideo

import (
	"testing"

	"github.com/retrohost/retrohost/abi"
)

func TestInputDriver_StateReadsJoypadMask(t *testing.T) {
	d := NewInputDriver()
	d.joypad[0] = 1<<abi.JoypadA | 1<<abi.JoypadUp

	if got := d.State(0, abi.DeviceJoypad, 0, abi.JoypadA); got != 1 {
		t.Errorf("JoypadA: got %d, want 1", got)
	}
	if got := d.State(0, abi.DeviceJoypad, 0, abi.JoypadB); got != 0 {
		t.Errorf("JoypadB: got %d, want 0", got)
	}
	if got := d.State(0, abi.DeviceJoypad, 0, abi.JoypadMask); got != int16(1<<abi.JoypadA|1<<abi.JoypadUp) {
		t.Errorf("JoypadMask: got %d, want %d", got, 1<<abi.JoypadA|1<<abi.JoypadUp)
	}
}

func TestInputDriver_StateIgnoresNonJoypadDevice(t *testing.T) {
	d := NewInputDriver()
	d.joypad[0] = 1 << abi.JoypadA
	if got := d.State(0, abi.DeviceMouse, 0, abi.JoypadA); got != 0 {
		t.Errorf("expected 0 for non-joypad device, got %d", got)
	}
}

func TestInputDriver_DeviceCapabilities(t *testing.T) {
	d := NewInputDriver()
	if got := d.DeviceCapabilities(); got != 1<<abi.DeviceJoypad {
		t.Errorf("got %#x, want %#x", got, uint64(1<<abi.DeviceJoypad))
	}
}

func TestInputDriver_SetControllerPortDevice(t *testing.T) {
	d := NewInputDriver()
	d.SetControllerPortDevice(1, abi.DeviceAnalog)
	if d.devices[1] != abi.DeviceAnalog {
		t.Errorf("expected port 1 bound to DeviceAnalog, got %d", d.devices[1])
	}
}
