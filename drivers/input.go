package drivers

import (
	"sync"

	"github.com/retrohost/retrohost/abi"
)

// ArrayInputDriver holds per-port joypad button state set externally (by a
// test, by a real backend such as drivers/ebitenvideo's InputDriver, or by
// a headless scripted session) and answers INPUT_STATE queries against it,
// including the packed RETRO_DEVICE_ID_JOYPAD_MASK bitmap read.
type ArrayInputDriver struct {
	mu      sync.Mutex
	joypad  map[uint32]uint16 // port -> 16-bit button bitmask
	devices map[uint32]uint32 // port -> bound device type
}

func NewArrayInputDriver() *ArrayInputDriver {
	return &ArrayInputDriver{
		joypad:  make(map[uint32]uint16),
		devices: make(map[uint32]uint32),
	}
}

func (d *ArrayInputDriver) Poll() {}

func (d *ArrayInputDriver) State(port, device, index, id uint32) int16 {
	d.mu.Lock()
	defer d.mu.Unlock()
	if device != abi.DeviceJoypad {
		return 0
	}
	mask := d.joypad[port]
	if id == abi.JoypadMask {
		return int16(mask)
	}
	if id > abi.JoypadR3 {
		return 0
	}
	if mask&(1<<id) != 0 {
		return 1
	}
	return 0
}

func (d *ArrayInputDriver) DeviceCapabilities() uint64 {
	return 1 << abi.DeviceJoypad
}

func (d *ArrayInputDriver) SetControllerPortDevice(port uint32, device uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.devices[port] = device
}

// SetJoypadState installs the full 16-bit button bitmask for one port, e.g.
// (1<<JoypadA)|(1<<JoypadStart) for A+Start held.
func (d *ArrayInputDriver) SetJoypadState(port uint32, mask uint16) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.joypad[port] = mask
}
