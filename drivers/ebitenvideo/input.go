package ebitenvideo

import (
	"sync"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/retrohost/retrohost/abi"
)

// gamepadAxisDeadzone is the stick deflection past which an analog axis
// counts as a digital d-pad press, matching a cli.Runner's keyboard+gamepad
// fallback scheme.
const gamepadAxisDeadzone = 0.5

// InputDriver polls keyboard and gamepad state once per frame and answers
// INPUT_STATE against the snapshot, generalized from a cli.Runner's fixed
// up/down/left/right/btn1/btn2 scheme to the full RETRO_DEVICE_JOYPAD button
// set on port 0.
type InputDriver struct {
	mu      sync.Mutex
	joypad  map[uint32]uint16
	devices map[uint32]uint32
}

// NewInputDriver returns an InputDriver with no buttons held.
func NewInputDriver() *InputDriver {
	return &InputDriver{
		joypad:  make(map[uint32]uint16),
		devices: make(map[uint32]uint32),
	}
}

// Poll snapshots keyboard and every connected standard-layout gamepad into
// port 0's button mask.
func (d *InputDriver) Poll() {
	var mask uint16

	keys := map[int]bool{
		abi.JoypadUp:     ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		abi.JoypadDown:   ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		abi.JoypadLeft:   ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		abi.JoypadRight:  ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		abi.JoypadB:      ebiten.IsKeyPressed(ebiten.KeyZ) || ebiten.IsKeyPressed(ebiten.KeyJ),
		abi.JoypadA:      ebiten.IsKeyPressed(ebiten.KeyX) || ebiten.IsKeyPressed(ebiten.KeyK),
		abi.JoypadY:      ebiten.IsKeyPressed(ebiten.KeyC),
		abi.JoypadX:      ebiten.IsKeyPressed(ebiten.KeyV),
		abi.JoypadL:      ebiten.IsKeyPressed(ebiten.KeyQ),
		abi.JoypadR:      ebiten.IsKeyPressed(ebiten.KeyE),
		abi.JoypadSelect: ebiten.IsKeyPressed(ebiten.KeyBackspace),
		abi.JoypadStart:  ebiten.IsKeyPressed(ebiten.KeyEnter),
	}
	for id, held := range keys {
		if held {
			mask |= 1 << uint(id)
		}
	}

	for _, id := range ebiten.AppendGamepadIDs(nil) {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}

		pad := map[int]bool{
			abi.JoypadUp:     ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftTop),
			abi.JoypadDown:   ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftBottom),
			abi.JoypadLeft:   ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftLeft),
			abi.JoypadRight:  ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftRight),
			abi.JoypadB:      ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom),
			abi.JoypadA:      ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightRight),
			abi.JoypadY:      ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightLeft),
			abi.JoypadX:      ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightTop),
			abi.JoypadL:      ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonFrontTopLeft),
			abi.JoypadR:      ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonFrontTopRight),
			abi.JoypadL2:     ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonFrontBottomLeft),
			abi.JoypadR2:     ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonFrontBottomRight),
			abi.JoypadSelect: ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonCenterLeft),
			abi.JoypadStart:  ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonCenterRight),
			abi.JoypadL3:     ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftStick),
			abi.JoypadR3:     ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightStick),
		}
		for bid, held := range pad {
			if held {
				mask |= 1 << uint(bid)
			}
		}

		axisX := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		axisY := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if axisX < -gamepadAxisDeadzone {
			mask |= 1 << abi.JoypadLeft
		}
		if axisX > gamepadAxisDeadzone {
			mask |= 1 << abi.JoypadRight
		}
		if axisY < -gamepadAxisDeadzone {
			mask |= 1 << abi.JoypadUp
		}
		if axisY > gamepadAxisDeadzone {
			mask |= 1 << abi.JoypadDown
		}
	}

	d.mu.Lock()
	d.joypad[0] = mask
	d.mu.Unlock()
}

func (d *InputDriver) State(port, device, index, id uint32) int16 {
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

func (d *InputDriver) DeviceCapabilities() uint64 {
	return 1 << abi.DeviceJoypad
}

func (d *InputDriver) SetControllerPortDevice(port uint32, device uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.devices[port] = device
}
