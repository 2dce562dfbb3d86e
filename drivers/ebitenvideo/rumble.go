package ebitenvideo

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// rumbleDuration is how long each SET_RUMBLE_STATE effect is told to run;
// libretro has no "stop" message, only "set strength", so every call is
// re-issued as a short pulse and cores that want sustained rumble simply
// call this every frame.
const rumbleDuration = 100 * time.Millisecond

// RumbleDriver forwards GET_RUMBLE_INTERFACE requests to whichever ebiten
// gamepad is bound to the requesting port.
type RumbleDriver struct {
	// PortGamepad maps a libretro port to the ebiten.GamepadID bound to it,
	// populated by whatever code pairs controllers to ports (not this
	// package's concern).
	PortGamepad map[uint32]ebiten.GamepadID
}

// NewRumbleDriver returns a RumbleDriver with no ports bound.
func NewRumbleDriver() *RumbleDriver {
	return &RumbleDriver{PortGamepad: make(map[uint32]ebiten.GamepadID)}
}

// SetRumbleState implements drivers.RumbleDriver. effect distinguishes weak
// (RETRO_RUMBLE_WEAK, 0) from strong (RETRO_RUMBLE_STRONG, 1) motors;
// strength is a 16-bit magnitude the core scales itself.
func (r *RumbleDriver) SetRumbleState(port uint32, effect int, strength uint16) bool {
	id, ok := r.PortGamepad[port]
	if !ok {
		return false
	}

	magnitude := float64(strength) / 0xffff
	op := &ebiten.VibrateGamepadOptions{Duration: rumbleDuration}
	if effect == 1 {
		op.StrongMagnitude = magnitude
	} else {
		op.WeakMagnitude = magnitude
	}
	return ebiten.VibrateGamepad(id, op) == nil
}
