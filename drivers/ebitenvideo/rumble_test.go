package ebitenvideo

import "testing"

func TestRumbleDriver_UnboundPortReturnsFalse(t *testing.T) {
	r := NewRumbleDriver()
	if r.SetRumbleState(0, 0, 0xffff) {
		t.Error("expected false for a port with no bound gamepad")
	}
}
