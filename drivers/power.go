package drivers

import "github.com/retrohost/retrohost/abi"

// DefaultPowerDriver reports a fixed "plugged in, no battery" state. Go's
// standard library has no portable battery API, and none of the retrieved
// example repos depend on one, so this is a deliberately static answer a
// host can override with its own PowerDriver.
type DefaultPowerDriver struct{}

func (DefaultPowerDriver) DevicePower() (abi.DevicePower, bool) {
	return abi.DevicePower{State: 1, Seconds: -1, Percent: -1}, true
}
