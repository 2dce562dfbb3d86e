package drivers

import (
	"sync"

	"github.com/retrohost/retrohost/abi"
)

// NullSensorDriver acknowledges sensor enable/disable requests but always
// reports zero readings, so a core that probes for sensor support degrades
// gracefully instead of crashing on a missing interface.
type NullSensorDriver struct {
	mu      sync.Mutex
	enabled map[uint32]bool
}

func NewNullSensorDriver() *NullSensorDriver {
	return &NullSensorDriver{enabled: make(map[uint32]bool)}
}

func (d *NullSensorDriver) SetSensorState(port uint32, action abi.SensorAction, rate uint32) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	switch action {
	case abi.SensorActionAccelerometerEnable, abi.SensorActionGyroscopeEnable, abi.SensorActionIlluminanceEnable:
		d.enabled[port] = true
	case abi.SensorActionAccelerometerDisable, abi.SensorActionGyroscopeDisable, abi.SensorActionIlluminanceDisable:
		d.enabled[port] = false
	}
	return true
}

func (d *NullSensorDriver) GetSensorInput(port uint32, id uint32) float32 {
	return 0
}
