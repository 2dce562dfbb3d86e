package drivers

import (
	"sync"

	"github.com/retrohost/retrohost/abi"
)

// DictLedDriver keeps LED state in a plain map, named after
// original_source's DictLedDriver.
type DictLedDriver struct {
	mu    sync.Mutex
	state map[int]int
}

func NewDictLedDriver() *DictLedDriver {
	return &DictLedDriver{state: make(map[int]int)}
}

func (d *DictLedDriver) SetLEDState(led int, state int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state[led] = state
}

func (d *DictLedDriver) Snapshot() abi.LEDState {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make(abi.LEDState, len(d.state))
	for k, v := range d.state {
		out[k] = v
	}
	return out
}
