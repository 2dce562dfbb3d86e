package drivers

import "sync"

// NullMicrophoneDriver opens mic handles that never produce samples. Audio
// capture hardware access isn't portable in the standard library and no
// example repo in the corpus depends on a capture library, so this is the
// baseline a real audio backend (e.g. drivers/otoaudio, if extended to
// capture) would replace.
type NullMicrophoneDriver struct {
	mu   sync.Mutex
	next int
	open map[int]bool
}

func NewNullMicrophoneDriver() *NullMicrophoneDriver {
	return &NullMicrophoneDriver{open: make(map[int]bool)}
}

func (d *NullMicrophoneDriver) OpenMic(rate uint32) (int, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.next++
	d.open[d.next] = true
	return d.next, true
}

func (d *NullMicrophoneDriver) CloseMic(id int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.open, id)
}

func (d *NullMicrophoneDriver) ReadMic(id int, buf []int16) int {
	return 0
}

func (d *NullMicrophoneDriver) SetMicState(id int, enabled bool) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.open[id]
	return ok
}
