package drivers

import "sync"

// ArrayMidiDriver buffers MIDI bytes in memory, named in the style of
// original_source's Array-prefixed default drivers (ArrayAudioDriver,
// ArrayVideoDriver). There is no real MIDI device backend in this corpus;
// a host embedding this frontend can swap in its own MIDIDriver.
type ArrayMidiDriver struct {
	mu     sync.Mutex
	in     []byte
	out    []byte
	inOn   bool
	outOn  bool
}

func NewArrayMidiDriver() *ArrayMidiDriver {
	return &ArrayMidiDriver{inOn: true, outOn: true}
}

func (d *ArrayMidiDriver) InputEnabled() bool  { return d.inOn }
func (d *ArrayMidiDriver) OutputEnabled() bool { return d.outOn }

func (d *ArrayMidiDriver) Read() (byte, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.in) == 0 {
		return 0, false
	}
	b := d.in[0]
	d.in = d.in[1:]
	return b, true
}

func (d *ArrayMidiDriver) Write(b byte, deltaTime uint32) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.out = append(d.out, b)
	return true
}

func (d *ArrayMidiDriver) Flush() bool {
	return true
}

// Feed injects bytes as if received from an external MIDI input, for tests
// and for a real backend to push data into.
func (d *ArrayMidiDriver) Feed(data []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.in = append(d.in, data...)
}

// Written returns and clears everything written by the core so far.
func (d *ArrayMidiDriver) Written() []byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := d.out
	d.out = nil
	return out
}
