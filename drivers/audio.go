package drivers

import "sync"

// ArrayAudioDriver appends every sample it receives to an in-memory buffer,
// named after original_source's ArrayAudioDriver. A real output backend
// (drivers/otoaudio.Player) is a separate AudioDriver that replaces this one
// through Session.SetAudio; tests can read this buffer directly to assert on
// produced PCM data.
type ArrayAudioDriver struct {
	mu      sync.Mutex
	samples []int16
}

func NewArrayAudioDriver() *ArrayAudioDriver {
	return &ArrayAudioDriver{}
}

func (d *ArrayAudioDriver) Sample(left, right int16) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.samples = append(d.samples, left, right)
}

func (d *ArrayAudioDriver) SampleBatch(data []int16, frames int) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := frames * 2
	if n > len(data) {
		n = len(data)
	}
	d.samples = append(d.samples, data[:n]...)
	return n / 2
}

// Drain returns and clears everything buffered so far, as interleaved
// stereo s16 samples.
func (d *ArrayAudioDriver) Drain() []int16 {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := d.samples
	d.samples = nil
	return out
}
