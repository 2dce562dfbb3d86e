// Package otoaudio drains a Session's audio callbacks straight to the OS
// sound device via github.com/ebitengine/oto/v3, the real-output
// counterpart to drivers.ArrayAudioDriver's in-memory buffer.
package otoaudio

import (
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// ringBufferCapacity is ~170ms at 48kHz stereo 16-bit.
const ringBufferCapacity = 32768

// Player implements drivers.AudioDriver by pushing PCM samples into a ring
// buffer that an oto.Player pulls from in its own callback goroutine. A
// core's audio thread never blocks on the OS audio device: Sample and
// SampleBatch only ever write to the ring, which drops its oldest frames
// under sustained overflow rather than stalling retro_run.
type Player struct {
	player *oto.Player
	ring   *RingBuffer

	mu    sync.Mutex
	bytes []byte // reused int16-to-byte scratch buffer
}

var (
	ctxOnce sync.Once
	ctx     *oto.Context
	ctxErr  error
)

func ensureContext(sampleRate int) (*oto.Context, error) {
	ctxOnce.Do(func() {
		ready := make(chan struct{})
		var c chan struct{}
		ctx, c, ctxErr = oto.NewContext(&oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: 2,
			Format:       oto.FormatSignedInt16LE,
			BufferSize:   50 * time.Millisecond,
		})
		if ctxErr != nil {
			close(ready)
			return
		}
		<-c
		close(ready)
	})
	return ctx, ctxErr
}

// NewPlayer opens an oto playback stream at sampleRate (typically the
// core's negotiated SystemTiming.SampleRate) with the given initial volume,
// 0.0-2.0. The oto context is process-global and initialized at most once;
// every Player after the first reuses it at whatever rate it was opened
// with.
func NewPlayer(sampleRate int, volume float64) (*Player, error) {
	oc, err := ensureContext(sampleRate)
	if err != nil {
		return nil, fmt.Errorf("otoaudio: context init: %w", err)
	}

	ring := NewRingBuffer(ringBufferCapacity)
	player := oc.NewPlayer(ring)
	player.SetBufferSize(19200)
	player.SetVolume(clampVolume(volume))
	player.Play()

	return &Player{player: player, ring: ring}, nil
}

func clampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 2.0 {
		return 2.0
	}
	return v
}

// Sample implements drivers.AudioDriver.
func (p *Player) Sample(left, right int16) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.bytes = appendInt16(p.bytes[:0], left, right)
	p.ring.Write(p.bytes)
}

// SampleBatch implements drivers.AudioDriver.
func (p *Player) SampleBatch(data []int16, frames int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := frames * 2
	if n > len(data) {
		n = len(data)
	}
	p.bytes = p.bytes[:0]
	for _, s := range data[:n] {
		p.bytes = appendInt16(p.bytes, s)
	}
	p.ring.Write(p.bytes)
	return n / 2
}

func appendInt16(b []byte, samples ...int16) []byte {
	for _, s := range samples {
		b = append(b, byte(s), byte(s>>8))
	}
	return b
}

// SetVolume adjusts playback volume, 0.0 (silent) to 2.0 (double gain).
func (p *Player) SetVolume(v float64) { p.player.SetVolume(clampVolume(v)) }

// BufferedBytes reports how much PCM is queued (ring plus oto's own player
// buffer), useful for a caller pacing frame delivery against audio drift.
func (p *Player) BufferedBytes() int {
	return p.ring.Buffered() + p.player.BufferedSize()
}

// ClearQueue discards queued-but-unplayed audio, e.g. when a caller resets
// or rewinds the core and stale samples would otherwise play back.
func (p *Player) ClearQueue() { p.ring.Clear() }

// Close stops playback and releases the oto player. The shared oto.Context
// is left running since other Players may still be using it.
func (p *Player) Close() {
	p.ring.Close()
	p.player.Close()
}
