package abi

import (
	"unsafe"

	"github.com/ebitengine/purego"
)

// Callbacks holds the purego trampolines a Core Handle hands to a core via
// retro_set_{environment,video_refresh,audio_sample,audio_sample_batch,
// input_poll,input_state}. Each trampoline is a distinct C-callable function
// pointer bound to this particular instance's Go closures, so two Sessions
// loading the same core binary concurrently never share trampoline state.
type Callbacks struct {
	Environment      func(cmd uint32, data uintptr) bool
	VideoRefresh     func(data uintptr, width, height uint32, pitch uintptr)
	AudioSample      func(left, right int16)
	AudioSampleBatch func(data uintptr, frames uintptr) uintptr
	InputPoll        func()
	InputState       func(port, device, index, id uint32) int16

	environmentPtr      uintptr
	videoRefreshPtr     uintptr
	audioSamplePtr      uintptr
	audioSampleBatchPtr uintptr
	inputPollPtr        uintptr
	inputStatePtr       uintptr
}

// NewCallbacks builds one set of trampolines. The function fields must be
// assigned by the caller (typically corehandle or env) before Bind is
// called; Bind wraps each one in a closure and registers that closure with
// purego.NewCallback.
func NewCallbacks() *Callbacks {
	return &Callbacks{}
}

// Bind registers each non-nil callback field with purego and stores the
// resulting trampoline addresses, which EnvironmentPtr, VideoRefreshPtr and
// the other *Ptr accessors return. Call exactly once, after
// Environment/VideoRefresh/etc. have been assigned, and before retro_init.
func (c *Callbacks) Bind() {
	if c.Environment != nil {
		fn := c.Environment
		c.environmentPtr = purego.NewCallback(func(cmd uint32, data uintptr) uintptr {
			if fn(cmd, data) {
				return 1
			}
			return 0
		})
	}
	if c.VideoRefresh != nil {
		fn := c.VideoRefresh
		c.videoRefreshPtr = purego.NewCallback(func(data uintptr, width, height uint32, pitch uintptr) uintptr {
			fn(data, width, height, pitch)
			return 0
		})
	}
	if c.AudioSample != nil {
		fn := c.AudioSample
		c.audioSamplePtr = purego.NewCallback(func(left, right int16) uintptr {
			fn(left, right)
			return 0
		})
	}
	if c.AudioSampleBatch != nil {
		fn := c.AudioSampleBatch
		c.audioSampleBatchPtr = purego.NewCallback(func(data uintptr, frames uintptr) uintptr {
			return fn(data, frames)
		})
	}
	if c.InputPoll != nil {
		fn := c.InputPoll
		c.inputPollPtr = purego.NewCallback(func() uintptr {
			fn()
			return 0
		})
	}
	if c.InputState != nil {
		fn := c.InputState
		c.inputStatePtr = purego.NewCallback(func(port, device, index, id uint32) uintptr {
			return uintptr(uint16(fn(port, device, index, id)))
		})
	}
}

// EnvironmentPtr, VideoRefreshPtr, etc. expose the bound trampolines for
// EntryPoints.SetEnvironment and friends. Zero means the callback was never
// assigned (the core simply won't be given that setter).
func (c *Callbacks) EnvironmentPtr() uintptr      { return c.environmentPtr }
func (c *Callbacks) VideoRefreshPtr() uintptr     { return c.videoRefreshPtr }
func (c *Callbacks) AudioSamplePtr() uintptr      { return c.audioSamplePtr }
func (c *Callbacks) AudioSampleBatchPtr() uintptr { return c.audioSampleBatchPtr }
func (c *Callbacks) InputPollPtr() uintptr        { return c.inputPollPtr }
func (c *Callbacks) InputStatePtr() uintptr       { return c.inputStatePtr }

// ReadBytes copies length bytes starting at a raw pointer handed across the
// ABI boundary (e.g. a video_refresh framebuffer, or audio_sample_batch PCM
// data) into a Go-owned slice. Every driver that touches core memory goes
// through this helper instead of using unsafe directly.
func ReadBytes(ptr uintptr, length int) []byte {
	if ptr == 0 || length <= 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(ptr)), length)
}

// CString reads a NUL-terminated C string at ptr. Returns "" for a nil
// pointer, matching libretro's convention that optional char* fields are
// left null rather than pointing at an empty string.
func CString(ptr uintptr) string {
	if ptr == 0 {
		return ""
	}
	return unsafe.String((*byte)(unsafe.Pointer(ptr)), cStrLen(ptr))
}

func cStrLen(ptr uintptr) int {
	n := 0
	for {
		b := *(*byte)(unsafe.Pointer(ptr + uintptr(n)))
		if b == 0 {
			return n
		}
		n++
	}
}
