// Package env implements the Composite Environment Driver: the single
// environment(cmd, data) callback every libretro core calls into, fanning
// each command out to whichever optional capability driver handles it and
// tracking the pieces of negotiated state a core expects to persist across
// calls (pixel format, rotation, geometry/timing, option protocol version,
// and so on).
package env

import (
	"sync"

	"github.com/retrohost/retrohost/abi"
	"github.com/retrohost/retrohost/drivers"
)

// State is the environment state a Composite Environment Driver tracks on
// behalf of a loaded core, independent of which optional drivers are wired
// in.
type State struct {
	mu sync.Mutex

	PixelFormat        int
	Rotation           int
	PerformanceLevel   int
	SystemAVInfo       abi.SystemAVInfo
	HaveSystemAVInfo   bool
	InputDescriptors   []abi.InputDescriptor
	ControllerPortMap  map[uint32]uint32
	SubsystemInfo      []abi.SubsystemInfo
	ContentOverrides   []drivers.ContentInfoOverride
	SupportNoGame      bool
	CoreOptionsVersion int
	DiskControl        abi.DiskControlState
	HWRender           *abi.HWRenderCallback
	MemoryMap          abi.MemoryMap
	SerializationQuirks uint64
	AVEnableMask       uint32
	SavestateContext   int
	ThrottleState      bool
	TargetRefreshRate  float64
	JitCapable         bool
	FastForwarding     bool
	MessageInterfaceVersion int
	Shutdown           bool
}

// IsShutdown reports whether the core has called
// RETRO_ENVIRONMENT_SHUTDOWN. Exported for callers outside package env
// (session) that need to poll it between frames without reaching into the
// unexported mutex directly.
func (s *State) IsShutdown() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Shutdown
}

// SetSystemAVInfo seeds the negotiated AV info directly, for callers outside
// package env (session) that query retro_get_system_av_info themselves
// right after a successful load rather than waiting for a core that calls
// RETRO_ENVIRONMENT_SET_SYSTEM_AV_INFO on its own.
func (s *State) SetSystemAVInfo(avInfo abi.SystemAVInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.HaveSystemAVInfo {
		return
	}
	s.SystemAVInfo = avInfo
	s.HaveSystemAVInfo = true
}

// NewState returns a State with libretro's documented defaults: RGB1555
// pixel format, no rotation, AV output enabled, JIT assumed capable until a
// core says otherwise.
func NewState() *State {
	return &State{
		PixelFormat:             abi.PixelFormatRGB1555,
		ControllerPortMap:       make(map[uint32]uint32),
		AVEnableMask:            abi.AVEnableVideo | abi.AVEnableAudio,
		JitCapable:              true,
		MessageInterfaceVersion: 1,
	}
}
