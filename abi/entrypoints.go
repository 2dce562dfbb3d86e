package abi

import (
	"fmt"
	"unsafe"

	"github.com/ebitengine/purego"
)

// EntryPoints holds the resolved function pointers for every fixed libretro
// export, bound by purego.RegisterLibFunc against a dlopen'd core handle.
// corehandle calls Load once per core file and keeps the result for the
// lifetime of the Core Handle.
type EntryPoints struct {
	handle uintptr

	Init   func()
	Deinit func()

	APIVersion func() uint32

	GetSystemInfo   func(out *rawSystemInfo)
	GetSystemAVInfo func(out *rawSystemAVInfo)

	SetEnvironment        func(cb uintptr)
	SetVideoRefresh        func(cb uintptr)
	SetAudioSample         func(cb uintptr)
	SetAudioSampleBatch    func(cb uintptr)
	SetInputPoll           func(cb uintptr)
	SetInputState          func(cb uintptr)
	SetControllerPortDevice func(port uint32, device uint32)

	Reset func()
	Run   func()

	SerializeSize func() uintptr
	Serialize     func(data uintptr, size uintptr) bool
	Unserialize   func(data uintptr, size uintptr) bool

	CheatReset func()
	CheatSet   func(index uint32, enabled bool, code string)

	LoadGame        func(game uintptr) bool
	LoadGameSpecial func(gameType uint32, info uintptr, numInfo uintptr) bool
	UnloadGame      func()

	GetRegion func() uint32

	GetMemoryData func(id uint32) uintptr
	GetMemorySize func(id uint32) uintptr
}

// rawSystemInfo, rawSystemAVInfo and rawGameInfo are the exact-layout structs
// passed across the ABI boundary by pointer. They are intentionally
// unexported: EntryPoints.SystemInfo and SystemAVInfo decode them into the
// public abi.SystemInfo / abi.SystemAVInfo types using the C string helpers,
// and GameInfoHolder builds rawGameInfo from an abi.GameInfo, so nothing
// outside this package ever reads raw pointers.
type rawSystemInfo struct {
	LibraryName     *byte
	LibraryVersion  *byte
	ValidExtensions *byte
	NeedFullpath    bool
	BlockExtract    bool
}

type rawGameGeometry struct {
	BaseWidth   uint32
	BaseHeight  uint32
	MaxWidth    uint32
	MaxHeight   uint32
	AspectRatio float32
}

type rawSystemTiming struct {
	FPS        float64
	SampleRate float64
}

type rawSystemAVInfo struct {
	Geometry rawGameGeometry
	Timing   rawSystemTiming
}

type rawGameInfo struct {
	Path *byte
	Data uintptr
	Size uintptr
	Meta *byte
}

// GameInfoHolder owns the raw retro_game_info struct and the byte buffers
// its pointer fields reference, keeping them alive for the duration of a
// retro_load_game / retro_load_game_special call. The caller must keep the
// holder reachable (e.g. on the stack, or stored) until the call returns.
type GameInfoHolder struct {
	raw      rawGameInfo
	pathBuf  []byte
	metaBuf  []byte
	dataBuf  []byte
}

// NewGameInfoHolder builds a GameInfoHolder from a GameInfo. A nil info
// produces a holder whose Ptr() is 0, matching libretro's "no game" call.
func NewGameInfoHolder(info *GameInfo) *GameInfoHolder {
	if info == nil {
		return nil
	}
	h := &GameInfoHolder{}
	if info.Path != "" {
		h.pathBuf = BytesFromString(info.Path)
		h.raw.Path = &h.pathBuf[0]
	}
	if info.Meta != "" {
		h.metaBuf = BytesFromString(info.Meta)
		h.raw.Meta = &h.metaBuf[0]
	}
	if len(info.Data) > 0 {
		h.dataBuf = info.Data
		h.raw.Data = PtrOf(h.dataBuf)
		h.raw.Size = uintptr(len(h.dataBuf))
	}
	return h
}

// Ptr returns the address of the underlying rawGameInfo, or 0 for a nil
// holder (no game).
func (h *GameInfoHolder) Ptr() uintptr {
	if h == nil {
		return 0
	}
	return uintptr(unsafe.Pointer(&h.raw))
}

// GameInfoArray owns a contiguous array of rawGameInfo structs for a
// retro_load_game_special call, along with the holders that keep each
// entry's backing buffers alive.
type GameInfoArray struct {
	entries []rawGameInfo
	holders []*GameInfoHolder
}

func NewGameInfoArray(infos []GameInfo) *GameInfoArray {
	arr := &GameInfoArray{
		entries: make([]rawGameInfo, len(infos)),
		holders: make([]*GameInfoHolder, len(infos)),
	}
	for i := range infos {
		h := NewGameInfoHolder(&infos[i])
		arr.holders[i] = h
		arr.entries[i] = h.raw
	}
	return arr
}

func (a *GameInfoArray) Ptr() uintptr {
	if a == nil || len(a.entries) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&a.entries[0]))
}

// Load dlopens a core shared library and resolves every required entry
// point. It returns an error without leaving a half-bound handle if any
// required symbol is missing, so corehandle never has to nil-check a
// function field.
func Load(path string) (*EntryPoints, error) {
	handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, fmt.Errorf("abi: open core %q: %w", path, err)
	}

	ep := &EntryPoints{handle: handle}

	type binding struct {
		name string
		fptr interface{}
	}
	bindings := []binding{
		{"retro_init", &ep.Init},
		{"retro_deinit", &ep.Deinit},
		{"retro_api_version", &ep.APIVersion},
		{"retro_get_system_info", &ep.GetSystemInfo},
		{"retro_get_system_av_info", &ep.GetSystemAVInfo},
		{"retro_set_environment", &ep.SetEnvironment},
		{"retro_set_video_refresh", &ep.SetVideoRefresh},
		{"retro_set_audio_sample", &ep.SetAudioSample},
		{"retro_set_audio_sample_batch", &ep.SetAudioSampleBatch},
		{"retro_set_input_poll", &ep.SetInputPoll},
		{"retro_set_input_state", &ep.SetInputState},
		{"retro_set_controller_port_device", &ep.SetControllerPortDevice},
		{"retro_reset", &ep.Reset},
		{"retro_run", &ep.Run},
		{"retro_serialize_size", &ep.SerializeSize},
		{"retro_serialize", &ep.Serialize},
		{"retro_unserialize", &ep.Unserialize},
		{"retro_cheat_reset", &ep.CheatReset},
		{"retro_cheat_set", &ep.CheatSet},
		{"retro_load_game", &ep.LoadGame},
		{"retro_load_game_special", &ep.LoadGameSpecial},
		{"retro_unload_game", &ep.UnloadGame},
		{"retro_get_region", &ep.GetRegion},
		{"retro_get_memory_data", &ep.GetMemoryData},
		{"retro_get_memory_size", &ep.GetMemorySize},
	}

	for _, b := range bindings {
		if err := registerSymbol(handle, b.name, b.fptr); err != nil {
			purego.Dlclose(handle)
			return nil, fmt.Errorf("abi: core %q missing export %s: %w", path, b.name, err)
		}
	}

	return ep, nil
}

// registerSymbol wraps purego.RegisterLibFunc with a recover so a core built
// against a slightly different libretro.h (missing an export) surfaces as an
// error instead of a panic.
func registerSymbol(handle uintptr, name string, fptr interface{}) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	purego.RegisterLibFunc(fptr, handle, name)
	return nil
}

// Close dlcloses the underlying shared library. corehandle calls this only
// after retro_deinit has run, matching the Deinitialized -> Closed
// transition in the Core Handle lifecycle.
func (ep *EntryPoints) Close() error {
	return purego.Dlclose(ep.handle)
}

// SystemInfo calls retro_get_system_info and decodes the result into the
// exported SystemInfo type. rawSystemInfo stays unexported so no caller
// outside this package ever has to hold a raw C string pointer.
func (ep *EntryPoints) SystemInfo() SystemInfo {
	var raw rawSystemInfo
	ep.GetSystemInfo(&raw)
	return SystemInfo{
		LibraryName:     cStringOrEmpty(raw.LibraryName),
		LibraryVersion:  cStringOrEmpty(raw.LibraryVersion),
		ValidExtensions: cStringOrEmpty(raw.ValidExtensions),
		NeedFullpath:    raw.NeedFullpath,
		BlockExtract:    raw.BlockExtract,
	}
}

// SystemAVInfo calls retro_get_system_av_info and decodes the result.
func (ep *EntryPoints) SystemAVInfo() SystemAVInfo {
	var raw rawSystemAVInfo
	ep.GetSystemAVInfo(&raw)
	return SystemAVInfo{
		Geometry: GameGeometry(raw.Geometry),
		Timing:   SystemTiming(raw.Timing),
	}
}

func cStringOrEmpty(p *byte) string {
	if p == nil {
		return ""
	}
	return CString(uintptr(unsafe.Pointer(p)))
}
