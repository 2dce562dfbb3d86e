// Package drivers declares the capability interfaces a Composite
// Environment Driver dispatches RETRO_ENVIRONMENT_* commands to, and ships a
// default implementation of each. Every interface here is optional: a
// CompositeEnvironmentDriver built without a given driver reports most of the
// corresponding environment commands as unsupported.
package drivers

import "github.com/retrohost/retrohost/abi"

// VideoDriver receives decoded frames from the core's video_refresh
// callback and negotiates pixel format, rotation and geometry.
type VideoDriver interface {
	// SetPixelFormat is called once the core has chosen its output pixel
	// format via SET_PIXEL_FORMAT. Returning false rejects the format and
	// the core must fall back to its default.
	SetPixelFormat(format int) bool

	// SetRotation receives SET_ROTATION (0-3, quarter turns counter-clockwise).
	SetRotation(rotation int) bool

	// SetGeometry is called on SET_GEOMETRY: the core is changing its
	// reported frame size without changing system timing.
	SetGeometry(geometry abi.GameGeometry) bool

	// SetSystemAVInfo receives SET_SYSTEM_AV_INFO: a full geometry+timing
	// replacement, distinct from SetGeometry in that timing may change too.
	SetSystemAVInfo(avInfo abi.SystemAVInfo) bool

	// Refresh delivers one decoded frame. data is nil when the core reused
	// the previous frame (duping) after GET_CAN_DUPE was reported true.
	Refresh(data []byte, width, height uint32, pitch uintptr)
}

// AudioDriver receives batched or per-sample PCM audio from the core.
type AudioDriver interface {
	// Sample receives one interleaved stereo frame.
	Sample(left, right int16)

	// SampleBatch receives frames interleaved stereo s16 samples and
	// returns the number of frames consumed.
	SampleBatch(data []int16, frames int) int
}

// InputDriver is polled once per frame via INPUT_POLL and then queried per
// (port, device, index, id) via INPUT_STATE.
type InputDriver interface {
	// Poll is called once before any State call in a frame; implementations
	// typically snapshot OS input state here so State calls are consistent
	// within the frame.
	Poll()

	// State returns the current value for one input line. For
	// RETRO_DEVICE_ID_JOYPAD_MASK the return value is a 16-bit bitmask of
	// all joypad buttons packed per spec (bit N set == button N held).
	State(port, device, index, id uint32) int16

	// DeviceCapabilities reports which RETRO_DEVICE_* classes this driver
	// can service, as a bitmask (1<<DeviceJoypad | 1<<DeviceAnalog | ...).
	DeviceCapabilities() uint64

	// SetControllerPortDevice is informational: the core is telling the
	// frontend which device type it has bound to a port.
	SetControllerPortDevice(port uint32, device uint32)
}

// RumbleDriver delivers force-feedback requests (GET_RUMBLE_INTERFACE).
type RumbleDriver interface {
	SetRumbleState(port uint32, effect int, strength uint16) bool
}

// SensorDriver backs GET_SENSOR_INTERFACE.
type SensorDriver interface {
	SetSensorState(port uint32, action abi.SensorAction, rate uint32) bool
	GetSensorInput(port uint32, id uint32) float32
}

// CameraDriver backs GET_CAMERA_INTERFACE.
type CameraDriver interface {
	Start() bool
	Stop()
	// Capabilities reports which RETRO_CAMERA_BUFFER_* the driver was
	// configured to deliver (raw framebuffer, OpenGL texture, or both).
	Capabilities() uint64
}

// MicrophoneDriver backs GET_MICROPHONE_INTERFACE.
type MicrophoneDriver interface {
	OpenMic(rate uint32) (id int, ok bool)
	CloseMic(id int)
	ReadMic(id int, buf []int16) int
	SetMicState(id int, enabled bool) bool
}

// LocationDriver backs GET_LOCATION_INTERFACE.
type LocationDriver interface {
	Start() bool
	Stop()
	GetPosition() (lat, lon, horizAccuracy, vertAccuracy float64, ok bool)
	SetInterval(intervalMs, intervalDistance uint32)
}

// UserDriver backs GET_USERNAME / GET_LANGUAGE.
type UserDriver interface {
	Username() (string, bool)
	Language() (int, bool)
}

// PathDriver backs GET_SYSTEM_DIRECTORY / GET_SAVE_DIRECTORY /
// GET_CONTENT_DIRECTORY (also known as GET_CORE_ASSETS_DIRECTORY) /
// GET_LIBRETRO_PATH / GET_PLAYLIST_DIRECTORY.
type PathDriver interface {
	SystemDirectory() (string, bool)
	SaveDirectory() (string, bool)
	ContentDirectory() (string, bool)
	LibretroPath() (string, bool)
	PlaylistDirectory() (string, bool)
}

// LogDriver backs GET_LOG_INTERFACE.
type LogDriver interface {
	Log(level int, msg string)
}

// PerfDriver backs GET_PERF_INTERFACE. Handles identify a running counter
// created by Register/Start and stopped/logged by Stop/Log.
type PerfDriver interface {
	GetTimeUsec() int64
	GetCPUFeatures() uint64
	GetPerfCounter() int64
	Register(name string) (handle int)
	Start(handle int)
	Stop(handle int)
	Log()
}

// MessageDriver backs SET_MESSAGE / SET_MESSAGE_EXT and reports
// GET_MESSAGE_INTERFACE_VERSION.
type MessageDriver interface {
	InterfaceVersion() int
	ShowMessage(msg abi.Message) bool
	ShowMessageExt(msg abi.MessageExt) bool
}

// LEDDriver backs GET_LED_INTERFACE.
type LEDDriver interface {
	SetLEDState(led int, state int)
}

// MIDIDriver backs GET_MIDI_INTERFACE.
type MIDIDriver interface {
	InputEnabled() bool
	OutputEnabled() bool
	Read() (b byte, ok bool)
	Write(b byte, deltaTime uint32) bool
	Flush() bool
}

// PowerDriver backs GET_DEVICE_POWER.
type PowerDriver interface {
	DevicePower() (abi.DevicePower, bool)
}

// VFSInterface backs GET_VFS_INTERFACE: a libretro-shaped abstraction over a
// filesystem, independent of the host OS's real paths.
type VFSInterface interface {
	Open(path string, mode int, hints int) (VFSHandle, error)
	Close(handle VFSHandle) error
	Size(handle VFSHandle) (int64, error)
	Truncate(handle VFSHandle, length int64) error
	Tell(handle VFSHandle) (int64, error)
	Seek(handle VFSHandle, offset int64, whence int) (int64, error)
	Read(handle VFSHandle, buf []byte) (int, error)
	Write(handle VFSHandle, buf []byte) (int, error)
	Flush(handle VFSHandle) error
	Remove(path string) error
	Rename(oldPath, newPath string) error
	Stat(path string) (VFSStat, error)
	MkDir(path string) error
	OpenDir(path string) (VFSDirHandle, error)
	ReadDir(handle VFSDirHandle) bool
	DirEntryName(handle VFSDirHandle) string
	DirEntryIsDir(handle VFSDirHandle) bool
	CloseDir(handle VFSDirHandle) error
}

// VFSHandle and VFSDirHandle are opaque handles minted by a VFSInterface
// implementation; the environment driver never interprets their contents.
type VFSHandle interface{}
type VFSDirHandle interface{}

// VFSStat mirrors retro_vfs_stat_t's reported fields.
type VFSStat struct {
	Size  int64
	IsDir bool
}

// ContentDriver owns loading (and, for block-extract content, archive
// extraction) of the files passed to retro_load_game /
// retro_load_game_special. Grounded in original_source's ContentDriver
// protocol: a load can return zero, one, or several files, paired with an
// optional subsystem descriptor.
type ContentDriver interface {
	// Load resolves one content request (a path, raw bytes, or nil for
	// "no game") into the files the core will actually be handed.
	Load(req ContentRequest) (LoadedContent, error)

	// LoadSpecial resolves a subsystem's full set of ROMs at once.
	LoadSpecial(info abi.SubsystemInfo, reqs []ContentRequest) (LoadedContent, error)

	// EnableExtendedInfo toggles whether GameInfoExt is populated for
	// subsequent loads (GET_GAME_INFO_EXT support).
	EnableExtendedInfo(enable bool)

	// GameInfoExt returns the extended descriptor for the most recently
	// loaded content, if extended info was enabled and is available.
	GameInfoExt() (abi.GameInfoExt, bool)

	SetSystemInfo(info abi.SystemInfo)
	SystemInfo() (abi.SystemInfo, bool)

	// SetOverrides installs content-info overrides (SET_CONTENT_INFO_OVERRIDE):
	// per-extension hints that replace the core's own retro_get_system_info
	// answer for matching files (e.g. forcing need_fullpath).
	SetOverrides(overrides []ContentInfoOverride)
}

// ContentRequest is what a caller asks a ContentDriver to resolve: either a
// filesystem path or raw in-memory bytes, never both.
type ContentRequest struct {
	Path string
	Data []byte
	// NoGame is true for a "no game" load validated against
	// support_no_game.
	NoGame bool
}

// ContentInfoOverride mirrors retro_system_content_info_override.
type ContentInfoOverride struct {
	Extensions   []string
	NeedFullpath bool
	PersistentData bool
}

// LoadedContent is the result of resolving one load request: an optional
// subsystem descriptor (nil for a plain retro_load_game) paired with the
// concrete files the core will see. Shape grounded in original_source's
// LoadedContent = tuple[retro_subsystem_info | None, Sequence[LoadedContentFile]].
type LoadedContent struct {
	Subsystem *abi.SubsystemInfo
	Files     []LoadedContentFile
}

// LoadedContentFile pairs the GameInfo the core receives with the richer
// GameInfoExt descriptor, when available.
type LoadedContentFile struct {
	Info    abi.GameInfo
	Ext     abi.GameInfoExt
	HasExt  bool
	Persistent bool
}

// OptionDriver owns core-option state across all three protocol versions
// (v0 key/value variables, v1 definitions, v2 categorized definitions) and
// the variable_updated dirty flag.
type OptionDriver interface {
	// Version reports which protocol version this driver presents to a
	// core via GET_CORE_OPTIONS_VERSION: 0, 1, or 2.
	Version() int

	SetVariables(vars []abi.Variable)
	SetOptionsV1(defs []abi.CoreOptionDefinition)
	SetOptionsV2(opts abi.CoreOptionsV2)

	// GetVariable answers GET_VARIABLE for one key.
	GetVariable(key string) (string, bool)

	// SetVariable answers SET_VARIABLE: a frontend-initiated change to one
	// option's current value. Per the conservative reading of the dirty
	// flag, any call for a declared key marks the option set dirty
	// regardless of whether the value actually changed; a key the core never
	// declared returns false and leaves the flag alone.
	SetVariable(key, value string) bool

	// VariableUpdated answers GET_VARIABLE_UPDATE and clears the dirty
	// flag as a side effect, matching the real libretro semantics where a
	// core is expected to poll this once per frame.
	VariableUpdated() bool

	// MarkDirty sets the dirty flag from outside the core (e.g. a
	// frontend UI changing an option). Any mutation of option state, from
	// either side of the boundary, sets the flag.
	MarkDirty()

	SetDisplay(display abi.CoreOptionDisplay)
}
