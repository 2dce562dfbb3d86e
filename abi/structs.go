package abi

// This file mirrors the libretro C structs this frontend needs to read from
// or write into core memory. GameGeometry, SystemTiming and SystemAVInfo are
// read straight from core memory by raw layout, so their field order and
// width must match libretro.h exactly; the types holding Go strings or slices
// are decoded forms, filled field by field from unexported raw structs.

// SystemInfo mirrors retro_system_info. The three char* fields are decoded
// from the core's returned pointers by EntryPoints.SystemInfo, not here.
type SystemInfo struct {
	LibraryName     string
	LibraryVersion  string
	ValidExtensions string
	NeedFullpath    bool
	BlockExtract    bool
}

// GameGeometry mirrors retro_game_geometry.
type GameGeometry struct {
	BaseWidth   uint32
	BaseHeight  uint32
	MaxWidth    uint32
	MaxHeight   uint32
	AspectRatio float32
}

// SystemTiming mirrors retro_system_timing.
type SystemTiming struct {
	FPS        float64
	SampleRate float64
}

// SystemAVInfo mirrors retro_system_av_info.
type SystemAVInfo struct {
	Geometry GameGeometry
	Timing   SystemTiming
}

// GameInfo mirrors retro_game_info: the path and/or in-memory blob passed to
// retro_load_game. Path is empty when the content was supplied as raw bytes.
type GameInfo struct {
	Path string
	Data []byte
	Meta string
}

// GameInfoExt mirrors retro_game_info_ext, the richer descriptor cores can
// request in place of retro_game_info via GET_GAME_INFO_EXT.
type GameInfoExt struct {
	FullPath      string
	ArchivePath   string
	ArchiveFile   string
	Dir           string
	Name          string
	Ext           string
	Meta          string
	Data          []byte
	FileInArchive bool
	Persistent    bool
}

// InputDescriptor mirrors retro_input_descriptor: one (port, device, index,
// id) -> human-readable description mapping the core supplies so a frontend
// can build a controls legend.
type InputDescriptor struct {
	Port        uint32
	Device      uint32
	Index       uint32
	ID          uint32
	Description string
}

// ControllerDescription mirrors retro_controller_description.
type ControllerDescription struct {
	Description string
	ID          uint32
}

// ControllerInfo mirrors retro_controller_info: the controller types valid
// for one port.
type ControllerInfo struct {
	Types    []ControllerDescription
	NumTypes uint32
}

// Variable mirrors retro_variable: a single key/value core option entry in
// the v0 (legacy) option protocol.
type Variable struct {
	Key   string
	Value string
}

// CoreOptionValue mirrors retro_core_option_value (v1/v2 protocols).
type CoreOptionValue struct {
	Value string
	Label string
}

// CoreOptionDefinition mirrors retro_core_option_definition (v1) /
// retro_core_option_v2_definition (v2, plus Category below).
type CoreOptionDefinition struct {
	Key           string
	Desc          string
	Info          string
	Category      string
	Values        []CoreOptionValue
	DefaultValue  string
}

// CoreOptionCategory mirrors retro_core_option_v2_category.
type CoreOptionCategory struct {
	Key  string
	Desc string
	Info string
}

// CoreOptionsV2 mirrors retro_core_options_v2: definitions plus categories.
type CoreOptionsV2 struct {
	Definitions []CoreOptionDefinition
	Categories  []CoreOptionCategory
}

// CoreOptionDisplay mirrors retro_core_option_display: a key plus whether it
// should currently be visible in frontend UI.
type CoreOptionDisplay struct {
	Key     string
	Visible bool
}

// Framebuffer mirrors retro_framebuffer, the struct a core fills in when the
// frontend asks for direct access via GET_CURRENT_SOFTWARE_FRAMEBUFFER.
type Framebuffer struct {
	Data        []byte
	Width       uint32
	Height      uint32
	Pitch       uint32
	Format      int32
	AccessFlags uint32
	MemoryFlags uint32
}

// HWRenderCallback mirrors retro_hw_render_callback (the fields this
// frontend actually negotiates; function-pointer fields live in abi's
// callback trampolines, not here).
type HWRenderCallback struct {
	ContextType         int32
	BottomLeftOrigin    bool
	VersionMajor        uint32
	VersionMinor        uint32
	CacheContext        bool
	DebugContext        bool
	DepthBits           uint32
	StencilBits         uint32
}

// MemoryDescriptor mirrors retro_memory_descriptor: one named, addressable
// memory region a core exposes via SET_MEMORY_MAPS.
type MemoryDescriptor struct {
	Flags   uint64
	Ptr     []byte
	Offset  uintptr
	Start   uintptr
	Select  uintptr
	Disconnect uintptr
	Len     uintptr
	AddrSpace string
}

// MemoryMap mirrors retro_memory_map: the full set of descriptors a core
// reports in one SET_MEMORY_MAPS call.
type MemoryMap struct {
	Descriptors []MemoryDescriptor
}

// SubsystemMemoryInfo mirrors retro_subsystem_memory_info.
type SubsystemMemoryInfo struct {
	Extension string
	Type      uint32
}

// SubsystemRomInfo mirrors retro_subsystem_rom_info: one content file slot
// within a subsystem (e.g. "cartridge" vs "bios" in a multi-file load).
type SubsystemRomInfo struct {
	Desc         string
	ValidExtensions string
	NeedFullpath bool
	BlockExtract bool
	Required     bool
	Memory       []SubsystemMemoryInfo
}

// SubsystemInfo mirrors retro_subsystem_info: a named multi-ROM loading mode
// a core supports (e.g. Super Game Boy, Sufami Turbo).
type SubsystemInfo struct {
	Desc      string
	Ident     string
	Roms      []SubsystemRomInfo
	ID        uint32
}

// DiskControlState mirrors the non-function-pointer bookkeeping this
// frontend keeps about retro_disk_control_callback / _ext: which disk image
// is currently inserted and how many images exist.
type DiskControlState struct {
	Ejected     bool
	ImageIndex  uint32
	NumImages   uint32
}

// Message mirrors retro_message (legacy OSD message).
type Message struct {
	Msg    string
	Frames uint32
}

// MessageExt mirrors retro_message_ext: the richer OSD message with level,
// target, and display duration in milliseconds.
type MessageExt struct {
	Msg      string
	Duration uint32
	Priority uint32
	Level    int32
	Target   int32
	MsgType  int32
	Progress int8
}

// LEDInterface state: a map of LED index -> current intensity, mirroring
// the (set_led_state) capability of retro_led_interface.
type LEDState map[int]int

// SensorAction mirrors RETRO_SENSOR_ACTION_* used by retro_sensor_interface.
type SensorAction int32

const (
	SensorActionAccelerometerEnable SensorAction = 0
	SensorActionAccelerometerDisable SensorAction = 1
	SensorActionGyroscopeEnable SensorAction = 2
	SensorActionGyroscopeDisable SensorAction = 3
	SensorActionIlluminanceEnable SensorAction = 4
	SensorActionIlluminanceDisable SensorAction = 5
)

// DevicePower mirrors retro_device_power (GET_DEVICE_POWER).
type DevicePower struct {
	State    int32
	Seconds  int32
	Percent  int8
}
