// Package abi declares the wire-level layout of the libretro C ABI: the
// structs a frontend and a core exchange across the environment callback,
// the function-pointer signatures of the fixed libretro entry points, and
// the numeric command/device/pixel-format constants from libretro.h.
//
// Nothing in this package interprets the data it describes — that is the
// job of package env (dispatch) and package corehandle (entry points).
package abi

// APIVersion is the libretro ABI version this frontend was built against.
// retro_api_version() on a loaded core must return exactly this value.
const APIVersion = 1

// Environment command IDs (RETRO_ENVIRONMENT_*). The EXPERIMENTAL bit is
// informational: cores that set it still mean the base command.
const (
	EnvExperimental = 0x10000
	EnvPrivate      = 0x20000

	EnvSetRotation                                    = 1
	EnvGetOverscan                                     = 2
	EnvGetCanDupe                                      = 3
	EnvSetMessage                                      = 6
	EnvShutdown                                        = 7
	EnvSetPerformanceLevel                             = 8
	EnvGetSystemDirectory                              = 9
	EnvSetPixelFormat                                  = 10
	EnvSetInputDescriptors                             = 11
	EnvSetKeyboardCallback                             = 12
	EnvSetDiskControlInterface                         = 13
	EnvSetHWRender                                     = 14
	EnvGetVariable                                     = 15
	EnvSetVariables                                    = 16
	EnvGetVariableUpdate                               = 17
	EnvSetSupportNoGame                                = 18
	EnvGetLibretroPath                                 = 19
	EnvSetFrameTimeCallback                            = 21
	EnvSetAudioCallback                                = 22
	EnvGetRumbleInterface                              = 23
	EnvGetInputDeviceCapabilities                      = 24
	EnvGetSensorInterface                              = 25
	EnvGetCameraInterface                              = 26
	EnvGetLogInterface                                 = 27
	EnvGetPerfInterface                                = 28
	EnvGetLocationInterface                            = 29
	EnvGetContentDirectory                             = 30
	EnvGetCoreAssetsDirectory                          = 30
	EnvGetSaveDirectory                                = 31
	EnvSetSystemAVInfo                                 = 32
	EnvSetProcAddressCallback                          = 33
	EnvSetSubsystemInfo                                = 34
	EnvSetControllerInfo                               = 35
	EnvSetMemoryMaps                                   = 36
	EnvSetGeometry                                     = 37
	EnvGetUsername                                     = 38
	EnvGetLanguage                                      = 39
	EnvGetCurrentSoftwareFramebuffer                   = 40
	EnvGetHWRenderInterface                            = 41
	EnvSetSupportAchievements                          = 42
	EnvSetHWRenderContextNegotiationInterface          = 43
	EnvSetSerializationQuirks                          = 44
	// EnvSetHWSharedContext shares the bare value 44 with
	// EnvSetSerializationQuirks upstream; the EXPERIMENTAL bit is the only
	// thing telling them apart, so this constant keeps it and Dispatch
	// checks it against the unmasked command before CommandBase runs.
	EnvSetHWSharedContext                              = 44 | EnvExperimental
	EnvGetVFSInterface                                 = 45
	EnvGetLEDInterface                                 = 46
	EnvGetAudioVideoEnable                             = 47
	EnvGetMidiInterface                                = 48
	EnvGetFastForwarding                               = 49
	EnvGetTargetRefreshRate                            = 50
	EnvGetInputBitmasks                                = 51
	EnvGetCoreOptionsVersion                           = 52
	EnvSetCoreOptions                                  = 53
	EnvSetCoreOptionsIntl                              = 54
	EnvSetCoreOptionsDisplay                           = 55
	EnvGetPreferredHWRender                            = 56
	EnvGetDiskControlInterfaceVersion                  = 57
	EnvSetDiskControlExtInterface                      = 58
	EnvGetMessageInterfaceVersion                      = 59
	EnvSetMessageExt                                   = 60
	EnvGetInputMaxUsers                                = 61
	EnvSetAudioBufferStatusCallback                    = 62
	EnvSetMinimumAudioLatency                          = 63
	EnvSetFastForwardingOverride                       = 64
	EnvSetContentInfoOverride                          = 65
	EnvGetGameInfoExt                                  = 66
	EnvSetCoreOptionsV2                                = 67
	EnvSetCoreOptionsV2Intl                            = 68
	EnvSetCoreOptionsUpdateDisplayCallback              = 69
	EnvSetVariable                                     = 70
	EnvGetThrottleState                                = 71
	EnvGetSavestateContext                             = 72
	EnvGetHWRenderContextNegotiationInterfaceSupport   = 73
	EnvGetJitCapable                                   = 74
	EnvGetMicrophoneInterface                          = 75
	EnvSetNetpacketInterface                           = 76
	EnvGetDevicePower                                  = 77
	EnvGetPlaylistDirectory                            = 79
)

// envCmdMask strips the informational EXPERIMENTAL/PRIVATE bits before a
// dispatcher switches on the command ID.
func envCmdMask(cmd uint32) uint32 {
	return cmd &^ (EnvExperimental | EnvPrivate)
}

// CommandBase returns cmd with the EXPERIMENTAL/PRIVATE bits cleared, for
// use by dispatch tables that switch on the bare command number.
func CommandBase(cmd uint32) uint32 { return envCmdMask(cmd) }

// Pixel formats (retro_pixel_format). RGB1555 is the libretro default.
const (
	PixelFormatRGB1555  = 0
	PixelFormatXRGB8888 = 1
	PixelFormatRGB565   = 2
)

// BytesPerPixel maps a retro_pixel_format value to its pixel size.
func BytesPerPixel(format int) int {
	switch format {
	case PixelFormatXRGB8888:
		return 4
	case PixelFormatRGB1555, PixelFormatRGB565:
		return 2
	default:
		return 0
	}
}

// Device classes (RETRO_DEVICE_*).
const (
	DeviceNone     = 0
	DeviceJoypad   = 1
	DeviceMouse    = 2
	DeviceKeyboard = 3
	DeviceLightgun = 4
	DeviceAnalog   = 5
	DevicePointer  = 6
)

// Joypad button IDs (RETRO_DEVICE_ID_JOYPAD_*).
const (
	JoypadB      = 0
	JoypadY      = 1
	JoypadSelect = 2
	JoypadStart  = 3
	JoypadUp     = 4
	JoypadDown   = 5
	JoypadLeft   = 6
	JoypadRight  = 7
	JoypadA      = 8
	JoypadX      = 9
	JoypadL      = 10
	JoypadR      = 11
	JoypadL2     = 12
	JoypadR2     = 13
	JoypadL3     = 14
	JoypadR3     = 15

	// JoypadMask is the "id" value that asks input_state for a bitmap of
	// all 16 joypad buttons instead of a single button's state.
	JoypadMask = 256
)

// Memory region IDs (RETRO_MEMORY_*), used by retro_get_memory_{data,size}.
const (
	MemorySaveRAM   = 0
	MemoryRTC       = 1
	MemorySystemRAM = 2
	MemoryVideoRAM  = 3
)

// Region IDs (RETRO_REGION_*).
const (
	RegionNTSC = 0
	RegionPAL  = 1
)

// Rotation values accepted by SET_ROTATION, in quarter turns
// counter-clockwise; each name gives the angle in degrees.
const (
	Rotation0   = 0
	Rotation90  = 1
	Rotation180 = 2
	Rotation270 = 3
)

// Language IDs (RETRO_LANGUAGE_*), trimmed to the commonly negotiated set.
const (
	LanguageEnglish = 0
	LanguageJapanese = 1
	LanguageFrench   = 2
	LanguageSpanish  = 3
	LanguageGerman   = 4
)

// Log levels (retro_log_level).
const (
	LogDebug = 0
	LogInfo  = 1
	LogWarn  = 2
	LogError = 3
)

// Savestate context values (RETRO_SAVESTATE_CONTEXT_*).
const (
	SavestateContextNormal               = 0
	SavestateContextRuntimeRandom        = 1
	SavestateContextRuntimeBook          = 2
	SavestateContextRollbackNetplay      = 3
)

// Serialization quirk bits (RETRO_SERIALIZATION_QUIRK_*).
const (
	QuirkIncomplete          uint64 = 1 << 0
	QuirkMustInitialize      uint64 = 1 << 1
	QuirkCoreVariableSize    uint64 = 1 << 2
	QuirkEndianDependent     uint64 = 1 << 3
	QuirkPlatformDependent   uint64 = 1 << 4
	QuirkSingleSession       uint64 = 1 << 5
)

// HW context types (retro_hw_context_type), trimmed to widely used values.
const (
	HWContextNone       = 0
	HWContextOpenGL     = 1
	HWContextOpenGLES2  = 2
	HWContextOpenGLCore = 3
	HWContextOpenGLES3  = 4
	HWContextVulkan     = 5
)

// AV enable flags (RETRO_AV_ENABLE_*), each a distinct bitmask value.
const (
	AVEnableVideo      uint32 = 1 << 0
	AVEnableAudio      uint32 = 1 << 1
	AVEnableFastSaveState uint32 = 1 << 2
	AVEnableHardFrameDuping uint32 = 1 << 3
)

// Sentinel buffer pointer passed to the video refresh callback when the
// core wants the frontend to read the frame from the active HW context
// instead of a software buffer.
var HWFrameBufferValid = ^uintptr(0) // matches RETRO_HW_FRAME_BUFFER_VALID, (void*)-1
