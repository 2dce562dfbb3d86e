package env

import (
	"github.com/retrohost/retrohost/abi"
)

// Dispatch implements the Composite Environment Driver's command table.
// Every command not explicitly handled, and most commands whose backing
// driver is nil, return false rather than panicking. The exceptions: the
// pixel-format, geometry and AV-info setters still record into State without
// a VideoDriver, and GET_VARIABLE_UPDATE answers "no update" and succeeds
// without an OptionDriver. A core that probes for optional
// features is expected to treat false as "not available" and carry on.
func (c *CompositeEnvironmentDriver) Dispatch(rawCmd uint32, data uintptr) bool {
	// SET_HW_SHARED_CONTEXT and SET_SERIALIZATION_QUIRKS share the bare
	// value 44 upstream; only the EXPERIMENTAL bit tells them apart, so
	// this pair is matched against the raw command before CommandBase
	// strips that bit off below.
	if rawCmd == abi.EnvSetHWSharedContext {
		// No shared hardware-render context is offered.
		return false
	}

	cmd := abi.CommandBase(rawCmd)
	s := c.State

	switch cmd {
	case abi.EnvSetRotation:
		if c.Video == nil {
			return false
		}
		s.mu.Lock()
		rot := int(abi.ReadI32(data))
		s.mu.Unlock()
		if !c.Video.SetRotation(rot) {
			return false
		}
		s.mu.Lock()
		s.Rotation = rot
		s.mu.Unlock()
		return true

	case abi.EnvGetOverscan:
		// Overscan cropping is left to the video driver; frontends are not
		// required to crop, so this always reports "not cropping".
		abi.WriteBool(data, false)
		return true

	case abi.EnvGetCanDupe:
		abi.WriteBool(data, true)
		return true

	case abi.EnvSetMessage:
		if c.Message == nil {
			return false
		}
		msg := abi.Message{Msg: abi.CString(abi.ReadPtr(data)), Frames: abi.ReadU32(data + ptrSize)}
		return c.Message.ShowMessage(msg)

	case abi.EnvShutdown:
		s.mu.Lock()
		s.Shutdown = true
		s.mu.Unlock()
		if c.OnShutdown != nil {
			c.OnShutdown()
		}
		return true

	case abi.EnvSetPerformanceLevel:
		s.mu.Lock()
		s.PerformanceLevel = int(abi.ReadU32(data))
		s.mu.Unlock()
		return true

	case abi.EnvGetSystemDirectory:
		return c.answerPath(pathSlotSystem, data, func() (string, bool) {
			if c.Path == nil {
				return "", false
			}
			return c.Path.SystemDirectory()
		})

	case abi.EnvSetPixelFormat:
		format := int(abi.ReadI32(data))
		if abi.BytesPerPixel(format) == 0 {
			return false
		}
		if c.Video != nil && !c.Video.SetPixelFormat(format) {
			return false
		}
		s.mu.Lock()
		s.PixelFormat = format
		s.mu.Unlock()
		return true

	case abi.EnvSetInputDescriptors:
		descs := decodeInputDescriptors(data)
		s.mu.Lock()
		s.InputDescriptors = descs
		s.mu.Unlock()
		return true

	case abi.EnvSetKeyboardCallback:
		// Accepted but not wired to an InputDriver: no InputDriver in this
		// frontend models raw keyboard events, only joypad/mouse/pointer
		// state. A host that needs keyboard callbacks wires its own
		// InputDriver variant and extends this case to forward them.
		return true

	case abi.EnvSetDiskControlInterface, abi.EnvSetDiskControlExtInterface:
		// Disk-swap interfaces are accepted but the frontend doesn't expose
		// a UI of its own to invoke them; a host embedding this library
		// wires its own disk-control surface against State.DiskControl.
		return true

	case abi.EnvGetDiskControlInterfaceVersion:
		abi.WriteU32(data, 1)
		return true

	case abi.EnvSetHWRender:
		if c.Video == nil {
			return false
		}
		hw := abi.HWRenderCallback{ContextType: abi.ReadI32(data)}
		s.mu.Lock()
		s.HWRender = &hw
		s.mu.Unlock()
		return true

	case abi.EnvGetVariable:
		if c.Options == nil {
			return false
		}
		key := abi.DecodeVariableKey(data)
		val, ok := c.Options.GetVariable(key)
		if !ok {
			return false
		}
		abi.WriteVariableValue(data, answerVariable(key, val))
		return true

	case abi.EnvSetVariables:
		if c.Options == nil {
			return false
		}
		c.Options.SetVariables(decodeVariables(data))
		return true

	case abi.EnvGetVariableUpdate:
		if c.Options == nil {
			abi.WriteBool(data, false)
			return true
		}
		abi.WriteBool(data, c.Options.VariableUpdated())
		return true

	case abi.EnvSetSupportNoGame:
		s.mu.Lock()
		s.SupportNoGame = abi.ReadBool(data)
		s.mu.Unlock()
		return true

	case abi.EnvGetLibretroPath:
		return c.answerPath(pathSlotLibretroPath, data, func() (string, bool) {
			return c.CorePath, c.CorePath != ""
		})

	case abi.EnvSetFrameTimeCallback, abi.EnvSetAudioCallback:
		// Accepted but not wired to a scheduler: this frontend drives
		// retro_run from its own Session loop rather than a core-owned
		// timer, matching the single-threaded cooperative model.
		return true

	case abi.EnvGetRumbleInterface:
		return c.Rumble != nil

	case abi.EnvGetInputDeviceCapabilities:
		if c.Input == nil {
			return false
		}
		abi.WriteU64(data, c.Input.DeviceCapabilities())
		return true

	case abi.EnvGetSensorInterface:
		return c.Sensor != nil

	case abi.EnvGetCameraInterface:
		return c.Camera != nil

	case abi.EnvGetLogInterface:
		return c.Log != nil

	case abi.EnvGetPerfInterface:
		return c.Perf != nil

	case abi.EnvGetLocationInterface:
		return c.Location != nil

	case abi.EnvGetContentDirectory:
		return c.answerPath(pathSlotContent, data, func() (string, bool) {
			if c.Path == nil {
				return "", false
			}
			return c.Path.ContentDirectory()
		})

	case abi.EnvGetSaveDirectory:
		return c.answerPath(pathSlotSave, data, func() (string, bool) {
			if c.Path == nil {
				return "", false
			}
			return c.Path.SaveDirectory()
		})

	case abi.EnvSetSystemAVInfo:
		avInfo := abi.DecodeSystemAVInfo(data)
		if c.Video != nil && !c.Video.SetSystemAVInfo(avInfo) {
			return false
		}
		s.mu.Lock()
		s.SystemAVInfo = avInfo
		s.HaveSystemAVInfo = true
		s.mu.Unlock()
		return true

	case abi.EnvSetProcAddressCallback:
		// No HW render symbol resolution is offered; cores that need it
		// must bring their own loader.
		return false

	case abi.EnvSetSubsystemInfo:
		s.mu.Lock()
		s.SubsystemInfo = decodeSubsystemInfo(data)
		s.mu.Unlock()
		return true

	case abi.EnvSetControllerInfo:
		// Accepted; the frontend doesn't maintain its own controller-type
		// picker, so this is informational bookkeeping only.
		return true

	case abi.EnvSetMemoryMaps:
		s.mu.Lock()
		s.MemoryMap = decodeMemoryMap(data)
		s.mu.Unlock()
		return true

	case abi.EnvSetGeometry:
		geom := abi.DecodeGameGeometry(data)
		if c.Video != nil && !c.Video.SetGeometry(geom) {
			return false
		}
		s.mu.Lock()
		if s.HaveSystemAVInfo {
			s.SystemAVInfo.Geometry = geom
		}
		s.mu.Unlock()
		return true

	case abi.EnvGetUsername:
		return c.answerPath(pathSlotUsername, data, func() (string, bool) {
			if c.User == nil {
				return "", false
			}
			return c.User.Username()
		})

	case abi.EnvGetLanguage:
		if c.User == nil {
			return false
		}
		lang, ok := c.User.Language()
		if !ok {
			return false
		}
		abi.WriteU32(data, uint32(lang))
		return true

	case abi.EnvGetCurrentSoftwareFramebuffer:
		return false

	case abi.EnvGetHWRenderInterface:
		return false

	case abi.EnvSetSupportAchievements:
		return true

	case abi.EnvSetHWRenderContextNegotiationInterface:
		return false

	case abi.EnvSetSerializationQuirks:
		s.mu.Lock()
		s.SerializationQuirks = abi.ReadU64(data)
		s.mu.Unlock()
		return true

	case abi.EnvGetVFSInterface:
		return c.VFS != nil

	case abi.EnvGetLEDInterface:
		return c.LED != nil

	case abi.EnvGetAudioVideoEnable:
		s.mu.Lock()
		mask := int32(s.AVEnableMask)
		s.mu.Unlock()
		abi.WriteI32(data, mask)
		return true

	case abi.EnvGetMidiInterface:
		return c.MIDI != nil

	case abi.EnvGetFastForwarding:
		s.mu.Lock()
		ff := s.FastForwarding
		s.mu.Unlock()
		abi.WriteBool(data, ff)
		return true

	case abi.EnvGetTargetRefreshRate:
		s.mu.Lock()
		rate := s.TargetRefreshRate
		s.mu.Unlock()
		if rate == 0 {
			return false
		}
		abi.WriteF64(data, rate)
		return true

	case abi.EnvGetInputBitmasks:
		// Reporting true here tells the core it may pass
		// RETRO_DEVICE_ID_JOYPAD_MASK to input_state; every InputDriver in
		// this frontend supports it (see drivers.ArrayInputDriver.State).
		return c.Input != nil

	case abi.EnvGetCoreOptionsVersion:
		if c.Options == nil {
			return false
		}
		abi.WriteU32(data, uint32(c.Options.Version()))
		return true

	case abi.EnvSetCoreOptions:
		if c.Options == nil {
			return false
		}
		c.Options.SetOptionsV1(decodeOptionDefinitions(data))
		return true

	case abi.EnvSetCoreOptionsIntl:
		if c.Options == nil {
			return false
		}
		// Intl variant carries a US-English fallback pointer first; only
		// the fallback is honored since this frontend has no locale
		// negotiation of its own.
		c.Options.SetOptionsV1(decodeOptionDefinitions(abi.ReadPtr(data)))
		return true

	case abi.EnvSetCoreOptionsDisplay:
		if c.Options == nil {
			return false
		}
		c.Options.SetDisplay(decodeOptionDisplay(data))
		return true

	case abi.EnvGetPreferredHWRender:
		abi.WriteI32(data, abi.HWContextNone)
		return true

	case abi.EnvGetMessageInterfaceVersion:
		s.mu.Lock()
		v := s.MessageInterfaceVersion
		s.mu.Unlock()
		if c.Message != nil {
			v = c.Message.InterfaceVersion()
		}
		abi.WriteU32(data, uint32(v))
		return true

	case abi.EnvSetMessageExt:
		if c.Message == nil {
			return false
		}
		return c.Message.ShowMessageExt(decodeMessageExt(data))

	case abi.EnvGetInputMaxUsers:
		abi.WriteU32(data, 8)
		return true

	case abi.EnvSetAudioBufferStatusCallback:
		return true

	case abi.EnvSetMinimumAudioLatency:
		return true

	case abi.EnvSetFastForwardingOverride:
		return true

	case abi.EnvSetContentInfoOverride:
		if c.Content == nil {
			return false
		}
		overrides := decodeContentInfoOverrides(data)
		s.mu.Lock()
		s.ContentOverrides = overrides
		s.mu.Unlock()
		c.Content.SetOverrides(overrides)
		return true

	case abi.EnvGetGameInfoExt:
		if c.Content == nil {
			return false
		}
		ext, ok := c.Content.GameInfoExt()
		if !ok {
			return false
		}
		encodeGameInfoExt(data, ext)
		return true

	case abi.EnvSetCoreOptionsV2:
		if c.Options == nil {
			return false
		}
		c.Options.SetOptionsV2(decodeOptionsV2(data))
		return true

	case abi.EnvSetCoreOptionsV2Intl:
		if c.Options == nil {
			return false
		}
		c.Options.SetOptionsV2(decodeOptionsV2(abi.ReadPtr(data)))
		return true

	case abi.EnvSetCoreOptionsUpdateDisplayCallback:
		return true

	case abi.EnvSetVariable:
		if c.Options == nil {
			return false
		}
		key := abi.DecodeVariableKey(data)
		val := abi.CString(abi.ReadPtr(data + ptrSize))
		return c.Options.SetVariable(key, val)

	case abi.EnvGetThrottleState:
		s.mu.Lock()
		throttle := s.ThrottleState
		s.mu.Unlock()
		abi.WriteBool(data, throttle)
		return true

	case abi.EnvGetSavestateContext:
		s.mu.Lock()
		ctx := s.SavestateContext
		s.mu.Unlock()
		abi.WriteI32(data, int32(ctx))
		return true

	case abi.EnvGetHWRenderContextNegotiationInterfaceSupport:
		return false

	case abi.EnvGetJitCapable:
		s.mu.Lock()
		jit := s.JitCapable
		s.mu.Unlock()
		abi.WriteBool(data, jit)
		return true

	case abi.EnvGetMicrophoneInterface:
		return c.Microphone != nil

	case abi.EnvSetNetpacketInterface:
		return false

	case abi.EnvGetDevicePower:
		if c.Power == nil {
			return false
		}
		power, ok := c.Power.DevicePower()
		if !ok {
			return false
		}
		encodeDevicePower(data, power)
		return true

	case abi.EnvGetPlaylistDirectory:
		return c.answerPath(pathSlotPlaylist, data, func() (string, bool) {
			if c.Path == nil {
				return "", false
			}
			return c.Path.PlaylistDirectory()
		})

	default:
		return false
	}
}

// ptrSize is the host's pointer width, used when a raw struct's next field
// sits immediately after a pointer-sized slot (e.g. retro_message's
// duration field following its char* msg field).
const ptrSize = 8

func (c *CompositeEnvironmentDriver) answerPath(slot pathSlot, data uintptr, get func() (string, bool)) bool {
	val, ok := get()
	if !ok {
		abi.WritePtr(data, 0)
		return false
	}
	abi.WritePtr(data, answerPathValue(slot, val))
	return true
}
