package env

import (
	"sync"
	"unsafe"

	"github.com/retrohost/retrohost/abi"
	"github.com/retrohost/retrohost/drivers"
)

func decodeInputDescriptors(ptr uintptr) []abi.InputDescriptor {
	return abi.DecodeInputDescriptorArray(ptr)
}

func decodeVariables(ptr uintptr) []abi.Variable {
	return abi.DecodeVariableArray(ptr)
}

func decodeOptionDefinitions(ptr uintptr) []abi.CoreOptionDefinition {
	return abi.DecodeCoreOptionDefinitionArray(ptr)
}

func decodeOptionsV2(ptr uintptr) abi.CoreOptionsV2 {
	return abi.DecodeCoreOptionsV2(ptr)
}

func decodeOptionDisplay(ptr uintptr) abi.CoreOptionDisplay {
	return abi.DecodeCoreOptionDisplay(ptr)
}

func decodeMessageExt(ptr uintptr) abi.MessageExt {
	return abi.DecodeMessageExt(ptr)
}

func decodeSubsystemInfo(ptr uintptr) []abi.SubsystemInfo {
	return abi.DecodeSubsystemInfoArray(ptr)
}

func decodeMemoryMap(ptr uintptr) abi.MemoryMap {
	return abi.DecodeMemoryMap(ptr)
}

// decodeContentInfoOverrides reads a null-terminated
// retro_system_content_info_override array. Extensions come as a single
// "|"-delimited C string per entry.
func decodeContentInfoOverrides(ptr uintptr) []drivers.ContentInfoOverride {
	var out []drivers.ContentInfoOverride
	const stride = 2 * 8 // pointer + 2 bools, padded to 8-byte alignment
	for i := 0; ; i++ {
		entryPtr := ptr + uintptr(i)*stride
		extPtr := abi.ReadPtr(entryPtr)
		if extPtr == 0 {
			break
		}
		exts := splitPipe(abi.CString(extPtr))
		needFullpath := abi.ReadBool(entryPtr + 8)
		persistent := abi.ReadBool(entryPtr + 9)
		out = append(out, drivers.ContentInfoOverride{
			Extensions:     exts,
			NeedFullpath:   needFullpath,
			PersistentData: persistent,
		})
	}
	return out
}

func splitPipe(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '|' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	out = append(out, s[start:])
	return out
}

// extInfoKeepAlive pins the C strings EncodeGameInfoExt allocates for the
// lifetime of the process; GET_GAME_INFO_EXT answers are expected to
// outlive the single environment call that returns them.
var extInfoKeepAlive []unsafe.Pointer

func encodeGameInfoExt(ptr uintptr, ext abi.GameInfoExt) {
	abi.EncodeGameInfoExt(ptr, ext, &extInfoKeepAlive)
}

func encodeDevicePower(ptr uintptr, p abi.DevicePower) {
	abi.EncodeDevicePower(ptr, p)
}

// variableKeepAlive pins the most recent GET_VARIABLE answer's bytes per
// key, the same way extInfoKeepAlive pins GET_GAME_INFO_EXT's: a core may
// cache the pointer it was handed and dereference it again on a later
// frame, so the backing buffer has to outlive the single Dispatch call
// that returned it. The buffer is only replaced when the value changes,
// so a core holding the old pointer across an unrelated call still reads
// the value it was given.
var (
	variableKeepAliveMu sync.Mutex
	variableKeepAlive   = map[string][]byte{}
)

func answerVariable(key, val string) uintptr {
	variableKeepAliveMu.Lock()
	defer variableKeepAliveMu.Unlock()
	if buf, ok := variableKeepAlive[key]; ok && string(buf) == val+"\x00" {
		return abi.PtrOf(buf)
	}
	buf := abi.BytesFromString(val)
	variableKeepAlive[key] = buf
	return abi.PtrOf(buf)
}

// pathSlot identifies which GET_*_DIRECTORY/GET_LIBRETRO_PATH/GET_USERNAME
// answer a retained buffer belongs to.
type pathSlot int

const (
	pathSlotSystem pathSlot = iota
	pathSlotSave
	pathSlotContent
	pathSlotLibretroPath
	pathSlotPlaylist
	pathSlotUsername
)

// pathKeepAlive mirrors variableKeepAlive for the path-answering commands,
// one slot per command since the underlying DefaultPathDriver fields don't
// share a key space the way options do.
var (
	pathKeepAliveMu sync.Mutex
	pathKeepAlive   = map[pathSlot][]byte{}
)

func answerPathValue(slot pathSlot, val string) uintptr {
	pathKeepAliveMu.Lock()
	defer pathKeepAliveMu.Unlock()
	if buf, ok := pathKeepAlive[slot]; ok && string(buf) == val+"\x00" {
		return abi.PtrOf(buf)
	}
	buf := abi.BytesFromString(val)
	pathKeepAlive[slot] = buf
	return abi.PtrOf(buf)
}
