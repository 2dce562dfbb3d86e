package abi

import "unsafe"

// Primitive readers/writers for scalar fields inside a struct handed across
// the ABI boundary by raw pointer. Every command-specific decode in package
// env builds on these instead of reaching for unsafe directly, so the
// handful of places that truly need raw memory access stay auditable.

func ReadU32(ptr uintptr) uint32 { return *(*uint32)(unsafe.Pointer(ptr)) }
func ReadI32(ptr uintptr) int32  { return *(*int32)(unsafe.Pointer(ptr)) }
func ReadU64(ptr uintptr) uint64 { return *(*uint64)(unsafe.Pointer(ptr)) }
func ReadF32(ptr uintptr) float32 { return *(*float32)(unsafe.Pointer(ptr)) }
func ReadF64(ptr uintptr) float64 { return *(*float64)(unsafe.Pointer(ptr)) }
func ReadPtr(ptr uintptr) uintptr { return *(*uintptr)(unsafe.Pointer(ptr)) }
func ReadBool(ptr uintptr) bool   { return *(*byte)(unsafe.Pointer(ptr)) != 0 }

func WriteU32(ptr uintptr, v uint32)   { *(*uint32)(unsafe.Pointer(ptr)) = v }
func WriteI32(ptr uintptr, v int32)    { *(*int32)(unsafe.Pointer(ptr)) = v }
func WriteU64(ptr uintptr, v uint64)   { *(*uint64)(unsafe.Pointer(ptr)) = v }
func WriteF64(ptr uintptr, v float64)  { *(*float64)(unsafe.Pointer(ptr)) = v }
func WriteBool(ptr uintptr, v bool) {
	var b byte
	if v {
		b = 1
	}
	*(*byte)(unsafe.Pointer(ptr)) = b
}
func WritePtr(ptr uintptr, v uintptr) { *(*uintptr)(unsafe.Pointer(ptr)) = v }

// DecodeGameGeometry reads a retro_game_geometry struct at ptr.
func DecodeGameGeometry(ptr uintptr) GameGeometry {
	return *(*GameGeometry)(unsafe.Pointer(ptr))
}

// EncodeGameGeometry writes a retro_game_geometry struct at ptr.
func EncodeGameGeometry(ptr uintptr, g GameGeometry) {
	*(*GameGeometry)(unsafe.Pointer(ptr)) = g
}

// DecodeSystemAVInfo reads a retro_system_av_info struct at ptr.
func DecodeSystemAVInfo(ptr uintptr) SystemAVInfo {
	return *(*SystemAVInfo)(unsafe.Pointer(ptr))
}

// rawVariable is the layout of one retro_variable (key/value char* pair).
// The core supplies Key (and, in a SET_VARIABLES array, Value as well); for
// GET_VARIABLE the frontend writes its answer into Value through
// WriteVariableValue.
type rawVariable struct {
	Key   *byte
	Value *byte
}

func DecodeVariableKey(ptr uintptr) string {
	rv := (*rawVariable)(unsafe.Pointer(ptr))
	return CString(uintptr(unsafe.Pointer(rv.Key)))
}

// WriteVariableValue writes the frontend's answer for a GET_VARIABLE call
// back into the retro_variable struct's value field. The string must
// outlive the call; callers keep the backing byte slice alive (package env
// pins it per key).
func WriteVariableValue(ptr uintptr, valuePtr uintptr) {
	rv := (*rawVariable)(unsafe.Pointer(ptr))
	rv.Value = (*byte)(unsafe.Pointer(valuePtr))
}

// BytesFromString returns a NUL-terminated byte slice suitable for handing
// a pointer to C code. Callers must keep the returned slice alive for as
// long as the core may read it.
func BytesFromString(s string) []byte {
	b := make([]byte, len(s)+1)
	copy(b, s)
	return b
}

func PtrOf(b []byte) uintptr {
	if len(b) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&b[0]))
}
