package abi

import "unsafe"

// Raw C-layout mirrors of the null/sentinel-terminated arrays libretro
// passes for descriptor lists. Each has a matching Decode* walker below
// that stops at the documented terminator (a zeroed or nil-desc entry)
// rather than requiring the caller to know the array length up front,
// matching how a core itself produces these arrays.

type rawInputDescriptor struct {
	Port   uint32
	Device uint32
	Index  uint32
	ID     uint32
	Desc   *byte
}

func DecodeInputDescriptorArray(ptr uintptr) []InputDescriptor {
	var out []InputDescriptor
	stride := unsafe.Sizeof(rawInputDescriptor{})
	for i := 0; ; i++ {
		entry := (*rawInputDescriptor)(unsafe.Pointer(ptr + uintptr(i)*stride))
		if entry.Desc == nil {
			break
		}
		out = append(out, InputDescriptor{
			Port:        entry.Port,
			Device:      entry.Device,
			Index:       entry.Index,
			ID:          entry.ID,
			Description: CString(uintptr(unsafe.Pointer(entry.Desc))),
		})
	}
	return out
}

func DecodeVariableArray(ptr uintptr) []Variable {
	var out []Variable
	stride := unsafe.Sizeof(rawVariable{})
	for i := 0; ; i++ {
		entry := (*rawVariable)(unsafe.Pointer(ptr + uintptr(i)*stride))
		if entry.Key == nil {
			break
		}
		out = append(out, Variable{
			Key:   CString(uintptr(unsafe.Pointer(entry.Key))),
			Value: CString(uintptr(unsafe.Pointer(entry.Value))),
		})
	}
	return out
}

type rawCoreOptionValue struct {
	Value *byte
	Label *byte
}

type rawCoreOptionDefinition struct {
	Key          *byte
	Desc         *byte
	Info         *byte
	Values       [128]rawCoreOptionValue
	DefaultValue *byte
}

func decodeOptionValues(values *[128]rawCoreOptionValue) []CoreOptionValue {
	var out []CoreOptionValue
	for _, v := range values {
		if v.Value == nil {
			break
		}
		out = append(out, CoreOptionValue{
			Value: CString(uintptr(unsafe.Pointer(v.Value))),
			Label: CString(uintptr(unsafe.Pointer(v.Label))),
		})
	}
	return out
}

func DecodeCoreOptionDefinitionArray(ptr uintptr) []CoreOptionDefinition {
	var out []CoreOptionDefinition
	stride := unsafe.Sizeof(rawCoreOptionDefinition{})
	for i := 0; ; i++ {
		entry := (*rawCoreOptionDefinition)(unsafe.Pointer(ptr + uintptr(i)*stride))
		if entry.Key == nil {
			break
		}
		out = append(out, CoreOptionDefinition{
			Key:          CString(uintptr(unsafe.Pointer(entry.Key))),
			Desc:         CString(uintptr(unsafe.Pointer(entry.Desc))),
			Info:         CString(uintptr(unsafe.Pointer(entry.Info))),
			Values:       decodeOptionValues(&entry.Values),
			DefaultValue: CString(uintptr(unsafe.Pointer(entry.DefaultValue))),
		})
	}
	return out
}

type rawCoreOptionV2Category struct {
	Key  *byte
	Desc *byte
	Info *byte
}

type rawCoreOptionV2Definition struct {
	Key          *byte
	Desc         *byte
	DescCategorized *byte
	Info         *byte
	InfoCategorized *byte
	Category     *byte
	Values       [128]rawCoreOptionValue
	DefaultValue *byte
}

type rawCoreOptionsV2 struct {
	Categories  uintptr // *rawCoreOptionV2Category, null-terminated
	Definitions uintptr // *rawCoreOptionV2Definition, null-terminated
}

func DecodeCoreOptionsV2(ptr uintptr) CoreOptionsV2 {
	raw := (*rawCoreOptionsV2)(unsafe.Pointer(ptr))

	var categories []CoreOptionCategory
	if raw.Categories != 0 {
		stride := unsafe.Sizeof(rawCoreOptionV2Category{})
		for i := 0; ; i++ {
			entry := (*rawCoreOptionV2Category)(unsafe.Pointer(raw.Categories + uintptr(i)*stride))
			if entry.Key == nil {
				break
			}
			categories = append(categories, CoreOptionCategory{
				Key:  CString(uintptr(unsafe.Pointer(entry.Key))),
				Desc: CString(uintptr(unsafe.Pointer(entry.Desc))),
				Info: CString(uintptr(unsafe.Pointer(entry.Info))),
			})
		}
	}

	var defs []CoreOptionDefinition
	if raw.Definitions != 0 {
		stride := unsafe.Sizeof(rawCoreOptionV2Definition{})
		for i := 0; ; i++ {
			entry := (*rawCoreOptionV2Definition)(unsafe.Pointer(raw.Definitions + uintptr(i)*stride))
			if entry.Key == nil {
				break
			}
			defs = append(defs, CoreOptionDefinition{
				Key:          CString(uintptr(unsafe.Pointer(entry.Key))),
				Desc:         CString(uintptr(unsafe.Pointer(entry.Desc))),
				Info:         CString(uintptr(unsafe.Pointer(entry.Info))),
				Category:     CString(uintptr(unsafe.Pointer(entry.Category))),
				Values:       decodeOptionValues(&entry.Values),
				DefaultValue: CString(uintptr(unsafe.Pointer(entry.DefaultValue))),
			})
		}
	}

	return CoreOptionsV2{Definitions: defs, Categories: categories}
}

type rawCoreOptionDisplay struct {
	Key     *byte
	Visible bool
}

func DecodeCoreOptionDisplay(ptr uintptr) CoreOptionDisplay {
	raw := (*rawCoreOptionDisplay)(unsafe.Pointer(ptr))
	return CoreOptionDisplay{
		Key:     CString(uintptr(unsafe.Pointer(raw.Key))),
		Visible: raw.Visible,
	}
}

type rawMessageExt struct {
	Msg      *byte
	Duration uint32
	Priority uint32
	Level    int32
	Target   int32
	MsgType  int32
	Progress int8
}

func DecodeMessageExt(ptr uintptr) MessageExt {
	raw := (*rawMessageExt)(unsafe.Pointer(ptr))
	return MessageExt{
		Msg:      CString(uintptr(unsafe.Pointer(raw.Msg))),
		Duration: raw.Duration,
		Priority: raw.Priority,
		Level:    raw.Level,
		Target:   raw.Target,
		MsgType:  raw.MsgType,
		Progress: raw.Progress,
	}
}

type rawSubsystemMemoryInfo struct {
	Extension *byte
	Type      uint32
}

type rawSubsystemRomInfo struct {
	Desc            *byte
	ValidExtensions *byte
	NeedFullpath    bool
	BlockExtract    bool
	Required        bool
	Memory          *rawSubsystemMemoryInfo
	NumMemory       uint32
}

type rawSubsystemInfo struct {
	Desc  *byte
	Ident *byte
	Roms  *rawSubsystemRomInfo
	NumRoms uint32
	ID    uint32
}

func DecodeSubsystemInfoArray(ptr uintptr) []SubsystemInfo {
	var out []SubsystemInfo
	stride := unsafe.Sizeof(rawSubsystemInfo{})
	for i := 0; ; i++ {
		entry := (*rawSubsystemInfo)(unsafe.Pointer(ptr + uintptr(i)*stride))
		if entry.Desc == nil {
			break
		}
		var roms []SubsystemRomInfo
		if entry.Roms != nil {
			romStride := unsafe.Sizeof(rawSubsystemRomInfo{})
			base := uintptr(unsafe.Pointer(entry.Roms))
			for j := uint32(0); j < entry.NumRoms; j++ {
				r := (*rawSubsystemRomInfo)(unsafe.Pointer(base + uintptr(j)*romStride))
				var mem []SubsystemMemoryInfo
				if r.Memory != nil {
					memStride := unsafe.Sizeof(rawSubsystemMemoryInfo{})
					memBase := uintptr(unsafe.Pointer(r.Memory))
					for k := uint32(0); k < r.NumMemory; k++ {
						m := (*rawSubsystemMemoryInfo)(unsafe.Pointer(memBase + uintptr(k)*memStride))
						mem = append(mem, SubsystemMemoryInfo{
							Extension: CString(uintptr(unsafe.Pointer(m.Extension))),
							Type:      m.Type,
						})
					}
				}
				roms = append(roms, SubsystemRomInfo{
					Desc:            CString(uintptr(unsafe.Pointer(r.Desc))),
					ValidExtensions: CString(uintptr(unsafe.Pointer(r.ValidExtensions))),
					NeedFullpath:    r.NeedFullpath,
					BlockExtract:    r.BlockExtract,
					Required:        r.Required,
					Memory:          mem,
				})
			}
		}
		out = append(out, SubsystemInfo{
			Desc:  CString(uintptr(unsafe.Pointer(entry.Desc))),
			Ident: CString(uintptr(unsafe.Pointer(entry.Ident))),
			Roms:  roms,
			ID:    entry.ID,
		})
	}
	return out
}

type rawMemoryDescriptor struct {
	Flags      uint64
	Ptr        uintptr
	Offset     uintptr
	Start      uintptr
	Select     uintptr
	Disconnect uintptr
	Len        uintptr
	AddrSpace  *byte
}

type rawMemoryMap struct {
	Descriptors uintptr
	NumDescriptors uint32
}

func DecodeMemoryMap(ptr uintptr) MemoryMap {
	raw := (*rawMemoryMap)(unsafe.Pointer(ptr))
	if raw.Descriptors == 0 {
		return MemoryMap{}
	}
	stride := unsafe.Sizeof(rawMemoryDescriptor{})
	descs := make([]MemoryDescriptor, 0, raw.NumDescriptors)
	for i := uint32(0); i < raw.NumDescriptors; i++ {
		d := (*rawMemoryDescriptor)(unsafe.Pointer(raw.Descriptors + uintptr(i)*stride))
		descs = append(descs, MemoryDescriptor{
			Flags:      d.Flags,
			Offset:     d.Offset,
			Start:      d.Start,
			Select:     d.Select,
			Disconnect: d.Disconnect,
			Len:        d.Len,
			AddrSpace:  CString(uintptr(unsafe.Pointer(d.AddrSpace))),
		})
	}
	return MemoryMap{Descriptors: descs}
}

type rawContentInfoOverride struct {
	Extensions     *byte
	NeedFullpath   bool
	PersistentData bool
}

func DecodeContentInfoOverrideArray(ptr uintptr) []rawContentInfoOverride {
	var out []rawContentInfoOverride
	stride := unsafe.Sizeof(rawContentInfoOverride{})
	for i := 0; ; i++ {
		entry := (*rawContentInfoOverride)(unsafe.Pointer(ptr + uintptr(i)*stride))
		if entry.Extensions == nil {
			break
		}
		out = append(out, *entry)
	}
	return out
}

type rawGameInfoExt struct {
	FullPath      *byte
	ArchivePath   *byte
	ArchiveFile   *byte
	Dir           *byte
	Name          *byte
	Ext           *byte
	Meta          *byte
	Data          uintptr
	Size          uintptr
	FileInArchive bool
	Persistent    bool
}

func EncodeGameInfoExt(ptr uintptr, ext GameInfoExt, keepAlive *[]unsafe.Pointer) {
	raw := (*rawGameInfoExt)(unsafe.Pointer(ptr))
	intern := func(s string) *byte {
		b := BytesFromString(s)
		*keepAlive = append(*keepAlive, unsafe.Pointer(&b[0]))
		return &b[0]
	}
	raw.FullPath = intern(ext.FullPath)
	raw.ArchivePath = intern(ext.ArchivePath)
	raw.ArchiveFile = intern(ext.ArchiveFile)
	raw.Dir = intern(ext.Dir)
	raw.Name = intern(ext.Name)
	raw.Ext = intern(ext.Ext)
	raw.Meta = intern(ext.Meta)
	if len(ext.Data) > 0 {
		raw.Data = uintptr(unsafe.Pointer(&ext.Data[0]))
	}
	raw.Size = uintptr(len(ext.Data))
	raw.FileInArchive = ext.FileInArchive
	raw.Persistent = ext.Persistent
}

type rawDevicePower struct {
	State   int32
	Seconds int32
	Percent int8
}

func EncodeDevicePower(ptr uintptr, p DevicePower) {
	raw := (*rawDevicePower)(unsafe.Pointer(ptr))
	raw.State = p.State
	raw.Seconds = p.Seconds
	raw.Percent = p.Percent
}
