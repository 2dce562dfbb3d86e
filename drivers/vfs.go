package drivers

import (
	"io"
	"os"

	"github.com/spf13/afero"
)

// VFS open mode / seek constants, mirroring RETRO_VFS_FILE_ACCESS_* and
// RETRO_VFS_SEEK_POSITION_*.
const (
	VFSOpenRead      = 1 << 0
	VFSOpenWrite     = 1 << 1
	VFSOpenReadWrite = VFSOpenRead | VFSOpenWrite
	VFSOpenUpdate    = 1 << 2

	VFSSeekStart   = 0
	VFSSeekCurrent = 1
	VFSSeekEnd     = 2
)

// AferoVFS implements VFSInterface over an afero.Fs, letting the same code
// path run against the real OS filesystem (afero.NewOsFs) or an in-memory
// one (afero.NewMemMapFs) in tests.
type AferoVFS struct {
	fs afero.Fs
}

func NewAferoVFS(fs afero.Fs) *AferoVFS {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &AferoVFS{fs: fs}
}

type aferoFileHandle struct {
	f afero.File
}

type aferoDirHandle struct {
	entries []os.FileInfo
	idx     int
}

func (v *AferoVFS) Open(path string, mode int, hints int) (VFSHandle, error) {
	flag := os.O_RDONLY
	switch {
	case mode&VFSOpenReadWrite == VFSOpenReadWrite:
		flag = os.O_RDWR | os.O_CREATE
	case mode&VFSOpenWrite != 0:
		flag = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	f, err := v.fs.OpenFile(path, flag, 0o644)
	if err != nil {
		return nil, err
	}
	return &aferoFileHandle{f: f}, nil
}

func (v *AferoVFS) Close(handle VFSHandle) error {
	h := handle.(*aferoFileHandle)
	return h.f.Close()
}

func (v *AferoVFS) Size(handle VFSHandle) (int64, error) {
	h := handle.(*aferoFileHandle)
	info, err := h.f.Stat()
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func (v *AferoVFS) Truncate(handle VFSHandle, length int64) error {
	h := handle.(*aferoFileHandle)
	return h.f.Truncate(length)
}

func (v *AferoVFS) Tell(handle VFSHandle) (int64, error) {
	h := handle.(*aferoFileHandle)
	return h.f.Seek(0, io.SeekCurrent)
}

func (v *AferoVFS) Seek(handle VFSHandle, offset int64, whence int) (int64, error) {
	h := handle.(*aferoFileHandle)
	return h.f.Seek(offset, whence)
}

func (v *AferoVFS) Read(handle VFSHandle, buf []byte) (int, error) {
	h := handle.(*aferoFileHandle)
	return h.f.Read(buf)
}

func (v *AferoVFS) Write(handle VFSHandle, buf []byte) (int, error) {
	h := handle.(*aferoFileHandle)
	return h.f.Write(buf)
}

func (v *AferoVFS) Flush(handle VFSHandle) error {
	h := handle.(*aferoFileHandle)
	return h.f.Sync()
}

func (v *AferoVFS) Remove(path string) error {
	return v.fs.Remove(path)
}

func (v *AferoVFS) Rename(oldPath, newPath string) error {
	return v.fs.Rename(oldPath, newPath)
}

func (v *AferoVFS) Stat(path string) (VFSStat, error) {
	info, err := v.fs.Stat(path)
	if err != nil {
		return VFSStat{}, err
	}
	return VFSStat{Size: info.Size(), IsDir: info.IsDir()}, nil
}

func (v *AferoVFS) MkDir(path string) error {
	return v.fs.MkdirAll(path, 0o755)
}

func (v *AferoVFS) OpenDir(path string) (VFSDirHandle, error) {
	entries, err := afero.ReadDir(v.fs, path)
	if err != nil {
		return nil, err
	}
	return &aferoDirHandle{entries: entries, idx: -1}, nil
}

func (v *AferoVFS) ReadDir(handle VFSDirHandle) bool {
	h := handle.(*aferoDirHandle)
	h.idx++
	return h.idx < len(h.entries)
}

func (v *AferoVFS) DirEntryName(handle VFSDirHandle) string {
	h := handle.(*aferoDirHandle)
	if h.idx < 0 || h.idx >= len(h.entries) {
		return ""
	}
	return h.entries[h.idx].Name()
}

func (v *AferoVFS) DirEntryIsDir(handle VFSDirHandle) bool {
	h := handle.(*aferoDirHandle)
	if h.idx < 0 || h.idx >= len(h.entries) {
		return false
	}
	return h.entries[h.idx].IsDir()
}

func (v *AferoVFS) CloseDir(handle VFSDirHandle) error {
	return nil
}
