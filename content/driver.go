package content

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/retrohost/retrohost/abi"
	"github.com/retrohost/retrohost/drivers"
)

// ErrContentError wraps any failure encountered while resolving a content
// request into loadable bytes.
type ErrContentError struct {
	Path string
	Err  error
}

func (e *ErrContentError) Error() string {
	return fmt.Sprintf("content: %s: %v", e.Path, e.Err)
}

func (e *ErrContentError) Unwrap() error { return e.Err }

// Driver is the default drivers.ContentDriver: it resolves a request to a
// local path or raw bytes, transparently extracting from a recognized
// archive when the request names one, and can additionally resolve a whole
// retro_subsystem_info's worth of files concurrently for
// retro_load_game_special.
type Driver struct {
	mu                  sync.Mutex
	extendedInfoEnabled bool
	lastExt             abi.GameInfoExt
	haveLastExt         bool
	systemInfo          abi.SystemInfo
	haveSystemInfo      bool
	overrides           []drivers.ContentInfoOverride
}

func NewDriver() *Driver {
	return &Driver{}
}

func (d *Driver) EnableExtendedInfo(enable bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.extendedInfoEnabled = enable
}

func (d *Driver) GameInfoExt() (abi.GameInfoExt, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastExt, d.haveLastExt
}

func (d *Driver) SetSystemInfo(info abi.SystemInfo) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.systemInfo = info
	d.haveSystemInfo = true
}

func (d *Driver) SystemInfo() (abi.SystemInfo, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.systemInfo, d.haveSystemInfo
}

func (d *Driver) SetOverrides(overrides []drivers.ContentInfoOverride) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.overrides = overrides
}

func (d *Driver) extensionsFor(path string) []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.haveSystemInfo && d.systemInfo.ValidExtensions != "" {
		exts := strings.Split(d.systemInfo.ValidExtensions, "|")
		for i, e := range exts {
			exts[i] = "." + strings.TrimPrefix(e, ".")
		}
		return exts
	}
	return nil
}

func (d *Driver) needFullpathFor(path string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	for _, o := range d.overrides {
		for _, e := range o.Extensions {
			if strings.TrimPrefix(strings.ToLower(e), ".") == ext {
				return o.NeedFullpath
			}
		}
	}
	return d.haveSystemInfo && d.systemInfo.NeedFullpath
}

// Load resolves one content request into the file(s) a core sees for a
// plain (non-subsystem) retro_load_game call.
func (d *Driver) Load(req drivers.ContentRequest) (drivers.LoadedContent, error) {
	if req.NoGame {
		return drivers.LoadedContent{}, nil
	}
	file, err := d.resolveOne(req)
	if err != nil {
		return drivers.LoadedContent{}, err
	}
	return drivers.LoadedContent{Files: []drivers.LoadedContentFile{file}}, nil
}

// LoadSpecial resolves every ROM slot of a subsystem concurrently via
// errgroup, one goroutine per request with no concurrency limit. This only ever
// runs before retro_load_game_special, never inside the single-threaded
// retro_run loop.
func (d *Driver) LoadSpecial(info abi.SubsystemInfo, reqs []drivers.ContentRequest) (drivers.LoadedContent, error) {
	files := make([]drivers.LoadedContentFile, len(reqs))

	var g errgroup.Group
	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			file, err := d.resolveOne(req)
			if err != nil {
				return err
			}
			files[i] = file
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return drivers.LoadedContent{}, err
	}

	subsystem := info
	return drivers.LoadedContent{Subsystem: &subsystem, Files: files}, nil
}

func (d *Driver) resolveOne(req drivers.ContentRequest) (drivers.LoadedContentFile, error) {
	if req.Path == "" {
		info := abi.GameInfo{Data: req.Data}
		return drivers.LoadedContentFile{Info: info}, nil
	}

	if d.needFullpathFor(req.Path) {
		info := abi.GameInfo{Path: req.Path}
		file := drivers.LoadedContentFile{Info: info}
		d.attachExtIfEnabled(&file, req.Path, nil)
		return file, nil
	}

	data, name, err := loadFromPath(req.Path, d.extensionsFor(req.Path))
	if err != nil {
		return drivers.LoadedContentFile{}, &ErrContentError{Path: req.Path, Err: err}
	}

	info := abi.GameInfo{Path: req.Path, Data: data}
	file := drivers.LoadedContentFile{Info: info}
	d.attachExtIfEnabled(&file, req.Path, &name)
	return file, nil
}

func (d *Driver) attachExtIfEnabled(file *drivers.LoadedContentFile, path string, archiveMember *string) {
	d.mu.Lock()
	enabled := d.extendedInfoEnabled
	d.mu.Unlock()
	if !enabled {
		return
	}

	ext := abi.GameInfoExt{
		FullPath: path,
		Dir:      filepath.Dir(path),
		Ext:      strings.TrimPrefix(filepath.Ext(path), "."),
		Data:     file.Info.Data,
	}
	if archiveMember != nil {
		ext.FileInArchive = true
		ext.ArchivePath = path
		ext.ArchiveFile = *archiveMember
		ext.Name = strings.TrimSuffix(*archiveMember, filepath.Ext(*archiveMember))
	} else {
		base := filepath.Base(path)
		ext.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	file.Ext = ext
	file.HasExt = true

	d.mu.Lock()
	d.lastExt = ext
	d.haveLastExt = true
	d.mu.Unlock()
}
