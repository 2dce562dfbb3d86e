package drivers

import (
	"sync"

	"github.com/retrohost/retrohost/abi"
)

// ArrayVideoDriver buffers the most recently refreshed frame in memory,
// named after original_source's ArrayVideoDriver. It accepts any pixel
// format and geometry a core negotiates; a real display backend
// (drivers/ebitenvideo) decorates or replaces it.
type ArrayVideoDriver struct {
	mu          sync.Mutex
	format      int
	rotation    int
	geometry    abi.GameGeometry
	avInfo      abi.SystemAVInfo
	frame       []byte
	frameWidth  uint32
	frameHeight uint32
	framePitch  uintptr
}

func NewArrayVideoDriver() *ArrayVideoDriver {
	return &ArrayVideoDriver{format: abi.PixelFormatRGB1555}
}

func (d *ArrayVideoDriver) SetPixelFormat(format int) bool {
	if abi.BytesPerPixel(format) == 0 {
		return false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.format = format
	return true
}

func (d *ArrayVideoDriver) SetRotation(rotation int) bool {
	if rotation < abi.Rotation0 || rotation > abi.Rotation270 {
		return false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.rotation = rotation
	return true
}

func (d *ArrayVideoDriver) SetGeometry(geometry abi.GameGeometry) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.geometry = geometry
	d.avInfo.Geometry = geometry
	return true
}

func (d *ArrayVideoDriver) SetSystemAVInfo(avInfo abi.SystemAVInfo) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.avInfo = avInfo
	d.geometry = avInfo.Geometry
	return true
}

func (d *ArrayVideoDriver) Refresh(data []byte, width, height uint32, pitch uintptr) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if data == nil {
		// Duped frame: keep the previous buffer, only refresh dimensions.
		d.frameWidth, d.frameHeight, d.framePitch = width, height, pitch
		return
	}
	if cap(d.frame) < len(data) {
		d.frame = make([]byte, len(data))
	} else {
		d.frame = d.frame[:len(data)]
	}
	copy(d.frame, data)
	d.frameWidth, d.frameHeight, d.framePitch = width, height, pitch
}

// LastFrame returns a copy of the most recently refreshed frame along with
// its dimensions, pitch and pixel format.
func (d *ArrayVideoDriver) LastFrame() (data []byte, width, height uint32, pitch uintptr, format int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]byte, len(d.frame))
	copy(out, d.frame)
	return out, d.frameWidth, d.frameHeight, d.framePitch, d.format
}

func (d *ArrayVideoDriver) Geometry() abi.GameGeometry {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.geometry
}
