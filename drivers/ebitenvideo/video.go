// Package ebitenvideo is the windowed counterpart to drivers.ArrayVideoDriver
// and drivers.ArrayInputDriver: a VideoDriver that presents frames in an
// ebiten window and an InputDriver that polls keyboard and gamepad state,
// following the Update/Draw/Layout and pollInput shape of a cli.Runner.
package ebitenvideo

import (
	"sync"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/retrohost/retrohost/abi"
	"github.com/retrohost/retrohost/session"
)

// Driver implements drivers.VideoDriver by decoding whatever pixel format
// the core negotiated into an offscreen ebiten.Image each Refresh, ready for
// Game.Draw to scale and present.
type Driver struct {
	mu        sync.Mutex
	format    int
	rotation  int
	geometry  abi.GameGeometry
	avInfo    abi.SystemAVInfo
	offscreen *ebiten.Image
	rgba      []byte
}

// NewDriver returns a Driver with libretro's default pixel format, RGB1555.
func NewDriver() *Driver {
	return &Driver{format: abi.PixelFormatRGB1555}
}

func (d *Driver) SetPixelFormat(format int) bool {
	if abi.BytesPerPixel(format) == 0 {
		return false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.format = format
	return true
}

func (d *Driver) SetRotation(rotation int) bool {
	if rotation < abi.Rotation0 || rotation > abi.Rotation270 {
		return false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.rotation = rotation
	return true
}

func (d *Driver) SetGeometry(geometry abi.GameGeometry) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.geometry = geometry
	d.avInfo.Geometry = geometry
	return true
}

func (d *Driver) SetSystemAVInfo(avInfo abi.SystemAVInfo) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.avInfo = avInfo
	d.geometry = avInfo.Geometry
	return true
}

// Refresh decodes one frame into the offscreen image. Called from the same
// goroutine that later calls Draw (both happen inside ebiten's Update/Draw
// cycle), so no synchronization is needed between the two beyond the mutex
// already guarding format/rotation reads.
func (d *Driver) Refresh(data []byte, width, height uint32, pitch uintptr) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if data == nil {
		return // duped frame, offscreen already holds the right pixels
	}

	if d.offscreen == nil || d.offscreen.Bounds().Dx() != int(width) || d.offscreen.Bounds().Dy() != int(height) {
		d.offscreen = ebiten.NewImage(int(width), int(height))
	}

	needed := int(width) * int(height) * 4
	if cap(d.rgba) < needed {
		d.rgba = make([]byte, needed)
	}
	d.rgba = d.rgba[:needed]
	decodeToRGBA(d.rgba, data, int(width), int(height), int(pitch), d.format)
	d.offscreen.WritePixels(d.rgba)
}

// Image returns the most recently decoded frame, or nil before the first
// Refresh.
func (d *Driver) Image() *ebiten.Image {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.offscreen
}

// Rotation returns the last SET_ROTATION value, in quarter turns
// counter-clockwise.
func (d *Driver) Rotation() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.rotation
}

func decodeToRGBA(dst, src []byte, width, height, pitch, format int) {
	bpp := abi.BytesPerPixel(format)
	if bpp == 0 {
		return
	}
	for y := 0; y < height; y++ {
		row := src[y*pitch:]
		for x := 0; x < width; x++ {
			var r, g, b uint8
			switch format {
			case abi.PixelFormatXRGB8888:
				off := x * 4
				if off+4 > len(row) {
					continue
				}
				b, g, r = row[off], row[off+1], row[off+2]
			case abi.PixelFormatRGB565:
				off := x * 2
				if off+2 > len(row) {
					continue
				}
				px := uint16(row[off]) | uint16(row[off+1])<<8
				r = expand5(uint8(px >> 11 & 0x1f))
				g = expand6(uint8(px >> 5 & 0x3f))
				b = expand5(uint8(px & 0x1f))
			default: // RGB1555
				off := x * 2
				if off+2 > len(row) {
					continue
				}
				px := uint16(row[off]) | uint16(row[off+1])<<8
				r = expand5(uint8(px >> 10 & 0x1f))
				g = expand5(uint8(px >> 5 & 0x1f))
				b = expand5(uint8(px & 0x1f))
			}
			o := (y*width + x) * 4
			dst[o], dst[o+1], dst[o+2], dst[o+3] = r, g, b, 0xff
		}
	}
}

func expand5(v uint8) uint8 { return v<<3 | v>>2 }
func expand6(v uint8) uint8 { return v<<2 | v>>4 }

// Game adapts a Session plus its ebitenvideo Driver/InputDriver into an
// ebiten.Game: Update runs one core frame (skipped while unfocused, matching
// a cli.Runner), Draw scales the decoded frame to fit the window preserving
// aspect ratio.
type Game struct {
	sess  *session.Session
	video *Driver
	input *InputDriver

	drawOpts ebiten.DrawImageOptions
}

// NewGame wires a Session to an ebiten window.
func NewGame(sess *session.Session, video *Driver, input *InputDriver) *Game {
	return &Game{sess: sess, video: video, input: input}
}

func (g *Game) Update() error {
	if !ebiten.IsFocused() {
		return nil
	}
	if g.sess.ShuttingDown() {
		return ebiten.Termination
	}
	return g.sess.RunOneFrame()
}

func (g *Game) Draw(screen *ebiten.Image) {
	frame := g.video.Image()
	if frame == nil {
		return
	}

	src := frame
	if rot := g.video.Rotation(); rot != abi.Rotation0 {
		src = rotate(frame, rot)
	}

	screenW, screenH := screen.Bounds().Dx(), screen.Bounds().Dy()
	nativeW, nativeH := float64(src.Bounds().Dx()), float64(src.Bounds().Dy())
	if nativeW == 0 || nativeH == 0 {
		return
	}

	scale := float64(screenW) / nativeW
	if s := float64(screenH) / nativeH; s < scale {
		scale = s
	}
	offsetX := (float64(screenW) - nativeW*scale) / 2
	offsetY := (float64(screenH) - nativeH*scale) / 2

	g.drawOpts = ebiten.DrawImageOptions{}
	g.drawOpts.GeoM.Scale(scale, scale)
	g.drawOpts.GeoM.Translate(offsetX, offsetY)
	g.drawOpts.Filter = ebiten.FilterNearest
	screen.DrawImage(src, &g.drawOpts)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// rotate returns a freshly rendered copy of img turned counter-clockwise by
// rotation quarter turns. Allocates every call; SET_ROTATION is rare enough
// (once per core, not per frame) that this isn't worth caching.
func rotate(img *ebiten.Image, rotation int) *ebiten.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	outW, outH := w, h
	if rotation == abi.Rotation90 || rotation == abi.Rotation270 {
		outW, outH = h, w
	}
	out := ebiten.NewImage(outW, outH)

	op := &ebiten.DrawImageOptions{}
	switch rotation {
	case abi.Rotation90:
		op.GeoM.Rotate(-halfPi)
		op.GeoM.Translate(0, float64(w))
	case abi.Rotation180:
		op.GeoM.Rotate(-halfPi * 2)
		op.GeoM.Translate(float64(w), float64(h))
	case abi.Rotation270:
		op.GeoM.Rotate(-halfPi * 3)
		op.GeoM.Translate(float64(h), 0)
	}
	out.DrawImage(img, op)
	return out
}

const halfPi = 1.5707963267948966
