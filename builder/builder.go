// Package builder assembles a session.Session from a core path plus
// whichever capability drivers a caller wants wired in, following the
// fluent configuration style of original_source's SessionBuilder: each
// With* method sets one piece of the session and returns the builder so
// calls chain, and Defaults seeds every required driver with the same
// in-memory defaults original_source's builder.defaults() used.
package builder

import (
	"log"
	"sync"

	"golang.design/x/clipboard"

	"github.com/retrohost/retrohost/content"
	"github.com/retrohost/retrohost/drivers"
	"github.com/retrohost/retrohost/env"
	"github.com/retrohost/retrohost/session"
)

// Builder accumulates a session's driver configuration before Build dlopens
// the core and wires everything together.
type Builder struct {
	corePath string

	video      drivers.VideoDriver
	audio      drivers.AudioDriver
	input      drivers.InputDriver
	content    drivers.ContentDriver
	options    drivers.OptionDriver
	path       drivers.PathDriver
	log        drivers.LogDriver
	perf       drivers.PerfDriver
	location   drivers.LocationDriver
	user       drivers.UserDriver
	vfs        drivers.VFSInterface
	led        drivers.LEDDriver
	midi       drivers.MIDIDriver
	message    drivers.MessageDriver
	power      drivers.PowerDriver
	camera     drivers.CameraDriver
	sensor     drivers.SensorDriver
	microphone drivers.MicrophoneDriver
	rumble     drivers.RumbleDriver

	systemDir, saveDir, contentDir string
}

// New starts a Builder for the core at corePath with no drivers wired; a
// Session built this way reports every optional environment command as
// unsupported until With* calls add capability drivers.
func New(corePath string) *Builder {
	return &Builder{corePath: corePath}
}

// Defaults starts a Builder pre-wired with the in-memory default drivers:
// ArrayVideoDriver, ArrayAudioDriver, ArrayInputDriver, a v2-capable
// DefaultOptionDriver, the archive-aware content.Driver, and a
// LoggerMessageInterface. Mirrors original_source's defaults() helper.
func Defaults(corePath string) *Builder {
	return New(corePath).
		WithVideo(drivers.NewArrayVideoDriver()).
		WithAudio(drivers.NewArrayAudioDriver()).
		WithInput(drivers.NewArrayInputDriver()).
		WithOptions(drivers.NewDefaultOptionDriver()).
		WithContent(content.NewDriver()).
		WithMessage(drivers.NewLoggerMessageInterface(nil))
}

func (b *Builder) WithVideo(v drivers.VideoDriver) *Builder { b.video = v; return b }
func (b *Builder) WithAudio(a drivers.AudioDriver) *Builder { b.audio = a; return b }
func (b *Builder) WithInput(i drivers.InputDriver) *Builder { b.input = i; return b }
func (b *Builder) WithContent(c drivers.ContentDriver) *Builder { b.content = c; return b }
func (b *Builder) WithOptions(o drivers.OptionDriver) *Builder { b.options = o; return b }
func (b *Builder) WithPathDriver(p drivers.PathDriver) *Builder { b.path = p; return b }
func (b *Builder) WithLog(l drivers.LogDriver) *Builder { b.log = l; return b }

// WithLogger is a convenience over WithLog for callers that already have a
// *log.Logger rather than a drivers.LogDriver.
func (b *Builder) WithLogger(logger *log.Logger) *Builder {
	b.log = drivers.NewStdLogDriver(logger)
	return b
}
func (b *Builder) WithPerf(p drivers.PerfDriver) *Builder { b.perf = p; return b }
func (b *Builder) WithLocation(l drivers.LocationDriver) *Builder { b.location = l; return b }
func (b *Builder) WithUser(u drivers.UserDriver) *Builder { b.user = u; return b }
func (b *Builder) WithVFS(v drivers.VFSInterface) *Builder { b.vfs = v; return b }
func (b *Builder) WithLED(l drivers.LEDDriver) *Builder { b.led = l; return b }
func (b *Builder) WithMIDI(m drivers.MIDIDriver) *Builder { b.midi = m; return b }
func (b *Builder) WithMessage(m drivers.MessageDriver) *Builder { b.message = m; return b }
func (b *Builder) WithPower(p drivers.PowerDriver) *Builder { b.power = p; return b }
func (b *Builder) WithCamera(c drivers.CameraDriver) *Builder { b.camera = c; return b }
func (b *Builder) WithSensor(s drivers.SensorDriver) *Builder { b.sensor = s; return b }
func (b *Builder) WithMicrophone(m drivers.MicrophoneDriver) *Builder { b.microphone = m; return b }
func (b *Builder) WithRumble(r drivers.RumbleDriver) *Builder { b.rumble = r; return b }

// WithPaths sets the directories GET_SYSTEM_DIRECTORY / GET_SAVE_DIRECTORY /
// GET_CONTENT_DIRECTORY answer, backed by a DefaultPathDriver built at
// Build time (once corePath is known, for GET_LIBRETRO_PATH).
func (b *Builder) WithPaths(systemDir, saveDir, contentDir string) *Builder {
	b.systemDir, b.saveDir, b.contentDir = systemDir, saveDir, contentDir
	return b
}

// WithClipboardMirror wraps the builder's current MessageDriver (or a fresh
// LoggerMessageInterface if none was set) in a ClipboardMessageInterface
// that also copies each shown message to the system clipboard via
// golang.design/x/clipboard. clipboard.Init is called lazily, once, the
// first time a message is actually shown.
func (b *Builder) WithClipboardMirror() *Builder {
	inner := b.message
	if inner == nil {
		inner = drivers.NewLoggerMessageInterface(nil)
	}
	b.message = &drivers.ClipboardMessageInterface{
		Inner: inner,
		Write: clipboardWrite,
	}
	return b
}

var (
	clipboardInitOnce sync.Once
	clipboardInitErr  error
)

func clipboardWrite(data []byte) error {
	clipboardInitOnce.Do(func() {
		clipboardInitErr = clipboard.Init()
	})
	if clipboardInitErr != nil {
		return clipboardInitErr
	}
	clipboard.Write(clipboard.FmtText, data)
	return nil
}

// Build dlopens the core, wires every configured driver into a
// CompositeEnvironmentDriver, and returns a ready-to-use Session.
func (b *Builder) Build() (*session.Session, error) {
	envDriver := env.New()
	envDriver.Video = b.video
	envDriver.Audio = b.audio
	envDriver.Input = b.input
	envDriver.Content = b.content
	envDriver.Options = b.options
	envDriver.Log = b.log
	envDriver.Perf = b.perf
	envDriver.Location = b.location
	envDriver.User = b.user
	envDriver.VFS = b.vfs
	envDriver.LED = b.led
	envDriver.MIDI = b.midi
	envDriver.Message = b.message
	envDriver.Power = b.power
	envDriver.Camera = b.camera
	envDriver.Sensor = b.sensor
	envDriver.Microphone = b.microphone
	envDriver.Rumble = b.rumble

	path := b.path
	if path == nil && (b.systemDir != "" || b.saveDir != "" || b.contentDir != "") {
		path = drivers.DefaultPathDriver{
			System:   b.systemDir,
			Save:     b.saveDir,
			Content:  b.contentDir,
			CorePath: b.corePath,
		}
	}
	envDriver.Path = path

	return session.Open(b.corePath, envDriver, b.content)
}
