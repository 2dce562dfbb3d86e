package env

import (
	"github.com/retrohost/retrohost/drivers"
)

// CompositeEnvironmentDriver is the single environment(cmd, data) entry
// point a Core Handle hands a core. It owns the negotiated State and holds
// a reference to each optional capability driver; a nil driver field means
// most of the corresponding commands are reported unsupported (return false)
// instead of panicking (see Dispatch for the exceptions).
type CompositeEnvironmentDriver struct {
	State *State

	Video       drivers.VideoDriver
	Audio       drivers.AudioDriver
	Input       drivers.InputDriver
	Content     drivers.ContentDriver
	Options     drivers.OptionDriver
	Path        drivers.PathDriver
	Log         drivers.LogDriver
	Perf        drivers.PerfDriver
	Location    drivers.LocationDriver
	User        drivers.UserDriver
	VFS         drivers.VFSInterface
	LED         drivers.LEDDriver
	MIDI        drivers.MIDIDriver
	Message     drivers.MessageDriver
	Microphone  drivers.MicrophoneDriver
	Power       drivers.PowerDriver
	Camera      drivers.CameraDriver
	Sensor      drivers.SensorDriver
	Rumble      drivers.RumbleDriver

	// CorePath backs GET_LIBRETRO_PATH independent of a
	// full PathDriver, since a session always knows the path it dlopened.
	CorePath string

	// OnShutdown is invoked when a core calls RETRO_ENVIRONMENT_SHUTDOWN.
	// The session checks State.Shutdown between frames; this hook exists
	// for callers that want to react immediately (e.g. logging).
	OnShutdown func()
}

// New builds a CompositeEnvironmentDriver with a fresh State and no
// optional drivers wired; callers assign driver fields directly (the
// builder package does this from its fluent configuration).
func New() *CompositeEnvironmentDriver {
	return &CompositeEnvironmentDriver{State: NewState()}
}

// Callback is the function signature abi.Callbacks.Environment expects:
// purego hands data to us as a raw pointer into core (or core-adjacent)
// memory, and it is passed on to Dispatch as that raw uintptr; Dispatch
// decodes it per command.
func (c *CompositeEnvironmentDriver) Callback(cmd uint32, data uintptr) bool {
	return c.Dispatch(cmd, data)
}
