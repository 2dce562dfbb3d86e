// Package session ties a Core Handle, a Composite Environment Driver and a
// content driver together into one runnable unit: load a core, load a game,
// run frames, save/load state, and tear everything down in the right order.
// A Session is the thing package builder hands back to a caller; package
// cmd/retrohost drives one directly from the command line.
package session

import (
	"fmt"
	"sync"

	"github.com/retrohost/retrohost/abi"
	"github.com/retrohost/retrohost/corehandle"
	"github.com/retrohost/retrohost/drivers"
	"github.com/retrohost/retrohost/env"
)

// Session owns one loaded core for its entire lifetime: the dlopen'd
// EntryPoints via corehandle.Handle, the environment() callback target via
// env.CompositeEnvironmentDriver, the bound trampolines via abi.Callbacks,
// and whichever content driver resolved the game(s) it loaded.
type Session struct {
	mu sync.Mutex

	handle      *corehandle.Handle
	env         *env.CompositeEnvironmentDriver
	content     drivers.ContentDriver
	cb          *abi.Callbacks
	libraryName string
}

// Open dlopens the core at path, wires the five run-loop callbacks and the
// environment callback to env, and runs retro_init. The Session is usable
// (LoadGame, RunOneFrame, ...) once Open returns without error.
func Open(corePath string, envDriver *env.CompositeEnvironmentDriver, content drivers.ContentDriver) (*Session, error) {
	handle, err := corehandle.Load(corePath)
	if err != nil {
		return nil, err
	}

	envDriver.CorePath = corePath

	s := &Session{
		handle:  handle,
		env:     envDriver,
		content: content,
	}

	// Video/audio/input refresh land directly on whichever drivers the
	// caller wired into envDriver; the Session itself never touches pixel
	// or sample data, only the plumbing that gets it there.
	cb := abi.NewCallbacks()
	cb.Environment = envDriver.Callback
	cb.VideoRefresh = func(data uintptr, width, height uint32, pitch uintptr) {
		if envDriver.Video == nil {
			return
		}
		var buf []byte
		if data != abi.HWFrameBufferValid && data != 0 {
			buf = abi.ReadBytes(data, int(pitch)*int(height))
		}
		envDriver.Video.Refresh(buf, width, height, pitch)
	}
	cb.AudioSample = func(left, right int16) {
		if envDriver.Audio != nil {
			envDriver.Audio.Sample(left, right)
		}
	}
	cb.AudioSampleBatch = func(data uintptr, frames uintptr) uintptr {
		if envDriver.Audio == nil {
			return frames
		}
		samples := abi.ReadBytes(data, int(frames)*4)
		s16 := bytesToInt16(samples)
		consumed := envDriver.Audio.SampleBatch(s16, int(frames))
		return uintptr(consumed)
	}
	cb.InputPoll = func() {
		if envDriver.Input != nil {
			envDriver.Input.Poll()
		}
	}
	cb.InputState = func(port, device, index, id uint32) int16 {
		if envDriver.Input == nil {
			return 0
		}
		return envDriver.Input.State(port, device, index, id)
	}
	cb.Bind()
	s.cb = cb

	ep := handle.EntryPoints()
	ep.SetEnvironment(cb.EnvironmentPtr())
	ep.SetVideoRefresh(cb.VideoRefreshPtr())
	ep.SetAudioSample(cb.AudioSamplePtr())
	ep.SetAudioSampleBatch(cb.AudioSampleBatchPtr())
	ep.SetInputPoll(cb.InputPollPtr())
	ep.SetInputState(cb.InputStatePtr())

	if err := handle.Init(); err != nil {
		// handle.Close() requires the Deinitialized state; Init failed before
		// that transition, so close the shared library directly.
		ep.Close()
		return nil, err
	}

	sysInfo := ep.SystemInfo()
	s.libraryName = sysInfo.LibraryName
	if content != nil {
		content.SetSystemInfo(sysInfo)
	}

	return s, nil
}

func bytesToInt16(b []byte) []int16 {
	out := make([]int16, len(b)/2)
	for i := range out {
		out[i] = int16(uint16(b[2*i]) | uint16(b[2*i+1])<<8)
	}
	return out
}

// LoadGame resolves req via the Session's content driver (if any) and runs
// retro_load_game. Passing a zero-value ContentRequest with NoGame set loads
// no content, valid only if the core previously reported support_no_game.
func (s *Session) LoadGame(req drivers.ContentRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if req.NoGame {
		return s.afterLoad(s.handle.LoadGame(nil))
	}

	if s.content == nil {
		info := abi.GameInfo{Path: req.Path, Data: req.Data}
		return s.afterLoad(s.handle.LoadGame(&info))
	}

	loaded, err := s.content.Load(req)
	if err != nil {
		return err
	}
	if len(loaded.Files) == 0 {
		return s.afterLoad(s.handle.LoadGame(nil))
	}
	return s.afterLoad(s.handle.LoadGame(&loaded.Files[0].Info))
}

// afterLoad seeds env.State's AV info from retro_get_system_av_info right
// after a successful load, for cores that answer it only on direct query
// and never call RETRO_ENVIRONMENT_SET_SYSTEM_AV_INFO themselves. A core
// that did call it during the load already has State.HaveSystemAVInfo set,
// and SetSystemAVInfo leaves that value alone.
func (s *Session) afterLoad(err error) error {
	if err != nil {
		return err
	}
	s.env.State.SetSystemAVInfo(s.handle.EntryPoints().SystemAVInfo())
	return nil
}

// LoadGameSpecial resolves every request against a subsystem descriptor and
// runs retro_load_game_special.
func (s *Session) LoadGameSpecial(gameType uint32, info abi.SubsystemInfo, reqs []drivers.ContentRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.content == nil {
		return fmt.Errorf("session: subsystem load requires a content driver")
	}

	loaded, err := s.content.LoadSpecial(info, reqs)
	if err != nil {
		return err
	}
	games := make([]abi.GameInfo, len(loaded.Files))
	for i, f := range loaded.Files {
		games[i] = f.Info
	}
	return s.afterLoad(s.handle.LoadGameSpecial(gameType, games))
}

// RunOneFrame runs exactly one retro_run call, matching the single-threaded
// cooperative model: this call always runs to completion before returning.
func (s *Session) RunOneFrame() error {
	return s.handle.Run()
}

// Reset runs retro_reset.
func (s *Session) Reset() error {
	return s.handle.Reset()
}

// Serialize writes the core's full save-state into a freshly sized buffer.
func (s *Session) Serialize() ([]byte, error) {
	size, err := s.handle.SerializeSize()
	if err != nil {
		return nil, err
	}
	if size == 0 {
		return nil, fmt.Errorf("session: core reports zero serialize size")
	}
	buf := make([]byte, size)
	ok, err := s.handle.Serialize(buf)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("session: retro_serialize failed")
	}
	return buf, nil
}

// Unserialize restores a save-state previously produced by Serialize.
func (s *Session) Unserialize(buf []byte) error {
	ok, err := s.handle.Unserialize(buf)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("session: retro_unserialize failed")
	}
	return nil
}

// CheatReset clears all active cheats.
func (s *Session) CheatReset() error { return s.handle.CheatReset() }

// CheatSet installs (or removes, if enabled is false) one cheat code.
func (s *Session) CheatSet(index uint32, enabled bool, code string) error {
	return s.handle.CheatSet(index, enabled, code)
}

// GetMemory returns a view of one memory region (RETRO_MEMORY_SAVE_RAM,
// RETRO_MEMORY_RTC, RETRO_MEMORY_SYSTEM_RAM, RETRO_MEMORY_VIDEO_RAM), or nil
// if the core doesn't expose that region for the current content.
func (s *Session) GetMemory(region uint32) []byte {
	return s.handle.MemoryData(region)
}

// State exposes the negotiated environment state (pixel format, AV info,
// option values, ...) for callers that need to inspect it directly.
func (s *Session) State() *env.State {
	return s.env.State
}

// Options returns the Session's OptionDriver, or nil if none was wired in.
func (s *Session) Options() drivers.OptionDriver {
	return s.env.Options
}

// SetAudio swaps the AudioDriver the run-loop callbacks deliver samples to.
// Safe to call after Open or LoadGame, once a core's negotiated sample rate
// is known and a real output backend (e.g. otoaudio.Player) can be opened
// at the right rate.
func (s *Session) SetAudio(a drivers.AudioDriver) {
	s.env.Audio = a
}

// LibraryName returns the core's retro_system_info library name, captured
// at Open time.
func (s *Session) LibraryName() string {
	return s.libraryName
}

// ShuttingDown reports whether the core has ever called
// RETRO_ENVIRONMENT_SHUTDOWN; the flag is never cleared. Callers should poll
// this between frames.
func (s *Session) ShuttingDown() bool {
	return s.env.State.IsShutdown()
}

// Unload runs the full teardown sequence: unload the game (if one is
// loaded), retro_deinit, then dlclose. Unload is safe to call from a
// deferred cleanup even if LoadGame was never called, as long as Open
// succeeded; a second call returns the Core Handle's wrong-state error.
func (s *Session) Unload() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.handle.State() == corehandle.StateGameLoaded || s.handle.State() == corehandle.StateRunning {
		if err := s.handle.UnloadGame(); err != nil {
			return err
		}
	}
	if err := s.handle.Deinit(); err != nil {
		return err
	}
	return s.handle.Close()
}
