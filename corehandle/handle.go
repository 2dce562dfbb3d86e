// Package corehandle implements the Core Handle: the lifecycle state
// machine wrapped around one dlopen'd libretro core, from loading the
// shared library through retro_init, content loading, frame execution, and
// teardown.
package corehandle

import (
	"errors"
	"fmt"
	"sync"

	"github.com/retrohost/retrohost/abi"
)

// State is the Core Handle's lifecycle state:
// Loaded -> Initialized -> GameLoaded -> Running <-> Running ->
// Unloaded -> Deinitialized -> Closed.
type State int

const (
	StateLoaded State = iota
	StateInitialized
	StateGameLoaded
	StateRunning
	StateUnloaded
	StateDeinitialized
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateLoaded:
		return "loaded"
	case StateInitialized:
		return "initialized"
	case StateGameLoaded:
		return "game_loaded"
	case StateRunning:
		return "running"
	case StateUnloaded:
		return "unloaded"
	case StateDeinitialized:
		return "deinitialized"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Sentinel errors for the lifecycle's error-handling taxonomy.
var (
	ErrWrongState      = errors.New("corehandle: operation invalid in current lifecycle state")
	ErrABIViolation    = errors.New("corehandle: core violated the libretro ABI contract")
	ErrCoreLoadFailed  = errors.New("corehandle: failed to load core")
	ErrAlreadyClosed   = errors.New("corehandle: handle already closed")
)

// Handle owns one loaded core's lifecycle. It is not safe for concurrent
// use by multiple goroutines without external synchronization: libretro
// cores assume a single owner thread driving a cooperative run loop.
type Handle struct {
	mu    sync.Mutex
	path  string
	ep    *abi.EntryPoints
	state State

	environmentCmd func(cmd uint32, data uintptr) bool
}

// Load dlopens the core at path and resolves its entry points, checking
// retro_api_version() against the ABI version this frontend was built
// against. The handle starts in StateLoaded; retro_init has not run yet.
func Load(path string) (*Handle, error) {
	ep, err := abi.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCoreLoadFailed, err)
	}

	version := ep.APIVersion()
	if version != abi.APIVersion {
		ep.Close()
		return nil, fmt.Errorf("%w: core %q reports API version %d, want %d", ErrCoreLoadFailed, path, version, abi.APIVersion)
	}

	return &Handle{path: path, ep: ep, state: StateLoaded}, nil
}

// State returns the handle's current lifecycle state.
func (h *Handle) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Path returns the filesystem path this handle was loaded from.
func (h *Handle) Path() string { return h.path }

// EntryPoints exposes the resolved core functions for callers (typically
// package session) that need direct access beyond the lifecycle methods
// here, e.g. wiring the five run-loop callbacks before Init.
func (h *Handle) EntryPoints() *abi.EntryPoints { return h.ep }

func (h *Handle) requireState(want State) error {
	if h.state != want {
		return fmt.Errorf("%w: need %s, have %s", ErrWrongState, want, h.state)
	}
	return nil
}

// Init runs retro_init. The caller must have already called
// SetEnvironment/SetVideoRefresh/etc. on EntryPoints so the core's first
// calls back into the frontend land somewhere.
func (h *Handle) Init() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.requireState(StateLoaded); err != nil {
		return err
	}
	h.ep.Init()
	h.state = StateInitialized
	return nil
}

// LoadGame runs retro_load_game. game may be nil only if the core
// previously reported support_no_game via SET_SUPPORT_NO_GAME.
func (h *Handle) LoadGame(game *abi.GameInfo) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.requireState(StateInitialized); err != nil {
		return err
	}

	holder := abi.NewGameInfoHolder(game)

	ok := h.ep.LoadGame(holder.Ptr())
	if !ok {
		return fmt.Errorf("corehandle: retro_load_game failed for %q", h.path)
	}
	h.state = StateGameLoaded
	return nil
}

// LoadGameSpecial runs retro_load_game_special for a subsystem load.
func (h *Handle) LoadGameSpecial(gameType uint32, games []abi.GameInfo) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.requireState(StateInitialized); err != nil {
		return err
	}

	arr := abi.NewGameInfoArray(games)

	ok := h.ep.LoadGameSpecial(gameType, arr.Ptr(), uintptr(len(games)))
	if !ok {
		return fmt.Errorf("corehandle: retro_load_game_special failed for %q", h.path)
	}
	h.state = StateGameLoaded
	return nil
}

// Run executes one retro_run call. The caller must have moved into
// StateGameLoaded (or already be StateRunning) first; RunOneFrame always
// runs to completion per the single-threaded cooperative model, there is
// no mid-frame suspension point.
func (h *Handle) Run() error {
	h.mu.Lock()
	if h.state != StateGameLoaded && h.state != StateRunning {
		h.mu.Unlock()
		return fmt.Errorf("%w: need game_loaded or running, have %s", ErrWrongState, h.state)
	}
	h.state = StateRunning
	ep := h.ep
	h.mu.Unlock()

	ep.Run()
	return nil
}

func (h *Handle) Reset() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state != StateGameLoaded && h.state != StateRunning {
		return fmt.Errorf("%w: reset requires a loaded game", ErrWrongState)
	}
	h.ep.Reset()
	return nil
}

func (h *Handle) SerializeSize() (uintptr, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state != StateGameLoaded && h.state != StateRunning {
		return 0, fmt.Errorf("%w: serialize requires a loaded game", ErrWrongState)
	}
	return h.ep.SerializeSize(), nil
}

func (h *Handle) Serialize(buf []byte) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state != StateGameLoaded && h.state != StateRunning {
		return false, fmt.Errorf("%w: serialize requires a loaded game", ErrWrongState)
	}
	if len(buf) == 0 {
		return false, nil
	}
	return h.ep.Serialize(abi.PtrOf(buf), uintptr(len(buf))), nil
}

func (h *Handle) Unserialize(buf []byte) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state != StateGameLoaded && h.state != StateRunning {
		return false, fmt.Errorf("%w: unserialize requires a loaded game", ErrWrongState)
	}
	if len(buf) == 0 {
		return false, nil
	}
	return h.ep.Unserialize(abi.PtrOf(buf), uintptr(len(buf))), nil
}

func (h *Handle) CheatReset() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state != StateGameLoaded && h.state != StateRunning {
		return fmt.Errorf("%w: cheat reset requires a loaded game", ErrWrongState)
	}
	h.ep.CheatReset()
	return nil
}

func (h *Handle) CheatSet(index uint32, enabled bool, code string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state != StateGameLoaded && h.state != StateRunning {
		return fmt.Errorf("%w: cheat set requires a loaded game", ErrWrongState)
	}
	h.ep.CheatSet(index, enabled, code)
	return nil
}

func (h *Handle) Region() (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state != StateGameLoaded && h.state != StateRunning {
		return 0, fmt.Errorf("%w: region requires a loaded game", ErrWrongState)
	}
	return int(h.ep.GetRegion()), nil
}

func (h *Handle) MemoryData(region uint32) []byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	ptr := h.ep.GetMemoryData(region)
	size := h.ep.GetMemorySize(region)
	if ptr == 0 || size == 0 {
		return nil
	}
	return abi.ReadBytes(ptr, int(size))
}

// UnloadGame runs retro_unload_game, moving to StateUnloaded. LoadGame only
// accepts StateInitialized, so loading another game on this Handle requires
// a full Deinit/Init cycle first; UnloadGame alone does not make the core
// ready for a new LoadGame call.
func (h *Handle) UnloadGame() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state != StateGameLoaded && h.state != StateRunning {
		return fmt.Errorf("%w: no game loaded", ErrWrongState)
	}
	h.ep.UnloadGame()
	h.state = StateUnloaded
	return nil
}

// Deinit runs retro_deinit. Valid from StateUnloaded or StateInitialized
// (a core that never loaded a game can still be torn down cleanly).
func (h *Handle) Deinit() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state != StateUnloaded && h.state != StateInitialized {
		return fmt.Errorf("%w: deinit requires no game loaded", ErrWrongState)
	}
	h.ep.Deinit()
	h.state = StateDeinitialized
	return nil
}

// Close dlcloses the shared library. Only valid after Deinit.
func (h *Handle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state == StateClosed {
		return ErrAlreadyClosed
	}
	if h.state != StateDeinitialized {
		return fmt.Errorf("%w: close requires deinit first", ErrWrongState)
	}
	err := h.ep.Close()
	h.state = StateClosed
	return err
}
