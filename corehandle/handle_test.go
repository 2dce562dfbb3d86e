package corehandle

import "testing"

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateLoaded, "loaded"},
		{StateInitialized, "initialized"},
		{StateGameLoaded, "game_loaded"},
		{StateRunning, "running"},
		{StateUnloaded, "unloaded"},
		{StateDeinitialized, "deinitialized"},
		{StateClosed, "closed"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.state.String(); got != tt.want {
				t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
			}
		})
	}
}

func TestHandle_RunBeforeInitFails(t *testing.T) {
	h := &Handle{state: StateLoaded}
	if err := h.Run(); err == nil {
		t.Fatal("expected Run before a game is loaded to fail")
	}
}

func TestHandle_DeinitRequiresNoGameLoaded(t *testing.T) {
	h := &Handle{state: StateGameLoaded}
	if err := h.Deinit(); err == nil {
		t.Fatal("expected Deinit to fail while a game is still loaded")
	}
}

func TestHandle_CloseBeforeDeinitFails(t *testing.T) {
	h := &Handle{state: StateInitialized}
	if err := h.Close(); err == nil {
		t.Fatal("expected Close before Deinit to fail")
	}
}

func TestHandle_CloseTwiceFails(t *testing.T) {
	h := &Handle{state: StateClosed}
	if err := h.Close(); err != ErrAlreadyClosed {
		t.Fatalf("expected ErrAlreadyClosed, got %v", err)
	}
}
