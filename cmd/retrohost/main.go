// Command retrohost loads a libretro core and a piece of content, runs it
// either headlessly for a fixed number of frames or, with -window, in an
// ebiten window, and exits. It exists primarily
// to exercise the full Session lifecycle end to end; a real UI sits on top
// of package builder and package session the same way this command does.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/retrohost/retrohost/builder"
	"github.com/retrohost/retrohost/config"
	"github.com/retrohost/retrohost/drivers"
	"github.com/retrohost/retrohost/drivers/ebitenvideo"
	"github.com/retrohost/retrohost/drivers/otoaudio"
	"github.com/retrohost/retrohost/session"
)

func main() {
	corePath := flag.String("core", "", "path to the libretro core shared library")
	romPath := flag.String("rom", "", "path to the content file (omit for a no-game core)")
	systemDir := flag.String("system-dir", "", "directory for GET_SYSTEM_DIRECTORY")
	saveDir := flag.String("save-dir", "", "directory for GET_SAVE_DIRECTORY")
	frames := flag.Int("frames", 60, "number of frames to run before exiting (ignored with -window)")
	clipboard := flag.Bool("clipboard-messages", false, "mirror core messages to the system clipboard")
	window := flag.Bool("window", false, "open an ebiten window and run until closed, instead of a fixed headless frame count")
	flag.Parse()

	if *corePath == "" {
		fmt.Fprintln(os.Stderr, "retrohost: -core is required")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("retrohost: load config: %v", err)
	}

	b := builder.Defaults(*corePath).
		WithLogger(nil).
		WithPaths(*systemDir, *saveDir, "")
	if *clipboard {
		b = b.WithClipboardMirror()
	}

	var video *ebitenvideo.Driver
	var input *ebitenvideo.InputDriver
	if *window {
		video = ebitenvideo.NewDriver()
		input = ebitenvideo.NewInputDriver()
		b = b.WithVideo(video).WithInput(input).WithRumble(ebitenvideo.NewRumbleDriver())
	}

	sess, err := b.Build()
	if err != nil {
		log.Fatalf("retrohost: %v", err)
	}
	defer func() {
		if err := sess.Unload(); err != nil {
			log.Printf("retrohost: unload: %v", err)
		}
	}()

	req := drivers.ContentRequest{NoGame: *romPath == ""}
	if *romPath != "" {
		req.Path = *romPath
	}
	if err := sess.LoadGame(req); err != nil {
		log.Fatalf("retrohost: load game: %v", err)
	}

	applySavedOptions(sess, cfg)

	if *window {
		runWindowed(sess, video, input, cfg)
		return
	}

	for i := 0; i < *frames; i++ {
		if sess.ShuttingDown() {
			log.Printf("retrohost: core requested shutdown after %d frames", i)
			break
		}
		if err := sess.RunOneFrame(); err != nil {
			log.Fatalf("retrohost: run frame %d: %v", i, err)
		}
	}
}

// runWindowed opens an ebiten window and drives the session until the core
// shuts down or the window is closed, mirroring the output audio samples to
// the OS sound device via otoaudio at the core's negotiated sample rate.
func runWindowed(sess *session.Session, video *ebitenvideo.Driver, input *ebitenvideo.InputDriver, cfg *config.Config) {
	sampleRate := int(sess.State().SystemAVInfo.Timing.SampleRate)
	if sampleRate <= 0 {
		sampleRate = 48000
	}
	audio, err := otoaudio.NewPlayer(sampleRate, cfg.Audio.Volume)
	if err != nil {
		log.Printf("retrohost: audio output unavailable: %v", err)
	} else {
		defer audio.Close()
		sess.SetAudio(audio)
	}

	geom := sess.State().SystemAVInfo.Geometry
	width, height := int(geom.BaseWidth), int(geom.BaseHeight)
	if width == 0 || height == 0 {
		width, height = 320, 240
	}
	ebiten.SetWindowSize(width*3, height*3)
	ebiten.SetWindowTitle(sess.LibraryName())

	game := ebitenvideo.NewGame(sess, video, input)
	if err := ebiten.RunGame(game); err != nil {
		log.Printf("retrohost: window closed: %v", err)
	}
}

// applySavedOptions feeds back any option values this core's library name
// has saved from a previous run. Best-effort: an option the core no longer
// declares is silently skipped.
func applySavedOptions(sess *session.Session, cfg *config.Config) {
	opts := sess.Options()
	if opts == nil {
		return
	}
	for key, value := range cfg.OptionsFor(sess.LibraryName()) {
		opts.SetVariable(key, value)
	}
}
