package main

import (
	"flag"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Beachhead/internal/audio"
	"github.com/Garsondee/Beachhead/internal/game"
	"github.com/Garsondee/Beachhead/internal/level"
	"github.com/Garsondee/Beachhead/internal/screen"
)

// progression is the order N walks through after a victory.
var progression = []string{"assault", "survival"}

func main() {
	var levelName string
	var mute bool
	var verbose bool
	var debug bool
	var volume float64

	flag.StringVar(&levelName, "level", "assault", "built-in level name or path to a level YAML file")
	flag.BoolVar(&mute, "mute", false, "start with sound off")
	flag.BoolVar(&verbose, "verbose", false, "record shots and hits in the sim log")
	flag.BoolVar(&debug, "debug", false, "debug process logging")
	flag.Float64Var(&volume, "volume", 1, "master volume, 0 to 1")
	flag.Parse()

	if debug {
		log.SetLevel(log.DebugLevel)
	}

	sound := audio.NewPlayer()
	if err := sound.Init(); err != nil {
		log.Warn("audio disabled", "err", err)
	}
	defer sound.Close()
	sound.SetMuted(mute)
	sound.SetVolume(volume)

	scr, err := screen.New(levelName, screen.Options{
		Levels:  progression,
		Load:    level.Load,
		Sinks:   []game.EventSink{sound},
		OnMute:  sound.SetMuted,
		Verbose: verbose,
	})
	if err != nil {
		log.Error("failed to start", "level", levelName, "err", err)
		os.Exit(1)
	}

	w, h := scr.Size()
	ebiten.SetWindowTitle("Beachhead")
	ebiten.SetWindowSize(w, h)
	if err := ebiten.RunGame(scr); err != nil {
		log.Error("game exited", "err", err)
		os.Exit(1)
	}
}
