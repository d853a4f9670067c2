package main

import (
	"flag"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Beachhead/internal/audio"
	"github.com/Garsondee/Beachhead/internal/game"
	"github.com/Garsondee/Beachhead/internal/level"
)

func main() {
	var levelName string
	var mute bool
	var volume float64
	flag.StringVar(&levelName, "level", "survival", "built-in level name or path to a level YAML file")
	flag.BoolVar(&mute, "mute", false, "start with sound off")
	flag.Float64Var(&volume, "volume", 1, "master volume, 0 to 1")
	flag.Parse()

	spec, err := level.Load(levelName)
	if err != nil {
		log.Error("failed to load level", "level", levelName, "err", err)
		os.Exit(1)
	}

	sound := audio.NewPlayer()
	if err := sound.Init(); err != nil {
		log.Warn("audio disabled", "err", err)
	}
	sound.SetMuted(mute)
	sound.SetVolume(volume)

	scr, err := tcell.NewScreen()
	if err != nil {
		log.Error("failed to create terminal screen", "err", err)
		os.Exit(1)
	}
	if err := scr.Init(); err != nil {
		log.Error("failed to init terminal screen", "err", err)
		os.Exit(1)
	}

	sim := game.NewSim(spec, nil)
	sim.AddSink(sound)
	run(scr, sim, sound, mute)

	scr.Fini()
	sound.Close()
}

// run is the fixed-rate loop: terminal events are read on their own
// goroutine and applied on the loop's goroutine between ticks.
func run(scr tcell.Screen, sim *game.Sim, sound *audio.Player, muted bool) {
	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := scr.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(time.Second / game.TickRate)
	defer ticker.Stop()

	holds := newKeyHolds(holdWindow)
	paused := false
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				switch handleKey(ev, sim.Spec().Perspective, sim.Controller(), holds) {
				case cmdQuit:
					return
				case cmdRestart:
					sim.Restart()
					holds.reset()
				case cmdPause:
					paused = !paused
				case cmdMute:
					muted = !muted
					sound.SetMuted(muted)
				}
			case *tcell.EventResize:
				scr.Sync()
			}
		case <-ticker.C:
			if !paused {
				holds.tick(sim.Controller())
				sim.Step()
			}
			render(scr, sim, paused, muted)
		}
	}
}
