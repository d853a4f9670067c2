package main

import (
	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Beachhead/internal/game"
)

// holdWindow is how long a key press keeps an intent held. Terminals send
// no key-up events, so a held key is seen as a press followed by repeats.
const holdWindow = 30

type intent func(*game.PlayerController)

type hold struct {
	ticks   int
	release intent
}

// keyHolds turns repeated terminal key presses into held intents that
// release on their own once the repeats stop.
type keyHolds struct {
	window int
	active map[string]*hold
}

func newKeyHolds(window int) *keyHolds {
	return &keyHolds{window: window, active: map[string]*hold{}}
}

// press starts name if it is not already held and refreshes its window.
func (k *keyHolds) press(pc *game.PlayerController, name string, start, release intent) {
	h, ok := k.active[name]
	if !ok {
		start(pc)
		h = &hold{release: release}
		k.active[name] = h
	}
	h.ticks = k.window
}

// tick counts every hold down and releases the expired ones.
func (k *keyHolds) tick(pc *game.PlayerController) {
	for name, h := range k.active {
		h.ticks--
		if h.ticks <= 0 {
			if h.release != nil {
				h.release(pc)
			}
			delete(k.active, name)
		}
	}
}

// reset drops every hold without releasing; used when the sim is rebuilt.
func (k *keyHolds) reset() {
	k.active = map[string]*hold{}
}

func (k *keyHolds) held(name string) bool {
	_, ok := k.active[name]
	return ok
}

func moveHold(axis game.Axis, dir int) (intent, intent) {
	return func(pc *game.PlayerController) { pc.MoveStart(axis, dir) },
		func(pc *game.PlayerController) { pc.MoveStop(axis, dir) }
}

// command is a one-shot key handled by the front end rather than the
// controller.
type command int

const (
	cmdNone command = iota
	cmdQuit
	cmdRestart
	cmdPause
	cmdMute
)

// handleKey maps a terminal key to player intents or a front-end command.
func handleKey(ev *tcell.EventKey, p game.Perspective, pc *game.PlayerController, holds *keyHolds) command {
	key, r := ev.Key(), ev.Rune()
	if key == tcell.KeyEscape || key == tcell.KeyCtrlC {
		return cmdQuit
	}
	if key == tcell.KeyTab {
		pc.SwitchWeapon()
		return cmdNone
	}

	switch {
	case key == tcell.KeyLeft || r == 'a':
		start, stop := moveHold(game.AxisX, -1)
		holds.press(pc, "left", start, stop)
	case key == tcell.KeyRight || r == 'd':
		start, stop := moveHold(game.AxisX, 1)
		holds.press(pc, "right", start, stop)
	case key == tcell.KeyUp || r == 'w':
		if p == game.PerspectiveSide {
			pc.Jump()
			break
		}
		start, stop := moveHold(game.AxisY, -1)
		holds.press(pc, "up", start, stop)
	case key == tcell.KeyDown || r == 's':
		if p == game.PerspectiveSide {
			holds.press(pc, "crouch", (*game.PlayerController).CrouchStart, (*game.PlayerController).CrouchStop)
			break
		}
		start, stop := moveHold(game.AxisY, 1)
		holds.press(pc, "down", start, stop)
	case r == ' ':
		if holds.held("fire") {
			// Each repeat is another trigger pull for single-shot weapons.
			pc.FireStop()
			pc.FireStart()
		}
		holds.press(pc, "fire", (*game.PlayerController).FireStart, (*game.PlayerController).FireStop)
	case r == 'q':
		pc.SwitchWeapon()
	case r == 'r':
		return cmdRestart
	case r == 'p':
		return cmdPause
	case r == 'm':
		return cmdMute
	}
	return cmdNone
}
