package main

import (
	"fmt"
	"math"

	"github.com/Garsondee/Beachhead/internal/game"
)

// bot drives the player controller once per tick, before Step.
type bot interface {
	act(sim *game.Sim)
}

// newBot returns the named autopilot. "auto" picks by perspective.
func newBot(name string, p game.Perspective) (bot, error) {
	if name == "auto" {
		name = "advance"
		if p == game.PerspectiveTopDown {
			name = "turret"
		}
	}
	switch name {
	case "idle":
		return idleBot{}, nil
	case "advance":
		return &advanceBot{standoff: 450, fireEvery: 12}, nil
	case "turret":
		return &turretBot{aimTolerance: 8, fireEvery: 10}, nil
	default:
		return nil, fmt.Errorf("unknown bot %q (supported: auto, idle, advance, turret)", name)
	}
}

// idleBot never touches the controls.
type idleBot struct{}

func (idleBot) act(*game.Sim) {}

// nearestHostile returns the closest live enemy to the player.
func nearestHostile(sim *game.Sim) (*game.Combatant, bool) {
	p := sim.Player()
	var best *game.Combatant
	bestD := math.Inf(1)
	for _, c := range sim.World().Combatants() {
		if c.Faction() != game.FactionEnemy || !c.Alive() {
			continue
		}
		if d := c.Center().Dist(p.Center()); d < bestD {
			best, bestD = c, d
		}
	}
	return best, best != nil
}

// trigger pulses the fire intent every n ticks; rifle shots fire on press.
type trigger struct {
	every int
	count int
}

func (t *trigger) pull(pc *game.PlayerController) {
	t.count++
	if t.count%t.every == 0 {
		pc.FireStop()
		pc.FireStart()
	}
}

// advanceBot walks right toward the bunker line, jumps over cover it runs
// into and fires from a standoff distance. It crouches while an enemy round
// is closing in.
type advanceBot struct {
	standoff  float64
	fireEvery int
	trig      *trigger
	lastX     float64
}

func (b *advanceBot) act(sim *game.Sim) {
	if b.trig == nil {
		b.trig = &trigger{every: b.fireEvery}
	}
	pc := sim.Controller()
	p := sim.Player()
	if !p.Alive() {
		return
	}

	if incoming(sim, 150) {
		pc.CrouchStart()
	} else {
		pc.CrouchStop()
	}

	target, ok := nearestHostile(sim)
	if !ok {
		pc.MoveStop(game.AxisX, 1)
		return
	}
	dx := target.Pos().X - p.Pos().X
	if dx > b.standoff {
		pc.MoveStart(game.AxisX, 1)
		if p.Grounded() && math.Abs(p.Pos().X-b.lastX) < 0.01 {
			pc.Jump()
		}
		b.lastX = p.Pos().X
		return
	}
	pc.MoveStop(game.AxisX, 1)
	b.trig.pull(pc)
}

// incoming reports whether an enemy round is within r of the player and
// heading toward them.
func incoming(sim *game.Sim, r float64) bool {
	p := sim.Player().Center()
	for _, pr := range sim.World().Projectiles() {
		if pr.Faction() != game.FactionEnemy || pr.Resolved() {
			continue
		}
		to := p.Sub(pr.Pos())
		if to.Len() < r && to.Dot(pr.Direction()) > 0 {
			return true
		}
	}
	return false
}

// turretBot holds its ground near the spawn, lines up vertically with the
// nearest hostile and shoots along the row.
type turretBot struct {
	aimTolerance float64
	fireEvery    int
	trig         *trigger
}

func (b *turretBot) act(sim *game.Sim) {
	if b.trig == nil {
		b.trig = &trigger{every: b.fireEvery}
	}
	pc := sim.Controller()
	p := sim.Player()
	if !p.Alive() {
		return
	}
	target, ok := nearestHostile(sim)
	if !ok {
		pc.MoveStop(game.AxisY, 1)
		pc.MoveStop(game.AxisY, -1)
		return
	}
	dy := target.Center().Y - p.Center().Y
	dx := target.Center().X - p.Center().X
	if math.Abs(dy) > b.aimTolerance {
		pc.MoveStop(game.AxisX, 1)
		pc.MoveStop(game.AxisX, -1)
		pc.MoveStart(game.AxisY, signOf(dy))
		return
	}
	pc.MoveStop(game.AxisY, 1)
	pc.MoveStop(game.AxisY, -1)

	// Facing follows movement, so take a single step toward the target to
	// turn before shooting.
	want := signOf(dx)
	if p.Facing().X*float64(want) < 0.9 {
		pc.MoveStart(game.AxisX, want)
		return
	}
	pc.MoveStop(game.AxisX, want)
	b.trig.pull(pc)
}

func signOf(v float64) int {
	if v < 0 {
		return -1
	}
	return 1
}
