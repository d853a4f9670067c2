package screen

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Beachhead/internal/game"
)

// binding maps a set of alternative keys to a held player intent. press
// runs on the frame the first key goes down, release on the frame the last
// one comes up.
type binding struct {
	name    string
	keys    []ebiten.Key
	press   func(*game.PlayerController)
	release func(*game.PlayerController)
	held    bool
}

// poll reads the keyboard and fires the edge callbacks.
func (b *binding) poll(pc *game.PlayerController) {
	down := false
	for _, k := range b.keys {
		if ebiten.IsKeyPressed(k) {
			down = true
			break
		}
	}
	b.edge(pc, down)
}

func (b *binding) edge(pc *game.PlayerController, down bool) {
	switch {
	case down && !b.held:
		if b.press != nil {
			b.press(pc)
		}
	case !down && b.held:
		if b.release != nil {
			b.release(pc)
		}
	}
	b.held = down
}

func move(axis game.Axis, dir int) (func(*game.PlayerController), func(*game.PlayerController)) {
	return func(pc *game.PlayerController) { pc.MoveStart(axis, dir) },
		func(pc *game.PlayerController) { pc.MoveStop(axis, dir) }
}

func moveBinding(name string, axis game.Axis, dir int, keys ...ebiten.Key) binding {
	press, release := move(axis, dir)
	return binding{name: name, keys: keys, press: press, release: release}
}

// bindingsFor returns the held-key intents for a perspective. Side view
// jumps on up and crouches on down; top down moves on both axes.
func bindingsFor(p game.Perspective) []binding {
	binds := []binding{
		moveBinding("left", game.AxisX, -1, ebiten.KeyA, ebiten.KeyArrowLeft),
		moveBinding("right", game.AxisX, 1, ebiten.KeyD, ebiten.KeyArrowRight),
		{
			name:    "fire",
			keys:    []ebiten.Key{ebiten.KeySpace, ebiten.KeyJ},
			press:   (*game.PlayerController).FireStart,
			release: (*game.PlayerController).FireStop,
		},
	}
	if p == game.PerspectiveTopDown {
		return append(binds,
			moveBinding("up", game.AxisY, -1, ebiten.KeyW, ebiten.KeyArrowUp),
			moveBinding("down", game.AxisY, 1, ebiten.KeyS, ebiten.KeyArrowDown),
		)
	}
	return append(binds,
		binding{
			name:  "jump",
			keys:  []ebiten.Key{ebiten.KeyW, ebiten.KeyArrowUp},
			press: (*game.PlayerController).Jump,
		},
		binding{
			name:    "crouch",
			keys:    []ebiten.Key{ebiten.KeyS, ebiten.KeyArrowDown},
			press:   (*game.PlayerController).CrouchStart,
			release: (*game.PlayerController).CrouchStop,
		},
	)
}
