package game

import "math"

// --- Player tuning ---

const (
	playerAccel       = 1200.0 // px/s^2 toward the held direction
	playerFriction    = 800.0  // px/s^2 when no direction is held
	playerGravity     = 1400.0 // px/s^2
	playerJumpImpulse = 520.0  // px/s

	muzzleStanding  = 72.0 // px above the feet; clears a bunker top
	muzzleCrouching = 30.0
	muzzleForward   = 25.0 // px ahead of the body

	rifleSpeed  = 500.0
	rifleDamage = 1

	grenadeSpeed     = 700.0
	grenadeAngleDeg  = 40.0
	grenadeBlastR    = 80.0
	grenadeBlastBase = 100
	grenadeRefire    = 30 // ticks between throws

	flamerRange     = 180.0
	flamerHalfWidth = 40.0 // px at full range
	flamerDamage    = 3
	flamerRefire    = 5 // ticks between cone blasts while fire is held
)

// Weapon is a player weapon.
type Weapon int

const (
	WeaponRifle Weapon = iota
	WeaponGrenade
	WeaponFlamer
)

func (w Weapon) String() string {
	switch w {
	case WeaponRifle:
		return "rifle"
	case WeaponGrenade:
		return "grenade"
	case WeaponFlamer:
		return "flamer"
	default:
		return "unknown"
	}
}

// ParseWeapon maps a level-file name to a Weapon.
func ParseWeapon(s string) (Weapon, bool) {
	for w := WeaponRifle; w <= WeaponFlamer; w++ {
		if w.String() == s {
			return w, true
		}
	}
	return 0, false
}

// Axis selects a movement axis for input intents.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// PlayerController turns discrete input intents into player behaviour. It
// holds no device state; front ends call the intent methods synchronously.
type PlayerController struct {
	c           *Combatant
	perspective Perspective

	moveX, moveY int // -1, 0, +1
	firing       bool
	jumpQueued   bool
	cooldown     int

	weapons []Weapon
	current int
}

func newPlayerController(c *Combatant, p Perspective, weapons []Weapon) *PlayerController {
	if len(weapons) == 0 {
		weapons = []Weapon{WeaponRifle}
	}
	return &PlayerController{c: c, perspective: p, weapons: weapons}
}

// Combatant returns the controlled combatant.
func (pc *PlayerController) Combatant() *Combatant { return pc.c }

// Weapon returns the selected weapon.
func (pc *PlayerController) Weapon() Weapon { return pc.weapons[pc.current] }

// MoveStart begins moving along axis in direction dir (-1 or +1).
func (pc *PlayerController) MoveStart(axis Axis, dir int) {
	dir = sign(dir)
	if axis == AxisX {
		pc.moveX = dir
	} else {
		pc.moveY = dir
	}
}

// MoveStop stops movement along axis if it is still heading in dir. A
// release of the opposite key while the other is held is ignored.
func (pc *PlayerController) MoveStop(axis Axis, dir int) {
	dir = sign(dir)
	if axis == AxisX && pc.moveX == dir {
		pc.moveX = 0
	}
	if axis == AxisY && pc.moveY == dir {
		pc.moveY = 0
	}
}

// FireStart pulls the trigger. Rifle and grenade fire once per press; the
// flamer keeps firing until FireStop.
func (pc *PlayerController) FireStart() {
	if pc.firing {
		return
	}
	pc.firing = true
	if pc.Weapon() != WeaponFlamer {
		pc.fire()
	}
}

// FireStop releases the trigger.
func (pc *PlayerController) FireStop() { pc.firing = false }

// SwitchWeapon cycles to the next weapon allowed in the level.
func (pc *PlayerController) SwitchWeapon() {
	pc.current = (pc.current + 1) % len(pc.weapons)
	pc.cooldown = 0
	if pc.c.sim != nil {
		pc.c.logf("input", "weapon", float64(pc.current), "%s", pc.Weapon())
	}
}

// CrouchStart crouches (side view only).
func (pc *PlayerController) CrouchStart() {
	if pc.perspective == PerspectiveSide {
		pc.c.Crouch()
	}
}

// CrouchStop stands back up.
func (pc *PlayerController) CrouchStop() { pc.c.Stand() }

// Jump requests a jump on the next tick (side view only).
func (pc *PlayerController) Jump() {
	if pc.perspective == PerspectiveSide {
		pc.jumpQueued = true
	}
}

func (pc *PlayerController) think(c *Combatant, s *Sim) {
	if pc.cooldown > 0 {
		pc.cooldown--
	}
	if pc.perspective == PerspectiveSide {
		pc.thinkSideView(c, s)
	} else {
		pc.thinkTopDown(c, s)
	}
	if pc.firing && pc.Weapon() == WeaponFlamer {
		pc.fire()
	}
}

func (pc *PlayerController) thinkSideView(c *Combatant, s *Sim) {
	maxSpeed := c.MaxSpeed()
	if pc.moveX != 0 {
		c.vel.X += float64(pc.moveX) * playerAccel * dt
		c.facing = V(float64(pc.moveX), 0)
	} else if c.vel.X != 0 {
		slow := playerFriction * dt
		if math.Abs(c.vel.X) <= slow {
			c.vel.X = 0
		} else {
			c.vel.X -= math.Copysign(slow, c.vel.X)
		}
	}
	c.vel.X = clampf(c.vel.X, -maxSpeed, maxSpeed)

	if pc.jumpQueued && c.grounded && !c.Crouching() {
		c.vel.Y = -playerJumpImpulse
		c.grounded = false
	}
	pc.jumpQueued = false
	c.vel.Y += playerGravity * dt

	s.movement.ResolveSideView(c, dt)
	c.moving = math.Abs(c.vel.X) > 1
}

func (pc *PlayerController) thinkTopDown(c *Combatant, s *Sim) {
	dir := V(float64(pc.moveX), float64(pc.moveY))
	if dir.IsZero() {
		c.moving = false
		return
	}
	dir, _ = dir.Normalize(c.facing)
	c.facing = dir
	s.movement.ResolveTopDown(c, dir.Scale(c.MaxSpeed()*dt))
	c.moving = true
}

// muzzle returns the spawn point for the player's shots.
func (pc *PlayerController) muzzle() Vec2 {
	c := pc.c
	if pc.perspective == PerspectiveTopDown {
		return c.pos.Add(c.facing.Scale(muzzleForward))
	}
	h := muzzleStanding
	if c.Crouching() {
		h = muzzleCrouching
	}
	return V(c.pos.X+math.Copysign(muzzleForward, c.facing.X), c.pos.Y-h)
}

func (pc *PlayerController) fire() {
	c := pc.c
	s := c.sim
	if s == nil || !c.Alive() || s.Over() || pc.cooldown > 0 {
		return
	}
	spec := ProjectileSpec{
		Origin:    pc.muzzle(),
		Faction:   c.faction,
		Owner:     c.id,
		OwnerKind: c.kind,
	}
	switch pc.Weapon() {
	case WeaponRifle:
		spec.Kind = ProjectileLinear
		spec.Direction = c.facing
		if pc.perspective == PerspectiveSide {
			spec.Direction = V(math.Copysign(1, c.facing.X), 0)
		}
		spec.Speed = rifleSpeed
		spec.Damage = rifleDamage
	case WeaponGrenade:
		a := grenadeAngleDeg * math.Pi / 180
		spec.Kind = ProjectileBallistic
		spec.Direction = V(math.Copysign(math.Cos(a), c.facing.X), -math.Sin(a))
		spec.Speed = grenadeSpeed
		spec.BlastRadius = grenadeBlastR
		spec.BlastDamage = grenadeBlastBase
		pc.cooldown = grenadeRefire
	case WeaponFlamer:
		spec.Kind = ProjectileCone
		spec.Direction = c.facing
		spec.Range = flamerRange
		spec.HalfAngle = math.Atan2(flamerHalfWidth, flamerRange)
		spec.Damage = flamerDamage
		pc.cooldown = flamerRefire
	}
	c.attackTicks = ms(120)
	s.projectiles.Spawn(spec)
}

func (pc *PlayerController) dying(c *Combatant, s *Sim) {
	pc.firing = false
	pc.moveX, pc.moveY = 0, 0
	s.timeline.After(c.deathTicks, 0, 0, "player_down", func() {
		s.lose("player down")
	})
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
