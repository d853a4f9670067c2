package game

import "fmt"

// HitDebounceTicks is the post-hit window during which further damage is ignored.
const HitDebounceTicks = 6

// LifecycleState is a combatant's position in the health/crouch/death machine.
type LifecycleState int

const (
	StateActive LifecycleState = iota
	StateCrouching
	StateDying
	StateRemoved
)

func (s LifecycleState) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateCrouching:
		return "crouching"
	case StateDying:
		return "dying"
	case StateRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Anchor says which point of the body Pos refers to.
type Anchor int

const (
	AnchorFeet   Anchor = iota // side-view: bottom centre
	AnchorCenter               // top-down: centre
)

// HealthPool holds current and maximum health. Current never leaves [0, Max].
type HealthPool struct {
	Current int
	Max     int
}

// take subtracts amount and returns the new value, floored at zero.
func (h *HealthPool) take(amount int) int {
	h.Current -= amount
	if h.Current < 0 {
		h.Current = 0
	}
	return h.Current
}

// Fraction returns current/max in [0,1].
func (h HealthPool) Fraction() float64 {
	if h.Max <= 0 {
		return 0
	}
	return float64(h.Current) / float64(h.Max)
}

// brain is the per-variant behaviour composed into a Combatant.
type brain interface {
	// think runs once per tick while the combatant is alive.
	think(c *Combatant, s *Sim)
	// dying runs once on entry to StateDying.
	dying(c *Combatant, s *Sim)
}

// damageGate lets a brain refuse damage outright (the idle boss).
type damageGate interface {
	acceptsDamage(c *Combatant) bool
}

// Combatant is the shared health/crouch/death state machine used by the
// player, grunts, mobile enemies and the boss.
type Combatant struct {
	id      EntityID
	kind    Kind
	faction Faction
	label   string
	cfg     CombatantConfig

	world *World
	sim   *Sim
	brain brain

	pos      Vec2
	vel      Vec2
	facing   Vec2
	grounded bool
	moving   bool

	health HealthPool
	state  LifecycleState

	// Per-tick countdowns, advanced by tickTimers.
	invulnTicks int
	flashTicks  int
	deathTicks  int
	crouchTicks int // 0 while crouching = held until Stand
	attackTicks int // >0 shows the attacking visual

	explosiveDeath bool
	hitsTaken      int

	view Presentable
}

// NewCombatant creates an unregistered combatant from a profile.
func NewCombatant(cfg CombatantConfig, pos Vec2) *Combatant {
	c := &Combatant{
		kind:    cfg.Kind,
		faction: cfg.Faction,
		label:   cfg.Label,
		cfg:     cfg,
		pos:     pos,
		facing:  cfg.Facing,
		health:  HealthPool{Current: cfg.MaxHealth, Max: cfg.MaxHealth},
	}
	if c.facing.IsZero() {
		c.facing = V(1, 0)
	}
	c.syncView()
	return c
}

func (c *Combatant) ID() EntityID { return c.id }
func (c *Combatant) Kind() Kind { return c.kind }
func (c *Combatant) Faction() Faction { return c.faction }
func (c *Combatant) Label() string { return c.label }
func (c *Combatant) Pos() Vec2 { return c.pos }
func (c *Combatant) Vel() Vec2 { return c.vel }
func (c *Combatant) Facing() Vec2 { return c.facing }
func (c *Combatant) Health() HealthPool { return c.health }
func (c *Combatant) State() LifecycleState { return c.state }
func (c *Combatant) Grounded() bool { return c.grounded }
func (c *Combatant) Config() CombatantConfig {
	return c.cfg
}

// Alive reports whether the combatant can still act and be hit.
func (c *Combatant) Alive() bool {
	return c.state == StateActive || c.state == StateCrouching
}

// Crouching reports whether the combatant is in StateCrouching.
func (c *Combatant) Crouching() bool { return c.state == StateCrouching }

// ExplosiveDeath reports whether the running death sequence is the explosive one.
func (c *Combatant) ExplosiveDeath() bool { return c.explosiveDeath }

// Feet returns the Y of the combatant's feet.
func (c *Combatant) Feet() float64 {
	if c.cfg.Anchor == AnchorCenter {
		return c.pos.Y + c.cfg.Height/2
	}
	return c.pos.Y
}

// Center returns the middle of the body.
func (c *Combatant) Center() Vec2 {
	if c.cfg.Anchor == AnchorCenter {
		return c.pos
	}
	return V(c.pos.X, c.pos.Y-c.cfg.Height/2)
}

// Bounds returns the collision rectangle.
func (c *Combatant) Bounds() Rect {
	return boundsAt(c.pos, c.cfg)
}

func boundsAt(p Vec2, cfg CombatantConfig) Rect {
	if cfg.Anchor == AnchorCenter {
		return R(p.X-cfg.HalfWidth, p.Y-cfg.Height/2, cfg.HalfWidth*2, cfg.Height)
	}
	return R(p.X-cfg.HalfWidth, p.Y-cfg.Height, cfg.HalfWidth*2, cfg.Height)
}

// ProtectionBand returns the shielded vertical span [top, feet] while crouched.
func (c *Combatant) ProtectionBand() (top, feet float64) {
	feet = c.Feet()
	return feet - c.cfg.ProtectionHeight, feet
}

// MaxSpeed returns the stance-adjusted speed cap.
func (c *Combatant) MaxSpeed() float64 {
	if c.state == StateCrouching {
		return c.cfg.MaxSpeed * c.cfg.CrouchSpeedMul
	}
	return c.cfg.MaxSpeed
}

// Damage applies amount. It returns false when the hit is ignored: the
// combatant is dying or removed, inside its post-hit debounce window, or its
// brain refuses damage.
func (c *Combatant) Damage(amount int, explosive bool) bool {
	if !c.Alive() || amount <= 0 {
		return false
	}
	if c.Invulnerable() {
		return false
	}
	if g, ok := c.brain.(damageGate); ok && !g.acceptsDamage(c) {
		return false
	}
	left := c.health.take(amount)
	c.hitsTaken++
	c.invulnTicks = HitDebounceTicks
	c.flashTicks = c.cfg.FlashTicks
	c.emit(EventHit, amount)
	c.logf("combat", "hit", float64(left), "took %d (%d/%d left)", amount, left, c.health.Max)
	if left == 0 {
		c.beginDying(explosive)
	}
	return true
}

// beginDying enters StateDying. Re-entry is a no-op.
func (c *Combatant) beginDying(explosive bool) {
	if c.state == StateDying || c.state == StateRemoved {
		return
	}
	prev := c.state
	c.state = StateDying
	c.vel = Vec2{}
	c.moving = false
	c.crouchTicks = 0
	c.attackTicks = 0
	c.explosiveDeath = explosive && c.cfg.ExplosiveDeathTicks > 0
	c.deathTicks = c.cfg.DeathTicks
	if c.explosiveDeath {
		c.deathTicks = c.cfg.ExplosiveDeathTicks
	}
	if c.sim != nil {
		c.sim.timeline.CancelOwner(c.id)
	}
	c.logf("state", "change", 0, "%s → %s", prev, c.state)
	c.emit(EventDied, 0)
	c.emit(EventDefeated, 0)
	if c.brain != nil && c.sim != nil {
		c.brain.dying(c, c.sim)
	}
}

// Crouch holds a crouch until Stand. Returns false if crouching is not
// possible for this combatant or it is dying.
func (c *Combatant) Crouch() bool {
	if !c.Alive() || !c.cfg.CanCrouch {
		return false
	}
	if c.state != StateCrouching {
		c.logf("state", "change", 0, "%s → %s", c.state, StateCrouching)
	}
	c.state = StateCrouching
	c.crouchTicks = 0
	return true
}

// CrouchFor crouches for at least ticks, then stands up on its own.
func (c *Combatant) CrouchFor(ticks int) bool {
	if ticks <= 0 {
		return false
	}
	held := c.state == StateCrouching && c.crouchTicks == 0
	prev := c.crouchTicks
	if !c.Crouch() {
		return false
	}
	if !held {
		c.crouchTicks = max(prev, ticks)
	}
	return true
}

// Stand leaves StateCrouching.
func (c *Combatant) Stand() {
	if c.state != StateCrouching {
		return
	}
	c.state = StateActive
	c.crouchTicks = 0
	c.logf("state", "change", 0, "%s → %s", StateCrouching, StateActive)
}

// terminate removes the combatant at once, skipping the death sequence.
func (c *Combatant) terminate() {
	if c.state == StateRemoved {
		return
	}
	c.state = StateRemoved
	c.vel = Vec2{}
	if c.sim != nil {
		c.sim.timeline.CancelOwner(c.id)
	}
	if c.world != nil {
		c.world.Deregister(c.id)
	}
}

// tickTimers advances every countdown by one tick.
func (c *Combatant) tickTimers() {
	if c.invulnTicks > 0 {
		c.invulnTicks--
	}
	if c.flashTicks > 0 {
		c.flashTicks--
	}
	if c.attackTicks > 0 {
		c.attackTicks--
	}
	switch c.state {
	case StateCrouching:
		if c.crouchTicks > 0 {
			c.crouchTicks--
			if c.crouchTicks == 0 {
				c.Stand()
			}
		}
	case StateDying:
		c.deathTicks--
		if c.deathTicks <= 0 {
			c.state = StateRemoved
			c.logf("state", "change", 0, "%s → %s", StateDying, StateRemoved)
			if c.world != nil {
				c.world.Deregister(c.id)
			}
		}
	}
}

// Invulnerable reports whether the post-hit debounce window is open.
func (c *Combatant) Invulnerable() bool { return c.invulnTicks > 0 }

// face turns the combatant toward dir when dir is not degenerate.
func (c *Combatant) face(dir Vec2) {
	if d, ok := dir.Normalize(c.facing); ok {
		c.facing = d
	}
}

// View returns the latest renderer view state.
func (c *Combatant) View() Presentable { return c.view }

func (c *Combatant) syncView() {
	v := Presentable{
		ID:        c.id,
		Kind:      c.kind,
		Faction:   c.faction,
		Label:     c.label,
		Pos:       c.pos,
		Facing:    c.facing,
		Bounds:    c.Bounds(),
		Opacity:   1,
		Explosive: c.explosiveDeath,
	}
	switch {
	case c.state == StateRemoved:
		v.Visual = VisualDestroyed
	case c.state == StateDying:
		v.Visual = VisualDying
	case c.attackTicks > 0:
		v.Visual = VisualAttacking
	case c.state == StateCrouching:
		v.Visual = VisualCrouching
	case c.moving:
		v.Visual = VisualMoving
	default:
		v.Visual = VisualIdle
	}
	if c.flashTicks > 0 {
		v.Opacity = c.cfg.FlashOpacity
	}
	c.view = v
}

func (c *Combatant) emit(kind EventKind, amount int) {
	if c.sim == nil {
		return
	}
	c.sim.emit(Event{
		Kind:    kind,
		Source:  c.id,
		Entity:  c.kind,
		Faction: c.faction,
		Label:   c.label,
		Pos:     c.pos,
		Amount:  amount,
	})
}

func (c *Combatant) logf(category, key string, num float64, format string, args ...any) {
	if c.sim == nil {
		return
	}
	c.sim.log.Add(c.sim.tick, c.label, c.faction.String(), category, key, fmt.Sprintf(format, args...), num)
}
