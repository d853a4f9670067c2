package game

import "math"

const (
	mobileBulletSpeed = 350.0
	mobileStopDist    = 5.0  // px; closer than this the AI stops steering
	mobileMuzzle      = 25.0 // px ahead of the body
	mobileBurstShots  = 2
	meleeDamage       = 1
	meleePush         = 15.0 // px
)

var (
	mobileBurstGap   = ms(200)
	mobilePhaseTicks = ms(2000)
)

// MobileBehavior is chosen once when a mobile enemy spawns.
type MobileBehavior int

const (
	// BehaviorChaser always steers at the target and fires on its timer.
	BehaviorChaser MobileBehavior = iota
	// BehaviorTactical alternates moving and stationary phases and only
	// fires while stationary.
	BehaviorTactical
)

func (b MobileBehavior) String() string {
	switch b {
	case BehaviorChaser:
		return "chaser"
	case BehaviorTactical:
		return "tactical"
	default:
		return "unknown"
	}
}

type mobileBrain struct {
	behavior      MobileBehavior
	shootInterval int
	shootTicks    int
	phaseTicks    int
	stationary    bool
}

// newMobile creates a mobile enemy with a behaviour and shot interval drawn
// from the sim's rng.
func newMobile(s *Sim, pos Vec2, health int) *Combatant {
	cfg := MobileProfile()
	if health > 0 {
		cfg.MaxHealth = health
	}
	c := NewCombatant(cfg, pos)
	behavior := BehaviorChaser
	if s.rng.Intn(2) == 1 {
		behavior = BehaviorTactical
	}
	interval := ms(1500 + s.rng.Intn(1000))
	c.brain = &mobileBrain{
		behavior:      behavior,
		shootInterval: interval,
		shootTicks:    interval,
		phaseTicks:    mobilePhaseTicks,
	}
	return c
}

// Behavior returns the mobile behaviour of c, or false if c is not mobile.
func (c *Combatant) Behavior() (MobileBehavior, bool) {
	if b, ok := c.brain.(*mobileBrain); ok {
		return b.behavior, true
	}
	return 0, false
}

func (m *mobileBrain) think(c *Combatant, s *Sim) {
	target := s.Player()
	if target == nil || !target.Alive() || s.Over() {
		c.moving = false
		return
	}

	if m.behavior == BehaviorTactical {
		m.phaseTicks--
		if m.phaseTicks <= 0 {
			m.stationary = !m.stationary
			m.phaseTicks = mobilePhaseTicks
		}
	}

	if m.behavior == BehaviorChaser || !m.stationary {
		m.steer(c, s, target)
	} else {
		c.moving = false
	}

	meleeContact(c, s)

	m.shootTicks--
	if m.shootTicks <= 0 {
		m.shootTicks = m.shootInterval
		if m.behavior == BehaviorChaser || m.stationary {
			m.burst(c, s)
		}
	}
}

// steer moves straight at the target. When cover blocks the direct step it
// probes the two perpendicular steps (+ then -) and otherwise holds.
func (m *mobileBrain) steer(c *Combatant, s *Sim, target *Combatant) {
	to := target.pos.Sub(c.pos)
	dist := to.Len()
	if dist <= mobileStopDist {
		c.moving = false
		return
	}
	dir := to.Scale(1 / dist)
	c.facing = dir
	stepLen := c.MaxSpeed() * dt

	candidates := []Vec2{dir.Scale(stepLen)}
	if math.Abs(dir.X) > math.Abs(dir.Y) {
		candidates = append(candidates, V(0, stepLen), V(0, -stepLen))
	} else {
		candidates = append(candidates, V(stepLen, 0), V(-stepLen, 0))
	}
	for i, d := range candidates {
		next := c.pos.Add(d)
		if s.movement.Blocked(c, next) {
			continue
		}
		c.pos = s.movement.clampTopDown(next, c.cfg)
		c.moving = true
		if i > 0 {
			c.logf("ai", "probe", float64(i), "sidestep (%.0f,%.0f)", d.X, d.Y)
		}
		return
	}
	c.moving = false
}

// burst fires the first shot now and schedules the rest on the timeline.
// The follow-ups are owned by c, so they are cancelled if it dies first.
func (m *mobileBrain) burst(c *Combatant, s *Sim) {
	mobileShoot(c, s)
	for i := 1; i < mobileBurstShots; i++ {
		s.timeline.After(i*mobileBurstGap, c.id, c.id, "mobile_burst", func() {
			mobileShoot(c, s)
		})
	}
}

func mobileShoot(c *Combatant, s *Sim) {
	target := s.Player()
	if target == nil || !target.Alive() || !c.Alive() || s.Over() {
		return
	}
	dir, _ := target.pos.Sub(c.pos).Normalize(c.facing)
	c.facing = dir
	c.attackTicks = ms(150)
	s.projectiles.Spawn(ProjectileSpec{
		Kind:      ProjectileLinear,
		Origin:    c.pos.Add(dir.Scale(mobileMuzzle)),
		Direction: dir,
		Speed:     mobileBulletSpeed,
		Faction:   c.faction,
		Owner:     c.id,
		OwnerKind: c.kind,
		Damage:    1,
	})
}

// meleeContact damages every hostile live combatant overlapping c and pushes
// c back out along the line from the first one touched.
func meleeContact(c *Combatant, s *Sim) bool {
	var first *Combatant
	for _, o := range s.world.CombatantsInRect(c.Bounds()) {
		if !o.Alive() || !c.faction.Hostile(o.faction) {
			continue
		}
		o.Damage(meleeDamage, false)
		if first == nil {
			first = o
		}
	}
	if first == nil {
		return false
	}
	away, _ := c.pos.Sub(first.pos).Normalize(c.facing.Scale(-1))
	s.movement.ResolveTopDown(c, away.Scale(meleePush))
	c.logf("ai", "melee", meleeDamage, "contact with %s", first.label)
	return true
}

func (m *mobileBrain) dying(c *Combatant, s *Sim) {}
