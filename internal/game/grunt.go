package game

const (
	gruntBulletSpeed = 420.0
	gruntMuzzleFrac  = 0.85 // muzzle height as a fraction of body height
	gruntDuckChance  = 0.5  // chance to duck when the player fires
	gruntProtectMul  = 0.6  // fallback protection as a fraction of height
	bunkerReach      = 120.0
)

// gruntBrain drives a ground rifleman. Its shots are triggered by the
// AttackCycle; on its own it only faces the player, ducks at incoming fire
// and optionally patrols.
type gruntBrain struct {
	patrol bool
	dir    float64 // patrol heading, ±1
}

func newGrunt(s *Sim, sp GruntSpawn) *Combatant {
	cfg := GruntProfile()
	if sp.Health > 0 {
		cfg.MaxHealth = sp.Health
	}
	cfg.ProtectionHeight = sp.ProtectionHeight
	if cfg.ProtectionHeight <= 0 {
		cfg.ProtectionHeight = s.world.Cover.NearestProtection(sp.Pos.X, bunkerReach)
	}
	if cfg.ProtectionHeight <= 0 {
		cfg.ProtectionHeight = cfg.Height * gruntProtectMul
	}
	c := NewCombatant(cfg, sp.Pos)
	c.brain = &gruntBrain{patrol: sp.Patrol, dir: -1}
	return c
}

func (g *gruntBrain) think(c *Combatant, s *Sim) {
	if p := s.Player(); p != nil {
		if p.pos.X < c.pos.X {
			c.facing = V(-1, 0)
		} else {
			c.facing = V(1, 0)
		}
	}
	if !g.patrol || c.Crouching() {
		c.moving = false
		return
	}
	c.vel = V(g.dir*c.MaxSpeed(), 0)
	before := c.pos.X
	s.movement.ResolveSideView(c, dt)
	if c.pos.X == before {
		g.dir = -g.dir
	}
	c.moving = true
}

func (g *gruntBrain) dying(c *Combatant, s *Sim) {}

// duck gives the grunt a chance to take cover when the player fires.
func (g *gruntBrain) duck(c *Combatant, s *Sim) {
	if !c.Alive() || c.Crouching() {
		return
	}
	if s.rng.Float64() < gruntDuckChance {
		c.CrouchFor(ms(800))
		c.logf("ai", "duck", 0, "ducking for %d ticks", ms(800))
	}
}

// gruntShoot fires one aimed round at the player.
func gruntShoot(c *Combatant, s *Sim) bool {
	p := s.Player()
	if p == nil || !c.Alive() || s.Over() {
		return false
	}
	if c.Crouching() {
		c.Stand()
	}
	origin := V(c.pos.X, c.Feet()-c.cfg.Height*gruntMuzzleFrac)
	c.face(V(p.Center().X-c.pos.X, 0))
	c.attackTicks = ms(200)
	s.projectiles.Spawn(ProjectileSpec{
		Kind:      ProjectileLinear,
		Origin:    origin,
		Direction: p.Center().Sub(origin),
		Speed:     gruntBulletSpeed,
		Faction:   c.faction,
		Owner:     c.id,
		OwnerKind: c.kind,
		Damage:    1,
	})
	c.logf("ai", "shot", 0, "at (%.0f,%.0f)", p.Center().X, p.Center().Y)
	return true
}
