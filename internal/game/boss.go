package game

const (
	bossBulletSpeed = 450.0
	bossMuzzle      = 150.0 // px above the feet
)

var (
	bossFireInterval = ms(450)
	bossAttackFlash  = ms(200)
)

// BossPhase is the boss's sub-state, orthogonal to its lifecycle.
type BossPhase int

const (
	BossIdle BossPhase = iota
	BossAttacking
)

func (p BossPhase) String() string {
	if p == BossAttacking {
		return "attacking"
	}
	return "idle"
}

// bossBrain is the bunker emplacement. It never crouches, ignores damage
// until activated and then fires at the player on a fixed interval.
type bossBrain struct {
	phase     BossPhase
	fireTicks int
}

func newBoss(s *Sim, sp BossSpawn) *Combatant {
	cfg := BossProfile()
	if sp.Health > 0 {
		cfg.MaxHealth = sp.Health
	}
	c := NewCombatant(cfg, sp.Pos)
	c.brain = &bossBrain{}
	return c
}

// BossPhase returns the boss sub-state, or false if c is not a boss.
func (c *Combatant) BossPhase() (BossPhase, bool) {
	if b, ok := c.brain.(*bossBrain); ok {
		return b.phase, true
	}
	return BossIdle, false
}

// activate starts the fire loop. A second call is a no-op.
func (b *bossBrain) activate(c *Combatant) bool {
	if b.phase == BossAttacking || !c.Alive() {
		return false
	}
	b.phase = BossAttacking
	b.fireTicks = bossFireInterval
	c.logf("boss", "phase", 1, "%s → %s", BossIdle, BossAttacking)
	c.emit(EventBossActivated, 0)
	return true
}

func (b *bossBrain) acceptsDamage(c *Combatant) bool {
	return b.phase == BossAttacking
}

func (b *bossBrain) think(c *Combatant, s *Sim) {
	if b.phase != BossAttacking || s.Over() {
		return
	}
	b.fireTicks--
	if b.fireTicks > 0 {
		return
	}
	b.fireTicks = bossFireInterval
	p := s.Player()
	if p == nil || !p.Alive() {
		return
	}
	origin := V(c.pos.X, c.Feet()-bossMuzzle)
	c.attackTicks = bossAttackFlash
	s.projectiles.Spawn(ProjectileSpec{
		Kind:      ProjectileLinear,
		Origin:    origin,
		Direction: p.Center().Sub(origin),
		Speed:     bossBulletSpeed,
		Faction:   c.faction,
		Owner:     c.id,
		OwnerKind: c.kind,
		Damage:    1,
	})
}

func (b *bossBrain) dying(c *Combatant, s *Sim) {
	c.emit(EventBossDefeated, 0)
}
