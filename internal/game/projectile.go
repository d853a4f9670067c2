package game

import (
	"fmt"
	"math"
)

// --- Ordnance constants ---

const (
	bulletLifetime   = 2 * TickRate  // ticks a bullet may fly
	bulletCullMargin = 200.0         // px outside world bounds before a bullet is culled
	grenadeGravity   = 980.0         // px/s^2
	grenadeLifetime  = 10 * TickRate // ticks before a grenade detonates in the air
	blastLifetime    = 18            // ticks an explosion visual persists (300ms)
	coneLifetime     = 9             // ticks a cone blast visual persists (150ms)
)

// defaultDirection replaces degenerate direction vectors.
var defaultDirection = V(1, 0)

// ProjectileKind is the motion model of a projectile.
type ProjectileKind int

const (
	ProjectileLinear ProjectileKind = iota
	ProjectileBallistic
	ProjectileCone
)

func (k ProjectileKind) String() string {
	switch k {
	case ProjectileLinear:
		return "linear"
	case ProjectileBallistic:
		return "ballistic"
	case ProjectileCone:
		return "cone"
	default:
		return "unknown"
	}
}

// ProjectileSpec describes a projectile to spawn.
type ProjectileSpec struct {
	Kind      ProjectileKind
	Origin    Vec2
	Direction Vec2
	Speed     float64 // px/s
	Faction   Faction
	Owner     EntityID
	OwnerKind Kind
	Damage    int

	// Ballistic only.
	Gravity     float64 // 0 = grenadeGravity
	GroundY     float64 // detonation height; 0 = world ground plane
	BlastRadius float64
	BlastDamage int

	// Cone only.
	Range     float64
	HalfAngle float64 // radians

	Lifetime int // ticks; 0 = kind default
}

// Projectile is a registered bullet, grenade or cone blast.
type Projectile struct {
	id        EntityID
	kind      ProjectileKind
	pos, prev Vec2
	dir       Vec2
	vel       Vec2
	speed     float64
	faction   Faction
	owner     EntityID
	ownerKind Kind
	damage    int

	age, lifetime int

	gravity     float64
	groundY     float64
	blastRadius float64
	blastDamage int

	coneRange float64
	coneHalf  float64

	resolved  bool // one-shot resolution guard
	detonated bool // one-shot detonation guard
}

func (p *Projectile) ID() EntityID { return p.id }
func (p *Projectile) Kind() ProjectileKind { return p.kind }
func (p *Projectile) Pos() Vec2 { return p.pos }
func (p *Projectile) Direction() Vec2 { return p.dir }
func (p *Projectile) Faction() Faction { return p.faction }
func (p *Projectile) Resolved() bool { return p.resolved }
func (p *Projectile) Detonated() bool { return p.detonated }

func (p *Projectile) entityKind() Kind {
	if p.kind == ProjectileCone {
		return KindBlast
	}
	return KindProjectile
}

// View returns the renderer view of the projectile.
func (p *Projectile) View() Presentable {
	v := Presentable{
		ID:      p.id,
		Kind:    p.entityKind(),
		Faction: p.faction,
		Label:   p.kind.String(),
		Pos:     p.pos,
		Facing:  p.dir,
		Bounds:  R(p.pos.X-2, p.pos.Y-2, 4, 4),
		Visual:  VisualMoving,
		Opacity: 1,
	}
	if p.kind == ProjectileCone {
		v.Radius = p.coneRange
		v.Visual = VisualAttacking
		v.Opacity = 1 - float64(p.age)/float64(max(p.lifetime, 1))
	}
	return v
}

// Blast is a short-lived explosion visual.
type Blast struct {
	Pos    Vec2
	Radius float64
	age    int
}

// Done returns true when the visual should be removed.
func (b *Blast) Done() bool { return b.age >= blastLifetime }

// ProjectileSystem spawns projectiles, integrates them and resolves their
// collisions against the world.
type ProjectileSystem struct {
	sim    *Sim
	blasts []*Blast

	Detonations int
}

// NewProjectileSystem creates the subsystem bound to a simulation.
func NewProjectileSystem(sim *Sim) *ProjectileSystem {
	return &ProjectileSystem{sim: sim}
}

// Spawn normalises the spec's direction, registers the projectile and, for a
// cone, resolves it immediately.
func (ps *ProjectileSystem) Spawn(spec ProjectileSpec) *Projectile {
	dir, ok := spec.Direction.Normalize(defaultDirection)
	if !ok {
		ps.sim.log.Add(ps.sim.tick, "--", spec.Faction.String(), "recover", "degenerate_direction",
			fmt.Sprintf("(%.5f,%.5f) → (1,0)", spec.Direction.X, spec.Direction.Y), 0)
	}
	p := &Projectile{
		kind:      spec.Kind,
		pos:       spec.Origin,
		prev:      spec.Origin,
		dir:       dir,
		speed:     spec.Speed,
		faction:   spec.Faction,
		owner:     spec.Owner,
		ownerKind: spec.OwnerKind,
		damage:    spec.Damage,
		lifetime:  spec.Lifetime,
	}
	switch spec.Kind {
	case ProjectileLinear:
		if p.lifetime == 0 {
			p.lifetime = bulletLifetime
		}
	case ProjectileBallistic:
		if p.lifetime == 0 {
			p.lifetime = grenadeLifetime
		}
		p.vel = dir.Scale(spec.Speed)
		p.gravity = spec.Gravity
		if p.gravity == 0 {
			p.gravity = grenadeGravity
		}
		p.groundY = spec.GroundY
		if p.groundY == 0 {
			p.groundY = ps.sim.world.GroundY
		}
		p.blastRadius = spec.BlastRadius
		p.blastDamage = spec.BlastDamage
	case ProjectileCone:
		if p.lifetime == 0 {
			p.lifetime = coneLifetime
		}
		p.coneRange = spec.Range
		p.coneHalf = spec.HalfAngle
	}
	ps.sim.world.RegisterProjectile(p)
	ps.sim.emit(Event{Kind: EventFired, Source: spec.Owner, Entity: spec.OwnerKind, Faction: spec.Faction, Pos: spec.Origin})
	ps.sim.log.AddVerbose(ps.sim.tick, "--", spec.Faction.String(), "projectile", "spawn",
		fmt.Sprintf("%s from (%.0f,%.0f)", spec.Kind, spec.Origin.X, spec.Origin.Y), spec.Speed)

	if p.kind == ProjectileCone {
		ps.resolveCone(p)
	}
	return p
}

// Update integrates every registered projectile by one tick and resolves
// collisions, then ages explosion visuals.
func (ps *ProjectileSystem) Update() {
	for _, p := range ps.sim.world.Projectiles() {
		ps.step(p)
	}

	kept := ps.blasts[:0]
	for _, b := range ps.blasts {
		b.age++
		if !b.Done() {
			kept = append(kept, b)
		}
	}
	for i := len(kept); i < len(ps.blasts); i++ {
		ps.blasts[i] = nil
	}
	ps.blasts = kept
}

// Blasts returns the live explosion visuals.
func (ps *ProjectileSystem) Blasts() []*Blast { return ps.blasts }

func (ps *ProjectileSystem) step(p *Projectile) {
	p.age++
	if p.kind == ProjectileCone {
		if p.age >= p.lifetime {
			ps.sim.world.Deregister(p.id)
		}
		return
	}
	if p.resolved {
		return
	}

	p.prev = p.pos
	switch p.kind {
	case ProjectileLinear:
		p.pos = p.pos.Add(p.dir.Scale(p.speed * dt))
	case ProjectileBallistic:
		p.vel.Y += p.gravity * dt
		p.pos = p.pos.Add(p.vel.Scale(dt))
		if d, ok := p.vel.Normalize(p.dir); ok {
			p.dir = d
		}
	}

	if ps.resolveCollisions(p) {
		return
	}

	switch p.kind {
	case ProjectileBallistic:
		if p.groundY > 0 && p.pos.Y >= p.groundY {
			ps.explode(p, V(p.pos.X, p.groundY), "ground")
			return
		}
		if p.age >= p.lifetime {
			ps.explode(p, p.pos, "fuse")
		}
	case ProjectileLinear:
		cull := ps.sim.world.Bounds.Inflate(bulletCullMargin)
		if p.age >= p.lifetime || !cull.Contains(p.pos) {
			ps.finish(p)
			ps.sim.log.AddVerbose(ps.sim.tick, "--", p.faction.String(), "projectile", "expire",
				fmt.Sprintf("(%.0f,%.0f)", p.pos.X, p.pos.Y), float64(p.age))
		}
	}
}

// resolveCollisions applies the first-hit rules in priority order: blocking
// cover, then the earliest hostile live combatant on the swept segment
// (crouch band check first, then damage). Cover and the crouch band consume
// grenades without a detonation. Friendly combatants never consume the
// projectile. Returns true when the projectile was resolved.
func (ps *ProjectileSystem) resolveCollisions(p *Projectile) bool {
	if p.resolved {
		return true
	}
	world := ps.sim.world

	if t, ok := world.Cover.FirstProjectileHit(p.prev, p.pos); ok {
		impact := p.prev.Lerp(p.pos, t)
		ps.finish(p)
		ps.sim.log.Add(ps.sim.tick, "--", p.faction.String(), "projectile", "cover_block",
			fmt.Sprintf("(%.0f,%.0f)", impact.X, impact.Y), impact.Y)
		return true
	}

	var target *Combatant
	bestT := 0.0
	for _, c := range world.Combatants() {
		if !c.Alive() || !p.faction.Hostile(c.faction) {
			continue
		}
		t, ok := segmentRectHitT(p.prev, p.pos, c.Bounds())
		if !ok {
			continue
		}
		if target == nil || t < bestT {
			target, bestT = c, t
		}
	}
	if target == nil {
		return false
	}
	impact := p.prev.Lerp(p.pos, bestT)

	if target.Crouching() {
		top, feet := target.ProtectionBand()
		if impact.Y >= top && impact.Y <= feet {
			ps.finish(p)
			ps.sim.log.Add(ps.sim.tick, target.label, target.faction.String(), "projectile", "crouch_block",
				fmt.Sprintf("impact y=%.1f band=[%.1f,%.1f]", impact.Y, top, feet), impact.Y)
			return true
		}
	}

	if p.kind == ProjectileBallistic {
		ps.explode(p, impact, "contact")
		return true
	}
	ps.finish(p)
	target.Damage(p.damage, false)
	return true
}

// finish marks the projectile resolved and deregisters it.
func (ps *ProjectileSystem) finish(p *Projectile) {
	if p.resolved {
		return
	}
	p.resolved = true
	ps.sim.world.Deregister(p.id)
}

// explode resolves a ballistic projectile as a detonation at impact.
func (ps *ProjectileSystem) explode(p *Projectile, at Vec2, cause string) {
	if p.resolved || p.detonated {
		return
	}
	ps.finish(p)
	p.detonated = true
	p.pos = at
	ps.sim.log.Add(ps.sim.tick, "--", p.faction.String(), "projectile", "detonate",
		fmt.Sprintf("%s at (%.0f,%.0f)", cause, at.X, at.Y), p.blastRadius)
	ps.Detonate(at, p.faction, p.blastDamage, p.blastRadius)
}

// Detonate applies an explosive payload at center. Only combatants hostile to
// faction are damaged; damage falls off linearly and is zero at or beyond
// radius. Returns the number of combatants damaged.
func (ps *ProjectileSystem) Detonate(center Vec2, faction Faction, baseDamage int, radius float64) int {
	ps.Detonations++
	hits := 0
	for _, c := range ps.sim.world.CombatantsWithin(center, radius) {
		if !c.Alive() || !faction.Hostile(c.faction) {
			continue
		}
		dmg := ExplosionDamage(baseDamage, radius, c.pos.Dist(center))
		if dmg <= 0 {
			continue
		}
		if c.Damage(dmg, true) {
			hits++
		}
	}
	ps.blasts = append(ps.blasts, &Blast{Pos: center, Radius: radius})
	ps.sim.emit(Event{Kind: EventExploded, Entity: KindProjectile, Faction: faction, Pos: center, Amount: hits})
	return hits
}

// ExplosionDamage returns max(1, round(base*(1-dist/radius))) for
// dist < radius and 0 otherwise.
func ExplosionDamage(base int, radius, dist float64) int {
	if radius <= 0 || dist >= radius || base <= 0 {
		return 0
	}
	d := int(math.Round(float64(base) * (1 - dist/radius)))
	if d < 1 {
		d = 1
	}
	return d
}

// resolveCone damages every hostile live combatant whose body the cone
// reaches without crossing blocking cover.
func (ps *ProjectileSystem) resolveCone(p *Projectile) {
	if p.resolved {
		return
	}
	p.resolved = true
	cosHalf := math.Cos(p.coneHalf)
	hits := 0
	for _, c := range ps.sim.world.Combatants() {
		if !c.Alive() || !p.faction.Hostile(c.faction) {
			continue
		}
		if !coneReaches(p.pos, p.dir, p.coneRange, p.coneHalf, cosHalf, c.Bounds(), ps.sim.world.Cover) {
			continue
		}
		if c.Damage(p.damage, false) {
			hits++
		}
	}
	ps.sim.log.AddVerbose(ps.sim.tick, "--", p.faction.String(), "projectile", "cone",
		fmt.Sprintf("%d hit", hits), float64(hits))
}

// coneReaches reports whether some point of body lies inside the cone with a
// clear line from the origin. Candidates are the body's corners, edge
// midpoints and centre, its point nearest the origin, and where the cone's
// two boundary rays enter it.
func coneReaches(origin, dir Vec2, rng, half, cosHalf float64, body Rect, cover CoverGeometry) bool {
	pts := []Vec2{
		body.Closest(origin),
		body.Center(),
		V(body.X, body.Y), V(body.MaxX(), body.Y), V(body.X, body.MaxY()), V(body.MaxX(), body.MaxY()),
		V(body.Center().X, body.Y), V(body.Center().X, body.MaxY()),
		V(body.X, body.Center().Y), V(body.MaxX(), body.Center().Y),
	}
	for _, pt := range pts {
		if inCone(origin, dir, rng, cosHalf, pt) && LineClear(origin, pt, cover) {
			return true
		}
	}
	// Boundary ray entries are in the cone by construction.
	for _, a := range []float64{-half, half} {
		end := origin.Add(rotate(dir, a).Scale(rng))
		if t, ok := segmentRectHitT(origin, end, body); ok && LineClear(origin, origin.Lerp(end, t), cover) {
			return true
		}
	}
	return false
}

func rotate(v Vec2, a float64) Vec2 {
	sin, cos := math.Sincos(a)
	return V(v.X*cos-v.Y*sin, v.X*sin+v.Y*cos)
}

// inCone reports whether pt lies within rng of origin and within the
// half-angle (given as its cosine) of dir.
func inCone(origin, dir Vec2, rng, cosHalf float64, pt Vec2) bool {
	v := pt.Sub(origin)
	d := v.Len()
	if d > rng {
		return false
	}
	if d < 1e-9 {
		return true
	}
	return v.Dot(dir)/d >= cosHalf
}
