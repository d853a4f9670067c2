package game

// World is the spatial registry: every live combatant and projectile plus the
// static cover geometry. Entities leave only through Deregister, and the
// backing slices are compacted by Flush at the end of a tick, so a removal
// triggered mid-iteration never disturbs the caller's loop.
type World struct {
	Bounds  Rect
	GroundY float64 // global ground plane for side-view bodies; 0 = none
	Cover   CoverGeometry

	nextID      EntityID
	combatants  []*Combatant
	projectiles []*Projectile
	byID        map[EntityID]Kind
	pending     []EntityID
}

// NewWorld creates an empty world.
func NewWorld(bounds Rect, groundY float64, cover CoverGeometry) *World {
	return &World{
		Bounds:  bounds,
		GroundY: groundY,
		Cover:   cover,
		byID:    make(map[EntityID]Kind),
	}
}

func (w *World) allocID(kind Kind) EntityID {
	w.nextID++
	w.byID[w.nextID] = kind
	return w.nextID
}

// RegisterCombatant assigns c an ID and adds it to the registry.
func (w *World) RegisterCombatant(c *Combatant) EntityID {
	c.id = w.allocID(c.kind)
	c.world = w
	w.combatants = append(w.combatants, c)
	return c.id
}

// RegisterProjectile assigns p an ID and adds it to the registry.
func (w *World) RegisterProjectile(p *Projectile) EntityID {
	p.id = w.allocID(p.entityKind())
	w.projectiles = append(w.projectiles, p)
	return p.id
}

// Deregister removes id from the registry. The entity stays in the backing
// slices until Flush but is no longer returned by any query.
func (w *World) Deregister(id EntityID) {
	if _, ok := w.byID[id]; !ok {
		return
	}
	delete(w.byID, id)
	w.pending = append(w.pending, id)
}

// Registered reports whether id is still in the registry.
func (w *World) Registered(id EntityID) bool {
	_, ok := w.byID[id]
	return ok
}

// IsLive reports whether id is a registered combatant that is not dying.
func (w *World) IsLive(id EntityID) bool {
	c, ok := w.Lookup(id)
	return ok && c.Alive()
}

// Lookup returns the registered combatant with the given ID.
func (w *World) Lookup(id EntityID) (*Combatant, bool) {
	if k, ok := w.byID[id]; !ok || k == KindProjectile || k == KindBlast {
		return nil, false
	}
	for _, c := range w.combatants {
		if c.id == id {
			return c, true
		}
	}
	return nil, false
}

// Combatants returns a snapshot of every registered combatant in
// registration order.
func (w *World) Combatants() []*Combatant {
	out := make([]*Combatant, 0, len(w.combatants))
	for _, c := range w.combatants {
		if w.Registered(c.id) {
			out = append(out, c)
		}
	}
	return out
}

// CombatantsOf returns a snapshot of registered combatants of one kind.
func (w *World) CombatantsOf(kind Kind) []*Combatant {
	var out []*Combatant
	for _, c := range w.combatants {
		if c.kind == kind && w.Registered(c.id) {
			out = append(out, c)
		}
	}
	return out
}

// Projectiles returns a snapshot of every registered projectile.
func (w *World) Projectiles() []*Projectile {
	out := make([]*Projectile, 0, len(w.projectiles))
	for _, p := range w.projectiles {
		if w.Registered(p.id) {
			out = append(out, p)
		}
	}
	return out
}

// CombatantsInRect returns registered combatants whose bounds overlap r.
func (w *World) CombatantsInRect(r Rect) []*Combatant {
	var out []*Combatant
	for _, c := range w.Combatants() {
		if c.Bounds().Overlaps(r) {
			out = append(out, c)
		}
	}
	return out
}

// CombatantsWithin returns registered combatants whose anchor lies strictly
// closer than radius to center.
func (w *World) CombatantsWithin(center Vec2, radius float64) []*Combatant {
	var out []*Combatant
	for _, c := range w.Combatants() {
		if c.pos.Dist(center) < radius {
			out = append(out, c)
		}
	}
	return out
}

// MovementBlocked reports whether r overlaps movement-blocking cover.
func (w *World) MovementBlocked(r Rect) bool {
	return w.Cover.MovementBlocked(r)
}

// Flush compacts the backing slices, discarding deregistered entities.
// Called once per tick at a point where nobody is iterating.
func (w *World) Flush() int {
	if len(w.pending) == 0 {
		return 0
	}
	n := len(w.pending)
	w.pending = w.pending[:0]

	kept := w.combatants[:0]
	for _, c := range w.combatants {
		if w.Registered(c.id) {
			kept = append(kept, c)
		}
	}
	for i := len(kept); i < len(w.combatants); i++ {
		w.combatants[i] = nil
	}
	w.combatants = kept

	keptP := w.projectiles[:0]
	for _, p := range w.projectiles {
		if w.Registered(p.id) {
			keptP = append(keptP, p)
		}
	}
	for i := len(keptP); i < len(w.projectiles); i++ {
		w.projectiles[i] = nil
	}
	w.projectiles = keptP
	return n
}

// Count returns the number of registered entities.
func (w *World) Count() int { return len(w.byID) }

// SegmentBlocked reports whether projectile-blocking cover lies between a and b.
func (w *World) SegmentBlocked(a, b Vec2) bool {
	return !LineClear(a, b, w.Cover)
}
