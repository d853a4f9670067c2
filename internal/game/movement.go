package game

// edgeClearance keeps a snapped body from re-touching the edge it met.
const edgeClearance = 0.5

// MovementResolver moves bodies through the world's cover geometry.
type MovementResolver struct {
	world *World
}

// NewMovementResolver creates a resolver bound to w.
func NewMovementResolver(w *World) MovementResolver {
	return MovementResolver{world: w}
}

// ResolveSideView integrates c's velocity for one step of length step,
// resolving X first then Y. A horizontal overlap snaps the body to the
// zone's near edge and zeroes horizontal velocity. A vertical overlap is a
// landing when the feet were at or above the zone's top before the move, or
// a ceiling contact when the head was at or below its underside. With no
// zone involved the global ground plane catches the body.
func (m MovementResolver) ResolveSideView(c *Combatant, step float64) {
	cfg := c.cfg
	b := m.world.Bounds

	// X axis.
	nx := c.pos.X + c.vel.X*step
	if c.vel.X != 0 {
		snapped := false
		for _, z := range m.world.Cover.MovementBlockers(boundsAt(V(nx, c.pos.Y), cfg)) {
			if c.vel.X > 0 {
				if edge := z.Rect.MinX() - cfg.HalfWidth - edgeClearance; edge < nx {
					nx = edge
				}
			} else {
				if edge := z.Rect.MaxX() + cfg.HalfWidth + edgeClearance; edge > nx {
					nx = edge
				}
			}
			snapped = true
		}
		if snapped {
			c.vel.X = 0
		}
	}
	if b.W > 0 {
		lo, hi := b.MinX()+cfg.HalfWidth, b.MaxX()-cfg.HalfWidth
		if nx < lo || nx > hi {
			nx = clampf(nx, lo, hi)
			c.vel.X = 0
		}
	}

	// Y axis.
	prevFeet := c.pos.Y
	prevHead := prevFeet - cfg.Height
	ny := c.pos.Y + c.vel.Y*step
	landed, ceiling := false, false
	landY := ny
	for _, z := range m.world.Cover.MovementBlockers(boundsAt(V(nx, ny), cfg)) {
		switch {
		case c.vel.Y >= 0 && prevFeet <= z.Top()+edgeClearance:
			if !landed || z.Top() < landY {
				landY = z.Top()
			}
			landed = true
		case c.vel.Y < 0 && prevHead >= z.Rect.MaxY()-edgeClearance:
			ceiling = true
		}
	}

	switch {
	case ceiling:
		ny = c.pos.Y
		c.vel.Y = 0
		c.grounded = false
	case landed:
		ny = landY
		c.vel.Y = 0
		c.grounded = true
	case m.world.GroundY > 0 && ny >= m.world.GroundY:
		ny = m.world.GroundY
		c.vel.Y = 0
		c.grounded = true
	default:
		c.grounded = false
	}

	c.pos = V(nx, ny)
}

// ResolveTopDown applies delta one axis at a time. An axis whose move would
// overlap movement-blocking cover is reverted wholly. The result is clamped
// to the world bounds accounting for the body's half-extents.
func (m MovementResolver) ResolveTopDown(c *Combatant, delta Vec2) (blockedX, blockedY bool) {
	p := c.pos
	if delta.X != 0 {
		try := V(p.X+delta.X, p.Y)
		if m.world.MovementBlocked(boundsAt(try, c.cfg)) {
			blockedX = true
		} else {
			p = try
		}
	}
	if delta.Y != 0 {
		try := V(p.X, p.Y+delta.Y)
		if m.world.MovementBlocked(boundsAt(try, c.cfg)) {
			blockedY = true
		} else {
			p = try
		}
	}
	c.pos = m.clampTopDown(p, c.cfg)
	return blockedX, blockedY
}

// Blocked reports whether c would overlap movement-blocking cover at p.
func (m MovementResolver) Blocked(c *Combatant, p Vec2) bool {
	return m.world.MovementBlocked(boundsAt(p, c.cfg))
}

func (m MovementResolver) clampTopDown(p Vec2, cfg CombatantConfig) Vec2 {
	b := m.world.Bounds
	if b.W <= 0 || b.H <= 0 {
		return p
	}
	hh := cfg.Height / 2
	return V(
		clampf(p.X, b.MinX()+cfg.HalfWidth, b.MaxX()-cfg.HalfWidth),
		clampf(p.Y, b.MinY()+hh, b.MaxY()-hh),
	)
}
