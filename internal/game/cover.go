package game

import "fmt"

// CoverKind identifies the type of cover zone.
type CoverKind int

const (
	// CoverWall is an impassable wall taller than a person.
	// Stops bullets and bodies alike.
	CoverWall CoverKind = iota

	// CoverBunker is a low emplacement an enemy crouches behind.
	// Stops bullets and bodies; grants its height as crouch protection.
	CoverBunker

	// CoverPlatform is a ledge or floor. Bodies stand on it, bullets pass.
	CoverPlatform

	// CoverScrub is decorative brush. Blocks nothing.
	CoverScrub
)

func (k CoverKind) String() string {
	switch k {
	case CoverWall:
		return "wall"
	case CoverBunker:
		return "bunker"
	case CoverPlatform:
		return "platform"
	case CoverScrub:
		return "scrub"
	default:
		return "unknown"
	}
}

// ParseCoverKind maps a level-file name to a CoverKind.
func ParseCoverKind(s string) (CoverKind, error) {
	for k := CoverWall; k <= CoverScrub; k++ {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown cover kind %q", s)
}

// CoverZone is a single static obstacle in the world.
type CoverZone struct {
	Kind CoverKind
	Rect Rect

	BlocksProjectiles bool
	BlocksMovement    bool

	// ProtectionHeight is the vertical span above a crouching defender's feet
	// that this zone shields. Zero means the zone offers no crouch protection.
	ProtectionHeight float64
}

// NewCoverZone builds a zone with the default flags for its kind.
func NewCoverZone(kind CoverKind, r Rect) CoverZone {
	z := CoverZone{Kind: kind, Rect: r}
	switch kind {
	case CoverWall:
		z.BlocksProjectiles = true
		z.BlocksMovement = true
	case CoverBunker:
		z.BlocksProjectiles = true
		z.BlocksMovement = true
		z.ProtectionHeight = r.H
	case CoverPlatform:
		z.BlocksMovement = true
	}
	return z
}

// Top returns the Y of the zone's upper edge (the surface bodies land on).
func (c CoverZone) Top() float64 { return c.Rect.MinY() }

// CoverGeometry is the read-only list of cover zones for a level.
type CoverGeometry []CoverZone

// MovementBlockers returns every zone overlapping r that blocks movement.
func (g CoverGeometry) MovementBlockers(r Rect) []CoverZone {
	var out []CoverZone
	for _, c := range g {
		if c.BlocksMovement && c.Rect.Overlaps(r) {
			out = append(out, c)
		}
	}
	return out
}

// MovementBlocked reports whether any movement-blocking zone overlaps r.
func (g CoverGeometry) MovementBlocked(r Rect) bool {
	for _, c := range g {
		if c.BlocksMovement && c.Rect.Overlaps(r) {
			return true
		}
	}
	return false
}

// FirstProjectileHit returns the earliest segment parameter at which a->b
// enters a projectile-blocking zone.
func (g CoverGeometry) FirstProjectileHit(a, b Vec2) (float64, bool) {
	best, found := 0.0, false
	for _, c := range g {
		if !c.BlocksProjectiles {
			continue
		}
		if t, ok := segmentRectHitT(a, b, c.Rect); ok && (!found || t < best) {
			best, found = t, true
		}
	}
	return best, found
}

// NearestProtection returns the protection height of the closest bunker
// whose horizontal centre lies within reach of x. Used when a combatant has no
// explicit protection height configured.
func (g CoverGeometry) NearestProtection(x, reach float64) float64 {
	best := -1.0
	h := 0.0
	for _, c := range g {
		if c.ProtectionHeight <= 0 {
			continue
		}
		d := c.Rect.Center().X - x
		if d < 0 {
			d = -d
		}
		if d <= reach && (best < 0 || d < best) {
			best = d
			h = c.ProtectionHeight
		}
	}
	return h
}
