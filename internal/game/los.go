package game

import "math"

// LineClear returns true if a straight line from a to b does not cross any
// cover zone that blocks projectiles. Uses simple segment-vs-AABB tests.
func LineClear(a, b Vec2, covers []CoverZone) bool {
	for _, c := range covers {
		if !c.BlocksProjectiles {
			continue
		}
		if segmentIntersectsRect(a, b, c.Rect) {
			return false
		}
	}
	return true
}

// segmentRectHitT returns the first segment parameter t in [0,1] where the line
// from a->b enters r. The bool is false when no hit exists.
func segmentRectHitT(a, b Vec2, r Rect) (float64, bool) {
	dx := b.X - a.X
	dy := b.Y - a.Y

	tMin := 0.0
	tMax := 1.0

	// X slab
	if math.Abs(dx) < 1e-12 {
		if a.X < r.MinX() || a.X > r.MaxX() {
			return 0, false
		}
	} else {
		invD := 1.0 / dx
		t1 := (r.MinX() - a.X) * invD
		t2 := (r.MaxX() - a.X) * invD
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return 0, false
		}
	}

	// Y slab
	if math.Abs(dy) < 1e-12 {
		if a.Y < r.MinY() || a.Y > r.MaxY() {
			return 0, false
		}
	} else {
		invD := 1.0 / dy
		t1 := (r.MinY() - a.Y) * invD
		t2 := (r.MaxY() - a.Y) * invD
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return 0, false
		}
	}

	if tMax < 0 || tMin > 1 {
		return 0, false
	}
	return tMin, true
}

// segmentIntersectsRect checks if the segment a->b touches r.
func segmentIntersectsRect(a, b Vec2, r Rect) bool {
	_, hit := segmentRectHitT(a, b, r)
	return hit
}
