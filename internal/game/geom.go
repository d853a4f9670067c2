package game

import "math"

// directionEpsilon is the magnitude below which a direction is treated as degenerate.
const directionEpsilon = 1e-4

// Vec2 is a continuous 2D position, velocity or direction.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for constructing a Vec2.
func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(k float64) Vec2 { return Vec2{v.X * k, v.Y * k} }
func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }
func (v Vec2) Dist(o Vec2) float64 { return v.Sub(o).Len() }
func (v Vec2) IsZero() bool { return v.X == 0 && v.Y == 0 }
func (v Vec2) Lerp(o Vec2, t float64) Vec2 {
	return Vec2{v.X + (o.X-v.X)*t, v.Y + (o.Y-v.Y)*t}
}

// Normalize returns the unit vector of v. Vectors shorter than
// directionEpsilon yield fallback and ok=false.
func (v Vec2) Normalize(fallback Vec2) (Vec2, bool) {
	l := v.Len()
	if l < directionEpsilon {
		return fallback, false
	}
	return Vec2{v.X / l, v.Y / l}, true
}

// Rect is an axis-aligned rectangle with its origin at the top-left corner.
type Rect struct {
	X, Y, W, H float64
}

// R is shorthand for constructing a Rect.
func R(x, y, w, h float64) Rect { return Rect{X: x, Y: y, W: w, H: h} }

func (r Rect) MinX() float64 { return r.X }
func (r Rect) MinY() float64 { return r.Y }
func (r Rect) MaxX() float64 { return r.X + r.W }
func (r Rect) MaxY() float64 { return r.Y + r.H }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec2 { return Vec2{r.X + r.W/2, r.Y + r.H/2} }

// Contains reports whether p lies inside r (edges inclusive).
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X <= r.MaxX() && p.Y >= r.Y && p.Y <= r.MaxY()
}

// Overlaps reports whether r and o share interior area. Touching edges do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.MaxX() && o.X < r.MaxX() && r.Y < o.MaxY() && o.Y < r.MaxY()
}

// Inside reports whether r lies entirely within o.
func (r Rect) Inside(o Rect) bool {
	return r.X >= o.X && r.Y >= o.Y && r.MaxX() <= o.MaxX() && r.MaxY() <= o.MaxY()
}

// Closest returns the point of r nearest to p.
func (r Rect) Closest(p Vec2) Vec2 {
	return Vec2{clampf(p.X, r.X, r.MaxX()), clampf(p.Y, r.Y, r.MaxY())}
}

// Inflate grows r by m on every side.
func (r Rect) Inflate(m float64) Rect {
	return Rect{r.X - m, r.Y - m, r.W + 2*m, r.H + 2*m}
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
