// Package geom holds the ground-plane math shared by the simulation and its
// terrain collaborator.
package geom

import "math"

// Vec2 is a point or direction on the ground plane. Height is implicit and
// always zero.
type Vec2 struct {
	X float64 `json:"x" msgpack:"x"`
	Z float64 `json:"z" msgpack:"z"`
}

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{X: v.X + o.X, Z: v.Z + o.Z} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{X: v.X - o.X, Z: v.Z - o.Z} }
func (v Vec2) Scale(f float64) Vec2 { return Vec2{X: v.X * f, Z: v.Z * f} }
func (v Vec2) Dot(o Vec2) float64   { return v.X*o.X + v.Z*o.Z }
func (v Vec2) Len() float64         { return math.Hypot(v.X, v.Z) }
func (v Vec2) Dist(o Vec2) float64  { return v.Sub(o).Len() }
func (v Vec2) IsZero() bool         { return v.X == 0 && v.Z == 0 }
func (v Vec2) Lerp(o Vec2, t float64) Vec2 {
	return Vec2{X: v.X + (o.X-v.X)*t, Z: v.Z + (o.Z-v.Z)*t}
}

// Normalize returns the unit vector, or zero for a zero vector.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / l, Z: v.Z / l}
}

// Clamp keeps v inside the square [-half, half] on both axes.
func (v Vec2) Clamp(half float64) Vec2 {
	return Vec2{X: clamp(v.X, -half, half), Z: clamp(v.Z, -half, half)}
}

// FromAngle is the unit vector at angle radians from the +X axis.
func FromAngle(angle float64) Vec2 {
	return Vec2{X: math.Cos(angle), Z: math.Sin(angle)}
}

// Circle is a round footprint on the ground plane.
type Circle struct {
	Center Vec2    `json:"center" msgpack:"center"`
	Radius float64 `json:"radius" msgpack:"radius"`
}

// Overlaps reports whether a circle of radius r at p intersects c.
func (c Circle) Overlaps(p Vec2, r float64) bool {
	return c.Center.Dist(p) < c.Radius+r
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
