// Package physics provides vector math, collision tests and random helpers
// for the simulation.
package physics

import "math"

// Vec2 is a 2D vector in logical screen units.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for Vec2{X: x, Y: y}.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Uniform returns a vector with both components set to s.
func Uniform(s float64) Vec2 {
	return Vec2{X: s, Y: s}
}

// FromPolar returns the vector with the given heading (radians) and length.
func FromPolar(angle, length float64) Vec2 {
	return Vec2{X: math.Cos(angle) * length, Y: math.Sin(angle) * length}
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(f float64) Vec2 { return Vec2{v.X * f, v.Y * f} }
func (v Vec2) Mul(o Vec2) Vec2 { return Vec2{v.X * o.X, v.Y * o.Y} }

// LenSq returns the squared length. Prefer it over Len for comparisons.
func (v Vec2) LenSq() float64 { return v.X*v.X + v.Y*v.Y }

// Len returns the Euclidean length.
func (v Vec2) Len() float64 { return math.Sqrt(v.LenSq()) }

// IsZero reports whether both components are exactly zero.
func (v Vec2) IsZero() bool { return v.X == 0 && v.Y == 0 }

// Angle returns the heading of v in radians, in (-π, π].
func (v Vec2) Angle() float64 { return math.Atan2(v.Y, v.X) }

// ScaleTo returns v rescaled to the given length. The zero vector stays zero.
func (v Vec2) ScaleTo(length float64) Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return v.Scale(length / l)
}

// Normalize returns the unit vector along v, or zero for the zero vector.
func (v Vec2) Normalize() Vec2 { return v.ScaleTo(1) }

// Rotate returns v rotated by angle radians. Y grows downward, so positive
// angles turn clockwise on screen.
func (v Vec2) Rotate(angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{X: v.X*cos - v.Y*sin, Y: v.X*sin + v.Y*cos}
}

// Clamp limits each component of v to [min, max].
func (v Vec2) Clamp(min, max Vec2) Vec2 {
	return Vec2{X: clamp(v.X, min.X, max.X), Y: clamp(v.Y, min.Y, max.Y)}
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// WrapAngle maps an angle into [0, 2π).
func WrapAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}
