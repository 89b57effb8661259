package game

import "math"

// Vec2 is a point or offset in screen space
type Vec2 struct {
	X, Y float64
}

// Add returns v + o
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v multiplied by s
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Len returns the Euclidean length of v
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// DistanceTo returns the Euclidean distance between two points
func (v Vec2) DistanceTo(o Vec2) float64 { return v.Sub(o).Len() }

// Angle returns atan2(Y, X)
func (v Vec2) Angle() float64 { return math.Atan2(v.Y, v.X) }

// Vec3 is a logical stage position.
//
// X is horizontal screen position, Z is the screen row of the floor contact
// point (larger Z is nearer the viewer) and Y is the height offset from the
// floor where negative values are above it.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Scale returns v multiplied by s
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Neg returns -v
func (v Vec3) Neg() Vec3 { return Vec3{-v.X, -v.Y, -v.Z} }

// Floor returns the (X, Z) floor position ignoring height
func (v Vec3) Floor() Vec2 { return Vec2{v.X, v.Z} }

// Projected returns the screen point the entity is drawn at: height shifts the
// depth row.
func (v Vec3) Projected() Vec2 { return Vec2{v.X, v.Z + v.Y} }
