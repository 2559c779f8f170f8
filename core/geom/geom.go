// Package geom holds the small amount of planar math shared by hit-testing,
// the simulation and the renderer.
package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Point is a world-space position.
type Point = r2.Vec

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// DistSq returns the squared distance between a and b.
func DistSq(a, b Point) float64 { return r2.Norm2(r2.Sub(a, b)) }

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b Point) Point { return r2.Scale(0.5, r2.Add(a, b)) }

// SegmentDistSq returns the squared distance from p to the segment a-b.
//
// The projection parameter is clamped to [margin/2, 1-margin/2] instead of
// [0, 1], so points near either endpoint measure against an inner part of the
// segment. A margin of 0 gives the usual clamped distance. Degenerate segments
// measure against a.
func SegmentDistSq(p, a, b Point, margin float64) float64 {
	ab := r2.Sub(b, a)
	lenSq := r2.Norm2(ab)
	if lenSq == 0 {
		return DistSq(a, p)
	}
	t := r2.Dot(r2.Sub(p, a), ab) / lenSq
	t = Clamp(t, margin/2, 1-margin/2)
	proj := r2.Add(a, r2.Scale(t, ab))
	return DistSq(proj, p)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// FromAngle returns the unit vector pointing at angle radians.
func FromAngle(angle float64) Point {
	return Point{X: math.Cos(angle), Y: math.Sin(angle)}
}

// Positioned is anything that sits somewhere in world space.
type Positioned interface {
	Position() Point
}

// Translated pairs a value with its camera-relative position.
type Translated[T Positioned] struct {
	Pos   Point
	Inner T
}

// Translate shifts v into camera space.
func Translate[T Positioned](v T, camera Point) Translated[T] {
	return Translated[T]{Pos: r2.Sub(v.Position(), camera), Inner: v}
}

// ToCamera shifts a bare point into camera space.
func ToCamera(p, camera Point) Point { return r2.Sub(p, camera) }

// ToWorld is the inverse of ToCamera.
func ToWorld(p, camera Point) Point { return r2.Add(p, camera) }
