package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Tolerance is the model tolerance for geometric comparisons, m.
const Tolerance = 1e-9

// Up is the world Z axis. The world frame is X east, Y north, Z up.
var Up = r3.Vec{X: 0, Y: 0, Z: 1}

// Pt is a shorthand constructor for a 3-D point.
func Pt(x, y, z float64) r3.Vec {
	return r3.Vec{X: x, Y: y, Z: z}
}

// Distance returns the Euclidean distance between p and q.
func Distance(p, q r3.Vec) float64 {
	return r3.Norm(r3.Sub(p, q))
}

// IsZero reports whether v is shorter than Tolerance.
func IsZero(v r3.Vec) bool {
	return r3.Norm(v) < Tolerance
}

// Normalize returns the unit vector of v, or the zero vector if v is zero.
func Normalize(v r3.Vec) r3.Vec {
	if IsZero(v) {
		return r3.Vec{}
	}
	return r3.Unit(v)
}

// AlmostEqual reports whether p and q coincide within tol.
func AlmostEqual(p, q r3.Vec, tol float64) bool {
	return math.Abs(p.X-q.X) <= tol && math.Abs(p.Y-q.Y) <= tol && math.Abs(p.Z-q.Z) <= tol
}

// LineSegment is a straight segment between two points.
type LineSegment struct {
	P0 r3.Vec
	P1 r3.Vec
}

// NewLineSegment returns the segment from p0 to p1.
func NewLineSegment(p0, p1 r3.Vec) LineSegment {
	return LineSegment{P0: p0, P1: p1}
}

// Length returns the length of the segment, m.
func (s LineSegment) Length() float64 {
	return Distance(s.P0, s.P1)
}

// Midpoint returns the midpoint of the segment.
func (s LineSegment) Midpoint() r3.Vec {
	return r3.Scale(0.5, r3.Add(s.P0, s.P1))
}

// Polyline is an open sequence of connected points.
type Polyline struct {
	Points []r3.Vec
}

// NewPolyline copies pts into a new Polyline.
func NewPolyline(pts ...r3.Vec) Polyline {
	cp := make([]r3.Vec, len(pts))
	copy(cp, pts)
	return Polyline{Points: cp}
}

// Length returns the summed length of all segments, m.
func (p Polyline) Length() float64 {
	var l float64
	for i := 1; i < len(p.Points); i++ {
		l += Distance(p.Points[i-1], p.Points[i])
	}
	return l
}

// Segments returns the polyline's segments in order.
func (p Polyline) Segments() []LineSegment {
	if len(p.Points) < 2 {
		return nil
	}
	segs := make([]LineSegment, 0, len(p.Points)-1)
	for i := 1; i < len(p.Points); i++ {
		segs = append(segs, LineSegment{P0: p.Points[i-1], P1: p.Points[i]})
	}
	return segs
}

// Curve is anything with a length: thermal bridges and pipes carry either a
// segment or a polyline.
type Curve interface {
	Length() float64
}
