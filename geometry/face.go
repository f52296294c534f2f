package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Plane is a local 2-D frame embedded in 3-D space.
type Plane struct {
	Origin r3.Vec
	Normal r3.Vec
	XAxis  r3.Vec
	YAxis  r3.Vec
}

// NewPlane builds a right-handed frame at origin with the given normal.
// For non-horizontal planes the X axis is horizontal, so Y runs "up" the
// surface.
func NewPlane(origin, normal r3.Vec) Plane {
	n := Normalize(normal)
	var x r3.Vec
	if math.Abs(n.Z) < 1-1e-6 {
		x = Normalize(r3.Cross(Up, n))
	} else {
		x = r3.Vec{X: 1}
	}
	y := r3.Cross(n, x)
	return Plane{Origin: origin, Normal: n, XAxis: x, YAxis: y}
}

// ToLocal projects p into plane coordinates (u, v).
func (pl Plane) ToLocal(p r3.Vec) (float64, float64) {
	d := r3.Sub(p, pl.Origin)
	return r3.Dot(d, pl.XAxis), r3.Dot(d, pl.YAxis)
}

// FromLocal maps plane coordinates back to world space.
func (pl Plane) FromLocal(u, v float64) r3.Vec {
	return r3.Add(pl.Origin, r3.Add(r3.Scale(u, pl.XAxis), r3.Scale(v, pl.YAxis)))
}

// Face is a planar polygon. Vertices are ordered counter-clockwise when seen
// from the side the normal points to.
type Face struct {
	Vertices []r3.Vec
}

// NewFace copies pts into a new Face.
func NewFace(pts ...r3.Vec) Face {
	cp := make([]r3.Vec, len(pts))
	copy(cp, pts)
	return Face{Vertices: cp}
}

// Rectangle returns the vertical rectangle of the given width and height
// whose bottom-left corner (seen from outside) is origin and whose outward
// normal is normal.
func Rectangle(origin, normal r3.Vec, width, height float64) Face {
	pl := NewPlane(origin, normal)
	return NewFace(
		pl.FromLocal(0, 0),
		pl.FromLocal(width, 0),
		pl.FromLocal(width, height),
		pl.FromLocal(0, height),
	)
}

// areaVector is the Newell vector: its direction is the face normal and its
// length twice the face area.
func (f Face) areaVector() r3.Vec {
	var nv r3.Vec
	n := len(f.Vertices)
	for i := 0; i < n; i++ {
		nv = r3.Add(nv, r3.Cross(f.Vertices[i], f.Vertices[(i+1)%n]))
	}
	return nv
}

// Area returns the face area, m2.
func (f Face) Area() float64 {
	if len(f.Vertices) < 3 {
		return 0
	}
	return 0.5 * r3.Norm(f.areaVector())
}

// Normal returns the unit normal of the face (zero for degenerate faces).
func (f Face) Normal() r3.Vec {
	if len(f.Vertices) < 3 {
		return r3.Vec{}
	}
	return Normalize(f.areaVector())
}

// IsDegenerate reports whether the face has no usable area.
func (f Face) IsDegenerate() bool {
	return f.Area() < Tolerance
}

// Centroid returns the vertex average. Exact for the rectangles and
// triangles used as apertures.
func (f Face) Centroid() r3.Vec {
	var c r3.Vec
	if len(f.Vertices) == 0 {
		return c
	}
	for _, v := range f.Vertices {
		c = r3.Add(c, v)
	}
	return r3.Scale(1/float64(len(f.Vertices)), c)
}

// Plane returns the face's local frame anchored at its first vertex.
func (f Face) Plane() Plane {
	return NewPlane(f.Vertices[0], f.Normal())
}

// Perimeter returns the summed edge length, m.
func (f Face) Perimeter() float64 {
	var l float64
	for _, e := range f.Edges() {
		l += e.Length()
	}
	return l
}

// Edges returns the closed loop of edges.
func (f Face) Edges() []LineSegment {
	n := len(f.Vertices)
	edges := make([]LineSegment, 0, n)
	for i := 0; i < n; i++ {
		edges = append(edges, LineSegment{P0: f.Vertices[i], P1: f.Vertices[(i+1)%n]})
	}
	return edges
}

// Translate returns the face moved by d.
func (f Face) Translate(d r3.Vec) Face {
	out := make([]r3.Vec, len(f.Vertices))
	for i, v := range f.Vertices {
		out[i] = r3.Add(v, d)
	}
	return Face{Vertices: out}
}

// Offset returns the face moved by dist along its own normal.
func (f Face) Offset(dist float64) Face {
	return f.Translate(r3.Scale(dist, f.Normal()))
}

// WidthHeight returns the extents of the face in its local frame: the
// horizontal width and the in-plane height, m.
func (f Face) WidthHeight() (float64, float64) {
	if len(f.Vertices) == 0 {
		return 0, 0
	}
	pl := f.Plane()
	minU, minV := math.Inf(1), math.Inf(1)
	maxU, maxV := math.Inf(-1), math.Inf(-1)
	for _, p := range f.Vertices {
		u, v := pl.ToLocal(p)
		minU, maxU = math.Min(minU, u), math.Max(maxU, u)
		minV, maxV = math.Min(minV, v), math.Max(maxV, v)
	}
	return maxU - minU, maxV - minV
}

// containsLocal is an even-odd point-in-polygon test in plane coordinates.
func containsLocal(us, vs []float64, u, v float64) bool {
	inside := false
	n := len(us)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		if (vs[i] > v) != (vs[j] > v) &&
			u < (us[j]-us[i])*(v-vs[i])/(vs[j]-vs[i])+us[i] {
			inside = !inside
		}
	}
	return inside
}

// GridCell is one analysis cell of a face.
type GridCell struct {
	Center r3.Vec
	Area   float64
}

/*
Grid subdivides the face into analysis cells no larger than size.

	Args:
		size: target grid size, m
	Returns:
		cells whose centers fall inside the face, in row-major order
	Notes:
		cell areas are clipped so that their sum equals the face area
		for rectangular faces; other shapes are approximated by the
		cell-center test.
*/
func (f Face) Grid(size float64) []GridCell {
	if f.IsDegenerate() || size <= 0 {
		return nil
	}
	pl := f.Plane()
	us := make([]float64, len(f.Vertices))
	vs := make([]float64, len(f.Vertices))
	minU, minV := math.Inf(1), math.Inf(1)
	maxU, maxV := math.Inf(-1), math.Inf(-1)
	for i, p := range f.Vertices {
		us[i], vs[i] = pl.ToLocal(p)
		minU, maxU = math.Min(minU, us[i]), math.Max(maxU, us[i])
		minV, maxV = math.Min(minV, vs[i]), math.Max(maxV, vs[i])
	}

	nu := int(math.Max(1, math.Ceil((maxU-minU)/size-1e-9)))
	nv := int(math.Max(1, math.Ceil((maxV-minV)/size-1e-9)))
	du := (maxU - minU) / float64(nu)
	dv := (maxV - minV) / float64(nv)

	cells := make([]GridCell, 0, nu*nv)
	for j := 0; j < nv; j++ {
		for i := 0; i < nu; i++ {
			cu := minU + (float64(i)+0.5)*du
			cv := minV + (float64(j)+0.5)*dv
			if !containsLocal(us, vs, cu, cv) {
				continue
			}
			cells = append(cells, GridCell{Center: pl.FromLocal(cu, cv), Area: du * dv})
		}
	}
	return cells
}
