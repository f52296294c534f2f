package geometry

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Triangle is one mesh facet.
type Triangle struct {
	A, B, C r3.Vec
}

// Mesh is a triangle soup used as ray-casting context.
type Mesh struct {
	Triangles []Triangle
}

// NewMesh triangulates the faces (fan triangulation; faces are expected to
// be convex) into a mesh.
func NewMesh(faces ...Face) *Mesh {
	m := &Mesh{}
	m.AddFaces(faces...)
	return m
}

// AddFaces appends the triangulated faces to m.
func (m *Mesh) AddFaces(faces ...Face) {
	for _, f := range faces {
		if len(f.Vertices) < 3 {
			continue
		}
		v0 := f.Vertices[0]
		for i := 1; i+1 < len(f.Vertices); i++ {
			t := Triangle{A: v0, B: f.Vertices[i], C: f.Vertices[i+1]}
			if IsZero(r3.Cross(r3.Sub(t.B, t.A), r3.Sub(t.C, t.A))) {
				continue
			}
			m.Triangles = append(m.Triangles, t)
		}
	}
}

// Len returns the number of triangles.
func (m *Mesh) Len() int {
	if m == nil {
		return 0
	}
	return len(m.Triangles)
}

// Join returns a new mesh holding the triangles of m and others.
func (m *Mesh) Join(others ...*Mesh) *Mesh {
	out := &Mesh{}
	if m != nil {
		out.Triangles = append(out.Triangles, m.Triangles...)
	}
	for _, o := range others {
		if o != nil {
			out.Triangles = append(out.Triangles, o.Triangles...)
		}
	}
	return out
}

const rayEpsilon = 1e-9

/*
intersect is the Moller-Trumbore ray/triangle test.

	Args:
		origin: ray origin
		dir: ray direction (need not be unit)
	Returns:
		true when the triangle is hit at a strictly positive distance
*/
func (t Triangle) intersect(origin, dir r3.Vec) bool {
	e1 := r3.Sub(t.B, t.A)
	e2 := r3.Sub(t.C, t.A)
	p := r3.Cross(dir, e2)
	det := r3.Dot(e1, p)
	if det > -rayEpsilon && det < rayEpsilon {
		return false
	}
	inv := 1.0 / det
	s := r3.Sub(origin, t.A)
	u := r3.Dot(s, p) * inv
	if u < 0 || u > 1 {
		return false
	}
	q := r3.Cross(s, e1)
	v := r3.Dot(dir, q) * inv
	if v < 0 || u+v > 1 {
		return false
	}
	return r3.Dot(e2, q)*inv > rayEpsilon
}

// Intersects reports whether the ray (origin, dir) hits any triangle.
func (m *Mesh) Intersects(origin, dir r3.Vec) bool {
	if m == nil {
		return false
	}
	for _, t := range m.Triangles {
		if t.intersect(origin, dir) {
			return true
		}
	}
	return false
}
