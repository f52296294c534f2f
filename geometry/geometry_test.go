package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

var south = r3.Vec{Y: -1}

func TestRectangle(t *testing.T) {
	f := Rectangle(Pt(0, 0, 0), south, 1.2, 1.5)

	assert.InDelta(t, 1.8, f.Area(), 1e-12)
	assert.InDelta(t, 5.4, f.Perimeter(), 1e-12)
	assert.True(t, AlmostEqual(south, f.Normal(), 1e-12))

	w, h := f.WidthHeight()
	assert.InDelta(t, 1.2, w, 1e-12)
	assert.InDelta(t, 1.5, h, 1e-12)
}

func TestFaceOffset(t *testing.T) {
	f := Rectangle(Pt(0, 0, 0), south, 1, 1)
	g := f.Offset(-0.1)
	for _, v := range g.Vertices {
		assert.InDelta(t, 0.1, v.Y, 1e-12)
	}
	assert.InDelta(t, f.Area(), g.Area(), 1e-12)
}

func TestGridCoversFace(t *testing.T) {
	f := Rectangle(Pt(0, 0, 0), south, 1.2, 1.5)
	cells := f.Grid(0.25)

	var area float64
	for _, c := range cells {
		area += c.Area
	}
	assert.Len(t, cells, 5*6)
	assert.InDelta(t, f.Area(), area, 1e-9)
}

func TestGridTriangle(t *testing.T) {
	f := NewFace(Pt(0, 0, 0), Pt(1, 0, 0), Pt(0, 1, 0))
	cells := f.Grid(0.01)

	var area float64
	for _, c := range cells {
		area += c.Area
	}
	assert.InDelta(t, 0.5, area, 0.01)
}

func TestDegenerateFace(t *testing.T) {
	f := NewFace(Pt(0, 0, 0), Pt(1, 0, 0), Pt(2, 0, 0))
	assert.True(t, f.IsDegenerate())
	assert.Nil(t, f.Grid(0.1))
}

func TestMeshIntersects(t *testing.T) {
	// horizontal square at z = 1
	roof := NewFace(Pt(-1, -1, 1), Pt(1, -1, 1), Pt(1, 1, 1), Pt(-1, 1, 1))
	m := NewMesh(roof)
	assert.Equal(t, 2, m.Len())

	assert.True(t, m.Intersects(Pt(0, 0, 0), Up))
	assert.False(t, m.Intersects(Pt(0, 0, 0), r3.Vec{Z: -1}))
	assert.False(t, m.Intersects(Pt(5, 0, 0), Up))
	assert.False(t, m.Intersects(Pt(0, 0, 2), Up))

	var empty *Mesh
	assert.False(t, empty.Intersects(Pt(0, 0, 0), Up))
}

func TestPolylineLength(t *testing.T) {
	p := NewPolyline(Pt(0, 0, 0), Pt(3, 0, 0), Pt(3, 4, 0))
	assert.InDelta(t, 7.0, p.Length(), 1e-12)
	assert.Len(t, p.Segments(), 2)
	assert.InDelta(t, 5.0, NewLineSegment(Pt(0, 0, 0), Pt(3, 4, 0)).Length(), 1e-12)
}

func TestDirectionFromNormal(t *testing.T) {
	tests := []struct {
		n    r3.Vec
		want Direction
	}{
		{r3.Vec{Y: -1}, DirectionS},
		{r3.Vec{Y: 1}, DirectionN},
		{r3.Vec{X: 1}, DirectionE},
		{r3.Vec{X: -1}, DirectionW},
		{r3.Vec{X: -1, Y: -1}, DirectionSW},
		{r3.Vec{Z: 1}, DirectionTop},
		{r3.Vec{Z: -1}, DirectionBottom},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DirectionFromNormal(tt.n))
	}

	az, err := DirectionW.Azimuth()
	assert.NoError(t, err)
	assert.InDelta(t, 1.5707963, az, 1e-6)
	_, err = DirectionTop.Azimuth()
	assert.Error(t, err)
}
