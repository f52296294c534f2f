package shading

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"ph_calc/diagnostics"
	"ph_calc/geometry"
)

// Overhang is a horizontal projection above an aperture.
type Overhang struct {
	Depth     float64 // projection from the wall, m
	Gap       float64 // from the aperture head to the overhang, m
	Extension float64 // beyond each side of the aperture, m
}

func (o Overhang) Validate() error {
	if o.Depth <= 0 || o.Gap < 0 || o.Extension < 0 {
		return diagnostics.Errorf(diagnostics.InputInvalid, "overhang", "depth must be > 0, gap and extension >= 0")
	}
	return nil
}

/*
Face returns the overhang surface for a vertical aperture.

	Args:
		ap: aperture face, outward normal horizontal
	Returns:
		horizontal rectangle projecting Depth along the normal from the
		aperture head plus Gap
*/
func (o Overhang) Face(ap geometry.Face) (geometry.Face, error) {
	if err := o.Validate(); err != nil {
		return geometry.Face{}, err
	}
	n := ap.Normal()
	if math.Abs(n.Z) > 1e-6 {
		return geometry.Face{}, diagnostics.Errorf(diagnostics.InputInvalid, "overhang", "overhangs need a vertical aperture")
	}
	pl := ap.Plane()
	minU, maxU, maxV := math.Inf(1), math.Inf(-1), math.Inf(-1)
	for _, p := range ap.Vertices {
		u, v := pl.ToLocal(p)
		minU, maxU, maxV = math.Min(minU, u), math.Max(maxU, u), math.Max(maxV, v)
	}
	a := pl.FromLocal(minU-o.Extension, maxV+o.Gap)
	b := pl.FromLocal(maxU+o.Extension, maxV+o.Gap)
	out := r3.Scale(o.Depth, n)
	return geometry.NewFace(a, b, r3.Add(b, out), r3.Add(a, out)), nil
}

/*
OverhangSkyShading returns the share of the hemisphere in front of a
vertical window that an infinitely long overhang hides.

	Args:
		depth: overhang projection, m
		gap: window head to overhang, m
		height: window height, m
	Returns:
		shaded share, 0 to 0.5 (the sky half of the hemisphere)
*/
func OverhangSkyShading(depth, gap, height float64) float64 {
	top := gap + height
	return ((top + math.Sqrt(gap*gap+depth*depth)) - (gap + math.Sqrt(top*top+depth*depth))) / (2 * height)
}

/*
OverhangBeamShading returns the shaded share of a vertical window under an
infinitely long overhang for one sun position.

	Args:
		altitude: solar altitude, rad
		azimuth: solar azimuth, rad
		wallAzimuth: azimuth of the window normal, rad, same convention
		depth, gap, height: as OverhangSkyShading, m
	Returns:
		shaded share 0..1; 0 when the sun is down or behind the wall
*/
func OverhangBeamShading(altitude, azimuth, wallAzimuth, depth, gap, height float64) float64 {
	cosA := math.Cos(azimuth - wallAzimuth)
	if altitude <= 0 || cosA <= 0 {
		return 0
	}
	// profile angle tangent
	tanPhi := math.Tan(altitude) / cosA
	shadow := depth*tanPhi - gap
	return math.Min(math.Max(shadow/height, 0), 1)
}
