package shading

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"ph_calc/climate"
	"ph_calc/diagnostics"
	"ph_calc/geometry"
	"ph_calc/model"
)

var south = r3.Vec{Y: -1}

func aperture(t *testing.T, name string, origin r3.Vec, w, h, depth float64) *model.Aperture {
	t.Helper()
	ap, err := model.NewAperture(name, geometry.Rectangle(origin, south, w, h), nil, depth)
	require.NoError(t, err)
	return ap
}

func TestSkyLayouts(t *testing.T) {
	for _, tc := range []struct {
		kind SkyKind
		n    int
	}{
		{Tregenza, 145},
		{Reinhart, 578},
	} {
		sky := UniformSkyMatrix(tc.kind, 1)
		require.Equal(t, tc.n, sky.Len(), tc.kind.String())

		var omega float64
		for _, p := range sky.Patches {
			if !p.Ground {
				omega += p.SolidAngle
				assert.InDelta(t, 1.0, r3.Norm(p.Direction), 1e-12)
			}
		}
		assert.InDelta(t, 2*math.Pi, omega, 1e-9)
	}
	r := UniformSkyMatrix(Reinhart, 1)
	assert.True(t, r.Patches[0].Ground)
	assert.Equal(t, 0.0, r.Values()[0])
	assert.Equal(t, 577.0, r.Total())
}

func TestIsotropicSkyOnHorizontal(t *testing.T) {
	sky := IsotropicSkyMatrix(Reinhart, 100)
	var horizontal float64
	for _, p := range sky.Patches {
		if !p.Ground {
			horizontal += p.Irradiance * p.Direction.Z
		}
	}
	assert.InDelta(t, 100, horizontal, 1)
}

func TestUnobstructedApertureIsOne(t *testing.T) {
	sky := UniformSkyMatrix(Tregenza, 1)
	in := Input{
		Apertures: []*model.Aperture{aperture(t, "south", geometry.Pt(0, 0, 1), 1.2, 1.5, 0)},
		WinterSky: sky,
		SummerSky: sky,
	}
	res, report, err := Solve(in)
	require.NoError(t, err)
	assert.Equal(t, 1.0, res.Factors[0].Winter)
	assert.Equal(t, 1.0, res.Factors[0].Summer)
	assert.True(t, report.Has(diagnostics.ShadingSuspiciousFactor))
}

func TestCoveringOverhangIsZero(t *testing.T) {
	ap := aperture(t, "south", geometry.Pt(0, 0, 1), 1.2, 1.5, 0)
	roof, err := Overhang{Depth: 500, Gap: 0.001, Extension: 500}.Face(ap.Geometry)
	require.NoError(t, err)
	shade := geometry.NewMesh(roof)

	sky := UniformSkyMatrix(Tregenza, 1)
	res, report, err := Solve(Input{
		Apertures:   []*model.Aperture{ap},
		WinterSky:   sky,
		SummerSky:   sky,
		WinterShade: shade,
	})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, res.Factors[0].Winter, 1e-4)
	assert.Equal(t, 1.0, res.Factors[0].Summer)
	assert.Equal(t, 1, report.Count(diagnostics.ShadingSuspiciousFactor))
}

func TestOverhangMatchesViewFactor(t *testing.T) {
	ap := aperture(t, "south", geometry.Pt(0, 0, 1), 1, 1, 0)
	o := Overhang{Depth: 0.5, Gap: 0.2, Extension: 200}
	roof, err := o.Face(ap.Geometry)
	require.NoError(t, err)

	sky := IsotropicSkyMatrix(Reinhart, 1)
	res, _, err := Solve(Input{
		Apertures:   []*model.Aperture{ap},
		WinterSky:   sky,
		SummerSky:   sky,
		WinterShade: geometry.NewMesh(roof),
	})
	require.NoError(t, err)

	want := 1 - 2*OverhangSkyShading(o.Depth, o.Gap, 1)
	assert.InDelta(t, want, res.Factors[0].Winter, 0.05)
}

func TestSolveIsDeterministic(t *testing.T) {
	aps := []*model.Aperture{
		aperture(t, "a", geometry.Pt(0, 0, 0), 1, 1.2, 0.1),
		aperture(t, "b", geometry.Pt(2, 0, 0), 0.8, 1.0, 0),
		aperture(t, "c", geometry.Pt(4, 0, 0), 2, 2, 0.15),
	}
	roof, err := Overhang{Depth: 0.6, Gap: 0.3, Extension: 1}.Face(aps[0].Geometry)
	require.NoError(t, err)
	in := Input{
		Apertures:   aps,
		WinterSky:   UniformSkyMatrix(Tregenza, 1),
		SummerSky:   IsotropicSkyMatrix(Tregenza, 300),
		WinterShade: geometry.NewMesh(roof),
		SummerShade: geometry.NewMesh(roof),
		GridSize:    0.2,
		CPUs:        3,
	}
	first, _, err := Solve(in)
	require.NoError(t, err)
	in.CPUs = 1
	second, _, err := Solve(in)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	for _, f := range first.Factors {
		assert.GreaterOrEqual(t, f.Winter, 0.0)
		assert.LessOrEqual(t, f.Winter, 1.0)
	}
}

func TestRevealsShade(t *testing.T) {
	sky := UniformSkyMatrix(Tregenza, 1)
	res, _, err := Solve(Input{
		Apertures: []*model.Aperture{aperture(t, "deep", geometry.Pt(0, 0, 0), 1, 1, 0.2)},
		WinterSky: sky,
		SummerSky: sky,
	})
	require.NoError(t, err)
	assert.Less(t, res.Factors[0].Winter, 1.0)
	assert.Greater(t, res.Factors[0].Winter, 0.3)

	_, reveals := Reveals(geometry.Rectangle(geometry.Pt(0, 0, 0), south, 1, 1), 0.2)
	require.Len(t, reveals, 4)
	assert.InDelta(t, 0.2, reveals[0].Area(), 1e-12)
}

func TestDegenerateApertureSkipped(t *testing.T) {
	flat, err := model.NewAperture("flat", geometry.NewFace(geometry.Pt(0, 0, 0), geometry.Pt(1, 0, 0), geometry.Pt(2, 0, 0)), nil, 0)
	require.NoError(t, err)
	aps := []*model.Aperture{flat, aperture(t, "ok", geometry.Pt(0, 0, 0), 1, 1, 0)}

	sky := UniformSkyMatrix(Tregenza, 1)
	res, report, err := Solve(Input{Apertures: aps, WinterSky: sky, SummerSky: sky})
	require.NoError(t, err)
	assert.True(t, res.Factors[0].Skipped)
	assert.True(t, report.Has(diagnostics.GeoDegenerateAperture))

	applied, err := res.Apply(aps)
	require.NoError(t, err)
	assert.Equal(t, 1.0, applied[0].WinterShading)
	assert.Equal(t, 1.0, applied[1].SummerShading)
	assert.NotSame(t, aps[1], applied[1])

	_, err = res.Apply(aps[:1])
	assert.ErrorIs(t, err, diagnostics.InputInvalid)
}

func TestSolveNeedsSkies(t *testing.T) {
	_, _, err := Solve(Input{})
	assert.ErrorIs(t, err, diagnostics.InputMissing)
}

func TestSkyMatrixFromHourly(t *testing.T) {
	loc := climate.Location{Latitude: 40, Longitude: -105, TimeZone: -7}
	w := &climate.Hourly{
		Temperature:       make([]float64, climate.HoursPerYear),
		DirectNormal:      make([]float64, climate.HoursPerYear),
		DiffuseHorizontal: make([]float64, climate.HoursPerYear),
	}
	var upHours int
	suns := climate.SunPositions(loc)
	for i := range w.DirectNormal {
		w.DirectNormal[i] = 800
		if climate.MonthOfHour(i) == time.June && suns[i].Up() {
			upHours++
		}
	}

	sky, err := SkyMatrixFromHourly(Tregenza, loc, w, []time.Month{time.June})
	require.NoError(t, err)
	assert.InDelta(t, 0.8*float64(upHours), sky.Total(), 1e-6)

	// at 40N the June sun never stands low in the north
	var north float64
	for _, p := range sky.Patches {
		if p.Direction.Y > 0.9 {
			north += p.Irradiance
		}
	}
	assert.Equal(t, 0.0, north)

	_, err = SkyMatrixFromHourly(Tregenza, loc, w, nil)
	assert.ErrorIs(t, err, diagnostics.InputMissing)
	_, err = SkyMatrixFromHourly(Tregenza, loc, &climate.Hourly{}, []time.Month{time.June})
	assert.ErrorIs(t, err, diagnostics.InputInvalid)
}

func TestOverhangFormulas(t *testing.T) {
	assert.InDelta(t, 0.5, OverhangBeamShading(math.Pi/4, 0, 0, 1, 0, 2), 1e-12)
	assert.Equal(t, 0.0, OverhangBeamShading(-0.1, 0, 0, 1, 0, 2))
	assert.Equal(t, 0.0, OverhangBeamShading(0.5, math.Pi, 0, 1, 0, 2))
	assert.InDelta(t, 0.0, OverhangSkyShading(0, 0.2, 1), 1e-12)
	assert.InDelta(t, 0.5, OverhangSkyShading(1e6, 0.2, 1), 1e-6)

	_, err := Overhang{Depth: 1}.Face(geometry.NewFace(geometry.Pt(0, 0, 0), geometry.Pt(1, 0, 0), geometry.Pt(1, 1, 0)))
	assert.ErrorIs(t, err, diagnostics.InputInvalid)
}
