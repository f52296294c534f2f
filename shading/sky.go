// Package shading computes winter and summer shading factors of apertures
// by ray casting against a shade context over a discretized sky.
package shading

import (
	"math"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"ph_calc/climate"
	"ph_calc/diagnostics"
)

// SkyKind is the sky subdivision.
type SkyKind int

const (
	Tregenza SkyKind = iota // 145 patches
	Reinhart                // 577 sky patches plus one ground patch
)

func (k SkyKind) String() string {
	return [...]string{"tregenza", "reinhart"}[k]
}

func SkyKindFromString(str string) (SkyKind, error) {
	switch str {
	case "tregenza", "":
		return Tregenza, nil
	case "reinhart":
		return Reinhart, nil
	default:
		return 0, diagnostics.Errorf(diagnostics.InputInvalid, str, "invalid sky kind")
	}
}

// Patch is one sky patch.
type Patch struct {
	Direction  r3.Vec  // unit vector from the ground towards the patch centre
	SolidAngle float64 // sr
	Irradiance float64 // kWh/m2 normal to Direction
	Ground     bool    // ground patches never carry radiation
}

// SkyMatrix is a sky subdivided into patches with their irradiance.
type SkyMatrix struct {
	Kind    SkyKind
	Patches []Patch
}

// Len returns the patch count including any ground patch.
func (s *SkyMatrix) Len() int {
	return len(s.Patches)
}

// Values returns the irradiance vector in patch order, ground patches 0.
func (s *SkyMatrix) Values() []float64 {
	out := make([]float64, len(s.Patches))
	for i, p := range s.Patches {
		if !p.Ground {
			out[i] = p.Irradiance
		}
	}
	return out
}

// Total returns the summed sky irradiance, kWh/m2.
func (s *SkyMatrix) Total() float64 {
	var t float64
	for _, v := range s.Values() {
		t += v
	}
	return t
}

// band counts per 12 degree Tregenza row from the horizon up, without the
// zenith cap.
var tregenzaBands = []int{30, 30, 24, 24, 18, 12, 6}

func patchDirection(alt, az float64) r3.Vec {
	// azimuth from north, clockwise towards east
	return r3.Vec{
		X: math.Sin(az) * math.Cos(alt),
		Y: math.Cos(az) * math.Cos(alt),
		Z: math.Sin(alt),
	}
}

/*
skyPatches lays out the empty patches of a sky.

	Args:
		kind: subdivision
	Returns:
		patches, Reinhart with the ground patch first
	Notes:
		Reinhart splits each Tregenza row in two and doubles its count;
		the zenith cap is kept whole.
*/
func skyPatches(kind SkyKind) []Patch {
	div := 1
	var out []Patch
	if kind == Reinhart {
		div = 2
		out = append(out, Patch{Direction: r3.Vec{Z: -1}, SolidAngle: 2 * math.Pi, Ground: true})
	}
	rowHeight := 12.0 / float64(div) * math.Pi / 180
	var alt float64
	for _, n := range tregenzaBands {
		for r := 0; r < div; r++ {
			count := n * div
			lo, hi := alt, alt+rowHeight
			omega := 2 * math.Pi * (math.Sin(hi) - math.Sin(lo)) / float64(count)
			centre := (lo + hi) / 2
			for j := 0; j < count; j++ {
				az := 2 * math.Pi * float64(j) / float64(count)
				out = append(out, Patch{Direction: patchDirection(centre, az), SolidAngle: omega})
			}
			alt = hi
		}
	}
	out = append(out, Patch{Direction: r3.Vec{Z: 1}, SolidAngle: 2 * math.Pi * (1 - math.Sin(alt))})
	return out
}

// UniformSkyMatrix gives every sky patch the same irradiance, kWh/m2.
func UniformSkyMatrix(kind SkyKind, value float64) *SkyMatrix {
	ps := skyPatches(kind)
	for i := range ps {
		if !ps[i].Ground {
			ps[i].Irradiance = value
		}
	}
	return &SkyMatrix{Kind: kind, Patches: ps}
}

// IsotropicSkyMatrix spreads a diffuse horizontal irradiation, kWh/m2, over
// the sky with uniform radiance.
func IsotropicSkyMatrix(kind SkyKind, diffuseHorizontal float64) *SkyMatrix {
	ps := skyPatches(kind)
	for i := range ps {
		if !ps[i].Ground {
			ps[i].Irradiance = diffuseHorizontal / math.Pi * ps[i].SolidAngle
		}
	}
	return &SkyMatrix{Kind: kind, Patches: ps}
}

/*
SkyMatrixFromHourly accumulates an hourly weather year into a sky matrix.

	Args:
		kind: subdivision
		loc: site location
		weather: hourly direct normal and diffuse horizontal irradiance, W/m2
		months: the months of the season
	Returns:
		sky matrix, kWh/m2 per patch
	Notes:
		direct normal radiation goes to the patch nearest the sun; diffuse
		radiation is spread with uniform radiance.
*/
func SkyMatrixFromHourly(kind SkyKind, loc climate.Location, weather *climate.Hourly, months []time.Month) (*SkyMatrix, error) {
	if err := loc.Validate(); err != nil {
		return nil, err
	}
	if weather == nil || len(weather.DirectNormal) != climate.HoursPerYear || len(weather.DiffuseHorizontal) != climate.HoursPerYear {
		return nil, diagnostics.Errorf(diagnostics.InputInvalid, "hourly weather", "weather must cover %d hours", climate.HoursPerYear)
	}
	if len(months) == 0 {
		return nil, diagnostics.Errorf(diagnostics.InputMissing, kind.String(), "season has no months")
	}
	season := make(map[time.Month]bool, len(months))
	for _, m := range months {
		season[m] = true
	}

	ps := skyPatches(kind)
	suns := climate.SunPositions(loc)
	var diffuse float64
	for i, sun := range suns {
		if !season[climate.MonthOfHour(i)] {
			continue
		}
		diffuse += weather.DiffuseHorizontal[i] / 1000
		if !sun.Up() || weather.DirectNormal[i] <= 0 {
			continue
		}
		x, y, z := sun.Direction()
		ps[nearestPatch(ps, r3.Vec{X: x, Y: y, Z: z})].Irradiance += weather.DirectNormal[i] / 1000
	}
	for i := range ps {
		if !ps[i].Ground {
			ps[i].Irradiance += diffuse / math.Pi * ps[i].SolidAngle
		}
	}
	return &SkyMatrix{Kind: kind, Patches: ps}, nil
}

func nearestPatch(ps []Patch, dir r3.Vec) int {
	best, bestDot := -1, math.Inf(-1)
	for i, p := range ps {
		if p.Ground {
			continue
		}
		if d := r3.Dot(p.Direction, dir); d > bestDot {
			best, bestDot = i, d
		}
	}
	return best
}
