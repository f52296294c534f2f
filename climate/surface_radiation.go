package climate

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"ph_calc/geometry"
)

// GroundReflectance is the solar reflectance of the ground, -.
const GroundReflectance = 0.1

/*
SurfaceIrradiance splits the hourly irradiance on a surface facing d into
its components.

	Args:
		suns: hourly sun positions, [8760]
		h: hourly weather
		d: orientation of the surface
	Returns:
		(1) direct component, W/m2, [8760]
		(2) sky diffuse component, W/m2, [8760]
		(3) ground reflected component, W/m2, [8760]
*/
func SurfaceIrradiance(suns []SunPosition, h *Hourly, d geometry.Direction) (direct, sky, ground *mat.VecDense) {
	dni := mat.NewVecDense(len(h.DirectNormal), append([]float64(nil), h.DirectNormal...))
	dhi := mat.NewVecDense(len(h.DiffuseHorizontal), append([]float64(nil), h.DiffuseHorizontal...))

	fSky := skyViewFactor(d.Tilt())
	fGnd := 1.0 - fSky

	direct = mat.NewVecDense(dni.Len(), nil)
	direct.MulElemVec(dni, incidenceCosines(suns, d))

	sky = mat.NewVecDense(dhi.Len(), nil)
	sky.ScaleVec(fSky, dhi)

	ground = mat.NewVecDense(dhi.Len(), nil)
	ground.ScaleVec(fGnd*GroundReflectance, horizontalGlobal(suns, dni, dhi))
	return direct, sky, ground
}

// skyViewFactor of a surface tilted beta from facing up, beta in [0, π].
func skyViewFactor(beta float64) float64 {
	return (1.0 + math.Cos(beta)) / 2.0
}

// horizontalGlobal returns DNI·sin(h) + DHI, W/m2.
func horizontalGlobal(suns []SunPosition, dni, dhi *mat.VecDense) *mat.VecDense {
	sinH := mat.NewVecDense(dni.Len(), nil)
	for i, s := range suns {
		sinH.SetVec(i, math.Sin(math.Max(s.Altitude, 0)))
	}
	var out mat.VecDense
	out.MulElemVec(sinH, dni)
	out.AddVec(&out, dhi)
	return &out
}

/*
incidenceCosines returns cos of the angle between the sun and the surface
normal, clipped at 0 when the sun is behind the surface or below the
horizon.

	Notes:
		walls: cos φ = sin h·cos β + cos h·sin β·cos(A - α)
*/
func incidenceCosines(suns []SunPosition, d geometry.Direction) *mat.VecDense {
	out := mat.NewVecDense(len(suns), nil)
	switch d {
	case geometry.DirectionTop:
		for i, s := range suns {
			out.SetVec(i, math.Max(math.Sin(s.Altitude), 0))
		}
		return out
	case geometry.DirectionBottom:
		return out
	}

	beta := d.Tilt()
	alpha, _ := d.Azimuth()
	for i, s := range suns {
		if !s.Up() {
			continue
		}
		c := math.Sin(s.Altitude) * math.Cos(beta)
		if !math.IsNaN(s.Azimuth) {
			c += math.Cos(s.Altitude) * math.Sin(beta) * math.Cos(s.Azimuth-alpha)
		}
		out.SetVec(i, math.Max(c, 0))
	}
	return out
}
