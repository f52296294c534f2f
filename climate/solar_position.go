package climate

import "math"

// HoursPerYear is the length of an hourly series.
const HoursPerYear = 8760

// SunPosition is the sun's position at one hour.
type SunPosition struct {
	Altitude float64 // rad, negative below the horizon
	Azimuth  float64 // rad from south, west positive; NaN at zenith
}

// Up reports whether the sun is above the horizon.
func (p SunPosition) Up() bool { return p.Altitude > 0 }

/*
SunPositions computes the hourly sun position over a non-leap year.

	Args:
		loc: site location
	Returns:
		sun position per hour, [8760]
	Notes:
		Step n is day n/24+1 at hour n%24 standard time. The orbit is
		evaluated for 1989.
*/
func SunPositions(loc Location) []SunPosition {
	phi, lambda := loc.latLon()
	mer := loc.standardMeridian()

	// years since 1968
	const n = 1989 - 1968

	// perihelion passage on the mean orbit, d
	d0 := 3.71 + 0.2596*float64(n) - float64((n+3)/4)

	// anomalistic year, d
	const dAy = 365.2596

	// declination at the northern winter solstice, rad
	const delta0 = -23.4393 * math.Pi / 180.0

	sinPhi, cosPhi := math.Sin(phi), math.Cos(phi)

	out := make([]SunPosition, HoursPerYear)
	for i := range out {
		day := float64(i/24 + 1)
		tm := float64(i % 24)

		// mean anomaly, rad
		m := 2 * math.Pi * (day - d0) / dAy
		// angle between perihelion and winter solstice, rad
		eps := (12.3901 + 0.0172*(float64(n)+m/(2*math.Pi))) * math.Pi / 180.0
		// true anomaly, rad
		v := m + (1.914*math.Sin(m)+0.02*math.Sin(2*m))*math.Pi/180.0
		// equation of time, rad
		et := (m - v) - math.Atan(0.043*math.Sin(2.0*(v+eps))/(1.0-0.043*math.Cos(2.0*(v+eps))))
		// declination, rad
		delta := math.Asin(math.Cos(v+eps) * math.Sin(delta0))
		// hour angle, rad
		omega := (tm-12.0)*15.0*math.Pi/180.0 + (lambda - mer) + et

		h := math.Asin(sinPhi*math.Sin(delta) + cosPhi*math.Cos(delta)*math.Cos(omega))
		p := SunPosition{Altitude: h, Azimuth: math.NaN()}
		if h != math.Pi/2 {
			sinA := math.Cos(delta) * math.Sin(omega) / math.Cos(h)
			cosA := (math.Sin(h)*sinPhi - math.Sin(delta)) / (math.Cos(h) * cosPhi)
			p.Azimuth = math.Atan2(sinA, cosA)
		}
		out[i] = p
	}
	return out
}

// Direction returns the unit vector towards the sun in X east, Y north,
// Z up coordinates.
func (p SunPosition) Direction() (x, y, z float64) {
	az := p.Azimuth
	if math.IsNaN(az) {
		return 0, 0, 1
	}
	c := math.Cos(p.Altitude)
	// azimuth from south, west positive
	return -math.Sin(az) * c, -math.Cos(az) * c, math.Sin(p.Altitude)
}
