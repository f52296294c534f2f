package climate

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"ph_calc/diagnostics"
	"ph_calc/geometry"
)

// hourlySeries are the hourly values FromHourly reduces to monthly and
// peak records.
type hourlySeries struct {
	air, dew, sky               []float64 // degree C
	north, east, south, west, g []float64 // W/m2
}

/*
FromHourly derives the monthly climate record of a site from an hourly
weather year.

	Args:
		name: climate name
		loc: site location, used for the sun path
		h: hourly weather with absolute humidity
	Returns:
		monthly climate record with peak loads
	Notes:
		ground temperature is the annual mean air temperature for every
		month. Radiation is the hourly irradiance summed per month.
		Heat1/Cool1 are the coldest/hottest hours, Heat2/Cool2 the
		daily means of the coldest/hottest days.
*/
func FromHourly(name string, loc Location, h *Hourly) (*Climate, error) {
	if h.AbsoluteHumidity == nil {
		return nil, diagnostics.Errorf(diagnostics.InputMissing, name, "weather file has no absolute_humidity column")
	}
	if err := loc.Validate(); err != nil {
		return nil, err
	}

	suns := SunPositions(loc)
	s := hourlySeries{
		air: h.Temperature,
		dew: make([]float64, HoursPerYear),
		sky: make([]float64, HoursPerYear),
	}
	for i, t := range h.Temperature {
		d := t
		if x := h.AbsoluteHumidity[i]; x > 0 {
			d = min(DewPoint(x), t)
		}
		s.dew[i] = d
		s.sky[i] = SkyTemperature(t, d)
	}
	s.north = totalIrradiance(suns, h, geometry.DirectionN)
	s.east = totalIrradiance(suns, h, geometry.DirectionE)
	s.south = totalIrradiance(suns, h, geometry.DirectionS)
	s.west = totalIrradiance(suns, h, geometry.DirectionW)
	s.g = totalIrradiance(suns, h, geometry.DirectionTop)

	c := &Climate{
		Name:             name,
		StationElevation: loc.Elevation,
		AirTemp:          monthlyMean(s.air),
		DewPoint:         monthlyMean(s.dew),
		SkyTemp:          monthlyMean(s.sky),
		Radiation: Radiation{
			North:  monthlySumKWh(s.north),
			East:   monthlySumKWh(s.east),
			South:  monthlySumKWh(s.south),
			West:   monthlySumKWh(s.west),
			Global: monthlySumKWh(s.g),
		},
	}
	for i := range c.GroundTemp {
		c.GroundTemp[i] = stat.Mean(s.air, nil)
	}
	ground := c.GroundTemp[0]

	cold := floats.MinIdx(s.air)
	hot := floats.MaxIdx(s.air)
	c.PeakLoads = PeakLoads{
		Heat1: s.hour(cold, ground),
		Heat2: s.day(extremeDay(s.air, false), ground),
		Cool1: s.hour(hot, ground),
		Cool2: s.day(extremeDay(s.air, true), ground),
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func totalIrradiance(suns []SunPosition, h *Hourly, d geometry.Direction) []float64 {
	direct, sky, ground := SurfaceIrradiance(suns, h, d)
	var total mat.VecDense
	total.AddVec(direct, sky)
	total.AddVec(&total, ground)
	return total.RawVector().Data
}

func (s hourlySeries) hour(i int, ground float64) PeakLoad {
	return PeakLoad{
		AirTemp:    s.air[i],
		DewPoint:   s.dew[i],
		SkyTemp:    s.sky[i],
		GroundTemp: ground,
		RadNorth:   s.north[i],
		RadEast:    s.east[i],
		RadSouth:   s.south[i],
		RadWest:    s.west[i],
		RadGlobal:  s.g[i],
	}
}

// day averages the 24 hours of day d.
func (s hourlySeries) day(d int, ground float64) PeakLoad {
	lo, hi := d*24, d*24+24
	return PeakLoad{
		AirTemp:    stat.Mean(s.air[lo:hi], nil),
		DewPoint:   stat.Mean(s.dew[lo:hi], nil),
		SkyTemp:    stat.Mean(s.sky[lo:hi], nil),
		GroundTemp: ground,
		RadNorth:   stat.Mean(s.north[lo:hi], nil),
		RadEast:    stat.Mean(s.east[lo:hi], nil),
		RadSouth:   stat.Mean(s.south[lo:hi], nil),
		RadWest:    stat.Mean(s.west[lo:hi], nil),
		RadGlobal:  stat.Mean(s.g[lo:hi], nil),
	}
}

// extremeDay returns the day with the highest (hot) or lowest daily mean.
func extremeDay(air []float64, hot bool) int {
	means := make([]float64, len(air)/24)
	for d := range means {
		means[d] = stat.Mean(air[d*24:d*24+24], nil)
	}
	if hot {
		return floats.MaxIdx(means)
	}
	return floats.MinIdx(means)
}

func monthlyMean(vs []float64) Monthly {
	var sum, count Monthly
	for i, v := range vs {
		m := MonthOfHour(i) - 1
		sum[m] += v
		count[m]++
	}
	var out Monthly
	for i := range out {
		out[i] = sum[i] / count[i]
	}
	return out
}

// monthlySumKWh integrates hourly W/m2 to kWh/m2 per month.
func monthlySumKWh(vs []float64) Monthly {
	var out Monthly
	for i, v := range vs {
		out[MonthOfHour(i)-1] += v / 1000.0
	}
	return out
}
