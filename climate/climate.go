// Package climate holds the monthly climate record, peak-load cases and site
// location of a building segment.
package climate

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"ph_calc/diagnostics"
)

// DaysInMonth of a non-leap year.
var DaysInMonth = [12]float64{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// Monthly is a January..December series.
type Monthly [12]float64

// NewMonthly checks that vs has exactly 12 values.
func NewMonthly(name string, vs []float64) (Monthly, error) {
	var m Monthly
	if len(vs) != 12 {
		return m, diagnostics.Errorf(diagnostics.InputInvalid, name, "monthly series needs 12 values, got %d", len(vs))
	}
	copy(m[:], vs)
	return m, nil
}

// Slice returns the values as a slice.
func (m Monthly) Slice() []float64 {
	return append([]float64(nil), m[:]...)
}

// AnnualMean returns the day-weighted annual mean.
func (m Monthly) AnnualMean() float64 {
	return stat.Mean(m[:], DaysInMonth[:])
}

// AnnualSum returns the sum over the year.
func (m Monthly) AnnualSum() float64 {
	return floats.Sum(m[:])
}

// Radiation is a set of monthly radiation series, kWh/m2 per month.
type Radiation struct {
	North  Monthly
	East   Monthly
	South  Monthly
	West   Monthly
	Global Monthly
}

// PeakLoad is one design-day load case.
type PeakLoad struct {
	AirTemp    float64 // degree C
	DewPoint   float64 // degree C
	SkyTemp    float64 // degree C
	GroundTemp float64 // degree C
	RadNorth   float64 // W/m2
	RadEast    float64 // W/m2
	RadSouth   float64 // W/m2
	RadWest    float64 // W/m2
	RadGlobal  float64 // W/m2
}

// PeakLoads are the four design cases.
type PeakLoads struct {
	Heat1 PeakLoad
	Heat2 PeakLoad
	Cool1 PeakLoad
	Cool2 PeakLoad
}

// Climate is the monthly climate record of a site.
type Climate struct {
	Name             string
	StationElevation float64 // m
	AirTemp          Monthly // degree C
	DewPoint         Monthly // degree C
	SkyTemp          Monthly // degree C
	GroundTemp       Monthly // degree C
	Radiation        Radiation
	PeakLoads        PeakLoads
}

// Validate checks that the record is physically plausible.
func (c *Climate) Validate() error {
	for i := range c.AirTemp {
		if c.DewPoint[i] > c.AirTemp[i]+1e-9 {
			return diagnostics.Errorf(diagnostics.InputInvalid, c.Name,
				"month %d dew point %.2f exceeds air temperature %.2f", i+1, c.DewPoint[i], c.AirTemp[i])
		}
	}
	for _, m := range []Monthly{c.Radiation.North, c.Radiation.East, c.Radiation.South, c.Radiation.West, c.Radiation.Global} {
		if floats.Min(m[:]) < 0 {
			return diagnostics.Errorf(diagnostics.InputInvalid, c.Name, "radiation must be >= 0")
		}
	}
	return nil
}

/*
HeatingDegreeHours returns the heating degree-hours of the monthly record.

	Args:
		base: indoor base temperature, degree C
	Returns:
		Σ max(0, base - θ_m)·24·days_m, Kh
*/
func (c *Climate) HeatingDegreeHours(base float64) float64 {
	var g float64
	for i, t := range c.AirTemp {
		if t < base {
			g += (base - t) * 24 * DaysInMonth[i]
		}
	}
	return g
}

// CoolingDegreeHours mirrors HeatingDegreeHours above base, Kh.
func (c *Climate) CoolingDegreeHours(base float64) float64 {
	var g float64
	for i, t := range c.AirTemp {
		if t > base {
			g += (t - base) * 24 * DaysInMonth[i]
		}
	}
	return g
}
