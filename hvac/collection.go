package hvac

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"ph_calc/diagnostics"
)

// Collection is the mechanical equipment of a building segment.
type Collection struct {
	Ventilators []*Ventilator
	Heating     []Heating
	Cooling     []Cooling
	Supportive  []SupportiveDevice
	Renewables  []PVSystem
	Exhaust     []ExhaustVentilator
}

// Validate checks every device and warns when heating coverage does not
// sum to 1.
func (c *Collection) Validate(report *diagnostics.Report) error {
	for _, v := range c.Ventilators {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	for _, h := range c.Heating {
		if err := h.Validate(); err != nil {
			return err
		}
	}
	for _, d := range c.Supportive {
		if err := d.Validate(); err != nil {
			return err
		}
	}
	if len(c.Heating) > 0 {
		if cov := c.HeatingCoverage(); math.Abs(cov-1) > 0.005 {
			report.Warn(diagnostics.HVACCoverageMismatch, "heating", "heating coverage sums to %.4f, expected 1.0", cov)
		}
	}
	return nil
}

// HeatingCoverage returns Σ coverage over the heating devices, -.
func (c *Collection) HeatingCoverage() float64 {
	cs := make([]float64, len(c.Heating))
	for i, h := range c.Heating {
		cs[i] = Base(h).Coverage
	}
	return floats.Sum(cs)
}

// SupportiveEnergy returns the annual energy of all supportive devices,
// kWh/yr.
func (c *Collection) SupportiveEnergy() float64 {
	es := make([]float64, len(c.Supportive))
	for i, d := range c.Supportive {
		es[i] = d.AnnualEnergy()
	}
	return floats.Sum(es)
}

// RenewableYield returns the usable on-site PV yield, kWh/yr.
func (c *Collection) RenewableYield() float64 {
	ys := make([]float64, len(c.Renewables))
	for i, p := range c.Renewables {
		ys[i] = p.UsableYield()
	}
	return floats.Sum(ys)
}
