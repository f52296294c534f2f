package hotwater

import (
	"ph_calc/diagnostics"
)

// Tank is a hot-water storage tank.
type Tank struct {
	Name               string
	Volume             float64 // L
	StandbyLossRate    float64 // W/K
	StorageTemperature float64 // degree C
	InConditionedSpace bool
}

// Validate checks the tank's declared domains.
func (t *Tank) Validate() error {
	switch {
	case t == nil:
		return diagnostics.Errorf(diagnostics.InputMissing, "tank", "tank is nil")
	case t.Volume < 0:
		return diagnostics.Errorf(diagnostics.InputInvalid, t.Name, "volume must be >= 0, got %g L", t.Volume)
	case t.StandbyLossRate < 0:
		return diagnostics.Errorf(diagnostics.InputInvalid, t.Name, "standby loss rate must be >= 0, got %g W/K", t.StandbyLossRate)
	}
	return nil
}

/*
StandbyLoss returns the annual standby heat loss of the tank.

	Args:
		ambient: temperature around the tank, degree C
	Returns:
		annual heat loss, kWh/yr
*/
func (t *Tank) StandbyLoss(ambient float64) float64 {
	dt := t.StorageTemperature - ambient
	if dt < 0 {
		return 0
	}
	return t.StandbyLossRate * dt * 8760 / 1000
}

// HeaterType is the kind of hot-water heater.
type HeaterType int

const (
	HeaterElectric HeaterType = iota
	HeaterBoilerFossil
	HeaterBoilerWood
	HeaterDistrict
	HeaterHeatPumpAnnual
	HeaterHeatPumpMonthly
	HeaterHeatPumpInsideTank
)

func (t HeaterType) String() string {
	return [...]string{
		"electric", "boiler_fossil", "boiler_wood", "district",
		"heat_pump_annual", "heat_pump_monthly", "heat_pump_inside_tank",
	}[t]
}

func HeaterTypeFromString(str string) (HeaterType, error) {
	for t := HeaterElectric; t <= HeaterHeatPumpInsideTank; t++ {
		if t.String() == str {
			return t, nil
		}
	}
	return 0, diagnostics.Errorf(diagnostics.InputInvalid, str, "invalid hot-water heater type")
}

// Heater is a hot-water heater and the share of demand it covers.
type Heater struct {
	Name       string
	Type       HeaterType
	Coverage   float64 // share of hot-water demand, -
	Efficiency float64 // efficiency or COP, -
}

// Validate checks the heater's declared domains.
func (h Heater) Validate() error {
	switch {
	case h.Coverage < 0 || h.Coverage > 1:
		return diagnostics.Errorf(diagnostics.InputInvalid, h.Name, "coverage must be within [0, 1], got %g", h.Coverage)
	case !(h.Efficiency > 0):
		return diagnostics.Errorf(diagnostics.InputInvalid, h.Name, "efficiency must be > 0, got %g", h.Efficiency)
	}
	return nil
}
