package hvac

import (
	"github.com/google/uuid"

	"ph_calc/diagnostics"
)

// HeatingType tags the heating device variants.
type HeatingType int

const (
	HeatingElectric HeatingType = iota
	HeatingBoilerFossil
	HeatingBoilerWood
	HeatingDistrict
	HeatingHeatPumpAnnual
	HeatingHeatPumpMonthly
	HeatingHeatPumpCombined
)

func (t HeatingType) String() string {
	return [...]string{
		"electric", "boiler_fossil", "boiler_wood", "district",
		"heat_pump_annual", "heat_pump_monthly", "heat_pump_combined",
	}[t]
}

func HeatingTypeFromString(str string) (HeatingType, error) {
	for t := HeatingElectric; t <= HeatingHeatPumpCombined; t++ {
		if t.String() == str {
			return t, nil
		}
	}
	return 0, diagnostics.Errorf(diagnostics.InputInvalid, str, "invalid heating device type")
}

// HeatingBase carries the fields shared by every heating device.
type HeatingBase struct {
	ID       string
	Name     string
	Coverage float64 // share of the heating demand, -
}

func (b *HeatingBase) base() *HeatingBase { return b }

// Heating is one of the heating device variants below.
type Heating interface {
	Type() HeatingType
	Validate() error
	base() *HeatingBase
}

// Base returns the shared fields of h.
func Base(h Heating) *HeatingBase { return h.base() }

// ElectricHeater is direct electric resistance heating.
type ElectricHeater struct {
	HeatingBase
}

func (*ElectricHeater) Type() HeatingType { return HeatingElectric }
func (h *ElectricHeater) Validate() error { return h.validateBase() }

// FossilBoiler burns gas or oil.
type FossilBoiler struct {
	HeatingBase
	Fuel               string
	Condensing         bool
	EfficiencyFullLoad float64 // at 100 % load, -
	EfficiencyPartLoad float64 // at 30 % load, -
	AverageReturnTemp  float64 // degree C
	InConditionedSpace bool
}

func (*FossilBoiler) Type() HeatingType { return HeatingBoilerFossil }
func (h *FossilBoiler) Validate() error {
	if err := h.validateBase(); err != nil {
		return err
	}
	return validateFractions(h.Name, h.EfficiencyFullLoad, h.EfficiencyPartLoad)
}

// WoodBoiler burns logs or pellets.
type WoodBoiler struct {
	HeatingBase
	Fuel                    string
	EfficiencyHeatGenerator float64 // -
	SolidFuelFraction       float64 // share heated by the solid fuel, -
	InConditionedSpace      bool
}

func (*WoodBoiler) Type() HeatingType { return HeatingBoilerWood }
func (h *WoodBoiler) Validate() error {
	if err := h.validateBase(); err != nil {
		return err
	}
	return validateFractions(h.Name, h.EfficiencyHeatGenerator, h.SolidFuelFraction)
}

// DistrictHeat is heat delivered by a district network.
type DistrictHeat struct {
	HeatingBase
	EnergyCarrier       string
	SolarFraction       float64 // -
	TransferUtilization float64 // utilization factor of the heat transfer station, -
}

func (*DistrictHeat) Type() HeatingType { return HeatingDistrict }
func (h *DistrictHeat) Validate() error {
	if err := h.validateBase(); err != nil {
		return err
	}
	return validateFractions(h.Name, h.SolarFraction, h.TransferUtilization)
}

// HeatPumpAnnual is a heat pump described by one annual COP.
type HeatPumpAnnual struct {
	HeatingBase
	AnnualCOP float64 // -
}

func (*HeatPumpAnnual) Type() HeatingType { return HeatingHeatPumpAnnual }
func (h *HeatPumpAnnual) Validate() error {
	if err := h.validateBase(); err != nil {
		return err
	}
	return validatePositive(h.Name, "annual COP", h.AnnualCOP)
}

// HeatPumpMonthly is a heat pump described by two COP / ambient
// temperature points.
type HeatPumpMonthly struct {
	HeatingBase
	COP1         float64 // -
	AmbientTemp1 float64 // degree C
	COP2         float64 // -
	AmbientTemp2 float64 // degree C
}

func (*HeatPumpMonthly) Type() HeatingType { return HeatingHeatPumpMonthly }
func (h *HeatPumpMonthly) Validate() error {
	if err := h.validateBase(); err != nil {
		return err
	}
	if err := validatePositive(h.Name, "COP1", h.COP1); err != nil {
		return err
	}
	return validatePositive(h.Name, "COP2", h.COP2)
}

// COPAt interpolates linearly between the two rating points.
func (h *HeatPumpMonthly) COPAt(ambient float64) float64 {
	if h.AmbientTemp1 == h.AmbientTemp2 {
		return (h.COP1 + h.COP2) / 2
	}
	k := (ambient - h.AmbientTemp1) / (h.AmbientTemp2 - h.AmbientTemp1)
	return h.COP1 + k*(h.COP2-h.COP1)
}

// HeatPumpCombined is a heat pump serving both space heating and hot water.
type HeatPumpCombined struct {
	HeatingBase
	AnnualCOPHeating  float64 // -
	AnnualCOPHotWater float64 // -
}

func (*HeatPumpCombined) Type() HeatingType { return HeatingHeatPumpCombined }
func (h *HeatPumpCombined) Validate() error {
	if err := h.validateBase(); err != nil {
		return err
	}
	if err := validatePositive(h.Name, "heating COP", h.AnnualCOPHeating); err != nil {
		return err
	}
	return validatePositive(h.Name, "hot-water COP", h.AnnualCOPHotWater)
}

// heatingCtors maps every tag to its variant.
var heatingCtors = [...]func() Heating{
	HeatingElectric:         func() Heating { return &ElectricHeater{} },
	HeatingBoilerFossil:     func() Heating { return &FossilBoiler{Fuel: "NATURAL_GAS", EfficiencyFullLoad: 0.9, EfficiencyPartLoad: 0.9} },
	HeatingBoilerWood:       func() Heating { return &WoodBoiler{Fuel: "WOOD_LOG", EfficiencyHeatGenerator: 0.6, SolidFuelFraction: 1} },
	HeatingDistrict:         func() Heating { return &DistrictHeat{EnergyCarrier: "DISTRICT_HEAT_GAS", TransferUtilization: 1} },
	HeatingHeatPumpAnnual:   func() Heating { return &HeatPumpAnnual{AnnualCOP: 2.5} },
	HeatingHeatPumpMonthly:  func() Heating { return &HeatPumpMonthly{COP1: 2.5, AmbientTemp1: -8.3, COP2: 2.5, AmbientTemp2: 8.3} },
	HeatingHeatPumpCombined: func() Heating { return &HeatPumpCombined{AnnualCOPHeating: 2.5, AnnualCOPHotWater: 2.5} },
}

// NewHeating builds the heating variant for tag t with its default fields.
func NewHeating(t HeatingType, name string, coverage float64) (Heating, error) {
	if t < 0 || int(t) >= len(heatingCtors) {
		return nil, diagnostics.Errorf(diagnostics.InputInvalid, name, "invalid heating device type %d", t)
	}
	h := heatingCtors[t]()
	b := h.base()
	b.ID = uuid.NewString()
	b.Name = name
	b.Coverage = coverage
	if err := h.Validate(); err != nil {
		return nil, err
	}
	return h, nil
}

func (b *HeatingBase) validateBase() error {
	if b.Coverage < 0 || b.Coverage > 1 {
		return diagnostics.Errorf(diagnostics.InputInvalid, b.Name, "coverage must be within [0, 1], got %g", b.Coverage)
	}
	return nil
}

func validateFractions(subject string, vs ...float64) error {
	for _, v := range vs {
		if v < 0 || v > 1 {
			return diagnostics.Errorf(diagnostics.InputInvalid, subject, "fraction must be within [0, 1], got %g", v)
		}
	}
	return nil
}

func validatePositive(subject, what string, v float64) error {
	if !(v > 0) {
		return diagnostics.Errorf(diagnostics.InputInvalid, subject, "%s must be > 0, got %g", what, v)
	}
	return nil
}
