package hvac

import (
	"github.com/google/uuid"

	"ph_calc/diagnostics"
)

// Ventilator is a heat-recovery ventilation unit.
type Ventilator struct {
	ID                 string
	Name               string
	SensibleEfficiency float64 // heat-recovery efficiency, -
	LatentEfficiency   float64 // moisture-recovery efficiency, -
	ElectricEfficiency float64 // Wh/m3
	FrostProtection    bool
	FrostTempLimit     float64 // degree C
	InConditionedSpace bool
	MaxAirflow         float64 // m3/s
}

// NewVentilator validates and builds a ventilator.
func NewVentilator(name string, sensible, latent, electric float64) (*Ventilator, error) {
	v := &Ventilator{
		ID:                 uuid.NewString(),
		Name:               name,
		SensibleEfficiency: sensible,
		LatentEfficiency:   latent,
		ElectricEfficiency: electric,
		FrostProtection:    true,
		FrostTempLimit:     -5,
		InConditionedSpace: true,
	}
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return v, nil
}

// Validate checks the ventilator's declared domains.
func (v *Ventilator) Validate() error {
	if err := validateFractions(v.Name, v.SensibleEfficiency, v.LatentEfficiency); err != nil {
		return err
	}
	if v.ElectricEfficiency < 0 {
		return diagnostics.Errorf(diagnostics.InputInvalid, v.Name, "electric efficiency must be >= 0, got %g Wh/m3", v.ElectricEfficiency)
	}
	return nil
}

// CoolingType tags the cooling system variants.
type CoolingType int

const (
	CoolingVentilation CoolingType = iota
	CoolingRecirculation
	CoolingDehumidification
	CoolingPanel
)

func (t CoolingType) String() string {
	return [...]string{"ventilation", "recirculation", "dehumidification", "panel"}[t]
}

func CoolingTypeFromString(str string) (CoolingType, error) {
	for t := CoolingVentilation; t <= CoolingPanel; t++ {
		if t.String() == str {
			return t, nil
		}
	}
	return 0, diagnostics.Errorf(diagnostics.InputInvalid, str, "invalid cooling system type")
}

// CoolingBase carries the fields shared by every cooling system.
type CoolingBase struct {
	ID        string
	Name      string
	AnnualCOP float64 // -
}

func (b *CoolingBase) coolingBase() *CoolingBase { return b }

// Cooling is one of the cooling system variants below.
type Cooling interface {
	Type() CoolingType
	coolingBase() *CoolingBase
}

// CoolingBaseOf returns the shared fields of c.
func CoolingBaseOf(c Cooling) *CoolingBase { return c.coolingBase() }

// VentilationCooling cools the supply air of the ventilation system.
type VentilationCooling struct {
	CoolingBase
	MinCoilTemp float64 // degree C
	Capacity    float64 // kW
}

func (*VentilationCooling) Type() CoolingType { return CoolingVentilation }

// RecirculationCooling cools room air in a recirculation unit.
type RecirculationCooling struct {
	CoolingBase
	MinCoilTemp     float64 // degree C
	Capacity        float64 // kW
	Airflow         float64 // m3/s
	VariableAirflow bool
}

func (*RecirculationCooling) Type() CoolingType { return CoolingRecirculation }

// Dehumidification removes moisture without sensible cooling.
type Dehumidification struct {
	CoolingBase
	UsefulHeatLoss bool
}

func (*Dehumidification) Type() CoolingType { return CoolingDehumidification }

// PanelCooling cools through radiant panels.
type PanelCooling struct {
	CoolingBase
}

func (*PanelCooling) Type() CoolingType { return CoolingPanel }

var coolingCtors = [...]func() Cooling{
	CoolingVentilation:      func() Cooling { return &VentilationCooling{MinCoilTemp: 12, Capacity: 10} },
	CoolingRecirculation:    func() Cooling { return &RecirculationCooling{MinCoilTemp: 12, Capacity: 10, VariableAirflow: true} },
	CoolingDehumidification: func() Cooling { return &Dehumidification{} },
	CoolingPanel:            func() Cooling { return &PanelCooling{} },
}

// NewCooling builds the cooling variant for tag t with its default fields.
func NewCooling(t CoolingType, name string, cop float64) (Cooling, error) {
	if t < 0 || int(t) >= len(coolingCtors) {
		return nil, diagnostics.Errorf(diagnostics.InputInvalid, name, "invalid cooling system type %d", t)
	}
	if err := validatePositive(name, "COP", cop); err != nil {
		return nil, err
	}
	c := coolingCtors[t]()
	b := c.coolingBase()
	b.ID = uuid.NewString()
	b.Name = name
	b.AnnualCOP = cop
	return c, nil
}

// DeviceType is the kind of supportive electric device.
type DeviceType int

const (
	DeviceOther DeviceType = iota
	DeviceHeatingPump
	DeviceDHWPump
	DeviceCirculationPump
	DeviceBoilerPeriphery
	DeviceVentilationFan
)

func (t DeviceType) String() string {
	return [...]string{"other", "heating_pump", "dhw_pump", "circulation_pump", "boiler_periphery", "ventilation_fan"}[t]
}

func DeviceTypeFromString(str string) (DeviceType, error) {
	for t := DeviceOther; t <= DeviceVentilationFan; t++ {
		if t.String() == str {
			return t, nil
		}
	}
	return 0, diagnostics.Errorf(diagnostics.InputInvalid, str, "invalid supportive device type")
}

// SupportiveDevice is an auxiliary electric device such as a pump.
type SupportiveDevice struct {
	Name               string
	Type               DeviceType
	Quantity           int
	InConditionedSpace bool
	Power              float64 // W
	AnnualRuntime      float64 // h/yr
}

// AnnualEnergy returns power · runtime · quantity, kWh/yr.
func (d SupportiveDevice) AnnualEnergy() float64 {
	return d.Power * d.AnnualRuntime * float64(d.Quantity) / 1000
}

// Validate checks the device's declared domains.
func (d SupportiveDevice) Validate() error {
	switch {
	case d.Quantity < 0:
		return diagnostics.Errorf(diagnostics.InputInvalid, d.Name, "quantity must be >= 0, got %d", d.Quantity)
	case d.Power < 0:
		return diagnostics.Errorf(diagnostics.InputInvalid, d.Name, "power must be >= 0, got %g W", d.Power)
	case d.AnnualRuntime < 0 || d.AnnualRuntime > 8760:
		return diagnostics.Errorf(diagnostics.InputInvalid, d.Name, "annual runtime must be within [0, 8760] h, got %g", d.AnnualRuntime)
	}
	return nil
}

// PVSystem is an on-site photovoltaic array.
type PVSystem struct {
	Name              string
	AnnualYield       float64 // kWh/yr
	UtilizationFactor float64 // share used on site, -
}

// UsableYield returns the on-site share of the annual yield, kWh/yr.
func (p PVSystem) UsableYield() float64 {
	return p.AnnualYield * p.UtilizationFactor
}

// ExhaustType is the kind of exhaust-only ventilator.
type ExhaustType int

const (
	ExhaustKitchenHood ExhaustType = iota
	ExhaustDryer
	ExhaustUserDefined
)

func (t ExhaustType) String() string {
	return [...]string{"kitchen_hood", "dryer", "user_defined"}[t]
}

func ExhaustTypeFromString(str string) (ExhaustType, error) {
	for t := ExhaustKitchenHood; t <= ExhaustUserDefined; t++ {
		if t.String() == str {
			return t, nil
		}
	}
	return 0, diagnostics.Errorf(diagnostics.InputInvalid, str, "invalid exhaust ventilator type")
}

// ExhaustVentilator is an exhaust-only fan outside the balanced system.
type ExhaustVentilator struct {
	Name          string
	Type          ExhaustType
	Airflow       float64 // m3/s
	AnnualRuntime float64 // min/yr
}

// AnnualVolume returns the exhausted air volume, m3/yr.
func (e ExhaustVentilator) AnnualVolume() float64 {
	return e.Airflow * e.AnnualRuntime * 60
}
