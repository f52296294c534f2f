// Package certification carries the Phius and PHI certification settings of
// a building segment.
package certification

import (
	"ph_calc/diagnostics"
	"ph_calc/units"
)

// PhiusProgram is the Phius certification program.
type PhiusProgram int

const (
	Phius2021Core PhiusProgram = iota
	Phius2021Zero
	Phius2018Core
	Phius2018Zero
)

func (p PhiusProgram) String() string {
	return [...]string{"PHIUS 2021 CORE", "PHIUS 2021 ZERO", "PHIUS+ 2018 CORE", "PHIUS+ 2018 ZERO"}[p]
}

func PhiusProgramFromString(str string) (PhiusProgram, error) {
	for p := Phius2021Core; p <= Phius2018Zero; p++ {
		if p.String() == str {
			return p, nil
		}
	}
	return 0, diagnostics.Errorf(diagnostics.InputInvalid, str, "invalid Phius program")
}

// BuildingCategory is residential or non-residential.
type BuildingCategory int

const (
	CategoryResidential BuildingCategory = iota
	CategoryNonResidential
)

func (c BuildingCategory) String() string {
	return [...]string{"residential", "non_residential"}[c]
}

func BuildingCategoryFromString(str string) (BuildingCategory, error) {
	switch str {
	case "residential", "":
		return CategoryResidential, nil
	case "non_residential":
		return CategoryNonResidential, nil
	default:
		return 0, diagnostics.Errorf(diagnostics.InputInvalid, str, "invalid building category")
	}
}

// BuildingStatus is the project stage.
type BuildingStatus int

const (
	StatusInPlanning BuildingStatus = iota
	StatusUnderConstruction
	StatusComplete
)

func (s BuildingStatus) String() string {
	return [...]string{"in_planning", "under_construction", "complete"}[s]
}

func BuildingStatusFromString(str string) (BuildingStatus, error) {
	for s := StatusInPlanning; s <= StatusComplete; s++ {
		if s.String() == str {
			return s, nil
		}
	}
	if str == "" {
		return StatusInPlanning, nil
	}
	return 0, diagnostics.Errorf(diagnostics.InputInvalid, str, "invalid building status")
}

// PhiusThresholds are the project-specific targets from the Phius climate
// calculator, SI.
type PhiusThresholds struct {
	HeatingDemand float64 // kWh/m2·yr
	CoolingDemand float64 // kWh/m2·yr
	PeakHeatLoad  float64 // W/m2
	PeakCoolLoad  float64 // W/m2
}

// ThresholdsFromIP converts calculator output in kBtu/ft2·yr and Btu/hr·ft2.
func ThresholdsFromIP(heatDemand, coolDemand, heatLoad, coolLoad float64) PhiusThresholds {
	return PhiusThresholds{
		HeatingDemand: heatDemand * units.KBtuFt2ToKWhM2,
		CoolingDemand: coolDemand * units.KBtuFt2ToKWhM2,
		PeakHeatLoad:  heatLoad * units.BtuHrFt2ToWM2,
		PeakCoolLoad:  coolLoad * units.BtuHrFt2ToWM2,
	}
}

// DefaultPhiusThresholds are the placeholder targets used until the climate
// calculator has been run.
func DefaultPhiusThresholds() PhiusThresholds {
	return ThresholdsFromIP(15, 15, 10, 10)
}

// PhiusCertification is the Phius certification record.
type PhiusCertification struct {
	Program    PhiusProgram
	Category   BuildingCategory
	Status     BuildingStatus
	Thresholds PhiusThresholds

	// net source energy limit, kWh/person·yr; 0 means not set
	SourceEnergyPerPerson float64
}

// NewPhiusCertification returns a 2021 CORE residential record with the
// default thresholds.
func NewPhiusCertification() *PhiusCertification {
	return &PhiusCertification{Program: Phius2021Core, Thresholds: DefaultPhiusThresholds()}
}

// Validate checks the threshold domains.
func (c *PhiusCertification) Validate() error {
	t := c.Thresholds
	for _, v := range []float64{t.HeatingDemand, t.CoolingDemand, t.PeakHeatLoad, t.PeakCoolLoad, c.SourceEnergyPerPerson} {
		if v < 0 {
			return diagnostics.Errorf(diagnostics.InputInvalid, c.Program.String(), "thresholds must be >= 0, got %g", v)
		}
	}
	return nil
}

// Performance is a project's modelled performance, SI.
type Performance struct {
	HeatingDemand float64 // kWh/m2·yr
	CoolingDemand float64 // kWh/m2·yr
	PeakHeatLoad  float64 // W/m2
	PeakCoolLoad  float64 // W/m2
	SourceEnergy  float64 // kWh/yr
	Occupants     float64 // design occupancy, -
}

// Failures lists the criteria a performance misses.
func (c *PhiusCertification) Failures(p Performance) []string {
	var out []string
	t := c.Thresholds
	if p.HeatingDemand > t.HeatingDemand {
		out = append(out, "heating demand")
	}
	if p.CoolingDemand > t.CoolingDemand {
		out = append(out, "cooling demand")
	}
	if p.PeakHeatLoad > t.PeakHeatLoad {
		out = append(out, "peak heating load")
	}
	if p.PeakCoolLoad > t.PeakCoolLoad {
		out = append(out, "peak cooling load")
	}
	if c.SourceEnergyPerPerson > 0 && p.Occupants > 0 && p.SourceEnergy/p.Occupants > c.SourceEnergyPerPerson {
		out = append(out, "source energy")
	}
	if (c.Program == Phius2021Zero || c.Program == Phius2018Zero) && p.SourceEnergy > 0 {
		out = append(out, "net-zero source energy")
	}
	return out
}
