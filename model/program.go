package model

import (
	"github.com/google/uuid"

	"ph_calc/diagnostics"
	"ph_calc/units"
)

// ProgramType is the energy program of a room or space.
type ProgramType struct {
	ID   string
	Name string

	LightingDensity  float64 // W/m2
	MELDensity       float64 // kWh/m2·yr
	OccupancyDensity float64 // people/m2
	OperatingDays    float64 // days/yr
	OperatingHours   float64 // hours/day
}

/*
NewProgramFromIP builds a program from the Phius non-residential units.

	Args:
		name: program name
		lpd: lighting power density, W/ft2
		melDensity: miscellaneous electric load, kWh/yr·ft2
		days: operating days, days/yr
		hours: operating hours, hours/day
*/
func NewProgramFromIP(name string, lpd, melDensity, days, hours float64) (*ProgramType, error) {
	p := &ProgramType{
		ID:              uuid.NewString(),
		Name:            name,
		LightingDensity: lpd * units.M2ToFt2,
		MELDensity:      melDensity * units.M2ToFt2,
		OperatingDays:   days,
		OperatingHours:  hours,
	}
	return p, p.Validate()
}

func (p *ProgramType) Validate() error {
	if p.LightingDensity < 0 || p.MELDensity < 0 || p.OccupancyDensity < 0 {
		return diagnostics.Errorf(diagnostics.InputInvalid, p.Name, "densities must be >= 0")
	}
	if p.OperatingDays < 0 || p.OperatingDays > 366 {
		return diagnostics.Errorf(diagnostics.InputInvalid, p.Name, "operating days must be in [0, 366], got %g", p.OperatingDays)
	}
	if p.OperatingHours < 0 || p.OperatingHours > 24 {
		return diagnostics.Errorf(diagnostics.InputInvalid, p.Name, "operating hours must be in [0, 24], got %g", p.OperatingHours)
	}
	return nil
}

// LPDIP returns the lighting power density in W/ft2.
func (p *ProgramType) LPDIP() float64 {
	return p.LightingDensity / units.M2ToFt2
}

// MELDensityIP returns the MEL density in kWh/yr·ft2.
func (p *ProgramType) MELDensityIP() float64 {
	return p.MELDensity / units.M2ToFt2
}

// ProcessLoadType is the category of a process load.
type ProcessLoadType int

const (
	LoadMEL ProcessLoadType = iota
	LoadLightingInterior
	LoadLightingExterior
	LoadLightingGarage
	LoadOther
)

func (t ProcessLoadType) String() string {
	return [...]string{"mel", "lighting_interior", "lighting_exterior", "lighting_garage", "other"}[t]
}

func ProcessLoadTypeFromString(str string) (ProcessLoadType, error) {
	for t := LoadMEL; t <= LoadOther; t++ {
		if t.String() == str {
			return t, nil
		}
	}
	return 0, diagnostics.Errorf(diagnostics.InputInvalid, str, "invalid process load type")
}

// ProcessLoad is an annual electric end use attached to a room.
type ProcessLoad struct {
	Name               string
	Type               ProcessLoadType
	AnnualEnergy       float64 // kWh/yr
	InConditionedSpace bool
}

// Watts returns the constant load equivalent to the annual energy, W.
func (l ProcessLoad) Watts() float64 {
	return units.AverageWatts(l.AnnualEnergy)
}
