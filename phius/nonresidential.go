package phius

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"

	"github.com/gocarina/gocsv"

	"ph_calc/diagnostics"
	"ph_calc/model"
	"ph_calc/units"
)

// NonResidentialSpace is the load budget of one non-residential space.
type NonResidentialSpace struct {
	Room         string
	Space        string
	Number       string
	Program      string
	FloorAreaFt2 float64
	LPD          float64 // W/ft2
	DaysPerYear  float64
	HoursPerDay  float64
	MELDensity   float64 // kWh/yr·ft2
	Lighting     float64 // kWh/yr
	MEL          float64 // kWh/yr
}

func newNonResidentialSpace(r *model.Room, sp *model.Space) (*NonResidentialSpace, error) {
	p := sp.Program()
	if p == nil {
		p = r.Program
	}
	if p == nil {
		return nil, diagnostics.Errorf(diagnostics.InputMissing, sp.Name(), "non-residential space has no program")
	}
	s := &NonResidentialSpace{
		Room:         r.Name,
		Space:        sp.Name(),
		Number:       sp.Number(),
		Program:      p.Name,
		FloorAreaFt2: units.M2ToFt2Area(sp.FloorArea()),
		LPD:          p.LPDIP(),
		DaysPerYear:  p.OperatingDays,
		HoursPerDay:  p.OperatingHours,
		MELDensity:   p.MELDensityIP(),
	}
	s.Lighting = s.FloorAreaFt2 * s.LPD * s.DaysPerYear * s.HoursPerDay / 1000
	s.MEL = s.FloorAreaFt2 * s.MELDensity
	return s, nil
}

//go:embed programs.csv
var programsCSV []byte

// ProgramRow is one row of the non-residential program table.
type ProgramRow struct {
	Name       string  `csv:"name"`
	LPD        float64 `csv:"LPD_W_ft2"`
	Days       float64 `csv:"days_yr"`
	Hours      float64 `csv:"hrs_day"`
	MELDensity float64 `csv:"MEL_kWh_yr_ft2"`
}

var (
	programsOnce sync.Once
	programRows  []*ProgramRow
	programsErr  error
)

func loadPrograms() ([]*ProgramRow, error) {
	programsOnce.Do(func() {
		if err := gocsv.Unmarshal(bytes.NewReader(programsCSV), &programRows); err != nil {
			programsErr = fmt.Errorf("read program table: %w", err)
		}
	})
	return programRows, programsErr
}

// ProgramNames lists the built-in non-residential programs in table order.
func ProgramNames() ([]string, error) {
	rows, err := loadPrograms()
	if err != nil {
		return nil, err
	}
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Name
	}
	return out, nil
}

// Program returns a fresh program built from the table row of name.
func Program(name string) (*model.ProgramType, error) {
	rows, err := loadPrograms()
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		if r.Name == name {
			return model.NewProgramFromIP(r.Name, r.LPD, r.MELDensity, r.Days, r.Hours)
		}
	}
	return nil, diagnostics.Errorf(diagnostics.InputInvalid, name, "unknown non-residential program")
}
