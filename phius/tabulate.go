package phius

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
)

// StoryRow is a residential story in the calculator's layout.
type StoryRow struct {
	Story        string  `csv:"story"`
	FloorAreaFt2 float64 `csv:"floor_area_ft2"`
	NumDwellings int     `csv:"num_dwellings"`
	NumBedrooms  int     `csv:"num_bedrooms"`
}

// StoryTotalsRow holds a residential story's occupancy and loads.
type StoryTotalsRow struct {
	DesignOccupancy int     `csv:"design_occupancy"`
	MEL             float64 `csv:"mel_kWh"`
	LightingInt     float64 `csv:"lighting_int_kWh"`
	LightingExt     float64 `csv:"lighting_ext_kWh"`
	LightingGarage  float64 `csv:"lighting_garage_kWh"`
}

// SpaceRow is a non-residential space in the calculator's layout.
type SpaceRow struct {
	LPD        float64 `csv:"LPD_W_ft2"`
	Days       float64 `csv:"days_yr"`
	Hours      float64 `csv:"hrs_day"`
	MELDensity float64 `csv:"MEL_kWh_yr_ft2"`
	Lighting   float64 `csv:"lighting_kWh_yr"`
	MEL        float64 `csv:"MEL_kWh_yr"`
}

func (r *Result) StoryRows() []*StoryRow {
	out := make([]*StoryRow, len(r.Stories))
	for i, s := range r.Stories {
		out[i] = &StoryRow{
			Story:        s.Name,
			FloorAreaFt2: s.FloorAreaFt2,
			NumDwellings: s.NumDwellings,
			NumBedrooms:  s.NumBedrooms,
		}
	}
	return out
}

func (r *Result) StoryTotalsRows() []*StoryTotalsRow {
	out := make([]*StoryTotalsRow, len(r.Stories))
	for i, s := range r.Stories {
		out[i] = &StoryTotalsRow{
			DesignOccupancy: s.DesignOccupancy(),
			MEL:             s.Loads.MEL,
			LightingInt:     s.Loads.LightingInterior,
			LightingExt:     s.Loads.LightingExterior,
			LightingGarage:  s.Loads.LightingGarage,
		}
	}
	return out
}

func (r *Result) SpaceRows() []*SpaceRow {
	out := make([]*SpaceRow, len(r.Spaces))
	for i, s := range r.Spaces {
		out[i] = &SpaceRow{
			LPD:        s.LPD,
			Days:       s.DaysPerYear,
			Hours:      s.HoursPerDay,
			MELDensity: s.MELDensity,
			Lighting:   s.Lighting,
			MEL:        s.MEL,
		}
	}
	return out
}

// WriteCSV writes the three tables separated by a blank line: stories,
// story totals, non-residential spaces.
func (r *Result) WriteCSV(w io.Writer) error {
	tables := []interface{}{r.StoryRows(), r.StoryTotalsRows(), r.SpaceRows()}
	for i, t := range tables {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := gocsv.Marshal(t, w); err != nil {
			return fmt.Errorf("write phius table %d: %w", i+1, err)
		}
	}
	return nil
}
