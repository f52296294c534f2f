// Package phius implements the Phius multi-family electrical-load
// calculator: residential loads per story, non-residential loads per space,
// the calculator's tabulation and the synthesis of process loads.
package phius

import (
	"ph_calc/diagnostics"
	"ph_calc/model"
	"ph_calc/units"
)

// Fractions are the high-efficiency lighting fractions, 0..1.
type Fractions struct {
	Interior float64
	Exterior float64
	Garage   float64
}

// DefaultFractions assumes all lighting is high-efficiency.
func DefaultFractions() Fractions {
	return Fractions{Interior: 1, Exterior: 1, Garage: 1}
}

func (f Fractions) Validate() error {
	for _, v := range []float64{f.Interior, f.Exterior, f.Garage} {
		if v < 0 || v > 1 {
			return diagnostics.Errorf(diagnostics.InputInvalid, "lighting fractions", "high-efficiency fraction must be in [0, 1], got %g", v)
		}
	}
	return nil
}

// Loads are annual electric loads, kWh/yr.
type Loads struct {
	MEL              float64
	LightingInterior float64
	LightingExterior float64
	LightingGarage   float64
}

func (l Loads) add(o Loads) Loads {
	return Loads{
		MEL:              l.MEL + o.MEL,
		LightingInterior: l.LightingInterior + o.LightingInterior,
		LightingExterior: l.LightingExterior + o.LightingExterior,
		LightingGarage:   l.LightingGarage + o.LightingGarage,
	}
}

// Total returns the sum of the four loads, kWh/yr.
func (l Loads) Total() float64 {
	return l.MEL + l.LightingInterior + l.LightingExterior + l.LightingGarage
}

// ResidentialStory is the aggregate of the residential rooms on one story.
type ResidentialStory struct {
	Name         string
	Rooms        []*model.Room
	FloorAreaFt2 float64
	NumBedrooms  int
	NumDwellings int
	Loads        Loads
}

// DesignOccupancy is bedrooms plus dwellings.
func (s *ResidentialStory) DesignOccupancy() int {
	return s.NumBedrooms + s.NumDwellings
}

func newResidentialStory(name string, rooms []*model.Room, f Fractions) (*ResidentialStory, error) {
	s := &ResidentialStory{Name: name, Rooms: rooms}
	for _, r := range rooms {
		if err := r.People.Validate(r.Name); err != nil {
			return nil, err
		}
		s.FloorAreaFt2 += units.M2ToFt2Area(r.FloorArea)
	}
	s.NumBedrooms = model.NumBedrooms(rooms)
	s.NumDwellings = model.NumDwellings(rooms)

	d, b, a := float64(s.NumDwellings), float64(s.NumBedrooms), s.FloorAreaFt2
	s.Loads = Loads{
		MEL:              MEL(d, b, a),
		LightingInterior: LightingInterior(d, a, f.Interior),
		LightingExterior: LightingExterior(d, a, f.Exterior),
		LightingGarage:   LightingGarage(d, f.Garage),
	}
	return s, nil
}

/*
MEL returns the residential miscellaneous electric load.

	Args:
		dwellings: number of dwelling units, -
		bedrooms: number of bedrooms, -
		areaFt2: floor area, ft2
	Returns:
		annual energy, kWh/yr
*/
func MEL(dwellings, bedrooms, areaFt2 float64) float64 {
	return 413*dwellings + 69*bedrooms + 0.91*areaFt2
}

/*
LightingInterior returns the residential interior lighting load.

	Args:
		dwellings: number of dwelling units, -
		areaFt2: floor area, ft2
		fraction: high-efficiency fraction, 0..1
	Returns:
		annual energy, kWh/yr
*/
func LightingInterior(dwellings, areaFt2, fraction float64) float64 {
	return (455*dwellings + 0.8*areaFt2) * (0.8*(4-3*fraction)/3.7 + 0.2)
}

// LightingExterior returns the exterior lighting load, kWh/yr.
func LightingExterior(dwellings, areaFt2, fraction float64) float64 {
	return (100*dwellings + 0.05*areaFt2) * (1 - 0.75*fraction)
}

// LightingGarage returns the garage lighting load, kWh/yr.
func LightingGarage(dwellings, fraction float64) float64 {
	return dwellings * (100 - 75*fraction)
}
