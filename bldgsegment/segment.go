// Package bldgsegment assembles rooms into a building segment: the unit
// that carries site, certification, factor tables, set-points and the
// segment-wide thermal-bridge table.
package bldgsegment

import (
	"ph_calc/bridges"
	"ph_calc/certification"
	"ph_calc/climate"
	"ph_calc/diagnostics"
	"ph_calc/factors"
	"ph_calc/hotwater"
	"ph_calc/hvac"
	"ph_calc/model"
)

// SetPoints are the indoor design temperatures, degree C.
type SetPoints struct {
	Winter float64
	Summer float64
}

func DefaultSetPoints() SetPoints {
	return SetPoints{Winter: 20, Summer: 25}
}

// Validate requires both set-points above 0 degree C.
func (s SetPoints) Validate() error {
	if s.Winter <= 0 {
		return diagnostics.Errorf(diagnostics.InputInvalid, "winter set-point", "must be > 0 C, got %g", s.Winter)
	}
	if s.Summer <= 0 {
		return diagnostics.Errorf(diagnostics.InputInvalid, "summer set-point", "must be > 0 C, got %g", s.Summer)
	}
	return nil
}

// Segment is an assembled building segment.
type Segment struct {
	ID        model.SegmentID
	Name      string
	NumFloors int
	Site      climate.Site
	Phius     *certification.PhiusCertification
	Phi       *certification.PhiCertification
	Source    *factors.Collection
	CO2       *factors.Collection
	SetPoints SetPoints
	Bridges   *bridges.Table
	HotWater  []*hotwater.System
	HVAC      *hvac.Collection

	dwellingsOverride int
	rooms             []*model.Room
}

// Rooms returns the member rooms.
func (s *Segment) Rooms() []*model.Room {
	return append([]*model.Room(nil), s.rooms...)
}

// NumDwellings returns the override when set, else the distinct dwellings
// of the member rooms.
func (s *Segment) NumDwellings() int {
	if s.dwellingsOverride > 0 {
		return s.dwellingsOverride
	}
	return model.NumDwellings(s.rooms)
}

// FloorArea returns the summed room floor area, m2.
func (s *Segment) FloorArea() float64 {
	var a float64
	for _, r := range s.rooms {
		a += r.FloorArea
	}
	return a
}

// WeightedFloorArea returns the summed TFA/iCFA of all spaces, m2.
func (s *Segment) WeightedFloorArea() float64 {
	var a float64
	for _, r := range s.rooms {
		for _, sp := range r.Spaces() {
			a += sp.WeightedFloorArea()
		}
	}
	return a
}

// Occupancy returns the design occupancy: bedrooms plus dwellings.
func (s *Segment) Occupancy() int {
	return model.NumBedrooms(s.rooms) + s.NumDwellings()
}
