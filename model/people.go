// Package model is the room data model the calculators consume: rooms with
// occupancy, spaces, faces, apertures and the PH extension slots.
//
// Rooms are never mutated in place. Every With... method duplicates the
// room and returns the copy.
package model

import (
	"ph_calc/diagnostics"
)

// Dwelling groups rooms into one dwelling unit. Identity is the pointer:
// two rooms are in the same dwelling when they share the same *Dwelling.
type Dwelling struct {
	Name string
}

func NewDwelling(name string) *Dwelling {
	return &Dwelling{Name: name}
}

// People is the occupancy of a room.
type People struct {
	NumPeople      float64
	NumBedrooms    int
	IsDwellingUnit bool
	Dwelling       *Dwelling
}

func (p *People) Validate(subject string) error {
	if p.NumPeople < 0 {
		return diagnostics.Errorf(diagnostics.InputInvalid, subject, "number of people must be >= 0, got %g", p.NumPeople)
	}
	if p.NumBedrooms < 0 {
		return diagnostics.Errorf(diagnostics.InputInvalid, subject, "number of bedrooms must be >= 0, got %d", p.NumBedrooms)
	}
	if p.IsDwellingUnit && p.Dwelling == nil {
		return diagnostics.Errorf(diagnostics.InputMissing, subject, "dwelling unit without a dwelling")
	}
	return nil
}

// NumDwellings counts the distinct dwellings of rooms.
func NumDwellings(rooms []*Room) int {
	seen := make(map[*Dwelling]struct{})
	for _, r := range rooms {
		if r.People != nil && r.People.Dwelling != nil {
			seen[r.People.Dwelling] = struct{}{}
		}
	}
	return len(seen)
}

// NumBedrooms sums the bedrooms of rooms.
func NumBedrooms(rooms []*Room) int {
	var n int
	for _, r := range rooms {
		if r.People != nil {
			n += r.People.NumBedrooms
		}
	}
	return n
}
