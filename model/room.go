package model

import (
	"github.com/google/uuid"

	"ph_calc/bridges"
	"ph_calc/diagnostics"
)

// SegmentID refers to the building segment a room belongs to. The zero
// value means the room has not been assigned.
type SegmentID string

// Room is a conditioned room of the host model with its PH extensions.
type Room struct {
	ID        string
	Name      string
	Story     string
	FloorArea float64 // m2
	People    *People
	Program   *ProgramType
	Segment   SegmentID

	faces        []*Face
	spaces       []*Space
	foundations  []*Foundation
	bridges      []*bridges.ThermalBridge
	processLoads []ProcessLoad
}

func NewRoom(name, story string, floorArea float64) (*Room, error) {
	if floorArea < 0 {
		return nil, diagnostics.Errorf(diagnostics.InputInvalid, name, "floor area must be >= 0, got %g", floorArea)
	}
	return &Room{ID: uuid.NewString(), Name: name, Story: story, FloorArea: floorArea}, nil
}

// Duplicate returns a deep copy. Thermal bridges keep their identifiers.
func (r *Room) Duplicate() *Room {
	c := *r
	if r.People != nil {
		p := *r.People
		c.People = &p
	}
	c.faces = make([]*Face, len(r.faces))
	for i, f := range r.faces {
		c.faces[i] = f.duplicate()
	}
	c.spaces = append([]*Space(nil), r.spaces...)
	c.foundations = make([]*Foundation, len(r.foundations))
	for i, f := range r.foundations {
		fc := *f
		c.foundations[i] = &fc
	}
	c.bridges = make([]*bridges.ThermalBridge, len(r.bridges))
	for i, tb := range r.bridges {
		c.bridges[i] = tb.Duplicate()
	}
	c.processLoads = append([]ProcessLoad(nil), r.processLoads...)
	return &c
}

// IsResidential reports whether the room is part of a dwelling unit.
func (r *Room) IsResidential() bool {
	return r.People != nil && r.People.IsDwellingUnit
}

func (r *Room) Faces() []*Face { return append([]*Face(nil), r.faces...) }
func (r *Room) Spaces() []*Space { return append([]*Space(nil), r.spaces...) }
func (r *Room) Foundations() []*Foundation { return append([]*Foundation(nil), r.foundations...) }
func (r *Room) ThermalBridges() []*bridges.ThermalBridge { return append([]*bridges.ThermalBridge(nil), r.bridges...) }
func (r *Room) ProcessLoads() []ProcessLoad { return append([]ProcessLoad(nil), r.processLoads...) }

// Apertures returns the apertures of all faces in face order.
func (r *Room) Apertures() []*Aperture {
	var out []*Aperture
	for _, f := range r.faces {
		out = append(out, f.Apertures...)
	}
	return out
}

func (r *Room) WithPeople(p People) (*Room, error) {
	if err := p.Validate(r.Name); err != nil {
		return nil, err
	}
	c := r.Duplicate()
	c.People = &p
	return c, nil
}

func (r *Room) WithProgram(p *ProgramType) *Room {
	c := r.Duplicate()
	c.Program = p
	return c
}

func (r *Room) WithSegment(id SegmentID) *Room {
	c := r.Duplicate()
	c.Segment = id
	return c
}

// WithSpaces appends spaces, which take the room as their host.
func (r *Room) WithSpaces(spaces ...*Space) *Room {
	c := r.Duplicate()
	for _, s := range spaces {
		c.spaces = append(c.spaces, s.withHost(r.Name))
	}
	return c
}

func (r *Room) WithFaces(faces ...*Face) *Room {
	c := r.Duplicate()
	for _, f := range faces {
		c.faces = append(c.faces, f.duplicate())
	}
	return c
}

// WithApertures replaces the apertures of face i.
func (r *Room) WithApertures(i int, aps ...*Aperture) (*Room, error) {
	if i < 0 || i >= len(r.faces) {
		return nil, diagnostics.Errorf(diagnostics.InputInvalid, r.Name, "face index %d out of range", i)
	}
	c := r.Duplicate()
	c.faces[i].Apertures = make([]*Aperture, len(aps))
	for j, ap := range aps {
		c.faces[i].Apertures[j] = ap.duplicate()
	}
	return c, nil
}

func (r *Room) WithFoundations(fs ...*Foundation) (*Room, error) {
	c := r.Duplicate()
	for _, f := range fs {
		if err := f.Validate(); err != nil {
			return nil, err
		}
		fc := *f
		c.foundations = append(c.foundations, &fc)
	}
	return c, nil
}

func (r *Room) WithThermalBridges(tbs ...*bridges.ThermalBridge) *Room {
	c := r.Duplicate()
	for _, tb := range tbs {
		c.bridges = append(c.bridges, tb.Duplicate())
	}
	return c
}

func (r *Room) WithProcessLoads(ls ...ProcessLoad) *Room {
	c := r.Duplicate()
	c.processLoads = append(c.processLoads, ls...)
	return c
}

// RoomSource is the adapter boundary to the host model.
type RoomSource interface {
	Rooms() ([]*Room, error)
}

// Rooms is a RoomSource over an in-memory slice.
type Rooms []*Room

func (rs Rooms) Rooms() ([]*Room, error) {
	return append([]*Room(nil), rs...), nil
}
