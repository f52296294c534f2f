package model

import (
	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"

	"ph_calc/diagnostics"
	"ph_calc/geometry"
)

// FloorSegment is a piece of a space's floor with its TFA/iCFA weighting.
type FloorSegment struct {
	Area      float64 // gross area, m2
	Weighting float64 // -
	Geometry  *geometry.Face
}

func (s FloorSegment) Validate(subject string) error {
	if s.Area < 0 {
		return diagnostics.Errorf(diagnostics.InputInvalid, subject, "floor segment area must be >= 0, got %g", s.Area)
	}
	if s.Weighting < 0 || s.Weighting > 1 {
		return diagnostics.Errorf(diagnostics.InputInvalid, subject, "weighting factor must be in [0, 1], got %g", s.Weighting)
	}
	return nil
}

// NewFloorSegment takes the area from the face geometry.
func NewFloorSegment(f geometry.Face, weighting float64) FloorSegment {
	return FloorSegment{Area: f.Area(), Weighting: weighting, Geometry: &f}
}

// Airflows are the design ventilation airflows of a space, m3/s.
type Airflows struct {
	Supply   float64
	Extract  float64
	Transfer float64
}

// Space is a PH interior space. It is immutable; With... methods return
// copies.
type Space struct {
	id       string
	name     string
	number   string
	host     string
	program  *ProgramType
	segments []FloorSegment
	airflows Airflows
}

func NewSpace(name, number string, segs ...FloorSegment) (*Space, error) {
	for _, s := range segs {
		if err := s.Validate(name); err != nil {
			return nil, err
		}
	}
	return &Space{
		id:       uuid.NewString(),
		name:     name,
		number:   number,
		segments: append([]FloorSegment(nil), segs...),
	}, nil
}

func (s *Space) ID() string { return s.id }
func (s *Space) Name() string { return s.name }
func (s *Space) Number() string { return s.number }
func (s *Space) Host() string { return s.host }
func (s *Space) Program() *ProgramType { return s.program }
func (s *Space) Airflows() Airflows { return s.airflows }

func (s *Space) Segments() []FloorSegment {
	return append([]FloorSegment(nil), s.segments...)
}

func (s *Space) clone() *Space {
	c := *s
	c.segments = s.Segments()
	return &c
}

func (s *Space) WithProgram(p *ProgramType) *Space {
	c := s.clone()
	c.program = p
	return c
}

func (s *Space) WithAirflows(a Airflows) (*Space, error) {
	if a.Supply < 0 || a.Extract < 0 || a.Transfer < 0 {
		return nil, diagnostics.Errorf(diagnostics.InputInvalid, s.name, "airflows must be >= 0")
	}
	c := s.clone()
	c.airflows = a
	return c, nil
}

func (s *Space) withHost(room string) *Space {
	c := s.clone()
	c.host = room
	return c
}

// FloorArea returns the gross floor area, m2.
func (s *Space) FloorArea() float64 {
	as := make([]float64, len(s.segments))
	for i, seg := range s.segments {
		as[i] = seg.Area
	}
	return floats.Sum(as)
}

// WeightedFloorArea returns the TFA/iCFA, Σ area·weighting, m2.
func (s *Space) WeightedFloorArea() float64 {
	as := make([]float64, len(s.segments))
	ws := make([]float64, len(s.segments))
	for i, seg := range s.segments {
		as[i] = seg.Area
		ws[i] = seg.Weighting
	}
	return floats.Dot(as, ws)
}
