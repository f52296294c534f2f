package hotwater

import (
	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"ph_calc/diagnostics"
	"ph_calc/geometry"
)

// PipeMaterial is the pipe material, as enumerated by the exchange formats.
type PipeMaterial int

const (
	PipeCopperM PipeMaterial = iota
	PipeCopperL
	PipeCopperK
	PipeCPVCCTSSDR
	PipeCPVCSch40
	PipePEX
	PipePE
	PipePEXCTSSDR9
)

func (m PipeMaterial) String() string {
	return [...]string{
		"1-COPPER_M", "2-COPPER_L", "3-COPPER_K", "4-CPVC_CTS_SDR",
		"5-CPVC_SCH_40", "6-PEX", "7-PE", "8-PEX_CTS_SDR_9",
	}[m]
}

func PipeMaterialFromString(str string) (PipeMaterial, error) {
	for m := PipeCopperM; m <= PipePEXCTSSDR9; m++ {
		if str == m.String() || str == m.String()[2:] {
			return m, nil
		}
	}
	return 0, diagnostics.Errorf(diagnostics.InputInvalid, str, "invalid pipe material")
}

// Role of a pipe element in the distribution.
type Role int

const (
	RoleTrunk Role = iota
	RoleBranch
	RoleFixture
	RoleRecirc
)

func (r Role) String() string {
	return [...]string{"trunk", "branch", "fixture", "recirc"}[r]
}

// PipeSegment is one straight run of pipe.
type PipeSegment struct {
	Geometry               geometry.LineSegment
	Diameter               float64 // m
	InsulationThickness    float64 // m
	InsulationConductivity float64 // W/mK
	InsulationReflective   bool
	DailyPeriod            float64 // h
	Material               PipeMaterial
}

// Validate checks the segment's declared domains.
func (s PipeSegment) Validate() error {
	switch {
	case !(s.Diameter > 0):
		return diagnostics.Errorf(diagnostics.InputInvalid, "pipe segment", "diameter must be > 0, got %g m", s.Diameter)
	case s.InsulationThickness < 0:
		return diagnostics.Errorf(diagnostics.InputInvalid, "pipe segment", "insulation thickness must be >= 0, got %g m", s.InsulationThickness)
	case s.InsulationThickness > 0 && !(s.InsulationConductivity > 0):
		return diagnostics.Errorf(diagnostics.InputInvalid, "pipe segment", "insulation conductivity must be > 0, got %g W/mK", s.InsulationConductivity)
	case s.DailyPeriod < 0 || s.DailyPeriod > 24:
		return diagnostics.Errorf(diagnostics.InputInvalid, "pipe segment", "daily period must be within [0, 24] h, got %g", s.DailyPeriod)
	}
	return nil
}

// Length returns the segment length, m.
func (s PipeSegment) Length() float64 {
	return s.Geometry.Length()
}

// PipeElement is an ordered list of segments sharing one role.
type PipeElement struct {
	ID       string
	Name     string
	role     Role
	segments []PipeSegment
}

// NewPipeElement validates the segments and builds an element. An element
// without segments has zero length.
func NewPipeElement(name string, role Role, segments ...PipeSegment) (*PipeElement, error) {
	for _, s := range segments {
		if err := s.Validate(); err != nil {
			return nil, diagnostics.Wrap(diagnostics.KindOf(err), name, err)
		}
	}
	return &PipeElement{
		ID:       uuid.NewString(),
		Name:     name,
		role:     role,
		segments: append([]PipeSegment(nil), segments...),
	}, nil
}

// Role returns the element's role.
func (e *PipeElement) Role() Role { return e.role }

// Segments returns a copy of the segments.
func (e *PipeElement) Segments() []PipeSegment {
	return append([]PipeSegment(nil), e.segments...)
}

func (e *PipeElement) lengths() []float64 {
	ls := make([]float64, len(e.segments))
	for i, s := range e.segments {
		ls[i] = s.Length()
	}
	return ls
}

// Length returns the total length of the element, m.
func (e *PipeElement) Length() float64 {
	return floats.Sum(e.lengths())
}

// Diameter returns the length-weighted mean diameter, m. Zero-length
// elements report 0.
func (e *PipeElement) Diameter() float64 {
	ls := e.lengths()
	if floats.Sum(ls) == 0 {
		return 0
	}
	ds := make([]float64, len(e.segments))
	for i, s := range e.segments {
		ds[i] = s.Diameter
	}
	return stat.Mean(ds, ls)
}
