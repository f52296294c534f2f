package hotwater

import (
	"math"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"

	"ph_calc/diagnostics"
)

// CoverageTolerance is the allowed deviation of Σ heater coverage from 1.
const CoverageTolerance = 0.005

// Trunk is a trunk element with its branches.
type Trunk struct {
	*PipeElement
	branches []*Branch
	system   *System
}

// Branches returns the trunk's branches in insertion order.
func (t *Trunk) Branches() []*Branch {
	return append([]*Branch(nil), t.branches...)
}

// Branch is a branch element with its fixtures.
type Branch struct {
	*PipeElement
	fixtures []*PipeElement
	trunk    *Trunk
}

// Fixtures returns the branch's fixtures in insertion order.
func (b *Branch) Fixtures() []*PipeElement {
	return append([]*PipeElement(nil), b.fixtures...)
}

// Trunk returns the parent trunk.
func (b *Branch) Trunk() *Trunk { return b.trunk }

// Lengths are the total pipe lengths per role, m.
type Lengths struct {
	Trunk   float64
	Branch  float64
	Fixture float64
	Recirc  float64
}

// Total returns the sum over all roles, m.
func (l Lengths) Total() float64 {
	return l.Trunk + l.Branch + l.Fixture + l.Recirc
}

// System is a service-hot-water system: tanks, heaters and distribution.
type System struct {
	ID   string
	Name string

	tanks   [2]*Tank
	buffer  *Tank
	solar   *Tank
	heaters []Heater

	trunks []*Trunk
	recirc []*PipeElement

	explicitTapCount *int
}

// NewSystem returns an empty system.
func NewSystem(name string) *System {
	return &System{ID: uuid.NewString(), Name: name}
}

func checkRole(e *PipeElement, want Role) error {
	if e == nil {
		return diagnostics.Errorf(diagnostics.InputMissing, want.String(), "pipe element is nil")
	}
	if e.role != want {
		return diagnostics.Errorf(diagnostics.InputInvalid, e.Name, "element role is %s, expected %s", e.role, want)
	}
	return nil
}

// AddTrunk adds a trunk element to the distribution.
func (s *System) AddTrunk(e *PipeElement) (*Trunk, error) {
	if err := checkRole(e, RoleTrunk); err != nil {
		return nil, err
	}
	t := &Trunk{PipeElement: e, system: s}
	s.trunks = append(s.trunks, t)
	return t, nil
}

func (s *System) ownsTrunk(t *Trunk) bool {
	if t == nil || t.system != s {
		return false
	}
	for _, o := range s.trunks {
		if o == t {
			return true
		}
	}
	return false
}

func (s *System) ownsBranch(b *Branch) bool {
	if b == nil || !s.ownsTrunk(b.trunk) {
		return false
	}
	for _, o := range b.trunk.branches {
		if o == b {
			return true
		}
	}
	return false
}

// AddBranch adds a branch element under trunk t. t must belong to s.
func (s *System) AddBranch(t *Trunk, e *PipeElement) (*Branch, error) {
	if !s.ownsTrunk(t) {
		return nil, diagnostics.Errorf(diagnostics.HWDetached, s.Name, "trunk is not part of this system")
	}
	if err := checkRole(e, RoleBranch); err != nil {
		return nil, err
	}
	b := &Branch{PipeElement: e, trunk: t}
	t.branches = append(t.branches, b)
	return b, nil
}

// AddFixture adds a fixture element under branch b. b must belong to s.
func (s *System) AddFixture(b *Branch, e *PipeElement) error {
	if !s.ownsBranch(b) {
		return diagnostics.Errorf(diagnostics.HWDetached, s.Name, "branch is not part of this system")
	}
	if err := checkRole(e, RoleFixture); err != nil {
		return err
	}
	b.fixtures = append(b.fixtures, e)
	return nil
}

// AddFixtureDirect hosts a bare fixture under a synthesized zero-length
// trunk and branch.
func (s *System) AddFixtureDirect(e *PipeElement) (*Branch, error) {
	if err := checkRole(e, RoleFixture); err != nil {
		return nil, err
	}
	te, err := NewPipeElement(e.Name+" trunk", RoleTrunk)
	if err != nil {
		return nil, err
	}
	be, err := NewPipeElement(e.Name+" branch", RoleBranch)
	if err != nil {
		return nil, err
	}
	t, err := s.AddTrunk(te)
	if err != nil {
		return nil, err
	}
	b, err := s.AddBranch(t, be)
	if err != nil {
		return nil, err
	}
	b.fixtures = append(b.fixtures, e)
	return b, nil
}

// AddRecirc adds a recirculation loop. Loops are not part of the tree.
func (s *System) AddRecirc(e *PipeElement) error {
	if err := checkRole(e, RoleRecirc); err != nil {
		return err
	}
	s.recirc = append(s.recirc, e)
	return nil
}

// Trunks returns the trunks in insertion order.
func (s *System) Trunks() []*Trunk {
	return append([]*Trunk(nil), s.trunks...)
}

// RecircLoops returns the recirculation loops in insertion order.
func (s *System) RecircLoops() []*PipeElement {
	return append([]*PipeElement(nil), s.recirc...)
}

// Elements returns every element with the given role, tree order.
func (s *System) Elements(role Role) []*PipeElement {
	var out []*PipeElement
	if role == RoleRecirc {
		return s.RecircLoops()
	}
	for _, t := range s.trunks {
		if role == RoleTrunk {
			out = append(out, t.PipeElement)
			continue
		}
		for _, b := range t.branches {
			if role == RoleBranch {
				out = append(out, b.PipeElement)
				continue
			}
			out = append(out, b.fixtures...)
		}
	}
	return out
}

// FixtureCount returns the number of fixtures over all trunks and branches.
func (s *System) FixtureCount() int {
	var n int
	for _, t := range s.trunks {
		for _, b := range t.branches {
			n += len(b.fixtures)
		}
	}
	return n
}

// TapCount returns the explicit tap-point count when set, else the number
// of fixtures.
func (s *System) TapCount() int {
	if s.explicitTapCount != nil {
		return *s.explicitTapCount
	}
	return s.FixtureCount()
}

// SetExplicitTapCount overrides the derived tap-point count.
func (s *System) SetExplicitTapCount(n int) error {
	if n < 0 {
		return diagnostics.Errorf(diagnostics.InputInvalid, s.Name, "tap count must be >= 0, got %d", n)
	}
	s.explicitTapCount = &n
	return nil
}

// ClearExplicitTapCount restores the derived tap-point count.
func (s *System) ClearExplicitTapCount() {
	s.explicitTapCount = nil
}

func sumLengths(es []*PipeElement) float64 {
	ls := make([]float64, len(es))
	for i, e := range es {
		ls[i] = e.Length()
	}
	return floats.Sum(ls)
}

// TotalPipeLength returns the total segment length per role, m.
func (s *System) TotalPipeLength() Lengths {
	return Lengths{
		Trunk:   sumLengths(s.Elements(RoleTrunk)),
		Branch:  sumLengths(s.Elements(RoleBranch)),
		Fixture: sumLengths(s.Elements(RoleFixture)),
		Recirc:  sumLengths(s.Elements(RoleRecirc)),
	}
}

// AddPrimaryTank fills the first free primary slot. With both slots taken
// the second slot is replaced and a warning is recorded.
func (s *System) AddPrimaryTank(t *Tank, report *diagnostics.Report) error {
	if err := t.Validate(); err != nil {
		return err
	}
	switch {
	case s.tanks[0] == nil:
		s.tanks[0] = t
	case s.tanks[1] == nil:
		s.tanks[1] = t
	default:
		report.Warn(diagnostics.HotWaterSlotReplaced, s.Name,
			"system already has two primary tanks; %q replaces %q", t.Name, s.tanks[1].Name)
		s.tanks[1] = t
	}
	return nil
}

// SetBufferTank sets the buffer tank, replacing an existing one with a warning.
func (s *System) SetBufferTank(t *Tank, report *diagnostics.Report) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if s.buffer != nil {
		report.Warn(diagnostics.HotWaterSlotReplaced, s.Name, "buffer tank %q replaces %q", t.Name, s.buffer.Name)
	}
	s.buffer = t
	return nil
}

// SetSolarTank sets the solar tank, replacing an existing one with a warning.
func (s *System) SetSolarTank(t *Tank, report *diagnostics.Report) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if s.solar != nil {
		report.Warn(diagnostics.HotWaterSlotReplaced, s.Name, "solar tank %q replaces %q", t.Name, s.solar.Name)
	}
	s.solar = t
	return nil
}

// Tanks returns the primary tanks that are set.
func (s *System) Tanks() []*Tank {
	var out []*Tank
	for _, t := range s.tanks {
		if t != nil {
			out = append(out, t)
		}
	}
	return out
}

// BufferTank returns the buffer tank or nil.
func (s *System) BufferTank() *Tank { return s.buffer }

// SolarTank returns the solar tank or nil.
func (s *System) SolarTank() *Tank { return s.solar }

// AddHeater appends a heater. Coverage fractions are kept as given.
func (s *System) AddHeater(h Heater) error {
	if err := h.Validate(); err != nil {
		return err
	}
	s.heaters = append(s.heaters, h)
	return nil
}

// Heaters returns the heaters in insertion order.
func (s *System) Heaters() []Heater {
	return append([]Heater(nil), s.heaters...)
}

// CheckCoverage warns when the heater coverage fractions do not sum to 1
// within CoverageTolerance. The fractions are never renormalized.
func (s *System) CheckCoverage(report *diagnostics.Report) {
	if len(s.heaters) == 0 {
		return
	}
	cs := make([]float64, len(s.heaters))
	for i, h := range s.heaters {
		cs[i] = h.Coverage
	}
	if sum := floats.Sum(cs); math.Abs(sum-1.0) > CoverageTolerance {
		report.Warn(diagnostics.HotWaterCoverageMismatch, s.Name, "heater coverage sums to %.4f, expected 1.0", sum)
	}
}
