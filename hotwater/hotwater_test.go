package hotwater

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ph_calc/diagnostics"
	"ph_calc/geometry"
)

func seg(length float64) PipeSegment {
	return PipeSegment{
		Geometry:               geometry.NewLineSegment(geometry.Pt(0, 0, 0), geometry.Pt(length, 0, 0)),
		Diameter:               0.0127,
		InsulationThickness:    0.0127,
		InsulationConductivity: 0.04,
		DailyPeriod:            24,
		Material:               PipeCopperL,
	}
}

func element(t *testing.T, role Role, lengths ...float64) *PipeElement {
	t.Helper()
	var segs []PipeSegment
	for _, l := range lengths {
		segs = append(segs, seg(l))
	}
	e, err := NewPipeElement(role.String(), role, segs...)
	require.NoError(t, err)
	return e
}

// 1 trunk, 2 branches, 3 fixtures each
func buildSystem(t *testing.T) *System {
	t.Helper()
	s := NewSystem("dhw")
	trunk, err := s.AddTrunk(element(t, RoleTrunk, 5, 2))
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		b, err := s.AddBranch(trunk, element(t, RoleBranch, 3))
		require.NoError(t, err)
		for j := 0; j < 3; j++ {
			require.NoError(t, s.AddFixture(b, element(t, RoleFixture, 1)))
		}
	}
	return s
}

func TestTapCount(t *testing.T) {
	s := buildSystem(t)
	assert.Equal(t, 6, s.TapCount())

	require.NoError(t, s.SetExplicitTapCount(10))
	assert.Equal(t, 10, s.TapCount())
	assert.Equal(t, 6, s.FixtureCount())

	s.ClearExplicitTapCount()
	assert.Equal(t, 6, s.TapCount())

	assert.ErrorIs(t, s.SetExplicitTapCount(-1), diagnostics.InputInvalid)
}

func TestTapCountRoundTrip(t *testing.T) {
	for n := 0; n < 12; n++ {
		s := NewSystem("dhw")
		for i := 0; i < n; i++ {
			_, err := s.AddFixtureDirect(element(t, RoleFixture, 0.5))
			require.NoError(t, err)
		}
		assert.Equal(t, n, s.TapCount())
		require.NoError(t, s.SetExplicitTapCount(3))
		assert.Equal(t, 3, s.TapCount())
	}
}

func TestTotalPipeLength(t *testing.T) {
	s := buildSystem(t)
	require.NoError(t, s.AddRecirc(element(t, RoleRecirc, 10, 4)))

	l := s.TotalPipeLength()
	assert.InDelta(t, 7.0, l.Trunk, 1e-12)
	assert.InDelta(t, 6.0, l.Branch, 1e-12)
	assert.InDelta(t, 6.0, l.Fixture, 1e-12)
	assert.InDelta(t, 14.0, l.Recirc, 1e-12)
	assert.InDelta(t, 33.0, l.Total(), 1e-12)
}

func TestAddFixtureDirect(t *testing.T) {
	s := NewSystem("dhw")
	b, err := s.AddFixtureDirect(element(t, RoleFixture, 2))
	require.NoError(t, err)

	require.Len(t, s.Trunks(), 1)
	assert.Same(t, s.Trunks()[0], b.Trunk())
	assert.Equal(t, 0.0, b.Length())
	assert.Equal(t, 0.0, b.Trunk().Length())
	assert.Equal(t, 1, s.TapCount())
	assert.InDelta(t, 2.0, s.TotalPipeLength().Fixture, 1e-12)

	// rejected fixtures leave no synthesized trunk behind
	_, err = s.AddFixtureDirect(element(t, RoleBranch, 1))
	assert.ErrorIs(t, err, diagnostics.InputInvalid)
	_, err = s.AddFixtureDirect(nil)
	assert.ErrorIs(t, err, diagnostics.InputMissing)
	assert.Len(t, s.Trunks(), 1)

	b2, err := s.AddFixtureDirect(element(t, RoleFixture, 1))
	require.NoError(t, err)
	require.NotNil(t, b2)
	assert.Len(t, b2.Fixtures(), 1)
	assert.Len(t, s.Trunks(), 2)
}

func TestDetached(t *testing.T) {
	s := buildSystem(t)
	other := buildSystem(t)

	foreign := other.Trunks()[0]
	_, err := s.AddBranch(foreign, element(t, RoleBranch, 1))
	assert.ErrorIs(t, err, diagnostics.HWDetached)

	err = s.AddFixture(foreign.Branches()[0], element(t, RoleFixture, 1))
	assert.ErrorIs(t, err, diagnostics.HWDetached)

	loose := &Branch{PipeElement: element(t, RoleBranch, 1)}
	assert.ErrorIs(t, s.AddFixture(loose, element(t, RoleFixture, 1)), diagnostics.HWDetached)

	assert.Equal(t, 6, s.TapCount())
}

func TestRoleMismatch(t *testing.T) {
	s := NewSystem("dhw")
	_, err := s.AddTrunk(element(t, RoleBranch, 1))
	assert.ErrorIs(t, err, diagnostics.InputInvalid)
	assert.ErrorIs(t, s.AddRecirc(element(t, RoleFixture, 1)), diagnostics.InputInvalid)
}

func TestInvalidSegment(t *testing.T) {
	bad := seg(1)
	bad.DailyPeriod = 25
	_, err := NewPipeElement("x", RoleTrunk, bad)
	assert.ErrorIs(t, err, diagnostics.InputInvalid)

	bad = seg(1)
	bad.Diameter = 0
	_, err = NewPipeElement("x", RoleTrunk, bad)
	assert.ErrorIs(t, err, diagnostics.InputInvalid)
}

func TestTankSlots(t *testing.T) {
	s := NewSystem("dhw")
	report := diagnostics.NewReport()

	for _, name := range []string{"t1", "t2", "t3"} {
		require.NoError(t, s.AddPrimaryTank(&Tank{Name: name, Volume: 200}, report))
	}
	tanks := s.Tanks()
	require.Len(t, tanks, 2)
	assert.Equal(t, "t1", tanks[0].Name)
	assert.Equal(t, "t3", tanks[1].Name)

	require.NoError(t, s.SetBufferTank(&Tank{Name: "b1"}, report))
	require.NoError(t, s.SetBufferTank(&Tank{Name: "b2"}, report))
	require.NoError(t, s.SetSolarTank(&Tank{Name: "s1"}, report))
	require.NoError(t, s.SetSolarTank(&Tank{Name: "s2"}, report))

	assert.Equal(t, "b2", s.BufferTank().Name)
	assert.Equal(t, "s2", s.SolarTank().Name)
	assert.Equal(t, 3, report.Count(diagnostics.HotWaterSlotReplaced))
}

func TestHeaterCoverage(t *testing.T) {
	s := NewSystem("dhw")
	require.NoError(t, s.AddHeater(Heater{Name: "hp", Type: HeaterHeatPumpAnnual, Coverage: 0.7, Efficiency: 2.5}))
	require.NoError(t, s.AddHeater(Heater{Name: "el", Type: HeaterElectric, Coverage: 0.2, Efficiency: 1}))

	report := diagnostics.NewReport()
	s.CheckCoverage(report)
	assert.True(t, report.Has(diagnostics.HotWaterCoverageMismatch))
	assert.Equal(t, 0.7, s.Heaters()[0].Coverage)

	require.NoError(t, s.AddHeater(Heater{Name: "boiler", Type: HeaterBoilerFossil, Coverage: 0.098, Efficiency: 0.9}))
	report = diagnostics.NewReport()
	s.CheckCoverage(report)
	assert.Equal(t, 0, report.Len())

	assert.Error(t, s.AddHeater(Heater{Name: "bad", Coverage: 1.5, Efficiency: 1}))
}

func TestElementDiameter(t *testing.T) {
	a, b := seg(1), seg(3)
	b.Diameter = 0.0254
	e, err := NewPipeElement("trunk", RoleTrunk, a, b)
	require.NoError(t, err)
	assert.InDelta(t, (0.0127*1+0.0254*3)/4, e.Diameter(), 1e-12)

	empty, err := NewPipeElement("empty", RoleTrunk)
	require.NoError(t, err)
	assert.Equal(t, 0.0, empty.Diameter())
}

func TestEnums(t *testing.T) {
	m, err := PipeMaterialFromString("PEX")
	require.NoError(t, err)
	assert.Equal(t, PipePEX, m)
	m, err = PipeMaterialFromString("3-COPPER_K")
	require.NoError(t, err)
	assert.Equal(t, PipeCopperK, m)

	h, err := HeaterTypeFromString("district")
	require.NoError(t, err)
	assert.Equal(t, HeaterDistrict, h)
	_, err = HeaterTypeFromString("fusion")
	assert.Error(t, err)
}

func TestTankStandbyLoss(t *testing.T) {
	tank := &Tank{Name: "t", StandbyLossRate: 1.5, StorageTemperature: 60}
	assert.InDelta(t, 1.5*40*8.76, tank.StandbyLoss(20), 1e-9)
	assert.Equal(t, 0.0, tank.StandbyLoss(70))
}
