package bldgsegment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ph_calc/bridges"
	"ph_calc/diagnostics"
	"ph_calc/factors"
	"ph_calc/geometry"
	"ph_calc/hotwater"
	"ph_calc/hvac"
	"ph_calc/materials"
	"ph_calc/model"
	"ph_calc/windows"
)

func room(t *testing.T, name string, tbs ...*bridges.ThermalBridge) *model.Room {
	t.Helper()
	r, err := model.NewRoom(name, "1", 50)
	require.NoError(t, err)
	r, err = r.WithPeople(model.People{NumBedrooms: 1, IsDwellingUnit: true, Dwelling: model.NewDwelling(name)})
	require.NoError(t, err)
	return r.WithThermalBridges(tbs...)
}

func params(rooms ...*model.Room) Params {
	return Params{Name: "Block A", Rooms: rooms, SetPoints: DefaultSetPoints(), NumFloors: 2}
}

func TestAssembleDeduplicatesBridges(t *testing.T) {
	shared, err := bridges.New("balcony", geometry.NewLineSegment(geometry.Pt(0, 0, 0), geometry.Pt(4, 0, 0)), 0.1, 0.8, 1, bridges.GroupAmbient)
	require.NoError(t, err)
	own, err := bridges.New("sill", geometry.NewLineSegment(geometry.Pt(0, 0, 0), geometry.Pt(1, 0, 0)), 0.02, 0.9, 1, bridges.GroupAmbient)
	require.NoError(t, err)

	in := []*model.Room{room(t, "a", shared), room(t, "b", shared, own), room(t, "c", shared)}
	out, seg, _, err := Assemble(params(in...))
	require.NoError(t, err)

	assert.Equal(t, 2, seg.Bridges.Len())
	got, ok := seg.Bridges.Get(shared.ID())
	require.True(t, ok)
	assert.InDelta(t, 4.0, got.Length(), 1e-12)

	require.Len(t, out, 3)
	for i, r := range out {
		assert.Equal(t, seg.ID, r.Segment)
		assert.Equal(t, model.SegmentID(""), in[i].Segment)
		assert.Equal(t, in[i].ID, r.ID)
		assert.NotSame(t, in[i], r)
	}
	assert.Equal(t, 3, seg.NumDwellings())
	assert.Equal(t, 6, seg.Occupancy())
	assert.Equal(t, 150.0, seg.FloorArea())
}

func TestAssembleFactorOverride(t *testing.T) {
	user := factors.NewCollection("user")
	user.Set("NATURAL_GAS", 180, factors.UnitCO2)

	p := params(room(t, "a"))
	p.CO2 = user
	_, seg, _, err := Assemble(p)
	require.NoError(t, err)
	gas, ok := seg.CO2.Get("NATURAL_GAS")
	require.True(t, ok)
	assert.Equal(t, 180.0, gas.Value)
	oil, _ := seg.CO2.Get("OIL")
	assert.Equal(t, 310.0, oil.Value)

	user.Set("UNOBTANIUM", 1, factors.UnitCO2)
	_, _, _, err = Assemble(p)
	assert.ErrorIs(t, err, diagnostics.FactorUnknownFuel)

	bad := factors.NewCollection("user source")
	bad.Set("UNOBTANIUM", 1, factors.UnitSource)
	p = params(room(t, "a"))
	p.Source = bad
	_, _, _, err = Assemble(p)
	assert.ErrorIs(t, err, diagnostics.FactorUnknownFuel)
}

func TestAssembleValidation(t *testing.T) {
	p := params(room(t, "a"))
	p.SetPoints.Winter = 0
	_, _, _, err := Assemble(p)
	assert.ErrorIs(t, err, diagnostics.InputInvalid)

	p = params(room(t, "a"))
	p.Name = ""
	_, _, _, err = Assemble(p)
	assert.ErrorIs(t, err, diagnostics.InputMissing)

	p = params(room(t, "a"))
	p.Site.Location.Latitude = 91
	_, _, _, err = Assemble(p)
	assert.ErrorIs(t, err, diagnostics.InputInvalid)

	p = params(room(t, "a"))
	p.NumDwellings = 12
	_, seg, _, err := Assemble(p)
	require.NoError(t, err)
	assert.Equal(t, 12, seg.NumDwellings())
	assert.NotNil(t, seg.Phius)
	assert.NotNil(t, seg.Phi)
}

func TestAssembleForwardsCoverageWarnings(t *testing.T) {
	sys := hotwater.NewSystem("dhw")
	require.NoError(t, sys.AddHeater(hotwater.Heater{Name: "hp", Type: hotwater.HeaterHeatPumpAnnual, Coverage: 0.6, Efficiency: 3}))
	p := params(room(t, "a"))
	p.HotWater = []*hotwater.System{sys}
	_, _, report, err := Assemble(p)
	require.NoError(t, err)
	assert.True(t, report.Has(diagnostics.HotWaterCoverageMismatch))
}

func TestExport(t *testing.T) {
	insulation, err := materials.NewMaterial("insulation", 0.09, 0.04, 30, 1400)
	require.NoError(t, err)
	wood, err := materials.NewMaterial("wood", 0.09, 0.13, 500, 1600)
	require.NoError(t, err)
	grid, err := materials.NewDivisionGrid([]float64{0.38, 0.038, 0.38}, []float64{2.44})
	require.NoError(t, err)
	require.NoError(t, grid.SetColumn(1, wood))
	wall, err := materials.NewOpaqueConstruction("stud wall", insulation.WithGrid(grid))
	require.NoError(t, err)

	frame, err := windows.NewUniformFrame("frame", windows.FrameElement{Width: 0.1, UFactor: 1.0, PsiGlazing: 0.04, PsiInstall: 0.03, Chi: 0.01})
	require.NoError(t, err)
	win, err := windows.NewConstruction("window", windows.Glazing{Name: "triple", UFactor: 0.8, GValue: 0.5}, frame)
	require.NoError(t, err)

	south := geometry.Pt(0, -1, 0)
	face := &model.Face{Name: "south", Geometry: geometry.Rectangle(geometry.Pt(0, 0, 0), south, 5, 3), Construction: wall}
	ap, err := model.NewAperture("w1", geometry.Rectangle(geometry.Pt(1, 0, 1), south, 1.2, 1.5), win, 0.1)
	require.NoError(t, err)
	ap, err = ap.WithShadingFactors(0.7, 0.5)
	require.NoError(t, err)

	r := room(t, "a").WithFaces(face, face)
	r, err = r.WithApertures(0, ap)
	require.NoError(t, err)

	heat, err := hvac.NewHeating(hvac.HeatingElectric, "panel", 1)
	require.NoError(t, err)
	p := params(r)
	p.HVAC = &hvac.Collection{Heating: []hvac.Heating{heat}}
	_, seg, _, err := Assemble(p)
	require.NoError(t, err)

	v, _, err := seg.Export()
	require.NoError(t, err)
	require.Len(t, v.Constructions, 1)
	layer := v.Constructions[0].Layers[0]
	assert.InDelta(t, 0.044286, layer.Conductivity, 1e-5)
	assert.Equal(t, []string{"insulation", "wood", "insulation"}, layer.Cells[0])

	require.Len(t, v.Apertures, 1)
	a := v.Apertures[0]
	assert.Equal(t, "window", a.Construction)
	assert.InDelta(t, 1.2, a.Width, 1e-9)
	assert.Equal(t, 0.7, a.WinterShading)
	assert.InDelta(t, 0.9578, a.Uw, 1e-3)
	assert.InDelta(t, 0.03*5.4+4*0.01, a.InstallLoss, 1e-12)
	assert.InDelta(t, 1.3/1.8, a.GlassRatio, 1e-12)
	assert.InDelta(t, 0.5*1.3/1.8, a.SHGC, 1e-12)
	// (Uw - Uf·(1 - r)) / r
	assert.InDelta(t, 1.224/1.3, a.GlazingUFactor, 1e-9)

	assert.Equal(t, []string{"panel (electric)"}, v.HVAC.Heating)
	assert.Len(t, v.CO2Factors, 7)
	assert.Equal(t, "Block A", v.Name)
}
