package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ph_calc/bldgsegment"
	"ph_calc/diagnostics"
	"ph_calc/units"
	"ph_calc/windows"
)

const projectYAML = `
name: Block A
num_floors: 2
set_points:
  winter: 68 F
  summer: "25"
site:
  latitude: 40.7
  longitude: -74
  time_zone: -5
  elevation: 30 ft
  climate_zone: 4A
  climate_csv: climate.csv
certification:
  phius:
    program: PHIUS 2021 CORE
    heating_demand: 4.5
  phi:
    criteria: enerphit
factors:
  co2:
    NATURAL_GAS: 180
materials:
  - name: insulation
    thickness: 90 mm
    conductivity: "0.04"
    density: 30
    specific_heat: 1400
    grid:
      columns: [380 mm, 38 mm, 380 mm]
      rows: ["2.44"]
      column_materials: {1: wood}
  - name: wood
    thickness: 90 mm
    conductivity: 0.13
    density: 500
    specific_heat: 1600
constructions:
  - name: stud wall
    layers: [insulation]
frames:
  - name: frame
    width: "0.1"
    u_factor: "1.0"
    psi_glazing: 0.04
glazings:
  - name: triple
    u_factor: 0.8
    g_value: 0.5
windows:
  - name: window
    glazing: triple
    frame: frame
thermal_bridges:
  - name: balcony
    psi: 0.1
    frsi: 0.8
    points: [[0, 0, 0], [4, 0, 0]]
rooms:
  - name: living
    story: "1"
    floor_area: 500 ft2
    people: {bedrooms: 1, dwelling: unit 1}
    thermal_bridges: [balcony]
    faces:
      - name: south wall
        construction: stud wall
        origin: [0, 0, 0]
        normal: [0, -1, 0]
        width: "5"
        height: "3"
        apertures:
          - name: w1
            window: window
            origin: [1, 0, 1]
            width: "1.2"
            height: "1.5"
            install_depth: 4 in
            overhang: {depth: "0.5", gap: "0.1"}
  - name: bedroom
    story: "1"
    people: {bedrooms: 1, dwelling: unit 1}
    thermal_bridges: [balcony]
    spaces:
      - name: bed
        number: "101"
        floor_segments:
          - area: "12"
          - area: "4"
            weighting: 0.5
hot_water:
  - name: dhw
    heaters:
      - {name: hp, type: heat_pump_annual, coverage: 1, efficiency: 3}
    tanks:
      - {name: main, volume: 200, standby_loss_rate: 1.5}
    trunks:
      - name: trunk
        diameter: 0.75 in
        points: [[0, 0, 0], [6, 0, 0]]
        branches:
          - name: branch
            diameter: 0.5 in
            points: [[6, 0, 0], [6, 2, 0]]
            fixtures:
              - {name: sink, diameter: 0.5 in, points: [[6, 2, 0], [6, 3, 0]]}
              - {name: shower, diameter: 0.5 in, points: [[6, 2, 0], [7, 2, 0]]}
hvac:
  heating:
    - {name: panel, type: electric, coverage: 1}
shading:
  sky: reinhart
  context:
    - name: fence
      season: summer
      origin: [0, -3, 0]
      normal: [0, -1, 0]
      width: "5"
      height: "1"
`

func monthlyCSV() string {
	var b strings.Builder
	b.WriteString("month,air_temp,dew_point,sky_temp,ground_temp,rad_north,rad_east,rad_south,rad_west,rad_global\n")
	for m := 1; m <= 12; m++ {
		fmt.Fprintf(&b, "%d,%d,%d,%d,8,10,20,40,20,50\n", m, m, m-5, m-15)
	}
	return b.String()
}

func writeProject(t *testing.T, doc string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "climate.csv"), []byte(monthlyCSV()), 0o600))
	path := filepath.Join(dir, "project.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))
	return path
}

func TestBuildProject(t *testing.T) {
	p, err := Load(writeProject(t, projectYAML))
	require.NoError(t, err)
	b, report, err := p.Build()
	require.NoError(t, err)
	assert.Equal(t, 0, report.Len())

	seg := b.Segment
	assert.InDelta(t, 20.0, seg.SetPoints.Winter, 1e-9)
	assert.InDelta(t, 30*units.FtToM, seg.Site.Location.Elevation, 1e-9)
	assert.Equal(t, 12.0, seg.Site.Climate.AirTemp[11])
	assert.Equal(t, "climate.csv", seg.Site.Location.Source)
	assert.Equal(t, "enerphit", seg.Phi.Criteria.String())
	assert.InDelta(t, 4.5*units.KBtuFt2ToKWhM2, seg.Phius.Thresholds.HeatingDemand, 1e-9)

	require.Len(t, seg.Rooms, 2)
	living, bedroom := seg.Rooms[0], seg.Rooms[1]
	assert.InDelta(t, 500/units.M2ToFt2, living.FloorArea, 1e-9)
	assert.Equal(t, 16.0, bedroom.FloorArea)
	assert.Same(t, living.People.Dwelling, bedroom.People.Dwelling)

	require.Len(t, b.Constructions, 1)
	k, err := b.Constructions[0].Layers()[0].EffectiveConductivity(nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.044286, k, 1e-5)

	aps := living.Apertures()
	require.Len(t, aps, 1)
	uw, err := aps[0].Uw()
	require.NoError(t, err)
	assert.InDelta(t, 0.9578, uw, 1e-3)
	assert.InDelta(t, 0.1016, aps[0].InstallDepth, 1e-9)

	sys := seg.HotWater[0]
	assert.Equal(t, 2, sys.TapCount())
	assert.InDelta(t, 6.0, sys.TotalPipeLength().Trunk, 1e-9)

	assert.Len(t, b.Shading.Apertures, 1)
	assert.Equal(t, 2, b.Shading.WinterShade.Len())
	assert.Equal(t, 4, b.Shading.SummerShade.Len())
	assert.Equal(t, 578, b.Shading.WinterSky.Len())

	rooms, s, _, err := bldgsegment.Assemble(seg)
	require.NoError(t, err)
	assert.Len(t, rooms, 2)
	assert.Equal(t, 1, s.Bridges.Len())
	assert.Equal(t, 1, s.NumDwellings())
	gas, _ := s.CO2.Get("NATURAL_GAS")
	assert.Equal(t, 180.0, gas.Value)
}

func hourlyCSV(humidity string) string {
	var b strings.Builder
	b.WriteString("temperature,normal_direct_solar_radiation,horizontal_sky_solar_radiation,absolute_humidity\n")
	for i := 0; i < 8760; i++ {
		fmt.Fprintf(&b, "10,0,50,%s\n", humidity)
	}
	return b.String()
}

func TestBuildFromWeatherFile(t *testing.T) {
	doc := strings.Replace(projectYAML, "climate_csv: climate.csv", "weather_csv: weather.csv", 1)
	path := writeProject(t, doc)
	weather := filepath.Join(filepath.Dir(path), "weather.csv")
	require.NoError(t, os.WriteFile(weather, []byte(hourlyCSV("5")), 0o600))

	p, err := Load(path)
	require.NoError(t, err)
	b, _, err := p.Build()
	require.NoError(t, err)

	c := b.Segment.Site.Climate
	assert.Equal(t, "weather.csv", b.Segment.Site.Location.Source)
	assert.InDelta(t, 10.0, c.AirTemp[0], 1e-9)
	assert.InDelta(t, 10.0, c.GroundTemp[6], 1e-9)
	assert.Less(t, c.DewPoint[0], 10.0)
	assert.Less(t, c.SkyTemp[0], c.DewPoint[0])
	assert.InDelta(t, 50*744/1000.0, c.Radiation.Global[0], 1e-6)

	require.NoError(t, os.WriteFile(weather, []byte(hourlyCSV("0")), 0o600))
	_, _, err = p.Build()
	assert.ErrorIs(t, err, diagnostics.InputMissing)
}

func TestBuildFrameAndGlassTypes(t *testing.T) {
	doc := strings.Replace(projectYAML, "    u_factor: \"1.0\"\n    psi_glazing: 0.04", "    frame_type: wood\n    psi_glazing: 0.04", 1)
	doc = strings.Replace(doc, "    g_value: 0.5\n", "    g_value: 0.5\n    glass_type: single\n", 1)
	require.NotEqual(t, projectYAML, doc)

	p, err := Load(writeProject(t, doc))
	require.NoError(t, err)
	b, _, err := p.Build()
	require.NoError(t, err)

	require.Len(t, b.Windows, 1)
	w := b.Windows[0]
	assert.Equal(t, windows.FrameTypeWood.DefaultUFactor(), w.Frame.Element(windows.SideLeft).UFactor)
	assert.Equal(t, windows.GlassTypeSingle, w.Glazing.Type())

	doc = strings.Replace(doc, "frame_type: wood", "frame_type: bamboo", 1)
	p, err = Load(writeProject(t, doc))
	require.NoError(t, err)
	_, _, err = p.Build()
	assert.ErrorIs(t, err, diagnostics.InputInvalid)
}

func TestBuildErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		old  string
		new  string
		kind diagnostics.Kind
	}{
		{"unknown construction", "construction: stud wall", "construction: brick wall", diagnostics.InputMissing},
		{"unknown bridge", "thermal_bridges: [balcony]", "thermal_bridges: [corner]", diagnostics.InputMissing},
		{"bad unit", "thickness: 90 mm", "thickness: 90 furlongs", diagnostics.InputUnitUnrecognized},
		{"bad face type", "name: south wall", "name: south wall\n        type: ceiling", diagnostics.InputInvalid},
		{"bad program", "name: bed\n", "name: bed\n        program: Bowling Alley\n", diagnostics.InputInvalid},
		{"missing climate file", "climate_csv: climate.csv", "climate_csv: nowhere.csv", diagnostics.InputInvalid},
	} {
		t.Run(tc.name, func(t *testing.T) {
			doc := strings.Replace(projectYAML, tc.old, tc.new, 1)
			require.NotEqual(t, projectYAML, doc)
			p, err := Load(writeProject(t, doc))
			require.NoError(t, err)
			_, _, err = p.Build()
			assert.ErrorIs(t, err, tc.kind)
		})
	}
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("rooms: [name: {"), ".")
	assert.ErrorIs(t, err, diagnostics.InputInvalid)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLogReport(t *testing.T) {
	var buf bytes.Buffer
	report := diagnostics.NewReport()
	report.Warn(diagnostics.PhiusSingleStory, "Block A", "only one story")

	LogReport(zerolog.New(&buf), "phius", report)
	out := buf.String()
	assert.Contains(t, out, `"level":"warn"`)
	assert.Contains(t, out, `"kind":"Phius.SingleStory"`)
	assert.Contains(t, out, `"subject":"Block A"`)
	assert.Contains(t, out, `"message":"only one story"`)

	buf.Reset()
	LogReport(zerolog.New(&buf), "phius", nil)
	assert.Empty(t, buf.String())
}

func TestInitLogger(t *testing.T) {
	InitLogger("debug")
	assert.Equal(t, zerolog.DebugLevel, Logger.GetLevel())
	InitLogger("nonsense")
	assert.Equal(t, zerolog.InfoLevel, Logger.GetLevel())
}
