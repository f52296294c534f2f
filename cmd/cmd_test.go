package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ph_calc/diagnostics"
)

const project = `
name: Row houses
num_floors: 2
materials:
  - name: insulation
    thickness: "0.09"
    conductivity: "0.04"
    grid:
      columns: ["0.38", "0.038", "0.38"]
      rows: ["2.44"]
      column_materials: {1: wood}
  - name: wood
    thickness: "0.09"
    conductivity: "0.13"
constructions:
  - name: stud wall
    layers: [insulation]
frames:
  - {name: frame, width: "0.1", u_factor: "1.0", psi_glazing: "0.04", psi_install: "0.03"}
glazings:
  - {name: triple, u_factor: "0.8", g_value: 0.5}
windows:
  - {name: window, glazing: triple, frame: frame}
thermal_bridges:
  - {name: party wall, psi: "0.05", frsi: 0.9, points: [[0, 0, 0], [0, 0, 6]]}
rooms:
  - name: unit 1
    story: ground
    people: {bedrooms: 2}
    thermal_bridges: [party wall]
    spaces:
      - {name: living, floor_segments: [{area: 1000 ft2}]}
    faces:
      - name: south
        construction: stud wall
        origin: [0, 0, 0]
        normal: [0, -1, 0]
        width: "6"
        height: "3"
        apertures:
          - {name: w1, window: window, origin: [1, 0, 1], width: "1.2", height: "1.5"}
  - name: unit 2
    story: upper
    people: {bedrooms: 3}
    thermal_bridges: [party wall]
    spaces:
      - {name: living, floor_segments: [{area: 1000 ft2}]}
  - name: office
    story: ground
    people: {not_dwelling_unit: true}
    spaces:
      - {name: desk area, number: "001", program: Office - Open Plan, floor_segments: [{area: 500 ft2}]}
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "project.yaml")
	require.NoError(t, os.WriteFile(path, []byte(project), 0o600))

	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(append(args, "--project", path, "--log-level", "error"))
	err := root.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "phcalc v"+Version+"\n", out)
}

func TestMFLoads(t *testing.T) {
	out, err := run(t, "mf-loads", "--cpus", "2")
	require.NoError(t, err)
	tables := strings.Split(out, "\n\n")
	require.Len(t, tables, 3)
	assert.True(t, strings.HasPrefix(tables[0], "story,floor_area_ft2,num_dwellings,num_bedrooms\nground,"))
	assert.Contains(t, tables[0], "\nupper,")
	assert.True(t, strings.HasPrefix(tables[2], "LPD_W_ft2,"))
	assert.Contains(t, tables[2], "0.61,250,10,2.8,")
}

func TestHetero(t *testing.T) {
	out, err := run(t, "hetero")
	require.NoError(t, err)
	assert.Contains(t, out, "stud wall")
	assert.Contains(t, out, "0.044286")
	assert.Contains(t, out, "3x1")
}

func TestWindowUw(t *testing.T) {
	out, err := run(t, "window-uw")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "w1")
	assert.Contains(t, lines[1], "0.9578")
	// install loss 0.03 W/mK over 5.4 m, SHGC 0.5·1.3/1.8
	assert.Contains(t, lines[1], "0.1620")
	assert.Contains(t, lines[1], "0.3611")
}

func TestShadingUnobstructed(t *testing.T) {
	out, err := run(t, "shading", "--grid-size", "0.3")
	require.NoError(t, err)
	assert.Contains(t, out, "w1")
	assert.Contains(t, out, "1.0000  1.0000")
}

func TestSegment(t *testing.T) {
	out, err := run(t, "segment")
	require.NoError(t, err)
	assert.Contains(t, out, "Row houses")
	assert.Contains(t, out, "Dwellings:")
	assert.Contains(t, out, "0.300 W/K")
	assert.NotContains(t, out, "Phius:")

	out, err = run(t, "segment", "--heating-demand", "100")
	require.NoError(t, err)
	assert.Contains(t, out, "Phius: FAILS heating demand")

	out, err = run(t, "segment", "--heating-demand", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Phius: PASS")
}

func TestMissingProject(t *testing.T) {
	root := NewRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"segment"})
	err := root.Execute()
	assert.ErrorIs(t, err, diagnostics.InputMissing)
}
