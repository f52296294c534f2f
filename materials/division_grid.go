package materials

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"ph_calc/diagnostics"
)

// MaxConductivity is the largest λ the isothermal-planes method accepts,
// W/mK. Steel studs and other metals are outside its validity.
const MaxConductivity = 10.0

// ThicknessTolerance is the allowed difference between a cell material's
// thickness and the base thickness, m.
const ThicknessTolerance = 0.001

// CellIndex addresses one grid cell.
type CellIndex struct {
	Col int
	Row int
}

// DivisionGrid divides a heterogeneous layer into columns (x, m) and rows
// (y, m); each cell may carry its own material.
type DivisionGrid struct {
	colWidths  []float64 // m
	rowHeights []float64 // m
	cells      map[CellIndex]*Material
}

// NewDivisionGrid builds an empty grid. All widths and heights must be > 0.
func NewDivisionGrid(colWidths, rowHeights []float64) (*DivisionGrid, error) {
	if len(colWidths) == 0 || len(rowHeights) == 0 {
		return nil, diagnostics.Errorf(diagnostics.InputInvalid, "division grid", "grid needs at least one column and one row")
	}
	for _, v := range append(append([]float64{}, colWidths...), rowHeights...) {
		if !(v > 0) {
			return nil, diagnostics.Errorf(diagnostics.InputInvalid, "division grid", "column widths and row heights must be > 0, got %g", v)
		}
	}
	return &DivisionGrid{
		colWidths:  append([]float64(nil), colWidths...),
		rowHeights: append([]float64(nil), rowHeights...),
		cells:      make(map[CellIndex]*Material),
	}, nil
}

// Columns returns a copy of the column widths, m.
func (g *DivisionGrid) Columns() []float64 { return append([]float64(nil), g.colWidths...) }

// Rows returns a copy of the row heights, m.
func (g *DivisionGrid) Rows() []float64 { return append([]float64(nil), g.rowHeights...) }

// CellCount returns |cols|·|rows|.
func (g *DivisionGrid) CellCount() int {
	return len(g.colWidths) * len(g.rowHeights)
}

// SetCell assigns material m to cell (col, row).
func (g *DivisionGrid) SetCell(col, row int, m *Material) error {
	if col < 0 || col >= len(g.colWidths) || row < 0 || row >= len(g.rowHeights) {
		return diagnostics.Errorf(diagnostics.InputInvalid, "division grid",
			"cell (%d, %d) is outside the %dx%d grid", col, row, len(g.colWidths), len(g.rowHeights))
	}
	if m == nil {
		delete(g.cells, CellIndex{Col: col, Row: row})
		return nil
	}
	g.cells[CellIndex{Col: col, Row: row}] = m
	return nil
}

// SetColumn assigns m to every cell of the column.
func (g *DivisionGrid) SetColumn(col int, m *Material) error {
	for row := range g.rowHeights {
		if err := g.SetCell(col, row, m); err != nil {
			return err
		}
	}
	return nil
}

// Cell resolves cell (col, row); unassigned cells resolve to base.
func (g *DivisionGrid) Cell(col, row int, base *Material) *Material {
	if m, ok := g.cells[CellIndex{Col: col, Row: row}]; ok {
		return m
	}
	return base
}

// Cell describes one resolved grid cell, for exporters that keep the
// cell geometry.
type Cell struct {
	Col      int
	Row      int
	Width    float64 // m
	Height   float64 // m
	Material *Material
}

// Cells lists every cell in row-major order with its resolved material.
func (g *DivisionGrid) Cells(base *Material) []Cell {
	out := make([]Cell, 0, g.CellCount())
	for r, h := range g.rowHeights {
		for c, w := range g.colWidths {
			out = append(out, Cell{Col: c, Row: r, Width: w, Height: h, Material: g.Cell(c, r, base)})
		}
	}
	return out
}

// Materials returns the distinct explicitly assigned materials, sorted by name.
func (g *DivisionGrid) Materials() []*Material {
	seen := make(map[*Material]bool)
	var out []*Material
	for _, m := range g.cells {
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// AreaFractions returns each resolved material's share of the grid area,
// keyed by material name.
func (g *DivisionGrid) AreaFractions(base *Material) map[string]float64 {
	total := floats.Sum(g.colWidths) * floats.Sum(g.rowHeights)
	out := make(map[string]float64)
	for _, c := range g.Cells(base) {
		out[c.Material.Name] += c.Width * c.Height / total
	}
	return out
}

// checkCells validates every resolved material and records thickness
// mismatches on report.
func (g *DivisionGrid) checkCells(base *Material, report *diagnostics.Report) error {
	warned := make(map[*Material]bool)
	for _, c := range g.Cells(base) {
		m := c.Material
		if m.Conductivity > MaxConductivity {
			return diagnostics.Errorf(diagnostics.HeteroConductivityHigh, m.Name,
				"conductivity %g W/mK exceeds %g W/mK; the isothermal-planes method is not valid for metal studs",
				m.Conductivity, MaxConductivity)
		}
		if !(m.Conductivity > 0) {
			return diagnostics.Errorf(diagnostics.InputInvalid, m.Name, "conductivity must be > 0")
		}
		if m != base && !warned[m] && math.Abs(m.Thickness-base.Thickness) > ThicknessTolerance {
			warned[m] = true
			report.Warn(diagnostics.HeteroThicknessMismatch, m.Name,
				"thickness %.4f m differs from base %.4f m by more than %g m; base thickness is used",
				m.Thickness, base.Thickness, ThicknessTolerance)
		}
	}
	return nil
}

/*
EquivalentConductivity computes λ_eq of a heterogeneous layer with the
isothermal-planes method (ISO-6946 upper bound).

	Args:
		g: division grid
		base: base material; unassigned cells resolve to it and its
			thickness d is used for every cell
		report: receives Hetero.ThicknessMismatch warnings
	Returns:
		equivalent conductivity, W/mK
	Notes:
		g_rc = λ_rc / d
		G_r  = Σ_c g_rc·w_c / Σ_c w_c
		R    = Σ_r (1/G_r)·h_r / Σ_r h_r
		λ_eq = d / R
*/
func EquivalentConductivity(g *DivisionGrid, base *Material, report *diagnostics.Report) (float64, error) {
	if base == nil {
		return 0, diagnostics.Errorf(diagnostics.InputMissing, "division grid", "base material is required")
	}
	if !(base.Thickness > 0) {
		return 0, diagnostics.Errorf(diagnostics.InputInvalid, base.Name, "base thickness must be > 0")
	}
	if err := g.checkCells(base, report); err != nil {
		return 0, err
	}

	d := base.Thickness

	// row resistances, m2K/W
	rs := make([]float64, len(g.rowHeights))
	gs := make([]float64, len(g.colWidths))
	for r := range g.rowHeights {
		for c := range g.colWidths {
			gs[c] = g.Cell(c, r, base).Conductivity / d
		}
		rs[r] = 1.0 / stat.Mean(gs, g.colWidths)
	}

	return d / stat.Mean(rs, g.rowHeights), nil
}

// cellAreaWeights returns conductivities and area weights in row-major order.
func (g *DivisionGrid) cellAreaWeights(base *Material) ([]float64, []float64) {
	cells := g.Cells(base)
	ks := make([]float64, len(cells))
	ws := make([]float64, len(cells))
	for i, c := range cells {
		ks[i] = c.Material.Conductivity
		ws[i] = c.Width * c.Height
	}
	return ks, ws
}

// ParallelConductivity is the area-weighted arithmetic mean of the cell
// conductivities, W/mK: the upper bound of λ_eq.
func ParallelConductivity(g *DivisionGrid, base *Material) float64 {
	ks, ws := g.cellAreaWeights(base)
	return stat.Mean(ks, ws)
}

// SeriesConductivity is the area-weighted harmonic mean of the cell
// conductivities, W/mK: the lower bound of λ_eq.
func SeriesConductivity(g *DivisionGrid, base *Material) float64 {
	ks, ws := g.cellAreaWeights(base)
	return stat.HarmonicMean(ks, ws)
}
