package materials

import (
	"fmt"

	"github.com/google/uuid"

	"ph_calc/diagnostics"
)

// Roughness of an opaque material's exposed surface.
type Roughness int

const (
	RoughnessVeryRough Roughness = iota
	RoughnessRough
	RoughnessMediumRough
	RoughnessMediumSmooth
	RoughnessSmooth
	RoughnessVerySmooth
)

func (r Roughness) String() string {
	return [...]string{"VeryRough", "Rough", "MediumRough", "MediumSmooth", "Smooth", "VerySmooth"}[r]
}

func RoughnessFromString(str string) (Roughness, error) {
	switch str {
	case "VeryRough":
		return RoughnessVeryRough, nil
	case "Rough":
		return RoughnessRough, nil
	case "MediumRough", "":
		return RoughnessMediumRough, nil
	case "MediumSmooth":
		return RoughnessMediumSmooth, nil
	case "Smooth":
		return RoughnessSmooth, nil
	case "VerySmooth":
		return RoughnessVerySmooth, nil
	default:
		return 0, diagnostics.Errorf(diagnostics.InputInvalid, str, "invalid roughness")
	}
}

// Material is an opaque layer material.
type Material struct {
	ID                 string
	Name               string
	Thickness          float64   // m
	Conductivity       float64   // W/mK
	Density            float64   // kg/m3
	SpecificHeat       float64   // J/kgK
	Roughness          Roughness // surface roughness
	ThermalAbsorptance float64   // -
	SolarAbsorptance   float64   // -
	VisibleAbsorptance float64   // -
	Grid               *DivisionGrid
}

/*
NewMaterial builds a homogeneous material with default absorptances.

	Args:
		name: display name
		thickness: m
		conductivity: W/mK
		density: kg/m3
		specificHeat: J/kgK
*/
func NewMaterial(name string, thickness, conductivity, density, specificHeat float64) (*Material, error) {
	m := &Material{
		ID:                 uuid.NewString(),
		Name:               name,
		Thickness:          thickness,
		Conductivity:       conductivity,
		Density:            density,
		SpecificHeat:       specificHeat,
		Roughness:          RoughnessMediumRough,
		ThermalAbsorptance: 0.9,
		SolarAbsorptance:   0.7,
		VisibleAbsorptance: 0.7,
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate checks the declared domains of the material's properties.
func (m *Material) Validate() error {
	switch {
	case m.Thickness <= 0:
		return diagnostics.Errorf(diagnostics.InputInvalid, m.Name, "thickness must be > 0, got %g m", m.Thickness)
	case m.Conductivity <= 0:
		return diagnostics.Errorf(diagnostics.InputInvalid, m.Name, "conductivity must be > 0, got %g W/mK", m.Conductivity)
	case m.Density < 0:
		return diagnostics.Errorf(diagnostics.InputInvalid, m.Name, "density must be >= 0, got %g", m.Density)
	case m.SpecificHeat < 0:
		return diagnostics.Errorf(diagnostics.InputInvalid, m.Name, "specific heat must be >= 0, got %g", m.SpecificHeat)
	}
	for _, a := range []float64{m.ThermalAbsorptance, m.SolarAbsorptance, m.VisibleAbsorptance} {
		if a < 0 || a > 1 {
			return diagnostics.Errorf(diagnostics.InputInvalid, m.Name, "absorptance must be within [0, 1], got %g", a)
		}
	}
	return nil
}

// Clone returns an independent copy. The division grid is shared, it is
// read-only once attached.
func (m *Material) Clone() *Material {
	c := *m
	return &c
}

// IsHeterogeneous reports whether the material carries a division grid.
func (m *Material) IsHeterogeneous() bool {
	return m.Grid != nil && m.Grid.CellCount() > 0
}

// WithGrid returns a copy of m carrying the division grid g.
func (m *Material) WithGrid(g *DivisionGrid) *Material {
	c := m.Clone()
	c.Grid = g
	return c
}

// EffectiveConductivity returns λ for homogeneous materials and λ_eq for
// heterogeneous ones.
func (m *Material) EffectiveConductivity(report *diagnostics.Report) (float64, error) {
	if !m.IsHeterogeneous() {
		return m.Conductivity, nil
	}
	return EquivalentConductivity(m.Grid, m, report)
}

// RValue returns the layer's thermal resistance, m2K/W.
func (m *Material) RValue(report *diagnostics.Report) (float64, error) {
	k, err := m.EffectiveConductivity(report)
	if err != nil {
		return 0, err
	}
	return m.Thickness / k, nil
}

func (m *Material) String() string {
	return fmt.Sprintf("%s (%.4g m, %.4g W/mK)", m.Name, m.Thickness, m.Conductivity)
}
