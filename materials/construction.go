package materials

import (
	"github.com/google/uuid"

	"ph_calc/diagnostics"
)

// Surface heat-transfer resistances for walls, m2K/W (ISO-6946 table 7).
const (
	RsiWall = 0.13
	RseWall = 0.04
)

// OpaqueConstruction is an ordered stack of materials, outside to inside.
type OpaqueConstruction struct {
	ID     string
	Name   string
	layers []*Material
}

// NewOpaqueConstruction copies the layers into a new construction. Layers
// are cloned so later edits to the inputs do not leak in.
func NewOpaqueConstruction(name string, layers ...*Material) (*OpaqueConstruction, error) {
	if len(layers) == 0 {
		return nil, diagnostics.Errorf(diagnostics.InputMissing, name, "construction needs at least one layer")
	}
	c := &OpaqueConstruction{ID: uuid.NewString(), Name: name}
	for _, l := range layers {
		if l == nil {
			return nil, diagnostics.Errorf(diagnostics.InputMissing, name, "nil layer")
		}
		if err := l.Validate(); err != nil {
			return nil, err
		}
		c.layers = append(c.layers, l.Clone())
	}
	return c, nil
}

// Layers returns the layers, outside to inside.
func (c *OpaqueConstruction) Layers() []*Material {
	out := make([]*Material, len(c.layers))
	for i, l := range c.layers {
		out[i] = l.Clone()
	}
	return out
}

// Thickness returns the total thickness, m.
func (c *OpaqueConstruction) Thickness() float64 {
	var t float64
	for _, l := range c.layers {
		t += l.Thickness
	}
	return t
}

// RValue returns the material-only resistance, m2K/W. Heterogeneous layers
// contribute d / λ_eq.
func (c *OpaqueConstruction) RValue(report *diagnostics.Report) (float64, error) {
	var r float64
	for _, l := range c.layers {
		lr, err := l.RValue(report)
		if err != nil {
			return 0, err
		}
		r += lr
	}
	return r, nil
}

/*
UValue returns the surface-to-surface transmittance including films.

	Args:
		rsi: inside surface resistance, m2K/W
		rse: outside surface resistance, m2K/W
	Returns:
		U-value, W/m2K
*/
func (c *OpaqueConstruction) UValue(rsi, rse float64, report *diagnostics.Report) (float64, error) {
	r, err := c.RValue(report)
	if err != nil {
		return 0, err
	}
	return 1.0 / (r + rsi + rse), nil
}

// Catalog collects the distinct materials of the constructions, including
// the cell materials of division grids, keyed by name.
func Catalog(constructions ...*OpaqueConstruction) map[string]*Material {
	out := make(map[string]*Material)
	for _, c := range constructions {
		for _, l := range c.layers {
			if _, ok := out[l.Name]; !ok {
				out[l.Name] = l
			}
			if l.Grid == nil {
				continue
			}
			for _, m := range l.Grid.Materials() {
				if _, ok := out[m.Name]; !ok {
					out[m.Name] = m
				}
			}
		}
	}
	return out
}
