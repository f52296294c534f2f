// Package bridges models linear thermal bridges and the de-duplicated
// thermal-bridge table of a building segment.
package bridges

import (
	"github.com/google/uuid"

	"ph_calc/diagnostics"
	"ph_calc/geometry"
)

// GroupType is the exchange-format group of a thermal bridge.
type GroupType int

const (
	GroupAmbient   GroupType = 15
	GroupPerimeter GroupType = 16
	GroupUnderslab GroupType = 17
)

func (g GroupType) String() string {
	switch g {
	case GroupAmbient:
		return "15:Ambient"
	case GroupPerimeter:
		return "16:Perimeter"
	case GroupUnderslab:
		return "17:FS/BC"
	default:
		return "unknown"
	}
}

func GroupTypeFromString(str string) (GroupType, error) {
	switch str {
	case "15:Ambient", "15", "ambient", "":
		return GroupAmbient, nil
	case "16:Perimeter", "16", "perimeter":
		return GroupPerimeter, nil
	case "17:FS/BC", "17", "underslab":
		return GroupUnderslab, nil
	default:
		return 0, diagnostics.Errorf(diagnostics.InputInvalid, str, "invalid thermal-bridge group type")
	}
}

// ThermalBridge is a linear thermal bridge. It is immutable after
// construction; Duplicate keeps the identifier.
type ThermalBridge struct {
	id          string
	DisplayName string
	geometry    geometry.Curve
	Psi         float64 // W/mK
	FRsi        float64 // -
	Quantity    float64 // -
	Group       GroupType
}

/*
New builds a thermal bridge with a fresh identifier.

	Args:
		name: display name
		geom: bridge geometry (segment or polyline); its length is the bridge length
		psi: linear transmittance, W/mK
		fRsi: temperature factor, -
		quantity: number of occurrences, -
*/
func New(name string, geom geometry.Curve, psi, fRsi, quantity float64, group GroupType) (*ThermalBridge, error) {
	if geom == nil {
		return nil, diagnostics.Errorf(diagnostics.InputMissing, name, "thermal bridge needs a geometry")
	}
	if quantity < 0 {
		return nil, diagnostics.Errorf(diagnostics.InputInvalid, name, "quantity must be >= 0, got %g", quantity)
	}
	if fRsi < 0 || fRsi > 1 {
		return nil, diagnostics.Errorf(diagnostics.InputInvalid, name, "fRsi must be within [0, 1], got %g", fRsi)
	}
	return &ThermalBridge{
		id:          uuid.NewString(),
		DisplayName: name,
		geometry:    geom,
		Psi:         psi,
		FRsi:        fRsi,
		Quantity:    quantity,
		Group:       group,
	}, nil
}

// ID returns the bridge identifier.
func (tb *ThermalBridge) ID() string { return tb.id }

// Geometry returns the bridge geometry.
func (tb *ThermalBridge) Geometry() geometry.Curve { return tb.geometry }

// Length returns the geometry length, m.
func (tb *ThermalBridge) Length() float64 { return tb.geometry.Length() }

// HeatLoss returns ψ·L·quantity, W/K.
func (tb *ThermalBridge) HeatLoss() float64 {
	return tb.Psi * tb.Length() * tb.Quantity
}

// Duplicate returns a copy sharing the identifier.
func (tb *ThermalBridge) Duplicate() *ThermalBridge {
	d := *tb
	return &d
}

// Table is a set of thermal bridges unique by identifier, in first-insert
// order.
type Table struct {
	order []string
	byID  map[string]*ThermalBridge
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{byID: make(map[string]*ThermalBridge)}
}

// Add inserts tb unless a bridge with the same identifier is present.
// It reports whether tb was inserted.
func (t *Table) Add(tb *ThermalBridge) bool {
	if _, ok := t.byID[tb.id]; ok {
		return false
	}
	t.byID[tb.id] = tb
	t.order = append(t.order, tb.id)
	return true
}

// Get returns the bridge with identifier id.
func (t *Table) Get(id string) (*ThermalBridge, bool) {
	tb, ok := t.byID[id]
	return tb, ok
}

// Len returns the number of unique bridges.
func (t *Table) Len() int { return len(t.order) }

// All returns the bridges in first-insert order.
func (t *Table) All() []*ThermalBridge {
	out := make([]*ThermalBridge, len(t.order))
	for i, id := range t.order {
		out[i] = t.byID[id]
	}
	return out
}

// HeatLoss returns Σ ψ·L·quantity over the table, W/K.
func (t *Table) HeatLoss() float64 {
	var h float64
	for _, tb := range t.All() {
		h += tb.HeatLoss()
	}
	return h
}
