// Package factors holds per-fuel conversion factors (source energy, CO2e)
// keyed by normalized fuel name.
package factors

import (
	"sort"
	"strings"

	"ph_calc/diagnostics"
)

// Fuels is the allow-list of fuel names a factor may be keyed by.
var Fuels = []string{
	"OIL",
	"NATURAL_GAS",
	"LPG",
	"HARD_COAL",
	"WOOD",
	"WOOD_LOG",
	"WOOD_PELLET",
	"BIOGAS",
	"ELECTRICITY_MIX",
	"ELECTRICITY_PV",
	"ELECTRICITY_HYDRO",
	"DISTRICT_HEAT_GAS",
	"DISTRICT_HEAT_OIL",
	"DISTRICT_HEAT_COAL",
	"DISTRICT_HEAT_WOOD",
	"DISTRICT_HEAT_CHP",
}

var allowed = func() map[string]bool {
	m := make(map[string]bool, len(Fuels))
	for _, f := range Fuels {
		m[f] = true
	}
	return m
}()

// Normalize upper-cases name and replaces spaces and dashes with underscores.
func Normalize(name string) string {
	s := strings.ToUpper(strings.TrimSpace(name))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(s)
}

// Known reports whether name is on the allow-list after normalization.
func Known(name string) bool {
	return allowed[Normalize(name)]
}

// Factor is one fuel's conversion factor.
type Factor struct {
	Fuel  string
	Value float64
	Unit  string
}

// Collection is an insertion-ordered set of factors, unique by fuel.
type Collection struct {
	Name  string
	order []string
	byKey map[string]Factor
}

func NewCollection(name string) *Collection {
	return &Collection{Name: name, byKey: make(map[string]Factor)}
}

// Set adds or overwrites the factor of fuel. An overwrite keeps the original
// position.
func (c *Collection) Set(fuel string, value float64, unit string) {
	key := Normalize(fuel)
	if _, ok := c.byKey[key]; !ok {
		c.order = append(c.order, key)
	}
	c.byKey[key] = Factor{Fuel: key, Value: value, Unit: unit}
}

// Get looks up a fuel by any spelling that normalizes to its key.
func (c *Collection) Get(fuel string) (Factor, bool) {
	f, ok := c.byKey[Normalize(fuel)]
	return f, ok
}

func (c *Collection) Len() int {
	return len(c.order)
}

// All returns the factors in insertion order.
func (c *Collection) All() []Factor {
	out := make([]Factor, 0, len(c.order))
	for _, k := range c.order {
		out = append(out, c.byKey[k])
	}
	return out
}

// Copy returns an independent collection.
func (c *Collection) Copy() *Collection {
	out := NewCollection(c.Name)
	for _, f := range c.All() {
		out.Set(f.Fuel, f.Value, f.Unit)
	}
	return out
}

// Merge returns a copy of c overlaid with other; other's values win.
func (c *Collection) Merge(other *Collection) *Collection {
	out := c.Copy()
	if other == nil {
		return out
	}
	for _, f := range other.All() {
		out.Set(f.Fuel, f.Value, f.Unit)
	}
	return out
}

// Validate fails with Factor.UnknownFuel on the first fuel not on the
// allow-list. Unknown fuels are reported in sorted order.
func (c *Collection) Validate() error {
	var unknown []string
	for _, k := range c.order {
		if !allowed[k] {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return diagnostics.Errorf(diagnostics.FactorUnknownFuel, unknown[0],
		"%s: fuel not in allow-list (%d unknown: %s)", c.Name, len(unknown), strings.Join(unknown, ", "))
}

const (
	UnitSource = "kWh/kWh"
	UnitCO2    = "g/kWh"
)

var phius2021Source = []Factor{
	{"OIL", 1.1, UnitSource},
	{"NATURAL_GAS", 1.1, UnitSource},
	{"LPG", 1.1, UnitSource},
	{"HARD_COAL", 1.1, UnitSource},
	{"WOOD", 1.1, UnitSource},
	{"ELECTRICITY_MIX", 2.8, UnitSource},
	{"ELECTRICITY_PV", 2.8, UnitSource},
}

var phius2021CO2 = []Factor{
	{"OIL", 310, UnitCO2},
	{"NATURAL_GAS", 250, UnitCO2},
	{"LPG", 270, UnitCO2},
	{"HARD_COAL", 440, UnitCO2},
	{"WOOD", 50, UnitCO2},
	{"ELECTRICITY_MIX", 680, UnitCO2},
	{"ELECTRICITY_PV", 250, UnitCO2},
}

func fromTable(name string, table []Factor) *Collection {
	c := NewCollection(name)
	for _, f := range table {
		c.Set(f.Fuel, f.Value, f.Unit)
	}
	return c
}

// Phius2021SourceEnergy returns a fresh copy of the default source-energy
// factors.
func Phius2021SourceEnergy() *Collection {
	return fromTable("source energy", phius2021Source)
}

// Phius2021CO2 returns a fresh copy of the default CO2e factors.
func Phius2021CO2() *Collection {
	return fromTable("CO2e", phius2021CO2)
}
