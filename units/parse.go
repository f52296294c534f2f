package units

import (
	"regexp"
	"strconv"
	"strings"

	"ph_calc/diagnostics"
)

// Quantity is the physical dimension a parsed value is converted into.
type Quantity int

const (
	QuantityLength       Quantity = iota // m
	QuantityArea                         // m2
	QuantityTemperature                  // degree C
	QuantityConductivity                 // W/mK
	QuantityUValue                       // W/m2K
	QuantityRValue                       // m2K/W
	QuantityLinearPsi                    // W/mK
)

func (q Quantity) String() string {
	return [...]string{"length", "area", "temperature", "conductivity", "u-value", "r-value", "psi"}[q]
}

type conversion struct {
	scale  float64
	offset float64
}

// Unit tables, keyed by the lower-cased suffix.
var unitTables = map[Quantity]map[string]conversion{
	QuantityLength: {
		"":     {1, 0},
		"m":    {1, 0},
		"mm":   {MmToM, 0},
		"cm":   {CmToM, 0},
		"in":   {InToM, 0},
		"inch": {InToM, 0},
		"\"":   {InToM, 0},
		"ft":   {FtToM, 0},
		"'":    {FtToM, 0},
	},
	QuantityArea: {
		"":    {1, 0},
		"m2":  {1, 0},
		"m²":  {1, 0},
		"ft2": {1 / M2ToFt2, 0},
		"ft²": {1 / M2ToFt2, 0},
		"sf":  {1 / M2ToFt2, 0},
	},
	QuantityTemperature: {
		"":   {1, 0},
		"c":  {1, 0},
		"°c": {1, 0},
		"f":  {5.0 / 9.0, -32.0 * 5.0 / 9.0},
		"°f": {5.0 / 9.0, -32.0 * 5.0 / 9.0},
	},
	QuantityConductivity: {
		"":            {1, 0},
		"w/mk":        {1, 0},
		"w/m-k":       {1, 0},
		"btu/hr-ft-f": {BtuHrFtFToWMK, 0},
	},
	QuantityUValue: {
		"":                {1, 0},
		"w/m2k":           {1, 0},
		"w/m2-k":          {1, 0},
		"btu/hr-ft2-f":    {UIPToUSI, 0},
		"btu/hr-sf-f":     {UIPToUSI, 0},
		"btu/(hr-ft2-f)":  {UIPToUSI, 0},
		"btu/(h·ft²·°f)":  {UIPToUSI, 0},
		"btu/(hr·ft²·°f)": {UIPToUSI, 0},
	},
	QuantityRValue: {
		"":               {1, 0},
		"m2k/w":          {1, 0},
		"m2-k/w":         {1, 0},
		"r":              {RIPToRSI, 0},
		"hr-ft2-f/btu":   {RIPToRSI, 0},
		"hr-sf-f/btu":    {RIPToRSI, 0},
		"(hr-ft2-f)/btu": {RIPToRSI, 0},
	},
	QuantityLinearPsi: {
		"":            {1, 0},
		"w/mk":        {1, 0},
		"w/m-k":       {1, 0},
		"btu/hr-ft-f": {BtuHrFtFToWMK, 0},
	},
}

var valueRe = regexp.MustCompile(`^\s*([-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?)\s*(.*?)\s*$`)

/*
Parse converts a string with an optional embedded unit ("1.5 in", "8 ft",
"300 mm", "0.5") into the SI unit of the given quantity. A bare number is
taken to be SI already.

	Args:
		s: input string
		q: target quantity
	Returns:
		value in SI
	Notes:
		all failures are reported as Input.UnitUnrecognized
*/
func Parse(s string, q Quantity) (float64, error) {
	m := valueRe.FindStringSubmatch(s)
	if m == nil {
		return 0, diagnostics.Errorf(diagnostics.InputUnitUnrecognized, s, "cannot parse a %s value", q)
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, diagnostics.Wrap(diagnostics.InputUnitUnrecognized, s, err)
	}

	table, ok := unitTables[q]
	if !ok {
		return 0, diagnostics.Errorf(diagnostics.InputUnitUnrecognized, s, "unknown quantity %d", q)
	}
	suffix := strings.ToLower(strings.ReplaceAll(m[2], " ", ""))
	c, ok := table[suffix]
	if !ok {
		return 0, diagnostics.Errorf(diagnostics.InputUnitUnrecognized, s, "unit %q is not a %s unit", m[2], q)
	}
	return v*c.scale + c.offset, nil
}

// MustParse is Parse for package-level literals; it panics on error.
func MustParse(s string, q Quantity) float64 {
	v, err := Parse(s, q)
	if err != nil {
		panic(err)
	}
	return v
}
