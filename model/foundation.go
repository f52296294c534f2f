package model

import (
	"ph_calc/diagnostics"
)

// FoundationType is the PHPP ground-contact case.
type FoundationType int

const (
	FoundationHeatedBasement FoundationType = iota
	FoundationUnheatedBasement
	FoundationSlabOnGrade
	FoundationVentedCrawlspace
	FoundationNone
)

func (t FoundationType) String() string {
	return [...]string{
		"heated_basement", "unheated_basement", "slab_on_grade",
		"vented_crawlspace", "none",
	}[t]
}

func FoundationTypeFromString(str string) (FoundationType, error) {
	for t := FoundationHeatedBasement; t <= FoundationNone; t++ {
		if t.String() == str {
			return t, nil
		}
	}
	return 0, diagnostics.Errorf(diagnostics.InputInvalid, str, "invalid foundation type")
}

// Foundation is a ground-contact record of a room.
type Foundation struct {
	Name            string
	Type            FoundationType
	FloorArea       float64 // m2
	Perimeter       float64 // exposed perimeter, m
	Depth           float64 // floor depth below grade, m
	PerimeterUValue float64 // W/m2K, 0 = no perimeter insulation
}

func (f *Foundation) Validate() error {
	for _, v := range []float64{f.FloorArea, f.Perimeter, f.Depth, f.PerimeterUValue} {
		if v < 0 {
			return diagnostics.Errorf(diagnostics.InputInvalid, f.Name, "foundation values must be >= 0, got %g", v)
		}
	}
	return nil
}

// CharacteristicDimension returns B' = A / (P/2), m; 0 when P is 0.
func (f *Foundation) CharacteristicDimension() float64 {
	if f.Perimeter == 0 {
		return 0
	}
	return f.FloorArea / (0.5 * f.Perimeter)
}
