package windows

import (
	"github.com/google/uuid"

	"ph_calc/diagnostics"
)

// Side of a window frame.
type Side int

const (
	SideTop Side = iota
	SideRight
	SideBottom
	SideLeft
)

// Sides lists the frame sides in storage order.
var Sides = [4]Side{SideTop, SideRight, SideBottom, SideLeft}

func (s Side) String() string {
	return [...]string{"top", "right", "bottom", "left"}[s]
}

func SideFromString(str string) (Side, error) {
	switch str {
	case "top":
		return SideTop, nil
	case "right":
		return SideRight, nil
	case "bottom":
		return SideBottom, nil
	case "left":
		return SideLeft, nil
	default:
		return 0, diagnostics.Errorf(diagnostics.InputInvalid, str, "invalid frame side")
	}
}

// FrameType is the frame material family. It selects the default frame
// U-value when a frame element declares none.
type FrameType int

const (
	FrameTypeResin      FrameType = iota // PVC
	FrameTypeWood                        // timber
	FrameTypeMixedWood                   // timber-metal composite
	FrameTypeMixedResin                  // PVC-metal composite
	FrameTypeAluminum                    // metal
)

func (t FrameType) String() string {
	return [...]string{"resin", "wood", "mixed_wood", "mixed_resin", "aluminum"}[t]
}

func FrameTypeFromString(str string) (FrameType, error) {
	switch str {
	case "resin":
		return FrameTypeResin, nil
	case "wood":
		return FrameTypeWood, nil
	case "mixed_wood":
		return FrameTypeMixedWood, nil
	case "mixed_resin":
		return FrameTypeMixedResin, nil
	case "aluminum":
		return FrameTypeAluminum, nil
	default:
		return 0, diagnostics.Errorf(diagnostics.InputInvalid, str, "invalid frame type")
	}
}

// DefaultUFactor is the frame U-value of the family, W/m2K.
func (t FrameType) DefaultUFactor() float64 {
	return map[FrameType]float64{
		FrameTypeResin:      2.2,
		FrameTypeWood:       2.2,
		FrameTypeAluminum:   6.6,
		FrameTypeMixedWood:  4.7,
		FrameTypeMixedResin: 4.7,
	}[t]
}

// FrameElement is one edge of a window frame.
type FrameElement struct {
	Name       string
	Width      float64 // face width, m
	UFactor    float64 // Uf, W/m2K
	PsiGlazing float64 // glazing-edge linear loss, W/mK
	PsiInstall float64 // install linear loss, W/mK
	Chi        float64 // point loss, W/K
}

// Validate checks the element's declared domains.
func (e FrameElement) Validate() error {
	switch {
	case e.Width < 0:
		return diagnostics.Errorf(diagnostics.InputInvalid, e.Name, "frame width must be >= 0, got %g m", e.Width)
	case e.UFactor < 0:
		return diagnostics.Errorf(diagnostics.InputInvalid, e.Name, "frame U-factor must be >= 0, got %g W/m2K", e.UFactor)
	case e.PsiGlazing < 0:
		return diagnostics.Errorf(diagnostics.InputInvalid, e.Name, "psi-glazing must be >= 0, got %g W/mK", e.PsiGlazing)
	}
	return nil
}

// Frame is the four frame elements of a window.
type Frame struct {
	ID       string
	Name     string
	elements [4]FrameElement
}

// NewFrame builds a frame from its four edges.
func NewFrame(name string, top, right, bottom, left FrameElement) (*Frame, error) {
	f := &Frame{
		ID:       uuid.NewString(),
		Name:     name,
		elements: [4]FrameElement{top, right, bottom, left},
	}
	for _, e := range f.elements {
		if err := e.Validate(); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// NewUniformFrame builds a frame whose four edges are identical.
func NewUniformFrame(name string, e FrameElement) (*Frame, error) {
	return NewFrame(name, e, e, e, e)
}

// Element returns the element on side s.
func (f *Frame) Element(s Side) FrameElement {
	return f.elements[s]
}

// Elements returns the four elements in top, right, bottom, left order.
func (f *Frame) Elements() [4]FrameElement {
	return f.elements
}
