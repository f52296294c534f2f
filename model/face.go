package model

import (
	"github.com/google/uuid"

	"ph_calc/diagnostics"
	"ph_calc/geometry"
	"ph_calc/materials"
	"ph_calc/windows"
)

// Boundary is the outside boundary condition of a face.
type Boundary int

const (
	BoundaryOutdoors Boundary = iota
	BoundaryGround
	BoundaryAdiabatic
	BoundarySurface
)

func (b Boundary) String() string {
	return [...]string{"outdoors", "ground", "adiabatic", "surface"}[b]
}

func BoundaryFromString(str string) (Boundary, error) {
	switch str {
	case "outdoors", "":
		return BoundaryOutdoors, nil
	case "ground":
		return BoundaryGround, nil
	case "adiabatic":
		return BoundaryAdiabatic, nil
	case "surface":
		return BoundarySurface, nil
	default:
		return 0, diagnostics.Errorf(diagnostics.InputInvalid, str, "invalid boundary")
	}
}

// FaceType is the kind of room face.
type FaceType int

const (
	FaceWall FaceType = iota
	FaceFloor
	FaceRoof
	FaceAirBoundary
)

func (t FaceType) String() string {
	return [...]string{"wall", "floor", "roof", "air_boundary"}[t]
}

func FaceTypeFromString(str string) (FaceType, error) {
	for t := FaceWall; t <= FaceAirBoundary; t++ {
		if t.String() == str {
			return t, nil
		}
	}
	return 0, diagnostics.Errorf(diagnostics.InputInvalid, str, "invalid face type")
}

// Face is an opaque room face with its apertures.
type Face struct {
	Name         string
	Type         FaceType
	Boundary     Boundary
	Geometry     geometry.Face
	Construction *materials.OpaqueConstruction
	Apertures    []*Aperture
}

// OpaqueArea returns the face area net of its apertures, m2.
func (f *Face) OpaqueArea() float64 {
	a := f.Geometry.Area()
	for _, ap := range f.Apertures {
		a -= ap.Geometry.Area()
	}
	if a < 0 {
		return 0
	}
	return a
}

// Exposed reports whether the face sees the outdoor air.
func (f *Face) Exposed() bool {
	return f.Boundary == BoundaryOutdoors && f.Type != FaceAirBoundary
}

func (f *Face) duplicate() *Face {
	c := *f
	c.Apertures = make([]*Aperture, len(f.Apertures))
	for i, ap := range f.Apertures {
		c.Apertures[i] = ap.duplicate()
	}
	return &c
}

// Aperture is a window in a face.
type Aperture struct {
	ID           string
	Name         string
	Geometry     geometry.Face
	Construction *windows.Construction
	InstallDepth float64 // m, reveal depth from the wall's outer plane

	// shading factors, 1 = unshaded
	WinterShading float64
	SummerShading float64
}

func NewAperture(name string, geom geometry.Face, c *windows.Construction, installDepth float64) (*Aperture, error) {
	if installDepth < 0 {
		return nil, diagnostics.Errorf(diagnostics.InputInvalid, name, "install depth must be >= 0, got %g", installDepth)
	}
	return &Aperture{
		ID:            uuid.NewString(),
		Name:          name,
		Geometry:      geom,
		Construction:  c,
		InstallDepth:  installDepth,
		WinterShading: 1,
		SummerShading: 1,
	}, nil
}

func (a *Aperture) duplicate() *Aperture {
	c := *a
	return &c
}

// WidthHeight returns the aperture's rectangle dimensions, m.
func (a *Aperture) WidthHeight() (float64, float64) {
	return a.Geometry.WidthHeight()
}

// Uw returns the window U-value of the aperture's own geometry, W/m2K.
func (a *Aperture) Uw() (float64, error) {
	if a.Construction == nil {
		return 0, diagnostics.Errorf(diagnostics.InputMissing, a.Name, "aperture has no window construction")
	}
	return a.Construction.UFactorForFace(a.Geometry)
}

// InstallLoss returns the installation heat loss of the aperture in its
// host wall, W/K. It is not part of Uw.
func (a *Aperture) InstallLoss() (float64, error) {
	if a.Construction == nil {
		return 0, diagnostics.Errorf(diagnostics.InputMissing, a.Name, "aperture has no window construction")
	}
	w, h := a.WidthHeight()
	return windows.InstallLoss(a.Construction.Frame, w, h), nil
}

// StandIn derives the simple-glazing record of the aperture's window at its
// own size.
func (a *Aperture) StandIn() (*windows.SimpleGlazing, error) {
	if a.Construction == nil {
		return nil, diagnostics.Errorf(diagnostics.InputMissing, a.Name, "aperture has no window construction")
	}
	w, h := a.WidthHeight()
	return a.Construction.SimpleGlazingStandIn(w, h, a.Construction.Glazing.Type())
}

// WithShadingFactors returns a copy carrying the given factors.
func (a *Aperture) WithShadingFactors(winter, summer float64) (*Aperture, error) {
	for _, v := range []float64{winter, summer} {
		if v < 0 || v > 1 {
			return nil, diagnostics.Errorf(diagnostics.InputInvalid, a.Name, "shading factor must be in [0, 1], got %g", v)
		}
	}
	c := a.duplicate()
	c.WinterShading = winter
	c.SummerShading = summer
	return c, nil
}
