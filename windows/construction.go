package windows

import (
	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"

	"ph_calc/diagnostics"
	"ph_calc/geometry"
)

// Glazing is the glass pane of a window.
type Glazing struct {
	Name    string
	UFactor float64 // Ug, center of glass (EN-673), W/m2K
	GValue  float64 // g, total solar energy transmittance (EN-410), -

	GlassType GlassType // empty means multiple
}

// Type returns the pane build-up, multiple when unset.
func (g Glazing) Type() GlassType {
	if g.GlassType == "" {
		return GlassTypeMultiple
	}
	return g.GlassType
}

// Validate checks the glazing's declared domains.
func (g Glazing) Validate() error {
	switch {
	case !(g.UFactor > 0):
		return diagnostics.Errorf(diagnostics.InputInvalid, g.Name, "glazing U-factor must be > 0, got %g W/m2K", g.UFactor)
	case g.GValue < 0 || g.GValue > 1:
		return diagnostics.Errorf(diagnostics.InputInvalid, g.Name, "g-value must be within [0, 1], got %g", g.GValue)
	}
	return nil
}

// Shade is a window shade. Only its solar transmittance is carried.
type Shade struct {
	Name               string
	SolarTransmittance float64 // -
}

// Construction composes one glazing, one frame and an optional shade.
type Construction struct {
	ID      string
	Name    string
	Glazing Glazing
	Frame   *Frame
	Shade   *Shade

	userUFactor *float64
}

// NewConstruction validates and composes a window construction.
func NewConstruction(name string, glazing Glazing, frame *Frame) (*Construction, error) {
	if frame == nil {
		return nil, diagnostics.Errorf(diagnostics.InputMissing, name, "window construction needs a frame")
	}
	if err := glazing.Validate(); err != nil {
		return nil, err
	}
	return &Construction{ID: uuid.NewString(), Name: name, Glazing: glazing, Frame: frame}, nil
}

// WithShade returns a copy carrying the shade.
func (c *Construction) WithShade(s Shade) (*Construction, error) {
	if s.SolarTransmittance < 0 || s.SolarTransmittance > 1 {
		return nil, diagnostics.Errorf(diagnostics.InputInvalid, s.Name,
			"shade solar transmittance must be within [0, 1], got %g", s.SolarTransmittance)
	}
	d := *c
	d.Shade = &s
	return &d, nil
}

// WithUserUFactor returns a copy whose NFRC U-factor is fixed to u,
// bypassing the ISO-10077-1 composition.
func (c *Construction) WithUserUFactor(u float64) (*Construction, error) {
	if !(u > 0) {
		return nil, diagnostics.Errorf(diagnostics.InputInvalid, c.Name, "U-factor must be > 0, got %g W/m2K", u)
	}
	d := *c
	d.userUFactor = &u
	return &d, nil
}

// UserUFactor reports the user-supplied U-factor, if any.
func (c *Construction) UserUFactor() (float64, bool) {
	if c.userUFactor == nil {
		return 0, false
	}
	return *c.userUFactor, true
}

// UFactor returns the user-supplied U-factor when set, otherwise the
// ISO-10077-1 Uw for a width x height window.
func (c *Construction) UFactor(width, height float64) (float64, error) {
	if u, ok := c.UserUFactor(); ok {
		return u, nil
	}
	return WindowUw(c.Frame, c.Glazing, width, height)
}

// UFactorForFace is UFactor sized by the aperture's own geometry.
func (c *Construction) UFactorForFace(f geometry.Face) (float64, error) {
	if f.IsDegenerate() {
		return 0, diagnostics.Errorf(diagnostics.InputInvalid, c.Name, "aperture geometry has zero area")
	}
	w, h := f.WidthHeight()
	return c.UFactor(w, h)
}

// EdgeResult is the composition of one frame edge.
type EdgeResult struct {
	Side            Side
	OuterLength     float64 // m
	InnerLength     float64 // glazing-edge length, m
	FrameArea       float64 // m2
	FrameLoss       float64 // Uf·A_f, W/K
	GlazingEdgeLoss float64 // ψ_g·L_g, W/K
}

// UwResult is the full ISO-10077-1 composition.
type UwResult struct {
	Area        float64 // m2
	GlazingArea float64 // m2
	Edges       [4]EdgeResult
	Uw          float64 // W/m2K
}

// FrameArea returns ΣA_f, m2.
func (r *UwResult) FrameArea() float64 {
	return r.Area - r.GlazingArea
}

// GlassRatio returns A_g / A, -.
func (r *UwResult) GlassRatio() float64 {
	return r.GlazingArea / r.Area
}

// FrameUFactor returns the frame-area weighted Uf, W/m2K.
func (r *UwResult) FrameUFactor() float64 {
	var loss float64
	for _, e := range r.Edges {
		loss += e.FrameLoss
	}
	if r.FrameArea() <= 0 {
		return 0
	}
	return loss / r.FrameArea()
}

/*
ComposeUw composes a window's heat-loss coefficient per ISO-10077-1.

	Args:
		frame: four frame elements
		glazing: glass pane
		width: outer window width, m
		height: outer window height, m
	Returns:
		per-edge composition and Uw, W/m2K
	Notes:
		Frame edges meet in a mitre. The inner (glazing-edge) length of an edge
		is its outer length minus the widths of the two adjacent edges; its
		frame area is the trapezoid (outer + inner) / 2 · width. A plain
		L_e · width_e with L_e the glazing-edge length leaves the four corner
		squares out of the frame: for a 1.2 x 1.5 m window with 0.1 m Uf 1.0
		edges, ψ_g 0.04 and Ug 0.8 the mitred Uw is 0.9578 W/m2K, that
		rectangle gives 0.9533. Neither is the nominal 1.0.
		Uw = (Ug·A_g + ΣUf·A_f + Σψ_g·L_g) / A
		Install losses are not part of Uw.
*/
func ComposeUw(frame *Frame, glazing Glazing, width, height float64) (*UwResult, error) {
	if frame == nil {
		return nil, diagnostics.Errorf(diagnostics.InputMissing, "window", "frame is required")
	}
	if err := glazing.Validate(); err != nil {
		return nil, err
	}
	if !(width > 0) || !(height > 0) {
		return nil, diagnostics.Errorf(diagnostics.InputInvalid, frame.Name,
			"window dimensions must be > 0, got %g x %g m", width, height)
	}

	top, right, bottom, left := frame.elements[SideTop], frame.elements[SideRight], frame.elements[SideBottom], frame.elements[SideLeft]
	if width-left.Width-right.Width <= 0 || height-top.Width-bottom.Width <= 0 {
		return nil, diagnostics.Errorf(diagnostics.InputInvalid, frame.Name,
			"frame widths leave no glazing in a %g x %g m window", width, height)
	}

	res := &UwResult{Area: width * height}
	for _, s := range Sides {
		e := frame.elements[s]
		var outer, inner float64
		switch s {
		case SideTop, SideBottom:
			outer = width
			inner = width - left.Width - right.Width
		default:
			outer = height
			inner = height - top.Width - bottom.Width
		}
		area := (outer + inner) / 2.0 * e.Width
		res.Edges[s] = EdgeResult{
			Side:            s,
			OuterLength:     outer,
			InnerLength:     inner,
			FrameArea:       area,
			FrameLoss:       e.UFactor * area,
			GlazingEdgeLoss: e.PsiGlazing * inner,
		}
	}

	frameAreas := make([]float64, 4)
	losses := make([]float64, 0, 9)
	for i, er := range res.Edges {
		frameAreas[i] = er.FrameArea
		losses = append(losses, er.FrameLoss, er.GlazingEdgeLoss)
	}
	res.GlazingArea = res.Area - floats.Sum(frameAreas)
	losses = append(losses, glazing.UFactor*res.GlazingArea)
	res.Uw = floats.Sum(losses) / res.Area
	return res, nil
}

// WindowUw returns the ISO-10077-1 Uw of a width x height window, W/m2K.
func WindowUw(frame *Frame, glazing Glazing, width, height float64) (float64, error) {
	r, err := ComposeUw(frame, glazing, width, height)
	if err != nil {
		return 0, err
	}
	return r.Uw, nil
}

/*
InstallLoss returns the installation heat loss of a window in its host
wall.

	Args:
		frame: four frame elements
		width: outer window width, m
		height: outer window height, m
	Returns:
		Σψ_install·L_outer + Σχ, W/K
*/
func InstallLoss(frame *Frame, width, height float64) float64 {
	var loss float64
	for _, s := range Sides {
		e := frame.elements[s]
		l := width
		if s == SideLeft || s == SideRight {
			l = height
		}
		loss += e.PsiInstall*l + e.Chi
	}
	return loss
}
