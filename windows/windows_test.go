package windows

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"ph_calc/diagnostics"
	"ph_calc/geometry"
)

func uniformConstruction(t *testing.T) *Construction {
	t.Helper()
	frame, err := NewUniformFrame("frame", FrameElement{
		Name:       "edge",
		Width:      0.1,
		UFactor:    1.0,
		PsiGlazing: 0.04,
		PsiInstall: 0.03,
	})
	require.NoError(t, err)
	c, err := NewConstruction("window", Glazing{Name: "triple", UFactor: 0.8, GValue: 0.5}, frame)
	require.NoError(t, err)
	return c
}

func TestWindowUwUniformFrame(t *testing.T) {
	c := uniformConstruction(t)

	res, err := ComposeUw(c.Frame, c.Glazing, 1.2, 1.5)
	require.NoError(t, err)

	// glazing 1.0 x 1.3, frame trapezoids 0.11 (top, bottom) and 0.14 (sides)
	assert.InDelta(t, 1.3, res.GlazingArea, 1e-12)
	assert.InDelta(t, 0.5, res.FrameArea(), 1e-12)
	assert.InDelta(t, 0.11, res.Edges[SideTop].FrameArea, 1e-12)
	assert.InDelta(t, 0.14, res.Edges[SideLeft].FrameArea, 1e-12)
	assert.InDelta(t, 1.3, res.Edges[SideRight].InnerLength, 1e-12)
	// the four 0.1 x 0.1 corners belong to the frame
	assert.InDelta(t, 0.04, res.FrameArea()-0.1*4.6, 1e-12)

	// (0.8·1.3 + 1.0·0.5 + 0.04·4.6) / 1.8
	assert.InDelta(t, 1.724/1.8, res.Uw, 1e-12)
	assert.InDelta(t, 1.0, res.Uw, 0.05)
	assert.InDelta(t, 1.0, res.FrameUFactor(), 1e-12)

	uw, err := c.UFactor(1.2, 1.5)
	require.NoError(t, err)
	assert.Equal(t, res.Uw, uw)
}

func TestWindowUwMixedEdges(t *testing.T) {
	head := FrameElement{Width: 0.12, UFactor: 0.9, PsiGlazing: 0.03}
	jamb := FrameElement{Width: 0.1, UFactor: 0.8, PsiGlazing: 0.03}
	sill := FrameElement{Width: 0.15, UFactor: 1.1, PsiGlazing: 0.04}
	frame, err := NewFrame("mixed", head, jamb, sill, jamb)
	require.NoError(t, err)

	res, err := ComposeUw(frame, Glazing{UFactor: 0.6, GValue: 0.5}, 1.0, 2.0)
	require.NoError(t, err)

	inner := (1.0 - 0.2) * (2.0 - 0.27)
	assert.InDelta(t, inner, res.GlazingArea, 1e-12)
	assert.InDelta(t, 1.73, res.Edges[SideLeft].InnerLength, 1e-12)
	assert.InDelta(t, 0.8, res.Edges[SideBottom].InnerLength, 1e-12)
	assert.InDelta(t, (1.0+0.8)/2*0.15, res.Edges[SideBottom].FrameArea, 1e-12)
}

func TestWindowUwRejectsOversizedFrame(t *testing.T) {
	c := uniformConstruction(t)
	_, err := WindowUw(c.Frame, c.Glazing, 0.2, 1.0)
	assert.ErrorIs(t, err, diagnostics.InputInvalid)
	_, err = WindowUw(c.Frame, c.Glazing, 0, 1.0)
	assert.ErrorIs(t, err, diagnostics.InputInvalid)
	_, err = WindowUw(nil, c.Glazing, 1, 1)
	assert.ErrorIs(t, err, diagnostics.InputMissing)
}

func TestUserUFactorOverrides(t *testing.T) {
	c := uniformConstruction(t)
	d, err := c.WithUserUFactor(0.75)
	require.NoError(t, err)

	u, err := d.UFactor(1.2, 1.5)
	require.NoError(t, err)
	assert.Equal(t, 0.75, u)

	_, ok := c.UserUFactor()
	assert.False(t, ok, "original construction must stay untouched")
}

func TestUFactorForFace(t *testing.T) {
	c := uniformConstruction(t)
	f := geometry.Rectangle(geometry.Pt(0, 0, 0), r3.Vec{Y: -1}, 1.2, 1.5)

	u, err := c.UFactorForFace(f)
	require.NoError(t, err)
	assert.InDelta(t, 1.724/1.8, u, 1e-9)

	_, err = c.UFactorForFace(geometry.NewFace(geometry.Pt(0, 0, 0), geometry.Pt(1, 0, 0)))
	assert.ErrorIs(t, err, diagnostics.InputInvalid)
}

func TestInstallLoss(t *testing.T) {
	c := uniformConstruction(t)
	assert.InDelta(t, 0.03*5.4, InstallLoss(c.Frame, 1.2, 1.5), 1e-12)
}

func TestSimpleGlazingStandIn(t *testing.T) {
	c := uniformConstruction(t)

	s, err := c.SimpleGlazingStandIn(1.2, 1.5, GlassTypeMultiple)
	require.NoError(t, err)

	assert.InDelta(t, 1.724/1.8, s.UFactor, 1e-12)
	assert.InDelta(t, 1.3/1.8, s.GlassRatio, 1e-12)
	assert.InDelta(t, 0.5, s.GlazingSHGC, 1e-12)
	assert.Greater(t, s.GlazingUFactor, 0.8)

	// normal-incidence profile reproduces the derived glass transmittance
	assert.InDelta(t, s.tauGlass, s.glassTransmittance(1.0), 2e-3)
	assert.Greater(t, s.DiffuseTransmittance, 0.0)
	assert.Less(t, s.DiffuseTransmittance, s.Transmittance(1.0))
	assert.Greater(t, s.DiffuseAbsorbedGain, 0.0)

	shaded, err := c.WithShade(Shade{Name: "blind", SolarTransmittance: 0.5})
	require.NoError(t, err)
	ss, err := shaded.SimpleGlazingStandIn(1.2, 1.5, GlassTypeMultiple)
	require.NoError(t, err)
	assert.InDelta(t, s.SHGC/2, ss.SHGC, 1e-12)
}

func TestSimpleGlazingSinglePane(t *testing.T) {
	s, err := NewSimpleGlazing(6.0, 0.7, GlassTypeSingle, 0.8, FrameTypeAluminum.DefaultUFactor())
	require.NoError(t, err)
	assert.InDelta(t, (6.0-6.6*0.2)/0.8, s.GlazingUFactor, 1e-12)
	assert.InDelta(t, s.tauGlass, s.glassTransmittance(1.0), 2e-3)

	_, err = NewSimpleGlazing(0.5, 0.5, GlassTypeMultiple, 0.7, 4.7)
	assert.ErrorIs(t, err, diagnostics.InputInvalid)
}

func TestEnumsFromString(t *testing.T) {
	s, err := SideFromString("left")
	require.NoError(t, err)
	assert.Equal(t, SideLeft, s)
	_, err = SideFromString("middle")
	assert.Error(t, err)

	ft, err := FrameTypeFromString("mixed_wood")
	require.NoError(t, err)
	assert.Equal(t, "mixed_wood", ft.String())
	assert.Equal(t, 4.7, ft.DefaultUFactor())
	_, err = FrameTypeFromString("bamboo")
	assert.ErrorIs(t, err, diagnostics.InputInvalid)

	gt, err := GlassTypeFromString("")
	require.NoError(t, err)
	assert.Equal(t, GlassTypeMultiple, gt)
}
