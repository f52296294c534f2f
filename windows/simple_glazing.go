package windows

import (
	"math"

	"ph_calc/diagnostics"
)

// GlassType is the pane build-up of a glazing.
type GlassType string

const (
	GlassTypeSingle   GlassType = "single"
	GlassTypeMultiple GlassType = "multiple"
)

func GlassTypeFromString(str string) (GlassType, error) {
	switch str {
	case "single":
		return GlassTypeSingle, nil
	case "multiple", "":
		return GlassTypeMultiple, nil
	default:
		return "", diagnostics.Errorf(diagnostics.InputInvalid, str, "invalid glass type")
	}
}

// Window surface heat-transfer resistances, m2K/W.
const (
	rOutWinter = 0.0415
	rInWinter  = 0.1228
	rOutSummer = 0.0756
	rInSummer  = 0.1317

	// cavity resistance of multiple glazing
	rCavity = 0.003

	// front reflectance of the second pane
	rhoSecondPaneFront = 0.077
)

// SimpleGlazing is the simple-glazing record handed to an energy simulator
// in place of a detailed window. It carries whole-window Uw and SHGC plus
// the derived glass-only properties and their angular behavior.
type SimpleGlazing struct {
	UFactor    float64   // whole window, W/m2K
	SHGC       float64   // whole window, -
	GlassType  GlassType // pane build-up
	GlassRatio float64   // A_g / A, -

	GlazingUFactor       float64 // glass only, winter, W/m2K
	GlazingUFactorSummer float64 // glass only, summer, W/m2K
	GlazingSHGC          float64 // glass only, -
	DiffuseTransmittance float64 // hemispherical diffuse, whole window, -
	DiffuseAbsorbedGain  float64 // hemispherical diffuse, whole window, -

	inwardFraction float64 // share of absorbed radiation released indoors, -
	tauGlass       float64 // glass transmittance at normal incidence, -
	tauPane1       float64
	tauPane2       float64
	rhoPane1Front  float64
	rhoPane1Back   float64
	rhoPane2Front  float64
}

/*
NewSimpleGlazing derives the simple-glazing stand-in from whole-window values.

	Args:
		uw: whole-window U-factor, W/m2K
		shgc: whole-window solar heat-gain coefficient, -
		glassType: pane build-up
		glassRatio: glazing share of the window area, -
		frameUFactor: frame U-factor, W/m2K
	Returns:
		simple-glazing record
*/
func NewSimpleGlazing(uw, shgc float64, glassType GlassType, glassRatio, frameUFactor float64) (*SimpleGlazing, error) {
	switch {
	case !(uw > 0):
		return nil, diagnostics.Errorf(diagnostics.InputInvalid, "simple glazing", "Uw must be > 0, got %g", uw)
	case shgc < 0 || shgc > 1:
		return nil, diagnostics.Errorf(diagnostics.InputInvalid, "simple glazing", "SHGC must be within [0, 1], got %g", shgc)
	case !(glassRatio > 0) || glassRatio > 1:
		return nil, diagnostics.Errorf(diagnostics.InputInvalid, "simple glazing", "glass ratio must be within (0, 1], got %g", glassRatio)
	case glassType != GlassTypeSingle && glassType != GlassTypeMultiple:
		return nil, diagnostics.Errorf(diagnostics.InputInvalid, string(glassType), "invalid glass type")
	}

	s := &SimpleGlazing{UFactor: uw, SHGC: shgc, GlassType: glassType, GlassRatio: glassRatio}

	s.GlazingUFactor = (uw - frameUFactor*(1-glassRatio)) / glassRatio
	if !(s.GlazingUFactor > 0) || 1/s.GlazingUFactor <= rOutWinter+rInWinter {
		return nil, diagnostics.Errorf(diagnostics.InputInvalid, "simple glazing",
			"frame U-factor %g W/m2K leaves no consistent glass U-factor for Uw %g W/m2K", frameUFactor, uw)
	}
	s.GlazingSHGC = shgc / glassRatio
	s.GlazingUFactorSummer = 1.0 / (1.0/s.GlazingUFactor - rOutWinter - rInWinter + rOutSummer + rInSummer)

	glassR := 1/s.GlazingUFactor - rOutWinter - rInWinter
	if glassType == GlassTypeSingle {
		s.inwardFraction = (glassR/2.0 + rOutSummer) * s.GlazingUFactorSummer
	} else {
		s.inwardFraction = ((glassR-rCavity)/4.0 + rOutSummer) * s.GlazingUFactorSummer
	}

	t := 1.846 * s.inwardFraction
	tj := (-t + math.Sqrt(t*t+4*(1-t)*s.GlazingSHGC)) / (2 * (1 - t))
	s.rhoPane1Front = 0.923*tj*tj - 1.846*tj + 1

	if glassType == GlassTypeSingle {
		s.tauGlass = (s.GlazingSHGC - (1.0-s.rhoPane1Front)*s.inwardFraction) / (1.0 - s.inwardFraction)
		s.tauPane1 = s.tauGlass
	} else {
		s.rhoPane2Front = rhoSecondPaneFront
		s.tauGlass = (s.GlazingSHGC - (1.0-s.rhoPane1Front)*s.inwardFraction) /
			((1.0 - s.inwardFraction) - s.rhoPane2Front*s.inwardFraction)
		k := 0.379 * s.rhoPane2Front * s.tauGlass
		s.tauPane1 = (k + math.Sqrt(k*k-4.0*(0.379*s.rhoPane2Front-1)*s.tauGlass)) / 2.0
		s.tauPane2 = s.tauPane1
		s.rhoPane1Back = 0.379 * (1 - s.tauPane1)
	}

	s.DiffuseTransmittance, s.DiffuseAbsorbedGain = s.diffuse()
	return s, nil
}

// normalizedTransmittance is the angular transmittance profile of a pane.
func normalizedTransmittance(cosPhi float64) float64 {
	c2 := cosPhi * cosPhi
	c3 := c2 * cosPhi
	return 2.552*cosPhi + 1.364*c2 - 11.388*c3 + 13.617*c2*c2 - 5.146*c2*c3
}

// normalizedReflectance is the angular reflectance profile of a pane.
func normalizedReflectance(cosPhi float64) float64 {
	c2 := cosPhi * cosPhi
	c3 := c2 * cosPhi
	return 1.0 - 5.189*cosPhi + 12.392*c2 - 16.593*c3 + 11.851*c2*c2 - 3.461*c2*c3
}

func (s *SimpleGlazing) reflectanceOf(rho0, cosPhi float64) float64 {
	return rho0 + (1-rho0)*normalizedReflectance(cosPhi)
}

// glassTransmittance at incidence cosPhi, -.
func (s *SimpleGlazing) glassTransmittance(cosPhi float64) float64 {
	t1 := s.tauPane1 * normalizedTransmittance(cosPhi)
	if s.GlassType == GlassTypeSingle {
		return t1
	}
	t2 := s.tauPane2 * normalizedTransmittance(cosPhi)
	rr := s.reflectanceOf(s.rhoPane1Back, cosPhi) * s.reflectanceOf(s.rhoPane2Front, cosPhi)
	return t1 * t2 / (1 - math.Min(rr, 0.9999))
}

// glassReflectance at incidence cosPhi, -.
func (s *SimpleGlazing) glassReflectance(cosPhi float64) float64 {
	r1 := s.reflectanceOf(s.rhoPane1Front, cosPhi)
	if s.GlassType == GlassTypeSingle {
		return r1
	}
	t1 := s.tauPane1 * normalizedTransmittance(cosPhi)
	t2 := s.tauPane2 * normalizedTransmittance(cosPhi)
	r2 := s.reflectanceOf(s.rhoPane2Front, cosPhi)
	rr := s.reflectanceOf(s.rhoPane1Back, cosPhi) * r2
	return r1 + t1*t2*r2/(1-math.Min(rr, 0.9999))
}

// Transmittance returns the whole-window direct solar transmittance at
// incidence cosPhi, -.
func (s *SimpleGlazing) Transmittance(cosPhi float64) float64 {
	return s.glassTransmittance(cosPhi) * s.GlassRatio
}

// AbsorbedGain returns the whole-window absorbed solar gain released
// indoors at incidence cosPhi, -.
func (s *SimpleGlazing) AbsorbedGain(cosPhi float64) float64 {
	g := (1 - s.glassTransmittance(cosPhi) - s.glassReflectance(cosPhi)) * s.inwardFraction
	return g * s.GlassRatio
}

// diffuse integrates Transmittance and AbsorbedGain over a quarter sphere
// of uniform diffuse radiation.
func (s *SimpleGlazing) diffuse() (float64, float64) {
	const m = 1000

	var tau, b float64
	for i := 1; i <= m; i++ {
		phi := math.Pi / 2.0 * (float64(i) - 0.5) / m
		c := math.Cos(phi)
		w := math.Sin(phi) * c
		tau += s.Transmittance(c) * w
		b += s.AbsorbedGain(c) * w
	}
	return math.Pi / m * tau, math.Pi / m * b
}

// SimpleGlazingStandIn derives the simple-glazing record of a width x height
// window built from this construction. A shade scales the SHGC by its solar
// transmittance.
func (c *Construction) SimpleGlazingStandIn(width, height float64, glassType GlassType) (*SimpleGlazing, error) {
	res, err := ComposeUw(c.Frame, c.Glazing, width, height)
	if err != nil {
		return nil, err
	}
	uw := res.Uw
	if u, ok := c.UserUFactor(); ok {
		uw = u
	}
	shgc := c.Glazing.GValue * res.GlassRatio()
	if c.Shade != nil {
		shgc *= c.Shade.SolarTransmittance
	}
	return NewSimpleGlazing(uw, shgc, glassType, res.GlassRatio(), res.FrameUFactor())
}
