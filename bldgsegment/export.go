package bldgsegment

import (
	"ph_calc/bridges"
	"ph_calc/certification"
	"ph_calc/climate"
	"ph_calc/diagnostics"
	"ph_calc/factors"
	"ph_calc/hotwater"
	"ph_calc/hvac"
	"ph_calc/materials"
)

// ExportView is an in-memory snapshot of a segment holding everything an
// exchange writer (PHPP, WUFI-Passive) needs. It shares nothing mutable with
// the segment.
type ExportView struct {
	ID                string
	Name              string
	NumFloors         int
	NumDwellings      int
	Occupancy         int
	FloorArea         float64 // m2
	WeightedFloorArea float64 // m2
	SetPoints         SetPoints

	Location      climate.Location
	Climate       climate.Climate
	Phius         certification.PhiusCertification
	Phi           certification.PhiCertification
	SourceFactors []factors.Factor
	CO2Factors    []factors.Factor

	Constructions  []ConstructionView
	Apertures      []ApertureView
	ThermalBridges []BridgeView
	HotWater       []HotWaterView
	HVAC           HVACView
}

type LayerView struct {
	Material     string
	Thickness    float64 // m
	Conductivity float64 // W/mK, equivalent for divided layers
	Columns      []float64
	Rows         []float64
	Cells        [][]string // [row][col] material names
}

type ConstructionView struct {
	Name   string
	UValue float64 // W/m2K, wall surface resistances
	Layers []LayerView
}

type ApertureView struct {
	Room          string
	Name          string
	Construction  string
	Width         float64 // m
	Height        float64 // m
	Uw            float64 // W/m2K
	InstallLoss   float64 // ψ_install·L + χ, W/K
	WinterShading float64
	SummerShading float64

	// simple-glazing stand-in
	SHGC           float64 // whole window, -
	GlazingUFactor float64 // glass only, W/m2K
	GlassRatio     float64 // -
}

type BridgeView struct {
	ID       string
	Name     string
	Group    bridges.GroupType
	Psi      float64
	FRsi     float64
	Length   float64
	Quantity float64
}

type HotWaterView struct {
	Name     string
	TapCount int
	Lengths  hotwater.Lengths
	Tanks    []hotwater.Tank // primary, then buffer and solar when set
	Heaters  []hotwater.Heater
}

type HVACView struct {
	Ventilators      []string
	Heating          []string // "name (type)"
	Cooling          []string
	HeatingCoverage  float64
	SupportiveEnergy float64 // kWh/yr
	RenewableYield   float64 // kWh/yr
}

func layerView(m *materials.Material, report *diagnostics.Report) (LayerView, error) {
	l := LayerView{Material: m.Name, Thickness: m.Thickness, Conductivity: m.Conductivity}
	if !m.IsHeterogeneous() {
		return l, nil
	}
	k, err := m.EffectiveConductivity(report)
	if err != nil {
		return l, err
	}
	g := m.Grid
	l.Conductivity = k
	l.Columns = g.Columns()
	l.Rows = g.Rows()
	l.Cells = make([][]string, len(l.Rows))
	for r := range l.Rows {
		l.Cells[r] = make([]string, len(l.Columns))
		for c := range l.Columns {
			l.Cells[r][c] = g.Cell(c, r, m).Name
		}
	}
	return l, nil
}

/*
Export builds the exchange snapshot of the segment.

	Returns:
		view, warnings from the divided layers, error
	Notes:
		constructions are listed once each, in order of first use.
*/
func (s *Segment) Export() (*ExportView, *diagnostics.Report, error) {
	report := diagnostics.NewReport()
	v := &ExportView{
		ID:                string(s.ID),
		Name:              s.Name,
		NumFloors:         s.NumFloors,
		NumDwellings:      s.NumDwellings(),
		Occupancy:         s.Occupancy(),
		FloorArea:         s.FloorArea(),
		WeightedFloorArea: s.WeightedFloorArea(),
		SetPoints:         s.SetPoints,
		Location:          s.Site.Location,
		Climate:           s.Site.Climate,
		Phius:             *s.Phius,
		Phi:               *s.Phi,
		SourceFactors:     s.Source.All(),
		CO2Factors:        s.CO2.All(),
	}

	seen := make(map[string]bool)
	for _, r := range s.rooms {
		for _, f := range r.Faces() {
			c := f.Construction
			if c == nil || seen[c.ID] {
				continue
			}
			seen[c.ID] = true
			cv := ConstructionView{Name: c.Name}
			for _, m := range c.Layers() {
				l, err := layerView(m, report)
				if err != nil {
					return nil, report, err
				}
				cv.Layers = append(cv.Layers, l)
			}
			u, err := c.UValue(materials.RsiWall, materials.RseWall, report)
			if err != nil {
				return nil, report, err
			}
			cv.UValue = u
			v.Constructions = append(v.Constructions, cv)
		}
		for _, ap := range r.Apertures() {
			w, h := ap.WidthHeight()
			av := ApertureView{
				Room:          r.Name,
				Name:          ap.Name,
				Width:         w,
				Height:        h,
				WinterShading: ap.WinterShading,
				SummerShading: ap.SummerShading,
			}
			if ap.Construction != nil {
				uw, err := ap.Uw()
				if err != nil {
					return nil, report, err
				}
				sg, err := ap.StandIn()
				if err != nil {
					return nil, report, err
				}
				loss, err := ap.InstallLoss()
				if err != nil {
					return nil, report, err
				}
				av.Construction = ap.Construction.Name
				av.Uw = uw
				av.InstallLoss = loss
				av.SHGC = sg.SHGC
				av.GlazingUFactor = sg.GlazingUFactor
				av.GlassRatio = sg.GlassRatio
			}
			v.Apertures = append(v.Apertures, av)
		}
	}

	for _, tb := range s.Bridges.All() {
		v.ThermalBridges = append(v.ThermalBridges, BridgeView{
			ID:       tb.ID(),
			Name:     tb.DisplayName,
			Group:    tb.Group,
			Psi:      tb.Psi,
			FRsi:     tb.FRsi,
			Length:   tb.Length(),
			Quantity: tb.Quantity,
		})
	}

	for _, sys := range s.HotWater {
		hv := HotWaterView{
			Name:     sys.Name,
			TapCount: sys.TapCount(),
			Lengths:  sys.TotalPipeLength(),
			Heaters:  sys.Heaters(),
		}
		for _, t := range append(sys.Tanks(), sys.BufferTank(), sys.SolarTank()) {
			if t != nil {
				hv.Tanks = append(hv.Tanks, *t)
			}
		}
		v.HotWater = append(v.HotWater, hv)
	}

	if c := s.HVAC; c != nil {
		for _, vent := range c.Ventilators {
			v.HVAC.Ventilators = append(v.HVAC.Ventilators, vent.Name)
		}
		for _, h := range c.Heating {
			v.HVAC.Heating = append(v.HVAC.Heating, hvacLabel(h))
		}
		for _, cl := range c.Cooling {
			v.HVAC.Cooling = append(v.HVAC.Cooling, coolingLabel(cl))
		}
		v.HVAC.HeatingCoverage = c.HeatingCoverage()
		v.HVAC.SupportiveEnergy = c.SupportiveEnergy()
		v.HVAC.RenewableYield = c.RenewableYield()
	}
	return v, report, nil
}

func hvacLabel(h hvac.Heating) string {
	return hvac.Base(h).Name + " (" + h.Type().String() + ")"
}

func coolingLabel(c hvac.Cooling) string {
	return hvac.CoolingBaseOf(c).Name + " (" + c.Type().String() + ")"
}
