package bldgsegment

import (
	"github.com/google/uuid"

	"ph_calc/bridges"
	"ph_calc/certification"
	"ph_calc/climate"
	"ph_calc/diagnostics"
	"ph_calc/factors"
	"ph_calc/hotwater"
	"ph_calc/hvac"
	"ph_calc/model"
)

// Params are the inputs of Assemble. Nil certification records fall back
// to the defaults; nil factor collections mean no user overrides.
type Params struct {
	Name         string
	Rooms        []*model.Room
	Site         climate.Site
	Phius        *certification.PhiusCertification
	Phi          *certification.PhiCertification
	Source       *factors.Collection
	CO2          *factors.Collection
	SetPoints    SetPoints
	NumFloors    int
	NumDwellings int // 0 = count the rooms' dwellings
	HotWater     []*hotwater.System
	HVAC         *hvac.Collection
}

/*
Assemble builds a segment from rooms.

	Returns:
		duplicated rooms that reference the new segment, the segment,
		warnings, error
	Notes:
		the input rooms are not modified. Thermal bridges shared by
		several rooms (same identifier) appear once in the segment table,
		the first occurrence winning.
*/
func Assemble(p Params) ([]*model.Room, *Segment, *diagnostics.Report, error) {
	report := diagnostics.NewReport()
	if p.Name == "" {
		return nil, nil, report, diagnostics.Errorf(diagnostics.InputMissing, "segment", "segment name is empty")
	}
	if err := p.SetPoints.Validate(); err != nil {
		return nil, nil, report, err
	}
	if p.NumFloors < 0 || p.NumDwellings < 0 {
		return nil, nil, report, diagnostics.Errorf(diagnostics.InputInvalid, p.Name, "floor and dwelling counts must be >= 0")
	}
	if err := p.Site.Validate(); err != nil {
		return nil, nil, report, err
	}

	source := factors.Phius2021SourceEnergy().Merge(p.Source)
	co2 := factors.Phius2021CO2().Merge(p.CO2)
	if err := co2.Validate(); err != nil {
		return nil, nil, report, err
	}
	if err := source.Validate(); err != nil {
		return nil, nil, report, err
	}

	phius := p.Phius
	if phius == nil {
		phius = certification.NewPhiusCertification()
	}
	if err := phius.Validate(); err != nil {
		return nil, nil, report, err
	}
	phi := p.Phi
	if phi == nil {
		phi = certification.NewPhiCertification()
	}

	for _, sys := range p.HotWater {
		sys.CheckCoverage(report)
	}
	if p.HVAC != nil {
		if err := p.HVAC.Validate(report); err != nil {
			return nil, nil, report, err
		}
	}

	seg := &Segment{
		ID:                model.SegmentID(uuid.NewString()),
		Name:              p.Name,
		NumFloors:         p.NumFloors,
		Site:              p.Site,
		Phius:             phius,
		Phi:               phi,
		Source:            source,
		CO2:               co2,
		SetPoints:         p.SetPoints,
		Bridges:           bridges.NewTable(),
		HotWater:          append([]*hotwater.System(nil), p.HotWater...),
		HVAC:              p.HVAC,
		dwellingsOverride: p.NumDwellings,
	}
	out := make([]*model.Room, len(p.Rooms))
	for i, r := range p.Rooms {
		for _, tb := range r.ThermalBridges() {
			seg.Bridges.Add(tb.Duplicate())
		}
		out[i] = r.WithSegment(seg.ID)
	}
	seg.rooms = out
	return out, seg, report, nil
}
