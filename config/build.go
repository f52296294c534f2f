package config

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"ph_calc/bldgsegment"
	"ph_calc/bridges"
	"ph_calc/certification"
	"ph_calc/climate"
	"ph_calc/diagnostics"
	"ph_calc/factors"
	"ph_calc/geometry"
	"ph_calc/hotwater"
	"ph_calc/hvac"
	"ph_calc/materials"
	"ph_calc/model"
	"ph_calc/phius"
	"ph_calc/shading"
	"ph_calc/units"
	"ph_calc/windows"
)

// Build is a project converted into the calculation model.
type Build struct {
	Segment       bldgsegment.Params // Rooms holds the project rooms
	Constructions []*materials.OpaqueConstruction
	Windows       []*windows.Construction
	Fractions     phius.Fractions
	Shading       shading.Input
}

// builder resolves the name references of a project.
type builder struct {
	p      *Project
	report *diagnostics.Report

	materials map[string]*materials.Material
	cons      map[string]*materials.OpaqueConstruction
	frames    map[string]*windows.Frame
	glazings  map[string]windows.Glazing
	windows   map[string]*windows.Construction
	programs  map[string]*model.ProgramType
	bridges   map[string]*bridges.ThermalBridge
	dwellings map[string]*model.Dwelling

	winterShades []geometry.Face
	summerShades []geometry.Face
}

/*
Build converts the project into model objects.

	Returns:
		build, warnings (tank slot replacement), error
	Notes:
		unit strings are converted here; every name reference must resolve
		or Input.Missing is returned.
*/
func (p *Project) Build() (*Build, *diagnostics.Report, error) {
	b := &builder{
		p:         p,
		report:    diagnostics.NewReport(),
		materials: make(map[string]*materials.Material),
		cons:      make(map[string]*materials.OpaqueConstruction),
		frames:    make(map[string]*windows.Frame),
		glazings:  make(map[string]windows.Glazing),
		windows:   make(map[string]*windows.Construction),
		programs:  make(map[string]*model.ProgramType),
		bridges:   make(map[string]*bridges.ThermalBridge),
		dwellings: make(map[string]*model.Dwelling),
	}
	out := &Build{}

	steps := []func(*Build) error{
		b.buildMaterials,
		b.buildConstructions,
		b.buildWindows,
		b.buildPrograms,
		b.buildBridges,
		b.buildRooms,
		b.buildSegment,
		b.buildHotWater,
		b.buildHVAC,
		b.buildShading,
	}
	for _, step := range steps {
		if err := step(out); err != nil {
			return nil, b.report, err
		}
	}
	return out, b.report, nil
}

func missing(kind, name string) error {
	return diagnostics.Errorf(diagnostics.InputMissing, name, "%s %q is not defined", kind, name)
}

func vec(subject string, xs []float64) (r3.Vec, error) {
	if len(xs) != 3 {
		return r3.Vec{}, diagnostics.Errorf(diagnostics.InputInvalid, subject, "a point needs 3 coordinates, got %d", len(xs))
	}
	return geometry.Pt(xs[0], xs[1], xs[2]), nil
}

func (b *builder) buildMaterials(*Build) error {
	for _, d := range b.p.Materials {
		t, err := d.Thickness.SI(units.QuantityLength)
		if err != nil {
			return err
		}
		k, err := d.Conductivity.SI(units.QuantityConductivity)
		if err != nil {
			return err
		}
		m, err := materials.NewMaterial(d.Name, t, k, d.Density, d.SpecificHeat)
		if err != nil {
			return err
		}
		b.materials[d.Name] = m
	}
	// grids reference the plain materials, so they are attached in a second pass
	for _, d := range b.p.Materials {
		if d.Grid == nil {
			continue
		}
		g, err := b.grid(d.Name, d.Grid)
		if err != nil {
			return err
		}
		b.materials[d.Name] = b.materials[d.Name].WithGrid(g)
	}
	return nil
}

func (b *builder) grid(name string, d *GridDef) (*materials.DivisionGrid, error) {
	lengths := func(vs []Value) ([]float64, error) {
		out := make([]float64, len(vs))
		for i, v := range vs {
			x, err := v.SI(units.QuantityLength)
			if err != nil {
				return nil, err
			}
			out[i] = x
		}
		return out, nil
	}
	cols, err := lengths(d.Columns)
	if err != nil {
		return nil, err
	}
	rows, err := lengths(d.Rows)
	if err != nil {
		return nil, err
	}
	g, err := materials.NewDivisionGrid(cols, rows)
	if err != nil {
		return nil, diagnostics.Wrap(diagnostics.KindOf(err), name, err)
	}
	for c, mname := range d.ColumnFill {
		m, ok := b.materials[mname]
		if !ok {
			return nil, missing("material", mname)
		}
		if err := g.SetColumn(c, m); err != nil {
			return nil, err
		}
	}
	for _, cell := range d.Cells {
		m, ok := b.materials[cell.Material]
		if !ok {
			return nil, missing("material", cell.Material)
		}
		if err := g.SetCell(cell.Column, cell.Row, m); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func (b *builder) buildConstructions(out *Build) error {
	for _, d := range b.p.Constructions {
		layers := make([]*materials.Material, len(d.Layers))
		for i, name := range d.Layers {
			m, ok := b.materials[name]
			if !ok {
				return missing("material", name)
			}
			layers[i] = m
		}
		c, err := materials.NewOpaqueConstruction(d.Name, layers...)
		if err != nil {
			return err
		}
		b.cons[d.Name] = c
		out.Constructions = append(out.Constructions, c)
	}
	return nil
}

func (b *builder) buildWindows(out *Build) error {
	for _, d := range b.p.Frames {
		e := windows.FrameElement{Name: d.Name, Chi: d.Chi}
		var err error
		if e.Width, err = d.Width.SI(units.QuantityLength); err != nil {
			return err
		}
		if e.UFactor, err = d.UFactor.SI(units.QuantityUValue); err != nil {
			return err
		}
		if d.UFactor == "" && d.Type != "" {
			ft, err := windows.FrameTypeFromString(d.Type)
			if err != nil {
				return err
			}
			e.UFactor = ft.DefaultUFactor()
		}
		if e.PsiGlazing, err = d.PsiGlazing.SI(units.QuantityLinearPsi); err != nil {
			return err
		}
		if e.PsiInstall, err = d.PsiInstall.SI(units.QuantityLinearPsi); err != nil {
			return err
		}
		f, err := windows.NewUniformFrame(d.Name, e)
		if err != nil {
			return err
		}
		b.frames[d.Name] = f
	}
	for _, d := range b.p.Glazings {
		u, err := d.UFactor.SI(units.QuantityUValue)
		if err != nil {
			return err
		}
		gt, err := windows.GlassTypeFromString(d.Type)
		if err != nil {
			return err
		}
		b.glazings[d.Name] = windows.Glazing{Name: d.Name, UFactor: u, GValue: d.GValue, GlassType: gt}
	}
	for _, d := range b.p.Windows {
		g, ok := b.glazings[d.Glazing]
		if !ok {
			return missing("glazing", d.Glazing)
		}
		f, ok := b.frames[d.Frame]
		if !ok {
			return missing("frame", d.Frame)
		}
		w, err := windows.NewConstruction(d.Name, g, f)
		if err != nil {
			return err
		}
		if d.UFactor != "" {
			u, err := d.UFactor.SI(units.QuantityUValue)
			if err != nil {
				return err
			}
			if w, err = w.WithUserUFactor(u); err != nil {
				return err
			}
		}
		b.windows[d.Name] = w
		out.Windows = append(out.Windows, w)
	}
	return nil
}

func (b *builder) buildPrograms(*Build) error {
	for _, d := range b.p.Programs {
		pt, err := model.NewProgramFromIP(d.Name, d.LPD, d.MELDensity, d.OperatingDays, d.OperatingHours)
		if err != nil {
			return err
		}
		b.programs[d.Name] = pt
	}
	return nil
}

// program resolves project programs first, then the built-in table. Each
// table program is loaded once so rooms naming it share one record.
func (b *builder) program(name string) (*model.ProgramType, error) {
	if name == "" {
		return nil, nil
	}
	if pt, ok := b.programs[name]; ok {
		return pt, nil
	}
	pt, err := phius.Program(name)
	if err != nil {
		return nil, err
	}
	b.programs[name] = pt
	return pt, nil
}

func (b *builder) buildBridges(*Build) error {
	for _, d := range b.p.Bridges {
		pts := make([]r3.Vec, len(d.Points))
		for i, xs := range d.Points {
			v, err := vec(d.Name, xs)
			if err != nil {
				return err
			}
			pts[i] = v
		}
		group, err := bridges.GroupTypeFromString(d.Group)
		if err != nil {
			return err
		}
		psi, err := d.Psi.SI(units.QuantityLinearPsi)
		if err != nil {
			return err
		}
		qty := d.Quantity
		if qty == 0 {
			qty = 1
		}
		tb, err := bridges.New(d.Name, geometry.NewPolyline(pts...), psi, d.FRsi, qty, group)
		if err != nil {
			return err
		}
		b.bridges[d.Name] = tb
	}
	return nil
}

func (b *builder) buildRooms(out *Build) error {
	rooms := make([]*model.Room, 0, len(b.p.Rooms))
	for _, d := range b.p.Rooms {
		r, err := b.room(d)
		if err != nil {
			return err
		}
		rooms = append(rooms, r)
	}
	out.Segment.Rooms = rooms
	return nil
}

func (b *builder) room(d RoomDef) (*model.Room, error) {
	spaces := make([]*model.Space, 0, len(d.Spaces))
	var spaceArea float64
	for _, sd := range d.Spaces {
		sp, err := b.space(sd)
		if err != nil {
			return nil, err
		}
		spaceArea += sp.FloorArea()
		spaces = append(spaces, sp)
	}

	area, err := d.FloorArea.SI(units.QuantityArea)
	if err != nil {
		return nil, err
	}
	if area == 0 {
		area = spaceArea
	}
	r, err := model.NewRoom(d.Name, d.Story, area)
	if err != nil {
		return nil, err
	}

	if pd := d.People; pd != nil {
		people := model.People{NumPeople: pd.People, NumBedrooms: pd.Bedrooms, IsDwellingUnit: !pd.NotDwelling}
		if people.IsDwellingUnit {
			key := pd.Dwelling
			if key == "" {
				key = d.Name
			}
			if _, ok := b.dwellings[key]; !ok {
				b.dwellings[key] = model.NewDwelling(key)
			}
			people.Dwelling = b.dwellings[key]
		}
		if r, err = r.WithPeople(people); err != nil {
			return nil, err
		}
	}
	pt, err := b.program(d.Program)
	if err != nil {
		return nil, err
	}
	if pt != nil {
		r = r.WithProgram(pt)
	}

	faces := make([]*model.Face, 0, len(d.Faces))
	for _, fd := range d.Faces {
		f, err := b.face(fd)
		if err != nil {
			return nil, err
		}
		faces = append(faces, f)
	}

	tbs := make([]*bridges.ThermalBridge, 0, len(d.Bridges))
	for _, name := range d.Bridges {
		tb, ok := b.bridges[name]
		if !ok {
			return nil, missing("thermal bridge", name)
		}
		tbs = append(tbs, tb)
	}
	return r.WithSpaces(spaces...).WithFaces(faces...).WithThermalBridges(tbs...), nil
}

func (b *builder) space(d SpaceDef) (*model.Space, error) {
	segs := make([]model.FloorSegment, len(d.Segments))
	for i, s := range d.Segments {
		a, err := s.Area.SI(units.QuantityArea)
		if err != nil {
			return nil, err
		}
		w := 1.0
		if s.Weighting != nil {
			w = *s.Weighting
		}
		segs[i] = model.FloorSegment{Area: a, Weighting: w}
	}
	sp, err := model.NewSpace(d.Name, d.Number, segs...)
	if err != nil {
		return nil, err
	}
	pt, err := b.program(d.Program)
	if err != nil {
		return nil, err
	}
	if pt != nil {
		sp = sp.WithProgram(pt)
	}
	return sp, nil
}

func rectangle(subject string, origin, normal []float64, width, height Value) (geometry.Face, error) {
	o, err := vec(subject, origin)
	if err != nil {
		return geometry.Face{}, err
	}
	n, err := vec(subject, normal)
	if err != nil {
		return geometry.Face{}, err
	}
	if geometry.IsZero(n) {
		return geometry.Face{}, diagnostics.Errorf(diagnostics.InputInvalid, subject, "normal must not be zero")
	}
	w, err := width.SI(units.QuantityLength)
	if err != nil {
		return geometry.Face{}, err
	}
	h, err := height.SI(units.QuantityLength)
	if err != nil {
		return geometry.Face{}, err
	}
	return geometry.Rectangle(o, n, w, h), nil
}

func (b *builder) face(d FaceDef) (*model.Face, error) {
	ft := model.FaceWall
	if d.Type != "" {
		var err error
		if ft, err = model.FaceTypeFromString(d.Type); err != nil {
			return nil, err
		}
	}
	bc, err := model.BoundaryFromString(d.Boundary)
	if err != nil {
		return nil, err
	}
	geom, err := rectangle(d.Name, d.Origin, d.Normal, d.Width, d.Height)
	if err != nil {
		return nil, err
	}
	f := &model.Face{Name: d.Name, Type: ft, Boundary: bc, Geometry: geom}
	if d.Construction != "" {
		c, ok := b.cons[d.Construction]
		if !ok {
			return nil, missing("construction", d.Construction)
		}
		f.Construction = c
	}
	for _, ad := range d.Apertures {
		ap, err := b.aperture(ad, d.Normal)
		if err != nil {
			return nil, err
		}
		f.Apertures = append(f.Apertures, ap)
	}
	return f, nil
}

func (b *builder) aperture(d ApertureDef, normal []float64) (*model.Aperture, error) {
	geom, err := rectangle(d.Name, d.Origin, normal, d.Width, d.Height)
	if err != nil {
		return nil, err
	}
	var c *windows.Construction
	if d.Window != "" {
		var ok bool
		if c, ok = b.windows[d.Window]; !ok {
			return nil, missing("window", d.Window)
		}
	}
	depth, err := d.InstallDepth.SI(units.QuantityLength)
	if err != nil {
		return nil, err
	}
	ap, err := model.NewAperture(d.Name, geom, c, depth)
	if err != nil {
		return nil, err
	}
	if od := d.Overhang; od != nil {
		var o shading.Overhang
		if o.Depth, err = od.Depth.SI(units.QuantityLength); err != nil {
			return nil, err
		}
		if o.Gap, err = od.Gap.SI(units.QuantityLength); err != nil {
			return nil, err
		}
		if o.Extension, err = od.Extension.SI(units.QuantityLength); err != nil {
			return nil, err
		}
		// the overhang sits on the outer wall plane, in front of the reveal
		f, err := o.Face(geom)
		if err != nil {
			return nil, diagnostics.Wrap(diagnostics.KindOf(err), d.Name, err)
		}
		b.winterShades = append(b.winterShades, f)
		b.summerShades = append(b.summerShades, f)
	}
	return ap, nil
}

func (b *builder) buildSegment(out *Build) error {
	p := b.p
	s := &out.Segment
	s.Name = p.Name
	s.NumFloors = p.NumFloors
	s.NumDwellings = p.NumDwellings

	s.SetPoints = bldgsegment.DefaultSetPoints()
	if p.SetPoints.Winter != "" {
		v, err := p.SetPoints.Winter.SI(units.QuantityTemperature)
		if err != nil {
			return err
		}
		s.SetPoints.Winter = v
	}
	if p.SetPoints.Summer != "" {
		v, err := p.SetPoints.Summer.SI(units.QuantityTemperature)
		if err != nil {
			return err
		}
		s.SetPoints.Summer = v
	}

	elev, err := p.Site.Elevation.SI(units.QuantityLength)
	if err != nil {
		return err
	}
	s.Site.Location = climate.Location{
		Latitude:    p.Site.Latitude,
		Longitude:   p.Site.Longitude,
		Elevation:   elev,
		TimeZone:    p.Site.TimeZone,
		ClimateZone: p.Site.ClimateZone,
	}
	if p.Site.ClimateCSV != "" {
		c, err := climate.LoadMonthlyCSV(p.Site.ClimateZone, p.path(p.Site.ClimateCSV))
		if err != nil {
			return diagnostics.Wrap(diagnostics.InputInvalid, p.Site.ClimateCSV, err)
		}
		s.Site.Climate = *c
		s.Site.Location.Source = p.Site.ClimateCSV
	} else if p.Site.WeatherCSV != "" {
		h, err := climate.LoadHourlyCSV(p.path(p.Site.WeatherCSV))
		if err != nil {
			return diagnostics.Wrap(diagnostics.InputInvalid, p.Site.WeatherCSV, err)
		}
		c, err := climate.FromHourly(p.Site.ClimateZone, s.Site.Location, h)
		if err != nil {
			return err
		}
		s.Site.Climate = *c
		s.Site.Location.Source = p.Site.WeatherCSV
	}

	if d := p.Certification.Phius; d != nil {
		c, err := phiusRecord(d)
		if err != nil {
			return err
		}
		s.Phius = c
	}
	if d := p.Certification.Phi; d != nil {
		c, err := phiRecord(d)
		if err != nil {
			return err
		}
		s.Phi = c
	}

	s.Source = userFactors("user source energy", p.Factors.Source, factors.UnitSource)
	s.CO2 = userFactors("user CO2", p.Factors.CO2, factors.UnitCO2)

	out.Fractions = phius.DefaultFractions()
	if f := p.Fractions; f != nil {
		out.Fractions = phius.Fractions{Interior: f.Interior, Exterior: f.Exterior, Garage: f.Garage}
		if err := out.Fractions.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func phiusRecord(d *PhiusDef) (*certification.PhiusCertification, error) {
	c := certification.NewPhiusCertification()
	var err error
	if d.Program != "" {
		if c.Program, err = certification.PhiusProgramFromString(d.Program); err != nil {
			return nil, err
		}
	}
	if c.Category, err = certification.BuildingCategoryFromString(d.Category); err != nil {
		return nil, err
	}
	if d.Status != "" {
		if c.Status, err = certification.BuildingStatusFromString(d.Status); err != nil {
			return nil, err
		}
	}
	th := certification.DefaultPhiusThresholds()
	t := certification.ThresholdsFromIP(d.HeatingDemand, d.CoolingDemand, d.PeakHeatLoad, d.PeakCoolLoad)
	for _, pair := range []struct {
		dst *float64
		v   float64
	}{
		{&th.HeatingDemand, t.HeatingDemand},
		{&th.CoolingDemand, t.CoolingDemand},
		{&th.PeakHeatLoad, t.PeakHeatLoad},
		{&th.PeakCoolLoad, t.PeakCoolLoad},
	} {
		if pair.v != 0 {
			*pair.dst = pair.v
		}
	}
	c.Thresholds = th
	c.SourceEnergyPerPerson = d.SourceEnergyPerPerson
	return c, nil
}

func phiRecord(d *PhiDef) (*certification.PhiCertification, error) {
	c := certification.NewPhiCertification()
	var err error
	if d.Criteria != "" {
		if c.Criteria, err = certification.PhiCriteriaFromString(d.Criteria); err != nil {
			return nil, err
		}
	}
	if d.Class != "" {
		if c.Class, err = certification.PhiClassFromString(d.Class); err != nil {
			return nil, err
		}
	}
	if d.Use != "" {
		if c.Use, err = certification.PhiBuildingUseFromString(d.Use); err != nil {
			return nil, err
		}
	}
	c.Retrofit = d.Retrofit
	return c, nil
}

// userFactors builds an override collection in sorted fuel order. Unknown
// fuels are kept; they fail validation at assembly.
func userFactors(name string, vs map[string]float64, unit string) *factors.Collection {
	if len(vs) == 0 {
		return nil
	}
	keys := make([]string, 0, len(vs))
	for k := range vs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	c := factors.NewCollection(name)
	for _, k := range keys {
		c.Set(k, vs[k], unit)
	}
	return c
}

func (b *builder) buildHotWater(out *Build) error {
	for _, d := range b.p.HotWater {
		sys, err := b.hotWater(d)
		if err != nil {
			return err
		}
		out.Segment.HotWater = append(out.Segment.HotWater, sys)
	}
	return nil
}

func (b *builder) pipe(d PipeDef, role hotwater.Role) (*hotwater.PipeElement, error) {
	seg := hotwater.PipeSegment{DailyPeriod: d.DailyPeriod, Material: hotwater.PipePEX}
	var err error
	if d.Material != "" {
		if seg.Material, err = hotwater.PipeMaterialFromString(d.Material); err != nil {
			return nil, err
		}
	}
	if seg.Diameter, err = d.Diameter.SI(units.QuantityLength); err != nil {
		return nil, err
	}
	if seg.InsulationThickness, err = d.InsulationThickness.SI(units.QuantityLength); err != nil {
		return nil, err
	}
	if seg.InsulationConductivity, err = d.InsulationK.SI(units.QuantityConductivity); err != nil {
		return nil, err
	}
	segs := make([]hotwater.PipeSegment, 0, len(d.Points))
	for i := 1; i < len(d.Points); i++ {
		p0, err := vec(d.Name, d.Points[i-1])
		if err != nil {
			return nil, err
		}
		p1, err := vec(d.Name, d.Points[i])
		if err != nil {
			return nil, err
		}
		s := seg
		s.Geometry = geometry.NewLineSegment(p0, p1)
		segs = append(segs, s)
	}
	return hotwater.NewPipeElement(d.Name, role, segs...)
}

func (b *builder) hotWater(d HotWaterDef) (*hotwater.System, error) {
	sys := hotwater.NewSystem(d.Name)
	for _, td := range d.Trunks {
		te, err := b.pipe(td.PipeDef, hotwater.RoleTrunk)
		if err != nil {
			return nil, err
		}
		trunk, err := sys.AddTrunk(te)
		if err != nil {
			return nil, err
		}
		for _, bd := range td.Branches {
			be, err := b.pipe(bd.PipeDef, hotwater.RoleBranch)
			if err != nil {
				return nil, err
			}
			branch, err := sys.AddBranch(trunk, be)
			if err != nil {
				return nil, err
			}
			for _, fd := range bd.Fixtures {
				fe, err := b.pipe(fd, hotwater.RoleFixture)
				if err != nil {
					return nil, err
				}
				if err := sys.AddFixture(branch, fe); err != nil {
					return nil, err
				}
			}
		}
	}
	for _, rd := range d.Recirc {
		re, err := b.pipe(rd, hotwater.RoleRecirc)
		if err != nil {
			return nil, err
		}
		if err := sys.AddRecirc(re); err != nil {
			return nil, err
		}
	}
	if d.TapCount > 0 {
		if err := sys.SetExplicitTapCount(d.TapCount); err != nil {
			return nil, err
		}
	}

	for _, hd := range d.Heaters {
		ht, err := hotwater.HeaterTypeFromString(hd.Type)
		if err != nil {
			return nil, err
		}
		if err := sys.AddHeater(hotwater.Heater{Name: hd.Name, Type: ht, Coverage: hd.Coverage, Efficiency: hd.Efficiency}); err != nil {
			return nil, err
		}
	}
	for _, td := range d.Tanks {
		temp := Value("60")
		if td.StorageTemperature != "" {
			temp = td.StorageTemperature
		}
		st, err := temp.SI(units.QuantityTemperature)
		if err != nil {
			return nil, err
		}
		t := &hotwater.Tank{
			Name:               td.Name,
			Volume:             td.Volume,
			StandbyLossRate:    td.StandbyLossRate,
			StorageTemperature: st,
			InConditionedSpace: td.InConditionedSpace,
		}
		switch td.Slot {
		case "", "primary":
			err = sys.AddPrimaryTank(t, b.report)
		case "buffer":
			err = sys.SetBufferTank(t, b.report)
		case "solar":
			err = sys.SetSolarTank(t, b.report)
		default:
			err = diagnostics.Errorf(diagnostics.InputInvalid, td.Name, "invalid tank slot %q", td.Slot)
		}
		if err != nil {
			return nil, err
		}
	}
	return sys, nil
}

func (b *builder) buildHVAC(out *Build) error {
	d := b.p.HVAC
	if len(d.Ventilators)+len(d.Heating)+len(d.Cooling) == 0 {
		return nil
	}
	c := &hvac.Collection{}
	for _, vd := range d.Ventilators {
		v, err := hvac.NewVentilator(vd.Name, vd.Sensible, vd.Latent, vd.Electric)
		if err != nil {
			return err
		}
		c.Ventilators = append(c.Ventilators, v)
	}
	for _, hd := range d.Heating {
		t, err := hvac.HeatingTypeFromString(hd.Type)
		if err != nil {
			return err
		}
		h, err := hvac.NewHeating(t, hd.Name, hd.Coverage)
		if err != nil {
			return err
		}
		c.Heating = append(c.Heating, h)
	}
	for _, cd := range d.Cooling {
		t, err := hvac.CoolingTypeFromString(cd.Type)
		if err != nil {
			return err
		}
		cl, err := hvac.NewCooling(t, cd.Name, cd.COP)
		if err != nil {
			return err
		}
		c.Cooling = append(c.Cooling, cl)
	}
	out.Segment.HVAC = c
	return nil
}

func months(vs []int) ([]time.Month, error) {
	out := make([]time.Month, len(vs))
	for i, v := range vs {
		if v < 1 || v > 12 {
			return nil, diagnostics.Errorf(diagnostics.InputInvalid, "shading", "month must be within [1, 12], got %d", v)
		}
		out[i] = time.Month(v)
	}
	return out, nil
}

func (b *builder) buildShading(out *Build) error {
	d := b.p.Shading
	kind := shading.Tregenza
	if d.Sky != "" {
		var err error
		if kind, err = shading.SkyKindFromString(d.Sky); err != nil {
			return err
		}
	}
	size, err := d.GridSize.SI(units.QuantityLength)
	if err != nil {
		return err
	}
	for _, sd := range d.Context {
		f, err := rectangle(sd.Name, sd.Origin, sd.Normal, sd.Width, sd.Height)
		if err != nil {
			return err
		}
		switch sd.Season {
		case "":
			b.winterShades = append(b.winterShades, f)
			b.summerShades = append(b.summerShades, f)
		case "winter":
			b.winterShades = append(b.winterShades, f)
		case "summer":
			b.summerShades = append(b.summerShades, f)
		default:
			return diagnostics.Errorf(diagnostics.InputInvalid, sd.Name, "invalid season %q", sd.Season)
		}
	}

	in := &out.Shading
	in.GridSize = size
	in.WinterShade = geometry.NewMesh(b.winterShades...)
	in.SummerShade = geometry.NewMesh(b.summerShades...)
	for _, r := range out.Segment.Rooms {
		in.Apertures = append(in.Apertures, r.Apertures()...)
	}

	if d.WeatherCSV == "" {
		in.WinterSky = shading.UniformSkyMatrix(kind, 1)
		in.SummerSky = shading.UniformSkyMatrix(kind, 1)
		return nil
	}
	weather, err := climate.LoadHourlyCSV(b.p.path(d.WeatherCSV))
	if err != nil {
		return diagnostics.Wrap(diagnostics.InputInvalid, d.WeatherCSV, err)
	}
	winter, err := months(d.WinterMonths)
	if err != nil {
		return err
	}
	summer, err := months(d.SummerMonths)
	if err != nil {
		return err
	}
	loc := out.Segment.Site.Location
	if in.WinterSky, err = shading.SkyMatrixFromHourly(kind, loc, weather, winter); err != nil {
		return err
	}
	if in.SummerSky, err = shading.SkyMatrixFromHourly(kind, loc, weather, summer); err != nil {
		return err
	}
	return nil
}
