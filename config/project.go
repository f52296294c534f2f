// Package config loads YAML project files into the calculation model and
// sets up the CLI logger.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"ph_calc/diagnostics"
	"ph_calc/units"
)

// Value is a number with an optional unit suffix ("1.5 in", "8 ft",
// "0.5"). Bare numbers are SI.
type Value string

// SI converts v into the SI unit of q. An empty value is 0.
func (v Value) SI(q units.Quantity) (float64, error) {
	if v == "" {
		return 0, nil
	}
	return units.Parse(string(v), q)
}

// Project is the top-level YAML document.
type Project struct {
	Name         string `yaml:"name"`
	NumFloors    int    `yaml:"num_floors"`
	NumDwellings int    `yaml:"num_dwellings"`

	SetPoints     SetPointsDef      `yaml:"set_points"`
	Site          SiteDef           `yaml:"site"`
	Certification CertificationDef  `yaml:"certification"`
	Factors       FactorsDef        `yaml:"factors"`
	Fractions     *FractionsDef     `yaml:"phius_fractions"`
	Materials     []MaterialDef     `yaml:"materials"`
	Constructions []ConstructionDef `yaml:"constructions"`
	Frames        []FrameDef        `yaml:"frames"`
	Glazings      []GlazingDef      `yaml:"glazings"`
	Windows       []WindowDef       `yaml:"windows"`
	Programs      []ProgramDef      `yaml:"programs"`
	Bridges       []BridgeDef       `yaml:"thermal_bridges"`
	Rooms         []RoomDef         `yaml:"rooms"`
	HotWater      []HotWaterDef     `yaml:"hot_water"`
	HVAC          HVACDef           `yaml:"hvac"`
	Shading       ShadingDef        `yaml:"shading"`

	// directory of the project file; relative CSV paths resolve against it
	dir string
}

type SetPointsDef struct {
	Winter Value `yaml:"winter"`
	Summer Value `yaml:"summer"`
}

type SiteDef struct {
	Latitude    float64 `yaml:"latitude"`
	Longitude   float64 `yaml:"longitude"`
	Elevation   Value   `yaml:"elevation"`
	TimeZone    float64 `yaml:"time_zone"`
	ClimateZone string  `yaml:"climate_zone"`
	ClimateCSV  string  `yaml:"climate_csv"`
	WeatherCSV  string  `yaml:"weather_csv"` // hourly year, used when climate_csv is empty
}

type CertificationDef struct {
	Phius *PhiusDef `yaml:"phius"`
	Phi   *PhiDef   `yaml:"phi"`
}

// PhiusDef thresholds are IP (kBtu/ft2·yr and Btu/hr·ft2), as the Phius
// climate calculator reports them. Zero keeps the default.
type PhiusDef struct {
	Program               string  `yaml:"program"`
	Category              string  `yaml:"category"`
	Status                string  `yaml:"status"`
	HeatingDemand         float64 `yaml:"heating_demand"`
	CoolingDemand         float64 `yaml:"cooling_demand"`
	PeakHeatLoad          float64 `yaml:"peak_heat_load"`
	PeakCoolLoad          float64 `yaml:"peak_cool_load"`
	SourceEnergyPerPerson float64 `yaml:"source_energy_per_person"`
}

type PhiDef struct {
	Criteria string `yaml:"criteria"`
	Class    string `yaml:"class"`
	Use      string `yaml:"use"`
	Retrofit bool   `yaml:"retrofit"`
}

// FactorsDef maps fuel names to user factor overrides.
type FactorsDef struct {
	Source map[string]float64 `yaml:"source"`
	CO2    map[string]float64 `yaml:"co2"`
}

type FractionsDef struct {
	Interior float64 `yaml:"interior"`
	Exterior float64 `yaml:"exterior"`
	Garage   float64 `yaml:"garage"`
}

type MaterialDef struct {
	Name         string   `yaml:"name"`
	Thickness    Value    `yaml:"thickness"`
	Conductivity Value    `yaml:"conductivity"`
	Density      float64  `yaml:"density"`
	SpecificHeat float64  `yaml:"specific_heat"`
	Grid         *GridDef `yaml:"grid"`
}

// GridDef divides a material into columns and rows. Columns assigns a
// whole column; Cells assigns single cells and is applied after Columns.
type GridDef struct {
	Columns    []Value        `yaml:"columns"`
	Rows       []Value        `yaml:"rows"`
	ColumnFill map[int]string `yaml:"column_materials"`
	Cells      []CellDef      `yaml:"cells"`
}

type CellDef struct {
	Column   int    `yaml:"column"`
	Row      int    `yaml:"row"`
	Material string `yaml:"material"`
}

type ConstructionDef struct {
	Name   string   `yaml:"name"`
	Layers []string `yaml:"layers"`
}

type FrameDef struct {
	Name       string  `yaml:"name"`
	Width      Value   `yaml:"width"`
	UFactor    Value   `yaml:"u_factor"`   // defaults from frame_type when empty
	Type       string  `yaml:"frame_type"` // resin, wood, mixed_wood, mixed_resin, aluminum
	PsiGlazing Value   `yaml:"psi_glazing"`
	PsiInstall Value   `yaml:"psi_install"`
	Chi        float64 `yaml:"chi"`
}

type GlazingDef struct {
	Name    string  `yaml:"name"`
	UFactor Value   `yaml:"u_factor"`
	GValue  float64 `yaml:"g_value"`
	Type    string  `yaml:"glass_type"` // single or multiple (default)
}

type WindowDef struct {
	Name    string `yaml:"name"`
	Glazing string `yaml:"glazing"`
	Frame   string `yaml:"frame"`
	UFactor Value  `yaml:"u_factor"` // user Uw, overrides the composition
}

// ProgramDef is a project-specific program in IP units. Rooms and spaces
// may also name a program of the built-in Phius table.
type ProgramDef struct {
	Name           string  `yaml:"name"`
	LPD            float64 `yaml:"lpd"`         // W/ft2
	MELDensity     float64 `yaml:"mel_density"` // kWh/ft2·yr
	OperatingDays  float64 `yaml:"operating_days"`
	OperatingHours float64 `yaml:"operating_hours"`
}

type BridgeDef struct {
	Name     string      `yaml:"name"`
	Group    string      `yaml:"group"`
	Psi      Value       `yaml:"psi"`
	FRsi     float64     `yaml:"frsi"`
	Quantity float64     `yaml:"quantity"`
	Points   [][]float64 `yaml:"points"`
}

type PeopleDef struct {
	People      float64 `yaml:"people"`
	Bedrooms    int     `yaml:"bedrooms"`
	Dwelling    string  `yaml:"dwelling"` // rooms naming the same dwelling share it
	NotDwelling bool    `yaml:"not_dwelling_unit"`
}

type RoomDef struct {
	Name      string     `yaml:"name"`
	Story     string     `yaml:"story"`
	FloorArea Value      `yaml:"floor_area"`
	People    *PeopleDef `yaml:"people"`
	Program   string     `yaml:"program"`
	Bridges   []string   `yaml:"thermal_bridges"`
	Spaces    []SpaceDef `yaml:"spaces"`
	Faces     []FaceDef  `yaml:"faces"`
}

type SpaceDef struct {
	Name     string       `yaml:"name"`
	Number   string       `yaml:"number"`
	Program  string       `yaml:"program"`
	Segments []SegmentDef `yaml:"floor_segments"`
}

type SegmentDef struct {
	Area      Value    `yaml:"area"`
	Weighting *float64 `yaml:"weighting"` // default 1
}

// FaceDef is a vertical rectangle given by its bottom-left corner seen
// from outside, its outward normal and its extents.
type FaceDef struct {
	Name         string        `yaml:"name"`
	Type         string        `yaml:"type"`
	Boundary     string        `yaml:"boundary"`
	Construction string        `yaml:"construction"`
	Origin       []float64     `yaml:"origin"`
	Normal       []float64     `yaml:"normal"`
	Width        Value         `yaml:"width"`
	Height       Value         `yaml:"height"`
	Apertures    []ApertureDef `yaml:"apertures"`
}

type ApertureDef struct {
	Name         string       `yaml:"name"`
	Window       string       `yaml:"window"`
	Origin       []float64    `yaml:"origin"`
	Width        Value        `yaml:"width"`
	Height       Value        `yaml:"height"`
	InstallDepth Value        `yaml:"install_depth"`
	Overhang     *OverhangDef `yaml:"overhang"`
}

type OverhangDef struct {
	Depth     Value `yaml:"depth"`
	Gap       Value `yaml:"gap"`
	Extension Value `yaml:"extension"`
}

type HotWaterDef struct {
	Name     string      `yaml:"name"`
	TapCount int         `yaml:"tap_count"` // 0 = count the fixtures
	Heaters  []HeaterDef `yaml:"heaters"`
	Tanks    []TankDef   `yaml:"tanks"`
	Trunks   []TrunkDef  `yaml:"trunks"`
	Recirc   []PipeDef   `yaml:"recirculation"`
}

type HeaterDef struct {
	Name       string  `yaml:"name"`
	Type       string  `yaml:"type"`
	Coverage   float64 `yaml:"coverage"`
	Efficiency float64 `yaml:"efficiency"`
}

type TankDef struct {
	Name               string  `yaml:"name"`
	Slot               string  `yaml:"slot"` // primary (default), buffer, solar
	Volume             float64 `yaml:"volume"`
	StandbyLossRate    float64 `yaml:"standby_loss_rate"`
	StorageTemperature Value   `yaml:"storage_temperature"`
	InConditionedSpace bool    `yaml:"in_conditioned_space"`
}

type PipeDef struct {
	Name                string      `yaml:"name"`
	Material            string      `yaml:"material"`
	Diameter            Value       `yaml:"diameter"`
	InsulationThickness Value       `yaml:"insulation_thickness"`
	InsulationK         Value       `yaml:"insulation_conductivity"`
	DailyPeriod         float64     `yaml:"daily_period"`
	Points              [][]float64 `yaml:"points"`
}

type TrunkDef struct {
	PipeDef  `yaml:",inline"`
	Branches []BranchDef `yaml:"branches"`
}

type BranchDef struct {
	PipeDef  `yaml:",inline"`
	Fixtures []PipeDef `yaml:"fixtures"`
}

type HVACDef struct {
	Ventilators []VentilatorDef `yaml:"ventilators"`
	Heating     []DeviceDef     `yaml:"heating"`
	Cooling     []DeviceDef     `yaml:"cooling"`
}

type VentilatorDef struct {
	Name     string  `yaml:"name"`
	Sensible float64 `yaml:"sensible_efficiency"`
	Latent   float64 `yaml:"latent_efficiency"`
	Electric float64 `yaml:"electric_efficiency"` // Wh/m3
}

// DeviceDef describes a heating (Coverage) or cooling (COP) device.
type DeviceDef struct {
	Name     string  `yaml:"name"`
	Type     string  `yaml:"type"`
	Coverage float64 `yaml:"coverage"`
	COP      float64 `yaml:"cop"`
}

// ShadingDef configures the shading solver. Without a weather file the
// skies are uniform.
type ShadingDef struct {
	Sky          string     `yaml:"sky"`
	WeatherCSV   string     `yaml:"weather_csv"`
	WinterMonths []int      `yaml:"winter_months"`
	SummerMonths []int      `yaml:"summer_months"`
	GridSize     Value      `yaml:"grid_size"`
	Context      []ShadeDef `yaml:"context"`
}

// ShadeDef is a rectangular context obstruction seen in both seasons
// unless Season says otherwise.
type ShadeDef struct {
	Name   string    `yaml:"name"`
	Season string    `yaml:"season"` // "", winter, summer
	Origin []float64 `yaml:"origin"`
	Normal []float64 `yaml:"normal"`
	Width  Value     `yaml:"width"`
	Height Value     `yaml:"height"`
}

// Load reads a project from a YAML file.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading project file: %w", err)
	}
	return Parse(data, filepath.Dir(path))
}

// Parse decodes a YAML project. dir is the base for relative CSV paths.
func Parse(data []byte, dir string) (*Project, error) {
	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing project YAML: %w", diagnostics.Wrap(diagnostics.InputInvalid, "project", err))
	}
	p.dir = dir
	return &p, nil
}

func (p *Project) path(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(p.dir, name)
}
