package certification

import (
	"ph_calc/diagnostics"
)

// PhiCriteria is the PHI certification standard.
type PhiCriteria int

const (
	PhiPassiveHouse PhiCriteria = iota
	PhiEnerPHit
	PhiLowEnergy
)

func (c PhiCriteria) String() string {
	return [...]string{"passive_house", "enerphit", "low_energy"}[c]
}

func PhiCriteriaFromString(str string) (PhiCriteria, error) {
	for c := PhiPassiveHouse; c <= PhiLowEnergy; c++ {
		if c.String() == str {
			return c, nil
		}
	}
	return 0, diagnostics.Errorf(diagnostics.InputInvalid, str, "invalid PHI criteria")
}

// PhiClass is the PHI certification class.
type PhiClass int

const (
	PhiClassic PhiClass = iota
	PhiPlus
	PhiPremium
)

func (c PhiClass) String() string {
	return [...]string{"classic", "plus", "premium"}[c]
}

func PhiClassFromString(str string) (PhiClass, error) {
	for c := PhiClassic; c <= PhiPremium; c++ {
		if c.String() == str {
			return c, nil
		}
	}
	return 0, diagnostics.Errorf(diagnostics.InputInvalid, str, "invalid PHI class")
}

// PhiBuildingUse is the PHPP building use.
type PhiBuildingUse int

const (
	UseDwelling PhiBuildingUse = iota
	UseNursingHome
	UseOtherResidential
	UseOffice
	UseSchool
	UseOtherNonResidential
)

func (u PhiBuildingUse) String() string {
	return [...]string{
		"dwelling", "nursing_home", "other_residential",
		"office", "school", "other_non_residential",
	}[u]
}

func PhiBuildingUseFromString(str string) (PhiBuildingUse, error) {
	for u := UseDwelling; u <= UseOtherNonResidential; u++ {
		if u.String() == str {
			return u, nil
		}
	}
	return 0, diagnostics.Errorf(diagnostics.InputInvalid, str, "invalid PHI building use")
}

// Residential reports whether the use is a residential one.
func (u PhiBuildingUse) Residential() bool {
	return u <= UseOtherResidential
}

// EnerPHitMethod selects the EnerPHit verification route.
type EnerPHitMethod int

const (
	EnerPHitComponent EnerPHitMethod = iota
	EnerPHitDemand
)

func (m EnerPHitMethod) String() string {
	return [...]string{"component", "demand"}[m]
}

// PhiCertification is the PHI certification record.
type PhiCertification struct {
	Criteria       PhiCriteria
	Class          PhiClass
	Use            PhiBuildingUse
	EnerPHitMethod EnerPHitMethod
	Retrofit       bool
	PHPPVersion    int
}

// NewPhiCertification returns a Passive House Classic dwelling record.
func NewPhiCertification() *PhiCertification {
	return &PhiCertification{PHPPVersion: 10}
}

// Category derives the building category from the use.
func (c *PhiCertification) Category() BuildingCategory {
	if c.Use.Residential() {
		return CategoryResidential
	}
	return CategoryNonResidential
}

// PhiRequirements are the Passive House limits of a class.
type PhiRequirements struct {
	HeatingDemand    float64 // kWh/m2·yr
	HeatingLoad      float64 // W/m2
	Airtightness     float64 // n50, 1/h
	RenewablePrimary float64 // PER demand, kWh/m2·yr
}

// Requirements returns the Passive House limits of the record's class.
// Heating demand or heating load must be met, not both.
func (c *PhiCertification) Requirements() PhiRequirements {
	per := [...]float64{PhiClassic: 60, PhiPlus: 45, PhiPremium: 30}[c.Class]
	r := PhiRequirements{HeatingDemand: 15, HeatingLoad: 10, Airtightness: 0.6, RenewablePrimary: per}
	if c.Criteria == PhiEnerPHit {
		r.Airtightness = 1.0
	}
	return r
}
