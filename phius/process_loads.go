package phius

import (
	"ph_calc/model"
)

// ApplyProcessLoads spreads the four residential totals evenly over rooms.
// Each returned room is a duplicate carrying four process loads of
// total/len(rooms); the exterior and garage lighting loads are outside the
// conditioned space.
func ApplyProcessLoads(rooms []*model.Room, totals Loads) []*model.Room {
	if len(rooms) == 0 {
		return nil
	}
	n := float64(len(rooms))
	loads := []model.ProcessLoad{
		{Name: "Phius MEL", Type: model.LoadMEL, AnnualEnergy: totals.MEL / n, InConditionedSpace: true},
		{Name: "Phius Lighting Interior", Type: model.LoadLightingInterior, AnnualEnergy: totals.LightingInterior / n, InConditionedSpace: true},
		{Name: "Phius Lighting Exterior", Type: model.LoadLightingExterior, AnnualEnergy: totals.LightingExterior / n},
		{Name: "Phius Lighting Garage", Type: model.LoadLightingGarage, AnnualEnergy: totals.LightingGarage / n},
	}
	out := make([]*model.Room, len(rooms))
	for i, r := range rooms {
		out[i] = r.WithProcessLoads(loads...)
	}
	return out
}
