package hvac

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ph_calc/diagnostics"
)

func TestNewHeatingEveryTag(t *testing.T) {
	for tag := HeatingElectric; tag <= HeatingHeatPumpCombined; tag++ {
		h, err := NewHeating(tag, tag.String(), 0.5)
		require.NoError(t, err, tag.String())
		assert.Equal(t, tag, h.Type())
		assert.Equal(t, tag.String(), Base(h).Name)
		assert.NotEmpty(t, Base(h).ID)

		parsed, err := HeatingTypeFromString(tag.String())
		require.NoError(t, err)
		assert.Equal(t, tag, parsed)
	}

	_, err := NewHeating(HeatingType(99), "x", 1)
	assert.ErrorIs(t, err, diagnostics.InputInvalid)
	_, err = NewHeating(HeatingElectric, "x", 1.2)
	assert.ErrorIs(t, err, diagnostics.InputInvalid)
}

func TestHeatingVariantFields(t *testing.T) {
	h, err := NewHeating(HeatingBoilerFossil, "boiler", 1)
	require.NoError(t, err)
	b, ok := h.(*FossilBoiler)
	require.True(t, ok)
	assert.Equal(t, "NATURAL_GAS", b.Fuel)

	b.EfficiencyFullLoad = 1.3
	assert.ErrorIs(t, b.Validate(), diagnostics.InputInvalid)

	hp := &HeatPumpMonthly{COP1: 2, AmbientTemp1: -10, COP2: 4, AmbientTemp2: 10}
	assert.InDelta(t, 3.0, hp.COPAt(0), 1e-12)
}

func TestNewCooling(t *testing.T) {
	for tag := CoolingVentilation; tag <= CoolingPanel; tag++ {
		c, err := NewCooling(tag, "c", 3)
		require.NoError(t, err)
		assert.Equal(t, tag, c.Type())
		assert.Equal(t, 3.0, CoolingBaseOf(c).AnnualCOP)
	}
	_, err := NewCooling(CoolingPanel, "c", 0)
	assert.ErrorIs(t, err, diagnostics.InputInvalid)
}

func TestCollection(t *testing.T) {
	hp, err := NewHeating(HeatingHeatPumpAnnual, "hp", 0.8)
	require.NoError(t, err)
	el, err := NewHeating(HeatingElectric, "el", 0.1)
	require.NoError(t, err)
	erv, err := NewVentilator("erv", 0.84, 0.6, 0.45)
	require.NoError(t, err)

	c := &Collection{
		Ventilators: []*Ventilator{erv},
		Heating:     []Heating{hp, el},
		Supportive: []SupportiveDevice{
			{Name: "pump", Type: DeviceHeatingPump, Quantity: 2, Power: 25, AnnualRuntime: 5000},
		},
		Renewables: []PVSystem{{Name: "roof", AnnualYield: 5000, UtilizationFactor: 0.6}},
		Exhaust:    []ExhaustVentilator{{Name: "hood", Type: ExhaustKitchenHood, Airflow: 0.1, AnnualRuntime: 60}},
	}

	report := diagnostics.NewReport()
	require.NoError(t, c.Validate(report))
	assert.True(t, report.Has(diagnostics.HVACCoverageMismatch))
	assert.InDelta(t, 0.9, c.HeatingCoverage(), 1e-12)
	assert.InDelta(t, 250.0, c.SupportiveEnergy(), 1e-12)
	assert.InDelta(t, 3000.0, c.RenewableYield(), 1e-12)
	assert.InDelta(t, 360.0, c.Exhaust[0].AnnualVolume(), 1e-12)

	c.Supportive = append(c.Supportive, SupportiveDevice{Name: "bad", AnnualRuntime: 9000})
	assert.ErrorIs(t, c.Validate(nil), diagnostics.InputInvalid)
}

func TestVentilatorValidate(t *testing.T) {
	_, err := NewVentilator("erv", 1.2, 0, 0.45)
	assert.ErrorIs(t, err, diagnostics.InputInvalid)
}
