package bridges

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ph_calc/diagnostics"
	"ph_calc/geometry"
)

func TestThermalBridgeLength(t *testing.T) {
	p := geometry.NewPolyline(geometry.Pt(0, 0, 0), geometry.Pt(4, 0, 0), geometry.Pt(4, 3, 0))
	tb, err := New("corner", p, 0.05, 0.8, 2, GroupAmbient)
	require.NoError(t, err)

	assert.InDelta(t, 7.0, tb.Length(), 1e-12)
	assert.InDelta(t, 0.05*7*2, tb.HeatLoss(), 1e-12)
	assert.NotEmpty(t, tb.ID())
	assert.Equal(t, tb.ID(), tb.Duplicate().ID())
}

func TestThermalBridgeValidation(t *testing.T) {
	_, err := New("x", nil, 0.1, 0.5, 1, GroupAmbient)
	assert.ErrorIs(t, err, diagnostics.InputMissing)

	seg := geometry.NewLineSegment(geometry.Pt(0, 0, 0), geometry.Pt(1, 0, 0))
	_, err = New("x", seg, 0.1, 1.5, 1, GroupAmbient)
	assert.ErrorIs(t, err, diagnostics.InputInvalid)
}

func TestTableDeduplicates(t *testing.T) {
	seg := geometry.NewLineSegment(geometry.Pt(0, 0, 0), geometry.Pt(2, 0, 0))
	shared, err := New("sill", seg, 0.02, 0.9, 1, GroupPerimeter)
	require.NoError(t, err)
	other, err := New("head", seg, 0.01, 0.9, 1, GroupAmbient)
	require.NoError(t, err)

	table := NewTable()
	for i := 0; i < 5; i++ {
		table.Add(shared.Duplicate())
	}
	assert.True(t, table.Add(other))
	assert.False(t, table.Add(other))

	assert.Equal(t, 2, table.Len())
	assert.Equal(t, shared.ID(), table.All()[0].ID())
	assert.InDelta(t, 0.06, table.HeatLoss(), 1e-12)

	got, ok := table.Get(other.ID())
	require.True(t, ok)
	assert.Equal(t, "head", got.DisplayName)
}

func TestGroupType(t *testing.T) {
	g, err := GroupTypeFromString("16:Perimeter")
	require.NoError(t, err)
	assert.Equal(t, GroupPerimeter, g)
	assert.Equal(t, "17:FS/BC", GroupUnderslab.String())
	_, err = GroupTypeFromString("99")
	assert.Error(t, err)
}
