package diagnostics

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorIsKind(t *testing.T) {
	err := Errorf(PhiusMissingSpaces, "Room 1", "room has no spaces")
	wrapped := fmt.Errorf("calculating: %w", err)

	assert.True(t, errors.Is(wrapped, PhiusMissingSpaces))
	assert.False(t, errors.Is(wrapped, PhiusMissingOccupancy))
	assert.Equal(t, PhiusMissingSpaces, KindOf(wrapped))
	assert.Equal(t, "Phius.MissingSpaces [Room 1]: room has no spaces", err.Error())
}

func TestWrapUnwraps(t *testing.T) {
	inner := errors.New("boom")
	err := Wrap(InputInvalid, "", inner)

	assert.ErrorIs(t, err, inner)
	assert.ErrorIs(t, err, InputInvalid)
}

func TestReport(t *testing.T) {
	r := NewReport()
	r.Warn(ShadingSuspiciousFactor, "w1", "factor %.4f", 1.0)
	r.Warn(ShadingSuspiciousFactor, "w2", "factor %.4f", 0.0)
	r.Warn(HeteroThicknessMismatch, "stud", "thickness differs")

	assert.Equal(t, 3, r.Len())
	assert.Equal(t, 2, r.Count(ShadingSuspiciousFactor))
	assert.True(t, r.Has(HeteroThicknessMismatch))
	assert.False(t, r.Has(HWDetached))

	other := NewReport()
	other.Warn(HWDetached, "", "x")
	r.Merge(other)
	assert.True(t, r.Has(HWDetached))

	var nilReport *Report
	nilReport.Warn(HWDetached, "", "dropped")
	assert.Equal(t, 0, nilReport.Len())
}
