package diagnostics

import (
	"errors"
	"fmt"
)

// Kind identifies a diagnostic in the error taxonomy. Kind values are
// sentinel errors: errors.Is(err, PhiusMissingSpaces) works on any *Error
// produced by the core.
type Kind string

func (k Kind) Error() string { return string(k) }

// Error kinds.
const (
	InputMissing             Kind = "Input.Missing"
	InputInvalid             Kind = "Input.Invalid"
	InputUnitUnrecognized    Kind = "Input.UnitUnrecognized"
	FactorUnknownFuel        Kind = "Factor.UnknownFuel"
	HeteroConductivityHigh   Kind = "Hetero.ConductivityTooHigh"
	HeteroThicknessMismatch  Kind = "Hetero.ThicknessMismatch"
	HWDetached               Kind = "HW.Detached"
	GeoDegenerateAperture    Kind = "Geo.DegenerateAperture"
	ShadingSuspiciousFactor  Kind = "Shading.SuspiciousFactor"
	PhiusMissingSpaces       Kind = "Phius.MissingSpaces"
	PhiusMissingOccupancy    Kind = "Phius.MissingOccupancy"
	HotWaterSlotReplaced     Kind = "HW.SlotReplaced"
	HotWaterCoverageMismatch Kind = "HW.CoverageMismatch"
	PhiusNoResidentialRooms  Kind = "Phius.NoResidentialRooms"
	PhiusSingleStory         Kind = "Phius.SingleStory"
	HVACCoverageMismatch     Kind = "HVAC.CoverageMismatch"
)

// Error is a fatal diagnostic. Subject names the entity at fault (room name,
// material name, fuel name...).
type Error struct {
	Kind    Kind
	Subject string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := string(e.Kind)
	if e.Subject != "" {
		msg += " [" + e.Subject + "]"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is matches on Kind so callers can compare against the Kind sentinels.
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && e.Kind == k
}

func (e *Error) Unwrap() error { return e.Err }

// Errorf builds an *Error of the given kind.
func Errorf(kind Kind, subject string, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Subject: subject, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an *Error of the given kind around err.
func Wrap(kind Kind, subject string, err error) *Error {
	return &Error{Kind: kind, Subject: subject, Err: err}
}

// KindOf returns the kind of err, or "" if err is not a diagnostics error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	var k Kind
	if errors.As(err, &k) {
		return k
	}
	return ""
}
