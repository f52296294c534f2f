package diagnostics

import "fmt"

// Warning is a non-fatal diagnostic.
type Warning struct {
	Kind    Kind
	Subject string
	Message string
}

func (w Warning) String() string {
	if w.Subject == "" {
		return fmt.Sprintf("%s: %s", w.Kind, w.Message)
	}
	return fmt.Sprintf("%s [%s]: %s", w.Kind, w.Subject, w.Message)
}

// Report accumulates the warnings of one operation. The zero value is ready
// to use; a nil *Report silently discards warnings.
type Report struct {
	Warnings []Warning
}

// NewReport returns an empty report.
func NewReport() *Report {
	return &Report{}
}

// Warn appends a warning.
func (r *Report) Warn(kind Kind, subject string, format string, args ...interface{}) {
	if r == nil {
		return
	}
	r.Warnings = append(r.Warnings, Warning{
		Kind:    kind,
		Subject: subject,
		Message: fmt.Sprintf(format, args...),
	})
}

// Merge appends all warnings of other, in order.
func (r *Report) Merge(other *Report) {
	if r == nil || other == nil {
		return
	}
	r.Warnings = append(r.Warnings, other.Warnings...)
}

// Has reports whether at least one warning of the given kind was recorded.
func (r *Report) Has(kind Kind) bool {
	return r.Count(kind) > 0
}

// Count returns the number of warnings of the given kind.
func (r *Report) Count(kind Kind) int {
	if r == nil {
		return 0
	}
	n := 0
	for _, w := range r.Warnings {
		if w.Kind == kind {
			n++
		}
	}
	return n
}

// Len returns the number of warnings.
func (r *Report) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Warnings)
}
