package booking

import (
	"time"

	"shareit/internal/pkg/clock"
)

// Violation is a single validation failure for a candidate booking period.
type Violation string

const (
	ViolationStartMissing Violation = "start is required"
	ViolationEndMissing   Violation = "end is required"
	ViolationStartInPast  Violation = "start must be in the future"
	ViolationEndNotAfter  Violation = "end must be after start"
)

// PeriodValidator checks a candidate period and returns every violation found.
// It is injected into the command layer rather than rebuilt per call.
type PeriodValidator func(p Period, now time.Time) []Violation

func NewPeriodValidator() PeriodValidator {
	return func(p Period, now time.Time) []Violation {
		var vs []Violation
		if p.Start().IsZero() {
			vs = append(vs, ViolationStartMissing)
		}
		if p.End().IsZero() {
			vs = append(vs, ViolationEndMissing)
		}
		if len(vs) > 0 {
			return vs
		}
		if !p.Start().After(now) {
			vs = append(vs, ViolationStartInPast)
		}
		if !p.End().After(p.Start()) {
			vs = append(vs, ViolationEndNotAfter)
		}
		return vs
	}
}

// Services bundles the pure dependencies the booking domain needs.
type Services struct {
	Clock           clock.Clock
	PeriodValidator PeriodValidator
}
