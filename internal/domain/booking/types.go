package booking

import (
	"time"

	"shareit/internal/pkg/errs"
)

var ErrInvalidStatus = errs.New("invalid booking status")

// Status is the lifecycle state of a booking. WAITING is the initial state;
// APPROVED and REJECTED are terminal.
type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusWaiting, StatusApproved, StatusRejected:
		return Status(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// Period is the half-open-ended time range a booking covers. Well-formedness
// (start before end, start in the future) is the input boundary's job; the
// period itself only carries the values.
type Period struct {
	start time.Time
	end   time.Time
}

func NewPeriod(start, end time.Time) Period {
	return Period{start: start, end: end}
}

func (p Period) Start() time.Time { return p.start }
func (p Period) End() time.Time   { return p.end }
