package request

import (
	"time"

	"shareit/internal/usecase/commands"
)

// Start and end are deliberately unbound here: period validation happens in the
// domain so the error body can name the exact violation.
type CreateBookingRequest struct {
	ItemID int64     `json:"itemId" binding:"required"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
}

func (r CreateBookingRequest) ToInput() commands.CreateBookingInput {
	return commands.CreateBookingInput{
		ItemID: r.ItemID,
		Start:  r.Start,
		End:    r.End,
	}
}
