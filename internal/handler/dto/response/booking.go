package response

import (
	"time"

	"shareit/internal/usecase/queries"
)

type BookingResponse struct {
	ID     int64          `json:"id"`
	Start  time.Time      `json:"start"`
	End    time.Time      `json:"end"`
	Status string         `json:"status"`
	Booker BookerResponse `json:"booker"`
	Item   ItemResponse   `json:"item"`
}

type BookerResponse struct {
	ID int64 `json:"id"`
}

type ItemResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func FromBookingView(v *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:     v.ID,
		Start:  v.Start,
		End:    v.End,
		Status: v.Status,
		Booker: BookerResponse{ID: v.Booker.ID},
		Item:   ItemResponse{ID: v.Item.ID, Name: v.Item.Name},
	}
}

func FromBookingViews(vs []*queries.BookingView) []*BookingResponse {
	res := make([]*BookingResponse, len(vs))
	for i, v := range vs {
		res[i] = FromBookingView(v)
	}
	return res
}

type BookingSummaryResponse struct {
	ItemID      int64               `json:"itemId"`
	NextBooking *BookingRefResponse `json:"nextBooking,omitempty"`
	LastBooking *BookingRefResponse `json:"lastBooking,omitempty"`
}

type BookingRefResponse struct {
	ID       int64 `json:"id"`
	BookerID int64 `json:"bookerId"`
}

func FromBookingSummary(s *queries.ItemBookingSummary) *BookingSummaryResponse {
	resp := &BookingSummaryResponse{ItemID: s.ItemID}
	if s.NextBooking != nil {
		resp.NextBooking = &BookingRefResponse{ID: s.NextBooking.ID, BookerID: s.NextBooking.BookerID}
	}
	if s.LastBooking != nil {
		resp.LastBooking = &BookingRefResponse{ID: s.LastBooking.ID, BookerID: s.LastBooking.BookerID}
	}
	return resp
}
