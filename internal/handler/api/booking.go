package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	reqdto "shareit/internal/handler/dto/request"
	resdto "shareit/internal/handler/dto/response"
	"shareit/internal/handler/middleware"
	"shareit/internal/pkg/metrics"
	"shareit/internal/usecase/commands"
	"shareit/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

const (
	defaultListState = "ALL"
	defaultListFrom  = "0"
	defaultListSize  = "20"
)

type BookingHandler struct {
	bookingCommands commands.BookingCommands
	bookingQueries  queries.BookingQueries
}

func NewBookingHandler(bookingCommands commands.BookingCommands, bookingQueries queries.BookingQueries) *BookingHandler {
	return &BookingHandler{
		bookingCommands: bookingCommands,
		bookingQueries:  bookingQueries,
	}
}

// @Summary Create booking
// @Description Open a WAITING booking for an item
// @Tags bookings
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header int true "Acting user id"
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req reqdto.CreateBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	view, err := h.bookingCommands.Create(c.Request.Context(), userID, req.ToInput())
	if err != nil {
		h.mapCommandError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromBookingView(view))
}

// @Summary Decide booking
// @Description Approve or reject a WAITING booking as the item owner
// @Tags bookings
// @Produce json
// @Param X-Sharer-User-Id header int true "Acting user id"
// @Param bookingId path int true "Booking id"
// @Param approved query bool true "Verdict"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{bookingId} [patch]
func (h *BookingHandler) ApproveBooking(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	bookingID, err := parseID(c.Param("bookingId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID format"})
		return
	}

	approved, err := strconv.ParseBool(c.Query("approved"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "approved query parameter is required"})
		return
	}

	view, cmdErr := h.bookingCommands.Approve(c.Request.Context(), userID, bookingID, approved)
	if cmdErr != nil {
		h.mapCommandError(c, cmdErr)
		return
	}

	if approved {
		metrics.IncDecision("approved")
	} else {
		metrics.IncDecision("rejected")
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary Get booking
// @Description Get a booking, visible to its booker and the item owner
// @Tags bookings
// @Produce json
// @Param X-Sharer-User-Id header int true "Acting user id"
// @Param bookingId path int true "Booking id"
// @Success 200 {object} resdto.BookingResponse
// @Failure 404 {object} map[string]string
// @Router /bookings/{bookingId} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	bookingID, err := parseID(c.Param("bookingId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID format"})
		return
	}

	view, err := h.bookingQueries.GetByID(c.Request.Context(), userID, bookingID)
	if err != nil {
		h.mapQueryError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary List bookings for booker
// @Description List the acting user's bookings filtered by state
// @Tags bookings
// @Produce json
// @Param X-Sharer-User-Id header int true "Acting user id"
// @Param state query string false "ALL, CURRENT, PAST, FUTURE, WAITING or REJECTED" default(ALL)
// @Param from query int false "Offset hint" default(0)
// @Param size query int false "Page size" default(20)
// @Success 200 {array} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings [get]
func (h *BookingHandler) ListBookings(c *gin.Context) {
	h.list(c, h.bookingQueries.ListForBooker)
}

// @Summary List bookings for owner
// @Description List bookings on the acting user's items filtered by state
// @Tags bookings
// @Produce json
// @Param X-Sharer-User-Id header int true "Acting user id"
// @Param state query string false "ALL, CURRENT, PAST, FUTURE, WAITING or REJECTED" default(ALL)
// @Param from query int false "Offset hint" default(0)
// @Param size query int false "Page size" default(20)
// @Success 200 {array} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/owner [get]
func (h *BookingHandler) ListOwnerBookings(c *gin.Context) {
	h.list(c, h.bookingQueries.ListForOwner)
}

func (h *BookingHandler) list(
	c *gin.Context,
	query func(ctx context.Context, actorID int64, state queries.StateFilter, from, size int) ([]*queries.BookingView, error),
) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	rawState := c.DefaultQuery("state", defaultListState)
	state, err := queries.ParseStateFilter(rawState)
	if err != nil {
		// Clients key off this exact message shape.
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown state: " + rawState})
		return
	}

	from, err := strconv.Atoi(c.DefaultQuery("from", defaultListFrom))
	if err != nil || from < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from must be a non-negative integer"})
		return
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", defaultListSize))
	if err != nil || size <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "size must be a positive integer"})
		return
	}

	views, err := query(c.Request.Context(), userID, state, from, size)
	if err != nil {
		h.mapQueryError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingViews(views))
}

// Self-booking and foreign approval report NOT_FOUND rather than FORBIDDEN so
// the response does not confirm the booking exists.
func (h *BookingHandler) mapCommandError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case errors.Is(err, commands.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
	case errors.Is(err, commands.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
	case errors.Is(err, commands.ErrOwnItemBooking):
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
	case errors.Is(err, commands.ErrApproveNotAllowed):
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
	case errors.Is(err, commands.ErrItemNotAvailable):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Item is not available"})
	case errors.Is(err, commands.ErrBookingNotWaiting):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Booking is not waiting for approval"})
	case errors.Is(err, commands.ErrInvalidPeriod):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking period"})
	case errors.Is(err, commands.ErrDataConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Data conflict"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func (h *BookingHandler) mapQueryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, queries.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case errors.Is(err, queries.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
	case errors.Is(err, queries.ErrBookingNotBelong):
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
	case errors.Is(err, queries.ErrNoSuchStateForBookingSearch):
		c.JSON(http.StatusNotImplemented, gin.H{"error": "State filter not supported"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func parseID(raw string) (int64, error) {
	return strconv.ParseInt(raw, 10, 64)
}
