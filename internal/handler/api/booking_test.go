//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/handler/api"
	"shareit/internal/handler/middleware"
	"shareit/internal/usecase/commands"
	"shareit/internal/usecase/queries"
	"shareit/tests/common/builder"
	"shareit/tests/common/httptest"
	commandsmock "shareit/tests/mock/commands"
	queriesmock "shareit/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	handler      *api.BookingHandler
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockQueries)

	identity := middleware.NewIdentityMiddleware()
	bookings := s.router.Group("/bookings")
	bookings.Use(identity.RequireUser())
	bookings.POST("", s.handler.CreateBooking)
	bookings.GET("", s.handler.ListBookings)
	bookings.GET("/owner", s.handler.ListOwnerBookings)
	bookings.GET("/:bookingId", s.handler.GetBooking)
	bookings.PATCH("/:bookingId", s.handler.ApproveBooking)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

func createBody() map[string]any {
	return map[string]any{
		"itemId": 100,
		"start":  builder.BaseTime.Add(24 * time.Hour).Format(time.RFC3339),
		"end":    builder.BaseTime.Add(48 * time.Hour).Format(time.RFC3339),
	}
}

// ================================================================================
// TestCreateBooking
// ================================================================================

func (s *BookingHandlerTestSuite) TestCreateBooking() {
	url := "/bookings"
	returnView := builder.NewBookingBuilder().BuildView()

	s.Run("success: returns 201 Created with the booking view", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), int64(10), gomock.Any()).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, createBody(), 10)

		var resp struct {
			ID     int64  `json:"id"`
			Status string `json:"status"`
			Booker struct {
				ID int64 `json:"id"`
			} `json:"booker"`
		}
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &resp)
		s.Equal(int64(1), resp.ID)
		s.Equal("WAITING", resp.Status)
		s.Equal(int64(10), resp.Booker.ID)
	})

	s.Run("missing identity header: 400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, createBody(), 0)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "X-Sharer-User-Id")
	})

	s.Run("unknown item: 404", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), int64(10), gomock.Any()).
			Return(nil, commands.ErrItemNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, createBody(), 10)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Item not found")
	})

	s.Run("own item: 404 disguises the booking", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), int64(20), gomock.Any()).
			Return(nil, commands.ErrOwnItemBooking).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, createBody(), 20)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Booking not found")
	})

	s.Run("unavailable item: 400", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), int64(10), gomock.Any()).
			Return(nil, commands.ErrItemNotAvailable).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, createBody(), 10)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "not available")
	})

	s.Run("invalid period: 400", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), int64(10), gomock.Any()).
			Return(nil, commands.ErrInvalidPeriod).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, createBody(), 10)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "period")
	})

	s.Run("missing itemId: 400 without reaching the use case", func() {
		body := createBody()
		delete(body, "itemId")

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, 10)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

// ================================================================================
// TestApproveBooking
// ================================================================================

func (s *BookingHandlerTestSuite) TestApproveBooking() {
	s.Run("success: owner approves", func() {
		returnView := builder.NewBookingBuilder().WithStatus(booking.StatusApproved).BuildView()
		s.mockCommands.EXPECT().Approve(gomock.Any(), int64(20), int64(1), true).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/bookings/1?approved=true", nil, 20)

		var resp struct {
			Status string `json:"status"`
		}
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal("APPROVED", resp.Status)
	})

	s.Run("missing approved parameter: 400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/bookings/1", nil, 20)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "approved")
	})

	s.Run("non-owner: 404", func() {
		s.mockCommands.EXPECT().Approve(gomock.Any(), int64(10), int64(1), true).
			Return(nil, commands.ErrApproveNotAllowed).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/bookings/1?approved=true", nil, 10)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Booking not found")
	})

	s.Run("already decided: 400", func() {
		s.mockCommands.EXPECT().Approve(gomock.Any(), int64(20), int64(1), false).
			Return(nil, commands.ErrBookingNotWaiting).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/bookings/1?approved=false", nil, 20)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "waiting")
	})

	s.Run("invalid booking id: 400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/bookings/abc?approved=true", nil, 20)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid booking ID")
	})
}

// ================================================================================
// TestGetBooking
// ================================================================================

func (s *BookingHandlerTestSuite) TestGetBooking() {
	s.Run("success: booker reads own booking", func() {
		returnView := builder.NewBookingBuilder().BuildView()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), int64(10), int64(1)).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/1", nil, 10)

		var resp struct {
			ID   int64 `json:"id"`
			Item struct {
				ID   int64  `json:"id"`
				Name string `json:"name"`
			} `json:"item"`
		}
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal(int64(100), resp.Item.ID)
		s.Equal("cordless drill", resp.Item.Name)
	})

	s.Run("stranger: 404", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), int64(30), int64(1)).
			Return(nil, queries.ErrBookingNotBelong).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/1", nil, 30)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Booking not found")
	})
}

// ================================================================================
// TestListBookings
// ================================================================================

func (s *BookingHandlerTestSuite) TestListBookings() {
	s.Run("defaults: state ALL, from 0, size 20", func() {
		s.mockQueries.EXPECT().
			ListForBooker(gomock.Any(), int64(10), queries.StateAll, 0, 20).
			Return([]*queries.BookingView{builder.NewBookingBuilder().BuildView()}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings", nil, 10)

		var resp []struct {
			ID int64 `json:"id"`
		}
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Len(resp, 1)
	})

	s.Run("explicit state and window", func() {
		s.mockQueries.EXPECT().
			ListForBooker(gomock.Any(), int64(10), queries.StatePast, 7, 5).
			Return([]*queries.BookingView{}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings?state=PAST&from=7&size=5", nil, 10)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("unknown state literal: 400 with the literal echoed", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings?state=SOMEDAY", nil, 10)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Unknown state: SOMEDAY")
	})

	s.Run("negative from: 400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings?from=-1", nil, 10)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "from")
	})

	s.Run("zero size: 400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings?size=0", nil, 10)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "size")
	})

	s.Run("unknown user: 404", func() {
		s.mockQueries.EXPECT().
			ListForBooker(gomock.Any(), int64(99), queries.StateAll, 0, 20).
			Return(nil, queries.ErrUserNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings", nil, 99)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "User not found")
	})

	s.Run("owner listing dispatches to the owner query", func() {
		s.mockQueries.EXPECT().
			ListForOwner(gomock.Any(), int64(20), queries.StateWaiting, 0, 20).
			Return([]*queries.BookingView{}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/owner?state=WAITING", nil, 20)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})
}
