//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"shareit/internal/handler/api"
	"shareit/internal/usecase/queries"
	"shareit/tests/common/httptest"
	queriesmock "shareit/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type SummaryHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockSummaryQueries
}

func (s *SummaryHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockSummaryQueries(s.mockCtrl)
	handler := api.NewSummaryHandler(s.mockQueries)

	s.router.GET("/internal/items/:itemId/booking-summary", handler.GetItemSummary)
	s.router.GET("/internal/items/:itemId/comment-eligibility", handler.GetCommentEligibility)
}

func (s *SummaryHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestSummaryHandlerSuite(t *testing.T) {
	suite.Run(t, new(SummaryHandlerTestSuite))
}

func (s *SummaryHandlerTestSuite) TestGetItemSummary() {
	s.Run("success: returns next and last refs", func() {
		s.mockQueries.EXPECT().ItemSummary(gomock.Any(), int64(100)).
			Return(&queries.ItemBookingSummary{
				ItemID:      100,
				NextBooking: &queries.ItemBookingRef{ID: 2, BookerID: 12},
				LastBooking: &queries.ItemBookingRef{ID: 1, BookerID: 11},
			}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/internal/items/100/booking-summary", nil, 0)

		var resp struct {
			ItemID      int64 `json:"itemId"`
			NextBooking *struct {
				ID       int64 `json:"id"`
				BookerID int64 `json:"bookerId"`
			} `json:"nextBooking"`
		}
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal(int64(100), resp.ItemID)
		s.Require().NotNil(resp.NextBooking)
		s.Equal(int64(2), resp.NextBooking.ID)
	})

	s.Run("empty summary omits both refs", func() {
		s.mockQueries.EXPECT().ItemSummary(gomock.Any(), int64(100)).
			Return(&queries.ItemBookingSummary{ItemID: 100}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/internal/items/100/booking-summary", nil, 0)
		s.Equal(http.StatusOK, rec.Code)
		s.NotContains(rec.Body.String(), "nextBooking")
		s.NotContains(rec.Body.String(), "lastBooking")
	})

	s.Run("invalid item id: 400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/internal/items/abc/booking-summary", nil, 0)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid item ID")
	})
}

func (s *SummaryHandlerTestSuite) TestGetCommentEligibility() {
	s.Run("eligible user", func() {
		s.mockQueries.EXPECT().HasFinishedApprovedBooking(gomock.Any(), int64(10), int64(100)).
			Return(true, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/internal/items/100/comment-eligibility?userId=10", nil, 0)

		var resp struct {
			Eligible bool `json:"eligible"`
		}
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.True(resp.Eligible)
	})

	s.Run("missing userId: 400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/internal/items/100/comment-eligibility", nil, 0)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "userId")
	})
}
