//go:build unit

package handler

import (
	"net/http"
	"testing"

	"shareit/internal/handler/api"
	"shareit/internal/handler/middleware"
	"shareit/internal/usecase/queries"
	"shareit/tests/common/builder"
	"shareit/tests/common/httptest"
	commandsmock "shareit/tests/mock/commands"
	queriesmock "shareit/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type RouterTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockBookingQueries
	mockSummary *queriesmock.MockSummaryQueries
}

func (s *RouterTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	mockCommands := commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.mockSummary = queriesmock.NewMockSummaryQueries(s.mockCtrl)

	setupRoutes(s.router,
		api.NewBookingHandler(mockCommands, s.mockQueries),
		api.NewSummaryHandler(s.mockSummary),
		middleware.NewIdentityMiddleware(),
	)
}

func (s *RouterTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}

func (s *RouterTestSuite) TestBookingRoutesRequireIdentity() {
	s.Run("request without identity header is rejected before the handler", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/1", nil, 0)
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("request with identity header reaches the handler", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), int64(10), int64(1)).
			Return(builder.NewBookingBuilder().BuildView(), nil).Times(1)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/1", nil, 10)
		s.Equal(http.StatusOK, w.Code)
	})
}

func (s *RouterTestSuite) TestUnguardedRoutes() {
	s.Run("health check needs no identity", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/health", nil, 0)
		s.Equal(http.StatusOK, w.Code)
	})

	s.Run("internal summary route needs no identity", func() {
		s.mockSummary.EXPECT().ItemSummary(gomock.Any(), int64(100)).
			Return(&queries.ItemBookingSummary{ItemID: 100}, nil).Times(1)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/internal/items/100/booking-summary", nil, 0)
		s.Equal(http.StatusOK, w.Code)
	})
}
