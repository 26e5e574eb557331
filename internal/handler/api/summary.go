package api

import (
	"net/http"
	"strconv"

	resdto "shareit/internal/handler/dto/response"
	"shareit/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

// SummaryHandler serves the internal projections the item service embeds into
// its own responses. These routes are not part of the public surface.
type SummaryHandler struct {
	summaryQueries queries.SummaryQueries
}

func NewSummaryHandler(summaryQueries queries.SummaryQueries) *SummaryHandler {
	return &SummaryHandler{summaryQueries: summaryQueries}
}

// @Summary Item booking summary
// @Description Next and last booking references for an item
// @Tags internal
// @Produce json
// @Param itemId path int true "Item id"
// @Success 200 {object} resdto.BookingSummaryResponse
// @Failure 400 {object} map[string]string
// @Router /internal/items/{itemId}/booking-summary [get]
func (h *SummaryHandler) GetItemSummary(c *gin.Context) {
	itemID, err := parseID(c.Param("itemId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID format"})
		return
	}

	summary, err := h.summaryQueries.ItemSummary(c.Request.Context(), itemID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingSummary(summary))
}

// @Summary Comment eligibility
// @Description Whether a user may comment on an item
// @Tags internal
// @Produce json
// @Param itemId path int true "Item id"
// @Param userId query int true "User id"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} map[string]string
// @Router /internal/items/{itemId}/comment-eligibility [get]
func (h *SummaryHandler) GetCommentEligibility(c *gin.Context) {
	itemID, err := parseID(c.Param("itemId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID format"})
		return
	}

	userID, err := strconv.ParseInt(c.Query("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId query parameter is required"})
		return
	}

	eligible, err := h.summaryQueries.HasFinishedApprovedBooking(c.Request.Context(), userID, itemID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"eligible": eligible})
}
