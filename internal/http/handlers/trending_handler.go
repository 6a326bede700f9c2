// Trending HTTP handlers.
//
//   - GET    /trending          (cached ranking)
//   - POST   /trending/refresh  (admin: recompute now)
//   - DELETE /trending/cache    (admin: drop the cached list)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gulfquotes/quoticon/internal/domain"
	"github.com/gulfquotes/quoticon/internal/utils"
)

// TrendingResponse is a ranked list, best first.
type TrendingResponse struct {
	Items []domain.TrendingQuote `json:"items"`
	Count int                    `json:"count" example:"6"`
}

// GetTrending godoc
// @ID          getTrending
// @Summary     List trending quotes
// @Description Serves the cached ranking; recomputes when the cache is cold or expired and falls back to the last list on failure.
// @Tags        Trending
// @Produce     json
// @Param       limit  query  int  false  "Number of quotes (default 6, capped)"  example(6)
// @Success     200  {object} handlers.TrendingResponse
// @Failure     500  {object} handlers.ErrorResponse "Internal server error"
// @Failure     504  {object} handlers.ErrorResponse "Computation timed out"
// @Router      /trending [get]
func (h *Handlers) GetTrending(c *gin.Context) {
	items, err := h.trending.GetTrendingQuotes(c.Request.Context(), utils.ParseLimit(c.Query("limit")))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, TrendingResponse{Items: items, Count: len(items)})
}

// RefreshTrending godoc
// @ID          refreshTrending
// @Summary     Recompute trending quotes
// @Tags        Admin
// @Produce     json
// @Security    BearerAuth
// @Param       limit  query  int  false  "Number of quotes to return"
// @Success     200  {object} handlers.TrendingResponse
// @Failure     401  {object} handlers.ErrorResponse "Missing or invalid token"
// @Failure     500  {object} handlers.ErrorResponse "Internal server error"
// @Router      /trending/refresh [post]
func (h *Handlers) RefreshTrending(c *gin.Context) {
	items, err := h.trending.CalculateTrendingQuotes(c.Request.Context(), utils.ParseLimit(c.Query("limit")))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, TrendingResponse{Items: items, Count: len(items)})
}

// InvalidateTrending godoc
// @ID          invalidateTrending
// @Summary     Drop the cached trending list
// @Tags        Admin
// @Security    BearerAuth
// @Success     204  {string} string "No Content"
// @Failure     401  {object} handlers.ErrorResponse "Missing or invalid token"
// @Router      /trending/cache [delete]
func (h *Handlers) InvalidateTrending(c *gin.Context) {
	h.trending.InvalidateCache()
	noContent(c)
}
