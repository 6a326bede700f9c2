// Daily quote HTTP handlers.
//
// This file exposes the quote-of-the-day endpoints:
//   - GET  /daily-quote          (current quote with countdown data)
//   - GET  /daily-quote/history  (past selections)
//   - POST /daily-quote/select   (admin: force a new selection)
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gulfquotes/quoticon/internal/domain"
	"github.com/gulfquotes/quoticon/internal/http/middleware"
	"github.com/gulfquotes/quoticon/internal/utils"
)

// DailyQuoteResponse is today's quote plus the cycle bounds the client needs
// to render a countdown.
type DailyQuoteResponse struct {
	Quote          *domain.QuoteDisplay `json:"quote"`
	SelectionDate  time.Time            `json:"selection_date"  example:"2024-05-01T10:00:00Z"`
	ExpirationDate time.Time            `json:"expiration_date" example:"2024-05-01T20:00:00Z"`
}

// HistoryResponse lists past daily quote records, most recent first.
type HistoryResponse struct {
	Items []domain.DailyQuote `json:"items"`
}

// GetDailyQuote godoc
// @ID          getDailyQuote
// @Summary     Get today's quote
// @Description Returns the active daily quote, selecting a new one when the previous cycle has expired.
// @Tags        DailyQuote
// @Produce     json
// @Success     200  {object} handlers.DailyQuoteResponse
// @Failure     404  {object} handlers.ErrorResponse "Catalog is empty"
// @Failure     500  {object} handlers.ErrorResponse "Internal server error"
// @Router      /daily-quote [get]
func (h *Handlers) GetDailyQuote(c *gin.Context) {
	cur, err := h.daily.GetCurrentSelection(c.Request.Context())
	if err != nil {
		failErr(c, err)
		return
	}
	rec := cur.Record
	middleware.SetPublicCache(c, time.Until(rec.ExpirationDate))
	ok(c, http.StatusOK, DailyQuoteResponse{
		Quote:          cur.Quote,
		SelectionDate:  rec.SelectionDate,
		ExpirationDate: rec.ExpirationDate,
	})
}

// GetDailyQuoteHistory godoc
// @ID          getDailyQuoteHistory
// @Summary     List past daily quotes
// @Tags        DailyQuote
// @Produce     json
// @Description Supports weak ETag via If-None-Match and may return 304.
// @Param       If-None-Match  header  string  false  "Return 304 if ETag matches"
// @Param       limit          query   int     false  "Max records (default 10, capped)"  example(10)
// @Success     200  {object} handlers.HistoryResponse
// @Header      200  {string} ETag  "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     500  {object} handlers.ErrorResponse "Internal server error"
// @Router      /daily-quote/history [get]
func (h *Handlers) GetDailyQuoteHistory(c *gin.Context) {
	ctx := c.Request.Context()
	limit := utils.ParseLimit(c.Query("limit"))

	// ETag pre-check (best effort).
	if etag, err := h.daily.HistoryETag(ctx, limit); err == nil {
		c.Header("ETag", etag)
		if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
			c.Status(http.StatusNotModified)
			return
		}
	}

	items, err := h.daily.GetQuoteHistory(ctx, limit)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, HistoryResponse{Items: items})
}

// SelectDailyQuote godoc
// @ID          selectDailyQuote
// @Summary     Force a new daily quote
// @Description Replaces the active daily quote regardless of its expiration.
// @Tags        Admin
// @Produce     json
// @Security    BearerAuth
// @Success     200  {object} domain.QuoteDisplay
// @Failure     401  {object} handlers.ErrorResponse "Missing or invalid token"
// @Failure     404  {object} handlers.ErrorResponse "Catalog is empty"
// @Failure     500  {object} handlers.ErrorResponse "Internal server error"
// @Router      /daily-quote/select [post]
func (h *Handlers) SelectDailyQuote(c *gin.Context) {
	q, err := h.daily.SelectNewDailyQuote(c.Request.Context())
	if err != nil {
		failErr(c, err)
		return
	}
	middleware.LoggerFrom(c).Info().Str("quote_id", q.ID).Msg("daily quote selected manually")
	ok(c, http.StatusOK, q)
}
