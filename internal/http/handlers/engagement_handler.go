// Engagement HTTP handler.
//
//   - POST /quotes/{id}/engagement
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gulfquotes/quoticon/internal/domain"
)

// EngagementRequest is the JSON payload for recording an interaction.
type EngagementRequest struct {
	Kind string `json:"kind" binding:"required,oneof=view download share like unlike" example:"like"`
}

// RecordEngagement godoc
// @ID          recordEngagement
// @Summary     Record an interaction with a quote
// @Description Increments (or, for unlike, decrements) the matching counter. Counters never go negative.
// @Tags        Quotes
// @Accept      json
// @Param       id    path  string                       true  "Quote ID"
// @Param       body  body  handlers.EngagementRequest   true  "Interaction"
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Invalid kind"
// @Failure     404  {object} handlers.ErrorResponse "Quote not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal server error"
// @Router      /quotes/{id}/engagement [post]
func (h *Handlers) RecordEngagement(c *gin.Context) {
	var req EngagementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "kind must be one of: view, download, share, like, unlike")
		return
	}
	if err := h.engagement.Record(c.Request.Context(), c.Param("id"), domain.EngagementKind(req.Kind)); err != nil {
		failErr(c, err)
		return
	}
	noContent(c)
}
