// Scheduler trigger handlers.
//
// An external cron calls these endpoints with the cron bearer secret. The
// body is always the job Result; the status reflects its error kind so that
// cron services flag failed runs.
//
//   - POST /cron/daily-quote
//   - POST /cron/trending
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gulfquotes/quoticon/internal/http/middleware"
	"github.com/gulfquotes/quoticon/internal/services"
)

// RunDailyQuoteJob godoc
// @ID          runDailyQuoteJob
// @Summary     Run the daily quote rotation
// @Description Selects a new daily quote when the active one has expired; otherwise does nothing.
// @Tags        Cron
// @Produce     json
// @Security    BearerAuth
// @Success     200  {object} scheduler.Result
// @Failure     401  {object} handlers.ErrorResponse "Missing or invalid secret"
// @Failure     404  {object} scheduler.Result "Catalog is empty"
// @Failure     500  {object} scheduler.Result "Job failed"
// @Failure     504  {object} scheduler.Result "Job timed out"
// @Router      /cron/daily-quote [post]
func (h *Handlers) RunDailyQuoteJob(c *gin.Context) { h.runJob(c, h.dailyJob) }

// RunTrendingJob godoc
// @ID          runTrendingJob
// @Summary     Recompute trending quotes
// @Tags        Cron
// @Produce     json
// @Security    BearerAuth
// @Success     200  {object} scheduler.Result
// @Failure     401  {object} handlers.ErrorResponse "Missing or invalid secret"
// @Failure     500  {object} scheduler.Result "Job failed"
// @Failure     504  {object} scheduler.Result "Job timed out"
// @Router      /cron/trending [post]
func (h *Handlers) RunTrendingJob(c *gin.Context) { h.runJob(c, h.trendingJob) }

func (h *Handlers) runJob(c *gin.Context, job Job) {
	res := job.Run(c.Request.Context())
	if res.Success {
		ok(c, http.StatusOK, res)
		return
	}
	kind := services.KindInternal
	if res.Error != nil {
		kind = res.Error.Kind
	}
	status, _ := statusFor(kind)
	middleware.LoggerFrom(c).Warn().Str("job", res.Job).Str("kind", string(kind)).Msg("job failed")
	c.AbortWithStatusJSON(status, res)
}
