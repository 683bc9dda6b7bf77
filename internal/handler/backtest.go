package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// RunBacktest godoc
// @Summary      Run a simulated backtest
// @Description  Validates preconditions and listing integrity, then produces metrics, a trade ledger, and a chart series. Identical inputs always reproduce identical outputs.
// @Tags         backtest
// @Produce      json
// @Param        id  path  string  true  "Session ID"
// @Success      200  {object}  domain.BacktestResult
// @Failure      404  {object}  map[string]string
// @Failure      422  {object}  domain.Validation
// @Router       /api/sessions/{id}/backtest [post]
func (h *Handler) RunBacktest(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.run-backtest")
	defer span.End()

	sess, err := h.sessions.Get(ctx, c.Param("id"))
	if err != nil {
		h.sessionError(c, err)
		return
	}
	span.SetAttributes(
		attribute.String("strategy", string(sess.Strategy)),
		attribute.String("instrument", sess.Instrument.Code),
	)

	result, v, err := h.backtests.Run(ctx, sess)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !v.OK {
		c.JSON(http.StatusUnprocessableEntity, v)
		return
	}

	if _, err := h.sessions.CommitRun(ctx, sess.ID, result); err != nil {
		h.sessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
