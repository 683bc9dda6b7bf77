package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Analyze godoc
// @Summary      Request advisor commentary
// @Description  Sends the current listing and parameters to the LLM advisor and appends the commentary to the listing as an opaque comment block
// @Tags         backtest
// @Produce      json
// @Param        id  path  string  true  "Session ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /api/sessions/{id}/analyze [post]
func (h *Handler) Analyze(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.analyze")
	defer span.End()

	if h.advisor == nil || !h.advisor.Enabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "advisor is not configured"})
		return
	}

	sess, err := h.sessions.Get(ctx, c.Param("id"))
	if err != nil {
		h.sessionError(c, err)
		return
	}

	commentary, err := h.advisor.Analyze(ctx, sess.Strategy, sess.Listing, sess.Params)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.sessions.AppendAnalysis(ctx, sess.ID, commentary)
	if err != nil {
		h.sessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"commentary": commentary,
		"session":    updated,
	})
}
