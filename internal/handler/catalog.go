package handler

import (
	"net/http"

	"strategy-sandbox/internal/domain"
	"strategy-sandbox/internal/listing"

	"github.com/gin-gonic/gin"
)

// GetStrategies godoc
// @Summary      List strategy templates
// @Description  Returns every selectable template with its canonical listing
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/strategies [get]
func (h *Handler) GetStrategies(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.get-strategies")
	defer span.End()

	type strategyInfo struct {
		Type           domain.StrategyType `json:"type"`
		Name           string              `json:"name"`
		Listing        string              `json:"listing"`
		CompositeIndex bool                `json:"composite_index"`
	}

	out := make([]strategyInfo, 0, len(domain.SupportedStrategies))
	for _, st := range domain.SupportedStrategies {
		out = append(out, strategyInfo{
			Type:           st,
			Name:           domain.StrategyName[st],
			Listing:        listing.Template(st),
			CompositeIndex: st == domain.StrategySmallCap,
		})
	}

	c.JSON(http.StatusOK, gin.H{"strategies": out})
}

// GetInstruments godoc
// @Summary      List tradable instruments
// @Description  Returns the fixed instrument catalog, including the composite index sentinel
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/instruments [get]
func (h *Handler) GetInstruments(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.get-instruments")
	defer span.End()

	c.JSON(http.StatusOK, gin.H{
		"instruments":     domain.InstrumentPool,
		"composite_index": domain.CompositeIndexCode,
	})
}
