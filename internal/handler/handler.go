package handler

import (
	"strategy-sandbox/internal/advisor"
	"strategy-sandbox/internal/service"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

type Handler struct {
	tracer    trace.Tracer
	sessions  *service.SessionService
	backtests *service.BacktestService
	advisor   *advisor.Service
}

func New(tracer trace.Tracer, sessions *service.SessionService, backtests *service.BacktestService, adv *advisor.Service) *Handler {
	return &Handler{
		tracer:    tracer,
		sessions:  sessions,
		backtests: backtests,
		advisor:   adv,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
	r.GET("/api/strategies", h.GetStrategies)
	r.GET("/api/instruments", h.GetInstruments)
	r.POST("/api/sessions", h.CreateSession)
	r.GET("/api/sessions/:id", h.GetSession)
	r.POST("/api/sessions/:id/strategy", h.SelectStrategy)
	r.POST("/api/sessions/:id/instrument", h.SelectInstrument)
	r.PUT("/api/sessions/:id/params", h.UpdateParams)
	r.PUT("/api/sessions/:id/listing", h.UpdateListing)
	r.POST("/api/sessions/:id/backtest", h.RunBacktest)
	r.POST("/api/sessions/:id/analyze", h.Analyze)
}
