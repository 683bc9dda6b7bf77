package handler

import (
	"errors"
	"net/http"

	"strategy-sandbox/internal/domain"
	"strategy-sandbox/internal/service"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// CreateSession godoc
// @Summary      Create a sandbox session
// @Description  Opens a fresh session with the default DualMA setup
// @Tags         sessions
// @Produce      json
// @Success      201  {object}  domain.Session
// @Router       /api/sessions [post]
func (h *Handler) CreateSession(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.create-session")
	defer span.End()

	sess := h.sessions.Create(ctx)
	c.JSON(http.StatusCreated, sess)
}

// GetSession godoc
// @Summary      Get a session
// @Tags         sessions
// @Produce      json
// @Param        id  path  string  true  "Session ID"
// @Success      200  {object}  domain.Session
// @Failure      404  {object}  map[string]string
// @Router       /api/sessions/{id} [get]
func (h *Handler) GetSession(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-session")
	defer span.End()

	sess, err := h.sessions.Get(ctx, c.Param("id"))
	if err != nil {
		h.sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

type selectStrategyRequest struct {
	Strategy domain.StrategyType `json:"strategy" binding:"required"`
}

// SelectStrategy godoc
// @Summary      Switch strategy template
// @Description  Loads the template's canonical listing, parses its defaults, and forces the instrument onto eligible ground
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "Session ID"
// @Param        body  body  selectStrategyRequest  true  "Strategy selector"
// @Success      200  {object}  domain.Session
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/sessions/{id}/strategy [post]
func (h *Handler) SelectStrategy(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.select-strategy")
	defer span.End()

	var req selectStrategyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	span.SetAttributes(attribute.String("strategy", string(req.Strategy)))

	sess, err := h.sessions.SelectStrategy(ctx, c.Param("id"), req.Strategy)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			h.sessionError(c, err)
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sess)
}

type selectInstrumentRequest struct {
	Code string `json:"code" binding:"required"`
}

// SelectInstrument godoc
// @Summary      Switch backtest instrument
// @Description  Rejects combinations that violate the composite-index exclusivity rule
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "Session ID"
// @Param        body  body  selectInstrumentRequest  true  "Instrument selector"
// @Success      200  {object}  domain.Session
// @Failure      404  {object}  map[string]string
// @Failure      422  {object}  domain.Validation
// @Router       /api/sessions/{id}/instrument [post]
func (h *Handler) SelectInstrument(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.select-instrument")
	defer span.End()

	var req selectInstrumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	span.SetAttributes(attribute.String("instrument", req.Code))

	sess, v, err := h.sessions.SelectInstrument(ctx, c.Param("id"), req.Code)
	if err != nil {
		h.sessionError(c, err)
		return
	}
	if !v.OK {
		c.JSON(http.StatusUnprocessableEntity, v)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// UpdateParams godoc
// @Summary      Replace session parameters (slider path)
// @Description  Replaces the parameter set wholesale and rewrites the listing to match
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "Session ID"
// @Param        body  body  domain.ParameterSet  true  "New parameter set"
// @Success      200  {object}  domain.Session
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/sessions/{id}/params [put]
func (h *Handler) UpdateParams(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.update-params")
	defer span.End()

	var params domain.ParameterSet
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, err := h.sessions.UpdateParams(ctx, c.Param("id"), params)
	if err != nil {
		h.sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

type updateListingRequest struct {
	Listing string `json:"listing" binding:"required"`
}

// UpdateListing godoc
// @Summary      Replace the listing text (editor path)
// @Description  Stores the edited listing and parses its tokens back into the parameter set
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "Session ID"
// @Param        body  body  updateListingRequest  true  "Edited listing"
// @Success      200  {object}  domain.Session
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/sessions/{id}/listing [put]
func (h *Handler) UpdateListing(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.update-listing")
	defer span.End()

	var req updateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, err := h.sessions.UpdateListing(ctx, c.Param("id"), req.Listing)
	if err != nil {
		h.sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (h *Handler) sessionError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrSessionNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
