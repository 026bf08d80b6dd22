package api

import (
	"net/http"

	reqdto "rentalflow/internal/handler/dto/request"
	resdto "rentalflow/internal/handler/dto/response"
	"rentalflow/internal/handler/httperr"
	"rentalflow/internal/handler/middleware"
	"rentalflow/internal/pkg/errs"
	"rentalflow/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type FulfillmentHandler struct {
	cmds commands.FulfillmentCommands
}

func NewFulfillmentHandler(cmds commands.FulfillmentCommands) *FulfillmentHandler {
	return &FulfillmentHandler{cmds: cmds}
}

// @Summary Schedule fulfillment leg
// @Description Schedule the pickup or return leg of a signed agreement
// @Tags fulfillments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ScheduleFulfillmentRequest true "Fulfillment request"
// @Success 201 {object} resdto.ScheduleFulfillmentResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /fulfillments [post]
func (h *FulfillmentHandler) Schedule(c *gin.Context) {
	actorID, ok := middleware.GetPartyID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errs.ErrUnauthorized, "Unauthorized", nil)
		return
	}
	var req reqdto.ScheduleFulfillmentRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}

	result, err := h.cmds.Schedule(c.Request.Context(), req.ToCommand(), actorID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromScheduleFulfillmentResult(result))
}

// @Summary Start fulfillment leg
// @Description Move a scheduled leg to in progress (leg owner only)
// @Tags fulfillments
// @Security BearerAuth
// @Param id path string true "Fulfillment ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /fulfillments/{id}/start [post]
func (h *FulfillmentHandler) Start(c *gin.Context) {
	id, actorID, ok := fulfillmentCallContext(c)
	if !ok {
		return
	}
	if err := h.cmds.Start(c.Request.Context(), id, actorID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Complete fulfillment leg
// @Description Complete a leg; completing the return leg fulfills the agreement and intent
// @Tags fulfillments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Fulfillment ID"
// @Success 200 {object} resdto.CompleteFulfillmentResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /fulfillments/{id}/complete [post]
func (h *FulfillmentHandler) Complete(c *gin.Context) {
	id, actorID, ok := fulfillmentCallContext(c)
	if !ok {
		return
	}
	result, err := h.cmds.Complete(c.Request.Context(), id, actorID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCompleteFulfillmentResult(result))
}

// @Summary Cancel fulfillment leg
// @Tags fulfillments
// @Security BearerAuth
// @Param id path string true "Fulfillment ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /fulfillments/{id}/cancel [post]
func (h *FulfillmentHandler) Cancel(c *gin.Context) {
	id, actorID, ok := fulfillmentCallContext(c)
	if !ok {
		return
	}
	if err := h.cmds.Cancel(c.Request.Context(), id, actorID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Fail fulfillment leg
// @Tags fulfillments
// @Security BearerAuth
// @Param id path string true "Fulfillment ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /fulfillments/{id}/fail [post]
func (h *FulfillmentHandler) Fail(c *gin.Context) {
	id, actorID, ok := fulfillmentCallContext(c)
	if !ok {
		return
	}
	if err := h.cmds.Fail(c.Request.Context(), id, actorID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func fulfillmentCallContext(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return uuid.Nil, uuid.Nil, false
	}
	actorID, ok := middleware.GetPartyID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errs.ErrUnauthorized, "Unauthorized", nil)
		return uuid.Nil, uuid.Nil, false
	}
	return id, actorID, true
}
