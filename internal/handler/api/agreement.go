package api

import (
	"net/http"

	reqdto "rentalflow/internal/handler/dto/request"
	resdto "rentalflow/internal/handler/dto/response"
	"rentalflow/internal/handler/httperr"
	"rentalflow/internal/handler/middleware"
	"rentalflow/internal/pkg/errs"
	"rentalflow/internal/usecase/commands"
	"rentalflow/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AgreementHandler struct {
	cmds commands.AgreementCommands
	q    queries.AgreementQueries
}

func NewAgreementHandler(cmds commands.AgreementCommands, q queries.AgreementQueries) *AgreementHandler {
	return &AgreementHandler{cmds: cmds, q: q}
}

// @Summary Create agreement
// @Description Convert the accepted offer on an intent into a binding agreement
// @Tags agreements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateAgreementRequest true "Agreement request"
// @Success 201 {object} resdto.CreateAgreementResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /agreements [post]
func (h *AgreementHandler) Create(c *gin.Context) {
	actorID, ok := middleware.GetPartyID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errs.ErrUnauthorized, "Unauthorized", nil)
		return
	}
	var req reqdto.CreateAgreementRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}

	result, err := h.cmds.Create(c.Request.Context(), req.ToCommand(), actorID)
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}
	c.JSON(status, resdto.FromCreateAgreementResult(result))
}

// @Summary Sign agreement
// @Description Sign a pending agreement (receiver only)
// @Tags agreements
// @Security BearerAuth
// @Param id path string true "Agreement ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /agreements/{id}/sign [post]
func (h *AgreementHandler) Sign(c *gin.Context) {
	id, actorID, ok := agreementCallContext(c)
	if !ok {
		return
	}
	if err := h.cmds.Sign(c.Request.Context(), id, actorID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Cancel agreement
// @Description Cancel a pending or signed agreement (either party)
// @Tags agreements
// @Accept json
// @Security BearerAuth
// @Param id path string true "Agreement ID"
// @Param request body reqdto.CancelAgreementRequest true "Cancellation reason"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /agreements/{id}/cancel [post]
func (h *AgreementHandler) Cancel(c *gin.Context) {
	id, actorID, ok := agreementCallContext(c)
	if !ok {
		return
	}
	var req reqdto.CancelAgreementRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}
	if err := h.cmds.Cancel(c.Request.Context(), id, actorID, req.Reason); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Dispute agreement
// @Description Raise a dispute on an active agreement (either party)
// @Tags agreements
// @Accept json
// @Security BearerAuth
// @Param id path string true "Agreement ID"
// @Param request body reqdto.DisputeAgreementRequest true "Dispute reason"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /agreements/{id}/dispute [post]
func (h *AgreementHandler) Dispute(c *gin.Context) {
	id, actorID, ok := agreementCallContext(c)
	if !ok {
		return
	}
	var req reqdto.DisputeAgreementRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}
	if err := h.cmds.Dispute(c.Request.Context(), id, actorID, req.Reason); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Get agreement
// @Description Get an agreement with its fulfillment legs
// @Tags agreements
// @Produce json
// @Security BearerAuth
// @Param id path string true "Agreement ID"
// @Success 200 {object} queries.AgreementView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /agreements/{id} [get]
func (h *AgreementHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func agreementCallContext(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
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
