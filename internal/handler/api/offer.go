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

type OfferHandler struct {
	cmds commands.OfferCommands
	q    queries.OfferQueries
}

func NewOfferHandler(cmds commands.OfferCommands, q queries.OfferQueries) *OfferHandler {
	return &OfferHandler{cmds: cmds, q: q}
}

// @Summary Create offer
// @Description Propose a concrete resource against an open intent
// @Tags offers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string true "Idempotency key for duplicate prevention"
// @Param request body reqdto.CreateOfferRequest true "Offer request"
// @Success 201 {object} resdto.CreateOfferResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /offers [post]
func (h *OfferHandler) Create(c *gin.Context) {
	actorID, ok := middleware.GetPartyID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errs.ErrUnauthorized, "Unauthorized", nil)
		return
	}
	key, err := getIdempotencyKey(c)
	if err != nil {
		respondError(c, err)
		return
	}
	var req reqdto.CreateOfferRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}

	result, err := h.cmds.Create(c.Request.Context(), req.ToCommand(), actorID, key)
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}
	c.JSON(status, resdto.FromCreateOfferResult(result))
}

// @Summary Accept offer
// @Description Accept an offer; declines all sibling offers and matches the intent
// @Tags offers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Offer ID"
// @Success 200 {object} resdto.AcceptOfferResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /offers/{id}/accept [post]
func (h *OfferHandler) Accept(c *gin.Context) {
	id, actorID, ok := offerCallContext(c)
	if !ok {
		return
	}
	result, err := h.cmds.Accept(c.Request.Context(), id, actorID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAcceptOfferResult(result))
}

// @Summary Decline offer
// @Description Decline a proposed offer (receiver only)
// @Tags offers
// @Security BearerAuth
// @Param id path string true "Offer ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /offers/{id}/decline [post]
func (h *OfferHandler) Decline(c *gin.Context) {
	id, actorID, ok := offerCallContext(c)
	if !ok {
		return
	}
	if err := h.cmds.Decline(c.Request.Context(), id, actorID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Withdraw offer
// @Description Withdraw a proposed offer (provider only)
// @Tags offers
// @Security BearerAuth
// @Param id path string true "Offer ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /offers/{id}/withdraw [post]
func (h *OfferHandler) Withdraw(c *gin.Context) {
	id, actorID, ok := offerCallContext(c)
	if !ok {
		return
	}
	if err := h.cmds.Withdraw(c.Request.Context(), id, actorID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Get offer
// @Tags offers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Offer ID"
// @Success 200 {object} queries.OfferView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /offers/{id} [get]
func (h *OfferHandler) Get(c *gin.Context) {
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

func offerCallContext(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
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
