package api

import (
	"errors"
	"net/http"
	"strconv"

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

type IntentHandler struct {
	cmds commands.IntentCommands
	q    queries.IntentQueries
}

func NewIntentHandler(cmds commands.IntentCommands, q queries.IntentQueries) *IntentHandler {
	return &IntentHandler{cmds: cmds, q: q}
}

// @Summary Create intent
// @Description Open a rental intent for a resource specification
// @Tags intents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string true "Idempotency key for duplicate prevention"
// @Param request body reqdto.CreateIntentRequest true "Intent request"
// @Success 201 {object} resdto.CreateIntentResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /intents [post]
func (h *IntentHandler) Create(c *gin.Context) {
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
	var req reqdto.CreateIntentRequest
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
	c.JSON(status, resdto.FromCreateIntentResult(result))
}

// @Summary Cancel intent
// @Description Cancel an open intent (receiver only)
// @Tags intents
// @Security BearerAuth
// @Param id path string true "Intent ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /intents/{id}/cancel [post]
func (h *IntentHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	actorID, ok := middleware.GetPartyID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errs.ErrUnauthorized, "Unauthorized", nil)
		return
	}
	if err := h.cmds.Cancel(c.Request.Context(), id, actorID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Get intent
// @Description Get an intent with its offers
// @Tags intents
// @Produce json
// @Security BearerAuth
// @Param id path string true "Intent ID"
// @Success 200 {object} queries.IntentView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /intents/{id} [get]
func (h *IntentHandler) Get(c *gin.Context) {
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

// @Summary List own intents
// @Description List intents opened by the authenticated party
// @Tags intents
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max items (default 50)"
// @Success 200 {array} queries.IntentView
// @Failure 401 {object} map[string]string
// @Router /intents [get]
func (h *IntentHandler) ListMine(c *gin.Context) {
	actorID, ok := middleware.GetPartyID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errs.ErrUnauthorized, "Unauthorized", nil)
		return
	}
	limit := 0
	if v := c.Query("limit"); v != "" {
		if iv, e := strconv.Atoi(v); e == nil {
			limit = iv
		}
	}
	views, err := h.q.ListByReceiver(c.Request.Context(), actorID, int32(limit))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"intents": views})
}

func getIdempotencyKey(c *gin.Context) (uuid.UUID, error) {
	keyStr := c.GetHeader("Idempotency-Key")
	if keyStr == "" {
		return uuid.Nil, errs.ErrIdempotencyKeyRequired
	}

	key, err := uuid.Parse(keyStr)
	if err != nil {
		return uuid.Nil, errors.Join(errs.ErrIdempotencyKeyRequired, err)
	}

	return key, nil
}
