package api

import (
	"net/http"

	"rentalflow/internal/handler/httperr"
	"rentalflow/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PartyHandler struct {
	q queries.PartyQueries
}

func NewPartyHandler(q queries.PartyQueries) *PartyHandler {
	return &PartyHandler{q: q}
}

// @Summary Get party
// @Tags parties
// @Produce json
// @Security BearerAuth
// @Param id path string true "Party ID"
// @Success 200 {object} queries.PartyView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /parties/{id} [get]
func (h *PartyHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	view, err := h.q.GetParty(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
