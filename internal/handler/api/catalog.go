package api

import (
	"net/http"
	"time"

	resdto "rentalflow/internal/handler/dto/response"
	"rentalflow/internal/handler/httperr"
	"rentalflow/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CatalogHandler struct {
	q queries.CatalogQueries
}

func NewCatalogHandler(q queries.CatalogQueries) *CatalogHandler {
	return &CatalogHandler{q: q}
}

// @Summary Get resource
// @Tags catalog
// @Produce json
// @Param id path string true "Resource ID"
// @Success 200 {object} queries.ResourceView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /resources/{id} [get]
func (h *CatalogHandler) GetResource(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	view, err := h.q.GetResource(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Check resource availability
// @Description Report whether the resource availability window covers [start, end)
// @Tags catalog
// @Produce json
// @Param id path string true "Resource ID"
// @Param start query string true "Window start (RFC3339)"
// @Param end query string true "Window end (RFC3339)"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /resources/{id}/availability [get]
func (h *CatalogHandler) GetAvailability(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid start time", nil)
		return
	}
	end, err := time.Parse(time.RFC3339, c.Query("end"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid end time", nil)
		return
	}

	available, err := h.q.GetResourceAvailability(c.Request.Context(), id, start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.AvailabilityResponse{ResourceID: id, Available: available})
}
