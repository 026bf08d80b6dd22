package api

import (
	"net/http"

	resdto "rentalflow/internal/handler/dto/response"
	"rentalflow/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	sweep commands.SweepCommands
}

func NewAdminHandler(sweep commands.SweepCommands) *AdminHandler {
	return &AdminHandler{sweep: sweep}
}

// @Summary Run expiry sweep
// @Description Expire overdue pending intents (and stale offers when a TTL is configured)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.SweepResponse
// @Failure 401 {object} map[string]string
// @Router /admin/sweep [post]
func (h *AdminHandler) RunSweep(c *gin.Context) {
	result, err := h.sweep.Run(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSweepResult(result))
}
