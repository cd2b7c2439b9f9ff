package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary   Ledger totals
// @Tags      ledger
// @Produce   json
// @Success   200  {object}  models.Summary
// @Failure   401  {object}  map[string]string
// @Failure   500  {object}  map[string]string
// @Router    /api/resumen [get]
// @Security  BearerAuth
func (h *Handler) getSummary(c *gin.Context) {
	sum, err := h.services.GetSummary(c.Request.Context())
	if err != nil {
		h.abortWithError(c, "summary_get", err)
		return
	}
	c.JSON(http.StatusOK, sum)
}
