package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"condo_ledger/internal/service"
)

// @Summary      Download spreadsheet report
// @Description  Workbook with sheets "Pagos" and "Gastos" in insertion order.
// @Tags         ledger
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}    binary
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/reporte-excel [get]
// @Security     BearerAuth
func (h *Handler) downloadReport(c *gin.Context) {
	id, _ := identity(c)
	rep, err := h.services.Generate(c.Request.Context(), id)
	if err != nil {
		h.abortWithError(c, "report_generate", err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+rep.Filename)
	c.Data(http.StatusOK, service.XLSXContentType, rep.Content)
}
