package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"condo_ledger/internal/service"
)

const (
	msgAuthRequired       = "Se requiere autenticación"
	msgInvalidCredentials = "Usuario o contraseña incorrectos"
	msgInternal           = "error interno del servidor"
	msgReportFailed       = "no se pudo generar el reporte: "
)

func errorBody(message string) gin.H {
	return gin.H{"status": "error", "message": message}
}

// abortWithError maps service errors to status codes and a JSON body.
// Unexpected errors are logged with op and never leak their text.
func (h *Handler) abortWithError(c *gin.Context, op string, err error) {
	var (
		ve *service.ValidationError
		re *service.ReportError
	)
	switch {
	case errors.Is(err, service.ErrAuthRequired):
		c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody(msgAuthRequired))
	case errors.Is(err, service.ErrInvalidCredentials):
		c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody(msgInvalidCredentials))
	case errors.As(err, &ve):
		body := errorBody(ve.Error())
		body["field"] = ve.Field
		c.AbortWithStatusJSON(http.StatusBadRequest, body)
	case errors.As(err, &re):
		if h.log != nil {
			h.log.Errorw(op+"_failed", "err", err)
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorBody(msgReportFailed+re.Err.Error()))
	default:
		if h.log != nil {
			h.log.Errorw(op+"_failed", "err", err)
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorBody(msgInternal))
	}
}
