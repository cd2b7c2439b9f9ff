package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	maxBodyBytes       = 1 << 20
	errInvalidBodyPref = "cuerpo de la solicitud inválido: "
)

// limitBody caps request bodies before any handler binds them.
func limitBody(c *gin.Context) {
	if c.Request.Body != nil {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
	}
	c.Next()
}

// badBody answers a request whose JSON could not be bound.
func (h *Handler) badBody(c *gin.Context, err error) {
	if h.log != nil {
		h.log.Infow("bad_request_body", "path", c.FullPath(), "err", err)
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, errorBody(errInvalidBodyPref+err.Error()))
}

// numericString accepts a JSON number, a numeric string, or null. The text is
// validated by the service so that every amount error reports its field.
type numericString string

func (n *numericString) UnmarshalJSON(b []byte) error {
	switch {
	case string(b) == "null":
		*n = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = numericString(s)
	default:
		var num json.Number
		if err := json.Unmarshal(b, &num); err != nil {
			return fmt.Errorf("expected a number, got %s", b)
		}
		*n = numericString(num.String())
	}
	return nil
}
