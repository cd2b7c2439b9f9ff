package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"condo_ledger/internal/models"
	"condo_ledger/internal/service"
)

const identityKey = "identity"

// sessionToken reads the session token from the cookie, falling back to an
// Authorization: Bearer header for API clients.
func (h *Handler) sessionToken(c *gin.Context) string {
	if v, err := c.Cookie(h.opts.CookieName); err == nil && v != "" {
		return v
	}
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

func (h *Handler) sessionMiddleware(c *gin.Context) {
	token := h.sessionToken(c)
	if token == "" {
		h.abortWithError(c, "authenticate", service.ErrAuthRequired)
		return
	}

	id, err := h.services.Authenticate(c.Request.Context(), token)
	if err != nil {
		h.abortWithError(c, "authenticate", err)
		return
	}

	// store in Gin context
	c.Set(identityKey, id)
	c.Next()
}

// identity returns the caller set by sessionMiddleware.
func identity(c *gin.Context) (models.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return models.Identity{}, false
	}
	id, ok := v.(models.Identity)
	return id, ok
}

func (h *Handler) cors(c *gin.Context) {
	origin := c.GetHeader("Origin")
	if origin != "" && h.originAllowed(origin) {
		hdr := c.Writer.Header()
		hdr.Set("Access-Control-Allow-Origin", origin)
		hdr.Set("Access-Control-Allow-Credentials", "true")
		hdr.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		hdr.Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		hdr.Set("Access-Control-Expose-Headers", "Content-Disposition")
		hdr.Add("Vary", "Origin")
	}

	if c.Request.Method == http.MethodOptions {
		c.AbortWithStatus(http.StatusNoContent)
		return
	}
	c.Next()
}

func (h *Handler) originAllowed(origin string) bool {
	for _, o := range h.opts.AllowedOrigins {
		if o == "*" || strings.EqualFold(o, origin) {
			return true
		}
	}
	return false
}
