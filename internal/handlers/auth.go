package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// @Summary      Log in
// @Description  Verifies credentials and opens a session. The token is also set as an HttpOnly cookie.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input  body      loginRequest  true  "credentials"
// @Success      200    {object}  map[string]interface{}  "status, username, role, token"
// @Failure      400    {object}  map[string]string
// @Failure      401    {object}  map[string]string
// @Router       /api/login [post]
func (h *Handler) login(c *gin.Context) {
	var input loginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		h.badBody(c, err)
		return
	}

	sess, err := h.services.Login(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		if h.log != nil {
			h.log.Infow("auth_login_failed", "username", input.Username, "err", err)
		}
		h.abortWithError(c, "auth_login", err)
		return
	}

	maxAge := int(time.Until(sess.ExpiresAt).Seconds())
	h.setSessionCookie(c, sess.Token, maxAge)

	c.JSON(http.StatusOK, gin.H{
		"status":   "success",
		"username": sess.Identity.Username,
		"role":     sess.Identity.Role,
		"token":    sess.Token,
	})
}

// @Summary   Log out
// @Tags      auth
// @Produce   json
// @Success   200  {object}  map[string]string
// @Failure   401  {object}  map[string]string
// @Router    /api/logout [get]
// @Security  BearerAuth
func (h *Handler) logout(c *gin.Context) {
	id, _ := identity(c)
	if err := h.services.Logout(c.Request.Context(), id); err != nil {
		h.abortWithError(c, "auth_logout", err)
		return
	}
	h.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// @Summary  Session status
// @Tags     auth
// @Produce  json
// @Success  200  {object}  service.SessionStatus
// @Router   /api/check_session [get]
func (h *Handler) checkSession(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.CheckSession(c.Request.Context(), h.sessionToken(c)))
}

func (h *Handler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.opts.CookieName, value, maxAge, "/", "", h.opts.CookieSecure, true)
}
