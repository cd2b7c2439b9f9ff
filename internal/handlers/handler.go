package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "condo_ledger/docs"
	"condo_ledger/internal/logger"
	"condo_ledger/internal/metrics"
	"condo_ledger/internal/service"
)

const defaultCookieName = "condo_session"

// Options configures transport concerns that services do not know about.
type Options struct {
	CookieName     string
	CookieSecure   bool
	AllowedOrigins []string
	MetricsEnabled bool
}

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	opts     Options
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, opts Options) *Handler {
	if opts.CookieName == "" {
		opts.CookieName = defaultCookieName
	}
	return &Handler{services: services, log: log, opts: opts}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	// request DTOs list every accepted key; anything else is a client error
	binding.EnableDecoderDisallowUnknownFields = true

	router := gin.New()
	router.Use(gin.Recovery())
	if h.opts.MetricsEnabled {
		router.Use(metrics.Middleware())
		router.GET("/metrics", metrics.Handler())
	}
	router.Use(h.cors)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", h.health)

	api := router.Group("/api", limitBody)
	h.registerAuthRoutes(api)
	h.registerLedgerRoutes(api.Group("", h.sessionMiddleware))

	return router
}

func (h *Handler) registerAuthRoutes(api *gin.RouterGroup) {
	api.POST("/login", h.login)
	api.GET("/check_session", h.checkSession)

	api.GET("/logout", h.sessionMiddleware, h.logout)
	api.POST("/logout", h.sessionMiddleware, h.logout)
}

func (h *Handler) registerLedgerRoutes(api *gin.RouterGroup) {
	api.GET("/pagos", h.listPayments)
	api.POST("/pagos", h.createPayment)

	api.GET("/gastos", h.listExpenses)
	api.POST("/gastos", h.createExpense)

	api.GET("/reporte-excel", h.downloadReport)
	api.GET("/eventos", h.getEvents)
	api.GET("/resumen", h.getSummary)

	api.GET("/ws", h.wsConnect)
}

// @Summary  Liveness probe
// @Tags     health
// @Produce  json
// @Success  200  {object}  map[string]string
// @Router   /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
