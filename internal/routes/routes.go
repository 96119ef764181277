package routes

import (
	"net/http"

	"vlinky_backend/internal/handlers"
	"vlinky_backend/internal/middleware"
	"vlinky_backend/ws"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the full HTTP surface: the versioned REST API and the
// authenticated change-feed socket.
func RegisterRoutes(engine *gin.Engine, h *handlers.AppHandlers, wsHandler *ws.Handler) {
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api/v1")
	{
		h.Auth.RegisterRoutes(api)
		h.Creator.RegisterRoutes(api)
		h.Request.RegisterRoutes(api)
		h.Upload.RegisterRoutes(api)
		h.Admin.RegisterRoutes(api)
	}

	socket := engine.Group("/ws")
	socket.Use(middleware.AuthMiddleware())
	{
		socket.GET("", wsHandler.Serve)
	}
}
