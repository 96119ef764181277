package ws

import (
	"vlinky_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	hub *Hub
}

func NewHandler(hub *Hub) *Handler {
	return &Handler{hub: hub}
}

// Serve is the gin entry point for the change-feed socket.
func (h *Handler) Serve(c *gin.Context) {
	userID := middleware.GetUserID(c)
	ServeWS(h.hub, c.Writer, c.Request, userID)
}
