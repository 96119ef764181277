package handlers

import (
	"net/http"

	"vlinky_backend/internal/middleware"
	"vlinky_backend/internal/models"
	"vlinky_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	*BaseHandler
	adminService services.AdminService
}

func NewAdminHandler(base *BaseHandler, adminService services.AdminService) *AdminHandler {
	return &AdminHandler{
		BaseHandler:  base,
		adminService: adminService,
	}
}

func (h *AdminHandler) RegisterRoutes(r *gin.RouterGroup) {
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleAdmin))
	{
		admin.GET("/stats", h.GetPlatformStats)
		admin.GET("/earnings", h.ListEarnings)
		admin.GET("/earnings/:creatorId", h.GetCreatorEarnings)
		admin.GET("/activity", h.ListActivity)
		admin.GET("/requests", h.ListRequests)
	}
}

func (h *AdminHandler) GetPlatformStats(c *gin.Context) {
	stats, err := h.adminService.PlatformStats()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *AdminHandler) ListEarnings(c *gin.Context) {
	page, pageSize := ParsePagination(c)

	earnings, err := h.adminService.ListEarnings(page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"earnings": earnings.Earnings,
		"total":    earnings.Total,
		"page":     page,
		"pages":    earnings.TotalPages,
	})
}

func (h *AdminHandler) GetCreatorEarnings(c *gin.Context) {
	earnings, err := h.adminService.GetCreatorEarnings(c.Param("creatorId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, earnings)
}

func (h *AdminHandler) ListActivity(c *gin.Context) {
	page, pageSize := ParsePagination(c)

	activity, err := h.adminService.ListActivity(page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entries": activity.Entries,
		"total":   activity.Total,
		"page":    page,
		"pages":   activity.TotalPages,
	})
}

func (h *AdminHandler) ListRequests(c *gin.Context) {
	page, pageSize := ParsePagination(c)
	status := models.RequestStatus(c.Query("status"))

	requests, err := h.adminService.ListRequests(status, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"requests": requests.Requests,
		"total":    requests.Total,
		"page":     page,
		"pages":    requests.TotalPages,
	})
}
