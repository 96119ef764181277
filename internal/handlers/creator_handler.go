package handlers

import (
	"net/http"

	"vlinky_backend/internal/middleware"
	"vlinky_backend/internal/models"
	"vlinky_backend/internal/repositories"
	"vlinky_backend/internal/services"
	"vlinky_backend/internal/services/dto"
	"vlinky_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type CreatorHandler struct {
	*BaseHandler
	creatorService services.CreatorService
	requestService services.RequestService
}

func NewCreatorHandler(base *BaseHandler, creatorService services.CreatorService, requestService services.RequestService) *CreatorHandler {
	return &CreatorHandler{
		BaseHandler:    base,
		creatorService: creatorService,
		requestService: requestService,
	}
}

func (h *CreatorHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Public routes: discovery and guest applications
	public := r.Group("/creators")
	{
		public.GET("", h.ListCreators)
		public.GET("/:creatorId", h.GetCreator)
		public.GET("/:creatorId/ratings", h.GetCreatorRatings)
		public.POST("/apply", h.ApplyGuest)
	}

	// Authenticated application routes
	apply := r.Group("/creators")
	apply.Use(middleware.AuthMiddleware())
	{
		apply.POST("/apply/me", h.ApplyAuthenticated)
		apply.GET("/me/application", h.GetOwnApplication)
	}

	// Approved creators only
	profile := r.Group("/creators/me")
	profile.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleCreator))
	{
		profile.PUT("/profile", h.UpdateProfile)
		profile.GET("/earnings", h.GetOwnEarnings)
	}

	// Admin workflow
	admin := r.Group("/admin/applications")
	admin.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleAdmin))
	{
		admin.GET("", h.ListApplications)
		admin.POST("/:applicationId/approve", h.ApproveApplication)
		admin.POST("/:applicationId/reject", h.RejectApplication)
		admin.POST("/reconcile/:userId", h.ReconcileGuestApplications)
		admin.DELETE("/:applicationId", h.DeleteApplication)
	}
}

// --- Public handlers ---

func (h *CreatorHandler) ListCreators(c *gin.Context) {
	page, pageSize := ParsePagination(c)

	filter := repositories.CreatorFilter{
		Country:       c.Query("country"),
		Language:      c.Query("language"),
		AvailableOnly: c.Query("available") == "true",
	}

	creators, err := h.creatorService.ListApproved(filter, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"creators": creators.Creators,
		"total":    creators.Total,
		"page":     page,
		"pages":    creators.TotalPages,
	})
}

func (h *CreatorHandler) GetCreator(c *gin.Context) {
	creatorID := c.Param("creatorId")

	card, err := h.creatorService.GetCreatorCard(creatorID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, card)
}

func (h *CreatorHandler) GetCreatorRatings(c *gin.Context) {
	creatorID := c.Param("creatorId")

	summary, err := h.requestService.GetRatingSummary(creatorID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *CreatorHandler) ApplyGuest(c *gin.Context) {
	var req dto.CreateApplicationRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	app, err := h.creatorService.Apply(nil, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, app)
}

// --- Authenticated handlers ---

func (h *CreatorHandler) ApplyAuthenticated(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateApplicationRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	app, err := h.creatorService.Apply(&userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, app)
}

func (h *CreatorHandler) GetOwnApplication(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	app, err := h.creatorService.GetOwnApplication(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, app)
}

func (h *CreatorHandler) UpdateProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	app, err := h.creatorService.UpdateProfile(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, app)
}

func (h *CreatorHandler) GetOwnEarnings(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	earnings, err := h.creatorService.GetOwnEarnings(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, earnings)
}

// --- Admin handlers ---

func (h *CreatorHandler) ListApplications(c *gin.Context) {
	page, pageSize := ParsePagination(c)

	status := models.ApplicationStatus(c.Query("status"))
	if status != "" && !validApplicationStatus(status) {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Unknown application status"))
		return
	}

	apps, err := h.creatorService.ListApplications(status, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"applications": apps.Applications,
		"total":        apps.Total,
		"page":         page,
		"pages":        apps.TotalPages,
	})
}

func (h *CreatorHandler) ApproveApplication(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.creatorService.Approve(adminID, c.Param("applicationId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Application approved"})
}

func (h *CreatorHandler) RejectApplication(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.creatorService.Reject(adminID, c.Param("applicationId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Application rejected"})
}

func (h *CreatorHandler) ReconcileGuestApplications(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	linked, err := h.creatorService.ReconcileGuestApplications(adminID, c.Param("userId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"linked": linked,
		"total":  len(linked),
	})
}

func (h *CreatorHandler) DeleteApplication(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.creatorService.DeleteApplication(adminID, c.Param("applicationId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Application deleted"})
}

func validApplicationStatus(status models.ApplicationStatus) bool {
	switch status {
	case models.ApplicationStatusPending, models.ApplicationStatusApproved, models.ApplicationStatusRejected:
		return true
	}
	return false
}
