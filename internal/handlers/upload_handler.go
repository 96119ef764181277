package handlers

import (
	"net/http"

	"vlinky_backend/internal/middleware"
	"vlinky_backend/internal/models"
	"vlinky_backend/internal/services"
	"vlinky_backend/internal/services/dto"
	"vlinky_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	*BaseHandler
	uploadService services.UploadService
}

func NewUploadHandler(base *BaseHandler, uploadService services.UploadService) *UploadHandler {
	return &UploadHandler{
		BaseHandler:   base,
		uploadService: uploadService,
	}
}

func (h *UploadHandler) RegisterRoutes(r *gin.RouterGroup) {
	upload := r.Group("/upload")
	upload.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleCreator))
	{
		upload.POST("/video", h.UploadVideo)
	}
}

// UploadVideo accepts a base64 payload. Required-field checks live in the
// service so the error names the missing parameter.
func (h *UploadHandler) UploadVideo(c *gin.Context) {
	creatorUserID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UploadVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return
	}

	resp, err := h.uploadService.UploadVideo(c.Request.Context(), creatorUserID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
