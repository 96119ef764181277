package handlers

import (
	"net/http"

	"vlinky_backend/internal/middleware"
	"vlinky_backend/internal/models"
	"vlinky_backend/internal/services"
	"vlinky_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type RequestHandler struct {
	*BaseHandler
	requestService services.RequestService
}

func NewRequestHandler(base *BaseHandler, requestService services.RequestService) *RequestHandler {
	return &RequestHandler{
		BaseHandler:    base,
		requestService: requestService,
	}
}

func (h *RequestHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Fan routes
	requests := r.Group("/requests")
	requests.Use(middleware.AuthMiddleware())
	{
		requests.POST("", h.CreateRequest)
		requests.GET("/my", h.GetMyRequests)
		requests.GET("/:requestId", h.GetRequest)
		requests.GET("/:requestId/video", h.GetVideoLink)
		requests.POST("/:requestId/rate", h.RateRequest)
	}

	// Creator routes
	creator := r.Group("/creator/requests")
	creator.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleCreator))
	{
		creator.GET("", h.GetCreatorRequests)
		creator.POST("/:requestId/fulfill", h.FulfillRequest)
		creator.POST("/:requestId/decline", h.DeclineRequest)
	}
}

// --- Fan handlers ---

func (h *RequestHandler) CreateRequest(c *gin.Context) {
	fanID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateRequestRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.requestService.Create(fanID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *RequestHandler) GetMyRequests(c *gin.Context) {
	fanID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	page, pageSize := ParsePagination(c)

	requests, err := h.requestService.ListForFan(fanID, page, pageSize)
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

func (h *RequestHandler) GetRequest(c *gin.Context) {
	callerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.requestService.Get(c.Param("requestId"), callerID, middleware.GetUserRole(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *RequestHandler) GetVideoLink(c *gin.Context) {
	callerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	link, err := h.requestService.GetVideoLink(c.Param("requestId"), callerID, middleware.GetUserRole(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, link)
}

func (h *RequestHandler) RateRequest(c *gin.Context) {
	fanID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.RateRequestRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.requestService.Rate(fanID, c.Param("requestId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// --- Creator handlers ---

func (h *RequestHandler) GetCreatorRequests(c *gin.Context) {
	creatorUserID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	page, pageSize := ParsePagination(c)
	status := models.RequestStatus(c.Query("status"))

	requests, err := h.requestService.ListForCreator(creatorUserID, status, page, pageSize)
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

func (h *RequestHandler) FulfillRequest(c *gin.Context) {
	creatorUserID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.FulfillRequestRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.requestService.Fulfill(creatorUserID, c.Param("requestId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *RequestHandler) DeclineRequest(c *gin.Context) {
	creatorUserID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.requestService.Decline(creatorUserID, c.Param("requestId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
