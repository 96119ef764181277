package services

import (
	"context"
	"strings"
	"time"

	"vlinky_backend/internal/algorithms"
	"vlinky_backend/internal/models"
	"vlinky_backend/internal/repositories"
	"vlinky_backend/internal/services/dto"
	"vlinky_backend/internal/storage"
	"vlinky_backend/pkg/apperrors"
)

// signedLinkExpiry bounds how long a private delivery link stays valid.
const signedLinkExpiry = 24 * time.Hour

// RequestService enforces the video request lifecycle:
//
//	pending -> completed (creator attaches the delivered video)
//	pending -> declined  (creator declines)
//
// Both target states are terminal. Price and deadline are frozen at creation;
// the rating is a one-shot field mutation on completed requests only.
type RequestService interface {
	Create(fanID string, req *dto.CreateRequestRequest) (*dto.RequestResponse, error)
	Get(requestID, callerID string, role models.UserRole) (*dto.RequestResponse, error)

	// Creator actions
	Fulfill(creatorUserID, requestID string, req *dto.FulfillRequestRequest) (*dto.RequestResponse, error)
	Decline(creatorUserID, requestID string) (*dto.RequestResponse, error)
	ListForCreator(creatorUserID string, status models.RequestStatus, page, pageSize int) (*dto.RequestListResponse, error)

	// Fan actions
	Rate(fanID, requestID string, req *dto.RateRequestRequest) (*dto.RequestResponse, error)
	ListForFan(fanID string, page, pageSize int) (*dto.RequestListResponse, error)
	GetVideoLink(requestID, callerID string, role models.UserRole) (*dto.VideoLinkResponse, error)

	// Derived views
	GetRatingSummary(creatorID string) (*algorithms.RatingSummary, error)
}

type requestService struct {
	requestRepo repositories.RequestRepository
	creatorRepo repositories.CreatorRepository
	store       storage.Storage
	publisher   ChangePublisher
}

func NewRequestService(
	requestRepo repositories.RequestRepository,
	creatorRepo repositories.CreatorRepository,
	store storage.Storage,
	publisher ChangePublisher,
) RequestService {
	return &requestService{
		requestRepo: requestRepo,
		creatorRepo: creatorRepo,
		store:       store,
		publisher:   publisher,
	}
}

// ---------------- Creation ----------------

func (s *requestService) Create(fanID string, req *dto.CreateRequestRequest) (*dto.RequestResponse, error) {
	creator, err := s.creatorRepo.FindByID(req.CreatorID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	// Requests can only target discoverable creators.
	if !creator.IsApproved() {
		return nil, apperrors.ErrNotFound(repositories.ErrApplicationNotFound)
	}

	orderType := models.OrderType(req.OrderType)
	if !models.ValidOrderType(orderType) {
		return nil, apperrors.NewBadRequestError("Unknown order type")
	}

	recipient := req.RecipientName
	if recipient == "" {
		recipient = req.FanName
	}

	now := time.Now()
	request := &models.VideoRequest{
		CreatorID:     creator.ID,
		FanID:         &fanID,
		FanName:       req.FanName,
		FanEmail:      req.FanEmail,
		RecipientName: recipient,
		OrderType:     orderType,
		Instructions:  req.Instructions,
		Private:       req.Private,
		// Frozen at creation: later base-price changes never touch this order.
		TotalPrice: algorithms.PriceForOrderType(creator.BasePrice, orderType),
		Deadline:   algorithms.Deadline(now, orderType.ExpressDelivery()),
		Status:     models.RequestStatusPending,
	}

	if err := s.requestRepo.Create(request); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.publisher.Publish("video_requests", "created", request.ID)
	return requestToDTO(request), nil
}

func (s *requestService) Get(requestID, callerID string, role models.UserRole) (*dto.RequestResponse, error) {
	request, err := s.loadAuthorized(requestID, callerID, role)
	if err != nil {
		return nil, err
	}
	return requestToDTO(request), nil
}

// ---------------- Creator actions ----------------

func (s *requestService) Fulfill(creatorUserID, requestID string, req *dto.FulfillRequestRequest) (*dto.RequestResponse, error) {
	request, err := s.loadOwnedByCreator(creatorUserID, requestID)
	if err != nil {
		return nil, err
	}

	if request.Status != models.RequestStatusPending {
		return nil, apperrors.ErrInvalidTransition("request",
			"Only pending requests can be completed")
	}

	// The video reference and the status flip are written together; a
	// completed request can never exist without its delivery.
	videoURL := req.VideoURL
	request.VideoURL = &videoURL
	request.Status = models.RequestStatusCompleted
	request.UpdatedAt = time.Now()

	if err := s.requestRepo.Update(request); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.publisher.Publish("video_requests", "updated", request.ID)
	return requestToDTO(request), nil
}

func (s *requestService) Decline(creatorUserID, requestID string) (*dto.RequestResponse, error) {
	request, err := s.loadOwnedByCreator(creatorUserID, requestID)
	if err != nil {
		return nil, err
	}

	if request.Status != models.RequestStatusPending {
		return nil, apperrors.ErrInvalidTransition("request",
			"Only pending requests can be declined")
	}

	request.Status = models.RequestStatusDeclined
	request.UpdatedAt = time.Now()

	if err := s.requestRepo.Update(request); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.publisher.Publish("video_requests", "updated", request.ID)
	return requestToDTO(request), nil
}

func (s *requestService) ListForCreator(creatorUserID string, status models.RequestStatus, page, pageSize int) (*dto.RequestListResponse, error) {
	creator, err := s.creatorRepo.FindByUserID(creatorUserID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	offset := (page - 1) * pageSize
	requests, total, err := s.requestRepo.FindByCreator(creator.ID, status, pageSize, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return buildRequestList(requests, total, pageSize), nil
}

// ---------------- Fan actions ----------------

// Rate is a field mutation, not a lifecycle transition: it is allowed exactly
// once, only on a completed request, and only by the original requester.
func (s *requestService) Rate(fanID, requestID string, req *dto.RateRequestRequest) (*dto.RequestResponse, error) {
	request, err := s.requestRepo.FindByID(requestID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	if request.FanID == nil || *request.FanID != fanID {
		return nil, apperrors.NewForbiddenError("Only the requester can rate this video")
	}
	if request.Status != models.RequestStatusCompleted {
		return nil, apperrors.ErrInvalidOperation("request",
			"Only completed requests can be rated")
	}
	if request.Rating != nil {
		return nil, apperrors.ErrInvalidOperation("request",
			"Request has already been rated")
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, apperrors.NewBadRequestError("Rating must be between 1 and 5")
	}

	rating := req.Rating
	request.Rating = &rating
	request.UpdatedAt = time.Now()

	if err := s.requestRepo.Update(request); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.publisher.Publish("video_requests", "updated", request.ID)
	return requestToDTO(request), nil
}

func (s *requestService) ListForFan(fanID string, page, pageSize int) (*dto.RequestListResponse, error) {
	offset := (page - 1) * pageSize
	requests, total, err := s.requestRepo.FindByFan(fanID, pageSize, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return buildRequestList(requests, total, pageSize), nil
}

// GetVideoLink returns the delivery URL. Private deliveries get a short-lived
// signed URL instead of the public CDN link.
func (s *requestService) GetVideoLink(requestID, callerID string, role models.UserRole) (*dto.VideoLinkResponse, error) {
	request, err := s.loadAuthorized(requestID, callerID, role)
	if err != nil {
		return nil, err
	}

	if request.Status != models.RequestStatusCompleted || request.VideoURL == nil {
		return nil, apperrors.ErrInvalidOperation("request", "Video has not been delivered yet")
	}

	if !request.Private {
		return &dto.VideoLinkResponse{RequestID: request.ID, VideoURL: *request.VideoURL}, nil
	}

	path := storagePathFromURL(*request.VideoURL)
	signed, err := s.store.GetSignedURL(context.Background(), path, signedLinkExpiry)
	if err != nil {
		return nil, apperrors.ErrExternalService(err, "storage", "Failed to sign video URL")
	}
	return &dto.VideoLinkResponse{RequestID: request.ID, VideoURL: signed, Signed: true}, nil
}

// ---------------- Derived views ----------------

func (s *requestService) GetRatingSummary(creatorID string) (*algorithms.RatingSummary, error) {
	requests, err := s.requestRepo.FindAllByCreator(creatorID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	summary := algorithms.AggregateRatings(requests)
	return &summary, nil
}

// ---------------- Internals ----------------

func (s *requestService) loadOwnedByCreator(creatorUserID, requestID string) (*models.VideoRequest, error) {
	request, err := s.requestRepo.FindByID(requestID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	creator, err := s.creatorRepo.FindByUserID(creatorUserID)
	if err != nil {
		return nil, apperrors.NewForbiddenError("No creator profile for this account")
	}
	if request.CreatorID != creator.ID {
		return nil, apperrors.NewForbiddenError("Request belongs to another creator")
	}
	return request, nil
}

func (s *requestService) loadAuthorized(requestID, callerID string, role models.UserRole) (*models.VideoRequest, error) {
	request, err := s.requestRepo.FindByID(requestID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	if role == models.UserRoleAdmin {
		return request, nil
	}
	if request.FanID != nil && *request.FanID == callerID {
		return request, nil
	}
	if creator, err := s.creatorRepo.FindByUserID(callerID); err == nil && creator.ID == request.CreatorID {
		return request, nil
	}
	return nil, apperrors.NewForbiddenError("Not allowed to view this request")
}

// storagePathFromURL recovers the deterministic storage path from a delivery
// URL. Paths always start at the "requests/" segment.
func storagePathFromURL(videoURL string) string {
	if idx := strings.Index(videoURL, "/requests/"); idx >= 0 {
		return videoURL[idx+1:]
	}
	return videoURL
}

func buildRequestList(requests []models.VideoRequest, total int64, pageSize int) *dto.RequestListResponse {
	responses := make([]dto.RequestResponse, 0, len(requests))
	for i := range requests {
		responses = append(responses, *requestToDTO(&requests[i]))
	}
	return &dto.RequestListResponse{
		Requests:   responses,
		Total:      total,
		TotalPages: totalPages(total, pageSize),
	}
}

func requestToDTO(request *models.VideoRequest) *dto.RequestResponse {
	return &dto.RequestResponse{
		ID:            request.ID,
		CreatorID:     request.CreatorID,
		FanID:         request.FanID,
		FanName:       request.FanName,
		FanEmail:      request.FanEmail,
		RecipientName: request.RecipientName,
		OrderType:     request.OrderType,
		Instructions:  request.Instructions,
		Private:       request.Private,
		Deadline:      request.Deadline,
		TotalPrice:    request.TotalPrice,
		VideoURL:      request.VideoURL,
		Rating:        request.Rating,
		Status:        request.Status,
		CreatedAt:     request.CreatedAt,
		UpdatedAt:     request.UpdatedAt,
	}
}
