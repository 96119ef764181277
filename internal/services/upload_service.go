package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"vlinky_backend/internal/email"
	"vlinky_backend/internal/logger"
	"vlinky_backend/internal/models"
	"vlinky_backend/internal/repositories"
	"vlinky_backend/internal/services/dto"
	"vlinky_backend/internal/storage"
	"vlinky_backend/pkg/apperrors"
)

// UploadService is the upload proxy: it accepts base64-encoded video payloads,
// persists them in object storage under a deterministic per-request path, and
// optionally notifies the fan that their video is ready.
type UploadService interface {
	UploadVideo(ctx context.Context, creatorUserID string, req *dto.UploadVideoRequest) (*dto.UploadVideoResponse, error)
}

type uploadService struct {
	store        storage.Storage
	requestRepo  repositories.RequestRepository
	creatorRepo  repositories.CreatorRepository
	emailer      email.Provider
	maxSizeBytes int64
}

func NewUploadService(
	store storage.Storage,
	requestRepo repositories.RequestRepository,
	creatorRepo repositories.CreatorRepository,
	emailer email.Provider,
	maxSizeBytes int64,
) UploadService {
	return &uploadService{
		store:        store,
		requestRepo:  requestRepo,
		creatorRepo:  creatorRepo,
		emailer:      emailer,
		maxSizeBytes: maxSizeBytes,
	}
}

func (s *uploadService) UploadVideo(ctx context.Context, creatorUserID string, req *dto.UploadVideoRequest) (*dto.UploadVideoResponse, error) {
	// Missing-parameter errors name the offending field.
	if req.FileName == "" {
		return nil, apperrors.ErrMissingParameter("upload", "fileName")
	}
	if req.FileBase64 == "" {
		return nil, apperrors.ErrMissingParameter("upload", "fileBase64")
	}
	if req.RequestID == "" {
		return nil, apperrors.ErrMissingParameter("upload", "requestId")
	}

	request, err := s.requestRepo.FindByID(req.RequestID)
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
	if request.Status != models.RequestStatusPending {
		return nil, apperrors.ErrInvalidTransition("request",
			"Only pending requests accept a video upload")
	}

	data, err := decodeBase64Payload(req.FileBase64)
	if err != nil {
		return nil, apperrors.NewBadRequestError("Invalid base64 video payload")
	}
	if int64(len(data)) > s.maxSizeBytes {
		return nil, apperrors.ErrInvalidOperation("upload",
			fmt.Sprintf("File exceeds the %d MB upload limit", s.maxSizeBytes/(1<<20)))
	}

	path := VideoStoragePath(req.RequestID, req.FileName)
	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = "video/mp4"
	}

	if err := s.store.Save(ctx, path, bytes.NewReader(data), contentType); err != nil {
		return nil, apperrors.ErrExternalService(err, "storage", "Failed to store video")
	}
	storageURL, err := s.store.GetURL(ctx, path)
	if err != nil {
		return nil, apperrors.ErrExternalService(err, "storage", "Failed to resolve video URL")
	}

	// The upload and the status flip land together.
	request.VideoURL = &storageURL
	request.Status = models.RequestStatusCompleted
	request.UpdatedAt = time.Now()
	if err := s.requestRepo.Update(request); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.UploadVideoResponse{
		Success:     true,
		VideoURL:    storageURL,
		StorageURL:  storageURL,
		StoragePath: path,
		RequestID:   req.RequestID,
	}

	// Notification is best-effort: the upload has already succeeded.
	if req.FanEmail != "" && req.CreatorName != "" {
		resp.EmailResult = s.notifyFan(ctx, req, storageURL)
	}
	return resp, nil
}

func (s *uploadService) notifyFan(ctx context.Context, req *dto.UploadVideoRequest, videoURL string) *dto.EmailResult {
	err := s.emailer.SendWithTemplate(email.TemplateVideoDelivered, email.TemplateData{
		"CreatorName": req.CreatorName,
		"Title":       req.Title,
		"VideoURL":    videoURL,
	}, &email.Email{
		To:      []string{req.FanEmail},
		Subject: fmt.Sprintf("Your video from %s is ready", req.CreatorName),
	})
	if err != nil {
		logger.CtxWithError(ctx, "video delivery email failed", err,
			"request_id", req.RequestID)
		return &dto.EmailResult{Sent: false, Error: err.Error()}
	}
	return &dto.EmailResult{Sent: true}
}

// VideoStoragePath is the deterministic object key for a delivered video. The
// extension comes from the uploaded file name, defaulting to mp4.
func VideoStoragePath(requestID, fileName string) string {
	ext := strings.TrimPrefix(filepath.Ext(fileName), ".")
	if ext == "" {
		ext = "mp4"
	}
	return fmt.Sprintf("requests/%s.%s", requestID, strings.ToLower(ext))
}

// decodeBase64Payload accepts both raw base64 and data-URL payloads
// ("data:video/mp4;base64,....").
func decodeBase64Payload(payload string) ([]byte, error) {
	if idx := strings.Index(payload, ","); idx >= 0 && strings.HasPrefix(payload, "data:") {
		payload = payload[idx+1:]
	}
	return base64.StdEncoding.DecodeString(payload)
}
