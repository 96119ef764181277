package repositories

import (
	"errors"
	"time"

	"vlinky_backend/internal/models"

	"gorm.io/gorm"
)

var ErrRequestNotFound = errors.New("video request not found")

type RequestRepository interface {
	Create(request *models.VideoRequest) error
	FindByID(id string) (*models.VideoRequest, error)
	Update(request *models.VideoRequest) error

	FindByCreator(creatorID string, status models.RequestStatus, limit, offset int) ([]models.VideoRequest, int64, error)
	FindByFan(fanID string, limit, offset int) ([]models.VideoRequest, int64, error)
	FindAllByCreator(creatorID string) ([]models.VideoRequest, error)

	// Admin / aggregation
	FindAll(status models.RequestStatus, limit, offset int) ([]models.VideoRequest, int64, error)
	CountByStatus(status models.RequestStatus) (int64, error)
	SumCompletedPrices() (float64, error)
	SumCompletedPricesByCreator(creatorID string, since time.Time) (float64, error)
	CompletedCreatorIDs() ([]string, error)
}

type requestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) Create(request *models.VideoRequest) error {
	return r.db.Create(request).Error
}

func (r *requestRepository) FindByID(id string) (*models.VideoRequest, error) {
	var request models.VideoRequest
	if err := r.db.First(&request, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return &request, nil
}

func (r *requestRepository) Update(request *models.VideoRequest) error {
	return r.db.Save(request).Error
}

func (r *requestRepository) FindByCreator(creatorID string, status models.RequestStatus, limit, offset int) ([]models.VideoRequest, int64, error) {
	query := r.db.Model(&models.VideoRequest{}).Where("creator_id = ?", creatorID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var requests []models.VideoRequest
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&requests).Error
	return requests, total, err
}

func (r *requestRepository) FindByFan(fanID string, limit, offset int) ([]models.VideoRequest, int64, error) {
	query := r.db.Model(&models.VideoRequest{}).Where("fan_id = ?", fanID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var requests []models.VideoRequest
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&requests).Error
	return requests, total, err
}

// FindAllByCreator loads every request for a creator, for rating aggregation.
func (r *requestRepository) FindAllByCreator(creatorID string) ([]models.VideoRequest, error) {
	var requests []models.VideoRequest
	err := r.db.Where("creator_id = ?", creatorID).Find(&requests).Error
	return requests, err
}

func (r *requestRepository) FindAll(status models.RequestStatus, limit, offset int) ([]models.VideoRequest, int64, error) {
	query := r.db.Model(&models.VideoRequest{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var requests []models.VideoRequest
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&requests).Error
	return requests, total, err
}

func (r *requestRepository) CountByStatus(status models.RequestStatus) (int64, error) {
	var count int64
	err := r.db.Model(&models.VideoRequest{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *requestRepository) SumCompletedPrices() (float64, error) {
	var sum float64
	err := r.db.Model(&models.VideoRequest{}).
		Where("status = ?", models.RequestStatusCompleted).
		Select("COALESCE(SUM(total_price), 0)").Scan(&sum).Error
	return sum, err
}

func (r *requestRepository) SumCompletedPricesByCreator(creatorID string, since time.Time) (float64, error) {
	var sum float64
	query := r.db.Model(&models.VideoRequest{}).
		Where("creator_id = ? AND status = ?", creatorID, models.RequestStatusCompleted)
	if !since.IsZero() {
		query = query.Where("updated_at >= ?", since)
	}
	err := query.Select("COALESCE(SUM(total_price), 0)").Scan(&sum).Error
	return sum, err
}

// CompletedCreatorIDs lists creators with at least one completed request.
func (r *requestRepository) CompletedCreatorIDs() ([]string, error) {
	var ids []string
	err := r.db.Model(&models.VideoRequest{}).
		Where("status = ?", models.RequestStatusCompleted).
		Distinct("creator_id").Pluck("creator_id", &ids).Error
	return ids, err
}
