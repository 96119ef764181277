package repositories

import (
	"vlinky_backend/internal/models"

	"gorm.io/gorm"
)

type ActivityRepository interface {
	Create(entry *models.ActivityLog) error
	FindRecent(limit, offset int) ([]models.ActivityLog, int64, error)
}

type activityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(entry *models.ActivityLog) error {
	return r.db.Create(entry).Error
}

func (r *activityRepository) FindRecent(limit, offset int) ([]models.ActivityLog, int64, error) {
	var total int64
	if err := r.db.Model(&models.ActivityLog{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []models.ActivityLog
	err := r.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&entries).Error
	return entries, total, err
}
