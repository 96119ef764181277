package repositories

import (
	"errors"

	"vlinky_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrEarningsNotFound = errors.New("earnings record not found")

type EarningsRepository interface {
	Upsert(earnings *models.CreatorEarnings) error
	FindByCreator(creatorID string) (*models.CreatorEarnings, error)
	FindAll(limit, offset int) ([]models.CreatorEarnings, int64, error)
}

type earningsRepository struct {
	db *gorm.DB
}

func NewEarningsRepository(db *gorm.DB) EarningsRepository {
	return &earningsRepository{db: db}
}

// Upsert writes the aggregate keyed on creator_id; the worker recomputes rows
// wholesale so conflicts always overwrite.
func (r *earningsRepository) Upsert(earnings *models.CreatorEarnings) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "creator_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"total_earnings", "pending_payout", "month_earnings", "next_payout_date", "updated_at",
		}),
	}).Create(earnings).Error
}

func (r *earningsRepository) FindByCreator(creatorID string) (*models.CreatorEarnings, error) {
	var earnings models.CreatorEarnings
	if err := r.db.First(&earnings, "creator_id = ?", creatorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEarningsNotFound
		}
		return nil, err
	}
	return &earnings, nil
}

func (r *earningsRepository) FindAll(limit, offset int) ([]models.CreatorEarnings, int64, error) {
	var total int64
	if err := r.db.Model(&models.CreatorEarnings{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.CreatorEarnings
	err := r.db.Order("total_earnings DESC").Limit(limit).Offset(offset).Find(&rows).Error
	return rows, total, err
}
