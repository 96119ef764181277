package repositories

import (
	"errors"

	"vlinky_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrApplicationNotFound = errors.New("creator application not found")
	ErrApplicationExists   = errors.New("creator application already exists for this user")
)

// CreatorFilter narrows discovery queries. Discovery always implies
// status = approved; the filter never widens visibility.
type CreatorFilter struct {
	Country       string
	Language      string
	AvailableOnly bool
}

type CreatorRepository interface {
	Create(app *models.CreatorApplication) error
	FindByID(id string) (*models.CreatorApplication, error)
	FindByUserID(userID string) (*models.CreatorApplication, error)
	FindGuestsByEmail(email string) ([]models.CreatorApplication, error)
	Update(app *models.CreatorApplication) error
	UpdateStatus(id string, status models.ApplicationStatus) error
	AssignUser(applicationID, userID string) error
	Delete(id string) error

	// Discovery: approved applications only
	FindApproved(filter CreatorFilter, limit, offset int) ([]models.CreatorApplication, int64, error)

	// Admin listings
	FindAll(status models.ApplicationStatus, limit, offset int) ([]models.CreatorApplication, int64, error)
	CountByStatus(status models.ApplicationStatus) (int64, error)
}

type creatorRepository struct {
	db *gorm.DB
}

func NewCreatorRepository(db *gorm.DB) CreatorRepository {
	return &creatorRepository{db: db}
}

func (r *creatorRepository) Create(app *models.CreatorApplication) error {
	return r.db.Create(app).Error
}

func (r *creatorRepository) FindByID(id string) (*models.CreatorApplication, error) {
	var app models.CreatorApplication
	if err := r.db.First(&app, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

func (r *creatorRepository) FindByUserID(userID string) (*models.CreatorApplication, error) {
	var app models.CreatorApplication
	if err := r.db.First(&app, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

// FindGuestsByEmail lists unlinked guest applications sharing an email. Used
// by the reconciliation step, never for silent merging.
func (r *creatorRepository) FindGuestsByEmail(email string) ([]models.CreatorApplication, error) {
	var apps []models.CreatorApplication
	err := r.db.Where("email = ? AND user_id IS NULL", email).
		Order("created_at ASC").Find(&apps).Error
	return apps, err
}

func (r *creatorRepository) Update(app *models.CreatorApplication) error {
	return r.db.Save(app).Error
}

func (r *creatorRepository) UpdateStatus(id string, status models.ApplicationStatus) error {
	result := r.db.Model(&models.CreatorApplication{}).Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func (r *creatorRepository) AssignUser(applicationID, userID string) error {
	return r.db.Model(&models.CreatorApplication{}).
		Where("id = ? AND user_id IS NULL", applicationID).
		Update("user_id", userID).Error
}

func (r *creatorRepository) Delete(id string) error {
	return r.db.Delete(&models.CreatorApplication{}, "id = ?", id).Error
}

func (r *creatorRepository) FindApproved(filter CreatorFilter, limit, offset int) ([]models.CreatorApplication, int64, error) {
	query := r.db.Model(&models.CreatorApplication{}).
		Where("status = ?", models.ApplicationStatusApproved)

	if filter.Country != "" {
		query = query.Where("country = ?", filter.Country)
	}
	if filter.Language != "" {
		query = query.Where("languages @> ?", `["`+filter.Language+`"]`)
	}
	if filter.AvailableOnly {
		query = query.Where("available = true")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var apps []models.CreatorApplication
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&apps).Error
	return apps, total, err
}

func (r *creatorRepository) FindAll(status models.ApplicationStatus, limit, offset int) ([]models.CreatorApplication, int64, error) {
	query := r.db.Model(&models.CreatorApplication{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var apps []models.CreatorApplication
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&apps).Error
	return apps, total, err
}

func (r *creatorRepository) CountByStatus(status models.ApplicationStatus) (int64, error) {
	var count int64
	err := r.db.Model(&models.CreatorApplication{}).
		Where("status = ?", status).Count(&count).Error
	return count, err
}
