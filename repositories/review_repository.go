package repositories

import (
	"review-catalogue-api/models"

	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(review *models.Review) error
	GetByID(titleID, reviewID uint) (*models.Review, error)
	GetList(titleID uint, params models.ListParams) ([]models.Review, int64, error)
	Update(review *models.Review) error
	Delete(id uint) error
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(review *models.Review) error {
	return r.db.Create(review).Error
}

func (r *reviewRepository) GetByID(titleID, reviewID uint) (*models.Review, error) {
	var review models.Review
	err := r.db.Where("title_id = ? AND id = ?", titleID, reviewID).
		Preload("Author").
		First(&review).Error
	return &review, err
}

func (r *reviewRepository) GetList(titleID uint, params models.ListParams) ([]models.Review, int64, error) {
	var reviews []models.Review
	var total int64

	query := r.db.Model(&models.Review{}).Where("title_id = ?", titleID)

	query.Count(&total)

	offset := (params.Page - 1) * params.Limit
	err := query.Preload("Author").
		Order("id asc").
		Offset(offset).Limit(params.Limit).
		Find(&reviews).Error

	return reviews, total, err
}

func (r *reviewRepository) Update(review *models.Review) error {
	return r.db.Save(review).Error
}

func (r *reviewRepository) Delete(id uint) error {
	return r.db.Delete(&models.Review{}, id).Error
}
