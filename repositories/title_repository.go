package repositories

import (
	"database/sql"

	"review-catalogue-api/models"

	"gorm.io/gorm"
)

type TitleRepository interface {
	Create(title *models.Title) error
	GetByID(id uint) (*models.Title, error)
	GetList(params models.TitleListParams) ([]models.Title, int64, error)
	Update(title *models.Title) error
	ReplaceGenres(title *models.Title, genres []models.Genre) error
	Delete(id uint) error
	AvgScore(titleID uint) (*float64, error)
	AvgScores(titleIDs []uint) (map[uint]float64, error)
}

type titleRepository struct {
	db *gorm.DB
}

func NewTitleRepository(db *gorm.DB) TitleRepository {
	return &titleRepository{db: db}
}

func (r *titleRepository) Create(title *models.Title) error {
	return r.db.Create(title).Error
}

func (r *titleRepository) GetByID(id uint) (*models.Title, error) {
	var title models.Title
	err := r.db.Preload("Category").Preload("Genres").First(&title, id).Error
	return &title, err
}

func (r *titleRepository) GetList(params models.TitleListParams) ([]models.Title, int64, error) {
	var titles []models.Title
	var total int64

	query := r.db.Model(&models.Title{}).Preload("Category").Preload("Genres")

	if params.Name != "" {
		query = query.Where("LOWER(titles.name) LIKE LOWER(?)", "%"+params.Name+"%")
	}
	if params.Year != nil {
		query = query.Where("titles.year = ?", *params.Year)
	}
	if params.Category != "" {
		query = query.Joins("JOIN categories ON categories.id = titles.category_id").
			Where("categories.slug = ?", params.Category)
	}
	if params.Genre != "" {
		query = query.Joins("JOIN title_genres ON title_genres.title_id = titles.id").
			Joins("JOIN genres ON genres.id = title_genres.genre_id").
			Where("genres.slug = ?", params.Genre)
	}

	query.Count(&total)

	offset := (params.Page - 1) * params.Limit
	err := query.Order("titles.id asc").Offset(offset).Limit(params.Limit).Find(&titles).Error

	return titles, total, err
}

func (r *titleRepository) Update(title *models.Title) error {
	return r.db.Omit("Genres").Save(title).Error
}

func (r *titleRepository) ReplaceGenres(title *models.Title, genres []models.Genre) error {
	return r.db.Model(title).Association("Genres").Replace(genres)
}

func (r *titleRepository) Delete(id uint) error {
	return r.db.Select("Genres").Delete(&models.Title{ID: id}).Error
}

// AvgScore returns the mean review score for a title, nil when the title
// has no reviews.
func (r *titleRepository) AvgScore(titleID uint) (*float64, error) {
	var avg sql.NullFloat64
	err := r.db.Model(&models.Review{}).
		Select("AVG(score)").
		Where("title_id = ?", titleID).
		Scan(&avg).Error
	if err != nil || !avg.Valid {
		return nil, err
	}
	return &avg.Float64, nil
}

// AvgScores batches the aggregate for a page of titles. Titles without
// reviews are simply absent from the map.
func (r *titleRepository) AvgScores(titleIDs []uint) (map[uint]float64, error) {
	if len(titleIDs) == 0 {
		return map[uint]float64{}, nil
	}

	var results []struct {
		TitleID uint
		Avg     float64
	}

	err := r.db.Model(&models.Review{}).
		Select("title_id, AVG(score) as avg").
		Where("title_id IN ?", titleIDs).
		Group("title_id").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	avgs := make(map[uint]float64, len(results))
	for _, result := range results {
		avgs[result.TitleID] = result.Avg
	}

	return avgs, nil
}
