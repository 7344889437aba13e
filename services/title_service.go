package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"review-catalogue-api/models"
	"review-catalogue-api/repositories"

	"gorm.io/gorm"
)

type TitleService interface {
	CreateTitle(req models.CreateTitleRequest) (*models.Title, error)
	GetTitle(id uint) (*models.Title, error)
	GetTitles(params models.TitleListParams) ([]models.Title, int64, error)
	UpdateTitle(id uint, req models.UpdateTitleRequest) (*models.Title, error)
	DeleteTitle(id uint) error
}

type titleService struct {
	titleRepo    repositories.TitleRepository
	categoryRepo repositories.CategoryRepository
	genreRepo    repositories.GenreRepository
}

func NewTitleService(titleRepo repositories.TitleRepository, categoryRepo repositories.CategoryRepository, genreRepo repositories.GenreRepository) TitleService {
	return &titleService{
		titleRepo:    titleRepo,
		categoryRepo: categoryRepo,
		genreRepo:    genreRepo,
	}
}

// CreateTitle resolves the supplied slugs before anything is persisted, so
// an unknown slug aborts the whole create.
func (s *titleService) CreateTitle(req models.CreateTitleRequest) (*models.Title, error) {
	if err := validateYear(*req.Year); err != nil {
		return nil, err
	}

	title := &models.Title{
		Name:        req.Name,
		Year:        *req.Year,
		Description: req.Description,
	}

	if req.Category != "" {
		category, err := s.resolveCategory(req.Category)
		if err != nil {
			return nil, err
		}
		title.CategoryID = &category.ID
	}

	if len(req.Genres) > 0 {
		genres, err := s.resolveGenres(req.Genres)
		if err != nil {
			return nil, err
		}
		title.Genres = genres
	}

	if err := s.titleRepo.Create(title); err != nil {
		return nil, err
	}

	return s.GetTitle(title.ID)
}

func (s *titleService) GetTitle(id uint) (*models.Title, error) {
	title, err := s.titleRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: title %d", models.ErrNotFound, id)
		}
		return nil, err
	}

	avg, err := s.titleRepo.AvgScore(title.ID)
	if err != nil {
		return nil, err
	}
	title.Rating = ratingFromAvg(avg)

	return title, nil
}

func (s *titleService) GetTitles(params models.TitleListParams) ([]models.Title, int64, error) {
	titles, total, err := s.titleRepo.GetList(params)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]uint, len(titles))
	for i := range titles {
		ids[i] = titles[i].ID
	}

	avgs, err := s.titleRepo.AvgScores(ids)
	if err != nil {
		return nil, 0, err
	}

	for i := range titles {
		if avg, ok := avgs[titles[i].ID]; ok {
			titles[i].Rating = ratingFromAvg(&avg)
		}
	}

	return titles, total, nil
}

func (s *titleService) UpdateTitle(id uint, req models.UpdateTitleRequest) (*models.Title, error) {
	title, err := s.titleRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: title %d", models.ErrNotFound, id)
		}
		return nil, err
	}

	if req.Name != nil {
		title.Name = *req.Name
	}
	if req.Year != nil {
		if err := validateYear(*req.Year); err != nil {
			return nil, err
		}
		title.Year = *req.Year
	}
	if req.Description != nil {
		title.Description = *req.Description
	}

	if req.Category != nil {
		if *req.Category == "" {
			title.CategoryID = nil
			title.Category = nil
		} else {
			category, err := s.resolveCategory(*req.Category)
			if err != nil {
				return nil, err
			}
			title.CategoryID = &category.ID
			title.Category = category
		}
	}

	if err := s.titleRepo.Update(title); err != nil {
		return nil, err
	}

	if req.Genres != nil {
		genres, err := s.resolveGenres(*req.Genres)
		if err != nil {
			return nil, err
		}
		if err := s.titleRepo.ReplaceGenres(title, genres); err != nil {
			return nil, err
		}
	}

	return s.GetTitle(title.ID)
}

// DeleteTitle removes the title; its reviews and their comments go with it
// via the store cascade.
func (s *titleService) DeleteTitle(id uint) error {
	if _, err := s.titleRepo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: title %d", models.ErrNotFound, id)
		}
		return err
	}
	return s.titleRepo.Delete(id)
}

func (s *titleService) resolveCategory(slug string) (*models.Category, error) {
	category, err := s.categoryRepo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: category %s", models.ErrNotFound, slug)
		}
		return nil, err
	}
	return category, nil
}

func (s *titleService) resolveGenres(slugs []string) ([]models.Genre, error) {
	genres, err := s.genreRepo.GetBySlugs(slugs)
	if err != nil {
		return nil, err
	}
	if len(genres) != len(slugs) {
		found := make(map[string]bool, len(genres))
		for _, genre := range genres {
			found[genre.Slug] = true
		}
		for _, slug := range slugs {
			if !found[slug] {
				return nil, fmt.Errorf("%w: genre %s", models.ErrNotFound, slug)
			}
		}
	}
	return genres, nil
}

// Year has no lower bound: the catalogue accepts arbitrarily old works.
func validateYear(year int) error {
	if year > time.Now().Year() {
		return fmt.Errorf("%w: year %d is in the future", models.ErrValidation, year)
	}
	return nil
}

// ratingFromAvg floors the mean score; nil in, nil out.
func ratingFromAvg(avg *float64) *int {
	if avg == nil {
		return nil
	}
	rating := int(math.Floor(*avg))
	return &rating
}
