package services

import (
	"errors"
	"fmt"
	"regexp"

	"review-catalogue-api/models"
	"review-catalogue-api/repositories"

	"gorm.io/gorm"
)

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// CatalogueService manages the slug-identified reference data: categories
// and genres.
type CatalogueService interface {
	CreateCategory(req models.CreateSlugRequest) (*models.Category, error)
	GetCategories(params models.ListParams) ([]models.Category, int64, error)
	DeleteCategory(slug string) error
	CreateGenre(req models.CreateSlugRequest) (*models.Genre, error)
	GetGenres(params models.ListParams) ([]models.Genre, int64, error)
	DeleteGenre(slug string) error
}

type catalogueService struct {
	categoryRepo repositories.CategoryRepository
	genreRepo    repositories.GenreRepository
}

func NewCatalogueService(categoryRepo repositories.CategoryRepository, genreRepo repositories.GenreRepository) CatalogueService {
	return &catalogueService{categoryRepo: categoryRepo, genreRepo: genreRepo}
}

func (s *catalogueService) CreateCategory(req models.CreateSlugRequest) (*models.Category, error) {
	if err := validateSlug(req.Slug); err != nil {
		return nil, err
	}

	category := &models.Category{Name: req.Name, Slug: req.Slug}
	if err := s.categoryRepo.Create(category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: slug %s already exists", models.ErrConflict, req.Slug)
		}
		return nil, err
	}

	return category, nil
}

func (s *catalogueService) GetCategories(params models.ListParams) ([]models.Category, int64, error) {
	return s.categoryRepo.GetList(params)
}

func (s *catalogueService) DeleteCategory(slug string) error {
	category, err := s.categoryRepo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: category %s", models.ErrNotFound, slug)
		}
		return err
	}
	return s.categoryRepo.Delete(category.ID)
}

func (s *catalogueService) CreateGenre(req models.CreateSlugRequest) (*models.Genre, error) {
	if err := validateSlug(req.Slug); err != nil {
		return nil, err
	}

	genre := &models.Genre{Name: req.Name, Slug: req.Slug}
	if err := s.genreRepo.Create(genre); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: slug %s already exists", models.ErrConflict, req.Slug)
		}
		return nil, err
	}

	return genre, nil
}

func (s *catalogueService) GetGenres(params models.ListParams) ([]models.Genre, int64, error) {
	return s.genreRepo.GetList(params)
}

func (s *catalogueService) DeleteGenre(slug string) error {
	genre, err := s.genreRepo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: genre %s", models.ErrNotFound, slug)
		}
		return err
	}
	return s.genreRepo.Delete(genre.ID)
}

func validateSlug(slug string) error {
	if !slugPattern.MatchString(slug) {
		return fmt.Errorf("%w: slug may only contain letters, digits, hyphens and underscores", models.ErrValidation)
	}
	return nil
}
