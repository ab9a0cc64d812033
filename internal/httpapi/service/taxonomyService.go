package service

import (
	"context"
	"errors"
	"regexp"

	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/models"
	"reviewhub/internal/httpapi/repository"

	"gorm.io/gorm"
)

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

func validateSlug(slug string) *ValidationError {
	if len(slug) > 50 || !slugPattern.MatchString(slug) {
		return NewValidationError("slug", "slug may contain only letters, digits, hyphens and underscores")
	}
	return nil
}

// CategoryService manages the single-select taxonomy tags.
type CategoryService interface {
	List(ctx context.Context, search string, limit, offset int) ([]models.Category, int64, error)
	Create(ctx context.Context, req dto.TagRequest) (*models.Category, error)
	DeleteBySlug(ctx context.Context, slug string) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) List(ctx context.Context, search string, limit, offset int) ([]models.Category, int64, error) {
	return s.categoryRepo.List(ctx, search, limit, offset)
}

func (s *categoryService) Create(ctx context.Context, req dto.TagRequest) (*models.Category, error) {
	if vErr := validateSlug(req.Slug); vErr != nil {
		return nil, vErr
	}
	category := &models.Category{Name: req.Name, Slug: req.Slug}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if isUniqueViolation(err, "") {
			return nil, NewValidationError("slug", "slug already in use")
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) DeleteBySlug(ctx context.Context, slug string) error {
	category, err := s.categoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.categoryRepo.Delete(ctx, category)
}

// GenreService manages the multi-select taxonomy tags.
type GenreService interface {
	List(ctx context.Context, search string, limit, offset int) ([]models.Genre, int64, error)
	Create(ctx context.Context, req dto.TagRequest) (*models.Genre, error)
	DeleteBySlug(ctx context.Context, slug string) error
}

type genreService struct {
	genreRepo repository.GenreRepository
}

func NewGenreService(genreRepo repository.GenreRepository) GenreService {
	return &genreService{genreRepo: genreRepo}
}

func (s *genreService) List(ctx context.Context, search string, limit, offset int) ([]models.Genre, int64, error) {
	return s.genreRepo.List(ctx, search, limit, offset)
}

func (s *genreService) Create(ctx context.Context, req dto.TagRequest) (*models.Genre, error) {
	if vErr := validateSlug(req.Slug); vErr != nil {
		return nil, vErr
	}
	genre := &models.Genre{Name: req.Name, Slug: req.Slug}
	if err := s.genreRepo.Create(ctx, genre); err != nil {
		if isUniqueViolation(err, "") {
			return nil, NewValidationError("slug", "slug already in use")
		}
		return nil, err
	}
	return genre, nil
}

func (s *genreService) DeleteBySlug(ctx context.Context, slug string) error {
	genre, err := s.genreRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.genreRepo.Delete(ctx, genre)
}
