package service

import (
	"context"
	"errors"
	"math"
	"time"

	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/models"
	"reviewhub/internal/httpapi/repository"

	"gorm.io/gorm"
)

type TitleService interface {
	List(ctx context.Context, filter repository.TitleFilter, limit, offset int) ([]dto.TitleResponse, int64, error)
	Get(ctx context.Context, id int64) (*dto.TitleResponse, error)
	Create(ctx context.Context, req dto.TitleWriteRequest) (*dto.TitleResponse, error)
	Update(ctx context.Context, id int64, req dto.TitleUpdateRequest) (*dto.TitleResponse, error)
	Delete(ctx context.Context, id int64) error
}

type titleService struct {
	titleRepo    repository.TitleRepository
	reviewRepo   repository.ReviewRepository
	categoryRepo repository.CategoryRepository
	genreRepo    repository.GenreRepository
}

func NewTitleService(
	titleRepo repository.TitleRepository,
	reviewRepo repository.ReviewRepository,
	categoryRepo repository.CategoryRepository,
	genreRepo repository.GenreRepository,
) TitleService {
	return &titleService{
		titleRepo:    titleRepo,
		reviewRepo:   reviewRepo,
		categoryRepo: categoryRepo,
		genreRepo:    genreRepo,
	}
}

// roundedRating folds a score aggregate into the response rating: nil when
// no reviews exist, otherwise the mean rounded half away from zero.
func roundedRating(agg repository.ScoreAggregate) *int {
	if agg.Count == 0 {
		return nil
	}
	rating := int(math.Round(agg.Average))
	return &rating
}

func validateYear(year *int) *ValidationError {
	if year == nil {
		return nil
	}
	if *year < 0 {
		return NewValidationError("year", "Год не может быть отрицательным.")
	}
	if *year > time.Now().Year() {
		return NewValidationError("year", "Год не может быть больше настоящего.")
	}
	return nil
}

func (s *titleService) List(ctx context.Context, filter repository.TitleFilter, limit, offset int) ([]dto.TitleResponse, int64, error) {
	titles, total, err := s.titleRepo.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]int64, 0, len(titles))
	for _, title := range titles {
		ids = append(ids, title.ID)
	}
	// the rating is recomputed from the reviews on every read
	aggs, err := s.reviewRepo.AggregateScores(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]dto.TitleResponse, 0, len(titles))
	for i := range titles {
		responses = append(responses, *dto.FromModelToTitleResponse(&titles[i], roundedRating(aggs[titles[i].ID])))
	}
	return responses, total, nil
}

func (s *titleService) Get(ctx context.Context, id int64) (*dto.TitleResponse, error) {
	title, err := s.titleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	agg, err := s.reviewRepo.AggregateScore(ctx, id)
	if err != nil {
		return nil, err
	}

	return dto.FromModelToTitleResponse(title, roundedRating(agg)), nil
}

func (s *titleService) Create(ctx context.Context, req dto.TitleWriteRequest) (*dto.TitleResponse, error) {
	if vErr := validateYear(req.Year); vErr != nil {
		return nil, vErr
	}

	title := &models.Title{
		Name:        req.Name,
		Description: req.Description,
		Year:        req.Year,
	}

	if req.Category != nil {
		category, vErr, err := s.resolveCategory(ctx, *req.Category)
		if err != nil {
			return nil, err
		}
		if vErr != nil {
			return nil, vErr
		}
		title.CategoryID = &category.ID
		title.Category = category
	}

	genres, vErr, err := s.resolveGenres(ctx, req.Genre)
	if err != nil {
		return nil, err
	}
	if vErr != nil {
		return nil, vErr
	}
	title.Genres = genres

	if err := s.titleRepo.Create(ctx, title); err != nil {
		return nil, err
	}

	return dto.FromModelToTitleResponse(title, nil), nil
}

func (s *titleService) Update(ctx context.Context, id int64, req dto.TitleUpdateRequest) (*dto.TitleResponse, error) {
	title, err := s.titleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		title.Name = *req.Name
	}
	if req.Description != nil {
		title.Description = *req.Description
	}
	if req.Year != nil {
		if vErr := validateYear(req.Year); vErr != nil {
			return nil, vErr
		}
		title.Year = req.Year
	}
	if req.Category != nil {
		category, vErr, err := s.resolveCategory(ctx, *req.Category)
		if err != nil {
			return nil, err
		}
		if vErr != nil {
			return nil, vErr
		}
		title.CategoryID = &category.ID
		title.Category = category
	}

	if err := s.titleRepo.Update(ctx, title); err != nil {
		return nil, err
	}

	if req.Genre != nil {
		genres, vErr, err := s.resolveGenres(ctx, *req.Genre)
		if err != nil {
			return nil, err
		}
		if vErr != nil {
			return nil, vErr
		}
		if err := s.titleRepo.ReplaceGenres(ctx, title, genres); err != nil {
			return nil, err
		}
	}

	agg, err := s.reviewRepo.AggregateScore(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToTitleResponse(title, roundedRating(agg)), nil
}

func (s *titleService) Delete(ctx context.Context, id int64) error {
	if err := s.titleRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *titleService) resolveCategory(ctx context.Context, slug string) (*models.Category, *ValidationError, error) {
	category, err := s.categoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewValidationError("category", "unknown category slug"), nil
		}
		return nil, nil, err
	}
	return category, nil, nil
}

func (s *titleService) resolveGenres(ctx context.Context, slugs []string) ([]models.Genre, *ValidationError, error) {
	if len(slugs) == 0 {
		return []models.Genre{}, nil, nil
	}

	genres, err := s.genreRepo.GetBySlugs(ctx, slugs)
	if err != nil {
		return nil, nil, err
	}

	found := make(map[string]bool, len(genres))
	for _, genre := range genres {
		found[genre.Slug] = true
	}
	for _, slug := range slugs {
		if !found[slug] {
			return nil, NewValidationError("genre", "unknown genre slug"), nil
		}
	}
	return genres, nil, nil
}
