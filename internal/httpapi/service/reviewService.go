package service

import (
	"context"
	"errors"
	"net/http"

	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/models"
	"reviewhub/internal/httpapi/permissions"
	"reviewhub/internal/httpapi/repository"

	"gorm.io/gorm"
)

type ReviewService interface {
	ListByTitle(ctx context.Context, titleID int64, limit, offset int) ([]dto.ReviewResponse, int64, error)
	Create(ctx context.Context, actor *models.User, titleID int64, req dto.CreateReviewRequest) (*dto.ReviewResponse, error)
	Get(ctx context.Context, titleID, reviewID int64) (*dto.ReviewResponse, error)
	Update(ctx context.Context, actor *models.User, titleID, reviewID int64, req dto.UpdateReviewRequest) (*dto.ReviewResponse, error)
	Delete(ctx context.Context, actor *models.User, titleID, reviewID int64) error
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	titleRepo  repository.TitleRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, titleRepo repository.TitleRepository) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		titleRepo:  titleRepo,
	}
}

func (s *reviewService) requireTitle(ctx context.Context, titleID int64) error {
	if _, err := s.titleRepo.GetByID(ctx, titleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *reviewService) ListByTitle(ctx context.Context, titleID int64, limit, offset int) ([]dto.ReviewResponse, int64, error) {
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, 0, err
	}

	reviews, total, err := s.reviewRepo.ListByTitle(ctx, titleID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		responses = append(responses, *dto.FromModelToReviewResponse(&reviews[i]))
	}
	return responses, total, nil
}

// Create inserts the actor's review for a title. The pre-check gives a clean
// error on the common path; the unique index on (title_id, author_id) is the
// actual guarantee, so a concurrent duplicate collapses to the same
// validation error.
func (s *reviewService) Create(ctx context.Context, actor *models.User, titleID int64, req dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	if !permissions.Allowed(actor, http.MethodPost, permissions.ResourceReview, actor.ID) {
		return nil, ErrForbidden
	}
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}

	if _, err := s.reviewRepo.GetByTitleAndAuthor(ctx, titleID, actor.ID); err == nil {
		return nil, NewValidationError(NonFieldErrors, "Отзыв уже существует!")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	review := &models.Review{
		TitleID:  titleID,
		AuthorID: actor.ID,
		Text:     req.Text,
		Score:    req.Score,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		if isUniqueViolation(err, "ux_reviews_title_author") {
			return nil, NewValidationError(NonFieldErrors, "Отзыв уже существует!")
		}
		return nil, err
	}

	review.Author = *actor
	return dto.FromModelToReviewResponse(review), nil
}

func (s *reviewService) Get(ctx context.Context, titleID, reviewID int64) (*dto.ReviewResponse, error) {
	review, err := s.get(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToReviewResponse(review), nil
}

func (s *reviewService) Update(ctx context.Context, actor *models.User, titleID, reviewID int64, req dto.UpdateReviewRequest) (*dto.ReviewResponse, error) {
	review, err := s.get(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	if !permissions.Allowed(actor, http.MethodPatch, permissions.ResourceReview, review.AuthorID) {
		return nil, ErrForbidden
	}

	if req.Text != nil {
		review.Text = *req.Text
	}
	if req.Score != nil {
		if *req.Score < 1 || *req.Score > 10 {
			return nil, NewValidationError("score", "score must be between 1 and 10")
		}
		review.Score = *req.Score
	}

	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}
	return dto.FromModelToReviewResponse(review), nil
}

func (s *reviewService) Delete(ctx context.Context, actor *models.User, titleID, reviewID int64) error {
	review, err := s.get(ctx, titleID, reviewID)
	if err != nil {
		return err
	}

	if !permissions.Allowed(actor, http.MethodDelete, permissions.ResourceReview, review.AuthorID) {
		return ErrForbidden
	}

	return s.reviewRepo.Delete(ctx, review)
}

func (s *reviewService) get(ctx context.Context, titleID, reviewID int64) (*models.Review, error) {
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}
	review, err := s.reviewRepo.GetByID(ctx, titleID, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return review, nil
}
