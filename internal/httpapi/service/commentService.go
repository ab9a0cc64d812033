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

type CommentService interface {
	ListByReview(ctx context.Context, titleID, reviewID int64, limit, offset int) ([]dto.CommentResponse, int64, error)
	Create(ctx context.Context, actor *models.User, titleID, reviewID int64, req dto.CreateCommentRequest) (*dto.CommentResponse, error)
	Get(ctx context.Context, titleID, reviewID, commentID int64) (*dto.CommentResponse, error)
	Update(ctx context.Context, actor *models.User, titleID, reviewID, commentID int64, req dto.UpdateCommentRequest) (*dto.CommentResponse, error)
	Delete(ctx context.Context, actor *models.User, titleID, reviewID, commentID int64) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	reviewRepo  repository.ReviewRepository
}

func NewCommentService(commentRepo repository.CommentRepository, reviewRepo repository.ReviewRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		reviewRepo:  reviewRepo,
	}
}

// requireReview resolves the parent review scoped to its title: a review id
// living under a different title is treated as missing.
func (s *commentService) requireReview(ctx context.Context, titleID, reviewID int64) error {
	if _, err := s.reviewRepo.GetByID(ctx, titleID, reviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *commentService) ListByReview(ctx context.Context, titleID, reviewID int64, limit, offset int) ([]dto.CommentResponse, int64, error) {
	if err := s.requireReview(ctx, titleID, reviewID); err != nil {
		return nil, 0, err
	}

	comments, total, err := s.commentRepo.ListByReview(ctx, reviewID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		responses = append(responses, *dto.FromModelToCommentResponse(&comments[i]))
	}
	return responses, total, nil
}

func (s *commentService) Create(ctx context.Context, actor *models.User, titleID, reviewID int64, req dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	if !permissions.Allowed(actor, http.MethodPost, permissions.ResourceComment, actor.ID) {
		return nil, ErrForbidden
	}
	if err := s.requireReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ReviewID: reviewID,
		AuthorID: actor.ID,
		Text:     req.Text,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	comment.Author = *actor
	return dto.FromModelToCommentResponse(comment), nil
}

func (s *commentService) Get(ctx context.Context, titleID, reviewID, commentID int64) (*dto.CommentResponse, error) {
	comment, err := s.get(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToCommentResponse(comment), nil
}

func (s *commentService) Update(ctx context.Context, actor *models.User, titleID, reviewID, commentID int64, req dto.UpdateCommentRequest) (*dto.CommentResponse, error) {
	comment, err := s.get(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	if !permissions.Allowed(actor, http.MethodPatch, permissions.ResourceComment, comment.AuthorID) {
		return nil, ErrForbidden
	}

	if req.Text != nil {
		comment.Text = *req.Text
	}

	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return dto.FromModelToCommentResponse(comment), nil
}

func (s *commentService) Delete(ctx context.Context, actor *models.User, titleID, reviewID, commentID int64) error {
	comment, err := s.get(ctx, titleID, reviewID, commentID)
	if err != nil {
		return err
	}

	if !permissions.Allowed(actor, http.MethodDelete, permissions.ResourceComment, comment.AuthorID) {
		return ErrForbidden
	}

	return s.commentRepo.Delete(ctx, comment)
}

func (s *commentService) get(ctx context.Context, titleID, reviewID, commentID int64) (*models.Comment, error) {
	if err := s.requireReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	comment, err := s.commentRepo.GetByID(ctx, reviewID, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return comment, nil
}
