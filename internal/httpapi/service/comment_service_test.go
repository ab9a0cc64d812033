package service

import (
	"context"
	"testing"

	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func expectReview(reviewRepo *MockReviewRepository, titleID, reviewID int64) {
	reviewRepo.On("GetByID", mock.Anything, titleID, reviewID).
		Return(&models.Review{ID: reviewID, TitleID: titleID, AuthorID: "author-1"}, nil)
}

func TestCommentService_Create(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	reviewRepo := new(MockReviewRepository)
	svc := NewCommentService(commentRepo, reviewRepo)
	actor := &models.User{ID: "user-1", Username: "alice", Role: models.RoleUser}

	expectReview(reviewRepo, 7, 42)
	commentRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Comment")).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Comment).ID = 5
	}).Return(nil)

	resp, err := svc.Create(context.Background(), actor, 7, 42, dto.CreateCommentRequest{Text: "agreed"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.ID)
	assert.Equal(t, "alice", resp.Author)
	assert.Equal(t, "agreed", resp.Text)
}

func TestCommentService_Create_ReviewUnderWrongTitle(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	reviewRepo := new(MockReviewRepository)
	svc := NewCommentService(commentRepo, reviewRepo)

	reviewRepo.On("GetByID", mock.Anything, int64(8), int64(42)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Create(context.Background(), &models.User{ID: "user-1", Role: models.RoleUser}, 8, 42,
		dto.CreateCommentRequest{Text: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
	commentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCommentService_Update_AuthorOnly(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	reviewRepo := new(MockReviewRepository)
	svc := NewCommentService(commentRepo, reviewRepo)

	expectReview(reviewRepo, 7, 42)
	comment := &models.Comment{ID: 5, ReviewID: 42, AuthorID: "user-1", Text: "old"}
	commentRepo.On("GetByID", mock.Anything, int64(42), int64(5)).Return(comment, nil)

	text := "edited"
	_, err := svc.Update(context.Background(), &models.User{ID: "user-2", Role: models.RoleUser}, 7, 42, 5,
		dto.UpdateCommentRequest{Text: &text})
	assert.ErrorIs(t, err, ErrForbidden)
	commentRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCommentService_Delete_ModeratorMayRemove(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	reviewRepo := new(MockReviewRepository)
	svc := NewCommentService(commentRepo, reviewRepo)

	expectReview(reviewRepo, 7, 42)
	comment := &models.Comment{ID: 5, ReviewID: 42, AuthorID: "user-1"}
	commentRepo.On("GetByID", mock.Anything, int64(42), int64(5)).Return(comment, nil)
	commentRepo.On("Delete", mock.Anything, comment).Return(nil)

	err := svc.Delete(context.Background(), &models.User{ID: "mod-1", Role: models.RoleModerator}, 7, 42, 5)
	assert.NoError(t, err)
	commentRepo.AssertExpectations(t)
}

func TestCommentService_ListByReview(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	reviewRepo := new(MockReviewRepository)
	svc := NewCommentService(commentRepo, reviewRepo)

	expectReview(reviewRepo, 7, 42)
	comments := []models.Comment{
		{ID: 1, ReviewID: 42, Text: "first", Author: models.User{Username: "alice"}},
		{ID: 2, ReviewID: 42, Text: "second", Author: models.User{Username: "bob"}},
	}
	commentRepo.On("ListByReview", mock.Anything, int64(42), 20, 0).Return(comments, int64(2), nil)

	responses, total, err := svc.ListByReview(context.Background(), 7, 42, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, responses, 2)
	assert.Equal(t, "alice", responses[0].Author)
}
