package dto

import (
	"time"

	"reviewhub/internal/httpapi/models"
)

type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

type UpdateCommentRequest struct {
	Text *string `json:"text"`
}

type CommentResponse struct {
	ID       int64     `json:"id"`
	ReviewID int64     `json:"review_id"`
	Author   string    `json:"author"`
	Text     string    `json:"text"`
	PubDate  time.Time `json:"pub_date"`
}

func FromModelToCommentResponse(comment *models.Comment) *CommentResponse {
	return &CommentResponse{
		ID:       comment.ID,
		ReviewID: comment.ReviewID,
		Author:   comment.Author.Username,
		Text:     comment.Text,
		PubDate:  comment.PubDate,
	}
}
