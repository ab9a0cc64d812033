package dto

import "reviewhub/internal/httpapi/models"

// TitleWriteRequest is the flat write shape: category and genres referenced
// by slug.
type TitleWriteRequest struct {
	Name        string   `json:"name" binding:"required,max=250"`
	Description string   `json:"description"`
	Year        *int     `json:"year"`
	Category    *string  `json:"category"`
	Genre       []string `json:"genre"`
}

// TitleUpdateRequest is a partial patch of the write shape.
type TitleUpdateRequest struct {
	Name        *string   `json:"name" binding:"omitempty,max=250"`
	Description *string   `json:"description"`
	Year        *int      `json:"year"`
	Category    *string   `json:"category"`
	Genre       *[]string `json:"genre"`
}

// TitleResponse is the read shape: nested objects plus the computed rating.
// Rating is null when the title has no reviews.
type TitleResponse struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Year        *int             `json:"year"`
	Rating      *int             `json:"rating"`
	Category    *models.Category `json:"category"`
	Genre       []models.Genre   `json:"genre"`
}

func FromModelToTitleResponse(title *models.Title, rating *int) *TitleResponse {
	genres := title.Genres
	if genres == nil {
		genres = []models.Genre{}
	}
	return &TitleResponse{
		ID:          title.ID,
		Name:        title.Name,
		Description: title.Description,
		Year:        title.Year,
		Rating:      rating,
		Category:    title.Category,
		Genre:       genres,
	}
}
