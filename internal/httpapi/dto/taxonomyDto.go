package dto

// TagRequest creates a category or genre.
type TagRequest struct {
	Name string `json:"name" binding:"required,max=250"`
	Slug string `json:"slug" binding:"required,max=50"`
}
