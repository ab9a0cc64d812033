package models

type Title struct {
	ID          int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string  `json:"name" gorm:"size:250;not null;index"`
	Description string  `json:"description" gorm:"type:text"`
	Year        *int    `json:"year,omitempty" gorm:"index"`
	CategoryID  *uint   `json:"-" gorm:"index"`

	// Associations. Deleting a category keeps its titles, deleting a title
	// takes its genre links with it.
	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL;"`
	Genres   []Genre   `json:"genre,omitempty" gorm:"many2many:title_genres;constraint:OnDelete:CASCADE;"`
}

func (Title) TableName() string {
	return "titles"
}
