package models

type Category struct {
	ID   uint   `json:"-" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"size:250;not null"`
	Slug string `json:"slug" gorm:"uniqueIndex;size:50;not null"`
}

func (Category) TableName() string {
	return "categories"
}
