package models

type Genre struct {
	ID   uint   `json:"-" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"size:250;not null"`
	Slug string `json:"slug" gorm:"uniqueIndex;size:50;not null"`
}

func (Genre) TableName() string {
	return "genres"
}
