package models

type Service struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:120;uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}
