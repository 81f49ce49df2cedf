package models

type Category struct {
	ID          string `json:"id" gorm:"primaryKey;size:64"`
	Name        string `json:"name" gorm:"not null"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}
